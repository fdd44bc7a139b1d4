package handler

import (
	"net/http"
	"strconv"

	"tram-kitchen/internal/model"
	"tram-kitchen/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler serves the storefront catalog endpoints.
type ProductHandler struct {
	catalog service.CatalogService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog service.CatalogService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products. Storefront listings only ever contain
// active products; filters arrive as query parameters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseCatalogQuery(w, r)
	if !ok {
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), query)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetBySlug handles GET /api/products/{slug}.
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalog.GetProductBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Categories handles GET /api/categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// parseCatalogQuery reads the shared product-listing query parameters.
// The second return value is false when a parameter failed to parse and an
// error response has already been written.
func (h *ProductHandler) parseCatalogQuery(w http.ResponseWriter, r *http.Request) (service.CatalogQuery, bool) {
	q := r.URL.Query()
	query := service.CatalogQuery{
		Search:       q.Get("search"),
		SortBy:       q.Get("sort"),
		SortDesc:     q.Get("order") == "desc",
		SpecialsOnly: q.Get("special") == "true",
	}

	if v := q.Get("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid category parameter", h.logger)
			return query, false
		}
		query.CategoryID = &id
	}
	if v := q.Get("price_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid price_min parameter", h.logger)
			return query, false
		}
		query.PriceMin = &f
	}
	if v := q.Get("price_max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid price_max parameter", h.logger)
			return query, false
		}
		query.PriceMax = &f
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid limit parameter", h.logger)
			return query, false
		}
		query.Limit = n
	}

	return query, true
}
