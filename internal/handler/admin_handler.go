package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tram-kitchen/internal/model"
	"tram-kitchen/internal/service"
	"tram-kitchen/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// maxUploadSize bounds product image uploads.
const maxUploadSize = 10 << 20 // 10 MiB

// AdminHandler serves the back-office endpoints. Routes using it are mounted
// behind API-key auth.
type AdminHandler struct {
	catalog  service.CatalogService
	orders   service.OrderService
	uploader upload.Uploader
	logger   zerolog.Logger
}

// NewAdminHandler creates a new admin handler. uploader may be nil when no
// image storage is configured; the upload endpoint then reports failure.
func NewAdminHandler(catalog service.CatalogService, orders service.OrderService, uploader upload.Uploader, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		catalog:  catalog,
		orders:   orders,
		uploader: uploader,
		logger:   logger.With().Str("handler", "admin").Logger(),
	}
}

// ListProducts handles GET /api/admin/products. Unlike the storefront
// listing it includes inactive and hidden products.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !model.ValidStatus(status) {
		writeServiceError(w, model.ErrInvalidStatus, h.logger)
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), service.CatalogQuery{
		Search:     r.URL.Query().Get("search"),
		IncludeAll: true,
		Status:     status,
	})
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /api/admin/products.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	created, err := h.catalog.CreateProduct(r.Context(), &product)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateProduct handles PUT /api/admin/products/{id}.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid product ID", h.logger)
		return
	}

	var product model.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	product.ID = id

	updated, err := h.catalog.UpdateProduct(r.Context(), &product)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteProduct handles DELETE /api/admin/products/{id}.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid product ID", h.logger)
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /api/admin/uploads. The image arrives as
// multipart form data under the "image" field; the response carries the
// public URL to store on the product.
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeUploadFailed, "image storage is not configured", h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "image file is required", h.logger)
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeUploadFailed, "failed to upload image", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"image_url": url})
}

// ListOrders handles GET /api/admin/orders.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := model.OrderFilter{
		Search:        r.URL.Query().Get("search"),
		Status:        r.URL.Query().Get("status"),
		PaymentStatus: r.URL.Query().Get("payment_status"),
	}

	orders, err := h.orders.ListOrders(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// PatchOrder handles PATCH /api/admin/orders/{id}. Only the fixed editable
// field subset is accepted; anything else in the body is ignored.
func (h *AdminHandler) PatchOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid order ID", h.logger)
		return
	}

	var patch model.OrderPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	updated, err := h.orders.PatchOrder(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
