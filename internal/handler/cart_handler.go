package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tram-kitchen/internal/cart"
	"tram-kitchen/internal/middleware"
	"tram-kitchen/internal/model"
	"tram-kitchen/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CartHandler serves the session cart endpoints.
type CartHandler struct {
	carts   *cart.Store
	catalog service.CatalogService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *cart.Store, catalog service.CatalogService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// cartResponse is the cart summary returned after every cart operation.
type cartResponse struct {
	Items     []cart.Item `json:"items"`
	Total     float64     `json:"total"`
	Count     int         `json:"count"`
	Animating bool        `json:"animating"`
}

// addItemRequest is the body of POST /api/cart/items.
type addItemRequest struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	OptionIDs []int64 `json:"option_ids,omitempty"`
}

// setQuantityRequest is the body of PATCH /api/cart/items/{productID}.
type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(middleware.SessionID(r.Context()))
	writeJSON(w, http.StatusOK, h.summary(c))
}

// AddItem handles POST /api/cart/items. The product is fetched so the line
// carries the catalog's current name and pricing, not client-supplied values.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.Quantity <= 0 {
		writeServiceError(w, model.ErrInvalidQuantity, h.logger)
		return
	}

	product, err := h.catalog.GetProductByID(r.Context(), req.ProductID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	var imageURL string
	if product.ImageURL != nil {
		imageURL = *product.ImageURL
	}

	c := h.carts.Get(middleware.SessionID(r.Context()))
	c.AddItem(cart.Item{
		ProductID:     product.ID,
		Name:          product.Name,
		UnitPrice:     product.Price,
		DiscountPrice: product.DiscountPrice,
		Quantity:      req.Quantity,
		ImageURL:      imageURL,
		OptionIDs:     req.OptionIDs,
	})

	writeJSON(w, http.StatusOK, h.summary(c))
}

// SetQuantity handles PATCH /api/cart/items/{productID}. A quantity of zero
// or below removes the line.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid product ID", h.logger)
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	c := h.carts.Get(middleware.SessionID(r.Context()))
	c.SetQuantity(productID, req.Quantity)

	writeJSON(w, http.StatusOK, h.summary(c))
}

// RemoveItem handles DELETE /api/cart/items/{productID}. Removing an absent
// line succeeds.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid product ID", h.logger)
		return
	}

	c := h.carts.Get(middleware.SessionID(r.Context()))
	c.RemoveItem(productID)

	writeJSON(w, http.StatusOK, h.summary(c))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(middleware.SessionID(r.Context()))
	c.Clear()

	writeJSON(w, http.StatusOK, h.summary(c))
}

func (h *CartHandler) summary(c *cart.Cart) cartResponse {
	return cartResponse{
		Items:     c.Items(),
		Total:     c.Total(),
		Count:     c.Count(),
		Animating: c.Animating(),
	}
}
