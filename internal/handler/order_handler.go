package handler

import (
	"encoding/json"
	"net/http"

	"tram-kitchen/internal/middleware"
	"tram-kitchen/internal/model"
	"tram-kitchen/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// OrderHandler serves the public checkout and order-lookup endpoints.
type OrderHandler struct {
	orders service.OrderService
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/checkout. The order is built from the session's
// cart; the request body carries only the delivery form.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	order, err := h.orders.Checkout(r.Context(), middleware.SessionID(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// Lookup handles GET /api/orders/{code}. Customers track their order with
// the code printed on the confirmation page.
func (h *OrderHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Lookup(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
