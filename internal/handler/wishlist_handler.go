package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tram-kitchen/internal/middleware"
	"tram-kitchen/internal/model"
	"tram-kitchen/internal/service"
	"tram-kitchen/internal/wishlist"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// WishlistHandler serves the session wishlist endpoints.
type WishlistHandler struct {
	wishlists *wishlist.Engine
	catalog   service.CatalogService
	logger    zerolog.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(wishlists *wishlist.Engine, catalog service.CatalogService, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlists: wishlists,
		catalog:   catalog,
		logger:    logger.With().Str("handler", "wishlist").Logger(),
	}
}

// wishlistResponse is the wishlist summary returned after every operation.
type wishlistResponse struct {
	Items     []wishlist.Item `json:"items"`
	Count     int             `json:"count"`
	Animating bool            `json:"animating"`
}

// addWishlistRequest is the body of POST /api/wishlist/items.
type addWishlistRequest struct {
	ProductID int64 `json:"product_id"`
}

// Get handles GET /api/wishlist.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())
	writeJSON(w, http.StatusOK, h.summary(r, sessionID))
}

// AddItem handles POST /api/wishlist/items. Saving an already-saved product
// succeeds without duplicating it.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	product, err := h.catalog.GetProductByID(r.Context(), req.ProductID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	h.wishlists.Add(r.Context(), sessionID, wishlist.Item{
		ProductID: product.ID,
		Name:      product.Name,
		Slug:      product.Slug,
		Price:     product.EffectivePrice(),
		ImageURL:  product.ImageURL,
	})

	writeJSON(w, http.StatusOK, h.summary(r, sessionID))
}

// RemoveItem handles DELETE /api/wishlist/items/{productID}.
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid product ID", h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	h.wishlists.Remove(r.Context(), sessionID, productID)

	writeJSON(w, http.StatusOK, h.summary(r, sessionID))
}

func (h *WishlistHandler) summary(r *http.Request, sessionID string) wishlistResponse {
	items := h.wishlists.Items(r.Context(), sessionID)
	return wishlistResponse{
		Items:     items,
		Count:     len(items),
		Animating: h.wishlists.Animating(sessionID),
	}
}
