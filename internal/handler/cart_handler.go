package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"cart-sync/internal/engine"
	"cart-sync/internal/model"

	"github.com/rs/zerolog"
)

// CartHandler exposes the reconciliation engine over HTTP for the
// browser UI. Status codes mirror the engine's error model: domain
// rejections are 4xx, a surfaced transport failure (coupon apply with
// the remote down) is 502.
type CartHandler struct {
	engine engine.Engine
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(eng engine.Engine, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		engine: eng,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.engine.Fetch(r.Context())
	if err != nil {
		h.writeEngineError(w, err, "failed to fetch cart")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "missing required fields", h.logger)
		return
	}

	state, err := h.engine.AddItem(r.Context(), &req)
	if err != nil {
		h.writeEngineError(w, err, "failed to add item")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// UpdateItem handles PUT /api/cart/items/{id} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := itemIDFromPath(r.URL.Path)
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "item ID is required", h.logger)
		return
	}

	var req model.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	state, err := h.engine.UpdateQuantity(r.Context(), itemID, req.Quantity)
	if err != nil {
		h.writeEngineError(w, err, "failed to update item")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := itemIDFromPath(r.URL.Path)
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "item ID is required", h.logger)
		return
	}

	state, err := h.engine.RemoveItem(r.Context(), itemID)
	if err != nil {
		h.writeEngineError(w, err, "failed to remove item")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	state, err := h.engine.Clear(r.Context())
	if err != nil {
		h.writeEngineError(w, err, "failed to clear cart")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// ApplyCoupon handles POST /api/cart/coupon requests.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req model.ApplyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "coupon code is required", h.logger)
		return
	}

	state, err := h.engine.ApplyCoupon(r.Context(), req.Code)
	if err != nil {
		h.writeEngineError(w, err, "failed to apply coupon")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// RemoveCoupon handles DELETE /api/cart/coupon requests.
func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	state, err := h.engine.RemoveCoupon(r.Context())
	if err != nil {
		h.writeEngineError(w, err, "failed to remove coupon")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// writeEngineError maps engine errors onto HTTP status codes.
func (h *CartHandler) writeEngineError(w http.ResponseWriter, err error, fallbackMsg string) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, http.StatusBadRequest, domainErr.Message, h.logger)
		return
	}

	var transportErr *model.TransportError
	if errors.As(err, &transportErr) {
		writeError(w, http.StatusBadGateway, "remote cart service unavailable", h.logger)
		return
	}

	writeError(w, http.StatusInternalServerError, fallbackMsg, h.logger)
}

// itemIDFromPath extracts the item ID from /api/cart/items/{id}.
func itemIDFromPath(path string) string {
	const prefix = "/api/cart/items/"
	if len(path) <= len(prefix) {
		return ""
	}
	return path[len(prefix):]
}
