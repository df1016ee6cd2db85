package handler

import (
	"net/http"
	"strconv"

	"pourpal/internal/model"
	"pourpal/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests. The cart identifier is
// the bearer value of the Authorization header; an empty or unknown value
// simply yields a fresh cart.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.GetCart(r.Context(), bearerToken(r))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// Increment handles POST /cart/{item_id}/increment requests.
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.IncrementItem(r.Context(), bearerToken(r), chi.URLParam(r, "item_id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// Decrement handles POST /cart/{item_id}/decrement requests.
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.DecrementItem(r.Context(), bearerToken(r), chi.URLParam(r, "item_id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// SetQuantity handles PUT /cart/{item_id}?quantity=N requests.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		writeServiceError(w, model.ErrInvalidQuantity, h.logger)
		return
	}

	cart, err := h.service.SetItemQuantity(r.Context(), bearerToken(r), chi.URLParam(r, "item_id"), quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// Remove handles DELETE /cart/{item_id} requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.RemoveItem(r.Context(), bearerToken(r), chi.URLParam(r, "item_id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}
