package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"pourpal/internal/auth"
	"pourpal/internal/middleware"
	"pourpal/internal/model"
	"pourpal/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	tokens  *auth.Manager
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, tokens *auth.Manager, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		tokens:  tokens,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /orders requests. The Authorization header carries the
// cart identifier as its last bearer element; an optional access token as the
// first element attributes the order to a signed-in user. Guests check out
// with just the cart identifier.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var delivery model.DeliveryInformation
	if err := json.NewDecoder(r.Body).Decode(&delivery); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	cartID, userID := h.credentials(r)

	order, err := h.service.CreateOrder(r.Context(), cartID, userID, delivery)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /orders requests (admin only, guarded by middleware).
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListOrders(r.Context(), pageRequest(r))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ListMy handles GET /orders/my requests for the authenticated user.
func (h *OrderHandler) ListMy(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeServiceError(w, model.ErrUnauthorised, h.logger)
		return
	}

	page, err := h.service.ListUserOrders(r.Context(), user.UserID, pageRequest(r))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// credentials splits the bearer value into cart identifier and, when a valid
// access token precedes it, the user it belongs to.
func (h *OrderHandler) credentials(r *http.Request) (string, *string) {
	value := bearerToken(r)
	if value == "" {
		return "", nil
	}

	fields := strings.Fields(value)
	cartID := fields[len(fields)-1]
	if len(fields) < 2 {
		return cartID, nil
	}

	userID, err := h.tokens.Decode(fields[0])
	if err != nil {
		// An unusable token degrades to a guest checkout.
		h.logger.Debug().Err(err).Msg("order token rejected")
		return cartID, nil
	}
	return cartID, &userID
}
