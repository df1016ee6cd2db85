package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"pourpal/internal/model"
	"pourpal/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ItemHandler handles catalog item HTTP requests.
type ItemHandler struct {
	service service.ItemService
	logger  zerolog.Logger
}

// NewItemHandler creates a new item handler.
func NewItemHandler(service service.ItemService, logger zerolog.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		logger:  logger.With().Str("handler", "item").Logger(),
	}
}

// List handles GET /items requests with search, filter, sort and paging
// query parameters.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseItemFilter(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	page, err := h.service.List(r.Context(), filter, pageRequest(r))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /items/{item_id} requests. An unknown identifier yields a
// null body rather than a 404.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "item_id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /items requests (admin only).
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /items/{item_id} requests (admin only).
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.Update(r.Context(), chi.URLParam(r, "item_id"), &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item updated"})
}

// Delete handles DELETE /items/{item_id} requests (admin only).
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "item_id")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}

func parseItemFilter(r *http.Request) (model.ItemFilter, error) {
	q := r.URL.Query()
	filter := model.ItemFilter{
		Search:       q.Get("search"),
		TypeIDs:      splitList(q.Get("types")),
		CountryCodes: splitList(q.Get("countries")),
		BrandIDs:     splitList(q.Get("brands")),
		SortBy:       q.Get("sort_by"),
		SortOrder:    q.Get("sort_order"),
	}

	if raw := q.Get("min_price"); raw != "" {
		min, err := model.ParseDecimal(raw)
		if err != nil {
			return filter, model.NewDomainError(model.ErrCodeInvalidQuantity, "Invalid min_price")
		}
		filter.MinPrice = &min
	}
	if raw := q.Get("max_price"); raw != "" {
		max, err := model.ParseDecimal(raw)
		if err != nil {
			return filter, model.NewDomainError(model.ErrCodeInvalidQuantity, "Invalid max_price")
		}
		filter.MaxPrice = &max
	}

	return filter, nil
}

// splitList parses a comma-separated query value, dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
