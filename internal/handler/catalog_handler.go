package handler

import (
	"encoding/json"
	"net/http"

	"pourpal/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CatalogHandler handles brand, type and country reference data requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

type brandRequest struct {
	Brand string `json:"brand"`
}

type typeRequest struct {
	Type string `json:"type"`
}

// ListBrands handles GET /brands requests.
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.ListBrands(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

// CreateBrand handles POST /brands requests (admin only).
func (h *CatalogHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	brand, err := h.service.CreateBrand(r.Context(), req.Brand)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, brand)
}

// UpdateBrand handles PUT /brands/{brand_id} requests (admin only).
func (h *CatalogHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.RenameBrand(r.Context(), chi.URLParam(r, "brand_id"), req.Brand); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Brand updated"})
}

// DeleteBrand handles DELETE /brands/{brand_id} requests (admin only).
func (h *CatalogHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBrand(r.Context(), chi.URLParam(r, "brand_id")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Brand deleted"})
}

// ListTypes handles GET /types requests.
func (h *CatalogHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTypes(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// CreateType handles POST /types requests (admin only).
func (h *CatalogHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req typeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	bt, err := h.service.CreateType(r.Context(), req.Type)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, bt)
}

// UpdateType handles PUT /types/{type_id} requests (admin only).
func (h *CatalogHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	var req typeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.RenameType(r.Context(), chi.URLParam(r, "type_id"), req.Type); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Type updated"})
}

// DeleteType handles DELETE /types/{type_id} requests (admin only).
func (h *CatalogHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteType(r.Context(), chi.URLParam(r, "type_id")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Type deleted"})
}

// ListCountries handles GET /countries requests.
func (h *CatalogHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.service.ListCountries(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, countries)
}
