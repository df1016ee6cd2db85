package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pourpal/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already written; encoding errors cannot be reported
	// to the client at this point.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Message: message})
}

// writeServiceError maps a service error to its HTTP status. Domain errors
// carry a stable code; everything else is an internal error.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case model.ErrCodeCartNotFound, model.ErrCodeItemNotFound, model.ErrCodeBrandNotFound,
		model.ErrCodeTypeNotFound, model.ErrCodeUserNotFound:
		status = http.StatusNotFound
	case model.ErrCodeEmptyCart, model.ErrCodeInsufficientStock, model.ErrCodeInvalidQuantity,
		model.ErrCodeQuantityTooLow, model.ErrCodeMissingField, model.ErrCodeInvalidReference:
		status = http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		status = http.StatusUnauthorized
	case model.ErrCodeForbidden:
		status = http.StatusForbidden
	case model.ErrCodeAlreadyExists:
		status = http.StatusConflict
	}

	writeError(w, status, domainErr.Message, logger)
}

// bearerToken extracts the value of a "Bearer" Authorization header, or ""
// when the header is missing or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// pageRequest reads page_size and page_number query parameters.
func pageRequest(r *http.Request) model.PageRequest {
	var page model.PageRequest
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil {
		page.PageSize = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_number")); err == nil {
		page.PageNumber = v
	}
	return page.Normalize()
}
