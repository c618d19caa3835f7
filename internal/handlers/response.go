package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"outliner/internal/contextutil"
	"outliner/internal/linkedcopy"
	"outliner/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ctx := r.Context()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// conflictNotices are linked copy errors caused by the state of the vault
// rather than by the request itself.
var conflictNotices = []error{
	linkedcopy.ErrFeatureDisabled,
	linkedcopy.ErrNoRecentCopy,
	linkedcopy.ErrCannotMirrorMirror,
	linkedcopy.ErrMirrorInsideSelf,
	linkedcopy.ErrSourceLineNotFound,
	linkedcopy.ErrSourceChanged,
}

// handleServiceError maps service and linked copy errors to status codes.
// Linked copy notices are user-facing, so their text is passed through.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(ctx, "validation error", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, linkedcopy.ErrNotOnMirror),
		errors.Is(err, linkedcopy.ErrNotOnMirrorLine):
		logger.WarnContext(ctx, "invalid input", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, linkedcopy.ErrSourceFileNotFound),
		errors.Is(err, linkedcopy.ErrOriginalNotFound):
		logger.WarnContext(ctx, "not found", "error", err)
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	for _, notice := range conflictNotices {
		if errors.Is(err, notice) {
			logger.InfoContext(ctx, "linked copy notice", "error", err)
			writeError(w, http.StatusConflict, err.Error())
			return
		}
	}

	logger.ErrorContext(ctx, "service error", "error", err)
	writeError(w, http.StatusInternalServerError, defaultMsg)
}

// requireMethod writes a 405 and reports false when r does not use method.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	ctx := r.Context()
	contextutil.LoggerFromContext(ctx).WarnContext(ctx, "method not allowed", "method", r.Method)
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}
