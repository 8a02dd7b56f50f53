package handler

// Response helpers shared by every handler in this package. All responses —
// success and failure — are JSON, and every error body has the same shape:
//
//	{"message": "Article not found with id abc123"}
//
// The frontend only ever reads `message`, so that's all we send. Status
// codes, not body fields, distinguish error kinds.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/portfolio-api/internal/apperror"
)

// ErrorResponse is the standard error body for all API endpoints.
type ErrorResponse struct {
	Message string `json:"message"`
}

// writeJSON sends a JSON response. Headers and status must go out before the
// body — once Encode writes, the headers are committed.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent at this point; logging is all we can do.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status and sends the body.
//
// This is the single place where the apperror taxonomy meets HTTP:
//
//	ErrValidation         → 400
//	ErrConflict           → 400 (duplicate username — API contract says 400, not 409)
//	ErrInvalidCredentials → 401
//	ErrUnauthenticated    → 401
//	ErrForbidden          → 403
//	ErrNotFound           → 404
//	anything else         → 500 with a generic message
//
// Unknown errors never leak their text to the client — raw store errors can
// contain SQL fragments or file paths.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrInvalidCredentials), errors.Is(err, apperror.ErrUnauthenticated):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}

		writeJSON(w, status, ErrorResponse{Message: appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Server error"})
}
