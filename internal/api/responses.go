package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "resumeqa/web/internal/errors"
)

// This file contains shared DTOs for the JSON API and helper functions for
// sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FormatRequest is the body of the formatter preview endpoint.
type FormatRequest struct {
	Text string `json:"text" validate:"required,max=200000" example:"**Go** and *Docker*"`
}

// FormatResponse carries the rendered fragment.
type FormatResponse struct {
	HTML string `json:"html" example:"<strong>Go</strong> and <em>Docker</em>"`
}

// respondWithError maps business-layer errors to HTTP status codes and writes
// a standard JSON error response.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation messages are already user-facing.
		message = err.Error()
	case errors.Is(err, app_errors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "Session expired. Please login again."
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrNoSession), errors.Is(err, app_errors.ErrNoDocuments), errors.Is(err, app_errors.ErrStale):
		statusCode = http.StatusConflict
		message = err.Error()
	case errors.Is(err, app_errors.ErrBackend):
		statusCode = http.StatusBadGateway
		message = "The backend service could not complete the request."
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
