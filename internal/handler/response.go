package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pearlvault/backend/internal/apperror"
	"github.com/pearlvault/backend/internal/logger"
)

// ErrorResponse represents a JSON error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error response with the given status code and message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to an HTTP response. AppErrors
// carry their own status and message; anything else is an internal error
// whose detail is logged but never sent to the client.
func respondServiceError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode >= http.StatusInternalServerError {
			logger.Error("service error", "error", appErr.Err, "status", appErr.StatusCode)
		}
		respondJSON(w, appErr.StatusCode, ErrorResponse{Error: appErr.Message, Field: appErr.Field})
		return
	}

	logger.Error("unhandled service error", "error", err)
	respondJSON(w, apperror.GetStatusCode(err), ErrorResponse{Error: "an internal error occurred"})
}

// splitAndTrim splits a string by separator and trims whitespace from each part.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseDecimal parses a string into a decimal.Decimal.
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
