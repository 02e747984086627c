package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rzbill/flake/internal/services/registration"
	"github.com/rzbill/flake/pkg/id"
)

// Helper functions for common HTTP responses

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a 200 JSON response with the given data.
func writeJSON(w http.ResponseWriter, data any) {
	writeJSONStatus(w, http.StatusOK, data)
}

func writeJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// statusFor maps service and generator errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, registration.ErrInvalidArgument), errors.Is(err, id.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, registration.ErrRejected):
		return http.StatusForbidden
	case errors.Is(err, registration.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, registration.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, registration.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, id.ErrClockRegression), errors.Is(err, id.ErrBeforeEpoch), errors.Is(err, id.ErrTimestampOverflow):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// writeServiceError writes err with the status from statusFor. Internal
// errors are not echoed to the client.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeError(w, status, msg)
}

// parseCount parses the count query parameter. Empty means 1.
func parseCount(s string, limit int) (int, bool) {
	if s == "" {
		return 1, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > limit {
		return 0, false
	}
	return n, true
}
