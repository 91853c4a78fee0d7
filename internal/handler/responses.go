package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adudhe01/runroom/internal/domain"
)

// MessageResponse is the error envelope the front end expects: every failure
// body is {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondJSON sends a JSON response with the given status code and payload.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode through a pooled buffer so a marshal failure never produces a
	// half-written body.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, MessageResponse{Message: message})
}

// mapServiceErrorToUserMessage maps domain errors to an HTTP status and a
// message the front end can display.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInsufficientPoints):
		return http.StatusBadRequest, ErrMsgNotEnoughPoints
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, ErrMsgEmailInUse
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, ErrMsgInvalidCredentials
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgInvalidAuthToken
	case errors.Is(err, domain.ErrStravaNotConnected):
		return http.StatusBadRequest, ErrMsgStravaNotConnected
	case errors.Is(err, domain.ErrNoRefreshToken):
		return http.StatusBadRequest, ErrMsgStravaNotConnected
	case errors.Is(err, domain.ErrProviderAuthFailure):
		return http.StatusInternalServerError, ErrMsgStravaSyncFailed
	case errors.Is(err, domain.ErrProviderSyncFailure):
		return http.StatusInternalServerError, ErrMsgStravaSyncFailed
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequest
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError maps a service error and writes the response.
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}
