// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/preilly17/VacationSync-sub009/internal/amadeus"
	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// DefaultTimeout bounds request handling across all routes.
const DefaultTimeout = 30 * time.Second

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors onto HTTP status codes. Validation
// sentinels keep their message; unknown errors hide behind a generic 500.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	var validationErr *amadeus.ValidationError
	switch {
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrInvalidAmount),
		util.IsError(err, util.ErrInvalidParticipants),
		util.IsError(err, util.ErrInvalidRate):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.As(err, &validationErr):
		statusCode = http.StatusBadRequest
		message = validationErr.Message
	case util.IsError(err, util.ErrNotFound),
		util.IsError(err, util.ErrExpenseNotFound),
		util.IsError(err, util.ErrParticipantNotFound),
		util.IsError(err, util.ErrTripNotFound),
		util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = err.Error()
	case util.IsError(err, util.ErrInvalidCredentials), util.IsError(err, util.ErrInvalidSession):
		statusCode = http.StatusUnauthorized
		message = err.Error()
	case util.IsError(err, util.ErrNotTripMember):
		statusCode = http.StatusForbidden
		message = err.Error()
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(w, logger, statusCode, map[string]string{"error": message})
}
