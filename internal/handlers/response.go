package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"video-hub/internal/apperror"

	"github.com/rs/zerolog"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

// writeError maps an apperror kind to its status code. Anything that is not an
// AppError is logged and reported as a bare 500.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		logger.Error().Err(err).Msg("unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "internal_error",
			Message: "Internal server error",
		})
		return
	}

	status := statusFor(appErr.Kind)
	if status >= http.StatusInternalServerError && !errors.Is(err, apperror.ErrInvalidOperation) {
		logger.Error().Err(err).Str("code", appErr.Code()).Msg("request failed")
	}
	writeJSON(w, status, errorResponse{Error: appErr.Code(), Message: appErr.Message})
}

func statusFor(kind error) int {
	switch kind {
	case apperror.ErrBadRequest:
		return http.StatusBadRequest
	case apperror.ErrNotFound:
		return http.StatusNotFound
	case apperror.ErrConflict:
		return http.StatusConflict
	case apperror.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperror.ErrRateLimited:
		return http.StatusTooManyRequests
	default:
		// InvalidOperation stays a server error; existing clients key on it.
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.BadRequest("invalid request body")
	}
	return nil
}
