package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Pranavupp12/review-platform/internal/infrastructure/observability"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an application error to its HTTP status.
// Internal details are logged, never returned.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
			return
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		case apperrors.ErrorTypeProviderUnavailable, apperrors.ErrorTypeProviderTimeout:
			respondWithError(w, http.StatusServiceUnavailable, "search assistant unavailable")
			return
		}
	}

	observability.LoggerFromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
