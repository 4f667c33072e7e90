package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"dining-reviews/internal/logging"
	"dining-reviews/internal/service"
	"dining-reviews/internal/validation"

	"github.com/go-chi/chi/v5/middleware"
)

type ErrorResponse struct {
	Error string `json:"error" example:"username is required"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debug().Err(err).Msg("failed to write response body")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// decodeJSON reads the request body into v and validates it.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidBody
	}
	return validation.ValidateStruct(v)
}

var errInvalidBody = errors.New("invalid request body")

// handleError maps a service or validation error to a response. Unexpected
// errors are logged and reported without detail.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *validation.RequestValidationError
	switch {
	case errors.Is(err, errInvalidBody):
		writeError(w, http.StatusBadRequest, "Invalid request body")
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logging.Error().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func missingParam(name string) error {
	return fmt.Errorf("%w: %s is required", service.ErrInvalidInput, name)
}
