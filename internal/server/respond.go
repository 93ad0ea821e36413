package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sun-mit/streamhub/internal/shared"
)

// errorResponse is the JSON body for all non-2xx API responses.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), errorResponse{Error: err.Error()})
}

// errorStatus maps domain sentinel errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrMissingArgument),
		errors.Is(err, shared.ErrMissingCredentials):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrInvalidCredentials),
		errors.Is(err, shared.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, shared.ErrMovieNotFound),
		errors.Is(err, shared.ErrTrailerNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrAPIRequest),
		errors.Is(err, shared.ErrServiceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return shared.ErrInvalidInput
	}
	return nil
}
