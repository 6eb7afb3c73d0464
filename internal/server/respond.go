package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/tango/internal/api"
	"github.com/abhisek/tango/internal/logger"
	"github.com/abhisek/tango/internal/progress"
	"github.com/abhisek/tango/internal/store"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

var validate = validator.New()

// decodeAndValidate reads a JSON body into v and checks its validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return validate.Struct(v)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	log := logger.FromContext(r.Context())
	attrs := []any{
		"status_code", status,
		"path", r.URL.Path,
		"method", r.Method,
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	if status >= http.StatusInternalServerError {
		log.Error(message, attrs...)
	} else {
		log.Debug(message, attrs...)
	}
	respondJSON(w, status, api.ErrorResponse{Error: message})
}

// respondStoreError maps domain errors to HTTP statuses.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "not found", err)
	case errors.Is(err, progress.ErrUnknownSession):
		respondError(w, r, http.StatusNotFound, "unknown session", err)
	default:
		respondError(w, r, http.StatusInternalServerError, "internal error", err)
	}
}
