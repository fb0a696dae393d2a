package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// maxBodyBytes caps request bodies. Plot polygons with tens of thousands
// of points fit comfortably.
const maxBodyBytes = 10 << 20

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends {"ok":false,"error":message} with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{OK: false, Error: message})
}

// readJSON decodes the request body into a T. A missing or syntactically
// malformed body yields the zero T, the same as an empty object. A body
// over maxBodyBytes gets 413 and a field of the wrong JSON type gets 400;
// in both cases the error response is already written and ok is false.
func readJSON[T any](w http.ResponseWriter, r *http.Request) (v T, ok bool) {
	if r.Body == nil {
		return v, true
	}

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&v)
	if err == nil {
		return v, true
	}

	var tooLarge *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "cuerpo de la solicitud demasiado grande")
		return v, false
	case errors.As(err, &typeErr):
		writeError(w, http.StatusBadRequest, "tipo inválido para el campo "+typeErr.Field)
		return v, false
	}

	if err != io.EOF {
		slog.Debug("ignoring unreadable request body", "path", r.URL.Path, "error", err)
	}
	var zero T
	return zero, true
}
