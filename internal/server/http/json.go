package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/and161185/task-keeper/internal/errs"
)

const maxBodyBytes = 64 << 10

type apiError struct {
	Message string            `json:"message"`
	Details []errs.FieldError `json:"details,omitempty"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: apiError{Message: msg}})
}

func writeValidationError(w http.ResponseWriter, ve *errs.ValidationError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: apiError{Message: "Invalid input", Details: ve.Fields}})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	defer func() { _ = r.Body.Close() }()

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Ensure there is no extra data after the first JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after JSON object")
	}
	return nil
}
