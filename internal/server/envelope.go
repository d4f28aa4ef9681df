package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

// Envelope wraps every response body.
type Envelope[T any] struct {
	Result bool   `json:"result"`
	Data   T      `json:"data"`
	Error  string `json:"error,omitempty"`
}

// errBadRequest marks a request that could not be decoded.
var errBadRequest = errors.New("bad request")

func readJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Join(errBadRequest, err)
	}
	return nil
}

func writeJSON[T any](w http.ResponseWriter, status int, data T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope[T]{Result: true, Data: data}); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// writeError maps err onto a status code and a failed envelope. Storage failures are
// reported without their cause.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	switch {
	case errors.Is(err, vocabulary.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, vocabulary.ErrInvalidInput), errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
		message = err.Error()
	}

	level := slog.LevelInfo
	if status == http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request error",
		"error", err,
		"method", r.Method,
		"url", r.URL.String(),
		"status", status,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope[any]{Result: false, Error: message}); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}
