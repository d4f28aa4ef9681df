// Package server provides the JSON HTTP API of the vocabulary service.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/term"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

// Handler serves the vocabulary API.
type Handler struct {
	vocab  vocabulary.Vocabulary
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewHandler creates a new Handler.
func NewHandler(vocab vocabulary.Vocabulary, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		vocab:  vocab,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	h.mount()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) mount() {
	h.mux.HandleFunc("POST /terms", h.handleCreateTerm)
	h.mux.HandleFunc("GET /terms", h.handleListTerms)
	h.mux.HandleFunc("DELETE /terms", h.handleDeleteTerms)
	h.mux.HandleFunc("GET /terms/{id}", h.handleGetTerm)
	h.mux.HandleFunc("PATCH /terms/{id}", h.handleUpdateTerm)
	h.mux.HandleFunc("POST /terms/{id}/strengthen", h.handleAdvance(memory.Strengthen))
	h.mux.HandleFunc("POST /terms/{id}/weaken", h.handleAdvance(memory.Weaken))
	h.mux.HandleFunc("PUT /terms/{id}/memory", h.handleOverrideMemory)
	h.mux.HandleFunc("GET /tags", h.handleListTags)
	h.mux.HandleFunc("POST /due", h.handleSelectDue)
}

// DeleteTermsRequest is the body of DELETE /terms.
type DeleteTermsRequest struct {
	IDs []int64 `json:"ids"`
}

func (h *Handler) handleCreateTerm(w http.ResponseWriter, r *http.Request) {
	var req vocabulary.NewTerm
	if err := readJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.vocab.CreateTerm(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleListTerms(w http.ResponseWriter, r *http.Request) {
	terms, err := h.vocab.ListTerms(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(terms))
}

func (h *Handler) handleDeleteTerms(w http.ResponseWriter, r *http.Request) {
	var req DeleteTermsRequest
	if err := readJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.vocab.DeleteTerms(r.Context(), req.IDs); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) handleGetTerm(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	t, err := h.vocab.GetTerm(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) handleUpdateTerm(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req term.Update
	if err := readJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	req.ID = id

	updated, err := h.vocab.UpdateTerm(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleAdvance(d memory.Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromRequest(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		t, err := h.vocab.AdvanceFamiliarity(r.Context(), id, d)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func (h *Handler) handleOverrideMemory(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req memory.Override
	if err := readJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	t, err := h.vocab.OverrideMemory(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.vocab.ListTags(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(tags))
}

func (h *Handler) handleSelectDue(w http.ResponseWriter, r *http.Request) {
	var req term.DueFilter
	if err := readJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	terms, err := h.vocab.SelectDue(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(terms))
}

func idFromRequest(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q must be a positive integer", vocabulary.ErrInvalidInput, raw)
	}
	return id, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
