package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/service/lookup"
)

type entryLookup interface {
	Lookup(ctx context.Context, word string) lookup.Outcome
}

// EntryHandler exposes dictionary lookups as JSON.
type EntryHandler struct {
	lookup entryLookup
	log    *slog.Logger
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(lookup entryLookup, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{lookup: lookup, log: logger.With("handler", "entries")}
}

// EntryResponse mirrors the page's results region.
type EntryResponse struct {
	Status domain.Status     `json:"status"`
	Word   *domain.WordEntry `json:"word,omitempty"`
	Error  *domain.ErrorInfo `json:"error,omitempty"`
}

// Get looks up one word. 200 with the entry, 404 when the dictionary has no
// such word, 502 when the dictionary could not be reached.
// GET /api/v1/entries/{word}
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	word := domain.NormalizeQuery(r.PathValue("word"))
	if word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}

	out := h.lookup.Lookup(r.Context(), word)

	code := http.StatusOK
	switch {
	case out.Unavailable:
		code = http.StatusBadGateway
	case out.Error != nil:
		code = http.StatusNotFound
	}

	writeJSON(w, code, EntryResponse{
		Status: out.Status(),
		Word:   out.Entry,
		Error:  out.Error,
	})
}
