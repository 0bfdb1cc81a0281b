package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/service/lookup"
)

type entryLookupMock struct {
	LookupFunc func(ctx context.Context, word string) lookup.Outcome
}

func (m *entryLookupMock) Lookup(ctx context.Context, word string) lookup.Outcome {
	return m.LookupFunc(ctx, word)
}

func serveEntry(t *testing.T, mock *entryLookupMock, path string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewEntryHandler(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/entries/{word}", h.Get)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestEntryHandler_Found(t *testing.T) {
	t.Parallel()

	var gotWord string
	mock := &entryLookupMock{LookupFunc: func(_ context.Context, word string) lookup.Outcome {
		gotWord = word
		return lookup.Outcome{Entry: &domain.WordEntry{Word: word}}
	}}

	rec := serveEntry(t, mock, "/api/v1/entries/ice%20cream")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ice cream", gotWord)

	var resp EntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, domain.StatusSuccess, resp.Status)
	require.NotNil(t, resp.Word)
	assert.Equal(t, "ice cream", resp.Word.Word)
	assert.Nil(t, resp.Error)
}

func TestEntryHandler_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		outcome  lookup.Outcome
		wantCode int
	}{
		{
			name:     "no such word",
			outcome:  lookup.Outcome{Error: &domain.ErrorInfo{Title: "No Definitions Found", SearchedWord: "xyzzy"}},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "dictionary unreachable",
			outcome:  lookup.Outcome{Error: &domain.ErrorInfo{Title: lookup.GenericTitle, SearchedWord: "xyzzy"}, Unavailable: true},
			wantCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &entryLookupMock{LookupFunc: func(context.Context, string) lookup.Outcome { return tt.outcome }}

			rec := serveEntry(t, mock, "/api/v1/entries/xyzzy")

			require.Equal(t, tt.wantCode, rec.Code)
			var resp EntryResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, domain.StatusError, resp.Status)
			assert.Nil(t, resp.Word)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "xyzzy", resp.Error.SearchedWord)
		})
	}
}

func TestEntryHandler_BlankWord(t *testing.T) {
	t.Parallel()

	mock := &entryLookupMock{LookupFunc: func(context.Context, string) lookup.Outcome {
		t.Fatal("lookup should not run for a blank word")
		return lookup.Outcome{}
	}}

	rec := serveEntry(t, mock, "/api/v1/entries/%20%20")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"word is required"}`, rec.Body.String())
}
