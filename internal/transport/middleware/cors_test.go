package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/wordlens/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_Preflight(t *testing.T) {
	cfg := config.CORSConfig{
		AllowedOrigins:   "https://example.com",
		AllowedMethods:   "GET,OPTIONS",
		AllowedHeaders:   "Content-Type",
		AllowCredentials: true,
		MaxAge:           600,
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called for preflight")
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/entries/hello", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	CORS(cfg)(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_AllowedOriginFromList(t *testing.T) {
	cfg := config.CORSConfig{AllowedOrigins: "https://a.example, https://b.example"}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries/hello", nil)
	req.Header.Set("Origin", "https://b.example")
	rec := httptest.NewRecorder()
	CORS(cfg)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://b.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	cfg := config.CORSConfig{AllowedOrigins: "https://example.com"}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries/hello", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	CORS(cfg)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Wildcard(t *testing.T) {
	cfg := config.CORSConfig{AllowedOrigins: "*"}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries/hello", nil)
	req.Header.Set("Origin", "https://anything.example")
	rec := httptest.NewRecorder()
	CORS(cfg)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "https://anything.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
