package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordlens/internal/config"
	"github.com/heartmarshall/wordlens/internal/transport/rest"
)

const helloJSON = `[{
	"word": "hello",
	"phonetic": "/həˈləʊ/",
	"phonetics": [{"text": "/həˈləʊ/", "audio": "https://audio.example/hello.mp3"}],
	"meanings": [{
		"partOfSpeech": "noun",
		"definitions": [{"definition": "An utterance of hello; a greeting.", "example": "she was getting polite nods and hellos"}],
		"synonyms": ["greeting"]
	}],
	"sourceUrls": ["https://en.wiktionary.org/wiki/hello"]
}]`

type testEnv struct {
	server    *httptest.Server
	dictCalls *atomic.Int32
	dictDown  *atomic.Bool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	calls := &atomic.Int32{}
	down := &atomic.Bool{}
	dict := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if down.Load() {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "<html>bad gateway</html>")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/hello") {
			_, _ = io.WriteString(w, helloJSON)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"title":"No Definitions Found","message":"Sorry pal.","resolution":"Try the web."}`)
	}))
	t.Cleanup(dict.Close)

	cfg := &config.Config{
		Server:     config.ServerConfig{ShutdownTimeout: time.Second},
		Dictionary: config.DictionaryConfig{BaseURL: dict.URL, Timeout: 2 * time.Second},
		Store:      config.StoreConfig{Driver: config.StoreMemory},
		Session: config.SessionConfig{
			CookieName:    "wordlens_visitor",
			Secret:        "an-application-test-secret-of-sufficient-length",
			Issuer:        "wordlens",
			CookieTTL:     time.Hour,
			IdleTTL:       time.Hour,
			SweepInterval: time.Minute,
		},
		RateLimit: config.RateLimitConfig{SearchPerMinute: 100, CleanupInterval: time.Minute},
		Log:       config.LogConfig{Level: "error", Format: "json"},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,OPTIONS",
			AllowedHeaders: "Content-Type",
			MaxAge:         60,
		},
	}
	require.NoError(t, cfg.Validate())

	a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, dictCalls: calls, dictDown: down}
}

func (e *testEnv) browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func getBody(t *testing.T, c *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := c.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func postForm(t *testing.T, c *http.Client, url string, form url.Values) (int, string) {
	t.Helper()
	resp, err := c.PostForm(url, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestApp_FirstVisitSetsCookie(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, resp.Cookies(), 1)
	assert.Equal(t, "wordlens_visitor", resp.Cookies()[0].Name)
	assert.True(t, resp.Cookies()[0].HttpOnly)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestApp_SearchFlow(t *testing.T) {
	env := newTestEnv(t)
	c := env.browser(t)

	code, page := postForm(t, c, env.server.URL+"/search", url.Values{"word": {"hello"}})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "An utterance of hello; a greeting.")
	assert.Contains(t, page, `id="wordAudio"`)
	assert.Contains(t, page, `href="/search?word=greeting"`)

	code, page = postForm(t, c, env.server.URL+"/search", url.Values{"word": {"xyzzy"}})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Sorry pal. Try the web.")
	assert.Contains(t, page, `class="search-form form-error"`)

	_, fragment := getBody(t, c, env.server.URL+"/results")
	assert.Contains(t, fragment, "No Definitions Found")
}

func TestApp_PreferencesArePerVisitor(t *testing.T) {
	env := newTestEnv(t)
	alice, bob := env.browser(t), env.browser(t)

	_, page := postForm(t, alice, env.server.URL+"/theme", url.Values{})
	assert.Contains(t, page, `class="dark font-sans"`)

	_, page = postForm(t, alice, env.server.URL+"/font", url.Values{"font": {"serif"}})
	assert.Contains(t, page, `class="dark font-serif"`)

	_, page = getBody(t, bob, env.server.URL+"/")
	assert.Contains(t, page, `class="light font-sans"`)

	_, page = getBody(t, alice, env.server.URL+"/")
	assert.Contains(t, page, `class="dark font-serif"`)
}

func TestApp_EntriesAPI(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/api/v1/entries/hello")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Cookies(), "the JSON API does not mint visitors")

	var body rest.EntryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Word)
	assert.Equal(t, "hello", body.Word.Word)

	code, _ := getBody(t, http.DefaultClient, env.server.URL+"/api/v1/entries/xyzzy")
	assert.Equal(t, http.StatusNotFound, code)

	env.dictDown.Store(true)
	code, _ = getBody(t, http.DefaultClient, env.server.URL+"/api/v1/entries/hello")
	assert.Equal(t, http.StatusBadGateway, code)
}

func TestApp_NoResultCaching(t *testing.T) {
	env := newTestEnv(t)

	getBody(t, http.DefaultClient, env.server.URL+"/api/v1/entries/hello")
	getBody(t, http.DefaultClient, env.server.URL+"/api/v1/entries/hello")

	assert.Equal(t, int32(2), env.dictCalls.Load())
}

func TestApp_CORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodOptions, env.server.URL+"/api/v1/entries/hello", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://elsewhere.example")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://elsewhere.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, int32(0), env.dictCalls.Load())
}

func TestApp_HealthProbes(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/live", "/ready"} {
		code, _ := getBody(t, http.DefaultClient, env.server.URL+path)
		assert.Equal(t, http.StatusOK, code, path)
	}

	code, body := getBody(t, http.DefaultClient, env.server.URL+"/health")
	require.Equal(t, http.StatusOK, code)

	var resp rest.HealthResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, config.StoreMemory, resp.Components["preferences"].Driver)
	assert.Equal(t, BuildVersion(), resp.Version)
}
