package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/provider"
)

const (
	defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	defaultTimeout = 10 * time.Second
	retryDelay     = 500 * time.Millisecond
	maxBodyBytes   = 4 << 20
)

// Provider fetches dictionary data from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	log        *slog.Logger
}

// Option customizes a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API base URL (tests, mirrors).
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) { p.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) { p.httpClient.Timeout = d }
}

// WithRetries sets how many extra attempts follow a 5xx or network error.
func WithRetries(n int) Option {
	return func(p *Provider) { p.retries = n }
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.httpClient = c }
}

// NewProvider creates a Provider with the default FreeDictionary API URL
// and no retries.
func NewProvider(logger *slog.Logger, opts ...Option) *Provider {
	p := &Provider{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.With("adapter", "freedict"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchEntry fetches the first dictionary entry for the given word.
//
// A non-2xx response with a JSON body yields a *provider.LookupError.
// Transport failures (and undecodable error bodies) wrap domain.ErrUnavailable.
// A 2xx response that cannot be decoded wraps provider.ErrMalformedResponse.
func (p *Provider) FetchEntry(ctx context.Context, word string) (*domain.WordEntry, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, word)
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freedict: request failed: %w: %w", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("freedict: read body: %w: %w", domain.ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, p.lookupFailure(ctx, word, resp.StatusCode, body)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: decode json: %w: %w", provider.ErrMalformedResponse, err)
	}
	if len(entries) == 0 {
		return nil, provider.NewLookupError(resp.StatusCode, "", "", "")
	}

	entry := entries[0].toDomain()

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("entries", len(entries)),
		slog.Int("meanings", len(entry.Meanings)),
		slog.Int("phonetics", len(entry.Phonetics)),
	)

	return &entry, nil
}

// lookupFailure converts a non-2xx response into an error.
func (p *Provider) lookupFailure(ctx context.Context, word string, status int, body []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		p.log.WarnContext(ctx, "freedict error body not decodable",
			slog.String("word", word),
			slog.Int("status", status),
		)
		return fmt.Errorf("freedict: unexpected status %d: %w", status, domain.ErrUnavailable)
	}

	p.log.DebugContext(ctx, "freedict lookup failed",
		slog.String("word", word),
		slog.Int("status", status),
		slog.String("title", apiErr.Title),
	)
	return provider.NewLookupError(status, apiErr.Title, apiErr.Message, apiErr.Resolution)
}

// doWithRetry executes the request, retrying up to p.retries times on 5xx or
// network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	for attempt := 1; attempt <= p.retries; attempt++ {
		shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
		if !shouldRetry {
			return resp, err
		}

		// Don't retry if context is already cancelled.
		if ctx.Err() != nil {
			return resp, err
		}

		reason := "network error"
		if err == nil && resp != nil {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
		}
		p.log.WarnContext(ctx, "freedict retry",
			slog.String("word", word),
			slog.String("reason", reason),
			slog.Int("attempt", attempt),
		)

		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}

		resp, err = p.httpClient.Do(req)
	}

	return resp, err
}
