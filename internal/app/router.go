package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordlens/internal/auth"
	"github.com/heartmarshall/wordlens/internal/config"
	"github.com/heartmarshall/wordlens/internal/transport/middleware"
	"github.com/heartmarshall/wordlens/internal/transport/rest"
	"github.com/heartmarshall/wordlens/internal/transport/web"
)

type handlers struct {
	web     *web.Controller
	entries *rest.EntryHandler
	health  *rest.HealthHandler
}

// newRouter mounts two stacks. The page stack identifies the visitor by
// cookie; the JSON and probe stack is anonymous and CORS-enabled. Both rate
// limit the routes that reach the dictionary.
func newRouter(
	cfg *config.Config,
	logger *slog.Logger,
	h handlers,
	tokens *auth.VisitorTokens,
	limiter *middleware.RateLimiter,
) http.Handler {
	search := limiter.Limit(cfg.RateLimit.SearchPerMinute)

	pageMux := http.NewServeMux()
	h.web.Register(pageMux, search)
	pages := middleware.Chain(
		middleware.RequestID(),
		middleware.Visitor(tokens, middleware.VisitorCookie{
			Name:        cfg.Session.CookieName,
			Secure:      cfg.Session.SecureCookie,
			RenewWithin: cfg.Session.CookieTTL / 2,
		}, logger),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)(pageMux)

	apiMux := http.NewServeMux()
	apiMux.Handle("GET /api/v1/entries/{word}", search(http.HandlerFunc(h.entries.Get)))
	apiMux.HandleFunc("GET /live", h.health.Live)
	apiMux.HandleFunc("GET /ready", h.health.Ready)
	apiMux.HandleFunc("GET /health", h.health.Health)
	api := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(apiMux)

	root := http.NewServeMux()
	root.Handle("/api/", api)
	root.Handle("/live", api)
	root.Handle("/ready", api)
	root.Handle("/health", api)
	root.Handle("/", pages)
	return root
}
