// Package app assembles the wordlens server from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wordlens/internal/adapter/provider/freedict"
	"github.com/heartmarshall/wordlens/internal/auth"
	"github.com/heartmarshall/wordlens/internal/config"
	"github.com/heartmarshall/wordlens/internal/render"
	"github.com/heartmarshall/wordlens/internal/service/lookup"
	"github.com/heartmarshall/wordlens/internal/service/preference"
	"github.com/heartmarshall/wordlens/internal/service/session"
	"github.com/heartmarshall/wordlens/internal/transport/middleware"
	"github.com/heartmarshall/wordlens/internal/transport/rest"
	"github.com/heartmarshall/wordlens/internal/transport/web"
)

// App is a fully wired server. Create it with New and release it with Close.
type App struct {
	cfg      *config.Config
	log      *slog.Logger
	handler  http.Handler
	sessions *session.Registry
	limiter  *middleware.RateLimiter
	close    func()
}

// New opens the preference store and wires services and handlers.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	dict := freedict.NewProvider(logger,
		freedict.WithBaseURL(cfg.Dictionary.BaseURL),
		freedict.WithTimeout(cfg.Dictionary.Timeout),
		freedict.WithRetries(cfg.Dictionary.Retries),
	)
	lookupSvc := lookup.NewService(logger, dict, cfg.Dictionary.BatchWait)
	prefSvc := preference.NewService(logger, store)
	sessions := session.NewRegistry(logger, cfg.Session.IdleTTL)

	renderer, err := render.New()
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("app: %w", err)
	}

	tokens := auth.NewVisitorTokens(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.CookieTTL)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	h := handlers{
		web:     web.NewController(lookupSvc, prefSvc, sessions, renderer, logger),
		entries: rest.NewEntryHandler(lookupSvc, logger),
		health:  rest.NewHealthHandler(store, cfg.Store.Driver, BuildVersion()),
	}

	return &App{
		cfg:      cfg,
		log:      logger,
		handler:  newRouter(cfg, logger, h, tokens, limiter),
		sessions: sessions,
		limiter:  limiter,
		close:    closeStore,
	}, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Close stops background work and releases the preference store.
func (a *App) Close() {
	a.limiter.Stop()
	a.close()
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully within the configured timeout.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.sessions.RunSweeper(gctx, a.cfg.Session.SweepInterval)
		return nil
	})

	g.Go(func() error {
		a.log.InfoContext(ctx, "http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app: listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		a.log.InfoContext(shutdownCtx, "shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app: shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Run loads configuration and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.InfoContext(ctx, "starting wordlens",
		slog.String("version", BuildVersion()),
		slog.String("store", cfg.Store.Driver),
		slog.String("log_level", cfg.Log.Level),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	start := time.Now()
	err = a.Serve(ctx)
	logger.Info("wordlens stopped", slog.Duration("uptime", time.Since(start)))
	return err
}
