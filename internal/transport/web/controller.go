// Package web serves the dictionary page. Every state change is a POST that
// redirects back to GET /, so the page always renders from session state.
package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/render"
	"github.com/heartmarshall/wordlens/internal/service/session"
	"github.com/heartmarshall/wordlens/pkg/ctxutil"
)

const (
	maxFormBytes = 4 << 10
	touchEvery   = time.Hour
)

type lookupService interface {
	FetchWord(ctx context.Context, state *domain.State, word string) domain.Status
}

type preferenceService interface {
	Load(ctx context.Context, visitorID uuid.UUID) (domain.Preferences, error)
	ToggleTheme(ctx context.Context, visitorID uuid.UUID) (domain.Theme, error)
	SaveFont(ctx context.Context, visitorID uuid.UUID, font domain.Font) error
	Touch(ctx context.Context, visitorID uuid.UUID) error
}

type sessionStore interface {
	Get(visitorID uuid.UUID) *session.Session
}

type pageRenderer interface {
	WritePage(w io.Writer, view render.PageView) error
	WriteResults(w io.Writer, snap domain.Snapshot) error
}

// Controller wires visitor actions to the lookup and preference services.
type Controller struct {
	lookup   lookupService
	prefs    preferenceService
	sessions sessionStore
	render   pageRenderer
	log      *slog.Logger
}

// NewController creates a Controller.
func NewController(
	lookup lookupService,
	prefs preferenceService,
	sessions sessionStore,
	renderer pageRenderer,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		lookup:   lookup,
		prefs:    prefs,
		sessions: sessions,
		render:   renderer,
		log:      logger.With("handler", "web"),
	}
}

// Register mounts the page routes on mux. search wraps the handlers that
// reach the dictionary, typically with a rate limiter; nil leaves them bare.
func (c *Controller) Register(mux *http.ServeMux, search func(http.Handler) http.Handler) {
	if search == nil {
		search = func(h http.Handler) http.Handler { return h }
	}

	mux.HandleFunc("GET /{$}", c.Page)
	mux.HandleFunc("GET /results", c.Results)
	mux.Handle("POST /search", search(http.HandlerFunc(c.Search)))
	mux.Handle("GET /search", search(http.HandlerFunc(c.Search)))
	mux.HandleFunc("POST /input", c.Input)
	mux.HandleFunc("POST /theme", c.ToggleTheme)
	mux.HandleFunc("POST /font/menu", c.ToggleFontMenu)
	mux.HandleFunc("POST /font", c.SelectFont)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(render.Static())))
}

// Page renders the full document.
// GET /
func (c *Controller) Page(w http.ResponseWriter, r *http.Request) {
	visitorID, sess, ok := c.visitor(w, r)
	if !ok {
		return
	}

	prefs, err := c.prefs.Load(r.Context(), visitorID)
	if err != nil {
		c.log.WarnContext(r.Context(), "load preferences, using defaults", slog.String("error", err.Error()))
	}
	if sess.TouchDue(time.Now(), touchEvery) {
		if err := c.prefs.Touch(r.Context(), visitorID); err != nil {
			c.log.WarnContext(r.Context(), "touch visitor", slog.String("error", err.Error()))
		}
	}

	flags := sess.Flags()
	view := render.PageView{
		Theme:        prefs.Theme,
		Font:         prefs.Font,
		FontMenuOpen: flags.FontMenuOpen,
		FormError:    flags.FormError,
		Query:        flags.Query,
		Results:      sess.State.Snapshot(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := c.render.WritePage(w, view); err != nil {
		c.renderFailed(w, r, err)
	}
}

// Results renders only the results region.
// GET /results
func (c *Controller) Results(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := c.visitor(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := c.render.WriteResults(w, sess.State.Snapshot()); err != nil {
		c.renderFailed(w, r, err)
	}
}

// Search looks up the submitted word. Blank input changes nothing. The form
// error marker follows the visitor's final lookup status, not the outcome of
// this request, so a slower superseded lookup cannot flag the form.
// POST /search (form field "word"), GET /search?word= (synonym links)
func (c *Controller) Search(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := c.visitor(w, r)
	if !ok {
		return
	}
	sess.CloseFontMenu()

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	word := domain.NormalizeQuery(r.FormValue("word"))
	if word == "" {
		redirectHome(w, r)
		return
	}

	sess.SetFormError(false)
	sess.SetQuery(word)
	c.lookup.FetchWord(r.Context(), sess.State, word)
	sess.SyncFormError()

	redirectHome(w, r)
}

// Input clears the form error marker once the visitor edits the search box.
// The page script calls it in the background, so it answers 204.
// POST /input
func (c *Controller) Input(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := c.visitor(w, r)
	if !ok {
		return
	}
	sess.CloseFontMenu()
	sess.SetFormError(false)
	w.WriteHeader(http.StatusNoContent)
}

// ToggleTheme flips and persists the theme.
// POST /theme
func (c *Controller) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	visitorID, sess, ok := c.visitor(w, r)
	if !ok {
		return
	}
	sess.CloseFontMenu()

	if _, err := c.prefs.ToggleTheme(r.Context(), visitorID); err != nil {
		c.log.ErrorContext(r.Context(), "toggle theme", slog.String("error", err.Error()))
	}
	redirectHome(w, r)
}

// ToggleFontMenu opens or closes the font menu.
// POST /font/menu
func (c *Controller) ToggleFontMenu(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := c.visitor(w, r)
	if !ok {
		return
	}
	sess.ToggleFontMenu()
	redirectHome(w, r)
}

// SelectFont persists the chosen font and closes the menu.
// POST /font (form field "font")
func (c *Controller) SelectFont(w http.ResponseWriter, r *http.Request) {
	visitorID, sess, ok := c.visitor(w, r)
	if !ok {
		return
	}
	sess.CloseFontMenu()

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	font := domain.Font(r.FormValue("font"))

	if err := c.prefs.SaveFont(r.Context(), visitorID, font); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c.log.ErrorContext(r.Context(), "save font", slog.String("error", err.Error()))
	}
	redirectHome(w, r)
}

func (c *Controller) visitor(w http.ResponseWriter, r *http.Request) (uuid.UUID, *session.Session, bool) {
	visitorID, ok := ctxutil.VisitorIDFromCtx(r.Context())
	if !ok {
		c.log.ErrorContext(r.Context(), "request without visitor id")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return uuid.Nil, nil, false
	}
	return visitorID, c.sessions.Get(visitorID), true
}

func (c *Controller) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	c.log.ErrorContext(r.Context(), "render page", slog.String("error", err.Error()))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
