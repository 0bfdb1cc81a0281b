// Package session keeps per-visitor UI state in memory.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordlens/internal/domain"
)

// Session is the controller-owned state of one visitor. State is safe for
// concurrent use on its own; the UI flags are guarded by the session lock.
type Session struct {
	State *domain.State

	mu           sync.Mutex
	query        string
	formError    bool
	fontMenuOpen bool
	lastSeen     time.Time
	lastTouched  time.Time
}

// Flags is a copy of the session's UI markers.
type Flags struct {
	Query        string
	FormError    bool
	FontMenuOpen bool
}

// Flags returns the current UI markers.
func (s *Session) Flags() Flags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Flags{Query: s.query, FormError: s.formError, FontMenuOpen: s.fontMenuOpen}
}

// SetQuery remembers the last searched word so the search box can show it.
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
}

// SetFormError sets or clears the search form error marker.
func (s *Session) SetFormError(v bool) {
	s.mu.Lock()
	s.formError = v
	s.mu.Unlock()
}

// SyncFormError sets the form error marker from the current lookup status
// and returns it. A lookup that lost to a newer one cannot leave a stale
// marker behind, because the status only reflects the latest settled lookup.
func (s *Session) SyncFormError() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formError = s.State.Status() == domain.StatusError
	return s.formError
}

// ToggleFontMenu flips the font menu and returns whether it is now open.
func (s *Session) ToggleFontMenu() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fontMenuOpen = !s.fontMenuOpen
	return s.fontMenuOpen
}

// CloseFontMenu closes the font menu if open.
func (s *Session) CloseFontMenu() {
	s.mu.Lock()
	s.fontMenuOpen = false
	s.mu.Unlock()
}

// TouchDue reports whether the visitor's persistent record should be
// refreshed, at most once per every. A true result is recorded immediately.
func (s *Session) TouchDue(now time.Time, every time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lastTouched.IsZero() && now.Sub(s.lastTouched) < every {
		return false
	}
	s.lastTouched = now
	return true
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Registry maps visitor IDs to sessions.
type Registry struct {
	log     *slog.Logger
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewRegistry creates an empty registry. Sessions untouched for idleTTL are
// removed by Sweep.
func NewRegistry(logger *slog.Logger, idleTTL time.Duration) *Registry {
	return &Registry{
		log:      logger.With("service", "session"),
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Get returns the visitor's session, creating an idle one on first use.
func (r *Registry) Get(visitorID uuid.UUID) *Session {
	now := r.now()

	r.mu.Lock()
	s, ok := r.sessions[visitorID]
	if !ok {
		s = &Session{State: domain.NewState()}
		r.sessions[visitorID] = s
	}
	r.mu.Unlock()

	s.touch(now)
	return s
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > r.idleTTL {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.DebugContext(ctx, "idle sessions evicted",
					slog.Int("removed", n),
					slog.Int("remaining", r.Len()),
				)
			}
		}
	}
}
