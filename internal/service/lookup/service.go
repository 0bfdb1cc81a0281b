// Package lookup runs a dictionary lookup and records the outcome in a
// visitor's domain.State.
package lookup

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/provider"
)

// Texts shown when the dictionary could not be reached at all.
const (
	GenericTitle      = provider.FallbackTitle
	GenericMessage    = "Something went wrong. Please try again."
	GenericResolution = "Check your internet connection or try a different word."
)

type dictionaryProvider interface {
	FetchEntry(ctx context.Context, word string) (*domain.WordEntry, error)
}

// Service performs lookups against the dictionary provider.
type Service struct {
	log    *slog.Logger
	loader *dataloader.Loader[string, *domain.WordEntry]
}

// NewService creates a lookup service. Lookups of the same word started
// within batchWait of each other share one upstream request.
func NewService(logger *slog.Logger, dict dictionaryProvider, batchWait time.Duration) *Service {
	return &Service{
		log:    logger.With("service", "lookup"),
		loader: newEntryLoader(dict, batchWait),
	}
}

// Outcome is the result of one lookup, independent of any State.
// Exactly one of Entry and Error is set.
type Outcome struct {
	Entry *domain.WordEntry
	Error *domain.ErrorInfo
	// Unavailable reports that the dictionary could not be reached or
	// answered with something unreadable, as opposed to a definite
	// "no such word".
	Unavailable bool
}

// Status is the lookup status the outcome settles to.
func (o Outcome) Status() domain.Status {
	if o.Error != nil {
		return domain.StatusError
	}
	return domain.StatusSuccess
}

// Lookup queries the dictionary for word without touching any State.
func (s *Service) Lookup(ctx context.Context, word string) Outcome {
	entry, err := s.loader.Load(ctx, word)()
	if err == nil && entry == nil {
		err = provider.NewLookupError(0, "", "", "")
	}
	if err != nil {
		info, unavailable := s.errorInfo(ctx, word, err)
		return Outcome{Error: &info, Unavailable: unavailable}
	}
	return Outcome{Entry: entry}
}

// FetchWord moves state to loading, queries the dictionary and settles state
// to success or error. A settlement from a lookup that has since been
// superseded by a newer FetchWord on the same state is dropped.
//
// The returned status is the outcome of this lookup, whether or not it was
// applied.
func (s *Service) FetchWord(ctx context.Context, state *domain.State, word string) domain.Status {
	ticket := state.Begin()
	start := time.Now()

	out := s.Lookup(ctx, word)

	var applied bool
	if out.Error != nil {
		applied = state.SettleError(ticket, *out.Error)
	} else {
		applied = state.SettleSuccess(ticket, *out.Entry)
	}
	s.logOutcome(ctx, word, out.Status(), applied, start)
	return out.Status()
}

// errorInfo maps a fetch error to what the visitor sees. A LookupError keeps
// the dictionary's own wording; everything else is reported as a
// connectivity problem.
func (s *Service) errorInfo(ctx context.Context, word string, err error) (domain.ErrorInfo, bool) {
	var lookupErr *provider.LookupError
	if errors.As(err, &lookupErr) {
		return domain.ErrorInfo{
			Title:        lookupErr.Title,
			Message:      lookupErr.Message,
			Resolution:   lookupErr.Resolution,
			SearchedWord: word,
		}, false
	}

	s.log.WarnContext(ctx, "dictionary unreachable",
		slog.String("word", word),
		slog.String("error", err.Error()),
	)
	return domain.ErrorInfo{
		Title:        GenericTitle,
		Message:      GenericMessage,
		Resolution:   GenericResolution,
		SearchedWord: word,
	}, true
}

func (s *Service) logOutcome(ctx context.Context, word string, status domain.Status, applied bool, start time.Time) {
	attrs := []any{
		slog.String("word", word),
		slog.String("status", status.String()),
		slog.Duration("duration", time.Since(start)),
	}
	if !applied {
		s.log.InfoContext(ctx, "stale lookup result dropped", attrs...)
		return
	}
	s.log.DebugContext(ctx, "lookup settled", attrs...)
}
