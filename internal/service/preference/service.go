// Package preference reads and writes visitor display preferences.
package preference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordlens/internal/domain"
)

type preferenceRepo interface {
	Get(ctx context.Context, visitorID uuid.UUID, key string) (string, error)
	GetAll(ctx context.Context, visitorID uuid.UUID) (map[string]string, error)
	Set(ctx context.Context, visitorID uuid.UUID, key, value string) error
	Touch(ctx context.Context, visitorID uuid.UUID) error
}

// Service implements the preference store on top of a key/value repo.
type Service struct {
	log  *slog.Logger
	repo preferenceRepo
}

// NewService creates a new preference service.
func NewService(logger *slog.Logger, repo preferenceRepo) *Service {
	return &Service{
		log:  logger.With("service", "preference"),
		repo: repo,
	}
}

// GetStoredTheme returns the visitor's theme, or light when nothing usable is
// stored. On a repo failure the default is returned together with the error.
func (s *Service) GetStoredTheme(ctx context.Context, visitorID uuid.UUID) (domain.Theme, error) {
	raw, err := s.get(ctx, visitorID, domain.ThemeKey)
	if err != nil {
		return domain.DefaultTheme, err
	}
	return themeOrDefault(raw), nil
}

// SaveTheme validates and persists the theme.
func (s *Service) SaveTheme(ctx context.Context, visitorID uuid.UUID, theme domain.Theme) error {
	if err := validatorInstance().Struct(themeInput{Theme: string(theme)}); err != nil {
		return toValidationError(err)
	}
	return s.set(ctx, visitorID, domain.ThemeKey, string(theme))
}

// ToggleTheme flips the stored theme, persists it and returns the new value.
func (s *Service) ToggleTheme(ctx context.Context, visitorID uuid.UUID) (domain.Theme, error) {
	current, err := s.GetStoredTheme(ctx, visitorID)
	if err != nil {
		s.log.WarnContext(ctx, "read theme before toggle failed, assuming default",
			slog.String("visitor_id", visitorID.String()),
			slog.String("error", err.Error()),
		)
	}

	next := current.Toggle()
	if err := s.SaveTheme(ctx, visitorID, next); err != nil {
		return current, err
	}
	return next, nil
}

// GetStoredFont returns the visitor's font, or sans when nothing usable is
// stored. On a repo failure the default is returned together with the error.
func (s *Service) GetStoredFont(ctx context.Context, visitorID uuid.UUID) (domain.Font, error) {
	raw, err := s.get(ctx, visitorID, domain.FontKey)
	if err != nil {
		return domain.DefaultFont, err
	}
	return fontOrDefault(raw), nil
}

// SaveFont validates and persists the font.
func (s *Service) SaveFont(ctx context.Context, visitorID uuid.UUID, font domain.Font) error {
	if err := validatorInstance().Struct(fontInput{Font: string(font)}); err != nil {
		return toValidationError(err)
	}
	return s.set(ctx, visitorID, domain.FontKey, string(font))
}

// Load returns both preferences in one repo round trip.
func (s *Service) Load(ctx context.Context, visitorID uuid.UUID) (domain.Preferences, error) {
	all, err := s.repo.GetAll(ctx, visitorID)
	if err != nil {
		return domain.DefaultPreferences(), fmt.Errorf("preference: load: %w", err)
	}
	return domain.Preferences{
		Theme: themeOrDefault(all[domain.ThemeKey]),
		Font:  fontOrDefault(all[domain.FontKey]),
	}, nil
}

// Touch records that the visitor is still active so their preferences
// survive pruning.
func (s *Service) Touch(ctx context.Context, visitorID uuid.UUID) error {
	if err := s.repo.Touch(ctx, visitorID); err != nil {
		return fmt.Errorf("preference: touch: %w", err)
	}
	return nil
}

func (s *Service) get(ctx context.Context, visitorID uuid.UUID, key string) (string, error) {
	raw, err := s.repo.Get(ctx, visitorID, key)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("preference: get %s: %w", key, err)
	}
	return raw, nil
}

func (s *Service) set(ctx context.Context, visitorID uuid.UUID, key, value string) error {
	if err := s.repo.Set(ctx, visitorID, key, value); err != nil {
		return fmt.Errorf("preference: set %s: %w", key, err)
	}
	s.log.DebugContext(ctx, "preference saved",
		slog.String("visitor_id", visitorID.String()),
		slog.String("key", key),
		slog.String("value", value),
	)
	return nil
}

// Stored values written by older builds or by hand may be garbage; treat
// them as absent.
func themeOrDefault(raw string) domain.Theme {
	if t := domain.Theme(raw); t.IsValid() {
		return t
	}
	return domain.DefaultTheme
}

func fontOrDefault(raw string) domain.Font {
	if f := domain.Font(raw); f.IsValid() {
		return f
	}
	return domain.DefaultFont
}
