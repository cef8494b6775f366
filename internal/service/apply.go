// Package service composes the lower-level components into the operations
// the CLI, control API, and scheduler share.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/tingeapp/tinge/internal/models"
	"github.com/tingeapp/tinge/internal/notify"
	"github.com/tingeapp/tinge/internal/repository"
	"github.com/tingeapp/tinge/internal/store"
	"github.com/tingeapp/tinge/internal/switcher"
)

// ApplyService performs a theme switch plus its side effects: notification
// dispatch and history recording. Every entry point (CLI, API, scheduler)
// goes through the same instance so applies stay serialized.
type ApplyService struct {
	themes   *store.Store
	switcher *switcher.Switcher
	notifier *notify.Dispatcher
	history  repository.HistoryRepository
	logger   *slog.Logger
}

// NewApplyService creates an apply service. history may be nil when history
// is disabled.
func NewApplyService(themes *store.Store, sw *switcher.Switcher, notifier *notify.Dispatcher, history repository.HistoryRepository) *ApplyService {
	return &ApplyService{
		themes:   themes,
		switcher: sw,
		notifier: notifier,
		history:  history,
		logger:   slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (s *ApplyService) WithLogger(logger *slog.Logger) *ApplyService {
	s.logger = logger
	return s
}

// Apply switches to the theme and runs the post-commit side effects. The
// switch itself is the only fallible step; notification and history failures
// are logged and swallowed.
func (s *ApplyService) Apply(ctx context.Context, id string, trigger models.ApplyTrigger) (*models.Theme, error) {
	theme, err := s.themes.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	events, err := s.switcher.Apply(ctx, theme.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Dispatch(ctx, events)
	}
	if s.history != nil {
		rec := &models.ApplyRecord{
			ThemeID:   theme.ID,
			ThemeName: theme.Name,
			Trigger:   trigger,
			AppliedAt: time.Now(),
		}
		if err := s.history.Record(ctx, rec); err != nil {
			s.logger.Warn("recording apply history failed",
				slog.String("theme", theme.ID),
				slog.String("error", err.Error()))
		}
	}

	return theme, nil
}

// ActiveID returns the currently active theme id, or "".
func (s *ApplyService) ActiveID() string {
	return s.switcher.ActiveID()
}

// State returns a copy of the persisted active-theme state.
func (s *ApplyService) State() models.ActiveThemeState {
	return s.switcher.State()
}
