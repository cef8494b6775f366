// Package switcher implements the active-theme switch: an atomic symlink
// repoint plus the small persisted state that tracks which theme is current.
// Side effects toward collaborators are returned as post-commit events, never
// run inline, so the switch's success contract cannot depend on them.
package switcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tingeapp/tinge/internal/models"
	"github.com/tingeapp/tinge/internal/state"
	"github.com/tingeapp/tinge/internal/store"
)

// CurrentLinkName is the symlink name inside the current directory.
const CurrentLinkName = "theme"

// EventType identifies one post-commit side effect.
type EventType string

const (
	// EventDesktopNotification asks for a "theme applied" desktop notification.
	EventDesktopNotification EventType = "desktop-notification"
	// EventEditorReload signals editors to reload their colorscheme.
	EventEditorReload EventType = "editor-reload"
	// EventTerminalReload signals terminals to re-read their config.
	EventTerminalReload EventType = "terminal-reload"
	// EventHookScript invokes the user-configured hook script.
	EventHookScript EventType = "hook-script"
)

// Event is one fire-and-forget notification emitted after a successful apply.
type Event struct {
	Type      EventType
	ThemeID   string
	ThemeName string
}

// Switcher owns the current-theme symlink and ActiveThemeState. Mutating
// calls are serialized by an internal mutex; there is one in-flight apply at
// a time per store root.
type Switcher struct {
	mu         sync.Mutex
	themes     *store.Store
	state      *state.Store
	currentDir string
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a switcher. currentDir is the directory holding the "theme"
// symlink (created on first apply).
func New(themes *store.Store, st *state.Store, currentDir string) *Switcher {
	return &Switcher{
		themes:     themes,
		state:      st,
		currentDir: currentDir,
		logger:     slog.Default(),
		now:        time.Now,
	}
}

// WithLogger sets a custom logger.
func (s *Switcher) WithLogger(logger *slog.Logger) *Switcher {
	s.logger = logger
	return s
}

// WithClock overrides the clock, for tests.
func (s *Switcher) WithClock(now func() time.Time) *Switcher {
	s.now = now
	return s
}

// ActiveID returns the currently active theme id, or "" before the first apply.
func (s *Switcher) ActiveID() string {
	return s.state.Get().CurrentTheme
}

// State returns a copy of the persisted switch state.
func (s *Switcher) State() models.ActiveThemeState {
	return s.state.Get()
}

// LinkPath returns the path of the current-theme symlink.
func (s *Switcher) LinkPath() string {
	return filepath.Join(s.currentDir, CurrentLinkName)
}

// Apply makes the given theme active: resolves it, atomically repoints the
// current symlink, persists state, and returns the post-commit events for
// the dispatcher. Applying the already-active theme is a valid no-op that
// still refreshes the timestamp and recency ordering.
func (s *Switcher) Apply(ctx context.Context, id string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	theme, err := s.themes.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repoint(s.themes.Dir(theme)); err != nil {
		return nil, err
	}

	if err := s.state.Update(func(st *models.ActiveThemeState) {
		st.Touch(theme.ID, s.now())
	}); err != nil {
		return nil, fmt.Errorf("persisting switch state: %w", err)
	}

	s.logger.Info("theme applied",
		slog.String("theme", theme.ID),
		slog.Bool("light", theme.IsLight))

	return []Event{
		{Type: EventDesktopNotification, ThemeID: theme.ID, ThemeName: theme.Name},
		{Type: EventEditorReload, ThemeID: theme.ID, ThemeName: theme.Name},
		{Type: EventTerminalReload, ThemeID: theme.ID, ThemeName: theme.Name},
		{Type: EventHookScript, ThemeID: theme.ID, ThemeName: theme.Name},
	}, nil
}

// repoint atomically replaces the current-theme symlink with one pointing at
// target. A fresh link is created under a temporary name and renamed over
// the old one, so the link never observably points at nothing. This is the
// one non-interruptible critical section of an apply.
func (s *Switcher) repoint(target string) error {
	if err := os.MkdirAll(s.currentDir, 0o755); err != nil {
		return fmt.Errorf("creating current directory: %w", err)
	}

	link := s.LinkPath()

	// A stale regular directory at the link location blocks rename.
	if info, err := os.Lstat(link); err == nil && info.Mode()&os.ModeSymlink == 0 {
		if err := os.RemoveAll(link); err != nil {
			return fmt.Errorf("removing stale current entry: %w", err)
		}
	}

	tmp := filepath.Join(s.currentDir, fmt.Sprintf(".%s.tmp-%d", CurrentLinkName, os.Getpid()))
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing temp link: %w", err)
	}
	if err := os.Symlink(target, tmp); err != nil {
		return fmt.Errorf("creating temp link: %w", err)
	}
	if err := os.Rename(tmp, link); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming link into place: %w", err)
	}
	return nil
}
