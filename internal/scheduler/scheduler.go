// Package scheduler drives automatic theme switching. It supports fixed
// wall-clock schedules expressed as cron entries and a sunrise mode that
// recomputes sun times for a configured location.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tingeapp/tinge/internal/models"
	"github.com/tingeapp/tinge/internal/suntime"
)

// Mode selects the switching strategy.
type Mode string

const (
	// ModeManual disables automatic switching entirely.
	ModeManual Mode = "manual"
	// ModeScheduled switches at fixed local times.
	ModeScheduled Mode = "scheduled"
	// ModeSunrise follows computed sunrise and sunset for a location.
	ModeSunrise Mode = "sunrise"
)

// checkInterval is how often the loop re-evaluates which theme should be
// active. One minute matches the granularity of the schedule formats.
const checkInterval = time.Minute

// Applier applies a theme by id. Satisfied by service.ApplyService.
type Applier interface {
	Apply(ctx context.Context, id string, trigger models.ApplyTrigger) (*models.Theme, error)
	ActiveID() string
}

// Config holds the scheduler configuration.
type Config struct {
	Mode Mode

	// LightTheme and DarkTheme are the theme ids toggled between.
	LightTheme string
	DarkTheme  string

	// LightAt and DarkAt are cron expressions for ModeScheduled,
	// typically fixed times such as "0 7 * * *" and "0 19 * * *".
	LightAt string
	DarkAt  string

	// Latitude and Longitude locate ModeSunrise.
	Latitude  float64
	Longitude float64
}

// Validate checks the configuration for the selected mode.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeManual:
		return nil
	case ModeScheduled, ModeSunrise:
	default:
		return fmt.Errorf("unknown scheduler mode: %q", c.Mode)
	}

	if c.LightTheme == "" || c.DarkTheme == "" {
		return fmt.Errorf("scheduler mode %s requires both light and dark theme ids", c.Mode)
	}
	if c.Mode == ModeScheduled {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		for _, expr := range []string{c.LightAt, c.DarkAt} {
			if _, err := parser.Parse(expr); err != nil {
				return fmt.Errorf("invalid cron expression %q: %w", expr, err)
			}
		}
	}
	if c.Mode == ModeSunrise {
		if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
			return fmt.Errorf("invalid location %.4f,%.4f", c.Latitude, c.Longitude)
		}
	}
	return nil
}

// Scheduler evaluates the configured schedule and applies the matching theme
// through the shared switcher, so automatic and manual switches serialize on
// the same lock.
type Scheduler struct {
	mu sync.Mutex

	config  Config
	applier Applier
	logger  *slog.Logger

	parser cron.Parser
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler. The configuration must already be validated.
func New(config Config, applier Applier) *Scheduler {
	return &Scheduler{
		config:  config,
		applier: applier,
		logger:  slog.Default(),
		parser:  cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		now:     time.Now,
	}
}

// WithLogger sets a custom logger.
func (s *Scheduler) WithLogger(logger *slog.Logger) *Scheduler {
	s.logger = logger
	return s
}

// WithClock overrides the time source for tests.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Start begins the evaluation loop. The current wall-clock position is
// evaluated immediately so a machine waking mid-schedule catches up without
// waiting for the next boundary.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx != nil {
		return fmt.Errorf("scheduler already started")
	}
	if s.config.Mode == ModeManual {
		s.logger.Info("scheduler in manual mode, not starting")
		return nil
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.loop()

	s.logger.Info("scheduler started",
		slog.String("mode", string(s.config.Mode)),
		slog.String("light_theme", s.config.LightTheme),
		slog.String("dark_theme", s.config.DarkTheme))
	return nil
}

// Stop stops the scheduler and waits for the loop to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	s.ctx = nil
	s.cancel = nil
	s.mu.Unlock()

	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	s.Evaluate(s.ctx)

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.Evaluate(s.ctx)
		}
	}
}

// Evaluate determines which theme the current time calls for and applies it
// if it is not already active. Errors are logged, never fatal: a missing
// theme should not kill the loop.
func (s *Scheduler) Evaluate(ctx context.Context) {
	want, err := s.Desired(s.now())
	if err != nil {
		s.logger.Warn("schedule evaluation failed", slog.String("error", err.Error()))
		return
	}
	if want == "" || want == s.applier.ActiveID() {
		return
	}

	if _, err := s.applier.Apply(ctx, want, models.TriggerScheduled); err != nil {
		s.logger.Error("scheduled switch failed",
			slog.String("theme", want),
			slog.String("error", err.Error()))
		return
	}
	s.logger.Info("scheduled switch applied",
		slog.String("mode", string(s.config.Mode)),
		slog.String("theme", want))
}

// Desired returns the theme id the schedule calls for at time t, or "" in
// manual mode.
func (s *Scheduler) Desired(t time.Time) (string, error) {
	switch s.config.Mode {
	case ModeManual:
		return "", nil
	case ModeSunrise:
		if suntime.IsDaytime(s.config.Latitude, s.config.Longitude, t) {
			return s.config.LightTheme, nil
		}
		return s.config.DarkTheme, nil
	case ModeScheduled:
		return s.desiredScheduled(t)
	default:
		return "", fmt.Errorf("unknown scheduler mode: %q", s.config.Mode)
	}
}

// desiredScheduled picks whichever boundary fired most recently. Asking each
// cron entry for its previous firing avoids assuming light comes before dark
// within a day.
func (s *Scheduler) desiredScheduled(t time.Time) (string, error) {
	lastLight, err := s.previous(s.config.LightAt, t)
	if err != nil {
		return "", err
	}
	lastDark, err := s.previous(s.config.DarkAt, t)
	if err != nil {
		return "", err
	}

	if lastLight.After(lastDark) {
		return s.config.LightTheme, nil
	}
	return s.config.DarkTheme, nil
}

// previous finds the most recent firing of expr at or before t. cron only
// exposes Next, so step back day by day until a firing lands before t.
func (s *Scheduler) previous(expr string, t time.Time) (time.Time, error) {
	schedule, err := s.parser.Parse(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}

	// A daily HH:MM entry always fires within any 48h window; scan a few
	// days to tolerate sparser expressions.
	for back := 1; back <= 32; back++ {
		from := t.AddDate(0, 0, -back)
		prev := time.Time{}
		for next := schedule.Next(from); !next.After(t); next = schedule.Next(next) {
			prev = next
		}
		if !prev.IsZero() {
			return prev, nil
		}
	}
	return time.Time{}, fmt.Errorf("cron expression %q has no recent firing", expr)
}
