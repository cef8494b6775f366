package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tingeapp/tinge/internal/models"
)

type fakeApplier struct {
	mu       sync.Mutex
	active   string
	applied  []string
	triggers []models.ApplyTrigger
	err      error
}

func (f *fakeApplier) Apply(ctx context.Context, id string, trigger models.ApplyTrigger) (*models.Theme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.active = id
	f.applied = append(f.applied, id)
	f.triggers = append(f.triggers, trigger)
	return &models.Theme{ID: id}, nil
}

func (f *fakeApplier) ActiveID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *fakeApplier) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.applied...)
}

func scheduledConfig() Config {
	return Config{
		Mode:       ModeScheduled,
		LightTheme: "day-theme",
		DarkTheme:  "night-theme",
		LightAt:    "0 7 * * *",
		DarkAt:     "0 19 * * *",
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid scheduled", mutate: func(c *Config) {}},
		{name: "manual needs nothing", mutate: func(c *Config) {
			*c = Config{Mode: ModeManual}
		}},
		{name: "unknown mode", mutate: func(c *Config) { c.Mode = "chaotic" }, wantErr: "unknown scheduler mode"},
		{name: "missing themes", mutate: func(c *Config) { c.DarkTheme = "" }, wantErr: "requires both"},
		{name: "bad cron", mutate: func(c *Config) { c.LightAt = "not cron" }, wantErr: "invalid cron"},
		{name: "bad latitude", mutate: func(c *Config) {
			c.Mode = ModeSunrise
			c.Latitude = 123
		}, wantErr: "invalid location"},
		{name: "valid sunrise", mutate: func(c *Config) {
			c.Mode = ModeSunrise
			c.Latitude = 37.77
			c.Longitude = -122.42
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scheduledConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDesired_Scheduled(t *testing.T) {
	s := New(scheduledConfig(), &fakeApplier{})

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"mid-morning", time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), "day-theme"},
		{"exactly at light boundary", time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC), "day-theme"},
		{"just before light boundary", time.Date(2026, 3, 10, 6, 59, 0, 0, time.UTC), "night-theme"},
		{"evening", time.Date(2026, 3, 10, 21, 30, 0, 0, time.UTC), "night-theme"},
		{"after midnight", time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC), "night-theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Desired(tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDesired_Sunrise(t *testing.T) {
	cfg := Config{
		Mode:       ModeSunrise,
		LightTheme: "day-theme",
		DarkTheme:  "night-theme",
		Latitude:   37.7749,
		Longitude:  -122.4194,
	}
	s := New(cfg, &fakeApplier{})

	noon := time.Date(2026, 6, 21, 20, 0, 0, 0, time.UTC) // local noon in SF
	got, err := s.Desired(noon)
	require.NoError(t, err)
	assert.Equal(t, "day-theme", got)

	midnight := time.Date(2026, 6, 21, 9, 0, 0, 0, time.UTC) // 2am local
	got, err = s.Desired(midnight)
	require.NoError(t, err)
	assert.Equal(t, "night-theme", got)
}

func TestDesired_Manual(t *testing.T) {
	s := New(Config{Mode: ModeManual}, &fakeApplier{})
	got, err := s.Desired(time.Now())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEvaluate_AppliesAndSkipsActive(t *testing.T) {
	applier := &fakeApplier{}
	at := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	s := New(scheduledConfig(), applier).WithClock(func() time.Time { return at })

	s.Evaluate(context.Background())
	assert.Equal(t, []string{"day-theme"}, applier.calls())
	assert.Equal(t, []models.ApplyTrigger{models.TriggerScheduled}, applier.triggers)

	// Already active, no second apply.
	s.Evaluate(context.Background())
	assert.Equal(t, []string{"day-theme"}, applier.calls())
}

func TestEvaluate_ApplyErrorDoesNotPanic(t *testing.T) {
	applier := &fakeApplier{err: assert.AnError}
	at := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	s := New(scheduledConfig(), applier).WithClock(func() time.Time { return at })

	s.Evaluate(context.Background())
	assert.Empty(t, applier.calls())
}

func TestStartStop(t *testing.T) {
	applier := &fakeApplier{}
	at := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	s := New(scheduledConfig(), applier).WithClock(func() time.Time { return at })

	require.NoError(t, s.Start(context.Background()))
	assert.Error(t, s.Start(context.Background()), "second start must fail")
	s.Stop()

	// Catch-up evaluation ran at start.
	assert.Equal(t, []string{"night-theme"}, applier.calls())

	// Restart after stop is allowed.
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}

func TestStart_ManualModeNoop(t *testing.T) {
	applier := &fakeApplier{}
	s := New(Config{Mode: ModeManual}, applier)

	require.NoError(t, s.Start(context.Background()))
	s.Stop()
	assert.Empty(t, applier.calls())
}
