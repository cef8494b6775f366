// Package notify dispatches the post-commit events emitted by the switcher.
// Everything here is best-effort: a failed notification, reload signal, or
// hook script is logged and swallowed, never reported as an apply failure.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/tingeapp/tinge/internal/switcher"
)

// hookTimeout bounds how long a user hook script may run.
const hookTimeout = 10 * time.Second

// Config selects which collaborators get notified.
type Config struct {
	// DesktopEnabled turns desktop notifications on.
	DesktopEnabled bool

	// EditorReloadFile, when set, has its mtime bumped after every apply so
	// editors watching it can reload their colorscheme.
	EditorReloadFile string

	// TerminalReload sends SIGUSR1 to kitty processes so they re-read config.
	TerminalReload bool

	// HookScript is a user-provided executable invoked with the applied
	// theme's display name as its sole argument.
	HookScript string
}

// runner spawns an external command; injectable for tests.
type runner func(ctx context.Context, name string, args ...string) error

// Dispatcher consumes switcher events.
type Dispatcher struct {
	cfg    Config
	logger *slog.Logger
	run    runner
}

// NewDispatcher creates a dispatcher with the given configuration.
func NewDispatcher(cfg Config) *Dispatcher {
	return &Dispatcher{
		cfg:    cfg,
		logger: slog.Default(),
		run:    runCommand,
	}
}

// WithLogger sets a custom logger.
func (d *Dispatcher) WithLogger(logger *slog.Logger) *Dispatcher {
	d.logger = logger
	return d
}

// WithRunner overrides command execution, for tests.
func (d *Dispatcher) WithRunner(run func(ctx context.Context, name string, args ...string) error) *Dispatcher {
	d.run = run
	return d
}

// Dispatch handles every event in order. It never returns an error; failures
// are logged at warn with the event type attached.
func (d *Dispatcher) Dispatch(ctx context.Context, events []switcher.Event) {
	for _, ev := range events {
		if err := d.handle(ctx, ev); err != nil {
			d.logger.Warn("notification failed",
				slog.String("event", string(ev.Type)),
				slog.String("theme", ev.ThemeID),
				slog.String("error", err.Error()))
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, ev switcher.Event) error {
	switch ev.Type {
	case switcher.EventDesktopNotification:
		if !d.cfg.DesktopEnabled {
			return nil
		}
		return d.desktopNotify(ctx, ev.ThemeName)

	case switcher.EventEditorReload:
		if d.cfg.EditorReloadFile == "" {
			return nil
		}
		return touch(d.cfg.EditorReloadFile)

	case switcher.EventTerminalReload:
		if !d.cfg.TerminalReload {
			return nil
		}
		// kitty reloads its config on SIGUSR1.
		return d.run(ctx, "pkill", "-USR1", "-x", "kitty")

	case switcher.EventHookScript:
		if d.cfg.HookScript == "" {
			return nil
		}
		hookCtx, cancel := context.WithTimeout(ctx, hookTimeout)
		defer cancel()
		return d.run(hookCtx, d.cfg.HookScript, ev.ThemeName)
	}
	return nil
}

func (d *Dispatcher) desktopNotify(ctx context.Context, themeName string) error {
	message := fmt.Sprintf("Theme switched to %s", themeName)
	if runtime.GOOS == "darwin" {
		script := fmt.Sprintf("display notification %q with title \"tinge\"", message)
		return d.run(ctx, "osascript", "-e", script)
	}
	return d.run(ctx, "notify-send", "tinge", message)
}

// touch creates the file if needed and bumps its mtime.
func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	f.Close()
	now := time.Now()
	return os.Chtimes(path, now, now)
}

func runCommand(ctx context.Context, name string, args ...string) error {
	// Stdout/stderr of collaborators are intentionally not captured.
	return exec.CommandContext(ctx, name, args...).Run()
}
