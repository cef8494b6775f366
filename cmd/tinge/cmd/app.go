package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/tingeapp/tinge/internal/archive"
	"github.com/tingeapp/tinge/internal/httpclient"
	"github.com/tingeapp/tinge/internal/notify"
	"github.com/tingeapp/tinge/internal/repository"
	"github.com/tingeapp/tinge/internal/service"
	"github.com/tingeapp/tinge/internal/state"
	"github.com/tingeapp/tinge/internal/store"
	"github.com/tingeapp/tinge/internal/switcher"
)

// app bundles the wired components every command works against.
type app struct {
	themes    *store.Store
	state     *state.Store
	switcher  *switcher.Switcher
	apply     *service.ApplyService
	packager  *archive.Packager
	history   repository.HistoryRepository
	historyDB *gorm.DB
}

// newApp builds the component graph from the loaded configuration. The
// support directory and bundled themes are created on first use.
func newApp(ctx context.Context) (*app, error) {
	if err := os.MkdirAll(cfg.Storage.SupportDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating support directory: %w", err)
	}

	logger := slog.Default()

	themes := store.New(cfg.Storage.BundledThemesDir(), cfg.Storage.CustomThemesDir()).
		WithLogger(logger)
	if err := themes.EnsureBundled(ctx); err != nil {
		return nil, err
	}

	st := state.NewStore(cfg.Storage.StatePath())
	if err := st.Load(); err != nil {
		return nil, err
	}

	sw := switcher.New(themes, st, cfg.Storage.CurrentDir()).WithLogger(logger)

	notifier := notify.NewDispatcher(notify.Config{
		DesktopEnabled:   cfg.Notifications.Desktop,
		EditorReloadFile: cfg.Notifications.EditorReloadFile,
		TerminalReload:   cfg.Notifications.TerminalReload,
		HookScript:       cfg.Notifications.HookScript,
	}).WithLogger(logger)

	a := &app{themes: themes, state: st, switcher: sw}

	if cfg.History.Enabled {
		db, err := repository.Open(cfg.Storage.HistoryPath())
		if err != nil {
			return nil, err
		}
		a.historyDB = db
		a.history = repository.NewHistoryRepository(db)

		if cfg.History.RetentionDays > 0 {
			cutoff := time.Now().AddDate(0, 0, -cfg.History.RetentionDays)
			if _, err := a.history.PruneOlderThan(ctx, cutoff); err != nil {
				logger.Warn("pruning history failed", slog.String("error", err.Error()))
			}
		}
	}

	a.apply = service.NewApplyService(themes, sw, notifier, a.history).WithLogger(logger)

	client := httpclient.New(httpclient.Config{
		Timeout:      cfg.Download.Timeout,
		MaxRedirects: cfg.Download.MaxRedirects,
		MaxBodySize:  cfg.Download.MaxBodySize,
	}).WithLogger(logger)
	a.packager = archive.NewPackager(themes, client).WithLogger(logger)

	return a, nil
}

// Close releases the history database connection.
func (a *app) Close() {
	if a.historyDB == nil {
		return
	}
	if db, err := a.historyDB.DB(); err == nil {
		db.Close()
	}
}
