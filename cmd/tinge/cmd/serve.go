package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	internalhttp "github.com/tingeapp/tinge/internal/http"
	"github.com/tingeapp/tinge/internal/scheduler"
	"github.com/tingeapp/tinge/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the control API and auto-switch scheduler",
	Long: `Start the localhost control API and, when a schedule is configured, the
automatic theme switcher. The menu-bar shell talks to this process.

The API serves:
- theme listing, inspection, and switching
- archive import (upload or URL)
- active-theme state and sun times
- OpenAPI documentation at /docs`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "host to bind to (overrides config)")
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	if cmd.Flags().Changed("host") {
		cfg.Server.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetInt("port")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	schedCfg := scheduler.Config{
		Mode:       scheduler.Mode(cfg.Schedule.Mode),
		LightTheme: cfg.Schedule.LightTheme,
		DarkTheme:  cfg.Schedule.DarkTheme,
		LightAt:    cfg.Schedule.LightAt,
		DarkAt:     cfg.Schedule.DarkAt,
		Latitude:   cfg.Location.Latitude,
		Longitude:  cfg.Location.Longitude,
	}
	if err := schedCfg.Validate(); err != nil {
		return err
	}
	sched := scheduler.New(schedCfg, a.apply).WithLogger(logger)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	server := internalhttp.NewServer(cfg.Server, logger, version.Short())
	handler := internalhttp.NewHandler(a.themes, a.apply, a.packager, cfg.Location, version.Short(), logger)
	handler.Register(server.API())
	handler.RegisterChiRoutes(server.Router())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", slog.String("error", err.Error()))
	}
	return <-errCh
}
