package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"choreboard/internal/reminder"
	"choreboard/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the reminder checker",
	Long: `Run the JSON HTTP API together with the background reminder checker
until interrupted.

Settings come from ~/.choreboard/config.yaml and CHOREBOARD_* environment
variables. CHOREBOARD_JWT_SECRET must be set.

Examples:
  CHOREBOARD_JWT_SECRET=change-me choreboard serve
  choreboard serve --addr :8080`,
	Annotations: map[string]string{headlessAnnotation: ""},
	RunE:        runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides listen_addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openServerApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	addr := a.cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv, err := server.New(server.Options{
		Tasks:           a.tasks,
		Users:           a.users,
		Notifications:   a.notifications,
		UploadDir:       a.cfg.UploadDir,
		PublicUploadURL: a.cfg.PublicUploadURL,
		MaxUploadSize:   a.cfg.MaxUploadSize,
		CORSOrigin:      a.cfg.CORSOrigin,
		Debug:           a.cfg.LogLevel == "debug",
		Logger:          a.logger.With().Str("component", "http").Logger(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	checker := reminder.NewChecker(a.tasks, a.repos, a.clock, a.logger.With().Str("component", "reminder").Logger(), prometheus.DefaultRegisterer)

	var g run.Group
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			return srv.ListenAndServe(ctx, addr)
		}, func(error) {
			cancel()
		})
	}
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			return checker.Run(ctx, a.cfg.CheckInterval)
		}, func(error) {
			cancel()
		})
	}
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	err = g.Run()

	var sigErr run.SignalError
	if errors.As(err, &sigErr) {
		a.logger.Info().Str("signal", sigErr.Signal.String()).Msg("shutting down")
		return nil
	}
	return err
}
