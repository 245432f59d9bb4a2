package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MarceloDChagas/Respira/internal/config"
	"github.com/MarceloDChagas/Respira/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr    string
	DataDir string
	CalcURL string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Respira HTTP server",
		Long: `Start the HTTP server. Configuration is read from the yaml file given
with --config, then overridden by RESPIRA_* environment variables, then by
flags.

Example:
  respira serve --config respira.yml
  respira serve --addr :8090 --data-dir ./data`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.DataDir, "data-dir", "", "directory for profile snapshots (overrides config)")
	cmd.Flags().StringVar(&opts.CalcURL, "calc-url", "", "base URL of the calculation service (overrides config)")

	return cmd
}

func runServe(opts *ServeOptions) error {
	logger := log.New(os.Stdout, "", 0)

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	app, err := server.NewApp(server.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("respira listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("shutdown: %v", err)
	}

	if err := app.SaveSnapshot(); err != nil {
		logger.Printf("snapshot save failed: %v", err)
		return err
	}
	return nil
}

func loadConfig(opts *ServeOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg = config.FromEnv(cfg)

	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	if opts.DataDir != "" {
		cfg.Server.DataDir = opts.DataDir
	}
	if opts.CalcURL != "" {
		cfg.Server.CalcBaseURL = opts.CalcURL
	}
	return cfg, nil
}
