package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/dashboard"
	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/warehouse"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over a built analytical store",
	Long: `Serve the browser dashboard and its JSON API. The store must have been
built with the 'build' command first. The server runs until interrupted
with Ctrl+C.

Example:
  salesdash serve
  salesdash serve --addr :9090 --store data/warehouse.duckdb`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"listen address for the dashboard")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if serveAddr != "" {
		cfg.Serve.Addr = serveAddr
	}

	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	if _, err := os.Stat(cfg.StorePath); err != nil {
		return fmt.Errorf("store not found at %s; run 'salesdash build' first", cfg.StorePath)
	}

	srv := dashboard.NewServer(warehouse.New(cfg.StorePath), dashboard.Config{
		Addr:            cfg.Serve.Addr,
		RateLimitRPS:    cfg.Serve.RateLimitRPS,
		RateLimitBurst:  cfg.Serve.RateLimitBurst,
		ShutdownTimeout: time.Duration(cfg.Serve.ShutdownTimeout) * time.Second,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("dashboard server error: %w", err)
	}

	logging.Info().Msg("Dashboard stopped")
	return nil
}
