package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/comp-pricer/internal/config"
	"github.com/donaldgifford/comp-pricer/internal/telemetry"
	"github.com/donaldgifford/comp-pricer/pkg/logger"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and scheduler",
		Long: "Start the pricing API. With a database configured, tracked products are\n" +
			"repriced on schedule; with eBay credentials, the daily quota is synced too.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, &cfg.Tracing, Version, log)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	a.scheduler.RecoverStaleJobRuns(ctx)
	a.scheduler.Start()

	srv := a.httpServer()
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			<-a.scheduler.Stop().Done()
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	select {
	case <-a.scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("scheduler did not stop before shutdown timeout")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("flushing traces failed", "error", err)
	}

	log.Info("server stopped")
	return nil
}
