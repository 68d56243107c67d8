package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/lumina/internal/logging"
	httpAdapter "github.com/aretw0/lumina/pkg/adapters/http"
	redisAdapter "github.com/aretw0/lumina/pkg/adapters/redis"
	"github.com/aretw0/lumina/pkg/observability"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the JSON API over HTTP. Each client (owner) gets its own set of
AI sessions; progress is streamed on /events and metrics are exposed on
/metrics. With --redis-url, failures are published to Redis and owners are
locked across replicas.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger := logging.NewJSON(os.Stderr, level)

		service, err := newService(logger)
		if err != nil {
			return err
		}
		notifier, redisNotifier, closeNotifier, err := newNotifier(logger)
		if err != nil {
			return err
		}
		defer closeNotifier()

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(observability.NewMetrics(nil)),
			httpAdapter.WithConstraintContext(constraintContext()),
			httpAdapter.WithAssistantOptions(assistantOptions(logger, notifier)...),
		}
		if redisNotifier != nil {
			opts = append(opts, httpAdapter.WithLocker(redisAdapter.NewLocker(redisNotifier.Client(), "lumina:")))
		}

		server := httpAdapter.NewServer(service, opts...)
		handler, err := server.Handler()
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting Lumina server", "addr", srv.Addr, "public", cfg.Public)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				_ = srv.Close()
			}
			if err := server.Close(shutdownCtx); err != nil {
				logger.Warn("discarding owners failed", "err", err)
			}
			logger.Info("Lumina server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
