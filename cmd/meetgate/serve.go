package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nuttee/meetgate/internal/livekit"
	"github.com/nuttee/meetgate/internal/logging"
	"github.com/nuttee/meetgate/internal/ports"
	"github.com/nuttee/meetgate/internal/server"
	"github.com/nuttee/meetgate/internal/tracing"
)

// serveCmd starts the HTTP server
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the meetgate HTTP server.

Serves the token and room-directory endpoints under /livekit, health and
metrics probes, and the conferencing web client at /.

Required configuration:
  - LiveKit credentials (LIVEKIT_URL, LIVEKIT_API_KEY, LIVEKIT_API_SECRET)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	logging.Setup(slog.LevelInfo)

	slog.Info("starting meetgate")
	slog.Info("server configured", "host", cfg.Server.Host, "port", cfg.Server.Port)

	shutdownTracer, err := tracing.InitTracer("meetgate")
	if err != nil {
		slog.Warn("failed to initialize tracing", "error", err)
	} else {
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(flushCtx); err != nil {
				slog.Error("tracer shutdown error", "error", err)
			}
		}()
	}

	var rooms ports.RoomService
	if cfg.IsLiveKitConfigured() {
		lkSvc, err := livekit.NewService(cfg.LiveKit)
		if err != nil {
			return err
		}
		rooms = lkSvc
		slog.Info("livekit configured", "url", cfg.LiveKit.URL)
	} else {
		slog.Warn("livekit not configured, token and room endpoints will answer 503")
	}

	srv, err := server.NewServer(cfg, rooms)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "host", cfg.Server.Host, "port", cfg.Server.Port)
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("server error", "error", err)
		return err
	case sig := <-sigCh:
		slog.Info("received signal, shutting down", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		slog.Info("server stopped")
	}

	return nil
}
