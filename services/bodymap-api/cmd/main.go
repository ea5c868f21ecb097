package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bodymapapi "github.com/fitglue/bodymap/services/bodymap-api"

	"github.com/fitglue/bodymap/pkg/bodymap"
	"github.com/fitglue/bodymap/pkg/bootstrap"
	"github.com/fitglue/bodymap/pkg/infrastructure/sentry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := bootstrap.NewLogger("bodymap-api")

	if err := sentry.Init(sentry.ConfigFromEnv("bodymap-api"), logger); err != nil {
		logger.Warn("Continuing without Sentry", "error", err)
	}
	defer sentry.Flush(2 * time.Second)

	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		logger.Error("Service init failed", "error", err)
		os.Exit(1)
	}

	server := &bodymapapi.Server{
		Renderer: bodymap.NewRenderer(svc, logger),
		Presets:  svc.Presets,
		Logger:   logger,
	}

	httpServer := &http.Server{
		Addr:              ":" + svc.Config.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", "error", err)
		}
	}()

	logger.Info("Listening", "addr", httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
