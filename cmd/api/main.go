package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notebook-ai/internal/app"
	"notebook-ai/internal/config"
	"notebook-ai/internal/http"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API manages notebooks of sources and retrieves the passages most relevant to a query.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Notebook AI API
//   description: |
//     Ingests pasted text, web links and uploaded files into notebooks, splits them into
//     embedded chunks, and ranks those chunks against natural-language queries.
//     Every request under /api except /api/health needs an X-User-ID header.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := app.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel, "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	router := http.NewRouter(&http.Deps{
		Notebooks: a.Notebooks,
		Ingester:  a.Pipeline,
		Engine:    a.Engine,
		Health:    a.Health,
	})

	srv := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", srv.Addr)
		slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down API server")
	case err := <-errCh:
		if err != nil {
			slog.Error("API server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	// Pending title and summary refreshes finish before the database closes.
	if err := a.Close(); err != nil {
		slog.Error("Failed to close", "error", err)
	}
	slog.Info("Stopped")
}
