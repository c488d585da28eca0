// main is the entry point of the Drivers API application.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (plus env / .env overrides)
//  2. Initialise the logger
//  3. Open (and set up) the SQLite database
//  4. Build the router and middleware stack
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, close the database
//
// RUNNING THE SERVER:
//
//	go run ./cmd/drivers-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/drivers-api
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

	"github.com/aanand-mishra/drivers-api/internal/config"
	"github.com/aanand-mishra/drivers-api/internal/http/router"
	"github.com/aanand-mishra/drivers-api/internal/storage/sqlite"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	// Handlers log through the package-level slog functions.
	slog.SetDefault(log)

	log.Info("starting drivers-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	storage, err := sqlite.New(cfg.StoragePath)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      router.New(cfg, log, storage),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ErrServerClosed is the expected result of Shutdown.
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
	}

	// Only close the database once no request can still be using it.
	if err := storage.Close(); err != nil {
		log.Error("failed to close storage",
			slog.String("error", err.Error()))
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
