// Command otpring-server serves the simulation API over HTTP.
//
// Executed runs are persisted to PostgreSQL when --postgres-host is set,
// otherwise to memory. Health endpoints, drain control and an optional
// metrics listener come from the base server.
//
// # Usage
//
//	otpring-server --listen-addr :8080 --metrics-addr :9090
//	otpring-server --postgres-host localhost --postgres-password secret
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v2"

	"github.com/flashbots/otpring/api/httpserver"
	"github.com/flashbots/otpring/services"
)

var version = "dev"

var flags = []cli.Flag{
	&cli.StringFlag{
		Name:  "listen-addr",
		Usage: "HTTP API listen address",
		Value: ":8080",
	},
	&cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "Metrics listen address (empty disables the metrics server)",
	},
	&cli.BoolFlag{
		Name:  "pprof",
		Usage: "Enable the pprof debugging API",
	},
	&cli.StringFlag{
		Name:  "postgres-host",
		Usage: "PostgreSQL host (empty uses the in-memory store)",
	},
	&cli.IntFlag{
		Name:  "postgres-port",
		Usage: "PostgreSQL port",
		Value: 5432,
	},
	&cli.StringFlag{
		Name:  "postgres-user",
		Usage: "PostgreSQL user",
		Value: "otpring",
	},
	&cli.StringFlag{
		Name:  "postgres-password",
		Usage: "PostgreSQL password",
	},
	&cli.StringFlag{
		Name:  "postgres-db",
		Usage: "PostgreSQL database name",
		Value: "otpring",
	},
	&cli.StringFlag{
		Name:  "postgres-sslmode",
		Usage: "PostgreSQL sslmode",
	},
	&cli.BoolFlag{
		Name:  "log-json",
		Usage: "Log in JSON format",
	},
	&cli.BoolFlag{
		Name:  "log-debug",
		Usage: "Enable debug logging",
	},
	&cli.DurationFlag{
		Name:  "drain-duration",
		Usage: "Wait after marking not ready before shutting down",
		Value: 5 * time.Second,
	},
}

func main() {
	app := &cli.App{
		Name:    "otpring-server",
		Version: version,
		Usage:   "HTTP API for the pad allocation simulator",
		Flags:   flags,
		Action:  run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cctx *cli.Context) error {
	log := newLogger(cctx.Bool("log-json"), cctx.Bool("log-debug"))

	store, err := newStore(cctx)
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer store.Close()

	runner := services.NewRunner(store, log)
	handler := httpserver.NewRunsHandler(runner, store, log)

	srv, err := httpserver.New(&httpserver.HTTPServerConfig{
		ListenAddr:               cctx.String("listen-addr"),
		MetricsAddr:              cctx.String("metrics-addr"),
		EnablePprof:              cctx.Bool("pprof"),
		Log:                      log,
		DrainDuration:            cctx.Duration("drain-duration"),
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              30 * time.Second,
		WriteTimeout:             5 * time.Minute,
	}, handler)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	srv.RunInBackground()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down")
	srv.Shutdown()
	return nil
}

func newStore(cctx *cli.Context) (services.ResultStore, error) {
	host := cctx.String("postgres-host")
	if host == "" {
		return services.NewInMemoryStore(), nil
	}
	return services.NewPostgresStore(&services.PostgresConfig{
		Host:     host,
		Port:     cctx.Int("postgres-port"),
		User:     cctx.String("postgres-user"),
		Password: cctx.String("postgres-password"),
		Database: cctx.String("postgres-db"),
		SSLMode:  cctx.String("postgres-sslmode"),
	})
}

func newLogger(jsonOutput, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
