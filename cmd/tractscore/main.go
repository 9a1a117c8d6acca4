// @title			Tract Score API
// @version		1.0
// @description	lat,lon → Census tract GEOID + precomputed score.
// @BasePath		/api/v1

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/tractscore/internal/config"
	"github.com/mtlprog/tractscore/internal/database"
	"github.com/mtlprog/tractscore/internal/domain"
	"github.com/mtlprog/tractscore/internal/handler"
	"github.com/mtlprog/tractscore/internal/logger"
)

func main() {
	app := &cli.App{
		Name:  "tractscore",
		Usage: "Census tract GEOID + score lookup service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Value:   config.DefaultDataDir,
				Usage:   "Persistent data directory",
				EnvVars: []string{"DATA_DIR"},
			},
			&cli.StringFlag{
				Name:    "tracts-db",
				Usage:   "Tract store path (defaults to <data-dir>/tracts.db)",
				EnvVars: []string{"TRACTS_DB"},
			},
			&cli.StringFlag{
				Name:    "scores-path",
				Value:   config.DefaultScoresPath,
				Usage:   "Score map JSON file path",
				EnvVars: []string{"SCORES_PATH"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:    "admin-token",
						Usage:   "Bearer token for admin endpoints (empty disables them)",
						EnvVars: []string{"ADMIN_TOKEN"},
					},
				},
				Action: runServe,
			},
			{
				Name:      "ingest",
				Usage:     "Load tract geometries from an NDJSON file into the store",
				ArgsUsage: "<tracts.ndjson>",
				Action:    runIngest,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// openStore resolves the tract store path, ensures the data directory
// exists, opens the store, and applies migrations.
func openStore(c *cli.Context) (*sqlx.DB, string, error) {
	dataDir := c.String("data-dir")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create data directory: %w", err)
	}

	tractsDB := config.ResolveTractsDB(c.String("tracts-db"), dataDir)

	db, err := database.New(tractsDB)
	if err != nil {
		return nil, "", fmt.Errorf("open tract store: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("run migrations: %w", err)
	}

	return db, tractsDB, nil
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}
	scoresPath := c.String("scores-path")

	db, tractsDB, err := openStore(c)
	if err != nil {
		return err
	}
	defer db.Close()

	h := handler.New(db, tractsDB, scoresPath, c.String("admin-token"))

	// Deferred load: if the store or score file is not there yet, start
	// serving anyway and report not ready until a reload succeeds.
	if _, err := h.Service().Reload(ctx, domain.LoadSourceStartup); err != nil {
		slog.Warn("startup index load deferred",
			"error", err,
			"tracts_db", tractsDB,
			"scores_path", scoresPath,
		)
	}

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runIngest(c *cli.Context) error {
	ctx := c.Context

	if c.NArg() != 1 {
		return fmt.Errorf("usage: tractscore ingest <tracts.ndjson>")
	}
	path := c.Args().First()

	db, tractsDB, err := openStore(c)
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open ingest file: %w", err)
	}
	defer f.Close()

	h := handler.New(db, tractsDB, c.String("scores-path"), "")

	event, count, err := h.Service().Ingest(ctx, f, domain.LoadSourceCLI)
	if err != nil {
		// The store may have been replaced even when the index rebuild
		// failed (for example, a missing score file). Report the count.
		if count > 0 {
			slog.Warn("tracts ingested but index rebuild failed", "tract_count", count, "error", err)
			return nil
		}
		return fmt.Errorf("ingest tracts: %w", err)
	}

	slog.Info("ingest completed",
		"tract_count", count,
		"score_count", event.ScoreCount,
		"duration_ms", event.DurationMS,
	)

	return nil
}
