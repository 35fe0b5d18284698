// Command refresh runs the full pipeline: extraction followed by cleaning
// and modeling, as one staged operation. This is the entry point a scheduled
// job should invoke.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sportsight/internal/config"
	"sportsight/internal/infrastructure"
	"sportsight/internal/operations"
)

func main() {
	baseDir := flag.String("base", "", "base directory for documents and data (defaults to executable directory)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *baseDir != "" {
		cfg.Paths.BaseDir = *baseDir
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	rc := infrastructure.NewRunContext(paths, cfg.Pipeline, logger)
	ctx, stop := signal.NotifyContext(rc.Context(context.Background()), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := operations.NewRunner(rc.Logger,
		operations.NewExtractStage(),
		operations.NewModelStage(),
	)
	if err := runner.Run(ctx, rc); err != nil {
		rc.Logger.Error("Pipeline failed", "error", err)
		os.Exit(1)
	}

	rc.Logger.Info("Pipeline finished", slog.String("run_id", rc.RunID))
}
