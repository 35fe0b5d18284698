// Command extract runs the PDF extraction pass on its own: it scans the
// documents directory for report PDFs and writes the raw intermediate table
// (or the extraction marker when nothing usable was found).
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"sportsight/internal/config"
	"sportsight/internal/extractor"
	"sportsight/internal/infrastructure"
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
	ctx := rc.Context(context.Background())

	result, err := extractor.New(rc).Run(ctx, rc)
	if err != nil {
		rc.Logger.Error("Extraction failed", "error", err)
		os.Exit(1)
	}

	rc.Logger.Info("Extraction finished",
		slog.Int("documents", result.Documents),
		slog.Int("failed", result.Failed),
		slog.Int("records", len(result.Records)),
		slog.Bool("marker_written", result.MarkerWritten))
}
