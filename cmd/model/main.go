// Command model runs the cleaning and modeling pass on its own: it reads the
// raw intermediate table (or the extraction marker) and writes the five
// output tables plus the Excel workbook.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"sportsight/internal/config"
	"sportsight/internal/infrastructure"
	"sportsight/internal/modeler"
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

	ds, err := modeler.New(rc).Run(ctx, rc)
	if err != nil {
		rc.Logger.Error("Modeling failed", "error", err)
		os.Exit(1)
	}

	rc.Logger.Info("Modeling finished",
		slog.String("provenance", string(ds.Provenance)),
		slog.Int("kpi_rows", len(ds.KPI)),
		slog.Int("daily_rows", len(ds.DailyUsage)))
}
