// Command web serves the usage dashboard: the data API over the processed
// tables plus the embedded static frontend.
package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"

	"sportsight/internal/app"
)

//go:embed all:web
var frontendFiles embed.FS

func main() {
	var frontendFS fs.FS
	if sub, err := fs.Sub(frontendFiles, "web"); err == nil {
		frontendFS = sub
	} else {
		slog.Warn("Frontend embedding failed, serving API only", slog.String("error", err.Error()))
	}

	application, err := app.NewApplication(frontendFS)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
