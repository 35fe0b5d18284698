// Package services exposes the processed tables to the dashboard transport
// layer. It reads straight from the CSV snapshot on every request: the
// tables are tiny and a run may overwrite them at any time.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"sportsight/internal/config"
	"sportsight/internal/errors"
	"sportsight/internal/exporter"
	"sportsight/internal/files"
	"sportsight/pkg/contracts/domain"
)

// Table is one output table as served to the dashboard.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Summary describes the current snapshot: whether data exists, where it came
// from and the period it covers.
type Summary struct {
	Generated   bool              `json:"generated"`
	Provenance  domain.Provenance `json:"provenance,omitempty"`
	PeriodStart string            `json:"period_start,omitempty"`
	PeriodEnd   string            `json:"period_end,omitempty"`
	Categories  []string          `json:"categories"`
}

// tableFiles maps API table names onto snapshot filenames.
var tableFiles = map[string]string{
	"kpi":         domain.KPIFilename,
	"peak-7d":     domain.Peak7dFilename,
	"peak-48h":    domain.Peak48hFilename,
	"daily-usage": domain.DailyUsageFilename,
	"new-users":   domain.NewUsersFilename,
}

// DataService loads processed tables for the dashboard API.
type DataService struct {
	paths     *config.Paths
	discovery *files.Discovery
	manager   *files.Manager
	writer    *exporter.CSVWriter
	logger    *slog.Logger
}

// NewDataService creates a data service over the processed directory.
func NewDataService(paths *config.Paths, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		paths:     paths,
		discovery: files.NewDiscovery(paths.BaseDir),
		manager:   files.NewManager(paths),
		writer:    exporter.NewCSVWriter(paths),
		logger:    logger.With(slog.String("component", "data_service")),
	}
}

// ValidTableName reports whether name addresses one of the five tables.
func ValidTableName(name string) bool {
	_, ok := tableFiles[name]
	return ok
}

// GetTable loads one output table, optionally filtered to a single category.
// A missing snapshot yields a NOT_FOUND application error, which the
// transport layer renders as the "data not generated yet" state.
func (s *DataService) GetTable(ctx context.Context, name string, category string) (*Table, error) {
	filename, ok := tableFiles[name]
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown table %q", name), nil)
	}

	path := s.paths.GetProcessedPath(filename)
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewNotFoundError("output tables not generated yet", err)
	}

	columns, rows, err := s.writer.ReadCSV(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to load table %s", name), err)
	}

	if category != "" {
		filtered := make([][]string, 0, len(rows))
		for _, row := range rows {
			if len(row) > 0 && row[0] == category {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	s.logger.DebugContext(ctx, "table loaded",
		slog.String("table", name),
		slog.String("category", category),
		slog.Int("rows", len(rows)))

	return &Table{Name: name, Columns: columns, Rows: rows}, nil
}

// GetSummary reports the snapshot state for the dashboard header. The
// snapshot only counts as generated when every output table is present; a
// partial one is treated the same as none.
func (s *DataService) GetSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{Categories: categoryNames()}

	found, err := s.discovery.FindCSVFiles(s.paths.ProcessedDir)
	if err != nil {
		// Processed directory missing: no run has happened yet.
		return summary, nil
	}
	present := make(map[string]bool, len(found))
	for _, file := range found {
		present[file.Name] = true
	}
	for _, filename := range tableFiles {
		if !present[filename] {
			return summary, nil
		}
	}
	summary.Generated = true

	summary.Provenance = domain.ProvenanceReal
	if s.manager.FileExists(s.paths.GetProcessedPath(domain.SourceNoteFilename)) {
		summary.Provenance = domain.ProvenanceSynthetic
	}

	_, rows, err := s.writer.ReadCSV(s.paths.GetProcessedPath(domain.PeriodFilename))
	if err == nil && len(rows) > 0 && len(rows[0]) >= 2 {
		summary.PeriodStart = rows[0][0]
		summary.PeriodEnd = rows[0][1]
	}

	return summary, nil
}

func categoryNames() []string {
	categories := domain.Categories()
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.String())
	}
	return names
}
