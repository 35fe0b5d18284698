// Package modeler turns the intermediate extraction table into the five
// analysis-ready output tables consumed by the dashboard. When extraction
// produced nothing usable it generates a schema-identical synthetic dataset
// instead; the two paths are never mixed within one run.
package modeler

import (
	"context"
	"log/slog"

	"sportsight/internal/errors"
	"sportsight/internal/exporter"
	"sportsight/internal/files"
	"sportsight/internal/infrastructure"
	"sportsight/pkg/contracts/domain"
)

const syntheticSourceNote = "Data generated from synthetic fallback (no extractable tables/text in source documents)."

// Modeler builds and writes the processed dataset.
type Modeler struct {
	manager  *files.Manager
	writer   *exporter.CSVWriter
	workbook *exporter.WorkbookWriter
}

// New creates a modeler bound to the run's path set.
func New(rc *infrastructure.RunContext) *Modeler {
	return &Modeler{
		manager:  files.NewManager(rc.Paths),
		writer:   exporter.NewCSVWriter(rc.Paths),
		workbook: exporter.NewWorkbookWriter(rc.Paths),
	}
}

// Run decides provenance once, builds the dataset and writes all outputs as
// a full snapshot. Only a synthetic-generation failure is fatal.
func (m *Modeler) Run(ctx context.Context, rc *infrastructure.RunContext) (*domain.Dataset, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	logger := rc.Logger
	ds, err := m.buildDataset(rc)
	if err != nil {
		return nil, err
	}

	logger.Info("dataset built",
		slog.String("provenance", string(ds.Provenance)),
		slog.String("period_start", ds.PeriodStart.Format(domain.DateFormat)),
		slog.String("period_end", ds.PeriodEnd.Format(domain.DateFormat)),
		slog.Int("daily_rows", len(ds.DailyUsage)))

	if err := m.writer.WriteDataset(ds); err != nil {
		return nil, errors.NewStorageError("failed to write output tables", err)
	}
	if err := m.workbook.Write(ds); err != nil {
		return nil, errors.NewStorageError("failed to write usage report workbook", err)
	}

	if ds.Provenance == domain.ProvenanceSynthetic {
		if err := m.manager.WriteNote(domain.SourceNoteFilename, syntheticSourceNote); err != nil {
			return nil, err
		}
	} else {
		if err := m.manager.RemoveNote(domain.SourceNoteFilename); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// buildDataset makes the real-versus-synthetic decision exactly once. The
// single authoritative fallback trigger is "zero usable events after
// cleaning"; the marker and a missing or empty raw table are just earlier
// manifestations of it.
func (m *Modeler) buildDataset(rc *infrastructure.RunContext) (*domain.Dataset, error) {
	logger := rc.Logger
	syntheticCfg := DefaultSyntheticConfig(rc.Pipeline.SyntheticSeed)

	if m.manager.MarkerExists() {
		logger.Info("extraction marker present, using synthetic data")
		return GenerateSynthetic(syntheticCfg)
	}

	records, err := m.writer.ReadRawTable()
	if err != nil {
		logger.Warn("raw extraction table unreadable, using synthetic data",
			slog.String("error", err.Error()))
		return GenerateSynthetic(syntheticCfg)
	}
	if len(records) == 0 {
		logger.Info("raw extraction table empty, using synthetic data")
		return GenerateSynthetic(syntheticCfg)
	}

	events := CleanRecords(records, logger)
	if len(events) == 0 {
		logger.Warn("cleaning produced zero usable events, falling back to synthetic data",
			slog.Int("records", len(records)))
		return GenerateSynthetic(syntheticCfg)
	}

	return Aggregate(events), nil
}
