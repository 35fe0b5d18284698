// Package extractor scans the source PDF reports and consolidates whatever
// tables or text they contain into the intermediate raw table. When nothing
// at all can be pulled out (image-only documents), it leaves an extraction
// marker behind so the modeler knows to synthesize data instead.
package extractor

import (
	"context"
	"log/slog"
	"strings"

	"sportsight/internal/errors"
	"sportsight/internal/exporter"
	"sportsight/internal/files"
	"sportsight/internal/infrastructure"
	"sportsight/pkg/contracts/domain"
)

// Result summarizes one extraction run.
type Result struct {
	Documents     int
	Failed        int
	Records       []domain.ExtractionRecord
	MarkerWritten bool
}

// Extractor pulls structured rows and free text out of the source documents.
type Extractor struct {
	discovery *files.Discovery
	manager   *files.Manager
	writer    *exporter.CSVWriter
}

// New creates an extractor bound to the run's path set.
func New(rc *infrastructure.RunContext) *Extractor {
	return &Extractor{
		discovery: files.NewDiscovery(rc.Paths.BaseDir),
		manager:   files.NewManager(rc.Paths),
		writer:    exporter.NewCSVWriter(rc.Paths),
	}
}

// Run processes every source document and writes either the consolidated raw
// table or the extraction marker. Per-document parse failures are logged and
// skipped; only storage failures propagate.
func (e *Extractor) Run(ctx context.Context, rc *infrastructure.RunContext) (*Result, error) {
	logger := rc.Logger

	docs, err := e.discovery.FindSourceDocuments(rc.Paths.DocumentsDir, logger)
	if err != nil {
		return nil, errors.NewStorageError("failed to scan documents directory", err)
	}

	result := &Result{Documents: len(docs)}
	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		records, err := e.extractDocument(doc, rc.Pipeline.RowTolerance, rc.Pipeline.MaxPayloadRunes)
		if err != nil {
			result.Failed++
			logger.Warn("document extraction failed, skipping",
				slog.String("file", doc.Name),
				slog.String("category", doc.Category.String()),
				slog.String("error", err.Error()))
			continue
		}

		logger.Info("document extracted",
			slog.String("file", doc.Name),
			slog.String("category", doc.Category.String()),
			slog.Int("records", len(records)))
		result.Records = append(result.Records, records...)
	}

	// The full record set is overwritten on each run, never merged.
	if err := e.writer.WriteRawTable(result.Records); err != nil {
		return nil, errors.NewStorageError("failed to write raw extraction table", err)
	}

	if len(result.Records) == 0 {
		if err := e.manager.WriteMarker(); err != nil {
			return nil, errors.NewStorageError("failed to write extraction marker", err)
		}
		result.MarkerWritten = true
		logger.Warn("no tables or text extracted from any document, marker written",
			slog.Int("documents", result.Documents))
		return result, nil
	}

	if err := e.manager.RemoveMarker(); err != nil {
		return nil, errors.NewStorageError("failed to remove stale extraction marker", err)
	}

	logger.Info("extraction complete",
		slog.Int("documents", result.Documents),
		slog.Int("failed", result.Failed),
		slog.Int("records", len(result.Records)))
	return result, nil
}

// extractDocument scans one PDF: structured tables first, free text second,
// nothing when the page carries neither.
func (e *Extractor) extractDocument(doc files.SourceDocument, rowTolerance float64, maxPayloadRunes int) ([]domain.ExtractionRecord, error) {
	pages, err := ReadPages(doc.Path, rowTolerance)
	if err != nil {
		return nil, err
	}

	var records []domain.ExtractionRecord
	for pageIdx, page := range pages {
		pageNum := pageIdx + 1
		switch page.Kind {
		case PageTable:
			for rowIdx, cells := range page.Rows {
				payload := strings.Join(cells, "|")
				if strings.TrimSpace(strings.ReplaceAll(payload, "|", "")) == "" {
					continue
				}
				records = append(records, domain.ExtractionRecord{
					Category:    doc.Category,
					SourceFile:  doc.Name,
					Page:        pageNum,
					TableIndex:  0,
					RowIndex:    rowIdx,
					ContentType: domain.ContentTypeTable,
					Payload:     payload,
				})
			}
		case PageText:
			for _, line := range page.Lines {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				records = append(records, domain.ExtractionRecord{
					Category:    doc.Category,
					SourceFile:  doc.Name,
					Page:        pageNum,
					TableIndex:  -1,
					RowIndex:    -1,
					ContentType: domain.ContentTypeText,
					Payload:     clip(line, maxPayloadRunes),
				})
			}
		case PageEmpty:
			// Image-only or blank page; nothing to record.
		}
	}
	return records, nil
}

// clip bounds a payload to at most n runes.
func clip(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
