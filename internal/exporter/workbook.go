package exporter

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"sportsight/internal/config"
	"sportsight/pkg/contracts/domain"
)

// WorkbookWriter exports the full dataset as a single Excel workbook with
// one sheet per output table, the analyst-facing counterpart of the CSV
// snapshot.
type WorkbookWriter struct {
	paths *config.Paths
}

// NewWorkbookWriter creates a new workbook writer instance
func NewWorkbookWriter(paths *config.Paths) *WorkbookWriter {
	return &WorkbookWriter{paths: paths}
}

// Write renders ds into data/processed/usage_report.xlsx, overwriting any
// prior version.
func (w *WorkbookWriter) Write(ds *domain.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name   string
		header []string
		rows   [][]interface{}
	}{
		{"KPI", domain.KPIHeader, kpiSheetRows(ds.KPI)},
		{"Peak 7d", domain.Peak7dHeader, peak7dSheetRows(ds.Peak7d)},
		{"Peak 48h", domain.Peak48hHeader, peak48hSheetRows(ds.Peak48h)},
		{"Daily Usage", domain.DailyUsageHeader, dailySheetRows(ds.DailyUsage)},
		{"New Users", domain.NewUsersHeader, newUserSheetRows(ds.NewUsers)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet.name)
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
			}
		}

		header := make([]interface{}, len(sheet.header))
		for c, h := range sheet.header {
			header[c] = h
		}
		if err := writeSheetRow(f, sheet.name, 1, header); err != nil {
			return err
		}
		for r, row := range sheet.rows {
			if err := writeSheetRow(f, sheet.name, r+2, row); err != nil {
				return err
			}
		}
	}

	path := w.paths.GetProcessedPath(domain.WorkbookFilename)
	slog.Info("writing usage report workbook",
		slog.String("path", path),
		slog.String("provenance", string(ds.Provenance)))

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d on sheet %s: %w", rowNum, sheet, err)
	}
	return nil
}

func kpiSheetRows(records []domain.KPIRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{r.Category.String(), r.Metric, r.Value})
	}
	return rows
}

func peak7dSheetRows(records []domain.PeakDailyRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Category.String(), r.Date.Format(domain.DateFormat), r.FeatureID, r.TaskCount,
		})
	}
	return rows
}

func peak48hSheetRows(records []domain.PeakHourlyRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Category.String(), r.HourSlot.Format(domain.HourSlotFormat), r.TaskCount,
		})
	}
	return rows
}

func dailySheetRows(records []domain.DailyUsageRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		avg, _ := strconv.ParseFloat(fmt.Sprintf("%.2f", r.AvgPerUser), 64)
		rows = append(rows, []interface{}{
			r.Category.String(), r.Date.Format(domain.DateFormat), avg, r.TotalCount, r.ActiveUsers,
		})
	}
	return rows
}

func newUserSheetRows(records []domain.NewUserRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Category.String(), r.Date.Format(domain.DateFormat), r.NewUsers,
		})
	}
	return rows
}
