package exporter

import (
	"fmt"
	"strconv"

	"sportsight/pkg/contracts/domain"
)

// WriteRawTable writes the consolidated intermediate extraction table,
// overwriting any prior one. A nil or empty record slice still produces a
// headers-only file so downstream readers always find the schema.
func (w *CSVWriter) WriteRawTable(records []domain.ExtractionRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Category.String(),
			r.SourceFile,
			strconv.Itoa(r.Page),
			strconv.Itoa(r.TableIndex),
			strconv.Itoa(r.RowIndex),
			string(r.ContentType),
			r.Payload,
		})
	}
	return w.WriteSimpleCSV("raw/"+domain.RawTableFilename, domain.RawTableHeader, rows)
}

// ReadRawTable loads the intermediate table back into extraction records.
// Rows with an unknown category or content type are skipped; the caller
// decides what an empty result means.
func (w *CSVWriter) ReadRawTable() ([]domain.ExtractionRecord, error) {
	_, rows, err := w.ReadCSV("raw/" + domain.RawTableFilename)
	if err != nil {
		return nil, err
	}

	var records []domain.ExtractionRecord
	for _, row := range rows {
		if len(row) < 7 {
			continue
		}
		category, err := domain.ParseCategory(row[0])
		if err != nil {
			continue
		}
		contentType := domain.ContentType(row[5])
		if contentType != domain.ContentTypeTable && contentType != domain.ContentTypeText {
			continue
		}
		page, _ := strconv.Atoi(row[2])
		tableIndex, _ := strconv.Atoi(row[3])
		rowIndex, _ := strconv.Atoi(row[4])
		records = append(records, domain.ExtractionRecord{
			Category:    category,
			SourceFile:  row[1],
			Page:        page,
			TableIndex:  tableIndex,
			RowIndex:    rowIndex,
			ContentType: contentType,
			Payload:     row[6],
		})
	}
	return records, nil
}

// WriteDataset writes the five output tables as a full snapshot, plus the
// observation period and release info supplements.
func (w *CSVWriter) WriteDataset(ds *domain.Dataset) error {
	kpiRows := make([][]string, 0, len(ds.KPI))
	for _, r := range ds.KPI {
		kpiRows = append(kpiRows, []string{r.Category.String(), r.Metric, formatValue(r.Value)})
	}
	if err := w.WriteSimpleCSV(domain.KPIFilename, domain.KPIHeader, kpiRows); err != nil {
		return err
	}

	peak7dRows := make([][]string, 0, len(ds.Peak7d))
	for _, r := range ds.Peak7d {
		peak7dRows = append(peak7dRows, []string{
			r.Category.String(),
			r.Date.Format(domain.DateFormat),
			strconv.Itoa(r.FeatureID),
			strconv.Itoa(r.TaskCount),
		})
	}
	if err := w.WriteSimpleCSV(domain.Peak7dFilename, domain.Peak7dHeader, peak7dRows); err != nil {
		return err
	}

	peak48hRows := make([][]string, 0, len(ds.Peak48h))
	for _, r := range ds.Peak48h {
		peak48hRows = append(peak48hRows, []string{
			r.Category.String(),
			r.HourSlot.Format(domain.HourSlotFormat),
			strconv.Itoa(r.TaskCount),
		})
	}
	if err := w.WriteSimpleCSV(domain.Peak48hFilename, domain.Peak48hHeader, peak48hRows); err != nil {
		return err
	}

	dailyRows := make([][]string, 0, len(ds.DailyUsage))
	for _, r := range ds.DailyUsage {
		dailyRows = append(dailyRows, []string{
			r.Category.String(),
			r.Date.Format(domain.DateFormat),
			fmt.Sprintf("%.2f", r.AvgPerUser),
			strconv.Itoa(r.TotalCount),
			strconv.Itoa(r.ActiveUsers),
		})
	}
	if err := w.WriteSimpleCSV(domain.DailyUsageFilename, domain.DailyUsageHeader, dailyRows); err != nil {
		return err
	}

	newUserRows := make([][]string, 0, len(ds.NewUsers))
	for _, r := range ds.NewUsers {
		newUserRows = append(newUserRows, []string{
			r.Category.String(),
			r.Date.Format(domain.DateFormat),
			strconv.Itoa(r.NewUsers),
		})
	}
	if err := w.WriteSimpleCSV(domain.NewUsersFilename, domain.NewUsersHeader, newUserRows); err != nil {
		return err
	}

	if err := w.WriteSimpleCSV(domain.PeriodFilename,
		[]string{"start_date", "end_date"},
		[][]string{{ds.PeriodStart.Format(domain.DateFormat), ds.PeriodEnd.Format(domain.DateFormat)}}); err != nil {
		return err
	}

	return w.WriteSimpleCSV(domain.ReleaseFilename,
		[]string{"region", "release_date"},
		[][]string{
			{"domestic", "2026-02-09"},
			{"overseas", "2026-02-11"},
		})
}

// formatValue renders a KPI value without a trailing ".0" for whole numbers.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
