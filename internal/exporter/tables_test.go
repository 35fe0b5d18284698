package exporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportsight/pkg/contracts/domain"
)

func TestWriteRawTableEmptyStillWritesHeaders(t *testing.T) {
	writer, paths := newTestWriter(t)

	require.NoError(t, writer.WriteRawTable(nil))

	headers, rows, err := writer.ReadCSV(paths.GetRawPath(domain.RawTableFilename))
	require.NoError(t, err)
	assert.Equal(t, domain.RawTableHeader, headers)
	assert.Empty(t, rows, "empty extraction must still leave the schema behind")
}

func TestRawTableRoundTrip(t *testing.T) {
	writer, _ := newTestWriter(t)

	records := []domain.ExtractionRecord{
		{
			Category:    domain.CategoryBasketball,
			SourceFile:  "1-basketball-usage.pdf",
			Page:        1,
			TableIndex:  0,
			RowIndex:    2,
			ContentType: domain.ContentTypeTable,
			Payload:     "2026-02-03|u1|2|3",
		},
		{
			Category:    domain.CategorySoccer,
			SourceFile:  "2-soccer-usage.pdf",
			Page:        3,
			TableIndex:  -1,
			RowIndex:    -1,
			ContentType: domain.ContentTypeText,
			Payload:     "2026-02-04 u7 5",
		},
	}
	require.NoError(t, writer.WriteRawTable(records))

	got, err := writer.ReadRawTable()
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestReadRawTableSkipsCorruptRows(t *testing.T) {
	writer, _ := newTestWriter(t)

	rows := [][]string{
		{"basketball", "f.pdf", "1", "0", "0", "table", "good|row|1"},
		{"cricket", "f.pdf", "1", "0", "1", "table", "bad category"},
		{"soccer", "f.pdf", "1", "0", "2", "image", "bad content type"},
		{"soccer", "f.pdf", "1"},
	}
	require.NoError(t, writer.WriteSimpleCSV("raw/"+domain.RawTableFilename, domain.RawTableHeader, rows))

	records, err := writer.ReadRawTable()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.CategoryBasketball, records[0].Category)
	assert.Equal(t, "good|row|1", records[0].Payload)
}

func TestWriteDataset(t *testing.T) {
	writer, paths := newTestWriter(t)

	day := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	ds := &domain.Dataset{
		Provenance: domain.ProvenanceReal,
		KPI: []domain.KPIRecord{
			{Category: domain.CategoryBasketball, Metric: domain.MetricTotalUsers, Value: 16},
		},
		Peak7d: []domain.PeakDailyRecord{
			{Category: domain.CategoryBasketball, Date: day, FeatureID: 2, TaskCount: 4},
		},
		Peak48h: []domain.PeakHourlyRecord{
			{Category: domain.CategoryBasketball, HourSlot: day.Add(14 * time.Hour), TaskCount: 1},
		},
		DailyUsage: []domain.DailyUsageRecord{
			{Category: domain.CategoryBasketball, Date: day, AvgPerUser: 1.5, TotalCount: 3, ActiveUsers: 2},
		},
		NewUsers: []domain.NewUserRecord{
			{Category: domain.CategoryBasketball, Date: day, NewUsers: 2},
		},
		PeriodStart: day,
		PeriodEnd:   day,
	}
	require.NoError(t, writer.WriteDataset(ds))

	headers, rows, err := writer.ReadCSV(paths.GetProcessedPath(domain.KPIFilename))
	require.NoError(t, err)
	assert.Equal(t, domain.KPIHeader, headers)
	assert.Equal(t, [][]string{{"basketball", "total_users", "16"}}, rows)

	headers, rows, err = writer.ReadCSV(paths.GetProcessedPath(domain.Peak48hFilename))
	require.NoError(t, err)
	assert.Equal(t, domain.Peak48hHeader, headers)
	assert.Equal(t, [][]string{{"basketball", "2026-02-03 14:00", "1"}}, rows)

	_, rows, err = writer.ReadCSV(paths.GetProcessedPath(domain.DailyUsageFilename))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"basketball", "2026-02-03", "1.50", "3", "2"}}, rows)

	_, rows, err = writer.ReadCSV(paths.GetProcessedPath(domain.PeriodFilename))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2026-02-03", "2026-02-03"}}, rows)

	_, rows, err = writer.ReadCSV(paths.GetProcessedPath(domain.ReleaseFilename))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"domestic", "2026-02-09"},
		{"overseas", "2026-02-11"},
	}, rows)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "16", formatValue(16))
	assert.Equal(t, "2.5", formatValue(2.5))
	assert.Equal(t, "0", formatValue(0))
}
