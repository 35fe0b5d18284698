package exporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sportsight/internal/config"
	"sportsight/pkg/contracts/domain"
)

func TestWorkbookWrite(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())
	writer := NewWorkbookWriter(paths)

	day := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	ds := &domain.Dataset{
		Provenance: domain.ProvenanceSynthetic,
		KPI: []domain.KPIRecord{
			{Category: domain.CategoryBasketball, Metric: domain.MetricTotalUsers, Value: 16},
			{Category: domain.CategorySoccer, Metric: domain.MetricTotalUsers, Value: 12},
		},
		DailyUsage: []domain.DailyUsageRecord{
			{Category: domain.CategoryBasketball, Date: day, AvgPerUser: 2, TotalCount: 4, ActiveUsers: 2},
		},
		PeriodStart: day,
		PeriodEnd:   day,
	}
	require.NoError(t, writer.Write(ds))

	f, err := excelize.OpenFile(paths.GetProcessedPath(domain.WorkbookFilename))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"KPI", "Peak 7d", "Peak 48h", "Daily Usage", "New Users"}, f.GetSheetList())

	rows, err := f.GetRows("KPI")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"product_line", "metric_name", "value"}, rows[0])
	assert.Equal(t, []string{"basketball", "total_users", "16"}, rows[1])
	assert.Equal(t, []string{"soccer", "total_users", "12"}, rows[2])

	rows, err = f.GetRows("Daily Usage")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"basketball", "2026-02-03", "2", "4", "2"}, rows[1])
}
