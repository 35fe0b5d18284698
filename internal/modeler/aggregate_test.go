package modeler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportsight/pkg/contracts/domain"
)

func day(d int) time.Time {
	return time.Date(2026, 2, d, 0, 0, 0, 0, time.UTC)
}

func event(c domain.Category, date time.Time, user string, feature, count int) domain.UsageEvent {
	return domain.UsageEvent{Category: c, Date: date, UserID: user, FeatureID: feature, Count: count}
}

func TestAggregateKPIDistinctUsers(t *testing.T) {
	events := []domain.UsageEvent{
		event(domain.CategoryBasketball, day(1), "u1", 2, 1),
		event(domain.CategoryBasketball, day(2), "u1", 2, 1),
		event(domain.CategoryBasketball, day(2), "u2", 3, 1),
		event(domain.CategorySoccer, day(1), "u9", 2, 1),
	}

	ds := Aggregate(events)
	require.Len(t, ds.KPI, 2)
	assert.Equal(t, domain.CategoryBasketball, ds.KPI[0].Category)
	assert.Equal(t, float64(2), ds.KPI[0].Value, "repeat users count once")
	assert.Equal(t, domain.CategorySoccer, ds.KPI[1].Category)
	assert.Equal(t, float64(1), ds.KPI[1].Value)
	assert.Equal(t, domain.MetricTotalUsers, ds.KPI[0].Metric)
}

func TestAggregateZeroFillsSharedRange(t *testing.T) {
	// Basketball spans days 1-3, soccer only day 2. Both categories must
	// cover the full shared range.
	events := []domain.UsageEvent{
		event(domain.CategoryBasketball, day(1), "u1", 2, 2),
		event(domain.CategoryBasketball, day(3), "u1", 2, 1),
		event(domain.CategorySoccer, day(2), "u9", 5, 4),
	}

	ds := Aggregate(events)
	assert.Equal(t, day(1), ds.PeriodStart)
	assert.Equal(t, day(3), ds.PeriodEnd)
	require.Len(t, ds.DailyUsage, 6, "two categories times three days")

	byKey := map[string]domain.DailyUsageRecord{}
	for _, r := range ds.DailyUsage {
		byKey[r.Category.String()+r.Date.Format(domain.DateFormat)] = r
	}

	// Zero-filled day for basketball.
	gap := byKey["basketball2026-02-02"]
	assert.Equal(t, 0, gap.TotalCount)
	assert.Equal(t, 0, gap.ActiveUsers)
	assert.Equal(t, 0.0, gap.AvgPerUser)

	// Soccer gets rows outside its own observed day too.
	assert.Contains(t, byKey, "soccer2026-02-01")
	assert.Contains(t, byKey, "soccer2026-02-03")

	active := byKey["soccer2026-02-02"]
	assert.Equal(t, 4, active.TotalCount)
	assert.Equal(t, 1, active.ActiveUsers)
	assert.Equal(t, 4.0, active.AvgPerUser)
}

func TestAggregateNewUsers(t *testing.T) {
	events := []domain.UsageEvent{
		event(domain.CategoryBasketball, day(1), "u1", 2, 1),
		event(domain.CategoryBasketball, day(2), "u1", 2, 1),
		event(domain.CategoryBasketball, day(2), "u2", 2, 1),
		event(domain.CategoryBasketball, day(3), "u3", 2, 1),
	}

	ds := Aggregate(events)
	counts := map[string]int{}
	for _, r := range ds.NewUsers {
		if r.Category == domain.CategoryBasketball {
			counts[r.Date.Format(domain.DateFormat)] = r.NewUsers
		}
	}
	assert.Equal(t, 1, counts["2026-02-01"])
	assert.Equal(t, 1, counts["2026-02-02"], "u1 already seen on day one")
	assert.Equal(t, 1, counts["2026-02-03"])
}

func TestAggregatePeakDailyWindow(t *testing.T) {
	// Ten days of data; the peak table must cover only the trailing seven,
	// zero-filled across every observed feature.
	var events []domain.UsageEvent
	for d := 1; d <= 10; d++ {
		events = append(events, event(domain.CategoryBasketball, day(d), "u1", 2, 1))
	}
	events = append(events, event(domain.CategoryBasketball, day(10), "u1", 5, 3))

	ds := Aggregate(events)
	require.Len(t, ds.Peak7d, 14, "seven days times two features")

	assert.Equal(t, day(4), ds.Peak7d[0].Date, "window starts six days before the last")
	assert.Equal(t, 2, ds.Peak7d[0].FeatureID, "features sorted ascending")

	last := ds.Peak7d[len(ds.Peak7d)-1]
	assert.Equal(t, day(10), last.Date)
	assert.Equal(t, 5, last.FeatureID)
	assert.Equal(t, 3, last.TaskCount)
}

func TestAggregatePeakDailyShortRange(t *testing.T) {
	events := []domain.UsageEvent{
		event(domain.CategoryBasketball, day(1), "u1", 2, 1),
		event(domain.CategoryBasketball, day(2), "u1", 2, 1),
	}

	ds := Aggregate(events)
	require.Len(t, ds.Peak7d, 2, "window never extends before the first observed day")
}

func TestAggregatePeakHourly(t *testing.T) {
	ts := time.Date(2026, 2, 3, 14, 30, 0, 0, time.UTC)
	events := []domain.UsageEvent{
		event(domain.CategoryBasketball, ts, "u1", 2, 2),
		event(domain.CategoryBasketball, ts.Add(10*time.Minute), "u2", 2, 1),
	}

	ds := Aggregate(events)
	require.Len(t, ds.Peak48h, 48)

	assert.Equal(t, time.Date(2026, 2, 3, 23, 0, 0, 0, time.UTC), ds.Peak48h[47].HourSlot,
		"window ends on the last hour of the last observed day")

	total := 0
	for _, r := range ds.Peak48h {
		if r.HourSlot.Equal(time.Date(2026, 2, 3, 14, 0, 0, 0, time.UTC)) {
			total = r.TaskCount
		}
	}
	assert.Equal(t, 3, total, "events in the same hour share a slot")
}

func TestAggregateEmpty(t *testing.T) {
	ds := Aggregate(nil)
	assert.Equal(t, domain.ProvenanceReal, ds.Provenance)
	assert.Empty(t, ds.KPI)
	assert.Empty(t, ds.DailyUsage)
}
