package modeler

import (
	"sort"
	"time"

	"sportsight/pkg/contracts/domain"
)

// categoryStats accumulates one category's single-pass aggregation state.
type categoryStats struct {
	users      map[string]struct{}
	firstSeen  map[string]time.Time
	dayTotals  map[time.Time]int
	dayUsers   map[time.Time]map[string]struct{}
	hourTotals map[time.Time]int
	dayFeature map[time.Time]map[int]int
	features   map[int]struct{}
}

func newCategoryStats() *categoryStats {
	return &categoryStats{
		users:      make(map[string]struct{}),
		firstSeen:  make(map[string]time.Time),
		dayTotals:  make(map[time.Time]int),
		dayUsers:   make(map[time.Time]map[string]struct{}),
		hourTotals: make(map[time.Time]int),
		dayFeature: make(map[time.Time]map[int]int),
		features:   make(map[int]struct{}),
	}
}

// Aggregate reshapes cleaned usage events into the five output tables.
// Every category is zero-filled over the shared observation period so the
// tables carry identical category sets and date ranges.
func Aggregate(events []domain.UsageEvent) *domain.Dataset {
	stats := make(map[domain.Category]*categoryStats)
	var minDay, maxDay time.Time

	for _, event := range events {
		day := truncateDay(event.Date)
		hour := event.Date.Truncate(time.Hour)

		cs, ok := stats[event.Category]
		if !ok {
			cs = newCategoryStats()
			stats[event.Category] = cs
		}

		cs.users[event.UserID] = struct{}{}
		if first, ok := cs.firstSeen[event.UserID]; !ok || day.Before(first) {
			cs.firstSeen[event.UserID] = day
		}
		cs.dayTotals[day] += event.Count
		if cs.dayUsers[day] == nil {
			cs.dayUsers[day] = make(map[string]struct{})
		}
		cs.dayUsers[day][event.UserID] = struct{}{}
		cs.hourTotals[hour] += event.Count
		if cs.dayFeature[day] == nil {
			cs.dayFeature[day] = make(map[int]int)
		}
		cs.dayFeature[day][event.FeatureID] += event.Count
		cs.features[event.FeatureID] = struct{}{}

		if minDay.IsZero() || day.Before(minDay) {
			minDay = day
		}
		if maxDay.IsZero() || day.After(maxDay) {
			maxDay = day
		}
	}

	ds := &domain.Dataset{
		Provenance:  domain.ProvenanceReal,
		PeriodStart: minDay,
		PeriodEnd:   maxDay,
	}

	for _, category := range domain.Categories() {
		cs, ok := stats[category]
		if !ok {
			continue
		}

		ds.KPI = append(ds.KPI, domain.KPIRecord{
			Category: category,
			Metric:   domain.MetricTotalUsers,
			Value:    float64(len(cs.users)),
		})

		for day := minDay; !day.After(maxDay); day = day.AddDate(0, 0, 1) {
			total := cs.dayTotals[day]
			active := len(cs.dayUsers[day])
			avg := 0.0
			if active > 0 {
				avg = float64(total) / float64(active)
			}
			ds.DailyUsage = append(ds.DailyUsage, domain.DailyUsageRecord{
				Category:    category,
				Date:        day,
				AvgPerUser:  avg,
				TotalCount:  total,
				ActiveUsers: active,
			})

			newUsers := 0
			for _, first := range cs.firstSeen {
				if first.Equal(day) {
					newUsers++
				}
			}
			ds.NewUsers = append(ds.NewUsers, domain.NewUserRecord{
				Category: category,
				Date:     day,
				NewUsers: newUsers,
			})
		}

		ds.Peak7d = append(ds.Peak7d, peakDaily(category, cs, minDay, maxDay)...)
		ds.Peak48h = append(ds.Peak48h, peakHourly(category, cs, maxDay)...)
	}

	return ds
}

// peakDaily builds the trailing 7-day window, one row per (day, feature),
// zero-filled across the category's observed feature set.
func peakDaily(category domain.Category, cs *categoryStats, minDay, maxDay time.Time) []domain.PeakDailyRecord {
	start := maxDay.AddDate(0, 0, -6)
	if start.Before(minDay) {
		start = minDay
	}

	features := make([]int, 0, len(cs.features))
	for feature := range cs.features {
		features = append(features, feature)
	}
	sort.Ints(features)

	var records []domain.PeakDailyRecord
	for day := start; !day.After(maxDay); day = day.AddDate(0, 0, 1) {
		for _, feature := range features {
			records = append(records, domain.PeakDailyRecord{
				Category:  category,
				Date:      day,
				FeatureID: feature,
				TaskCount: cs.dayFeature[day][feature],
			})
		}
	}
	return records
}

// peakHourly builds the trailing 48-hour window ending on the last observed
// day. Events parsed without a time component land on the 00:00 slot.
func peakHourly(category domain.Category, cs *categoryStats, maxDay time.Time) []domain.PeakHourlyRecord {
	end := maxDay.Add(23 * time.Hour)
	start := end.Add(-47 * time.Hour)

	records := make([]domain.PeakHourlyRecord, 0, 48)
	for slot := start; !slot.After(end); slot = slot.Add(time.Hour) {
		records = append(records, domain.PeakHourlyRecord{
			Category:  category,
			HourSlot:  slot,
			TaskCount: cs.hourTotals[slot],
		})
	}
	return records
}

// truncateDay normalizes a timestamp to its calendar day in UTC.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
