package domain

import (
	"time"
)

// Provenance records whether a run's output tables were derived from real
// extracted data or from the synthetic generator. It is decided once per run
// and applies to all five tables uniformly.
type Provenance string

const (
	ProvenanceReal      Provenance = "real"
	ProvenanceSynthetic Provenance = "synthetic"
)

// UsageEvent is one cleaned usage observation parsed from a raw payload.
type UsageEvent struct {
	Category  Category  `json:"product_line"`
	Date      time.Time `json:"date"`
	UserID    string    `json:"user_id"`
	FeatureID int       `json:"feature_id"`
	Count     int       `json:"count" validate:"min=1"`
}

// KPIRecord is one scalar metric per product line.
type KPIRecord struct {
	Category Category `json:"product_line"`
	Metric   string   `json:"metric_name"`
	Value    float64  `json:"value"`
}

// MetricTotalUsers is the only KPI metric currently produced.
const MetricTotalUsers = "total_users"

// PeakDailyRecord is one (day, feature) usage bucket inside the trailing
// 7-day window, ordered by date ascending.
type PeakDailyRecord struct {
	Category  Category  `json:"product_line"`
	Date      time.Time `json:"date"`
	FeatureID int       `json:"feature_id"`
	TaskCount int       `json:"task_cnt"`
}

// PeakHourlyRecord is one hourly usage bucket inside the trailing 48-hour
// window, ordered by slot ascending.
type PeakHourlyRecord struct {
	Category  Category  `json:"product_line"`
	HourSlot  time.Time `json:"hour_slot"`
	TaskCount int       `json:"task_cnt"`
}

// DailyUsageRecord aggregates one calendar day for one product line.
type DailyUsageRecord struct {
	Category    Category  `json:"product_line"`
	Date        time.Time `json:"date"`
	AvgPerUser  float64   `json:"avg_daily_usage_per_user"`
	TotalCount  int       `json:"total_usage_count"`
	ActiveUsers int       `json:"dau"`
}

// NewUserRecord counts first-time users per calendar day per product line.
type NewUserRecord struct {
	Category Category  `json:"product_line"`
	Date     time.Time `json:"date"`
	NewUsers int       `json:"new_ai_users"`
}

// Dataset bundles the five output tables of one modeling run together with
// the provenance decision and the covered observation period.
type Dataset struct {
	Provenance  Provenance         `json:"provenance"`
	KPI         []KPIRecord        `json:"kpi"`
	Peak7d      []PeakDailyRecord  `json:"peak_7d"`
	Peak48h     []PeakHourlyRecord `json:"peak_48h"`
	DailyUsage  []DailyUsageRecord `json:"daily_usage"`
	NewUsers    []NewUserRecord    `json:"new_users"`
	PeriodStart time.Time          `json:"period_start"`
	PeriodEnd   time.Time          `json:"period_end"`
}

// Output table filenames under data/processed/.
const (
	KPIFilename        = "kpi.csv"
	Peak7dFilename     = "peak_7d.csv"
	Peak48hFilename    = "peak_48h.csv"
	DailyUsageFilename = "daily_usage.csv"
	NewUsersFilename   = "new_users.csv"
	PeriodFilename     = "observation_period.csv"
	ReleaseFilename    = "release_info.csv"
	SourceNoteFilename = "source_note.txt"
	WorkbookFilename   = "usage_report.xlsx"
)

// Column contracts of the processed tables. The presentation layer keys on
// these names, so real and synthetic output must emit them identically.
var (
	KPIHeader        = []string{"product_line", "metric_name", "value"}
	Peak7dHeader     = []string{"product_line", "date", "feature_id", "task_cnt"}
	Peak48hHeader    = []string{"product_line", "hour_slot", "task_cnt"}
	DailyUsageHeader = []string{"product_line", "date", "avg_daily_usage_per_user", "total_usage_count", "dau"}
	NewUsersHeader   = []string{"product_line", "date", "new_ai_users"}
)

// DateFormat is the calendar-day format used in all processed tables.
const DateFormat = "2006-01-02"

// HourSlotFormat is the hour-bucket format used in the 48-hour table.
const HourSlotFormat = "2006-01-02 15:00"
