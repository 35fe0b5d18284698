package modeler

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"sportsight/pkg/contracts/domain"
)

// Raw payload layouts accepted by the cleaner. Table rows come in as
// pipe-joined cells, text lines as whitespace-separated fields, both in the
// order: date, user id, feature id, optional count.
var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// CleanRecords parses raw extraction records into typed usage events.
// Unparseable records are dropped with a warning and never abort the run;
// the caller treats an empty result as the synthetic-fallback trigger.
func CleanRecords(records []domain.ExtractionRecord, logger *slog.Logger) []domain.UsageEvent {
	if logger == nil {
		logger = slog.Default()
	}

	var events []domain.UsageEvent
	dropped := 0
	for _, record := range records {
		event, ok := parseEvent(record)
		if !ok {
			dropped++
			logger.Warn("dropping unparseable record",
				slog.String("source_file", record.SourceFile),
				slog.Int("page", record.Page),
				slog.String("content_type", string(record.ContentType)),
				slog.String("payload", record.Payload))
			continue
		}
		events = append(events, event)
	}

	logger.Info("cleaning complete",
		slog.Int("records", len(records)),
		slog.Int("events", len(events)),
		slog.Int("dropped", dropped))
	return events
}

// parseEvent turns one raw payload into a usage event. Header rows, footers
// and prose lines simply fail to parse and are reported as not-ok.
func parseEvent(record domain.ExtractionRecord) (domain.UsageEvent, bool) {
	var fields []string
	switch record.ContentType {
	case domain.ContentTypeTable:
		fields = strings.Split(record.Payload, "|")
	case domain.ContentTypeText:
		fields = strings.Fields(record.Payload)
	default:
		return domain.UsageEvent{}, false
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 3 {
		return domain.UsageEvent{}, false
	}

	date, ok := parseDate(fields[0])
	if !ok {
		return domain.UsageEvent{}, false
	}

	userID := fields[1]
	if userID == "" {
		return domain.UsageEvent{}, false
	}

	featureID, err := strconv.Atoi(fields[2])
	if err != nil || featureID < 0 {
		return domain.UsageEvent{}, false
	}

	count := 1
	if len(fields) >= 4 && fields[3] != "" {
		count, err = strconv.Atoi(fields[3])
		if err != nil || count < 1 {
			return domain.UsageEvent{}, false
		}
	}

	return domain.UsageEvent{
		Category:  record.Category,
		Date:      date,
		UserID:    userID,
		FeatureID: featureID,
		Count:     count,
	}, true
}

// parseDate tries the accepted layouts in order. Text extraction splits a
// "2026-02-03 14:00" timestamp into two fields, so a bare date is enough.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
