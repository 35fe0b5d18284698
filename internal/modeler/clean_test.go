package modeler

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportsight/pkg/contracts/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tableRecord(payload string) domain.ExtractionRecord {
	return domain.ExtractionRecord{
		Category:    domain.CategoryBasketball,
		SourceFile:  "1-basketball-usage.pdf",
		Page:        1,
		ContentType: domain.ContentTypeTable,
		Payload:     payload,
	}
}

func textRecord(payload string) domain.ExtractionRecord {
	return domain.ExtractionRecord{
		Category:    domain.CategorySoccer,
		SourceFile:  "2-soccer-usage.pdf",
		Page:        1,
		TableIndex:  -1,
		RowIndex:    -1,
		ContentType: domain.ContentTypeText,
		Payload:     payload,
	}
}

func TestParseEventTablePayload(t *testing.T) {
	event, ok := parseEvent(tableRecord("2026-02-03|u1|2|3"))
	require.True(t, ok)

	assert.Equal(t, domain.CategoryBasketball, event.Category)
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), event.Date)
	assert.Equal(t, "u1", event.UserID)
	assert.Equal(t, 2, event.FeatureID)
	assert.Equal(t, 3, event.Count)
}

func TestParseEventTextPayload(t *testing.T) {
	event, ok := parseEvent(textRecord("2026-02-04 u7 5"))
	require.True(t, ok)

	assert.Equal(t, domain.CategorySoccer, event.Category)
	assert.Equal(t, "u7", event.UserID)
	assert.Equal(t, 5, event.FeatureID)
	assert.Equal(t, 1, event.Count, "missing count defaults to one event")
}

func TestParseEventWithTimestamp(t *testing.T) {
	event, ok := parseEvent(tableRecord("2026-02-03 14:30|u1|2"))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 3, 14, 30, 0, 0, time.UTC), event.Date)
}

func TestParseEventRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"header row", "date|user_id|feature_id"},
		{"too few fields", "2026-02-03|u1"},
		{"bad date", "02/03/26|u1|2"},
		{"empty user", "2026-02-03||2"},
		{"non-numeric feature", "2026-02-03|u1|search"},
		{"negative feature", "2026-02-03|u1|-2"},
		{"zero count", "2026-02-03|u1|2|0"},
		{"non-numeric count", "2026-02-03|u1|2|lots"},
		{"prose line", "Weekly usage summary for the basketball product"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseEvent(tableRecord(tt.payload))
			assert.False(t, ok)
		})
	}
}

func TestCleanRecordsDropsWithoutAborting(t *testing.T) {
	records := []domain.ExtractionRecord{
		tableRecord("date|user_id|feature_id|count"),
		tableRecord("2026-02-03|u1|2|3"),
		textRecord("not an event at all"),
		textRecord("2026-02-04 u7 5 2"),
	}

	events := CleanRecords(records, discardLogger())
	require.Len(t, events, 2)
	assert.Equal(t, "u1", events[0].UserID)
	assert.Equal(t, "u7", events[1].UserID)
	assert.Equal(t, 2, events[1].Count)
}

func TestCleanRecordsAllUnparseable(t *testing.T) {
	records := []domain.ExtractionRecord{
		textRecord("Quarterly highlights"),
		tableRecord("metric|value"),
	}
	events := CleanRecords(records, discardLogger())
	assert.Empty(t, events)
}
