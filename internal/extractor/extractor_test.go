package extractor

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportsight/internal/config"
	"sportsight/internal/exporter"
	"sportsight/internal/files"
	"sportsight/internal/infrastructure"
	"sportsight/internal/shared/testutil"
	"sportsight/pkg/contracts/domain"
)

func newTestRunContext(t *testing.T) *infrastructure.RunContext {
	t.Helper()
	paths := config.NewPaths(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return infrastructure.NewRunContext(paths, config.Default().Pipeline, logger)
}

func TestRunWithNoDocumentsWritesMarker(t *testing.T) {
	rc := newTestRunContext(t)

	result, err := New(rc).Run(context.Background(), rc)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Documents)
	assert.True(t, result.MarkerWritten)
	assert.FileExists(t, rc.Paths.GetRawPath(domain.MarkerFilename))

	data, err := os.ReadFile(rc.Paths.GetRawPath(domain.MarkerFilename))
	require.NoError(t, err)
	assert.Equal(t, domain.MarkerContent, string(data))

	// The intermediate table still exists, headers only.
	writer := exporter.NewCSVWriter(rc.Paths)
	headers, rows, err := writer.ReadCSV(rc.Paths.GetRawPath(domain.RawTableFilename))
	require.NoError(t, err)
	assert.Equal(t, domain.RawTableHeader, headers)
	assert.Empty(t, rows)
}

func TestRunConsolidatesExtractedTables(t *testing.T) {
	rc := newTestRunContext(t)
	// A stale marker from an earlier empty run must disappear on success.
	require.NoError(t, files.NewManager(rc.Paths).WriteMarker())

	testutil.WriteTablePDF(t, rc.Paths.GetDocumentPath("1-basketball-usage.pdf"), [][]string{
		{"date", "user_id", "feature_id"},
		{"2026-02-01", "u1", "3"},
		{"2026-02-02", "u2", "5"},
	})
	testutil.WriteTablePDF(t, rc.Paths.GetDocumentPath("2-soccer-usage.pdf"), [][]string{
		{"2026-02-01", "u9", "2"},
	})

	result, err := New(rc).Run(context.Background(), rc)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Documents)
	assert.Zero(t, result.Failed)
	assert.False(t, result.MarkerWritten)
	assert.NoFileExists(t, rc.Paths.GetRawPath(domain.MarkerFilename))

	require.Len(t, result.Records, 4)
	assert.Equal(t, domain.CategoryBasketball, result.Records[0].Category)
	assert.Equal(t, "date|user_id|feature_id", result.Records[0].Payload)
	assert.Equal(t, "2026-02-01|u1|3", result.Records[1].Payload)
	assert.Equal(t, domain.ContentTypeTable, result.Records[1].ContentType)
	assert.Equal(t, 1, result.Records[1].Page)
	assert.Equal(t, domain.CategorySoccer, result.Records[3].Category)
	assert.Equal(t, "2026-02-01|u9|2", result.Records[3].Payload)

	// The consolidated table round-trips.
	records, err := exporter.NewCSVWriter(rc.Paths).ReadRawTable()
	require.NoError(t, err)
	assert.Equal(t, result.Records, records)
}

func TestRunKeepsGoodDocumentsWhenOneFails(t *testing.T) {
	rc := newTestRunContext(t)

	testutil.WriteTablePDF(t, rc.Paths.GetDocumentPath("1-basketball-usage.pdf"), [][]string{
		{"2026-02-01", "u1", "3"},
		{"2026-02-02", "u1", "3"},
	})
	require.NoError(t, os.WriteFile(rc.Paths.GetDocumentPath("2-soccer-usage.pdf"), []byte("garbage"), 0644))

	result, err := New(rc).Run(context.Background(), rc)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Documents)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, result.MarkerWritten, "partial extraction still counts as usable output")
	require.Len(t, result.Records, 2)
	for _, record := range result.Records {
		assert.Equal(t, domain.CategoryBasketball, record.Category)
	}
}

func TestRunSkipsUnreadableDocument(t *testing.T) {
	rc := newTestRunContext(t)

	// Matches the basketball pattern but carries no PDF structure.
	path := rc.Paths.GetDocumentPath("1-basketball-usage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	result, err := New(rc).Run(context.Background(), rc)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Documents)
	assert.Equal(t, 1, result.Failed)
	assert.Empty(t, result.Records)
	assert.True(t, result.MarkerWritten, "a run with only failed documents yields nothing usable")
}

func TestRunIgnoresUnmatchedFilenames(t *testing.T) {
	rc := newTestRunContext(t)

	require.NoError(t, os.WriteFile(rc.Paths.GetDocumentPath("notes.pdf"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(rc.Paths.GetDocumentPath("readme.txt"), []byte("x"), 0644))

	result, err := New(rc).Run(context.Background(), rc)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Documents, "non-matching files are not source documents")
}

func TestRunRemovesStaleMarker(t *testing.T) {
	rc := newTestRunContext(t)
	manager := files.NewManager(rc.Paths)
	require.NoError(t, manager.WriteMarker())

	// Still no usable documents, so the marker is rewritten rather than
	// removed; the point is that Run owns the marker lifecycle.
	result, err := New(rc).Run(context.Background(), rc)
	require.NoError(t, err)
	assert.True(t, result.MarkerWritten)
	assert.True(t, manager.MarkerExists())
}

func TestRunHonorsCancellation(t *testing.T) {
	rc := newTestRunContext(t)
	path := rc.Paths.GetDocumentPath("1-basketball-usage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(rc).Run(ctx, rc)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "ab", clip("abc", 2))
	assert.Equal(t, "abc", clip("abc", 0), "non-positive limit disables clipping")
	assert.Equal(t, "hél", clip("héllo", 3), "clip counts runes, not bytes")
}
