package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SlabCut/internal/model"
)

func buildReportTestParts() ([]model.Part, []model.Placement) {
	parts := []model.Part{
		model.NewPart("Frame", model.NewRectRing(0, 0, 400, 400), model.NewRectRing(100, 100, 100, 100)),
		model.NewPart("Tenant", model.NewRectRing(0, 0, 80, 80)),
		model.NewPart("Shelf", model.NewRectRing(0, 0, 300, 200)),
	}
	placements := []model.Placement{
		{X: 0, Y: 0, HostPartIndex: model.SheetLevel},
		{X: 150, Y: 150, HostPartIndex: 0, HostHoleIndex: 0},
		{X: 420, Y: 0, HostPartIndex: model.SheetLevel},
	}
	return parts, placements
}

func TestExportReport_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")

	parts, placements := buildReportTestParts()
	require.NoError(t, ExportReport(path, parts, placements, 0.3, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))
}

func TestExportReport_WithIssues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report_issues.pdf")

	parts, placements := buildReportTestParts()
	require.NoError(t, ExportReport(path, parts, placements, 0.3, []string{"part 1 overlaps part 2"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))
}

func TestExportReport_NoParts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportReport(path, nil, nil, 0, nil)
	assert.Error(t, err)
}

func TestExportReport_MismatchedLengths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mismatch.pdf")

	parts := []model.Part{model.NewPart("A", model.NewRectRing(0, 0, 100, 100))}
	err := ExportReport(path, parts, nil, 0, nil)
	assert.Error(t, err)
}

func TestPlacePolygons_DepthAndHoleTransform(t *testing.T) {
	parts, placements := buildReportTestParts()
	placed := placePolygons(parts, placements)

	require.Len(t, placed, 3)
	assert.Equal(t, 0, placed[0].depth)
	assert.Equal(t, 1, placed[1].depth)
	assert.Equal(t, 0, placed[2].depth)

	require.Len(t, placed[0].holes, 1)
	assert.Len(t, placed[0].holes[0], 4)
}

func TestSheetLevelBoundingBox_ExcludesHostedParts(t *testing.T) {
	parts, placements := buildReportTestParts()
	placed := placePolygons(parts, placements)

	bb := sheetLevelBoundingBox(placements, placed)
	assert.InDelta(t, 0, bb.MinX, 1e-9)
	assert.InDelta(t, 720, bb.MaxX, 1e-9)
}

func TestPolygonArea_Rectangle(t *testing.T) {
	parts, placements := buildReportTestParts()
	placed := placePolygons(parts, placements)
	assert.InDelta(t, 400*400, polygonArea(placed[0].outer), 1e-6)
}
