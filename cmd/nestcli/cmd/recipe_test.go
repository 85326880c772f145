package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecipe(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadRecipe_Rects(t *testing.T) {
	path := writeRecipe(t, `
kerf: 0.3
seed: 7
parts:
  - label: Shelf
    rect: {width: 600, height: 300}
  - label: Door
    rect: {width: 400, height: 800}
`)

	r, err := loadRecipe(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, r.Kerf, 1e-9)
	assert.Equal(t, int64(7), r.Seed)
	assert.Len(t, r.Parts, 2)

	parts, err := r.parts()
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, "Shelf", parts[0].Label)
	bb := parts[0].BoundingBox()
	assert.InDelta(t, 600, bb.Width(), 1e-9)
	assert.InDelta(t, 300, bb.Height(), 1e-9)
}

func TestLoadRecipe_PolygonWithHole(t *testing.T) {
	path := writeRecipe(t, `
parts:
  - label: Frame
    outer: [[0, 0], [400, 0], [400, 400], [0, 400]]
    holes:
      - [[100, 100], [300, 100], [300, 300], [100, 300]]
`)

	r, err := loadRecipe(path)
	require.NoError(t, err)

	parts, err := r.parts()
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Len(t, parts[0].Holes, 1)
}

func TestLoadRecipe_DefaultLabel(t *testing.T) {
	path := writeRecipe(t, `
parts:
  - rect: {width: 100, height: 100}
`)

	r, err := loadRecipe(path)
	require.NoError(t, err)

	parts, err := r.parts()
	require.NoError(t, err)
	assert.Equal(t, "Part 1", parts[0].Label)
}

func TestLoadRecipe_MissingFile(t *testing.T) {
	_, err := loadRecipe(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRecipeParts_RejectsInvalidRect(t *testing.T) {
	r := recipe{Parts: []partRecipe{{Label: "Bad", Rect: &rectRecipe{Width: 0, Height: 10}}}}
	_, err := r.parts()
	assert.Error(t, err)
}

func TestRecipeParts_RejectsMissingShape(t *testing.T) {
	r := recipe{Parts: []partRecipe{{Label: "Bad"}}}
	_, err := r.parts()
	assert.Error(t, err)
}

func TestRecipeParts_RejectsShortHole(t *testing.T) {
	r := recipe{Parts: []partRecipe{{
		Label: "Frame",
		Outer: [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Holes: [][][2]float64{{{1, 1}, {2, 2}}},
	}}}
	_, err := r.parts()
	assert.Error(t, err)
}
