package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SlabCut/internal/model"
)

func buildTestJob() NestJob {
	parts := []model.Part{
		model.NewPart("Shelf", model.NewRectRing(0, 0, 600, 300)),
		model.NewPart("Door", model.NewRectRing(0, 0, 400, 800)),
	}
	return NewNestJob(parts, 0.3, 42)
}

func TestNewNestJob_HasID(t *testing.T) {
	job := buildTestJob()
	assert.NotEmpty(t, job.ID)
	assert.Len(t, job.Parts, 2)
	assert.InDelta(t, 0.3, job.Kerf, 1e-9)
	assert.Equal(t, int64(42), job.Seed)
}

func TestSaveAndLoadJob(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.json")

	job := buildTestJob()
	job.Placements = []model.Placement{
		{X: 0, Y: 0, HostPartIndex: model.SheetLevel},
		{X: 600, Y: 0, HostPartIndex: model.SheetLevel},
	}

	require.NoError(t, SaveJob(path, job))

	loaded, err := LoadJob(path)
	require.NoError(t, err)
	assert.Equal(t, job.ID, loaded.ID)
	assert.Len(t, loaded.Parts, 2)
	assert.Len(t, loaded.Placements, 2)
}

func TestSaveJob_CreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "job.json")

	require.NoError(t, SaveJob(path, buildTestJob()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadJob_MissingFile(t *testing.T) {
	_, err := LoadJob(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadJob_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json}"), 0644))

	_, err := LoadJob(path)
	assert.Error(t, err)
}

func TestSaveJobAtomic_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preview.json")

	job := buildTestJob()
	require.NoError(t, SaveJobAtomic(path, job))

	_, err := os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveJobAtomic_OverwritesPreviousPreview(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preview.json")

	first := buildTestJob()
	first.Placements = []model.Placement{{X: 1, Y: 1, HostPartIndex: model.SheetLevel}}
	require.NoError(t, SaveJobAtomic(path, first))

	second := first
	second.Placements = []model.Placement{
		{X: 2, Y: 2, HostPartIndex: model.SheetLevel},
		{X: 3, Y: 3, HostPartIndex: model.SheetLevel},
	}
	require.NoError(t, SaveJobAtomic(path, second))

	loaded, err := LoadJob(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Placements, 2)
}
