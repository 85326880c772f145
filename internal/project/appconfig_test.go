package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SlabCut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKerf = 0.4
	cfg.RecentJobs = []string{"/tmp/job1.json", "/tmp/job2.json"}

	require.NoError(t, SaveAppConfig(path, cfg))

	loaded, err := LoadAppConfig(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.4, loaded.DefaultKerf, 1e-9)
	assert.Len(t, loaded.RecentJobs, 2)
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)

	defaults := model.DefaultAppConfig()
	assert.InDelta(t, defaults.DefaultKerf, cfg.DefaultKerf, 1e-9)
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("not valid json{{{"), 0644))

	_, err := LoadAppConfig(path)
	assert.Error(t, err)
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	require.NoError(t, SaveAppConfig(path, cfg))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadAppConfigNilRecentJobs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"default_kerf":0.3,"recent_jobs":null}`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg.RecentJobs)
}
