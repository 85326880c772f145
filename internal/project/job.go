package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/piwi3910/SlabCut/internal/model"
)

// NestJob is a saved nesting problem and (optionally) its last computed
// solution: the parts to nest, the kerf to separate them by, and the
// placements a previous Nester.Run produced. Placements is empty for a
// job that has not been run yet.
type NestJob struct {
	ID         string            `json:"id"`
	Parts      []model.Part      `json:"parts"`
	Kerf       float64           `json:"kerf"`
	Placements []model.Placement `json:"placements,omitempty"`
	Seed       int64             `json:"seed"`
}

// NewNestJob creates a NestJob with a fresh ID.
func NewNestJob(parts []model.Part, kerf float64, seed int64) NestJob {
	return NestJob{
		ID:    uuid.New().String()[:8],
		Parts: parts,
		Kerf:  kerf,
		Seed:  seed,
	}
}

// SaveJob writes a NestJob to path as JSON, creating parent directories
// as needed.
func SaveJob(path string, job NestJob) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("project: create job directory: %w", err)
	}
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("project: marshal job: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("project: write job file %s: %w", path, err)
	}
	return nil
}

// SaveJobAtomic writes a NestJob the same way SaveJob does, except the
// write lands at path+".tmp" first and is only moved into place with
// os.Rename once it is complete. This is what a progress/cancel
// callback should call for its preview dump: a reader polling path
// never observes a partially-written file, only the previous complete
// one or the new complete one.
func SaveJobAtomic(path string, job NestJob) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("project: create job directory: %w", err)
	}

	tmpPath := path + ".tmp"
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("project: marshal job: %w", err)
	}
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("project: write temp job file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("project: rename temp job file into place: %w", err)
	}
	return nil
}

// LoadJob reads a NestJob from path.
func LoadJob(path string) (NestJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NestJob{}, fmt.Errorf("project: read job file %s: %w", path, err)
	}
	var job NestJob
	if err := json.Unmarshal(data, &job); err != nil {
		return NestJob{}, fmt.Errorf("project: parse job file %s: %w", path, err)
	}
	return job, nil
}
