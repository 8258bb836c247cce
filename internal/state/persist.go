package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// RunRecord is the persisted form of a completed (or aborted) run.
type RunRecord struct {
	RunID      string    `json:"run_id"`
	Target     string    `json:"target"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Success    bool      `json:"success"`
	Records    []Record  `json:"targets"`
}

// NewRunID derives a run identifier from the current time. IDs sort
// chronologically, which LatestRun relies on.
func NewRunID(now time.Time) string {
	return now.UTC().Format("20060102-150405")
}

// Save writes the run record as JSON under runsDir, creating the directory
// if needed. Returns the path written.
func Save(runsDir string, rec *RunRecord) (string, error) {
	if err := os.MkdirAll(runsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create runs directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode run record: %w", err)
	}

	path := filepath.Join(runsDir, rec.RunID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write run record: %w", err)
	}
	return path, nil
}

// Load reads a run record from a file.
func Load(path string) (*RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run record: %w", err)
	}

	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("invalid run record %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}

// LatestRun returns the most recent run record in runsDir, or nil if no runs
// have been recorded.
func LatestRun(runsDir string) (*RunRecord, error) {
	entries, err := os.ReadDir(runsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, nil
	}

	sort.Strings(names)
	return Load(filepath.Join(runsDir, names[len(names)-1]))
}
