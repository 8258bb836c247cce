package state

import (
	"path/filepath"
	"testing"
	"time"
)

func sampleRun(id string, success bool) *RunRecord {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return &RunRecord{
		RunID:      id,
		Target:     "deploy",
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
		Success:    success,
		Records: []Record{
			{Name: "build", Status: StatusSucceeded, Duration: time.Second},
			{Name: "deploy", Status: StatusSucceeded, Duration: 2 * time.Second},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	rec := sampleRun("20260101-120000", true)

	path, err := Save(dir, rec)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if path != filepath.Join(dir, "20260101-120000.json") {
		t.Errorf("path = %q", path)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.RunID != rec.RunID || loaded.Target != rec.Target || !loaded.Success {
		t.Errorf("Load() = %+v, want %+v", loaded, rec)
	}
	if len(loaded.Records) != 2 || loaded.Records[0].Name != "build" {
		t.Errorf("records = %+v", loaded.Records)
	}
}

func TestLatestRun(t *testing.T) {
	dir := t.TempDir()

	latest, err := LatestRun(dir)
	if err != nil {
		t.Fatalf("LatestRun() on empty dir error = %v", err)
	}
	if latest != nil {
		t.Errorf("LatestRun() on empty dir = %+v, want nil", latest)
	}

	for _, id := range []string{"20260101-120000", "20260103-080000", "20260102-090000"} {
		if _, err := Save(dir, sampleRun(id, true)); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}

	latest, err = LatestRun(dir)
	if err != nil {
		t.Fatalf("LatestRun() error = %v", err)
	}
	if latest.RunID != "20260103-080000" {
		t.Errorf("LatestRun() = %q, want %q", latest.RunID, "20260103-080000")
	}
}

func TestLatestRun_MissingDir(t *testing.T) {
	latest, err := LatestRun(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("LatestRun() error = %v", err)
	}
	if latest != nil {
		t.Errorf("LatestRun() = %+v, want nil", latest)
	}
}

func TestNewRunID(t *testing.T) {
	id := NewRunID(time.Date(2026, 8, 31, 14, 30, 5, 0, time.UTC))
	if id != "20260831-143005" {
		t.Errorf("NewRunID() = %q", id)
	}
}
