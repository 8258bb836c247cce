// Package state tracks per-target execution status within a deployment run
// and persists run records for later inspection.
package state

import (
	"time"

	"github.com/deployctl/deployctl/internal/errors"
)

// Status is a target's position in the execution lifecycle.
type Status string

const (
	// StatusPending means the target is planned but not yet started.
	StatusPending Status = "pending"
	// StatusRunning means the target's actions are executing.
	StatusRunning Status = "running"
	// StatusSucceeded means all actions completed with exit code zero.
	StatusSucceeded Status = "succeeded"
	// StatusFailed means an action failed or the target was interrupted.
	StatusFailed Status = "failed"
)

// Terminal reports whether a status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// validTransitions maps each status to the statuses it may move to.
// Terminal statuses have no successors: there are no retries.
var validTransitions = map[Status][]Status{
	StatusPending: {StatusRunning, StatusFailed},
	StatusRunning: {StatusSucceeded, StatusFailed},
}

// canTransition reports whether from -> to is a legal move.
func canTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Record is the execution record of one target within a run.
type Record struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	StartedAt time.Time     `json:"started_at,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// Store tracks every target of a single run in plan order.
type Store struct {
	RunID   string
	records map[string]*Record
	order   []string
	clock   func() time.Time
}

// NewStore creates a store with all targets of the plan marked pending.
func NewStore(runID string, plan []string) *Store {
	s := &Store{
		RunID:   runID,
		records: make(map[string]*Record, len(plan)),
		order:   make([]string, 0, len(plan)),
		clock:   time.Now,
	}
	for _, name := range plan {
		s.records[name] = &Record{Name: name, Status: StatusPending}
		s.order = append(s.order, name)
	}
	return s
}

// Get returns the record for a target, or nil if the target is not in the plan.
func (s *Store) Get(name string) *Record {
	return s.records[name]
}

// Records returns all records in plan order.
func (s *Store) Records() []Record {
	out := make([]Record, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.records[name])
	}
	return out
}

// Start moves a target from pending to running and stamps its start time.
func (s *Store) Start(name string) error {
	return s.transition(name, StatusRunning, "")
}

// Succeed moves a running target to succeeded and records its duration.
func (s *Store) Succeed(name string) error {
	return s.transition(name, StatusSucceeded, "")
}

// Fail moves a target to failed with the given reason. Pending targets may
// fail directly, covering targets aborted before they started.
func (s *Store) Fail(name string, reason string) error {
	return s.transition(name, StatusFailed, reason)
}

func (s *Store) transition(name string, to Status, reason string) error {
	rec, ok := s.records[name]
	if !ok {
		return errors.Newf("target %q is not part of this run", name)
	}
	if !canTransition(rec.Status, to) {
		return errors.Newf("target %q cannot move from %s to %s", name, rec.Status, to)
	}

	now := s.clock()
	switch to {
	case StatusRunning:
		rec.StartedAt = now
	case StatusSucceeded, StatusFailed:
		if !rec.StartedAt.IsZero() {
			rec.Duration = now.Sub(rec.StartedAt)
		}
	}

	rec.Status = to
	rec.Error = reason
	return nil
}

// Summary aggregates a run's per-status counts.
type Summary struct {
	Succeeded int
	Failed    int
	Pending   int
	Running   int
}

// Summarize counts records by status.
func (s *Store) Summarize() Summary {
	var sum Summary
	for _, rec := range s.records {
		switch rec.Status {
		case StatusSucceeded:
			sum.Succeeded++
		case StatusFailed:
			sum.Failed++
		case StatusRunning:
			sum.Running++
		default:
			sum.Pending++
		}
	}
	return sum
}

// Failed reports whether any target in the run failed.
func (s *Store) Failed() bool {
	return s.Summarize().Failed > 0
}
