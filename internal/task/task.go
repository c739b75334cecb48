// Package task tracks the lifecycle of the two long-running backend
// jobs (scraper and evaluator) and the single polling session that
// observes them.
package task

import "strings"

// Job identifies one of the two background job types.
type Job int

const (
	Scraper Job = iota
	Evaluator
)

// String returns the job name as used in logs and the actions view.
func (j Job) String() string {
	if j == Evaluator {
		return "evaluator"
	}
	return "scraper"
}

// JobState is the lifecycle state of a single job.
type JobState int

const (
	Idle JobState = iota
	Running
	Completed
	Failed
)

// Status is the decoded state of one job. Reason carries the verbatim
// failure text from the service and is only set when State is Failed.
type Status struct {
	State  JobState
	Reason string
}

// Parse decodes a wire status string. The service reports "running",
// "completed", or a "failed..."/"error..." message; anything absent or
// unrecognized is idle.
func Parse(raw string) Status {
	switch {
	case raw == "running":
		return Status{State: Running}
	case raw == "completed":
		return Status{State: Completed}
	case strings.HasPrefix(raw, "failed") || strings.HasPrefix(raw, "error"):
		return Status{State: Failed, Reason: raw}
	default:
		return Status{State: Idle}
	}
}

// Label returns a short display string for the status.
func (s Status) Label() string {
	switch s.State {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return s.Reason
	default:
		return "idle"
	}
}

// Snapshot is the combined status of both jobs from one poll response.
// Each job's state is decoded independently: a failed evaluator never
// hides a running scraper.
type Snapshot struct {
	Scraper   Status
	Evaluator Status
}

// ParseSnapshot decodes the combined status payload.
func ParseSnapshot(scraper, evaluator string) Snapshot {
	return Snapshot{Scraper: Parse(scraper), Evaluator: Parse(evaluator)}
}

// Get returns the status of the given job.
func (s Snapshot) Get(j Job) Status {
	if j == Evaluator {
		return s.Evaluator
	}
	return s.Scraper
}

// AnyRunning reports whether the polling session should stay alive.
func (s Snapshot) AnyRunning() bool {
	return s.Scraper.State == Running || s.Evaluator.State == Running
}
