// Package ui provides the Bubble Tea TUI for paperscope.
package ui

import (
	"github.com/8AVIANVS/paperscope/internal/api"
	"github.com/8AVIANVS/paperscope/internal/store"
	"github.com/8AVIANVS/paperscope/internal/task"
)

// PapersLoaded is sent when a listing page arrives. Seq echoes the
// sequence number the request was issued with; a response whose Seq is
// not the latest issued is stale and discarded.
type PapersLoaded struct {
	Page api.PapersPage
	Seq  uint64
	Err  error
}

// PaperLoaded is sent when a single paper arrives for the detail view.
type PaperLoaded struct {
	Paper api.Paper
	Err   error
}

// StatsLoaded is sent when dashboard aggregates arrive.
type StatsLoaded struct {
	Stats api.Stats
	Err   error
}

// CategoriesLoaded carries the raw category tags from the service.
type CategoriesLoaded struct {
	Raw []string
	Err error
}

// StatusLoaded carries one decoded task-status response. Poll is true
// for responses requested by a poll tick, false for the one-shot check
// on load or view switch. Gen identifies the polling session that
// requested it.
type StatusLoaded struct {
	Snapshot task.Snapshot
	Gen      int
	Poll     bool
	Err      error
}

// JobStarted is sent when a job trigger returns.
type JobStarted struct {
	Job    task.Job
	Result api.ActionResult
	Err    error
}

// MarksLoaded carries local annotations for the visible page.
type MarksLoaded struct {
	Marks map[string]store.Mark
	Err   error
}

// StarToggled is sent after a star flip is persisted.
type StarToggled struct {
	ID      string
	Starred bool
	Err     error
}

// pollTick drives the polling session. Gen ties the tick to the
// session that scheduled it; ticks from a stopped session are ignored.
type pollTick struct {
	Gen int
}

// debounceGroup identifies a debounced field group. Search text and
// the score range debounce independently, with different delays.
type debounceGroup int

const (
	debounceSearch debounceGroup = iota
	debounceScore
)

// debounceFired is sent when a debounce window closes. Only the fire
// carrying the group's latest generation commits a fetch.
type debounceFired struct {
	Group debounceGroup
	Gen   int
}
