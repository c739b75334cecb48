package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Debouncer collapses a burst of inputs into one trailing commit.
//
// Each Bump schedules a timer carrying a fresh generation number. A
// newer Bump supersedes older pending timers by advancing the
// generation; when a timer fires, only the one carrying the current
// generation passes Current, so exactly the last input in a settled
// burst commits. Timers themselves are never cancelled - stale fires
// are simply discarded on arrival.
type Debouncer struct {
	delay time.Duration
	gen   int
}

// NewDebouncer creates a Debouncer with the given trailing delay.
func NewDebouncer(delay time.Duration) Debouncer {
	return Debouncer{delay: delay}
}

// Bump registers a new input and returns the timer command. wrap turns
// the generation into the message delivered when the window closes.
func (d *Debouncer) Bump(wrap func(gen int) tea.Msg) tea.Cmd {
	d.gen++
	gen := d.gen
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return wrap(gen)
	})
}

// Current reports whether a fired timer still represents the latest
// input. False means a newer bump superseded it.
func (d *Debouncer) Current(gen int) bool {
	return gen == d.gen
}

// Cancel invalidates any pending fire without scheduling a new one.
// Used when the input is committed immediately (e.g. enter).
func (d *Debouncer) Cancel() {
	d.gen++
}
