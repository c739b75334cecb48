package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw    string
		state  JobState
		reason string
	}{
		{"", Idle, ""},
		{"running", Running, ""},
		{"completed", Completed, ""},
		{"failed: exit status 1", Failed, "failed: exit status 1"},
		{"error: timeout after 600s", Failed, "error: timeout after 600s"},
		{"failed", Failed, "failed"},
		{"something else", Idle, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			st := Parse(tt.raw)
			assert.Equal(t, tt.state, st.State)
			assert.Equal(t, tt.reason, st.Reason)
		})
	}
}

func TestSnapshotIndependentJobs(t *testing.T) {
	// A failed evaluator must not hide a running scraper.
	snap := ParseSnapshot("running", "failed: no API key")
	assert.Equal(t, Running, snap.Scraper.State)
	assert.Equal(t, Failed, snap.Evaluator.State)
	assert.Equal(t, "failed: no API key", snap.Evaluator.Reason)
	assert.True(t, snap.AnyRunning())
}

func TestSnapshotAnyRunning(t *testing.T) {
	assert.True(t, ParseSnapshot("running", "").AnyRunning())
	assert.True(t, ParseSnapshot("", "running").AnyRunning())
	assert.False(t, ParseSnapshot("completed", "failed: x").AnyRunning())
	assert.False(t, ParseSnapshot("", "").AnyRunning())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "idle", Status{State: Idle}.Label())
	assert.Equal(t, "running", Status{State: Running}.Label())
	assert.Equal(t, "completed", Status{State: Completed}.Label())
	// Failure text surfaces verbatim.
	assert.Equal(t, "failed: boom", Status{State: Failed, Reason: "failed: boom"}.Label())
}
