package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStartIsIdempotent(t *testing.T) {
	var s Session

	gen1, started := s.Start()
	assert.True(t, started)
	assert.True(t, s.Active())

	// Second start while active: same generation, no new timer.
	gen2, started := s.Start()
	assert.False(t, started)
	assert.Equal(t, gen1, gen2)
}

func TestSessionStopInvalidatesTicks(t *testing.T) {
	var s Session

	gen, _ := s.Start()
	assert.True(t, s.Current(gen))

	s.Stop()
	assert.False(t, s.Active())
	// A tick already in flight when the session stopped must not pass.
	assert.False(t, s.Current(gen))
}

func TestSessionStopIdempotent(t *testing.T) {
	var s Session
	s.Stop()
	assert.False(t, s.Active())

	gen, _ := s.Start()
	s.Stop()
	s.Stop()
	assert.False(t, s.Current(gen))
}

func TestSessionRestartGetsFreshGeneration(t *testing.T) {
	var s Session

	gen1, _ := s.Start()
	s.Stop()
	gen2, started := s.Start()

	assert.True(t, started)
	assert.NotEqual(t, gen1, gen2)
	// Old-session ticks stay dead after a restart.
	assert.False(t, s.Current(gen1))
	assert.True(t, s.Current(gen2))
}
