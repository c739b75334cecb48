package task

// Session is the process-wide polling session. At most one interval
// loop may be live at a time; Start while active is a no-op rather
// than a second loop.
//
// Every tick scheduled by a session carries the generation returned by
// Start. Stop bumps the generation, so a tick that was already in
// flight when the session tore down fails the Current check and is
// discarded instead of resurrecting the loop.
type Session struct {
	active bool
	gen    int
}

// Start activates the session and returns the generation ticks must
// carry. If the session is already active it returns the live
// generation and started=false; the caller must not schedule a tick.
func (s *Session) Start() (gen int, started bool) {
	if s.active {
		return s.gen, false
	}
	s.active = true
	s.gen++
	return s.gen, true
}

// Stop tears the session down. Idempotent.
func (s *Session) Stop() {
	if !s.active {
		return
	}
	s.active = false
	s.gen++
}

// Active reports whether a polling loop is live.
func (s *Session) Active() bool {
	return s.active
}

// Current reports whether a tick carrying gen belongs to the live
// session. False for ticks from stopped or superseded sessions.
func (s *Session) Current(gen int) bool {
	return s.active && gen == s.gen
}
