package pick

import (
	"github.com/seqsense/pcdpicker/input"
)

// session is the press of a single pointer.
type session struct {
	down, up NDC
	// valid is false if a position could not be resolved
	valid bool
	// listener waits for the pointerup of this press
	listener input.Listener
}

func newSession(down NDC, ok bool, l input.Listener) *session {
	return &session{
		down:     down,
		valid:    ok,
		listener: l,
	}
}

// Release records the up position and reports whether the press was a click.
// Any movement between down and up makes it a drag.
func (s *session) Release(up NDC, ok bool) bool {
	s.up = up
	s.valid = s.valid && ok
	s.listener.Remove()
	return s.valid && s.down == s.up
}

// Cancel detaches the session without resolving it.
func (s *session) Cancel() {
	s.listener.Remove()
}
