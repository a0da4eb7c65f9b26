// Package navigation holds the mutable position of a running presentation:
// the current step, the view mode and the presentation timer.
package navigation

import (
	"errors"
	"time"
)

// ErrEmptyScenario is returned when a reload leaves no steps to point at.
var ErrEmptyScenario = errors.New("scenario reloaded without steps")

// State is owned by the main loop and is not safe for concurrent use.
type State struct {
	index     int
	mode      ViewMode
	startedAt time.Time
	running   bool

	now func() time.Time
}

// Option configures a State.
type Option func(*State)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		s.now = now
	}
}

// NewState starts at the first step, in Demo mode, with no timer.
func NewState(opts ...Option) *State {
	s := &State{mode: Demo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *State) Index() int     { return s.index }
func (s *State) Mode() ViewMode { return s.mode }

// Advance moves to the next step unless already at the last of stepCount.
func (s *State) Advance(stepCount int) {
	if s.index < stepCount-1 {
		s.index++
	}
}

// Retreat moves to the previous step unless already at the first.
func (s *State) Retreat() {
	if s.index > 0 {
		s.index--
	}
}

// ToggleMode flips the view mode and returns the new one.
func (s *State) ToggleMode() ViewMode {
	s.mode = s.mode.Toggle()
	return s.mode
}

// StartOrKeepTimer starts the presentation timer if it is not running.
func (s *State) StartOrKeepTimer() {
	if !s.running {
		s.startedAt = s.now()
		s.running = true
	}
}

// ResetTimer stops and clears the presentation timer.
func (s *State) ResetTimer() {
	s.startedAt = time.Time{}
	s.running = false
}

// TimerStarted returns the timer start, if the timer is running.
func (s *State) TimerStarted() (time.Time, bool) {
	return s.startedAt, s.running
}

// Elapsed returns the time since the timer started, or zero.
func (s *State) Elapsed() time.Duration {
	if !s.running {
		return 0
	}
	return s.now().Sub(s.startedAt)
}

// RepairAfterReload clamps the index into a scenario of newLen steps.
func (s *State) RepairAfterReload(newLen int) error {
	if newLen < 1 {
		return ErrEmptyScenario
	}
	if s.index >= newLen {
		s.index = newLen - 1
	}
	return nil
}
