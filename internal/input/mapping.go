// Package input translates raw controller and keyboard events into actions.
package input

import (
	"fmt"
	"unicode"
)

// Button numbers of the 8BitDo NES30 as reported by the Linux joystick driver.
const (
	NES30ButtonA      uint8 = 0
	NES30ButtonB      uint8 = 1
	NES30ButtonX      uint8 = 3
	NES30ButtonY      uint8 = 4
	NES30ButtonL      uint8 = 6
	NES30ButtonR      uint8 = 7
	NES30ButtonSelect uint8 = 10
	NES30ButtonStart  uint8 = 11

	NES30VerticalAxis uint8 = 1
)

// Mapping binds hardware indices and keys to actions.
type Mapping struct {
	VerticalAxis uint8   `yaml:"vertical_axis"`
	Select       uint8   `yaml:"select"`
	Start        uint8   `yaml:"start"`
	PageUp       []uint8 `yaml:"page_up"`
	PageDown     []uint8 `yaml:"page_down"`

	ResetTimerKey rune `yaml:"-"`
	ReloadKey     rune `yaml:"-"`
}

// DefaultMapping is the NES30 layout with r/l as keyboard bindings.
func DefaultMapping() Mapping {
	return Mapping{
		VerticalAxis:  NES30VerticalAxis,
		Select:        NES30ButtonSelect,
		Start:         NES30ButtonStart,
		PageUp:        []uint8{NES30ButtonA, NES30ButtonL},
		PageDown:      []uint8{NES30ButtonB, NES30ButtonR},
		ResetTimerKey: 'r',
		ReloadKey:     'l',
	}
}

// Validate reports mappings that cannot produce every action.
func (m Mapping) Validate() error {
	if len(m.PageUp) == 0 {
		return fmt.Errorf("mapping: no page_up buttons")
	}
	if len(m.PageDown) == 0 {
		return fmt.Errorf("mapping: no page_down buttons")
	}
	if m.ResetTimerKey == 0 || m.ReloadKey == 0 {
		return fmt.Errorf("mapping: reset and reload keys must be set")
	}
	if unicode.ToLower(m.ResetTimerKey) == unicode.ToLower(m.ReloadKey) {
		return fmt.Errorf("mapping: reset and reload share key %q", m.ResetTimerKey)
	}
	return nil
}

// Translate maps one event to at most one action. Unrecognised events
// yield (NoAction, false).
//
// Any nonzero deflection of the vertical axis fires; there is no deadzone,
// so a drifting stick repeats on every motion event it sends.
func (m Mapping) Translate(ev Event) (Action, bool) {
	switch ev.Kind {
	case AxisMotion:
		if ev.Index != m.VerticalAxis {
			return NoAction, false
		}
		switch {
		case ev.Value > 0:
			return StepNext, true
		case ev.Value < 0:
			return StepPrev, true
		}

	case ButtonDown:
		switch {
		case ev.Index == m.Select:
			return ToggleMode, true
		case ev.Index == m.Start:
			return Execute, true
		case contains(m.PageUp, ev.Index):
			return PageUp, true
		case contains(m.PageDown, ev.Index):
			return PageDown, true
		}

	case KeyPress:
		if ev.Repeat {
			return NoAction, false
		}
		switch unicode.ToLower(ev.Key) {
		case unicode.ToLower(m.ResetTimerKey):
			return ResetTimer, true
		case unicode.ToLower(m.ReloadKey):
			return ReloadScenario, true
		}

	case WindowClose:
		return Quit, true
	}

	return NoAction, false
}

func contains(buttons []uint8, b uint8) bool {
	for _, x := range buttons {
		if x == b {
			return true
		}
	}
	return false
}
