package input

// EventKind tells which fields of an Event are meaningful.
type EventKind int

const (
	Unknown EventKind = iota
	// AxisMotion uses Index and Value.
	AxisMotion
	// ButtonDown and ButtonUp use Index.
	ButtonDown
	ButtonUp
	// KeyPress uses Key and Repeat.
	KeyPress
	// WindowClose is sent when the presenter screen goes away or the
	// process is asked to stop.
	WindowClose
)

// Event is a raw controller, keyboard or window event.
type Event struct {
	Kind   EventKind
	Index  uint8 // axis or button number
	Value  int16 // axis deflection
	Key    rune
	Repeat bool
}

// Axis builds an AxisMotion event.
func Axis(index uint8, value int16) Event {
	return Event{Kind: AxisMotion, Index: index, Value: value}
}

// Button builds a ButtonDown or ButtonUp event.
func Button(index uint8, pressed bool) Event {
	if pressed {
		return Event{Kind: ButtonDown, Index: index}
	}
	return Event{Kind: ButtonUp, Index: index}
}

// Key builds a KeyPress event.
func Key(r rune, repeat bool) Event {
	return Event{Kind: KeyPress, Key: r, Repeat: repeat}
}

// Close builds a WindowClose event.
func Close() Event {
	return Event{Kind: WindowClose}
}
