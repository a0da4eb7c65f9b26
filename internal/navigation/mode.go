package navigation

// ViewMode selects what the controller drives.
type ViewMode int

const (
	// Demo types commands into the focused terminal.
	Demo ViewMode = iota
	// Presentation pages through slides.
	Presentation
)

// Toggle returns the other mode.
func (m ViewMode) Toggle() ViewMode {
	if m == Demo {
		return Presentation
	}
	return Demo
}

func (m ViewMode) String() string {
	switch m {
	case Demo:
		return "Demo"
	case Presentation:
		return "Presentation"
	default:
		return "Unknown"
	}
}
