package input

// Action is a mode-agnostic intent derived from a physical event.
type Action int

const (
	NoAction Action = iota

	StepNext
	StepPrev
	PageUp
	PageDown
	ToggleMode
	Execute
	ResetTimer
	ReloadScenario
	Quit
)

var actionNames = map[Action]string{
	NoAction:       "NoAction",
	StepNext:       "StepNext",
	StepPrev:       "StepPrev",
	PageUp:         "PageUp",
	PageDown:       "PageDown",
	ToggleMode:     "ToggleMode",
	Execute:        "Execute",
	ResetTimer:     "ResetTimer",
	ReloadScenario: "ReloadScenario",
	Quit:           "Quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Action(?)"
}
