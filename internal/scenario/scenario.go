package scenario

// DefaultTitle is shown when the scenario carries no meta title.
const DefaultTitle = "NES presenter"

// Scenario is an ordered script of demo steps.
// It is never mutated after loading; a reload replaces it.
type Scenario struct {
	Meta  *Meta  `yaml:"meta,omitempty"`
	Steps []Step `yaml:"steps"`
}

// Meta holds optional presentation metadata.
type Meta struct {
	Title string `yaml:"title,omitempty"`
	URL   string `yaml:"url,omitempty"` // shown as a QR code in Presentation mode
}

// Step is a single command of the demo.
type Step struct {
	Description string `yaml:"desc,omitempty"`
	Command     string `yaml:"cmd"`
	Submit      bool   `yaml:"enter"` // press Return after typing the command
}

// Title returns the meta title or DefaultTitle.
func (s *Scenario) Title() string {
	if s.Meta != nil && s.Meta.Title != "" {
		return s.Meta.Title
	}
	return DefaultTitle
}

// URL returns the meta URL, if any.
func (s *Scenario) URL() string {
	if s.Meta == nil {
		return ""
	}
	return s.Meta.URL
}

// Len returns the number of steps.
func (s *Scenario) Len() int {
	return len(s.Steps)
}

// Step returns the step at index i.
func (s *Scenario) Step(i int) Step {
	return s.Steps[i]
}
