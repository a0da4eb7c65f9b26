package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Write writes a scenario to a YAML file. It refuses to overwrite.
func Write(s *Scenario, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create scenario: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write scenario: %w", err)
	}
	return f.Close()
}

// Example returns a small scenario suitable as a starting point.
func Example() *Scenario {
	return &Scenario{
		Meta: &Meta{Title: "My demo"},
		Steps: []Step{
			{Description: "Show where we are", Command: "pwd", Submit: true},
			{Description: "List files", Command: "ls -la", Submit: true},
			{
				Description: "Prepared but left for the audience to confirm",
				Command:     "echo hello\necho world",
				Submit:      false,
			},
		},
	}
}
