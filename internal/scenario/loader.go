package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoSteps is returned for scenarios without a single step.
	ErrNoSteps = errors.New("scenario has no steps")
	// ErrMissingCommand is returned when a step lacks the cmd field.
	ErrMissingCommand = errors.New("step has no cmd")
)

// Loader produces a fresh Scenario on every call.
type Loader interface {
	Load() (*Scenario, error)
}

// FileLoader loads the scenario named on the command line.
// Path may point at a directory, in which case the most recently
// modified scenario inside it is used; the lookup is redone on every Load.
type FileLoader struct {
	Path string
}

// NewFileLoader creates a loader for path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

func (l *FileLoader) Load() (*Scenario, error) {
	return Load(l.Path)
}

// Load reads and parses a scenario file or directory.
func Load(path string) (*Scenario, error) {
	file, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not open scenario file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse scenario file %s: %w", file, err)
	}
	return s, nil
}

type rawStep struct {
	Desc  string  `yaml:"desc"`
	Cmd   *string `yaml:"cmd"`
	Enter *bool   `yaml:"enter"`
}

type rawScenario struct {
	Meta  *Meta     `yaml:"meta"`
	Steps []rawStep `yaml:"steps"`
}

// Parse decodes a YAML scenario document.
func Parse(data []byte) (*Scenario, error) {
	var raw rawScenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoSteps
		}
		return nil, err
	}

	if len(raw.Steps) == 0 {
		return nil, ErrNoSteps
	}

	steps := make([]Step, len(raw.Steps))
	for i, rs := range raw.Steps {
		if rs.Cmd == nil {
			return nil, fmt.Errorf("step %d: %w", i+1, ErrMissingCommand)
		}
		steps[i] = Step{
			Description: rs.Desc,
			Command:     *rs.Cmd,
			Submit:      rs.Enter == nil || *rs.Enter,
		}
	}

	return &Scenario{Meta: raw.Meta, Steps: steps}, nil
}
