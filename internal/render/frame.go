// Package render draws the presenter view: the mode, the presentation
// timer and the command of the current step.
package render

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ivlev/nespresenter/internal/navigation"
	"github.com/ivlev/nespresenter/internal/scenario"
)

// Line is one line of the current command.
type Line struct {
	Text string
	// Submit is false when the step is typed without a confirming
	// keystroke; such lines are drawn gray.
	Submit bool
}

// Frame is everything a renderer needs for one picture.
type Frame struct {
	Title   string
	Mode    navigation.ViewMode
	Elapsed string // "MM:SS", empty while the timer is stopped
	Lines   []Line // only in Demo mode
	QR      string // only in Presentation mode, when the scenario has a URL
}

// Equal reports whether two frames would draw the same picture.
func (f Frame) Equal(o Frame) bool {
	return f.Title == o.Title &&
		f.Mode == o.Mode &&
		f.Elapsed == o.Elapsed &&
		f.QR == o.QR &&
		slices.Equal(f.Lines, o.Lines)
}

// BuildFrame snapshots the state and the step it points at.
func BuildFrame(state *navigation.State, sc *scenario.Scenario) Frame {
	f := Frame{
		Title: sc.Title(),
		Mode:  state.Mode(),
	}
	if _, running := state.TimerStarted(); running {
		f.Elapsed = FormatElapsed(state.Elapsed())
	}

	switch f.Mode {
	case navigation.Demo:
		if sc.Len() > 0 {
			step := sc.Step(state.Index())
			for _, text := range SplitLines(step.Command) {
				f.Lines = append(f.Lines, Line{Text: text, Submit: step.Submit})
			}
		}
	case navigation.Presentation:
		f.QR = sc.URL()
	}
	return f
}

// FormatElapsed renders whole minutes and seconds. Minutes keep counting
// past an hour.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// SplitLines splits a command on line breaks. A trailing line break does
// not produce an empty last line.
func SplitLines(cmd string) []string {
	if cmd == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(cmd, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Renderer presents frames. Render is called once per main loop iteration.
type Renderer interface {
	Render(Frame) error
	Close() error
}

// Multi fans a frame out to several renderers.
type Multi []Renderer

func (m Multi) Render(f Frame) error {
	var errs []error
	for _, r := range m {
		if err := r.Render(f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, r := range m {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
