// Package gamepad reads controller events from the Linux joystick API.
package gamepad

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ivlev/nespresenter/internal/input"
	"github.com/ivlev/nespresenter/internal/logging"
)

const subsystem = "Gamepad"

// DevicePattern matches joystick device nodes.
const DevicePattern = "/dev/input/js*"

// ErrNoDevice is returned by Discover when no joystick is attached.
var ErrNoDevice = errors.New("no joystick device found")

// Linux joystick event types.
const (
	typeButton = 0x01
	typeAxis   = 0x02
	typeInit   = 0x80
)

// eventSize is the size of struct js_event.
const eventSize = 8

// rawEvent mirrors struct js_event.
type rawEvent struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

// Discover returns the first joystick device node in name order.
func Discover() (string, error) {
	return discover(DevicePattern)
}

func discover(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", ErrNoDevice
	}
	sort.Strings(matches)
	return matches[0], nil
}

// Reader decodes joystick events from a device node.
type Reader struct {
	Path string
}

func NewReader(path string) *Reader {
	return &Reader{Path: path}
}

// Run reads the device until ctx is cancelled or the device goes away.
// A device that cannot be opened or disappears is logged and ends the
// reader without error, so keyboard control keeps working.
func (r *Reader) Run(ctx context.Context, out chan<- input.Event) error {
	f, err := os.Open(r.Path)
	if err != nil {
		logging.Warn(subsystem, "controller unavailable: %v", err)
		return nil
	}

	defer f.Close()

	// a blocking read on the device only returns on the next event
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			f.Close()
		case <-done:
		}
	}()

	logging.Info(subsystem, "reading controller %s", r.Path)
	err = decode(ctx, f, out)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		logging.Warn(subsystem, "controller %s stopped: %v", r.Path, err)
	}
	return nil
}

// decode converts js_event records from rd into input events.
func decode(ctx context.Context, rd io.Reader, out chan<- input.Event) error {
	var raw rawEvent
	for {
		if err := binary.Read(rd, binary.LittleEndian, &raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		ev, ok := convert(raw)
		if !ok {
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func convert(raw rawEvent) (input.Event, bool) {
	if raw.Type&typeInit != 0 {
		return input.Event{}, false
	}
	switch raw.Type {
	case typeButton:
		return input.Button(raw.Number, raw.Value != 0), true
	case typeAxis:
		return input.Axis(raw.Number, raw.Value), true
	}
	return input.Event{}, false
}
