// Package inject sends synthetic keystrokes and text to whatever window
// currently has keyboard focus.
package inject

import (
	"context"
	"errors"
	"time"
)

// Fixed injection timings. They are not configurable at runtime.
const (
	// TypeDelay is the pause between typed characters.
	TypeDelay = 50 * time.Millisecond
	// SubmitDelay precedes the Return keystroke after typing.
	SubmitDelay = 10 * time.Microsecond
	// KeyTimeout bounds a single key sequence call.
	KeyTimeout = 5 * time.Second
	// TypeTimeout bounds a single text call.
	TypeTimeout = 60 * time.Second
)

// ErrToolMissing is returned when the injection backend is not installed.
var ErrToolMissing = errors.New("injection tool not found")

// Injector is the OS injection boundary. Both calls block until the
// keystrokes were delivered; an error means the input may be partial.
type Injector interface {
	// SendKeys sends a key combination such as "ctrl+shift+Up".
	SendKeys(ctx context.Context, keys string, delay time.Duration) error
	// TypeText types text literally, newlines included.
	TypeText(ctx context.Context, text string, delay time.Duration) error
}
