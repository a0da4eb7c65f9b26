package inject

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

// DefaultPasteKeys pastes in most terminal emulators.
const DefaultPasteKeys = "ctrl+shift+v"

// Paste types text by placing it on the clipboard and sending the paste
// shortcut, which is much faster than typing long commands. Key sequences
// go straight to Keys.
type Paste struct {
	Keys      Injector
	PasteKeys string

	write func(string) error
}

// NewPaste wraps keys with clipboard based text injection.
func NewPaste(keys Injector, pasteKeys string) *Paste {
	if pasteKeys == "" {
		pasteKeys = DefaultPasteKeys
	}
	return &Paste{Keys: keys, PasteKeys: pasteKeys, write: clipboard.WriteAll}
}

func (p *Paste) SendKeys(ctx context.Context, keys string, delay time.Duration) error {
	return p.Keys.SendKeys(ctx, keys, delay)
}

func (p *Paste) TypeText(ctx context.Context, text string, delay time.Duration) error {
	if err := p.write(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return p.Keys.SendKeys(ctx, p.PasteKeys, delay)
}
