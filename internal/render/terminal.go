package render

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/skip2/go-qrcode"

	"github.com/ivlev/nespresenter/internal/input"
	"github.com/ivlev/nespresenter/internal/navigation"
)

// Terminal layout, in cells.
const (
	termMargin  = 1
	termIndent  = 4
	termModeRow = 2
)

var (
	demoBackground         = tcell.NewRGBColor(255, 0, 0)
	presentationBackground = tcell.NewRGBColor(0, 255, 0)
	textColor              = tcell.NewRGBColor(0, 0, 0)
	skipColor              = tcell.NewRGBColor(128, 128, 128)
	qrDark                 = tcell.NewRGBColor(0, 0, 0)
	qrLight                = tcell.NewRGBColor(255, 255, 255)
)

// TerminalScreen is the presenter view on a tcell screen. It also reports
// the keys pressed while the terminal has focus.
type TerminalScreen struct {
	screen tcell.Screen
	qr     *qrCache
	fini   sync.Once
}

// NewTerminalScreen takes over the controlling terminal.
func NewTerminalScreen() (*TerminalScreen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal screen: %w", err)
	}
	return newTerminalScreen(screen)
}

func newTerminalScreen(screen tcell.Screen) (*TerminalScreen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()
	return &TerminalScreen{screen: screen, qr: &qrCache{}}, nil
}

func (t *TerminalScreen) Render(f Frame) error {
	bg := demoBackground
	if f.Mode == navigation.Presentation {
		bg = presentationBackground
	}
	base := tcell.StyleDefault.Background(bg).Foreground(textColor)

	t.screen.Fill(' ', base)
	w, h := t.screen.Size()

	t.drawCentered(0, w, f.Title, base.Dim(true))
	t.drawCentered(termModeRow, w, f.Mode.String(), base.Bold(true))
	top := termModeRow + 2

	bottom := h - 1 - termMargin
	timerRow := h - 1 - termMargin
	if f.Elapsed != "" {
		t.drawCentered(timerRow, w, f.Elapsed, base.Bold(true))
		bottom = timerRow - 2
	}

	next := top + 1
	for _, line := range f.Lines {
		if next > bottom {
			break
		}
		style := base
		if !line.Submit {
			style = base.Foreground(skipColor)
		}
		text := runewidth.Truncate(line.Text, w-termIndent-termMargin, "…")
		t.drawString(termIndent, next, text, style)
		next++
	}

	if f.QR != "" {
		t.drawQR(f.QR, w, h, timerRow, runewidth.StringWidth(f.Elapsed))
	}

	t.screen.Show()
	return nil
}

func (t *TerminalScreen) drawCentered(y, width int, s string, style tcell.Style) {
	x := (width - runewidth.StringWidth(s)) / 2
	if x < 0 {
		x = 0
	}
	t.drawString(x, y, s, style)
}

func (t *TerminalScreen) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// drawQR puts the code in the bottom-right corner, two modules per cell,
// and skips it when it would cover the timer or not fit at all.
func (t *TerminalScreen) drawQR(url string, w, h, timerRow, timerWidth int) {
	code, err := t.qr.get(url)
	if err != nil {
		return
	}
	bitmap := code.Bitmap()
	cols := len(bitmap)
	rows := (len(bitmap) + 1) / 2

	x := w - termMargin - cols
	y := h - termMargin - rows
	if x < 0 || y < termModeRow+2 {
		return
	}
	timerRight := (w+timerWidth)/2 + 1
	if timerWidth > 0 && y+rows > timerRow && x < timerRight {
		return
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := bitmap[2*row][col]
			bottom := false
			if 2*row+1 < len(bitmap) {
				bottom = bitmap[2*row+1][col]
			}
			style := tcell.StyleDefault.Foreground(moduleColor(top)).Background(moduleColor(bottom))
			t.screen.SetContent(x+col, y+row, '▀', nil, style)
		}
	}
}

func moduleColor(dark bool) tcell.Color {
	if dark {
		return qrDark
	}
	return qrLight
}

// Run forwards key presses until ctx is cancelled or the screen is closed.
// Ctrl+C and Escape are reported as a window close.
func (t *TerminalScreen) Run(ctx context.Context, out chan<- input.Event) error {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}

		var e input.Event
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				e = input.Key(ev.Rune(), false)
			case tcell.KeyCtrlC, tcell.KeyEscape:
				e = input.Close()
			default:
				continue
			}
		case *tcell.EventResize:
			t.screen.Sync()
			continue
		default:
			continue
		}

		select {
		case out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}

// Close restores the terminal. It unblocks Run.
func (t *TerminalScreen) Close() error {
	t.fini.Do(t.screen.Fini)
	return nil
}

// qrCache keeps the code of the last encoded URL.
type qrCache struct {
	url  string
	code *qrcode.QRCode
	err  error
	done bool
}

func (c *qrCache) get(url string) (*qrcode.QRCode, error) {
	if !c.done || c.url != url {
		c.url, c.done = url, true
		c.code, c.err = qrcode.New(url, qrcode.Low)
		if c.err != nil {
			c.err = fmt.Errorf("qr code for %q: %w", url, c.err)
		}
	}
	return c.code, c.err
}
