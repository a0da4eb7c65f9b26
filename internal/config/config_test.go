package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ivlev/nespresenter/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.ScrollLines)
	assert.Equal(t, "super+1", cfg.Keys.PresentationHotkey)
	assert.Equal(t, "super+2", cfg.Keys.DemoHotkey)
	assert.True(t, cfg.UsesTerminal())
	assert.False(t, cfg.UsesImage())

	m := cfg.Mapping()
	assert.Equal(t, input.DefaultMapping(), m)
}

func TestParseOverridesOnlyGivenKeys(t *testing.T) {
	doc := `
controller:
  select: 8
  page_up: [4]
keyboard:
  reload: o
scroll_lines: 5
frame:
  interval: 40ms
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	m := cfg.Mapping()
	assert.Equal(t, uint8(8), m.Select)
	assert.Equal(t, input.NES30ButtonStart, m.Start)
	assert.Equal(t, []uint8{4}, m.PageUp)
	assert.Equal(t, []uint8{input.NES30ButtonB, input.NES30ButtonR}, m.PageDown)
	assert.Equal(t, 'o', m.ReloadKey)
	assert.Equal(t, 'r', m.ResetTimerKey)
	assert.Equal(t, 5, cfg.ScrollLines)
	assert.Equal(t, 40*time.Millisecond, cfg.Frame.Interval)
	assert.Equal(t, "ctrl+shift+Up", cfg.Keys.ScrollUp)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "scrol_lines: 3\n"},
		{"zero scroll lines", "scroll_lines: 0\n"},
		{"bad injector", "injector: xdo\n"},
		{"bad renderer", "renderer: sdl\n"},
		{"image without output", "renderer: image\n"},
		{"tiny frame", "renderer: both\nframe:\n  output: /tmp/f.png\n  width: 10\n"},
		{"long key", "keyboard:\n  reload: ll\n"},
		{"same keys", "keyboard:\n  reload: r\n"},
		{"no page down", "controller:\n  page_down: []\n"},
		{"negative interval", "frame:\n  interval: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presenter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("renderer: both\nframe:\n  output: /tmp/frame.png\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.UsesImage())
	assert.True(t, cfg.UsesTerminal())
	assert.Equal(t, 800, cfg.Frame.Width)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
