package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/ivlev/nespresenter/internal/input"
	"gopkg.in/yaml.v3"
)

// Injector backends.
const (
	InjectorXdotool = "xdotool"
	InjectorPaste   = "paste"
)

// Renderer backends.
const (
	RendererTerminal = "terminal"
	RendererImage    = "image"
	RendererBoth     = "both"
)

type Config struct {
	Controller  input.Mapping `yaml:"controller"`
	Keyboard    Keyboard      `yaml:"keyboard"`
	ScrollLines int           `yaml:"scroll_lines"`
	Keys        Keys          `yaml:"keys"`
	Injector    string        `yaml:"injector"`
	PasteKeys   string        `yaml:"paste_keys"`
	Renderer    string        `yaml:"renderer"`
	Frame       Frame         `yaml:"frame"`
	Click       bool          `yaml:"click"`
	Device      string        `yaml:"device"` // empty: first /dev/input/js*
	Log         Log           `yaml:"log"`
}

// Keyboard holds the presenter screen key bindings.
type Keyboard struct {
	ResetTimer string `yaml:"reset_timer"`
	Reload     string `yaml:"reload"`
}

// Keys are the xdotool key sequences sent for each action.
type Keys struct {
	ScrollUp           string `yaml:"scroll_up"`
	ScrollDown         string `yaml:"scroll_down"`
	PageUp             string `yaml:"page_up"`
	PageDown           string `yaml:"page_down"`
	PresentationHotkey string `yaml:"presentation_hotkey"`
	DemoHotkey         string `yaml:"demo_hotkey"`
	Submit             string `yaml:"submit"`
}

type Frame struct {
	Output   string        `yaml:"output"`
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	Interval time.Duration `yaml:"interval"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration: an NES30 controller, a
// terminal that scrolls with ctrl+shift+Up/Down and a window manager that
// switches workspaces with super+1/super+2.
func Default() *Config {
	return &Config{
		Controller: input.DefaultMapping(),
		Keyboard: Keyboard{
			ResetTimer: "r",
			Reload:     "l",
		},
		ScrollLines: 10,
		Keys: Keys{
			ScrollUp:           "ctrl+shift+Up",
			ScrollDown:         "ctrl+shift+Down",
			PageUp:             "Page_Up",
			PageDown:           "Page_Down",
			PresentationHotkey: "super+1",
			DemoHotkey:         "super+2",
			Submit:             "Return",
		},
		Injector:  InjectorXdotool,
		PasteKeys: "ctrl+shift+v",
		Renderer:  RendererTerminal,
		Frame: Frame{
			Width:    800,
			Height:   600,
			Interval: 16 * time.Millisecond,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults. Keys missing from the
// document keep their default value.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Mapping combines the controller layout with the keyboard bindings.
func (c *Config) Mapping() input.Mapping {
	m := c.Controller
	m.ResetTimerKey, _ = utf8.DecodeRuneInString(c.Keyboard.ResetTimer)
	m.ReloadKey, _ = utf8.DecodeRuneInString(c.Keyboard.Reload)
	return m
}

// UsesTerminal reports whether the presenter screen is a terminal.
func (c *Config) UsesTerminal() bool {
	return c.Renderer == RendererTerminal || c.Renderer == RendererBoth
}

// UsesImage reports whether frames are written as images.
func (c *Config) UsesImage() bool {
	return c.Renderer == RendererImage || c.Renderer == RendererBoth
}

func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Keyboard.ResetTimer) != 1 || utf8.RuneCountInString(c.Keyboard.Reload) != 1 {
		return fmt.Errorf("keyboard bindings must be single characters")
	}
	if err := c.Mapping().Validate(); err != nil {
		return err
	}
	if c.ScrollLines < 1 {
		return fmt.Errorf("scroll_lines must be positive, got %d", c.ScrollLines)
	}
	if c.Frame.Interval <= 0 {
		return fmt.Errorf("frame interval must be positive, got %s", c.Frame.Interval)
	}
	switch c.Injector {
	case InjectorXdotool, InjectorPaste:
	default:
		return fmt.Errorf("unknown injector %q", c.Injector)
	}
	switch c.Renderer {
	case RendererTerminal, RendererImage, RendererBoth:
	default:
		return fmt.Errorf("unknown renderer %q", c.Renderer)
	}
	if c.UsesImage() {
		if c.Frame.Output == "" {
			return fmt.Errorf("renderer %q needs a frame output path", c.Renderer)
		}
		if c.Frame.Width < 64 || c.Frame.Height < 64 {
			return fmt.Errorf("frame size %dx%d is too small", c.Frame.Width, c.Frame.Height)
		}
	}
	return nil
}
