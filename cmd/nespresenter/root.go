package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/nespresenter/internal/config"
	"github.com/ivlev/nespresenter/internal/effects"
	"github.com/ivlev/nespresenter/internal/executor"
	"github.com/ivlev/nespresenter/internal/gamepad"
	"github.com/ivlev/nespresenter/internal/inject"
	"github.com/ivlev/nespresenter/internal/logging"
	"github.com/ivlev/nespresenter/internal/navigation"
	"github.com/ivlev/nespresenter/internal/presenter"
	"github.com/ivlev/nespresenter/internal/render"
	"github.com/ivlev/nespresenter/internal/scenario"
	"github.com/ivlev/nespresenter/internal/system"
)

const defaultLogName = "nespresenter.log"

type options struct {
	configPath    string
	renderer      string
	frameOut      string
	frameInterval time.Duration
	logFile       string
	logLevel      string
	click         bool
	injector      string
	device        string
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&options{})
}

// buildRootCmd binds the flags to o.
func buildRootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nespresenter <scenario>",
		Short: "Drive a live coding demo from a gamepad",
		Long: `nespresenter loads a scenario of shell commands and types them, one per
button press, into the focused window. Select switches between Demo mode
(commands, terminal scrolling) and Presentation mode (slides, timer).

The scenario may be a YAML file or a directory; a directory resolves to
its most recently modified scenario, again on every reload.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresenter(cmd, o, args[0])
		},
	}
	cmd.SetVersionTemplate(`{{printf "nespresenter version %s\n" .Version}}`)

	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "YAML config file")

	f := cmd.Flags()
	f.StringVar(&o.renderer, "renderer", config.RendererTerminal, "where to draw: terminal, image or both")
	f.StringVar(&o.frameOut, "frame-out", "", "PNG file the image renderer writes")
	f.DurationVar(&o.frameInterval, "frame-interval", 16*time.Millisecond, "pause between frames")
	f.StringVar(&o.logFile, "log-file", "", "log file (default $TMPDIR/"+defaultLogName+" with the terminal renderer, stderr otherwise)")
	f.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn or error")
	f.BoolVar(&o.click, "click", false, "play a click after each executed step")
	f.StringVar(&o.injector, "injector", config.InjectorXdotool, "how commands reach the focused window: xdotool or paste")
	f.StringVar(&o.device, "device", "", "joystick device (default: first /dev/input/js*)")

	cmd.AddCommand(newCheckCmd(o))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the command line and exits non-zero on any failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, o *options) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("renderer") {
		cfg.Renderer = o.renderer
	}
	if flags.Changed("frame-out") {
		cfg.Frame.Output = o.frameOut
	}
	if flags.Changed("frame-interval") {
		cfg.Frame.Interval = o.frameInterval
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("click") {
		cfg.Click = o.click
	}
	if flags.Changed("injector") {
		cfg.Injector = o.injector
	}
	if flags.Changed("device") {
		cfg.Device = o.device
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logPath keeps log lines off the terminal the presenter draws on.
func logPath(cfg *config.Config) string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	if cfg.UsesTerminal() {
		return filepath.Join(os.TempDir(), defaultLogName)
	}
	return ""
}

func setupLogging(cfg *config.Config, stderr io.Writer) (io.Closer, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	path := logPath(cfg)
	if path == "" {
		logging.Init(level, stderr)
		return io.NopCloser(nil), nil
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, err
	}
	logging.Init(level, f)
	return f, nil
}

func runPresenter(cmd *cobra.Command, o *options, path string) error {
	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}
	logFile, err := setupLogging(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx := context.Background()

	loader := scenario.NewFileLoader(path)
	sc, err := loader.Load()
	if err != nil {
		return err
	}

	if report, err := system.Probe(ctx); err != nil {
		logging.Warn("Main", "environment probe failed: %v", err)
	} else {
		for _, w := range report.Warnings() {
			logging.Warn("Main", "%s", w)
		}
	}

	xdotool, err := inject.NewXdotool()
	if err != nil {
		return err
	}
	var inj inject.Injector = xdotool
	if cfg.Injector == config.InjectorPaste {
		inj = inject.NewPaste(xdotool, cfg.PasteKeys)
	}

	exec := executor.New(navigation.NewState(), sc, loader, inj, cfg)
	if cfg.Click {
		click, err := effects.NewClick()
		if err != nil {
			logging.Warn("Main", "click disabled: %v", err)
		} else {
			defer click.Close()
			exec.Effect = click
		}
	}

	sources := []presenter.Source{presenter.SignalSource{}}
	if device := gamepadDevice(cfg); device != "" {
		sources = append(sources, gamepad.NewReader(device))
	}

	var renderers render.Multi
	if cfg.UsesImage() {
		img, err := render.NewImageRenderer(cfg.Frame.Output, cfg.Frame.Width, cfg.Frame.Height)
		if err != nil {
			return err
		}
		renderers = append(renderers, img)
	}
	if cfg.UsesTerminal() {
		screen, err := render.NewTerminalScreen()
		if err != nil {
			return err
		}
		renderers = append(renderers, screen)
		sources = append(sources, screen)
	}

	p := presenter.NewPresenter(exec, cfg.Mapping(), renderers, cfg.Frame.Interval, sources...)
	if err := p.Run(ctx); err != nil {
		logging.Error("Main", err, "presenter stopped")
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "See ya")
	return nil
}

// gamepadDevice returns the configured or discovered joystick, or "" when
// the presenter runs on keyboard only.
func gamepadDevice(cfg *config.Config) string {
	if cfg.Device != "" {
		return cfg.Device
	}
	device, err := gamepad.Discover()
	if err != nil {
		logging.Warn("Main", "%v; keyboard only", err)
		return ""
	}
	return device
}
