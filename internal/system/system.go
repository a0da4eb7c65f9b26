// Package system inspects the desktop the presenter runs on and pools
// frame buffers.
package system

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"
)

// XServerNames are process names that serve an X display xdotool can talk to.
var XServerNames = []string{"Xorg", "Xwayland", "Xvfb", "Xephyr", "Xvnc", "X"}

// Report describes what the injector and the controller will find.
type Report struct {
	Platform string
	Display  string // $DISPLAY
	XServer  string // process name, empty when none was found
	Xdotool  string // path, empty when not installed
}

// Warnings lists the problems that will make injection fail.
func (r Report) Warnings() []string {
	var w []string
	if r.Display == "" {
		w = append(w, "DISPLAY is not set; xdotool needs an X display")
	}
	if r.XServer == "" {
		w = append(w, "no X server process found")
	}
	if r.Xdotool == "" {
		w = append(w, "xdotool is not installed")
	}
	return w
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "platform: %s\n", orNone(r.Platform))
	fmt.Fprintf(&b, "display:  %s\n", orNone(r.Display))
	fmt.Fprintf(&b, "x server: %s\n", orNone(r.XServer))
	fmt.Fprintf(&b, "xdotool:  %s\n", orNone(r.Xdotool))
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// Prober gathers a Report. The zero value is not usable; see NewProber.
type Prober struct {
	platform  func(ctx context.Context) (string, error)
	processes func(ctx context.Context) ([]string, error)
	lookPath  func(file string) (string, error)
	getenv    func(key string) string
}

func NewProber() *Prober {
	return &Prober{
		platform:  hostPlatform,
		processes: processNames,
		lookPath:  exec.LookPath,
		getenv:    os.Getenv,
	}
}

// Probe uses the host the process runs on.
func Probe(ctx context.Context) (Report, error) {
	return NewProber().Probe(ctx)
}

// Probe fails only when the host cannot be inspected at all; missing pieces
// end up as empty fields.
func (p *Prober) Probe(ctx context.Context) (Report, error) {
	var r Report

	platform, err := p.platform(ctx)
	if err != nil {
		return r, fmt.Errorf("host info: %w", err)
	}
	r.Platform = platform
	r.Display = p.getenv("DISPLAY")

	names, err := p.processes(ctx)
	if err != nil {
		return r, fmt.Errorf("list processes: %w", err)
	}
	for _, name := range names {
		if slices.Contains(XServerNames, name) {
			r.XServer = name
			break
		}
	}

	if path, err := p.lookPath("xdotool"); err == nil {
		r.Xdotool = path
	}
	return r, nil
}

func hostPlatform(ctx context.Context) (string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s (%s/%s)", info.Platform, info.PlatformVersion, info.OS, info.KernelArch), nil
}

func processNames(ctx context.Context) ([]string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(procs))
	for _, proc := range procs {
		// processes exit while we look at them
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
