package system

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeProber(procs []string, xdotool bool, display string) *Prober {
	return &Prober{
		platform: func(context.Context) (string, error) { return "debian 12 (linux/x86_64)", nil },
		processes: func(context.Context) ([]string, error) {
			return procs, nil
		},
		lookPath: func(file string) (string, error) {
			if xdotool {
				return "/usr/bin/" + file, nil
			}
			return "", errors.New("not found")
		},
		getenv: func(key string) string {
			if key == "DISPLAY" {
				return display
			}
			return ""
		},
	}
}

func TestProbeHealthyDesktop(t *testing.T) {
	r, err := fakeProber([]string{"systemd", "Xorg", "bash"}, true, ":0").Probe(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Xorg", r.XServer)
	assert.Equal(t, "/usr/bin/xdotool", r.Xdotool)
	assert.Equal(t, ":0", r.Display)
	assert.Empty(t, r.Warnings())
	assert.Contains(t, r.String(), "xdotool:  /usr/bin/xdotool")
}

func TestProbeHeadless(t *testing.T) {
	r, err := fakeProber([]string{"sshd", "bash"}, false, "").Probe(context.Background())
	require.NoError(t, err)

	assert.Len(t, r.Warnings(), 3)
	assert.Contains(t, r.String(), "x server: (none)")
}

func TestProbeProcessListFailure(t *testing.T) {
	p := fakeProber(nil, true, ":0")
	p.processes = func(context.Context) ([]string, error) { return nil, errors.New("no /proc") }

	_, err := p.Probe(context.Background())
	assert.ErrorContains(t, err, "no /proc")
}

func TestProbeLiveHost(t *testing.T) {
	r, err := Probe(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, r.Platform)
}

func TestImagePool(t *testing.T) {
	p := NewImagePool()
	rect := image.Rect(0, 0, 8, 4)

	img := p.Get(rect)
	require.NotNil(t, img)
	assert.Equal(t, rect, img.Rect)
	p.Put(img)

	other := p.Get(image.Rect(0, 0, 2, 2))
	assert.Equal(t, 2, other.Rect.Dx())

	// unknown sizes are dropped, nil is ignored
	p.Put(image.NewRGBA(image.Rect(0, 0, 3, 3)))
	p.Put(nil)
}
