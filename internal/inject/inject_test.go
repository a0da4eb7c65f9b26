package inject

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	path     string
	args     []string
	deadline time.Duration
}

func recordingXdotool(calls *[]call, err error) *Xdotool {
	return &Xdotool{
		Path: "/usr/bin/xdotool",
		run: func(ctx context.Context, path string, args ...string) error {
			dl, _ := ctx.Deadline()
			*calls = append(*calls, call{path: path, args: args, deadline: time.Until(dl)})
			return err
		},
	}
}

func TestXdotoolSendKeys(t *testing.T) {
	var calls []call
	x := recordingXdotool(&calls, nil)

	require.NoError(t, x.SendKeys(context.Background(), "ctrl+shift+Up", 0))
	require.NoError(t, x.SendKeys(context.Background(), "Return", SubmitDelay))

	require.Len(t, calls, 2)
	assert.Equal(t, "/usr/bin/xdotool", calls[0].path)
	assert.Equal(t, []string{"key", "--delay", "0", "ctrl+shift+Up"}, calls[0].args)
	assert.Equal(t, []string{"key", "--delay", "0", "Return"}, calls[1].args)
	assert.LessOrEqual(t, calls[0].deadline, KeyTimeout)
	assert.Greater(t, calls[0].deadline, time.Duration(0))
}

func TestXdotoolTypeText(t *testing.T) {
	var calls []call
	x := recordingXdotool(&calls, nil)

	require.NoError(t, x.TypeText(context.Background(), "-n\necho bye", TypeDelay))

	require.Len(t, calls, 1)
	assert.Equal(t, []string{"type", "--delay", "50", "--", "-n\necho bye"}, calls[0].args)
	assert.LessOrEqual(t, calls[0].deadline, TypeTimeout)
	assert.Greater(t, calls[0].deadline, KeyTimeout)
}

func TestXdotoolErrors(t *testing.T) {
	var calls []call
	boom := errors.New("boom")
	x := recordingXdotool(&calls, boom)

	err := x.SendKeys(context.Background(), "Page_Down", 0)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Page_Down")

	err = x.TypeText(context.Background(), "ls", TypeDelay)
	assert.ErrorIs(t, err, boom)
}

func TestRunCommand(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	require.NoError(t, runCommand(context.Background(), sh, "-c", "exit 0"))

	err = runCommand(context.Background(), sh, "-c", "echo cannot open display; exit 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open display")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = runCommand(ctx, sh, "-c", "sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type keyRecorder struct {
	keys []string
}

func (r *keyRecorder) SendKeys(_ context.Context, keys string, _ time.Duration) error {
	r.keys = append(r.keys, keys)
	return nil
}

func (r *keyRecorder) TypeText(context.Context, string, time.Duration) error {
	return errors.New("paste must not type")
}

func TestPaste(t *testing.T) {
	keys := &keyRecorder{}
	var copied []string
	p := NewPaste(keys, "")
	p.write = func(s string) error {
		copied = append(copied, s)
		return nil
	}

	require.NoError(t, p.TypeText(context.Background(), "echo hi\necho bye", TypeDelay))
	require.NoError(t, p.SendKeys(context.Background(), "Return", SubmitDelay))

	assert.Equal(t, []string{"echo hi\necho bye"}, copied)
	assert.Equal(t, []string{DefaultPasteKeys, "Return"}, keys.keys)
}

func TestPasteClipboardFailure(t *testing.T) {
	keys := &keyRecorder{}
	p := NewPaste(keys, "shift+Insert")
	p.write = func(string) error { return errors.New("no clipboard utility") }

	err := p.TypeText(context.Background(), "ls", TypeDelay)
	require.Error(t, err)
	assert.Empty(t, keys.keys, "nothing may be pasted when the copy failed")
	assert.Equal(t, "shift+Insert", p.PasteKeys)
}
