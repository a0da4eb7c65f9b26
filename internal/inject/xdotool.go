package inject

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Xdotool injects through the xdotool command line tool.
type Xdotool struct {
	Path string

	// run executes the tool; replaced in tests.
	run func(ctx context.Context, path string, args ...string) error
}

// NewXdotool locates xdotool on PATH.
func NewXdotool() (*Xdotool, error) {
	path, err := exec.LookPath("xdotool")
	if err != nil {
		return nil, fmt.Errorf("%w: xdotool: %v", ErrToolMissing, err)
	}
	return &Xdotool{Path: path, run: runCommand}, nil
}

func (x *Xdotool) SendKeys(ctx context.Context, keys string, delay time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, KeyTimeout)
	defer cancel()

	if err := x.run(ctx, x.Path, buildKeyArgs(keys, delay)...); err != nil {
		return fmt.Errorf("send keys %q: %w", keys, err)
	}
	return nil
}

func (x *Xdotool) TypeText(ctx context.Context, text string, delay time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, TypeTimeout)
	defer cancel()

	if err := x.run(ctx, x.Path, buildTypeArgs(text, delay)...); err != nil {
		return fmt.Errorf("type text: %w", err)
	}
	return nil
}

func buildKeyArgs(keys string, delay time.Duration) []string {
	return []string{"key", "--delay", delayMillis(delay), keys}
}

func buildTypeArgs(text string, delay time.Duration) []string {
	return []string{"type", "--delay", delayMillis(delay), "--", text}
}

// delayMillis converts to whole milliseconds, the resolution xdotool takes.
func delayMillis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}

func runCommand(ctx context.Context, path string, args ...string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s timed out: %w", path, ctx.Err())
		}
		return fmt.Errorf("%s failed: %v, output: %s", path, err, strings.TrimSpace(out.String()))
	}
	return nil
}
