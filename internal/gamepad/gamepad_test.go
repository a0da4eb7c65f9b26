package gamepad

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/nespresenter/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, events ...rawEvent) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, ev := range events {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, ev))
	}
	require.Equal(t, eventSize*len(events), buf.Len())
	return buf.Bytes()
}

func collect(t *testing.T, data []byte) []input.Event {
	t.Helper()
	out := make(chan input.Event, 16)
	require.NoError(t, decode(context.Background(), bytes.NewReader(data), out))
	close(out)

	var events []input.Event
	for ev := range out {
		events = append(events, ev)
	}
	return events
}

func TestDecode(t *testing.T) {
	data := encode(t,
		rawEvent{Time: 1, Value: 0, Type: typeButton | typeInit, Number: 0},
		rawEvent{Time: 2, Value: 0, Type: typeAxis | typeInit, Number: 1},
		rawEvent{Time: 10, Value: 1, Type: typeButton, Number: input.NES30ButtonStart},
		rawEvent{Time: 11, Value: 0, Type: typeButton, Number: input.NES30ButtonStart},
		rawEvent{Time: 12, Value: -32767, Type: typeAxis, Number: 1},
		rawEvent{Time: 13, Value: 5, Type: 0x04, Number: 0},
	)

	assert.Equal(t, []input.Event{
		input.Button(input.NES30ButtonStart, true),
		input.Button(input.NES30ButtonStart, false),
		input.Axis(1, -32767),
	}, collect(t, data))
}

func TestDecodeLayout(t *testing.T) {
	// time=0x01020304, value=0x7fff, type=axis, number=1
	data := []byte{0x04, 0x03, 0x02, 0x01, 0xff, 0x7f, 0x02, 0x01}
	assert.Equal(t, []input.Event{input.Axis(1, 32767)}, collect(t, data))
}

func TestDecodeTruncatedRecord(t *testing.T) {
	data := encode(t, rawEvent{Value: 1, Type: typeButton, Number: 3})
	out := make(chan input.Event, 4)
	err := decode(context.Background(), bytes.NewReader(append(data, 0x01, 0x02)), out)
	assert.Error(t, err)
	assert.Len(t, out, 1)
}

func TestDecodeStopsOnCancel(t *testing.T) {
	data := encode(t,
		rawEvent{Value: 1, Type: typeButton, Number: 0},
		rawEvent{Value: 1, Type: typeButton, Number: 1},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make(chan input.Event)
	assert.ErrorIs(t, decode(ctx, bytes.NewReader(data), out), context.Canceled)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "js*")

	_, err := discover(pattern)
	assert.ErrorIs(t, err, ErrNoDevice)

	for _, name := range []string{"js1", "js0", "event3"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	path, err := discover(pattern)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "js0"), path)
}

func TestRunReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "js0")
	require.NoError(t, os.WriteFile(path, encode(t,
		rawEvent{Value: 1, Type: typeButton, Number: input.NES30ButtonSelect},
	), 0o644))

	out := make(chan input.Event, 4)
	require.NoError(t, NewReader(path).Run(context.Background(), out))
	require.Len(t, out, 1)
	assert.Equal(t, input.Button(input.NES30ButtonSelect, true), <-out)
}

func TestRunMissingDeviceIsNotFatal(t *testing.T) {
	out := make(chan input.Event, 1)
	err := NewReader(filepath.Join(t.TempDir(), "js9")).Run(context.Background(), out)
	assert.NoError(t, err)
	assert.Empty(t, out)
}
