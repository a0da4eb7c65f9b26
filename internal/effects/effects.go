// Package effects provides audible feedback for the presenter.
package effects

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Effect is played after an action succeeded.
type Effect interface {
	Play()
}

// Silent plays nothing.
type Silent struct{}

func (Silent) Play() {}

const (
	clickSampleRate = beep.SampleRate(44100)
	clickFrequency  = 880
	clickLength     = 50 * time.Millisecond
)

// Click is a short sine beep on the default audio device.
type Click struct {
	sampleRate beep.SampleRate
}

// NewClick initialises the speaker. Callers treat a failure as "no sound".
func NewClick() (*Click, error) {
	if err := speaker.Init(clickSampleRate, clickSampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Click{sampleRate: clickSampleRate}, nil
}

// Play queues the beep and returns immediately.
func (c *Click) Play() {
	t, err := tone(c.sampleRate)
	if err != nil {
		return
	}
	speaker.Play(t)
}

func tone(sr beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, clickFrequency)
	if err != nil {
		return nil, err
	}
	return beep.Take(sr.N(clickLength), sine), nil
}

// Close releases the audio device.
func (c *Click) Close() {
	speaker.Close()
}
