package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneLength(t *testing.T) {
	s, err := tone(clickSampleRate)
	require.NoError(t, err)

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, clickSampleRate.N(clickLength), total)
}

func TestToneIsAudible(t *testing.T) {
	s, err := tone(clickSampleRate)
	require.NoError(t, err)

	buf := make([][2]float64, 64)
	n, ok := s.Stream(buf)
	require.True(t, ok)

	peak := 0.0
	for _, sample := range buf[:n] {
		peak = max(peak, sample[0])
	}
	assert.Greater(t, peak, 0.5)
}

func TestSilent(t *testing.T) {
	var e Effect = Silent{}
	assert.NotPanics(t, e.Play)
}
