package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func readSamples(t *testing.T, w *squareWave, count int) []float32 {
	t.Helper()

	buf := make([]byte, count*bytesPerFrame)
	n, err := w.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, len(buf), n)

	samples := make([]float32, count)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*bytesPerFrame:]))
	}
	return samples
}

func TestSquareWave_Silent(t *testing.T) {
	w := newSquareWave(8, 2)

	for _, s := range readSamples(t, w, 8) {
		assert.Equal(t, float32(0), s)
	}
}

func TestSquareWave_Tone(t *testing.T) {
	w := newSquareWave(8, 2) // period of 4 samples
	w.on.Store(true)

	a := float32(amplitude)
	expected := []float32{a, a, -a, -a, a, a, -a, -a}
	assert.Equal(t, expected, readSamples(t, w, 8))
}

func TestSquareWave_OffResetsPhase(t *testing.T) {
	w := newSquareWave(8, 2)
	w.on.Store(true)
	readSamples(t, w, 3)

	w.on.Store(false)
	readSamples(t, w, 1)

	w.on.Store(true)
	samples := readSamples(t, w, 1)
	assert.Equal(t, float32(amplitude), samples[0])
}

func TestSquareWave_PartialSample(t *testing.T) {
	w := newSquareWave(8, 2)
	w.on.Store(true)

	buf := []byte{1, 2, 3, 4, 5, 6}
	n, err := w.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, bytesPerFrame, n)
	assert.Equal(t, []byte{5, 6}, buf[4:])
}

func TestNewSquareWave_MinimumPeriod(t *testing.T) {
	w := newSquareWave(100, 1000)
	assert.Equal(t, 2, w.period)
}

func TestSilent(t *testing.T) {
	var s Silent
	s.SetTone(true)
	s.SetTone(false)
}
