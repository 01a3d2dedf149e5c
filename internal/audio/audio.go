// Package audio implements the tone output of the sound timer.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/retrogolib/log"
)

const (
	sampleRate    = 44100
	toneFrequency = 440
	amplitude     = 0.25
	bytesPerFrame = 4 // mono float32
)

// Beeper plays a square wave through oto while the tone is on.
type Beeper struct {
	logger *log.Logger
	player *oto.Player
	wave   *squareWave
}

// NewBeeper opens the audio device and starts a silent player.
func NewBeeper(logger *log.Logger) (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	wave := newSquareWave(sampleRate, toneFrequency)
	player := ctx.NewPlayer(wave)
	player.Play()

	logger.Debug("Audio output started", log.Int("sample_rate", sampleRate))
	return &Beeper{
		logger: logger,
		player: player,
		wave:   wave,
	}, nil
}

// SetTone switches the tone on or off. It is safe to call while the audio
// goroutine reads samples.
func (b *Beeper) SetTone(on bool) {
	b.wave.on.Store(on)
}

// Close stops the player.
func (b *Beeper) Close() error {
	b.wave.on.Store(false)
	if err := b.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	b.logger.Debug("Audio output stopped")
	return nil
}

// Silent is a speaker that discards the tone state.
type Silent struct{}

// SetTone does nothing.
func (Silent) SetTone(bool) {}

// squareWave is an endless reader of mono float32 little endian samples.
// It produces silence while the tone is off.
type squareWave struct {
	on        atomic.Bool
	period    int
	position  int
	amplitude float32
}

func newSquareWave(rate, frequency int) *squareWave {
	return &squareWave{
		period:    max(rate/frequency, 2),
		amplitude: amplitude,
	}
}

// Read fills p with whole samples. A trailing partial sample is left for
// the next call.
func (w *squareWave) Read(p []byte) (int, error) {
	on := w.on.Load()
	if !on {
		w.position = 0
	}

	samples := len(p) / bytesPerFrame
	for i := range samples {
		var sample float32
		if on {
			sample = w.amplitude
			if w.position >= w.period/2 {
				sample = -w.amplitude
			}
			w.position = (w.position + 1) % w.period
		}
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(sample))
	}
	return samples * bytesPerFrame, nil
}
