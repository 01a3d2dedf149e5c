// Package emulator drives a CHIP-8 machine in frames and connects it to
// presentation, input and sound collaborators.
package emulator

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Display presents a completed frame.
type Display interface {
	Present(fb machine.Framebuffer) error
}

// Keypad reports the pressed state of the 16 keys.
type Keypad interface {
	Keys() [machine.KeyCount]bool
}

// Speaker plays a tone while it is switched on.
type Speaker interface {
	SetTone(on bool)
}

// Emulator runs a fixed number of machine steps per frame.
// It is not safe for concurrent use.
type Emulator struct {
	logger  *log.Logger
	machine *machine.Machine

	display Display
	keypad  Keypad
	speaker Speaker

	stepsPerFrame int
	fps           int
	frameLimit    int
	trace         bool

	frames int
	tone   bool
}

// New returns an emulator for the machine. Any of the collaborators may be
// nil, in which case the related output or input is skipped.
func New(logger *log.Logger, m *machine.Machine, opts options.Program,
	display Display, keypad Keypad, speaker Speaker) *Emulator {

	return &Emulator{
		logger:        logger,
		machine:       m,
		display:       display,
		keypad:        keypad,
		speaker:       speaker,
		stepsPerFrame: opts.StepsPerFrame(),
		fps:           opts.FPS,
		frameLimit:    opts.Frames,
		trace:         opts.Trace,
	}
}

// Frames returns the number of completed frames.
func (e *Emulator) Frames() int {
	return e.frames
}

// Frame applies the current key state, executes one frame worth of
// instructions, updates the tone and presents the display if it changed.
func (e *Emulator) Frame() error {
	if e.keypad != nil {
		for i, pressed := range e.keypad.Keys() {
			e.machine.SetKey(i, pressed)
		}
	}

	tone := false
	for range e.stepsPerFrame {
		if e.trace {
			e.traceInstruction()
		}

		active, err := e.machine.Step()
		if err != nil {
			e.setTone(false)
			return fmt.Errorf("executing frame %d: %w", e.frames, err)
		}
		tone = tone || active
	}
	e.setTone(tone)

	if e.machine.DrawPending() {
		if e.display != nil {
			if err := e.display.Present(e.machine.Framebuffer()); err != nil {
				return fmt.Errorf("presenting frame %d: %w", e.frames, err)
			}
		}
		e.machine.ClearDrawPending()
	}

	e.frames++
	return nil
}

// Run executes frames at the configured rate until the context is done,
// the frame limit is reached or the machine halts.
func (e *Emulator) Run(ctx context.Context) error {
	fps := e.fps
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	defer e.setTone(false)

	for e.frameLimit <= 0 || e.frames < e.frameLimit {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running emulation: %w", ctx.Err())
		case <-ticker.C:
		}

		if err := e.Frame(); err != nil {
			return err
		}
	}

	e.logger.Debug("Frame limit reached", log.Int("frames", e.frames))
	return nil
}

func (e *Emulator) setTone(on bool) {
	if e.speaker == nil || on == e.tone {
		return
	}
	e.tone = on
	e.speaker.SetTone(on)
}

func (e *Emulator) traceInstruction() {
	pc := e.machine.Snapshot().PC
	word := uint16(e.machine.ReadMemory(pc))<<8 | uint16(e.machine.ReadMemory(pc+1))
	e.logger.Debug("Executing",
		log.Hex("pc", pc),
		log.Hex("word", word),
		log.Stringer("op", machine.Decode(word).Op),
		log.String("instruction", disasm.Format(word)))
}
