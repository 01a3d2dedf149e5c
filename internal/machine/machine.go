package machine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Machine is a CHIP-8 virtual machine. It is not safe for concurrent use,
// the owner has to serialize all calls.
type Machine struct {
	logger *log.Logger

	memory [MemorySize]byte
	v      [RegisterCount]byte
	i      uint16
	pc     uint16

	stack [StackSize]uint16
	sp    uint8

	delayTimer byte
	soundTimer byte

	display     Framebuffer
	drawPending bool
	keys        [KeyCount]bool

	rng          *rand.Rand
	customRandom bool

	errorHandler   func(error)
	unknownOpcodes uint64
	haltErr        error
}

// Option configures a Machine.
type Option func(*Machine)

// WithRandomSource sets the source used by the random number instruction.
// The source is kept across resets, which makes runs reproducible.
func WithRandomSource(src rand.Source) Option {
	return func(m *Machine) {
		m.rng = rand.New(src)
		m.customRandom = true
	}
}

// WithErrorHandler sets a function that receives every non-fatal error,
// in addition to it being logged.
func WithErrorHandler(fn func(error)) Option {
	return func(m *Machine) {
		m.errorHandler = fn
	}
}

// New returns a new machine in its reset state.
func New(logger *log.Logger, options ...Option) *Machine {
	m := &Machine{
		logger: logger,
	}
	for _, opt := range options {
		opt(m)
	}
	m.Reset()
	return m
}

// Reset puts the machine into its power-on state: memory, registers, stack,
// timers, display and keys are cleared, the font is loaded and PC points to
// ProgramStart. A loaded program has to be loaded again.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[FontStart:], font[:])

	m.v = [RegisterCount]byte{}
	m.i = 0
	m.pc = ProgramStart

	m.stack = [StackSize]uint16{}
	m.sp = 0

	m.delayTimer = 0
	m.soundTimer = 0

	m.display.clear()
	m.drawPending = false
	m.keys = [KeyCount]bool{}

	m.unknownOpcodes = 0
	m.haltErr = nil

	if !m.customRandom {
		seed := uint64(time.Now().UnixNano())
		m.rng = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	}
}

// LoadProgram copies the program into memory at ProgramStart. All other
// state is left untouched.
func (m *Machine) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes (max: %d)", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(m.memory[ProgramStart:], program)
	return nil
}

// SetKey sets the state of a keypad key. Indexes outside of the keypad are
// ignored.
func (m *Machine) SetKey(index int, pressed bool) {
	if index < 0 || index >= KeyCount {
		return
	}
	m.keys[index] = pressed
}

// Framebuffer returns a copy of the display contents.
func (m *Machine) Framebuffer() Framebuffer {
	return m.display
}

// DrawPending returns whether the display changed since the flag was last
// cleared.
func (m *Machine) DrawPending() bool {
	return m.drawPending
}

// ClearDrawPending marks the current display contents as presented.
func (m *Machine) ClearDrawPending() {
	m.drawPending = false
}

// Halted returns the fatal error that stopped the machine, or nil.
func (m *Machine) Halted() error {
	return m.haltErr
}

// UnknownOpcodes returns the number of unknown opcodes skipped since the
// last reset.
func (m *Machine) UnknownOpcodes() uint64 {
	return m.unknownOpcodes
}

// ReadMemory returns the byte at the given address, wrapped into the 12-bit
// address space.
func (m *Machine) ReadMemory(address uint16) byte {
	return m.memory[address&AddressMask]
}

// Snapshot is a copy of the CPU visible machine state.
type Snapshot struct {
	PC         uint16
	I          uint16
	SP         uint8
	V          [RegisterCount]byte
	Stack      [StackSize]uint16
	DelayTimer byte
	SoundTimer byte
}

// Snapshot returns a copy of the registers, stack and timers.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		PC:         m.pc,
		I:          m.i,
		SP:         m.sp,
		V:          m.v,
		Stack:      m.stack,
		DelayTimer: m.delayTimer,
		SoundTimer: m.soundTimer,
	}
}

// Step executes a single instruction and then ticks both timers.
// It returns whether the sound timer was active during this step.
// A returned error is fatal, the machine stays halted until Reset.
func (m *Machine) Step() (bool, error) {
	if m.haltErr != nil {
		return false, fmt.Errorf("%w: %w", ErrHalted, m.haltErr)
	}

	word, err := m.fetch()
	if err != nil {
		return false, m.halt(err)
	}

	ins := Decode(word)
	if err := handlers[ins.Op](m, ins); err != nil {
		return false, m.halt(err)
	}

	return m.tickTimers(), nil
}

// fetch reads the big endian instruction word at PC.
func (m *Machine) fetch() (uint16, error) {
	if int(m.pc)+1 >= MemorySize {
		return 0, fmt.Errorf("%w: pc $%04X", ErrFetchOutOfBounds, m.pc)
	}
	return uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1]), nil
}

func (m *Machine) tickTimers() bool {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
		return true
	}
	return false
}

func (m *Machine) halt(err error) error {
	m.haltErr = err
	m.logger.Debug("Machine halted", log.Err(err), log.Hex("pc", m.pc))
	return err
}

// report logs a non-fatal error and forwards it to the error handler.
func (m *Machine) report(err error) {
	m.logger.Warn("Non-fatal execution error", log.Err(err))
	if m.errorHandler != nil {
		m.errorHandler(err)
	}
}
