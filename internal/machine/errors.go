package machine

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramTooLarge is returned by LoadProgram for programs that do not
	// fit between ProgramStart and the end of memory.
	ErrProgramTooLarge = errors.New("program too large")

	// ErrFetchOutOfBounds halts the machine when PC points at a location where
	// a full instruction word can not be read.
	ErrFetchOutOfBounds = errors.New("instruction fetch out of bounds")

	// ErrStackOverflow halts the machine on a call with a full call stack.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow halts the machine on a return with an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")

	// ErrHalted is returned by Step after a fatal error until the next Reset.
	ErrHalted = errors.New("machine halted")
)

// UnknownOpcodeError describes an instruction word that does not decode to
// any instruction. It is reported, not returned, as execution continues.
type UnknownOpcodeError struct {
	Word uint16
	PC   uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode $%04X at $%03X", e.Word, e.PC)
}
