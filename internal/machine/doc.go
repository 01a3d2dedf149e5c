// Package machine implements the CHIP-8 virtual machine core.
//
// # Memory Layout
//
// The machine has 4KB of byte addressable memory (0x000-0xFFF):
//   - 0x000-0x1FF: Interpreter area, the hexadecimal font lives at FontStart
//   - ProgramStart-0xFFF: Loaded program and its data
//
// # Execution Model
//
// Every call to Machine.Step executes exactly one instruction:
//  1. Fetch the big endian instruction word at PC
//  2. Decode it into an Instruction descriptor
//  3. Dispatch the descriptor to its handler, which advances PC itself
//  4. Tick the delay and sound timers
//
// The machine never blocks. The wait-for-key instruction is polled once per
// step by leaving PC on the instruction until a key is held down.
//
// # Errors
//
// Unknown opcodes are reported to the logger and skipped. A call stack
// overflow or underflow and an instruction fetch past the end of memory
// halt the machine; Step keeps returning ErrHalted until Reset is called.
//
// # Usage Example
//
//	m := machine.New(logger)
//	if err := m.LoadProgram(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		tone, err := m.Step()
//		...
//	}
package machine
