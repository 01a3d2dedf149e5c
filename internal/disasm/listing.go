package disasm

import (
	"fmt"
	"io"
)

// WriteListing writes a linear listing of the program as it is placed in
// memory at origin. Every word is shown as an instruction if it decodes to
// one, otherwise as data. A trailing odd byte is written as a byte.
func WriteListing(w io.Writer, program []byte, origin uint16) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 program listing\n\n.org $%03X\n\n", origin); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	end := trimTrailingZeros(program)
	for i := 0; i < end; i += 2 {
		address := origin + uint16(i)

		var line string
		if i+1 < len(program) {
			word := uint16(program[i])<<8 | uint16(program[i+1])
			line = fmt.Sprintf("    %-24s ; $%03X: %02X %02X", Format(word), address, program[i], program[i+1])
		} else {
			line = fmt.Sprintf("    %-24s ; $%03X: %02X", fmt.Sprintf(".byte $%02X", program[i]), address, program[i])
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing line for address $%03X: %w", address, err)
		}
	}
	return nil
}

// trimTrailingZeros returns the length of the program without trailing zero
// bytes, rounded up to a full word.
func trimTrailingZeros(program []byte) int {
	end := len(program)
	for end > 0 && program[end-1] == 0 {
		end--
	}
	if end%2 == 1 && end < len(program) {
		end++
	}
	return end
}
