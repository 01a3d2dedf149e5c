package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected string
	}{
		{"clear screen", 0x00E0, "cls"},
		{"jump", 0x1234, "jp $234"},
		{"call", 0x2300, "call $300"},
		{"skip equal byte", 0x3234, "se V2, $34"},
		{"load index", 0xA234, "ld I, $234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := Disassemble(tt.word)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDisassemble_Unknown(t *testing.T) {
	result, ok := Disassemble(0xFFFF)
	assert.False(t, ok)
	assert.Equal(t, "", result)
	assert.Nil(t, Lookup(0xFFFF))
	assert.Equal(t, ".word $FFFF", Format(0xFFFF))
}

func TestLookup(t *testing.T) {
	assert.Equal(t, chip8.Cls, Lookup(0x00E0))
	assert.Equal(t, chip8.Ret, Lookup(0x00EE))
	assert.Equal(t, chip8.Drw, Lookup(0xD125))
}

func TestFormatParams(t *testing.T) {
	tests := []struct {
		name      string
		instrName string
		word      uint16
		expected  string
	}{
		{"CLS instruction", "cls", 0x00E0, ""},
		{"RET instruction", "ret", 0x00EE, ""},
		{"JP instruction", "jp", 0x1234, "$234"},
		{"JP V0 instruction", "jp", 0xB234, "V0, $234"},
		{"CALL instruction", "call", 0x2234, "$234"},
		{"SE Vx, byte", "se", 0x3234, "V2, $34"},
		{"SE Vx, Vy", "se", 0x5230, "V2, V3"},
		{"SNE Vx, byte", "sne", 0x4234, "V2, $34"},
		{"SNE Vx, Vy", "sne", 0x9230, "V2, V3"},
		{"LD Vx, byte", "ld", 0x6234, "V2, $34"},
		{"LD Vx, Vy", "ld", 0x8230, "V2, V3"},
		{"LD I, addr", "ld", 0xA234, "I, $234"},
		{"LD Vx, DT", "ld", 0xF207, "V2, DT"},
		{"LD Vx, K", "ld", 0xF20A, "V2, K"},
		{"LD DT, Vx", "ld", 0xF215, "DT, V2"},
		{"LD ST, Vx", "ld", 0xF218, "ST, V2"},
		{"LD F, Vx", "ld", 0xF229, "F, V2"},
		{"LD B, Vx", "ld", 0xF233, "B, V2"},
		{"LD [I], Vx", "ld", 0xF255, "[I], V2"},
		{"LD Vx, [I]", "ld", 0xF265, "V2, [I]"},
		{"ADD Vx, byte", "add", 0x7234, "V2, $34"},
		{"ADD Vx, Vy", "add", 0x8234, "V2, V3"},
		{"ADD I, Vx", "add", 0xF21E, "I, V2"},
		{"OR Vx, Vy", "or", 0x8231, "V2, V3"},
		{"AND Vx, Vy", "and", 0x8232, "V2, V3"},
		{"XOR Vx, Vy", "xor", 0x8233, "V2, V3"},
		{"SUB Vx, Vy", "sub", 0x8235, "V2, V3"},
		{"SUBN Vx, Vy", "subn", 0x8237, "V2, V3"},
		{"SHR Vx", "shr", 0x8236, "V2"},
		{"SHL Vx", "shl", 0x823E, "V2"},
		{"RND Vx, byte", "rnd", 0xC234, "V2, $34"},
		{"DRW Vx, Vy, n", "drw", 0xD235, "V2, V3, $5"},
		{"SKP Vx", "skp", 0xE29E, "V2"},
		{"SKNP Vx", "sknp", 0xE2A1, "V2"},
		{"unknown instruction", "unknown", 0x0000, ""},
		{"non-load form", "ld", 0x1234, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatParams(tt.instrName, tt.word))
		})
	}
}

func TestWriteListing(t *testing.T) {
	program := []byte{0x00, 0xE0, 0x12, 0x00, 0xFF, 0xFF, 0xAB, 0x00, 0x00}
	var buf bytes.Buffer

	err := WriteListing(&buf, program, 0x200)
	assert.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "; CHIP-8 program listing\n\n.org $200\n\n"))
	assert.Contains(t, out, "cls")
	assert.Contains(t, out, "; $200: 00 E0")
	assert.Contains(t, out, "jp $200")
	assert.Contains(t, out, ".word $FFFF")
	assert.Contains(t, out, "; $206: AB 00")
	assert.False(t, strings.Contains(out, "$208"))
}

func TestWriteListing_OddLength(t *testing.T) {
	var buf bytes.Buffer

	err := WriteListing(&buf, []byte{0x00, 0xE0, 0x7F}, 0x200)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), ".byte $7F")
	assert.Contains(t, buf.String(), "; $202: 7F")
}

func TestTrimTrailingZeros(t *testing.T) {
	tests := []struct {
		name     string
		program  []byte
		expected int
	}{
		{"empty", nil, 0},
		{"all zero", []byte{0, 0, 0, 0}, 0},
		{"no trailing zeros", []byte{1, 2}, 2},
		{"even trailing zeros", []byte{1, 2, 0, 0}, 2},
		{"odd cut rounds up to word", []byte{1, 2, 3, 0, 0, 0}, 4},
		{"odd length program", []byte{1, 2, 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, trimTrailingZeros(tt.program))
		})
	}
}
