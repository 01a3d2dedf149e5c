package machine

// Op identifies the operation of a decoded instruction.
type Op uint8

// Operations of the standard CHIP-8 instruction set.
const (
	OpInvalid Op = iota
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1NNN
	OpCall       // 2NNN
	OpSeByte     // 3XKK
	OpSneByte    // 4XKK
	OpSeReg      // 5XY0
	OpLdByte     // 6XKK
	OpAddByte    // 7XKK
	OpLdReg      // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAddReg     // 8XY4
	OpSub        // 8XY5
	OpShr        // 8XY6
	OpSubn       // 8XY7
	OpShl        // 8XYE
	OpSneReg     // 9XY0
	OpLdI        // ANNN
	OpJpV0       // BNNN
	OpRnd        // CXKK
	OpDrw        // DXYN
	OpSkp        // EX9E
	OpSknp       // EXA1
	OpLdVxDT     // FX07
	OpLdKey      // FX0A
	OpLdDTVx     // FX15
	OpLdSTVx     // FX18
	OpAddI       // FX1E
	OpLdFont     // FX29
	OpLdBCD      // FX33
	OpStore      // FX55
	OpLoad       // FX65

	opCount
)

var opNames = [opCount]string{
	OpInvalid: "invalid",
	OpCls:     "cls",
	OpRet:     "ret",
	OpJp:      "jp",
	OpCall:    "call",
	OpSeByte:  "se byte",
	OpSneByte: "sne byte",
	OpSeReg:   "se reg",
	OpLdByte:  "ld byte",
	OpAddByte: "add byte",
	OpLdReg:   "ld reg",
	OpOr:      "or",
	OpAnd:     "and",
	OpXor:     "xor",
	OpAddReg:  "add reg",
	OpSub:     "sub",
	OpShr:     "shr",
	OpSubn:    "subn",
	OpShl:     "shl",
	OpSneReg:  "sne reg",
	OpLdI:     "ld i",
	OpJpV0:    "jp v0",
	OpRnd:     "rnd",
	OpDrw:     "drw",
	OpSkp:     "skp",
	OpSknp:    "sknp",
	OpLdVxDT:  "ld vx, dt",
	OpLdKey:   "ld vx, k",
	OpLdDTVx:  "ld dt, vx",
	OpLdSTVx:  "ld st, vx",
	OpAddI:    "add i",
	OpLdFont:  "ld f",
	OpLdBCD:   "ld b",
	OpStore:   "ld [i], vx",
	OpLoad:    "ld vx, [i]",
}

func (o Op) String() string {
	if o >= opCount {
		return opNames[OpInvalid]
	}
	return opNames[o]
}

// Instruction is a decoded instruction word. All operand fields are
// extracted once by Decode, whether the operation uses them or not.
type Instruction struct {
	Op   Op
	Word uint16

	X   uint8  // register index, bits 8-11
	Y   uint8  // register index, bits 4-7
	N   uint8  // immediate nibble, bits 0-3
	KK  uint8  // immediate byte, bits 0-7
	NNN uint16 // address, bits 0-11
}

// pattern matches an instruction word against a fixed bit pattern.
type pattern struct {
	mask  uint16
	value uint16
	op    Op
}

// patterns is indexed by the top nibble of the instruction word, the
// operation class. Classes with sub-cases list one pattern per sub-case.
var patterns = [16][]pattern{
	0x0: {
		{mask: 0xFFFF, value: 0x00E0, op: OpCls},
		{mask: 0xFFFF, value: 0x00EE, op: OpRet},
	},
	0x1: {{mask: 0xF000, value: 0x1000, op: OpJp}},
	0x2: {{mask: 0xF000, value: 0x2000, op: OpCall}},
	0x3: {{mask: 0xF000, value: 0x3000, op: OpSeByte}},
	0x4: {{mask: 0xF000, value: 0x4000, op: OpSneByte}},
	0x5: {{mask: 0xF00F, value: 0x5000, op: OpSeReg}},
	0x6: {{mask: 0xF000, value: 0x6000, op: OpLdByte}},
	0x7: {{mask: 0xF000, value: 0x7000, op: OpAddByte}},
	0x8: {
		{mask: 0xF00F, value: 0x8000, op: OpLdReg},
		{mask: 0xF00F, value: 0x8001, op: OpOr},
		{mask: 0xF00F, value: 0x8002, op: OpAnd},
		{mask: 0xF00F, value: 0x8003, op: OpXor},
		{mask: 0xF00F, value: 0x8004, op: OpAddReg},
		{mask: 0xF00F, value: 0x8005, op: OpSub},
		{mask: 0xF00F, value: 0x8006, op: OpShr},
		{mask: 0xF00F, value: 0x8007, op: OpSubn},
		{mask: 0xF00F, value: 0x800E, op: OpShl},
	},
	0x9: {{mask: 0xF00F, value: 0x9000, op: OpSneReg}},
	0xA: {{mask: 0xF000, value: 0xA000, op: OpLdI}},
	0xB: {{mask: 0xF000, value: 0xB000, op: OpJpV0}},
	0xC: {{mask: 0xF000, value: 0xC000, op: OpRnd}},
	0xD: {{mask: 0xF000, value: 0xD000, op: OpDrw}},
	0xE: {
		{mask: 0xF0FF, value: 0xE09E, op: OpSkp},
		{mask: 0xF0FF, value: 0xE0A1, op: OpSknp},
	},
	0xF: {
		{mask: 0xF0FF, value: 0xF007, op: OpLdVxDT},
		{mask: 0xF0FF, value: 0xF00A, op: OpLdKey},
		{mask: 0xF0FF, value: 0xF015, op: OpLdDTVx},
		{mask: 0xF0FF, value: 0xF018, op: OpLdSTVx},
		{mask: 0xF0FF, value: 0xF01E, op: OpAddI},
		{mask: 0xF0FF, value: 0xF029, op: OpLdFont},
		{mask: 0xF0FF, value: 0xF033, op: OpLdBCD},
		{mask: 0xF0FF, value: 0xF055, op: OpStore},
		{mask: 0xF0FF, value: 0xF065, op: OpLoad},
	},
}

// Decode splits an instruction word into its operand fields and looks up
// the operation. Words that match no pattern decode to OpInvalid.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		X:    uint8((word & 0x0F00) >> 8),
		Y:    uint8((word & 0x00F0) >> 4),
		N:    uint8(word & 0x000F),
		KK:   uint8(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}

	class := (word & 0xF000) >> 12
	for _, p := range patterns[class] {
		if word&p.mask == p.value {
			ins.Op = p.op
			break
		}
	}
	return ins
}
