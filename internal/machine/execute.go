package machine

import "fmt"

// handler executes a decoded instruction. Every handler advances PC itself.
type handler func(m *Machine, ins Instruction) error

// handlers maps every operation to its implementation.
var handlers = [opCount]handler{
	OpInvalid: (*Machine).unknown,
	OpCls:     (*Machine).cls,
	OpRet:     (*Machine).ret,
	OpJp:      (*Machine).jp,
	OpCall:    (*Machine).call,
	OpSeByte:  (*Machine).seByte,
	OpSneByte: (*Machine).sneByte,
	OpSeReg:   (*Machine).seReg,
	OpLdByte:  (*Machine).ldByte,
	OpAddByte: (*Machine).addByte,
	OpLdReg:   (*Machine).ldReg,
	OpOr:      (*Machine).or,
	OpAnd:     (*Machine).and,
	OpXor:     (*Machine).xor,
	OpAddReg:  (*Machine).addReg,
	OpSub:     (*Machine).sub,
	OpShr:     (*Machine).shr,
	OpSubn:    (*Machine).subn,
	OpShl:     (*Machine).shl,
	OpSneReg:  (*Machine).sneReg,
	OpLdI:     (*Machine).ldI,
	OpJpV0:    (*Machine).jpV0,
	OpRnd:     (*Machine).rnd,
	OpDrw:     (*Machine).drw,
	OpSkp:     (*Machine).skp,
	OpSknp:    (*Machine).sknp,
	OpLdVxDT:  (*Machine).ldVxDT,
	OpLdKey:   (*Machine).ldKey,
	OpLdDTVx:  (*Machine).ldDTVx,
	OpLdSTVx:  (*Machine).ldSTVx,
	OpAddI:    (*Machine).addI,
	OpLdFont:  (*Machine).ldFont,
	OpLdBCD:   (*Machine).ldBCD,
	OpStore:   (*Machine).store,
	OpLoad:    (*Machine).load,
}

func (m *Machine) next() {
	m.pc += InstructionSize
}

// skipIf advances PC past the next instruction if the condition holds.
func (m *Machine) skipIf(condition bool) {
	m.pc += InstructionSize
	if condition {
		m.pc += InstructionSize
	}
}

func (m *Machine) setFlag(set bool) {
	if set {
		m.v[FlagRegister] = 1
	} else {
		m.v[FlagRegister] = 0
	}
}

func (m *Machine) unknown(ins Instruction) error {
	m.unknownOpcodes++
	m.report(&UnknownOpcodeError{Word: ins.Word, PC: m.pc})
	m.next()
	return nil
}

func (m *Machine) cls(_ Instruction) error {
	m.display.clear()
	m.drawPending = true
	m.next()
	return nil
}

func (m *Machine) ret(_ Instruction) error {
	if m.sp == 0 {
		return fmt.Errorf("%w: return at $%03X", ErrStackUnderflow, m.pc)
	}
	m.sp--
	m.pc = m.stack[m.sp]
	m.stack[m.sp] = 0
	return nil
}

func (m *Machine) jp(ins Instruction) error {
	m.pc = ins.NNN
	return nil
}

func (m *Machine) call(ins Instruction) error {
	if int(m.sp) >= StackSize {
		return fmt.Errorf("%w: call to $%03X at $%03X", ErrStackOverflow, ins.NNN, m.pc)
	}
	m.stack[m.sp] = m.pc + InstructionSize
	m.sp++
	m.pc = ins.NNN
	return nil
}

func (m *Machine) seByte(ins Instruction) error {
	m.skipIf(m.v[ins.X] == ins.KK)
	return nil
}

func (m *Machine) sneByte(ins Instruction) error {
	m.skipIf(m.v[ins.X] != ins.KK)
	return nil
}

func (m *Machine) seReg(ins Instruction) error {
	m.skipIf(m.v[ins.X] == m.v[ins.Y])
	return nil
}

func (m *Machine) sneReg(ins Instruction) error {
	m.skipIf(m.v[ins.X] != m.v[ins.Y])
	return nil
}

func (m *Machine) ldByte(ins Instruction) error {
	m.v[ins.X] = ins.KK
	m.next()
	return nil
}

// addByte does not touch the carry flag.
func (m *Machine) addByte(ins Instruction) error {
	m.v[ins.X] += ins.KK
	m.next()
	return nil
}

func (m *Machine) ldReg(ins Instruction) error {
	m.v[ins.X] = m.v[ins.Y]
	m.next()
	return nil
}

func (m *Machine) or(ins Instruction) error {
	m.v[ins.X] |= m.v[ins.Y]
	m.next()
	return nil
}

func (m *Machine) and(ins Instruction) error {
	m.v[ins.X] &= m.v[ins.Y]
	m.next()
	return nil
}

func (m *Machine) xor(ins Instruction) error {
	m.v[ins.X] ^= m.v[ins.Y]
	m.next()
	return nil
}

// The arithmetic and shift handlers read their operands before writing VF
// and store the result last, so with X == F the result ends up in VF.

func (m *Machine) addReg(ins Instruction) error {
	sum := uint16(m.v[ins.X]) + uint16(m.v[ins.Y])
	m.setFlag(sum > 0xFF)
	m.v[ins.X] = byte(sum)
	m.next()
	return nil
}

func (m *Machine) sub(ins Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.setFlag(x > y)
	m.v[ins.X] = x - y
	m.next()
	return nil
}

func (m *Machine) subn(ins Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.setFlag(y > x)
	m.v[ins.X] = y - x
	m.next()
	return nil
}

func (m *Machine) shr(ins Instruction) error {
	x := m.v[ins.X]
	m.v[FlagRegister] = x & 0x01
	m.v[ins.X] = x >> 1
	m.next()
	return nil
}

func (m *Machine) shl(ins Instruction) error {
	x := m.v[ins.X]
	m.v[FlagRegister] = x >> 7
	m.v[ins.X] = x << 1
	m.next()
	return nil
}

func (m *Machine) ldI(ins Instruction) error {
	m.i = ins.NNN
	m.next()
	return nil
}

// jpV0 may produce a target beyond the address space, the next fetch
// catches that.
func (m *Machine) jpV0(ins Instruction) error {
	m.pc = ins.NNN + uint16(m.v[0])
	return nil
}

func (m *Machine) rnd(ins Instruction) error {
	m.v[ins.X] = byte(m.rng.Uint32()) & ins.KK
	m.next()
	return nil
}

// drw XORs an 8 pixel wide, N rows high sprite read from memory at I onto
// the display at (VX, VY). Both axes wrap independently. VF is set when any
// set pixel gets cleared.
func (m *Machine) drw(ins Instruction) error {
	m.drawPending = true
	x0 := int(m.v[ins.X]) % DisplayWidth
	y0 := int(m.v[ins.Y]) % DisplayHeight

	var collision bool
	for row := range int(ins.N) {
		sprite := m.memory[(m.i+uint16(row))&AddressMask]
		for bit := range 8 {
			if sprite&(0x80>>bit) == 0 {
				continue
			}
			if m.display.xorPixel(x0+bit, y0+row) {
				collision = true
			}
		}
	}

	m.setFlag(collision)
	m.next()
	return nil
}

func (m *Machine) skp(ins Instruction) error {
	m.skipIf(m.keys[m.v[ins.X]&0x0F])
	return nil
}

func (m *Machine) sknp(ins Instruction) error {
	m.skipIf(!m.keys[m.v[ins.X]&0x0F])
	return nil
}

func (m *Machine) ldVxDT(ins Instruction) error {
	m.v[ins.X] = m.delayTimer
	m.next()
	return nil
}

// ldKey keeps PC on the instruction until a key is held down, so the wait
// is polled once per step.
func (m *Machine) ldKey(ins Instruction) error {
	for key, pressed := range m.keys {
		if pressed {
			m.v[ins.X] = byte(key)
			m.next()
			return nil
		}
	}
	return nil
}

func (m *Machine) ldDTVx(ins Instruction) error {
	m.delayTimer = m.v[ins.X]
	m.next()
	return nil
}

func (m *Machine) ldSTVx(ins Instruction) error {
	m.soundTimer = m.v[ins.X]
	m.next()
	return nil
}

func (m *Machine) addI(ins Instruction) error {
	m.i = (m.i + uint16(m.v[ins.X])) & AddressMask
	m.next()
	return nil
}

func (m *Machine) ldFont(ins Instruction) error {
	m.i = FontStart + uint16(m.v[ins.X]&0x0F)*glyphSize
	m.next()
	return nil
}

func (m *Machine) ldBCD(ins Instruction) error {
	value := m.v[ins.X]
	m.memory[m.i&AddressMask] = value / 100
	m.memory[(m.i+1)&AddressMask] = value / 10 % 10
	m.memory[(m.i+2)&AddressMask] = value % 10
	m.next()
	return nil
}

func (m *Machine) store(ins Instruction) error {
	for r := range uint16(ins.X) + 1 {
		m.memory[(m.i+r)&AddressMask] = m.v[r]
	}
	m.next()
	return nil
}

func (m *Machine) load(ins Instruction) error {
	for r := range uint16(ins.X) + 1 {
		m.v[r] = m.memory[(m.i+r)&AddressMask]
	}
	m.next()
	return nil
}
