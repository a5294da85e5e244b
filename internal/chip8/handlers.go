package chip8

import "fmt"

func (m *Machine) nop(Instruction) error {
	return nil
}

func (m *Machine) clearScreen(Instruction) error {
	m.display = [DisplaySize]bool{}
	return nil
}

func (m *Machine) ret(Instruction) error {
	address, err := m.pop()
	if err != nil {
		return err
	}
	m.pc = address
	return nil
}

func (m *Machine) jump(ins Instruction) error {
	m.pc = ins.NNN
	return nil
}

func (m *Machine) call(ins Instruction) error {
	if err := m.push(m.pc); err != nil {
		return err
	}
	m.pc = ins.NNN
	return nil
}

func (m *Machine) skipEqualImmediate(ins Instruction) error {
	m.skipIf(m.v[ins.X] == ins.NN)
	return nil
}

func (m *Machine) skipNotEqualImmediate(ins Instruction) error {
	m.skipIf(m.v[ins.X] != ins.NN)
	return nil
}

func (m *Machine) skipEqualRegisters(ins Instruction) error {
	m.skipIf(m.v[ins.X] == m.v[ins.Y])
	return nil
}

func (m *Machine) skipNotEqualRegisters(ins Instruction) error {
	m.skipIf(m.v[ins.X] != m.v[ins.Y])
	return nil
}

func (m *Machine) loadImmediate(ins Instruction) error {
	m.v[ins.X] = ins.NN
	return nil
}

func (m *Machine) addImmediate(ins Instruction) error {
	m.v[ins.X] += ins.NN
	return nil
}

func (m *Machine) move(ins Instruction) error {
	m.v[ins.X] = m.v[ins.Y]
	return nil
}

func (m *Machine) or(ins Instruction) error {
	m.v[ins.X] |= m.v[ins.Y]
	return nil
}

func (m *Machine) and(ins Instruction) error {
	m.v[ins.X] &= m.v[ins.Y]
	return nil
}

func (m *Machine) xor(ins Instruction) error {
	m.v[ins.X] ^= m.v[ins.Y]
	return nil
}

// The flag writing instructions store the result before the flag, so that
// VF used as operand register ends up holding the flag.

func (m *Machine) addRegisters(ins Instruction) error {
	sum := uint16(m.v[ins.X]) + uint16(m.v[ins.Y])
	m.v[ins.X] = uint8(sum)
	m.v[FlagRegister] = boolToFlag(sum > 0xFF)
	return nil
}

func (m *Machine) subtract(ins Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = x - y
	m.v[FlagRegister] = boolToFlag(x >= y)
	return nil
}

func (m *Machine) subtractReverse(ins Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = y - x
	m.v[FlagRegister] = boolToFlag(y >= x)
	return nil
}

func (m *Machine) shiftRight(ins Instruction) error {
	x := m.v[ins.X]
	m.v[ins.X] = x >> 1
	m.v[FlagRegister] = x & 0x01
	return nil
}

func (m *Machine) shiftLeft(ins Instruction) error {
	x := m.v[ins.X]
	m.v[ins.X] = x << 1
	m.v[FlagRegister] = x >> 7
	return nil
}

func (m *Machine) loadAddress(ins Instruction) error {
	m.i = ins.NNN
	return nil
}

func (m *Machine) jumpOffset(ins Instruction) error {
	m.pc = ins.NNN + uint16(m.v[0])
	return nil
}

func (m *Machine) randomize(ins Instruction) error {
	m.v[ins.X] = uint8(m.random.Uint32()) & ins.NN
	return nil
}

// draw XORs an 8 pixel wide sprite of N rows read from I onto the display.
// Pixels wrap around both screen edges independently. VF is set when any
// lit pixel got turned off.
func (m *Machine) draw(ins Instruction) error {
	rows := int(ins.N)
	if err := checkRange(m.i, rows); err != nil {
		return err
	}

	baseX := int(m.v[ins.X])
	baseY := int(m.v[ins.Y])
	var collision bool

	for row := range rows {
		pixels := m.memory[int(m.i)+row]
		y := (baseY + row) % DisplayHeight

		for col := range 8 {
			if pixels&(0x80>>col) == 0 {
				continue
			}

			x := (baseX + col) % DisplayWidth
			idx := x + DisplayWidth*y
			collision = collision || m.display[idx]
			m.display[idx] = !m.display[idx]
		}
	}

	m.v[FlagRegister] = boolToFlag(collision)
	return nil
}

func (m *Machine) skipKeyPressed(ins Instruction) error {
	pressed, err := m.keyAt(m.v[ins.X])
	if err != nil {
		return err
	}
	m.skipIf(pressed)
	return nil
}

func (m *Machine) skipKeyReleased(ins Instruction) error {
	pressed, err := m.keyAt(m.v[ins.X])
	if err != nil {
		return err
	}
	m.skipIf(!pressed)
	return nil
}

func (m *Machine) keyAt(index uint8) (bool, error) {
	if int(index) >= KeyCount {
		return false, fmt.Errorf("%w: %d", ErrKeyOutOfRange, index)
	}
	return m.keys[index], nil
}

func (m *Machine) loadDelayTimer(ins Instruction) error {
	m.v[ins.X] = m.delay
	return nil
}

// waitKey stores the lowest pressed key in Vx. Without a pressed key the
// program counter is rewound, so that the next step executes this
// instruction again.
func (m *Machine) waitKey(ins Instruction) error {
	for key, pressed := range m.keys {
		if pressed {
			m.v[ins.X] = uint8(key)
			return nil
		}
	}

	m.pc -= opcodeSize
	return nil
}

func (m *Machine) setDelayTimer(ins Instruction) error {
	m.delay = m.v[ins.X]
	return nil
}

func (m *Machine) setSoundTimer(ins Instruction) error {
	m.sound = m.v[ins.X]
	return nil
}

func (m *Machine) addAddress(ins Instruction) error {
	m.i += uint16(m.v[ins.X])
	return nil
}

func (m *Machine) loadFontAddress(ins Instruction) error {
	m.i = glyphSize * uint16(m.v[ins.X])
	return nil
}

// storeBCD stores the hundreds, tens and ones digit of Vx at I, I+1 and I+2.
func (m *Machine) storeBCD(ins Instruction) error {
	if err := checkRange(m.i, 3); err != nil {
		return err
	}

	value := m.v[ins.X]
	m.memory[m.i] = value / 100
	m.memory[m.i+1] = value / 10 % 10
	m.memory[m.i+2] = value % 10
	return nil
}

// storeRegisters copies V0 through Vx into memory starting at I.
func (m *Machine) storeRegisters(ins Instruction) error {
	count := int(ins.X) + 1
	if err := checkRange(m.i, count); err != nil {
		return err
	}
	copy(m.memory[m.i:int(m.i)+count], m.v[:count])
	return nil
}

// loadRegisters copies memory starting at I into V0 through Vx.
func (m *Machine) loadRegisters(ins Instruction) error {
	count := int(ins.X) + 1
	if err := checkRange(m.i, count); err != nil {
		return err
	}
	copy(m.v[:count], m.memory[m.i:int(m.i)+count])
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
