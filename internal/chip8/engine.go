package chip8

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// handler executes a decoded instruction. The program counter already points
// at the following instruction when it is called.
type handler func(m *Machine, ins Instruction) error

// handlers is the dispatch table indexed by instruction kind.
var handlers = [kindCount]handler{
	OpNop:    (*Machine).nop,
	OpCls:    (*Machine).clearScreen,
	OpRet:    (*Machine).ret,
	OpJp:     (*Machine).jump,
	OpCall:   (*Machine).call,
	OpSeImm:  (*Machine).skipEqualImmediate,
	OpSneImm: (*Machine).skipNotEqualImmediate,
	OpSeReg:  (*Machine).skipEqualRegisters,
	OpLdImm:  (*Machine).loadImmediate,
	OpAddImm: (*Machine).addImmediate,
	OpLdReg:  (*Machine).move,
	OpOr:     (*Machine).or,
	OpAnd:    (*Machine).and,
	OpXor:    (*Machine).xor,
	OpAddReg: (*Machine).addRegisters,
	OpSub:    (*Machine).subtract,
	OpShr:    (*Machine).shiftRight,
	OpSubn:   (*Machine).subtractReverse,
	OpShl:    (*Machine).shiftLeft,
	OpSneReg: (*Machine).skipNotEqualRegisters,
	OpLdI:    (*Machine).loadAddress,
	OpJpV0:   (*Machine).jumpOffset,
	OpRnd:    (*Machine).randomize,
	OpDrw:    (*Machine).draw,
	OpSkp:    (*Machine).skipKeyPressed,
	OpSknp:   (*Machine).skipKeyReleased,
	OpLdVxDt: (*Machine).loadDelayTimer,
	OpLdVxK:  (*Machine).waitKey,
	OpLdDtVx: (*Machine).setDelayTimer,
	OpLdStVx: (*Machine).setSoundTimer,
	OpAddI:   (*Machine).addAddress,
	OpLdF:    (*Machine).loadFontAddress,
	OpLdB:    (*Machine).storeBCD,
	OpLdIVx:  (*Machine).storeRegisters,
	OpLdVxI:  (*Machine).loadRegisters,
}

// Step executes a single instruction. A returned error is fatal, the machine
// state is left as it was before the failing instruction and all further
// calls return an error wrapping ErrHalted until Reset is called.
func (m *Machine) Step() error {
	if m.halted != nil {
		return fmt.Errorf("%w: %w", ErrHalted, m.halted)
	}

	pc := m.pc
	if err := m.step(); err != nil {
		m.pc = pc
		m.halt(pc, err)
		return err
	}
	return nil
}

// Run executes up to count instructions and stops at the first error.
func (m *Machine) Run(count int) error {
	for range count {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) step() error {
	pc := m.pc
	word, err := m.fetch()
	if err != nil {
		return err
	}

	ins, err := Decode(word)
	if err != nil {
		var unknown *UnknownOpcodeError
		if errors.As(err, &unknown) {
			unknown.Address = pc
		}
		return err
	}

	if m.trace && m.logger != nil {
		m.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("instruction", ins.String()))
	}

	return handlers[ins.Kind](m, ins)
}

// fetch reads the big-endian instruction word at the program counter and
// advances the program counter past it.
func (m *Machine) fetch() (uint16, error) {
	if int(m.pc)+opcodeSize > MemorySize {
		return 0, fmt.Errorf("%w: fetching instruction at %04X", ErrMemoryOutOfBounds, m.pc)
	}

	b1 := m.memory[m.pc]
	b2 := m.memory[m.pc+1]
	m.nibbles = [4]uint8{b1 >> 4, b1 & 0x0F, b2 >> 4, b2 & 0x0F}
	m.pc += opcodeSize
	return uint16(b1)<<8 | uint16(b2), nil
}

func (m *Machine) halt(pc uint16, err error) {
	m.halted = err
	if m.logger != nil {
		m.logger.Error("Machine halted",
			log.Hex("pc", pc),
			log.Err(err))
	}
}

// skipIf skips the next instruction if the condition holds.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += opcodeSize
	}
}
