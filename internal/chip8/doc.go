// Package chip8 implements a CHIP-8 virtual machine core.
//
// # Machine State
//
// A Machine owns the complete mutable state of the interpreter:
//   - 4KB of byte addressable memory, the built-in font at 0x000-0x04F
//   - 16 general-purpose 8-bit registers V0-VF, VF doubles as flag register
//   - the 16-bit address register I and the program counter
//   - a 16 entry return address stack
//   - the delay and sound timers
//   - the 16 key keyboard latch
//   - a 64x32 monochrome display buffer, row-major
//
// Programs are loaded at ProgramStart (0x200).
//
// # Instruction Engine
//
// Step performs one fetch-decode-execute cycle. The 16-bit instruction word is
// decoded once into an Instruction holding a closed Kind enumeration and its
// operand fields, then dispatched to the matching handler.
//
// The core imposes no timing. The host calls Step a number of times per frame
// and TickTimers once per frame:
//
//	m := chip8.New(chip8.WithRandom(chip8.NewRandom(1)))
//	if err := m.Load(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		for range 10 {
//			if err := m.Step(); err != nil {
//				return err
//			}
//		}
//		m.TickTimers()
//		render(m.Display())
//	}
//
// # Faults
//
// Out of bounds memory access, stack overflow or underflow and unknown
// opcodes are fatal. The failing instruction leaves the machine state
// untouched, the program counter points at it and the machine stays halted
// until Reset.
package chip8
