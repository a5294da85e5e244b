package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrMemoryOutOfBounds is returned when an instruction fetch or a memory
	// accessing instruction addresses outside of the 4KB memory.
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")

	// ErrStackOverflow is returned by a call with a full stack.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned by a return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrProgramTooLarge is returned when a program image does not fit into
	// the memory above ProgramStart.
	ErrProgramTooLarge = errors.New("program too large")

	// ErrKeyOutOfRange is returned for key indices outside of 0-15.
	ErrKeyOutOfRange = errors.New("key index out of range")

	// ErrHalted is returned by Step after a fatal fault until Reset is called.
	ErrHalted = errors.New("machine halted")
)

// UnknownOpcodeError is returned for instruction words that do not match any
// supported instruction.
type UnknownOpcodeError struct {
	Address uint16
	Word    uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04X at address %04X", e.Word, e.Address)
}
