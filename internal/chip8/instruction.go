package chip8

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Kind identifies a decoded instruction.
type Kind uint8

// Instruction kinds, the comment shows the matching instruction word pattern.
const (
	OpInvalid Kind = iota
	OpNop          // 0000
	OpCls          // 00E0
	OpRet          // 00EE
	OpJp           // 1NNN
	OpCall         // 2NNN
	OpSeImm        // 3XNN
	OpSneImm       // 4XNN
	OpSeReg        // 5XY0
	OpLdImm        // 6XNN
	OpAddImm       // 7XNN
	OpLdReg        // 8XY0
	OpOr           // 8XY1
	OpAnd          // 8XY2
	OpXor          // 8XY3
	OpAddReg       // 8XY4
	OpSub          // 8XY5
	OpShr          // 8XY6
	OpSubn         // 8XY7
	OpShl          // 8XYE
	OpSneReg       // 9XY0
	OpLdI          // ANNN
	OpJpV0         // BNNN
	OpRnd          // CXNN
	OpDrw          // DXYN
	OpSkp          // EX9E
	OpSknp         // EXA1
	OpLdVxDt       // FX07
	OpLdVxK        // FX0A
	OpLdDtVx       // FX15
	OpLdStVx       // FX18
	OpAddI         // FX1E
	OpLdF          // FX29
	OpLdB          // FX33
	OpLdIVx        // FX55
	OpLdVxI        // FX65

	kindCount
)

// mnemonics maps every kind to its instruction definition.
var mnemonics = [kindCount]*chip8cpu.Instruction{
	OpCls:    chip8cpu.Cls,
	OpRet:    chip8cpu.Ret,
	OpJp:     chip8cpu.Jp,
	OpCall:   chip8cpu.Call,
	OpSeImm:  chip8cpu.Se,
	OpSneImm: chip8cpu.Sne,
	OpSeReg:  chip8cpu.Se,
	OpLdImm:  chip8cpu.Ld,
	OpAddImm: chip8cpu.Add,
	OpLdReg:  chip8cpu.Ld,
	OpOr:     chip8cpu.Or,
	OpAnd:    chip8cpu.And,
	OpXor:    chip8cpu.Xor,
	OpAddReg: chip8cpu.Add,
	OpSub:    chip8cpu.Sub,
	OpShr:    chip8cpu.Shr,
	OpSubn:   chip8cpu.Subn,
	OpShl:    chip8cpu.Shl,
	OpSneReg: chip8cpu.Sne,
	OpLdI:    chip8cpu.Ld,
	OpJpV0:   chip8cpu.Jp,
	OpRnd:    chip8cpu.Rnd,
	OpDrw:    chip8cpu.Drw,
	OpSkp:    chip8cpu.Skp,
	OpSknp:   chip8cpu.Sknp,
	OpLdVxDt: chip8cpu.Ld,
	OpLdVxK:  chip8cpu.Ld,
	OpLdDtVx: chip8cpu.Ld,
	OpLdStVx: chip8cpu.Ld,
	OpAddI:   chip8cpu.Add,
	OpLdF:    chip8cpu.Ld,
	OpLdB:    chip8cpu.Ld,
	OpLdIVx:  chip8cpu.Ld,
	OpLdVxI:  chip8cpu.Ld,
}

// Instruction is a decoded instruction word with its operands extracted.
// Operands that the kind does not use are still filled from the word.
type Instruction struct {
	Kind Kind
	Word uint16

	X   uint8  // second nibble, register index
	Y   uint8  // third nibble, register index
	N   uint8  // fourth nibble
	NN  uint8  // low byte
	NNN uint16 // low 12 bits, address
}

// Decode splits an instruction word into its nibbles and identifies the
// instruction. Words that match no instruction return an *UnknownOpcodeError.
func Decode(word uint16) (Instruction, error) {
	ins := Instruction{
		Word: word,
		X:    uint8(word>>8) & 0x0F,
		Y:    uint8(word>>4) & 0x0F,
		N:    uint8(word) & 0x0F,
		NN:   uint8(word),
		NNN:  word & 0x0FFF,
	}
	ins.Kind = decodeKind(word, ins.N, ins.NN)

	if ins.Kind == OpInvalid {
		return ins, &UnknownOpcodeError{Word: word}
	}
	return ins, nil
}

func decodeKind(word uint16, n, nn uint8) Kind {
	switch word >> 12 {
	case 0x0:
		return decodeSystem(word)
	case 0x1:
		return OpJp
	case 0x2:
		return OpCall
	case 0x3:
		return OpSeImm
	case 0x4:
		return OpSneImm
	case 0x5:
		if n == 0 {
			return OpSeReg
		}
	case 0x6:
		return OpLdImm
	case 0x7:
		return OpAddImm
	case 0x8:
		return decodeArithmetic(n)
	case 0x9:
		if n == 0 {
			return OpSneReg
		}
	case 0xA:
		return OpLdI
	case 0xB:
		return OpJpV0
	case 0xC:
		return OpRnd
	case 0xD:
		return OpDrw
	case 0xE:
		return decodeKeyboard(nn)
	case 0xF:
		return decodeMisc(nn)
	}
	return OpInvalid
}

// decodeSystem decodes 0NNN words, machine code routines other than
// NOP, CLS and RET are not supported.
func decodeSystem(word uint16) Kind {
	switch word {
	case 0x0000:
		return OpNop
	case 0x00E0:
		return OpCls
	case 0x00EE:
		return OpRet
	}
	return OpInvalid
}

func decodeArithmetic(n uint8) Kind {
	switch n {
	case 0x0:
		return OpLdReg
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddReg
	case 0x5:
		return OpSub
	case 0x6:
		return OpShr
	case 0x7:
		return OpSubn
	case 0xE:
		return OpShl
	}
	return OpInvalid
}

func decodeKeyboard(nn uint8) Kind {
	switch nn {
	case 0x9E:
		return OpSkp
	case 0xA1:
		return OpSknp
	}
	return OpInvalid
}

func decodeMisc(nn uint8) Kind {
	switch nn {
	case 0x07:
		return OpLdVxDt
	case 0x0A:
		return OpLdVxK
	case 0x15:
		return OpLdDtVx
	case 0x18:
		return OpLdStVx
	case 0x1E:
		return OpAddI
	case 0x29:
		return OpLdF
	case 0x33:
		return OpLdB
	case 0x55:
		return OpLdIVx
	case 0x65:
		return OpLdVxI
	}
	return OpInvalid
}

// Name returns the mnemonic of the instruction.
func (ins Instruction) Name() string {
	if ins.Kind == OpNop {
		return "nop"
	}
	if ins.Kind >= kindCount {
		return ""
	}
	if def := mnemonics[ins.Kind]; def != nil {
		return def.Name
	}
	return ""
}

// String returns the instruction in assembly notation.
func (ins Instruction) String() string {
	name := ins.Name()
	if name == "" {
		return fmt.Sprintf("unknown $%04X", ins.Word)
	}
	if params := ins.params(); params != "" {
		return name + " " + params
	}
	return name
}

func (ins Instruction) params() string {
	switch ins.Kind {
	case OpJp, OpCall:
		return fmt.Sprintf("$%03X", ins.NNN)
	case OpJpV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case OpLdI:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case OpSeImm, OpSneImm, OpLdImm, OpAddImm, OpRnd:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case OpShr, OpShl, OpSkp, OpSknp:
		return fmt.Sprintf("V%X", ins.X)
	case OpDrw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case OpLdVxDt:
		return fmt.Sprintf("V%X, DT", ins.X)
	case OpLdVxK:
		return fmt.Sprintf("V%X, K", ins.X)
	case OpLdDtVx:
		return fmt.Sprintf("DT, V%X", ins.X)
	case OpLdStVx:
		return fmt.Sprintf("ST, V%X", ins.X)
	case OpAddI:
		return fmt.Sprintf("I, V%X", ins.X)
	case OpLdF:
		return fmt.Sprintf("F, V%X", ins.X)
	case OpLdB:
		return fmt.Sprintf("B, V%X", ins.X)
	case OpLdIVx:
		return fmt.Sprintf("[I], V%X", ins.X)
	case OpLdVxI:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return ""
}
