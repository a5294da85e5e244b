package chip8

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// RandomSource supplies the random values consumed by the RND instruction.
// *rand.Rand of math/rand/v2 implements it.
type RandomSource interface {
	Uint32() uint32
}

// NewRandom returns a deterministic random source for the given seed.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// Option configures a Machine.
type Option func(*Machine)

// WithRandom sets the random source used by the RND instruction.
func WithRandom(src RandomSource) Option {
	return func(m *Machine) {
		m.random = src
	}
}

// WithLogger sets the logger that faults and traces are written to.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithTrace enables debug logging of every executed instruction.
// It has no effect without a logger.
func WithTrace(enabled bool) Option {
	return func(m *Machine) {
		m.trace = enabled
	}
}

// Machine is the complete state of a CHIP-8 virtual machine.
// It is not safe for concurrent use.
type Machine struct {
	logger *log.Logger
	trace  bool
	random RandomSource

	memory  [MemorySize]byte
	display [DisplaySize]bool
	v       [RegisterCount]uint8
	stack   [StackSize]uint16
	keys    [KeyCount]bool

	pc    uint16
	i     uint16
	sp    uint16
	delay uint8
	sound uint8

	// nibbles of the most recently fetched instruction word
	nibbles [4]uint8

	halted error
}

// New returns a machine in power-on state, with the font loaded and the
// program counter at ProgramStart.
func New(opts ...Option) *Machine {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}
	if m.random == nil {
		m.random = NewRandom(uint64(time.Now().UnixNano()))
	}
	m.Reset()
	return m
}

// Reset restores the power-on state. Any loaded program, the keyboard latch
// and a latched fault are cleared.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[:], font[:])
	m.display = [DisplaySize]bool{}
	m.v = [RegisterCount]uint8{}
	m.stack = [StackSize]uint16{}
	m.keys = [KeyCount]bool{}
	m.pc = ProgramStart
	m.i = 0
	m.sp = 0
	m.delay = 0
	m.sound = 0
	m.nibbles = [4]uint8{}
	m.halted = nil
}

// Load copies a program image into memory at ProgramStart.
// Images larger than MaxProgramSize are rejected before anything is copied.
func (m *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(m.memory[ProgramStart:], program)
	return nil
}

// SetKey sets the pressed state of the key with the given index.
func (m *Machine) SetKey(index int, pressed bool) error {
	if index < 0 || index >= KeyCount {
		return fmt.Errorf("%w: %d", ErrKeyOutOfRange, index)
	}
	m.keys[index] = pressed
	return nil
}

// Key returns whether the key with the given index is pressed.
func (m *Machine) Key(index int) bool {
	if index < 0 || index >= KeyCount {
		return false
	}
	return m.keys[index]
}

// TickTimers decrements the delay and sound timers if they are nonzero.
// It returns true when the sound timer reached zero on this tick, which is
// the point where the tone stops.
func (m *Machine) TickTimers() bool {
	if m.delay > 0 {
		m.delay--
	}

	var toneStopped bool
	if m.sound > 0 {
		toneStopped = m.sound == 1
		m.sound--
	}
	return toneStopped
}

// Display returns the display buffer, the pixel at (x, y) is stored at index
// x + DisplayWidth*y. The returned slice must not be modified.
func (m *Machine) Display() []bool {
	return m.display[:]
}

// Pixel returns the state of the display pixel at the given coordinates.
func (m *Machine) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return m.display[x+DisplayWidth*y]
}

// SoundActive returns whether a tone should currently be produced.
func (m *Machine) SoundActive() bool {
	return m.sound > 0
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Register returns the value of register Vx.
func (m *Machine) Register(x int) uint8 {
	return m.v[x]
}

// Registers returns a copy of all general-purpose registers.
func (m *Machine) Registers() [RegisterCount]uint8 {
	return m.v
}

// AddressRegister returns the value of the address register I.
func (m *Machine) AddressRegister() uint16 {
	return m.i
}

// DelayTimer returns the value of the delay timer.
func (m *Machine) DelayTimer() uint8 {
	return m.delay
}

// SoundTimer returns the value of the sound timer.
func (m *Machine) SoundTimer() uint8 {
	return m.sound
}

// StackDepth returns the number of return addresses on the stack.
func (m *Machine) StackDepth() int {
	return int(m.sp)
}

// ReadMemory reads a byte from memory.
func (m *Machine) ReadMemory(address uint16) (byte, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("%w: reading address %04X", ErrMemoryOutOfBounds, address)
	}
	return m.memory[address], nil
}

// Halted returns the fault that halted the machine, or nil.
func (m *Machine) Halted() error {
	return m.halted
}

func (m *Machine) push(address uint16) error {
	if m.sp >= StackSize {
		return fmt.Errorf("%w: calling from %04X", ErrStackOverflow, m.pc-opcodeSize)
	}
	m.stack[m.sp] = address
	m.sp++
	return nil
}

func (m *Machine) pop() (uint16, error) {
	if m.sp == 0 {
		return 0, fmt.Errorf("%w: returning from %04X", ErrStackUnderflow, m.pc-opcodeSize)
	}
	m.sp--
	return m.stack[m.sp], nil
}

// checkRange verifies that size bytes starting at address are inside memory.
func checkRange(address uint16, size int) error {
	if int(address)+size > MemorySize {
		return fmt.Errorf("%w: accessing %d bytes at %04X", ErrMemoryOutOfBounds, size, address)
	}
	return nil
}
