package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// sequenceRandom returns the given values in order, repeating the last one.
type sequenceRandom struct {
	values []uint32
	pos    int
}

func (r *sequenceRandom) Uint32() uint32 {
	v := r.values[r.pos]
	if r.pos < len(r.values)-1 {
		r.pos++
	}
	return v
}

// newTestMachine returns a machine with the given instruction words loaded
// at ProgramStart.
func newTestMachine(t *testing.T, words ...uint16) *Machine {
	t.Helper()

	m := New(WithRandom(&sequenceRandom{values: []uint32{0}}))
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	assert.NoError(t, m.Load(program))
	return m
}

func TestNew(t *testing.T) {
	m := New()

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.AddressRegister())
	assert.Equal(t, 0, m.StackDepth())
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.Equal(t, [RegisterCount]uint8{}, m.Registers())
	assert.Nil(t, m.Halted())

	for i, b := range font {
		value, err := m.ReadMemory(uint16(i))
		assert.NoError(t, err)
		assert.Equal(t, b, value)
	}
	for addr := len(font); addr < MemorySize; addr++ {
		value, err := m.ReadMemory(uint16(addr))
		assert.NoError(t, err)
		assert.Equal(t, byte(0), value)
	}
	for _, pixel := range m.Display() {
		assert.False(t, pixel)
	}
}

func TestReset(t *testing.T) {
	m := newTestMachine(t, 0x6A42, 0xA123, 0xD005, 0x2300)
	assert.NoError(t, m.SetKey(3, true))
	assert.NoError(t, m.Run(4))
	m.delay = 9
	m.sound = 7

	m.Reset()

	fresh := New()
	assert.Equal(t, fresh.memory, m.memory)
	assert.Equal(t, fresh.display, m.display)
	assert.Equal(t, fresh.Registers(), m.Registers())
	assert.Equal(t, fresh.PC(), m.PC())
	assert.Equal(t, fresh.AddressRegister(), m.AddressRegister())
	assert.Equal(t, 0, m.StackDepth())
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.False(t, m.Key(3))
}

func TestResetClearsHalt(t *testing.T) {
	m := newTestMachine(t, 0x00EE)
	assert.Error(t, m.Step())
	assert.NotNil(t, m.Halted())

	m.Reset()
	assert.Nil(t, m.Halted())
	assert.NoError(t, m.Step())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"small", 16, false},
		{"maximum size", MaxProgramSize, false},
		{"one byte too large", MaxProgramSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			program := make([]byte, tt.size)
			for i := range program {
				program[i] = 0xAB
			}

			err := m.Load(program)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrProgramTooLarge))
				value, readErr := m.ReadMemory(ProgramStart)
				assert.NoError(t, readErr)
				assert.Equal(t, byte(0), value)
				return
			}

			assert.NoError(t, err)
			if tt.size > 0 {
				value, readErr := m.ReadMemory(uint16(ProgramStart + tt.size - 1))
				assert.NoError(t, readErr)
				assert.Equal(t, byte(0xAB), value)
			}
		})
	}
}

func TestSetKey(t *testing.T) {
	m := New()

	assert.NoError(t, m.SetKey(0xF, true))
	assert.True(t, m.Key(0xF))
	assert.NoError(t, m.SetKey(0xF, false))
	assert.False(t, m.Key(0xF))

	assert.True(t, errors.Is(m.SetKey(16, true), ErrKeyOutOfRange))
	assert.True(t, errors.Is(m.SetKey(-1, true), ErrKeyOutOfRange))
	assert.False(t, m.Key(16))
}

func TestTickTimers(t *testing.T) {
	m := New()
	m.delay = 2
	m.sound = 3

	assert.False(t, m.TickTimers())
	assert.Equal(t, uint8(1), m.DelayTimer())
	assert.Equal(t, uint8(2), m.SoundTimer())
	assert.True(t, m.SoundActive())

	assert.False(t, m.TickTimers())
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(1), m.SoundTimer())

	assert.True(t, m.TickTimers())
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.False(t, m.SoundActive())

	for range 300 {
		assert.False(t, m.TickTimers())
	}
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
}

func TestReadMemoryOutOfBounds(t *testing.T) {
	m := New()
	_, err := m.ReadMemory(MemorySize)
	assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))
}

func TestPixel(t *testing.T) {
	m := New()
	m.display[63+DisplayWidth*31] = true

	assert.True(t, m.Pixel(63, 31))
	assert.False(t, m.Pixel(0, 0))
	assert.False(t, m.Pixel(64, 0))
	assert.False(t, m.Pixel(0, -1))
}

func TestNewRandomIsDeterministic(t *testing.T) {
	a := NewRandom(42)
	b := NewRandom(42)
	for range 16 {
		assert.Equal(t, a.Uint32(), b.Uint32())
	}
}
