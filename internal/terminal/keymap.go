package terminal

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/chip8"
)

var errInvalidKeymap = errors.New("invalid keymap")

// Keymap maps input bytes to key indices of the hex keypad.
type Keymap map[byte]int

// defaultKeys is the conventional keyboard layout:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   =>   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var defaultKeys = map[string]int{
	"1": 0x1, "2": 0x2, "3": 0x3, "4": 0xC,
	"q": 0x4, "w": 0x5, "e": 0x6, "r": 0xD,
	"a": 0x7, "s": 0x8, "d": 0x9, "f": 0xE,
	"z": 0xA, "x": 0x0, "c": 0xB, "v": 0xF,
}

// DefaultKeymap returns the keymap for the conventional QWERTY layout.
func DefaultKeymap() Keymap {
	keymap, err := ParseKeymap(defaultKeys)
	if err != nil {
		panic(err)
	}
	return keymap
}

// ParseKeymap builds a keymap from single character keys. Letters are
// matched case insensitive.
func ParseKeymap(keys map[string]int) (Keymap, error) {
	keymap := make(Keymap, len(keys)*2)
	for name, index := range keys {
		if len(name) != 1 {
			return nil, fmt.Errorf("%w: key name %q is not a single character", errInvalidKeymap, name)
		}
		if index < 0 || index >= chip8.KeyCount {
			return nil, fmt.Errorf("%w: key %q maps to index %d", errInvalidKeymap, name, index)
		}

		b := name[0]
		keymap[b] = index
		switch {
		case b >= 'a' && b <= 'z':
			keymap[b-'a'+'A'] = index
		case b >= 'A' && b <= 'Z':
			keymap[b-'A'+'a'] = index
		}
	}
	return keymap, nil
}
