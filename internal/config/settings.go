package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/retroenv/chip8vm/internal/options"
)

// Default settings values.
const (
	DefaultCyclesPerFrame = 10
	DefaultFrameRate      = 60
	DefaultKeyHold        = 150 * time.Millisecond
)

var errInvalidSettings = errors.New("invalid settings")

// Settings contains the runner settings that can be stored in a TOML file.
type Settings struct {
	CyclesPerFrame int    `toml:"cycles_per_frame"`
	FrameRate      int    `toml:"frame_rate"`
	Seed           uint64 `toml:"seed"`
	KeyHoldMS      int    `toml:"key_hold_ms"`

	// Keys maps a keyboard character to a key index 0-15. An empty map
	// selects the default layout.
	Keys map[string]int `toml:"keys"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		CyclesPerFrame: DefaultCyclesPerFrame,
		FrameRate:      DefaultFrameRate,
		KeyHoldMS:      int(DefaultKeyHold / time.Millisecond),
	}
}

// LoadSettings reads a TOML settings file. Values missing in the file keep
// their defaults. An empty path returns the default settings.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	return settings, nil
}

// Apply overrides settings with all command line options that were set.
func (s *Settings) Apply(opts options.Program) {
	if opts.CyclesPerFrame > 0 {
		s.CyclesPerFrame = opts.CyclesPerFrame
	}
	if opts.FrameRate > 0 {
		s.FrameRate = opts.FrameRate
	}
	if opts.Seed != 0 {
		s.Seed = opts.Seed
	}
}

// Validate checks the settings for values the runner can not work with.
func (s Settings) Validate() error {
	if s.CyclesPerFrame <= 0 {
		return fmt.Errorf("%w: cycles per frame must be positive, got %d", errInvalidSettings, s.CyclesPerFrame)
	}
	if s.FrameRate <= 0 || s.FrameRate > 1000 {
		return fmt.Errorf("%w: frame rate must be in 1-1000, got %d", errInvalidSettings, s.FrameRate)
	}
	if s.KeyHoldMS < 0 {
		return fmt.Errorf("%w: key hold must not be negative, got %d", errInvalidSettings, s.KeyHoldMS)
	}
	return nil
}

// KeyHold returns how long a key counts as pressed after its last input.
func (s Settings) KeyHold() time.Duration {
	return time.Duration(s.KeyHoldMS) * time.Millisecond
}
