package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags:      options.Flags{Frames: 60},
			},
		},
		{
			name: "runner flags",
			args: []string{"prog", "-cycles", "20", "-fps", "30", "-seed", "99", "-c", "vm.toml", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8", Config: "vm.toml"},
				Flags:      options.Flags{CyclesPerFrame: 20, FrameRate: 30, Seed: 99, Frames: 60},
			},
		},
		{
			name: "headless flags",
			args: []string{"prog", "-headless", "-frames", "5", "-trace", "-q", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags:      options.Flags{Headless: true, Frames: 5, Trace: true, Quiet: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no program file", []string{"prog"}},
		{"flag after program file", []string{"prog", "pong.ch8", "-q"}},
		{"multiple program files", []string{"prog", "pong.ch8", "tetris.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        options.Program
		expectError bool
	}{
		{
			name:        "no values set",
			opts:        options.Program{},
			expectError: false,
		},
		{
			name:        "negative cycles",
			opts:        options.Program{Flags: options.Flags{CyclesPerFrame: -1}},
			expectError: true,
		},
		{
			name:        "negative frame rate",
			opts:        options.Program{Flags: options.Flags{FrameRate: -1}},
			expectError: true,
		},
		{
			name:        "headless without frames",
			opts:        options.Program{Flags: options.Flags{Headless: true}},
			expectError: true,
		},
		{
			name:        "headless with frames",
			opts:        options.Program{Flags: options.Flags{Headless: true, Frames: 1}},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptions(tt.opts)
			if tt.expectError {
				assert.True(t, err != nil)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
