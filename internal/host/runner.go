// Package host drives a CHIP-8 machine at a fixed frame rate.
// Every frame mirrors the input state into the keyboard latch, executes a
// fixed number of instructions, ticks the timers once and renders the display.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

var errInvalidSettings = errors.New("invalid runner settings")

// Input provides the current state of the 16 logical keys.
type Input interface {
	PollKeys() [chip8.KeyCount]bool
}

// Output presents the display and the tone state.
type Output interface {
	Render(display []bool) error
	Tone(on bool)
}

// Settings controls the pacing of the runner.
type Settings struct {
	CyclesPerFrame int
	FrameRate      int
}

// Runner paces the execution of a machine.
type Runner struct {
	logger   *log.Logger
	machine  *chip8.Machine
	settings Settings
	input    Input
	output   Output

	frames int
}

// New returns a runner for the machine. Input and output are optional.
func New(logger *log.Logger, machine *chip8.Machine, settings Settings, input Input, output Output) (*Runner, error) {
	if settings.CyclesPerFrame <= 0 {
		return nil, fmt.Errorf("%w: cycles per frame %d", errInvalidSettings, settings.CyclesPerFrame)
	}
	if settings.FrameRate <= 0 {
		return nil, fmt.Errorf("%w: frame rate %d", errInvalidSettings, settings.FrameRate)
	}

	return &Runner{
		logger:   logger,
		machine:  machine,
		settings: settings,
		input:    input,
		output:   output,
	}, nil
}

// Frames returns the number of completed frames.
func (r *Runner) Frames() int {
	return r.frames
}

// Frame runs a single frame.
func (r *Runner) Frame() error {
	if r.input != nil {
		keys := r.input.PollKeys()
		for key, pressed := range keys {
			if err := r.machine.SetKey(key, pressed); err != nil {
				return fmt.Errorf("setting key %d: %w", key, err)
			}
		}
	}

	if err := r.machine.Run(r.settings.CyclesPerFrame); err != nil {
		return fmt.Errorf("executing frame %d: %w", r.frames, err)
	}

	if r.machine.TickTimers() {
		r.logger.Debug("Tone stopped", log.Int("frame", r.frames))
	}

	if r.output != nil {
		r.output.Tone(r.machine.SoundActive())
		if err := r.output.Render(r.machine.Display()); err != nil {
			return fmt.Errorf("rendering frame %d: %w", r.frames, err)
		}
	}

	r.frames++
	return nil
}

// RunFrames runs the given number of frames without pacing.
func (r *Runner) RunFrames(count int) error {
	for range count {
		if err := r.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// Run runs frames at the configured frame rate until the context is
// cancelled or the machine halts.
func (r *Runner) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(r.settings.FrameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Debug("Runner started",
		log.Int("cycles_per_frame", r.settings.CyclesPerFrame),
		log.Int("frame_rate", r.settings.FrameRate))

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Runner stopped", log.Int("frames", r.frames))
			return ctx.Err()

		case <-ticker.C:
			if err := r.Frame(); err != nil {
				return err
			}
		}
	}
}
