// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	if len(args) > 1 {
		for _, arg := range args[1:] {
			if len(arg) > 0 && arg[0] == '-' {
				return &UsageError{
					msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
				}
			}
		}
		return &UsageError{msg: "only one program file can be run"}
	}
	return nil
}

// validateOptions checks option values that the flag package can not check
func validateOptions(opts options.Program) error {
	if opts.CyclesPerFrame < 0 {
		return fmt.Errorf("invalid cycles per frame: %d", opts.CyclesPerFrame)
	}
	if opts.FrameRate < 0 {
		return fmt.Errorf("invalid frame rate: %d", opts.FrameRate)
	}
	if opts.Headless && opts.Frames <= 0 {
		return fmt.Errorf("invalid frame count for headless mode: %d", opts.Frames)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Config, "c", "", "name of the TOML settings file")
	flags.IntVar(&opts.CyclesPerFrame, "cycles", 0, "instructions executed per frame (default 10)")
	flags.IntVar(&opts.FrameRate, "fps", 0, "frames per second, timers tick once per frame (default 60)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses the current time")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal for a number of frames and print the display")
	flags.IntVar(&opts.Frames, "frames", 60, "number of frames to run in headless mode")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
