// Package main implements the entry point for a CHIP-8 virtual machine
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/terminal"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Flags)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Flags)
	printBanner(logger, opts)

	if err := run(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation stopped")
			return
		}
		logger.Fatal(err.Error())
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	settings, err := config.LoadSettings(opts.Config)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settings.Apply(opts)
	if err := settings.Validate(); err != nil {
		return err
	}

	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	seed := settings.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	machine := chip8.New(
		chip8.WithLogger(logger),
		chip8.WithTrace(opts.Trace),
		chip8.WithRandom(chip8.NewRandom(seed)),
	)
	if err := machine.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	logger.Info("Program loaded",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.Int("cycles_per_frame", settings.CyclesPerFrame),
		log.Int("frame_rate", settings.FrameRate))

	hostSettings := host.Settings{
		CyclesPerFrame: settings.CyclesPerFrame,
		FrameRate:      settings.FrameRate,
	}

	if opts.Headless {
		return runHeadless(logger, machine, hostSettings, opts.Frames)
	}
	return runTerminal(ctx, logger, machine, hostSettings, settings)
}

func runHeadless(logger *log.Logger, machine *chip8.Machine, settings host.Settings, frames int) error {
	runner, err := host.New(logger, machine, settings, nil, nil)
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	runErr := runner.RunFrames(frames)
	if err := terminal.Dump(os.Stdout, machine.Display()); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	return nil
}

func runTerminal(ctx context.Context, logger *log.Logger, machine *chip8.Machine,
	hostSettings host.Settings, settings config.Settings) error {

	keymap := terminal.DefaultKeymap()
	if len(settings.Keys) > 0 {
		var err error
		keymap, err = terminal.ParseKeymap(settings.Keys)
		if err != nil {
			return fmt.Errorf("parsing keymap: %w", err)
		}
	}

	term := terminal.New(os.Stdin, os.Stdout, keymap, settings.KeyHold())
	ctx, err := term.Start(ctx)
	if err != nil {
		return fmt.Errorf("starting terminal: %w", err)
	}
	defer func() {
		if err := term.Close(); err != nil {
			logger.Error("Restoring terminal failed", log.Err(err))
		}
	}()

	runner, err := host.New(logger, machine, hostSettings, term, term)
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8vm", log.String("version", buildinfo.Version(version, commit, date)))
}
