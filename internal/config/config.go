// Package config handles the virtual machine configuration: logger setup and
// the settings file.
package config

import (
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

type verbosity int

const (
	verbosityDefault verbosity = iota
	verbosityDebug
	verbosityQuiet
)

// verbosityFor maps the logging flags to a verbosity. Instruction tracing
// logs at debug level and therefore enables debug output, it wins over quiet.
func verbosityFor(flags options.Flags) verbosity {
	switch {
	case flags.Debug || flags.Trace:
		return verbosityDebug
	case flags.Quiet:
		return verbosityQuiet
	default:
		return verbosityDefault
	}
}

// CreateLogger creates a logger with the level selected by the flags.
func CreateLogger(flags options.Flags) *log.Logger {
	cfg := log.DefaultConfig()
	switch verbosityFor(flags) {
	case verbosityDebug:
		cfg.Level = log.DebugLevel
	case verbosityQuiet:
		cfg.Level = log.ErrorLevel
	case verbosityDefault:
	}
	return log.NewWithConfig(cfg)
}
