// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `arg:"positional" usage:"program image to run"`
	Config string `flag:"c" usage:"TOML settings file"`
}

// Flags contains behavior options. Zero values mean "not set" and leave the
// settings file or the defaults in effect.
type Flags struct {
	CyclesPerFrame int    `flag:"cycles" usage:"instructions executed per frame"`
	FrameRate      int    `flag:"fps" usage:"frames per second"`
	Seed           uint64 `flag:"seed" usage:"random seed, 0 for a time based seed"`
	Headless       bool   `flag:"headless" usage:"run without terminal and print the display at exit"`
	Frames         int    `flag:"frames" usage:"number of frames to run in headless mode" default:"60"`
	Trace          bool   `flag:"trace" usage:"log every executed instruction"`
	Debug          bool   `flag:"debug" usage:"enable debug logging"`
	Quiet          bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the virtual machine runner.
type Program struct {
	Parameters
	Flags
}
