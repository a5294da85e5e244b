// Package terminal implements a text terminal frontend for the virtual
// machine: keyboard input in raw mode, display rendering with half-block
// characters and the bell character as tone.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/retroenv/chip8vm/internal/chip8"
	"golang.org/x/term"
)

// ANSI escape sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	bell        = "\a"
)

// keyCtrlC stops the emulation, raw mode turns it into a plain input byte.
const keyCtrlC = 0x03

// Terminal is a frontend that reads keys from an input stream and renders to
// an output stream.
type Terminal struct {
	in     io.Reader
	out    io.Writer
	keymap Keymap
	hold   time.Duration
	now    func() time.Time

	mu        sync.Mutex
	lastPress [chip8.KeyCount]time.Time

	fd    int
	state *term.State
	tone  bool
}

// New returns a terminal frontend. Terminals only report key presses, a key
// counts as pressed for the hold duration after its last input byte.
func New(in io.Reader, out io.Writer, keymap Keymap, hold time.Duration) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		keymap: keymap,
		hold:   hold,
		now:    time.Now,
	}
}

// Start switches an interactive input into raw mode and starts reading input
// in the background. The returned context is cancelled when Ctrl+C is
// received.
func (t *Terminal) Start(ctx context.Context) (context.Context, error) {
	if f, ok := t.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			return ctx, fmt.Errorf("entering raw mode: %w", err)
		}
		t.fd = fd
		t.state = state
	}

	if _, err := io.WriteString(t.out, clearScreen+hideCursor); err != nil {
		return ctx, fmt.Errorf("initializing screen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	go t.readInput(cancel)
	return ctx, nil
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	if _, err := io.WriteString(t.out, showCursor+"\r\n"); err != nil {
		return fmt.Errorf("restoring cursor: %w", err)
	}
	if t.state == nil {
		return nil
	}
	if err := term.Restore(t.fd, t.state); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	t.state = nil
	return nil
}

func (t *Terminal) readInput(cancel context.CancelFunc) {
	buf := make([]byte, 64)
	for {
		n, err := t.in.Read(buf)
		if n > 0 && t.HandleInput(buf[:n]) {
			cancel()
			return
		}
		if err != nil {
			return
		}
	}
}

// HandleInput records the key presses contained in the input bytes and
// returns whether a quit request was received.
func (t *Terminal) HandleInput(data []byte) bool {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, b := range data {
		if b == keyCtrlC {
			return true
		}
		if index, ok := t.keymap[b]; ok {
			t.lastPress[index] = now
		}
	}
	return false
}

// PollKeys returns the keys that were pressed within the hold duration.
func (t *Terminal) PollKeys() [chip8.KeyCount]bool {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	var keys [chip8.KeyCount]bool
	for i, last := range t.lastPress {
		keys[i] = !last.IsZero() && now.Sub(last) < t.hold
	}
	return keys
}

// Render draws the display, two display rows per text line.
func (t *Terminal) Render(display []bool) error {
	var sb strings.Builder
	sb.Grow(len(cursorHome) + chip8.DisplaySize*2)
	sb.WriteString(cursorHome)

	for y := 0; y < chip8.DisplayHeight; y += 2 {
		for x := range chip8.DisplayWidth {
			top := display[x+chip8.DisplayWidth*y]
			bottom := display[x+chip8.DisplayWidth*(y+1)]
			sb.WriteString(halfBlock(top, bottom))
		}
		sb.WriteString("\r\n")
	}

	if _, err := io.WriteString(t.out, sb.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Tone rings the bell when the tone starts.
func (t *Terminal) Tone(on bool) {
	if on && !t.tone {
		_, _ = io.WriteString(t.out, bell)
	}
	t.tone = on
}

func halfBlock(top, bottom bool) string {
	switch {
	case top && bottom:
		return "█"
	case top:
		return "▀"
	case bottom:
		return "▄"
	default:
		return " "
	}
}

// Dump writes the display as text, one line per row, '#' for lit pixels.
func Dump(w io.Writer, display []bool) error {
	var sb strings.Builder
	sb.Grow(chip8.DisplaySize + chip8.DisplayHeight)

	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			if display[x+chip8.DisplayWidth*y] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing display dump: %w", err)
	}
	return nil
}
