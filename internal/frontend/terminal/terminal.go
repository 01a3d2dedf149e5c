// Package terminal implements a frontend that renders the display with
// block characters and reads the keypad from a raw mode terminal.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Terminals only report key presses, a key counts as held for this long
// after its last press. Auto repeat keeps held keys alive.
const holdTime = 150 * time.Millisecond

const (
	ctrlC = 0x03

	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

var errNotTerminal = errors.New("standard input is not a terminal")

var keyMap = map[rune]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Terminal renders frames to an output and collects key presses from an
// input. Present and Keys may be called concurrently with the key reader.
type Terminal struct {
	logger *log.Logger
	in     *os.File
	out    io.Writer

	fd       int
	oldState *term.State

	mu      sync.Mutex
	pressed [machine.KeyCount]time.Time
	now     func() time.Time

	quit     chan struct{}
	quitOnce sync.Once
}

// New returns a terminal frontend on standard input and output.
func New(logger *log.Logger) *Terminal {
	return &Terminal{
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
		now:    time.Now,
		quit:   make(chan struct{}),
	}
}

// Start switches the terminal into raw mode and starts reading keys.
func (t *Terminal) Start() error {
	t.fd = int(t.in.Fd())
	if !term.IsTerminal(t.fd) {
		return errNotTerminal
	}

	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	t.oldState = oldState

	if _, err := io.WriteString(t.out, hideCursor+clearScreen); err != nil {
		_ = t.Close()
		return fmt.Errorf("preparing screen: %w", err)
	}

	go t.readKeys(t.in)
	return nil
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	if t.oldState == nil {
		return nil
	}
	_, _ = io.WriteString(t.out, showCursor+"\r\n")
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	if err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// Done is closed when the user asked to quit with Ctrl+C, which raw mode
// no longer turns into a signal.
func (t *Terminal) Done() <-chan struct{} {
	return t.quit
}

// Present draws the framebuffer at the top of the screen.
func (t *Terminal) Present(fb machine.Framebuffer) error {
	if _, err := io.WriteString(t.out, cursorHome+render(&fb)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Keys returns the keys that were pressed within the hold time.
func (t *Terminal) Keys() [machine.KeyCount]bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	var keys [machine.KeyCount]bool
	now := t.now()
	for i, last := range t.pressed {
		keys[i] = !last.IsZero() && now.Sub(last) < holdTime
	}
	return keys
}

// readKeys processes input until it fails or the user quits.
func (t *Terminal) readKeys(r io.Reader) {
	buf := make([]byte, 32)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if b == ctrlC {
				t.quitOnce.Do(func() { close(t.quit) })
				return
			}
			t.press(rune(b))
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.logger.Error("Reading keyboard input failed", log.Err(err))
			}
			return
		}
	}
}

func (t *Terminal) press(r rune) {
	index, ok := keyMap[unicode.ToLower(r)]
	if !ok {
		return
	}

	t.mu.Lock()
	t.pressed[index] = t.now()
	t.mu.Unlock()
}

// render returns the framebuffer as text, every character cell shows two
// display rows using half block characters.
func render(fb *machine.Framebuffer) string {
	var sb strings.Builder
	sb.Grow(machine.DisplayHeight / 2 * (machine.DisplayWidth*3 + 2))

	for y := 0; y < machine.DisplayHeight; y += 2 {
		for x := range machine.DisplayWidth {
			top, bottom := fb.At(x, y), fb.At(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
