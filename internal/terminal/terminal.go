// Package terminal owns the raw TTY: mode switching, window geometry,
// byte input with the escape-sequence decoder, and the buffered output
// writer with its control sequences.
package terminal

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ErrTimeout reports that the read window expired with no input.
var ErrTimeout = errors.New("terminal: read timeout")

// Terminal wraps the controlling TTY file descriptors.
type Terminal struct {
	in   int
	out  int
	orig unix.Termios
	raw  bool
}

// Open prepares a Terminal over stdin/stdout. Raw mode is not yet enabled.
func Open() *Terminal {
	return &Terminal{in: int(os.Stdin.Fd()), out: int(os.Stdout.Fd())}
}

// EnableRaw switches the TTY into raw mode: no canonical buffering, no
// echo, no signal keys, 8-bit chars, reads returning after at most one
// decisecond with zero minimum bytes.
func (t *Terminal) EnableRaw() error {
	orig, err := unix.IoctlGetTermios(t.in, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("tcgetattr: %w", err)
	}
	t.orig = *orig

	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(t.in, unix.TCSETS, &raw); err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	t.raw = true
	return nil
}

// Restore puts the TTY back into its original mode. Safe to call on
// every exit path, including when raw mode was never enabled.
func (t *Terminal) Restore() {
	if !t.raw {
		return
	}
	_ = unix.IoctlSetTermios(t.in, unix.TCSETS, &t.orig)
	t.raw = false
}

// Write flushes one frame to the terminal in a single syscall.
func (t *Terminal) Write(p []byte) (int, error) {
	return unix.Write(t.out, p)
}

// Size reports rows and columns, preferring the kernel winsize call and
// falling back to a cursor-position report.
func (t *Terminal) Size() (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(t.out, unix.TIOCGWINSZ)
	if err == nil && ws.Col > 0 && ws.Row > 0 {
		return int(ws.Row), int(ws.Col), nil
	}
	return t.sizeFromCursor()
}

// sizeFromCursor pushes the cursor to the far corner and asks the
// terminal where it landed.
func (t *Terminal) sizeFromCursor() (int, int, error) {
	if _, err := unix.Write(t.out, []byte("\x1b[999C\x1b[999B\x1b[6n")); err != nil {
		return 0, 0, err
	}
	var buf [32]byte
	n := 0
	for n < len(buf)-1 {
		b, err := t.readByte()
		if err != nil {
			break
		}
		if b == 'R' {
			break
		}
		buf[n] = b
		n++
	}
	var rows, cols int
	if n < 2 || buf[0] != 0x1b || buf[1] != '[' {
		return 0, 0, errors.New("terminal: bad cursor report")
	}
	if _, err := fmt.Sscanf(string(buf[2:n]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

// readByte blocks until one byte arrives. EAGAIN and zero-length reads
// (the VTIME window expiring) retry; other errors propagate.
func (t *Terminal) readByte() (byte, error) {
	var b [1]byte
	for {
		n, err := unix.Read(t.in, b[:])
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				continue
			}
			return 0, err
		}
		if n == 0 {
			continue
		}
		return b[0], nil
	}
}

// ReadByte waits at most one VTIME window for a byte. A quiet window
// returns ErrTimeout so the event loop can service pending work.
func (t *Terminal) ReadByte() (byte, error) {
	var b [1]byte
	n, err := unix.Read(t.in, b[:])
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return 0, ErrTimeout
		}
		return 0, err
	}
	if n == 0 {
		return 0, ErrTimeout
	}
	return b[0], nil
}

// Peek tries to pull the next byte of an escape sequence within one
// short poll. ok is false when the sequence has ended.
func (t *Terminal) Peek() (byte, bool) {
	var b [1]byte
	n, err := unix.Read(t.in, b[:])
	if err != nil || n == 0 {
		return 0, false
	}
	return b[0], true
}
