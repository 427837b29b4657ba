//go:build unix

package term

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
)

// Escape sequences queued by the mode toggles.
var (
	seqEnterAltScreen  = []byte("\x1b[?1049h")
	seqExitAltScreen   = []byte("\x1b[?1049l")
	seqEnablePaste     = []byte("\x1b[?2004h")
	seqDisablePaste    = []byte("\x1b[?2004l")
	seqShowCursor      = []byte("\x1b[?25h")
	seqClearAndHome    = []byte("\x1b[2J\x1b[H")
	seqResetAttributes = []byte("\x1b[0m")
)

// Terminal owns raw-mode setup and teardown, the alternate screen and
// bracketed-paste toggles, and an output buffer drained in one write per
// frame. It is used from the single main-loop goroutine; only the signal
// flags are touched from elsewhere.
type Terminal struct {
	in  *os.File
	out *os.File

	origState *unix.Termios
	rawActive bool
	altScreen bool
	paste     bool

	buf []byte

	sigs *signalFlags

	restoreOnce sync.Once
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithFiles substitutes the input and output files (the defaults are
// stdin and stdout). Used by tests and by callers driving a pty.
func WithFiles(in, out *os.File) TerminalOption {
	return func(t *Terminal) {
		t.in = in
		t.out = out
	}
}

// NewTerminal returns a terminal over stdin/stdout.
func NewTerminal(opts ...TerminalOption) *Terminal {
	t := &Terminal{
		in:   os.Stdin,
		out:  os.Stdout,
		sigs: newSignalFlags(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// InputFd returns the input descriptor, for the poller.
func (t *Terminal) InputFd() int {
	return int(t.in.Fd())
}

// EnterRawMode saves the current terminal state and switches to raw mode:
// no echo, no line buffering, no signal keys, 8-bit characters, output
// processing off. Idempotent.
func (t *Terminal) EnterRawMode() error {
	if t.rawActive {
		return nil
	}
	fd := t.InputFd()
	if !xterm.IsTerminal(fd) {
		return fmt.Errorf("terminal: fd %d is not a terminal", fd)
	}

	state, err := unix.IoctlGetTermios(fd, reqGetTermios)
	if err != nil {
		return fmt.Errorf("terminal: get state: %w", err)
	}
	t.origState = state

	raw := *state
	raw.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG | unix.IEXTEN
	raw.Iflag &^= unix.IXON | unix.ICRNL | unix.BRKINT | unix.INPCK | unix.ISTRIP
	raw.Oflag &^= unix.OPOST
	raw.Cflag &^= unix.CSIZE
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(fd, reqSetTermios, &raw); err != nil {
		return fmt.Errorf("terminal: set raw mode: %w", err)
	}
	t.rawActive = true
	return nil
}

// Restore undoes every mode change in reverse order: bracketed paste off,
// then attributes reset, cursor shown and alternate screen left, then
// termios restored. Safe to call
// multiple times and from deferred cleanup on any exit path.
func (t *Terminal) Restore() error {
	var err error
	t.restoreOnce.Do(func() {
		if t.paste {
			t.Queue(seqDisablePaste)
			t.paste = false
		}
		if t.altScreen {
			t.Queue(seqResetAttributes)
			t.Queue(seqShowCursor)
			t.Queue(seqExitAltScreen)
			t.altScreen = false
		}
		_ = t.Flush()

		if t.origState != nil {
			if e := unix.IoctlSetTermios(t.InputFd(), reqSetTermios, t.origState); e != nil {
				err = fmt.Errorf("terminal: restore state: %w", e)
			}
		}
		t.rawActive = false
		t.sigs.stop()
	})
	return err
}

// EnterAltScreen switches to the alternate screen buffer and clears it.
func (t *Terminal) EnterAltScreen() {
	if t.altScreen {
		return
	}
	t.Queue(seqEnterAltScreen)
	t.Queue(seqClearAndHome)
	t.altScreen = true
}

// EnableBracketedPaste asks the terminal to delimit pasted input.
func (t *Terminal) EnableBracketedPaste() {
	if t.paste {
		return
	}
	t.Queue(seqEnablePaste)
	t.paste = true
}

// Queue appends bytes to the output buffer without writing.
func (t *Terminal) Queue(p []byte) {
	t.buf = append(t.buf, p...)
}

// QueueString appends a string to the output buffer without writing.
func (t *Terminal) QueueString(s string) {
	t.buf = append(t.buf, s...)
}

// Flush drains the output buffer to the terminal in a single write.
func (t *Terminal) Flush() error {
	if len(t.buf) == 0 {
		return nil
	}
	_, err := t.out.Write(t.buf)
	t.buf = t.buf[:0]
	if err != nil {
		return fmt.Errorf("terminal: flush: %w", err)
	}
	return nil
}

// WindowSize reports the terminal dimensions in character cells.
func (t *Terminal) WindowSize() (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("terminal: window size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

// InstallSignalHandlers starts the signal watcher. SIGWINCH sets the
// resize flag; SIGINT, SIGTERM, SIGHUP and SIGQUIT set the terminate
// flag. wake, if non-nil, is invoked after a flag is set so a blocked
// poller Wait returns Signal.
func (t *Terminal) InstallSignalHandlers(wake func()) {
	t.sigs.install(wake)
}

// ConsumeResize reports and clears the pending-resize flag.
func (t *Terminal) ConsumeResize() bool {
	return t.sigs.resize.Swap(false)
}

// TerminatePending reports whether a termination signal has arrived.
func (t *Terminal) TerminatePending() bool {
	return t.sigs.terminate.Load()
}
