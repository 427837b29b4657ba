//go:build unix

package term

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// WaitResult is the outcome of one Poller.Wait call.
type WaitResult int

const (
	// Ready means the watched descriptor has data to read.
	Ready WaitResult = iota
	// Timeout means the requested timeout elapsed with no data.
	Timeout
	// Signal means the wait was interrupted (EINTR or Wake); re-check
	// the pending-signal flags before waiting again.
	Signal
)

// String returns the result's name.
func (r WaitResult) String() string {
	switch r {
	case Ready:
		return "Ready"
	case Timeout:
		return "Timeout"
	default:
		return "Signal"
	}
}

// Poller waits for readiness on a single file descriptor. One goroutine
// may call Wait; Wake is safe from any goroutine.
type Poller struct {
	fd    int
	wakeR int
	wakeW int
	state pollerState
}

// NewPoller returns a poller watching fd.
func NewPoller(fd int) (*Poller, error) {
	var pipe [2]int
	if err := unix.Pipe(pipe[:]); err != nil {
		return nil, fmt.Errorf("poller: self-pipe: %w", err)
	}
	for _, p := range pipe {
		unix.CloseOnExec(p)
		_ = unix.SetNonblock(p, true)
	}

	state, err := newPollerState(fd, pipe[0])
	if err != nil {
		unix.Close(pipe[0])
		unix.Close(pipe[1])
		return nil, err
	}
	return &Poller{fd: fd, wakeR: pipe[0], wakeW: pipe[1], state: state}, nil
}

// Wait blocks until fd is readable, the timeout elapses, or the wait is
// interrupted by a signal or Wake. A negative timeout blocks
// indefinitely.
func (p *Poller) Wait(timeout time.Duration) (WaitResult, error) {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout.Milliseconds())
	}
	data, woken, intr, err := p.state.wait(ms)
	if err != nil {
		return Signal, fmt.Errorf("poller: wait: %w", err)
	}
	switch {
	case intr:
		return Signal, nil
	case woken:
		p.drainWake()
		return Signal, nil
	case data:
		return Ready, nil
	default:
		return Timeout, nil
	}
}

// Wake interrupts a blocked Wait, which returns Signal. Safe to call from
// signal watchers and other goroutines.
func (p *Poller) Wake() {
	var b [1]byte
	_, _ = unix.Write(p.wakeW, b[:])
}

func (p *Poller) drainWake() {
	var buf [64]byte
	for {
		n, err := unix.Read(p.wakeR, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

// Close releases the poller's descriptors. The watched fd is not closed.
func (p *Poller) Close() error {
	p.state.close()
	unix.Close(p.wakeR)
	unix.Close(p.wakeW)
	return nil
}
