//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package term

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// pollerState is the kqueue implementation used on macOS and the BSDs.
type pollerState struct {
	kq   int
	fd   int
	wake int
}

func newPollerState(fd, wake int) (pollerState, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return pollerState{}, fmt.Errorf("poller: kqueue: %w", err)
	}
	unix.CloseOnExec(kq)

	changes := []unix.Kevent_t{}
	for _, watch := range []int{fd, wake} {
		var kev unix.Kevent_t
		unix.SetKevent(&kev, watch, unix.EVFILT_READ, unix.EV_ADD)
		changes = append(changes, kev)
	}
	if _, err := unix.Kevent(kq, changes, nil, nil); err != nil {
		unix.Close(kq)
		return pollerState{}, fmt.Errorf("poller: kevent register: %w", err)
	}
	return pollerState{kq: kq, fd: fd, wake: wake}, nil
}

func (s pollerState) wait(timeoutMS int) (data, woken, intr bool, err error) {
	var ts *unix.Timespec
	if timeoutMS >= 0 {
		t := unix.NsecToTimespec(int64(timeoutMS) * 1e6)
		ts = &t
	}
	var events [2]unix.Kevent_t
	n, err := unix.Kevent(s.kq, nil, events[:], ts)
	if err == unix.EINTR {
		return false, false, true, nil
	}
	if err != nil {
		return false, false, false, err
	}
	for _, ev := range events[:n] {
		switch int(ev.Ident) {
		case s.wake:
			woken = true
		case s.fd:
			data = true
		}
	}
	return data, woken, false, nil
}

func (s pollerState) close() {
	unix.Close(s.kq)
}
