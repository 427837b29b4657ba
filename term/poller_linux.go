//go:build linux

package term

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// pollerState is the epoll implementation used on Linux.
type pollerState struct {
	epfd int
	fd   int
	wake int
}

func newPollerState(fd, wake int) (pollerState, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return pollerState{}, fmt.Errorf("poller: epoll_create1: %w", err)
	}
	for _, watch := range []int{fd, wake} {
		ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(watch)}
		if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, watch, &ev); err != nil {
			unix.Close(epfd)
			return pollerState{}, fmt.Errorf("poller: epoll_ctl add %d: %w", watch, err)
		}
	}
	return pollerState{epfd: epfd, fd: fd, wake: wake}, nil
}

func (s pollerState) wait(timeoutMS int) (data, woken, intr bool, err error) {
	var events [2]unix.EpollEvent
	n, err := unix.EpollWait(s.epfd, events[:], timeoutMS)
	if err == unix.EINTR {
		return false, false, true, nil
	}
	if err != nil {
		return false, false, false, err
	}
	for _, ev := range events[:n] {
		switch int(ev.Fd) {
		case s.wake:
			woken = true
		case s.fd:
			data = true
		}
	}
	return data, woken, false, nil
}

func (s pollerState) close() {
	unix.Close(s.epfd)
}
