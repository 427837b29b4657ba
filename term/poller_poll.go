//go:build unix && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package term

import "golang.org/x/sys/unix"

// pollerState is the portable poll(2) fallback.
type pollerState struct {
	fd   int
	wake int
}

func newPollerState(fd, wake int) (pollerState, error) {
	return pollerState{fd: fd, wake: wake}, nil
}

func (s pollerState) wait(timeoutMS int) (data, woken, intr bool, err error) {
	fds := []unix.PollFd{
		{Fd: int32(s.fd), Events: unix.POLLIN},
		{Fd: int32(s.wake), Events: unix.POLLIN},
	}
	n, err := unix.Poll(fds, timeoutMS)
	if err == unix.EINTR {
		return false, false, true, nil
	}
	if err != nil {
		return false, false, false, err
	}
	if n > 0 {
		data = fds[0].Revents&unix.POLLIN != 0
		woken = fds[1].Revents&unix.POLLIN != 0
	}
	return data, woken, false, nil
}

func (s pollerState) close() {}
