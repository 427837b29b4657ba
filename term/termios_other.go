//go:build unix && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package term

import "golang.org/x/sys/unix"

const (
	reqGetTermios = unix.TCGETS
	reqSetTermios = unix.TCSETS
)
