//go:build unix

package fileio

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps f read-only. The returned release function unmaps; it must
// be called exactly once, after which the slice is invalid.
func mapFile(f *os.File, size int) ([]byte, func() error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	release := func() error {
		return unix.Munmap(data)
	}
	return data, release, nil
}
