//go:build !unix

package fileio

import (
	"errors"
	"os"
)

var errNoMmap = errors.New("memory mapping not supported on this platform")

// mapFile always fails here; Load falls back to buffered reading.
func mapFile(_ *os.File, _ int) ([]byte, func() error, error) {
	return nil, nil, errNoMmap
}
