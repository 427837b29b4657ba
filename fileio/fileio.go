package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/goze/buffer"
	"github.com/dshills/goze/charenc"
)

// Errors reported by the gateway. Conversion errors
// (charenc.ErrUnsupportedEncoding, charenc.ErrInvalidUTF16) pass through
// unwrapped.
var (
	// ErrFileNotFound reports a missing load target; the caller decides
	// whether that means "new buffer" or an error.
	ErrFileNotFound = errors.New("file not found")
	// ErrBinaryFile reports content the detector classified as binary.
	ErrBinaryFile = errors.New("binary file")
)

// Load opens path and returns a buffer over its content, converted to
// UTF-8 with LF line endings when necessary.
func Load(path string) (*buffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return buffer.New(), nil
	}

	data, release, err := mapFile(f, int(info.Size()))
	if err != nil {
		// Mapping can fail on exotic filesystems; fall back to a
		// plain read.
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		release = nil
	}

	buf, err := build(data, release)
	if err != nil {
		if release != nil {
			_ = release()
		}
		return nil, err
	}
	return buf, nil
}

// build classifies data and constructs the buffer, keeping the mapping
// only on the UTF-8+LF fast path.
func build(data []byte, release func() error) (*buffer.Buffer, error) {
	enc := charenc.Detect(data)
	if enc == charenc.Unknown {
		return nil, ErrBinaryFile
	}

	if enc == charenc.UTF8 && bytes.IndexByte(data, '\r') < 0 {
		// Fast path: the bytes on disk are already the internal
		// representation; one piece over the mapping.
		return buffer.NewFromOriginal(data, enc, charenc.LF, release), nil
	}

	text, le, err := charenc.Decode(data, enc)
	if err != nil {
		return nil, err
	}
	if release != nil {
		_ = release()
	}
	return buffer.NewFromOriginal(text, enc, le, nil), nil
}

// Save writes buf's content to path atomically, re-encoded to the
// buffer's detected encoding and line endings. The mode bits of an
// existing target are preserved.
func Save(buf *buffer.Buffer, path string) error {
	text, err := buf.GetRange(0, buf.Len())
	if err != nil {
		return fmt.Errorf("materialise buffer: %w", err)
	}
	out, err := charenc.Encode(text, buf.Encoding(), buf.LineEnding())
	if err != nil {
		return err
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp := path + ".tmp"
	if err := writeAndSync(tmp, out, mode); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func writeAndSync(path string, data []byte, mode fs.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("fsync %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	// Chmod explicitly in case a umask narrowed the create mode.
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
	}
	return nil
}
