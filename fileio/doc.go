// Package fileio is the gateway between on-disk files and text buffers:
// loading with encoding detection and a zero-copy mmap fast path, and
// atomic saving that preserves the detected encoding, line endings and
// file mode.
//
// # Loading
//
// Load memory-maps the file read-only and runs encoding detection. Content
// that is already UTF-8 with LF line endings keeps the mapping as the
// buffer's original container, so opening a large file costs no copy.
// Anything else (BOMs, UTF-16, Shift_JIS, EUC-JP, CR or CRLF endings) is
// converted to UTF-8+LF into an owned allocation and the mapping is
// released. Empty files skip the mapping entirely; if mmap is unavailable
// the file is read through buffered I/O instead.
//
// # Saving
//
// Save converts the buffer back to its detected encoding and line endings,
// writes to a temporary file in the same directory, fsyncs, and renames
// over the target, preserving the original's permission bits. A failure at
// any step removes the temporary file and leaves the target untouched.
package fileio
