// Package charenc detects the character encoding and line-ending style of
// file content and converts between on-disk bytes and the editor's internal
// representation (UTF-8 with LF line endings).
//
// # Detection
//
// Detect applies a first-match-wins pipeline:
//
//  1. A byte order mark selects UTF-8-BOM, UTF-16LE or UTF-16BE.
//  2. A NUL byte in the first 8 KiB marks the content as binary (Unknown).
//  3. Content that validates as UTF-8 end to end is UTF-8.
//  4. A heuristic scorer decides between Shift_JIS and EUC-JP; ties go to
//     Shift_JIS, and content with no Japanese byte patterns is Unknown.
//
// Line endings are detected on raw bytes with CRLF taking precedence over
// LF, and LF over CR. For UTF-16 content the detection runs after decoding.
//
// # Conversion
//
// Decode produces UTF-8 with LF-only line endings. Encode reverses the
// pipeline for saving: LF is expanded back to the detected line ending and
// the text is re-encoded. UTF-8 and UTF-8-BOM round-trip losslessly;
// Shift_JIS and EUC-JP are encoded best-effort through golang.org/x/text
// (full JIS X 0208 coverage); UTF-16 output is not supported and reports
// ErrUnsupportedEncoding.
package charenc
