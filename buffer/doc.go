// Package buffer implements the editor's text storage: a piece table over
// an immutable original plus an append-only add buffer, an incrementally
// maintained line index, a seekable byte/codepoint/cluster iterator, and
// byte-level search across piece boundaries.
//
// # Representation
//
// A Buffer's logical content is the concatenation of its ordered pieces,
// each an immutable window into either the original content (a read-only
// memory mapping or an owned allocation) or the add buffer. Inserting never
// copies existing text: the new bytes are appended to the add buffer and a
// piece referencing them is spliced into the sequence. Deleting trims or
// removes pieces. The original is never modified and bytes already in the
// add buffer are never rewritten, so outstanding undo data and iterators
// over a snapshot stay valid.
//
// The buffer's content is always well-formed UTF-8 with LF-only line
// endings; the encoding and line-ending style detected at load time are
// kept alongside for faithful saving.
//
// # Line Index
//
// Line starts are cached lazily. Each edit invalidates the cache from the
// edit position; the next line query rebuilds only the tail. An empty
// buffer counts as one empty line.
//
// # Iteration
//
// Iterator is a stateful cursor over the piece sequence. It yields raw
// bytes, decoded codepoints, or whole grapheme clusters with display
// widths. Iterators observe the buffer as of the last Seek; mutating the
// buffer while an iterator is live is not supported.
package buffer
