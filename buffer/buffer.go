package buffer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/goze/charenc"
)

// Errors returned by buffer operations.
var (
	ErrPositionOutOfBounds = errors.New("position out of bounds")
	ErrOutOfRange          = errors.New("range out of bounds")
	ErrInvalidUTF8         = errors.New("invalid UTF-8 sequence")
)

// Buffer is a piece-table text buffer. The zero value is not usable; use
// New or NewFromBytes.
type Buffer struct {
	original []byte
	add      []byte
	pieces   []Piece
	totalLen int

	lines lineIndex

	encoding   charenc.Encoding
	lineEnding charenc.LineEnding

	// release tears down the original mapping, if any.
	release func() error
}

// New returns an empty buffer (UTF-8, LF).
func New() *Buffer {
	return &Buffer{encoding: charenc.UTF8, lineEnding: charenc.LF}
}

// NewFromBytes returns a buffer whose original content is content, which
// must already be UTF-8 with LF line endings. The buffer takes ownership of
// the slice.
func NewFromBytes(content []byte) *Buffer {
	b := New()
	b.setOriginal(content, nil)
	return b
}

// NewFromOriginal returns a buffer over content with its detected encoding
// metadata. release, if non-nil, is invoked by Close to tear down the
// backing storage (typically a memory mapping).
func NewFromOriginal(content []byte, enc charenc.Encoding, le charenc.LineEnding, release func() error) *Buffer {
	b := &Buffer{encoding: enc, lineEnding: le}
	b.setOriginal(content, release)
	return b
}

func (b *Buffer) setOriginal(content []byte, release func() error) {
	b.original = content
	b.release = release
	if len(content) > 0 {
		b.pieces = []Piece{{Source: SourceOriginal, Start: 0, Length: len(content)}}
		b.totalLen = len(content)
	}
}

// Close releases the original backing storage. The buffer must not be used
// afterwards.
func (b *Buffer) Close() error {
	if b.release == nil {
		return nil
	}
	release := b.release
	b.release = nil
	b.original = nil
	b.pieces = nil
	b.totalLen = 0
	b.lines.invalidateFrom(0)
	return release()
}

// Len returns the buffer's logical length in bytes.
func (b *Buffer) Len() int {
	return b.totalLen
}

// Encoding returns the encoding detected at load time.
func (b *Buffer) Encoding() charenc.Encoding {
	return b.encoding
}

// LineEnding returns the line-ending style detected at load time.
func (b *Buffer) LineEnding() charenc.LineEnding {
	return b.lineEnding
}

// Pieces returns the number of pieces in the sequence.
func (b *Buffer) Pieces() int {
	return len(b.pieces)
}

// source returns the byte container piece p refers to.
func (b *Buffer) source(p Piece) []byte {
	if p.Source == SourceAdd {
		return b.add
	}
	return b.original
}

// byteAt returns the logical byte at pos, which must be < Len.
func (b *Buffer) byteAt(pos int) byte {
	idx, off, _ := b.findPieceAt(pos)
	p := b.pieces[idx]
	return b.source(p)[p.Start+off]
}

// findPieceAt locates the piece containing pos. A pos on the boundary
// between piece k and k+1 reports {k+1, 0}; pos == Len reports the last
// piece with its full length (non-empty buffers only). Returns ok=false
// for pos past the end.
func (b *Buffer) findPieceAt(pos int) (idx, offset int, ok bool) {
	if pos < 0 || pos > b.totalLen {
		return 0, 0, false
	}
	if pos == b.totalLen {
		if len(b.pieces) == 0 {
			return 0, 0, false
		}
		last := len(b.pieces) - 1
		return last, b.pieces[last].Length, true
	}
	acc := 0
	for i, p := range b.pieces {
		if pos < acc+p.Length {
			return i, pos - acc, true
		}
		acc += p.Length
	}
	// Unreachable while the length invariant holds.
	panic(fmt.Sprintf("buffer: piece table inconsistent: pos %d, totalLen %d", pos, b.totalLen))
}

// Insert splices text into the buffer at pos. The bytes are appended to
// the add buffer and referenced by a new piece; no existing text moves.
// Returns ErrPositionOutOfBounds if pos is past the end.
func (b *Buffer) Insert(pos int, text []byte) error {
	if pos < 0 || pos > b.totalLen {
		return fmt.Errorf("%w: insert at %d, len %d", ErrPositionOutOfBounds, pos, b.totalLen)
	}
	if len(text) == 0 {
		return nil
	}

	addStart := len(b.add)
	b.add = append(b.add, text...)
	newPiece := Piece{Source: SourceAdd, Start: addStart, Length: len(text)}

	switch {
	case pos == b.totalLen:
		// Covers both the append case and the empty buffer.
		b.pieces = append(b.pieces, newPiece)
	case pos == 0:
		b.pieces = slices.Insert(b.pieces, 0, newPiece)
	default:
		idx, off, _ := b.findPieceAt(pos)
		if off == 0 {
			b.pieces = slices.Insert(b.pieces, idx, newPiece)
		} else {
			// Interior: replace piece idx with [left, new, right].
			p := b.pieces[idx]
			left := Piece{Source: p.Source, Start: p.Start, Length: off}
			right := Piece{Source: p.Source, Start: p.Start + off, Length: p.Length - off}
			b.pieces = slices.Insert(b.pieces, idx+1, newPiece, right)
			b.pieces[idx] = left
		}
	}

	b.totalLen += len(text)
	b.lines.invalidateFrom(pos)
	return nil
}

// Delete removes up to count bytes starting at pos, clamped to the end of
// the buffer, and returns the number of bytes removed. Out-of-bounds
// positions are a no-op.
func (b *Buffer) Delete(pos, count int) int {
	if pos < 0 || pos >= b.totalLen || count <= 0 {
		return 0
	}
	if count > b.totalLen-pos {
		count = b.totalLen - pos
	}

	idx, off, _ := b.findPieceAt(pos)
	p := b.pieces[idx]
	avail := p.Length - off

	if count < avail {
		// Entirely inside piece idx.
		switch {
		case off == 0:
			b.pieces[idx] = Piece{Source: p.Source, Start: p.Start + count, Length: p.Length - count}
		default:
			left := Piece{Source: p.Source, Start: p.Start, Length: off}
			right := Piece{Source: p.Source, Start: p.Start + off + count, Length: p.Length - off - count}
			b.pieces = slices.Insert(b.pieces, idx+1, right)
			b.pieces[idx] = left
		}
		b.finishDelete(pos, count)
		return count
	}
	if count == avail && off > 0 {
		// Suffix of piece idx only.
		b.pieces[idx] = Piece{Source: p.Source, Start: p.Start, Length: off}
		b.finishDelete(pos, count)
		return count
	}

	// Spans piece boundaries (or removes piece idx entirely). Trim the
	// first and last touched pieces, collect fully covered pieces, and
	// remove the collected indices in descending order.
	var removals []int
	remaining := count
	i := idx
	if off > 0 {
		b.pieces[i] = Piece{Source: p.Source, Start: p.Start, Length: off}
		remaining -= avail
		i++
	}
	for remaining > 0 {
		q := b.pieces[i]
		if remaining >= q.Length {
			removals = append(removals, i)
			remaining -= q.Length
			i++
			continue
		}
		b.pieces[i] = Piece{Source: q.Source, Start: q.Start + remaining, Length: q.Length - remaining}
		remaining = 0
	}
	for j := len(removals) - 1; j >= 0; j-- {
		b.pieces = slices.Delete(b.pieces, removals[j], removals[j]+1)
	}

	b.finishDelete(pos, count)
	return count
}

func (b *Buffer) finishDelete(pos, count int) {
	b.totalLen -= count
	b.lines.invalidateFrom(pos)
}

// ClonePieces snapshots the piece sequence for transactional restore.
func (b *Buffer) ClonePieces() []Piece {
	return slices.Clone(b.pieces)
}

// RestorePieces replaces the piece sequence with a snapshot taken by
// ClonePieces. The total length is recomputed and the line index fully
// invalidated.
func (b *Buffer) RestorePieces(pieces []Piece) {
	b.pieces = slices.Clone(pieces)
	total := 0
	for _, p := range b.pieces {
		total += p.Length
	}
	b.totalLen = total
	b.lines.invalidateFrom(0)
}

// GetRange materialises a contiguous copy of [start, start+length).
func (b *Buffer) GetRange(start, length int) ([]byte, error) {
	if start < 0 || length < 0 || start+length > b.totalLen {
		return nil, fmt.Errorf("%w: [%d, %d), len %d", ErrOutOfRange, start, start+length, b.totalLen)
	}
	out := make([]byte, 0, length)
	if length == 0 {
		return out, nil
	}
	idx, off, _ := b.findPieceAt(start)
	for length > 0 {
		p := b.pieces[idx]
		src := b.source(p)[p.Start+off : p.End()]
		if len(src) > length {
			src = src[:length]
		}
		out = append(out, src...)
		length -= len(src)
		idx++
		off = 0
	}
	return out, nil
}

// GetContentPreview returns up to maxLen leading bytes without copying,
// for language detection and similar sniffing. Returns nil if the preview
// would cross a piece boundary.
func (b *Buffer) GetContentPreview(maxLen int) []byte {
	n := min(maxLen, b.totalLen)
	if n <= 0 {
		return []byte{}
	}
	p := b.pieces[0]
	if p.Length < n {
		return nil
	}
	return b.source(p)[p.Start : p.Start+n]
}

// checkInvariant panics if the cached total length disagrees with the
// piece sequence. Used by tests.
func (b *Buffer) checkInvariant() {
	total := 0
	for _, p := range b.pieces {
		if p.Length <= 0 {
			panic(fmt.Sprintf("buffer: zero-length piece %+v", p))
		}
		if p.Start < 0 || p.End() > len(b.source(p)) {
			panic(fmt.Sprintf("buffer: piece %+v out of container bounds", p))
		}
		total += p.Length
	}
	if total != b.totalLen {
		panic(fmt.Sprintf("buffer: totalLen %d, pieces sum %d", b.totalLen, total))
	}
}
