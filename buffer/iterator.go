package buffer

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/goze/textseg"
)

// Iterator is a stateful cursor over a buffer's piece sequence. It yields
// bytes, codepoints, or grapheme clusters and can be repositioned with
// Seek. An iterator observes the buffer as of its last Seek; do not mutate
// the buffer while iterating.
type Iterator struct {
	buf      *Buffer
	pieceIdx int
	offset   int
	pos      int
}

// Cluster is one grapheme cluster read from the stream.
type Cluster struct {
	// Base is the cluster's first codepoint; it alone determines the
	// display width.
	Base rune
	// Width is the display width in terminal cells (0, 1 or 2).
	Width int
	// ByteLen is the total encoded length of the cluster.
	ByteLen int
}

// NewIterator returns an iterator positioned at the start of b.
func NewIterator(b *Buffer) *Iterator {
	return &Iterator{buf: b}
}

// Pos returns the iterator's position as a byte offset into the buffer.
func (it *Iterator) Pos() int {
	return it.pos
}

// Next returns the byte at the current position and advances, crossing
// piece boundaries transparently. ok is false at end of buffer.
func (it *Iterator) Next() (c byte, ok bool) {
	if it.pieceIdx >= len(it.buf.pieces) {
		return 0, false
	}
	p := it.buf.pieces[it.pieceIdx]
	c = it.buf.source(p)[p.Start+it.offset]
	it.pos++
	it.offset++
	if it.offset == p.Length {
		it.pieceIdx++
		it.offset = 0
	}
	return c, true
}

// Seek positions the iterator at byte offset target. Targets past the end
// position it at EOF.
func (it *Iterator) Seek(target int) {
	if target < 0 {
		target = 0
	}
	if target >= it.buf.totalLen {
		it.pieceIdx = len(it.buf.pieces)
		it.offset = 0
		it.pos = it.buf.totalLen
		return
	}
	acc := 0
	for i, p := range it.buf.pieces {
		if target < acc+p.Length {
			it.pieceIdx = i
			it.offset = target - acc
			it.pos = target
			return
		}
		acc += p.Length
	}
}

// NextRune decodes the UTF-8 sequence at the current position and
// advances past it. ok is false at end of buffer. A malformed, truncated
// or overlong sequence returns ErrInvalidUTF8 and leaves the iterator
// position undefined.
func (it *Iterator) NextRune() (r rune, ok bool, err error) {
	b0, ok := it.Next()
	if !ok {
		return 0, false, nil
	}
	n := textseg.SequenceLen(b0)
	if n == 0 {
		return 0, false, fmt.Errorf("%w: stray continuation byte %#x at %d", ErrInvalidUTF8, b0, it.pos-1)
	}
	if n == 1 {
		return rune(b0), true, nil
	}
	var seq [utf8.UTFMax]byte
	seq[0] = b0
	for i := 1; i < n; i++ {
		c, ok := it.Next()
		if !ok {
			return 0, false, fmt.Errorf("%w: truncated sequence at end of buffer", ErrInvalidUTF8)
		}
		seq[i] = c
	}
	r, size := utf8.DecodeRune(seq[:n])
	if r == utf8.RuneError && size <= 1 || size != n {
		return 0, false, fmt.Errorf("%w: malformed sequence % x", ErrInvalidUTF8, seq[:n])
	}
	return r, true, nil
}

// NextCluster reads one grapheme cluster: a base codepoint plus every
// codepoint that extends it under the UAX #29 break rules. The iterator
// backs up exactly one codepoint when it reads the one that starts the
// next cluster.
func (it *Iterator) NextCluster() (Cluster, bool, error) {
	start := it.pos
	base, ok, err := it.NextRune()
	if err != nil || !ok {
		return Cluster{}, false, err
	}

	st := textseg.StartCluster(base)
	for {
		mark := *it
		r, ok, err := it.NextRune()
		if err != nil {
			return Cluster{}, false, err
		}
		if !ok {
			break
		}
		if !st.Extend(r) {
			*it = mark
			break
		}
	}

	return Cluster{
		Base:    base,
		Width:   textseg.RuneWidth(base),
		ByteLen: it.pos - start,
	}, true, nil
}

// AlignToRuneStart walks back from pos to the nearest byte that can begin
// a UTF-8 sequence and returns its offset.
func (it *Iterator) AlignToRuneStart(pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= it.buf.totalLen {
		// One-past-end is a boundary by definition.
		return it.buf.totalLen
	}
	for back := 0; back < utf8.UTFMax && pos-back >= 0; back++ {
		if textseg.IsLeadByte(it.buf.byteAt(pos - back)) {
			return pos - back
		}
	}
	return pos
}
