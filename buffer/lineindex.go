package buffer

import (
	"fmt"
	"sort"
)

// lineIndex caches the byte offset of every line start. Entry 0 is always
// offset 0; entry i is the offset immediately after the i-th LF. The cache
// is built lazily and, after an edit, only the prefix before validUntil is
// trusted; the next query rescans from there to EOF.
type lineIndex struct {
	starts     []int
	valid      bool
	validUntil int
}

// invalidateFrom marks everything at or after pos as untrusted.
func (li *lineIndex) invalidateFrom(pos int) {
	if pos < 0 {
		pos = 0
	}
	if li.valid {
		li.validUntil = min(li.validUntil, pos)
		li.valid = false
		return
	}
	li.validUntil = min(li.validUntil, pos)
}

// rebuild brings the cache up to date. A validUntil of 0 scans the whole
// buffer; otherwise entries at or past validUntil are dropped and only the
// tail is rescanned. The scan starts one byte early so an LF sitting just
// before validUntil re-creates its (dropped) entry.
func (li *lineIndex) rebuild(b *Buffer) {
	if li.valid {
		return
	}
	from := 0
	if li.validUntil > 0 {
		keep := sort.Search(len(li.starts), func(i int) bool {
			return li.starts[i] >= li.validUntil
		})
		li.starts = li.starts[:keep]
		from = li.validUntil - 1
	} else {
		li.starts = li.starts[:0]
	}
	if len(li.starts) == 0 {
		li.starts = append(li.starts, 0)
	}

	it := NewIterator(b)
	it.Seek(from)
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		if c == '\n' {
			li.starts = append(li.starts, it.Pos())
		}
	}

	li.valid = true
	li.validUntil = b.totalLen
}

// ensureLines rebuilds the index if needed.
func (b *Buffer) ensureLines() {
	b.lines.rebuild(b)
}

// LineCount returns the number of lines. An empty buffer counts as one
// empty line.
func (b *Buffer) LineCount() int {
	b.ensureLines()
	return len(b.lines.starts)
}

// LineStart returns the byte offset where line n (0-based) starts. As a
// convenience for half-open range arithmetic, LineStart(LineCount())
// returns Len.
func (b *Buffer) LineStart(n int) (int, error) {
	b.ensureLines()
	if n < 0 || n > len(b.lines.starts) {
		return 0, fmt.Errorf("%w: line %d of %d", ErrOutOfRange, n, len(b.lines.starts))
	}
	if n == len(b.lines.starts) {
		return b.totalLen, nil
	}
	return b.lines.starts[n], nil
}

// FindLineByPos returns the line containing pos: the largest i such that
// LineStart(i) <= pos. pos is clamped to the buffer.
func (b *Buffer) FindLineByPos(pos int) int {
	b.ensureLines()
	if pos < 0 {
		return 0
	}
	if pos > b.totalLen {
		pos = b.totalLen
	}
	starts := b.lines.starts
	// First index whose start is beyond pos, minus one.
	i := sort.Search(len(starts), func(i int) bool {
		return starts[i] > pos
	})
	return i - 1
}

// GetLineRange returns the byte range [start, end) of line n, excluding
// its trailing LF.
func (b *Buffer) GetLineRange(n int) (start, end int, err error) {
	start, err = b.LineStart(n)
	if err != nil {
		return 0, 0, err
	}
	if n >= len(b.lines.starts) {
		return 0, 0, fmt.Errorf("%w: line %d of %d", ErrOutOfRange, n, len(b.lines.starts))
	}
	if n+1 < len(b.lines.starts) {
		// Next line's start is just past this line's LF.
		return start, b.lines.starts[n+1] - 1, nil
	}
	return start, b.totalLen, nil
}

// FindNextLineFromPos returns the offset just past the next LF at or after
// pos, or Len if the buffer ends first.
func (b *Buffer) FindNextLineFromPos(pos int) int {
	if pos < 0 {
		pos = 0
	}
	it := NewIterator(b)
	it.Seek(pos)
	for {
		c, ok := it.Next()
		if !ok {
			return b.totalLen
		}
		if c == '\n' {
			return it.Pos()
		}
	}
}

// FindColumnByPos returns the display column of pos within its line,
// measured in terminal cells (grapheme clusters contribute the width of
// their base codepoint).
func (b *Buffer) FindColumnByPos(pos int) (int, error) {
	if pos < 0 || pos > b.totalLen {
		return 0, fmt.Errorf("%w: pos %d, len %d", ErrOutOfRange, pos, b.totalLen)
	}
	line := b.FindLineByPos(pos)
	start, err := b.LineStart(line)
	if err != nil {
		return 0, err
	}
	it := NewIterator(b)
	it.Seek(start)
	col := 0
	for it.Pos() < pos {
		cl, ok, err := it.NextCluster()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		col += cl.Width
	}
	return col, nil
}
