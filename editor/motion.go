package editor

import (
	"github.com/dshills/goze/buffer"
	"github.com/dshills/goze/textseg"
)

// backwardWindow is how many bytes the backward word scan pulls at a time.
const backwardWindow = 256

// MoveForward advances the cursor one grapheme cluster.
func (c *Context) MoveForward() {
	if c.cursor >= c.buf.Len() {
		return
	}
	it := buffer.NewIterator(c.buf)
	it.Seek(c.cursor)
	if _, ok, err := it.NextCluster(); err != nil || !ok {
		return
	}
	c.cursor = it.Pos()
}

// MoveBackward moves the cursor one grapheme cluster back.
func (c *Context) MoveBackward() {
	if c.cursor == 0 {
		return
	}
	c.cursor = c.prevClusterStart(c.cursor)
}

// prevClusterStart returns the offset of the grapheme cluster that ends at
// pos. Clusters are found by walking forward from the enclosing line
// start, since cluster boundaries cannot be determined scanning backward.
func (c *Context) prevClusterStart(pos int) int {
	if pos <= 0 {
		return 0
	}
	line := c.buf.FindLineByPos(pos - 1)
	start, err := c.buf.LineStart(line)
	if err != nil {
		return 0
	}
	it := buffer.NewIterator(c.buf)
	it.Seek(start)
	prev := start
	for it.Pos() < pos {
		prev = it.Pos()
		if _, ok, err := it.NextCluster(); err != nil || !ok {
			break
		}
	}
	return prev
}

// MoveLineStart moves the cursor to the start of its line.
func (c *Context) MoveLineStart() {
	line := c.buf.FindLineByPos(c.cursor)
	if start, err := c.buf.LineStart(line); err == nil {
		c.cursor = start
	}
}

// MoveLineEnd moves the cursor past the last byte of its line, before the
// line break.
func (c *Context) MoveLineEnd() {
	line := c.buf.FindLineByPos(c.cursor)
	if _, end, err := c.buf.GetLineRange(line); err == nil {
		c.cursor = end
	}
}

// MoveBufferStart moves the cursor to offset 0.
func (c *Context) MoveBufferStart() {
	c.cursor = 0
}

// MoveBufferEnd moves the cursor past the last byte.
func (c *Context) MoveBufferEnd() {
	c.cursor = c.buf.Len()
}

// MoveNextLine moves the cursor down one line, preserving the display
// column as closely as the target line allows.
func (c *Context) MoveNextLine() {
	c.moveVertical(1)
}

// MovePrevLine moves the cursor up one line, preserving the display
// column as closely as the target line allows.
func (c *Context) MovePrevLine() {
	c.moveVertical(-1)
}

func (c *Context) moveVertical(delta int) {
	line := c.buf.FindLineByPos(c.cursor)
	target := line + delta
	if target < 0 || target >= c.buf.LineCount() {
		return
	}
	col, err := c.buf.FindColumnByPos(c.cursor)
	if err != nil {
		return
	}
	c.cursor = c.posAtColumn(target, col)
}

// posAtColumn returns the byte offset on line n closest to display column
// col without exceeding it, clamped to the line's end.
func (c *Context) posAtColumn(n, col int) int {
	start, end, err := c.buf.GetLineRange(n)
	if err != nil {
		return c.cursor
	}
	it := buffer.NewIterator(c.buf)
	it.Seek(start)
	width := 0
	for it.Pos() < end {
		mark := *it
		cl, ok, err := it.NextCluster()
		if err != nil || !ok {
			break
		}
		if width+cl.Width > col {
			return mark.Pos()
		}
		width += cl.Width
		if width == col {
			return it.Pos()
		}
	}
	return end
}

// MoveWordForward moves the cursor to the start of the next word: it
// skips the rest of the current word, then any non-word bytes. Word bytes
// are ASCII letters, digits and underscore.
func (c *Context) MoveWordForward() {
	it := buffer.NewIterator(c.buf)
	it.Seek(c.cursor)
	inWord := true
	for {
		b, ok := it.Next()
		if !ok {
			c.cursor = it.Pos()
			return
		}
		if inWord {
			if !textseg.IsWordByte(b) {
				inWord = false
			}
			continue
		}
		if textseg.IsWordByte(b) {
			c.cursor = it.Pos() - 1
			return
		}
	}
}

// MoveWordBackward moves the cursor to the start of the previous word. It
// scans a rolling backward window whose left edge is snapped to a UTF-8
// lead byte, skipping non-word bytes and then the word itself.
func (c *Context) MoveWordBackward() {
	pos := c.cursor
	pos = c.scanBackward(pos, func(b byte) bool { return !textseg.IsWordByte(b) })
	pos = c.scanBackward(pos, textseg.IsWordByte)
	c.cursor = pos
}

// scanBackward walks pos backward while the byte before it satisfies keep,
// fetching the text in aligned windows.
func (c *Context) scanBackward(pos int, keep func(byte) bool) int {
	it := buffer.NewIterator(c.buf)
	for pos > 0 {
		lo := max(0, pos-backwardWindow)
		lo = it.AlignToRuneStart(lo)
		window, err := c.buf.GetRange(lo, pos-lo)
		if err != nil {
			return pos
		}
		for i := len(window) - 1; i >= 0; i-- {
			if !keep(window[i]) {
				return lo + i + 1
			}
			pos = lo + i
		}
	}
	return pos
}
