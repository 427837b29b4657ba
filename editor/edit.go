package editor

import (
	"fmt"

	"github.com/dshills/goze/buffer"
)

// Insert splices text in at the cursor, records it for undo and advances
// the cursor past it.
func (c *Context) Insert(text string) error {
	if text == "" {
		return nil
	}
	pos := c.cursor
	data := []byte(text)
	if err := c.buf.Insert(pos, data); err != nil {
		return fmt.Errorf("insert at cursor: %w", err)
	}
	c.record(makeInsertEntry(pos, data, pos, pos+len(data)))
	c.cursor = pos + len(data)
	c.emit(ChangeInsert, pos, len(data))
	return nil
}

// Delete removes up to count bytes forward from the cursor (clamped to the
// buffer end) and records them for undo. Returns the number of bytes
// removed.
func (c *Context) Delete(count int) int {
	return c.deleteRange(c.cursor, count, c.cursor, c.cursor)
}

// deleteRange removes [pos, pos+count), recording the removed bytes. The
// extracted copy is handed to the undo entry as-is; there is no second
// copy.
func (c *Context) deleteRange(pos, count, cursorBefore, cursorAfter int) int {
	if count > c.buf.Len()-pos {
		count = c.buf.Len() - pos
	}
	if count <= 0 {
		return 0
	}
	removed, err := c.buf.GetRange(pos, count)
	if err != nil {
		return 0
	}
	c.buf.Delete(pos, count)
	c.record(UndoEntry{
		Op:           OpDelete,
		Pos:          pos,
		Data:         removed,
		CursorBefore: cursorBefore,
		CursorAfter:  cursorAfter,
		Groupable:    groupable(removed),
	})
	c.cursor = cursorAfter
	c.emit(ChangeDelete, pos, count)
	return count
}

// Backspace removes the grapheme cluster before the cursor and leaves the
// cursor at its start.
func (c *Context) Backspace() int {
	if c.cursor == 0 {
		return 0
	}
	start := c.prevClusterStart(c.cursor)
	return c.deleteRange(start, c.cursor-start, c.cursor, start)
}

// KillLine deletes from the cursor to the next line break (or to the end
// of the buffer) and stores the removed text in the kill ring, replacing
// any prior content. With the cursor already on the break, the break
// itself is removed.
func (c *Context) KillLine() int {
	end := c.cursor
	it := buffer.NewIterator(c.buf)
	it.Seek(c.cursor)
	for {
		b, ok := it.Next()
		if !ok {
			end = it.Pos()
			break
		}
		if b == '\n' {
			end = it.Pos() - 1
			break
		}
	}
	if end == c.cursor {
		if c.cursor == c.buf.Len() {
			return 0
		}
		end = c.cursor + 1 // take the LF itself
	}
	n := c.deleteRange(c.cursor, end-c.cursor, c.cursor, c.cursor)
	if n > 0 {
		c.killRing = c.lastRemoved()
	}
	return n
}

// CopyRegion stores the active region in the kill ring. A missing mark is
// a silent no-op.
func (c *Context) CopyRegion() bool {
	start, end, ok := c.Selection()
	if !ok || start == end {
		return false
	}
	data, err := c.buf.GetRange(start, end-start)
	if err != nil {
		return false
	}
	c.killRing = data
	return true
}

// KillRegion deletes the active region into the kill ring and clears the
// mark. A missing mark is a silent no-op.
func (c *Context) KillRegion() bool {
	start, end, ok := c.Selection()
	if !ok || start == end {
		return false
	}
	if c.deleteRange(start, end-start, c.cursor, start) == 0 {
		return false
	}
	c.killRing = c.lastRemoved()
	c.hasMark = false
	return true
}

// Yank inserts the kill ring at the cursor. An empty kill ring is a
// no-op.
func (c *Context) Yank() error {
	if len(c.killRing) == 0 {
		return nil
	}
	return c.Insert(string(c.killRing))
}

// lastRemoved returns the payload of the most recent delete entry. Called
// immediately after a successful deleteRange.
func (c *Context) lastRemoved() []byte {
	e := &c.undoStack[len(c.undoStack)-1]
	return e.Data
}
