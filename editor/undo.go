package editor

import (
	"bytes"
	"time"

	"github.com/dshills/goze/textseg"
)

// Op is the kind of a recorded edit.
type Op uint8

const (
	// OpInsert records text that was inserted.
	OpInsert Op = iota
	// OpDelete records text that was removed; Data must be
	// re-insertable verbatim to restore state.
	OpDelete
)

// UndoEntry is one recorded edit. Entries sharing a non-zero GroupID are
// undone and redone together.
type UndoEntry struct {
	Op           Op
	Pos          int
	Data         []byte
	CursorBefore int
	CursorAfter  int
	Groupable    bool
	GroupID      uint32
	// ActualLen is the edit's byte length when Data is elided (the
	// large-insert path); zero otherwise.
	ActualLen int
}

// editLen returns the number of buffer bytes the entry covers.
func (e *UndoEntry) editLen() int {
	if e.ActualLen > 0 {
		return e.ActualLen
	}
	return len(e.Data)
}

// redoDisabled reports whether the entry's payload was elided, making the
// edit impossible to replay forward.
func (e *UndoEntry) redoDisabled() bool {
	return e.Op == OpInsert && e.ActualLen > 0 && len(e.Data) == 0
}

// UndoDepth returns the number of recorded entries.
func (c *Context) UndoDepth() int {
	return len(c.undoStack)
}

// BeginUndoGroup opens an explicit undo group: every edit recorded until
// the matching EndUndoGroup shares one group id. Calls nest.
func (c *Context) BeginUndoGroup() {
	if c.explicitDepth == 0 {
		c.currentGroup = c.newGroupID()
	}
	c.explicitDepth++
}

// EndUndoGroup closes the innermost explicit undo group.
func (c *Context) EndUndoGroup() {
	if c.explicitDepth > 0 {
		c.explicitDepth--
	}
}

// ClearUndoHistory drops both stacks and resets the save point.
func (c *Context) ClearUndoHistory() {
	c.undoStack = nil
	c.redoStack = nil
	c.savepoint = 0
}

func (c *Context) newGroupID() uint32 {
	id := c.nextGroup
	c.nextGroup++
	return id
}

// record appends an entry to the undo stack, joining it to the previous
// entry's group when the grouping rules allow, and clears the redo stack.
func (c *Context) record(e UndoEntry) {
	c.redoStack = c.redoStack[:0]
	now := c.now()

	switch {
	case c.explicitDepth > 0:
		e.GroupID = c.currentGroup
	case c.canGroup(&e, now):
		last := &c.undoStack[len(c.undoStack)-1]
		if last.GroupID == 0 {
			last.GroupID = c.newGroupID()
		}
		e.GroupID = last.GroupID
	}

	c.undoStack = append(c.undoStack, e)
	c.lastRecord = now
}

// canGroup applies the automatic grouping rules: same kind of edit, both
// groupable, inside the time window, adjacent positions, and (for inserts)
// compatible character classes at the join.
func (c *Context) canGroup(e *UndoEntry, now time.Time) bool {
	if len(c.undoStack) == 0 {
		return false
	}
	last := &c.undoStack[len(c.undoStack)-1]
	if last.Op != e.Op || !last.Groupable || !e.Groupable {
		return false
	}
	if now.Sub(c.lastRecord) >= GroupWindow {
		return false
	}

	if e.Op == OpInsert {
		if last.Pos+len(last.Data) != e.Pos {
			return false
		}
		return insertClassesCompatible(last.Data[len(last.Data)-1], e.Data[0])
	}

	// Delete: backspace runs merge by prepending (the new removal ends
	// where the previous one began); forward-delete runs merge by
	// appending (same position).
	return e.Pos+len(e.Data) == last.Pos || e.Pos == last.Pos
}

// insertClassesCompatible decides whether typing next directly after last
// continues the same word burst. An ASCII/non-ASCII boundary never merges;
// otherwise word joins word, non-word joins non-word, and a word character
// may follow trailing whitespace (so " world" stays one group).
func insertClassesCompatible(last, next byte) bool {
	if (last < 0x80) != (next < 0x80) {
		return false
	}
	lw, nw := textseg.IsWordByte(last), textseg.IsWordByte(next)
	switch {
	case lw && nw:
		return true
	case !lw && !nw:
		return true
	case (last == ' ' || last == '\t') && nw:
		return true
	default:
		return false
	}
}

// groupable reports whether data may participate in automatic grouping.
func groupable(data []byte) bool {
	return !bytes.ContainsRune(data, '\n')
}

// Undo reverts the most recent undo group. Returns false when there is
// nothing to undo.
func (c *Context) Undo() bool {
	if len(c.undoStack) == 0 {
		return false
	}
	gid := c.undoStack[len(c.undoStack)-1].GroupID
	for {
		e := c.undoStack[len(c.undoStack)-1]
		c.undoStack = c.undoStack[:len(c.undoStack)-1]

		// Apply the inverse directly to the piece table, bypassing
		// recording.
		switch e.Op {
		case OpInsert:
			c.buf.Delete(e.Pos, e.editLen())
			c.emit(ChangeDelete, e.Pos, e.editLen())
		case OpDelete:
			// Later entries have already been undone, so the
			// buffer is back in its state right after this
			// delete and re-inserting at e.Pos cannot fail.
			if err := c.buf.Insert(e.Pos, e.Data); err != nil {
				panic("editor: undo replay out of bounds: " + err.Error())
			}
			c.emit(ChangeInsert, e.Pos, len(e.Data))
		}
		c.cursor = e.CursorBefore
		c.redoStack = append(c.redoStack, e)

		if gid == 0 || len(c.undoStack) == 0 || c.undoStack[len(c.undoStack)-1].GroupID != gid {
			break
		}
	}
	c.hasMark = false
	return true
}

// Redo re-applies the most recently undone group. Entries whose payload
// was elided (large inserts) cannot be replayed and are silently dropped.
// Returns false when there is nothing to redo.
func (c *Context) Redo() bool {
	for len(c.redoStack) > 0 && c.redoStack[len(c.redoStack)-1].redoDisabled() {
		c.redoStack = c.redoStack[:len(c.redoStack)-1]
	}
	if len(c.redoStack) == 0 {
		return false
	}
	gid := c.redoStack[len(c.redoStack)-1].GroupID
	for {
		e := c.redoStack[len(c.redoStack)-1]
		c.redoStack = c.redoStack[:len(c.redoStack)-1]

		switch e.Op {
		case OpInsert:
			if err := c.buf.Insert(e.Pos, e.Data); err != nil {
				panic("editor: redo replay out of bounds: " + err.Error())
			}
			c.emit(ChangeInsert, e.Pos, len(e.Data))
		case OpDelete:
			c.buf.Delete(e.Pos, len(e.Data))
			c.emit(ChangeDelete, e.Pos, len(e.Data))
		}
		c.cursor = e.CursorAfter
		c.undoStack = append(c.undoStack, e)

		if gid == 0 || len(c.redoStack) == 0 || c.redoStack[len(c.redoStack)-1].GroupID != gid {
			break
		}
	}
	c.hasMark = false
	return true
}

// RecordInsertOp records an insert the caller has already applied to the
// buffer, without re-applying it. Commands use this to batch composite
// edits.
func (c *Context) RecordInsertOp(pos int, data []byte, cursorBefore, cursorAfter int) {
	c.record(makeInsertEntry(pos, data, cursorBefore, cursorAfter))
}

// RecordDeleteOp records a delete the caller has already applied to the
// buffer. The entry takes ownership of data.
func (c *Context) RecordDeleteOp(pos int, data []byte, cursorBefore, cursorAfter int) {
	c.record(UndoEntry{
		Op:           OpDelete,
		Pos:          pos,
		Data:         data,
		CursorBefore: cursorBefore,
		CursorAfter:  cursorAfter,
		Groupable:    groupable(data),
	})
}

// RecordReplaceOp records an already-applied replacement of oldData by
// newData at pos as a delete plus insert under one undo group, so a single
// Undo reverts the whole replacement.
func (c *Context) RecordReplaceOp(pos int, oldData, newData []byte, cursorBefore, cursorAfter int) {
	c.BeginUndoGroup()
	c.RecordDeleteOp(pos, oldData, cursorBefore, cursorBefore)
	c.RecordInsertOp(pos, newData, cursorBefore, cursorAfter)
	c.EndUndoGroup()
}

// makeInsertEntry builds the undo entry for an insert, eliding the payload
// for very large inserts.
func makeInsertEntry(pos int, data []byte, cursorBefore, cursorAfter int) UndoEntry {
	e := UndoEntry{
		Op:           OpInsert,
		Pos:          pos,
		CursorBefore: cursorBefore,
		CursorAfter:  cursorAfter,
	}
	if len(data) >= LargeInsertThreshold {
		e.ActualLen = len(data)
		return e
	}
	e.Data = data
	e.Groupable = groupable(data)
	return e
}
