package editor

import (
	"time"

	"github.com/dshills/goze/buffer"
)

const (
	// GroupWindow is the typing pause that always starts a new undo
	// group.
	GroupWindow = 300 * time.Millisecond

	// LargeInsertThreshold is the insert size at which the undo entry
	// elides its payload, disabling redo for that entry.
	LargeInsertThreshold = 1 << 20
)

// Context is the editing context owning a buffer plus cursor, mark, kill
// ring and undo state. It is not safe for concurrent use; the editor core
// is single-threaded.
type Context struct {
	buf *buffer.Buffer

	cursor  int
	mark    int
	hasMark bool

	killRing []byte

	undoStack []UndoEntry
	redoStack []UndoEntry
	savepoint int

	currentGroup  uint32
	nextGroup     uint32
	explicitDepth int
	lastRecord    time.Time

	now       func() time.Time
	listeners []func(Change)
}

// Option configures a Context.
type Option func(*Context)

// WithClock substitutes the wall clock used by the undo grouping rules.
func WithClock(now func() time.Time) Option {
	return func(c *Context) { c.now = now }
}

// New returns an editing context over buf.
func New(buf *buffer.Buffer, opts ...Option) *Context {
	c := &Context{
		buf:       buf,
		nextGroup: 1,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Buffer returns the underlying buffer.
func (c *Context) Buffer() *buffer.Buffer {
	return c.buf
}

// Cursor returns the cursor's byte offset.
func (c *Context) Cursor() int {
	return c.cursor
}

// SetCursor moves the cursor to pos, clamped to the buffer and aligned to
// a UTF-8 boundary.
func (c *Context) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > c.buf.Len() {
		pos = c.buf.Len()
	}
	it := buffer.NewIterator(c.buf)
	c.cursor = it.AlignToRuneStart(pos)
}

// SetMark places the selection anchor at the cursor.
func (c *Context) SetMark() {
	c.mark = c.cursor
	c.hasMark = true
}

// ClearMark removes the selection anchor.
func (c *Context) ClearMark() {
	c.hasMark = false
}

// Mark returns the selection anchor, if set.
func (c *Context) Mark() (int, bool) {
	return c.mark, c.hasMark
}

// Selection returns the active region [start, end) normalised so that
// start <= end. ok is false when no mark is set.
func (c *Context) Selection() (start, end int, ok bool) {
	if !c.hasMark {
		return 0, 0, false
	}
	if c.mark <= c.cursor {
		return c.mark, c.cursor, true
	}
	return c.cursor, c.mark, true
}

// SelectAll sets the mark at the start of the buffer and the cursor at
// its end.
func (c *Context) SelectAll() {
	c.mark = 0
	c.hasMark = true
	c.cursor = c.buf.Len()
}

// KillRing returns the current kill-ring payload, or nil if empty.
func (c *Context) KillRing() []byte {
	return c.killRing
}

// Modified reports whether the buffer differs from its last save point.
func (c *Context) Modified() bool {
	return len(c.undoStack) != c.savepoint
}

// MarkSaved records the current undo depth as the save point; a
// successful save calls this.
func (c *Context) MarkSaved() {
	c.savepoint = len(c.undoStack)
}
