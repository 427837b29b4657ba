package contract_test

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/goze/buffer"
	"github.com/dshills/goze/editor"
)

// typingHarness drives an editing context with a deterministic clock.
type typingHarness struct {
	ctx *editor.Context
	t   time.Time
}

func newTypingHarness(initial string) *typingHarness {
	h := &typingHarness{t: time.Unix(0, 0)}
	var buf *buffer.Buffer
	if initial == "" {
		buf = buffer.New()
	} else {
		buf = buffer.NewFromBytes([]byte(initial))
	}
	h.ctx = editor.New(buf, editor.WithClock(func() time.Time { return h.t }))
	return h
}

func (h *typingHarness) typeText(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		if err := h.ctx.Insert(string(r)); err != nil {
			t.Fatalf("Insert(%q): %v", r, err)
		}
		h.t = h.t.Add(10 * time.Millisecond)
	}
}

func (h *typingHarness) pause(d time.Duration) {
	h.t = h.t.Add(d)
}

func (h *typingHarness) text(t *testing.T) string {
	t.Helper()
	data, err := h.ctx.Buffer().GetRange(0, h.ctx.Buffer().Len())
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// TestUndoAfterPause: typing "hello", pausing, then typing " world" makes
// two undo groups split at the pause.
func TestUndoAfterPause(t *testing.T) {
	h := newTypingHarness("")
	h.typeText(t, "hello")
	h.pause(500 * time.Millisecond)
	h.typeText(t, " world")

	h.ctx.Undo()
	if got := h.text(t); got != "hello" {
		t.Errorf("after undo: %q, want hello", got)
	}
	h.ctx.Undo()
	if got := h.text(t); got != "" {
		t.Errorf("after second undo: %q, want empty", got)
	}
}

// TestUndoAtWordBoundary: "hello world" with no pauses still makes two
// groups; the space opens the second and "world" joins it.
func TestUndoAtWordBoundary(t *testing.T) {
	h := newTypingHarness("")
	h.typeText(t, "hello world")

	h.ctx.Undo()
	if got := h.text(t); got != "hello" {
		t.Errorf("after undo: %q, want hello", got)
	}
	h.ctx.Undo()
	if got := h.text(t); got != "" {
		t.Errorf("after second undo: %q, want empty", got)
	}
}

// TestKillRegion: marking inside "abc\ndef" and killing the region moves
// the text to the kill ring and clears the mark.
func TestKillRegion(t *testing.T) {
	h := newTypingHarness("abc\ndef")
	h.ctx.SetCursor(1)
	h.ctx.SetMark()
	h.ctx.SetCursor(5)
	if !h.ctx.KillRegion() {
		t.Fatal("KillRegion() = false")
	}

	if got := h.text(t); got != "aef" {
		t.Errorf("buffer = %q, want aef", got)
	}
	if got := string(h.ctx.KillRing()); got != "bc\nd" {
		t.Errorf("kill ring = %q, want bc\\nd", got)
	}
	if _, ok := h.ctx.Mark(); ok {
		t.Error("mark should be cleared")
	}
}

// TestLargeInsertUndoButNoRedo pins the deliberate trade-off: a >=1 MiB
// insert undoes correctly but its redo entry is silently dropped.
func TestLargeInsertUndoButNoRedo(t *testing.T) {
	h := newTypingHarness("seed")
	h.ctx.MoveBufferEnd()
	if err := h.ctx.Insert(strings.Repeat("z", 1<<20)); err != nil {
		t.Fatal(err)
	}

	if !h.ctx.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := h.text(t); got != "seed" {
		t.Errorf("after undo: %q, want seed", got)
	}
	if h.ctx.Redo() {
		t.Error("Redo() of an elided insert must report false")
	}
	if got := h.text(t); got != "seed" {
		t.Errorf("after dropped redo: %q, want seed", got)
	}
}

// TestUndoRedoIdentity: redo after undo restores the edited state exactly
// when no new edit intervenes.
func TestUndoRedoIdentity(t *testing.T) {
	h := newTypingHarness("")
	h.typeText(t, "alpha beta")
	want := h.text(t)

	h.ctx.Undo()
	h.ctx.Redo()
	if got := h.text(t); got != want {
		t.Errorf("redo∘undo = %q, want %q", got, want)
	}
}

// TestCursorStaysOnBoundary: every movement and edit leaves the cursor on
// a UTF-8 lead byte.
func TestCursorStaysOnBoundary(t *testing.T) {
	h := newTypingHarness("日本語\nascii\n🌍🌍")
	moves := []func(){
		h.ctx.MoveForward, h.ctx.MoveForward, h.ctx.MoveNextLine,
		h.ctx.MoveWordForward, h.ctx.MoveLineEnd, h.ctx.MoveNextLine,
		h.ctx.MoveForward, h.ctx.MoveBackward, h.ctx.MovePrevLine,
		h.ctx.MoveWordBackward, h.ctx.MoveBufferEnd, h.ctx.MoveBackward,
	}
	buf := h.ctx.Buffer()
	for i, mv := range moves {
		mv()
		pos := h.ctx.Cursor()
		if pos < buf.Len() {
			data, err := buf.GetRange(pos, 1)
			if err != nil {
				t.Fatalf("move %d: GetRange: %v", i, err)
			}
			if data[0]&0xC0 == 0x80 {
				t.Errorf("move %d: cursor %d on continuation byte", i, pos)
			}
		}
	}
}
