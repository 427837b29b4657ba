package editor

import (
	"testing"
	"time"

	"github.com/dshills/goze/buffer"
)

// fakeClock drives the undo grouping window deterministically.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestContext(t *testing.T, initial string) (*Context, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1000, 0)}
	var buf *buffer.Buffer
	if initial == "" {
		buf = buffer.New()
	} else {
		buf = buffer.NewFromBytes([]byte(initial))
	}
	return New(buf, WithClock(clock.now)), clock
}

func text(t *testing.T, c *Context) string {
	t.Helper()
	data, err := c.Buffer().GetRange(0, c.Buffer().Len())
	if err != nil {
		t.Fatalf("GetRange: %v", err)
	}
	return string(data)
}

// typeString records each character as its own edit, advancing the clock a
// little between keystrokes, like a fast typist.
func typeString(t *testing.T, c *Context, clock *fakeClock, s string) {
	t.Helper()
	for _, r := range s {
		if err := c.Insert(string(r)); err != nil {
			t.Fatalf("Insert(%q): %v", r, err)
		}
		clock.advance(10 * time.Millisecond)
	}
}

func TestInsertAdvancesCursor(t *testing.T) {
	c, _ := newTestContext(t, "")
	if err := c.Insert("abc"); err != nil {
		t.Fatal(err)
	}
	if c.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", c.Cursor())
	}
	if got := text(t, c); got != "abc" {
		t.Errorf("text = %q", got)
	}
}

func TestDeleteForward(t *testing.T) {
	c, _ := newTestContext(t, "abcdef")
	c.SetCursor(2)
	if got := c.Delete(3); got != 3 {
		t.Fatalf("Delete(3) = %d", got)
	}
	if got := text(t, c); got != "abf" {
		t.Errorf("text = %q, want abf", got)
	}
	if c.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", c.Cursor())
	}

	// Clamped at the end.
	c.SetCursor(3)
	if got := c.Delete(10); got != 0 {
		t.Errorf("Delete at EOF = %d, want 0", got)
	}
}

func TestBackspaceRemovesCluster(t *testing.T) {
	c, _ := newTestContext(t, "a日b")
	c.SetCursor(4) // after 日
	if got := c.Backspace(); got != 3 {
		t.Fatalf("Backspace() = %d, want 3", got)
	}
	if got := text(t, c); got != "ab" {
		t.Errorf("text = %q, want ab", got)
	}
	if c.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", c.Cursor())
	}
}

func TestBackspaceFamilyEmoji(t *testing.T) {
	family := "\U0001F468‍\U0001F469‍\U0001F467"
	c, _ := newTestContext(t, "x"+family)
	c.MoveBufferEnd()
	if got := c.Backspace(); got != len(family) {
		t.Fatalf("Backspace() = %d, want %d", got, len(family))
	}
	if got := text(t, c); got != "x" {
		t.Errorf("text = %q, want x", got)
	}
}

func TestKillLine(t *testing.T) {
	c, _ := newTestContext(t, "abc\ndef")
	c.SetCursor(1)
	if got := c.KillLine(); got != 2 {
		t.Fatalf("KillLine() = %d, want 2", got)
	}
	if got := text(t, c); got != "a\ndef" {
		t.Errorf("text = %q, want a\\ndef", got)
	}
	if got := string(c.KillRing()); got != "bc" {
		t.Errorf("kill ring = %q, want bc", got)
	}

	// On the line break the break itself is killed.
	if got := c.KillLine(); got != 1 {
		t.Fatalf("KillLine() on LF = %d, want 1", got)
	}
	if got := text(t, c); got != "adef" {
		t.Errorf("text = %q, want adef", got)
	}
}

func TestKillRegionScenario(t *testing.T) {
	c, _ := newTestContext(t, "abc\ndef")
	c.SetCursor(1)
	c.SetMark()
	c.SetCursor(5)
	if !c.KillRegion() {
		t.Fatal("KillRegion() = false")
	}
	if got := text(t, c); got != "aef" {
		t.Errorf("text = %q, want aef", got)
	}
	if got := string(c.KillRing()); got != "bc\nd" {
		t.Errorf("kill ring = %q, want bc\\nd", got)
	}
	if _, ok := c.Mark(); ok {
		t.Error("mark should be cleared after KillRegion")
	}
	if c.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", c.Cursor())
	}
}

func TestCopyRegionAndYank(t *testing.T) {
	c, _ := newTestContext(t, "hello")
	c.SetMark()
	c.SetCursor(4)
	if !c.CopyRegion() {
		t.Fatal("CopyRegion() = false")
	}
	if got := text(t, c); got != "hello" {
		t.Errorf("copy mutated buffer: %q", got)
	}
	c.MoveBufferEnd()
	if err := c.Yank(); err != nil {
		t.Fatal(err)
	}
	if got := text(t, c); got != "hellohell" {
		t.Errorf("text = %q, want hellohell", got)
	}
}

func TestRegionOpsWithoutMark(t *testing.T) {
	c, _ := newTestContext(t, "abc")
	if c.CopyRegion() {
		t.Error("CopyRegion without mark should be a no-op")
	}
	if c.KillRegion() {
		t.Error("KillRegion without mark should be a no-op")
	}
	if err := c.Yank(); err != nil {
		t.Errorf("Yank with empty kill ring: %v", err)
	}
	if got := text(t, c); got != "abc" {
		t.Errorf("text = %q, want abc", got)
	}
}

func TestSelectAll(t *testing.T) {
	c, _ := newTestContext(t, "abc\ndef")
	c.SelectAll()
	start, end, ok := c.Selection()
	if !ok || start != 0 || end != 7 {
		t.Errorf("Selection() = %d, %d, %v, want 0, 7, true", start, end, ok)
	}
}

func TestSetCursorAligns(t *testing.T) {
	c, _ := newTestContext(t, "a日b")
	c.SetCursor(2) // inside 日
	if c.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1 (aligned to lead byte)", c.Cursor())
	}
	c.SetCursor(99)
	if c.Cursor() != 5 {
		t.Errorf("Cursor() = %d, want 5 (clamped)", c.Cursor())
	}
}

func TestChangeEvents(t *testing.T) {
	c, _ := newTestContext(t, "")
	var events []Change
	c.AddListener(func(ev Change) { events = append(events, ev) })

	if err := c.Insert("ab\ncd"); err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Kind != ChangeInsert || ev.Pos != 0 || ev.Bytes != 5 {
		t.Errorf("event = %+v", ev)
	}
	if ev.StartLine != 0 || ev.EndLine != 1 {
		t.Errorf("line range = [%d, %d], want [0, 1]", ev.StartLine, ev.EndLine)
	}

	c.SetCursor(0)
	c.Delete(2)
	if len(events) != 2 || events[1].Kind != ChangeDelete {
		t.Fatalf("expected a delete event, got %+v", events)
	}
}
