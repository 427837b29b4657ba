// Package editor implements the editing context that sits between commands
// and the text buffer: cursor and mark state, the kill ring, undo/redo with
// automatic grouping, and change notification.
//
// # Cursor Discipline
//
// The cursor is a byte offset that is always on a UTF-8 boundary and never
// past the end of the buffer. All movement operations are grapheme-cluster
// aware: moving over 日 or a family emoji is one step either way.
//
// # Undo Grouping
//
// Consecutive small edits coalesce into one undo group when they look like
// a single burst of typing: same kind of edit, adjacent positions, no
// newline involved, less than 300 ms apart, and compatible character
// classes (typing "hello world" yields the groups "hello" and " world";
// "#include" splits after "#"). A pause, a newline, or an explicit
// BeginUndoGroup/EndUndoGroup pair starts a new group. Undo and redo pop
// whole groups.
//
// Inserts of a megabyte or more are recorded without their payload so undo
// stays cheap; undoing them works (the byte count is enough to delete) but
// the redo entry is silently discarded because the text cannot be
// reconstructed.
//
// # Change Notification
//
// Views and other observers register a listener and receive one Change per
// buffer mutation, including mutations replayed by undo and redo.
package editor
