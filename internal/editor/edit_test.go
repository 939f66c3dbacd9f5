package editor

import (
	"testing"

	"github.com/castlight/quill/internal/terminal"
)

func TestInsertCharPastEndCreatesRow(t *testing.T) {
	e := newTestEditor(t)
	if len(e.rows) != 0 {
		t.Fatalf("expected empty buffer")
	}
	e.InsertChar('a')
	wantLines(t, e, "a")
	if e.cursorX != 1 {
		t.Fatalf("cursor col = %d, want 1", e.cursorX)
	}
}

func TestBackspaceAtOriginIsNoop(t *testing.T) {
	e := newTestEditor(t, "abc")
	setCursor(e, 0, 0)
	e.DeleteChar()
	wantLines(t, e, "abc")
}

func TestBackspaceMergesLines(t *testing.T) {
	e := newTestEditor(t, "ab", "cd")
	setCursor(e, 1, 0)
	e.DeleteChar()
	wantLines(t, e, "abcd")
	if e.cursorY != 0 || e.cursorX != 2 {
		t.Fatalf("cursor = (%d,%d), want (0,2)", e.cursorY, e.cursorX)
	}

	e.Undo()
	wantLines(t, e, "ab", "cd")
	if e.cursorY != 1 || e.cursorX != 0 {
		t.Fatalf("cursor after undo = (%d,%d), want (1,0)", e.cursorY, e.cursorX)
	}
	e.Redo()
	wantLines(t, e, "abcd")
}

func TestForwardDeleteAtBufferEndIsNoop(t *testing.T) {
	e := newTestEditor(t, "ab")
	setCursor(e, 0, 2)
	e.ProcessKey(terminal.KeyDelete)
	wantLines(t, e, "ab")
	if e.cursorY > len(e.rows) {
		t.Fatalf("cursor row out of bounds: %d", e.cursorY)
	}
}

func TestForwardDeleteIsRightThenBackspace(t *testing.T) {
	e := newTestEditor(t, "abc")
	setCursor(e, 0, 1)
	e.ProcessKey(terminal.KeyDelete)
	wantLines(t, e, "ac")
	if e.cursorX != 1 {
		t.Fatalf("cursor col = %d, want 1", e.cursorX)
	}
}

func TestNewlineAutoIndent(t *testing.T) {
	e := newTestEditor(t, "    if (x) {")
	setCursor(e, 0, e.rows[0].Len())
	e.InsertNewline()
	wantLines(t, e, "    if (x) {", "        ")
	if e.cursorY != 1 || e.cursorX != 8 {
		t.Fatalf("cursor = (%d,%d), want (1,8)", e.cursorY, e.cursorX)
	}

	e.InsertChar('}')
	wantLines(t, e, "    if (x) {", "    }")
	if e.cursorX != 5 {
		t.Fatalf("cursor col after brace = %d, want 5", e.cursorX)
	}
}

func TestNewlineSplitUndo(t *testing.T) {
	e := newTestEditor(t, "    hello world")
	setCursor(e, 0, 10)
	e.InsertNewline()
	wantLines(t, e, "    hello ", "    world")
	if e.cursorY != 1 || e.cursorX != 4 {
		t.Fatalf("cursor = (%d,%d), want (1,4)", e.cursorY, e.cursorX)
	}

	e.Undo()
	wantLines(t, e, "    hello world")
	e.Redo()
	wantLines(t, e, "    hello ", "    world")
}

func TestNewlineAtColumnZeroUndo(t *testing.T) {
	e := newTestEditor(t, "abc")
	setCursor(e, 0, 0)
	e.InsertNewline()
	wantLines(t, e, "", "abc")
	if e.cursorY != 1 || e.cursorX != 0 {
		t.Fatalf("cursor = (%d,%d)", e.cursorY, e.cursorX)
	}
	e.Undo()
	wantLines(t, e, "abc")
}

func TestTabIndentPreservedAcrossSplit(t *testing.T) {
	e := newTestEditor(t, "\tindented text")
	setCursor(e, 0, 10)
	e.InsertNewline()
	if got := string(e.rows[1].chars); got[0] != '\t' {
		t.Fatalf("tab indent not carried: %q", got)
	}
	e.Undo()
	wantLines(t, e, "\tindented text")
}

func TestDeleteWordBackward(t *testing.T) {
	e := newTestEditor(t, "foo bar_baz qux")
	setCursor(e, 0, 11)
	e.DeleteWordBackward()
	wantLines(t, e, "foo  qux")
	if e.cursorX != 4 {
		t.Fatalf("cursor col = %d, want 4", e.cursorX)
	}
}

func TestDeleteWordBackwardSkipsSeparators(t *testing.T) {
	e := newTestEditor(t, "foo();  ")
	setCursor(e, 0, 8)
	e.DeleteWordBackward()
	wantLines(t, e, "")
	if e.cursorX != 0 {
		t.Fatalf("cursor col = %d, want 0", e.cursorX)
	}
}

func TestDeleteWordForward(t *testing.T) {
	e := newTestEditor(t, "foo bar baz")
	setCursor(e, 0, 4)
	e.DeleteWordForward()
	wantLines(t, e, "foo baz")
	if e.cursorX != 4 {
		t.Fatalf("cursor col = %d, want 4", e.cursorX)
	}
}

func TestDeleteWordUndo(t *testing.T) {
	e := newTestEditor(t, "alpha beta")
	setCursor(e, 0, 10)
	e.DeleteWordBackward()
	wantLines(t, e, "alpha ")
	e.Undo()
	wantLines(t, e, "alpha beta")
}

func TestMoveWordNavigation(t *testing.T) {
	e := newTestEditor(t, "foo  bar_baz;qux")
	setCursor(e, 0, 0)
	e.MoveWordRight()
	if e.cursorX != 5 {
		t.Fatalf("word right = %d, want 5", e.cursorX)
	}
	e.MoveWordRight()
	if e.cursorX != 13 {
		t.Fatalf("second word right = %d, want 13", e.cursorX)
	}
	e.MoveWordLeft()
	if e.cursorX != 5 {
		t.Fatalf("word left = %d, want 5", e.cursorX)
	}
}

func TestArrowMovementClampsColumn(t *testing.T) {
	e := newTestEditor(t, "long line", "ab")
	setCursor(e, 0, 8)
	e.MoveCursor(terminal.KeyArrowDown)
	if e.cursorY != 1 || e.cursorX != 2 {
		t.Fatalf("cursor = (%d,%d), want (1,2)", e.cursorY, e.cursorX)
	}
}

func TestArrowLeftWrapsToPreviousLine(t *testing.T) {
	e := newTestEditor(t, "abc", "def")
	setCursor(e, 1, 0)
	e.MoveCursor(terminal.KeyArrowLeft)
	if e.cursorY != 0 || e.cursorX != 3 {
		t.Fatalf("cursor = (%d,%d), want (0,3)", e.cursorY, e.cursorX)
	}
}

func TestTypingReplacesSelection(t *testing.T) {
	e := newTestEditor(t, "hello world")
	setCursor(e, 0, 0)
	e.StartSelection()
	setCursor(e, 0, 6)
	e.ExtendSelection()
	e.InsertChar('X')
	wantLines(t, e, "Xworld")
	if e.cursorX != 1 {
		t.Fatalf("cursor col = %d, want 1", e.cursorX)
	}
}
