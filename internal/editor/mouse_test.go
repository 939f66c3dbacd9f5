package editor

import (
	"testing"

	"github.com/castlight/quill/internal/terminal"
)

func press(col, row int) terminal.MouseEvent {
	return terminal.MouseEvent{ButtonBase: terminal.MouseButtonLeft, Column: col, Row: row}
}

func TestClickPlacesCursor(t *testing.T) {
	e := newTestEditor(t, "hello world", "second")
	// Terminal coordinates are 1-indexed; the gutter is 2 wide.
	e.HandleMouse(press(e.gutterWidth+4, 2))
	if e.cursorY != 1 || e.cursorX != 3 {
		t.Fatalf("cursor = (%d,%d), want (1,3)", e.cursorY, e.cursorX)
	}
}

func TestClickClampsToLineEnd(t *testing.T) {
	e := newTestEditor(t, "ab")
	e.HandleMouse(press(40, 1))
	if e.cursorX != 2 {
		t.Fatalf("cursor col = %d, want clamp to 2", e.cursorX)
	}
}

func TestClickOnTabLandsOnTabColumn(t *testing.T) {
	e := newTestEditor(t, "\tword")
	// Click in the middle of the tab span.
	e.HandleMouse(press(e.gutterWidth+4, 1))
	if e.cursorX != 0 {
		t.Fatalf("cursor col = %d, want 0 (the tab)", e.cursorX)
	}
}

func TestDoubleClickSelectsWord(t *testing.T) {
	e := newTestEditor(t, "foo bar baz")
	e.HandleMouse(press(e.gutterWidth+6, 1))
	e.HandleMouse(press(e.gutterWidth+6, 1))
	if !e.sel.Active || e.sel.Mode != SelectWord {
		t.Fatalf("double click did not select word: %+v", e.sel)
	}
	start, end := e.NormalizedSelection()
	if start.Col != 4 || end.Col != 7 {
		t.Fatalf("word = %d..%d, want 4..7", start.Col, end.Col)
	}
}

func TestTripleClickSelectsLine(t *testing.T) {
	e := newTestEditor(t, "foo bar")
	for i := 0; i < 3; i++ {
		e.HandleMouse(press(e.gutterWidth+2, 1))
	}
	if e.sel.Mode != SelectLine {
		t.Fatalf("triple click mode = %v, want line", e.sel.Mode)
	}
}

func TestDragExtendsSelection(t *testing.T) {
	e := newTestEditor(t, "hello world")
	e.HandleMouse(press(e.gutterWidth+1, 1))
	drag := terminal.MouseEvent{
		ButtonBase: terminal.MouseButtonLeft,
		Column:     e.gutterWidth + 8,
		Row:        1,
		Motion:     true,
	}
	e.HandleMouse(drag)
	if !e.sel.Active {
		t.Fatalf("drag did not keep selection active")
	}
	start, end := e.NormalizedSelection()
	if start.Col != 0 || end.Col != 7 {
		t.Fatalf("selection = %d..%d, want 0..7", start.Col, end.Col)
	}
}

func TestCtrlClickTogglesCursor(t *testing.T) {
	e := newTestEditor(t, "abc", "def")
	ev := press(e.gutterWidth+2, 2)
	ev.Modifiers = terminal.MouseModCtrl
	e.HandleMouse(ev)
	if len(e.Cursors()) != 1 {
		t.Fatalf("ctrl-click did not add a cursor")
	}
	e.HandleMouse(ev)
	if len(e.Cursors()) != 0 {
		t.Fatalf("second ctrl-click did not remove the cursor")
	}
}

func TestGutterClickIgnored(t *testing.T) {
	e := newTestEditor(t, "abc")
	setCursor(e, 0, 2)
	e.HandleMouse(press(1, 1))
	if e.cursorX != 2 {
		t.Fatalf("gutter click moved the cursor")
	}
}
