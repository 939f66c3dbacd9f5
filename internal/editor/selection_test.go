package editor

import (
	"testing"
	"time"
)

func TestSelectionNormalize(t *testing.T) {
	e := newTestEditor(t, "abc", "def")
	setCursor(e, 1, 2)
	e.StartSelection()
	setCursor(e, 0, 1)
	e.ExtendSelection()
	start, end := e.NormalizedSelection()
	if start != (Position{Row: 0, Col: 1}) || end != (Position{Row: 1, Col: 2}) {
		t.Fatalf("normalized = %v..%v", start, end)
	}
}

func TestSelectionContains(t *testing.T) {
	e := newTestEditor(t, "abcdef")
	setCursor(e, 0, 1)
	e.StartSelection()
	setCursor(e, 0, 4)
	e.ExtendSelection()
	for col, want := range map[int]bool{0: false, 1: true, 3: true, 4: false} {
		if got := e.SelectionContains(0, col); got != want {
			t.Fatalf("contains(0,%d) = %v, want %v", col, got, want)
		}
	}
}

func TestEmptySelectionExtractsNothing(t *testing.T) {
	e := newTestEditor(t, "abc")
	setCursor(e, 0, 1)
	e.StartSelection()
	e.ExtendSelection()
	if got := e.SelectedText(); got != "" {
		t.Fatalf("anchor==cursor extracted %q, want empty", got)
	}
	if e.SelectionContains(0, 1) {
		t.Fatalf("empty selection contains its anchor")
	}
}

func TestSelectedTextMultiRow(t *testing.T) {
	e := newTestEditor(t, "abc", "def", "ghi")
	setCursor(e, 0, 1)
	e.StartSelection()
	setCursor(e, 2, 2)
	e.ExtendSelection()
	if got := e.SelectedText(); got != "bc\ndef\ngh" {
		t.Fatalf("selected = %q", got)
	}
}

func TestSelectWordAndLine(t *testing.T) {
	e := newTestEditor(t, "foo bar_baz;qux")
	e.SelectWordAt(0, 6)
	start, end := e.NormalizedSelection()
	if start.Col != 4 || end.Col != 11 {
		t.Fatalf("word selection = %d..%d, want 4..11", start.Col, end.Col)
	}

	e.SelectLineAt(0)
	start, end = e.NormalizedSelection()
	if start.Col != 0 || end.Col != e.rows[0].Len() {
		t.Fatalf("line selection = %d..%d", start.Col, end.Col)
	}
	if e.sel.Mode != SelectLine {
		t.Fatalf("mode = %v, want line", e.sel.Mode)
	}
}

func TestSelectAllMovesCursor(t *testing.T) {
	e := newTestEditor(t, "ab", "cd")
	e.SelectAll()
	start, end := e.NormalizedSelection()
	if start != (Position{}) || end != (Position{Row: 1, Col: 2}) {
		t.Fatalf("select all = %v..%v", start, end)
	}
	if e.cursorY != 1 || e.cursorX != 2 {
		t.Fatalf("cursor = (%d,%d), want end of buffer", e.cursorY, e.cursorX)
	}
}

func TestDeleteSelectionCollapsesRows(t *testing.T) {
	e := newTestEditor(t, "abc", "def", "ghi")
	setCursor(e, 0, 1)
	e.StartSelection()
	setCursor(e, 2, 2)
	e.ExtendSelection()
	e.DeleteSelection()
	wantLines(t, e, "ai")
	if e.cursorY != 0 || e.cursorX != 1 {
		t.Fatalf("cursor = (%d,%d), want (0,1)", e.cursorY, e.cursorX)
	}
	if e.sel.Active {
		t.Fatalf("selection still active after delete")
	}
}

func TestDeleteSelectionUndo(t *testing.T) {
	e := newTestEditor(t, "  abc", "  def")
	setCursor(e, 0, 3)
	e.StartSelection()
	setCursor(e, 1, 4)
	e.ExtendSelection()
	e.DeleteSelection()
	wantLines(t, e, "  af")

	e.Undo()
	wantLines(t, e, "  abc", "  def")
	if e.cursorY != 0 || e.cursorX != 3 {
		t.Fatalf("cursor after undo = (%d,%d), want (0,3)", e.cursorY, e.cursorX)
	}

	e.Redo()
	wantLines(t, e, "  af")
}

func TestMultiClickCycle(t *testing.T) {
	e := newTestEditor(t, "word here")
	e.detectMultiClick(0, 2)
	if e.sel.ClickCount != 1 {
		t.Fatalf("first click count = %d", e.sel.ClickCount)
	}
	e.detectMultiClick(0, 3) // within 2 columns, immediate
	if e.sel.ClickCount != 2 {
		t.Fatalf("second click count = %d", e.sel.ClickCount)
	}
	e.detectMultiClick(0, 2)
	if e.sel.ClickCount != 3 {
		t.Fatalf("third click count = %d", e.sel.ClickCount)
	}
	// The cycle wraps back to one.
	e.detectMultiClick(0, 2)
	if e.sel.ClickCount != 1 {
		t.Fatalf("fourth click count = %d, want 1", e.sel.ClickCount)
	}
}

func TestMultiClickResets(t *testing.T) {
	e := newTestEditor(t, "word here")
	e.detectMultiClick(0, 2)
	e.detectMultiClick(0, 3)
	if e.sel.ClickCount != 2 {
		t.Fatalf("count = %d", e.sel.ClickCount)
	}

	// Too far away resets.
	e.detectMultiClick(0, 8)
	if e.sel.ClickCount != 1 {
		t.Fatalf("distant click count = %d, want 1", e.sel.ClickCount)
	}

	// Too slow resets.
	e.detectMultiClick(0, 8)
	e.sel.lastClickTime = time.Now().Add(-time.Second)
	e.detectMultiClick(0, 8)
	if e.sel.ClickCount != 1 {
		t.Fatalf("slow click count = %d, want 1", e.sel.ClickCount)
	}
}

func TestClearSelectionKeepsClickState(t *testing.T) {
	e := newTestEditor(t, "abc")
	e.detectMultiClick(0, 1)
	e.StartSelection()
	e.ClearSelection()
	if e.sel.ClickCount != 1 {
		t.Fatalf("click count lost on clear")
	}
	e.detectMultiClick(0, 1)
	if e.sel.ClickCount != 2 {
		t.Fatalf("click count = %d after clear, want 2", e.sel.ClickCount)
	}
}
