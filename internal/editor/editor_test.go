package editor

import (
	"testing"
	"time"

	"github.com/castlight/quill/internal/config"
	"github.com/castlight/quill/internal/terminal"
	"github.com/castlight/quill/internal/theme"
)

func newTestEditor(t *testing.T, lines ...string) *Editor {
	t.Helper()
	t.Setenv("QUILL_CONFIG_HOME", t.TempDir())
	e := New(config.Default(), config.DefaultLanguages(), theme.NewRegistry("monochrome-dark"))
	e.systemBridge = false
	e.menuBarVisible = false
	e.SetScreenSize(26, 80)
	for _, line := range lines {
		e.InsertRow(len(e.rows), []byte(line))
	}
	e.dirty = 0
	return e
}

// newCTestEditor selects the built-in C language so comment and
// keyword behavior is exercised.
func newCTestEditor(t *testing.T, lines ...string) *Editor {
	t.Helper()
	e := newTestEditor(t, lines...)
	e.filename = "test.c"
	e.selectSyntax()
	return e
}

func bufferLines(e *Editor) []string {
	out := make([]string, len(e.rows))
	for i, row := range e.rows {
		out[i] = string(row.chars)
	}
	return out
}

func wantLines(t *testing.T, e *Editor, want ...string) {
	t.Helper()
	got := bufferLines(e)
	if len(got) != len(want) {
		t.Fatalf("buffer = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %q, want %q (buffer %q)", i, got[i], want[i], got)
		}
	}
}

func patternFixture(regex, class string) config.Pattern {
	return config.Pattern{Regex: regex, Class: class}
}

func setCursor(e *Editor, row, col int) {
	e.cursorY = row
	e.cursorX = col
}

// forceNewUndoGroup ages the last edit past the grouping window.
func forceNewUndoGroup(e *Editor) {
	e.lastEditTime = time.Now().Add(-time.Second)
}

func TestProcessKeyInsertAndQuit(t *testing.T) {
	e := newTestEditor(t, "")
	e.ProcessKey(terminal.Key('h'))
	e.ProcessKey(terminal.Key('i'))
	wantLines(t, e, "hi")
	if !e.Dirty() {
		t.Fatalf("buffer should be dirty after typing")
	}

	// Dirty quits need three consecutive presses.
	if e.ProcessKey(terminal.Ctrl('q')) {
		t.Fatalf("first Ctrl-Q quit a dirty buffer")
	}
	if e.ProcessKey(terminal.Ctrl('q')) {
		t.Fatalf("second Ctrl-Q quit a dirty buffer")
	}
	if !e.ProcessKey(terminal.Ctrl('q')) {
		t.Fatalf("third Ctrl-Q should quit")
	}
}

func TestQuitCounterResetsOnOtherKey(t *testing.T) {
	e := newTestEditor(t, "")
	e.ProcessKey(terminal.Key('x'))
	e.ProcessKey(terminal.Ctrl('q'))
	e.ProcessKey(terminal.Ctrl('q'))
	e.ProcessKey(terminal.KeyArrowLeft) // resets the countdown
	if e.ProcessKey(terminal.Ctrl('q')) {
		t.Fatalf("quit counter should have reset")
	}
}

func TestSmartHomeToggles(t *testing.T) {
	e := newTestEditor(t, "    text")
	setCursor(e, 0, 6)
	e.ProcessKey(terminal.KeyHome)
	if e.cursorX != 4 {
		t.Fatalf("first home col = %d, want 4", e.cursorX)
	}
	e.ProcessKey(terminal.KeyHome)
	if e.cursorX != 0 {
		t.Fatalf("second home col = %d, want 0", e.cursorX)
	}
	e.ProcessKey(terminal.KeyHome)
	if e.cursorX != 4 {
		t.Fatalf("third home col = %d, want 4", e.cursorX)
	}
}

func TestStatusMessageFades(t *testing.T) {
	e := newTestEditor(t, "")
	e.SetStatus("hello")
	if e.StatusMessage() != "hello" {
		t.Fatalf("message = %q", e.StatusMessage())
	}
	e.statusTime = time.Now().Add(-6 * time.Second)
	if e.StatusMessage() != "" {
		t.Fatalf("message should fade after the timeout")
	}
}
