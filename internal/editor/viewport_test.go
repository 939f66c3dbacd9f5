package editor

import (
	"strings"
	"testing"
	"time"

	"github.com/castlight/quill/internal/terminal"
)

// wideEditor turns off the gutter so the wrap width is the full screen.
func wideEditor(t *testing.T, lines ...string) *Editor {
	e := newTestEditor(t, lines...)
	e.showNumbers = false
	e.updateGutterWidth()
	e.centerScroll = false
	return e
}

func TestEdgeTriggeredScroll(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	e := wideEditor(t, lines...)
	// screenRows is 24 with the menu bar off.
	setCursor(e, 30, 0)
	e.Scroll()
	if e.rowOffset != 30-e.screenRows+1 {
		t.Fatalf("rowOffset = %d, want %d", e.rowOffset, 30-e.screenRows+1)
	}
	setCursor(e, 2, 0)
	e.Scroll()
	if e.rowOffset != 2 {
		t.Fatalf("rowOffset = %d, want 2", e.rowOffset)
	}
}

func TestCenteredScroll(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "line"
	}
	e := wideEditor(t, lines...)
	e.centerScroll = true
	setCursor(e, 50, 0)
	e.Scroll()
	if e.rowOffset != 50-e.screenRows/2 {
		t.Fatalf("rowOffset = %d, want %d", e.rowOffset, 50-e.screenRows/2)
	}
	// Clamped at the top.
	setCursor(e, 1, 0)
	e.Scroll()
	if e.rowOffset != 0 {
		t.Fatalf("rowOffset = %d, want 0", e.rowOffset)
	}
}

func TestHorizontalScrollWithoutWrap(t *testing.T) {
	e := wideEditor(t, strings.Repeat("x", 200))
	setCursor(e, 0, 150)
	e.Scroll()
	if e.renderX < e.colOffset || e.renderX >= e.colOffset+e.screenCols {
		t.Fatalf("render col %d outside viewport [%d,%d)", e.renderX, e.colOffset, e.colOffset+e.screenCols)
	}
	setCursor(e, 0, 0)
	e.Scroll()
	if e.colOffset != 0 {
		t.Fatalf("colOffset = %d, want 0", e.colOffset)
	}
}

func TestSoftWrapCursorMotionBetweenSegments(t *testing.T) {
	e := wideEditor(t, strings.Repeat("a", 200))
	e.softWrap = true
	e.recalculateWrapBreaks()

	row := e.rows[0]
	if len(row.wrapBreaks) != 2 || row.wrapBreaks[0] != 80 || row.wrapBreaks[1] != 160 {
		t.Fatalf("breaks = %v, want [80 160]", row.wrapBreaks)
	}

	// Render position 85 sits in segment 1; arrow-up lands at 5.
	setCursor(e, 0, 85)
	e.MoveCursor(terminal.KeyArrowUp)
	if e.cursorX != 5 {
		t.Fatalf("cursor col = %d, want 5", e.cursorX)
	}

	// And arrow-down returns to segment 1.
	e.MoveCursor(terminal.KeyArrowDown)
	if e.cursorX != 85 {
		t.Fatalf("cursor col = %d, want 85", e.cursorX)
	}
}

func TestVisualRowMath(t *testing.T) {
	e := wideEditor(t, strings.Repeat("b", 170), "short")
	e.softWrap = true
	e.recalculateWrapBreaks()

	if got := e.visualRowCount(0); got != 3 {
		t.Fatalf("visual rows = %d, want 3", got)
	}
	if got := e.visualRowsUpTo(0); got != 3 {
		t.Fatalf("visual rows up to 0 = %d, want 3", got)
	}

	logical, segment, ok := e.visualToLogical(2)
	if !ok || logical != 0 || segment != 2 {
		t.Fatalf("visual 2 -> (%d,%d,%v)", logical, segment, ok)
	}
	logical, segment, ok = e.visualToLogical(3)
	if !ok || logical != 1 || segment != 0 {
		t.Fatalf("visual 3 -> (%d,%d,%v)", logical, segment, ok)
	}
	if _, _, ok = e.visualToLogical(4); ok {
		t.Fatalf("visual 4 should be past the end")
	}
}

func TestTactileScrollAcceleration(t *testing.T) {
	e := newTestEditor(t, "a")
	e.scrollSpeed = 1

	// Ticks inside the accel window ramp up.
	e.lastScrollTime = time.Now().Add(-10 * time.Millisecond)
	e.updateScrollSpeed()
	if e.scrollSpeed != 2 {
		t.Fatalf("speed = %d, want 2", e.scrollSpeed)
	}

	// A gap past the reset window drops to one.
	e.lastScrollTime = time.Now().Add(-200 * time.Millisecond)
	e.updateScrollSpeed()
	if e.scrollSpeed != 1 {
		t.Fatalf("speed = %d, want 1", e.scrollSpeed)
	}

	// The multiplier saturates at the cap.
	for i := 0; i < 40; i++ {
		e.lastScrollTime = time.Now().Add(-10 * time.Millisecond)
		e.updateScrollSpeed()
	}
	if e.scrollSpeed != scrollSpeedMax {
		t.Fatalf("speed = %d, want %d", e.scrollSpeed, scrollSpeedMax)
	}

	// The middle band holds the current speed.
	e.scrollSpeed = 5
	e.lastScrollTime = time.Now().Add(-100 * time.Millisecond)
	e.updateScrollSpeed()
	if e.scrollSpeed != 5 {
		t.Fatalf("speed = %d, want 5 (held)", e.scrollSpeed)
	}
}

func TestWheelDispatchesSpeedSteps(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "x"
	}
	e := wideEditor(t, lines...)
	setCursor(e, 20, 0)
	e.scrollSpeed = 2
	e.lastScrollTime = time.Now().Add(-10 * time.Millisecond)
	e.HandleMouse(terminal.MouseEvent{ButtonBase: terminal.MouseScrollUp, Column: 1, Row: 1})
	// Speed ramps to 3 before dispatch, so three steps up.
	if e.cursorY != 17 {
		t.Fatalf("cursor row = %d, want 17", e.cursorY)
	}
}
