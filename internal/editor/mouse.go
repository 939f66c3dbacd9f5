package editor

import (
	"github.com/castlight/quill/internal/terminal"
)

// HandleMouse maps one SGR mouse report onto editor actions: menu
// clicks, tactile wheel scrolling, cursor placement, multi-click
// selection, drag extension, and modifier-click cursor drops.
func (e *Editor) HandleMouse(m terminal.MouseEvent) {
	screenX := m.Column - 1
	screenY := m.Row - 1

	if e.menuBarVisible {
		if e.menuOpen >= 0 {
			e.handleMenuMouse(m, screenX, screenY)
			return
		}
		if screenY == 0 && m.ButtonBase == terminal.MouseButtonLeft && !m.Motion && !m.Release {
			e.menuBarClick(screenX)
			return
		}
		screenY--
	}

	if m.ButtonBase == terminal.MouseScrollUp || m.ButtonBase == terminal.MouseScrollDown {
		e.updateScrollSpeed()
		arrow := terminal.KeyArrowDown
		if m.ButtonBase == terminal.MouseScrollUp {
			arrow = terminal.KeyArrowUp
		}
		for i := 0; i < e.scrollSpeed; i++ {
			e.MoveCursor(arrow)
		}
		return
	}

	if m.ButtonBase != terminal.MouseButtonLeft {
		return
	}

	// A click on the message bar copies the message.
	if screenY == e.screenRows+1 && !m.Motion {
		if !m.Release && e.StatusMessage() != "" {
			e.clipboardStore(e.StatusMessage())
			e.SetStatus("Message copied to clipboard")
		}
		return
	}

	if screenX < e.gutterWidth || screenY < 0 || screenY >= e.screenRows {
		return
	}

	fileRow, wrapSegment, ok := e.visualToLogical(screenY + e.rowOffset)
	if !ok {
		fileRow = max(len(e.rows)-1, 0)
		wrapSegment = 0
	}
	if fileRow >= len(e.rows) {
		fileRow = max(len(e.rows)-1, 0)
	}

	renderX := screenX - e.gutterWidth
	if e.softWrap && fileRow < len(e.rows) {
		renderX += e.rows[fileRow].wrapSegmentStart(wrapSegment)
	} else {
		renderX += e.colOffset
	}

	cursorX := 0
	if fileRow < len(e.rows) {
		cursorX = e.rows[fileRow].RenderToCursor(renderX, e.tabStop)
		if n := e.rows[fileRow].Len(); cursorX > n {
			cursorX = n
		}
	}

	// Ctrl or Alt click drops a secondary cursor in place.
	if !m.Motion && !m.Release &&
		m.Modifiers&(terminal.MouseModCtrl|terminal.MouseModAlt) != 0 {
		if e.CursorAt(fileRow, cursorX) {
			e.removeCursorAt(fileRow, cursorX)
		} else if e.AddCursor(fileRow, cursorX) {
			e.SetStatus("Added cursor (total: %d)", len(e.cursors)+1)
		}
		e.followPrimary = false
		return
	}

	if m.Release {
		e.dragging = false
		return
	}

	if m.Motion {
		if e.dragging {
			e.cursorY = fileRow
			e.cursorX = cursorX
			e.ExtendSelection()
		}
		return
	}

	// Plain press: place cursor, count clicks, select word/line on
	// double/triple.
	e.detectMultiClick(fileRow, cursorX)
	e.cursorY = fileRow
	e.cursorX = cursorX
	e.dragging = true

	switch e.sel.ClickCount {
	case 2:
		e.SelectWordAt(fileRow, cursorX)
	case 3:
		e.SelectLineAt(fileRow)
	default:
		e.ClearSelection()
		e.StartSelection()
	}
}

func (e *Editor) removeCursorAt(line, col int) {
	for i, c := range e.cursors {
		if c.Row == line && c.Col == col {
			e.cursors = append(e.cursors[:i], e.cursors[i+1:]...)
			e.SetStatus("Removed cursor (total: %d)", len(e.cursors)+1)
			return
		}
	}
}
