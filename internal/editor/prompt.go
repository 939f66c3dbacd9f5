package editor

import (
	"errors"
	"strconv"

	"github.com/castlight/quill/internal/terminal"
)

// Prompt reads a line on the message bar, refreshing the screen per
// keystroke. The callback, when set, observes every keystroke for
// incremental behavior (search). ESC cancels and returns "".
func (e *Editor) Prompt(format string, callback func(input string, key terminal.Key)) string {
	if e.input == nil {
		return ""
	}
	var buf []byte
	for {
		e.SetStatus(format, string(buf))
		e.Refresh()

		key, err := e.input.ReadKey()
		if err != nil {
			if errors.Is(err, terminal.ErrTimeout) {
				if callback != nil {
					callback(string(buf), terminal.KeyNone)
				}
				continue
			}
			return ""
		}

		switch key {
		case terminal.KeyBackspace, terminal.Ctrl('h'), terminal.KeyDelete:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case terminal.KeyEscape:
			e.SetStatus("")
			if callback != nil {
				callback(string(buf), key)
			}
			return ""
		case terminal.Key('\r'):
			if len(buf) > 0 {
				e.SetStatus("")
				if callback != nil {
					callback(string(buf), key)
				}
				return string(buf)
			}
		default:
			if key >= 32 && key < 127 {
				buf = append(buf, byte(key))
			}
		}
		if callback != nil {
			callback(string(buf), key)
		}
	}
}

// findState carries the incremental-search position between keystrokes.
type findState struct {
	resultIndex int
	direction   int
	lastQuery   string
	savedLine   int
	savedHL     []byte
}

// restoreFindHighlight puts back the row highlight painted over by the
// transient match class.
func (e *Editor) restoreFindHighlight(st *findState) {
	if st.savedHL != nil && st.savedLine < len(e.rows) {
		copy(e.rows[st.savedLine].highlight, st.savedHL)
	}
	st.savedHL = nil
}

// findCallback navigates matches as the query changes: arrows step with
// wrap-around, typing re-runs the search.
func (e *Editor) findCallback(st *findState, query string, key terminal.Key) {
	if key == terminal.KeyNone {
		return
	}
	e.restoreFindHighlight(st)

	if key == terminal.Key('\r') || key == terminal.KeyEscape {
		st.resultIndex = -1
		st.direction = 1
		st.lastQuery = ""
		return
	}

	switch key {
	case terminal.KeyArrowRight, terminal.KeyArrowDown:
		st.direction = 1
	case terminal.KeyArrowLeft, terminal.KeyArrowUp:
		st.direction = -1
	default:
		st.resultIndex = -1
		st.direction = 1
	}

	if st.lastQuery != query {
		st.lastQuery = query
		e.SimpleSearch(query)
		st.resultIndex = -1
	}
	if len(e.searchResults) == 0 {
		return
	}

	if st.resultIndex == -1 {
		if st.direction == 1 {
			st.resultIndex = 0
		} else {
			st.resultIndex = len(e.searchResults) - 1
		}
	} else {
		st.resultIndex += st.direction
		if st.resultIndex < 0 {
			st.resultIndex = len(e.searchResults) - 1
		} else if st.resultIndex >= len(e.searchResults) {
			st.resultIndex = 0
		}
	}

	result := e.searchResults[st.resultIndex]
	row := e.rows[result.Line]
	e.cursorY = result.Line
	e.cursorX = row.RenderToCursor(result.Offset, e.tabStop)
	// Force the scroll logic to bring the match into view.
	e.rowOffset = len(e.rows)

	e.renderX = result.Offset
	if e.renderX < e.colOffset {
		e.colOffset = e.renderX
	}
	if e.renderX >= e.colOffset+e.screenCols-e.gutterWidth {
		e.colOffset = e.renderX - e.screenCols + e.gutterWidth + 1
	}

	st.savedLine = result.Line
	st.savedHL = append([]byte(nil), row.highlight...)
	for i := result.Offset; i < result.Offset+result.Length && i < len(row.highlight); i++ {
		row.highlight[i] = hlMatch
	}
}

// Find runs the interactive search prompt. ESC restores the cursor and
// scroll position.
func (e *Editor) Find() {
	savedX, savedY := e.cursorX, e.cursorY
	savedCol, savedRow := e.colOffset, e.rowOffset

	st := &findState{resultIndex: -1, direction: 1}
	query := e.Prompt("Search: %s (Use ESC/Arrows/Enter)", func(input string, key terminal.Key) {
		e.findCallback(st, input, key)
	})
	e.restoreFindHighlight(st)

	if query == "" {
		e.cursorX, e.cursorY = savedX, savedY
		e.colOffset, e.rowOffset = savedCol, savedRow
	}
}

// JumpToLine prompts for a 1-based line number and scrolls it into view.
func (e *Editor) JumpToLine() {
	input := e.Prompt("Go to line: %s", nil)
	if input == "" {
		return
	}
	line, err := strconv.Atoi(input)
	if err != nil || line < 1 {
		e.SetStatus("Invalid line number")
		return
	}
	if line > len(e.rows) {
		line = len(e.rows)
	}
	if line < 1 {
		return
	}
	e.cursorY = line - 1
	e.cursorX = 0
	e.rowOffset = len(e.rows)
}
