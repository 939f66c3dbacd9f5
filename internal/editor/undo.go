package editor

import "time"

type undoOp int

const (
	undoCharInsert undoOp = iota + 1
	undoCharDelete
	undoCharDeleteFwd
	undoRowInsert
	undoRowDelete
	undoRowSplit
	undoSelectionDelete
	undoPaste
)

const (
	undoMaxEntries   = 10000
	undoGroupTimeout = 500 * time.Millisecond
)

// undoEntry is one logged edit. rowIdx/charPos locate the edit; ch is
// the datum for char ops; rowContent restores deleted rows; end and
// multiLine cover selection deletes and pastes. For newline entries
// indent records the auto-indent applied so undo removes exactly it,
// and for merges charPos records the join column so undo re-splits
// there instead of reconstructing heuristically.
type undoEntry struct {
	group      int
	op         undoOp
	cursor     Position
	rowIdx     int
	charPos    int
	ch         byte
	rowContent []byte
	end        Position
	multiLine  string
	indent     int
}

// undoStartGroup forces the next entries into a fresh group. Multi-
// cursor batches call this once so the whole batch undoes atomically.
func (e *Editor) undoStartGroup() {
	if e.undoSuspend {
		return
	}
	e.undoGroupID++
	e.undoPosition = e.undoGroupID
	e.lastEditTime = time.Now()
}

// undoMaybeStartGroup opens a new group after the idle window, or
// immediately for ops that always stand alone.
func (e *Editor) undoMaybeStartGroup(force bool) {
	if force {
		e.undoStartGroup()
		return
	}
	now := time.Now()
	if now.Sub(e.lastEditTime) > undoGroupTimeout || e.undoGroupID == 0 {
		e.undoGroupID++
		e.undoPosition = e.undoGroupID
	}
	e.lastEditTime = now
}

// undoLog appends one entry, truncating any redo tail first. Returns
// the entry so callers can attach computed fields (indent) after the
// edit lands, or nil while logging is suspended.
func (e *Editor) undoLog(op undoOp, cursor Position, rowIdx, charPos int, ch byte, end Position, multiLine string) *undoEntry {
	if e.undoSuspend {
		return nil
	}

	force := op == undoRowInsert || op == undoRowDelete || op == undoRowSplit ||
		op == undoSelectionDelete || op == undoPaste
	e.undoClearRedo()
	e.undoMaybeStartGroup(force)

	if len(e.undoStack) >= undoMaxEntries {
		e.undoTrimOldest()
	}

	entry := undoEntry{
		group:     e.undoGroupID,
		op:        op,
		cursor:    cursor,
		rowIdx:    rowIdx,
		charPos:   charPos,
		ch:        ch,
		end:       end,
		multiLine: multiLine,
	}
	if (op == undoRowDelete || op == undoRowInsert) && rowIdx >= 0 && rowIdx < len(e.rows) {
		entry.rowContent = append([]byte(nil), e.rows[rowIdx].chars...)
	}
	e.undoStack = append(e.undoStack, entry)
	e.undoPosition = e.undoGroupID
	return &e.undoStack[len(e.undoStack)-1]
}

// undoClearRedo discards entries above the redo position after a fresh
// edit, the classic redo truncation.
func (e *Editor) undoClearRedo() {
	if e.undoPosition >= e.undoGroupID {
		return
	}
	n := len(e.undoStack)
	for n > 0 && e.undoStack[n-1].group > e.undoPosition {
		n--
	}
	e.undoStack = e.undoStack[:n]
	e.undoGroupID = e.undoPosition
}

// undoTrimOldest drops the oldest quarter of the journal, extended to
// the end of the group that straddles the cut so no group is split.
func (e *Editor) undoTrimOldest() {
	cut := len(e.undoStack) / 4
	if cut == 0 {
		return
	}
	boundary := e.undoStack[cut-1].group
	for cut < len(e.undoStack) && e.undoStack[cut].group == boundary {
		cut++
	}
	if cut >= len(e.undoStack) {
		return
	}
	e.undoStack = append(e.undoStack[:0], e.undoStack[cut:]...)
}

// Undo peels the top group, applying the inverse of each entry in
// reverse order.
func (e *Editor) Undo() {
	if e.undoPosition <= 0 || len(e.undoStack) == 0 {
		e.SetStatus("Nothing to undo")
		return
	}

	e.undoSuspend = true
	target := e.undoPosition
	opsUndone := 0
	restore := Position{Row: -1, Col: -1}

	for i := len(e.undoStack) - 1; i >= 0; i-- {
		entry := &e.undoStack[i]
		if entry.group != target {
			continue
		}
		if restore.Row == -1 {
			restore = entry.cursor
		}
		e.applyInverse(entry)
		opsUndone++
	}

	if restore.Row >= 0 {
		e.cursorY = restore.Row
		e.cursorX = restore.Col
		e.clampToBuffer()
	}

	e.undoPosition--
	e.undoSuspend = false
	if opsUndone == 1 {
		e.SetStatus("Undo (1 operation)")
	} else {
		e.SetStatus("Undo (%d operations)", opsUndone)
	}
}

// Redo replays the next group forward.
func (e *Editor) Redo() {
	if e.undoPosition >= e.undoGroupID || len(e.undoStack) == 0 {
		e.SetStatus("Nothing to redo")
		return
	}

	e.undoPosition++
	e.undoSuspend = true
	target := e.undoPosition
	opsRedone := 0
	last := Position{Row: -1, Col: -1}

	for i := range e.undoStack {
		entry := &e.undoStack[i]
		if entry.group != target {
			continue
		}
		last = e.applyForward(entry)
		opsRedone++
	}

	if last.Row >= 0 {
		e.cursorY = last.Row
		e.cursorX = last.Col
		e.clampToBuffer()
	}

	e.undoSuspend = false
	if opsRedone == 1 {
		e.SetStatus("Redo (1 operation)")
	} else {
		e.SetStatus("Redo (%d operations)", opsRedone)
	}
}

func (e *Editor) clampToBuffer() {
	if e.cursorY >= len(e.rows) {
		e.cursorY = max(len(e.rows)-1, 0)
	}
	if e.cursorY < len(e.rows) {
		if n := e.rows[e.cursorY].Len(); e.cursorX > n {
			e.cursorX = n
		}
	} else {
		e.cursorX = 0
	}
}

// applyInverse reverses one entry.
func (e *Editor) applyInverse(entry *undoEntry) {
	switch entry.op {
	case undoCharInsert:
		if entry.rowIdx >= 0 && entry.rowIdx < len(e.rows) && entry.charPos < e.rows[entry.rowIdx].Len() {
			e.rowDeleteChar(entry.rowIdx, entry.charPos)
		}

	case undoCharDelete, undoCharDeleteFwd:
		if entry.rowIdx >= 0 && entry.rowIdx < len(e.rows) {
			e.rowInsertChar(entry.rowIdx, entry.charPos, entry.ch)
		}

	case undoRowInsert:
		// A newline at column zero: indent was prepended to the row
		// below the inserted empty row.
		next := entry.rowIdx + 1
		if entry.indent > 0 && next < len(e.rows) {
			e.rowDeleteRange(next, 0, entry.indent)
		}
		if entry.rowIdx >= 0 && entry.rowIdx < len(e.rows) {
			e.DeleteRow(entry.rowIdx)
		}

	case undoRowDelete:
		// A line merge: split the joined row back at the recorded
		// column.
		prev := entry.rowIdx - 1
		if prev >= 0 && prev < len(e.rows) {
			row := e.rows[prev]
			col := entry.charPos
			if col > row.Len() {
				col = row.Len()
			}
			tail := append([]byte(nil), row.chars[col:]...)
			e.setRowChars(prev, append([]byte(nil), row.chars[:col]...))
			e.InsertRow(entry.rowIdx, tail)
		}

	case undoRowSplit:
		if entry.rowIdx >= 0 && entry.rowIdx < len(e.rows)-1 {
			next := entry.rowIdx + 1
			if entry.indent > 0 {
				e.rowDeleteRange(next, 0, min(entry.indent, e.rows[next].Len()))
			}
			e.rowAppend(entry.rowIdx, e.rows[next].chars)
			e.DeleteRow(next)
		}

	case undoSelectionDelete:
		if entry.multiLine != "" {
			e.cursorY = entry.cursor.Row
			e.cursorX = entry.cursor.Col
			e.insertTextLiteral(entry.multiLine)
		}

	case undoPaste:
		if entry.multiLine != "" {
			e.sel.Active = true
			e.sel.Anchor = entry.cursor
			e.sel.Cursor = entry.end
			e.DeleteSelection()
		}
	}
}

// applyForward re-applies one entry, returning the cursor to land on.
func (e *Editor) applyForward(entry *undoEntry) Position {
	after := entry.cursor
	switch entry.op {
	case undoCharInsert:
		if entry.rowIdx >= 0 && entry.rowIdx <= len(e.rows) {
			e.insertCharAt(entry.rowIdx, entry.charPos, entry.ch)
			after = Position{Row: entry.rowIdx, Col: entry.charPos + 1}
		}

	case undoCharDelete, undoCharDeleteFwd:
		if entry.rowIdx >= 0 && entry.rowIdx < len(e.rows) && entry.charPos < e.rows[entry.rowIdx].Len() {
			e.rowDeleteChar(entry.rowIdx, entry.charPos)
		}

	case undoRowInsert:
		e.insertNewlineAt(entry.rowIdx, 0)
		after = Position{Row: entry.rowIdx + 1, Col: entry.indent}

	case undoRowDelete:
		if entry.rowIdx > 0 && entry.rowIdx < len(e.rows) {
			e.rowAppend(entry.rowIdx-1, e.rows[entry.rowIdx].chars)
			e.DeleteRow(entry.rowIdx)
			after = Position{Row: entry.rowIdx - 1, Col: entry.charPos}
		}

	case undoRowSplit:
		if entry.rowIdx >= 0 && entry.rowIdx < len(e.rows) {
			e.insertNewlineAt(entry.rowIdx, entry.charPos)
			after = Position{Row: entry.rowIdx + 1, Col: entry.indent}
		}

	case undoSelectionDelete:
		if entry.multiLine != "" {
			e.sel.Active = true
			e.sel.Anchor = entry.cursor
			e.sel.Cursor = entry.end
			e.DeleteSelection()
			after = entry.cursor
		}

	case undoPaste:
		if entry.multiLine != "" {
			e.cursorY = entry.cursor.Row
			e.cursorX = entry.cursor.Col
			e.insertTextLiteral(entry.multiLine)
			after = Position{Row: e.cursorY, Col: e.cursorX}
		}
	}
	return after
}

// insertTextLiteral splices multi-line text at the cursor exactly as
// given. Auto-indent and brace adjustment stay out of it so replayed
// payloads restore byte-for-byte.
func (e *Editor) insertTextLiteral(text string) {
	if text == "" {
		return
	}
	if e.cursorY == len(e.rows) {
		e.InsertRow(len(e.rows), nil)
	}
	row := e.rows[e.cursorY]
	col := min(e.cursorX, row.Len())
	head := append([]byte(nil), row.chars[:col]...)
	tail := append([]byte(nil), row.chars[col:]...)

	lines := splitLines(text)
	if len(lines) == 1 {
		e.setRowChars(e.cursorY, append(append(head, lines[0]...), tail...))
		e.cursorX = col + len(lines[0])
		return
	}

	e.setRowChars(e.cursorY, append(head, lines[0]...))
	at := e.cursorY + 1
	for i := 1; i < len(lines)-1; i++ {
		e.InsertRow(at, lines[i])
		at++
	}
	last := lines[len(lines)-1]
	e.InsertRow(at, append(append([]byte(nil), last...), tail...))
	e.cursorY = at
	e.cursorX = len(last)
}

func splitLines(text string) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, []byte(text[start:i]))
			start = i + 1
		}
	}
	return append(lines, []byte(text[start:]))
}
