package editor

import (
	"github.com/castlight/quill/internal/terminal"
)

// MoveCursor applies one arrow key to the primary cursor. With soft
// wrap on, vertical movement steps between wrap segments before it
// crosses logical rows.
func (e *Editor) MoveCursor(key terminal.Key) {
	row := e.currentRow()

	switch key {
	case terminal.KeyArrowLeft:
		if e.cursorX != 0 {
			e.cursorX--
		} else if e.cursorY > 0 {
			e.cursorY--
			e.cursorX = e.rows[e.cursorY].Len()
		}
	case terminal.KeyArrowRight:
		if row != nil && e.cursorX < row.Len() {
			e.cursorX++
		} else if row != nil && e.cursorX == row.Len() {
			e.cursorY++
			e.cursorX = 0
		}
	case terminal.KeyArrowUp:
		if e.softWrap && e.cursorY < len(e.rows) {
			e.moveUpSoftWrap()
		} else if e.cursorY != 0 {
			e.cursorY--
		}
	case terminal.KeyArrowDown:
		if e.softWrap && e.cursorY < len(e.rows) {
			e.moveDownSoftWrap()
		} else if e.cursorY < len(e.rows) {
			e.cursorY++
		}
	}

	rowLen := 0
	if e.cursorY < len(e.rows) {
		rowLen = e.rows[e.cursorY].Len()
	}
	if e.cursorX > rowLen {
		e.cursorX = rowLen
	}
}

func (e *Editor) moveUpSoftWrap() {
	w := e.wrapWidth()
	if w <= 0 {
		return
	}
	cur := e.rows[e.cursorY]
	cur.calculateWrapBreaks(w)
	rx := cur.CursorToRender(e.cursorX, e.tabStop)
	seg := cur.wrapSegmentFor(rx)

	if seg > 0 {
		offset := rx - cur.wrapSegmentStart(seg)
		target := cur.wrapSegmentStart(seg-1) + offset
		if end := cur.wrapSegmentEnd(seg - 1); target > end {
			target = end
		}
		e.cursorX = cur.RenderToCursor(target, e.tabStop)
		return
	}
	if e.cursorY == 0 {
		return
	}
	e.cursorY--
	prev := e.rows[e.cursorY]
	prev.calculateWrapBreaks(w)
	last := len(prev.wrapBreaks)
	offset := rx - cur.wrapSegmentStart(0)
	target := prev.wrapSegmentStart(last) + offset
	if end := prev.wrapSegmentEnd(last); target > end {
		target = end
	}
	e.cursorX = prev.RenderToCursor(target, e.tabStop)
}

func (e *Editor) moveDownSoftWrap() {
	w := e.wrapWidth()
	if w <= 0 {
		return
	}
	cur := e.rows[e.cursorY]
	cur.calculateWrapBreaks(w)
	rx := cur.CursorToRender(e.cursorX, e.tabStop)
	seg := cur.wrapSegmentFor(rx)
	total := len(cur.wrapBreaks) + 1

	if seg < total-1 {
		offset := rx - cur.wrapSegmentStart(seg)
		target := cur.wrapSegmentStart(seg+1) + offset
		if end := cur.wrapSegmentEnd(seg + 1); target > end {
			target = end
		}
		e.cursorX = cur.RenderToCursor(target, e.tabStop)
		return
	}
	e.cursorY++
	if e.cursorY >= len(e.rows) {
		e.cursorX = 0
		return
	}
	next := e.rows[e.cursorY]
	next.calculateWrapBreaks(w)
	offset := rx - cur.wrapSegmentStart(seg)
	target := offset
	if end := next.wrapSegmentEnd(0); target > end {
		target = end
	}
	e.cursorX = next.RenderToCursor(target, e.tabStop)
}

// MoveWordLeft steps the primary cursor to the previous word start.
func (e *Editor) MoveWordLeft() {
	if e.cursorY >= len(e.rows) {
		return
	}
	if e.cursorX == 0 {
		if e.cursorY > 0 {
			e.cursorY--
			e.cursorX = e.rows[e.cursorY].Len()
		}
		return
	}
	chars := e.rows[e.cursorY].chars
	x := e.cursorX
	for x > 0 && !isWordChar(chars[x-1]) {
		x--
	}
	for x > 0 && isWordChar(chars[x-1]) {
		x--
	}
	e.cursorX = x
}

// MoveWordRight steps the primary cursor past the next word.
func (e *Editor) MoveWordRight() {
	if e.cursorY >= len(e.rows) {
		return
	}
	chars := e.rows[e.cursorY].chars
	if e.cursorX >= len(chars) {
		if e.cursorY < len(e.rows)-1 {
			e.cursorY++
			e.cursorX = 0
		}
		return
	}
	x := e.cursorX
	for x < len(chars) && isWordChar(chars[x]) {
		x++
	}
	for x < len(chars) && !isWordChar(chars[x]) {
		x++
	}
	e.cursorX = x
}

// autoUnindentCloseBrace removes one indent level from a line that
// starts with '}'. Returns the number of spaces removed. The removals
// are journaled so the whole brace keystroke undoes cleanly.
func (e *Editor) autoUnindentCloseBrace(line int) int {
	if line < 0 || line >= len(e.rows) {
		return 0
	}
	if !e.rows[line].StartsWithCloseBrace() {
		return 0
	}
	removed := e.unindentLineApply(line)
	for i := 0; i < removed; i++ {
		e.undoLog(undoCharDelete, Position{Row: line, Col: 0}, line, 0, ' ', Position{}, "")
	}
	return removed
}

// insertCharAt inserts a byte at (line, col) without touching the
// primary cursor. Creates the trailing empty row when line == RowCount.
func (e *Editor) insertCharAt(line, col int, c byte) {
	if line < 0 || line > len(e.rows) {
		return
	}
	if line == len(e.rows) {
		e.InsertRow(len(e.rows), nil)
	}
	e.rowInsertChar(line, col, c)
}

// InsertChar types one character at every cursor. A pending selection is
// replaced first; a trailing '}' pulls the line back one indent level.
func (e *Editor) InsertChar(c byte) {
	if len(e.cursors) > 0 {
		e.multiInsertChar(c)
		return
	}

	if e.sel.Active {
		e.DeleteSelection()
	}
	if e.cursorY == len(e.rows) {
		e.InsertRow(len(e.rows), nil)
	}

	e.undoLog(undoCharInsert, Position{Row: e.cursorY, Col: e.cursorX}, e.cursorY, e.cursorX, c, Position{}, "")
	e.rowInsertChar(e.cursorY, e.cursorX, c)
	e.cursorX++

	if c == '}' {
		if removed := e.autoUnindentCloseBrace(e.cursorY); removed > 0 {
			if e.cursorX >= removed {
				e.cursorX -= removed
			} else {
				e.cursorX = 0
			}
		}
	}
}

// multiInsertChar types the character at all cursors end-of-file first,
// then rebases every cursor from its original position.
func (e *Editor) multiInsertChar(c byte) {
	if e.sel.Active {
		e.DeleteSelection()
	}

	all := e.collectCursors(true)
	orig := append([]Position(nil), all...)
	keys := append([]Position(nil), orig...)
	primary := e.markPrimaryAt(orig)

	e.undoStartGroup()
	for _, p := range all {
		e.undoLog(undoCharInsert, p, p.Row, p.Col, c, Position{}, "")
		e.insertCharAt(p.Row, p.Col, c)
	}

	if c == '}' {
		e.multiAutoUnindent(all, orig)
	}

	for i := range all {
		before := 0
		for j := range orig {
			if orig[j].Row == orig[i].Row && orig[j].Col <= orig[i].Col {
				before++
			}
		}
		all[i].Col = orig[i].Col + before
	}
	// The brace unindent already shifted the originals on its lines;
	// clamp any column that ended up negative.
	if c == '}' {
		for i := range all {
			if all[i].Col < 0 {
				all[i].Col = 0
			}
		}
	}

	e.restoreByOriginals(keys, all, primary)
	e.dedupCursors()
}

// multiAutoUnindent runs the close-brace unindent once per unique line,
// shifting every tracked position on that line.
func (e *Editor) multiAutoUnindent(all, orig []Position) {
	done := map[int]bool{}
	for i := range all {
		line := all[i].Row
		if done[line] {
			continue
		}
		done[line] = true
		removed := e.autoUnindentCloseBrace(line)
		if removed <= 0 {
			continue
		}
		for j := range orig {
			if orig[j].Row == line {
				if orig[j].Col >= removed {
					orig[j].Col -= removed
				} else {
					orig[j].Col = 0
				}
			}
		}
	}
}

// markPrimaryAt locates the primary cursor's slot in a snapshot.
func (e *Editor) markPrimaryAt(snapshot []Position) []bool {
	marks := make([]bool, len(snapshot))
	for i, p := range snapshot {
		if p.Row == e.cursorY && p.Col == e.cursorX {
			marks[i] = true
			break
		}
	}
	return marks
}

// restoreByOriginals maps each live cursor to its rebased position by
// matching original coordinates.
func (e *Editor) restoreByOriginals(orig, rebased []Position, primary []bool) {
	for i := range orig {
		if primary[i] {
			e.cursorY = rebased[i].Row
			e.cursorX = rebased[i].Col
			break
		}
	}
	for i := range e.cursors {
		for j := range orig {
			if orig[j] == e.cursors[i] {
				e.cursors[i] = rebased[j]
				break
			}
		}
	}
}

// DeleteChar is backspace: deletes left of every cursor, merging a row
// into its predecessor at column zero. A selection deletes instead.
func (e *Editor) DeleteChar() {
	if len(e.cursors) > 0 {
		e.multiDeleteChar()
		return
	}
	if e.sel.Active {
		e.DeleteSelection()
		return
	}
	if e.cursorY == len(e.rows) {
		return
	}
	if e.cursorX == 0 && e.cursorY == 0 {
		return
	}

	row := e.rows[e.cursorY]
	if e.cursorX > 0 {
		ch := row.chars[e.cursorX-1]
		e.undoLog(undoCharDelete, Position{Row: e.cursorY, Col: e.cursorX}, e.cursorY, e.cursorX-1, ch, Position{}, "")
		e.rowDeleteChar(e.cursorY, e.cursorX-1)
		e.cursorX--
	} else {
		mergeCol := e.rows[e.cursorY-1].Len()
		e.undoLog(undoRowDelete, Position{Row: e.cursorY, Col: e.cursorX}, e.cursorY, mergeCol, 0, Position{}, "")
		e.cursorX = mergeCol
		e.rowAppend(e.cursorY-1, row.chars)
		e.DeleteRow(e.cursorY)
		e.cursorY--
	}
}

// multiDeleteChar applies backspace at all cursors end-of-file first.
func (e *Editor) multiDeleteChar() {
	if e.sel.Active {
		e.DeleteSelection()
		return
	}

	all := e.collectCursors(true)
	orig := append([]Position(nil), all...)
	primary := e.markPrimaryAt(orig)
	merged := make([]bool, len(all))

	e.undoStartGroup()
	for i := range all {
		line, col := all[i].Row, all[i].Col
		if line == 0 && col == 0 {
			continue
		}
		if line >= len(e.rows) {
			continue
		}
		if col > 0 {
			if col <= e.rows[line].Len() {
				ch := e.rows[line].chars[col-1]
				e.undoLog(undoCharDelete, all[i], line, col-1, ch, Position{}, "")
				e.rowDeleteChar(line, col-1)
			}
		} else {
			prevLen := e.rows[line-1].Len()
			e.undoLog(undoRowDelete, all[i], line, prevLen, 0, Position{}, "")
			e.rowAppend(line-1, e.rows[line].chars)
			e.DeleteRow(line)
			merged[i] = true
			all[i].Row = line - 1
			all[i].Col = prevLen
		}
	}

	for i := range all {
		if merged[i] {
			continue
		}
		origLine, origCol := orig[i].Row, orig[i].Col
		if origLine == 0 && origCol == 0 {
			continue
		}
		deletionsBefore := 0
		linesRemovedBefore := 0
		for j := range all {
			if j == i {
				continue
			}
			if merged[j] {
				if orig[j].Row < origLine || (orig[j].Row == origLine && orig[j].Col < origCol) {
					linesRemovedBefore++
				}
			} else if orig[j].Row == origLine && orig[j].Col > 0 && orig[j].Col <= origCol {
				deletionsBefore++
			}
		}
		all[i].Row = origLine - linesRemovedBefore
		all[i].Col = origCol - 1 - deletionsBefore
		if all[i].Col < 0 {
			all[i].Col = 0
		}
	}

	e.restoreByOriginals(orig, all, primary)
	e.dedupCursors()
}

// insertNewlineAt splits (line, col), inheriting the line's indentation
// plus one level when the last non-blank before col is '{'. Returns the
// indent applied.
func (e *Editor) insertNewlineAt(line, col int) int {
	if line < 0 || line > len(e.rows) {
		return 0
	}
	if line == len(e.rows) {
		e.InsertRow(len(e.rows), nil)
		return 0
	}

	current := e.rows[line]
	baseIndent := current.Indentation()
	extraIndent := 0
	if braceBeforeColumn(current, col) {
		extraIndent = e.indentWidth
	}
	indent := make([]byte, 0, baseIndent+extraIndent)
	indent = append(indent, current.chars[:baseIndent]...)
	for i := 0; i < extraIndent; i++ {
		indent = append(indent, ' ')
	}

	if col == 0 {
		e.InsertRow(line, nil)
	} else {
		tail := append([]byte(nil), current.chars[col:]...)
		e.InsertRow(line+1, tail)
		e.setRowChars(line, append([]byte(nil), e.rows[line].chars[:col]...))
	}

	if len(indent) > 0 {
		newLine := line + 1
		e.setRowChars(newLine, append(indent, e.rows[newLine].chars...))
	}
	return len(indent)
}

// braceBeforeColumn reports a '{' immediately before col, skipping
// trailing blanks.
func braceBeforeColumn(row *Row, col int) bool {
	check := col - 1
	if check < 0 {
		check = 0
	}
	if check >= row.Len() {
		check = row.Len() - 1
	}
	for check > 0 && isWhitespace(row.chars[check]) {
		check--
	}
	return check >= 0 && check < row.Len() && row.chars[check] == '{'
}

// InsertNewline splits the line at every cursor with auto-indent.
func (e *Editor) InsertNewline() {
	if len(e.cursors) > 0 {
		e.multiInsertNewline()
		return
	}
	if e.sel.Active {
		e.DeleteSelection()
	}

	var entry *undoEntry
	if e.cursorX == 0 {
		entry = e.undoLog(undoRowInsert, Position{Row: e.cursorY, Col: e.cursorX}, e.cursorY, 0, 0, Position{}, "")
	} else {
		entry = e.undoLog(undoRowSplit, Position{Row: e.cursorY, Col: e.cursorX}, e.cursorY, e.cursorX, 0, Position{}, "")
	}
	indent := e.insertNewlineAt(e.cursorY, e.cursorX)
	if entry != nil {
		entry.indent = indent
	}
	e.cursorY++
	e.cursorX = indent
}

// multiInsertNewline splits at all cursors. Indents are computed from
// the original rows before any mutation.
func (e *Editor) multiInsertNewline() {
	if e.sel.Active {
		e.DeleteSelection()
	}

	all := e.collectCursors(true)
	orig := append([]Position(nil), all...)
	primary := e.markPrimaryAt(orig)

	indents := make([]int, len(all))
	for i, p := range orig {
		if p.Row >= len(e.rows) {
			continue
		}
		row := e.rows[p.Row]
		indent := row.Indentation()
		if braceBeforeColumn(row, p.Col) {
			indent += e.indentWidth
		}
		indents[i] = indent
	}

	e.undoStartGroup()
	for i := range all {
		line, col := all[i].Row, all[i].Col
		var entry *undoEntry
		if col == 0 {
			entry = e.undoLog(undoRowInsert, all[i], line, 0, 0, Position{}, "")
		} else {
			entry = e.undoLog(undoRowSplit, all[i], line, col, 0, Position{}, "")
		}
		applied := e.insertNewlineAt(line, col)
		if entry != nil {
			entry.indent = applied
		}
	}

	for i := range all {
		linesBefore := 0
		for j := range orig {
			if positionLess(orig[j], orig[i]) {
				linesBefore++
			}
		}
		all[i].Row = orig[i].Row + 1 + linesBefore
		all[i].Col = indents[i]
	}

	e.restoreByOriginals(orig, all, primary)
	e.dedupCursors()
}

// DeleteWordBackward removes from the previous word start to the
// cursor; at column zero it merges with the previous line.
func (e *Editor) DeleteWordBackward() {
	if len(e.cursors) > 0 {
		e.multiDeleteWordBackward()
		return
	}
	if e.cursorY >= len(e.rows) {
		return
	}
	if e.cursorX == 0 {
		if e.cursorY > 0 {
			e.DeleteChar()
		}
		return
	}
	chars := e.rows[e.cursorY].chars
	x := e.cursorX
	for x > 0 && !isWordChar(chars[x-1]) {
		x--
	}
	for x > 0 && isWordChar(chars[x-1]) {
		x--
	}
	span := e.cursorX - x
	if span <= 0 {
		return
	}
	start := x
	e.undoStartGroup()
	for i := 0; i < span; i++ {
		ch := e.rows[e.cursorY].chars[start]
		e.undoLog(undoCharDelete, Position{Row: e.cursorY, Col: start + 1}, e.cursorY, start, ch, Position{}, "")
		e.rowDeleteChar(e.cursorY, start)
	}
	e.cursorX = start
}

// DeleteWordForward removes from the cursor through the next word.
func (e *Editor) DeleteWordForward() {
	if len(e.cursors) > 0 {
		e.multiDeleteWordForward()
		return
	}
	if e.cursorY >= len(e.rows) {
		return
	}
	row := e.rows[e.cursorY]
	if e.cursorX >= row.Len() {
		if e.cursorY < len(e.rows)-1 {
			e.MoveCursor(terminal.KeyArrowRight)
			e.DeleteChar()
		}
		return
	}
	chars := row.chars
	x := e.cursorX
	for x < len(chars) && isWordChar(chars[x]) {
		x++
	}
	for x < len(chars) && !isWordChar(chars[x]) {
		x++
	}
	span := x - e.cursorX
	e.undoStartGroup()
	for i := 0; i < span; i++ {
		ch := e.rows[e.cursorY].chars[e.cursorX]
		e.undoLog(undoCharDeleteFwd, Position{Row: e.cursorY, Col: e.cursorX}, e.cursorY, e.cursorX, ch, Position{}, "")
		e.rowDeleteChar(e.cursorY, e.cursorX)
	}
}

// multiDeleteWordBackward deletes a word at every cursor end-first.
func (e *Editor) multiDeleteWordBackward() {
	all := e.collectCursors(true)
	primary := e.markPrimary(all)

	e.undoStartGroup()
	for i := range all {
		line, col := all[i].Row, all[i].Col
		if line < 0 || line >= len(e.rows) {
			continue
		}
		if col == 0 {
			if line == 0 {
				continue
			}
			prevLen := e.rows[line-1].Len()
			e.undoLog(undoRowDelete, all[i], line, prevLen, 0, Position{}, "")
			e.rowAppend(line-1, e.rows[line].chars)
			e.DeleteRow(line)
			all[i].Row = line - 1
			all[i].Col = prevLen
			for j := range all {
				if j != i && all[j].Row > line {
					all[j].Row--
				}
			}
			continue
		}
		chars := e.rows[line].chars
		x := col
		for x > 0 && !isWordChar(chars[x-1]) {
			x--
		}
		for x > 0 && isWordChar(chars[x-1]) {
			x--
		}
		span := col - x
		if span <= 0 {
			continue
		}
		for k := 0; k < span; k++ {
			ch := e.rows[line].chars[x]
			e.undoLog(undoCharDelete, Position{Row: line, Col: x + 1}, line, x, ch, Position{}, "")
			e.rowDeleteChar(line, x)
		}
		all[i].Col = x
		for j := range all {
			if j != i && all[j].Row == line && all[j].Col > col {
				all[j].Col -= span
			}
		}
	}

	e.restoreCursors(all, primary)
	e.dedupCursors()
}

// multiDeleteWordForward deletes forward at every cursor end-first.
func (e *Editor) multiDeleteWordForward() {
	all := e.collectCursors(true)
	primary := e.markPrimary(all)

	e.undoStartGroup()
	for i := range all {
		line, col := all[i].Row, all[i].Col
		if line < 0 || line >= len(e.rows) {
			continue
		}
		row := e.rows[line]
		if col >= row.Len() {
			if line < len(e.rows)-1 {
				prevLen := row.Len()
				e.undoLog(undoRowDelete, Position{Row: line + 1}, line+1, prevLen, 0, Position{}, "")
				e.rowAppend(line, e.rows[line+1].chars)
				e.DeleteRow(line + 1)
				all[i].Col = prevLen
				for j := range all {
					if j == i {
						continue
					}
					if all[j].Row > line+1 {
						all[j].Row--
					} else if all[j].Row == line+1 {
						all[j].Row = line
						all[j].Col += prevLen
					}
				}
			}
			continue
		}
		chars := row.chars
		x := col
		for x < len(chars) && isWordChar(chars[x]) {
			x++
		}
		for x < len(chars) && !isWordChar(chars[x]) {
			x++
		}
		span := x - col
		if span <= 0 {
			continue
		}
		for k := 0; k < span; k++ {
			ch := e.rows[line].chars[col]
			e.undoLog(undoCharDeleteFwd, Position{Row: line, Col: col}, line, col, ch, Position{}, "")
			e.rowDeleteChar(line, col)
		}
		for j := range all {
			if j != i && all[j].Row == line && all[j].Col > col {
				if all[j].Col >= col+span {
					all[j].Col -= span
				} else {
					all[j].Col = col
				}
			}
		}
	}

	e.restoreCursors(all, primary)
	e.dedupCursors()
}
