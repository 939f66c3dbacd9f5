package editor

import "bytes"

// indentLineApply prepends one indent level. Returns spaces added.
func (e *Editor) indentLineApply(line int) int {
	if line < 0 || line >= len(e.rows) {
		return 0
	}
	indent := bytes.Repeat([]byte{' '}, e.indentWidth)
	e.setRowChars(line, append(indent, e.rows[line].chars...))
	return e.indentWidth
}

// unindentLineApply strips up to one indent level of leading spaces.
// Returns spaces removed.
func (e *Editor) unindentLineApply(line int) int {
	if line < 0 || line >= len(e.rows) {
		return 0
	}
	row := e.rows[line]
	remove := 0
	for remove < e.indentWidth && remove < row.Len() && row.chars[remove] == ' ' {
		remove++
	}
	if remove == 0 {
		return 0
	}
	e.rowDeleteRange(line, 0, remove)
	return remove
}

// IndentLine shifts every cursor line right one level; each unique line
// is indented once.
func (e *Editor) IndentLine() {
	if e.cursorY >= len(e.rows) {
		return
	}
	if len(e.cursors) > 0 {
		all := e.collectCursors(false)
		primary := e.markPrimary(all)
		lastLine := -1
		delta := 0
		for i := range all {
			line := all[i].Row
			if line != lastLine {
				delta = e.indentLineApply(line)
				lastLine = line
			}
			if delta > 0 {
				all[i].Col += delta
			}
			if line >= 0 && line < len(e.rows) {
				if n := e.rows[line].Len(); all[i].Col > n {
					all[i].Col = n
				}
			}
		}
		e.restoreCursors(all, primary)
		e.dedupCursors()
		return
	}

	e.cursorX += e.indentLineApply(e.cursorY)
}

// UnindentLine shifts every cursor line left one level.
func (e *Editor) UnindentLine() {
	if e.cursorY >= len(e.rows) {
		return
	}
	if len(e.cursors) > 0 {
		all := e.collectCursors(false)
		primary := e.markPrimary(all)
		lastLine := -1
		removed := 0
		for i := range all {
			line := all[i].Row
			if line != lastLine {
				removed = e.unindentLineApply(line)
				lastLine = line
			}
			if removed > 0 {
				if all[i].Col >= removed {
					all[i].Col -= removed
				} else {
					all[i].Col = 0
				}
			}
			if line >= 0 && line < len(e.rows) {
				if n := e.rows[line].Len(); all[i].Col > n {
					all[i].Col = n
				}
			}
		}
		e.restoreCursors(all, primary)
		e.dedupCursors()
		return
	}

	if removed := e.unindentLineApply(e.cursorY); removed > 0 {
		if e.cursorX >= removed {
			e.cursorX -= removed
		} else {
			e.cursorX = 0
		}
	}
}

// DuplicateLine copies each unique cursor line below itself; cursors
// move onto the copy.
func (e *Editor) DuplicateLine() {
	if e.cursorY >= len(e.rows) {
		return
	}
	if len(e.cursors) > 0 {
		all := e.collectCursors(true)
		orig := append([]Position(nil), all...)
		primary := e.markPrimary(all)
		lastLine := -1
		for i := range all {
			line := orig[i].Row
			if line == lastLine || line < 0 || line >= len(e.rows) {
				continue
			}
			rowLen := e.rows[line].Len()
			e.InsertRow(line+1, e.rows[line].chars)
			for j := range all {
				if all[j].Row > line {
					all[j].Row++
				}
			}
			for j := range all {
				if all[j].Row == line {
					all[j].Row = line + 1
					if all[j].Col > rowLen {
						all[j].Col = rowLen
					}
				}
			}
			lastLine = line
		}
		e.restoreCursors(all, primary)
		e.dedupCursors()
		return
	}

	e.InsertRow(e.cursorY+1, e.rows[e.cursorY].chars)
	e.cursorY++
}

// DeleteLine removes each unique cursor line; cursors clamp onto the
// row that takes its place.
func (e *Editor) DeleteLine() {
	if e.cursorY >= len(e.rows) {
		return
	}
	if len(e.cursors) > 0 {
		all := e.collectCursors(true)
		orig := append([]Position(nil), all...)
		primary := e.markPrimary(all)
		lastLine := -1
		for i := range all {
			line := orig[i].Row
			if line == lastLine || line < 0 || line >= len(e.rows) {
				continue
			}
			e.DeleteRow(line)
			for j := range all {
				if all[j].Row > line {
					all[j].Row--
				} else if all[j].Row == line {
					target := line
					if target >= len(e.rows) {
						target = len(e.rows) - 1
					}
					if target < 0 {
						target = 0
					}
					all[j].Row = target
					if target < len(e.rows) {
						if n := e.rows[target].Len(); all[j].Col > n {
							all[j].Col = n
						}
					} else {
						all[j].Col = 0
					}
				}
			}
			lastLine = line
		}
		e.restoreCursors(all, primary)
		e.dedupCursors()
		return
	}

	e.DeleteRow(e.cursorY)
	if e.cursorY >= len(e.rows) && len(e.rows) > 0 {
		e.cursorY = len(e.rows) - 1
	}
	if e.cursorY < len(e.rows) {
		if n := e.rows[e.cursorY].Len(); e.cursorX > n {
			e.cursorX = n
		}
	} else {
		e.cursorX = 0
	}
}

// MoveLineUp swaps each unique cursor line with the one above.
func (e *Editor) MoveLineUp() {
	if e.cursorY <= 0 || e.cursorY >= len(e.rows) {
		return
	}
	if len(e.cursors) > 0 {
		all := e.collectCursors(false)
		orig := append([]Position(nil), all...)
		primary := e.markPrimary(all)
		lastLine := -2
		for i := range all {
			line := orig[i].Row
			if line <= 0 || line == lastLine || line >= len(e.rows) {
				continue
			}
			e.rows[line], e.rows[line-1] = e.rows[line-1], e.rows[line]
			e.resyncSwappedRows(line - 1)
			for j := range all {
				if all[j].Row == line {
					all[j].Row = line - 1
				} else if all[j].Row == line-1 {
					all[j].Row = line
				}
			}
			lastLine = line
		}
		e.restoreCursors(all, primary)
		e.dedupCursors()
		return
	}

	e.rows[e.cursorY], e.rows[e.cursorY-1] = e.rows[e.cursorY-1], e.rows[e.cursorY]
	e.resyncSwappedRows(e.cursorY - 1)
	e.cursorY--
}

// MoveLineDown swaps each unique cursor line with the one below,
// bottom-most first.
func (e *Editor) MoveLineDown() {
	if e.cursorY >= len(e.rows)-1 {
		return
	}
	if len(e.cursors) > 0 {
		all := e.collectCursors(true)
		orig := append([]Position(nil), all...)
		primary := e.markPrimary(all)
		lastLine := len(e.rows) + 1
		for i := range all {
			line := orig[i].Row
			if line >= len(e.rows)-1 || line == lastLine || line < 0 {
				continue
			}
			e.rows[line], e.rows[line+1] = e.rows[line+1], e.rows[line]
			e.resyncSwappedRows(line)
			for j := range all {
				if all[j].Row == line {
					all[j].Row = line + 1
				} else if all[j].Row == line+1 {
					all[j].Row = line
				}
			}
			lastLine = line
		}
		e.restoreCursors(all, primary)
		e.dedupCursors()
		return
	}

	e.rows[e.cursorY], e.rows[e.cursorY+1] = e.rows[e.cursorY+1], e.rows[e.cursorY]
	e.resyncSwappedRows(e.cursorY)
	e.cursorY++
}

// resyncSwappedRows refreshes derived state after two adjacent rows
// trade places; comment state may differ in the new order.
func (e *Editor) resyncSwappedRows(upper int) {
	e.dirty++
	e.updateSyntax(upper)
}

// JoinLines appends the next row to the cursor row with a single
// space separator unless a space already borders the seam.
func (e *Editor) JoinLines() {
	if len(e.cursors) > 0 {
		e.multiJoinLines()
		return
	}
	if e.cursorY >= len(e.rows)-1 {
		return
	}

	current := e.rows[e.cursorY]
	next := e.rows[e.cursorY+1]
	joinPos := current.Len()
	if current.Len() > 0 && next.Len() > 0 &&
		current.chars[current.Len()-1] != ' ' && next.chars[0] != ' ' {
		e.rowAppend(e.cursorY, []byte{' '})
		joinPos++
	}
	e.rowAppend(e.cursorY, next.chars)
	e.DeleteRow(e.cursorY + 1)
	e.cursorX = joinPos
}

func (e *Editor) multiJoinLines() {
	all := e.collectCursors(true)
	primary := e.markPrimary(all)
	lastLine := -1
	for i := range all {
		line := all[i].Row
		if line == lastLine || line < 0 || line >= len(e.rows)-1 {
			continue
		}
		current := e.rows[line]
		next := e.rows[line+1]
		joinPos := current.Len()
		if current.Len() > 0 && next.Len() > 0 &&
			current.chars[current.Len()-1] != ' ' && next.chars[0] != ' ' {
			e.rowAppend(line, []byte{' '})
			joinPos++
		}
		e.rowAppend(line, next.chars)
		e.DeleteRow(line + 1)
		newLen := e.rows[line].Len()

		for j := range all {
			if all[j].Row == line {
				if all[j].Col > newLen {
					all[j].Col = newLen
				}
			} else if all[j].Row == line+1 {
				all[j].Row = line
				col := joinPos + all[j].Col
				if col > newLen {
					col = newLen
				}
				all[j].Col = col
			} else if all[j].Row > line+1 {
				all[j].Row--
			}
		}
		lastLine = line
	}
	e.restoreCursors(all, primary)
	e.dedupCursors()
}

// lineCommentSpan locates a line-comment marker after leading blanks.
// removeLen includes the marker's trailing space when present.
func lineCommentSpan(row *Row, marker []byte) (firstNonWS, removeLen int, has bool) {
	fnw := 0
	for fnw < row.Len() && isWhitespace(row.chars[fnw]) {
		fnw++
	}
	if fnw+len(marker) <= row.Len() && bytes.HasPrefix(row.chars[fnw:], marker) {
		rem := len(marker)
		if fnw+rem < row.Len() && row.chars[fnw+rem] == ' ' {
			rem++
		}
		return fnw, rem, true
	}
	return fnw, 0, false
}

// ToggleLineComment comments or uncomments every cursor line. With
// multiple cursors the whole batch moves one way: uncomment only when
// every line already carries the marker.
func (e *Editor) ToggleLineComment() {
	if e.cursorY >= len(e.rows) {
		return
	}
	if e.syntax == nil || e.syntax.LineComment == "" {
		return
	}
	marker := []byte(e.syntax.LineComment)

	if len(e.cursors) > 0 {
		e.multiToggleLineComment(marker)
		return
	}

	row := e.rows[e.cursorY]
	fnw, removeLen, has := lineCommentSpan(row, marker)
	if has {
		e.rowDeleteRange(e.cursorY, fnw, fnw+removeLen)
		if e.cursorX > fnw {
			if e.cursorX >= fnw+removeLen {
				e.cursorX -= removeLen
			} else {
				e.cursorX = fnw
			}
		}
	} else {
		insert := append(append([]byte(nil), marker...), ' ')
		chars := e.rows[e.cursorY].chars
		updated := append(append(append([]byte(nil), chars[:fnw]...), insert...), chars[fnw:]...)
		e.setRowChars(e.cursorY, updated)
		if e.cursorX >= fnw {
			e.cursorX += len(insert)
		}
	}
	e.dirty++
}

func (e *Editor) multiToggleLineComment(marker []byte) {
	all := e.collectCursors(false)
	primary := e.markPrimary(all)

	allCommented := true
	firstNonWS := make([]int, len(all))
	removeLen := make([]int, len(all))
	for i := range all {
		if all[i].Row >= len(e.rows) {
			continue
		}
		fnw, rem, has := lineCommentSpan(e.rows[all[i].Row], marker)
		firstNonWS[i] = fnw
		removeLen[i] = rem
		if !has {
			allCommented = false
		}
	}

	lastLine := -1
	delta := 0
	for i := range all {
		line := all[i].Row
		if line < 0 || line >= len(e.rows) {
			continue
		}
		if line != lastLine {
			fnw := firstNonWS[i]
			delta = 0
			if allCommented && removeLen[i] > 0 {
				e.rowDeleteRange(line, fnw, fnw+removeLen[i])
				delta = -removeLen[i]
			} else if !allCommented {
				insert := append(append([]byte(nil), marker...), ' ')
				chars := e.rows[line].chars
				updated := append(append(append([]byte(nil), chars[:fnw]...), insert...), chars[fnw:]...)
				e.setRowChars(line, updated)
				delta = len(insert)
			}
			lastLine = line
		}
		if delta != 0 {
			fnw := firstNonWS[i]
			if delta > 0 {
				if all[i].Col >= fnw {
					all[i].Col += delta
				}
			} else {
				removed := -delta
				if all[i].Col > fnw {
					if all[i].Col >= fnw+removed {
						all[i].Col -= removed
					} else {
						all[i].Col = fnw
					}
				}
			}
			if n := e.rows[line].Len(); all[i].Col > n {
				all[i].Col = n
			}
		}
	}

	e.restoreCursors(all, primary)
	e.dedupCursors()
	e.dirty++
}

// blockCommentSpan checks for both block markers on one line, trimming
// trailing blanks before the end marker.
func blockCommentSpan(row *Row, start, end []byte) (startPos, startRem, endPos, endRem int, has bool) {
	fnw := 0
	for fnw < row.Len() && isWhitespace(row.chars[fnw]) {
		fnw++
	}
	if fnw+len(start) > row.Len() || !bytes.HasPrefix(row.chars[fnw:], start) {
		return fnw, 0, 0, 0, false
	}
	startSpace := 0
	if fnw+len(start) < row.Len() && row.chars[fnw+len(start)] == ' ' {
		startSpace = 1
	}

	ep := row.Len() - len(end)
	for ep > 0 && isWhitespace(row.chars[ep+len(end)-1]) {
		ep--
	}
	if ep < fnw || ep+len(end) > row.Len() || !bytes.Equal(row.chars[ep:ep+len(end)], end) {
		return fnw, 0, 0, 0, false
	}
	endSpace := 0
	if ep > 0 && row.chars[ep-1] == ' ' {
		endSpace = 1
	}
	return fnw, len(start) + startSpace, ep - endSpace, len(end) + endSpace, true
}

// ToggleBlockComment wraps or unwraps each cursor line in block
// markers. Multi-cursor batches move uniformly like line comments.
func (e *Editor) ToggleBlockComment() {
	if e.cursorY >= len(e.rows) {
		return
	}
	if e.syntax == nil || e.syntax.BlockComment[0] == "" || e.syntax.BlockComment[1] == "" {
		return
	}
	start := []byte(e.syntax.BlockComment[0])
	end := []byte(e.syntax.BlockComment[1])

	if len(e.cursors) > 0 {
		e.multiToggleBlockComment(start, end)
		return
	}

	if sp, sr, ep, er, has := blockCommentSpan(e.rows[e.cursorY], start, end); has {
		e.rowDeleteRange(e.cursorY, ep, ep+er)
		e.rowDeleteRange(e.cursorY, sp, sp+sr)
	} else {
		e.wrapLineInBlockComment(e.cursorY, start, end)
	}
	e.dirty++
}

// wrapLineInBlockComment inserts "start " at the first non-blank and
// " end" after the last non-blank content.
func (e *Editor) wrapLineInBlockComment(line int, start, end []byte) {
	row := e.rows[line]
	fnw := 0
	for fnw < row.Len() && isWhitespace(row.chars[fnw]) {
		fnw++
	}
	head := append(append([]byte(nil), start...), ' ')
	chars := append(append(append([]byte(nil), row.chars[:fnw]...), head...), row.chars[fnw:]...)

	contentEnd := len(chars)
	for contentEnd > fnw+len(head) && isWhitespace(chars[contentEnd-1]) {
		contentEnd--
	}
	tail := append([]byte{' '}, end...)
	chars = append(append(append([]byte(nil), chars[:contentEnd]...), tail...), chars[contentEnd:]...)
	e.setRowChars(line, chars)
}

func (e *Editor) multiToggleBlockComment(start, end []byte) {
	all := e.collectCursors(false)
	primary := e.markPrimary(all)

	allCommented := true
	startPos := make([]int, len(all))
	startRem := make([]int, len(all))
	endPos := make([]int, len(all))
	endRem := make([]int, len(all))
	for i := range all {
		if all[i].Row >= len(e.rows) {
			allCommented = false
			continue
		}
		sp, sr, ep, er, has := blockCommentSpan(e.rows[all[i].Row], start, end)
		startPos[i], startRem[i], endPos[i], endRem[i] = sp, sr, ep, er
		if !has {
			allCommented = false
		}
	}

	lastLine := -1
	for i := range all {
		line := all[i].Row
		if line < 0 || line >= len(e.rows) || line == lastLine {
			continue
		}
		if allCommented && startRem[i] > 0 && endRem[i] > 0 {
			e.rowDeleteRange(line, endPos[i], endPos[i]+endRem[i])
			e.rowDeleteRange(line, startPos[i], startPos[i]+startRem[i])
			lineLen := e.rows[line].Len()
			for j := range all {
				if all[j].Row != line {
					continue
				}
				if all[j].Col > endPos[i] {
					all[j].Col -= endRem[i]
				}
				if all[j].Col > startPos[i] {
					all[j].Col -= startRem[i]
					if all[j].Col < startPos[i] {
						all[j].Col = startPos[i]
					}
				}
				if all[j].Col > lineLen {
					all[j].Col = lineLen
				}
			}
		} else if !allCommented {
			row := e.rows[line]
			fnw := 0
			for fnw < row.Len() && isWhitespace(row.chars[fnw]) {
				fnw++
			}
			endInsert := row.Len()
			e.wrapLineInBlockComment(line, start, end)
			deltaStart := len(start) + 1
			deltaEnd := len(end) + 1
			lineLen := e.rows[line].Len()
			for j := range all {
				if all[j].Row != line {
					continue
				}
				if all[j].Col >= fnw {
					all[j].Col += deltaStart
				}
				if all[j].Col >= endInsert {
					all[j].Col += deltaEnd
				}
				if all[j].Col > lineLen {
					all[j].Col = lineLen
				}
			}
		}
		lastLine = line
	}

	e.restoreCursors(all, primary)
	e.dedupCursors()
	e.dirty++
}

// SkipClosingPair hops the cursor just past the next closing bracket
// or quote on the line.
func (e *Editor) SkipClosingPair() {
	row := e.currentRow()
	if row == nil {
		return
	}
	for x := e.cursorX; x < row.Len(); x++ {
		switch row.chars[x] {
		case ')', ']', '}', '"', '\'', '`':
			e.cursorX = x + 1
			return
		}
	}
}

// SkipOpeningPair hops the cursor back to the nearest opening bracket
// or quote on the line.
func (e *Editor) SkipOpeningPair() {
	row := e.currentRow()
	if row == nil {
		return
	}
	for x := e.cursorX - 1; x >= 0; x-- {
		switch row.chars[x] {
		case '(', '[', '{', '"', '\'', '`':
			e.cursorX = x
			return
		}
	}
}
