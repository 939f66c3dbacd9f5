package editor

import (
	"sort"

	"github.com/castlight/quill/internal/terminal"
)

// Secondary cursors live in e.cursors; the primary cursor is always
// (cursorY, cursorX). Edits treat the union of both as one cursor set.

// Cursors returns a copy of the secondary cursor list.
func (e *Editor) Cursors() []Position {
	out := make([]Position, len(e.cursors))
	copy(out, e.cursors)
	return out
}

// AddCursor places a secondary cursor unless one (or the primary)
// already occupies the position.
func (e *Editor) AddCursor(line, col int) bool {
	if e.cursorY == line && e.cursorX == col {
		return false
	}
	for _, c := range e.cursors {
		if c.Row == line && c.Col == col {
			return false
		}
	}
	e.cursors = append(e.cursors, Position{Row: line, Col: col})
	return true
}

// AddCursorAbove drops a secondary cursor one line above the primary,
// keeping the column when possible.
func (e *Editor) AddCursorAbove() {
	if e.cursorY <= 0 {
		return
	}
	line := e.cursorY - 1
	col := e.cursorX
	if line < len(e.rows) && col > e.rows[line].Len() {
		col = e.rows[line].Len()
	}
	if e.AddCursor(line, col) {
		e.SetStatus("Added cursor at line %d (total: %d)", line+1, len(e.cursors)+1)
	}
	e.followPrimary = true
	e.allowOverlap = false
}

// AddCursorBelow drops a secondary cursor one line below the primary.
func (e *Editor) AddCursorBelow() {
	if e.cursorY >= len(e.rows)-1 {
		return
	}
	line := e.cursorY + 1
	col := e.cursorX
	if line < len(e.rows) && col > e.rows[line].Len() {
		col = e.rows[line].Len()
	}
	if e.AddCursor(line, col) {
		e.SetStatus("Added cursor at line %d (total: %d)", line+1, len(e.cursors)+1)
	}
	e.followPrimary = true
	e.allowOverlap = false
}

// AddCursorAtPrimary freezes a cursor at the primary position. The
// overlap stays allowed until movement detaches them.
func (e *Editor) AddCursorAtPrimary() {
	for _, c := range e.cursors {
		if c.Row == e.cursorY && c.Col == e.cursorX {
			e.SetStatus("Cursor already placed here")
			return
		}
	}
	e.cursors = append(e.cursors, Position{Row: e.cursorY, Col: e.cursorX})
	e.SetStatus("Placed cursor at line %d (total: %d)", e.cursorY+1, len(e.cursors)+1)
	e.followPrimary = false
	e.allowOverlap = true
}

// AddCursorAtPrimaryAndAdvance drops a cursor here, then moves the
// primary down one line.
func (e *Editor) AddCursorAtPrimaryAndAdvance() {
	e.AddCursorAtPrimary()
	if e.cursorY < len(e.rows)-1 {
		e.cursorY++
		if n := e.rows[e.cursorY].Len(); e.cursorX > n {
			e.cursorX = n
		}
	}
	e.dedupCursors()
	e.SetStatus("Placed and moved to line %d (total: %d)", e.cursorY+1, len(e.cursors)+1)
	e.followPrimary = true
	e.allowOverlap = false
}

// ClearCursors drops every secondary cursor.
func (e *Editor) ClearCursors() {
	e.cursors = e.cursors[:0]
}

// collectCursors gathers primary plus secondaries sorted by position.
// reverse orders end-of-file first, the order edits must apply in.
func (e *Editor) collectCursors(reverse bool) []Position {
	all := make([]Position, 0, len(e.cursors)+1)
	all = append(all, Position{Row: e.cursorY, Col: e.cursorX})
	all = append(all, e.cursors...)
	sort.Slice(all, func(i, j int) bool {
		if reverse {
			return positionLess(all[j], all[i])
		}
		return positionLess(all[i], all[j])
	})
	return all
}

// markPrimary flags the slot in all that is the primary cursor. Only the
// first match counts when a secondary overlaps the primary.
func (e *Editor) markPrimary(all []Position) []bool {
	marks := make([]bool, len(all))
	for i, p := range all {
		if p.Row == e.cursorY && p.Col == e.cursorX {
			marks[i] = true
			break
		}
	}
	return marks
}

// restoreCursors writes rebased positions back: the marked slot becomes
// the primary, the rest refill the secondary list in order.
func (e *Editor) restoreCursors(all []Position, primary []bool) {
	sec := 0
	for i := range all {
		if primary[i] {
			e.cursorY = all[i].Row
			e.cursorX = all[i].Col
		} else if sec < len(e.cursors) {
			e.cursors[sec] = all[i]
			sec++
		}
	}
}

// dedupCursors drops secondaries coincident with the primary (keeping
// one when overlap is allowed), then collapses exact duplicates.
func (e *Editor) dedupCursors() {
	if len(e.cursors) == 0 {
		return
	}
	for i := range e.cursors {
		c := &e.cursors[i]
		if c.Row >= len(e.rows) {
			c.Row = max(len(e.rows)-1, 0)
		}
		if c.Row < 0 {
			c.Row = 0
		}
		if c.Row < len(e.rows) {
			if n := e.rows[c.Row].Len(); c.Col > n {
				c.Col = n
			}
		} else {
			c.Col = 0
		}
	}
	keptOverlap := false
	out := e.cursors[:0]
	for _, c := range e.cursors {
		if c.Row == e.cursorY && c.Col == e.cursorX {
			if e.allowOverlap && !keptOverlap {
				keptOverlap = true
			} else {
				continue
			}
		}
		out = append(out, c)
	}
	e.cursors = out
	if len(e.cursors) <= 1 {
		return
	}
	sort.Slice(e.cursors, func(i, j int) bool {
		return positionLess(e.cursors[i], e.cursors[j])
	})
	w := 1
	for i := 1; i < len(e.cursors); i++ {
		if e.cursors[i] == e.cursors[w-1] {
			continue
		}
		e.cursors[w] = e.cursors[i]
		w++
	}
	e.cursors = e.cursors[:w]
}

// CursorAt reports whether any cursor, primary included, sits at the
// given position.
func (e *Editor) CursorAt(line, col int) bool {
	if e.cursorY == line && e.cursorX == col {
		return true
	}
	for _, c := range e.cursors {
		if c.Row == line && c.Col == col {
			return true
		}
	}
	return false
}

// moveSingle applies one arrow movement to a secondary cursor.
func (e *Editor) moveSingle(c *Position, key terminal.Key) {
	switch key {
	case terminal.KeyArrowLeft:
		if c.Col > 0 {
			c.Col--
		} else if c.Row > 0 {
			c.Row--
			c.Col = e.rows[c.Row].Len()
		}
	case terminal.KeyArrowRight:
		if c.Row < len(e.rows) && c.Col < e.rows[c.Row].Len() {
			c.Col++
		} else if c.Row < len(e.rows)-1 {
			c.Row++
			c.Col = 0
		}
	case terminal.KeyArrowUp:
		if c.Row > 0 {
			c.Row--
		}
	case terminal.KeyArrowDown:
		if c.Row < len(e.rows)-1 {
			c.Row++
		}
	}
	if c.Row >= 0 && c.Row < len(e.rows) {
		if n := e.rows[c.Row].Len(); c.Col > n {
			c.Col = n
		}
	}
}

// cursorsMoveAll echoes an arrow key onto every secondary cursor when
// they follow the primary.
func (e *Editor) cursorsMoveAll(key terminal.Key) {
	if !e.followPrimary {
		return
	}
	for i := range e.cursors {
		e.moveSingle(&e.cursors[i], key)
	}
	e.dedupCursors()
}

// cursorsApplyVerticalDelta shifts secondaries by the same number of
// rows a page movement moved the primary.
func (e *Editor) cursorsApplyVerticalDelta(delta int) {
	if !e.followPrimary {
		return
	}
	for i := range e.cursors {
		c := &e.cursors[i]
		c.Row += delta
		if c.Row < 0 {
			c.Row = 0
		}
		if c.Row >= len(e.rows) {
			c.Row = max(len(e.rows)-1, 0)
		}
		if c.Row < len(e.rows) {
			if n := e.rows[c.Row].Len(); c.Col > n {
				c.Col = n
			}
		}
	}
	e.dedupCursors()
}

// cursorsApplyHome sends every secondary to column 0 or the first
// non-blank column, matching the primary's smart-home target.
func (e *Editor) cursorsApplyHome(useFirstNonWS bool) {
	if !e.followPrimary {
		return
	}
	for i := range e.cursors {
		c := &e.cursors[i]
		if useFirstNonWS && c.Row < len(e.rows) {
			c.Col = e.rows[c.Row].FirstNonWhitespace()
		} else {
			c.Col = 0
		}
	}
	e.dedupCursors()
}

// cursorsApplyEnd sends every secondary to its line end.
func (e *Editor) cursorsApplyEnd() {
	if !e.followPrimary {
		return
	}
	for i := range e.cursors {
		c := &e.cursors[i]
		if c.Row < len(e.rows) {
			c.Col = e.rows[c.Row].Len()
		}
	}
	e.dedupCursors()
}

func (e *Editor) moveWordLeftSingle(c *Position) {
	if c.Row >= len(e.rows) {
		return
	}
	if c.Col == 0 {
		if c.Row > 0 {
			c.Row--
			c.Col = e.rows[c.Row].Len()
		}
		return
	}
	chars := e.rows[c.Row].chars
	x := c.Col
	for x > 0 && !isWordChar(chars[x-1]) {
		x--
	}
	for x > 0 && isWordChar(chars[x-1]) {
		x--
	}
	c.Col = x
}

func (e *Editor) moveWordRightSingle(c *Position) {
	if c.Row >= len(e.rows) {
		return
	}
	chars := e.rows[c.Row].chars
	if c.Col >= len(chars) {
		if c.Row < len(e.rows)-1 {
			c.Row++
			c.Col = 0
		}
		return
	}
	x := c.Col
	for x < len(chars) && isWordChar(chars[x]) {
		x++
	}
	for x < len(chars) && !isWordChar(chars[x]) {
		x++
	}
	c.Col = x
}

func (e *Editor) cursorsMoveWordLeft() {
	if !e.followPrimary {
		return
	}
	for i := range e.cursors {
		e.moveWordLeftSingle(&e.cursors[i])
	}
	e.dedupCursors()
}

func (e *Editor) cursorsMoveWordRight() {
	if !e.followPrimary {
		return
	}
	for i := range e.cursors {
		e.moveWordRightSingle(&e.cursors[i])
	}
	e.dedupCursors()
}
