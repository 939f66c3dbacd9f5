package editor

import (
	"fmt"

	"github.com/castlight/quill/internal/terminal"
	"github.com/castlight/quill/internal/theme"
)

// Version is stamped by the build; the welcome banner and about box show it.
var Version = "dev"

// Refresh recomputes scroll and bracket state, renders one frame, and
// writes it to the terminal in a single call.
func (e *Editor) Refresh() {
	frame := e.RenderFrame()
	if e.out != nil {
		_, _ = e.out.Write(frame.Bytes())
	}
}

// RenderFrame builds the full screen frame for the current state.
func (e *Editor) RenderFrame() *terminal.Frame {
	e.Scroll()
	e.FindMatchingBracket()

	f := &terminal.Frame{}
	bg := e.themes.Color(theme.UIBackground)
	fg := e.themes.Color(theme.UIForeground)
	f.Background(bg.R, bg.G, bg.B)
	f.Foreground(fg.R, fg.G, fg.B)
	f.WriteString(terminal.HideCursor)
	f.WriteString(terminal.CursorHome)

	if e.menuBarVisible {
		e.drawMenuBar(f)
	}
	e.drawRows(f)
	e.drawStatusBar(f)
	e.drawMessageBar(f)
	if e.menuOpen >= 0 {
		e.drawMenuDropdown(f)
	}

	cursorRow := e.cursorScreenRow()
	f.MoveCursor(cursorRow, (e.renderX-e.colOffset)+e.gutterWidth+1)

	e.drawSecondaryCursors(f)
	f.WriteString(terminal.ShowCursor)
	return f
}

func (e *Editor) cursorScreenRow() int {
	var row int
	if e.softWrap {
		cursorVisual := e.visualRowsUpTo(e.cursorY-1) + e.cursorWrapSegment()
		row = cursorVisual - e.rowOffset + 1
	} else {
		row = e.cursorY - e.rowOffset + 1
	}
	if e.menuBarVisible {
		row++
	}
	return row
}

// drawSecondaryCursors emits kitty protocol marks for every on-screen
// secondary cursor, clearing the previous set first.
func (e *Editor) drawSecondaryCursors(f *terminal.Frame) {
	f.WriteString(terminal.KittyCursorsClear)
	for _, c := range e.cursors {
		if c.Row < 0 || c.Row >= len(e.rows) {
			continue
		}
		screenRow := c.Row - e.rowOffset + 1
		if e.softWrap {
			row := e.rows[c.Row]
			rx := row.CursorToRender(c.Col, e.tabStop)
			screenRow = e.visualRowsUpTo(c.Row-1) + row.wrapSegmentFor(rx) - e.rowOffset + 1
		}
		if e.menuBarVisible {
			screenRow++
		}
		renderCol := e.rows[c.Row].CursorToRender(c.Col, e.tabStop)
		screenCol := renderCol - e.colOffset + e.gutterWidth + 1
		if screenRow < 1 || screenRow > e.screenRows {
			continue
		}
		if screenCol < 1 || screenCol > e.screenCols {
			continue
		}
		f.KittyCursor(screenRow, screenCol)
	}
}

func (e *Editor) syntaxColor(hl byte) theme.RGB {
	switch hl {
	case hlComment, hlMLComment:
		return e.themes.Color(theme.SyntaxComment)
	case hlKeyword1:
		return e.themes.Color(theme.SyntaxKeyword1)
	case hlKeyword2:
		return e.themes.Color(theme.SyntaxKeyword2)
	case hlString:
		return e.themes.Color(theme.SyntaxString)
	case hlNumber:
		return e.themes.Color(theme.SyntaxNumber)
	case hlMatch, hlBracketMatch:
		return e.themes.Color(theme.SyntaxMatch)
	default:
		return e.themes.Color(theme.SyntaxNormal)
	}
}

// bracketHighlightAt reports whether a render position sits on one of
// the matched pair's delimiters.
func (e *Editor) bracketHighlightAt(fileRow, rx int) bool {
	if e.bracket.openRow < 0 {
		return false
	}
	check := func(row, col, length int) bool {
		if row != fileRow || row >= len(e.rows) {
			return false
		}
		start := e.rows[row].CursorToRender(col, e.tabStop)
		end := e.rows[row].CursorToRender(col+length, e.tabStop)
		return rx >= start && rx < end
	}
	return check(e.bracket.openRow, e.bracket.openCol, e.bracket.openLen) ||
		check(e.bracket.closeRow, e.bracket.closeCol, e.bracket.closeLen)
}

// selectionRenderSpan maps the selection onto render columns for one
// row. ok is false when the row is outside the selection.
func (e *Editor) selectionRenderSpan(fileRow int) (int, int, bool) {
	if !e.sel.Active {
		return 0, 0, false
	}
	start, end := e.NormalizedSelection()
	if fileRow < start.Row || fileRow > end.Row {
		return 0, 0, false
	}
	row := e.rows[fileRow]
	from := 0
	to := len(row.render)
	if fileRow == start.Row {
		from = row.CursorToRender(start.Col, e.tabStop)
	}
	if fileRow == end.Row {
		to = row.CursorToRender(end.Col, e.tabStop)
	}
	return from, to, from < to || fileRow < end.Row
}

func (e *Editor) drawRows(f *terminal.Frame) {
	bg := e.themes.Color(theme.UIBackground)
	selBG := e.themes.Color(theme.SelectionBackground)
	numFG := e.themes.Color(theme.LineNumber)
	numActiveFG := e.themes.Color(theme.LineNumberActive)

	for screenY := 0; screenY < e.screenRows; screenY++ {
		visualRow := screenY + e.rowOffset
		fileRow, segment, ok := e.visualToLogical(visualRow)

		if !ok || fileRow >= len(e.rows) {
			if len(e.rows) == 0 && screenY == e.screenRows/3 {
				e.drawWelcome(f)
			} else {
				f.WriteString("~")
			}
			f.WriteString(terminal.ClearLine)
			f.WriteString("\r\n")
			continue
		}

		row := e.rows[fileRow]

		if e.gutterWidth > 0 {
			if segment == 0 {
				if fileRow == e.cursorY {
					f.Foreground(numActiveFG.R, numActiveFG.G, numActiveFG.B)
				} else {
					f.Foreground(numFG.R, numFG.G, numFG.B)
				}
				f.WriteString(fmt.Sprintf("%*d ", e.gutterWidth-1, fileRow+1))
			} else {
				f.WriteString(fmt.Sprintf("%*s ", e.gutterWidth-1, ""))
			}
		}

		segStart := 0
		segEnd := len(row.render)
		if e.softWrap {
			segStart = row.wrapSegmentStart(segment)
			segEnd = row.wrapSegmentEnd(segment)
		} else {
			segStart = e.colOffset
			segEnd = min(len(row.render), e.colOffset+e.screenCols-e.gutterWidth)
		}

		selFrom, selTo, selOK := e.selectionRenderSpan(fileRow)
		var lastColor theme.RGB
		inSelection := false
		first := true

		for rx := segStart; rx < segEnd && rx < len(row.render); rx++ {
			selected := selOK && rx >= selFrom && rx < selTo
			hl := row.highlight[rx]
			if e.bracketHighlightAt(fileRow, rx) {
				hl = hlBracketMatch
			}
			color := e.syntaxColor(hl)

			if selected != inSelection || first {
				if selected {
					f.Background(selBG.R, selBG.G, selBG.B)
				} else {
					f.Background(bg.R, bg.G, bg.B)
				}
				inSelection = selected
			}
			if color != lastColor || first {
				f.Foreground(color.R, color.G, color.B)
				lastColor = color
			}
			first = false
			f.WriteByte(row.render[rx])
		}
		if inSelection {
			f.Background(bg.R, bg.G, bg.B)
		}
		fg := e.themes.Color(theme.UIForeground)
		f.Foreground(fg.R, fg.G, fg.B)
		f.WriteString(terminal.ClearLine)
		f.WriteString("\r\n")
	}
}

func (e *Editor) drawWelcome(f *terminal.Frame) {
	welcome := fmt.Sprintf("quill editor -- version %s", Version)
	if len(welcome) > e.screenCols {
		welcome = welcome[:e.screenCols]
	}
	padding := (e.screenCols - len(welcome)) / 2
	if padding > 0 {
		f.WriteString("~")
		for i := 1; i < padding; i++ {
			f.WriteString(" ")
		}
	}
	f.WriteString(welcome)
}

func (e *Editor) drawMenuBar(f *terminal.Frame) {
	bg := e.themes.Color(theme.MenuBackground)
	fg := e.themes.Color(theme.MenuForeground)
	f.Background(bg.R, bg.G, bg.B)
	f.Foreground(fg.R, fg.G, fg.B)

	defs := menus()
	menuPositions(defs)
	col := 0
	for i, def := range defs {
		for col < def.xPos {
			f.WriteString(" ")
			col++
		}
		if i == e.menuOpen {
			f.WriteString(terminal.ReverseVideo)
		}
		f.WriteString(" " + def.title + " ")
		if i == e.menuOpen {
			f.WriteString(terminal.ResetAttributes)
			f.Background(bg.R, bg.G, bg.B)
			f.Foreground(fg.R, fg.G, fg.B)
		}
		col += len(def.title) + 2
	}
	for col < e.screenCols {
		f.WriteString(" ")
		col++
	}
	uiBG := e.themes.Color(theme.UIBackground)
	uiFG := e.themes.Color(theme.UIForeground)
	f.Background(uiBG.R, uiBG.G, uiBG.B)
	f.Foreground(uiFG.R, uiFG.G, uiFG.B)
	f.WriteString("\r\n")
}

func (e *Editor) drawMenuDropdown(f *terminal.Frame) {
	defs := menus()
	menuPositions(defs)
	if e.menuOpen < 0 || e.menuOpen >= len(defs) {
		return
	}
	def := defs[e.menuOpen]
	width := menuWidth(def)
	bg := e.themes.Color(theme.MenuBackground)
	fg := e.themes.Color(theme.MenuForeground)
	selBG := e.themes.Color(theme.MenuSelectedBackground)

	for i, item := range def.items {
		f.MoveCursor(i+2, def.xPos+1)
		if i == e.menuSelected {
			f.Background(selBG.R, selBG.G, selBG.B)
		} else {
			f.Background(bg.R, bg.G, bg.B)
		}
		f.Foreground(fg.R, fg.G, fg.B)
		f.WriteString(fmt.Sprintf(" %-*s ", width-2, item.label))
	}
	uiBG := e.themes.Color(theme.UIBackground)
	f.Background(uiBG.R, uiBG.G, uiBG.B)
}

func (e *Editor) drawStatusBar(f *terminal.Frame) {
	bg := e.themes.Color(theme.StatusBackground)
	fg := e.themes.Color(theme.StatusForeground)
	f.Background(bg.R, bg.G, bg.B)
	f.Foreground(fg.R, fg.G, fg.B)

	name := e.filename
	if name == "" {
		name = "[No Name]"
	}
	dirtyMark := ""
	if e.Dirty() {
		dirtyMark = " (modified)"
	}
	filetype := "no ft"
	if e.syntax != nil {
		filetype = e.syntax.Name
	}
	left := fmt.Sprintf(" %.20s - %d lines%s", name, len(e.rows), dirtyMark)
	if e.branch != "" {
		left += " | " + e.branch
	}
	right := fmt.Sprintf("%s | %d/%d ", filetype, e.cursorY+1, len(e.rows))

	if len(left) > e.screenCols {
		left = left[:e.screenCols]
	}
	f.WriteString(left)
	for col := len(left); col < e.screenCols; col++ {
		if e.screenCols-col == len(right) {
			f.WriteString(right)
			break
		}
		f.WriteString(" ")
	}
	uiBG := e.themes.Color(theme.UIBackground)
	uiFG := e.themes.Color(theme.UIForeground)
	f.Background(uiBG.R, uiBG.G, uiBG.B)
	f.Foreground(uiFG.R, uiFG.G, uiFG.B)
	f.WriteString("\r\n")
}

func (e *Editor) drawMessageBar(f *terminal.Frame) {
	f.WriteString(terminal.ClearLine)
	msg := e.StatusMessage()
	if len(msg) > e.screenCols {
		msg = msg[:e.screenCols]
	}
	msgFG := e.themes.Color(theme.MessageForeground)
	f.Foreground(msgFG.R, msgFG.G, msgFG.B)
	f.WriteString(msg)
	fg := e.themes.Color(theme.UIForeground)
	f.Foreground(fg.R, fg.G, fg.B)
}
