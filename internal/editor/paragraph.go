package editor

import "bytes"

const wordBreakWindow = 20

// paragraphRange is a contiguous run of non-empty rows.
type paragraphRange struct {
	start int
	end   int
}

// detectParagraph finds the non-empty rows around line. Empty rows
// bound paragraphs.
func (e *Editor) detectParagraph(line int) paragraphRange {
	r := paragraphRange{start: line, end: line}
	for l := line; l >= 0; l-- {
		if e.rows[l].Len() == 0 {
			r.start = l + 1
			break
		}
		r.start = l
	}
	for l := line; l < len(e.rows); l++ {
		if e.rows[l].Len() == 0 {
			r.end = l - 1
			break
		}
		r.end = l
	}
	return r
}

// detectLinePrefix extracts a row's leading whitespace plus an optional
// comment marker ("//" or "*") and one following space. The prefix is
// re-applied to every re-wrapped line.
func detectLinePrefix(row *Row) []byte {
	if row.Len() == 0 {
		return nil
	}
	i := 0
	for i < row.Len() && (row.chars[i] == ' ' || row.chars[i] == '\t') {
		i++
	}
	if i < row.Len()-1 && row.chars[i] == '/' && row.chars[i+1] == '/' {
		i += 2
		if i < row.Len() && row.chars[i] == ' ' {
			i++
		}
	} else if i < row.Len() && row.chars[i] == '*' {
		i++
		if i < row.Len() && row.chars[i] == ' ' {
			i++
		}
	}
	if i == 0 {
		return nil
	}
	return append([]byte(nil), row.chars[:i]...)
}

// joinParagraphContent strips each row's prefix and concatenates the
// content with single spaces.
func (e *Editor) joinParagraphContent(para paragraphRange) []byte {
	var joined bytes.Buffer
	for l := para.start; l <= para.end; l++ {
		row := e.rows[l]
		start := len(detectLinePrefix(row))
		for start < row.Len() && isWhitespace(row.chars[start]) {
			start++
		}
		if start >= row.Len() {
			continue
		}
		if joined.Len() > 0 && !isWhitespace(joined.Bytes()[joined.Len()-1]) {
			joined.WriteByte(' ')
		}
		joined.Write(row.chars[start:])
	}
	return joined.Bytes()
}

// ReflowParagraph re-wraps the paragraph under the cursor at the wrap
// column, preserving the first line's prefix on every emitted row. The
// break lands on the latest blank within the lookback window, falling
// back to a hard break.
func (e *Editor) ReflowParagraph() {
	if e.wrapColumn == 0 {
		return
	}
	if e.cursorY >= len(e.rows) || e.rows[e.cursorY].Len() == 0 {
		return
	}

	para := e.detectParagraph(e.cursorY)
	prefix := detectLinePrefix(e.rows[para.start])
	width := e.wrapColumn - len(prefix)
	if width <= 0 {
		width = 1
	}

	if para.start == para.end && e.rows[para.start].Len() <= e.wrapColumn {
		e.SetStatus("Line already fits within wrap column %d", e.wrapColumn)
		return
	}

	joined := e.joinParagraphContent(para)
	for l := para.end; l >= para.start; l-- {
		e.DeleteRow(l)
	}

	line := para.start
	pos := 0
	for pos < len(joined) {
		for pos < len(joined) && isWhitespace(joined[pos]) {
			pos++
		}
		if pos >= len(joined) {
			break
		}
		remaining := len(joined) - pos
		lineLen := remaining
		if lineLen > width {
			lineLen = width
			for i := width; i > 0 && i > width-wordBreakWindow; i-- {
				if pos+i < len(joined) && isWhitespace(joined[pos+i]) {
					lineLen = i
					break
				}
			}
		}
		content := append(append([]byte(nil), prefix...), joined[pos:pos+lineLen]...)
		e.InsertRow(line, content)
		pos += lineLen
		line++
	}

	e.dirty++
	if e.cursorY >= len(e.rows) {
		e.cursorY = max(len(e.rows)-1, 0)
	}
	e.clampCursor()
	e.SetStatus("Reflowed paragraph at column %d", e.wrapColumn)
}

// JoinParagraph collapses the paragraph under the cursor to one line,
// keeping the first line's prefix.
func (e *Editor) JoinParagraph() {
	if e.cursorY >= len(e.rows) || e.rows[e.cursorY].Len() == 0 {
		return
	}
	para := e.detectParagraph(e.cursorY)
	if para.start == para.end {
		e.SetStatus("Already a single line")
		return
	}
	prefix := detectLinePrefix(e.rows[para.start])
	joined := e.joinParagraphContent(para)

	lines := para.end - para.start + 1
	for l := para.end; l >= para.start; l-- {
		e.DeleteRow(l)
	}
	e.InsertRow(para.start, append(append([]byte(nil), prefix...), joined...))

	e.dirty++
	if e.cursorY >= len(e.rows) {
		e.cursorY = max(len(e.rows)-1, 0)
	}
	e.clampCursor()
	e.SetStatus("Joined %d lines into 1", lines)
}
