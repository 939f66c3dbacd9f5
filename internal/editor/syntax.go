package editor

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/castlight/quill/internal/config"
	"github.com/castlight/quill/internal/logger"
)

// Highlight classes, one per render byte.
const (
	hlNormal byte = iota
	hlComment
	hlMLComment
	hlKeyword1
	hlKeyword2
	hlString
	hlNumber
	hlMatch
	hlBracketMatch
)

func classFromName(name string) byte {
	switch strings.ToLower(name) {
	case "comment":
		return hlComment
	case "keyword1", "keyword":
		return hlKeyword1
	case "keyword2", "type":
		return hlKeyword2
	case "string":
		return hlString
	case "number":
		return hlNumber
	default:
		return hlNormal
	}
}

// selectSyntax picks the language for the current filename and reruns
// the analyser over the whole buffer.
func (e *Editor) selectSyntax() {
	e.syntax = nil
	e.patterns = nil
	if e.filename == "" {
		e.rescanAllSyntax()
		return
	}
	e.syntax = e.langs.Match(filepath.Base(e.filename))
	if e.syntax != nil {
		for _, p := range e.syntax.Patterns {
			re, err := regexp.Compile(p.Regex)
			if err != nil {
				logger.Warn("skipping syntax pattern", "regex", p.Regex, "err", err)
				continue
			}
			e.patterns = append(e.patterns, compiledPattern{re: re, class: classFromName(p.Class)})
		}
	}
	e.rescanAllSyntax()
}

func (e *Editor) rescanAllSyntax() {
	for i := range e.rows {
		e.scanRowSyntax(i)
	}
}

// updateSyntax rescans row i and, when its open-comment state flips,
// keeps rescanning the following rows until the state settles. Iterative
// on purpose: a file alternating comment state on every row must not
// grow the stack.
func (e *Editor) updateSyntax(i int) {
	for i >= 0 && i < len(e.rows) {
		if !e.scanRowSyntax(i) {
			return
		}
		i++
	}
}

// scanRowSyntax classifies one row. Returns true when the row's
// openComment flag changed, meaning the next row needs a rescan.
func (e *Editor) scanRowSyntax(i int) bool {
	row := e.rows[i]
	row.highlight = make([]byte, len(row.render))

	if e.syntax == nil {
		changed := row.openComment
		row.openComment = false
		return changed
	}

	lineComment := []byte(e.syntax.LineComment)
	mlStart := []byte(e.syntax.BlockComment[0])
	mlEnd := []byte(e.syntax.BlockComment[1])

	prevSep := true
	var inString byte
	inComment := i > 0 && e.rows[i-1].openComment

	if len(e.patterns) > 0 && !inComment {
		for _, p := range e.patterns {
			if loc := p.re.FindIndex(row.render); loc != nil {
				for k := loc[0]; k < loc[1] && k < len(row.highlight); k++ {
					row.highlight[k] = p.class
				}
			}
		}
	}

	pos := 0
	for pos < len(row.render) {
		c := row.render[pos]
		prevHL := hlNormal
		if pos > 0 {
			prevHL = row.highlight[pos-1]
		}

		if len(lineComment) > 0 && inString == 0 && !inComment {
			if bytes.HasPrefix(row.render[pos:], lineComment) {
				for k := pos; k < len(row.render); k++ {
					row.highlight[k] = hlComment
				}
				break
			}
		}

		if len(mlStart) > 0 && len(mlEnd) > 0 && inString == 0 {
			if inComment {
				row.highlight[pos] = hlMLComment
				if bytes.HasPrefix(row.render[pos:], mlEnd) {
					for k := pos; k < pos+len(mlEnd) && k < len(row.highlight); k++ {
						row.highlight[k] = hlMLComment
					}
					pos += len(mlEnd)
					inComment = false
					prevSep = true
					continue
				}
				pos++
				continue
			} else if bytes.HasPrefix(row.render[pos:], mlStart) {
				for k := pos; k < pos+len(mlStart) && k < len(row.highlight); k++ {
					row.highlight[k] = hlMLComment
				}
				pos += len(mlStart)
				inComment = true
				continue
			}
		}

		if e.syntax.Flags&config.HighlightStrings != 0 {
			if inString != 0 {
				row.highlight[pos] = hlString
				if c == '\\' && pos+1 < len(row.render) {
					row.highlight[pos+1] = hlString
					pos += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				pos++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				inString = c
				row.highlight[pos] = hlString
				pos++
				continue
			}
		}

		if e.syntax.Flags&config.HighlightNumbers != 0 {
			if (c >= '0' && c <= '9' && (prevSep || prevHL == hlNumber)) ||
				(c == '.' && prevHL == hlNumber) {
				row.highlight[pos] = hlNumber
				pos++
				prevSep = false
				continue
			}
		}

		if prevSep {
			matched := false
			for _, kw := range e.syntax.Keywords {
				class := hlKeyword1
				if strings.HasSuffix(kw, "|") {
					kw = kw[:len(kw)-1]
					class = hlKeyword2
				}
				if !bytes.HasPrefix(row.render[pos:], []byte(kw)) {
					continue
				}
				after := byte(0)
				if pos+len(kw) < len(row.render) {
					after = row.render[pos+len(kw)]
				}
				if !isSeparator(after) {
					continue
				}
				for k := pos; k < pos+len(kw); k++ {
					row.highlight[k] = class
				}
				pos += len(kw)
				matched = true
				break
			}
			if matched {
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
		pos++
	}

	changed := row.openComment != inComment
	row.openComment = inComment
	return changed
}
