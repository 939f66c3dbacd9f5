// Package editor implements the editing core: the row store and its
// derived render and highlight state, the selection and multi-cursor
// models, editing operations with undo, bracket matching, search, and
// the viewport.
package editor

import (
	"fmt"
	"regexp"
	"time"

	"github.com/castlight/quill/internal/config"
	"github.com/castlight/quill/internal/logger"
	"github.com/castlight/quill/internal/terminal"
	"github.com/castlight/quill/internal/theme"
)

const (
	quitPresses   = 3
	statusTimeout = 5 * time.Second
)

// Position is a file coordinate: row index and column into chars.
type Position struct {
	Row int
	Col int
}

func positionLess(a, b Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

type compiledPattern struct {
	re    *regexp.Regexp
	class byte
}

// Editor is the single editor instance. It owns all state; collaborators
// (terminal, clipboard bridge, file system) are reached through the
// fields set up by the app layer.
type Editor struct {
	rows    []*Row
	cursorY int
	cursorX int
	renderX int

	rowOffset   int
	colOffset   int
	screenRows  int
	screenCols  int
	gutterWidth int
	totalRows   int // full terminal height, before reserved bars
	dirty       int
	filename    string
	branch      string
	statusMsg   string
	statusTime  time.Time

	langs    config.Languages
	syntax   *config.Language
	patterns []compiledPattern
	themes   *theme.Registry

	sel           Selection
	cursors       []Position
	followPrimary bool
	allowOverlap  bool

	undoStack    []undoEntry
	undoGroupID  int
	undoPosition int
	undoSuspend  bool
	lastEditTime time.Time

	bracket bracketState

	searchResults []SearchResult

	softWrap     bool
	centerScroll bool
	showNumbers  bool
	wrapColumn   int
	tabStop      int
	indentWidth  int

	scrollSpeed    int
	lastScrollTime time.Time

	clipboard    string
	lastSysClip  string
	systemBridge bool

	menuBarVisible bool
	menuOpen       int
	menuSelected   int
	menuJustOpened bool

	lastKeyWasHome bool
	quitRemaining  int
	quitRequested  bool
	dragging       bool

	// Terminal hooks, nil under test.
	input *terminal.Decoder
	out   frameWriter
}

type frameWriter interface {
	Write(p []byte) (int, error)
}

// New builds an empty editor from configuration.
func New(cfg config.Config, langs config.Languages, themes *theme.Registry) *Editor {
	e := &Editor{
		langs:          langs,
		themes:         themes,
		followPrimary:  true,
		softWrap:       cfg.Editor.SoftWrap,
		centerScroll:   cfg.Editor.CenterScroll,
		showNumbers:    cfg.Editor.LineNumbers,
		wrapColumn:     cfg.Editor.WrapColumn,
		tabStop:        cfg.Editor.TabStop,
		indentWidth:    cfg.Editor.IndentWidth,
		menuBarVisible: cfg.Editor.MenuBar,
		menuOpen:       -1,
		scrollSpeed:    1,
		quitRemaining:  quitPresses,
		systemBridge:   true,
	}
	if e.tabStop <= 0 {
		e.tabStop = 8
	}
	if e.indentWidth <= 0 {
		e.indentWidth = 4
	}
	e.lastScrollTime = time.Now()
	e.lastEditTime = time.Now()
	e.resetBracketMatch()
	e.updateGutterWidth()
	return e
}

// AttachTerminal wires the input decoder and output writer used by the
// prompt loop and the renderer.
func (e *Editor) AttachTerminal(in *terminal.Decoder, out frameWriter) {
	e.input = in
	e.out = out
}

// SetScreenSize installs the terminal geometry, reserving rows for the
// status bar, the message bar, and the menu bar when visible.
func (e *Editor) SetScreenSize(rows, cols int) {
	if cols < 10 {
		cols = 10
	}
	if rows < 3 {
		rows = 3
	}
	e.totalRows = rows
	e.screenCols = cols
	reserved := 2
	if e.menuBarVisible {
		reserved++
	}
	e.screenRows = rows - reserved
	if e.screenRows < 1 {
		e.screenRows = 1
	}
	e.updateGutterWidth()
	e.clampCursor()
	e.rowOffset = 0
	e.colOffset = 0
	if e.softWrap {
		e.recalculateWrapBreaks()
	}
}

// SetGitBranch updates the branch shown in the status bar.
func (e *Editor) SetGitBranch(branch string) {
	e.branch = branch
}

// Filename returns the backing file path, "" when unnamed.
func (e *Editor) Filename() string {
	return e.filename
}

// Dirty reports whether the buffer has unsaved mutations.
func (e *Editor) Dirty() bool {
	return e.dirty > 0
}

// RowCount returns the number of rows in the buffer.
func (e *Editor) RowCount() int {
	return len(e.rows)
}

// Cursor returns the primary cursor position.
func (e *Editor) Cursor() Position {
	return Position{Row: e.cursorY, Col: e.cursorX}
}

// SetStatus formats a transient message for the message bar.
func (e *Editor) SetStatus(format string, args ...interface{}) {
	e.statusMsg = fmt.Sprintf(format, args...)
	e.statusTime = time.Now()
}

// StatusMessage returns the current message, "" once it has faded.
func (e *Editor) StatusMessage() string {
	if time.Since(e.statusTime) > statusTimeout {
		return ""
	}
	return e.statusMsg
}

func (e *Editor) updateGutterWidth() {
	if !e.showNumbers {
		e.gutterWidth = 0
		return
	}
	digits := len(fmt.Sprintf("%d", len(e.rows)))
	if digits < 1 {
		digits = 1
	}
	e.gutterWidth = digits + 1
}

func (e *Editor) clampCursor() {
	if e.cursorY > len(e.rows) {
		e.cursorY = len(e.rows)
	}
	if e.cursorY < len(e.rows) {
		if n := e.rows[e.cursorY].Len(); e.cursorX > n {
			e.cursorX = n
		}
	} else {
		e.cursorX = 0
	}
}

func (e *Editor) currentRow() *Row {
	if e.cursorY >= 0 && e.cursorY < len(e.rows) {
		return e.rows[e.cursorY]
	}
	return nil
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isSeparator(c byte) bool {
	if isWhitespace(c) || c == 0 {
		return true
	}
	switch c {
	case ',', '.', '(', ')', '+', '-', '/', '*', '=', '~', '%', '<', '>', '[', ']', ';':
		return true
	}
	return false
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func isPunct(c byte) bool {
	return c >= '!' && c <= '~' && !isWordChar(c)
}

// ProcessKey dispatches one decoded key. It returns true when the editor
// should terminate.
func (e *Editor) ProcessKey(key terminal.Key) bool {
	if e.menuOpen >= 0 && e.handleMenuKey(key) {
		return e.quitRequested
	}

	if key == terminal.KeyF10 && e.menuBarVisible {
		if e.menuOpen >= 0 {
			e.menuOpen = -1
		} else {
			e.menuOpen = 0
			e.menuSelected = 0
		}
		return false
	}

	if key != terminal.KeyHome {
		e.lastKeyWasHome = false
	}
	if key != terminal.Ctrl('q') {
		e.quitRemaining = quitPresses
	}

	switch key {
	case terminal.Key('\r'):
		e.InsertNewline()

	case terminal.Ctrl('q'):
		if e.Dirty() && e.quitRemaining > 1 {
			e.quitRemaining--
			e.SetStatus("Unsaved changes. Save with Ctrl-S, or press Ctrl-Q %d more times to quit anyway.", e.quitRemaining)
			return false
		}
		return true

	case terminal.Ctrl('s'):
		e.Save()

	case terminal.KeyHome:
		e.smartHome()

	case terminal.KeyEnd:
		e.ClearSelection()
		if row := e.currentRow(); row != nil {
			e.cursorX = row.Len()
		}
		if len(e.cursors) > 0 {
			e.cursorsApplyEnd()
		}

	case terminal.Ctrl('f'):
		e.Find()

	case terminal.Ctrl('a'):
		e.SelectAll()

	case terminal.Ctrl('g'):
		e.JumpToLine()

	case terminal.KeyAltT:
		name := e.themes.Cycle()
		e.saveUIPreferences()
		e.SetStatus("Theme: %s", name)

	case terminal.KeyAltL:
		e.ToggleLineNumbers()

	case terminal.KeyAltQ:
		e.ReflowParagraph()

	case terminal.KeyAltJ:
		e.JoinParagraph()

	case terminal.KeyAltW:
		e.ToggleSoftWrap()

	case terminal.KeyAltZ:
		e.ToggleCenterScroll()

	case terminal.KeyAltOpenBracket:
		e.SkipOpeningPair()

	case terminal.KeyAltCloseBracket:
		e.SkipClosingPair()

	case terminal.KeyAltM:
		e.menuBarVisible = !e.menuBarVisible
		e.menuOpen = -1
		e.SetScreenSize(e.totalRows, e.screenCols)

	case terminal.KeyBackspace, terminal.Ctrl('h'), terminal.KeyDelete:
		if key == terminal.KeyDelete {
			e.MoveCursor(terminal.KeyArrowRight)
		}
		e.DeleteChar()

	case terminal.KeyPageUp, terminal.KeyPageDown:
		e.movePage(key)

	case terminal.KeyArrowUp, terminal.KeyArrowDown, terminal.KeyArrowLeft, terminal.KeyArrowRight:
		e.ClearSelection()
		e.MoveCursor(key)
		if len(e.cursors) > 0 {
			e.cursorsMoveAll(key)
		}

	case terminal.KeyShiftUp, terminal.KeyShiftDown, terminal.KeyShiftLeft, terminal.KeyShiftRight:
		if !e.sel.Active {
			e.StartSelection()
		}
		e.MoveCursor(arrowForShift(key))
		e.ExtendSelection()

	case terminal.KeyShiftHome:
		if !e.sel.Active {
			e.StartSelection()
		}
		e.cursorX = 0
		e.ExtendSelection()

	case terminal.KeyShiftEnd:
		if !e.sel.Active {
			e.StartSelection()
		}
		if row := e.currentRow(); row != nil {
			e.cursorX = row.Len()
		}
		e.ExtendSelection()

	case terminal.KeyCtrlLeft:
		e.ClearSelection()
		e.MoveWordLeft()
		if len(e.cursors) > 0 {
			e.cursorsMoveWordLeft()
		}

	case terminal.KeyCtrlRight:
		e.ClearSelection()
		e.MoveWordRight()
		if len(e.cursors) > 0 {
			e.cursorsMoveWordRight()
		}

	case terminal.Ctrl('w'):
		e.ClearSelection()
		e.DeleteWordBackward()

	case terminal.KeyCtrlDelete:
		e.ClearSelection()
		e.DeleteWordForward()

	case terminal.Ctrl('c'):
		e.Copy()

	case terminal.Ctrl('x'):
		e.Cut()

	case terminal.Ctrl('v'):
		e.Paste()

	case terminal.Ctrl('z'):
		e.Undo()

	case terminal.Ctrl('y'):
		e.Redo()

	case terminal.Ctrl('d'):
		e.DuplicateLine()

	case terminal.Ctrl('k'):
		e.DeleteLine()

	case terminal.Ctrl('j'):
		e.JoinLines()

	case terminal.KeyAltShiftUp:
		e.MoveLineUp()

	case terminal.KeyAltShiftDown:
		e.MoveLineDown()

	case terminal.KeyAltUp:
		e.AddCursorAbove()

	case terminal.KeyAltDown:
		e.AddCursorBelow()

	case terminal.KeyAltC:
		e.AddCursorAtPrimary()

	case terminal.KeyAltV:
		e.AddCursorAtPrimaryAndAdvance()

	case terminal.KeyMouse:
		if e.input != nil {
			e.HandleMouse(e.input.Mouse())
		}

	case terminal.Ctrl(']'):
		e.JumpToMatchingBracket()

	case terminal.Key(31): // Ctrl+/
		e.ToggleLineComment()

	case terminal.Ctrl('\\'):
		e.ToggleBlockComment()

	case terminal.KeyEscape:
		if n := len(e.cursors); n > 0 {
			e.ClearCursors()
			e.SetStatus("Cleared %d secondary cursor(s)", n)
		}
		e.ClearSelection()

	case terminal.Key('\t'):
		e.IndentLine()

	case terminal.KeyShiftTab:
		e.UnindentLine()

	default:
		if key > 0 && key < 256 {
			e.InsertChar(byte(key))
		}
	}
	return e.quitRequested
}

func arrowForShift(key terminal.Key) terminal.Key {
	switch key {
	case terminal.KeyShiftUp:
		return terminal.KeyArrowUp
	case terminal.KeyShiftDown:
		return terminal.KeyArrowDown
	case terminal.KeyShiftLeft:
		return terminal.KeyArrowLeft
	default:
		return terminal.KeyArrowRight
	}
}

func (e *Editor) smartHome() {
	e.ClearSelection()
	firstNonWS := 0
	if row := e.currentRow(); row != nil {
		firstNonWS = row.FirstNonWhitespace()
	}
	if e.lastKeyWasHome {
		if e.cursorX == 0 {
			e.cursorX = firstNonWS
		} else {
			e.cursorX = 0
		}
	} else {
		if e.cursorX == firstNonWS || firstNonWS == 0 {
			e.cursorX = 0
		} else {
			e.cursorX = firstNonWS
		}
	}
	e.lastKeyWasHome = true
	if len(e.cursors) > 0 {
		e.cursorsApplyHome(e.cursorX != 0)
	}
}

func (e *Editor) movePage(key terminal.Key) {
	originalRow := e.cursorY
	e.ClearSelection()
	if key == terminal.KeyPageUp {
		e.cursorY = e.rowOffset
	} else {
		e.cursorY = e.rowOffset + e.screenRows - 1
		if e.cursorY > len(e.rows) {
			e.cursorY = len(e.rows)
		}
	}
	times := e.screenRows
	arrow := terminal.KeyArrowDown
	if key == terminal.KeyPageUp {
		arrow = terminal.KeyArrowUp
	}
	for ; times > 0; times-- {
		e.MoveCursor(arrow)
	}
	if len(e.cursors) > 0 {
		e.cursorsApplyVerticalDelta(e.cursorY - originalRow)
	}
}

func (e *Editor) saveUIPreferences() {
	cfg := config.Default()
	if loaded, err := config.Load(); err == nil {
		cfg = loaded
	}
	cfg.Editor.Theme = e.themes.Name()
	cfg.Editor.LineNumbers = e.showNumbers
	if err := config.Save(cfg); err != nil {
		logger.Warn("saving preferences", "err", err)
	}
}

// ToggleLineNumbers flips the gutter and persists the preference.
func (e *Editor) ToggleLineNumbers() {
	e.showNumbers = !e.showNumbers
	e.updateGutterWidth()
	e.saveUIPreferences()
	if e.showNumbers {
		e.SetStatus("Line numbers ON")
	} else {
		e.SetStatus("Line numbers OFF")
	}
}

// ToggleSoftWrap flips soft wrap and rebuilds wrap breaks.
func (e *Editor) ToggleSoftWrap() {
	e.softWrap = !e.softWrap
	if e.softWrap {
		e.recalculateWrapBreaks()
		e.SetStatus("Soft wrap ON")
	} else {
		e.SetStatus("Soft wrap OFF")
	}
}

// ToggleCenterScroll flips typewriter scrolling.
func (e *Editor) ToggleCenterScroll() {
	e.centerScroll = !e.centerScroll
	if e.centerScroll {
		e.SetStatus("Center scroll ON")
	} else {
		e.SetStatus("Center scroll OFF")
	}
}
