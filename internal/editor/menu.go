package editor

import (
	"github.com/castlight/quill/internal/terminal"
)

// The menu bar is thin UI over the same core operations; every item
// dispatches into an editor method.
type menuItem struct {
	label  string
	action func(e *Editor)
}

type menuDef struct {
	title string
	items []menuItem
	xPos  int
}

func menus() []menuDef {
	return []menuDef{
		{title: "File", items: []menuItem{
			{label: "Save       Ctrl-S", action: func(e *Editor) { e.Save() }},
			{label: "Quit       Ctrl-Q", action: func(e *Editor) {
				if e.Dirty() {
					e.SetStatus("Save first (Ctrl+S) or Ctrl+Q 3x to quit")
				} else {
					e.quitRequested = true
				}
			}},
		}},
		{title: "Edit", items: []menuItem{
			{label: "Undo       Ctrl-Z", action: func(e *Editor) { e.Undo() }},
			{label: "Redo       Ctrl-Y", action: func(e *Editor) { e.Redo() }},
			{label: "Copy       Ctrl-C", action: func(e *Editor) { e.Copy() }},
			{label: "Cut        Ctrl-X", action: func(e *Editor) { e.Cut() }},
			{label: "Paste      Ctrl-V", action: func(e *Editor) { e.Paste() }},
			{label: "Select All Ctrl-A", action: func(e *Editor) { e.SelectAll() }},
		}},
		{title: "View", items: []menuItem{
			{label: "Line Numbers  Alt-L", action: func(e *Editor) { e.ToggleLineNumbers() }},
			{label: "Soft Wrap     Alt-W", action: func(e *Editor) { e.ToggleSoftWrap() }},
			{label: "Center Scroll Alt-Z", action: func(e *Editor) { e.ToggleCenterScroll() }},
			{label: "Cycle Theme   Alt-T", action: func(e *Editor) { e.themes.Cycle(); e.saveUIPreferences() }},
		}},
		{title: "Help", items: []menuItem{
			{label: "About", action: func(e *Editor) { e.SetStatus("quill %s", Version) }},
		}},
	}
}

// menuPositions lays the titles across the bar.
func menuPositions(defs []menuDef) {
	x := 1
	for i := range defs {
		defs[i].xPos = x
		x += len(defs[i].title) + 3
	}
}

// handleMenuKey consumes keys while a dropdown is open. Returns true
// when the key was handled.
func (e *Editor) handleMenuKey(key terminal.Key) bool {
	defs := menus()
	switch key {
	case terminal.KeyEscape:
		e.menuOpen = -1
		return true
	case terminal.KeyArrowUp:
		if e.menuSelected > 0 {
			e.menuSelected--
		}
		return true
	case terminal.KeyArrowDown:
		if e.menuSelected < len(defs[e.menuOpen].items)-1 {
			e.menuSelected++
		}
		return true
	case terminal.KeyArrowLeft:
		e.menuOpen = (e.menuOpen + len(defs) - 1) % len(defs)
		e.menuSelected = 0
		return true
	case terminal.KeyArrowRight:
		e.menuOpen = (e.menuOpen + 1) % len(defs)
		e.menuSelected = 0
		return true
	case terminal.Key('\r'):
		e.executeMenuItem()
		return true
	case terminal.KeyMouse:
		return false
	default:
		e.menuOpen = -1
		return false
	}
}

func (e *Editor) executeMenuItem() {
	defs := menus()
	if e.menuOpen < 0 || e.menuOpen >= len(defs) {
		return
	}
	items := defs[e.menuOpen].items
	if e.menuSelected < 0 || e.menuSelected >= len(items) {
		return
	}
	action := items[e.menuSelected].action
	e.menuOpen = -1
	action(e)
}

func (e *Editor) menuBarClick(x int) {
	defs := menus()
	menuPositions(defs)
	for i, def := range defs {
		if x >= def.xPos && x < def.xPos+len(def.title)+2 {
			if e.menuOpen == i && !e.menuJustOpened {
				e.menuOpen = -1
			} else {
				e.menuOpen = i
				e.menuSelected = 0
				e.menuJustOpened = true
			}
			return
		}
	}
}

func (e *Editor) handleMenuMouse(m terminal.MouseEvent, screenX, screenY int) {
	if m.Release || m.Motion {
		if m.Release {
			e.menuJustOpened = false
		}
		return
	}
	if m.ButtonBase != terminal.MouseButtonLeft {
		return
	}
	if screenY == 0 {
		e.menuBarClick(screenX)
		return
	}
	defs := menus()
	menuPositions(defs)
	def := defs[e.menuOpen]
	itemRow := screenY - 1
	if itemRow >= 0 && itemRow < len(def.items) &&
		screenX >= def.xPos && screenX < def.xPos+menuWidth(def) {
		e.menuSelected = itemRow
		e.executeMenuItem()
		return
	}
	e.menuOpen = -1
}

func menuWidth(def menuDef) int {
	w := len(def.title)
	for _, item := range def.items {
		if len(item.label) > w {
			w = len(item.label)
		}
	}
	return w + 2
}
