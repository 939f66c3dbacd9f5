package editor

import (
	"os/exec"
	"strings"
)

// The system bridge shells out to xsel, falling back to xclip. Both
// absent leaves the internal clipboard fully usable.

func writeSystemClipboard(text string) bool {
	for _, args := range [][]string{
		{"xsel", "--clipboard", "--input"},
		{"xclip", "-selection", "clipboard"},
	} {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return true
		}
	}
	return false
}

func readSystemClipboard() (string, bool) {
	for _, args := range [][]string{
		{"xsel", "--clipboard", "--output"},
		{"xclip", "-selection", "clipboard", "-o"},
	} {
		out, err := exec.Command(args[0], args[1:]...).Output()
		if err == nil && len(out) > 0 {
			return string(out), true
		}
	}
	return "", false
}

// clipboardStore saves text internally and pushes it to the system
// clipboard when the bridge is on.
func (e *Editor) clipboardStore(text string) {
	e.clipboard = text
	if e.systemBridge && writeSystemClipboard(text) {
		e.lastSysClip = text
	}
}

// clipboardSmartMerge imports external clipboard content that changed
// since the last sync, so a paste picks up what other programs copied.
func (e *Editor) clipboardSmartMerge() {
	if !e.systemBridge {
		return
	}
	system, ok := readSystemClipboard()
	if !ok {
		return
	}
	if system != e.lastSysClip {
		e.clipboard = system
		e.lastSysClip = system
	}
}

// Copy places the selection on the clipboard.
func (e *Editor) Copy() {
	if !e.sel.Active {
		return
	}
	text := e.SelectedText()
	if text == "" {
		return
	}
	e.clipboardStore(text)
	e.SetStatus("Copied %d chars", len(text))
}

// Cut copies then deletes the selection.
func (e *Editor) Cut() {
	if !e.sel.Active {
		return
	}
	e.Copy()
	e.DeleteSelection()
	e.SetStatus("Cut to clipboard")
}

// Paste inserts the clipboard at the cursor as one undo group. A
// pending selection is replaced.
func (e *Editor) Paste() {
	e.clipboardSmartMerge()
	if e.clipboard == "" {
		e.SetStatus("Clipboard empty")
		return
	}
	if e.sel.Active {
		e.DeleteSelection()
	}

	start := Position{Row: e.cursorY, Col: e.cursorX}
	text := e.clipboard

	e.undoSuspend = true
	e.insertTextLiteral(text)
	e.undoSuspend = false

	e.undoLog(undoPaste, start, start.Row, start.Col, 0,
		Position{Row: e.cursorY, Col: e.cursorX}, text)
	e.SetStatus("Pasted")
}
