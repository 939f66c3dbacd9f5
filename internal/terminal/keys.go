package terminal

// Key is a decoded key code. Printable and control bytes map to
// themselves; special keys start above the byte range so they can never
// collide with input bytes.
type Key int

const (
	KeyEscape    Key = 0x1b
	KeyBackspace Key = 127
)

const (
	KeyArrowLeft Key = 1000 + iota
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyShiftUp
	KeyShiftDown
	KeyShiftLeft
	KeyShiftRight
	KeyShiftHome
	KeyShiftEnd
	KeyShiftTab
	KeyCtrlLeft
	KeyCtrlRight
	KeyCtrlDelete
	KeyAltUp
	KeyAltDown
	KeyAltShiftUp
	KeyAltShiftDown
	KeyAltT
	KeyAltL
	KeyAltQ
	KeyAltJ
	KeyAltS
	KeyAltR
	KeyAltN
	KeyAltW
	KeyAltC
	KeyAltV
	KeyAltZ
	KeyAltM
	KeyAltOpenBracket
	KeyAltCloseBracket
	KeyF10
	KeyMouse
	KeyResize
	KeyNone
)

// Ctrl converts a letter to its control code.
func Ctrl(c byte) Key {
	return Key(c & 0x1f)
}

// Mouse button values in SGR encoding.
const (
	MouseButtonLeft   = 0
	MouseButtonMiddle = 1
	MouseButtonRight  = 2
	MouseScrollUp     = 64
	MouseScrollDown   = 65
)

// Modifier bits carried in the SGR button field.
const (
	MouseModShift  = 4
	MouseModAlt    = 8
	MouseModCtrl   = 16
	MouseMotionBit = 32
)

// MouseEvent is one decoded SGR mouse report. Column and Row are
// 1-indexed as the terminal sends them.
type MouseEvent struct {
	Button     int
	ButtonBase int
	Modifiers  int
	Column     int
	Row        int
	Release    bool
	Motion     bool
}
