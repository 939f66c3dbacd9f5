package terminal

// ByteSource feeds the decoder. ReadByte blocks for at most one timeout
// window (returning ErrTimeout when quiet); Peek polls once for the next
// byte of an in-flight escape sequence.
type ByteSource interface {
	ReadByte() (byte, error)
	Peek() (byte, bool)
}

// Decoder turns raw terminal bytes into key and mouse events.
type Decoder struct {
	src   ByteSource
	mouse MouseEvent
}

func NewDecoder(src ByteSource) *Decoder {
	return &Decoder{src: src}
}

// Mouse returns the event behind the most recent KeyMouse.
func (d *Decoder) Mouse() MouseEvent {
	return d.mouse
}

// ReadKey decodes the next key. A quiet timeout window surfaces as
// (KeyNone, ErrTimeout); a lone ESC byte is the Escape key.
func (d *Decoder) ReadKey() (Key, error) {
	b, err := d.src.ReadByte()
	if err != nil {
		return KeyNone, err
	}
	if b != 0x1b {
		return Key(b), nil
	}

	first, ok := d.src.Peek()
	if !ok {
		return KeyEscape, nil
	}

	// ESC + letter is an Alt chord.
	switch first {
	case 't', 'T':
		return KeyAltT, nil
	case 'l', 'L':
		return KeyAltL, nil
	case 'q', 'Q':
		return KeyAltQ, nil
	case 'j', 'J':
		return KeyAltJ, nil
	case 's', 'S':
		return KeyAltS, nil
	case 'r', 'R':
		return KeyAltR, nil
	case 'n', 'N':
		return KeyAltN, nil
	case 'w', 'W':
		return KeyAltW, nil
	case 'c', 'C':
		return KeyAltC, nil
	case 'v', 'V':
		return KeyAltV, nil
	case 'z', 'Z':
		return KeyAltZ, nil
	case 'm', 'M':
		return KeyAltM, nil
	case ']':
		return KeyAltCloseBracket, nil
	}

	if first == 'O' {
		b2, ok := d.src.Peek()
		if !ok {
			return KeyEscape, nil
		}
		switch b2 {
		case 'H':
			return KeyHome, nil
		case 'F':
			return KeyEnd, nil
		}
		return KeyEscape, nil
	}

	if first != '[' {
		return KeyEscape, nil
	}

	second, ok := d.src.Peek()
	if !ok {
		// A bare ESC [ is Alt+[.
		return KeyAltOpenBracket, nil
	}

	if second == '<' {
		return d.readSGRMouse()
	}

	if second >= '0' && second <= '9' {
		return d.readParametric(second)
	}

	switch second {
	case 'A':
		return KeyArrowUp, nil
	case 'B':
		return KeyArrowDown, nil
	case 'C':
		return KeyArrowRight, nil
	case 'D':
		return KeyArrowLeft, nil
	case 'H':
		return KeyHome, nil
	case 'F':
		return KeyEnd, nil
	case 'Z':
		return KeyShiftTab, nil
	}
	return KeyEscape, nil
}

// readParametric decodes CSI sequences that open with a digit:
// 1~/3~/…, 21~ (F10), 3;5~ (Ctrl+Delete), and 1;<mod><key>.
func (d *Decoder) readParametric(digit byte) (Key, error) {
	b2, ok := d.src.Peek()
	if !ok {
		return KeyEscape, nil
	}

	if b2 == '~' {
		switch digit {
		case '1', '7':
			return KeyHome, nil
		case '3':
			return KeyDelete, nil
		case '4', '8':
			return KeyEnd, nil
		case '5':
			return KeyPageUp, nil
		case '6':
			return KeyPageDown, nil
		}
		return KeyEscape, nil
	}

	if digit == '2' && b2 == '1' {
		if b3, ok := d.src.Peek(); ok && b3 == '~' {
			return KeyF10, nil
		}
		return KeyEscape, nil
	}

	if digit == '3' && b2 == ';' {
		b3, ok := d.src.Peek()
		if !ok {
			return KeyEscape, nil
		}
		b4, ok := d.src.Peek()
		if !ok {
			return KeyEscape, nil
		}
		if b3 == '5' && b4 == '~' {
			return KeyCtrlDelete, nil
		}
		return KeyEscape, nil
	}

	if digit == '1' && b2 == ';' {
		mod, ok := d.src.Peek()
		if !ok {
			return KeyEscape, nil
		}
		key, ok := d.src.Peek()
		if !ok {
			return KeyEscape, nil
		}
		switch mod {
		case '2': // Shift
			switch key {
			case 'A':
				return KeyShiftUp, nil
			case 'B':
				return KeyShiftDown, nil
			case 'C':
				return KeyShiftRight, nil
			case 'D':
				return KeyShiftLeft, nil
			case 'H':
				return KeyShiftHome, nil
			case 'F':
				return KeyShiftEnd, nil
			}
		case '3': // Alt
			switch key {
			case 'A':
				return KeyAltUp, nil
			case 'B':
				return KeyAltDown, nil
			}
		case '4': // Alt+Shift
			switch key {
			case 'A':
				return KeyAltShiftUp, nil
			case 'B':
				return KeyAltShiftDown, nil
			}
		case '5': // Ctrl
			switch key {
			case 'C':
				return KeyCtrlRight, nil
			case 'D':
				return KeyCtrlLeft, nil
			}
		}
		return KeyEscape, nil
	}

	return KeyEscape, nil
}

// readSGRMouse parses "<b;x;yM" / "<b;x;ym" after the ESC [ < prefix.
func (d *Decoder) readSGRMouse() (Key, error) {
	var fields [3]int
	part := 0
	haveDigit := false
	for {
		b, ok := d.src.Peek()
		if !ok {
			return KeyEscape, nil
		}
		if b >= '0' && b <= '9' {
			fields[part] = fields[part]*10 + int(b-'0')
			haveDigit = true
			continue
		}
		if b == ';' {
			if !haveDigit || part >= 2 {
				return KeyEscape, nil
			}
			part++
			haveDigit = false
			continue
		}
		if b == 'M' || b == 'm' {
			if part != 2 || !haveDigit {
				return KeyEscape, nil
			}
			raw := fields[0]
			d.mouse = MouseEvent{
				Button:     raw,
				ButtonBase: raw &^ (MouseModShift | MouseModAlt | MouseModCtrl | MouseMotionBit),
				Modifiers:  raw & (MouseModShift | MouseModAlt | MouseModCtrl),
				Motion:     raw&MouseMotionBit != 0,
				Column:     fields[1],
				Row:        fields[2],
				Release:    b == 'm',
			}
			// Scroll buttons carry bit 6 and are never motion events.
			if d.mouse.ButtonBase >= MouseScrollUp {
				d.mouse.Motion = false
			}
			return KeyMouse, nil
		}
		return KeyEscape, nil
	}
}
