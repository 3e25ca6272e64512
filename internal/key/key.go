package key

import "fmt"

// Code is a keyboard keycode. The low byte is the HID usage ID on the
// Keyboard/Keypad usage page (0x07).
type Code uint16

// Sentinel codes. None is the HID "no event" usage; Transparent is only
// meaningful inside a layered keymap, where it defers to a lower layer.
const (
	None        Code = 0x0000
	Transparent Code = 0xFFFF
)

// Letter keys.
const (
	A Code = 0x04 + iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
)

// Number row. Digit1 through Digit9 are contiguous; Digit0 follows Digit9
// per the HID usage table.
const (
	Digit1 Code = 0x1E + iota
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Digit0
)

// Control and punctuation keys.
const (
	Enter Code = 0x28 + iota
	Escape
	Backspace
	Tab
	Space
	Minus
	Equals
	LeftBracket
	RightBracket
	Backslash
	NonUSPound
	Semicolon
	Quote
	Backtick
	Comma
	Period
	Slash
	CapsLock
)

// Function keys.
const (
	F1 Code = 0x3A + iota
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

// Navigation cluster.
const (
	Insert Code = 0x49 + iota
	Home
	PageUp
	Delete
	End
	PageDown
	Right
	Left
	Down
	Up
)

// Modifier keys occupy usages 0xE0 through 0xE7. Their bit position in the
// HID report modifier byte is (usage - 0xE0).
const (
	LeftControl Code = 0xE0 + iota
	LeftShift
	LeftAlt
	LeftGUI
	RightControl
	RightShift
	RightAlt
	RightGUI
)

// maxUsage is the highest usage ID this package recognizes.
const maxUsage = RightGUI

// Usage returns the HID usage ID for the code.
func (c Code) Usage() uint8 {
	return uint8(c)
}

// IsModifier returns true if the code is one of the eight HID modifier keys.
func (c Code) IsModifier() bool {
	return c >= LeftControl && c <= RightGUI
}

// ModifierBit returns the code's bit in the HID report modifier byte, or 0
// if the code is not a modifier.
func (c Code) ModifierBit() uint8 {
	if !c.IsModifier() {
		return 0
	}
	return 1 << (c - LeftControl)
}

// Valid returns true if the code names a reportable key: not a sentinel and
// within the usage range this package covers.
func (c Code) Valid() bool {
	return c != None && c != Transparent && c <= maxUsage
}

// String returns the canonical name for the code, or a hex form for codes
// without one.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(0x%02X)", uint16(c))
}

// Parse returns the code for a canonical key name.
func Parse(name string) (Code, error) {
	if c, ok := namedCodes[name]; ok {
		return c, nil
	}
	return None, fmt.Errorf("unknown key name %q", name)
}

// codeNames maps codes to canonical names. namedCodes is the inverse,
// built at init.
var codeNames = map[Code]string{
	None:        "None",
	Transparent: "Transparent",
	A:           "A", B: "B", C: "C", D: "D", E: "E", F: "F", G: "G",
	H: "H", I: "I", J: "J", K: "K", L: "L", M: "M", N: "N",
	O: "O", P: "P", Q: "Q", R: "R", S: "S", T: "T", U: "U",
	V: "V", W: "W", X: "X", Y: "Y", Z: "Z",
	Digit1: "1", Digit2: "2", Digit3: "3", Digit4: "4", Digit5: "5",
	Digit6: "6", Digit7: "7", Digit8: "8", Digit9: "9", Digit0: "0",
	Enter: "Enter", Escape: "Escape", Backspace: "Backspace", Tab: "Tab",
	Space: "Space", Minus: "Minus", Equals: "Equals",
	LeftBracket: "LeftBracket", RightBracket: "RightBracket",
	Backslash: "Backslash", NonUSPound: "NonUSPound",
	Semicolon: "Semicolon", Quote: "Quote", Backtick: "Backtick",
	Comma: "Comma", Period: "Period", Slash: "Slash", CapsLock: "CapsLock",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	Insert: "Insert", Home: "Home", PageUp: "PageUp", Delete: "Delete",
	End: "End", PageDown: "PageDown",
	Right: "Right", Left: "Left", Down: "Down", Up: "Up",
	LeftControl: "LeftControl", LeftShift: "LeftShift", LeftAlt: "LeftAlt",
	LeftGUI: "LeftGUI", RightControl: "RightControl",
	RightShift: "RightShift", RightAlt: "RightAlt", RightGUI: "RightGUI",
}

var namedCodes map[string]Code

func init() {
	namedCodes = make(map[string]Code, len(codeNames))
	for c, name := range codeNames {
		namedCodes[name] = c
	}
}
