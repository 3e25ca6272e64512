// Package key defines USB HID keyboard usage codes and physical key
// positions.
//
// A Code is a 16-bit keycode whose low byte is the HID usage ID from the
// Keyboard/Keypad usage page. The high byte leaves room for the None and
// Transparent sentinels used by layered keymaps.
//
// A Pos is a dense one-byte encoding of a (row, column) coordinate in the
// physical key matrix.
package key
