package hid

import "github.com/dshills/qukeys/internal/key"

// BootReportSize is the length of a boot-protocol keyboard report: one
// modifier byte, one reserved byte, six usage codes.
const BootReportSize = 8

// Report is a bitmap over the 256 possible usage codes. Modifiers (0xE0
// through 0xE7) are ordinary bits here and are folded into the modifier
// byte only at encode time.
type Report struct {
	bits [32]byte
}

// Press sets the bit for a code. Sentinel and out-of-range codes are
// ignored.
func (r *Report) Press(c key.Code) {
	if !c.Valid() {
		return
	}
	u := c.Usage()
	r.bits[u>>3] |= 1 << (u & 7)
}

// Release clears the bit for a code.
func (r *Report) Release(c key.Code) {
	if !c.Valid() {
		return
	}
	u := c.Usage()
	r.bits[u>>3] &^= 1 << (u & 7)
}

// IsPressed reports whether the code's bit is set.
func (r *Report) IsPressed(c key.Code) bool {
	if !c.Valid() {
		return false
	}
	u := c.Usage()
	return r.bits[u>>3]&(1<<(u&7)) != 0
}

// Zero clears every bit.
func (r *Report) Zero() {
	r.bits = [32]byte{}
}

// Equal reports whether two reports press the same keys.
func (r *Report) Equal(o *Report) bool {
	return r.bits == o.bits
}

// Modifiers returns the HID modifier byte.
func (r *Report) Modifiers() uint8 {
	var m uint8
	for c := key.LeftControl; c <= key.RightGUI; c++ {
		if r.IsPressed(c) {
			m |= c.ModifierBit()
		}
	}
	return m
}

// Keys returns the pressed non-modifier codes in ascending usage order.
func (r *Report) Keys() []key.Code {
	var keys []key.Code
	for u := 1; u < int(key.LeftControl); u++ {
		c := key.Code(u)
		if r.IsPressed(c) {
			keys = append(keys, c)
		}
	}
	return keys
}

// Encode serializes the report in boot protocol. When more than six
// non-modifier keys are pressed, the six lowest usages are reported; real
// firmware would signal rollover instead, but nothing in this engine
// presses that many.
func (r *Report) Encode() [BootReportSize]byte {
	var out [BootReportSize]byte
	out[0] = r.Modifiers()
	keys := r.Keys()
	for i, c := range keys {
		if i == 6 {
			break
		}
		out[2+i] = c.Usage()
	}
	return out
}
