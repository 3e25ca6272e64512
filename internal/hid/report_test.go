package hid

import (
	"testing"

	"github.com/dshills/qukeys/internal/key"
)

func TestReportPressRelease(t *testing.T) {
	var r Report
	if r.IsPressed(key.A) {
		t.Error("fresh report should not have A pressed")
	}
	r.Press(key.A)
	if !r.IsPressed(key.A) {
		t.Error("A should be pressed after Press")
	}
	r.Press(key.A)
	if !r.IsPressed(key.A) {
		t.Error("double press should still be pressed")
	}
	r.Release(key.A)
	if r.IsPressed(key.A) {
		t.Error("A should be released after Release")
	}
}

func TestReportIgnoresSentinels(t *testing.T) {
	var r Report
	r.Press(key.None)
	r.Press(key.Transparent)
	var empty Report
	if !r.Equal(&empty) {
		t.Error("pressing sentinels should not change the report")
	}
}

func TestReportModifiers(t *testing.T) {
	var r Report
	r.Press(key.LeftShift)
	r.Press(key.RightControl)
	want := uint8(0x02 | 0x10)
	if got := r.Modifiers(); got != want {
		t.Errorf("Modifiers() = 0x%02X, want 0x%02X", got, want)
	}
	if keys := r.Keys(); len(keys) != 0 {
		t.Errorf("Keys() = %v, want none (modifiers are not keys)", keys)
	}
}

func TestReportKeysOrdered(t *testing.T) {
	var r Report
	r.Press(key.Z)
	r.Press(key.A)
	r.Press(key.M)
	keys := r.Keys()
	if len(keys) != 3 || keys[0] != key.A || keys[1] != key.M || keys[2] != key.Z {
		t.Errorf("Keys() = %v, want [A M Z]", keys)
	}
}

func TestReportEncode(t *testing.T) {
	var r Report
	r.Press(key.LeftShift)
	r.Press(key.B)
	out := r.Encode()
	if out[0] != 0x02 {
		t.Errorf("modifier byte = 0x%02X, want 0x02", out[0])
	}
	if out[1] != 0 {
		t.Errorf("reserved byte = 0x%02X, want 0", out[1])
	}
	if out[2] != key.B.Usage() {
		t.Errorf("first key = 0x%02X, want B", out[2])
	}
	for i := 3; i < BootReportSize; i++ {
		if out[i] != 0 {
			t.Errorf("slot %d = 0x%02X, want 0", i, out[i])
		}
	}
}

func TestReportZeroAndEqual(t *testing.T) {
	var a, b Report
	a.Press(key.Q)
	if a.Equal(&b) {
		t.Error("reports with different keys should not be equal")
	}
	a.Zero()
	if !a.Equal(&b) {
		t.Error("zeroed report should equal empty report")
	}
}
