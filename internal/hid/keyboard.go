package hid

import "github.com/dshills/qukeys/internal/key"

// Sender delivers a finished report to the host transport. The report is
// only valid for the duration of the call; implementations that retain it
// must copy it.
type Sender interface {
	Send(r *Report) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(r *Report) error

// Send calls f.
func (f SenderFunc) Send(r *Report) error { return f(r) }

// Keyboard tracks the report being assembled for the current scan cycle and
// the last report sent to the host. Not safe for concurrent use; the scan
// loop owns it.
type Keyboard struct {
	current Report
	last    Report
	sender  Sender
}

// NewKeyboard creates a keyboard that emits reports through sender.
func NewKeyboard(sender Sender) *Keyboard {
	return &Keyboard{sender: sender}
}

// NewCycle clears the current report. The scan loop calls this at the top
// of every cycle before re-pressing scanned keys.
func (k *Keyboard) NewCycle() {
	k.current.Zero()
}

// PressKey adds a code to the current report.
func (k *Keyboard) PressKey(c key.Code) {
	k.current.Press(c)
}

// ReleaseKey removes a code from the current report.
func (k *Keyboard) ReleaseKey(c key.Code) {
	k.current.Release(c)
}

// IsPressed reports whether a code is in the current report.
func (k *Keyboard) IsPressed(c key.Code) bool {
	return k.current.IsPressed(c)
}

// WasPressed reports whether a code was in the last sent report.
func (k *Keyboard) WasPressed(c key.Code) bool {
	return k.last.IsPressed(c)
}

// Snapshot returns a copy of the current report.
func (k *Keyboard) Snapshot() Report {
	return k.current
}

// Restore replaces the current report with a snapshot.
func (k *Keyboard) Restore(r Report) {
	k.current = r
}

// ResetToLast replaces the current report with the last sent one. Mid-cycle
// injection starts from here so that keys not yet scanned this cycle keep
// their previous state.
func (k *Keyboard) ResetToLast() {
	k.current = k.last
}

// SendReport emits the current report if it differs from the last sent one
// and records it as the new baseline. Unchanged reports are skipped.
func (k *Keyboard) SendReport() error {
	if k.current.Equal(&k.last) {
		return nil
	}
	if err := k.sender.Send(&k.current); err != nil {
		return err
	}
	k.last = k.current
	return nil
}
