package qukeys

import "strings"

// State encodes a key switch's condition for one scan cycle: whether it is
// pressed now, whether it was pressed last cycle, and whether the event was
// injected by the engine itself.
type State uint8

const (
	// StatePressed means the switch is closed this cycle.
	StatePressed State = 1 << iota
	// StateWasPressed means the switch was closed last cycle.
	StateWasPressed
	// StateInjected marks a synthetic event produced by a flush replay.
	StateInjected
)

// Pressed reports whether the switch is closed this cycle.
func (s State) Pressed() bool {
	return s&StatePressed != 0
}

// WasPressed reports whether the switch was closed last cycle.
func (s State) WasPressed() bool {
	return s&StateWasPressed != 0
}

// Injected reports whether the event is a flush replay.
func (s State) Injected() bool {
	return s&StateInjected != 0
}

// ToggledOn reports a fresh press: closed now, open last cycle.
func (s State) ToggledOn() bool {
	return s.Pressed() && !s.WasPressed()
}

// ToggledOff reports a release: open now, closed last cycle.
func (s State) ToggledOff() bool {
	return !s.Pressed() && s.WasPressed()
}

// String returns the set flags, or "idle" when none are set.
func (s State) String() string {
	if s == 0 {
		return "idle"
	}
	var parts []string
	if s.Pressed() {
		parts = append(parts, "pressed")
	}
	if s.WasPressed() {
		parts = append(parts, "was-pressed")
	}
	if s.Injected() {
		parts = append(parts, "injected")
	}
	return strings.Join(parts, "|")
}
