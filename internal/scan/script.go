package scan

import (
	"fmt"
	"sort"
	"time"

	"github.com/dshills/qukeys/internal/key"
)

// Event is one scripted switch transition, At after the script's start.
type Event struct {
	At      time.Duration
	Pos     key.Pos
	Pressed bool
}

// Script is a Driver that replays a fixed event sequence against the scan
// clock. The first Scan call pins the script's start time.
type Script struct {
	cols    int
	events  []Event
	next    int
	start   time.Time
	started bool
	state   map[key.Pos]bool
}

// NewScript builds a script for a matrix cols columns wide. Events are
// sorted by time; order between events with equal times is preserved.
func NewScript(cols int, events []Event) *Script {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &Script{
		cols:   cols,
		events: sorted,
		state:  make(map[key.Pos]bool),
	}
}

// Scan applies every event due at or before now and reports the resulting
// switch state row-major into pressed. Positions outside the matrix are
// dropped.
func (s *Script) Scan(now time.Time, pressed []bool) {
	if !s.started {
		s.start = now
		s.started = true
	}
	elapsed := now.Sub(s.start)
	for s.next < len(s.events) && s.events[s.next].At <= elapsed {
		e := s.events[s.next]
		s.state[e.Pos] = e.Pressed
		s.next++
	}

	for i := range pressed {
		pressed[i] = false
	}
	for pos, down := range s.state {
		if !down {
			continue
		}
		i := int(pos.Row())*s.cols + int(pos.Col())
		if i < len(pressed) {
			pressed[i] = true
		}
	}
}

// Done reports whether every event has been applied.
func (s *Script) Done() bool {
	return s.next == len(s.events)
}

// Remaining returns the number of unapplied events.
func (s *Script) Remaining() int {
	return len(s.events) - s.next
}

// Duration returns the time of the last event.
func (s *Script) Duration() time.Duration {
	if len(s.events) == 0 {
		return 0
	}
	return s.events[len(s.events)-1].At
}

// String summarizes the script.
func (s *Script) String() string {
	return fmt.Sprintf("script(%d events, %d applied)", len(s.events), s.next)
}
