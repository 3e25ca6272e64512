package scan

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/qukeys/internal/hid"
	"github.com/dshills/qukeys/internal/key"
	"github.com/dshills/qukeys/internal/layout"
	"github.com/dshills/qukeys/internal/qukeys"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type recordSender struct {
	reports []hid.Report
}

func (s *recordSender) Send(r *hid.Report) error {
	s.reports = append(s.reports, *r)
	return nil
}

func sig(r *hid.Report) string {
	var parts []string
	for c := key.LeftControl; c <= key.RightGUI; c++ {
		if r.IsPressed(c) {
			parts = append(parts, c.String())
		}
	}
	for _, c := range r.Keys() {
		parts = append(parts, c.String())
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "+")
}

// rig wires a 1x4 [A B C D] pipeline with a scripted driver and fake clock.
func rig(t *testing.T, defs []qukeys.Qukey, events []Event) (*Loop, *fakeClock, *recordSender) {
	t.Helper()
	lo, err := layout.New(1, 4, []key.Code{key.A, key.B, key.C, key.D})
	if err != nil {
		t.Fatalf("layout.New: %v", err)
	}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	sender := &recordSender{}
	kbd := hid.NewKeyboard(sender)
	eng := qukeys.New(qukeys.NewTable(defs), lo, kbd, qukeys.Config{Now: clock.Now})
	script := NewScript(lo.Cols(), events)
	loop := NewLoop(lo, eng, kbd, script, Config{Period: 10 * time.Millisecond, Now: clock.Now})
	return loop, clock, sender
}

// runCycles steps the loop, advancing the fake clock one period per cycle.
func runCycles(t *testing.T, loop *Loop, clock *fakeClock, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := loop.Cycle(); err != nil {
			t.Fatalf("Cycle: %v", err)
		}
		clock.advance(loop.Period())
	}
}

func TestLoopPlainTyping(t *testing.T) {
	// No qukeys at all: keys pass straight through.
	loop, clock, sender := rig(t, nil, []Event{
		{At: 0, Pos: key.NewPos(0, 1), Pressed: true},
		{At: 30 * time.Millisecond, Pos: key.NewPos(0, 1), Pressed: false},
	})

	runCycles(t, loop, clock, 6)

	if len(sender.reports) != 2 {
		t.Fatalf("sent %d reports, want 2: %v", len(sender.reports), sigsOf(sender))
	}
	if got := sig(&sender.reports[0]); got != "B" {
		t.Errorf("first report = %q, want B", got)
	}
	if got := sig(&sender.reports[1]); got != "-" {
		t.Errorf("second report = %q, want empty", got)
	}
}

func TestLoopQukeyTap(t *testing.T) {
	defs := []qukeys.Qukey{{Layer: qukeys.AllLayers, Pos: key.NewPos(0, 0), Alternate: key.LeftShift}}
	loop, clock, sender := rig(t, defs, []Event{
		{At: 0, Pos: key.NewPos(0, 0), Pressed: true},
		{At: 40 * time.Millisecond, Pos: key.NewPos(0, 0), Pressed: false},
	})

	runCycles(t, loop, clock, 8)

	got := sigsOf(sender)
	if len(got) != 2 || got[0] != "A" || got[1] != "-" {
		t.Fatalf("reports = %v, want [A -]", got)
	}
}

func TestLoopQukeyHold(t *testing.T) {
	defs := []qukeys.Qukey{{Layer: qukeys.AllLayers, Pos: key.NewPos(0, 0), Alternate: key.LeftShift}}
	loop, clock, sender := rig(t, defs, []Event{
		{At: 0, Pos: key.NewPos(0, 0), Pressed: true},
		{At: 700 * time.Millisecond, Pos: key.NewPos(0, 0), Pressed: false},
	})

	runCycles(t, loop, clock, 75)

	got := sigsOf(sender)
	if len(got) != 2 || got[0] != "LeftShift" || got[1] != "-" {
		t.Fatalf("reports = %v, want [LeftShift -]", got)
	}
}

func TestLoopRollThrough(t *testing.T) {
	// The §8-style shift-then-letter roll: shift qukey held, letter tapped
	// underneath it before the qukey resolves.
	defs := []qukeys.Qukey{{Layer: qukeys.AllLayers, Pos: key.NewPos(0, 0), Alternate: key.LeftShift}}
	loop, clock, sender := rig(t, defs, []Event{
		{At: 0, Pos: key.NewPos(0, 0), Pressed: true},
		{At: 50 * time.Millisecond, Pos: key.NewPos(0, 2), Pressed: true},
		{At: 100 * time.Millisecond, Pos: key.NewPos(0, 2), Pressed: false},
		{At: 600 * time.Millisecond, Pos: key.NewPos(0, 0), Pressed: false},
	})

	runCycles(t, loop, clock, 65)

	got := sigsOf(sender)
	want := []string{"LeftShift", "LeftShift+C", "LeftShift", "-"}
	if len(got) != len(want) {
		t.Fatalf("reports = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reports = %v, want %v", got, want)
		}
	}
}

func TestScriptOrderingAndDone(t *testing.T) {
	s := NewScript(4, []Event{
		{At: 20 * time.Millisecond, Pos: key.NewPos(0, 1), Pressed: true},
		{At: 0, Pos: key.NewPos(0, 0), Pressed: true},
	})
	if s.Duration() != 20*time.Millisecond {
		t.Errorf("Duration() = %v", s.Duration())
	}

	pressed := make([]bool, 4)
	start := time.Unix(0, 0)
	s.Scan(start, pressed)
	if !pressed[0] || pressed[1] {
		t.Errorf("at t=0 pressed = %v, want only index 0", pressed)
	}
	if s.Done() {
		t.Error("script done early")
	}

	s.Scan(start.Add(25*time.Millisecond), pressed)
	if !pressed[0] || !pressed[1] {
		t.Errorf("at t=25ms pressed = %v, want indexes 0 and 1", pressed)
	}
	if !s.Done() || s.Remaining() != 0 {
		t.Error("script should be done")
	}
}

func TestScriptDropsOutOfRange(t *testing.T) {
	s := NewScript(4, []Event{
		{At: 0, Pos: key.NewPos(5, 5), Pressed: true},
	})
	pressed := make([]bool, 4)
	s.Scan(time.Unix(0, 0), pressed)
	for i, p := range pressed {
		if p {
			t.Errorf("index %d pressed by out-of-range event", i)
		}
	}
}

func sigsOf(s *recordSender) []string {
	out := make([]string, len(s.reports))
	for i := range s.reports {
		out[i] = sig(&s.reports[i])
	}
	return out
}
