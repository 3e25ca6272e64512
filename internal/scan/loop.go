package scan

import (
	"time"

	"github.com/dshills/qukeys/internal/hid"
	"github.com/dshills/qukeys/internal/key"
	"github.com/dshills/qukeys/internal/layout"
	"github.com/dshills/qukeys/internal/log"
	"github.com/dshills/qukeys/internal/qukeys"
)

// Driver produces the physical switch state of the matrix. Scan fills
// pressed, indexed row-major, with the state at time now.
type Driver interface {
	Scan(now time.Time, pressed []bool)
}

// Config configures a Loop.
type Config struct {
	// Period is the scan cycle length. Default: 1ms, a typical matrix
	// scan rate.
	Period time.Duration

	// Now supplies the clock. Default: time.Now. Tests and the simulator
	// install a fake clock advanced by Period per cycle.
	Now func() time.Time

	// Logger receives cycle diagnostics. Default: a nop logger.
	Logger *log.Logger
}

// DefaultConfig returns the default loop configuration.
func DefaultConfig() Config {
	return Config{Period: time.Millisecond}
}

// Loop runs the scan cycle. Single-goroutine; nothing here is safe for
// concurrent use.
type Loop struct {
	layout *layout.Layout
	engine *qukeys.Engine
	kbd    *hid.Keyboard
	driver Driver
	logger *log.Logger

	period time.Duration
	now    func() time.Time

	cur  []bool
	prev []bool
}

// NewLoop wires the pipeline together.
func NewLoop(lo *layout.Layout, eng *qukeys.Engine, kbd *hid.Keyboard, driver Driver, cfg Config) *Loop {
	if cfg.Period <= 0 {
		cfg.Period = time.Millisecond
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Nop()
	}
	n := lo.Rows() * lo.Cols()
	return &Loop{
		layout: lo,
		engine: eng,
		kbd:    kbd,
		driver: driver,
		logger: cfg.Logger,
		period: cfg.Period,
		now:    cfg.Now,
		cur:    make([]bool, n),
		prev:   make([]bool, n),
	}
}

// Period returns the scan cycle length.
func (l *Loop) Period() time.Duration {
	return l.period
}

// Cycle runs one scan cycle: scan, per-key engine classification, pre-report
// sweep, report send.
func (l *Loop) Cycle() error {
	now := l.now()
	l.driver.Scan(now, l.cur)
	l.kbd.NewCycle()

	for i := range l.cur {
		pos := key.NewPos(uint8(i/l.layout.Cols()), uint8(i%l.layout.Cols()))
		var st qukeys.State
		if l.cur[i] {
			st |= qukeys.StatePressed
		}
		if l.prev[i] {
			st |= qukeys.StateWasPressed
		}
		d := l.engine.OnKeyEvent(l.layout.Lookup(pos), pos, st)
		if d.Proceed && l.cur[i] && d.Code.Valid() {
			l.kbd.PressKey(d.Code)
		}
	}

	l.engine.BeforeReport()
	if n := l.engine.QueueLen(); n > 0 {
		l.logger.Debug("cycle end: %d undecided", n)
	}
	if err := l.kbd.SendReport(); err != nil {
		return err
	}

	copy(l.prev, l.cur)
	return nil
}

// Run executes n cycles, stopping on the first send error.
func (l *Loop) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := l.Cycle(); err != nil {
			return err
		}
	}
	return nil
}
