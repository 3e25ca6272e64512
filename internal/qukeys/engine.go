package qukeys

import (
	"time"

	"github.com/dshills/qukeys/internal/hid"
	"github.com/dshills/qukeys/internal/key"
	"github.com/dshills/qukeys/internal/log"
)

// LayerLookup is the layer subsystem the engine consults. Both methods are
// pure and synchronous.
type LayerLookup interface {
	// Lookup returns the active-layer keycode for a position.
	Lookup(pos key.Pos) key.Code

	// ActiveLayer returns the layer currently supplying the position's
	// keycode.
	ActiveLayer(pos key.Pos) int
}

// Decision is the engine's answer for one raw key event: the keycode to
// hand to the report stage and whether the event should continue there at
// all. A suppressed event carries key.None and Proceed false.
type Decision struct {
	Code    key.Code
	Proceed bool
}

func pass(c key.Code) Decision {
	return Decision{Code: c, Proceed: true}
}

func suppress() Decision {
	return Decision{Code: key.None}
}

// Config configures an Engine.
type Config struct {
	// TimeLimit is how long a qukey may stay undecided before it resolves
	// to its alternate role. Applies uniformly to every qukey.
	// Default: 500ms.
	TimeLimit time.Duration

	// QueueCapacity bounds the pending queue. Enqueuing at capacity
	// force-flushes the oldest entry first. Default: 8.
	QueueCapacity int

	// Now supplies the monotonic clock. Default: time.Now.
	Now func() time.Time

	// Logger receives debug traces. Default: a nop logger.
	Logger *log.Logger
}

// DefaultConfig returns the defaults used by real keyboards.
func DefaultConfig() Config {
	return Config{
		TimeLimit:     500 * time.Millisecond,
		QueueCapacity: 8,
	}
}

// Engine is the qukey resolution state machine. It owns the definition
// table and the pending queue; the layer lookup and the keyboard report are
// injected collaborators.
//
// Single-threaded by contract: OnKeyEvent and BeforeReport are called from
// the scan loop only, never concurrently.
type Engine struct {
	table  *Table
	layers LayerLookup
	kbd    *hid.Keyboard
	queue  *queue

	active    bool
	timeLimit time.Duration
	now       func() time.Time
	logger    *log.Logger

	// replaying guards the flush replay path so a resolved key routed back
	// through the event pipeline cannot re-enter the queue.
	replaying bool
}

// New creates an engine over a table, a layer lookup, and a keyboard.
func New(table *Table, layers LayerLookup, kbd *hid.Keyboard, cfg Config) *Engine {
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = 500 * time.Millisecond
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 8
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Nop()
	}
	return &Engine{
		table:     table,
		layers:    layers,
		kbd:       kbd,
		queue:     newQueue(cfg.QueueCapacity),
		active:    true,
		timeLimit: cfg.TimeLimit,
		now:       cfg.Now,
		logger:    cfg.Logger,
	}
}

// Enable turns resolution on.
func (e *Engine) Enable() {
	e.active = true
}

// Disable turns resolution off. Events already queued still resolve through
// their normal timeout or release path; only new presses bypass the engine.
func (e *Engine) Disable() {
	e.active = false
}

// Active reports whether resolution is on.
func (e *Engine) Active() bool {
	return e.active
}

// SetTimeout changes the hold time limit. Entries already queued keep the
// deadline they were enqueued with.
func (e *Engine) SetTimeout(d time.Duration) {
	if d > 0 {
		e.timeLimit = d
	}
}

// Timeout returns the hold time limit.
func (e *Engine) Timeout() time.Duration {
	return e.timeLimit
}

// QueueLen returns the number of undecided presses.
func (e *Engine) QueueLen() int {
	return e.queue.len()
}

// QueuedAt returns the position and deadline of queue entry i, oldest
// first. For introspection (simulator, tests); i must be < QueueLen.
func (e *Engine) QueuedAt(i int) (key.Pos, time.Time) {
	en := e.queue.at(i)
	return en.pos, en.deadline
}

// OnKeyEvent classifies one raw key event. Pass-through events keep their
// mapped keycode (or get the resolved alternate); suppressed events are
// swallowed for this cycle and re-emitted by a later flush.
func (e *Engine) OnKeyEvent(mapped key.Code, pos key.Pos, st State) Decision {
	// Disabled, injected, or mid-replay events go straight through.
	if !e.active || st.Injected() || e.replaying {
		return pass(mapped)
	}

	// Steady-state non-event: not pressed now, not pressed last cycle.
	if !st.Pressed() && !st.WasPressed() {
		return pass(mapped)
	}

	qi := e.table.Lookup(pos, e.layers.ActiveLayer(pos))

	if st.ToggledOn() {
		// A plain key with an empty queue has nothing to wait for.
		if e.queue.len() == 0 && qi == notFound {
			return pass(mapped)
		}
		// Anything else must queue behind the undecided entries (or, for
		// a qukey, start a queue of its own).
		e.enqueue(pos)
		return suppress()
	}

	idx := e.queue.index(pos)

	if st.ToggledOff() {
		if idx == notFound {
			// Releases of unqueued qukeys reset the role. It should be
			// at rest already.
			if qi != notFound {
				e.table.SetRole(qi, RoleUndetermined)
			}
			return pass(mapped)
		}
		// Released while queued: everything ahead of it was held long
		// enough to be an alternate; the released key itself is a tap.
		e.flushQueue(idx)
		return suppress()
	}

	// Still held, no toggle.
	if qi == notFound {
		if idx == notFound {
			return pass(mapped)
		}
		// Trapped behind an undecided qukey.
		return suppress()
	}
	switch e.table.Role(qi) {
	case RolePrimary:
		return pass(mapped)
	case RoleAlternate:
		return pass(e.table.Def(qi).Alternate)
	}
	// Undetermined: the pre-report sweep owns the timeout check.
	return suppress()
}

// BeforeReport runs once per cycle before the report is assembled. It
// drains non-qukey heads, then flushes any head whose deadline has passed
// as its alternate role. Deadlines are monotonic in queue order, so the
// sweep stops at the first live qukey.
func (e *Engine) BeforeReport() {
	for e.queue.len() > 0 {
		head := e.queue.head()
		qi := e.table.Lookup(head.pos, e.layers.ActiveLayer(head.pos))
		if qi == notFound {
			// Non-qukeys never linger at the head.
			e.flushKey(RolePrimary, false)
			continue
		}
		if e.now().After(head.deadline) {
			e.flushKey(RoleAlternate, false)
			continue
		}
		break
	}
}

// enqueue appends a press to the pending queue. At capacity the oldest
// entry is force-flushed as a plain tap first; events are never dropped,
// even though the evicted key may have deserved its alternate role.
func (e *Engine) enqueue(pos key.Pos) {
	if e.queue.full() {
		e.logger.Debug("queue full, force-flushing head")
		e.flushKey(RolePrimary, false)
	}
	deadline := e.now().Add(e.timeLimit)
	e.queue.push(pos, deadline)
	e.logger.Debug("enqueue %s, queue length %d", pos, e.queue.len())
}

// flushQueue resolves every entry from the head through index. Entries
// ahead of index are still held, so they resolve as alternates; the entry
// at index was just released, which always means a tap.
func (e *Engine) flushQueue(index int) {
	for i := 0; i < index; i++ {
		if e.queue.len() == 0 {
			break
		}
		e.flushKey(RoleAlternate, false)
	}
	e.flushKey(RolePrimary, true)
	e.drainNonQukeys()
}

// drainNonQukeys pops plain keys that were trapped behind a now-resolved
// qukey. They carry no decision of their own and flush as taps.
func (e *Engine) drainNonQukeys() {
	for e.queue.len() > 0 {
		head := e.queue.head()
		if e.table.Lookup(head.pos, e.layers.ActiveLayer(head.pos)) != notFound {
			return
		}
		e.flushKey(RolePrimary, false)
	}
}

// flushKey resolves the queue head: pick its keycode from the role, record
// the role, replay the key into a mid-cycle report, and pop it.
//
// The replay happens before this cycle's scan has necessarily covered every
// key, so the in-progress report is snapshotted, the report is rebuilt from
// the last one actually sent, the resolved key is injected and sent, and
// the snapshot is restored. A key that is still physically held keeps its
// resolved bit in the restored report.
func (e *Engine) flushKey(role Role, released bool) {
	if e.queue.len() == 0 {
		return
	}
	head := e.queue.head()
	qi := e.table.Lookup(head.pos, e.layers.ActiveLayer(head.pos))

	var code key.Code
	if qi == notFound {
		code = e.layers.Lookup(head.pos)
	} else {
		e.table.SetRole(qi, role)
		if role == RoleAlternate {
			code = e.table.Def(qi).Alternate
		} else {
			code = e.layers.Lookup(head.pos)
		}
	}

	snapshot := e.kbd.Snapshot()
	e.kbd.ResetToLast()
	e.replay(head.pos, code, false)
	if err := e.kbd.SendReport(); err != nil {
		e.logger.Error("mid-cycle report send failed: %v", err)
	}
	e.kbd.Restore(snapshot)
	if !released {
		e.kbd.PressKey(code)
	}

	e.queue.popFront()
	e.logger.Debug("flush %s as %s (%s)", head.pos, role, code)

	if released && qi != notFound {
		e.table.SetRole(qi, RoleUndetermined)
	}
}

// replay routes a resolved keycode into the report as an injected event.
// The replaying guard makes the no-loop invariant structural: even if a
// collaborator calls back into OnKeyEvent during the send, the event passes
// through instead of re-entering the queue.
func (e *Engine) replay(pos key.Pos, code key.Code, asRelease bool) {
	e.replaying = true
	defer func() { e.replaying = false }()

	d := e.OnKeyEvent(code, pos, StatePressed|StateInjected)
	if !d.Proceed || !d.Code.Valid() {
		return
	}
	if asRelease {
		e.kbd.ReleaseKey(d.Code)
	} else {
		e.kbd.PressKey(d.Code)
	}
}
