// Package qukeys resolves dual-role keys.
//
// A qukey is a physical key position with two meanings: the primary keycode
// its layer maps it to, and an alternate keycode (typically a modifier).
// Which one a press meant is not knowable at press time, so the engine
// intercepts every raw key event, parks undecided presses in a bounded FIFO,
// and re-emits them once their role is known: a release before the time
// limit is a tap (primary), a hold past it is the alternate.
//
// The queue doubles as an ordering fence. No key pressed after an undecided
// qukey is reported until the qukey resolves, so the host always sees
// presses in their original order with the correct modifier state. Resolved
// entries are replayed through the report pipeline as injected events; the
// injected marker keeps a replay from re-entering the queue.
//
// The engine is single-threaded by contract: the scan loop calls
// OnKeyEvent for every position each cycle and BeforeReport once per cycle
// before the report is sent. Nothing here locks, blocks, or allocates on
// the hot path.
package qukeys
