// Package hid models the outgoing keyboard HID report.
//
// A Report is a bitmap of currently pressed usage codes, modifiers included.
// Keyboard pairs the in-progress report for the current scan cycle with the
// last report actually sent, and emits a new report only when the two
// differ. The Snapshot/Restore/ResetToLast trio exists for mid-cycle
// injection: a key resolved in the middle of a scan must be reported against
// the previous cycle's key state so that keys the scan has not reached yet
// are not reported as released.
package hid
