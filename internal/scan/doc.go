// Package scan drives the per-cycle key processing pipeline.
//
// A Loop binds a matrix Driver to the layout, the qukey engine, and the
// HID keyboard: each cycle it scans every position, derives toggle flags
// from the previous cycle, routes the mapped keycode through the engine,
// runs the pre-report sweep, and sends the report. Script is a Driver that
// replays a timed press/release sequence, for tests and the simulator.
package scan
