// Package layout maps physical key positions to keycodes through a stack of
// layers.
//
// A layout holds one or more layers, each a dense position-indexed keycode
// table. Lookup walks active layers from the top of the stack down, skipping
// Transparent entries, so upper layers override only the positions they
// define. Layer 0 is the base layer and is always active.
package layout
