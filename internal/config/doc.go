// Package config loads keyboard setups: the matrix shape, the layered
// keymap, the qukey table, and the engine tuning.
//
// Two formats are supported: JSON and Lua. Key names in both are the
// canonical names from the key package ("A", "LeftShift", "Transparent").
// Malformed names, out-of-matrix positions, and out-of-range layers are
// load-time errors; the engine itself never validates them.
package config
