package layout

import (
	"fmt"

	"github.com/dshills/qukeys/internal/key"
)

// Layout is a layered keymap over a fixed key matrix. All lookups are pure
// and synchronous; activation state is the only mutable part.
type Layout struct {
	rows, cols int
	layers     [][]key.Code
	active     []bool
}

// New creates a layout for a rows x cols matrix. Each layer must contain
// exactly rows*cols codes, in row-major order. Layer 0 is activated.
func New(rows, cols int, layers ...[]key.Code) (*Layout, error) {
	if rows < 1 || cols < 1 || cols > 16 || rows > 16 {
		return nil, fmt.Errorf("matrix %dx%d out of range (1..16 each)", rows, cols)
	}
	if len(layers) == 0 {
		return nil, fmt.Errorf("layout needs at least one layer")
	}
	want := rows * cols
	for i, l := range layers {
		if len(l) != want {
			return nil, fmt.Errorf("layer %d has %d codes, want %d", i, len(l), want)
		}
	}
	lo := &Layout{
		rows:   rows,
		cols:   cols,
		layers: layers,
		active: make([]bool, len(layers)),
	}
	lo.active[0] = true
	return lo, nil
}

// Rows returns the matrix row count.
func (l *Layout) Rows() int { return l.rows }

// Cols returns the matrix column count.
func (l *Layout) Cols() int { return l.cols }

// NumLayers returns the number of layers.
func (l *Layout) NumLayers() int { return len(l.layers) }

// Activate turns a layer on. Layer 0 cannot be deactivated, so activating
// it is a no-op.
func (l *Layout) Activate(layer int) error {
	if layer < 0 || layer >= len(l.layers) {
		return fmt.Errorf("no layer %d", layer)
	}
	l.active[layer] = true
	return nil
}

// Deactivate turns a layer off. Layer 0 stays active.
func (l *Layout) Deactivate(layer int) error {
	if layer < 0 || layer >= len(l.layers) {
		return fmt.Errorf("no layer %d", layer)
	}
	if layer != 0 {
		l.active[layer] = false
	}
	return nil
}

// index returns the dense table index for a position, or -1 when the
// position is outside the matrix.
func (l *Layout) index(pos key.Pos) int {
	r, c := int(pos.Row()), int(pos.Col())
	if r >= l.rows || c >= l.cols {
		return -1
	}
	return r*l.cols + c
}

// Lookup returns the keycode mapped at pos by the topmost active layer with
// a non-transparent entry, or key.None if no layer maps it.
func (l *Layout) Lookup(pos key.Pos) key.Code {
	i := l.index(pos)
	if i < 0 {
		return key.None
	}
	for layer := len(l.layers) - 1; layer >= 0; layer-- {
		if !l.active[layer] {
			continue
		}
		if c := l.layers[layer][i]; c != key.Transparent {
			return c
		}
	}
	return key.None
}

// ActiveLayer returns the index of the layer that supplies the keycode for
// pos, following the same fall-through rule as Lookup. Positions outside
// the matrix report layer 0.
func (l *Layout) ActiveLayer(pos key.Pos) int {
	i := l.index(pos)
	if i < 0 {
		return 0
	}
	for layer := len(l.layers) - 1; layer >= 0; layer-- {
		if !l.active[layer] {
			continue
		}
		if l.layers[layer][i] != key.Transparent {
			return layer
		}
	}
	return 0
}
