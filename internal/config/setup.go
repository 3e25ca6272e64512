package config

import (
	"fmt"
	"time"

	"github.com/dshills/qukeys/internal/key"
	"github.com/dshills/qukeys/internal/layout"
	"github.com/dshills/qukeys/internal/qukeys"
)

// Setup is a fully validated keyboard configuration.
type Setup struct {
	// Rows and Cols describe the matrix.
	Rows, Cols int

	// Layers are the keymap layers, row-major, bottom first.
	Layers [][]key.Code

	// Qukeys is the dual-role key table.
	Qukeys []qukeys.Qukey

	// TimeLimit is the qukey hold deadline. Zero means the engine default.
	TimeLimit time.Duration

	// QueueCapacity bounds the pending queue. Zero means the engine
	// default.
	QueueCapacity int
}

// Layout builds the layout described by the setup.
func (s *Setup) Layout() (*layout.Layout, error) {
	return layout.New(s.Rows, s.Cols, s.Layers...)
}

// EngineConfig returns the engine tuning from the setup.
func (s *Setup) EngineConfig() qukeys.Config {
	cfg := qukeys.DefaultConfig()
	if s.TimeLimit > 0 {
		cfg.TimeLimit = s.TimeLimit
	}
	if s.QueueCapacity > 0 {
		cfg.QueueCapacity = s.QueueCapacity
	}
	return cfg
}

// validate checks cross-field consistency after either loader has filled
// the setup in.
func (s *Setup) validate() error {
	if s.Rows < 1 || s.Cols < 1 {
		return fmt.Errorf("matrix %dx%d invalid", s.Rows, s.Cols)
	}
	if len(s.Layers) == 0 {
		return fmt.Errorf("no layers defined")
	}
	want := s.Rows * s.Cols
	for i, l := range s.Layers {
		if len(l) != want {
			return fmt.Errorf("layer %d has %d keys, want %d", i, len(l), want)
		}
	}
	for i, q := range s.Qukeys {
		if q.Layer != qukeys.AllLayers && (q.Layer < 0 || int(q.Layer) >= len(s.Layers)) {
			return fmt.Errorf("qukey %d: layer %d out of range", i, q.Layer)
		}
		if int(q.Pos.Row()) >= s.Rows || int(q.Pos.Col()) >= s.Cols {
			return fmt.Errorf("qukey %d: position %s outside %dx%d matrix",
				i, q.Pos, s.Rows, s.Cols)
		}
		if !q.Alternate.Valid() {
			return fmt.Errorf("qukey %d: alternate keycode %s not reportable", i, q.Alternate)
		}
	}
	return nil
}
