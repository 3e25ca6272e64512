package config

import (
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/qukeys/internal/key"
	"github.com/dshills/qukeys/internal/qukeys"
)

// LoadJSONFile reads a JSON setup from disk.
func LoadJSONFile(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return LoadJSON(data)
}

// LoadJSON parses a JSON setup:
//
//	{
//	  "matrix": {"rows": 1, "cols": 4},
//	  "layers": [["A", "B", "C", "D"]],
//	  "qukeys": [{"layer": -1, "row": 0, "col": 0, "alternate": "LeftShift"}],
//	  "time_limit_ms": 250,
//	  "queue_capacity": 8
//	}
func LoadJSON(data []byte) (*Setup, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.ParseBytes(data)

	s := &Setup{
		Rows: int(root.Get("matrix.rows").Int()),
		Cols: int(root.Get("matrix.cols").Int()),
	}

	layers := root.Get("layers")
	if !layers.IsArray() {
		return nil, fmt.Errorf("layers missing or not an array")
	}
	var layerErr error
	layers.ForEach(func(_, layer gjson.Result) bool {
		var codes []key.Code
		layer.ForEach(func(_, name gjson.Result) bool {
			c, err := key.Parse(name.String())
			if err != nil {
				layerErr = fmt.Errorf("layer %d: %w", len(s.Layers), err)
				return false
			}
			codes = append(codes, c)
			return true
		})
		if layerErr != nil {
			return false
		}
		s.Layers = append(s.Layers, codes)
		return true
	})
	if layerErr != nil {
		return nil, layerErr
	}

	var qkErr error
	root.Get("qukeys").ForEach(func(_, q gjson.Result) bool {
		alt, err := key.Parse(q.Get("alternate").String())
		if err != nil {
			qkErr = fmt.Errorf("qukey %d: %w", len(s.Qukeys), err)
			return false
		}
		layer := qukeys.AllLayers
		if v := q.Get("layer"); v.Exists() {
			layer = int8(v.Int())
		}
		s.Qukeys = append(s.Qukeys, qukeys.Qukey{
			Layer:     layer,
			Pos:       key.NewPos(uint8(q.Get("row").Int()), uint8(q.Get("col").Int())),
			Alternate: alt,
		})
		return true
	})
	if qkErr != nil {
		return nil, qkErr
	}

	if v := root.Get("time_limit_ms"); v.Exists() {
		s.TimeLimit = time.Duration(v.Int()) * time.Millisecond
	}
	if v := root.Get("queue_capacity"); v.Exists() {
		s.QueueCapacity = int(v.Int())
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// MarshalJSON serializes a setup back to the JSON form LoadJSON accepts.
func MarshalJSON(s *Setup) ([]byte, error) {
	out := []byte(`{}`)
	var err error

	if out, err = sjson.SetBytes(out, "matrix.rows", s.Rows); err != nil {
		return nil, err
	}
	if out, err = sjson.SetBytes(out, "matrix.cols", s.Cols); err != nil {
		return nil, err
	}

	for li, layer := range s.Layers {
		for ki, c := range layer {
			path := fmt.Sprintf("layers.%d.%d", li, ki)
			if out, err = sjson.SetBytes(out, path, c.String()); err != nil {
				return nil, err
			}
		}
	}

	for i, q := range s.Qukeys {
		base := fmt.Sprintf("qukeys.%d", i)
		if out, err = sjson.SetBytes(out, base+".layer", int(q.Layer)); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, base+".row", int(q.Pos.Row())); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, base+".col", int(q.Pos.Col())); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, base+".alternate", q.Alternate.String()); err != nil {
			return nil, err
		}
	}

	if s.TimeLimit > 0 {
		if out, err = sjson.SetBytes(out, "time_limit_ms", s.TimeLimit.Milliseconds()); err != nil {
			return nil, err
		}
	}
	if s.QueueCapacity > 0 {
		if out, err = sjson.SetBytes(out, "queue_capacity", s.QueueCapacity); err != nil {
			return nil, err
		}
	}
	return out, nil
}
