package config

import (
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/qukeys/internal/key"
	"github.com/dshills/qukeys/internal/qukeys"
)

// LoadLuaFile executes a Lua setup script from disk.
func LoadLuaFile(path string) (*Setup, error) {
	L := lua.NewState()
	defer L.Close()
	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("running config script: %w", err)
	}
	return setupFromLua(L)
}

// LoadLua executes a Lua setup script:
//
//	matrix = { rows = 1, cols = 4 }
//	layers = { {"A", "B", "C", "D"} }
//	qukeys = { {layer = -1, row = 0, col = 0, alternate = "LeftShift"} }
//	time_limit = 250 -- milliseconds
//	queue_capacity = 8
func LoadLua(src string) (*Setup, error) {
	L := lua.NewState()
	defer L.Close()
	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("running config script: %w", err)
	}
	return setupFromLua(L)
}

func setupFromLua(L *lua.LState) (*Setup, error) {
	s := &Setup{}

	matrix, ok := L.GetGlobal("matrix").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("matrix table missing")
	}
	s.Rows = intField(matrix, "rows")
	s.Cols = intField(matrix, "cols")

	layers, ok := L.GetGlobal("layers").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("layers table missing")
	}
	var err error
	layers.ForEach(func(_, lv lua.LValue) {
		if err != nil {
			return
		}
		layer, ok := lv.(*lua.LTable)
		if !ok {
			err = fmt.Errorf("layer %d is not a table", len(s.Layers))
			return
		}
		var codes []key.Code
		layer.ForEach(func(_, kv lua.LValue) {
			if err != nil {
				return
			}
			c, perr := key.Parse(lua.LVAsString(kv))
			if perr != nil {
				err = fmt.Errorf("layer %d: %w", len(s.Layers), perr)
				return
			}
			codes = append(codes, c)
		})
		if err == nil {
			s.Layers = append(s.Layers, codes)
		}
	})
	if err != nil {
		return nil, err
	}

	if qt, ok := L.GetGlobal("qukeys").(*lua.LTable); ok {
		qt.ForEach(func(_, qv lua.LValue) {
			if err != nil {
				return
			}
			q, ok := qv.(*lua.LTable)
			if !ok {
				err = fmt.Errorf("qukey %d is not a table", len(s.Qukeys))
				return
			}
			alt, perr := key.Parse(lua.LVAsString(q.RawGetString("alternate")))
			if perr != nil {
				err = fmt.Errorf("qukey %d: %w", len(s.Qukeys), perr)
				return
			}
			layer := qukeys.AllLayers
			if lv := q.RawGetString("layer"); lv != lua.LNil {
				layer = int8(lua.LVAsNumber(lv))
			}
			s.Qukeys = append(s.Qukeys, qukeys.Qukey{
				Layer:     layer,
				Pos:       key.NewPos(uint8(intValue(q.RawGetString("row"))), uint8(intValue(q.RawGetString("col")))),
				Alternate: alt,
			})
		})
		if err != nil {
			return nil, err
		}
	}

	if lv := L.GetGlobal("time_limit"); lv != lua.LNil {
		s.TimeLimit = time.Duration(lua.LVAsNumber(lv)) * time.Millisecond
	}
	if lv := L.GetGlobal("queue_capacity"); lv != lua.LNil {
		s.QueueCapacity = intValue(lv)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func intField(t *lua.LTable, name string) int {
	return intValue(t.RawGetString(name))
}

func intValue(v lua.LValue) int {
	return int(lua.LVAsNumber(v))
}
