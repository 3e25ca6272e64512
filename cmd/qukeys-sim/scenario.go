package main

import (
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/qukeys/internal/config"
	"github.com/dshills/qukeys/internal/key"
	"github.com/dshills/qukeys/internal/scan"
)

// loadScenario reads a scenario file:
//
//	{"events": [
//	  {"at_ms": 0, "row": 0, "col": 0, "pressed": true},
//	  {"at_ms": 120, "row": 0, "col": 0, "pressed": false}
//	]}
//
// An empty path returns the built-in demo: a tap of the first qukey, then a
// hold of it across a tap of its right-hand neighbor.
func loadScenario(path string, setup *config.Setup) ([]scan.Event, error) {
	if path == "" {
		return demoScenario(setup), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("scenario is not valid JSON")
	}

	var events []scan.Event
	var parseErr error
	gjson.GetBytes(data, "events").ForEach(func(_, e gjson.Result) bool {
		row, col := int(e.Get("row").Int()), int(e.Get("col").Int())
		if row >= setup.Rows || col >= setup.Cols {
			parseErr = fmt.Errorf("event %d: position r%dc%d outside %dx%d matrix",
				len(events), row, col, setup.Rows, setup.Cols)
			return false
		}
		events = append(events, scan.Event{
			At:      time.Duration(e.Get("at_ms").Int()) * time.Millisecond,
			Pos:     key.NewPos(uint8(row), uint8(col)),
			Pressed: e.Get("pressed").Bool(),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("scenario has no events")
	}
	return events, nil
}

func demoScenario(setup *config.Setup) []scan.Event {
	first := key.NewPos(0, 0)
	second := key.NewPos(0, 1)
	return []scan.Event{
		// Quick tap: primary role.
		{At: 0, Pos: first, Pressed: true},
		{At: 80 * time.Millisecond, Pos: first, Pressed: false},
		// Hold across a neighbor tap: alternate role, neighbor deferred.
		{At: 300 * time.Millisecond, Pos: first, Pressed: true},
		{At: 350 * time.Millisecond, Pos: second, Pressed: true},
		{At: 420 * time.Millisecond, Pos: second, Pressed: false},
		{At: 900 * time.Millisecond, Pos: first, Pressed: false},
	}
}
