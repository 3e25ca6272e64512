// Package main is the qukeys simulator: it replays a scripted key scenario
// through the resolution engine and visualizes the queue and the reports a
// host would receive.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/qukeys/internal/config"
	"github.com/dshills/qukeys/internal/hid"
	"github.com/dshills/qukeys/internal/key"
	"github.com/dshills/qukeys/internal/layout"
	"github.com/dshills/qukeys/internal/log"
	"github.com/dshills/qukeys/internal/qukeys"
	"github.com/dshills/qukeys/internal/scan"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath   string
	scenarioPath string
	periodMS     int
	logLevel     string
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "keyboard config (.json or .lua)")
	flag.StringVar(&opts.scenarioPath, "scenario", "", "scenario file (JSON); omit for the built-in demo")
	flag.IntVar(&opts.periodMS, "period", 10, "simulated scan period in milliseconds")
	flag.StringVar(&opts.logLevel, "log", "info", "log level (debug, info, warn, error)")
	flag.Parse()
	return opts
}

func run() int {
	opts := parseFlags()

	setup, err := loadSetup(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	events, err := loadScenario(opts.scenarioPath, setup)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	s, err := newSim(setup, events, time.Duration(opts.periodMS)*time.Millisecond, opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	if err := s.eventLoop(screen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadSetup picks the loader from the file extension. An empty path uses a
// built-in 1x4 home-row demo.
func loadSetup(path string) (*config.Setup, error) {
	if path == "" {
		return config.LoadLua(demoConfig)
	}
	switch filepath.Ext(path) {
	case ".lua":
		return config.LoadLuaFile(path)
	case ".json":
		return config.LoadJSONFile(path)
	default:
		return nil, fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

const demoConfig = `
matrix = { rows = 1, cols = 4 }
layers = { {"A", "S", "D", "F"} }
qukeys = {
  { row = 0, col = 0, alternate = "LeftShift" },
  { row = 0, col = 1, alternate = "LeftControl" },
}
time_limit = 250
`

// manualClock is advanced one scan period per simulated cycle.
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type sim struct {
	setup  *config.Setup
	layout *layout.Layout
	engine *qukeys.Engine
	kbd    *hid.Keyboard
	loop   *scan.Loop
	script *scan.Script
	clock  *manualClock

	cycles int
	sent   []string
}

func newSim(setup *config.Setup, events []scan.Event, period time.Duration, level string) (*sim, error) {
	lo, err := setup.Layout()
	if err != nil {
		return nil, err
	}

	s := &sim{setup: setup, layout: lo, clock: &manualClock{now: time.Unix(0, 0)}}
	s.kbd = hid.NewKeyboard(hid.SenderFunc(func(r *hid.Report) error {
		s.sent = append(s.sent, reportSig(r))
		return nil
	}))

	engCfg := setup.EngineConfig()
	engCfg.Now = s.clock.Now
	engCfg.Logger = log.New(os.Stderr, log.ParseLevel(level), "sim")
	s.engine = qukeys.New(qukeys.NewTable(setup.Qukeys), lo, s.kbd, engCfg)

	s.script = scan.NewScript(lo.Cols(), events)
	s.loop = scan.NewLoop(lo, s.engine, s.kbd, s.script, scan.Config{
		Period: period,
		Now:    s.clock.Now,
	})
	return s, nil
}

// step runs one scan cycle and advances the simulated clock.
func (s *sim) step() error {
	if err := s.loop.Cycle(); err != nil {
		return err
	}
	s.clock.advance(s.loop.Period())
	s.cycles++
	return nil
}

// runOut steps until the script is exhausted, plus enough settle cycles for
// any queued qukey to hit its deadline.
func (s *sim) runOut() error {
	for !s.script.Done() {
		if err := s.step(); err != nil {
			return err
		}
	}
	settle := int(s.engine.Timeout()/s.loop.Period()) + 2
	for i := 0; i < settle; i++ {
		if err := s.step(); err != nil {
			return err
		}
	}
	return nil
}

func (s *sim) eventLoop(screen tcell.Screen) error {
	for {
		s.draw(screen)
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
				return nil
			case ev.Rune() == ' ':
				if err := s.step(); err != nil {
					return err
				}
			case ev.Rune() == 'r':
				if err := s.runOut(); err != nil {
					return err
				}
			}
		}
	}
}

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleQueued  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleSent    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

func (s *sim) draw(screen tcell.Screen) {
	screen.Clear()

	drawString(screen, 0, 0, styleTitle,
		fmt.Sprintf("qukeys-sim  cycle %d  t=%s  [space] step  [r] run out  [q] quit",
			s.cycles, time.Duration(s.cycles)*s.loop.Period()))

	y := 2
	drawString(screen, 0, y, styleTitle, "Matrix")
	y++
	for row := 0; row < s.setup.Rows; row++ {
		var line strings.Builder
		for col := 0; col < s.setup.Cols; col++ {
			pos := key.NewPos(uint8(row), uint8(col))
			line.WriteString(fmt.Sprintf("%-14s", s.layout.Lookup(pos).String()))
		}
		drawString(screen, 2, y, styleDefault, line.String())
		y++
	}

	y++
	drawString(screen, 0, y, styleTitle,
		fmt.Sprintf("Pending queue (%d)", s.engine.QueueLen()))
	y++
	for i := 0; i < s.engine.QueueLen(); i++ {
		pos, deadline := s.engine.QueuedAt(i)
		left := deadline.Sub(s.clock.Now())
		drawString(screen, 2, y, styleQueued,
			fmt.Sprintf("%d: %s (%s) expires in %s", i, pos, s.layout.Lookup(pos), left))
		y++
	}

	y++
	drawString(screen, 0, y, styleTitle, "Reports sent")
	y++
	start := 0
	if len(s.sent) > 10 {
		start = len(s.sent) - 10
	}
	for i := start; i < len(s.sent); i++ {
		drawString(screen, 2, y, styleSent, fmt.Sprintf("%3d: %s", i, s.sent[i]))
		y++
	}

	screen.Show()
}

func drawString(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func reportSig(r *hid.Report) string {
	var parts []string
	for c := key.LeftControl; c <= key.RightGUI; c++ {
		if r.IsPressed(c) {
			parts = append(parts, c.String())
		}
	}
	for _, c := range r.Keys() {
		parts = append(parts, c.String())
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, "+")
}
