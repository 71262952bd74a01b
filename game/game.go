// Package game wires the simulation to the raylib window.
package game

import (
	"github.com/pthm-cable/vrdemo/camera"
	"github.com/pthm-cable/vrdemo/config"
	"github.com/pthm-cable/vrdemo/input"
	"github.com/pthm-cable/vrdemo/renderer"
	"github.com/pthm-cable/vrdemo/sim"
	"github.com/pthm-cable/vrdemo/systems"
	"github.com/pthm-cable/vrdemo/ui"
)

// Title is the window title.
const Title = "XR Platform Demo"

// Game holds the simulation and everything needed to show it.
type Game struct {
	sim *sim.Sim
	cfg *config.Config

	// Rendering
	layout    *camera.Layout
	mirrors   *renderer.MirrorTargets
	scene     *renderer.SceneRenderer
	hud       *ui.HUD
	frames    *ui.Renderer
	perfPanel *ui.PerfPanel
	tuning    *ui.TuningPanel

	// State
	focus    int // clicked mirror pane, -1 = none
	keys     input.KeyState
	paused   bool
	showPerf bool
	showHelp bool

	// Window dimensions
	screenWidth, screenHeight float32
}

// NewGame creates a game. The raylib window must already be open.
func NewGame(cfg *config.Config, opts sim.Options) (*Game, error) {
	s, err := sim.New(cfg, opts)
	if err != nil {
		return nil, err
	}

	g := &Game{
		sim:          s,
		cfg:          cfg,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
		hud:          ui.NewHUD(),
		frames:       ui.NewRenderer(),
		tuning:       ui.NewTuningPanel(10, 120, 260),
		showHelp:     true,
		focus:        -1,
	}
	g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-240, 10, systems.NewSystemRegistry())
	g.tuning.SetVisible(cfg.Screen.DebugPanel)

	g.layout = camera.NewLayout(g.screenWidth, g.screenHeight, len(s.Mirrors()))
	g.mirrors = renderer.NewMirrorTargets(g.layout)
	g.scene = renderer.NewSceneRenderer(s.World())

	return g, nil
}

// Update handles input and advances the simulation one tick.
func (g *Game) Update() error {
	g.handleInput()
	if g.paused {
		return nil
	}

	if g.sim.HasScript() {
		g.keys = 0
		return g.sim.StepScripted()
	}
	g.keys = pollKeys()
	return g.sim.Step(g.keys)
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.sim.Tick()
}

// Unload frees GPU resources and closes the simulation.
func (g *Game) Unload() error {
	if g.mirrors != nil {
		g.mirrors.Unload()
	}
	return g.sim.Close()
}
