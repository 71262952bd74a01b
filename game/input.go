package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vrdemo/input"
)

// keyBindings maps platform controls to raylib keys.
var keyBindings = [...]struct {
	key input.Key
	rl  int32
}{
	{input.KeyW, rl.KeyW},
	{input.KeyS, rl.KeyS},
	{input.KeyA, rl.KeyA},
	{input.KeyD, rl.KeyD},
	{input.KeyQ, rl.KeyQ},
	{input.KeyE, rl.KeyE},
}

// pollKeys returns the platform keys currently held.
func pollKeys() input.KeyState {
	var s input.KeyState
	for _, b := range keyBindings {
		if rl.IsKeyDown(b.rl) {
			s = s.With(b.key)
		}
	}
	return s
}

// handleInput processes window and overlay keys.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		g.tuning.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.showHelp = !g.showHelp
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.handleClick(rl.GetMousePosition())
	}
}

// handleClick focuses the clicked mirror pane, or clears the focus when
// it is clicked again.
func (g *Game) handleClick(pos rl.Vector2) {
	pane, ok := g.layout.PaneAt(pos.X, pos.Y)
	if !ok || pane == g.focus {
		g.focus = -1
		return
	}
	g.focus = pane
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.layout.Resize(w, h)
	g.mirrors.Resize()
	g.perfPanel.SetPosition(int32(w)-240, 10)
}
