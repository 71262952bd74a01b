package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vrdemo/camera"
	"github.com/pthm-cable/vrdemo/ui"
)

var skyColor = rl.Color{R: 28, G: 32, B: 40, A: 255}

const controlsHelp = "WASD move | Q/E turn | Click focus pane | Space pause | F1 tuning | F2 perf | H help"

// Draw renders each mirror pane and the overlay.
func (g *Game) Draw() {
	clear := g.clearColor()
	mirrors := g.sim.Mirrors()

	views := make([]camera.View, len(mirrors))
	for i, m := range mirrors {
		views[i] = camera.FromTransform(m.Transform, m.FovY)
		view := views[i]
		g.mirrors.Render(i, clear, func() {
			g.scene.Draw(view)
		})
	}

	rl.BeginDrawing()
	rl.ClearBackground(clear)
	g.mirrors.Composite()

	g.drawPaneLabels(views)
	g.drawOverlay()

	rl.EndDrawing()
	g.sim.Perf().RecordFrame()
}

// clearColor is transparent when the session composites over the real
// world and the window was created transparent.
func (g *Game) clearColor() rl.Color {
	if g.cfg.Screen.Transparent && g.sim.Session().BlendMode.SeeThrough() {
		return rl.Blank
	}
	return skyColor
}

// drawPaneLabels names each pane and tags the platform where visible.
func (g *Game) drawPaneLabels(views []camera.View) {
	plat, _ := g.sim.Platform()
	for i, m := range g.sim.Mirrors() {
		vp := g.layout.Viewport(i)
		rl.DrawText(m.Eye.String()+" eye", int32(vp.X+vp.W)-80, int32(vp.H)-25, 14, rl.Gray)

		if sx, sy, ok := views[i].WorldToScreen(plat.Translation, vp); ok {
			rl.DrawText("platform", int32(sx)-24, int32(sy)-20, 12, rl.RayWhite)
		}
		if i > 0 {
			rl.DrawLine(int32(vp.X), 0, int32(vp.X), int32(vp.H), rl.DarkGray)
		}
		if i == g.focus {
			g.frames.DrawPaneFrame(vp.X, vp.Y, vp.W, vp.H)
		}
	}
}

func (g *Game) drawOverlay() {
	plat, ctrl := g.sim.Platform()
	session := g.sim.Session()

	keys := g.keys.String()
	if g.sim.HasScript() {
		keys = "script"
	}

	data := ui.HUDData{
		Title:          Title,
		Tick:           g.sim.Tick(),
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
		Keys:           keys,
		Position:       plat.Translation,
		Yaw:            plat.Yaw(),
		BlendMode:      session.BlendMode.String(),
		Runtime:        g.sim.RuntimeName(),
		LayoutVerified: g.sim.LayoutVerified(),
		Scripted:       g.sim.HasScript(),
	}
	if head, ok := g.sim.Head(); ok {
		data.Head = head.Translation
		data.HeadYaw = head.Yaw()
		data.HasHead = true
	}
	if mirrors := g.sim.Mirrors(); g.focus >= 0 && g.focus < len(mirrors) {
		m := mirrors[g.focus]
		data.FocusEye = m.Eye.String()
		data.FocusPosition = m.Transform.Translation
		data.FocusYaw = m.Transform.Yaw()
		data.FocusAvailable = true
	}
	g.hud.Draw(data)

	if speed, rot, changed := g.tuning.Draw(ctrl.Speed, ctrl.RotationSpeed); changed {
		g.sim.SetPlatformSpeeds(speed, rot)
	}

	if g.showPerf {
		g.perfPanel.Draw(g.sim.Perf().Stats())
	}
	if g.showHelp {
		g.hud.DrawControls(int32(g.screenHeight), controlsHelp)
	}
}
