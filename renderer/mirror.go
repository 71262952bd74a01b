package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vrdemo/camera"
)

// MirrorTargets holds one offscreen target per mirror pane and composites
// them side by side onto the window.
type MirrorTargets struct {
	layout  *camera.Layout
	targets []rl.RenderTexture2D
	w, h    int32
}

// NewMirrorTargets creates render textures sized to the layout's panes.
// Must be called after the raylib window exists.
func NewMirrorTargets(layout *camera.Layout) *MirrorTargets {
	m := &MirrorTargets{layout: layout}
	m.allocate()
	return m
}

func (m *MirrorTargets) allocate() {
	vp := m.layout.Viewport(0)
	m.w, m.h = int32(vp.W), int32(vp.H)
	if m.w < 1 {
		m.w = 1
	}
	if m.h < 1 {
		m.h = 1
	}
	m.targets = make([]rl.RenderTexture2D, m.layout.Panes)
	for i := range m.targets {
		m.targets[i] = rl.LoadRenderTexture(m.w, m.h)
	}
}

// Resize reallocates the targets if the pane size changed.
func (m *MirrorTargets) Resize() {
	vp := m.layout.Viewport(0)
	if int32(vp.W) == m.w && int32(vp.H) == m.h {
		return
	}
	m.Unload()
	m.allocate()
}

// Render draws into pane i's target after clearing it to clear.
func (m *MirrorTargets) Render(i int, clear rl.Color, draw func()) {
	if i < 0 || i >= len(m.targets) {
		return
	}
	rl.BeginTextureMode(m.targets[i])
	rl.ClearBackground(clear)
	draw()
	rl.EndTextureMode()
}

// Composite blits every target into its pane on the window.
func (m *MirrorTargets) Composite() {
	for i, t := range m.targets {
		vp := m.layout.Viewport(i)
		// Render textures are stored upside down
		src := rl.Rectangle{X: 0, Y: 0, Width: float32(t.Texture.Width), Height: -float32(t.Texture.Height)}
		dst := rl.Rectangle{X: vp.X, Y: vp.Y, Width: vp.W, Height: vp.H}
		rl.DrawTexturePro(t.Texture, src, dst, rl.Vector2{}, 0, rl.White)
	}
}

// Unload frees the render textures.
func (m *MirrorTargets) Unload() {
	for _, t := range m.targets {
		rl.UnloadRenderTexture(t)
	}
	m.targets = nil
}
