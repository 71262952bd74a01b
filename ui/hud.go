package ui

import (
	"fmt"

	"github.com/dustin/go-humanize"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/vrdemo/systems"
	"github.com/pthm-cable/vrdemo/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Tick           int64
	FPS            int32
	Paused         bool
	Keys           string
	Position       [3]float32
	Yaw            float32 // radians
	BlendMode      string
	Runtime        string
	LayoutVerified bool
	Scripted       bool

	// Head is the headset's world position.
	Head    [3]float32
	HeadYaw float32
	HasHead bool

	// Focus is the clicked mirror pane, if any.
	FocusEye       string
	FocusPosition  [3]float32
	FocusYaw       float32
	FocusAvailable bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Platform: (%.2f, %.2f, %.2f) yaw %.0f°",
			data.Position[0], data.Position[1], data.Position[2], mgl32.RadToDeg(data.Yaw)),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %s | FPS: %d | Keys: %s | XR: %s (%s)",
			humanize.Comma(data.Tick), data.FPS, data.Keys, data.Runtime, data.BlendMode),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	if data.Scripted {
		status = "Running (scripted)"
	}
	if data.Paused {
		status = "PAUSED"
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)

	r := h.renderer
	y := int32(95)
	if data.HasHead {
		y = r.DrawPose(10, y, "Head", data.Head, data.HeadYaw)
	}
	if data.FocusAvailable {
		y = r.DrawPose(10, y, data.FocusEye+" eye", data.FocusPosition, data.FocusYaw)
	}
	if !data.LayoutVerified {
		r.DrawWarning(10, y+4, "Eye layout unverified: mirrors may be swapped")
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-system tick time breakdown.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32, registry *systems.SystemRegistry) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: registry,
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	width := int32(230)
	height := int32(len(p.registry.IDs())+3)*r.Theme.LineHeight + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, p.y+r.Theme.Padding, "System Performance")
	y = r.DrawLabelValue(x, y, "tick avg", stats.AvgTickDuration.String())
	y = r.DrawLabelValue(x, y, "tick p95", stats.P95TickDuration.String())

	for _, id := range p.registry.IDs() {
		pct := stats.PhasePct[id]
		color := r.Theme.LabelColor
		if pct > 50 {
			color = r.Theme.WarnColor
		}
		rl.DrawText(fmt.Sprintf("%-12s %5.1f%%", p.registry.GetName(id), pct), x, y, r.Theme.FontSize, color)
		y += r.Theme.LineHeight
	}
}
