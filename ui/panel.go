package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Slider limits for the tuning panel.
const (
	MaxSpeed         = 1.0
	MaxRotationSpeed = 2.0
)

// TuningPanel exposes the platform controller as live sliders.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewTuningPanel creates a hidden tuning panel.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetVisible shows or hides the panel.
func (t *TuningPanel) SetVisible(visible bool) {
	t.visible = visible
}

// Toggle switches panel visibility.
func (t *TuningPanel) Toggle() bool {
	t.visible = !t.visible
	return t.visible
}

// Draw renders the sliders and returns the possibly edited speeds.
// changed is true when either slider moved this frame.
func (t *TuningPanel) Draw(speed, rotationSpeed float32) (newSpeed, newRotationSpeed float32, changed bool) {
	if !t.visible {
		return speed, rotationSpeed, false
	}

	r := t.renderer
	pad := r.Theme.Padding
	r.DrawPanel(t.x, t.y, t.width, 120)

	x := float32(t.x + pad)
	y := r.DrawSectionHeader(t.x+pad, t.y+pad, "Platform")
	sliderW := float32(t.width - pad*2 - 50)

	rl.DrawText("Speed (per tick)", int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	newSpeed = gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 16},
		"", "",
		speed, 0, MaxSpeed,
	)
	rl.DrawText(fmt.Sprintf("%.2f", newSpeed), int32(x+sliderW+6), y+2, r.Theme.FontSize, r.Theme.ValueColor)
	y += 22

	rl.DrawText("Rotation (rad per tick)", int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	newRotationSpeed = gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 16},
		"", "",
		rotationSpeed, 0, MaxRotationSpeed,
	)
	rl.DrawText(fmt.Sprintf("%.2f", newRotationSpeed), int32(x+sliderW+6), y+2, r.Theme.FontSize, r.Theme.ValueColor)

	changed = newSpeed != speed || newRotationSpeed != rotationSpeed
	return newSpeed, newRotationSpeed, changed
}
