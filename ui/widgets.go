package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer draws overlay widgets in the theme's style.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a bordered panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a header and returns the next line's Y.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws "label: value" and returns the next line's Y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawPose draws a world position with its yaw in degrees.
func (r *Renderer) DrawPose(x, y int32, label string, pos mgl32.Vec3, yaw float32) int32 {
	value := fmt.Sprintf("(%.2f, %.2f, %.2f) yaw %.0f°", pos[0], pos[1], pos[2], mgl32.RadToDeg(yaw))
	return r.DrawLabelValue(x, y, label, value)
}

// DrawWarning draws a warning line prefixed with a marker and returns the
// next line's Y.
func (r *Renderer) DrawWarning(x, y int32, msg string) int32 {
	rl.DrawRectangle(x, y+2, 4, r.Theme.FontSize, r.Theme.WarnColor)
	rl.DrawText(msg, x+10, y, r.Theme.HeaderFontSize, r.Theme.WarnColor)
	return y + r.Theme.LineHeight + 4
}

// DrawPaneFrame outlines a mirror pane in the header color.
func (r *Renderer) DrawPaneFrame(x, y, width, height float32) {
	rect := rl.Rectangle{X: x + 1, Y: y + 1, Width: width - 2, Height: height - 2}
	rl.DrawRectangleLinesEx(rect, 2, r.Theme.SectionHeader)
}
