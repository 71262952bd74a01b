// Package camera converts mirror camera transforms into perspective views
// and lays the per-eye views out on the desktop window.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/vrdemo/components"
)

// Clip planes shared by all mirror views.
const (
	Near float32 = 0.05
	Far  float32 = 100
)

// View is a perspective camera in world space.
type View struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// Vertical field of view in degrees
	FovY float32
}

// FromTransform builds a view looking along the transform's forward axis.
func FromTransform(t components.Transform, fovY float32) View {
	return View{
		Position: t.Translation,
		Target:   t.Translation.Add(t.Forward()),
		Up:       t.Up(),
		FovY:     fovY,
	}
}

// ViewMatrix returns the world-to-camera matrix.
func (v View) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(v.Position, v.Target, v.Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (v View) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(v.FovY), aspect, Near, Far)
}

// WorldToScreen projects a world point into the viewport.
// ok is false when the point is behind the camera or outside the viewport.
func (v View) WorldToScreen(p mgl32.Vec3, vp Viewport) (sx, sy float32, ok bool) {
	clip := v.Projection(vp.Aspect()).Mul4(v.ViewMatrix()).Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, false
	}
	nx, ny := clip[0]/clip[3], clip[1]/clip[3]

	sx = vp.X + (nx+1)/2*vp.W
	sy = vp.Y + (1-ny)/2*vp.H
	return sx, sy, absf(nx) <= 1 && absf(ny) <= 1
}

// Viewport is a rectangle on the desktop window in pixels.
type Viewport struct {
	X, Y, W, H float32
}

// Aspect returns width over height, or 1 for a degenerate viewport.
func (vp Viewport) Aspect() float32 {
	if vp.H <= 0 {
		return 1
	}
	return vp.W / vp.H
}

// Contains reports whether the screen point lies inside the viewport.
func (vp Viewport) Contains(sx, sy float32) bool {
	return sx >= vp.X && sx < vp.X+vp.W && sy >= vp.Y && sy < vp.Y+vp.H
}

// Layout splits the window into equal side-by-side panes, one per mirror.
type Layout struct {
	ScreenW, ScreenH float32
	Panes            int
}

// NewLayout creates a layout with at least one pane.
func NewLayout(screenW, screenH float32, panes int) *Layout {
	if panes < 1 {
		panes = 1
	}
	return &Layout{ScreenW: screenW, ScreenH: screenH, Panes: panes}
}

// Resize updates the window dimensions.
func (l *Layout) Resize(screenW, screenH float32) {
	l.ScreenW = screenW
	l.ScreenH = screenH
}

// Viewport returns the rectangle for pane i. Out of range indices clamp.
func (l *Layout) Viewport(i int) Viewport {
	i = clampi(i, 0, l.Panes-1)
	w := l.ScreenW / float32(l.Panes)
	return Viewport{X: float32(i) * w, Y: 0, W: w, H: l.ScreenH}
}

// PaneAt returns the pane under a screen point.
func (l *Layout) PaneAt(sx, sy float32) (int, bool) {
	for i := 0; i < l.Panes; i++ {
		if l.Viewport(i).Contains(sx, sy) {
			return i, true
		}
	}
	return -1, false
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampi(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
