// Package renderer draws the scene into per-eye mirror panes with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vrdemo/camera"
	"github.com/pthm-cable/vrdemo/components"
)

var shadowColor = rl.Color{R: 0, G: 0, B: 0, A: 90}

// SceneRenderer draws mesh entities lit by the scene's point lights.
type SceneRenderer struct {
	meshes *ecs.Filter2[components.Transform, components.Mesh]
	lights *ecs.Filter2[components.Transform, components.PointLight]

	lightBuf []lightSource
}

// NewSceneRenderer creates a renderer for the world's meshes.
func NewSceneRenderer(w *ecs.World) *SceneRenderer {
	return &SceneRenderer{
		meshes: ecs.NewFilter2[components.Transform, components.Mesh](w),
		lights: ecs.NewFilter2[components.Transform, components.PointLight](w),
	}
}

// Draw renders the world from the given view. Must be called between
// BeginDrawing (or BeginTextureMode) and the matching End call.
func (r *SceneRenderer) Draw(view camera.View) {
	cam := rl.Camera3D{
		Position:   vec(view.Position),
		Target:     vec(view.Target),
		Up:         vec(view.Up),
		Fovy:       view.FovY,
		Projection: rl.CameraPerspective,
	}

	r.collectLights()

	rl.BeginMode3D(cam)
	meshes := r.meshes.Query()
	for meshes.Next() {
		tr, mesh := meshes.Get()
		r.drawMesh(*tr, *mesh)
	}
	r.drawLights()
	rl.EndMode3D()
}

func (r *SceneRenderer) collectLights() {
	r.lightBuf = r.lightBuf[:0]
	query := r.lights.Query()
	for query.Next() {
		tr, light := query.Get()
		r.lightBuf = append(r.lightBuf, lightSource{pos: tr.Translation, light: *light})
	}
}

// drawMesh draws one mesh in its local frame.
func (r *SceneRenderer) drawMesh(tr components.Transform, mesh components.Mesh) {
	base := toColor(mesh.Color)
	c := shade(base, brightness(r.lightBuf, tr.Translation, tr.Up()))

	if mesh.Shape != components.ShapeDisc {
		r.drawShadow(tr, mesh)
	}

	axis, angle := tr.AxisAngle()
	rl.PushMatrix()
	rl.Translatef(tr.Translation[0], tr.Translation[1], tr.Translation[2])
	rl.Rotatef(mgl32.RadToDeg(angle), axis[0], axis[1], axis[2])
	rl.Scalef(tr.Scale[0], tr.Scale[1], tr.Scale[2])

	origin := rl.Vector3{}
	switch mesh.Shape {
	case components.ShapeCuboid:
		rl.DrawCube(origin, mesh.Size[0], mesh.Size[1], mesh.Size[2], c)
		rl.DrawCubeWires(origin, mesh.Size[0], mesh.Size[1], mesh.Size[2], shade(base, 0.5))
	case components.ShapeDisc:
		// Discs lie in the local XY plane facing +Z.
		rl.DrawCylinderEx(
			rl.Vector3{Z: -mesh.Size[2]}, origin,
			mesh.Size[0], mesh.Size[0], 48, c,
		)
	case components.ShapeSphere:
		rl.DrawSphere(origin, mesh.Size[0], c)
	}
	rl.PopMatrix()
}

// drawShadow draws a flat blob under a mesh for each shadow casting light.
func (r *SceneRenderer) drawShadow(tr components.Transform, mesh components.Mesh) {
	radius := max(mesh.Size[0], mesh.Size[2]) / 2
	for _, l := range r.lightBuf {
		if !l.light.Shadows {
			continue
		}
		pos, scale, ok := groundShadow(l.pos, tr.Translation)
		if !ok {
			continue
		}
		rl.DrawCylinder(vec(pos), radius*scale, radius*scale, 0.001, 24, shadowColor)
	}
}

// drawLights draws a small marker at each light.
func (r *SceneRenderer) drawLights() {
	for _, l := range r.lightBuf {
		rl.DrawSphere(vec(l.pos), 0.1, rl.Color{R: 255, G: 240, B: 200, A: 255})
	}
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}
