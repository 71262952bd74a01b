package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/vrdemo/components"
)

const (
	ambient      = 0.35
	shadowHeight = 0.002 // lift above the ground to avoid z-fighting
)

// lightSource is a point light in world space.
type lightSource struct {
	pos   mgl32.Vec3
	light components.PointLight
}

// brightness returns the diffuse factor at a surface point with the
// given normal, summed over lights with linear range falloff.
func brightness(lights []lightSource, p, normal mgl32.Vec3) float32 {
	b := float32(ambient)
	for _, l := range lights {
		d := l.pos.Sub(p)
		dist := d.Len()
		if dist < 1e-6 || l.light.Range <= 0 || dist >= l.light.Range {
			continue
		}
		lambert := normal.Dot(d.Mul(1 / dist))
		if lambert <= 0 {
			continue
		}
		falloff := 1 - dist/l.light.Range
		b += lambert * falloff * l.light.Intensity
	}
	return b
}

// groundShadow projects p from a light onto the y=0 plane. scale grows
// with the distance from the occluder to the ground relative to the light.
// ok is false when the light is not above the point.
func groundShadow(light, p mgl32.Vec3) (pos mgl32.Vec3, scale float32, ok bool) {
	if light[1] <= p[1] || p[1] < 0 {
		return mgl32.Vec3{}, 0, false
	}
	t := light[1] / (light[1] - p[1])
	pos = light.Add(p.Sub(light).Mul(t))
	pos[1] = shadowHeight
	return pos, t, true
}
