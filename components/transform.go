package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Axis directions. Forward is -Z by convention.
var (
	AxisX   = mgl32.Vec3{1, 0, 0}
	AxisY   = mgl32.Vec3{0, 1, 0}
	AxisZ   = mgl32.Vec3{0, 0, 1}
	forward = mgl32.Vec3{0, 0, -1}
)

// Transform is a rigid transform with non-uniform scale.
// Applied to a point p it yields Rotation*(Scale*p) + Translation.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// FromXYZ returns an unrotated transform at the given position.
func FromXYZ(x, y, z float32) Transform {
	t := Identity()
	t.Translation = mgl32.Vec3{x, y, z}
	return t
}

// FromRotation returns a transform at the origin with the given rotation.
func FromRotation(q mgl32.Quat) Transform {
	t := Identity()
	t.Rotation = q
	return t
}

// RotationX returns a rotation of angle radians about +X.
func RotationX(angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, AxisX)
}

// RotationY returns a rotation of angle radians about +Y.
func RotationY(angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, AxisY)
}

// Forward returns the unit vector the transform faces (-Z rotated).
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(forward)
}

// Right returns the transform's local +X axis in world space.
func (t Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(AxisX)
}

// Up returns the transform's local +Y axis in world space.
func (t Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(AxisY)
}

// TransformPoint maps a point from this transform's local space.
func (t Transform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	scaled := mgl32.Vec3{p[0] * t.Scale[0], p[1] * t.Scale[1], p[2] * t.Scale[2]}
	return t.Rotation.Rotate(scaled).Add(t.Translation)
}

// Mul composes t with child, returning the transform that first applies
// child and then t. Used to move a transform from a parent's local space
// (e.g. tracking space) into the parent's space (world).
func (t Transform) Mul(child Transform) Transform {
	return Transform{
		Translation: t.TransformPoint(child.Translation),
		Rotation:    t.Rotation.Mul(child.Rotation),
		Scale: mgl32.Vec3{
			t.Scale[0] * child.Scale[0],
			t.Scale[1] * child.Scale[1],
			t.Scale[2] * child.Scale[2],
		},
	}
}

// Mat4 returns the T*R*S matrix.
func (t Transform) Mat4() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2])
	scale := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}

// AxisAngle returns the rotation as an axis and an angle in radians.
// A zero rotation reports +Y with angle 0.
func (t Transform) AxisAngle() (mgl32.Vec3, float32) {
	q := t.Rotation.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	s := q.V.Len()
	if s < 1e-6 {
		return AxisY, 0
	}
	angle := 2 * float32(math.Atan2(float64(s), float64(q.W)))
	return q.V.Mul(1 / s), angle
}

// ApproxEqual reports whether all parts of t and o are within eps.
// Quaternions q and -q are treated as equal.
func (t Transform) ApproxEqual(o Transform, eps float32) bool {
	if !t.Translation.ApproxEqualThreshold(o.Translation, eps) {
		return false
	}
	if !t.Scale.ApproxEqualThreshold(o.Scale, eps) {
		return false
	}
	return t.Rotation.ApproxEqualThreshold(o.Rotation, eps) ||
		t.Rotation.ApproxEqualThreshold(o.Rotation.Scale(-1), eps)
}

// Yaw returns the heading about +Y in radians, 0 when facing -Z and
// increasing counter-clockwise seen from above.
func (t Transform) Yaw() float32 {
	f := t.Forward()
	return float32(math.Atan2(float64(-f[0]), float64(-f[2])))
}
