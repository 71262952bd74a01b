// Package components defines ECS components for the XR demo scene.
package components

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Eye selects one of the two headset viewpoints.
type Eye uint8

const (
	EyeLeft Eye = iota
	EyeRight
)

// String returns the lowercase eye name used in config and logs.
func (e Eye) String() string {
	switch e {
	case EyeLeft:
		return "left"
	case EyeRight:
		return "right"
	}
	return fmt.Sprintf("eye(%d)", uint8(e))
}

// ViewIndex returns the XR view index this eye is expected at.
// Primary stereo view configurations list the left eye first.
func (e Eye) ViewIndex() uint32 {
	return uint32(e)
}

// ParseEye converts "left"/"right" to an Eye.
func ParseEye(s string) (Eye, error) {
	switch s {
	case "left", "Left", "LEFT":
		return EyeLeft, nil
	case "right", "Right", "RIGHT":
		return EyeRight, nil
	}
	return 0, fmt.Errorf("unknown eye %q", s)
}

// Platform tags the steerable platform the XR rig rides on.
type Platform struct{}

// PlatformController holds the steering parameters of a platform.
type PlatformController struct {
	Speed         float32 // translation per tick at full input
	RotationSpeed float32 // radians per tick before damping
}

// TrackingRoot tags the XR rig origin. Its transform places tracking
// space in the world.
type TrackingRoot struct{}

// XRCamera is a headset view camera. Its transform is in tracking space.
type XRCamera struct {
	View uint32 // view index reported by the runtime
	Eye  Eye    // eye the runtime reported for this view
}

// MirrorCamera is a desktop camera that follows one headset eye.
type MirrorCamera struct {
	Eye  Eye
	FovY float32 // degrees
}

// HeadPose tags the entity tracking the head (midpoint of the eyes),
// in tracking space.
type HeadPose struct{}

// Shape is a primitive mesh shape.
type Shape uint8

const (
	ShapeCuboid Shape = iota
	ShapeDisc
	ShapeSphere
)

// Mesh is preview render data. Size is the full extent for cuboids,
// (radius, radius, thickness) for discs lying in the local XY plane and
// (radius, _, _) for spheres.
type Mesh struct {
	Shape Shape
	Size  mgl32.Vec3
	Color color.RGBA
}

// PointLight is an omnidirectional light source.
type PointLight struct {
	Intensity float32
	Range     float32
	Shadows   bool
}

// RigidBody marks an entity as taking part in physics. Kinematic bodies
// are moved by writing their transform directly.
type RigidBody struct {
	Kinematic bool
}

// Collider is a cuboid collision shape given by half extents.
type Collider struct {
	HalfExtents mgl32.Vec3
}

// Name is a debug label.
type Name struct {
	Value string
}
