// Package systems contains ECS systems for the XR demo.
package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vrdemo/components"
	"github.com/pthm-cable/vrdemo/input"
)

// DefaultRotationDamping scales rotation input for smoother turning.
const DefaultRotationDamping = 0.1

// PlatformControlSystem steers platforms from keyboard input.
type PlatformControlSystem struct {
	filter  *ecs.Filter2[components.PlatformController, components.Transform]
	damping float32
}

// NewPlatformControlSystem creates a new platform control system.
// Tracking roots are excluded even if tagged as platforms.
func NewPlatformControlSystem(w *ecs.World, damping float32) *PlatformControlSystem {
	return &PlatformControlSystem{
		filter: ecs.NewFilter2[components.PlatformController, components.Transform](w).
			With(ecs.C[components.Platform]()).
			Without(ecs.C[components.TrackingRoot]()),
		damping: damping,
	}
}

// Update applies this frame's keys to every platform.
func (s *PlatformControlSystem) Update(keys input.Keys) {
	query := s.filter.Query()
	for query.Next() {
		ctrl, tr := query.Get()
		SteerPlatform(tr, *ctrl, keys, s.damping)
	}
}

// MoveInput returns the raw local movement vector for the held keys:
// W is -Z, S is +Z, A is -X, D is +X.
func MoveInput(keys input.Keys) mgl32.Vec3 {
	var m mgl32.Vec3
	if keys.Pressed(input.KeyW) {
		m[2] -= 1
	}
	if keys.Pressed(input.KeyS) {
		m[2] += 1
	}
	if keys.Pressed(input.KeyA) {
		m[0] -= 1
	}
	if keys.Pressed(input.KeyD) {
		m[0] += 1
	}
	return m
}

// RotateInput returns +1 for Q, -1 for E, 0 for both or neither.
func RotateInput(keys input.Keys) float32 {
	var r float32
	if keys.Pressed(input.KeyQ) {
		r += 1
	}
	if keys.Pressed(input.KeyE) {
		r -= 1
	}
	return r
}

// SteerPlatform moves and turns one platform transform in place.
//
// The movement vector is normalized, scaled by Speed and mapped onto the
// platform's forward and right axes. The forward component uses the raw
// local z, so W (z = -1) moves against Forward(). The yaw delta
// rotation*RotationSpeed*damping is pre-multiplied onto the orientation.
func SteerPlatform(tr *components.Transform, ctrl components.PlatformController, keys input.Keys, damping float32) {
	movement := MoveInput(keys)
	if movement != (mgl32.Vec3{}) {
		movement = movement.Normalize().Mul(ctrl.Speed)
		delta := tr.Forward().Mul(movement[2]).Add(tr.Right().Mul(movement[0]))
		tr.Translation = tr.Translation.Add(delta)
	}

	rotation := RotateInput(keys)
	if rotation != 0 {
		amount := rotation * ctrl.RotationSpeed * damping
		tr.Rotation = components.RotationY(amount).Mul(tr.Rotation)
	}
}
