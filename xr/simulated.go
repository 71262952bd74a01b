package xr

import (
	"fmt"
	"math"
	"slices"

	"github.com/pthm-cable/vrdemo/components"
)

// SimulatedRuntime emulates a stereo headset on the desktop. The head
// stands at EyeHeight above the tracking origin looking down -Z, the eyes
// are IPD apart, and an optional idle yaw sway keeps views moving.
type SimulatedRuntime struct {
	EyeHeight  float32
	IPD        float32
	Sway       float32 // yaw amplitude in radians
	SwayPeriod float32 // ticks per sway cycle
	Supported  []BlendMode
	// SwapEyes lists the right eye first, like a runtime that does not
	// follow the usual left-then-right stereo layout.
	SwapEyes bool

	running bool
	session Session
}

// NewSimulatedRuntime creates a runtime with a still head.
func NewSimulatedRuntime(eyeHeight, ipd float32, supported []BlendMode) *SimulatedRuntime {
	return &SimulatedRuntime{
		EyeHeight:  eyeHeight,
		IPD:        ipd,
		SwayPeriod: 600,
		Supported:  supported,
	}
}

// Name implements Runtime.
func (r *SimulatedRuntime) Name() string {
	return "simulated"
}

// SupportedBlendModes implements Runtime.
func (r *SimulatedRuntime) SupportedBlendModes() []BlendMode {
	return r.Supported
}

// Begin implements Runtime.
func (r *SimulatedRuntime) Begin(cfg SessionConfig) (Session, error) {
	if !slices.Contains(r.Supported, cfg.BlendMode) {
		return Session{}, fmt.Errorf("begin session with %v: %w", cfg.BlendMode, ErrUnsupportedBlendMode)
	}
	r.session = Session{BlendMode: cfg.BlendMode}
	r.running = true
	return r.session, nil
}

// Running reports whether a session is active.
func (r *SimulatedRuntime) Running() bool {
	return r.running
}

// Views implements Runtime.
func (r *SimulatedRuntime) Views(frame int64) ([]View, error) {
	if !r.running {
		return nil, ErrSessionNotRunning
	}

	head := components.FromXYZ(0, r.EyeHeight, 0)
	if r.Sway != 0 && r.SwayPeriod > 0 {
		phase := 2 * math.Pi * float64(frame) / float64(r.SwayPeriod)
		head.Rotation = components.RotationY(r.Sway * float32(math.Sin(phase)))
	}

	half := r.IPD / 2
	left := head.Mul(components.FromXYZ(-half, 0, 0))
	right := head.Mul(components.FromXYZ(half, 0, 0))

	views := []View{
		{Index: 0, Eye: components.EyeLeft, Pose: left},
		{Index: 1, Eye: components.EyeRight, Pose: right},
	}
	if r.SwapEyes {
		views[0] = View{Index: 0, Eye: components.EyeRight, Pose: right}
		views[1] = View{Index: 1, Eye: components.EyeLeft, Pose: left}
	}
	return views, nil
}

// End implements Runtime.
func (r *SimulatedRuntime) End() error {
	if !r.running {
		return ErrSessionNotRunning
	}
	r.running = false
	return nil
}
