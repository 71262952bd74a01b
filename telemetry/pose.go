// Package telemetry records pose traces and frame timing.
package telemetry

import "github.com/pthm-cable/vrdemo/components"

// PoseSample is one row of the pose trace.
type PoseSample struct {
	Tick        int64   `csv:"tick"`
	Keys        string  `csv:"keys"`
	PlatformX   float32 `csv:"platform_x"`
	PlatformY   float32 `csv:"platform_y"`
	PlatformZ   float32 `csv:"platform_z"`
	PlatformYaw float32 `csv:"platform_yaw"`
	RootX       float32 `csv:"root_x"`
	RootY       float32 `csv:"root_y"`
	RootZ       float32 `csv:"root_z"`
	HeadX       float32 `csv:"head_x"`
	HeadY       float32 `csv:"head_y"`
	HeadZ       float32 `csv:"head_z"`
	LeftX       float32 `csv:"left_x"`
	LeftY       float32 `csv:"left_y"`
	LeftZ       float32 `csv:"left_z"`
	LeftYaw     float32 `csv:"left_yaw"`
	RightX      float32 `csv:"right_x"`
	RightY      float32 `csv:"right_y"`
	RightZ      float32 `csv:"right_z"`
	RightYaw    float32 `csv:"right_yaw"`
}

// Poses groups the transforms captured for one sample. Nil entries are
// recorded as zeros.
type Poses struct {
	Platform    *components.Transform
	Root        *components.Transform
	Head        *components.Transform // world space
	Left, Right *components.Transform
}

// NewPoseSample flattens poses into a trace row.
func NewPoseSample(tick int64, keys string, p Poses) PoseSample {
	s := PoseSample{Tick: tick, Keys: keys}
	if p.Platform != nil {
		s.PlatformX, s.PlatformY, s.PlatformZ = p.Platform.Translation.Elem()
		s.PlatformYaw = p.Platform.Yaw()
	}
	if p.Root != nil {
		s.RootX, s.RootY, s.RootZ = p.Root.Translation.Elem()
	}
	if p.Head != nil {
		s.HeadX, s.HeadY, s.HeadZ = p.Head.Translation.Elem()
	}
	if p.Left != nil {
		s.LeftX, s.LeftY, s.LeftZ = p.Left.Translation.Elem()
		s.LeftYaw = p.Left.Yaw()
	}
	if p.Right != nil {
		s.RightX, s.RightY, s.RightZ = p.Right.Translation.Elem()
		s.RightYaw = p.Right.Yaw()
	}
	return s
}
