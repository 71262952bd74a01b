package xr

import (
	"errors"

	"github.com/pthm-cable/vrdemo/components"
)

// ErrSessionNotRunning is returned by Views before Begin or after End.
var ErrSessionNotRunning = errors.New("xr session not running")

// ErrUnsupportedBlendMode is returned by Begin for a mode the runtime
// does not offer.
var ErrUnsupportedBlendMode = errors.New("blend mode not supported by runtime")

// SessionConfig configures session creation. The caller negotiates
// BlendMode against SupportedBlendModes before calling Begin.
type SessionConfig struct {
	BlendMode BlendMode
}

// DefaultPreference prefers passthrough modes over opaque rendering.
func DefaultPreference() []BlendMode {
	return []BlendMode{BlendAlphaBlend, BlendAdditive, BlendOpaque}
}

// View is one rendered viewpoint, with its pose in tracking space.
type View struct {
	Index uint32
	Eye   components.Eye
	Pose  components.Transform
}

// Session describes a running session.
type Session struct {
	BlendMode BlendMode
}

// Runtime is the XR runtime the demo renders for.
type Runtime interface {
	// Name identifies the runtime in logs.
	Name() string
	// SupportedBlendModes lists the environment blend modes on offer.
	SupportedBlendModes() []BlendMode
	// Begin starts a session with the given blend mode.
	Begin(cfg SessionConfig) (Session, error)
	// Views returns the per-eye view poses for a frame.
	Views(frame int64) ([]View, error)
	// End stops the session.
	End() error
}

// HeadPose returns the midpoint pose between the given views, using the
// first view's orientation. It reports false when views is empty.
func HeadPose(views []View) (components.Transform, bool) {
	if len(views) == 0 {
		return components.Transform{}, false
	}
	head := views[0].Pose
	sum := head.Translation
	for _, v := range views[1:] {
		sum = sum.Add(v.Pose.Translation)
	}
	head.Translation = sum.Mul(1 / float32(len(views)))
	return head, true
}
