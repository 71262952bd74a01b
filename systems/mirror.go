package systems

import (
	"errors"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vrdemo/components"
)

// ErrMultipleTrackingRoots reports that more than one tracking root exists.
// Systems keep running with the first root found.
var ErrMultipleTrackingRoots = errors.New("multiple tracking roots")

type viewPose struct {
	view uint32
	pose components.Transform
}

// MirrorSystem drives desktop mirror cameras from the headset's eye cameras.
type MirrorSystem struct {
	roots   *ecs.Filter1[components.Transform]
	xrCams  *ecs.Filter2[components.XRCamera, components.Transform]
	mirrors *ecs.Filter2[components.MirrorCamera, components.Transform]

	views       []viewPose // reused each frame
	warnedRoots bool
}

// NewMirrorSystem creates a new mirror system.
func NewMirrorSystem(w *ecs.World) *MirrorSystem {
	return &MirrorSystem{
		roots: ecs.NewFilter1[components.Transform](w).
			With(ecs.C[components.TrackingRoot]()),
		xrCams: ecs.NewFilter2[components.XRCamera, components.Transform](w),
		mirrors: ecs.NewFilter2[components.MirrorCamera, components.Transform](w).
			Without(ecs.C[components.XRCamera]()),
	}
}

// Update sets each mirror camera to the world pose of its eye: the
// tracking root composed with the XR camera's tracking-space pose.
// Nothing happens without a tracking root, and a mirror whose eye has no
// XR camera keeps last frame's transform.
func (s *MirrorSystem) Update() {
	root, ok := s.trackingRoot()
	if !ok {
		return
	}

	s.views = s.views[:0]
	cams := s.xrCams.Query()
	for cams.Next() {
		cam, tr := cams.Get()
		s.views = append(s.views, viewPose{view: cam.View, pose: *tr})
	}

	mirrors := s.mirrors.Query()
	for mirrors.Next() {
		mirror, tr := mirrors.Get()
		if pose, found := s.lookup(mirror.Eye.ViewIndex()); found {
			*tr = root.Mul(pose)
		}
	}
}

func (s *MirrorSystem) trackingRoot() (components.Transform, bool) {
	query := s.roots.Query()
	if !query.Next() {
		return components.Transform{}, false
	}
	root := *query.Get()

	extra := 0
	for query.Next() {
		extra++
	}
	if extra > 0 && !s.warnedRoots {
		slog.Warn("using first tracking root for mirror cameras", "count", extra+1, "error", ErrMultipleTrackingRoots)
		s.warnedRoots = true
	}
	return root, true
}

func (s *MirrorSystem) lookup(view uint32) (components.Transform, bool) {
	for _, v := range s.views {
		if v.view == view {
			return v.pose, true
		}
	}
	return components.Transform{}, false
}
