package systems

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vrdemo/components"
	"github.com/pthm-cable/vrdemo/xr"
)

// XRSyncSystem mirrors the runtime's tracking state into the world. The
// tracking root and head spawn on the first frame with located views, and
// an XR camera spawns for each view index the first time it is reported.
// Frames without views leave the world untouched.
type XRSyncSystem struct {
	runtime xr.Runtime

	rootMap *ecs.Map2[components.Transform, components.TrackingRoot]
	camMap  *ecs.Map2[components.Transform, components.XRCamera]
	headMap *ecs.Map2[components.Transform, components.HeadPose]

	cams  *ecs.Filter2[components.XRCamera, components.Transform]
	heads *ecs.Filter1[components.Transform]

	known          map[uint32]bool // view indices with a camera
	spawned        bool
	layoutVerified bool
}

// NewXRSyncSystem creates a new XR sync system for the given runtime.
func NewXRSyncSystem(w *ecs.World, runtime xr.Runtime) *XRSyncSystem {
	return &XRSyncSystem{
		runtime: runtime,
		rootMap: ecs.NewMap2[components.Transform, components.TrackingRoot](w),
		camMap:  ecs.NewMap2[components.Transform, components.XRCamera](w),
		headMap: ecs.NewMap2[components.Transform, components.HeadPose](w),
		cams:    ecs.NewFilter2[components.XRCamera, components.Transform](w),
		heads: ecs.NewFilter1[components.Transform](w).
			With(ecs.C[components.HeadPose]()),
		known: make(map[uint32]bool),
	}
}

// Spawned reports whether the rig entities exist.
func (s *XRSyncSystem) Spawned() bool {
	return s.spawned
}

// LayoutVerified reports whether every view seen so far sat at the index
// its eye is assumed to occupy (left = 0, right = 1). It is false until
// the first view arrives.
func (s *XRSyncSystem) LayoutVerified() bool {
	return s.layoutVerified
}

// Update pulls the views for frame and writes their poses.
func (s *XRSyncSystem) Update(frame int64) error {
	views, err := s.runtime.Views(frame)
	if err != nil {
		return fmt.Errorf("xr views for frame %d: %w", frame, err)
	}

	head, ok := xr.HeadPose(views)
	if !ok {
		return nil
	}
	if !s.spawned {
		s.spawnRig(head, len(views))
	}
	s.spawnCameras(views)

	query := s.cams.Query()
	for query.Next() {
		cam, tr := query.Get()
		for _, v := range views {
			if v.Index == cam.View {
				cam.Eye = v.Eye
				*tr = v.Pose
				break
			}
		}
	}

	heads := s.heads.Query()
	for heads.Next() {
		*heads.Get() = head
	}
	return nil
}

func (s *XRSyncSystem) spawnRig(head components.Transform, views int) {
	root := components.Identity()
	s.rootMap.NewEntity(&root, &components.TrackingRoot{})
	s.headMap.NewEntity(&head, &components.HeadPose{})
	s.layoutVerified = true
	s.spawned = true
	slog.Info("xr rig spawned", "runtime", s.runtime.Name(), "views", views)
}

// spawnCameras adds an XR camera for each view index not seen before.
func (s *XRSyncSystem) spawnCameras(views []xr.View) {
	for _, v := range views {
		if s.known[v.Index] {
			continue
		}
		s.known[v.Index] = true

		pose := v.Pose
		s.camMap.NewEntity(&pose, &components.XRCamera{View: v.Index, Eye: v.Eye})

		if v.Eye.ViewIndex() != v.Index && s.layoutVerified {
			s.layoutVerified = false
			slog.Warn("runtime view layout does not list left eye first; mirror cameras may show the opposite eye",
				"runtime", s.runtime.Name(),
				"view", v.Index,
				"eye", v.Eye.String(),
			)
		}
	}
}
