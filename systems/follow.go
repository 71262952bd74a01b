package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vrdemo/components"
)

// FollowRigSystem moves the XR tracking root onto the platform so the
// headset rides along with it.
type FollowRigSystem struct {
	platforms *ecs.Filter1[components.Transform]
	roots     *ecs.Filter1[components.Transform]

	warnedRoots bool
}

// NewFollowRigSystem creates a new follow system.
func NewFollowRigSystem(w *ecs.World) *FollowRigSystem {
	return &FollowRigSystem{
		platforms: ecs.NewFilter1[components.Transform](w).
			With(ecs.C[components.Platform]()),
		roots: ecs.NewFilter1[components.Transform](w).
			With(ecs.C[components.TrackingRoot]()).
			Without(ecs.C[components.Platform]()),
	}
}

// Update copies the first platform's transform onto every tracking root.
// Without a platform nothing changes.
func (s *FollowRigSystem) Update() {
	query := s.platforms.Query()
	if !query.Next() {
		return
	}
	src := *query.Get()
	query.Close()

	n := 0
	roots := s.roots.Query()
	for roots.Next() {
		*roots.Get() = src
		n++
	}

	if n > 1 && !s.warnedRoots {
		slog.Warn("multiple tracking roots follow the platform", "count", n, "error", ErrMultipleTrackingRoots)
		s.warnedRoots = true
	}
}
