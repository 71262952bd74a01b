package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vrdemo/components"
	"github.com/pthm-cable/vrdemo/xr"
)

type testWorld struct {
	w     *ecs.World
	trMap *ecs.Map[components.Transform]
}

func newTestWorld() *testWorld {
	w := ecs.NewWorld()
	return &testWorld{w: w, trMap: ecs.NewMap[components.Transform](w)}
}

func (tw *testWorld) root(tr components.Transform) ecs.Entity {
	return ecs.NewMap2[components.Transform, components.TrackingRoot](tw.w).NewEntity(&tr, &components.TrackingRoot{})
}

func (tw *testWorld) xrCamera(view uint32, tr components.Transform) ecs.Entity {
	cam := components.XRCamera{View: view, Eye: components.Eye(view)}
	return ecs.NewMap2[components.Transform, components.XRCamera](tw.w).NewEntity(&tr, &cam)
}

func (tw *testWorld) mirror(eye components.Eye, tr components.Transform) ecs.Entity {
	return ecs.NewMap2[components.Transform, components.MirrorCamera](tw.w).NewEntity(&tr, &components.MirrorCamera{Eye: eye})
}

func (tw *testWorld) platform(tr components.Transform) ecs.Entity {
	return ecs.NewMap3[components.Transform, components.PlatformController, components.Platform](tw.w).
		NewEntity(&tr, &testController, &components.Platform{})
}

func (tw *testWorld) transform(e ecs.Entity) components.Transform {
	return *tw.trMap.Get(e)
}

func eyePose(x float32) components.Transform {
	tr := components.FromXYZ(x, 1.6, -0.05)
	tr.Rotation = components.RotationY(x)
	return tr
}

func TestMirror_IdentityRootCopiesEyeCameras(t *testing.T) {
	tw := newTestWorld()
	sys := NewMirrorSystem(tw.w)

	tw.root(components.Identity())
	leftPose, rightPose := eyePose(-0.032), eyePose(0.032)
	tw.xrCamera(0, leftPose)
	tw.xrCamera(1, rightPose)
	left := tw.mirror(components.EyeLeft, components.Identity())
	right := tw.mirror(components.EyeRight, components.Identity())

	sys.Update()

	if got := tw.transform(left); !got.ApproxEqual(leftPose, 1e-5) {
		t.Errorf("left mirror = %+v, want %+v", got, leftPose)
	}
	if got := tw.transform(right); !got.ApproxEqual(rightPose, 1e-5) {
		t.Errorf("right mirror = %+v, want %+v", got, rightPose)
	}
}

func TestMirror_ComposesRootWithEye(t *testing.T) {
	tw := newTestWorld()
	sys := NewMirrorSystem(tw.w)

	root := components.FromXYZ(-2, 0.1, 3)
	root.Rotation = components.RotationY(math.Pi / 3)
	tw.root(root)

	leftPose := eyePose(-0.032)
	tw.xrCamera(0, leftPose)
	left := tw.mirror(components.EyeLeft, components.Identity())

	sys.Update()

	want := root.Mul(leftPose)
	if got := tw.transform(left); !got.ApproxEqual(want, 1e-5) {
		t.Errorf("left mirror = %+v, want %+v", got, want)
	}
}

func TestMirror_NoRootLeavesMirrorsUnchanged(t *testing.T) {
	tw := newTestWorld()
	sys := NewMirrorSystem(tw.w)

	tw.xrCamera(0, eyePose(-0.032))
	start := components.FromXYZ(5, 5, 5)
	left := tw.mirror(components.EyeLeft, start)

	sys.Update()
	sys.Update()

	if got := tw.transform(left); got != start {
		t.Errorf("mirror moved without a tracking root: %+v", got)
	}
}

func TestMirror_UnmatchedEyeKeepsLastTransform(t *testing.T) {
	tw := newTestWorld()
	sys := NewMirrorSystem(tw.w)

	tw.root(components.Identity())
	tw.xrCamera(0, eyePose(-0.032))
	start := components.FromXYZ(1, 2, 3)
	right := tw.mirror(components.EyeRight, start)

	sys.Update()

	if got := tw.transform(right); got != start {
		t.Errorf("right mirror changed without a right eye camera: %+v", got)
	}
}

func TestMirror_MultipleRootsUsesFirst(t *testing.T) {
	tw := newTestWorld()
	sys := NewMirrorSystem(tw.w)

	first := components.FromXYZ(1, 0, 0)
	tw.root(first)
	tw.root(components.FromXYZ(9, 0, 0))
	eye := eyePose(0)
	tw.xrCamera(0, eye)
	left := tw.mirror(components.EyeLeft, components.Identity())

	sys.Update()

	// Both roots share an archetype, so iteration follows creation order.
	want := first.Mul(eye)
	if got := tw.transform(left); !got.ApproxEqual(want, 1e-5) {
		t.Errorf("left mirror = %+v, want %+v", got, want)
	}
}

func TestFollowRig_CopiesPlatformToRoots(t *testing.T) {
	tw := newTestWorld()
	sys := NewFollowRigSystem(tw.w)

	platform := components.FromXYZ(-2, 0.1, 0)
	platform.Rotation = components.RotationY(0.25)
	tw.platform(platform)
	r1 := tw.root(components.Identity())
	r2 := tw.root(components.FromXYZ(4, 4, 4))

	sys.Update()

	for _, r := range []ecs.Entity{r1, r2} {
		if got := tw.transform(r); got != platform {
			t.Errorf("root = %+v, want %+v", got, platform)
		}
	}
}

func TestFollowRig_NoPlatformIsNoOp(t *testing.T) {
	tw := newTestWorld()
	sys := NewFollowRigSystem(tw.w)

	start := components.FromXYZ(1, 1, 1)
	r := tw.root(start)

	sys.Update()

	if got := tw.transform(r); got != start {
		t.Errorf("root changed without a platform: %+v", got)
	}
}

func TestXRSync_SpawnsRigOnceAndWritesPoses(t *testing.T) {
	tw := newTestWorld()
	rt := xr.NewSimulatedRuntime(1.6, 0.064, []xr.BlendMode{xr.BlendOpaque})
	if _, err := rt.Begin(xr.SessionConfig{BlendMode: xr.BlendOpaque}); err != nil {
		t.Fatal(err)
	}
	sys := NewXRSyncSystem(tw.w, rt)

	for frame := int64(0); frame < 3; frame++ {
		if err := sys.Update(frame); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
	}

	if !sys.Spawned() || !sys.LayoutVerified() {
		t.Errorf("spawned=%v verified=%v, want both true", sys.Spawned(), sys.LayoutVerified())
	}

	roots, cams, heads := 0, 0, 0
	rq := ecs.NewFilter1[components.TrackingRoot](tw.w).Query()
	for rq.Next() {
		roots++
	}
	cq := ecs.NewFilter2[components.XRCamera, components.Transform](tw.w).Query()
	for cq.Next() {
		cam, tr := cq.Get()
		cams++
		wantX := float32(-0.032)
		if cam.View == 1 {
			wantX = 0.032
		}
		if !tr.Translation.ApproxEqualThreshold(mgl32.Vec3{wantX, 1.6, 0}, 1e-5) {
			t.Errorf("view %d at %v", cam.View, tr.Translation)
		}
	}
	hq := ecs.NewFilter1[components.HeadPose](tw.w).Query()
	for hq.Next() {
		heads++
	}

	if roots != 1 || cams != 2 || heads != 1 {
		t.Errorf("roots=%d cams=%d heads=%d, want 1/2/1", roots, cams, heads)
	}
}

func TestXRSync_FlagsSwappedLayout(t *testing.T) {
	tw := newTestWorld()
	rt := xr.NewSimulatedRuntime(1.6, 0.064, []xr.BlendMode{xr.BlendOpaque})
	rt.SwapEyes = true
	if _, err := rt.Begin(xr.SessionConfig{BlendMode: xr.BlendOpaque}); err != nil {
		t.Fatal(err)
	}
	sys := NewXRSyncSystem(tw.w, rt)

	if err := sys.Update(0); err != nil {
		t.Fatal(err)
	}
	if sys.LayoutVerified() {
		t.Error("swapped eye layout should not verify")
	}
}

func TestXRSync_ErrorsWithoutSession(t *testing.T) {
	tw := newTestWorld()
	rt := xr.NewSimulatedRuntime(1.6, 0.064, []xr.BlendMode{xr.BlendOpaque})
	sys := NewXRSyncSystem(tw.w, rt)

	err := sys.Update(0)
	if !errors.Is(err, xr.ErrSessionNotRunning) {
		t.Errorf("expected ErrSessionNotRunning, got %v", err)
	}
	if sys.Spawned() {
		t.Error("rig should not spawn without views")
	}
}

// trackingRuntime reports no located views until tracking starts, then
// one view for a frame before the second eye appears.
type trackingRuntime struct {
	*xr.SimulatedRuntime
	startFrame int64
}

func (r *trackingRuntime) Views(frame int64) ([]xr.View, error) {
	views, err := r.SimulatedRuntime.Views(frame)
	if err != nil || frame < r.startFrame {
		return nil, err
	}
	if frame == r.startFrame {
		return views[:1], nil
	}
	return views, nil
}

func TestXRSync_WaitsForTracking(t *testing.T) {
	tw := newTestWorld()
	inner := xr.NewSimulatedRuntime(1.6, 0.064, []xr.BlendMode{xr.BlendOpaque})
	if _, err := inner.Begin(xr.SessionConfig{BlendMode: xr.BlendOpaque}); err != nil {
		t.Fatal(err)
	}
	sys := NewXRSyncSystem(tw.w, &trackingRuntime{SimulatedRuntime: inner, startFrame: 2})

	countCams := func() int {
		n := 0
		q := ecs.NewFilter1[components.XRCamera](tw.w).Query()
		for q.Next() {
			n++
		}
		return n
	}

	for frame := int64(0); frame < 2; frame++ {
		if err := sys.Update(frame); err != nil {
			t.Fatal(err)
		}
	}
	if sys.Spawned() || sys.LayoutVerified() || countCams() != 0 {
		t.Fatalf("before tracking: spawned=%v verified=%v cams=%d, want false/false/0",
			sys.Spawned(), sys.LayoutVerified(), countCams())
	}

	if err := sys.Update(2); err != nil {
		t.Fatal(err)
	}
	if !sys.Spawned() || countCams() != 1 {
		t.Fatalf("first tracked frame: spawned=%v cams=%d, want true/1", sys.Spawned(), countCams())
	}

	for frame := int64(3); frame < 5; frame++ {
		if err := sys.Update(frame); err != nil {
			t.Fatal(err)
		}
	}
	if got := countCams(); got != 2 {
		t.Errorf("xr cameras after 5 frames = %d, want 2", got)
	}
	if !sys.LayoutVerified() {
		t.Error("left-first layout should verify once views arrive")
	}

	roots := 0
	rq := ecs.NewFilter1[components.TrackingRoot](tw.w).Query()
	for rq.Next() {
		roots++
	}
	if roots != 1 {
		t.Errorf("roots = %d, want 1", roots)
	}
}

func TestXRSync_HeadIsEyeMidpoint(t *testing.T) {
	tw := newTestWorld()
	rt := xr.NewSimulatedRuntime(1.7, 0.064, []xr.BlendMode{xr.BlendOpaque})
	rt.Sway = 0.2
	rt.SwayPeriod = 40
	if _, err := rt.Begin(xr.SessionConfig{BlendMode: xr.BlendOpaque}); err != nil {
		t.Fatal(err)
	}
	sys := NewXRSyncSystem(tw.w, rt)

	for frame := int64(0); frame < 10; frame++ {
		if err := sys.Update(frame); err != nil {
			t.Fatal(err)
		}
	}

	views, err := rt.Views(9)
	if err != nil {
		t.Fatal(err)
	}
	mid := views[0].Pose.Translation.Add(views[1].Pose.Translation).Mul(0.5)

	hq := ecs.NewFilter1[components.Transform](tw.w).With(ecs.C[components.HeadPose]()).Query()
	if !hq.Next() {
		t.Fatal("no head entity")
	}
	head := *hq.Get()
	hq.Close()
	if !head.Translation.ApproxEqualThreshold(mid, 1e-5) {
		t.Errorf("head at %v, want %v", head.Translation, mid)
	}
	if !head.Rotation.ApproxEqualThreshold(views[0].Pose.Rotation, 1e-5) {
		t.Errorf("head rotation = %v, want %v", head.Rotation, views[0].Pose.Rotation)
	}
}
