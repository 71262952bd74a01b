package xr

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/vrdemo/components"
)

func TestSelectBlendMode(t *testing.T) {
	pref := DefaultPreference()

	tests := []struct {
		name      string
		supported []BlendMode
		want      BlendMode
		wantErr   bool
	}{
		{"all supported picks alpha blend", []BlendMode{BlendOpaque, BlendAdditive, BlendAlphaBlend}, BlendAlphaBlend, false},
		{"additive over opaque", []BlendMode{BlendOpaque, BlendAdditive}, BlendAdditive, false},
		{"opaque only", []BlendMode{BlendOpaque}, BlendOpaque, false},
		{"nothing supported", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectBlendMode(pref, tt.supported)
			if tt.wantErr {
				if !errors.Is(err, ErrNoBlendMode) {
					t.Errorf("expected ErrNoBlendMode, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseBlendModes(t *testing.T) {
	modes, err := ParseBlendModes([]string{"alpha_blend", "additive", "opaque"})
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultPreference()
	for i := range want {
		if modes[i] != want[i] {
			t.Errorf("mode %d = %v, want %v", i, modes[i], want[i])
		}
	}

	if _, err := ParseBlendModes([]string{"passthrough"}); err == nil {
		t.Error("expected error for unknown mode")
	}
	if !BlendAlphaBlend.SeeThrough() || BlendOpaque.SeeThrough() {
		t.Error("see-through classification is wrong")
	}
}

func TestSimulatedRuntimeViews(t *testing.T) {
	rt := NewSimulatedRuntime(1.6, 0.064, []BlendMode{BlendOpaque})

	if _, err := rt.Views(0); !errors.Is(err, ErrSessionNotRunning) {
		t.Errorf("Views before Begin: got %v, want ErrSessionNotRunning", err)
	}

	session, err := rt.Begin(SessionConfig{BlendMode: BlendOpaque})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if session.BlendMode != BlendOpaque {
		t.Errorf("blend mode = %v, want opaque", session.BlendMode)
	}

	views, err := rt.Views(0)
	if err != nil {
		t.Fatalf("Views: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}

	left, right := views[0], views[1]
	if left.Eye != components.EyeLeft || right.Eye != components.EyeRight {
		t.Errorf("eye order = %v,%v, want left,right", left.Eye, right.Eye)
	}
	if !left.Pose.Translation.ApproxEqualThreshold(mgl32.Vec3{-0.032, 1.6, 0}, 1e-5) {
		t.Errorf("left eye at %v", left.Pose.Translation)
	}
	if !right.Pose.Translation.ApproxEqualThreshold(mgl32.Vec3{0.032, 1.6, 0}, 1e-5) {
		t.Errorf("right eye at %v", right.Pose.Translation)
	}

	head, ok := HeadPose(views)
	if !ok || !head.Translation.ApproxEqualThreshold(mgl32.Vec3{0, 1.6, 0}, 1e-5) {
		t.Errorf("head pose = %v, %v", head.Translation, ok)
	}

	if err := rt.End(); err != nil {
		t.Errorf("End: %v", err)
	}
	if err := rt.End(); !errors.Is(err, ErrSessionNotRunning) {
		t.Errorf("second End: got %v", err)
	}
}

func TestSimulatedRuntimeUnsupportedBlendMode(t *testing.T) {
	rt := NewSimulatedRuntime(1.6, 0.064, []BlendMode{BlendOpaque})
	_, err := rt.Begin(SessionConfig{BlendMode: BlendAlphaBlend})
	if !errors.Is(err, ErrUnsupportedBlendMode) {
		t.Errorf("expected ErrUnsupportedBlendMode, got %v", err)
	}
	if rt.Running() {
		t.Error("session should not be running after failed Begin")
	}
}

func TestSimulatedRuntimeSwayAndSwap(t *testing.T) {
	rt := NewSimulatedRuntime(1.6, 0.064, []BlendMode{BlendOpaque})
	rt.Sway = 0.3
	rt.SwayPeriod = 40
	rt.SwapEyes = true
	if _, err := rt.Begin(SessionConfig{BlendMode: BlendOpaque}); err != nil {
		t.Fatal(err)
	}

	// Quarter period puts the head at full sway.
	views, err := rt.Views(10)
	if err != nil {
		t.Fatal(err)
	}
	if views[0].Eye != components.EyeRight {
		t.Errorf("swapped runtime should list right eye first, got %v", views[0].Eye)
	}
	want := components.RotationY(0.3)
	if !views[0].Pose.Rotation.ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("rotation = %v, want %v", views[0].Pose.Rotation, want)
	}
}

func TestHeadPoseEmpty(t *testing.T) {
	if _, ok := HeadPose(nil); ok {
		t.Error("expected no head pose for no views")
	}
}
