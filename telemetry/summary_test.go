package telemetry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSummarizePoses(t *testing.T) {
	samples := []PoseSample{
		{Tick: 0, PlatformX: 0, PlatformZ: 0},
		{Tick: 1, PlatformX: 0, PlatformZ: 0.2},
		{Tick: 2, PlatformX: 0, PlatformZ: 0.4, PlatformYaw: 0.05},
		{Tick: 3, PlatformX: 0.3, PlatformZ: 0.8, PlatformYaw: -0.05, RootX: 0.3, RootZ: 0.8},
	}

	got := SummarizePoses(samples)
	want := PoseSummary{
		Ticks:        4,
		Distance:     0.9,
		Displacement: math.Sqrt(0.3*0.3 + 0.8*0.8),
		TotalTurn:    0.15,
		NetTurn:      -0.05,
		MeanStep:     0.3,
		StdDevStep:   math.Sqrt(0.03),
		MaxStep:      0.5,
		MovingTicks:  3,
		RootDrift:    0.4,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizePosesWrapsYaw(t *testing.T) {
	samples := []PoseSample{
		{PlatformYaw: 3.1},
		{PlatformYaw: -3.1},
	}
	got := SummarizePoses(samples)
	// Crossing the +-pi seam is a small turn, not a full circle
	if math.Abs(got.NetTurn-(2*math.Pi-6.2)) > 1e-5 {
		t.Errorf("net turn = %v, want %v", got.NetTurn, 2*math.Pi-6.2)
	}
	if got.StdDevStep != 0 {
		t.Errorf("single step stddev = %v, want 0", got.StdDevStep)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := SummarizePoses(nil); got != (PoseSummary{}) {
		t.Errorf("empty pose summary = %+v", got)
	}
	if got := SummarizePerf(nil); got != (PerfSummary{}) {
		t.Errorf("empty perf summary = %+v", got)
	}
}

func TestSummarizePerf(t *testing.T) {
	rows := []PerfStatsCSV{
		{AvgTickUS: 10, MaxTickUS: 30},
		{AvgTickUS: 20, MaxTickUS: 50},
		{AvgTickUS: 30, MaxTickUS: 40},
	}
	got := SummarizePerf(rows)
	if got.Windows != 3 || got.MeanAvgUS != 20 || got.MaxTickUS != 50 || got.P95AvgUS != 30 {
		t.Errorf("perf summary = %+v", got)
	}
}
