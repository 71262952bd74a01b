package telemetry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PoseSummary describes the platform's path over a pose trace.
type PoseSummary struct {
	Ticks        int
	Distance     float64 // sum of per-tick step lengths
	Displacement float64 // straight line from first to last sample
	TotalTurn    float64 // sum of absolute yaw changes, radians
	NetTurn      float64 // signed yaw change, radians
	MeanStep     float64
	StdDevStep   float64
	MaxStep      float64
	MovingTicks  int
	RootDrift    float64 // largest root-to-platform distance seen
}

// SummarizePoses computes path statistics for a pose trace.
func SummarizePoses(samples []PoseSample) PoseSummary {
	s := PoseSummary{Ticks: len(samples)}
	if len(samples) == 0 {
		return s
	}

	steps := make([]float64, 0, len(samples)-1)
	for i, cur := range samples {
		drift := dist3(cur.RootX-cur.PlatformX, cur.RootY-cur.PlatformY, cur.RootZ-cur.PlatformZ)
		s.RootDrift = math.Max(s.RootDrift, drift)
		if i == 0 {
			continue
		}
		prev := samples[i-1]
		step := dist3(cur.PlatformX-prev.PlatformX, cur.PlatformY-prev.PlatformY, cur.PlatformZ-prev.PlatformZ)
		steps = append(steps, step)
		if step > 0 {
			s.MovingTicks++
		}

		turn := wrapAngle(float64(cur.PlatformYaw - prev.PlatformYaw))
		s.TotalTurn += math.Abs(turn)
		s.NetTurn += turn
	}

	first, last := samples[0], samples[len(samples)-1]
	s.Displacement = dist3(last.PlatformX-first.PlatformX, last.PlatformY-first.PlatformY, last.PlatformZ-first.PlatformZ)

	if len(steps) > 0 {
		s.Distance = floats.Sum(steps)
		s.MeanStep, s.StdDevStep = stat.MeanStdDev(steps, nil)
		if len(steps) == 1 {
			s.StdDevStep = 0
		}
		sort.Float64s(steps)
		s.MaxStep = steps[len(steps)-1]
	}
	return s
}

// PerfSummary aggregates perf windows.
type PerfSummary struct {
	Windows   int
	MeanAvgUS float64
	P95AvgUS  float64
	MaxTickUS int64
}

// SummarizePerf aggregates the per-window average tick times.
func SummarizePerf(rows []PerfStatsCSV) PerfSummary {
	s := PerfSummary{Windows: len(rows)}
	if len(rows) == 0 {
		return s
	}
	avgs := make([]float64, len(rows))
	for i, r := range rows {
		avgs[i] = float64(r.AvgTickUS)
		if r.MaxTickUS > s.MaxTickUS {
			s.MaxTickUS = r.MaxTickUS
		}
	}
	sort.Float64s(avgs)
	s.MeanAvgUS = stat.Mean(avgs, nil)
	s.P95AvgUS = stat.Quantile(0.95, stat.Empirical, avgs, nil)
	return s
}

func dist3(dx, dy, dz float32) float64 {
	return math.Sqrt(float64(dx*dx + dy*dy + dz*dz))
}

// wrapAngle maps a to (-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
