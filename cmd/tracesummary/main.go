// Command tracesummary prints path and frame-time statistics for a run's
// output directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/vrdemo/telemetry"
)

func main() {
	dir := flag.String("dir", "", "Run output directory containing poses.csv and perf.csv")
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "usage: tracesummary -dir <output-dir>")
		os.Exit(2)
	}

	if err := run(*dir); err != nil {
		slog.Error("trace summary failed", "error", err)
		os.Exit(1)
	}
}

func run(dir string) error {
	samples, err := telemetry.ReadPoses(filepath.Join(dir, telemetry.PoseFile))
	if err != nil {
		return err
	}
	ps := telemetry.SummarizePoses(samples)

	fmt.Printf("Pose trace: %s ticks\n", humanize.Comma(int64(ps.Ticks)))
	fmt.Printf("  distance      %8.3f m (%s moving ticks)\n", ps.Distance, humanize.Comma(int64(ps.MovingTicks)))
	fmt.Printf("  displacement  %8.3f m\n", ps.Displacement)
	fmt.Printf("  step          mean %.4f  sd %.4f  max %.4f\n", ps.MeanStep, ps.StdDevStep, ps.MaxStep)
	fmt.Printf("  turned        %8.1f° total, %.1f° net\n",
		mgl32.RadToDeg(float32(ps.TotalTurn)), mgl32.RadToDeg(float32(ps.NetTurn)))
	fmt.Printf("  root drift    %8.5f m\n", ps.RootDrift)

	rows, err := telemetry.ReadPerf(filepath.Join(dir, telemetry.PerfFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	perf := telemetry.SummarizePerf(rows)
	fmt.Printf("Perf: %d windows\n", perf.Windows)
	fmt.Printf("  avg tick      mean %.1fµs  p95 %.1fµs  max %dµs\n", perf.MeanAvgUS, perf.P95AvgUS, perf.MaxTickUS)
	return nil
}
