package telemetry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/vrdemo/config"
)

// Output file names inside the output directory.
const (
	PoseFile   = "poses.csv"
	PerfFile   = "perf.csv"
	ConfigFile = "config.yaml"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir      string
	poseFile *os.File
	perfFile *os.File

	// Track if headers have been written
	poseHeaderWritten bool
	perfHeaderWritten bool

	poseRows int
	perfRows int
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, PoseFile))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", PoseFile, err)
	}
	om.poseFile = f

	f, err = os.Create(filepath.Join(dir, PerfFile))
	if err != nil {
		om.poseFile.Close()
		return nil, fmt.Errorf("creating %s: %w", PerfFile, err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WritePoses appends pose samples to the pose trace.
func (om *OutputManager) WritePoses(samples []PoseSample) error {
	if om == nil || len(samples) == 0 {
		return nil
	}

	if !om.poseHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(samples, om.poseFile); err != nil {
			return fmt.Errorf("writing poses: %w", err)
		}
		om.poseHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(samples, om.poseFile); err != nil {
			return fmt.Errorf("writing poses: %w", err)
		}
	}
	om.poseRows += len(samples)
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(windowEnd)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}
	om.perfRows++
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	var size int64
	for _, f := range []*os.File{om.poseFile, om.perfFile} {
		if f == nil {
			continue
		}
		if info, err := f.Stat(); err == nil {
			size += info.Size()
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	slog.Info("output closed",
		"dir", om.dir,
		"pose_rows", humanize.Comma(int64(om.poseRows)),
		"perf_rows", humanize.Comma(int64(om.perfRows)),
		"size", humanize.Bytes(uint64(size)),
	)
	return firstErr
}

// ReadPoses loads a pose trace written by WritePoses.
func ReadPoses(path string) ([]PoseSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pose trace: %w", err)
	}
	defer f.Close()

	var samples []PoseSample
	if err := gocsv.UnmarshalFile(f, &samples); err != nil {
		return nil, fmt.Errorf("parsing pose trace: %w", err)
	}
	return samples, nil
}

// ReadPerf loads perf windows written by WritePerf.
func ReadPerf(path string) ([]PerfStatsCSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening perf log: %w", err)
	}
	defer f.Close()

	var rows []PerfStatsCSV
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing perf log: %w", err)
	}
	return rows, nil
}
