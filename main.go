package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vrdemo/config"
	"github.com/pthm-cable/vrdemo/game"
	"github.com/pthm-cable/vrdemo/input"
	"github.com/pthm-cable/vrdemo/sim"
)

// envDefaults are flag defaults read from the environment.
type envDefaults struct {
	ConfigPath string `env:"VRDEMO_CONFIG"`
	OutputDir  string `env:"VRDEMO_OUTPUT_DIR"`
	Script     string `env:"VRDEMO_SCRIPT"`
	Headless   bool   `env:"VRDEMO_HEADLESS"`
	MaxTicks   int    `env:"VRDEMO_MAX_TICKS"`
	LogStats   bool   `env:"VRDEMO_LOG_STATS"`
}

func main() {
	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var env envDefaults
	if err := config.ParseEnv(&env); err != nil {
		slog.Error("failed to read environment", "error", err)
		os.Exit(1)
	}

	// CLI flags
	configPath := flag.String("config", env.ConfigPath, "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", env.Headless, "Run without graphics")
	logStats := flag.Bool("log-stats", env.LogStats, "Output perf stats via slog")
	outputDir := flag.String("output-dir", env.OutputDir, "Output directory for CSV traces and config snapshot")
	scriptSrc := flag.String("script", env.Script, `Key script, e.g. "W*30,Q*10,WD*20" (loops)`)
	maxTicks := flag.Int("max-ticks", env.MaxTicks, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := sim.Options{
		OutputDir: *outputDir,
		LogStats:  *logStats,
	}
	if *scriptSrc != "" {
		script, err := input.ParseScript(*scriptSrc)
		if err != nil {
			slog.Error("invalid key script", "error", err)
			os.Exit(1)
		}
		opts.Script = script
	}

	if *headless {
		os.Exit(runHeadless(cfg, opts, *maxTicks))
	}
	os.Exit(runWindowed(cfg, opts, *maxTicks))
}

// runHeadless steps the simulation without raylib.
func runHeadless(cfg *config.Config, opts sim.Options, maxTicks int) int {
	s, err := sim.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		return 1
	}

	slog.Info("starting headless simulation",
		"max_ticks", maxTicks,
		"scripted", s.HasScript(),
		"output_dir", opts.OutputDir,
	)

	code := 0
	for maxTicks <= 0 || s.Tick() < int64(maxTicks) {
		if err := s.StepScripted(); err != nil {
			slog.Error("tick failed", "tick", s.Tick(), "error", err)
			code = 1
			break
		}
	}
	if code == 0 {
		slog.Info("max ticks reached", "tick", s.Tick())
	}

	if err := s.Close(); err != nil {
		slog.Error("failed to close simulation", "error", err)
		code = 1
	}
	return code
}

// runWindowed opens the desktop mirror window.
func runWindowed(cfg *config.Config, opts sim.Options, maxTicks int) int {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if cfg.Screen.Transparent {
		flags |= rl.FlagWindowTransparent
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), game.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start game", "error", err)
		return 1
	}

	code := 0
	for !rl.WindowShouldClose() {
		if err := g.Update(); err != nil {
			slog.Error("tick failed", "tick", g.Tick(), "error", err)
			code = 1
			break
		}
		g.Draw()

		if maxTicks > 0 && g.Tick() >= int64(maxTicks) {
			break
		}
	}

	if err := g.Unload(); err != nil {
		slog.Error("failed to close game", "error", err)
		code = 1
	}
	return code
}
