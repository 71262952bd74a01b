// Package sim runs the demo's per-tick systems without a window.
// The graphical game wraps a Sim and adds input polling and rendering.
package sim

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vrdemo/components"
	"github.com/pthm-cable/vrdemo/config"
	"github.com/pthm-cable/vrdemo/input"
	"github.com/pthm-cable/vrdemo/scene"
	"github.com/pthm-cable/vrdemo/systems"
	"github.com/pthm-cable/vrdemo/telemetry"
	"github.com/pthm-cable/vrdemo/xr"
)

// Options configures a simulation.
type Options struct {
	Runtime   xr.Runtime    // nil = simulated runtime built from config
	Script    *input.Script // key source for StepScripted; nil = no keys
	OutputDir string        // CSV/YAML output, empty = disabled
	LogStats  bool          // log perf stats every telemetry window
}

// MirrorView is a mirror camera's eye and current world transform.
type MirrorView struct {
	Eye       components.Eye
	FovY      float32
	Transform components.Transform
}

// Sim holds the world and runs one tick of every system per Step.
type Sim struct {
	cfg     *config.Config
	world   *ecs.World
	scene   *scene.Scene
	runtime xr.Runtime
	session xr.Session
	script  *input.Script

	xrSync   *systems.XRSyncSystem
	platform *systems.PlatformControlSystem
	follow   *systems.FollowRigSystem
	mirror   *systems.MirrorSystem

	trMap     *ecs.Map[components.Transform]
	ctrlMap   *ecs.Map[components.PlatformController]
	mirrorMap *ecs.Map[components.MirrorCamera]
	roots     *ecs.Filter1[components.Transform]
	heads     *ecs.Filter1[components.Transform]

	perf     *telemetry.PerfCollector
	output   *telemetry.OutputManager
	poses    []telemetry.PoseSample
	logStats bool

	tick int64
}

// New builds the scene, starts the XR session and prepares telemetry.
func New(cfg *config.Config, opts Options) (*Sim, error) {
	runtime := opts.Runtime
	if runtime == nil {
		rt, err := newSimulatedRuntime(cfg)
		if err != nil {
			return nil, err
		}
		runtime = rt
	}

	prefs, err := xr.ParseBlendModes(cfg.XR.BlendModes)
	if err != nil {
		return nil, fmt.Errorf("xr.blend_modes: %w", err)
	}
	if len(prefs) == 0 {
		prefs = xr.DefaultPreference()
	}
	mode, err := xr.SelectBlendMode(prefs, runtime.SupportedBlendModes())
	if err != nil {
		return nil, fmt.Errorf("start xr session: %w", err)
	}
	session, err := runtime.Begin(xr.SessionConfig{BlendMode: mode})
	if err != nil {
		return nil, fmt.Errorf("start xr session: %w", err)
	}
	slog.Info("xr session started",
		"runtime", runtime.Name(),
		"blend_mode", session.BlendMode.String(),
		"see_through", session.BlendMode.SeeThrough(),
	)

	world := ecs.NewWorld()
	sc, err := scene.Setup(world, cfg)
	if err != nil {
		runtime.End()
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		runtime.End()
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		runtime.End()
		return nil, err
	}

	s := &Sim{
		cfg:       cfg,
		world:     world,
		scene:     sc,
		runtime:   runtime,
		session:   session,
		script:    opts.Script,
		xrSync:    systems.NewXRSyncSystem(world, runtime),
		platform:  systems.NewPlatformControlSystem(world, cfg.Derived.Damping32),
		follow:    systems.NewFollowRigSystem(world),
		mirror:    systems.NewMirrorSystem(world),
		trMap:     ecs.NewMap[components.Transform](world),
		ctrlMap:   ecs.NewMap[components.PlatformController](world),
		mirrorMap: ecs.NewMap[components.MirrorCamera](world),
		roots: ecs.NewFilter1[components.Transform](world).
			With(ecs.C[components.TrackingRoot]()),
		heads: ecs.NewFilter1[components.Transform](world).
			With(ecs.C[components.HeadPose]()),
		perf:     telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:   output,
		logStats: opts.LogStats,
	}
	return s, nil
}

func newSimulatedRuntime(cfg *config.Config) (*xr.SimulatedRuntime, error) {
	supported, err := xr.ParseBlendModes(cfg.XR.Supported)
	if err != nil {
		return nil, fmt.Errorf("xr.supported: %w", err)
	}
	rt := xr.NewSimulatedRuntime(float32(cfg.XR.EyeHeight), float32(cfg.XR.IPD), supported)
	rt.Sway = float32(cfg.XR.HeadSway)
	rt.SwayPeriod = float32(cfg.XR.SwayPeriod)
	rt.SwapEyes = cfg.XR.SwapViewEye
	return rt, nil
}

// Step advances one tick with the given keys held.
// Systems run in order: xr sync, platform, follow rig, mirror.
func (s *Sim) Step(keys input.KeyState) error {
	s.perf.StartTick()

	s.perf.StartPhase(systems.IDXRSync)
	if err := s.xrSync.Update(s.tick); err != nil {
		s.perf.EndTick()
		return err
	}

	s.perf.StartPhase(systems.IDPlatform)
	s.platform.Update(keys)

	s.perf.StartPhase(systems.IDFollow)
	s.follow.Update()

	s.perf.StartPhase(systems.IDMirror)
	s.mirror.Update()

	s.perf.StartPhase(systems.IDTrace)
	s.trace(keys)

	s.perf.EndTick()
	s.tick++

	if s.tick%int64(s.cfg.Telemetry.Window) == 0 {
		return s.flush()
	}
	return nil
}

// StepScripted advances one tick using the next keys of the script.
func (s *Sim) StepScripted() error {
	var keys input.KeyState
	if s.script != nil {
		keys = s.script.Next()
	}
	return s.Step(keys)
}

// HasScript reports whether a key script drives this simulation.
func (s *Sim) HasScript() bool {
	return s.script != nil && s.script.Len() > 0
}

// trace buffers a pose sample when output is enabled.
func (s *Sim) trace(keys input.KeyState) {
	if s.output == nil {
		return
	}

	var poses telemetry.Poses
	poses.Platform = s.trMap.Get(s.scene.Platform)

	root, ok := s.trackingRoot()
	if ok {
		poses.Root = &root
	}
	head, ok := s.Head()
	if ok {
		poses.Head = &head
	}

	for _, e := range s.scene.Mirrors {
		switch s.mirrorMap.Get(e).Eye {
		case components.EyeLeft:
			poses.Left = s.trMap.Get(e)
		case components.EyeRight:
			poses.Right = s.trMap.Get(e)
		}
	}

	s.poses = append(s.poses, telemetry.NewPoseSample(s.tick, keys.String(), poses))
}

func (s *Sim) trackingRoot() (components.Transform, bool) {
	query := s.roots.Query()
	if !query.Next() {
		return components.Transform{}, false
	}
	root := *query.Get()
	query.Close()
	return root, true
}

// Head returns the world pose of the head: the tracking root composed
// with the midpoint of the eyes. ok is false until the rig has spawned.
func (s *Sim) Head() (components.Transform, bool) {
	root, ok := s.trackingRoot()
	if !ok {
		return components.Transform{}, false
	}
	query := s.heads.Query()
	if !query.Next() {
		return components.Transform{}, false
	}
	local := *query.Get()
	query.Close()
	return root.Mul(local), true
}

// flush writes buffered samples and the perf window.
func (s *Sim) flush() error {
	stats := s.perf.Stats()
	if s.logStats {
		slog.Info("perf", "tick", s.tick, "stats", stats)
	}
	if err := s.output.WritePerf(stats, s.tick); err != nil {
		return err
	}
	if err := s.output.WritePoses(s.poses); err != nil {
		return err
	}
	s.poses = s.poses[:0]
	return nil
}

// Tick returns the number of completed ticks.
func (s *Sim) Tick() int64 {
	return s.tick
}

// Config returns the configuration the simulation was built with.
func (s *Sim) Config() *config.Config {
	return s.cfg
}

// World returns the ECS world.
func (s *Sim) World() *ecs.World {
	return s.world
}

// Scene returns the startup entities.
func (s *Sim) Scene() *scene.Scene {
	return s.scene
}

// Session returns the active XR session.
func (s *Sim) Session() xr.Session {
	return s.session
}

// RuntimeName returns the XR runtime's name.
func (s *Sim) RuntimeName() string {
	return s.runtime.Name()
}

// Perf returns the tick timing collector.
func (s *Sim) Perf() *telemetry.PerfCollector {
	return s.perf
}

// LayoutVerified reports whether the runtime lists the left eye first.
func (s *Sim) LayoutVerified() bool {
	return s.xrSync.LayoutVerified()
}

// Platform returns the platform's transform and controller.
func (s *Sim) Platform() (components.Transform, components.PlatformController) {
	return *s.trMap.Get(s.scene.Platform), *s.ctrlMap.Get(s.scene.Platform)
}

// SetPlatformSpeeds updates the platform controller.
func (s *Sim) SetPlatformSpeeds(speed, rotationSpeed float32) {
	ctrl := s.ctrlMap.Get(s.scene.Platform)
	ctrl.Speed = speed
	ctrl.RotationSpeed = rotationSpeed
}

// Mirrors returns the mirror cameras in scene order.
func (s *Sim) Mirrors() []MirrorView {
	views := make([]MirrorView, 0, len(s.scene.Mirrors))
	for _, e := range s.scene.Mirrors {
		cam := s.mirrorMap.Get(e)
		views = append(views, MirrorView{Eye: cam.Eye, FovY: cam.FovY, Transform: *s.trMap.Get(e)})
	}
	return views
}

// Close flushes remaining samples, closes output and ends the session.
func (s *Sim) Close() error {
	var firstErr error
	if s.output != nil && len(s.poses) > 0 {
		firstErr = s.output.WritePoses(s.poses)
		s.poses = s.poses[:0]
	}
	if err := s.output.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := s.runtime.End(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("end xr session: %w", err)
	}
	slog.Info("simulation closed", "ticks", s.tick)
	return firstErr
}
