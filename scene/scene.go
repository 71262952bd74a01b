// Package scene builds the demo's startup entities.
package scene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vrdemo/components"
	"github.com/pthm-cable/vrdemo/config"
)

// Colors used by the startup scene.
var (
	GroundColor   = color.RGBA{255, 255, 255, 255}
	CubeColor     = color.RGBA{124, 144, 255, 255}
	PlatformColor = color.RGBA{100, 200, 100, 255}
	LightColor    = color.RGBA{255, 240, 200, 255}
)

// Scene holds the entities created at startup.
type Scene struct {
	Ground   ecs.Entity
	Cube     ecs.Entity
	Light    ecs.Entity
	Platform ecs.Entity
	Mirrors  []ecs.Entity
}

// Setup spawns the ground disc, the cube, a point light, the steerable
// platform and one mirror camera per configured eye.
func Setup(w *ecs.World, cfg *config.Config) (*Scene, error) {
	s := &Scene{}

	meshMap := ecs.NewMap3[components.Transform, components.Mesh, components.Name](w)

	ground := components.FromRotation(components.RotationX(-math.Pi / 2))
	radius := float32(cfg.Scene.GroundRadius)
	s.Ground = meshMap.NewEntity(&ground,
		&components.Mesh{Shape: components.ShapeDisc, Size: mgl32.Vec3{radius, radius, 0.01}, Color: GroundColor},
		&components.Name{Value: "ground"},
	)

	size := float32(cfg.Scene.CubeSize)
	cube := components.FromXYZ(0, size/2, 0)
	s.Cube = meshMap.NewEntity(&cube,
		&components.Mesh{Shape: components.ShapeCuboid, Size: mgl32.Vec3{size, size, size}, Color: CubeColor},
		&components.Name{Value: "cube"},
	)

	lightMap := ecs.NewMap3[components.Transform, components.PointLight, components.Name](w)
	lp := cfg.Scene.Light
	light := components.FromXYZ(float32(lp[0]), float32(lp[1]), float32(lp[2]))
	s.Light = lightMap.NewEntity(&light,
		&components.PointLight{Intensity: 1, Range: 20, Shadows: cfg.Scene.LightShadows},
		&components.Name{Value: "light"},
	)

	s.Platform = SpawnPlatform(w, cfg)

	for _, name := range cfg.XR.MirrorEyes {
		eye, err := components.ParseEye(name)
		if err != nil {
			return nil, fmt.Errorf("mirror camera: %w", err)
		}
		s.Mirrors = append(s.Mirrors, SpawnMirrorCamera(w, eye, float32(cfg.XR.MirrorFovY)))
	}

	return s, nil
}

// SpawnPlatform creates the steerable platform with a kinematic collider.
func SpawnPlatform(w *ecs.World, cfg *config.Config) ecs.Entity {
	sp := cfg.Platform.Spawn
	sz := cfg.Platform.Size
	tr := components.FromXYZ(float32(sp[0]), float32(sp[1]), float32(sp[2]))
	extent := mgl32.Vec3{float32(sz[0]), float32(sz[1]), float32(sz[2])}

	mapper := ecs.NewMap3[components.Transform, components.PlatformController, components.Platform](w)
	e := mapper.NewEntity(&tr,
		&components.PlatformController{
			Speed:         cfg.Derived.Speed32,
			RotationSpeed: cfg.Derived.RotationSpeed32,
		},
		&components.Platform{},
	)

	bodyMap := ecs.NewMap4[components.Mesh, components.RigidBody, components.Collider, components.Name](w)
	bodyMap.Add(e,
		&components.Mesh{Shape: components.ShapeCuboid, Size: extent, Color: PlatformColor},
		&components.RigidBody{Kinematic: true},
		&components.Collider{HalfExtents: extent.Mul(0.5)},
		&components.Name{Value: "platform"},
	)
	return e
}

// SpawnMirrorCamera creates a desktop camera following the given eye.
// It starts at the identity transform until the first mirror update.
func SpawnMirrorCamera(w *ecs.World, eye components.Eye, fovY float32) ecs.Entity {
	tr := components.Identity()
	mapper := ecs.NewMap3[components.Transform, components.MirrorCamera, components.Name](w)
	return mapper.NewEntity(&tr,
		&components.MirrorCamera{Eye: eye, FovY: fovY},
		&components.Name{Value: "mirror-" + eye.String()},
	)
}
