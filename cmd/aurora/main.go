// Package main is the entry point for the Aurora runtime.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/frostbyte-gg/aurora/internal/config"
	"github.com/frostbyte-gg/aurora/internal/engine"
	"github.com/frostbyte-gg/aurora/internal/engine/arena"
	"github.com/frostbyte-gg/aurora/internal/engine/lighting"
	"github.com/frostbyte-gg/aurora/internal/engine/physics"
	"github.com/frostbyte-gg/aurora/internal/game/entity"
	"github.com/frostbyte-gg/aurora/internal/logger"
	"github.com/frostbyte-gg/aurora/pkg/math"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Aurora ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// An interrupt cancels the context, which the session driver reports as
	// shutdown on its next poll.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := engine.New(ctx, cfg, logger.Log)
	if err != nil {
		logger.Error("failed to create engine", zap.Error(err))
		os.Exit(1)
	}
	defer e.Close()

	if err := buildDemoScene(e); err != nil {
		logger.Error("failed to build scene", zap.Error(err))
		os.Exit(1)
	}

	if err := e.Run(); err != nil {
		logger.Error("engine error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("engine closed normally")
}

// buildDemoScene places a slowly tumbling cube over a ground plane, lit by
// the default sun plus one point light.
func buildDemoScene(e *engine.Engine) error {
	res := e.Resources()

	cubeMesh := res.AllocateMesh(cube(0.5, arena.NoMaterial))
	cubeBody := e.World().AddBody(physics.Body{
		Position:        math.Vec3{Y: 1.5},
		AngularVelocity: math.Vec3{X: 0.3, Y: 0.7},
	})
	e.AddEntity(entity.New("cube").WithMesh(cubeMesh).WithBody(cubeBody))

	groundMesh := res.AllocateMesh(plane(10, arena.NoMaterial))
	e.AddEntity(entity.New("ground").WithMesh(groundMesh))

	return e.SetLight(1, lighting.NewPoint(
		math.Vec3{X: 2, Y: 3, Z: 1},
		20, 10,
		math.Vec3{X: 0.9, Y: 0.7, Z: 0.4},
	))
}

// cube builds an axis-aligned cube of the given half extent.
func cube(half float32, material uint32) arena.MeshData {
	faces := [6]struct {
		normal math.Vec3
		u, v   math.Vec3
	}{
		{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.Vec3{Y: 1}},
		{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.Vec3{Y: 1}},
		{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: -1}},
		{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
	}

	var vertices []arena.Vertex
	var indices []uint32
	for _, f := range faces {
		base := uint32(len(vertices))
		for _, corner := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			pos := f.normal.Scale(half).
				Add(f.u.Scale(corner[0] * half)).
				Add(f.v.Scale(corner[1] * half))
			vertices = append(vertices, arena.Vertex{
				Position: pos,
				Normal:   f.normal,
				UV:       math.Vec2{X: (corner[0] + 1) / 2, Y: (corner[1] + 1) / 2},
			})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	return arena.MeshData{
		Transform:        math.Identity(),
		InverseTranspose: math.Identity(),
		BoundingSphere:   math.Vec4{0, 0, 0, half * 1.733},
		MaterialID:       material,
		SkinID:           arena.NoSkin,
		Vertices:         vertices,
		Indices:          indices,
	}
}

// plane builds a ground quad of the given half extent in the XZ plane.
func plane(half float32, material uint32) arena.MeshData {
	up := math.Vec3{Y: 1}
	return arena.MeshData{
		Transform:        math.Identity(),
		InverseTranspose: math.Identity(),
		BoundingSphere:   math.Vec4{0, 0, 0, half * 1.415},
		MaterialID:       material,
		SkinID:           arena.NoSkin,
		Vertices: []arena.Vertex{
			{Position: math.Vec3{X: -half, Z: -half}, Normal: up, UV: math.Vec2{}},
			{Position: math.Vec3{X: half, Z: -half}, Normal: up, UV: math.Vec2{X: 1}},
			{Position: math.Vec3{X: half, Z: half}, Normal: up, UV: math.Vec2{X: 1, Y: 1}},
			{Position: math.Vec3{X: -half, Z: half}, Normal: up, UV: math.Vec2{Y: 1}},
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
}
