package engine

import (
	"context"
	"testing"
	"time"

	"github.com/frostbyte-gg/aurora/internal/config"
	"github.com/frostbyte-gg/aurora/internal/engine/arena"
	"github.com/frostbyte-gg/aurora/internal/engine/frame"
	"github.com/frostbyte-gg/aurora/internal/engine/gpu"
	"github.com/frostbyte-gg/aurora/internal/engine/lighting"
	"github.com/frostbyte-gg/aurora/internal/engine/physics"
	"github.com/frostbyte-gg/aurora/internal/engine/session"
	"github.com/frostbyte-gg/aurora/internal/game/entity"
	"github.com/frostbyte-gg/aurora/pkg/math"
)

type scriptedSource struct {
	script [][]session.Event
}

func (s *scriptedSource) Poll() ([]session.Event, error) {
	if len(s.script) == 0 {
		return nil, nil
	}
	events := s.script[0]
	s.script = s.script[1:]
	return events, nil
}

type nopControl struct{}

func (nopControl) BeginSession() error { return nil }
func (nopControl) EndSession() error   { return nil }

type pacedRuntime struct{}

func (pacedRuntime) SyncActions() error { return nil }
func (pacedRuntime) WaitFrame() (frame.Timing, error) {
	return frame.Timing{PredictedDisplayTime: time.Millisecond, ShouldRender: true}, nil
}
func (pacedRuntime) BeginFrame() error            { return nil }
func (pacedRuntime) EndFrame(time.Duration) error { return nil }
func (pacedRuntime) LocateViews() ([2]frame.View, error) {
	return [2]frame.View{}, nil
}

func newHeadlessEngine(t *testing.T, script [][]session.Event) (*Engine, *gpu.Null) {
	t.Helper()
	cfg := config.Default()
	cfg.Arena.VertexCapacity = 256
	cfg.Arena.IndexCapacity = 256
	cfg.Arena.DrawCapacity = 16
	cfg.Arena.MaterialCapacity = 16
	cfg.Arena.SkinCapacity = 4
	cfg.Audio.Muted = true
	cfg.Session.IdlePollInterval = time.Millisecond

	backend := gpu.NewNull()
	e, err := New(context.Background(), cfg, nil,
		WithBackend(backend),
		WithRuntime(pacedRuntime{}),
		WithEventSource(&scriptedSource{script: script}),
		WithControl(nopControl{}),
	)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return e, backend
}

func TestRunExitsCleanlyOnExitingState(t *testing.T) {
	e, backend := newHeadlessEngine(t, [][]session.Event{
		{{State: session.StateReady}},
		{{State: session.StateFocused}},
		{},
		{{State: session.StateExiting}},
	})

	if err := e.Run(); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	// The ready tick paces without rendering, the two focused ticks submit,
	// and the exiting tick never runs.
	if e.Ticks() != 3 {
		t.Errorf("ticks = %d, want 3", e.Ticks())
	}
	if len(backend.Draws) != 2 {
		t.Errorf("submissions = %d, want 2", len(backend.Draws))
	}
}

func TestQuitSignalStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := config.Default()
	cfg.Audio.Muted = true
	cfg.Arena.VertexCapacity = 16
	cfg.Arena.IndexCapacity = 16
	cfg.Arena.DrawCapacity = 4
	cfg.Arena.MaterialCapacity = 4
	cfg.Arena.SkinCapacity = 2

	e, err := New(ctx, cfg, nil,
		WithBackend(gpu.NewNull()),
		WithRuntime(pacedRuntime{}),
		WithEventSource(&scriptedSource{script: [][]session.Event{{{State: session.StateFocused}}}}),
		WithControl(nopControl{}),
	)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	cancel()
	if err := e.Run(); err != nil {
		t.Fatalf("cancelled run should return cleanly, got %v", err)
	}
}

func TestTickDrivesSimulationIntoDraws(t *testing.T) {
	e, backend := newHeadlessEngine(t, [][]session.Event{
		{{State: session.StateFocused}},
		{},
	})

	body := e.World().AddBody(physics.Body{Position: math.Vec3{X: 1, Y: 2, Z: 3}})
	mesh := e.Resources().AllocateMesh(arenaQuad())
	e.AddEntity(entity.New("crate").WithMesh(mesh).WithBody(body))

	for i := 0; i < 2; i++ {
		if err := e.Update(); err != nil {
			t.Fatalf("tick %d failed: %v", i, err)
		}
	}

	if len(backend.Draws) != 2 || backend.Draws[1] != 1 {
		t.Fatalf("draw submissions = %v", backend.Draws)
	}
	record := e.Resources().DrawData.At(0)
	if got := record.Transform.Translation(); got.Distance(math.Vec3{X: 1, Y: 2, Z: 3}) > 1e-5 {
		t.Errorf("draw transform translation = %v", got)
	}
}

func arenaQuad() arena.MeshData {
	return arena.MeshData{
		Transform:        math.Identity(),
		InverseTranspose: math.Identity(),
		BoundingSphere:   math.Vec4{0, 0, 0, 1},
		MaterialID:       arena.NoMaterial,
		SkinID:           arena.NoSkin,
		Vertices:         make([]arena.Vertex, 4),
		Indices:          []uint32{0, 1, 2, 2, 3, 0},
	}
}

func TestSetLightValidatesSlot(t *testing.T) {
	e, _ := newHeadlessEngine(t, nil)

	if err := e.SetLight(0, lighting.NewPoint(math.Vec3{Y: 2}, 10, 5, math.Vec3{X: 1})); err != nil {
		t.Errorf("valid slot rejected: %v", err)
	}
	if err := e.SetLight(lighting.MaxLights, lighting.None()); err == nil {
		t.Error("out of range slot accepted")
	}
}
