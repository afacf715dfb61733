// Package engine composes the session driver, frame controller and resource
// arena into the tick loop.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/frostbyte-gg/aurora/internal/config"
	"github.com/frostbyte-gg/aurora/internal/engine/arena"
	"github.com/frostbyte-gg/aurora/internal/engine/audio"
	"github.com/frostbyte-gg/aurora/internal/engine/camera"
	"github.com/frostbyte-gg/aurora/internal/engine/frame"
	"github.com/frostbyte-gg/aurora/internal/engine/gpu"
	"github.com/frostbyte-gg/aurora/internal/engine/haptics"
	"github.com/frostbyte-gg/aurora/internal/engine/input"
	"github.com/frostbyte-gg/aurora/internal/engine/lighting"
	"github.com/frostbyte-gg/aurora/internal/engine/physics"
	"github.com/frostbyte-gg/aurora/internal/engine/session"
	"github.com/frostbyte-gg/aurora/internal/engine/window"
	"github.com/frostbyte-gg/aurora/internal/game/entity"
	"github.com/frostbyte-gg/aurora/internal/game/systems"
	"github.com/frostbyte-gg/aurora/pkg/math"
)

// Option overrides a component for tests or headless operation.
type Option func(*options)

type options struct {
	backend gpu.Backend
	runtime frame.Runtime
	source  session.EventSource
	control session.Control
}

// WithBackend injects a graphics backend.
func WithBackend(b gpu.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithRuntime injects a frame pacing runtime.
func WithRuntime(r frame.Runtime) Option {
	return func(o *options) { o.runtime = r }
}

// WithEventSource injects a session event source.
func WithEventSource(s session.EventSource) Option {
	return func(o *options) { o.source = s }
}

// WithControl injects a session lifecycle control.
func WithControl(c session.Control) Option {
	return func(o *options) { o.control = c }
}

// Engine owns every subsystem and drives the tick loop. A tick runs on one
// goroutine: poll session state, step physics, sync transforms, build draw
// data, begin frame, submit, end frame.
type Engine struct {
	cfg *config.Config
	log *zap.Logger

	window  *window.Window
	input   *input.Input
	camera  *camera.Camera
	backend gpu.Backend

	resources  *arena.Resources
	driver     *session.Driver
	controller *frame.Controller

	world   *physics.World
	haptics *haptics.Context
	audio   *audio.Manager

	lights   [lighting.MaxLights]lighting.Light
	entities []*entity.Entity

	start    time.Time
	lastTick time.Time
	ticks    uint64
}

// New wires the engine together. With no options the desktop host is used:
// an SDL window with a GL backend, SDL session events and mouse/keyboard
// input. Options replace individual components, which also enables fully
// headless operation.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		cfg:     cfg,
		log:     log,
		camera:  camera.New(),
		world:   physics.NewWorld(),
		haptics: haptics.NewContext(),
		audio:   audio.New(),
		start:   time.Now(),
	}

	headless := o.backend != nil && o.runtime != nil && o.source != nil

	if !headless {
		var err error
		e.window, err = window.New(window.Config{
			Title:      "Aurora",
			Width:      cfg.Graphics.Width,
			Height:     cfg.Graphics.Height,
			Fullscreen: cfg.Graphics.Fullscreen,
			VSync:      cfg.Graphics.VSync,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("engine: creating window: %w", err)
		}
		e.input, err = input.New()
		if err != nil {
			e.window.Close()
			return nil, fmt.Errorf("engine: creating input: %w", err)
		}
	}

	e.backend = o.backend
	if e.backend == nil {
		backend, err := gpu.NewGL(arena.Layout())
		if err != nil {
			e.window.Close()
			return nil, fmt.Errorf("engine: creating GL backend: %w", err)
		}
		e.backend = backend
	}

	resources, err := arena.New(e.backend, arena.Config{
		VertexCapacity:   cfg.Arena.VertexCapacity,
		IndexCapacity:    cfg.Arena.IndexCapacity,
		DrawCapacity:     cfg.Arena.DrawCapacity,
		MaterialCapacity: cfg.Arena.MaterialCapacity,
		SkinCapacity:     cfg.Arena.SkinCapacity,
		BufferingDepth:   cfg.Arena.BufferingDepth,
	}, log)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("engine: creating resource arena: %w", err)
	}
	e.resources = resources

	source := o.source
	if source == nil {
		source = session.NewSDLSource()
	}
	control := o.control
	if control == nil {
		control = &loggingControl{log: log}
	}
	e.driver = session.NewDriver(ctx, source, control, cfg.Session.IdlePollInterval, log)

	runtime := o.runtime
	if runtime == nil {
		runtime = window.NewRuntime(e.window, e.input, e.camera)
	}
	e.controller = frame.NewController(runtime, resources, log)

	for i := range e.lights {
		e.lights[i] = lighting.None()
	}
	e.lights[0] = lighting.NewDirectional(
		math.Vec3{X: -0.3, Y: -1, Z: -0.2}.Normalize(),
		3,
		math.Vec3{X: 1, Y: 0.96, Z: 0.9},
	)

	if !cfg.Audio.Muted {
		// Audio failure is not worth aborting startup over.
		if err := e.audio.Init(); err != nil {
			log.Warn("audio unavailable", zap.Error(err))
		} else {
			e.audio.SetMasterVolume(cfg.Audio.MasterVolume)
		}
	}

	log.Info("engine initialized", zap.Bool("headless", headless))
	return e, nil
}

// Resources exposes the arena for scene setup.
func (e *Engine) Resources() *arena.Resources {
	return e.resources
}

// World exposes the simulation for scene setup.
func (e *Engine) World() *physics.World {
	return e.world
}

// Haptics exposes the per-tick feedback accumulator.
func (e *Engine) Haptics() *haptics.Context {
	return e.haptics
}

// Camera exposes the viewpoint.
func (e *Engine) Camera() *camera.Camera {
	return e.camera
}

// AddEntity adds an entity to the scene.
func (e *Engine) AddEntity(ent *entity.Entity) {
	e.entities = append(e.entities, ent)
}

// SetLight places a light into one of the fixed scene slots.
func (e *Engine) SetLight(slot int, l lighting.Light) error {
	if slot < 0 || slot >= lighting.MaxLights {
		return fmt.Errorf("engine: light slot %d out of range", slot)
	}
	e.lights[slot] = l
	return nil
}

// Run drives ticks until shutdown is signalled or a tick fails. Shutdown is
// a clean return, never an error.
func (e *Engine) Run() error {
	e.log.Info("starting tick loop")
	e.lastTick = time.Now()

	for {
		if err := e.Update(); err != nil {
			if errors.Is(err, session.ErrShuttingDown) {
				e.log.Info("shutdown signalled, leaving tick loop")
				return nil
			}
			return err
		}
	}
}

// Update runs a single tick. It returns session.ErrShuttingDown when the
// runtime or an external quit signal asks for termination.
func (e *Engine) Update() error {
	prev, cur, err := e.driver.Poll()
	if err != nil {
		return err
	}

	now := time.Now()
	dt := float32(now.Sub(e.lastTick).Seconds())
	e.lastTick = now
	if dt > 0.1 {
		dt = 0.1
	}

	// No session yet; the driver already yielded while idle.
	if cur == session.StateIdle || cur == session.StateUnknown {
		return nil
	}

	e.world.Step(dt)
	systems.SyncTransforms(e.world, e.entities, e.log)

	if err := e.controller.Begin(prev, cur); err != nil {
		return err
	}

	fctx := e.controller.Context()
	if fctx.ShouldRender {
		if e.input != nil {
			e.applyActions(e.input.Actions(), dt)
		}
		if err := e.resources.WriteSceneData(e.sceneData(fctx)); err != nil {
			return err
		}
		if _, err := systems.BuildDrawData(e.resources, e.entities, e.log); err != nil {
			return err
		}
	}

	if err := e.controller.End(); err != nil {
		return err
	}

	if left, right := e.haptics.Drain(); left > 0 || right > 0 {
		e.log.Debug("haptic feedback drained",
			zap.Float32("left", left),
			zap.Float32("right", right),
		)
	}

	e.ticks++
	return nil
}

// applyActions moves the camera and raises the haptic test pulse from the
// frame's input snapshot.
func (e *Engine) applyActions(a input.Actions, dt float32) {
	e.camera.HandleLook(a.LookX, a.LookY)
	e.camera.HandleMovement(a.MoveForward, a.MoveRight, a.MoveUp, dt)
	if a.Grip {
		e.haptics.RequestFeedback(0.5, haptics.SideRight)
	}
}

// sceneData builds the frame's shared uniform block from the located views
// and the scene lights.
func (e *Engine) sceneData(fctx frame.Context) arena.SceneData {
	s := arena.NewSceneData()
	for i, v := range fctx.Views {
		view := math.LookAt(v.Position, v.Position.Add(v.Rotation.Rotate(math.Vec3{Z: -1})), math.Vec3{Y: 1})
		s.ViewProjection[i] = v.Projection.Mul(view)
		s.CameraPosition[i] = math.Vec3W(v.Position, 1)
	}
	s.Params[0] = float32(time.Since(e.start).Seconds())
	s.Lights = e.lights
	return s
}

// Ticks returns the number of completed ticks, for diagnostics.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Close releases every subsystem in reverse construction order.
func (e *Engine) Close() {
	e.audio.Close()
	if e.backend != nil {
		e.backend.Close()
	}
	if e.window != nil {
		e.window.Close()
	}
}

// loggingControl is the desktop session control: the SDL window has no
// session handshake, so begin and end are observability only.
type loggingControl struct {
	log *zap.Logger
}

func (c *loggingControl) BeginSession() error {
	c.log.Debug("session begin requested")
	return nil
}

func (c *loggingControl) EndSession() error {
	c.log.Debug("session end requested")
	return nil
}
