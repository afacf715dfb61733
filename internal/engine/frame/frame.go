// Package frame drives the begin/end-frame protocol between the session
// runtime and the resource arena.
package frame

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/frostbyte-gg/aurora/internal/engine/arena"
	"github.com/frostbyte-gg/aurora/internal/engine/session"
	"github.com/frostbyte-gg/aurora/pkg/math"
)

// frameIndexBound wraps the frame index well before uint64 overflow so slot
// arithmetic downstream never sees a discontinuity.
const frameIndexBound = 1 << 32

// View is one eye's pose and projection for the frame.
type View struct {
	Position   math.Vec3
	Rotation   math.Quat
	Projection math.Mat4
}

// Timing is what the runtime reports when a frame slot becomes available.
type Timing struct {
	// PredictedDisplayTime is when the runtime expects this frame on screen.
	PredictedDisplayTime time.Duration
	// ShouldRender is false when the frame must be paced but not drawn,
	// such as while the session is not visible.
	ShouldRender bool
}

// Runtime is the host pacing interface. WaitFrame blocks until the next
// frame slot is available, bounded by the runtime's own pacing. EndFrame is
// the timing handshake and runs for every frame, rendered or not.
type Runtime interface {
	SyncActions() error
	WaitFrame() (Timing, error)
	BeginFrame() error
	EndFrame(predicted time.Duration) error
	LocateViews() ([2]View, error)
}

// Context is the per-frame scalar state, refreshed once per tick by Begin
// and read-only until the next Begin.
type Context struct {
	Index                uint64
	ShouldRender         bool
	PredictedDisplayTime time.Duration
	Views                [2]View
	Previous             session.State
	Current              session.State
}

// ErrFrameOrder reports Begin/End called out of turn.
var ErrFrameOrder = errors.New("frame: begin and end must alternate")

// Controller orchestrates one frame: input sync, frame pacing, view
// acquisition and the arena's per-frame reset and submission.
type Controller struct {
	runtime Runtime
	arena   *arena.Resources
	log     *zap.Logger

	inFrame bool
	first   bool
	ctx     Context
}

// NewController creates a controller over a paced runtime and an arena.
func NewController(runtime Runtime, res *arena.Resources, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{runtime: runtime, arena: res, log: log, first: true}
}

// Begin synchronizes input actions, waits for the next frame slot and, when
// the runtime wants the frame rendered, rewinds the arena for writing.
// A frame that is paced but not rendered still runs the full handshake, it
// just skips all arena work.
func (c *Controller) Begin(previous, current session.State) error {
	if c.inFrame {
		return fmt.Errorf("%w: begin without matching end", ErrFrameOrder)
	}

	if err := c.runtime.SyncActions(); err != nil {
		return fmt.Errorf("frame: syncing actions: %w", err)
	}

	timing, err := c.runtime.WaitFrame()
	if err != nil {
		return fmt.Errorf("frame: waiting for frame slot: %w", err)
	}

	if c.first {
		c.first = false
	} else {
		c.ctx.Index = (c.ctx.Index + 1) % frameIndexBound
	}
	c.ctx.ShouldRender = timing.ShouldRender && current.RenderingEligible()
	c.ctx.PredictedDisplayTime = timing.PredictedDisplayTime
	c.ctx.Previous = previous
	c.ctx.Current = current

	if err := c.runtime.BeginFrame(); err != nil {
		return fmt.Errorf("frame: beginning frame: %w", err)
	}

	if c.ctx.ShouldRender {
		views, err := c.runtime.LocateViews()
		if err != nil {
			return fmt.Errorf("frame: locating views: %w", err)
		}
		c.ctx.Views = views
		c.arena.BeginFrame(c.ctx.Index)
	}

	c.inFrame = true
	return nil
}

// End submits the arena's GPU work when the frame was rendered and always
// completes the runtime's frame-end handshake, which governs pacing whether
// or not visible content was produced.
func (c *Controller) End() error {
	if !c.inFrame {
		return fmt.Errorf("%w: end without matching begin", ErrFrameOrder)
	}
	c.inFrame = false

	if c.ctx.ShouldRender {
		draws, err := c.arena.EndFrame()
		if err != nil {
			return fmt.Errorf("frame: submitting frame %d: %w", c.ctx.Index, err)
		}
		c.log.Debug("frame submitted",
			zap.Uint64("frame", c.ctx.Index),
			zap.Int("draws", draws),
		)
	}

	if err := c.runtime.EndFrame(c.ctx.PredictedDisplayTime); err != nil {
		return fmt.Errorf("frame: ending frame: %w", err)
	}
	return nil
}

// Context returns the state of the frame begun by the last Begin call.
func (c *Controller) Context() Context {
	return c.ctx
}

// InFrame reports whether a Begin call is awaiting its End.
func (c *Controller) InFrame() bool {
	return c.inFrame
}
