package window

import (
	"time"

	"github.com/frostbyte-gg/aurora/internal/engine/camera"
	"github.com/frostbyte-gg/aurora/internal/engine/frame"
	"github.com/frostbyte-gg/aurora/internal/engine/input"
	"github.com/frostbyte-gg/aurora/pkg/math"
)

// Runtime adapts the desktop window to the frame pacing interface. With
// VSync the swap itself paces the loop; without it WaitFrame sleeps off any
// time left in the target interval.
type Runtime struct {
	window *Window
	input  *input.Input
	camera *camera.Camera

	interval time.Duration
	lastWait time.Time
}

// NewRuntime creates a pacing runtime over a window.
func NewRuntime(w *Window, in *input.Input, cam *camera.Camera) *Runtime {
	return &Runtime{
		window:   w,
		input:    in,
		camera:   cam,
		interval: time.Second / 60,
	}
}

// SyncActions snapshots the input state for the coming frame.
func (r *Runtime) SyncActions() error {
	return r.input.Sync()
}

// WaitFrame paces the loop to the target interval and reports whether the
// frame is worth rendering.
func (r *Runtime) WaitFrame() (frame.Timing, error) {
	now := time.Now()
	if !r.lastWait.IsZero() && !r.window.config.VSync {
		if wait := r.interval - now.Sub(r.lastWait); wait > 0 {
			time.Sleep(wait)
			now = time.Now()
		}
	}
	r.lastWait = now

	return frame.Timing{
		PredictedDisplayTime: r.interval,
		ShouldRender:         !r.window.Minimized(),
	}, nil
}

// BeginFrame clears the backbuffer.
func (r *Runtime) BeginFrame() error {
	r.window.Clear()
	return nil
}

// EndFrame presents the frame. The swap is the timing handshake on this
// host, so it runs whether or not anything was drawn.
func (r *Runtime) EndFrame(predicted time.Duration) error {
	r.window.SwapBuffers()
	return nil
}

// LocateViews returns one view per eye from the camera's current pose.
func (r *Runtime) LocateViews() ([2]frame.View, error) {
	aspect := r.window.AspectRatio()
	projection := math.Perspective(r.camera.FovY, aspect, r.camera.Near, r.camera.Far)
	rotation := r.camera.Orientation()

	var views [2]frame.View
	for i, eye := range r.camera.EyePositions() {
		views[i] = frame.View{
			Position:   eye,
			Rotation:   rotation,
			Projection: projection,
		}
	}
	return views, nil
}
