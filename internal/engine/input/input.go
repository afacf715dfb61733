// Package input snapshots action state from the host once per frame.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Actions is the per-frame action snapshot consumed when building the tick.
// Axes are in [-1, 1]; the mouse delta is in pixels since the last sync.
type Actions struct {
	MoveForward float32
	MoveRight   float32
	MoveUp      float32

	LookX float32
	LookY float32

	// Grip drives the haptic test pulse while held.
	Grip bool
}

// Input reads keyboard and mouse state. Events are consumed elsewhere; this
// package only snapshots state, so it never races the session event drain.
type Input struct {
	actions Actions
}

// New creates an input reader with relative mouse mode enabled so look
// deltas keep accumulating past the window edge.
func New() (*Input, error) {
	if err := sdl.SetRelativeMouseMode(true); err != nil {
		return nil, err
	}
	return &Input{}, nil
}

// Sync snapshots the current action state. Called once per frame before the
// frame slot wait.
func (i *Input) Sync() error {
	keys := sdl.GetKeyboardState()
	i.actions = Actions{}

	if keys[sdl.SCANCODE_W] != 0 {
		i.actions.MoveForward += 1
	}
	if keys[sdl.SCANCODE_S] != 0 {
		i.actions.MoveForward -= 1
	}
	if keys[sdl.SCANCODE_D] != 0 {
		i.actions.MoveRight += 1
	}
	if keys[sdl.SCANCODE_A] != 0 {
		i.actions.MoveRight -= 1
	}
	if keys[sdl.SCANCODE_SPACE] != 0 {
		i.actions.MoveUp += 1
	}
	if keys[sdl.SCANCODE_LSHIFT] != 0 {
		i.actions.MoveUp -= 1
	}
	i.actions.Grip = keys[sdl.SCANCODE_E] != 0

	dx, dy, _ := sdl.GetRelativeMouseState()
	i.actions.LookX = float32(dx)
	i.actions.LookY = float32(dy)

	return nil
}

// Actions returns the snapshot taken by the last Sync.
func (i *Input) Actions() Actions {
	return i.actions
}
