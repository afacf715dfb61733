// Package session tracks the runtime session lifecycle. The host runtime owns
// the state machine; the driver only reacts to the event stream it emits.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// State is the session lifecycle state reported by the host runtime.
type State int

const (
	// StateUnknown is the zero value before any event has been observed.
	StateUnknown State = iota
	// StateIdle means no session is active.
	StateIdle
	// StateReady means the runtime is ready for the session to begin.
	StateReady
	// StateSynchronized means frame timing is synchronized but not visible.
	StateSynchronized
	// StateVisible means frames are shown but input focus is elsewhere.
	StateVisible
	// StateFocused means frames are shown and input is delivered.
	StateFocused
	// StateStopping means the session should end cleanly.
	StateStopping
	// StateLossPending means the runtime is about to invalidate the session.
	StateLossPending
	// StateExiting is terminal; no further frames are processed.
	StateExiting
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateSynchronized:
		return "synchronized"
	case StateVisible:
		return "visible"
	case StateFocused:
		return "focused"
	case StateStopping:
		return "stopping"
	case StateLossPending:
		return "loss-pending"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// RenderingEligible reports whether the runtime issues frames in this state.
func (s State) RenderingEligible() bool {
	return s == StateSynchronized || s == StateVisible || s == StateFocused
}

// Event is a single session lifecycle event from the platform.
type Event struct {
	State State
}

// EventSource drains pending platform events. Implementations translate the
// host's native events (SDL window events, OS lifecycle callbacks) into
// session state changes.
type EventSource interface {
	Poll() ([]Event, error)
}

// Control starts and stops the session on the host runtime.
type Control interface {
	BeginSession() error
	EndSession() error
}

// ErrShuttingDown signals controlled termination. It is not a failure: the
// tick loop stops cleanly and must not share an error path with real faults.
var ErrShuttingDown = errors.New("session: shutting down")

// ErrRuntimeTeardown is returned by an EventSource whose host runtime has
// been torn down underneath it.
var ErrRuntimeTeardown = errors.New("session: runtime torn down")

// Driver polls the event source and maps state transitions to session
// lifecycle actions.
type Driver struct {
	src   EventSource
	ctl   Control
	ctx   context.Context
	log   *zap.Logger
	state State

	// idleWait bounds the sleep while no session is active so the loop
	// never busy-spins, yet stays interruptible through ctx.
	idleWait time.Duration
}

// NewDriver creates a session driver. ctx carries the external quit signal
// (user interrupt, OS lifecycle); cancelling it forces shutdown on the next
// Poll regardless of session state.
func NewDriver(ctx context.Context, src EventSource, ctl Control, idleWait time.Duration, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	if idleWait <= 0 {
		idleWait = 100 * time.Millisecond
	}
	return &Driver{
		src:      src,
		ctl:      ctl,
		ctx:      ctx,
		log:      log,
		state:    StateUnknown,
		idleWait: idleWait,
	}
}

// State returns the last observed session state.
func (d *Driver) State() State {
	return d.state
}

// Poll drains all pending runtime events, applies at most one authoritative
// state update, and runs the action mapped to the (previous, current) pair.
// It returns ErrShuttingDown when the runtime reaches Exiting or the quit
// signal is set; any other error is fatal.
func (d *Driver) Poll() (prev, cur State, err error) {
	prev = d.state

	events, err := d.src.Poll()
	if err != nil {
		if errors.Is(err, ErrRuntimeTeardown) {
			d.log.Info("runtime torn down, shutting down")
			return prev, d.state, ErrShuttingDown
		}
		return prev, d.state, fmt.Errorf("polling session events: %w", err)
	}

	// The last state change wins; intermediate states are drained but
	// never acted on.
	for _, ev := range events {
		if ev.State != d.state {
			d.log.Debug("session state change",
				zap.Stringer("from", d.state),
				zap.Stringer("to", ev.State),
			)
		}
		d.state = ev.State
	}
	cur = d.state

	// First match wins.
	switch {
	case prev == StateStopping && cur == StateIdle:
		// Keep draining events; the runtime restarts the cycle from here.

	case cur == StateIdle:
		d.sleepIdle()

	case prev == StateIdle && cur == StateReady:
		if err := d.ctl.BeginSession(); err != nil {
			return prev, cur, fmt.Errorf("beginning session: %w", err)
		}
		d.log.Info("session begun")

	case cur == StateExiting:
		d.log.Info("session exiting")
		return prev, cur, ErrShuttingDown

	case cur == StateStopping:
		if err := d.ctl.EndSession(); err != nil {
			return prev, cur, fmt.Errorf("ending session: %w", err)
		}
		d.log.Info("session ended")
	}

	// Checked outside the state machine so an external quit can never be
	// starved by a stuck session state.
	if d.ctx.Err() != nil {
		d.log.Info("quit signal received, shutting down")
		return prev, cur, ErrShuttingDown
	}

	return prev, cur, nil
}

// sleepIdle yields the thread for at most idleWait, waking early if the quit
// signal fires.
func (d *Driver) sleepIdle() {
	timer := time.NewTimer(d.idleWait)
	defer timer.Stop()
	select {
	case <-d.ctx.Done():
	case <-timer.C:
	}
}
