package session

import (
	"github.com/veandco/go-sdl2/sdl"
)

// SDLSource adapts the SDL2 event queue into session lifecycle events. The
// desktop compositor plays the role of the session runtime: window visibility
// and focus drive the same state machine an XR runtime would.
type SDLSource struct {
	shutdown bool
}

// NewSDLSource creates an event source backed by the SDL2 event queue.
// SDL must be initialized before the first Poll.
func NewSDLSource() *SDLSource {
	return &SDLSource{}
}

// Poll drains the SDL event queue and translates window lifecycle events.
// Events with no session meaning (mouse motion, key presses) are dropped
// here; input state is read separately via the keyboard state array.
func (s *SDLSource) Poll() ([]Event, error) {
	if s.shutdown {
		return nil, ErrRuntimeTeardown
	}

	var events []Event
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			events = append(events, Event{State: StateExiting})

		case *sdl.WindowEvent:
			if st, ok := windowEventState(e.Event); ok {
				events = append(events, Event{State: st})
			}
		}
	}
	return events, nil
}

// Shutdown marks the source as torn down; subsequent polls report
// ErrRuntimeTeardown. Call when SDL is quit out from under the driver.
func (s *SDLSource) Shutdown() {
	s.shutdown = true
}

// windowEventState maps an SDL window event to a session state.
func windowEventState(event uint8) (State, bool) {
	switch event {
	case sdl.WINDOWEVENT_SHOWN, sdl.WINDOWEVENT_RESTORED:
		return StateReady, true
	case sdl.WINDOWEVENT_EXPOSED:
		return StateSynchronized, true
	case sdl.WINDOWEVENT_FOCUS_GAINED:
		return StateFocused, true
	case sdl.WINDOWEVENT_FOCUS_LOST:
		return StateVisible, true
	case sdl.WINDOWEVENT_HIDDEN, sdl.WINDOWEVENT_MINIMIZED:
		return StateIdle, true
	case sdl.WINDOWEVENT_CLOSE:
		return StateStopping, true
	default:
		return StateUnknown, false
	}
}
