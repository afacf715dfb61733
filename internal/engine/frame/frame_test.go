package frame

import (
	"errors"
	"testing"
	"time"

	"github.com/frostbyte-gg/aurora/internal/engine/arena"
	"github.com/frostbyte-gg/aurora/internal/engine/gpu"
	"github.com/frostbyte-gg/aurora/internal/engine/session"
)

// fakeRuntime records the order of runtime calls and scripts frame timing.
type fakeRuntime struct {
	calls        []string
	shouldRender bool
	waitErr      error
	predicted    time.Duration
	ended        []time.Duration
}

func (f *fakeRuntime) SyncActions() error {
	f.calls = append(f.calls, "sync")
	return nil
}

func (f *fakeRuntime) WaitFrame() (Timing, error) {
	f.calls = append(f.calls, "wait")
	if f.waitErr != nil {
		return Timing{}, f.waitErr
	}
	return Timing{PredictedDisplayTime: f.predicted, ShouldRender: f.shouldRender}, nil
}

func (f *fakeRuntime) BeginFrame() error {
	f.calls = append(f.calls, "begin")
	return nil
}

func (f *fakeRuntime) EndFrame(predicted time.Duration) error {
	f.calls = append(f.calls, "end")
	f.ended = append(f.ended, predicted)
	return nil
}

func (f *fakeRuntime) LocateViews() ([2]View, error) {
	f.calls = append(f.calls, "views")
	return [2]View{}, nil
}

func newTestController(t *testing.T) (*Controller, *fakeRuntime, *gpu.Null) {
	t.Helper()
	backend := gpu.NewNull()
	res, err := arena.New(backend, arena.Config{
		VertexCapacity:   16,
		IndexCapacity:    16,
		DrawCapacity:     4,
		MaterialCapacity: 4,
		SkinCapacity:     2,
		BufferingDepth:   2,
	}, nil)
	if err != nil {
		t.Fatalf("failed to create arena: %v", err)
	}
	rt := &fakeRuntime{shouldRender: true, predicted: 16 * time.Millisecond}
	return NewController(rt, res, nil), rt, backend
}

func TestRenderedFrameRunsFullProtocol(t *testing.T) {
	c, rt, backend := newTestController(t)

	if err := c.Begin(session.StateVisible, session.StateFocused); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if err := c.End(); err != nil {
		t.Fatalf("end failed: %v", err)
	}

	want := []string{"sync", "wait", "begin", "views", "end"}
	if len(rt.calls) != len(want) {
		t.Fatalf("calls = %v", rt.calls)
	}
	for i, call := range want {
		if rt.calls[i] != call {
			t.Errorf("call %d = %q, want %q", i, rt.calls[i], call)
		}
	}
	if len(backend.Draws) != 1 {
		t.Errorf("expected one submission, got %v", backend.Draws)
	}
	if rt.ended[0] != 16*time.Millisecond {
		t.Errorf("end handshake got predicted time %v", rt.ended[0])
	}
}

func TestUnrenderedFrameSkipsArenaButHandshakes(t *testing.T) {
	c, rt, backend := newTestController(t)
	rt.shouldRender = false

	if err := c.Begin(session.StateReady, session.StateSynchronized); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if c.Context().ShouldRender {
		t.Error("context should not carry the render flag")
	}
	if err := c.End(); err != nil {
		t.Fatalf("end failed: %v", err)
	}

	for _, call := range rt.calls {
		if call == "views" {
			t.Error("views must not be located for an unrendered frame")
		}
	}
	if rt.calls[len(rt.calls)-1] != "end" {
		t.Error("frame-end handshake must run regardless of the render flag")
	}
	if len(backend.Draws) != 0 {
		t.Errorf("no GPU work expected, got %v", backend.Draws)
	}
	if len(backend.Waits) != 0 {
		t.Errorf("arena must not be touched, waits = %v", backend.Waits)
	}
}

func TestIneligibleStateSuppressesRendering(t *testing.T) {
	c, rt, backend := newTestController(t)
	rt.shouldRender = true

	if err := c.Begin(session.StateIdle, session.StateReady); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if c.Context().ShouldRender {
		t.Error("ready state is not rendering eligible")
	}
	if err := c.End(); err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if len(backend.Draws) != 0 {
		t.Errorf("no GPU work expected, got %v", backend.Draws)
	}
}

func TestBeginEndMustAlternate(t *testing.T) {
	c, _, _ := newTestController(t)

	if err := c.End(); !errors.Is(err, ErrFrameOrder) {
		t.Errorf("end before begin: got %v", err)
	}

	if err := c.Begin(session.StateVisible, session.StateFocused); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if err := c.Begin(session.StateVisible, session.StateFocused); !errors.Is(err, ErrFrameOrder) {
		t.Errorf("double begin: got %v", err)
	}

	if err := c.End(); err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if err := c.End(); !errors.Is(err, ErrFrameOrder) {
		t.Errorf("double end: got %v", err)
	}
}

func TestFrameIndexAdvancesPerBegin(t *testing.T) {
	c, _, _ := newTestController(t)

	for want := uint64(0); want < 3; want++ {
		if err := c.Begin(session.StateVisible, session.StateFocused); err != nil {
			t.Fatalf("begin %d failed: %v", want, err)
		}
		if got := c.Context().Index; got != want {
			t.Errorf("frame index = %d, want %d", got, want)
		}
		if err := c.End(); err != nil {
			t.Fatalf("end %d failed: %v", want, err)
		}
	}
}

func TestWaitErrorSurfacesWithoutEnteringFrame(t *testing.T) {
	c, rt, _ := newTestController(t)
	rt.waitErr = errors.New("display lost")

	if err := c.Begin(session.StateVisible, session.StateFocused); err == nil {
		t.Fatal("expected wait error to surface")
	}
	if c.InFrame() {
		t.Error("failed begin must not enter the frame")
	}
}
