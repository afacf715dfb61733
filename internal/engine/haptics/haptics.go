// Package haptics accumulates feedback requests for the platform haptics
// driver, one amplitude per hand per tick.
package haptics

// Side selects which hand's actuator a request targets.
type Side int

const (
	// SideLeft is the left hand actuator.
	SideLeft Side = iota
	// SideRight is the right hand actuator.
	SideRight

	sideCount
)

// Context collects feedback requests during a tick. Multiple requests for
// the same side keep only the strongest amplitude; the driver consumes the
// result once per tick via Drain.
type Context struct {
	amplitudes [sideCount]float32
}

// NewContext creates an empty haptic context.
func NewContext() *Context {
	return &Context{}
}

// RequestFeedback records a feedback request. Amplitudes are clamped to
// [0, 1] and only the per-side maximum survives the tick.
func (c *Context) RequestFeedback(amplitude float32, side Side) {
	if side < 0 || side >= sideCount {
		return
	}
	if amplitude < 0 {
		amplitude = 0
	} else if amplitude > 1 {
		amplitude = 1
	}
	if amplitude > c.amplitudes[side] {
		c.amplitudes[side] = amplitude
	}
}

// Amplitude returns the strongest request recorded for a side this tick.
func (c *Context) Amplitude(side Side) float32 {
	if side < 0 || side >= sideCount {
		return 0
	}
	return c.amplitudes[side]
}

// Drain returns the per-side amplitudes and resets them to zero for the
// next tick.
func (c *Context) Drain() (left, right float32) {
	left, right = c.amplitudes[SideLeft], c.amplitudes[SideRight]
	c.amplitudes = [sideCount]float32{}
	return left, right
}
