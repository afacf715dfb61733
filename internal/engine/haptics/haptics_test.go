package haptics

import "testing"

func TestPerSideMaximumWins(t *testing.T) {
	c := NewContext()

	c.RequestFeedback(0.3, SideLeft)
	c.RequestFeedback(0.8, SideLeft)
	c.RequestFeedback(0.5, SideLeft)
	c.RequestFeedback(0.2, SideRight)

	if got := c.Amplitude(SideLeft); got != 0.8 {
		t.Errorf("left amplitude = %v, want 0.8", got)
	}
	if got := c.Amplitude(SideRight); got != 0.2 {
		t.Errorf("right amplitude = %v, want 0.2", got)
	}
}

func TestDrainResetsForNextTick(t *testing.T) {
	c := NewContext()

	c.RequestFeedback(0.6, SideLeft)
	c.RequestFeedback(0.9, SideRight)

	left, right := c.Drain()
	if left != 0.6 || right != 0.9 {
		t.Errorf("drain = %v, %v", left, right)
	}

	left, right = c.Drain()
	if left != 0 || right != 0 {
		t.Errorf("amplitudes must reset after drain, got %v, %v", left, right)
	}
}

func TestAmplitudeIsClamped(t *testing.T) {
	c := NewContext()

	c.RequestFeedback(1.7, SideLeft)
	c.RequestFeedback(-0.4, SideRight)

	if got := c.Amplitude(SideLeft); got != 1 {
		t.Errorf("left amplitude = %v, want 1", got)
	}
	if got := c.Amplitude(SideRight); got != 0 {
		t.Errorf("right amplitude = %v, want 0", got)
	}
}
