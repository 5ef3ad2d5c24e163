package nav

import (
	"math"
	"testing"
)

func TestFrameBound(t *testing.T) {
	tests := []struct {
		speed, eps, distance float64
		want                 int
	}{
		{0.08, 0.01, 3.5, 71},
		{0.08, 0.01, 0.005, 0},
		{0.5, 0.3, 1, 2},
		{0, 0.01, 1, math.MaxInt},
		{1, 0.01, 1, math.MaxInt},
	}
	for _, tt := range tests {
		if got := FrameBound(tt.speed, tt.eps, tt.distance); got != tt.want {
			t.Errorf("FrameBound(%v, %v, %v) = %d, want %d", tt.speed, tt.eps, tt.distance, got, tt.want)
		}
	}
}

func TestCompletionDeclaredOnce(t *testing.T) {
	h := newHarness(t)
	h.selectFace("blog")
	h.settle(200)

	pause := h.nav.state.resumeTimer
	h.tick(60)
	if h.nav.state.resumeTimer != pause {
		t.Error("Expected the pause timer to be armed only once")
	}
	if !pause.Pending() {
		t.Error("Expected the pause timer still pending")
	}
}

func TestPauseKeepsEasing(t *testing.T) {
	h := newHarness(t)
	h.selectFace("blog")
	h.settle(200)

	target := h.nav.state.Target.Position
	before := h.nav.state.Transform.Position
	h.tick(30)
	after := h.nav.state.Transform.Position

	if abs(after.X-target.X) > abs(before.X-target.X) {
		t.Errorf("Expected easing to continue during the pause: %v -> %v", before, after)
	}
}

func TestCloseIgnoresEpsilon(t *testing.T) {
	h := newHarness(t)
	if err := h.nav.Close(); err != nil {
		t.Fatal(err)
	}

	// Already at the center, so every channel is within epsilon from the start.
	h.tick(10)
	if !h.nav.state.Transitioning || h.nav.state.Settled {
		t.Error("Expected close to wait for its timer")
	}
}
