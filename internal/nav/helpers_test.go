package nav

import (
	"io"
	"log"
	"testing"
	"time"

	"shapenav/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const frameTime = time.Second / 60

type harness struct {
	t      *testing.T
	nav    *Navigator
	now    time.Duration
	starts []engine.NavigateStart
	closes int
	frames []Frame
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{t: t}

	opts = append([]Option{
		WithLogger(log.New(io.Discard, "", 0)),
		WithRenderer(RendererFunc(func(f Frame) { h.frames = append(h.frames, f) })),
	}, opts...)

	n, err := New(DefaultConfig(), nil, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	n.Bus().OnNavigateStart(func(e engine.NavigateStart) { h.starts = append(h.starts, e) })
	n.Bus().OnNavigateClose(func(engine.NavigateClose) { h.closes++ })

	h.nav = n
	return h
}

func (h *harness) tick(frames int) {
	for i := 0; i < frames; i++ {
		h.now += frameTime
		h.nav.Tick(h.now)
	}
}

// advance ticks until at least d of engine time has passed.
func (h *harness) advance(d time.Duration) {
	end := h.now + d
	for h.now < end {
		h.tick(1)
	}
}

// settle ticks until the running to-content transition declares completion
// and returns the number of frames it took.
func (h *harness) settle(limit int) int {
	h.t.Helper()
	for i := 1; i <= limit; i++ {
		h.tick(1)
		if h.nav.state.Settled {
			return i
		}
	}
	h.t.Fatalf("transition did not settle within %d frames", limit)
	return 0
}

func (h *harness) selectFace(id string) {
	h.t.Helper()
	if err := h.nav.Select(id); err != nil {
		h.t.Fatalf("Select(%q) failed: %v", id, err)
	}
}

func near(a, b, eps float32) bool {
	d := a - b
	return d < eps && d > -eps
}

func sameRotation(a, b rl.Quaternion) bool {
	return engine.AngleBetween(a, b) < 1e-4
}
