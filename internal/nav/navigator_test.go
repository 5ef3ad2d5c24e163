package nav

import (
	"errors"
	"testing"

	"shapenav/internal/engine"
	"shapenav/internal/shape"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ToContentSpeed = 0

	if _, err := New(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestInitialState(t *testing.T) {
	h := newHarness(t)
	f := h.nav.Snapshot()

	r := DefaultConfig().InitialRotation
	want := engine.QuaternionFromEulerXYZ(r[0], r[1], r[2])
	if !sameRotation(f.Transform.Rotation, want) {
		t.Errorf("Expected initial rotation %v, got %v", want, f.Transform.Rotation)
	}
	if f.Transform.Scale != 1 || f.Transform.Position != (rl.Vector3{}) {
		t.Errorf("Expected centered unit transform, got %+v", f.Transform)
	}
	if f.Phase != PhaseAutoRotating {
		t.Errorf("Expected autoRotating, got %s", f.Phase)
	}
	if h.nav.Registry().Len() != 4 {
		t.Errorf("Expected default registry of 4 faces, got %d", h.nav.Registry().Len())
	}
}

func TestAutoRotateRampsMonotonically(t *testing.T) {
	h := newHarness(t)
	start := h.nav.state.Transform.Rotation

	prev := float32(0)
	for i := 0; i < 150; i++ {
		h.tick(1)
		m := h.nav.state.AutoRotateMultiplier
		if m < prev {
			t.Fatalf("multiplier decreased at frame %d: %f -> %f", i, prev, m)
		}
		if m > 1 {
			t.Fatalf("multiplier above 1 at frame %d: %f", i, m)
		}
		prev = m
	}
	if prev != 1 {
		t.Errorf("Expected multiplier to reach 1, got %f", prev)
	}
	if sameRotation(h.nav.state.Transform.Rotation, start) {
		t.Error("Expected auto-rotation to turn the object")
	}
}

func TestRendererSeesEveryFrame(t *testing.T) {
	h := newHarness(t)
	h.tick(5)

	if len(h.frames) != 5 {
		t.Fatalf("Expected 5 frames, got %d", len(h.frames))
	}
	for i, f := range h.frames {
		if f.Seq != uint64(i+1) {
			t.Errorf("frame %d: expected seq %d, got %d", i, i+1, f.Seq)
		}
	}
	if h.frames[4].Now != h.now {
		t.Errorf("Expected last frame at %v, got %v", h.now, h.frames[4].Now)
	}
}

func TestBlogSelectionSettlesAndAnnounces(t *testing.T) {
	h := newHarness(t)
	face, _ := h.nav.Registry().Lookup("blog")
	target := face.TargetRotation()

	h.nav.Bus().Publish(engine.FaceSelected{FaceID: "blog"})

	if len(h.starts) != 1 {
		t.Fatalf("Expected one navigate:start, got %d", len(h.starts))
	}
	if got := h.starts[0]; got.FaceID != "blog" || got.ContentRef != "content/blog.md" {
		t.Errorf("Unexpected navigate:start payload %+v", got)
	}
	if h.nav.Snapshot().Phase != PhaseTransitioning {
		t.Errorf("Expected transitioning, got %s", h.nav.Snapshot().Phase)
	}

	cfg := DefaultConfig()
	angle := engine.AngleBetween(h.nav.state.Transform.Rotation, target)
	dist := max(float64(angle), 3.5)
	bound := FrameBound(float64(cfg.ToContentSpeed), float64(cfg.Epsilon), dist)

	took := h.settle(bound + 5)
	if took > bound+2 {
		t.Errorf("Expected completion within about %d frames, took %d", bound, took)
	}

	tr := h.nav.state.Transform
	if a := engine.AngleBetween(tr.Rotation, target); a >= cfg.Epsilon {
		t.Errorf("Expected orientation within epsilon of the blog face, off by %f", a)
	}
	if !engine.Within(tr.Position, cfg.ContentPositionDesktop, cfg.Epsilon) {
		t.Errorf("Expected docked position, got %v", tr.Position)
	}
	if !near(tr.Scale, cfg.ContentScale, cfg.Epsilon) {
		t.Errorf("Expected content scale, got %f", tr.Scale)
	}

	h.tick(30)
	if len(h.starts) != 1 {
		t.Errorf("Expected navigate:start exactly once, got %d", len(h.starts))
	}
	if h.nav.Snapshot().SelectedFace != "blog" {
		t.Errorf("Expected selected face blog, got %q", h.nav.Snapshot().SelectedFace)
	}
}

func TestPauseEndsTransitionAndResumesAutoRotate(t *testing.T) {
	h := newHarness(t)
	h.selectFace("about")
	h.settle(200)

	h.advance(DefaultConfig().PauseDuration - frameTime)
	if !h.nav.state.Transitioning {
		t.Fatal("Expected transition to hold during the pause")
	}

	h.tick(2)
	s := h.nav.state
	if s.Transitioning || s.TransitionKind != TransitionNone {
		t.Fatalf("Expected transition to end after the pause, got kind %s", s.TransitionKind)
	}
	if s.HasInteracted {
		t.Error("Expected auto-rotation to regain control")
	}
	if s.AutoRotateMultiplier <= 0 {
		t.Errorf("Expected ramp to restart, got multiplier %f", s.AutoRotateMultiplier)
	}
}

func TestCloseReturnsToCenterOnTimer(t *testing.T) {
	h := newHarness(t)
	h.selectFace("blog")
	h.settle(200)

	before := h.nav.state.Transform.Rotation
	if err := h.nav.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if h.closes != 1 {
		t.Errorf("Expected one navigate:close, got %d", h.closes)
	}

	s := &h.nav.state
	if s.TransitionKind != TransitionToCenter || s.SelectedFace != "" {
		t.Fatalf("Expected toCenter with no selection, got %s %q", s.TransitionKind, s.SelectedFace)
	}
	if h.nav.Scheduler().Pending() != 1 {
		t.Errorf("Expected only the close timer pending, got %d", h.nav.Scheduler().Pending())
	}

	h.advance(DefaultConfig().CloseDuration - frameTime)
	if !s.Transitioning {
		t.Fatal("Expected close to run until its timer")
	}
	h.tick(2)
	if s.Transitioning {
		t.Fatal("Expected close to finish once its timer fired")
	}
	if a := engine.AngleBetween(before, s.Transform.Rotation); a > 1e-3 {
		t.Errorf("Expected orientation kept during close, moved %f rad", a)
	}

	// Position and scale finish easing home after the timer.
	h.tick(600)
	if s.Transform.Position != (rl.Vector3{}) || s.Transform.Scale != 1 {
		t.Errorf("Expected rest transform, got %+v", s.Transform)
	}
}

func TestNewSelectionCancelsPendingTimers(t *testing.T) {
	h := newHarness(t)
	h.selectFace("blog")
	h.settle(200)
	if h.nav.state.resumeTimer == nil {
		t.Fatal("Expected a pause timer after settling")
	}
	pause := h.nav.state.resumeTimer

	h.selectFace("about")
	if pause.Pending() {
		t.Error("Expected the blog pause timer to be cancelled")
	}
	if h.nav.Scheduler().Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", h.nav.Scheduler().Pending())
	}

	about, _ := h.nav.Registry().Lookup("about")
	if !sameRotation(h.nav.state.Target.Rotation, about.TargetRotation()) {
		t.Error("Expected target to follow the newer selection")
	}
	if len(h.starts) != 2 {
		t.Errorf("Expected two navigate:start events, got %d", len(h.starts))
	}
}

func TestSelectionDuringCloseDropsCloseTimer(t *testing.T) {
	h := newHarness(t)
	h.selectFace("blog")
	h.settle(200)
	if err := h.nav.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	h.tick(10)
	closeTimer := h.nav.state.resumeTimer

	h.selectFace("about")
	if closeTimer.Pending() {
		t.Error("Expected the close timer to be cancelled")
	}
	if h.nav.Scheduler().Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", h.nav.Scheduler().Pending())
	}

	// Run well past the old close deadline; only epsilon may end the approach.
	s := &h.nav.state
	for i := 0; i < 90; i++ {
		h.tick(1)
		if !s.Transitioning || s.TransitionKind != TransitionToContent {
			t.Fatalf("frame %d: expected the open transition to keep running, got %s", i, s.Phase())
		}
	}
	if !s.Settled {
		h.settle(200)
	}

	about, _ := h.nav.Registry().Lookup("about")
	if a := engine.AngleBetween(s.Transform.Rotation, about.TargetRotation()); a >= DefaultConfig().Epsilon {
		t.Errorf("Expected to settle on about, off by %f", a)
	}
}

func TestLaterSelectionWinsMidTransition(t *testing.T) {
	h := newHarness(t)
	h.selectFace("blog")
	h.tick(10)
	h.selectFace("now")

	h.settle(200)
	now, _ := h.nav.Registry().Lookup("now")
	if a := engine.AngleBetween(h.nav.state.Transform.Rotation, now.TargetRotation()); a >= DefaultConfig().Epsilon {
		t.Errorf("Expected to settle on the later face, off by %f", a)
	}
	if h.nav.state.SelectedFace != "now" {
		t.Errorf("Expected selected face now, got %q", h.nav.state.SelectedFace)
	}
}

func TestUnknownFaceIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.nav.Bus().Publish(engine.FaceSelected{FaceID: "nope"})

	if len(h.starts) != 0 || h.nav.state.Transitioning {
		t.Error("Expected unknown face selection to be a no-op")
	}
	if err := h.nav.Select("nope"); !errors.Is(err, shape.ErrUnknownFace) {
		t.Errorf("Expected ErrUnknownFace, got %v", err)
	}
}

func TestNarrowViewportDocksAbove(t *testing.T) {
	h := newHarness(t, WithViewport(500, 900))
	h.selectFace("contact")

	if got := h.nav.state.Target.Position; got != DefaultConfig().ContentPositionMobile {
		t.Errorf("Expected mobile dock position, got %v", got)
	}

	h.nav.Resize(1400, 900)
	h.selectFace("contact")
	if got := h.nav.state.Target.Position; got != DefaultConfig().ContentPositionDesktop {
		t.Errorf("Expected desktop dock position after resize, got %v", got)
	}
}

func TestSharedBusDeliversToAllNavigatorSubscribers(t *testing.T) {
	bus := engine.NewBus(nil)
	h := newHarness(t, WithBus(bus))

	var seen int
	bus.OnFaceSelected(func(engine.FaceSelected) { seen++ })
	bus.OnFaceSelected(func(engine.FaceSelected) { panic("broken listener") })

	if err := bus.Publish(engine.FaceSelected{FaceID: "about"}); err == nil {
		t.Error("Expected the panicking listener to be reported")
	}
	if seen != 1 || len(h.starts) != 1 {
		t.Errorf("Expected other listeners to run, seen=%d starts=%d", seen, len(h.starts))
	}
}
