package nav

import (
	"math"

	"shapenav/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PointerDown starts a potential drag at (x, y). It interrupts any running
// transition and pauses auto-rotation.
func (n *Navigator) PointerDown(x, y float32) {
	s := &n.state
	if s.Transitioning {
		n.cancelTransition()
	}

	s.PointerDown = true
	s.Dragging = true
	s.WasDragging = false
	s.anchor = rl.Vector2{X: x, Y: y}
	s.AutoRotateMultiplier = 0

	s.idleTimer.Cancel()
	s.idleTimer = nil
	s.graceTimer.Cancel()
	s.graceTimer = nil
}

// PointerMove rotates the object once the pointer has travelled at least the
// drag threshold from the last anchor. Smaller moves are ignored.
func (n *Navigator) PointerMove(x, y float32) {
	s := &n.state
	if !s.Dragging {
		return
	}

	dx := x - s.anchor.X
	dy := y - s.anchor.Y
	if float32(math.Hypot(float64(dx), float64(dy))) < n.cfg.DragThresholdPx {
		return
	}

	// Vertical motion tilts about world X, horizontal motion spins about world Y.
	v := rl.Vector2{
		X: dy * n.cfg.DragSensitivity,
		Y: -dx * n.cfg.DragSensitivity,
	}
	s.Transform.Rotation = engine.RotateWorld(s.Transform.Rotation, v.X, v.Y)
	s.AngularVelocity = v
	s.anchor = rl.Vector2{X: x, Y: y}

	s.WasDragging = true
	s.HasInteracted = true
	s.AutoRotateMultiplier = 0
}

// PointerUp ends the drag, keeps the last velocity as momentum and restarts
// the idle countdown. A pointer-up without a preceding pointer-down is ignored.
func (n *Navigator) PointerUp() {
	s := &n.state
	if !s.PointerDown {
		return
	}
	s.PointerDown = false
	s.Dragging = false

	if s.WasDragging {
		s.graceTimer.Cancel()
		s.graceTimer = n.timers.After(n.cfg.ClickGrace, func() {
			s.WasDragging = false
			s.graceTimer = nil
		})
	}
	n.armIdle()
}

// Click resolves a primary click at (x, y). The click that ends a drag is
// swallowed.
func (n *Navigator) Click(x, y float32) {
	s := &n.state
	if s.WasDragging {
		s.WasDragging = false
		s.graceTimer.Cancel()
		s.graceTimer = nil
		return
	}
	if s.Dragging {
		return
	}

	id, ok := n.ResolveFace(x, y)
	if !ok {
		return
	}
	if err := n.bus.Publish(engine.FaceSelected{FaceID: id}); err != nil {
		n.logger.Printf("[nav] face:selected %s: %v", id, err)
	}
}

// armIdle restarts the countdown that hands control back to auto-rotation.
func (n *Navigator) armIdle() {
	s := &n.state
	s.idleTimer.Cancel()
	s.idleTimer = n.timers.After(n.cfg.IdleTimeout, func() {
		s.idleTimer = nil
		if s.Transitioning {
			return
		}
		s.HasInteracted = false
		s.AngularVelocity = rl.Vector2{}
	})
}

// stepMomentum keeps the object spinning with the velocity left by the last
// drag and damps it toward rest.
func (n *Navigator) stepMomentum() {
	s := &n.state
	if isZero(s.AngularVelocity) {
		return
	}

	v := s.AngularVelocity
	s.Transform.Rotation = engine.RotateWorld(s.Transform.Rotation, v.X, v.Y)

	v = rl.Vector2Scale(v, n.cfg.VelocityDamping)
	if rl.Vector2Length(v) < n.cfg.RestThreshold {
		v = rl.Vector2{}
	}
	s.AngularVelocity = v
}
