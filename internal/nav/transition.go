package nav

import (
	"math"

	"shapenav/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// startTransition replaces whatever moves the object with an eased move to
// target. Pending pause and close timers are dropped.
func (n *Navigator) startTransition(kind TransitionKind, target engine.Transform) {
	s := &n.state

	s.resumeTimer.Cancel()
	s.resumeTimer = nil
	s.idleTimer.Cancel()
	s.idleTimer = nil

	// A selection made mid-drag ends the drag.
	s.Dragging = false
	s.PointerDown = false

	s.Transitioning = true
	s.TransitionKind = kind
	s.Target = target
	s.Settled = false
	s.restPending = false

	s.HasInteracted = true
	s.AutoRotateMultiplier = 0
	s.AngularVelocity = rl.Vector2{}

	if kind == TransitionToCenter {
		s.resumeTimer = n.timers.After(n.cfg.CloseDuration, n.finishTransition)
	}
}

// cancelTransition stops a transition where it is, without resuming auto-rotation.
// An interrupted close still eases position and scale home.
func (n *Navigator) cancelTransition() {
	s := &n.state
	s.resumeTimer.Cancel()
	s.resumeTimer = nil
	if s.TransitionKind == TransitionToCenter {
		s.restPending = true
	}
	s.Transitioning = false
	s.TransitionKind = TransitionNone
	s.Settled = false
}

// stepTransition eases the transform toward the target. A to-content move
// completes when every channel is within epsilon, then holds for the pause.
// A to-center move completes only on its timer.
func (n *Navigator) stepTransition() {
	s := &n.state
	speed := n.speed(s.TransitionKind)

	s.Transform.Rotation = engine.Slerp(s.Transform.Rotation, s.Target.Rotation, speed)
	s.Transform.Position = rl.Vector3Lerp(s.Transform.Position, s.Target.Position, speed)
	s.Transform.Scale = engine.Lerp(s.Transform.Scale, s.Target.Scale, speed)

	if s.TransitionKind != TransitionToContent || s.Settled {
		return
	}
	if !n.converged() {
		return
	}

	s.Settled = true
	s.resumeTimer = n.timers.After(n.cfg.PauseDuration, n.finishTransition)
	n.armIdle()
}

func (n *Navigator) finishTransition() {
	s := &n.state
	s.resumeTimer = nil
	if s.TransitionKind == TransitionToCenter {
		s.restPending = true
	}
	s.Transitioning = false
	s.TransitionKind = TransitionNone
	s.Settled = false
	s.HasInteracted = false
	s.AutoRotateMultiplier = 0
}

func (n *Navigator) converged() bool {
	s := &n.state
	eps := n.cfg.Epsilon
	return engine.AngleBetween(s.Transform.Rotation, s.Target.Rotation) < eps &&
		engine.Within(s.Transform.Position, s.Target.Position, eps) &&
		abs(s.Transform.Scale-s.Target.Scale) < eps
}

// stepRest finishes easing position and scale home after a close whose timer
// ran out before they arrived. Rotation is left to whoever drives it.
func (n *Navigator) stepRest() {
	s := &n.state
	if !s.restPending {
		return
	}
	speed := n.cfg.ToCenterSpeed
	s.Transform.Position = rl.Vector3Lerp(s.Transform.Position, rl.Vector3{}, speed)
	s.Transform.Scale = engine.Lerp(s.Transform.Scale, 1, speed)

	if engine.Within(s.Transform.Position, rl.Vector3{}, restSnap) && abs(s.Transform.Scale-1) < restSnap {
		s.Transform.Position = rl.Vector3{}
		s.Transform.Scale = 1
		s.restPending = false
	}
}

const restSnap = 1e-4

func (n *Navigator) speed(kind TransitionKind) float32 {
	if kind == TransitionToCenter {
		return n.cfg.ToCenterSpeed
	}
	return n.cfg.ToContentSpeed
}

// FrameBound returns how many frames an exponential ease with the given
// per-frame speed needs to shrink distance below eps.
func FrameBound(speed, eps, distance float64) int {
	if distance <= eps {
		return 0
	}
	if speed <= 0 || speed >= 1 || eps <= 0 {
		return math.MaxInt
	}
	return int(math.Ceil(math.Log(eps/distance) / math.Log(1-speed)))
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
