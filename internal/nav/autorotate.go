package nav

import (
	"shapenav/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SetAutoRotate turns the idle spin on or off. Turning it on ramps up from rest.
func (n *Navigator) SetAutoRotate(enabled bool) {
	s := &n.state
	if s.AutoRotateEnabled == enabled {
		return
	}
	s.AutoRotateEnabled = enabled
	s.AutoRotateMultiplier = 0
}

func (n *Navigator) autoRotateActive() bool {
	return n.state.AutoRotateEnabled && !n.state.DebugMode
}

// stepAutoRotate ramps the multiplier toward 1 and spins the object by the
// scaled base speed.
func (n *Navigator) stepAutoRotate() {
	s := &n.state
	s.AutoRotateMultiplier = min(s.AutoRotateMultiplier+n.cfg.AutoRotateIncrement, 1)

	m := s.AutoRotateMultiplier
	s.Transform.Rotation = engine.RotateWorld(s.Transform.Rotation, n.cfg.BaseSpeed.X*m, n.cfg.BaseSpeed.Y*m)
}

// BaseSpeed returns the per-frame auto-rotation at full ramp.
func (n *Navigator) BaseSpeed() rl.Vector2 {
	return n.cfg.BaseSpeed
}

// SetBaseSpeed changes the auto-rotation speed. Negative components are clamped to zero.
func (n *Navigator) SetBaseSpeed(v rl.Vector2) {
	n.cfg.BaseSpeed = rl.Vector2{X: max(v.X, 0), Y: max(v.Y, 0)}
}
