package nav

import "shapenav/internal/engine"

// Key is a keyboard command understood by the navigator.
type Key int

const (
	KeyNone Key = iota
	KeyDebugToggle
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyRollForward
	KeyRollBack
)

var keyNames = map[string]Key{
	"d":          KeyDebugToggle,
	"D":          KeyDebugToggle,
	"ArrowLeft":  KeyLeft,
	"ArrowRight": KeyRight,
	"ArrowUp":    KeyUp,
	"ArrowDown":  KeyDown,
	"z":          KeyRollForward,
	"Z":          KeyRollForward,
	"x":          KeyRollBack,
	"X":          KeyRollBack,
}

// ParseKey maps a DOM-style key name to a Key.
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}

// Key handles a key press. Arrow and roll keys nudge the orientation about
// the object's own axes, and only in debug mode.
func (n *Navigator) Key(k Key) {
	s := &n.state
	if k == KeyDebugToggle {
		s.DebugMode = !s.DebugMode
		s.AutoRotateMultiplier = 0
		if s.DebugMode {
			n.logger.Printf("[nav] debug mode on")
		} else {
			n.logger.Printf("[nav] debug mode off")
		}
		return
	}
	if !s.DebugMode {
		return
	}

	inc := n.cfg.DebugRotationIncrement
	q := s.Transform.Rotation
	switch k {
	case KeyLeft:
		q = engine.RotateLocal(q, 0, -inc)
	case KeyRight:
		q = engine.RotateLocal(q, 0, inc)
	case KeyUp:
		q = engine.RotateLocal(q, 1, -inc)
	case KeyDown:
		q = engine.RotateLocal(q, 1, inc)
	case KeyRollForward:
		q = engine.RotateLocal(q, 2, inc)
	case KeyRollBack:
		q = engine.RotateLocal(q, 2, -inc)
	default:
		return
	}
	s.Transform.Rotation = q

	x, y, z := engine.EulerXYZ(q)
	n.logger.Printf("[nav] rotation x=%.3f y=%.3f z=%.3f", x, y, z)
}
