package nav

import (
	"time"

	"shapenav/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type TransitionKind int

const (
	TransitionNone TransitionKind = iota
	TransitionToContent
	TransitionToCenter
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionToContent:
		return "toContent"
	case TransitionToCenter:
		return "toCenter"
	}
	return "none"
}

// Phase is the behavior driving the object, derived from the state flags.
type Phase int

const (
	PhaseAutoRotating Phase = iota
	PhaseDragging
	PhaseTransitioning
	PhaseDecaying
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseDecaying:
		return "decaying"
	}
	return "autoRotating"
}

// State is the mutable navigation state. It is owned by a single Navigator
// and only touched from the frame goroutine.
type State struct {
	Transform engine.Transform

	// Per-frame rotation deltas in radians about world X and world Y.
	AngularVelocity rl.Vector2

	PointerDown bool
	Dragging    bool
	WasDragging bool

	// HasInteracted is true while auto-rotation must not drive the object.
	HasInteracted        bool
	AutoRotateEnabled    bool
	AutoRotateMultiplier float32
	DebugMode            bool

	Transitioning  bool
	TransitionKind TransitionKind
	Target         engine.Transform
	// Settled is set once a to-content transition met epsilon and its pause began.
	Settled bool

	SelectedFace string

	// restPending keeps position and scale easing home after a close ended on its timer.
	restPending bool

	anchor rl.Vector2

	idleTimer   *engine.Timer
	resumeTimer *engine.Timer // pause after arrival, or the close deadline
	graceTimer  *engine.Timer
}

func newState(cfg Config) State {
	tr := engine.IdentityTransform()
	r := cfg.InitialRotation
	tr.Rotation = engine.QuaternionFromEulerXYZ(r[0], r[1], r[2])
	return State{
		Transform:         tr,
		Target:            tr,
		AutoRotateEnabled: true,
	}
}

func (s *State) Phase() Phase {
	switch {
	case s.Dragging:
		return PhaseDragging
	case s.Transitioning:
		return PhaseTransitioning
	case s.HasInteracted && !isZero(s.AngularVelocity):
		return PhaseDecaying
	}
	return PhaseAutoRotating
}

func isZero(v rl.Vector2) bool {
	return v.X == 0 && v.Y == 0
}

// Frame is the read-only view of the state handed to renderers once per tick.
type Frame struct {
	Seq       uint64
	Now       time.Duration
	Transform engine.Transform

	Phase                Phase
	TransitionKind       TransitionKind
	AngularVelocity      rl.Vector2
	AutoRotateMultiplier float32
	HasInteracted        bool
	WasDragging          bool
	DebugMode            bool
	SelectedFace         string
}

// Renderer draws one frame. It must not call back into the Navigator.
type Renderer interface {
	Render(Frame)
}

type RendererFunc func(Frame)

func (f RendererFunc) Render(fr Frame) { f(fr) }
