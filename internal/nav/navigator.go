package nav

import (
	"fmt"
	"log"
	"time"

	"shapenav/internal/camera"
	"shapenav/internal/engine"
	"shapenav/internal/shape"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

// Navigator owns the navigation state and drives it one frame at a time.
// All methods must be called from the same goroutine; use Loop to feed
// input from elsewhere.
type Navigator struct {
	cfg    Config
	state  State
	faces  *shape.Registry
	mesh   shape.Mesh
	camera *camera.ViewCamera

	bus      *engine.Bus
	timers   *engine.Scheduler
	renderer Renderer
	logger   *log.Logger

	width, height int
	frames        uint64
}

type Option func(*Navigator)

// WithBus shares an existing bus instead of creating a private one.
func WithBus(b *engine.Bus) Option {
	return func(n *Navigator) { n.bus = b }
}

func WithRenderer(r Renderer) Option {
	return func(n *Navigator) { n.renderer = r }
}

func WithLogger(l *log.Logger) Option {
	return func(n *Navigator) { n.logger = l }
}

// WithViewport sets the initial viewport size in pixels.
func WithViewport(width, height int) Option {
	return func(n *Navigator) {
		n.width = width
		n.height = height
	}
}

// New builds a Navigator. A nil registry selects shape.DefaultRegistry.
func New(cfg Config, faces *shape.Registry, opts ...Option) (*Navigator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if faces == nil {
		faces = shape.DefaultRegistry()
	}

	n := &Navigator{
		cfg:    cfg,
		faces:  faces,
		timers: engine.NewScheduler(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = log.Default()
	}
	if n.bus == nil {
		n.bus = engine.NewBus(n.logger)
	}

	n.state = newState(cfg)
	n.camera = camera.New(n.width, n.height)
	n.mesh = shape.BuildPyramid(shape.SizeForWidth(n.camera.Width()))

	n.bus.OnFaceSelected(n.onFaceSelected)
	n.bus.OnNavigateClose(n.onNavigateClose)
	return n, nil
}

func (n *Navigator) Config() Config { return n.cfg }
func (n *Navigator) Bus() *engine.Bus { return n.bus }
func (n *Navigator) Camera() *camera.ViewCamera { return n.camera }
func (n *Navigator) Registry() *shape.Registry { return n.faces }
func (n *Navigator) Mesh() *shape.Mesh { return &n.mesh }
func (n *Navigator) Scheduler() *engine.Scheduler { return n.timers }

// SetRenderer replaces the renderer notified at the end of every tick.
func (n *Navigator) SetRenderer(r Renderer) {
	n.renderer = r
}

// Tick advances the engine to now: due timers fire first, then exactly one of
// auto-rotation, transition or momentum moves the object, then the renderer
// sees the result.
func (n *Navigator) Tick(now time.Duration) {
	n.timers.Advance(now)

	s := &n.state
	// HasInteracted flips only on a real drag, so a held pointer that has not
	// moved past the threshold leaves auto-rotation running.
	switch {
	case !s.HasInteracted && n.autoRotateActive():
		n.stepAutoRotate()
	case s.Transitioning:
		n.stepTransition()
	case !s.Dragging:
		n.stepMomentum()
	}
	if !s.Transitioning {
		n.stepRest()
	}

	n.frames++
	if n.renderer != nil {
		n.renderer.Render(n.Snapshot())
	}
}

// Snapshot returns the current state as a Frame.
func (n *Navigator) Snapshot() Frame {
	s := &n.state
	return Frame{
		Seq:                  n.frames,
		Now:                  n.timers.Now(),
		Transform:            s.Transform,
		Phase:                s.Phase(),
		TransitionKind:       s.TransitionKind,
		AngularVelocity:      s.AngularVelocity,
		AutoRotateMultiplier: s.AutoRotateMultiplier,
		HasInteracted:        s.HasInteracted,
		WasDragging:          s.WasDragging,
		DebugMode:            s.DebugMode,
		SelectedFace:         s.SelectedFace,
	}
}

// Resize updates the viewport. The camera, the pick geometry and the dock
// position for later selections follow the new width.
func (n *Navigator) Resize(width, height int) {
	n.camera.Resize(width, height)
	n.mesh = shape.BuildPyramid(shape.SizeForWidth(n.camera.Width()))
}

// Close requests the return to the centered view. Listeners on the bus see
// the request before the object starts moving.
func (n *Navigator) Close() error {
	return n.bus.Publish(engine.NavigateClose{})
}

// Select publishes a selection of the face with id, as a click on it would.
func (n *Navigator) Select(id string) error {
	if _, err := n.faces.Find(id); err != nil {
		return err
	}
	return n.bus.Publish(engine.FaceSelected{FaceID: id})
}

func (n *Navigator) onFaceSelected(e engine.FaceSelected) {
	face, ok := n.faces.Lookup(e.FaceID)
	if !ok {
		n.logger.Printf("[nav] ignoring selection of unknown face %q", e.FaceID)
		return
	}

	n.startTransition(TransitionToContent, engine.Transform{
		Position: n.dockPosition(),
		Rotation: face.TargetRotation(),
		Scale:    n.cfg.ContentScale,
	})
	n.state.SelectedFace = face.ID

	err := n.bus.Publish(engine.NavigateStart{
		FaceID:     face.ID,
		ContentRef: face.ContentRef,
		Label:      face.Label,
	})
	if err != nil {
		n.logger.Printf("[nav] navigate:start %s: %v", face.ID, err)
	}
}

func (n *Navigator) onNavigateClose(engine.NavigateClose) {
	n.startTransition(TransitionToCenter, engine.Transform{
		Position: rl.Vector3{},
		Rotation: n.state.Transform.Rotation,
		Scale:    1,
	})
	n.state.SelectedFace = ""
}

// dockPosition is where the object waits while content is shown.
func (n *Navigator) dockPosition() rl.Vector3 {
	if n.camera.Width() <= n.cfg.MobileBreakpoint {
		return n.cfg.ContentPositionMobile
	}
	return n.cfg.ContentPositionDesktop
}

func (n *Navigator) String() string {
	s := &n.state
	return fmt.Sprintf("nav{phase=%s kind=%s face=%q frame=%d}", s.Phase(), s.TransitionKind, s.SelectedFace, n.frames)
}
