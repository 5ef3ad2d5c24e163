package camera

import rl "github.com/gen2brain/raylib-go/raylib"

// Responsive breakpoints in viewport pixels.
const (
	NarrowWidth = 768
	MediumWidth = 1200

	baseFOV     = 50.0
	narrowFOV   = 60.0
	baseDepth   = 8.0
	baseHeight  = 2.0
	narrowLookY = -1.0
)

// ViewCamera is a perspective camera looking at the navigable object.
// Its placement depends only on the viewport size.
type ViewCamera struct {
	Position rl.Vector3
	Target   rl.Vector3
	Up       rl.Vector3
	FOV      float32 // vertical, degrees
	Near     float32
	Far      float32

	width  int
	height int
}

func New(width, height int) *ViewCamera {
	c := &ViewCamera{
		Up:   rl.Vector3{X: 0, Y: 1, Z: 0},
		Near: 0.1,
		Far:  100,
	}
	c.Resize(width, height)
	return c
}

// Resize recomputes the projection parameters for a new viewport.
// Non-positive sizes are clamped to 1 pixel.
func (c *ViewCamera) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width = width
	c.height = height

	c.FOV = FOVForWidth(width)
	c.Position = rl.Vector3{X: 0, Y: HeightForWidth(width), Z: DepthForWidth(width)}
	c.Target = rl.Vector3{X: 0, Y: LookAtYForWidth(width), Z: 0}
}

func (c *ViewCamera) Width() int  { return c.width }
func (c *ViewCamera) Height() int { return c.height }

func (c *ViewCamera) Aspect() float32 {
	return float32(c.width) / float32(c.height)
}

func FOVForWidth(width int) float32 {
	if width <= NarrowWidth {
		return narrowFOV
	}
	return baseFOV
}

// DepthForWidth moves the camera back on narrower screens.
func DepthForWidth(width int) float32 {
	switch {
	case width <= NarrowWidth:
		return baseDepth * 1.5
	case width <= MediumWidth:
		return baseDepth * 1.2
	}
	return baseDepth
}

// HeightForWidth raises the camera on narrower screens.
func HeightForWidth(width int) float32 {
	switch {
	case width <= NarrowWidth:
		return baseHeight * 2.5
	case width <= MediumWidth:
		return baseHeight * 1.5
	}
	return baseHeight
}

func LookAtYForWidth(width int) float32 {
	if width <= NarrowWidth {
		return narrowLookY
	}
	return 0
}

func (c *ViewCamera) forward() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3Subtract(c.Target, c.Position))
}

// ScreenRay returns the world-space ray through pixel (x, y), origin at the camera.
func (c *ViewCamera) ScreenRay(x, y float32) rl.Ray {
	return rl.GetScreenToWorldRayEx(rl.Vector2{X: x, Y: y}, c.Raylib(), int32(c.width), int32(c.height))
}

// WorldToScreen projects p to pixel coordinates. ok is false behind the camera.
func (c *ViewCamera) WorldToScreen(p rl.Vector3) (rl.Vector2, bool) {
	if rl.Vector3DotProduct(rl.Vector3Subtract(p, c.Position), c.forward()) <= 0 {
		return rl.Vector2{}, false
	}
	return rl.GetWorldToScreenEx(p, c.Raylib(), int32(c.width), int32(c.height)), true
}

// Raylib converts to the raylib camera used for drawing.
func (c *ViewCamera) Raylib() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     c.Target,
		Up:         c.Up,
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}
