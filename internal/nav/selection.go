package nav

import (
	"shapenav/internal/physics"
)

// ResolveFace maps a viewport point to the id of the face under it.
// Points over the base, over empty space or outside the viewport yield false.
func (n *Navigator) ResolveFace(x, y float32) (string, bool) {
	if x < 0 || y < 0 || x >= float32(n.camera.Width()) || y >= float32(n.camera.Height()) {
		return "", false
	}

	tr := n.state.Transform
	ray := n.camera.ScreenRay(x, y)
	far := n.camera.Far

	if _, ok := physics.RaySphere(ray, tr.Position, n.mesh.Radius*tr.Scale, far); !ok {
		return "", false
	}
	hit, ok := physics.RaycastTriangles(ray, n.mesh.Transformed(tr), far)
	if !ok {
		return "", false
	}

	face, ok := n.faces.At(hit.Tag)
	if !ok {
		return "", false
	}
	return face.ID, true
}
