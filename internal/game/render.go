package game

import (
	"shapenav/internal/nav"
	"shapenav/internal/shape"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawShape draws the pyramid for frame f. Triangles are drawn with both
// windings so the object reads the same from either side.
func (g *Game) drawShape(f nav.Frame) {
	mesh := g.nav.Mesh()
	selected := -1
	if f.SelectedFace != "" {
		selected = g.nav.Registry().IndexOf(f.SelectedFace)
	}

	rl.BeginMode3D(g.nav.Camera().Raylib())
	for _, tri := range mesh.Transformed(f.Transform) {
		c := faceColor(tri.Tag, tri.Tag == selected)
		rl.DrawTriangle3D(tri.A, tri.B, tri.C, c)
		rl.DrawTriangle3D(tri.A, tri.C, tri.B, c)

		// Skip the base diagonal
		if tri.Tag == shape.BaseFace {
			rl.DrawLine3D(tri.A, tri.B, colorEdge)
			continue
		}
		rl.DrawLine3D(tri.A, tri.B, colorEdge)
		rl.DrawLine3D(tri.B, tri.C, colorEdge)
		rl.DrawLine3D(tri.C, tri.A, colorEdge)
	}
	rl.EndMode3D()
}

// drawLabels projects each face's label anchor and draws the labels of
// faces turned toward the camera.
func (g *Game) drawLabels(f nav.Frame) {
	mesh := g.nav.Mesh()
	cam := g.nav.Camera()

	for i, face := range g.nav.Registry().Faces() {
		if i >= shape.FaceCount {
			break
		}
		normal := rl.Vector3RotateByQuaternion(mesh.FaceNormal(i), f.Transform.Rotation)
		anchor := f.Transform.Apply(mesh.Anchors[i])
		toCamera := rl.Vector3Normalize(rl.Vector3Subtract(cam.Position, anchor))
		if rl.Vector3DotProduct(normal, toCamera) <= 0 {
			continue
		}

		p, ok := cam.WorldToScreen(anchor)
		if !ok {
			continue
		}
		size := float32(22) * f.Transform.Scale
		w := measureText(uiFont, face.Label, size)

		color := colorTextSecondary
		if face.ID == f.SelectedFace {
			color = colorAccentLight
		}
		drawTextEx(uiFont, face.Label, int32(p.X-w/2), int32(p.Y-size/2), size, color)
	}
}
