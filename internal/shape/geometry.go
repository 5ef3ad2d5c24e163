package shape

import (
	"shapenav/internal/camera"
	"shapenav/internal/engine"
	"shapenav/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	PyramidEdge = 3.0

	pyramidSizeBase   = 0.6
	apexHeightFactor  = 1.8
	centroidFactor    = 0.6
	labelOffsetFactor = 1.1
	baseLabelFactor   = 0.85

	// BaseFace is the tag of the square base.
	BaseFace  = 4
	FaceCount = 5
)

// Mesh is the pick geometry of the square pyramid in object space.
// Labels are overlays and are deliberately not part of Triangles.
type Mesh struct {
	Triangles []physics.Triangle
	Anchors   [FaceCount]rl.Vector3 // label position per face
	Radius    float32               // bounding sphere around the origin
}

// SizeForWidth returns the half-extent of the pyramid base for a viewport width.
func SizeForWidth(width int) float32 {
	switch {
	case width <= camera.NarrowWidth:
		return PyramidEdge * pyramidSizeBase
	case width <= camera.MediumWidth:
		return PyramidEdge * pyramidSizeBase * 0.85
	}
	return PyramidEdge * pyramidSizeBase
}

// BuildPyramid builds a square pyramid with base half-extent size, offset so
// its centroid sits at the origin. Tags: 0 front, 1 right, 2 back, 3 left, 4 base.
func BuildPyramid(size float32) Mesh {
	baseY := -size + centroidFactor*size
	apexY := -size + apexHeightFactor*size + centroidFactor*size

	v := [5]rl.Vector3{
		{X: size, Y: baseY, Z: size},   // front-right
		{X: size, Y: baseY, Z: -size},  // back-right
		{X: -size, Y: baseY, Z: -size}, // back-left
		{X: -size, Y: baseY, Z: size},  // front-left
		{X: 0, Y: apexY, Z: 0},         // apex
	}

	sides := [4][3]int{
		{4, 3, 0},
		{4, 0, 1},
		{4, 1, 2},
		{4, 2, 3},
	}

	m := Mesh{}
	for tag, idx := range sides {
		a, b, c := v[idx[0]], v[idx[1]], v[idx[2]]
		m.Triangles = append(m.Triangles, physics.Triangle{A: a, B: b, C: c, Tag: tag})

		center := rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(a, b), c), 1.0/3)
		m.Anchors[tag] = rl.Vector3Scale(rl.Vector3Normalize(center), size*labelOffsetFactor)
	}

	// Base quad 0-3-2-1 split in two
	m.Triangles = append(m.Triangles,
		physics.Triangle{A: v[0], B: v[3], C: v[2], Tag: BaseFace},
		physics.Triangle{A: v[0], B: v[2], C: v[1], Tag: BaseFace},
	)
	baseCenter := rl.Vector3{X: 0, Y: baseY, Z: 0}
	m.Anchors[BaseFace] = rl.Vector3Scale(rl.Vector3Normalize(baseCenter), size*labelOffsetFactor*baseLabelFactor)

	for _, p := range v {
		if l := rl.Vector3Length(p); l > m.Radius {
			m.Radius = l
		}
	}
	return m
}

// Transformed returns the triangles placed in scene space by t.
func (m *Mesh) Transformed(t engine.Transform) []physics.Triangle {
	out := make([]physics.Triangle, len(m.Triangles))
	for i, tri := range m.Triangles {
		out[i] = physics.Triangle{
			A:   t.Apply(tri.A),
			B:   t.Apply(tri.B),
			C:   t.Apply(tri.C),
			Tag: tri.Tag,
		}
	}
	return out
}

// FaceNormal returns the outward unit normal of the face with the given tag in
// object space, averaged over its triangles.
func (m *Mesh) FaceNormal(tag int) rl.Vector3 {
	var sum rl.Vector3
	for _, tri := range m.Triangles {
		if tri.Tag != tag {
			continue
		}
		n := rl.Vector3CrossProduct(rl.Vector3Subtract(tri.B, tri.A), rl.Vector3Subtract(tri.C, tri.A))
		sum = rl.Vector3Add(sum, n)
	}
	n := rl.Vector3Normalize(sum)
	// The origin is inside the pyramid, so outward normals point away from it.
	if rl.Vector3DotProduct(n, m.FaceCenter(tag)) < 0 {
		n = rl.Vector3Negate(n)
	}
	return n
}

// FaceCenter returns the mean of the face's triangle centroids in object space.
func (m *Mesh) FaceCenter(tag int) rl.Vector3 {
	var sum rl.Vector3
	n := 0
	for _, tri := range m.Triangles {
		if tri.Tag != tag {
			continue
		}
		c := rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(tri.A, tri.B), tri.C), 1.0/3)
		sum = rl.Vector3Add(sum, c)
		n++
	}
	if n == 0 {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(sum, 1/float32(n))
}
