package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Triangle is one pickable triangle. Tag identifies the logical face it belongs to.
type Triangle struct {
	A, B, C rl.Vector3
	Tag     int
}

type RaycastHit struct {
	Tag      int
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

const parallelEpsilon = 1e-7

// RaycastTriangles returns the closest triangle hit along the ray. Triangles are
// double-sided. The ray direction does not need to be normalized.
func RaycastTriangles(ray rl.Ray, tris []Triangle, maxDistance float32) (RaycastHit, bool) {
	direction := rl.Vector3Normalize(ray.Direction)
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	for _, tri := range tris {
		if hitInfo, ok := raycastTriangle(ray.Position, direction, tri, maxDistance); ok {
			if hitInfo.Distance < closestHit.Distance {
				closestHit = hitInfo
				hit = true
			}
		}
	}

	return closestHit, hit
}

// raycastTriangle is the Moller-Trumbore test.
func raycastTriangle(origin, direction rl.Vector3, tri Triangle, maxDistance float32) (RaycastHit, bool) {
	edge1 := rl.Vector3Subtract(tri.B, tri.A)
	edge2 := rl.Vector3Subtract(tri.C, tri.A)

	p := rl.Vector3CrossProduct(direction, edge2)
	det := rl.Vector3DotProduct(edge1, p)
	if abs(det) < parallelEpsilon {
		return RaycastHit{}, false
	}
	invDet := 1 / det

	s := rl.Vector3Subtract(origin, tri.A)
	u := rl.Vector3DotProduct(s, p) * invDet
	if u < 0 || u > 1 {
		return RaycastHit{}, false
	}

	q := rl.Vector3CrossProduct(s, edge1)
	v := rl.Vector3DotProduct(direction, q) * invDet
	if v < 0 || u+v > 1 {
		return RaycastHit{}, false
	}

	t := rl.Vector3DotProduct(edge2, q) * invDet
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3CrossProduct(edge1, edge2))
	// Face the normal back toward the ray for back-side hits
	if rl.Vector3DotProduct(normal, direction) > 0 {
		normal = rl.Vector3Negate(normal)
	}

	return RaycastHit{Tag: tri.Tag, Point: point, Normal: normal, Distance: t}, true
}

// RaySphere reports whether the ray passes within radius of center, ahead of the origin.
// Used as a cheap broadphase before the per-triangle test.
func RaySphere(ray rl.Ray, center rl.Vector3, radius, maxDistance float32) (float32, bool) {
	direction := rl.Vector3Normalize(ray.Direction)
	oc := rl.Vector3Subtract(ray.Position, center)
	a := rl.Vector3DotProduct(direction, direction)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}

	t := (-b - float32(math.Sqrt(float64(discriminant)))) / (2 * a)
	if t < 0 {
		t = (-b + float32(math.Sqrt(float64(discriminant)))) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
