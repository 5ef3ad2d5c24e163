package engine

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	axisX = rl.Vector3{X: 1, Y: 0, Z: 0}
	axisY = rl.Vector3{X: 0, Y: 1, Z: 0}
	axisZ = rl.Vector3{X: 0, Y: 0, Z: 1}
)

// Transform places the navigable object in scene space.
// Scale is uniform.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    float32
}

func IdentityTransform() Transform {
	return Transform{
		Position: rl.Vector3{},
		Rotation: rl.QuaternionIdentity(),
		Scale:    1,
	}
}

// Apply maps a point from object space to scene space (scale, rotate, translate).
func (t Transform) Apply(p rl.Vector3) rl.Vector3 {
	scaled := rl.Vector3Scale(p, t.Scale)
	return rl.Vector3Add(t.Position, rl.Vector3RotateByQuaternion(scaled, t.Rotation))
}

// QuaternionFromEulerXYZ builds a rotation from angles in radians applied in
// intrinsic X, Y, Z order, the convention face targets are authored in.
func QuaternionFromEulerXYZ(x, y, z float32) rl.Quaternion {
	qx := rl.QuaternionFromAxisAngle(axisX, x)
	qy := rl.QuaternionFromAxisAngle(axisY, y)
	qz := rl.QuaternionFromAxisAngle(axisZ, z)
	return rl.QuaternionNormalize(rl.QuaternionMultiply(rl.QuaternionMultiply(qx, qy), qz))
}

// EulerXYZ is the inverse of QuaternionFromEulerXYZ.
func EulerXYZ(q rl.Quaternion) (x, y, z float32) {
	q = rl.QuaternionNormalize(q)
	m00 := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	m01 := 2 * (q.X*q.Y - q.Z*q.W)
	m02 := 2 * (q.X*q.Z + q.Y*q.W)
	m11 := 1 - 2*(q.X*q.X+q.Z*q.Z)
	m12 := 2 * (q.Y*q.Z - q.X*q.W)
	m21 := 2 * (q.Y*q.Z + q.X*q.W)
	m22 := 1 - 2*(q.X*q.X+q.Y*q.Y)

	m02 = max(-1, min(1, m02))
	y = float32(math.Asin(float64(m02)))
	if abs(m02) < 0.9999999 {
		x = float32(math.Atan2(float64(-m12), float64(m22)))
		z = float32(math.Atan2(float64(-m01), float64(m00)))
	} else {
		x = float32(math.Atan2(float64(m21), float64(m11)))
	}
	return x, y, z
}

// RotateWorld turns q by ax radians about the world X axis and then ay about world Y.
func RotateWorld(q rl.Quaternion, ax, ay float32) rl.Quaternion {
	if ax == 0 && ay == 0 {
		return q
	}
	qx := rl.QuaternionFromAxisAngle(axisX, ax)
	qy := rl.QuaternionFromAxisAngle(axisY, ay)
	return rl.QuaternionNormalize(rl.QuaternionMultiply(qy, rl.QuaternionMultiply(qx, q)))
}

// RotateLocal turns q by angle radians about one of its own axes (0=X, 1=Y, 2=Z).
func RotateLocal(q rl.Quaternion, axis int, angle float32) rl.Quaternion {
	var a rl.Vector3
	switch axis {
	case 0:
		a = axisX
	case 1:
		a = axisY
	default:
		a = axisZ
	}
	return rl.QuaternionNormalize(rl.QuaternionMultiply(q, rl.QuaternionFromAxisAngle(a, angle)))
}

func dot(a, b rl.Quaternion) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Slerp interpolates along the shortest arc from a to b.
func Slerp(a, b rl.Quaternion, t float32) rl.Quaternion {
	if dot(a, b) < 0 {
		b = rl.Quaternion{X: -b.X, Y: -b.Y, Z: -b.Z, W: -b.W}
	}
	return rl.QuaternionNormalize(rl.QuaternionSlerp(a, b, t))
}

// AngleBetween returns the rotation angle in radians separating a and b.
func AngleBetween(a, b rl.Quaternion) float32 {
	d := math.Abs(float64(dot(rl.QuaternionNormalize(a), rl.QuaternionNormalize(b))))
	if d > 1 {
		d = 1
	}
	return float32(2 * math.Acos(d))
}

// Lerp is scalar linear interpolation.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Within reports whether every component of a is within eps of b.
func Within(a, b rl.Vector3, eps float32) bool {
	return abs(a.X-b.X) < eps && abs(a.Y-b.Y) < eps && abs(a.Z-b.Z) < eps
}
