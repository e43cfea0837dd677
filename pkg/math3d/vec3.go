// Package math3d provides the vector, matrix and quaternion primitives
// shared by the trackball controller and the software renderer. Storage
// layouts match mgl64 so heavier operations delegate to it.
package math3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a point or direction in world or view space.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Zero3 returns the zero vector.
func Zero3() Vec3 { return Vec3{} }

// Up returns the world up vector (0, 1, 0).
func Up() Vec3 { return Vec3{Y: 1} }

// Forward returns (0, 0, -1), the default camera's view direction.
func Forward() Vec3 { return Vec3{Z: -1} }

// Right returns the world right vector (1, 0, 0).
func Right() Vec3 { return Vec3{X: 1} }

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 { return fromMgl(a.mgl().Add(b.mgl())) }

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 { return fromMgl(a.mgl().Sub(b.mgl())) }

// Scale returns a * s.
func (a Vec3) Scale(s float64) Vec3 { return fromMgl(a.mgl().Mul(s)) }

// Negate returns -a.
func (a Vec3) Negate() Vec3 { return a.Scale(-1) }

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 { return a.mgl().Dot(b.mgl()) }

// Cross returns a × b, right-handed: Forward × Up = Right.
func (a Vec3) Cross(b Vec3) Vec3 { return fromMgl(a.mgl().Cross(b.mgl())) }

// Len returns the length of a.
func (a Vec3) Len() float64 { return a.mgl().Len() }

// LenSq returns the squared length of a.
func (a Vec3) LenSq() float64 { return a.Dot(a) }

// Distance returns the distance between points a and b.
func (a Vec3) Distance(b Vec3) float64 { return a.Sub(b).Len() }

// Normalize returns a unit vector. Unlike mgl64, the zero vector maps to
// itself instead of NaN.
func (a Vec3) Normalize() Vec3 {
	if a.LenSq() == 0 {
		return Vec3{}
	}
	return fromMgl(a.mgl().Normalize())
}

// ApproxEqual compares component-wise within an absolute eps. mgl64's
// threshold compare is relative, which is too strict near zero.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	d := a.Sub(b)
	return math.Abs(d.X) <= eps && math.Abs(d.Y) <= eps && math.Abs(d.Z) <= eps
}

// Min is the component-wise minimum. With Max it grows bounding boxes.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max is the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// MaxComponent returns the largest of X, Y and Z.
func (a Vec3) MaxComponent() float64 {
	return max(a.X, a.Y, a.Z)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return mgl64.Clamp(v, lo, hi)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return mgl64.DegToRad(deg)
}
