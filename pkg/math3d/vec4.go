package math3d

import "github.com/go-gl/mathgl/mgl64"

// Vec4 is a homogeneous point, usually in clip space.
type Vec4 struct {
	X, Y, Z, W float64
}

// Point lifts p to homogeneous coordinates with W = 1.
func Point(p Vec3) Vec4 {
	return Vec4{p.X, p.Y, p.Z, 1}
}

func (v Vec4) mgl() mgl64.Vec4 { return mgl64.Vec4{v.X, v.Y, v.Z, v.W} }

func fromMgl4(v mgl64.Vec4) Vec4 { return Vec4{v[0], v[1], v[2], v[3]} }

// InFront reports whether a clip-space point lies in front of the camera
// plane. Points behind it must not be divided.
func (v Vec4) InFront() bool {
	return v.W > 0
}

// PerspectiveDivide maps a clip-space point to normalized device
// coordinates. A zero W is returned undivided.
func (v Vec4) PerspectiveDivide() Vec3 {
	if v.W == 0 {
		return Vec3{v.X, v.Y, v.Z}
	}
	return fromMgl(v.mgl().Vec3().Mul(1 / v.W))
}
