package math3d

import "github.com/go-gl/mathgl/mgl64"

// Mat4 is a column-major 4x4 matrix with the same layout as mgl64.Mat4, so
// the two convert freely. Element (row, col) lives at index col*4+row and
// the translation occupies indices 12-14.
type Mat4 mgl64.Mat4

func (m Mat4) mgl() mgl64.Mat4 { return mgl64.Mat4(m) }

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4(mgl64.Ident4())
}

// Translate returns a translation by v.
func Translate(v Vec3) Mat4 {
	return Mat4(mgl64.Translate3D(v.X, v.Y, v.Z))
}

// Scale returns a per-axis scale.
func Scale(v Vec3) Mat4 {
	return Mat4(mgl64.Scale3D(v.X, v.Y, v.Z))
}

// ScaleUniform returns a uniform scale.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateY returns a rotation of angle radians about +Y.
func RotateY(angle float64) Mat4 {
	return Mat4(mgl64.HomogRotate3DY(angle))
}

// LookAt returns a right-handed view matrix for an eye at eye looking at
// center. Up only has to be non-parallel to the view direction.
func LookAt(eye, center, up Vec3) Mat4 {
	return Mat4(mgl64.LookAtV(eye.mgl(), center.mgl(), up.mgl()))
}

// Perspective returns an OpenGL-style projection mapping the view frustum
// to the [-1, 1] clip cube. fovy is the vertical field of view in radians
// and aspect is width/height.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	return Mat4(mgl64.Perspective(fovy, aspect, near, far))
}

// Mul returns a*b, which applies b first.
func (a Mat4) Mul(b Mat4) Mat4 {
	return Mat4(a.mgl().Mul4(b.mgl()))
}

// MulVec3 transforms v as a point and divides by the resulting w. A zero w
// is left undivided.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(Point(v)).PerspectiveDivide()
}

// MulVec3Dir transforms v as a direction, ignoring translation.
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return fromMgl(mgl64.TransformNormal(v.mgl(), m.mgl()))
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return fromMgl4(m.mgl().Mul4x1(v.mgl()))
}

// Row returns row i as a Vec4.
func (m Mat4) Row(i int) Vec4 {
	return fromMgl4(m.mgl().Row(i))
}
