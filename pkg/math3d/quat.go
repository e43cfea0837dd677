package math3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quat is a rotation quaternion. The arithmetic is delegated to mgl64 so the
// rest of the module can stay on Vec3.
type Quat struct {
	q mgl64.Quat
}

// QuatIdent returns the identity rotation.
func QuatIdent() Quat {
	return Quat{mgl64.QuatIdent()}
}

// AngleAxis returns the rotation of angle radians around axis. A zero axis
// yields the identity rotation.
func AngleAxis(angle float64, axis Vec3) Quat {
	n := axis.Normalize()
	if n.LenSq() == 0 {
		return QuatIdent()
	}
	return Quat{mgl64.QuatRotate(angle, n.mgl())}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return fromMgl(q.q.Rotate(v.mgl()))
}

// Mul composes two rotations: the result applies b first, then q.
func (q Quat) Mul(b Quat) Quat {
	return Quat{q.q.Mul(b.q)}
}

// Normalize returns the unit quaternion.
func (q Quat) Normalize() Quat {
	return Quat{q.q.Normalize()}
}

// Angle returns the rotation angle in radians, in [0, 2π].
func (q Quat) Angle() float64 {
	w := Clamp(q.q.Normalize().W, -1, 1)
	return 2 * math.Acos(w)
}

// Mat4 returns the equivalent rotation matrix. mgl64 matrices are
// column-major like Mat4, so the layout carries over unchanged.
func (q Quat) Mat4() Mat4 {
	return Mat4(q.q.Normalize().Mat4())
}

func (a Vec3) mgl() mgl64.Vec3 {
	return mgl64.Vec3{a.X, a.Y, a.Z}
}

func fromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
