package trackball

import (
	"github.com/taigrr/trackball/pkg/math3d"
)

// Basis vectors whose length drifts outside [basisMinLen, basisMaxLen] are
// rebuilt from Front.
const (
	basisMinLen = 0.9
	basisMaxLen = 1.1
)

// Camera is the orbit state driven by the trackball.
//
// Front always points from Position to Target. Right and Up are carried
// across rotations, never recomputed from a world up vector, so the view can
// pass over the poles.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	Distance float64

	Front math3d.Vec3
	Right math3d.Vec3
	Up    math3d.Vec3
}

// NewCamera places a camera at position looking at target with a basis
// derived from the world up axis.
func NewCamera(position, target math3d.Vec3) Camera {
	c := Camera{
		Position: position,
		Target:   target,
		Distance: position.Distance(target),
	}
	c.DeriveFrontFromTarget()
	c.ResetBasis(math3d.Up())
	return c
}

// DeriveFrontFromTarget recomputes Front from Position and Target.
func (c *Camera) DeriveFrontFromTarget() {
	c.Front = c.Target.Sub(c.Position).Normalize()
}

// RepairBasisIfDegenerate rebuilds Right and Up from Front when either has
// drifted away from unit length. Any roll carried in the old Up survives only
// as far as the cross products preserve it. Reports whether a repair ran.
func (c *Camera) RepairBasisIfDegenerate() bool {
	rl, ul := c.Right.Len(), c.Up.Len()
	if rl >= basisMinLen && rl <= basisMaxLen && ul >= basisMinLen && ul <= basisMaxLen {
		return false
	}
	c.Right = c.Front.Cross(c.Up).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
	return true
}

// ResetBasis discards the carried Right and Up and derives them from Front
// and worldUp. If Front is parallel to worldUp the world Z axis stands in.
func (c *Camera) ResetBasis(worldUp math3d.Vec3) {
	right := c.Front.Cross(worldUp)
	if right.LenSq() < 1e-12 {
		right = c.Front.Cross(math3d.V3(0, 0, 1))
	}
	c.Right = right.Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// ViewMatrix returns the world-to-view transform for this camera.
func (c Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Position, c.Target, c.Up)
}
