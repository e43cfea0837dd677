package render

import (
	"math"

	"github.com/taigrr/trackball/pkg/math3d"
)

// Camera combines a look-at view with a perspective lens. It holds no
// orientation logic; whoever drives it pushes the view in with SetView.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	Up       math3d.Vec3

	FOV         float64 // vertical, radians
	AspectRatio float64 // width / height
	Near, Far   float64

	cache *cameraMatrices
}

// cameraMatrices is dropped whenever a parameter changes and rebuilt on the
// next query.
type cameraMatrices struct {
	view, proj, viewProj math3d.Mat4
}

// NewCamera returns a camera three units down +Z looking at the origin
// through a 45° lens.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 0, 3),
		Target:      math3d.Zero3(),
		Up:          math3d.Up(),
		FOV:         math.Pi / 4,
		AspectRatio: 16.0 / 10.0,
		Near:        0.1,
		Far:         100,
	}
}

// SetView places the eye. Up need not be orthogonal to the view direction.
func (c *Camera) SetView(position, target, up math3d.Vec3) {
	c.Position, c.Target, c.Up = position, target, up
	c.cache = nil
}

func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.cache = nil
}

func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.cache = nil
}

func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near, c.Far = near, far
	c.cache = nil
}

// Forward is the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

func (c *Camera) matrices() *cameraMatrices {
	if c.cache == nil {
		view := math3d.LookAt(c.Position, c.Target, c.Up)
		proj := math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.cache = &cameraMatrices{view: view, proj: proj, viewProj: proj.Mul(view)}
	}
	return c.cache
}

func (c *Camera) ViewMatrix() math3d.Mat4 { return c.matrices().view }

func (c *Camera) ProjectionMatrix() math3d.Mat4 { return c.matrices().proj }

func (c *Camera) ViewProjectionMatrix() math3d.Mat4 { return c.matrices().viewProj }

// Frustum extracts the clip planes of the current view.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}

// WorldToScreen projects p into a width×height pixel grid with y growing
// downward. visible is false for points behind the eye or outside the clip
// volume.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.Point(p))
	if !clip.InFront() {
		return 0, 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	if math.Abs(ndc.X) > 1 || math.Abs(ndc.Y) > 1 || math.Abs(ndc.Z) > 1 {
		return 0, 0, 0, false
	}
	return (ndc.X + 1) * 0.5 * float64(width), (1 - ndc.Y) * 0.5 * float64(height), ndc.Z, true
}
