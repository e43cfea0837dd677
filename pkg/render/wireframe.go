package render

import (
	"github.com/taigrr/trackball/pkg/math3d"
)

// AxisColors colors the X, Y and Z arms of an axis gizmo.
type AxisColors [3]Color

var (
	WorldAxisColors = AxisColors{ColorRed, ColorGreen, ColorBlue}
	ModelAxisColors = AxisColors{RGB(255, 170, 170), RGB(170, 255, 170), RGB(170, 200, 255)}
)

// Wireframe draws line overlays through a rasterizer's camera.
type Wireframe struct {
	r *Rasterizer
}

// NewWireframe creates a wireframe overlay drawing through r.
func NewWireframe(r *Rasterizer) *Wireframe {
	return &Wireframe{r: r}
}

// DrawAxes draws the three unit axes of transform's frame scaled to length,
// starting at the frame's origin.
func (w *Wireframe) DrawAxes(transform math3d.Mat4, length float64, colors AxisColors) {
	origin := transform.MulVec3(math3d.Zero3())
	axes := [3]math3d.Vec3{math3d.V3(length, 0, 0), math3d.V3(0, length, 0), math3d.V3(0, 0, length)}
	for i, a := range axes {
		w.r.DrawLine3D(origin, transform.MulVec3(a), colors[i])
	}
}
