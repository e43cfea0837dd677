package trackball

import (
	"math"

	"github.com/taigrr/trackball/pkg/math3d"
)

// ToNormalizedCoord maps a pixel position to trackball coordinates: the
// viewport center is (0, 0), the left and right edges are x = -1 and 1, and
// y grows upward (top edge 1, bottom edge -1). A viewport without area maps
// every pixel to the center.
func ToNormalizedCoord(pixel math3d.Vec2, width, height float64) math3d.Vec2 {
	if width <= 0 || height <= 0 {
		return math3d.Vec2{}
	}
	return math3d.V2(
		(2*pixel.X-width)/width,
		(height-2*pixel.Y)/height,
	)
}

// MapToSphere lifts a normalized coordinate onto the virtual trackball and
// returns the unit direction to that point.
//
// Inside d < r²/2 the point lies on the sphere of the given radius. Outside
// it lies on the hyperbolic sheet z = (r²/2)/sqrt(d), which meets the sphere
// at d = r²/2 and keeps far-off points from snapping to the silhouette.
func MapToSphere(coord math3d.Vec2, radius float64) math3d.Vec3 {
	d := coord.LenSq()
	if d == 0 {
		return math3d.V3(0, 0, 1)
	}

	r2 := radius * radius
	var z float64
	if d < r2*0.5 {
		z = math.Sqrt(r2 - d)
	} else {
		z = (r2 * 0.5) / math.Sqrt(d)
	}
	return coord.Lift(z).Normalize()
}
