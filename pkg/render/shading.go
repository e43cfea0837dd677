package render

import (
	"math"

	"github.com/taigrr/trackball/pkg/math3d"
)

// Shading is a single point light evaluated per vertex with the
// Blinn-Phong model. Intensities are interpolated across each triangle.
type Shading struct {
	LightPos   math3d.Vec3
	LightColor Color
	ViewPos    math3d.Vec3

	Ambient   float64
	Specular  float64
	Shininess float64
}

// DefaultShading returns a white light above and to the right of the
// default camera.
func DefaultShading() Shading {
	return Shading{
		LightPos:   math3d.V3(1.2, 1.0, 2.0),
		LightColor: ColorWhite,
		ViewPos:    math3d.V3(0, 0, 3),
		Ambient:    0.1,
		Specular:   0.5,
		Shininess:  32,
	}
}

// Intensity returns ambient + diffuse + specular at a world position with
// the given normal.
func (s Shading) Intensity(pos, normal math3d.Vec3) float64 {
	n := normal.Normalize()
	l := s.LightPos.Sub(pos).Normalize()

	ndl := n.Dot(l)
	if ndl <= 0 {
		return s.Ambient
	}

	v := s.ViewPos.Sub(pos).Normalize()
	h := l.Add(v).Normalize()
	spec := s.Specular * math.Pow(math.Max(0, n.Dot(h)), s.Shininess)
	return s.Ambient + ndl + spec
}

// Shade lights a surface color with an intensity from Intensity.
func (s Shading) Shade(base Color, intensity float64) Color {
	return ModulateColor(MultiplyColor(base, intensity), s.LightColor)
}
