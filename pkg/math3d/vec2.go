package math3d

// Vec2 is a pixel position, a normalized trackball coordinate or a texture
// coordinate.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 { return Vec2{x, y} }

// LenSq returns the squared length of a.
func (a Vec2) LenSq() float64 { return a.X*a.X + a.Y*a.Y }

// Lift returns a as a Vec3 with the given z.
func (a Vec2) Lift(z float64) Vec3 { return Vec3{a.X, a.Y, z} }
