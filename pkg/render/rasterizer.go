// Package render is a software rasterizer that draws meshes, lines and
// axes into a half-block terminal framebuffer.
package render

import (
	"math"

	"github.com/taigrr/trackball/pkg/math3d"
)

// Vertex represents a vertex with all attributes needed for rasterization.
type Vertex struct {
	Position math3d.Vec3 // World position
	Normal   math3d.Vec3 // World normal
	UV       math3d.Vec2
	Color    Color
}

// Triangle represents a triangle to be rasterized.
type Triangle struct {
	V [3]Vertex
}

// MeshRenderer is the read side of a mesh. It lets the rasterizer draw
// models without importing the models package.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
	GetBounds() (min, max math3d.Vec3)
}

// Rasterizer handles software triangle rasterization.
type Rasterizer struct {
	camera *Camera
	fb     *Framebuffer
	depth  depthBuffer

	Stats                  Stats
	DisableBackfaceCulling bool
}

// Stats counts what the last frame did.
type Stats struct {
	MeshesTested   int
	MeshesCulled   int
	TrianglesDrawn int
}

// NewRasterizer creates a rasterizer drawing into fb through camera.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera: camera,
		fb:     fb,
	}
	r.Resize()
	return r
}

// SetFramebuffer swaps the render target and resizes the depth buffer.
func (r *Rasterizer) SetFramebuffer(fb *Framebuffer) {
	r.fb = fb
	r.Resize()
}

// Resize matches the depth buffer to the framebuffer.
func (r *Rasterizer) Resize() {
	r.depth = newDepthBuffer(r.Width(), r.Height())
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// BeginFrame clears the depth buffer and the per-frame stats.
func (r *Rasterizer) BeginFrame() {
	r.Stats = Stats{}
	r.depth.reset()
}

// IsVisible tests a local-space box, placed by transform, against the view
// frustum.
func (r *Rasterizer) IsVisible(local AABB, transform math3d.Mat4) bool {
	return r.camera.Frustum().IntersectAABB(local.Transform(transform))
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y float64
	Z    float64 // NDC depth
	InvW float64
}

// project moves a triangle to screen space. It reports false when the
// triangle crosses the camera plane or faces away.
func (r *Rasterizer) project(tri *Triangle) ([3]screenVertex, bool) {
	var sv [3]screenVertex
	viewProj := r.camera.ViewProjectionMatrix()
	w, h := float64(r.Width()), float64(r.Height())

	for i := range 3 {
		clip := viewProj.MulVec4(math3d.Point(tri.V[i].Position))
		if !clip.InFront() {
			return sv, false
		}
		sv[i].InvW = 1 / clip.W
		sv[i].X = (clip.X*sv[i].InvW + 1) * 0.5 * w
		sv[i].Y = (1 - clip.Y*sv[i].InvW) * 0.5 * h // Y flipped
		sv[i].Z = clip.Z * sv[i].InvW
	}

	if !r.DisableBackfaceCulling {
		cross := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
		if cross < 0 {
			return sv, false
		}
	}
	return sv, true
}

// scan calls fn for every covered pixel that passes the depth test, with
// perspective-correct barycentric weights. fn returns the pixel color.
func (r *Rasterizer) scan(sv [3]screenVertex, fn func(b0, b1, b2 float64) Color) {
	a, b, c := sv[0], sv[1], sv[2]
	x0, x1 := pixelSpan(min(a.X, b.X, c.X), max(a.X, b.X, c.X), r.Width())
	y0, y1 := pixelSpan(min(a.Y, b.Y, c.Y), max(a.Y, b.Y, c.Y), r.Height())

	drawn := false
	for y := y0; y <= y1; y++ {
		py := float64(y) + 0.5
		for x := x0; x <= x1; x++ {
			bc := barycentric(a.X, a.Y, b.X, b.Y, c.X, c.Y, float64(x)+0.5, py)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			// Screen-space weights interpolate depth; 1/w-scaled weights
			// interpolate attributes.
			z := bc.X*a.Z + bc.Y*b.Z + bc.Z*c.Z
			pw := math3d.V3(bc.X*a.InvW, bc.Y*b.InvW, bc.Z*c.InvW)
			sum := pw.X + pw.Y + pw.Z
			if sum == 0 || z >= r.depth.at(x, y) {
				continue
			}

			r.depth.set(x, y, z)
			pw = pw.Scale(1 / sum)
			r.fb.SetPixel(x, y, fn(pw.X, pw.Y, pw.Z))
			drawn = true
		}
	}
	if drawn {
		r.Stats.TrianglesDrawn++
	}
}

// DrawTriangle rasterizes a triangle lit per vertex and interpolated
// across its face.
func (r *Rasterizer) DrawTriangle(tri Triangle, shading Shading) {
	sv, ok := r.project(&tri)
	if !ok {
		return
	}

	var lit [3]Color
	for i, v := range tri.V {
		lit[i] = shading.Shade(v.Color, shading.Intensity(v.Position, v.Normal))
	}
	r.scan(sv, func(b0, b1, b2 float64) Color {
		return interpolateColor3(lit[0], lit[1], lit[2], math3d.V3(b0, b1, b2))
	})
}

// DrawTriangleTextured rasterizes a triangle with perspective-correct UVs,
// modulating each texel by the interpolated vertex lighting.
func (r *Rasterizer) DrawTriangleTextured(tri Triangle, tex *Texture, shading Shading) {
	sv, ok := r.project(&tri)
	if !ok {
		return
	}

	var intensity [3]float64
	for i, v := range tri.V {
		intensity[i] = shading.Intensity(v.Position, v.Normal)
	}
	r.scan(sv, func(b0, b1, b2 float64) Color {
		u := b0*tri.V[0].UV.X + b1*tri.V[1].UV.X + b2*tri.V[2].UV.X
		v := b0*tri.V[0].UV.Y + b1*tri.V[1].UV.Y + b2*tri.V[2].UV.Y
		i := b0*intensity[0] + b1*intensity[1] + b2*intensity[2]
		return shading.Shade(tex.Sample(u, v), i)
	})
}

// cull runs the frustum test for a whole mesh and records the result.
func (r *Rasterizer) cull(mesh MeshRenderer, transform math3d.Mat4) bool {
	r.Stats.MeshesTested++
	lo, hi := mesh.GetBounds()
	if !r.IsVisible(NewAABB(lo, hi), transform) {
		r.Stats.MeshesCulled++
		return true
	}
	return false
}

// worldTriangle fetches face i, placed by transform. Normals are carried
// by the rotation part only; model transforms here scale uniformly.
func worldTriangle(mesh MeshRenderer, i int, transform math3d.Mat4, color Color) Triangle {
	face := mesh.GetFace(i)
	var tri Triangle
	for k := range 3 {
		p, n, uv := mesh.GetVertex(face[k])
		tri.V[k] = Vertex{
			Position: transform.MulVec3(p),
			Normal:   transform.MulVec3Dir(n).Normalize(),
			UV:       uv,
			Color:    color,
		}
	}
	return tri
}

// DrawMesh renders a mesh in a single color. It returns false when the mesh
// was culled.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, transform math3d.Mat4, color Color, shading Shading) bool {
	if r.cull(mesh, transform) {
		return false
	}
	for i := range mesh.TriangleCount() {
		r.DrawTriangle(worldTriangle(mesh, i, transform, color), shading)
	}
	return true
}

// DrawMeshTextured renders a textured mesh. It returns false when the mesh
// was culled.
func (r *Rasterizer) DrawMeshTextured(mesh MeshRenderer, transform math3d.Mat4, tex *Texture, shading Shading) bool {
	if r.cull(mesh, transform) {
		return false
	}
	for i := range mesh.TriangleCount() {
		r.DrawTriangleTextured(worldTriangle(mesh, i, transform, ColorWhite), tex, shading)
	}
	return true
}

// DrawMeshWireframe renders every triangle edge. Edges are not depth
// tested.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshRenderer, transform math3d.Mat4, color Color) bool {
	if r.cull(mesh, transform) {
		return false
	}
	for i := range mesh.TriangleCount() {
		tri := worldTriangle(mesh, i, transform, color)
		r.DrawLine3D(tri.V[0].Position, tri.V[1].Position, color)
		r.DrawLine3D(tri.V[1].Position, tri.V[2].Position, color)
		r.DrawLine3D(tri.V[2].Position, tri.V[0].Position, color)
	}
	return true
}

// DrawLine3D projects a world-space segment and draws it. Segments with an
// end behind the camera are dropped.
func (r *Rasterizer) DrawLine3D(a, b math3d.Vec3, color Color) {
	viewProj := r.camera.ViewProjectionMatrix()
	ca := viewProj.MulVec4(math3d.Point(a))
	cb := viewProj.MulVec4(math3d.Point(b))
	if !ca.InFront() || !cb.InFront() {
		return
	}

	w, h := float64(r.Width()), float64(r.Height())
	pa, pb := ca.PerspectiveDivide(), cb.PerspectiveDivide()
	r.fb.DrawLine(
		int((pa.X+1)*0.5*w), int((1-pa.Y)*0.5*h),
		int((pb.X+1)*0.5*w), int((1-pb.Y)*0.5*h),
		color,
	)
}

// barycentric returns the weights of (px, py) against the triangle. A
// degenerate triangle yields all -1 so no pixel is covered.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	area := edge(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return math3d.V3(-1, -1, -1)
	}
	w0 := edge(x1, y1, x2, y2, px, py) / area
	w1 := edge(x2, y2, x0, y0, px, py) / area
	return math3d.V3(w0, w1, 1-w0-w1)
}

// edge is twice the signed area of triangle (a, b, p).
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// pixelSpan clips the float range [lo, hi] to pixel indices in [0, n).
func pixelSpan(lo, hi float64, n int) (int, int) {
	return int(math.Max(0, math.Floor(lo))), int(math.Min(float64(n-1), math.Ceil(hi)))
}
