// Package models holds triangle meshes and their glTF loader.
package models

import (
	"image"

	"github.com/taigrr/trackball/pkg/math3d"
)

// Mesh is an indexed triangle list. Faces wind clockwise when seen from
// outside, the convention the rasterizer culls with.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	Bounds Bounds
}

type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face indexes three vertices. Material is -1 for untextured geometry.
type Face struct {
	V        [3]int
	Material int
}

// Material keeps the parts of a glTF metallic-roughness material the
// viewer can show.
type Material struct {
	Name      string
	BaseColor [4]float64 // linear RGBA, 0-1
	Metallic  float64
	Roughness float64
	BaseMap   image.Image
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Min, Max math3d.Vec3
}

func (b Bounds) Center() math3d.Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

func (b Bounds) Size() math3d.Vec3 { return b.Max.Sub(b.Min) }

func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds refreshes Bounds from the vertices. An empty mesh gets a
// zero box at the origin.
func (m *Mesh) CalculateBounds() {
	var b Bounds
	for i, v := range m.Vertices {
		if i == 0 {
			b = Bounds{v.Position, v.Position}
			continue
		}
		b.Min, b.Max = b.Min.Min(v.Position), b.Max.Max(v.Position)
	}
	m.Bounds = b
}

func (m *Mesh) Center() math3d.Vec3 { return m.Bounds.Center() }
func (m *Mesh) Size() math3d.Vec3   { return m.Bounds.Size() }

func (m *Mesh) TriangleCount() int { return len(m.Faces) }
func (m *Mesh) VertexCount() int   { return len(m.Vertices) }
func (m *Mesh) MaterialCount() int { return len(m.Materials) }

// CalculateSmoothNormals averages the face normals around each vertex.
// Unnormalized face normals are summed so larger faces weigh more.
func (m *Mesh) CalculateSmoothNormals() {
	sums := make([]math3d.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		n := m.faceNormal(f)
		for _, vi := range f.V {
			sums[vi] = sums[vi].Add(n)
		}
	}
	for i, n := range sums {
		m.Vertices[i].Normal = n.Normalize()
	}
}

// CalculateFlatNormals assigns face normals directly. A vertex shared by
// several faces keeps the last one written.
func (m *Mesh) CalculateFlatNormals() {
	for _, f := range m.Faces {
		n := m.faceNormal(f).Normalize()
		m.Vertices[f.V[0]].Normal = n
		m.Vertices[f.V[1]].Normal = n
		m.Vertices[f.V[2]].Normal = n
	}
}

// faceNormal is the area-scaled normal of a clockwise face.
func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	a := m.Vertices[f.V[0]].Position
	e1 := m.Vertices[f.V[1]].Position.Sub(a)
	e2 := m.Vertices[f.V[2]].Position.Sub(a)
	return e2.Cross(e1)
}

// Transform moves every vertex by mat and refreshes the bounds. Normals only
// see the linear part, so non-uniform scales will skew them.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mat.MulVec3(v.Position)
		v.Normal = mat.MulVec3Dir(v.Normal).Normalize()
	}
	m.CalculateBounds()
}

// Normalize recenters the mesh on the origin and scales it so the longest
// side of its box is targetSize. It returns the scale used; flat and empty
// meshes are only recentered and report 1.
func (m *Mesh) Normalize(targetSize float64) float64 {
	m.CalculateBounds()
	scale := 1.0
	if longest := m.Size().MaxComponent(); longest > 0 {
		scale = targetSize / longest
	}
	m.Transform(math3d.ScaleUniform(scale).Mul(math3d.Translate(m.Center().Negate())))
	return scale
}

// BaseColorMap is the first material texture found, or nil.
func (m *Mesh) BaseColorMap() image.Image {
	for _, mat := range m.Materials {
		if mat.BaseMap != nil {
			return mat.BaseMap
		}
	}
	return nil
}

// BaseColor reports the first material's color; ok is false without
// materials.
func (m *Mesh) BaseColor() (c [4]float64, ok bool) {
	if len(m.Materials) == 0 {
		return c, false
	}
	return m.Materials[0].BaseColor, true
}

// The accessors below satisfy render.MeshRenderer.

func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := &m.Vertices[i]
	return v.Position, v.Normal, v.UV
}

func (m *Mesh) GetFace(i int) [3]int { return m.Faces[i].V }

func (m *Mesh) GetBounds() (lo, hi math3d.Vec3) { return m.Bounds.Min, m.Bounds.Max }
