package models

import (
	"math"
	"testing"

	"github.com/taigrr/trackball/pkg/math3d"
)

// boxMesh returns a mesh whose only purpose is its bounds.
func boxMesh(min, max math3d.Vec3) *Mesh {
	m := NewMesh("box")
	m.Vertices = []MeshVertex{
		{Position: min, Normal: math3d.Up()},
		{Position: max, Normal: math3d.Up()},
		{Position: math3d.V3(min.X, max.Y, min.Z), Normal: math3d.Up()},
	}
	m.Faces = []Face{{V: [3]int{0, 1, 2}, Material: -1}}
	m.CalculateBounds()
	return m
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		min, max  math3d.Vec3
		wantScale float64
	}{
		{"already unit", math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1), 1},
		{"large offset", math3d.V3(10, 20, 30), math3d.V3(30, 25, 35), 0.1},
		{"tiny", math3d.V3(0, 0, 0), math3d.V3(0.01, 0.02, 0.005), 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := boxMesh(tc.min, tc.max)
			scale := m.Normalize(2)

			if math.Abs(scale-tc.wantScale) > 1e-9 {
				t.Errorf("scale = %v, want %v", scale, tc.wantScale)
			}
			if c := m.Center(); !c.ApproxEqual(math3d.Zero3(), 1e-9) {
				t.Errorf("center = %v, want origin", c)
			}
			if got := m.Size().MaxComponent(); math.Abs(got-2) > 1e-9 {
				t.Errorf("largest side = %v, want 2", got)
			}
		})
	}
}

func TestNormalizeFlatMesh(t *testing.T) {
	p := math3d.V3(5, 5, 5)
	m := boxMesh(p, p)
	if scale := m.Normalize(2); scale != 1 {
		t.Errorf("scale = %v, want 1 for a degenerate mesh", scale)
	}
	if c := m.Center(); !c.ApproxEqual(math3d.Zero3(), 1e-9) {
		t.Errorf("center = %v, want origin", c)
	}
}

func TestSmoothNormalsAverage(t *testing.T) {
	// Two triangles folded 90° along the Y axis share the edge 0-1.
	m := NewMesh("fold")
	m.Vertices = []MeshVertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(0, 1, 0)},
		{Position: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(0, 0, -1)},
	}
	// Clockwise storage: +Z facing and +X facing.
	m.Faces = []Face{
		{V: [3]int{0, 1, 2}},
		{V: [3]int{0, 1, 3}},
	}
	m.CalculateSmoothNormals()

	want := math3d.V3(1, 0, 1).Normalize()
	if got := m.Vertices[0].Normal; !got.ApproxEqual(want, 1e-9) {
		t.Errorf("shared normal = %v, want %v", got, want)
	}
	if got := m.Vertices[2].Normal; !got.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
		t.Errorf("front-only normal = %v, want +Z", got)
	}
}

func TestFlatNormals(t *testing.T) {
	m := boxMesh(math3d.V3(0, 0, 0), math3d.V3(1, 1, 0))
	m.Vertices[2].Position = math3d.V3(0, 1, 0)
	m.Faces[0].V = [3]int{0, 2, 1}
	m.CalculateFlatNormals()
	for i, v := range m.Vertices {
		if !v.Normal.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
			t.Errorf("vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}
}

func TestTransformUpdatesBounds(t *testing.T) {
	m := boxMesh(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	m.Transform(math3d.Translate(math3d.V3(2, 0, 0)))
	if m.Bounds.Min.X != 1 || m.Bounds.Max.X != 3 {
		t.Errorf("bounds X = [%v, %v], want [1, 3]", m.Bounds.Min.X, m.Bounds.Max.X)
	}
}

func TestEmptyMeshBounds(t *testing.T) {
	m := NewMesh("empty")
	m.CalculateBounds()
	if m.Bounds != (Bounds{}) {
		t.Errorf("empty bounds = %+v", m.Bounds)
	}
}

func BenchmarkSmoothNormals(b *testing.B) {
	m := NewMesh("grid")
	const n = 64
	for y := range n {
		for x := range n {
			m.Vertices = append(m.Vertices, MeshVertex{Position: math3d.V3(float64(x), float64(y), 0)})
		}
	}
	for y := range n - 1 {
		for x := range n - 1 {
			i := y*n + x
			m.Faces = append(m.Faces, Face{V: [3]int{i, i + n, i + 1}}, Face{V: [3]int{i + 1, i + n, i + n + 1}})
		}
	}
	for b.Loop() {
		m.CalculateSmoothNormals()
	}
}
