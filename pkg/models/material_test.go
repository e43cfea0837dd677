package models

import (
	"image"
	"testing"
)

func TestBaseColor(t *testing.T) {
	mesh := NewMesh("test")
	if _, ok := mesh.BaseColor(); ok {
		t.Error("mesh without materials reported a base color")
	}

	mesh.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 1}},
	}
	c, ok := mesh.BaseColor()
	if !ok || c != [4]float64{1, 0, 0, 1} {
		t.Errorf("BaseColor() = %v, %v; want red, true", c, ok)
	}
}

func TestBaseColorMapPicksFirstTexture(t *testing.T) {
	mesh := NewMesh("test")
	if mesh.BaseColorMap() != nil {
		t.Error("empty mesh returned a texture")
	}

	tex := image.NewRGBA(image.Rect(0, 0, 4, 4))
	mesh.Materials = []Material{
		{Name: "plain"},
		{Name: "textured", BaseMap: tex},
		{Name: "other", BaseMap: image.NewRGBA(image.Rect(0, 0, 1, 1))},
	}
	if got := mesh.BaseColorMap(); got != image.Image(tex) {
		t.Errorf("BaseColorMap() = %v, want the first textured material", got)
	}
}

func TestMaterialCount(t *testing.T) {
	mesh := NewMesh("test")

	if mesh.MaterialCount() != 0 {
		t.Errorf("Empty mesh should have 0 materials")
	}

	mesh.Materials = make([]Material, 5)
	if mesh.MaterialCount() != 5 {
		t.Errorf("Mesh should have 5 materials, got %d", mesh.MaterialCount())
	}
}
