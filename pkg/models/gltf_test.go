package models

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// writeQuadGLB saves a two-triangle unit quad in the XY plane. When
// textured is set the material carries an embedded 2x2 PNG.
func writeQuadGLB(t *testing.T, textured bool) string {
	t.Helper()

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{
		{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
	})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{
		{0, 1}, {1, 1}, {1, 0}, {0, 0},
	})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})

	mat := &gltf.Material{
		Name: "paint",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 0.5, 0.25, 1},
			MetallicFactor:  gltf.Float(0.2),
			RoughnessFactor: gltf.Float(0.7),
		},
	}
	if textured {
		var buf bytes.Buffer
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		img.Set(0, 0, color.RGBA{255, 0, 0, 255})
		if err := png.Encode(&buf, img); err != nil {
			t.Fatal(err)
		}
		imgIdx, err := modeler.WriteImage(doc, "base", "image/png", &buf)
		if err != nil {
			t.Fatal(err)
		}
		doc.Textures = append(doc.Textures, &gltf.Texture{Source: gltf.Index(imgIdx)})
		mat.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: 0}
	}
	doc.Materials = []*gltf.Material{mat}

	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices:  gltf.Index(idx),
			Material: gltf.Index(0),
			Attributes: gltf.PrimitiveAttributes{
				gltf.POSITION:   pos,
				gltf.TEXCOORD_0: uv,
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "quad", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	return path
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path/model.glb")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestGLTFLoaderDefaults(t *testing.T) {
	loader := NewGLTFLoader()
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
	if !loader.SmoothNormals {
		t.Error("SmoothNormals should default to true")
	}
	if !loader.LoadTextures {
		t.Error("LoadTextures should default to true")
	}
}

func TestLoadQuad(t *testing.T) {
	mesh, err := LoadGLB(writeQuadGLB(t, false))
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	if mesh.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}

	// Winding is reversed on load.
	if got := mesh.GetFace(0); got != [3]int{0, 2, 1} {
		t.Errorf("face 0 = %v, want [0 2 1]", got)
	}

	// The quad faces +Z, so computed normals point at the viewer.
	for i, v := range mesh.Vertices {
		if math.Abs(v.Normal.Z-1) > 1e-9 {
			t.Errorf("vertex %d normal = %v, want (0, 0, 1)", i, v.Normal)
		}
	}

	// V is flipped.
	if uv := mesh.Vertices[0].UV; uv.X != 0 || uv.Y != 0 {
		t.Errorf("vertex 0 uv = %v, want (0, 0)", uv)
	}

	if mesh.Bounds.Min.X != -1 || mesh.Bounds.Max.Y != 1 {
		t.Errorf("bounds = %+v", mesh.Bounds)
	}
}

func TestLoadMaterial(t *testing.T) {
	mesh, err := LoadGLB(writeQuadGLB(t, false))
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}
	if mesh.MaterialCount() != 1 {
		t.Fatalf("MaterialCount = %d, want 1", mesh.MaterialCount())
	}

	mat := mesh.Materials[0]
	if mat.Name != "paint" {
		t.Errorf("Name = %q, want paint", mat.Name)
	}
	if mat.BaseColor != [4]float64{1, 0.5, 0.25, 1} {
		t.Errorf("BaseColor = %v", mat.BaseColor)
	}
	if mat.Metallic != 0.2 || mat.Roughness != 0.7 {
		t.Errorf("Metallic/Roughness = %v/%v, want 0.2/0.7", mat.Metallic, mat.Roughness)
	}
	if mat.BaseMap != nil {
		t.Error("untextured material should have nil BaseMap")
	}
	for i, f := range mesh.Faces {
		if f.Material != 0 {
			t.Errorf("face %d material = %d, want 0", i, f.Material)
		}
	}
}

func TestLoadEmbeddedTexture(t *testing.T) {
	mesh, err := LoadGLB(writeQuadGLB(t, true))
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	img := mesh.BaseColorMap()
	if img == nil {
		t.Fatal("expected embedded texture")
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("texture size = %v, want 2x2", b)
	}
	r, g, _, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g != 0 {
		t.Errorf("texel (0,0) = %d,%d, want red", r>>8, g>>8)
	}
}

func TestLoadSkipsTexturesWhenDisabled(t *testing.T) {
	loader := NewGLTFLoader()
	loader.LoadTextures = false
	mesh, err := loader.Load(writeQuadGLB(t, true))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.BaseColorMap() != nil {
		t.Error("texture decoded with LoadTextures disabled")
	}
}

func TestLoadWithoutGeometry(t *testing.T) {
	doc := gltf.NewDocument()
	path := filepath.Join(t.TempDir(), "empty.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	if _, err := LoadGLB(path); err == nil {
		t.Error("expected error for a file without triangles")
	}
}
