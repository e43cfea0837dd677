package render

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func TestTextureSampleNearest(t *testing.T) {
	tex := NewCheckerTexture(2, 2, 1, ColorWhite, ColorBlack)

	tests := []struct {
		name string
		u, v float64
		want Color
	}{
		// V = 0 is the bottom row; row 1 starts with black.
		{"bottom left", 0.25, 0.25, ColorBlack},
		{"bottom right", 0.75, 0.25, ColorWhite},
		{"top left", 0.25, 0.75, ColorWhite},
		{"wraps", 1.25, 0.75, ColorWhite},
		{"wraps negative", -0.25, 0.75, ColorBlack},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestTextureSampleClamp(t *testing.T) {
	tex := NewCheckerTexture(2, 2, 1, ColorWhite, ColorBlack)
	tex.Wrap = WrapClamp
	if got := tex.Sample(5, 5); got != tex.GetPixel(1, 0) {
		t.Errorf("clamped sample = %v, want top-right texel", got)
	}
}

func TestTextureSampleBilinear(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.Wrap = WrapClamp
	tex.SetPixel(0, 0, RGB(0, 0, 0))
	tex.SetPixel(1, 0, RGB(200, 200, 200))

	got := tex.Sample(0.5, 0.5)
	if got.R < 90 || got.R > 110 {
		t.Errorf("midpoint sample = %v, want about 100", got)
	}
}

func TestTextureEmpty(t *testing.T) {
	if got := (&Texture{}).Sample(0.5, 0.5); got != (Color{}) {
		t.Errorf("empty texture sample = %v", got)
	}
}

func TestLoadTexture(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(RGB(10, 20, 30))
	fb.SetPixel(2, 1, RGB(200, 0, 0))

	path := filepath.Join(t.TempDir(), "tex.png")
	if err := fb.SavePNG(path, 1); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if w, h := tex.Size(); w != 3 || h != 2 {
		t.Fatalf("size = %dx%d, want 3x2", w, h)
	}
	if got := tex.GetPixel(2, 1); got != RGB(200, 0, 0) {
		t.Errorf("pixel = %v, want red", got)
	}

	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTextureFromImageOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 6))
	img.Set(6, 5, color.RGBA{1, 2, 3, 255})

	tex := TextureFromImage(img)
	if got := tex.GetPixel(1, 0); got != (Color{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("pixel = %v, want {1 2 3 255}", got)
	}
}

func TestTextureFromImageDownscales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2*MaxTextureSize, MaxTextureSize/2))
	tex := TextureFromImage(img)
	if w, h := tex.Size(); w != MaxTextureSize || h != MaxTextureSize/4 {
		t.Errorf("size = %dx%d, want %dx%d", w, h, MaxTextureSize, MaxTextureSize/4)
	}
}
