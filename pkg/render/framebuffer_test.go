package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.Clear(ColorWhite)
	fb.SetPixel(-1, 0, ColorBlack)
	fb.SetPixel(4, 1, ColorBlack)

	if got := fb.GetPixel(9, 9); got != (Color{}) {
		t.Errorf("out of range read = %v, want zero", got)
	}
	for y := range fb.Height {
		for x := range fb.Width {
			if got := fb.GetPixel(x, y); got != ColorWhite {
				t.Fatalf("pixel (%d, %d) = %v after out-of-range writes", x, y, got)
			}
		}
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"horizontal", 0, 1, 3, 1, [][2]int{{0, 1}, {1, 1}, {2, 1}, {3, 1}}},
		{"diagonal", 3, 3, 0, 0, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"single point", 2, 2, 2, 2, [][2]int{{2, 2}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(5, 5)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, ColorWhite)
			for _, p := range tc.want {
				if fb.GetPixel(p[0], p[1]) != ColorWhite {
					t.Errorf("pixel %v not drawn", p)
				}
			}
			if n := litPixels(fb); n != len(tc.want) {
				t.Errorf("drew %d pixels, want %d", n, len(tc.want))
			}
		})
	}
}

func TestSavePNGScaled(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.SetPixel(1, 0, RGB(200, 0, 0))

	path := filepath.Join(t.TempDir(), "shot.png")
	if err := fb.SavePNG(path, 3); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("size = %v, want 6x3", b)
	}
	if r, _, _, _ := img.At(5, 2).RGBA(); r>>8 != 200 {
		t.Errorf("scaled pixel red = %d, want 200", r>>8)
	}
}
