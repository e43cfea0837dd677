package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// MaxTextureSize bounds the longer texture side. Larger images are
// downscaled on load; the terminal never shows that much detail.
const MaxTextureSize = 1024

// Wrap selects how UVs outside [0, 1] are resolved.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
)

// Filter selects the sampling kernel.
type Filter int

const (
	FilterBilinear Filter = iota
	FilterNearest
)

// Texture is an RGBA image sampled with UV coordinates, V pointing up.
type Texture struct {
	Wrap   Wrap
	Filter Filter

	img *image.RGBA
}

func NewTexture(width, height int) *Texture {
	return &Texture{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// LoadTexture decodes a PNG, JPEG, BMP or TIFF file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage copies img, rebased to the origin and shrunk to fit
// MaxTextureSize.
func TextureFromImage(img image.Image) *Texture {
	src := img.Bounds()
	w, h := fitTexture(src.Dx(), src.Dy())
	tex := NewTexture(w, h)
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(tex.img, tex.img.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(tex.img, tex.img.Bounds(), img, src, draw.Src, nil)
	}
	return tex
}

func fitTexture(w, h int) (int, int) {
	longest := max(w, h)
	if longest <= MaxTextureSize {
		return w, h
	}
	return max(1, w*MaxTextureSize/longest), max(1, h*MaxTextureSize/longest)
}

// NewCheckerTexture builds a nearest-filtered checkerboard of size-pixel
// squares, c1 in the top-left corner.
func NewCheckerTexture(width, height, size int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	tex.Filter = FilterNearest
	for y := range height {
		for x := range width {
			c := c1
			if (x/size+y/size)%2 == 1 {
				c = c2
			}
			tex.SetPixel(x, y, c)
		}
	}
	return tex
}

// Size returns the texture dimensions in texels.
func (t *Texture) Size() (int, int) {
	if t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *Texture) SetPixel(x, y int, c Color) {
	t.img.SetRGBA(x, y, c)
}

// GetPixel reads texel (x, y), row 0 on top.
func (t *Texture) GetPixel(x, y int) Color {
	if t.img == nil {
		return Color{}
	}
	return t.img.RGBAAt(x, y)
}

// Sample looks up (u, v). An empty texture samples as transparent black.
func (t *Texture) Sample(u, v float64) Color {
	w, h := t.Size()
	if w == 0 || h == 0 {
		return Color{}
	}
	// Image rows run top-down, V runs bottom-up.
	fx := wrapUV(u, t.Wrap) * float64(w)
	fy := (1 - wrapUV(v, t.Wrap)) * float64(h)

	if t.Filter == FilterNearest {
		return t.GetPixel(min(int(fx), w-1), min(int(fy), h-1))
	}

	fx, fy = fx-0.5, fy-0.5
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := fx-x0, fy-y0
	xa, xb := t.texel(int(x0), w), t.texel(int(x0)+1, w)
	ya, yb := t.texel(int(y0), h), t.texel(int(y0)+1, h)

	top := lerpColor(t.GetPixel(xa, ya), t.GetPixel(xb, ya), tx)
	bottom := lerpColor(t.GetPixel(xa, yb), t.GetPixel(xb, yb), tx)
	return lerpColor(top, bottom, ty)
}

func wrapUV(c float64, mode Wrap) float64 {
	if mode == WrapClamp {
		return math.Max(0, math.Min(1, c))
	}
	return c - math.Floor(c)
}

// texel resolves an integer texel index against the wrap mode.
func (t *Texture) texel(i, n int) int {
	if t.Wrap == WrapClamp {
		return max(0, min(i, n-1))
	}
	return ((i % n) + n) % n
}
