package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Framebuffer is the software render target. It is twice as tall as the
// terminal area it covers because every cell shows two pixels.
type Framebuffer struct {
	Width  int
	Height int

	img *image.RGBA
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Clear fills every pixel with c.
func (fb *Framebuffer) Clear(c Color) {
	draw.Draw(fb.img, fb.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// SetPixel writes c at (x, y); writes outside the buffer are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	fb.img.SetRGBA(x, y, c)
}

// GetPixel reads (x, y). Outside the buffer it reports transparent black.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	return fb.img.RGBAAt(x, y)
}

// Image exposes the backing image. It is reused across frames.
func (fb *Framebuffer) Image() *image.RGBA {
	return fb.img
}

// DrawLine rasterizes a 2D segment with Bresenham's algorithm, endpoints
// included.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx, sx := span(x0, x1)
	dy, sy := span(y0, y1)
	dy = -dy
	e := dx + dy

	for x, y := x0, y0; ; {
		fb.SetPixel(x, y, c)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// span returns |b-a| and the unit step from a toward b.
func span(a, b int) (int, int) {
	if b < a {
		return a - b, -1
	}
	return b - a, 1
}

// SavePNG writes the current frame to path. factor > 1 enlarges it with
// nearest-neighbor scaling so individual pixels stay crisp.
func (fb *Framebuffer) SavePNG(path string, factor int) error {
	var out image.Image = fb.img
	if factor > 1 {
		big := image.NewRGBA(image.Rect(0, 0, fb.Width*factor, fb.Height*factor))
		draw.NearestNeighbor.Scale(big, big.Bounds(), fb.img, fb.img.Bounds(), draw.Src, nil)
		out = big
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create screenshot: %w", err)
	}
	if err := png.Encode(f, out); err != nil {
		f.Close()
		return fmt.Errorf("encode screenshot: %w", err)
	}
	return f.Close()
}
