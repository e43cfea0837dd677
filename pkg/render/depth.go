package render

import "math"

// farDepth marks a pixel nothing has been drawn to.
const farDepth = math.MaxFloat64

// depthBuffer holds one NDC depth per framebuffer pixel; smaller is nearer.
type depthBuffer struct {
	w, h int
	z    []float64
}

func newDepthBuffer(w, h int) depthBuffer {
	d := depthBuffer{w: w, h: h, z: make([]float64, w*h)}
	d.reset()
	return d
}

func (d *depthBuffer) reset() {
	for i := range d.z {
		d.z[i] = farDepth
	}
}

func (d *depthBuffer) in(x, y int) bool {
	return x >= 0 && x < d.w && y >= 0 && y < d.h
}

func (d *depthBuffer) at(x, y int) float64 {
	if !d.in(x, y) {
		return farDepth
	}
	return d.z[y*d.w+x]
}

func (d *depthBuffer) set(x, y int, z float64) {
	if d.in(x, y) {
		d.z[y*d.w+x] = z
	}
}
