package render

import (
	"math"
	"testing"

	"github.com/taigrr/trackball/pkg/math3d"
)

func TestCameraWorldToScreen(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(2)

	x, y, _, ok := cam.WorldToScreen(math3d.Zero3(), 200, 100)
	if !ok {
		t.Fatal("target should be visible")
	}
	if math.Abs(x-100) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("target at (%v, %v), want screen center", x, y)
	}

	// World +Y projects upward on screen.
	_, yUp, _, _ := cam.WorldToScreen(math3d.V3(0, 0.5, 0), 200, 100)
	if yUp >= y {
		t.Errorf("point above target at y=%v, want < %v", yUp, y)
	}

	if _, _, _, ok := cam.WorldToScreen(math3d.V3(0, 0, 10), 200, 100); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestCameraSetViewRolled(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(1)
	// Up along +X: world +X now appears at the top of the screen.
	cam.SetView(math3d.V3(0, 0, 3), math3d.Zero3(), math3d.Right())

	_, y, _, ok := cam.WorldToScreen(math3d.V3(0.5, 0, 0), 100, 100)
	if !ok || y >= 50 {
		t.Errorf("+X projected to y=%v (visible %v), want upper half", y, ok)
	}
}

func TestCameraMatrixCaching(t *testing.T) {
	cam := NewCamera()
	before := cam.ViewProjectionMatrix()

	cam.SetAspectRatio(0.5)
	if cam.ViewProjectionMatrix() == before {
		t.Error("view-projection not refreshed after SetAspectRatio")
	}

	cam.ViewMatrix()
	cam.SetView(math3d.V3(1, 0, 3), math3d.Zero3(), math3d.Up())
	cam.ViewMatrix() // refresh view alone
	want := cam.ProjectionMatrix().Mul(cam.ViewMatrix())
	if cam.ViewProjectionMatrix() != want {
		t.Error("view-projection stale after view-only refresh")
	}
}

func TestCameraForward(t *testing.T) {
	cam := NewCamera()
	if f := cam.Forward(); !f.ApproxEqual(math3d.Forward(), 1e-12) {
		t.Errorf("Forward() = %v, want %v", f, math3d.Forward())
	}
}
