package viewer

import (
	"strings"
	"testing"

	"github.com/taigrr/trackball/pkg/trackball"
)

func TestPanelLayoutAndContains(t *testing.T) {
	p := NewPanel()
	p.Layout([]string{"abc", "abcdefgh"}, 80, 24)

	if r := p.Rect(); r.Dx() != 10 || r.Dy() != 2 {
		t.Errorf("Rect() = %v, want 10x2", r)
	}
	if !p.Contains(9, 1) {
		t.Error("Contains(9, 1) = false inside the panel")
	}
	if p.Contains(10, 0) || p.Contains(0, 2) {
		t.Error("Contains is true outside the panel")
	}

	p.Visible = false
	if p.Contains(0, 0) {
		t.Error("hidden panel still owns the pointer")
	}
}

func TestPanelLayoutClipsToScreen(t *testing.T) {
	p := NewPanel()
	p.Layout([]string{strings.Repeat("x", 50), "a", "b", "c"}, 20, 2)
	if r := p.Rect(); r.Dx() != 20 || r.Dy() != 2 {
		t.Errorf("Rect() = %v, want 20x2", r)
	}
}

func TestPanelLines(t *testing.T) {
	p := NewPanel()
	cfg := trackball.DefaultConfig()
	st := PanelState{
		ModelName:   "duck.glb",
		ModelStatus: "loaded",
		Camera:      trackball.NewCamera(cfg.DefaultPosition, cfg.DefaultTarget),
	}

	text := strings.Join(p.Lines(st), "\n")
	for _, want := range []string{"duck.glb (loaded)", "calibrated no", "trackball normal", "(not calibrated)"} {
		if !strings.Contains(text, want) {
			t.Errorf("panel text missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "calibrated spin") {
		t.Error("spin angle shown before calibration")
	}

	st.Calibration = trackball.Calibration{Calibrated: true, SpinAngle: 12.5}
	st.Reverse = true
	st.Drag = trackball.DragState{Dragging: true}
	text = strings.Join(p.Lines(st), "\n")
	for _, want := range []string{"calibrated yes", "calibrated spin 12.50°", "trackball reversed", "sphere"} {
		if !strings.Contains(text, want) {
			t.Errorf("panel text missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "(not calibrated)") {
		t.Error("reset hint still disabled after calibration")
	}
}
