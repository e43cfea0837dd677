package viewer

import (
	"fmt"
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mattn/go-runewidth"

	"github.com/taigrr/trackball/pkg/math3d"
	"github.com/taigrr/trackball/pkg/trackball"
)

// Action is a user command produced by a key binding.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionCalibrate
	ActionResetCalibrated
	ActionResetDefault
	ActionRollLeft
	ActionRollRight
	ActionToggleReverse
	ActionTogglePanel
	ActionToggleWorldAxes
	ActionToggleModelAxes
	ActionToggleWireframe
	ActionToggleTexture
	ActionToggleSpin
	ActionReload
	ActionScreenshot
	ActionResize
)

// Binding maps keys to an action.
type Binding struct {
	Keys   []string
	Help   string
	Action Action
}

// DefaultBindings is the key map shown in the panel.
var DefaultBindings = []Binding{
	{[]string{"c"}, "c calibrate", ActionCalibrate},
	{[]string{"r"}, "r reset to calibrated", ActionResetCalibrated},
	{[]string{"R", "shift+r", "0"}, "R reset to default", ActionResetDefault},
	{[]string{"q"}, "q roll left", ActionRollLeft},
	{[]string{"e"}, "e roll right", ActionRollRight},
	{[]string{"v"}, "v reverse drag", ActionToggleReverse},
	{[]string{"a"}, "a world axes", ActionToggleWorldAxes},
	{[]string{"m"}, "m model axes", ActionToggleModelAxes},
	{[]string{"w"}, "w wireframe", ActionToggleWireframe},
	{[]string{"t"}, "t texture", ActionToggleTexture},
	{[]string{"space"}, "space spin", ActionToggleSpin},
	{[]string{"l"}, "l reload model", ActionReload},
	{[]string{"s"}, "s screenshot", ActionScreenshot},
	{[]string{"h"}, "h hide panel", ActionTogglePanel},
	{[]string{"esc", "escape", "ctrl+c"}, "esc quit", ActionQuit},
}

// PanelState is everything the panel reads out for one frame.
type PanelState struct {
	FPS         float64
	ModelName   string
	ModelStatus string
	Vertices    int
	Triangles   int
	Scale       float64

	Camera      trackball.Camera
	Drag        trackball.DragState
	Calibration trackball.Calibration
	Reverse     bool
	PointerOver bool

	Spin          bool
	WorldAxes     bool
	ModelAxes     bool
	Wireframe     bool
	Texture       bool
	StatusMessage string
}

// Panel is the control surface drawn over the top-left corner. Pointer
// events inside it belong to the UI and never reach the trackball.
type Panel struct {
	Visible  bool
	Bindings []Binding

	rect uv.Rectangle
}

// NewPanel creates a visible panel with the default key map.
func NewPanel() *Panel {
	return &Panel{Visible: true, Bindings: DefaultBindings}
}

// ActionFor returns the action bound to ev, or ActionNone.
func (p *Panel) ActionFor(ev uv.KeyPressEvent) Action {
	for _, b := range p.Bindings {
		if ev.MatchString(b.Keys...) {
			return b.Action
		}
	}
	return ActionNone
}

// Contains reports whether cell (x, y) lies on the visible panel.
func (p *Panel) Contains(x, y int) bool {
	return p.Visible && image.Pt(x, y).In(p.rect)
}

// Rect returns the area covered by the last layout.
func (p *Panel) Rect() uv.Rectangle {
	return p.rect
}

// Layout sizes the panel for lines, clipped to a width x height screen.
func (p *Panel) Layout(lines []string, width, height int) {
	if !p.Visible {
		p.rect = uv.Rectangle{}
		return
	}
	w := 0
	for _, l := range lines {
		w = max(w, runewidth.StringWidth(l))
	}
	p.rect = uv.Rect(0, 0, min(w+2, width), min(len(lines), height))
}

// Lines formats the read-outs and key help.
func (p *Panel) Lines(st PanelState) []string {
	cam := st.Camera
	lines := []string{
		fmt.Sprintf("%.0f FPS", st.FPS),
		fmt.Sprintf("model: %s (%s)", st.ModelName, st.ModelStatus),
		fmt.Sprintf("  %d verts  %d tris  scale %.3f", st.Vertices, st.Triangles, st.Scale),
		"camera",
		"  pos   " + fmtVec(cam.Position),
		fmt.Sprintf("  dist  %.3f", cam.Distance),
		"  right " + fmtVec(cam.Right),
		"  up    " + fmtVec(cam.Up),
		"  front " + fmtVec(cam.Front),
		"trackball " + mode(st.Reverse),
		"  dragging " + yesNo(st.Drag.Dragging),
	}
	if st.Drag.Dragging {
		lines = append(lines, "  sphere "+fmtVec(st.Drag.CurrentSpherePoint))
	}
	lines = append(lines,
		"  ui has pointer "+yesNo(st.PointerOver),
		"  calibrated "+yesNo(st.Calibration.Calibrated),
	)
	if st.Calibration.Calibrated {
		lines = append(lines, fmt.Sprintf("  calibrated spin %.2f°", st.Calibration.SpinAngle))
	}
	lines = append(lines, fmt.Sprintf("spin %s  axes %s/%s  wire %s  tex %s",
		onOff(st.Spin), onOff(st.WorldAxes), onOff(st.ModelAxes), onOff(st.Wireframe), onOff(st.Texture)))
	if st.StatusMessage != "" {
		lines = append(lines, st.StatusMessage)
	}
	lines = append(lines, "")
	for _, b := range p.Bindings {
		if b.Action == ActionResetCalibrated && !st.Calibration.Calibrated {
			lines = append(lines, b.Help+" (not calibrated)")
			continue
		}
		lines = append(lines, b.Help)
	}
	return lines
}

var (
	panelStyle = uv.Style{Fg: color.RGBA{220, 220, 220, 255}, Bg: color.RGBA{20, 20, 28, 255}}
	titleStyle = uv.Style{Fg: color.RGBA{120, 230, 140, 255}, Bg: color.RGBA{20, 20, 28, 255}}
)

// Draw lays out and paints the panel onto scr.
func (p *Panel) Draw(scr uv.Screen, st PanelState, width, height int) {
	lines := p.Lines(st)
	p.Layout(lines, width, height)
	if !p.Visible {
		return
	}
	for row := p.rect.Min.Y; row < p.rect.Max.Y; row++ {
		style := panelStyle
		if row == 0 {
			style = titleStyle
		}
		drawText(scr, p.rect, row, " "+lines[row], style)
	}
}

// drawText fills one panel row, padding with blanks to the panel width.
func drawText(scr uv.Screen, area uv.Rectangle, row int, s string, style uv.Style) {
	x := area.Min.X
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > area.Max.X {
			break
		}
		scr.SetCell(x, row, &uv.Cell{Content: string(r), Width: w, Style: style})
		x += w
	}
	for ; x < area.Max.X; x++ {
		scr.SetCell(x, row, &uv.Cell{Content: " ", Width: 1, Style: style})
	}
}

func fmtVec(v math3d.Vec3) string {
	return fmt.Sprintf("(%6.3f, %6.3f, %6.3f)", v.X, v.Y, v.Z)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func mode(reverse bool) string {
	if reverse {
		return "reversed"
	}
	return "normal"
}
