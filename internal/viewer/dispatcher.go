package viewer

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/trackball/pkg/math3d"
	"github.com/taigrr/trackball/pkg/trackball"
)

// Dispatcher translates terminal events into controller calls and panel
// actions. It also reports the viewport size the controller maps pointer
// positions against.
//
// Pointer cells are converted to framebuffer pixels, two per cell
// vertically, so the virtual sphere is round on screen.
type Dispatcher struct {
	ctrl  *trackball.Controller
	panel *Panel

	cols, rows  int
	pointerOver bool
}

// NewDispatcher creates a dispatcher for a cols x rows terminal. The
// controller is attached with Attach once it exists, since the controller
// needs the dispatcher as its viewport.
func NewDispatcher(panel *Panel, cols, rows int) *Dispatcher {
	return &Dispatcher{panel: panel, cols: cols, rows: rows}
}

// Attach sets the controller that receives pointer input.
func (d *Dispatcher) Attach(ctrl *trackball.Controller) {
	d.ctrl = ctrl
}

// Size implements trackball.Viewport in framebuffer pixels.
func (d *Dispatcher) Size() (width, height int) {
	return d.cols, d.rows * 2
}

// Cells returns the terminal size in cells.
func (d *Dispatcher) Cells() (cols, rows int) {
	return d.cols, d.rows
}

// PointerOverUI reports whether the last pointer event landed on the panel.
func (d *Dispatcher) PointerOverUI() bool {
	return d.pointerOver
}

func (d *Dispatcher) pointer(x, y int) trackball.PointerEvent {
	d.pointerOver = d.panel.Contains(x, y)
	return trackball.PointerEvent{
		Pos:    math3d.V2(float64(x)+0.5, float64(y*2)+1),
		OverUI: d.pointerOver,
	}
}

// Handle processes one event and returns the action the app has to carry
// out, if any.
func (d *Dispatcher) Handle(ev uv.Event) Action {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		d.cols, d.rows = ev.Width, ev.Height
		return ActionResize

	case uv.KeyPressEvent:
		return d.panel.ActionFor(ev)

	case uv.MouseClickEvent:
		if ev.Button == uv.MouseLeft && d.ctrl != nil {
			d.ctrl.PointerDown(d.pointer(ev.X, ev.Y))
		}

	case uv.MouseMotionEvent:
		p := d.pointer(ev.X, ev.Y)
		if d.ctrl != nil {
			d.ctrl.PointerMove(p)
		}

	case uv.MouseReleaseEvent:
		d.pointer(ev.X, ev.Y)
		if d.ctrl != nil {
			d.ctrl.PointerUp()
		}

	case uv.MouseWheelEvent:
		p := d.pointer(ev.X, ev.Y)
		if d.ctrl == nil {
			break
		}
		switch ev.Button {
		case uv.MouseWheelUp:
			d.ctrl.Scroll(1, p.OverUI)
		case uv.MouseWheelDown:
			d.ctrl.Scroll(-1, p.OverUI)
		}
	}
	return ActionNone
}
