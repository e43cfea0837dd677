// Package trackball implements a virtual-trackball camera controller.
//
// Pointer positions are lifted onto a virtual sphere in front of the
// viewport; the rotation between two consecutive sphere points, expressed in
// the camera's own frame, orbits the camera around its target. The
// controller also handles zoom, discrete roll and calibration snapshots.
//
// A Controller is not safe for concurrent use. Feed it events from the
// goroutine that renders.
package trackball

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/taigrr/trackball/pkg/math3d"
)

// Cross products shorter than this are treated as "no rotation".
const minAxisLen = 0.0001

// Viewport reports the current drawable size in pixels.
type Viewport interface {
	Size() (width, height int)
}

// ViewportFunc adapts a plain function to the Viewport interface.
type ViewportFunc func() (width, height int)

// Size implements Viewport.
func (f ViewportFunc) Size() (int, int) { return f() }

// PointerEvent is a pointer position in viewport pixels. OverUI is set when
// the UI layer owns the pointer (hovering or interacting with a widget).
type PointerEvent struct {
	Pos    math3d.Vec2
	OverUI bool
}

// DragState tracks an in-progress drag.
type DragState struct {
	Dragging bool

	// Unit sphere points; only meaningful while Dragging.
	LastSpherePoint    math3d.Vec3
	CurrentSpherePoint math3d.Vec3
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for discrete camera actions.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithReverse sets the initial rotation direction.
func WithReverse(reverse bool) Option {
	return func(c *Controller) {
		c.reverse = reverse
	}
}

// Controller owns a Camera and mutates it in response to pointer, scroll and
// control-surface input.
type Controller struct {
	cfg Config
	vp  Viewport
	log *zap.Logger

	cam     Camera
	drag    DragState
	reverse bool
	calib   Calibration
}

// NewController creates a controller with the camera at the configured
// default placement.
func NewController(cfg Config, vp Viewport, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if vp == nil {
		return nil, fmt.Errorf("%w: nil viewport", ErrInvalidConfig)
	}

	c := &Controller{
		cfg: cfg,
		vp:  vp,
		log: zap.NewNop(),
		cam: NewCamera(cfg.DefaultPosition, cfg.DefaultTarget),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config { return c.cfg }

// Camera returns a snapshot of the camera state.
func (c *Controller) Camera() Camera { return c.cam }

// Drag returns a snapshot of the drag state.
func (c *Controller) Drag() DragState { return c.drag }

// Reverse reports whether rotation direction is inverted.
func (c *Controller) Reverse() bool { return c.reverse }

// SetReverse inverts (or restores) the rotation direction.
func (c *Controller) SetReverse(reverse bool) {
	if c.reverse == reverse {
		return
	}
	c.reverse = reverse
	c.log.Debug("trackball direction changed", zap.Bool("reverse", reverse))
}

// PointerDown starts a drag unless the UI owns the pointer.
func (c *Controller) PointerDown(ev PointerEvent) {
	if ev.OverUI {
		c.drag.Dragging = false
		return
	}
	c.drag.Dragging = true
	c.drag.LastSpherePoint = c.spherePoint(ev.Pos)
	c.drag.CurrentSpherePoint = c.drag.LastSpherePoint
}

// PointerMove rotates the camera by the motion since the previous event.
// Moving over the UI cancels the drag.
func (c *Controller) PointerMove(ev PointerEvent) {
	if ev.OverUI {
		c.drag.Dragging = false
		return
	}
	if !c.drag.Dragging {
		return
	}
	c.drag.CurrentSpherePoint = c.spherePoint(ev.Pos)
	c.rotate(c.drag.LastSpherePoint, c.drag.CurrentSpherePoint)
	c.drag.LastSpherePoint = c.drag.CurrentSpherePoint
}

// PointerUp ends any drag.
func (c *Controller) PointerUp() {
	c.drag.Dragging = false
}

func (c *Controller) spherePoint(pos math3d.Vec2) math3d.Vec3 {
	w, h := c.vp.Size()
	coord := ToNormalizedCoord(pos, float64(w), float64(h))
	return MapToSphere(coord, c.cfg.Radius)
}

// rotate applies the rotation carrying sphere point last onto current. The
// sphere axis is expressed in the camera frame so that dragging right always
// swings the scene right regardless of the current orientation.
func (c *Controller) rotate(last, current math3d.Vec3) {
	dot := math3d.Clamp(last.Dot(current), -1, 1)
	if dot >= c.cfg.MinStepDot {
		return
	}

	axis := last.Cross(current)
	if axis.Len() <= minAxisLen {
		return
	}
	axis = axis.Normalize()
	if c.reverse {
		axis = axis.Negate()
	}
	angle := math.Acos(dot)

	camAxis := c.cam.Right.Scale(axis.X).
		Add(c.cam.Up.Scale(axis.Y)).
		Add(c.cam.Front.Scale(-axis.Z)).
		Normalize()
	q := math3d.AngleAxis(angle, camAxis)

	dir := q.Rotate(c.cam.Position.Sub(c.cam.Target)).Normalize()
	c.cam.Right = q.Rotate(c.cam.Right).Normalize()
	c.cam.Up = q.Rotate(c.cam.Up).Normalize()

	c.cam.Position = c.cam.Target.Add(dir.Scale(c.cam.Distance))
	c.cam.DeriveFrontFromTarget()
	c.cam.RepairBasisIfDegenerate()
}

// Scroll zooms toward the target. Positive deltaY moves closer. A wheel
// event over the UI cancels any drag and leaves the camera alone.
func (c *Controller) Scroll(deltaY float64, overUI bool) {
	if overUI {
		c.drag.Dragging = false
		return
	}
	c.cam.Distance = math3d.Clamp(c.cam.Distance-deltaY*c.cfg.ZoomSpeed, c.cfg.MinDistance, c.cfg.MaxDistance)

	dir := c.cam.Position.Sub(c.cam.Target).Normalize()
	if dir.LenSq() == 0 {
		dir = c.cam.Front.Negate()
	}
	c.cam.Position = c.cam.Target.Add(dir.Scale(c.cam.Distance))
	c.cam.DeriveFrontFromTarget()
	c.cam.RepairBasisIfDegenerate()
}

// Roll spins the camera about its viewing direction. Positive degrees turn
// Up clockwise on screen, so the scene appears to turn counter-clockwise.
func (c *Controller) Roll(degrees float64) {
	q := math3d.AngleAxis(math3d.Radians(degrees), c.cam.Front)
	c.cam.Right = q.Rotate(c.cam.Right).Normalize()
	c.cam.Up = q.Rotate(c.cam.Up).Normalize()
	c.log.Debug("camera rolled", zap.Float64("degrees", degrees))
}

// RollLeft rolls by one configured step.
func (c *Controller) RollLeft() { c.Roll(c.cfg.RollStepDegrees) }

// RollRight rolls by one configured step in the other direction.
func (c *Controller) RollRight() { c.Roll(-c.cfg.RollStepDegrees) }
