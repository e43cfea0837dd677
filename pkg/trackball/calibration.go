package trackball

import (
	"go.uber.org/zap"

	"github.com/taigrr/trackball/pkg/math3d"
)

// Calibration is a saved camera orientation the user can return to.
type Calibration struct {
	Calibrated bool

	Position math3d.Vec3
	Front    math3d.Vec3
	Right    math3d.Vec3
	Up       math3d.Vec3

	// SpinAngle is the model auto-rotation angle, in degrees, at the moment
	// of calibration.
	SpinAngle float64
}

// Calibration returns a snapshot of the calibration state.
func (c *Controller) Calibration() Calibration { return c.calib }

// Calibrate records the current orientation together with the model's
// auto-rotation angle.
func (c *Controller) Calibrate(spinAngle float64) {
	c.calib = Calibration{
		Calibrated: true,
		Position:   c.cam.Position,
		Front:      c.cam.Front,
		Right:      c.cam.Right,
		Up:         c.cam.Up,
		SpinAngle:  spinAngle,
	}
	c.log.Debug("camera calibrated",
		zap.Float64("spin_angle", spinAngle),
		zap.Float64("distance", c.cam.Distance))
}

// ResetToCalibrated restores the calibrated orientation. It does nothing
// when no calibration has been recorded.
func (c *Controller) ResetToCalibrated() {
	if !c.calib.Calibrated {
		return
	}
	c.cam.Position = c.calib.Position
	c.cam.Front = c.calib.Front
	c.cam.Right = c.calib.Right
	c.cam.Up = c.calib.Up
	c.cam.Distance = c.cam.Position.Distance(c.cam.Target)
	c.log.Debug("camera reset to calibration")
}

// ResetToDefault returns the camera to the configured default placement and
// forgets any calibration.
func (c *Controller) ResetToDefault() {
	c.cam = NewCamera(c.cfg.DefaultPosition, c.cfg.DefaultTarget)
	c.calib = Calibration{}
	c.log.Debug("camera reset to default")
}
