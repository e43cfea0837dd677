package viewer

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/trackball/pkg/trackball"
)

// Spinner turns the model about the world Y axis. Switching it on or off
// eases the angular speed with a critically damped spring instead of
// jumping.
type Spinner struct {
	angle  float64 // degrees, wrapped to [0, 360)
	speed  float64 // degrees per second
	accel  float64 // spring velocity of speed
	target float64
	rate   float64
	dt     float64
	spring harmonica.Spring
}

// NewSpinner creates a stopped spinner that runs at rate degrees per second
// when enabled. Update is expected once per frame at fps.
func NewSpinner(fps int, rate float64) *Spinner {
	return &Spinner{
		rate:   rate,
		dt:     1 / float64(fps),
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// SetEnabled starts or stops the spin.
func (s *Spinner) SetEnabled(on bool) {
	if on {
		s.target = s.rate
	} else {
		s.target = 0
	}
}

// Enabled reports whether the spinner is heading towards its full rate.
func (s *Spinner) Enabled() bool {
	return s.target != 0
}

// Toggle flips Enabled.
func (s *Spinner) Toggle() {
	s.SetEnabled(!s.Enabled())
}

// Update advances one frame.
func (s *Spinner) Update() {
	s.speed, s.accel = s.spring.Update(s.speed, s.accel, s.target)
	s.angle = math.Mod(s.angle+s.speed*s.dt, 360)
	if s.angle < 0 {
		s.angle += 360
	}
}

// Angle returns the raw spin angle in degrees.
func (s *Spinner) Angle() float64 {
	return s.angle
}

// Speed returns the current angular speed in degrees per second.
func (s *Spinner) Speed() float64 {
	return s.speed
}

// ModelAngle is the angle the model is drawn at. Once calibrated, the spin
// is measured from the angle recorded at calibration so the model lines up
// with the calibrated camera.
func (s *Spinner) ModelAngle(calib trackball.Calibration) float64 {
	if !calib.Calibrated {
		return s.angle
	}
	return s.angle - calib.SpinAngle
}
