package trackball

import (
	"errors"
	"fmt"

	"github.com/taigrr/trackball/pkg/math3d"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid trackball config")

// Config holds the tunables of a Controller.
type Config struct {
	// Radius of the virtual sphere in normalized screen units. A smaller
	// radius rotates further per pixel.
	Radius float64

	// Zoom clamp bounds and scroll-to-distance factor.
	MinDistance float64
	MaxDistance float64
	ZoomSpeed   float64

	// RollStepDegrees is the increment used by RollLeft and RollRight.
	RollStepDegrees float64

	// MinStepDot discards drag steps whose sphere points have a dot product
	// at or above this value. Raise it towards 1 for high-rate pointers.
	MinStepDot float64

	// Default camera placement restored by ResetToDefault.
	DefaultPosition math3d.Vec3
	DefaultTarget   math3d.Vec3
}

// DefaultConfig returns the stock trackball settings.
func DefaultConfig() Config {
	return Config{
		Radius:          0.8,
		MinDistance:     0.5,
		MaxDistance:     20,
		ZoomSpeed:       0.5,
		RollStepDegrees: 5,
		MinStepDot:      0.9999,
		DefaultPosition: math3d.V3(0, 0, 3),
		DefaultTarget:   math3d.Zero3(),
	}
}

// Validate rejects configurations the controller cannot run with.
func (c Config) Validate() error {
	switch {
	case !(c.Radius > 0):
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidConfig, c.Radius)
	case !(c.MinDistance > 0):
		return fmt.Errorf("%w: min distance must be positive, got %v", ErrInvalidConfig, c.MinDistance)
	case c.MaxDistance < c.MinDistance:
		return fmt.Errorf("%w: max distance %v is below min distance %v", ErrInvalidConfig, c.MaxDistance, c.MinDistance)
	case !(c.ZoomSpeed > 0):
		return fmt.Errorf("%w: zoom speed must be positive, got %v", ErrInvalidConfig, c.ZoomSpeed)
	case !(c.MinStepDot > 0 && c.MinStepDot <= 1):
		return fmt.Errorf("%w: min step dot must be in (0, 1], got %v", ErrInvalidConfig, c.MinStepDot)
	}

	d := c.DefaultPosition.Distance(c.DefaultTarget)
	if d < c.MinDistance || d > c.MaxDistance {
		return fmt.Errorf("%w: default distance %v outside [%v, %v]", ErrInvalidConfig, d, c.MinDistance, c.MaxDistance)
	}
	return nil
}
