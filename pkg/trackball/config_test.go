package trackball

import (
	"errors"
	"testing"

	"github.com/taigrr/trackball/pkg/math3d"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero radius", func(c *Config) { c.Radius = 0 }},
		{"negative min distance", func(c *Config) { c.MinDistance = -1 }},
		{"inverted bounds", func(c *Config) { c.MinDistance, c.MaxDistance = 5, 1 }},
		{"zero zoom speed", func(c *Config) { c.ZoomSpeed = 0 }},
		{"min step dot above one", func(c *Config) { c.MinStepDot = 1.5 }},
		{"min step dot zero", func(c *Config) { c.MinStepDot = 0 }},
		{"default outside bounds", func(c *Config) { c.DefaultPosition = math3d.V3(0, 0, 50) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNewControllerRejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius = -1
	if _, err := NewController(cfg, fixedViewport(100, 100)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewController(bad config) error = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewController(DefaultConfig(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewController(nil viewport) error = %v, want ErrInvalidConfig", err)
	}
}
