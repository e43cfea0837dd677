// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/trackball/internal/logger"
	"github.com/taigrr/trackball/pkg/math3d"
	"github.com/taigrr/trackball/pkg/trackball"
)

// Config holds all viewer settings.
type Config struct {
	Viewer    ViewerConfig      `yaml:"viewer"`
	Trackball TrackballSettings `yaml:"trackball"`
	Render    RenderConfig      `yaml:"render"`
	Logging   LoggingConfig     `yaml:"logging"`
}

// ViewerConfig holds frame loop and scene settings.
type ViewerConfig struct {
	FPS           int     `yaml:"fps"`
	Background    string  `yaml:"background"` // "R,G,B" or "#rrggbb"
	ModelSize     float64 `yaml:"model_size"`
	Spin          bool    `yaml:"spin"`
	SpinSpeed     float64 `yaml:"spin_speed"` // degrees per second
	ShowWorldAxes bool    `yaml:"show_world_axes"`
	ShowModelAxes bool    `yaml:"show_model_axes"`
	ShowPanel     bool    `yaml:"show_panel"`

	ScreenshotScale int `yaml:"screenshot_scale"` // pixels per framebuffer pixel
}

// TrackballSettings mirrors trackball.Config in YAML form.
type TrackballSettings struct {
	Radius          float64    `yaml:"radius"`
	MinDistance     float64    `yaml:"min_distance"`
	MaxDistance     float64    `yaml:"max_distance"`
	ZoomSpeed       float64    `yaml:"zoom_speed"`
	RollStepDegrees float64    `yaml:"roll_step_degrees"`
	MinStepDot      float64    `yaml:"min_step_dot"`
	DefaultPosition [3]float64 `yaml:"default_position,flow"`
	DefaultTarget   [3]float64 `yaml:"default_target,flow"`
	Reverse         bool       `yaml:"reverse"`
}

// RenderConfig holds projection and lighting settings.
type RenderConfig struct {
	FOV           float64    `yaml:"fov"` // vertical, degrees
	Near          float64    `yaml:"near"`
	Far           float64    `yaml:"far"`
	LightPosition [3]float64 `yaml:"light_position,flow"`
	Ambient       float64    `yaml:"ambient"`
	Specular      float64    `yaml:"specular"`
	Shininess     float64    `yaml:"shininess"`
	Backfaces     bool       `yaml:"backfaces"` // draw back faces too
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	tb := trackball.DefaultConfig()
	return &Config{
		Viewer: ViewerConfig{
			FPS:           30,
			Background:    "30,30,40",
			ModelSize:     2,
			Spin:          false,
			SpinSpeed:     30,
			ShowWorldAxes: true,
			ShowModelAxes: false,
			ShowPanel:     true,

			ScreenshotScale: 4,
		},
		Trackball: TrackballSettings{
			Radius:          tb.Radius,
			MinDistance:     tb.MinDistance,
			MaxDistance:     tb.MaxDistance,
			ZoomSpeed:       tb.ZoomSpeed,
			RollStepDegrees: tb.RollStepDegrees,
			MinStepDot:      tb.MinStepDot,
			DefaultPosition: toArray(tb.DefaultPosition),
			DefaultTarget:   toArray(tb.DefaultTarget),
		},
		Render: RenderConfig{
			FOV:           45,
			Near:          0.1,
			Far:           100,
			LightPosition: [3]float64{1.2, 1, 2},
			Ambient:       0.1,
			Specular:      0.5,
			Shininess:     32,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// TrackballConfig converts the trackball section for the controller.
func (c *Config) TrackballConfig() trackball.Config {
	t := c.Trackball
	return trackball.Config{
		Radius:          t.Radius,
		MinDistance:     t.MinDistance,
		MaxDistance:     t.MaxDistance,
		ZoomSpeed:       t.ZoomSpeed,
		RollStepDegrees: t.RollStepDegrees,
		MinStepDot:      t.MinStepDot,
		DefaultPosition: fromArray(t.DefaultPosition),
		DefaultTarget:   fromArray(t.DefaultTarget),
	}
}

// BackgroundColor parses Viewer.Background.
func (c *Config) BackgroundColor() (color.RGBA, error) {
	return ParseColor(c.Viewer.Background)
}

// LightPosition returns the light position as a vector.
func (c *Config) LightPosition() math3d.Vec3 {
	return fromArray(c.Render.LightPosition)
}

// Validate checks every section and joins the failures.
func (c *Config) Validate() error {
	var errs []error

	if c.Viewer.FPS < 1 || c.Viewer.FPS > 240 {
		errs = append(errs, fmt.Errorf("viewer.fps must be in [1, 240], got %d", c.Viewer.FPS))
	}
	if _, err := c.BackgroundColor(); err != nil {
		errs = append(errs, fmt.Errorf("viewer.background: %w", err))
	}
	if c.Viewer.ScreenshotScale < 1 || c.Viewer.ScreenshotScale > 16 {
		errs = append(errs, fmt.Errorf("viewer.screenshot_scale must be in [1, 16], got %d", c.Viewer.ScreenshotScale))
	}
	if !(c.Viewer.ModelSize > 0) {
		errs = append(errs, fmt.Errorf("viewer.model_size must be positive, got %v", c.Viewer.ModelSize))
	}

	if err := c.TrackballConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("trackball: %w", err))
	}

	if !(c.Render.FOV > 0 && c.Render.FOV < 180) {
		errs = append(errs, fmt.Errorf("render.fov must be in (0, 180), got %v", c.Render.FOV))
	}
	if !(c.Render.Near > 0) || c.Render.Far <= c.Render.Near {
		errs = append(errs, fmt.Errorf("render clip planes invalid: near %v, far %v", c.Render.Near, c.Render.Far))
	}
	if !(c.Render.Shininess > 0) {
		errs = append(errs, fmt.Errorf("render.shininess must be positive, got %v", c.Render.Shininess))
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}

// ParseColor accepts "R,G,B" with 0-255 components or a "#rrggbb" hex string.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{r, g, b, 255}, nil
	}

	var r, g, b int
	if n, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil || n != 3 {
		return color.RGBA{}, fmt.Errorf("parse color %q: want R,G,B or #rrggbb", s)
	}
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("parse color %q: component %d out of range", s, v)
		}
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}, nil
}

func toArray(v math3d.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func fromArray(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}
