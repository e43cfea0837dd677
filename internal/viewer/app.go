// Package viewer runs the interactive model viewer: terminal events feed
// the trackball controller, and every frame the model is rendered from the
// controller's camera with the control panel drawn on top.
package viewer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/trackball/internal/config"
	"github.com/taigrr/trackball/pkg/math3d"
	"github.com/taigrr/trackball/pkg/models"
	"github.com/taigrr/trackball/pkg/render"
	"github.com/taigrr/trackball/pkg/trackball"
)

const (
	mouseOn  = "\x1b[?1003h\x1b[?1006h" // any-event tracking, SGR encoding
	mouseOff = "\x1b[?1003l\x1b[?1006l"

	worldAxisLength = 1.5
	modelAxisLength = 1.2
)

// Options configures a new App.
type Options struct {
	Config      *config.Config
	ModelPath   string
	TexturePath string // overrides the model's own base color texture
	Logger      *zap.Logger

	// Initial terminal size in cells.
	Cols, Rows int
}

// scene is the currently loaded model.
type scene struct {
	mesh    *models.Mesh
	texture *render.Texture
	color   render.Color
	scale   float64
	name    string
	status  string
}

// App owns the controller, the renderer and the panel. All of its methods
// run on the frame loop goroutine.
type App struct {
	cfg *config.Config
	log *zap.Logger

	ctrl    *trackball.Controller
	disp    *Dispatcher
	panel   *Panel
	spinner *Spinner
	queue   TaskQueue

	surface render.Surface // nil until Run
	screen  *render.TerminalRenderer
	camera  *render.Camera
	fb      *render.Framebuffer
	raster  *render.Rasterizer
	wire    *render.Wireframe
	shading render.Shading
	bg      render.Color

	model       scene
	modelPath   string
	overrideTex *render.Texture

	showWorldAxes bool
	showModelAxes bool
	wireframe     bool
	textured      bool
	status        string

	fps fpsCounter
}

// NewApp builds the viewer and loads the initial model.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:           cfg,
		log:           log,
		panel:         NewPanel(),
		spinner:       NewSpinner(cfg.Viewer.FPS, cfg.Viewer.SpinSpeed),
		camera:        render.NewCamera(),
		bg:            bg,
		modelPath:     opts.ModelPath,
		showWorldAxes: cfg.Viewer.ShowWorldAxes,
		showModelAxes: cfg.Viewer.ShowModelAxes,
		textured:      true,
		shading: render.Shading{
			LightPos:   cfg.LightPosition(),
			LightColor: render.ColorWhite,
			Ambient:    cfg.Render.Ambient,
			Specular:   cfg.Render.Specular,
			Shininess:  cfg.Render.Shininess,
		},
		fps: newFPSCounter(),
	}
	a.panel.Visible = cfg.Viewer.ShowPanel
	a.spinner.SetEnabled(cfg.Viewer.Spin)

	a.disp = NewDispatcher(a.panel, max(opts.Cols, 1), max(opts.Rows, 1))
	a.ctrl, err = trackball.NewController(cfg.TrackballConfig(), a.disp,
		trackball.WithLogger(log.Named("trackball")),
		trackball.WithReverse(cfg.Trackball.Reverse),
	)
	if err != nil {
		return nil, err
	}
	a.disp.Attach(a.ctrl)

	a.camera.SetFOV(math3d.Radians(cfg.Render.FOV))
	a.camera.SetClipPlanes(cfg.Render.Near, cfg.Render.Far)
	a.raster = render.NewRasterizer(a.camera, nil)
	a.raster.DisableBackfaceCulling = cfg.Render.Backfaces
	a.wire = render.NewWireframe(a.raster)
	a.resize()

	if opts.TexturePath != "" {
		a.overrideTex, err = render.LoadTexture(opts.TexturePath)
		if err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
	}

	if err := a.loadModel(opts.ModelPath); err != nil {
		return nil, err
	}
	return a, nil
}

// Controller returns the trackball controller.
func (a *App) Controller() *trackball.Controller { return a.ctrl }

// Dispatcher returns the event dispatcher.
func (a *App) Dispatcher() *Dispatcher { return a.disp }

// Framebuffer returns the frame drawn by the last Frame call.
func (a *App) Framebuffer() *render.Framebuffer { return a.fb }

// loadModel reads, normalizes and installs a model. On failure the
// previous model stays in place.
func (a *App) loadModel(path string) error {
	name := filepath.Base(path)
	mesh, err := models.NewGLTFLoader().Load(path)
	if err != nil {
		a.model.status = "load failed"
		return fmt.Errorf("load model: %w", err)
	}
	scale := mesh.Normalize(a.cfg.Viewer.ModelSize)

	s := scene{mesh: mesh, scale: scale, name: name, status: "loaded", color: render.ColorObject}
	if c, ok := mesh.BaseColor(); ok {
		s.color = render.ColorFromFloats(c[0], c[1], c[2], 1)
	}
	switch {
	case a.overrideTex != nil:
		s.texture = a.overrideTex
	case mesh.BaseColorMap() != nil:
		s.texture = render.TextureFromImage(mesh.BaseColorMap())
	}
	a.model = s

	a.log.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float64("scale", scale),
		zap.Bool("textured", s.texture != nil),
	)
	return nil
}

// resize matches the framebuffer and projection to the terminal size.
func (a *App) resize() {
	cols, rows := a.disp.Cells()
	a.screen = render.NewTerminalRenderer(a.surface, cols, rows)
	w, h := a.screen.FramebufferSize()
	a.fb = render.NewFramebuffer(w, h)
	a.raster.SetFramebuffer(a.fb)
	a.camera.SetAspectRatio(float64(w) / float64(h))
}

// Apply carries out an action. It reports whether the app should quit.
func (a *App) Apply(action Action) bool {
	switch action {
	case ActionQuit:
		return true
	case ActionResize:
		a.resize()
	case ActionCalibrate:
		a.ctrl.Calibrate(a.spinner.Angle())
		a.status = "calibrated"
	case ActionResetCalibrated:
		a.ctrl.ResetToCalibrated()
	case ActionResetDefault:
		a.ctrl.ResetToDefault()
		a.status = "camera reset"
	case ActionRollLeft:
		a.ctrl.RollLeft()
	case ActionRollRight:
		a.ctrl.RollRight()
	case ActionToggleReverse:
		a.ctrl.SetReverse(!a.ctrl.Reverse())
	case ActionTogglePanel:
		a.panel.Visible = !a.panel.Visible
	case ActionToggleWorldAxes:
		a.showWorldAxes = !a.showWorldAxes
	case ActionToggleModelAxes:
		a.showModelAxes = !a.showModelAxes
	case ActionToggleWireframe:
		a.wireframe = !a.wireframe
	case ActionToggleTexture:
		a.textured = !a.textured
	case ActionToggleSpin:
		a.spinner.Toggle()
	case ActionReload:
		a.model.status = "reloading"
		a.queue.Push("reload "+a.model.name, func() error {
			return a.loadModel(a.modelPath)
		})
	case ActionScreenshot:
		a.queue.Push("screenshot", func() error {
			path := fmt.Sprintf("trackball-%s.png", time.Now().Format("20060102-150405"))
			if err := a.fb.SavePNG(path, a.cfg.Viewer.ScreenshotScale); err != nil {
				return err
			}
			a.status = "saved " + path
			a.log.Info("screenshot saved", zap.String("path", path))
			return nil
		})
	}
	return false
}

// Frame runs deferred tasks, advances the spinner and draws the scene into
// the framebuffer.
func (a *App) Frame() {
	if err := a.queue.Drain(); err != nil {
		a.log.Warn("deferred task failed", zap.Error(err))
		a.status = err.Error()
	}
	a.spinner.Update()
	a.fps.tick()
	a.draw()
}

func (a *App) draw() {
	cam := a.ctrl.Camera()
	a.camera.SetView(cam.Position, cam.Target, cam.Up)

	a.fb.Clear(a.bg)
	a.raster.BeginFrame()

	shading := a.shading
	shading.ViewPos = cam.Position

	if a.showWorldAxes {
		a.wire.DrawAxes(math3d.Identity(), worldAxisLength, render.WorldAxisColors)
	}

	transform := math3d.RotateY(math3d.Radians(a.spinner.ModelAngle(a.ctrl.Calibration())))
	if mesh := a.model.mesh; mesh != nil {
		switch {
		case a.wireframe:
			a.raster.DrawMeshWireframe(mesh, transform, a.model.color)
		case a.textured && a.model.texture != nil:
			a.raster.DrawMeshTextured(mesh, transform, a.model.texture, shading)
		default:
			a.raster.DrawMesh(mesh, transform, a.model.color, shading)
		}
	}

	if a.showModelAxes {
		a.wire.DrawAxes(transform, modelAxisLength, render.ModelAxisColors)
	}
}

// PanelState collects the read-outs for the panel.
func (a *App) PanelState() PanelState {
	st := PanelState{
		FPS:           a.fps.value,
		ModelName:     a.model.name,
		ModelStatus:   a.model.status,
		Scale:         a.model.scale,
		Camera:        a.ctrl.Camera(),
		Drag:          a.ctrl.Drag(),
		Calibration:   a.ctrl.Calibration(),
		Reverse:       a.ctrl.Reverse(),
		PointerOver:   a.disp.PointerOverUI(),
		Spin:          a.spinner.Enabled(),
		WorldAxes:     a.showWorldAxes,
		ModelAxes:     a.showModelAxes,
		Wireframe:     a.wireframe,
		Texture:       a.textured && a.model.texture != nil,
		StatusMessage: a.status,
	}
	if m := a.model.mesh; m != nil {
		st.Vertices = m.VertexCount()
		st.Triangles = m.TriangleCount()
	}
	return st
}

// Run drives the terminal until ctx is cancelled or the user quits. The
// event goroutine only forwards events; everything else happens on the
// calling goroutine.
func (a *App) Run(ctx context.Context, term *uv.Terminal) error {
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	cols, rows := a.disp.Cells()
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	fmt.Fprint(os.Stdout, mouseOn)

	defer func() {
		fmt.Fprint(os.Stdout, mouseOff)
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan uv.Event, 256)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	a.surface = term
	a.resize()
	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.Viewer.FPS))
	defer ticker.Stop()

	a.log.Info("viewer started", zap.Int("cols", cols), zap.Int("rows", rows))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if a.drainEvents(events) {
			return nil
		}
		if c, r := a.disp.Cells(); c != cols || r != rows {
			cols, rows = c, r
			term.Erase()
			term.Resize(cols, rows)
		}

		a.Frame()
		a.screen.Render(a.fb)
		a.panel.Draw(term, a.PanelState(), cols, rows)
		if err := a.screen.Flush(); err != nil {
			return err
		}
	}
}

// drainEvents handles every queued event. It reports whether one of them
// asked to quit.
func (a *App) drainEvents(events <-chan uv.Event) bool {
	for {
		select {
		case ev := <-events:
			if a.Apply(a.disp.Handle(ev)) {
				return true
			}
		default:
			return false
		}
	}
}

// fpsCounter averages the frame rate over one-second windows.
type fpsCounter struct {
	value  float64
	frames int
	since  time.Time
}

func newFPSCounter() fpsCounter {
	return fpsCounter{since: time.Now()}
}

func (f *fpsCounter) tick() {
	f.frames++
	if elapsed := time.Since(f.since); elapsed >= time.Second {
		f.value = float64(f.frames) / elapsed.Seconds()
		f.frames = 0
		f.since = time.Now()
	}
}
