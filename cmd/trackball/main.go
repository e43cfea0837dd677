// trackball - terminal 3D model viewer with a virtual-trackball camera.
//
// Controls:
//
//	Mouse drag  - Rotate the camera around the model
//	Scroll      - Zoom in/out
//	Q/E         - Roll left/right
//	C           - Calibrate the current view
//	R           - Reset to the calibrated view
//	Shift+R, 0  - Reset to the default view
//	V           - Reverse drag direction
//	A/M         - Toggle world/model axes
//	W/T         - Toggle wireframe/texture
//	Space       - Toggle model spin
//	L           - Reload the model
//	S           - Save a screenshot
//	H           - Toggle the panel
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/trackball/internal/config"
	"github.com/taigrr/trackball/internal/logger"
	"github.com/taigrr/trackball/internal/viewer"
)

var version = "dev"

type flags struct {
	configPath  string
	texturePath string
	fps         int
	bg          string
	debug       bool
	logFile     string
	reverse     bool
	writeConfig string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "trackball [model.glb|model.gltf]",
		Short: "View glTF models in the terminal with a virtual-trackball camera",
		Long: `trackball renders a glTF/GLB model in the terminal. Drag to rotate the
camera around the model, scroll to zoom, q/e to roll. Press c to calibrate a
view and r to return to it.

Examples:
  trackball duck.glb
  trackball --texture wood.png --bg "#202030" chair.gltf
  trackball --write-config ~/.config/trackball/config.yaml`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "config file (default: ./trackball.yaml or the user config dir)")
	fl.StringVar(&f.texturePath, "texture", "", "texture image overriding the model's base color map")
	fl.IntVar(&f.fps, "fps", 30, "target frames per second")
	fl.StringVar(&f.bg, "bg", "30,30,40", `background color, "R,G,B" or "#rrggbb"`)
	fl.BoolVar(&f.debug, "debug", false, "log at debug level")
	fl.StringVar(&f.logFile, "log-file", "", "log file (default: trackball.log in the config dir)")
	fl.BoolVar(&f.reverse, "reverse", false, "reverse the drag rotation direction")
	fl.StringVar(&f.writeConfig, "write-config", "", "write the effective config to this path and exit")
	return cmd
}

func run(cmd *cobra.Command, args []string, f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, f)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if f.writeConfig != "" {
		if err := cfg.SaveTo(f.writeConfig); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", f.writeConfig)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("no model given")
	}

	logPath := cfg.Logging.LogFile
	if logPath == "" {
		logPath = config.DefaultLogFile()
	}
	// The terminal UI owns stdout, so logs only go to the file.
	log, err := logger.New(cfg.Logging.Level, logger.DefaultFileConfig(logPath), nil)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	app, err := viewer.NewApp(viewer.Options{
		Config:      cfg,
		ModelPath:   args[0],
		TexturePath: f.texturePath,
		Logger:      log,
		Cols:        cols,
		Rows:        rows,
	})
	if err != nil {
		return err
	}

	if err := app.Run(cmd.Context(), term); err != nil {
		log.Error("viewer stopped", zap.Error(err))
		return err
	}
	return nil
}

// applyFlags overrides config values with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags) {
	fl := cmd.Flags()
	if fl.Changed("fps") {
		cfg.Viewer.FPS = f.fps
	}
	if fl.Changed("bg") {
		cfg.Viewer.Background = f.bg
	}
	if fl.Changed("reverse") {
		cfg.Trackball.Reverse = f.reverse
	}
	if f.debug {
		cfg.Logging.Level = "debug"
	}
	if f.logFile != "" {
		cfg.Logging.LogFile = f.logFile
	}
}
