// Command helios opens an interactive 3D model viewer with time-of-day
// lighting and world-anchored annotations.
package main

import (
	"os"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/helios3d/helios-go/config"
	"github.com/helios3d/helios-go/viewer"
	"github.com/helios3d/helios-go/viewer/assets"
	"github.com/helios3d/helios-go/viewer/camera"
	"github.com/helios3d/helios-go/viewer/lighting"
	"github.com/helios3d/helios-go/viewer/render"
	"github.com/helios3d/helios-go/viewer/window"
)

var (
	flagConfig      string
	flagModel       string
	flagEnvironment string
	flagTimeOfDay   float32
	flagNightLights bool
	flagMode        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "helios",
		Short: "Interactive 3D model viewer with time-of-day lighting and annotations",
		Long: `helios renders a 3D model under a simulated sun that follows the clock,
with world-anchored annotations you can place, drag, and edit.

Controls:
  left drag      rotate the camera (or drag an annotation marker)
  scroll         zoom
  A              arm annotation placement (next click places)
  N              toggle night lights
  , / .          step time of day back / forward one hour
  Tab            switch between orbit and fly navigation
  R              retry a failed render surface
  Esc            quit`,
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	rootCmd.Flags().StringVarP(&flagModel, "model", "m", "", "model file to load at startup (.glb, .gltf, .obj, .stl)")
	rootCmd.Flags().StringVarP(&flagEnvironment, "environment", "e", "", "environment image for sky lighting (.hdr, .exr, .png, .jpg)")
	rootCmd.Flags().Float32VarP(&flagTimeOfDay, "time", "t", 12.0, "starting time of day in hours [0, 24)")
	rootCmd.Flags().BoolVar(&flagNightLights, "night-lights", false, "enable artificial night lighting")
	rootCmd.Flags().StringVar(&flagMode, "mode", "", "camera navigation mode (orbit or fly)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	// Command-line flags beat the config file when explicitly set.
	if cmd.Flags().Changed("time") {
		cfg.Lighting.TimeOfDay = flagTimeOfDay
	}
	if cmd.Flags().Changed("night-lights") {
		cfg.Lighting.NightLights = flagNightLights
	}
	if cmd.Flags().Changed("mode") {
		cfg.Camera.Mode = flagMode
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}

	navMode, err := camera.ParseNavMode(cfg.Camera.Mode)
	if err != nil {
		return err
	}
	cam := camera.NewController(
		camera.WithNavMode(navMode),
		camera.WithRadius(cfg.Camera.Radius),
	)

	engine, err := render.NewEngine(win.SurfaceDescriptor(),
		render.WithCamera(cam),
		render.WithSurfaceSize(win.Width(), win.Height()),
		render.WithEngineLogger(log),
	)
	if err != nil {
		_ = win.Close()
		return err
	}

	loader := assets.NewLoader(
		assets.WithEnvironmentTimeout(cfg.Assets.EnvironmentTimeout),
		assets.WithLoaderLogger(log),
	)

	v, err := viewer.NewViewer(engine,
		viewer.WithWindow(win),
		viewer.WithCameraController(cam),
		viewer.WithAssetLoader(loader),
		viewer.WithTimeOfDay(cfg.Lighting.TimeOfDay),
		viewer.WithNightLights(cfg.Lighting.NightLights),
		viewer.WithMaxSurfaceRetries(cfg.Surface.MaxRetries),
		viewer.WithViewerLogger(log),
	)
	if err != nil {
		return err
	}

	bindKeys(win, v, log)

	if flagModel != "" {
		v.LoadModel(flagModel)
	}
	if flagEnvironment != "" {
		v.LoadEnvironment(flagEnvironment)
	}

	log.Info().
		Str("clock", lighting.FormatClock(v.TimeOfDay())).
		Str("mode", cam.NavMode().String()).
		Msg("viewer starting")

	v.Run()
	return nil
}

// bindKeys wires the keyboard shortcuts to viewer actions.
func bindKeys(win window.Window, v viewer.Viewer, log zerolog.Logger) {
	win.SetKeyDownCallback(func(keyCode uint32) {
		switch glfw.Key(keyCode) {
		case glfw.KeyA:
			v.Annotations().ArmPlacement()
			log.Info().Msg("placement armed, click the model to place an annotation")
		case glfw.KeyN:
			v.SetNightLights(!v.NightLightsEnabled())
		case glfw.KeyComma:
			v.SetTimeOfDay(v.TimeOfDay() - 1)
			log.Info().Str("clock", lighting.FormatClock(v.TimeOfDay())).Msg("time of day")
		case glfw.KeyPeriod:
			v.SetTimeOfDay(v.TimeOfDay() + 1)
			log.Info().Str("clock", lighting.FormatClock(v.TimeOfDay())).Msg("time of day")
		case glfw.KeyTab:
			mode := camera.NavModeOrbit
			if v.Camera().NavMode() == camera.NavModeOrbit {
				mode = camera.NavModeFly
			}
			v.Camera().SetNavMode(mode)
			log.Info().Str("mode", mode.String()).Msg("navigation mode")
		case glfw.KeyR:
			if v.RetrySurface() {
				log.Info().Msg("render surface recovered")
			}
		}
	})
}
