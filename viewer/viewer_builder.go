package viewer

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/helios3d/helios-go/viewer/annotation"
	"github.com/helios3d/helios-go/viewer/assets"
	"github.com/helios3d/helios-go/viewer/camera"
	"github.com/helios3d/helios-go/viewer/window"
)

// ViewerBuilderOption is a functional option for configuring a viewerImpl.
// Use the With* functions to create options.
type ViewerBuilderOption func(v *viewerImpl)

// WithWindow attaches a platform window. Pointer, scroll, and resize
// callbacks are wired to the viewer automatically, and Run blocks on its
// message loop.
//
// Parameters:
//   - win: the window to attach
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithWindow(win window.Window) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.win = win
	}
}

// WithCameraController sets the camera controller. A default orbit controller
// is created otherwise.
//
// Parameters:
//   - cam: the controller to use
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithCameraController(cam camera.Controller) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.cam = cam
	}
}

// WithAnnotationController sets the annotation interaction controller. A
// fresh controller with an empty store is created otherwise.
//
// Parameters:
//   - ann: the controller to use
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithAnnotationController(ann annotation.Controller) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.ann = ann
	}
}

// WithAssetLoader sets the asset loader. A default loader is created
// otherwise.
//
// Parameters:
//   - loader: the loader to use
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithAssetLoader(loader assets.Loader) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.loader = loader
	}
}

// WithTimeOfDay sets the starting clock time.
//
// Parameters:
//   - hours: time of day in hours [0, 24)
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithTimeOfDay(hours float32) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.timeOfDay = hours
	}
}

// WithNightLights sets the starting night-lights toggle.
//
// Parameters:
//   - enabled: whether night lights start enabled
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithNightLights(enabled bool) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.nightLights = enabled
	}
}

// WithMaxSurfaceRetries sets the automatic surface recovery budget.
//
// Parameters:
//   - retries: attempts before the guard requires a manual retry
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithMaxSurfaceRetries(retries int) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.maxSurfaceRetries = retries
	}
}

// WithClickThreshold sets the maximum press-to-release pointer travel in
// pixels for a gesture to count as a click.
//
// Parameters:
//   - pixels: the travel threshold; values <= 0 are ignored
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithClickThreshold(pixels float32) ViewerBuilderOption {
	return func(v *viewerImpl) {
		if pixels > 0 {
			v.clickThreshold = pixels
		}
	}
}

// WithTickRate sets the tick and render loop interval.
//
// Parameters:
//   - rate: loop interval; values <= 0 are ignored
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithTickRate(rate time.Duration) ViewerBuilderOption {
	return func(v *viewerImpl) {
		if rate > 0 {
			v.tickRate = rate
		}
	}
}

// WithViewerLogger sets the structured logger for the viewer and its default
// collaborators.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithViewerLogger(log zerolog.Logger) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.log = log
	}
}
