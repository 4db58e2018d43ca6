package render

import (
	"github.com/rs/zerolog"

	"github.com/helios3d/helios-go/viewer/camera"
)

// EngineBuilderOption is a functional option for configuring an engineImpl.
// Use the With* functions to create options.
type EngineBuilderOption func(e *engineImpl)

// WithCamera attaches the camera controller whose pose drives picking rays.
//
// Parameters:
//   - cam: the camera controller to read poses from
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(cam camera.Controller) EngineBuilderOption {
	return func(e *engineImpl) {
		e.cam = cam
	}
}

// WithSurfaceSize sets the initial framebuffer dimensions in pixels.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSurfaceSize(width, height int) EngineBuilderOption {
	return func(e *engineImpl) {
		if width > 0 && height > 0 {
			e.width = width
			e.height = height
		}
	}
}

// WithFOVY sets the vertical field of view used for picking rays.
//
// Parameters:
//   - fovY: vertical field of view in radians
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFOVY(fovY float32) EngineBuilderOption {
	return func(e *engineImpl) {
		if fovY > 0 {
			e.fovY = fovY
		}
	}
}

// WithEngineLogger sets the structured logger for the engine.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithEngineLogger(log zerolog.Logger) EngineBuilderOption {
	return func(e *engineImpl) {
		e.log = log
	}
}
