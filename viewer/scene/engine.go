// package scene defines the boundary between the viewer core and the scene
// engine that actually draws: the Engine interface the core configures, the
// marker descriptors it hands over for rendering, and the guard that
// supervises the render surface.
package scene

import (
	"errors"

	"github.com/helios3d/helios-go/viewer/lighting"
)

// ErrUnsupportedModel is returned when a handed-off model file cannot be
// accepted. Non-fatal: prior scene content continues rendering.
var ErrUnsupportedModel = errors.New("scene: unsupported model format")

// ErrSurfaceLost is returned (possibly wrapped) by RenderFrame when the
// render surface has been lost and needs reinitialization.
var ErrSurfaceLost = errors.New("scene: render surface lost")

// Marker describes one annotation marker as the engine should draw it.
type Marker struct {
	// ID identifies the annotation this marker represents. Engines report it
	// back from PickMarker so pointer events can be routed.
	ID string

	// Position is the world-space position to draw the marker at. For a
	// mid-drag marker this is the live preview position.
	Position [3]float32

	// Emphasized requests the drag visual boost (scale/emissive).
	Emphasized bool
}

// Engine is the external collaborator responsible for everything GPU-side:
// mesh upload, marker and light rendering, and the screen-to-world
// intersection queries that drive annotation placement. The viewer core only
// pushes flat configuration into it and reads world-space points back out;
// it never depends on the engine's internals.
type Engine interface {
	// ApplyLighting replaces the engine's light and sky parameters. Called
	// on every time-of-day or night-lights change.
	//
	// Parameters:
	//   - state: the derived lighting parameters to draw with
	ApplyLighting(state lighting.State)

	// SetMarkers replaces the annotation marker list. Called whenever the
	// displayed annotation set changes, including every drag update.
	//
	// Parameters:
	//   - markers: render-ready marker descriptors
	SetMarkers(markers []Marker)

	// LoadModel hands off an uploaded mesh file. The engine owns parsing and
	// upload; a rejected file returns ErrUnsupportedModel (or a wrap of it)
	// and leaves the previously loaded model in place.
	//
	// Parameters:
	//   - name: display name of the file, used for logs and the UI
	//   - data: raw file contents
	//
	// Returns:
	//   - error: nil on acceptance, ErrUnsupportedModel for rejected files
	LoadModel(name string, data []byte) error

	// SetEnvironment hands off an environment (HDRI) image for image-based
	// sky lighting. On failure the engine keeps the procedural sky.
	//
	// Parameters:
	//   - name: display name of the file
	//   - data: raw file contents
	//
	// Returns:
	//   - error: nil on acceptance
	SetEnvironment(name string, data []byte) error

	// ClearEnvironment drops any loaded environment image, falling back to
	// the procedural sky driven by ApplyLighting.
	ClearEnvironment()

	// RaycastToWorldPoint intersects a ray through the given screen pixel
	// with the scene's interactive surface.
	//
	// Parameters:
	//   - screenX, screenY: pixel coordinates, origin top-left
	//
	// Returns:
	//   - [3]float32: the world-space intersection point
	//   - bool: false if the ray hits nothing interactive
	RaycastToWorldPoint(screenX, screenY float32) ([3]float32, bool)

	// PickMarker reports the annotation marker under the given screen pixel,
	// if any.
	//
	// Parameters:
	//   - screenX, screenY: pixel coordinates, origin top-left
	//
	// Returns:
	//   - string: the hit marker's annotation ID
	//   - bool: false if no marker is under the pixel
	PickMarker(screenX, screenY float32) (string, bool)

	// RenderFrame draws one frame with the current configuration.
	//
	// Returns:
	//   - error: ErrSurfaceLost (possibly wrapped) when the surface is gone;
	//     other errors for non-recoverable draw failures
	RenderFrame() error

	// Reinitialize recreates the render surface after a loss. Scene
	// configuration (lighting, markers, model) is retained.
	//
	// Returns:
	//   - error: error if the surface could not be recreated
	Reinitialize() error

	// Resize reconfigures the surface for a new framebuffer size in pixels.
	//
	// Parameters:
	//   - width, height: new framebuffer dimensions
	Resize(width, height int)

	// Release frees GPU resources. The engine is unusable afterwards.
	Release()
}
