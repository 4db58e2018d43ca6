// package camera provides the viewer's navigation controller. It owns
// positional state only (position, target, spherical offsets); projection
// matrices are the scene engine's concern.
package camera

import "fmt"

// NavMode selects how pointer input steers the camera.
type NavMode int

const (
	// NavModeOrbit pivots the camera around the model: drags rotate the
	// camera about the target point, scroll changes the orbit radius.
	NavModeOrbit NavMode = iota

	// NavModeFly is first-person navigation: drags turn the view about the
	// camera's own position, scroll and pan translate through the scene.
	NavModeFly
)

// String returns the lower-case name of the mode.
func (m NavMode) String() string {
	switch m {
	case NavModeOrbit:
		return "orbit"
	case NavModeFly:
		return "fly"
	default:
		return "unknown"
	}
}

// ParseNavMode converts a config string into a NavMode.
//
// Parameters:
//   - s: "orbit" or "fly"
//
// Returns:
//   - NavMode: the parsed mode
//   - error: error for unrecognized names
func ParseNavMode(s string) (NavMode, error) {
	switch s {
	case "orbit":
		return NavModeOrbit, nil
	case "fly":
		return NavModeFly, nil
	default:
		return NavModeOrbit, fmt.Errorf("camera: unknown nav mode %q", s)
	}
}

// Controller defines the viewer's camera control surface. A single
// controller instance supports both navigation modes; switching modes keeps
// the current pose and only changes which point future rotations pivot
// around. Thread-safe for concurrent access.
type Controller interface {
	// NavMode returns the active navigation mode.
	//
	// Returns:
	//   - NavMode: the current mode
	NavMode() NavMode

	// SetNavMode switches the navigation mode in place. The camera pose is
	// unchanged — only the pivot of subsequent rotations moves.
	//
	// Parameters:
	//   - mode: the mode to activate
	SetNavMode(mode NavMode)

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - [3]float32: world-space camera position
	Position() [3]float32

	// Target returns the look-at point.
	//
	// Returns:
	//   - [3]float32: world-space target position
	Target() [3]float32

	// SetTarget sets the look-at/pivot point and recomputes the camera
	// position from the spherical offset.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// Rotate applies a pointer drag. In orbit mode the camera swings around
	// the target; in fly mode the view turns around the camera position.
	// Deltas are in pixels and scaled by the mouse sensitivity.
	//
	// Parameters:
	//   - dx: horizontal drag delta
	//   - dy: vertical drag delta
	Rotate(dx, dy float32)

	// Zoom adjusts the camera along its view axis. In orbit mode it changes
	// the orbit radius (clamped to bounds); in fly mode it dollies the whole
	// pose forward or back. Positive delta moves closer.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Pan translates position and target together along the camera's local
	// right and up axes, preserving the orbit relationship.
	//
	// Parameters:
	//   - dx: pan amount along the local right axis
	//   - dy: pan amount along the local up axis
	Pan(dx, dy float32)

	// Dolly translates position and target together along the camera's
	// local forward axis.
	//
	// Parameters:
	//   - delta: dolly amount scaled by PanSpeed
	Dolly(delta float32)

	// Radius returns the current distance between camera and target.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the vertical angle from the horizontal plane in
	// radians.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32
}
