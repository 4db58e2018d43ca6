package camera

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/helios3d/helios-go/common"
)

// controllerImpl is the single implementation of Controller. The pose is
// stored as a target point plus spherical offsets (radius, azimuth,
// elevation); orbit rotations recompute the position from the offset, fly
// rotations recompute the target instead.
type controllerImpl struct {
	mu *sync.Mutex

	mode NavMode

	position [3]float32
	target   [3]float32

	radius    float32
	azimuth   float32 // horizontal angle around Y
	elevation float32 // vertical angle from the horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
}

var _ Controller = &controllerImpl{}

// NewController creates a camera controller with defaults sized for a
// model-viewer scene: the camera starts on a gentle elevation a dozen units
// from the origin in orbit mode.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		mu:     &sync.Mutex{},
		mode:   NavModeOrbit,
		target: [3]float32{0, 0, 0},

		radius:    12.0,
		azimuth:   0.0,
		elevation: math32.Pi / 6,

		minRadius:    1.0,
		maxRadius:    200.0,
		minElevation: -math32.Pi/2 + 0.05,
		maxElevation: math32.Pi/2 - 0.05,

		mouseSensitivity: 0.005,
		zoomSpeed:        1.0,
		panSpeed:         0.01,
	}
	for _, option := range options {
		option(c)
	}
	c.updatePosition()
	return c
}

// sphericalOffset returns the offset from target to position implied by the
// current radius/azimuth/elevation. Caller must hold the mutex.
func (c *controllerImpl) sphericalOffset() [3]float32 {
	cosElev := math32.Cos(c.elevation)
	return [3]float32{
		c.radius * cosElev * math32.Sin(c.azimuth),
		c.radius * math32.Sin(c.elevation),
		c.radius * cosElev * math32.Cos(c.azimuth),
	}
}

// updatePosition recomputes the camera position from the spherical offset,
// keeping the target fixed. Caller must hold the mutex.
func (c *controllerImpl) updatePosition() {
	c.position = common.Add3(c.target, c.sphericalOffset())
}

// updateTarget recomputes the target from the spherical offset, keeping the
// camera position fixed. Used by fly-mode rotation. Caller must hold the
// mutex.
func (c *controllerImpl) updateTarget() {
	c.target = common.Sub3(c.position, c.sphericalOffset())
}

// localAxes computes the camera's local right, up, and forward axes from the
// current pose, with world up (0, 1, 0). Zero vectors if position and target
// coincide. Caller must hold the mutex.
func (c *controllerImpl) localAxes() (right, up, forward [3]float32) {
	forward = common.Normalize3(common.Sub3(c.target, c.position))
	if common.Length3(forward) == 0 {
		return
	}
	right = common.Normalize3(common.Cross3(forward, [3]float32{0, 1, 0}))
	if common.Length3(right) == 0 {
		return
	}
	up = common.Cross3(right, forward)
	return
}

// clampElevation applies the elevation bounds. Caller must hold the mutex.
func (c *controllerImpl) clampElevation() {
	c.elevation = common.Clamp(c.elevation, c.minElevation, c.maxElevation)
}

// clampRadius applies the radius bounds. Caller must hold the mutex.
func (c *controllerImpl) clampRadius() {
	c.radius = common.Clamp(c.radius, c.minRadius, c.maxRadius)
}

func (c *controllerImpl) NavMode() NavMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *controllerImpl) SetNavMode(mode NavMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
}

func (c *controllerImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *controllerImpl) Target() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *controllerImpl) SetTarget(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = [3]float32{x, y, z}
	c.updatePosition()
}

func (c *controllerImpl) Rotate(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.azimuth -= dx * c.mouseSensitivity
	c.elevation += dy * c.mouseSensitivity
	c.clampElevation()

	switch c.mode {
	case NavModeFly:
		// The view turns; the camera stays put.
		c.updateTarget()
	default:
		// The camera swings around the target.
		c.updatePosition()
	}
}

func (c *controllerImpl) Zoom(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == NavModeFly {
		c.dollyLocked(delta * c.zoomSpeed)
		return
	}
	c.radius -= delta * c.zoomSpeed
	c.clampRadius()
	c.updatePosition()
}

func (c *controllerImpl) Pan(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	right, up, _ := c.localAxes()
	offset := common.Add3(
		common.Scale3(right, dx*c.panSpeed*c.radius),
		common.Scale3(up, dy*c.panSpeed*c.radius),
	)
	c.position = common.Add3(c.position, offset)
	c.target = common.Add3(c.target, offset)
}

func (c *controllerImpl) Dolly(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dollyLocked(delta)
}

// dollyLocked translates position and target along the forward axis.
// Caller must hold the mutex.
func (c *controllerImpl) dollyLocked(delta float32) {
	_, _, forward := c.localAxes()
	offset := common.Scale3(forward, delta*c.panSpeed*c.radius)
	c.position = common.Add3(c.position, offset)
	c.target = common.Add3(c.target, offset)
}

func (c *controllerImpl) Radius() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.radius
}

func (c *controllerImpl) SetRadius(radius float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.radius = radius
	c.clampRadius()
	c.updatePosition()
}

func (c *controllerImpl) Azimuth() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.azimuth
}

func (c *controllerImpl) Elevation() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elevation
}
