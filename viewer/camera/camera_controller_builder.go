package camera

// ControllerBuilderOption is a functional option for configuring a
// controllerImpl. Use the With* functions to create options.
type ControllerBuilderOption func(c *controllerImpl)

// WithNavMode is an option builder that sets the initial navigation mode.
//
// Parameters:
//   - mode: the starting mode
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithNavMode(mode NavMode) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.mode = mode
	}
}

// WithTarget is an option builder that sets the initial look-at point.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithTarget(x, y, z float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.target = [3]float32{x, y, z}
	}
}

// WithRadius is an option builder that sets the initial orbit radius.
//
// Parameters:
//   - radius: distance from target in world units
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithRadius(radius float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.radius = radius
	}
}

// WithRadiusBounds is an option builder that sets the zoom distance limits.
//
// Parameters:
//   - minRadius: minimum zoom distance
//   - maxRadius: maximum zoom distance
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithRadiusBounds(minRadius, maxRadius float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.minRadius = minRadius
		c.maxRadius = maxRadius
	}
}

// WithElevationBounds is an option builder that sets the vertical angle
// limits in radians.
//
// Parameters:
//   - minElevation: minimum elevation in radians
//   - maxElevation: maximum elevation in radians
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithElevationBounds(minElevation, maxElevation float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.minElevation = minElevation
		c.maxElevation = maxElevation
	}
}

// WithMouseSensitivity is an option builder that sets the drag-to-radians
// multiplier for Rotate.
//
// Parameters:
//   - sensitivity: multiplier for pointer movement
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithMouseSensitivity(sensitivity float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed is an option builder that sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithZoomSpeed(speed float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.zoomSpeed = speed
	}
}

// WithPanSpeed is an option builder that sets the pan/dolly speed multiplier.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithPanSpeed(speed float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.panSpeed = speed
	}
}
