package annotation

import "github.com/rs/zerolog"

// ControllerBuilderOption is a functional option for configuring a
// controllerImpl. Use the With* functions to create options.
type ControllerBuilderOption func(c *controllerImpl)

// WithStore is an option builder that supplies an existing annotation store
// instead of creating a fresh empty one.
//
// Parameters:
//   - store: the store to use
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithStore(store Store) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.store = store
	}
}

// WithLogger is an option builder that attaches a logger for debug-level
// interaction tracing. The default is a no-op logger.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithLogger(log zerolog.Logger) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.log = log
	}
}
