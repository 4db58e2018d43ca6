package scene

import "github.com/rs/zerolog"

// GuardBuilderOption is a functional option for configuring a guardImpl.
// Use the With* functions to create options.
type GuardBuilderOption func(g *guardImpl)

// WithMaxRetries is an option builder that sets the automatic
// reinitialization budget after a surface loss. Values below 1 keep the
// default.
//
// Parameters:
//   - maxRetries: automatic attempts before StatusFailed
//
// Returns:
//   - GuardBuilderOption: option function to apply
func WithMaxRetries(maxRetries int) GuardBuilderOption {
	return func(g *guardImpl) {
		if maxRetries >= 1 {
			g.maxRetries = maxRetries
		}
	}
}

// WithGuardLogger is an option builder that attaches a logger for surface
// lifecycle events. The default is a no-op logger.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - GuardBuilderOption: option function to apply
func WithGuardLogger(log zerolog.Logger) GuardBuilderOption {
	return func(g *guardImpl) {
		g.log = log
	}
}
