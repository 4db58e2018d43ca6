package assets

import (
	"time"

	"github.com/rs/zerolog"
)

// LoaderBuilderOption is a functional option for configuring a loaderImpl.
// Use the With* functions to create options.
type LoaderBuilderOption func(l *loaderImpl)

// WithEnvironmentTimeout sets how long an environment image read may take
// before the load is abandoned and the procedural sky is kept.
//
// Parameters:
//   - timeout: maximum read duration; values <= 0 disable the timeout
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithEnvironmentTimeout(timeout time.Duration) LoaderBuilderOption {
	return func(l *loaderImpl) {
		l.envTimeout = timeout
	}
}

// WithResultBuffer sets the capacity of the results channel.
//
// Parameters:
//   - size: channel buffer size; values < 1 are ignored
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithResultBuffer(size int) LoaderBuilderOption {
	return func(l *loaderImpl) {
		if size >= 1 {
			l.results = make(chan Result, size)
		}
	}
}

// WithLoaderLogger sets the structured logger for the loader.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithLoaderLogger(log zerolog.Logger) LoaderBuilderOption {
	return func(l *loaderImpl) {
		l.log = log
	}
}
