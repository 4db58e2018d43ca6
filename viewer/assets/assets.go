// package assets loads model and environment files off the render thread.
// Reads run on a bounded worker pool; completed loads come back on a results
// channel the viewer drains once per frame, so a slow disk or network mount
// never stalls input handling.
package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/rs/zerolog"
)

// ErrUnsupportedAsset is returned in a Result when a file's extension is not
// one the loader accepts.
var ErrUnsupportedAsset = errors.New("assets: unsupported file type")

// Kind distinguishes what a loaded asset is for.
type Kind int

const (
	// KindModel is a mesh file destined for the scene engine.
	KindModel Kind = iota
	// KindEnvironment is a sky image for image-based lighting.
	KindEnvironment
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// Result is one completed load, successful or not.
type Result struct {
	// Kind reports what the asset is for.
	Kind Kind

	// Name is the base name of the requested file, for logs and the UI.
	Name string

	// Data is the raw file contents. Nil when Err is set.
	Data []byte

	// Err is non-nil when the load failed. The viewer surfaces it and keeps
	// the previous asset in place.
	Err error
}

var modelExtensions = map[string]bool{
	".glb":  true,
	".gltf": true,
	".obj":  true,
	".stl":  true,
}

var environmentExtensions = map[string]bool{
	".hdr": true,
	".exr": true,
	".png": true,
	".jpg": true,
}

// Loader queues asset file loads and delivers them asynchronously.
type Loader interface {
	// LoadModel queues a mesh file load. Validation of the extension happens
	// immediately; the read itself runs on the worker pool and its outcome
	// arrives on Results.
	//
	// Parameters:
	//   - path: filesystem path of the mesh file
	LoadModel(path string)

	// LoadEnvironment queues an environment image load. The read is bounded
	// by the configured timeout; on expiry a failed Result is delivered and
	// the viewer keeps its procedural sky.
	//
	// Parameters:
	//   - path: filesystem path of the environment image
	LoadEnvironment(path string)

	// Results returns the channel completed loads arrive on. The channel is
	// closed by Close after all in-flight loads have been delivered.
	//
	// Returns:
	//   - <-chan Result: the delivery channel
	Results() <-chan Result

	// Close waits for in-flight loads to finish and closes the results
	// channel. The loader accepts no new loads afterwards.
	Close()
}

// loaderImpl is the implementation of the Loader interface.
type loaderImpl struct {
	mu  *sync.Mutex
	log zerolog.Logger

	pool    worker.DynamicWorkerPool
	results chan Result

	inflight sync.WaitGroup
	closed   bool
	nextID   int

	envTimeout time.Duration
}

var _ Loader = &loaderImpl{}

// NewLoader creates an asset loader with its own worker pool.
//
// Parameters:
//   - options: functional options to configure the loader
//
// Returns:
//   - Loader: the newly created loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loaderImpl{
		mu:         &sync.Mutex{},
		log:        zerolog.Nop(),
		results:    make(chan Result, 16),
		envTimeout: 10 * time.Second,
	}
	for _, option := range options {
		option(l)
	}
	// Two workers cover the common case of a model and an environment queued
	// back to back without starving either.
	l.pool = worker.NewDynamicWorkerPool(2, 32, 1*time.Second)
	return l
}

func (l *loaderImpl) LoadModel(path string) {
	l.submit(KindModel, path, modelExtensions, 0)
}

func (l *loaderImpl) LoadEnvironment(path string) {
	l.submit(KindEnvironment, path, environmentExtensions, l.envTimeout)
}

// submit validates the extension and queues the read. A validation failure is
// delivered as a Result rather than returned, so callers have a single place
// to observe load outcomes.
func (l *loaderImpl) submit(kind Kind, path string, accepted map[string]bool, timeout time.Duration) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))
	if !accepted[ext] {
		l.inflight.Add(1)
		l.mu.Unlock()
		l.deliver(Result{
			Kind: kind,
			Name: name,
			Err:  fmt.Errorf("%w: %s", ErrUnsupportedAsset, ext),
		})
		return
	}

	l.inflight.Add(1)
	id := l.nextID
	l.nextID++
	l.mu.Unlock()

	l.log.Debug().Str("kind", kind.String()).Str("file", name).Msg("asset load queued")
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			data, err := readWithTimeout(path, timeout)
			if err != nil {
				l.log.Warn().Err(err).Str("file", name).Msg("asset load failed")
				l.deliver(Result{Kind: kind, Name: name, Err: err})
				return nil, nil
			}
			l.deliver(Result{Kind: kind, Name: name, Data: data})
			return nil, nil
		},
	})
}

// deliver sends one result and marks the load finished.
func (l *loaderImpl) deliver(result Result) {
	l.results <- result
	l.inflight.Done()
}

func (l *loaderImpl) Results() <-chan Result {
	return l.results
}

func (l *loaderImpl) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	l.inflight.Wait()
	close(l.results)
}

// readWithTimeout reads the file, abandoning the wait when the timeout
// elapses. A timeout of zero waits indefinitely.
func readWithTimeout(path string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		return os.ReadFile(path)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	type readResult struct {
		data []byte
		err  error
	}
	done := make(chan readResult, 1)
	go func() {
		data, err := os.ReadFile(path)
		done <- readResult{data: data, err: err}
	}()

	select {
	case r := <-done:
		return r.data, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("assets: reading %s: %w", filepath.Base(path), ctx.Err())
	}
}
