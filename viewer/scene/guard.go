package scene

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/helios3d/helios-go/viewer/lighting"
)

// ErrSurfaceFailed is returned by a guarded RenderFrame once the automatic
// retry budget is exhausted. The state persists until Retry is invoked.
var ErrSurfaceFailed = errors.New("scene: render surface failed, manual retry required")

// DefaultMaxRetries is the automatic reinitialization budget after a surface
// loss before the guard gives up and waits for a manual retry.
const DefaultMaxRetries = 3

// Status describes the render surface as seen through the guard.
type Status int

const (
	// StatusOK means frames are rendering normally.
	StatusOK Status = iota

	// StatusLost means the surface was lost and automatic recovery is in
	// progress.
	StatusLost

	// StatusFailed means the automatic retry budget is exhausted; only a
	// manual Retry can leave this state.
	StatusFailed
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusLost:
		return "lost"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// guardImpl is the implementation of the Guard interface.
type guardImpl struct {
	mu *sync.Mutex

	engine Engine
	log    zerolog.Logger

	maxRetries int
	attempts   int
	status     Status
}

// Guard is a supervisory wrapper around a scene Engine. It passes scene
// configuration straight through and intercepts only the render path: a
// surface loss triggers automatic reinitialization attempts, bounded by a
// retry budget, after which the guard surfaces a persistent failure that a
// manual Retry can clear. Annotation and lighting state live outside the
// guard and are never affected by its status.
type Guard interface {
	Engine

	// Status reports the current surface status.
	//
	// Returns:
	//   - Status: StatusOK, StatusLost, or StatusFailed
	Status() Status

	// Retry is the manual recovery action for StatusFailed. It resets the
	// automatic retry budget and attempts one reinitialization immediately.
	//
	// Returns:
	//   - bool: true if the surface came back
	Retry() bool
}

var _ Guard = &guardImpl{}

// NewGuard wraps a scene engine in a render-surface guard.
//
// Parameters:
//   - engine: the engine to supervise (must not be nil)
//   - options: functional options to configure the guard
//
// Returns:
//   - Guard: the newly created guard
func NewGuard(engine Engine, options ...GuardBuilderOption) Guard {
	if engine == nil {
		panic("scene: NewGuard requires a non-nil Engine")
	}
	g := &guardImpl{
		mu:         &sync.Mutex{},
		engine:     engine,
		log:        zerolog.Nop(),
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *guardImpl) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

func (g *guardImpl) RenderFrame() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status == StatusFailed {
		return ErrSurfaceFailed
	}

	err := g.engine.RenderFrame()
	if err == nil {
		// A clean frame after a recovery closes the incident and restores
		// the full retry budget.
		if g.status != StatusOK || g.attempts != 0 {
			g.status = StatusOK
			g.attempts = 0
		}
		return nil
	}

	if !errors.Is(err, ErrSurfaceLost) {
		// Non-surface draw failures are not the guard's to recover.
		return err
	}

	g.status = StatusLost
	if g.attempts >= g.maxRetries {
		g.status = StatusFailed
		g.log.Error().Int("attempts", g.attempts).Msg("surface retry budget exhausted")
		return ErrSurfaceFailed
	}

	// One automatic reinitialization attempt per lost frame.
	g.attempts++
	g.log.Warn().Int("attempt", g.attempts).Int("budget", g.maxRetries).
		Msg("render surface lost, reinitializing")
	if rerr := g.engine.Reinitialize(); rerr != nil {
		g.log.Warn().Err(rerr).Msg("surface reinitialization failed")
		if g.attempts >= g.maxRetries {
			g.status = StatusFailed
			return ErrSurfaceFailed
		}
		return err
	}

	// Surface is back; the frame itself was skipped. The budget is restored
	// only once a subsequent frame renders cleanly, so a flapping surface
	// still runs out of attempts.
	g.status = StatusOK
	return nil
}

func (g *guardImpl) Retry() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.attempts = 0
	g.log.Info().Msg("manual surface retry")
	if err := g.engine.Reinitialize(); err != nil {
		g.log.Warn().Err(err).Msg("manual surface retry failed")
		g.status = StatusFailed
		return false
	}
	g.status = StatusOK
	return true
}

func (g *guardImpl) Reinitialize() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.Reinitialize()
}

// --- configuration pass-throughs (unaffected by surface status) ---

func (g *guardImpl) ApplyLighting(state lighting.State) {
	g.engine.ApplyLighting(state)
}

func (g *guardImpl) SetMarkers(markers []Marker) {
	g.engine.SetMarkers(markers)
}

func (g *guardImpl) LoadModel(name string, data []byte) error {
	return g.engine.LoadModel(name, data)
}

func (g *guardImpl) SetEnvironment(name string, data []byte) error {
	return g.engine.SetEnvironment(name, data)
}

func (g *guardImpl) ClearEnvironment() {
	g.engine.ClearEnvironment()
}

func (g *guardImpl) RaycastToWorldPoint(screenX, screenY float32) ([3]float32, bool) {
	return g.engine.RaycastToWorldPoint(screenX, screenY)
}

func (g *guardImpl) PickMarker(screenX, screenY float32) (string, bool) {
	return g.engine.PickMarker(screenX, screenY)
}

func (g *guardImpl) Resize(width, height int) {
	g.engine.Resize(width, height)
}

func (g *guardImpl) Release() {
	g.engine.Release()
}
