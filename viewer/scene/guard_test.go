package scene

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios3d/helios-go/viewer/lighting"
)

// stubEngine is a scriptable Engine for guard tests.
type stubEngine struct {
	renderErr   error
	renderCalls int

	reinitErr    error
	reinitCalls  int
	reinitHeals  bool // successful Reinitialize clears renderErr
	lastLighting lighting.State
	lastMarkers  []Marker
}

func (s *stubEngine) ApplyLighting(state lighting.State)    { s.lastLighting = state }
func (s *stubEngine) SetMarkers(markers []Marker)           { s.lastMarkers = markers }
func (s *stubEngine) LoadModel(string, []byte) error        { return nil }
func (s *stubEngine) SetEnvironment(string, []byte) error   { return nil }
func (s *stubEngine) ClearEnvironment()                     {}
func (s *stubEngine) Resize(int, int)                       {}
func (s *stubEngine) Release()                              {}
func (s *stubEngine) PickMarker(x, y float32) (string, bool) { return "", false }

func (s *stubEngine) RaycastToWorldPoint(x, y float32) ([3]float32, bool) {
	return [3]float32{x, 0, y}, true
}

func (s *stubEngine) RenderFrame() error {
	s.renderCalls++
	return s.renderErr
}

func (s *stubEngine) Reinitialize() error {
	s.reinitCalls++
	if s.reinitErr != nil {
		return s.reinitErr
	}
	if s.reinitHeals {
		s.renderErr = nil
	}
	return nil
}

func TestGuardHealthyPassThrough(t *testing.T) {
	eng := &stubEngine{}
	g := NewGuard(eng)

	require.NoError(t, g.RenderFrame())
	assert.Equal(t, StatusOK, g.Status())
	assert.Equal(t, 1, eng.renderCalls)
	assert.Zero(t, eng.reinitCalls)
}

func TestGuardRecoversFromSurfaceLoss(t *testing.T) {
	eng := &stubEngine{renderErr: ErrSurfaceLost, reinitHeals: true}
	g := NewGuard(eng)

	// The lost frame itself is skipped, but recovery succeeds.
	require.NoError(t, g.RenderFrame())
	assert.Equal(t, StatusOK, g.Status())
	assert.Equal(t, 1, eng.reinitCalls)

	// The next frame renders cleanly.
	require.NoError(t, g.RenderFrame())
	assert.Equal(t, StatusOK, g.Status())
}

func TestGuardDetectsWrappedSurfaceLoss(t *testing.T) {
	eng := &stubEngine{
		renderErr:   fmt.Errorf("acquire swapchain texture: %w", ErrSurfaceLost),
		reinitHeals: true,
	}
	g := NewGuard(eng)

	require.NoError(t, g.RenderFrame())
	assert.Equal(t, 1, eng.reinitCalls)
}

func TestGuardExhaustsRetryBudget(t *testing.T) {
	eng := &stubEngine{renderErr: ErrSurfaceLost, reinitErr: errors.New("device gone")}
	g := NewGuard(eng, WithMaxRetries(3))

	// Attempts 1 and 2 report the loss, attempt 3 exhausts the budget.
	assert.ErrorIs(t, g.RenderFrame(), ErrSurfaceLost)
	assert.Equal(t, StatusLost, g.Status())
	assert.ErrorIs(t, g.RenderFrame(), ErrSurfaceLost)
	assert.ErrorIs(t, g.RenderFrame(), ErrSurfaceFailed)
	assert.Equal(t, StatusFailed, g.Status())
	assert.Equal(t, 3, eng.reinitCalls)

	// Failed state is persistent: the engine is no longer asked to render.
	rendered := eng.renderCalls
	assert.ErrorIs(t, g.RenderFrame(), ErrSurfaceFailed)
	assert.Equal(t, rendered, eng.renderCalls)
}

func TestGuardFlappingSurfaceStillExhausts(t *testing.T) {
	// Reinitialize always "succeeds" but the surface is lost again on every
	// frame, so the budget is never restored by a clean frame.
	eng := &stubEngine{renderErr: ErrSurfaceLost}
	g := NewGuard(eng, WithMaxRetries(3))

	require.NoError(t, g.RenderFrame())
	require.NoError(t, g.RenderFrame())
	require.NoError(t, g.RenderFrame())
	assert.ErrorIs(t, g.RenderFrame(), ErrSurfaceFailed)
	assert.Equal(t, StatusFailed, g.Status())
}

func TestGuardManualRetry(t *testing.T) {
	eng := &stubEngine{renderErr: ErrSurfaceLost, reinitErr: errors.New("device gone")}
	g := NewGuard(eng, WithMaxRetries(1))

	assert.ErrorIs(t, g.RenderFrame(), ErrSurfaceFailed)
	require.Equal(t, StatusFailed, g.Status())

	// Manual retry while the device is still gone stays failed.
	assert.False(t, g.Retry())
	assert.Equal(t, StatusFailed, g.Status())

	// Device comes back: retry restores service and the budget.
	eng.reinitErr = nil
	eng.reinitHeals = true
	assert.True(t, g.Retry())
	assert.Equal(t, StatusOK, g.Status())
	require.NoError(t, g.RenderFrame())
}

func TestGuardPassesThroughOtherErrors(t *testing.T) {
	drawErr := errors.New("validation error")
	eng := &stubEngine{renderErr: drawErr}
	g := NewGuard(eng)

	assert.ErrorIs(t, g.RenderFrame(), drawErr)
	assert.Equal(t, StatusOK, g.Status(), "non-surface errors are not the guard's incident")
	assert.Zero(t, eng.reinitCalls)
}

func TestGuardConfigurationUnaffectedByFailure(t *testing.T) {
	eng := &stubEngine{renderErr: ErrSurfaceLost, reinitErr: errors.New("device gone")}
	g := NewGuard(eng, WithMaxRetries(1))
	assert.ErrorIs(t, g.RenderFrame(), ErrSurfaceFailed)

	// Lighting and marker configuration still flows to the engine so the
	// scene is current the moment the surface comes back.
	state := lighting.Compute(21, true)
	g.ApplyLighting(state)
	g.SetMarkers([]Marker{{ID: "a", Position: [3]float32{1, 2, 3}}})

	assert.Equal(t, state, eng.lastLighting)
	require.Len(t, eng.lastMarkers, 1)
	assert.Equal(t, "a", eng.lastMarkers[0].ID)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "lost", StatusLost.String())
	assert.Equal(t, "failed", StatusFailed.String())
}
