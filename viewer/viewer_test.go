package viewer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios3d/helios-go/viewer/assets"
	"github.com/helios3d/helios-go/viewer/lighting"
	"github.com/helios3d/helios-go/viewer/scene"
)

// fakeEngine is a controllable scene.Engine for driving the viewer without a
// GPU. Pick and raycast results are scripted per test.
type fakeEngine struct {
	mu sync.Mutex

	lightingApplied bool
	lightingState   lighting.State
	markers         []scene.Marker

	pickID  string
	pickOK  bool
	rayHit  [3]float32
	rayOK   bool
	loadErr error
	envErr  error

	modelName string
	envName   string

	renderErr error
	reinitErr error
}

func (f *fakeEngine) ApplyLighting(state lighting.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lightingApplied = true
	f.lightingState = state
}

func (f *fakeEngine) SetMarkers(markers []scene.Marker) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markers = append([]scene.Marker(nil), markers...)
}

func (f *fakeEngine) LoadModel(name string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return f.loadErr
	}
	f.modelName = name
	return nil
}

func (f *fakeEngine) SetEnvironment(name string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.envErr != nil {
		return f.envErr
	}
	f.envName = name
	return nil
}

func (f *fakeEngine) ClearEnvironment() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.envName = ""
}

func (f *fakeEngine) RaycastToWorldPoint(x, y float32) ([3]float32, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rayHit, f.rayOK
}

func (f *fakeEngine) PickMarker(x, y float32) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pickID, f.pickOK
}

func (f *fakeEngine) RenderFrame() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renderErr
}

func (f *fakeEngine) Reinitialize() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reinitErr
}

func (f *fakeEngine) Resize(width, height int) {}
func (f *fakeEngine) Release()                 {}

func (f *fakeEngine) currentMarkers() []scene.Marker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]scene.Marker(nil), f.markers...)
}

func newTestViewer(t *testing.T, engine *fakeEngine, options ...ViewerBuilderOption) *viewerImpl {
	t.Helper()
	v, err := NewViewer(engine, options...)
	require.NoError(t, err)
	return v.(*viewerImpl)
}

func TestNewViewerRequiresEngine(t *testing.T) {
	_, err := NewViewer(nil)
	assert.Error(t, err)
}

func TestNewViewerPushesInitialLighting(t *testing.T) {
	engine := &fakeEngine{}
	v := newTestViewer(t, engine)

	assert.True(t, engine.lightingApplied)
	assert.Equal(t, float32(12), v.TimeOfDay())
	assert.InDelta(t, 1.0, engine.lightingState.SunIntensity, 1e-5, "noon sun at full intensity")
}

func TestSetTimeOfDayWrapsAndReapplies(t *testing.T) {
	engine := &fakeEngine{}
	v := newTestViewer(t, engine)

	v.SetTimeOfDay(25)
	assert.InDelta(t, 1.0, v.TimeOfDay(), 1e-5, "hours wrap at 24")
	assert.True(t, engine.lightingState.IsNight)

	v.SetTimeOfDay(-2)
	assert.InDelta(t, 22.0, v.TimeOfDay(), 1e-4, "negative hours wrap up")
}

func TestNightLightsToggleReachesEngine(t *testing.T) {
	engine := &fakeEngine{}
	v := newTestViewer(t, engine, WithTimeOfDay(23))

	assert.Empty(t, engine.lightingState.PointLights)

	v.SetNightLights(true)
	assert.Len(t, engine.lightingState.PointLights, 3)

	v.SetNightLights(false)
	assert.Empty(t, engine.lightingState.PointLights)
}

func TestClickPlacesAnnotationWhenArmed(t *testing.T) {
	engine := &fakeEngine{rayHit: [3]float32{1, 0, 2}, rayOK: true}
	v := newTestViewer(t, engine)

	v.Annotations().ArmPlacement()
	v.PointerDown(100, 100)
	v.PointerUp(101, 101)

	all := v.Annotations().Store().All()
	require.Len(t, all, 1)
	assert.Equal(t, [3]float32{1, 0, 2}, all[0].Position)
	assert.False(t, v.Annotations().PlacementArmed(), "placement consumed")

	markers := engine.currentMarkers()
	require.Len(t, markers, 1)
	assert.Equal(t, all[0].ID, markers[0].ID)
}

func TestDragGestureDoesNotPlace(t *testing.T) {
	engine := &fakeEngine{rayHit: [3]float32{1, 0, 2}, rayOK: true}
	v := newTestViewer(t, engine)

	v.Annotations().ArmPlacement()
	azimuthBefore := v.Camera().Azimuth()

	v.PointerDown(100, 100)
	v.PointerMove(160, 100)
	v.PointerUp(160, 100)

	assert.Empty(t, v.Annotations().Store().All(), "a camera drag is not a click")
	assert.True(t, v.Annotations().PlacementArmed(), "placement survives camera gestures")
	assert.NotEqual(t, azimuthBefore, v.Camera().Azimuth(), "the gesture rotated the camera")
}

func TestUnarmedClickIsIgnored(t *testing.T) {
	engine := &fakeEngine{rayHit: [3]float32{1, 0, 2}, rayOK: true}
	v := newTestViewer(t, engine)

	v.PointerDown(100, 100)
	v.PointerUp(100, 100)

	assert.Empty(t, v.Annotations().Store().All())
}

func TestMarkerDragCommitFlow(t *testing.T) {
	engine := &fakeEngine{rayHit: [3]float32{0, 0, 0}, rayOK: true}
	v := newTestViewer(t, engine)

	a := v.Annotations().Store().Add([3]float32{1, 0, 1})
	engine.pickID, engine.pickOK = a.ID, true

	v.PointerDown(50, 50)
	_, dragging := v.Annotations().DraggingID()
	require.True(t, dragging, "down on a marker begins its drag")

	engine.rayHit = [3]float32{4, 0, -3}
	v.PointerMove(60, 60)

	markers := engine.currentMarkers()
	require.Len(t, markers, 1)
	assert.Equal(t, [3]float32{4, 0, -3}, markers[0].Position, "markers show the live preview")
	assert.True(t, markers[0].Emphasized)

	got, ok := v.Annotations().Store().Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, [3]float32{1, 0, 1}, got.Position, "committed position untouched mid-drag")

	v.PointerUp(60, 60)
	got, _ = v.Annotations().Store().Get(a.ID)
	assert.Equal(t, [3]float32{4, 0, -3}, got.Position, "release commits the preview")
	_, dragging = v.Annotations().DraggingID()
	assert.False(t, dragging)

	markers = engine.currentMarkers()
	require.Len(t, markers, 1)
	assert.False(t, markers[0].Emphasized, "emphasis drops on commit")
}

func TestMarkerDragSuppressesCamera(t *testing.T) {
	engine := &fakeEngine{rayHit: [3]float32{0, 0, 0}, rayOK: true}
	v := newTestViewer(t, engine)

	a := v.Annotations().Store().Add([3]float32{1, 0, 1})
	engine.pickID, engine.pickOK = a.ID, true

	azimuthBefore := v.Camera().Azimuth()
	v.PointerDown(50, 50)
	v.PointerMove(200, 50)
	v.PointerUp(200, 50)

	assert.Equal(t, azimuthBefore, v.Camera().Azimuth(), "marker drags never rotate the camera")
}

func TestOffSurfaceMoveKeepsLastPreview(t *testing.T) {
	engine := &fakeEngine{rayHit: [3]float32{0, 0, 0}, rayOK: true}
	v := newTestViewer(t, engine)

	a := v.Annotations().Store().Add([3]float32{1, 0, 1})
	engine.pickID, engine.pickOK = a.ID, true

	v.PointerDown(50, 50)
	engine.rayHit = [3]float32{2, 0, 2}
	v.PointerMove(55, 55)

	engine.rayOK = false
	v.PointerMove(300, 300)

	markers := engine.currentMarkers()
	require.Len(t, markers, 1)
	assert.Equal(t, [3]float32{2, 0, 2}, markers[0].Position, "off-surface moves keep the last good preview")
}

func TestPointerLeaveCancelsDrag(t *testing.T) {
	engine := &fakeEngine{rayHit: [3]float32{0, 0, 0}, rayOK: true}
	v := newTestViewer(t, engine)

	a := v.Annotations().Store().Add([3]float32{1, 0, 1})
	engine.pickID, engine.pickOK = a.ID, true

	v.PointerDown(50, 50)
	engine.rayHit = [3]float32{9, 0, 9}
	v.PointerMove(60, 60)
	v.PointerLeave()

	got, _ := v.Annotations().Store().Get(a.ID)
	assert.Equal(t, [3]float32{1, 0, 1}, got.Position, "leave discards the preview")
	_, dragging := v.Annotations().DraggingID()
	assert.False(t, dragging)
}

func TestScrollZoomsCamera(t *testing.T) {
	engine := &fakeEngine{}
	v := newTestViewer(t, engine)

	radiusBefore := v.Camera().Radius()
	v.Scroll(2)
	assert.Less(t, v.Camera().Radius(), radiusBefore)
}

func TestAppliedModelResult(t *testing.T) {
	engine := &fakeEngine{}
	v := newTestViewer(t, engine)

	v.applyAssetResult(assets.Result{Kind: assets.KindModel, Name: "house.glb", Data: []byte("x")})

	assert.Equal(t, "house.glb", engine.modelName)
	assert.NoError(t, v.LastLoadError())
}

func TestRejectedModelKeepsPrevious(t *testing.T) {
	engine := &fakeEngine{}
	v := newTestViewer(t, engine)

	v.applyAssetResult(assets.Result{Kind: assets.KindModel, Name: "good.glb", Data: []byte("x")})
	engine.loadErr = scene.ErrUnsupportedModel
	v.applyAssetResult(assets.Result{Kind: assets.KindModel, Name: "bad.xyz", Data: []byte("x")})

	assert.Equal(t, "good.glb", engine.modelName, "rejected model leaves the previous one in place")
	assert.ErrorIs(t, v.LastLoadError(), scene.ErrUnsupportedModel)
}

func TestFailedEnvironmentKeepsProceduralSky(t *testing.T) {
	engine := &fakeEngine{envErr: assert.AnError}
	v := newTestViewer(t, engine)

	v.applyAssetResult(assets.Result{Kind: assets.KindEnvironment, Name: "sky.hdr", Data: []byte("x")})

	assert.Empty(t, engine.envName)
	assert.Error(t, v.LastLoadError())
}

func TestSurfaceStatusAndManualRetry(t *testing.T) {
	engine := &fakeEngine{renderErr: scene.ErrSurfaceLost, reinitErr: assert.AnError}
	v := newTestViewer(t, engine, WithMaxSurfaceRetries(1))

	_ = v.guard.RenderFrame()
	assert.Equal(t, scene.StatusFailed, v.SurfaceStatus())

	engine.mu.Lock()
	engine.renderErr = nil
	engine.reinitErr = nil
	engine.mu.Unlock()

	assert.True(t, v.RetrySurface())
	assert.Equal(t, scene.StatusOK, v.SurfaceStatus())
}

func TestDeleteWhileDraggingDropsMarker(t *testing.T) {
	engine := &fakeEngine{rayHit: [3]float32{0, 0, 0}, rayOK: true}
	v := newTestViewer(t, engine)

	a := v.Annotations().Store().Add([3]float32{1, 0, 1})
	engine.pickID, engine.pickOK = a.ID, true
	v.PointerDown(50, 50)

	v.Annotations().Delete(a.ID)
	v.syncMarkers()

	assert.Empty(t, engine.currentMarkers())
	_, dragging := v.Annotations().DraggingID()
	assert.False(t, dragging)
}
