// package viewer wires the lighting model, annotation system, camera, asset
// loader, and guarded scene engine into one interactive session. It owns the
// run loop and the routing that gives every pointer event exactly one
// consumer: marker drag first, then annotation placement, then camera
// navigation.
package viewer

import (
	"fmt"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/rs/zerolog"

	"github.com/helios3d/helios-go/viewer/annotation"
	"github.com/helios3d/helios-go/viewer/assets"
	"github.com/helios3d/helios-go/viewer/camera"
	"github.com/helios3d/helios-go/viewer/lighting"
	"github.com/helios3d/helios-go/viewer/scene"
	"github.com/helios3d/helios-go/viewer/window"
)

// defaultClickThreshold is the maximum pointer travel in pixels between press
// and release for the gesture to count as a click rather than a camera drag.
const defaultClickThreshold = 4.0

// Viewer is the top-level interactive session. It coordinates the engine,
// camera, annotations, and asset loads, and runs the frame loop.
type Viewer interface {
	// SetTimeOfDay moves the sun to the given clock time and pushes the
	// derived lighting state to the engine.
	//
	// Parameters:
	//   - hours: time of day in hours [0, 24); out-of-range values wrap
	SetTimeOfDay(hours float32)

	// TimeOfDay returns the current clock time in hours.
	//
	// Returns:
	//   - float32: hours in [0, 24)
	TimeOfDay() float32

	// SetNightLights toggles the artificial night lighting and pushes the
	// derived lighting state to the engine.
	//
	// Parameters:
	//   - enabled: whether night lights should be on
	SetNightLights(enabled bool)

	// NightLightsEnabled reports the night lights toggle.
	//
	// Returns:
	//   - bool: true when night lights are enabled
	NightLightsEnabled() bool

	// LightingState returns the lighting parameters most recently pushed to
	// the engine.
	//
	// Returns:
	//   - lighting.State: the current derived lighting state
	LightingState() lighting.State

	// Annotations returns the annotation interaction controller.
	//
	// Returns:
	//   - annotation.Controller: the controller owning annotation state
	Annotations() annotation.Controller

	// Camera returns the camera controller.
	//
	// Returns:
	//   - camera.Controller: the navigation controller
	Camera() camera.Controller

	// SurfaceStatus reports the render surface status as seen by the guard.
	//
	// Returns:
	//   - scene.Status: ok, lost, or failed
	SurfaceStatus() scene.Status

	// RetrySurface manually retries a failed render surface.
	//
	// Returns:
	//   - bool: true if the surface came back
	RetrySurface() bool

	// LoadModel queues a model file load. The outcome is applied
	// asynchronously; failures are reported via LastLoadError and leave the
	// current model in place.
	//
	// Parameters:
	//   - path: filesystem path of the mesh file
	LoadModel(path string)

	// LoadEnvironment queues an environment image load. On failure the
	// procedural sky is kept.
	//
	// Parameters:
	//   - path: filesystem path of the environment image
	LoadEnvironment(path string)

	// ClearEnvironment drops any loaded environment image, returning to the
	// procedural sky.
	ClearEnvironment()

	// LastLoadError returns the most recent asset load failure, if any.
	//
	// Returns:
	//   - error: the last load error, or nil
	LastLoadError() error

	// PointerDown handles a primary-button press at the given pixel.
	//
	// Parameters:
	//   - x, y: pixel coordinates, origin top-left
	PointerDown(x, y float32)

	// PointerMove handles cursor movement to the given pixel.
	//
	// Parameters:
	//   - x, y: pixel coordinates, origin top-left
	PointerMove(x, y float32)

	// PointerUp handles a primary-button release at the given pixel.
	//
	// Parameters:
	//   - x, y: pixel coordinates, origin top-left
	PointerUp(x, y float32)

	// PointerLeave handles the cursor leaving the window, cancelling any
	// annotation drag in progress.
	PointerLeave()

	// Scroll handles a scroll wheel event as a camera zoom.
	//
	// Parameters:
	//   - delta: scroll delta (positive = zoom in)
	Scroll(delta float32)

	// Resize reconfigures the render surface for a new framebuffer size.
	//
	// Parameters:
	//   - width, height: new dimensions in pixels
	Resize(width, height int)

	// Run starts the frame and tick loops and blocks on the window message
	// loop until the window closes or Quit is called.
	Run()

	// Quit signals all viewer goroutines to stop. Safe to call multiple
	// times; subsequent calls are no-ops.
	Quit()
}

// viewerImpl is the implementation of the Viewer interface.
type viewerImpl struct {
	mu  *sync.Mutex
	log zerolog.Logger

	guard  scene.Guard
	cam    camera.Controller
	ann    annotation.Controller
	loader assets.Loader
	win    window.Window

	timeOfDay   float32
	nightLights bool
	lightState  lighting.State

	// pointer gesture state
	pointerDown    bool
	downX, downY   float32
	lastX, lastY   float32
	clickThreshold float32

	lastLoadErr error

	maxSurfaceRetries int
	tickRate          time.Duration

	wg          sync.WaitGroup
	quitChannel chan struct{}
	quitOnce    sync.Once
}

var _ Viewer = &viewerImpl{}

// NewViewer creates a viewer session around a scene engine. The engine is
// wrapped in a render-surface guard; camera, annotation controller, and asset
// loader get defaults unless supplied via options.
//
// Parameters:
//   - engine: the scene engine to drive (must not be nil)
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the newly created viewer
//   - error: error if the engine is missing
func NewViewer(engine scene.Engine, options ...ViewerBuilderOption) (Viewer, error) {
	if engine == nil {
		return nil, fmt.Errorf("viewer: engine must not be nil")
	}

	v := &viewerImpl{
		mu:             &sync.Mutex{},
		log:            zerolog.Nop(),
		timeOfDay:      12.0,
		clickThreshold: defaultClickThreshold,
		tickRate:       time.Second / 60,
		quitChannel:    make(chan struct{}),
	}

	for _, option := range options {
		option(v)
	}

	guardOptions := []scene.GuardBuilderOption{scene.WithGuardLogger(v.log)}
	if v.maxSurfaceRetries > 0 {
		guardOptions = append(guardOptions, scene.WithMaxRetries(v.maxSurfaceRetries))
	}
	v.guard = scene.NewGuard(engine, guardOptions...)
	if v.cam == nil {
		v.cam = camera.NewController()
	}
	if v.ann == nil {
		v.ann = annotation.NewController(annotation.WithLogger(v.log))
	}
	if v.loader == nil {
		v.loader = assets.NewLoader(assets.WithLoaderLogger(v.log))
	}

	if v.win != nil {
		v.win.SetPointerDownCallback(v.PointerDown)
		v.win.SetPointerUpCallback(v.PointerUp)
		v.win.SetPointerMoveCallback(v.PointerMove)
		v.win.SetPointerLeaveCallback(v.PointerLeave)
		v.win.SetScrollCallback(v.Scroll)
		v.win.SetResizeCallback(v.Resize)
	}

	// Push the initial lighting so the first frame is already lit correctly.
	v.applyLighting()
	return v, nil
}

// --- lighting ---

func (v *viewerImpl) SetTimeOfDay(hours float32) {
	v.mu.Lock()
	v.timeOfDay = math32.Mod(math32.Mod(hours, 24)+24, 24)
	v.mu.Unlock()
	v.applyLighting()
}

func (v *viewerImpl) TimeOfDay() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.timeOfDay
}

func (v *viewerImpl) SetNightLights(enabled bool) {
	v.mu.Lock()
	v.nightLights = enabled
	v.mu.Unlock()
	v.applyLighting()
}

func (v *viewerImpl) NightLightsEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.nightLights
}

func (v *viewerImpl) LightingState() lighting.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lightState
}

// applyLighting recomputes the lighting state from the current time and
// night-lights toggle and pushes it to the engine.
func (v *viewerImpl) applyLighting() {
	v.mu.Lock()
	state := lighting.Compute(v.timeOfDay, v.nightLights)
	v.lightState = state
	v.mu.Unlock()

	v.guard.ApplyLighting(state)
	v.log.Debug().
		Str("clock", lighting.FormatClock(v.TimeOfDay())).
		Bool("isNight", state.IsNight).
		Msg("lighting updated")
}

// --- annotations and pointer routing ---

func (v *viewerImpl) Annotations() annotation.Controller {
	return v.ann
}

func (v *viewerImpl) Camera() camera.Controller {
	return v.cam
}

func (v *viewerImpl) PointerDown(x, y float32) {
	targetID, _ := v.guard.PickMarker(x, y)
	point, _ := v.guard.RaycastToWorldPoint(x, y)

	if v.ann.HandlePointerDown(point, targetID) {
		// A marker drag began (or the down landed on a marker while another
		// drag is open). Either way the camera does not see this gesture.
		v.syncMarkers()
		return
	}

	v.mu.Lock()
	v.pointerDown = true
	v.downX, v.downY = x, y
	v.lastX, v.lastY = x, y
	v.mu.Unlock()
}

func (v *viewerImpl) PointerMove(x, y float32) {
	if _, dragging := v.ann.DraggingID(); dragging {
		// The preview only follows the pointer while the ray hits the
		// interactive surface; off-surface moves keep the last good preview.
		if point, ok := v.guard.RaycastToWorldPoint(x, y); ok {
			v.ann.HandlePointerMove(point)
			v.syncMarkers()
		}
		return
	}

	v.mu.Lock()
	if !v.pointerDown {
		v.mu.Unlock()
		return
	}
	dx := x - v.lastX
	dy := y - v.lastY
	v.lastX, v.lastY = x, y
	v.mu.Unlock()

	v.cam.Rotate(dx, dy)
}

func (v *viewerImpl) PointerUp(x, y float32) {
	if v.ann.HandlePointerUp() {
		v.syncMarkers()
		return
	}

	v.mu.Lock()
	wasDown := v.pointerDown
	v.pointerDown = false
	travel := math32.Hypot(x-v.downX, y-v.downY)
	v.mu.Unlock()

	if !wasDown || travel > v.clickThreshold {
		return
	}

	// A click. Placement gets first refusal; an unarmed click on the world
	// is simply the end of a (tiny) camera gesture.
	if point, ok := v.guard.RaycastToWorldPoint(x, y); ok {
		if v.ann.HandleClick(point) {
			v.syncMarkers()
		}
	}
}

func (v *viewerImpl) PointerLeave() {
	v.ann.CancelDrag()
	v.syncMarkers()

	v.mu.Lock()
	v.pointerDown = false
	v.mu.Unlock()
}

func (v *viewerImpl) Scroll(delta float32) {
	v.cam.Zoom(delta)
}

func (v *viewerImpl) Resize(width, height int) {
	v.guard.Resize(width, height)
}

// syncMarkers pushes the displayed annotation set to the engine as render
// markers, with the drag preview already substituted.
func (v *viewerImpl) syncMarkers() {
	displayed := v.ann.Displayed()
	markers := make([]scene.Marker, 0, len(displayed))
	for _, d := range displayed {
		markers = append(markers, scene.Marker{
			ID:         d.ID,
			Position:   d.Position,
			Emphasized: d.Dragging,
		})
	}
	v.guard.SetMarkers(markers)
}

// --- surface guard ---

func (v *viewerImpl) SurfaceStatus() scene.Status {
	return v.guard.Status()
}

func (v *viewerImpl) RetrySurface() bool {
	return v.guard.Retry()
}

// --- assets ---

func (v *viewerImpl) LoadModel(path string) {
	v.loader.LoadModel(path)
}

func (v *viewerImpl) LoadEnvironment(path string) {
	v.loader.LoadEnvironment(path)
}

func (v *viewerImpl) ClearEnvironment() {
	v.guard.ClearEnvironment()
}

func (v *viewerImpl) LastLoadError() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastLoadErr
}

// drainAssetResults applies every completed asset load without blocking.
// Called once per tick.
func (v *viewerImpl) drainAssetResults() {
	for {
		select {
		case result, ok := <-v.loader.Results():
			if !ok {
				return
			}
			v.applyAssetResult(result)
		default:
			return
		}
	}
}

// applyAssetResult hands a completed load to the engine. Failures are
// recorded and the previous asset stays in place.
func (v *viewerImpl) applyAssetResult(result assets.Result) {
	if result.Err != nil {
		v.setLoadError(result.Err)
		return
	}

	switch result.Kind {
	case assets.KindModel:
		if err := v.guard.LoadModel(result.Name, result.Data); err != nil {
			v.log.Warn().Err(err).Str("model", result.Name).Msg("model rejected")
			v.setLoadError(err)
			return
		}
		v.setLoadError(nil)
	case assets.KindEnvironment:
		if err := v.guard.SetEnvironment(result.Name, result.Data); err != nil {
			v.log.Warn().Err(err).Str("environment", result.Name).
				Msg("environment rejected, keeping procedural sky")
			v.setLoadError(err)
			return
		}
		v.setLoadError(nil)
	}
}

func (v *viewerImpl) setLoadError(err error) {
	v.mu.Lock()
	v.lastLoadErr = err
	v.mu.Unlock()
}

// --- run loop ---

func (v *viewerImpl) Run() {
	v.wg.Add(3)
	go v.handleTick()
	go v.handleRender()
	go v.handleQuit()

	if v.win != nil {
		v.win.ProcessMessages()
		v.Quit()
	}
	v.wg.Wait()
	v.loader.Close()
	v.guard.Release()
}

func (v *viewerImpl) Quit() {
	v.quitOnce.Do(func() {
		close(v.quitChannel)
	})
}

// handleTick runs the fixed-rate tick loop: asset result application and any
// other per-tick housekeeping.
func (v *viewerImpl) handleTick() {
	defer v.wg.Done()

	ticker := time.NewTicker(v.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-v.quitChannel:
			return
		case <-ticker.C:
			v.drainAssetResults()
		}
	}
}

// handleRender runs the render loop. Surface losses are the guard's to deal
// with; the loop only logs transitions so a flapping surface does not flood
// the log at frame rate.
func (v *viewerImpl) handleRender() {
	defer v.wg.Done()

	lastStatus := scene.StatusOK
	ticker := time.NewTicker(v.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-v.quitChannel:
			return
		case <-ticker.C:
			err := v.guard.RenderFrame()
			status := v.guard.Status()
			if status != lastStatus {
				event := v.log.Warn()
				if status == scene.StatusOK {
					event = v.log.Info()
				}
				event.Err(err).
					Str("from", lastStatus.String()).
					Str("to", status.String()).
					Msg("render surface status changed")
				lastStatus = status
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed.
func (v *viewerImpl) handleQuit() {
	defer v.wg.Done()
	<-v.quitChannel
}
