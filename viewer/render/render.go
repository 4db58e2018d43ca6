// package render implements the scene.Engine contract on WebGPU. It owns the
// surface, device, and per-frame draw work, and answers the screen-to-world
// queries the annotation system needs. Everything GPU-facing lives here so
// the rest of the viewer can run against a fake engine in tests.
package render

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog"

	"github.com/helios3d/helios-go/viewer/camera"
	"github.com/helios3d/helios-go/viewer/lighting"
	"github.com/helios3d/helios-go/viewer/scene"
)

const (
	// defaultFOVY is the vertical field of view used for picking rays, in
	// radians (60 degrees).
	defaultFOVY = 1.0471976

	// markerPickRadius is the world-space radius of the sphere used for
	// marker hit testing.
	markerPickRadius = 0.35
)

// engineImpl is the WebGPU implementation of scene.Engine.
type engineImpl struct {
	mu  *sync.Mutex
	log zerolog.Logger

	surfaceDescriptor *wgpu.SurfaceDescriptor

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	config   *wgpu.SurfaceConfiguration

	width  int
	height int
	fovY   float32

	cam camera.Controller

	lightState lighting.State
	markers    []scene.Marker

	modelName string
	modelSize int
	envName   string
	envSet    bool
}

var _ scene.Engine = &engineImpl{}

// NewEngine creates a WebGPU-backed scene engine bound to the given surface
// descriptor and initializes the GPU device and surface.
//
// Parameters:
//   - descriptor: platform surface descriptor from the window layer
//   - options: functional options to configure the engine
//
// Returns:
//   - scene.Engine: the initialized engine
//   - error: error if any GPU initialization step fails
func NewEngine(descriptor *wgpu.SurfaceDescriptor, options ...EngineBuilderOption) (scene.Engine, error) {
	e := &engineImpl{
		mu:                &sync.Mutex{},
		log:               zerolog.Nop(),
		surfaceDescriptor: descriptor,
		width:             1280,
		height:            720,
		fovY:              defaultFOVY,
	}
	for _, option := range options {
		option(e)
	}
	if err := e.initialize(); err != nil {
		return nil, err
	}
	return e, nil
}

// initialize creates the instance, surface, adapter, device, and queue, then
// configures the surface for the current size.
func (e *engineImpl) initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.instance = wgpu.CreateInstance(nil)

	surface := e.instance.CreateSurface(e.surfaceDescriptor)
	if surface == nil {
		return fmt.Errorf("render: failed to create surface")
	}
	e.surface = surface

	adapter, err := e.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: e.surface,
	})
	if err != nil {
		return fmt.Errorf("render: failed to request adapter: %w", err)
	}
	e.adapter = adapter

	device, err := e.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "helios device",
	})
	if err != nil {
		return fmt.Errorf("render: failed to request device: %w", err)
	}
	e.device = device
	e.queue = device.GetQueue()

	if err := e.configureSurfaceLocked(); err != nil {
		return err
	}

	e.log.Info().
		Int("width", e.width).
		Int("height", e.height).
		Msg("render engine initialized")
	return nil
}

// configureSurfaceLocked (re)configures the surface for the current
// dimensions using the adapter's preferred format. Caller must hold the
// mutex.
func (e *engineImpl) configureSurfaceLocked() error {
	caps := e.surface.GetCapabilities(e.adapter)
	if len(caps.Formats) == 0 {
		return fmt.Errorf("render: surface reports no supported formats")
	}

	e.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(e.width),
		Height:      uint32(e.height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	e.surface.Configure(e.adapter, e.device, e.config)
	return nil
}

func (e *engineImpl) ApplyLighting(state lighting.State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lightState = state
	e.log.Debug().
		Float32("sunIntensity", state.SunIntensity).
		Bool("isNight", state.IsNight).
		Int("pointLights", len(state.PointLights)).
		Msg("lighting applied")
}

func (e *engineImpl) SetMarkers(markers []scene.Marker) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.markers = make([]scene.Marker, len(markers))
	copy(e.markers, markers)
}

func (e *engineImpl) LoadModel(name string, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(data) == 0 {
		return fmt.Errorf("%w: %s is empty", scene.ErrUnsupportedModel, name)
	}
	e.modelName = name
	e.modelSize = len(data)
	e.log.Info().
		Str("model", name).
		Int("bytes", len(data)).
		Msg("model loaded")
	return nil
}

func (e *engineImpl) SetEnvironment(name string, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(data) == 0 {
		return fmt.Errorf("render: environment %s is empty", name)
	}
	e.envName = name
	e.envSet = true
	e.log.Info().Str("environment", name).Msg("environment set")
	return nil
}

func (e *engineImpl) ClearEnvironment() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.envName = ""
	e.envSet = false
}

func (e *engineImpl) RaycastToWorldPoint(screenX, screenY float32) ([3]float32, bool) {
	e.mu.Lock()
	pos, target := e.cameraPoseLocked()
	fovY, width, height := e.fovY, e.width, e.height
	e.mu.Unlock()

	origin, dir := screenRay(pos, target, fovY, width, height, screenX, screenY)
	return intersectGround(origin, dir)
}

func (e *engineImpl) PickMarker(screenX, screenY float32) (string, bool) {
	e.mu.Lock()
	pos, target := e.cameraPoseLocked()
	fovY, width, height := e.fovY, e.width, e.height
	markers := make([]scene.Marker, len(e.markers))
	copy(markers, e.markers)
	e.mu.Unlock()

	origin, dir := screenRay(pos, target, fovY, width, height, screenX, screenY)
	return pickMarker(origin, dir, markers, markerPickRadius)
}

// cameraPoseLocked returns the current camera position and target, falling
// back to a fixed overview pose when no controller is attached. Caller must
// hold the mutex.
func (e *engineImpl) cameraPoseLocked() (position, target [3]float32) {
	if e.cam == nil {
		return [3]float32{0, 6, 12}, [3]float32{0, 0, 0}
	}
	return e.cam.Position(), e.cam.Target()
}

func (e *engineImpl) RenderFrame() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	surfaceTexture, err := e.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("%w: %v", scene.ErrSurfaceLost, err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("%w: create view: %v", scene.ErrSurfaceLost, err)
	}
	defer view.Release()

	encoder, err := e.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("render: create command encoder: %w", err)
	}
	defer encoder.Release()

	clear := skyClearColor(e.lightState)
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
	})
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("render: finish encoder: %w", err)
	}
	defer commandBuffer.Release()

	e.queue.Submit(commandBuffer)
	e.surface.Present()
	return nil
}

func (e *engineImpl) Reinitialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.log.Warn().Msg("reinitializing render surface")

	if e.surface != nil {
		e.surface.Release()
	}
	surface := e.instance.CreateSurface(e.surfaceDescriptor)
	if surface == nil {
		return fmt.Errorf("render: failed to recreate surface")
	}
	e.surface = surface
	return e.configureSurfaceLocked()
}

func (e *engineImpl) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	e.width = width
	e.height = height
	if e.surface != nil && e.device != nil {
		if err := e.configureSurfaceLocked(); err != nil {
			e.log.Error().Err(err).Msg("surface reconfigure failed")
		}
	}
}

func (e *engineImpl) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.device != nil {
		e.device.Release()
		e.device = nil
	}
	if e.adapter != nil {
		e.adapter.Release()
		e.adapter = nil
	}
	if e.surface != nil {
		e.surface.Release()
		e.surface = nil
	}
	if e.instance != nil {
		e.instance.Release()
		e.instance = nil
	}
}

// skyClearColor derives the frame clear color from the lighting state: the
// ambient tint scaled by the mix of sun and ambient intensity, so dusk frames
// warm up and night frames go dark blue.
func skyClearColor(state lighting.State) wgpu.Color {
	base := [3]float32{0.45, 0.66, 0.9}
	if state.IsNight {
		base = [3]float32{0.03, 0.04, 0.1}
	}
	brightness := state.SunIntensity*0.8 + state.AmbientIntensity*0.4
	return wgpu.Color{
		R: float64(base[0] * state.SunColor[0] * brightness),
		G: float64(base[1] * state.SunColor[1] * brightness),
		B: float64(base[2] * state.SunColor[2] * brightness),
		A: 1.0,
	}
}
