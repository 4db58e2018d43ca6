// package window provides platform windowing and pointer input for the
// viewer. It wraps GLFW behind a small interface so the rest of the viewer
// only sees screen-space pointer events and a surface descriptor.
package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is
	// resized, with pixel-accurate dimensions.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetPointerDownCallback sets the callback for primary-button presses.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in pixels
	SetPointerDownCallback(callback func(x, y float32))

	// SetPointerUpCallback sets the callback for primary-button releases.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in pixels
	SetPointerUpCallback(callback func(x, y float32))

	// SetPointerMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in pixels
	SetPointerMoveCallback(callback func(x, y float32))

	// SetPointerLeaveCallback sets the callback for the cursor leaving the
	// window's interactive surface. Used to cancel drags in progress.
	//
	// Parameters:
	//   - callback: function to call on leave
	SetPointerLeaveCallback(callback func())

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for
	// creating a WebGPU surface for this window. Platform-appropriate
	// (Windows HWND, X11, Wayland, macOS Metal).
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil if not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// ProcessMessages runs the window message loop. Blocks until the window
	// closes, invoking the update callback each iteration.
	ProcessMessages()

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if running, false once closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the close fails
	Close() error

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// viewerWindow is the implementation of the Window interface.
type viewerWindow struct {
	title  string
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate       func()
	onResize       func(width, height int)
	onScroll       func(delta float32)
	onKeyDown      func(keyCode uint32)
	onPointerDown  func(x, y float32)
	onPointerUp    func(x, y float32)
	onPointerMove  func(x, y float32)
	onPointerLeave func()
}

var _ Window = &viewerWindow{}

// NewWindow creates a new Window with the specified options and spawns the
// underlying platform window.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &viewerWindow{
		title:  "helios",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	return w, nil
}

func (w *viewerWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *viewerWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *viewerWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *viewerWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *viewerWindow) SetPointerDownCallback(callback func(x, y float32)) {
	w.onPointerDown = callback
}

func (w *viewerWindow) SetPointerUpCallback(callback func(x, y float32)) {
	w.onPointerUp = callback
}

func (w *viewerWindow) SetPointerMoveCallback(callback func(x, y float32)) {
	w.onPointerMove = callback
}

func (w *viewerWindow) SetPointerLeaveCallback(callback func()) {
	w.onPointerLeave = callback
}

func (w *viewerWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *viewerWindow) ProcessMessages() {
	for platformProcessMessages(w) {
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

func (w *viewerWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *viewerWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *viewerWindow) Width() int {
	return w.width
}

func (w *viewerWindow) Height() int {
	return w.height
}
