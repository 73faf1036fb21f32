package app

import (
	"log"
	"os"

	gldebug "github.com/richinsley/goglapp/gldebug"
	graphics "github.com/richinsley/goglapp/graphics"
	input "github.com/richinsley/goglapp/input"
)

// GPU is the graphics API bound to the current context.
type GPU interface {
	Init() error
	EnableDebugOutput(handle func(gldebug.Message))
	Viewport(x, y, width, height int)
}

// Overlay is the immediate-mode GUI drawn on top of the client's frame.
type Overlay interface {
	NewFrame()
	IO() GuiState
	// Render builds the frame's draw data without touching the GPU.
	Render()
	// Draw submits the built draw data.
	Draw()
	Shutdown()
}

// OverlayFactory creates the overlay once the window and its context exist.
type OverlayFactory func(win graphics.Window, clock func() float64) (Overlay, error)

// FrameListener runs after the overlay is drawn and before the buffers are
// swapped, with the framebuffer size of the frame.
type FrameListener func(width, height int)

// Backends are the native collaborators of an Application.
type Backends struct {
	Platform   graphics.Platform
	GPU        GPU
	NewOverlay OverlayFactory
	// DebugSink receives driver debug messages. Defaults to stdout.
	DebugSink *gldebug.Sink
}

// Application owns the window and the input trackers and drives the frame
// loop for a Client. Everything runs on the thread that calls Run.
type Application struct {
	client   Client
	backends Backends

	window   graphics.Window
	keyboard input.Keyboard
	mouse    input.Mouse

	frameListeners []FrameListener
}

// New returns an application for client. Nothing is initialized until Run.
func New(client Client, backends Backends) *Application {
	if backends.DebugSink == nil {
		backends.DebugSink = gldebug.NewSink(os.Stdout)
	}
	return &Application{
		client:   client,
		backends: backends,
	}
}

// Keyboard returns the keyboard tracker.
func (a *Application) Keyboard() *input.Keyboard {
	return &a.keyboard
}

// Mouse returns the mouse tracker.
func (a *Application) Mouse() *input.Mouse {
	return &a.mouse
}

// Window is nil until Run has created it.
func (a *Application) Window() graphics.Window {
	return a.window
}

// FramebufferSize returns the drawable size of the window in pixels.
func (a *Application) FramebufferSize() (int, int) {
	if a.window == nil {
		return 0, 0
	}
	return a.window.GetFramebufferSize()
}

// Close asks the frame loop to stop. The current frame completes first.
func (a *Application) Close() {
	if a.window != nil {
		a.window.SetShouldClose(true)
	}
}

// AddFrameListener registers l to run once per frame, in registration order.
func (a *Application) AddFrameListener(l FrameListener) {
	a.frameListeners = append(a.frameListeners, l)
}

// Run initializes the window, context and overlay, runs the frame loop until
// the window is asked to close and tears everything down in reverse order.
// It returns 0 on a normal exit and -1 when initialization fails.
func (a *Application) Run() int {
	platform := a.backends.Platform

	if err := platform.Init(); err != nil {
		log.Printf("Failed to initialize windowing subsystem: %v", err)
		return -1
	}

	cfg := a.client.WindowConfiguration()
	win, err := platform.CreateWindow(cfg)
	if err != nil {
		log.Printf("Failed to create window: %v", err)
		platform.Terminate()
		return -1
	}
	a.window = win
	win.MakeCurrent()

	if err := a.backends.GPU.Init(); err != nil {
		log.Printf("Failed to load OpenGL: %v", err)
		a.destroyWindow(platform)
		return -1
	}
	a.backends.GPU.EnableDebugOutput(a.backends.DebugSink.Handle)

	a.setupCallbacks()
	a.keyboard.Enable(win)
	a.mouse.Enable(win)

	overlay, err := a.backends.NewOverlay(win, platform.Time)
	if err != nil {
		log.Printf("Failed to initialize GUI overlay: %v", err)
		a.destroyWindow(platform)
		return -1
	}

	a.client.OnInitialize()

	lastFrameTime := platform.Time()
	for !win.ShouldClose() {
		lastFrameTime = a.frame(overlay, lastFrameTime)
	}

	a.client.OnDestroy()

	overlay.Shutdown()
	a.destroyWindow(platform)
	return 0
}

// frame runs one loop iteration and returns its timestamp.
func (a *Application) frame(overlay Overlay, lastFrameTime float64) float64 {
	win := a.window

	a.backends.Platform.PollEvents()

	overlay.NewFrame()
	io := overlay.IO()
	a.client.OnImmediateGui(io)

	a.keyboard.SetEnabled(!io.WantCaptureKeyboard(), win)
	a.mouse.SetEnabled(!io.WantCaptureMouse(), win)

	overlay.Render()

	width, height := win.GetFramebufferSize()
	a.backends.GPU.Viewport(0, 0, width, height)

	currentFrameTime := a.backends.Platform.Time()
	a.client.OnDraw(currentFrameTime - lastFrameTime)

	overlay.Draw()

	for _, l := range a.frameListeners {
		l(width, height)
	}

	win.SwapBuffers()

	a.keyboard.Update()
	a.mouse.Update()

	return currentFrameTime
}

func (a *Application) destroyWindow(platform graphics.Platform) {
	a.window.Destroy()
	a.window = nil
	platform.Terminate()
}

// setupCallbacks routes window events to the trackers first and then to the
// client, so a hook always observes the tracker state for its own event.
func (a *Application) setupCallbacks() {
	a.window.AddEventHandler(graphics.EventHandler{
		Key: func(key input.Key, scancode int, action input.Action, mods input.ModifierKey) {
			a.keyboard.KeyEvent(key, scancode, action, mods)
			a.client.OnKeyEvent(key, scancode, action, mods)
		},
		CursorPos: func(x, y float64) {
			a.mouse.CursorMoveEvent(x, y)
			a.client.OnCursorMoveEvent(x, y)
		},
		CursorEnter: func(entered bool) {
			a.client.OnCursorEnterEvent(entered)
		},
		MouseButton: func(button input.MouseButton, action input.Action, mods input.ModifierKey) {
			a.mouse.MouseButtonEvent(button, action, mods)
			a.client.OnMouseButtonEvent(button, action, mods)
		},
		Scroll: func(xOffset, yOffset float64) {
			a.mouse.ScrollEvent(xOffset, yOffset)
			a.client.OnScrollEvent(xOffset, yOffset)
		},
	})
}
