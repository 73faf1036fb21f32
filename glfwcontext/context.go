package glfwcontext

import (
	"errors"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	graphics "github.com/richinsley/goglapp/graphics"
	input "github.com/richinsley/goglapp/input"
)

// Hints are the fixed context and framebuffer settings applied before every
// window is created.
type Hints struct {
	ContextVersionMajor int
	ContextVersionMinor int
	Samples             int
	RedBits             int
	GreenBits           int
	BlueBits            int
	AlphaBits           int
	DepthBits           int
	StencilBits         int
	// RefreshRate of glfw.DontCare runs as fast as possible.
	RefreshRate  int
	DebugContext bool
	// SwapInterval 0 is uncapped, 1 waits for vsync.
	SwapInterval int
}

// DefaultHints returns an OpenGL 3.3 core, double buffered RGBA8 / D24S8
// configuration without multisampling.
func DefaultHints() Hints {
	return Hints{
		ContextVersionMajor: 3,
		ContextVersionMinor: 3,
		Samples:             0,
		RedBits:             8,
		GreenBits:           8,
		BlueBits:            8,
		AlphaBits:           8,
		DepthBits:           24,
		StencilBits:         8,
		RefreshRate:         glfw.DontCare,
	}
}

// Platform is the GLFW windowing subsystem.
type Platform struct {
	hints Hints
}

// NewPlatform returns a platform that creates windows with hints.
func NewPlatform(hints Hints) *Platform {
	return &Platform{hints: hints}
}

// Init initializes GLFW. Must be called from the main thread.
func (p *Platform) Init() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		logError(err)
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// Terminate shuts down GLFW. Must be called from the main thread.
func (p *Platform) Terminate() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}

// PollEvents processes pending events, running the window handlers.
func (p *Platform) PollEvents() {
	glfw.PollEvents()
}

// Time returns seconds since Init.
func (p *Platform) Time() float64 {
	return glfw.GetTime()
}

func (p *Platform) configureOpenGL() {
	glfw.WindowHint(glfw.ContextVersionMajor, p.hints.ContextVersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, p.hints.ContextVersionMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if p.hints.DebugContext {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	// The window size is fixed.
	glfw.WindowHint(glfw.Resizable, glfw.False)

	glfw.WindowHint(glfw.Samples, p.hints.Samples)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)

	glfw.WindowHint(glfw.RedBits, p.hints.RedBits)
	glfw.WindowHint(glfw.GreenBits, p.hints.GreenBits)
	glfw.WindowHint(glfw.BlueBits, p.hints.BlueBits)
	glfw.WindowHint(glfw.AlphaBits, p.hints.AlphaBits)
	glfw.WindowHint(glfw.DepthBits, p.hints.DepthBits)
	glfw.WindowHint(glfw.StencilBits, p.hints.StencilBits)

	glfw.WindowHint(glfw.RefreshRate, p.hints.RefreshRate)
}

// CreateWindow applies the hints and creates a window for cfg. A fullscreen
// configuration takes the primary monitor.
func (p *Platform) CreateWindow(cfg graphics.WindowConfiguration) (graphics.Window, error) {
	p.configureOpenGL()

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		logError(err)
		return nil, err
	}

	w := &Window{
		window:       win,
		swapInterval: p.hints.SwapInterval,
		cursors:      make(map[glfw.StandardCursor]*glfw.Cursor),
		cursorShape:  graphics.CursorArrow,
	}
	w.installCallbacks()
	return w, nil
}

// Window wraps a *glfw.Window and fans its callbacks out to the registered
// handlers.
type Window struct {
	window       *glfw.Window
	swapInterval int
	handlers     graphics.EventHandlers

	cursors      map[glfw.StandardCursor]*glfw.Cursor
	cursorShape  graphics.CursorShape
	cursorLocked bool
}

// GLFW 3.3 has no diagonal or omnidirectional resize cursors; those fall
// back to the arrow.
var standardCursors = map[graphics.CursorShape]glfw.StandardCursor{
	graphics.CursorArrow:     glfw.ArrowCursor,
	graphics.CursorTextInput: glfw.IBeamCursor,
	graphics.CursorResizeNS:  glfw.VResizeCursor,
	graphics.CursorResizeEW:  glfw.HResizeCursor,
	graphics.CursorHand:      glfw.HandCursor,
}

func (w *Window) installCallbacks() {
	w.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		w.handlers.DispatchKey(input.Key(key), scancode, input.Action(action), input.ModifierKey(mods))
	})
	w.window.SetCharCallback(func(_ *glfw.Window, char rune) {
		w.handlers.DispatchChar(char)
	})
	w.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.handlers.DispatchCursorPos(x, y)
	})
	w.window.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		w.handlers.DispatchCursorEnter(entered)
	})
	w.window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		w.handlers.DispatchMouseButton(input.MouseButton(button), input.Action(action), input.ModifierKey(mods))
	})
	w.window.SetScrollCallback(func(_ *glfw.Window, xOffset, yOffset float64) {
		w.handlers.DispatchScroll(xOffset, yOffset)
	})
}

// AddEventHandler registers h after the existing handlers.
func (w *Window) AddEventHandler(h graphics.EventHandler) {
	w.handlers = append(w.handlers, h)
}

// MakeCurrent makes the context current on the calling thread and applies
// the swap interval.
func (w *Window) MakeCurrent() {
	w.window.MakeContextCurrent()
	glfw.SwapInterval(w.swapInterval)
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *Window) SetShouldClose(value bool) {
	w.window.SetShouldClose(value)
}

func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *Window) GetSize() (int, int) {
	return w.window.GetSize()
}

// Focused reports whether the window has input focus.
func (w *Window) Focused() bool {
	return w.window.GetAttrib(glfw.Focused) == glfw.True
}

func (w *Window) ClipboardString() string {
	return w.window.GetClipboardString()
}

func (w *Window) SetClipboardString(value string) {
	w.window.SetClipboardString(value)
}

func (w *Window) Key(key input.Key) input.Action {
	return input.Action(w.window.GetKey(glfw.Key(key)))
}

func (w *Window) MouseButton(button input.MouseButton) input.Action {
	return input.Action(w.window.GetMouseButton(glfw.MouseButton(button)))
}

func (w *Window) CursorPos() (float64, float64) {
	return w.window.GetCursorPos()
}

// SetCursorLocked hides and captures the cursor, or restores the current
// cursor shape.
func (w *Window) SetCursorLocked(locked bool) {
	w.cursorLocked = locked
	if locked {
		w.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		return
	}
	w.applyCursorShape()
}

// SetCursorShape shows shape over the window. Standard cursors are created
// on first use and kept until Destroy.
func (w *Window) SetCursorShape(shape graphics.CursorShape) {
	if shape == w.cursorShape {
		return
	}
	w.cursorShape = shape
	if !w.cursorLocked {
		w.applyCursorShape()
	}
}

func (w *Window) applyCursorShape() {
	if w.cursorShape == graphics.CursorHidden {
		w.window.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
		return
	}
	standard, ok := standardCursors[w.cursorShape]
	if !ok {
		standard = glfw.ArrowCursor
	}
	cursor, ok := w.cursors[standard]
	if !ok {
		cursor = glfw.CreateStandardCursor(standard)
		w.cursors[standard] = cursor
	}
	w.window.SetCursor(cursor)
	w.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

// Destroy destroys the window, its context and the cursors it created.
func (w *Window) Destroy() {
	w.window.Destroy()
	for _, cursor := range w.cursors {
		cursor.Destroy()
	}
	w.cursors = nil
}

// GLFW returns the underlying *glfw.Window.
func (w *Window) GLFW() *glfw.Window {
	return w.window
}

func logError(err error) {
	var glfwErr *glfw.Error
	if errors.As(err, &glfwErr) {
		log.Printf("GLFW Error: %d: %s", glfwErr.Code, glfwErr.Desc)
		return
	}
	log.Printf("GLFW Error: %v", err)
}
