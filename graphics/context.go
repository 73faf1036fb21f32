package graphics

import "github.com/richinsley/goglapp/input"

// WindowConfiguration describes the window a client wants. It is read once,
// before the window is created.
type WindowConfiguration struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// Platform is the windowing subsystem. All methods must be called from the
// thread that called Init.
type Platform interface {
	Init() error
	Terminate()
	CreateWindow(cfg WindowConfiguration) (Window, error)
	// PollEvents dispatches pending events to the registered EventHandlers
	// before returning.
	PollEvents()
	Time() float64
}

// Window is a native window with an OpenGL context attached.
type Window interface {
	input.StateSource
	input.CursorController

	MakeCurrent()
	ShouldClose() bool
	SetShouldClose(value bool)
	SwapBuffers()
	GetFramebufferSize() (int, int)
	GetSize() (int, int)
	Focused() bool
	ClipboardString() string
	SetClipboardString(value string)
	// SetCursorShape changes the pointer shown over the window. It has no
	// effect while the cursor is locked.
	SetCursorShape(shape CursorShape)
	// AddEventHandler registers h. Handlers run in registration order.
	AddEventHandler(h EventHandler)
	Destroy()
}

// CursorShape is a standard pointer shape.
type CursorShape int

const (
	CursorHidden CursorShape = iota - 1
	CursorArrow
	CursorTextInput
	CursorResizeAll
	CursorResizeNS
	CursorResizeEW
	CursorResizeNESW
	CursorResizeNWSE
	CursorHand
)

// EventHandler receives raw window events. Nil fields are skipped.
type EventHandler struct {
	Key         func(key input.Key, scancode int, action input.Action, mods input.ModifierKey)
	Char        func(char rune)
	CursorPos   func(x, y float64)
	CursorEnter func(entered bool)
	MouseButton func(button input.MouseButton, action input.Action, mods input.ModifierKey)
	Scroll      func(xOffset, yOffset float64)
}

// EventHandlers fans events out to a list of handlers. Window
// implementations embed it.
type EventHandlers []EventHandler

// DispatchKey calls every Key handler in registration order.
func (hs EventHandlers) DispatchKey(key input.Key, scancode int, action input.Action, mods input.ModifierKey) {
	for _, h := range hs {
		if h.Key != nil {
			h.Key(key, scancode, action, mods)
		}
	}
}

// DispatchChar calls every Char handler in registration order.
func (hs EventHandlers) DispatchChar(char rune) {
	for _, h := range hs {
		if h.Char != nil {
			h.Char(char)
		}
	}
}

// DispatchCursorPos calls every CursorPos handler in registration order.
func (hs EventHandlers) DispatchCursorPos(x, y float64) {
	for _, h := range hs {
		if h.CursorPos != nil {
			h.CursorPos(x, y)
		}
	}
}

// DispatchCursorEnter calls every CursorEnter handler in registration order.
func (hs EventHandlers) DispatchCursorEnter(entered bool) {
	for _, h := range hs {
		if h.CursorEnter != nil {
			h.CursorEnter(entered)
		}
	}
}

// DispatchMouseButton calls every MouseButton handler in registration order.
func (hs EventHandlers) DispatchMouseButton(button input.MouseButton, action input.Action, mods input.ModifierKey) {
	for _, h := range hs {
		if h.MouseButton != nil {
			h.MouseButton(button, action, mods)
		}
	}
}

// DispatchScroll calls every Scroll handler in registration order.
func (hs EventHandlers) DispatchScroll(xOffset, yOffset float64) {
	for _, h := range hs {
		if h.Scroll != nil {
			h.Scroll(xOffset, yOffset)
		}
	}
}
