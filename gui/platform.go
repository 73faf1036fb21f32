package gui

import (
	"math"

	imgui "github.com/inkyblackness/imgui-go/v4"
	graphics "github.com/richinsley/goglapp/graphics"
	input "github.com/richinsley/goglapp/input"
)

// BackendIO is the part of imgui.IO the platform writes to.
type BackendIO interface {
	SetDisplaySize(value imgui.Vec2)
	SetDeltaTime(value float32)
	SetMousePosition(value imgui.Vec2)
	SetMouseButtonDown(index int, down bool)
	AddMouseWheelDelta(horizontal, vertical float32)
	KeyPress(key int)
	KeyRelease(key int)
	KeyMap(imguiKey int, nativeKey int)
	KeyCtrl(leftCtrl int, rightCtrl int)
	KeyShift(leftShift int, rightShift int)
	KeyAlt(leftAlt int, rightAlt int)
	KeySuper(leftSuper int, rightSuper int)
	AddInputCharacters(chars string)
	SetClipboard(board imgui.Clipboard)
	SetBackendFlags(flags imgui.BackendFlags)
	SetConfigFlags(flags imgui.ConfigFlags)
}

// Platform feeds window input into imgui. It receives events through a
// graphics.EventHandler, so it shares the window with other listeners.
type Platform struct {
	imguiIO     BackendIO
	window      graphics.Window
	clock       func() float64
	mouseCursor func() imgui.MouseCursorID

	time             float64
	mouseJustPressed [3]bool
	cursorChanges    bool
	disposed         bool
}

var buttonIndexByID = map[input.MouseButton]int{
	input.MouseButtonLeft:   0,
	input.MouseButtonRight:  1,
	input.MouseButtonMiddle: 2,
}

var buttonIDByIndex = [3]input.MouseButton{
	input.MouseButtonLeft,
	input.MouseButtonRight,
	input.MouseButtonMiddle,
}

var cursorShapes = map[imgui.MouseCursorID]graphics.CursorShape{
	imgui.MouseCursorNone:       graphics.CursorHidden,
	imgui.MouseCursorArrow:      graphics.CursorArrow,
	imgui.MouseCursorTextInput:  graphics.CursorTextInput,
	imgui.MouseCursorResizeAll:  graphics.CursorResizeAll,
	imgui.MouseCursorResizeNS:   graphics.CursorResizeNS,
	imgui.MouseCursorResizeEW:   graphics.CursorResizeEW,
	imgui.MouseCursorResizeNESW: graphics.CursorResizeNESW,
	imgui.MouseCursorResizeNWSE: graphics.CursorResizeNWSE,
	imgui.MouseCursorHand:       graphics.CursorHand,
}

func cursorShape(id imgui.MouseCursorID) graphics.CursorShape {
	if shape, ok := cursorShapes[id]; ok {
		return shape
	}
	return graphics.CursorArrow
}

// NewPlatform binds io to window. With installCallbacks set, window events
// are forwarded to imgui; the OS clipboard and the mouse cursor shape are
// always shared.
func NewPlatform(io BackendIO, window graphics.Window, clock func() float64, installCallbacks bool) *Platform {
	p := &Platform{
		imguiIO:       io,
		window:        window,
		clock:         clock,
		mouseCursor:   imgui.MouseCursor,
		cursorChanges: true,
	}
	p.setKeyMapping()
	io.SetClipboard(clipboard{window: window})
	io.SetBackendFlags(imgui.BackendFlagsHasMouseCursors)
	if installCallbacks {
		p.installCallbacks()
	}
	return p
}

// Dispose detaches the platform from imgui. Events arriving afterwards are
// dropped.
func (p *Platform) Dispose() {
	p.disposed = true
}

// SetConfigFlags sets the imgui configuration flags. With
// imgui.ConfigFlagsNoMouseCursorChange the window cursor is left alone.
func (p *Platform) SetConfigFlags(flags imgui.ConfigFlags) {
	p.imguiIO.SetConfigFlags(flags)
	p.cursorChanges = flags&imgui.ConfigFlagsNoMouseCursorChange == 0
}

// DisplaySize returns the window size in screen coordinates.
func (p *Platform) DisplaySize() [2]float32 {
	w, h := p.window.GetSize()
	return [2]float32{float32(w), float32(h)}
}

// FramebufferSize returns the drawable size in pixels.
func (p *Platform) FramebufferSize() [2]float32 {
	w, h := p.window.GetFramebufferSize()
	return [2]float32{float32(w), float32(h)}
}

// NewFrame updates display size, time step, mouse state and cursor shape
// for the frame.
func (p *Platform) NewFrame() {
	displaySize := p.DisplaySize()
	p.imguiIO.SetDisplaySize(imgui.Vec2{X: displaySize[0], Y: displaySize[1]})

	currentTime := p.clock()
	if p.time > 0 && currentTime > p.time {
		p.imguiIO.SetDeltaTime(float32(currentTime - p.time))
	}
	p.time = currentTime

	if p.window.Focused() {
		x, y := p.window.CursorPos()
		p.imguiIO.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		p.imguiIO.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	// A click shorter than a frame still registers as down for one frame.
	for i := 0; i < len(p.mouseJustPressed); i++ {
		down := p.mouseJustPressed[i] || p.window.MouseButton(buttonIDByIndex[i]) == input.Press
		p.imguiIO.SetMouseButtonDown(i, down)
		p.mouseJustPressed[i] = false
	}

	p.updateMouseCursor()
}

// updateMouseCursor applies the cursor imgui requested during the previous
// frame.
func (p *Platform) updateMouseCursor() {
	if !p.cursorChanges {
		return
	}
	p.window.SetCursorShape(cursorShape(p.mouseCursor()))
}

func (p *Platform) setKeyMapping() {
	io := p.imguiIO
	io.KeyMap(imgui.KeyTab, int(input.KeyTab))
	io.KeyMap(imgui.KeyLeftArrow, int(input.KeyLeft))
	io.KeyMap(imgui.KeyRightArrow, int(input.KeyRight))
	io.KeyMap(imgui.KeyUpArrow, int(input.KeyUp))
	io.KeyMap(imgui.KeyDownArrow, int(input.KeyDown))
	io.KeyMap(imgui.KeyPageUp, int(input.KeyPageUp))
	io.KeyMap(imgui.KeyPageDown, int(input.KeyPageDown))
	io.KeyMap(imgui.KeyHome, int(input.KeyHome))
	io.KeyMap(imgui.KeyEnd, int(input.KeyEnd))
	io.KeyMap(imgui.KeyInsert, int(input.KeyInsert))
	io.KeyMap(imgui.KeyDelete, int(input.KeyDelete))
	io.KeyMap(imgui.KeyBackspace, int(input.KeyBackspace))
	io.KeyMap(imgui.KeySpace, int(input.KeySpace))
	io.KeyMap(imgui.KeyEnter, int(input.KeyEnter))
	io.KeyMap(imgui.KeyEscape, int(input.KeyEscape))
	io.KeyMap(imgui.KeyA, int(input.KeyA))
	io.KeyMap(imgui.KeyC, int(input.KeyC))
	io.KeyMap(imgui.KeyV, int(input.KeyV))
	io.KeyMap(imgui.KeyX, int(input.KeyX))
	io.KeyMap(imgui.KeyY, int(input.KeyY))
	io.KeyMap(imgui.KeyZ, int(input.KeyZ))
}

func (p *Platform) installCallbacks() {
	p.window.AddEventHandler(graphics.EventHandler{
		Key:         p.keyChange,
		Char:        p.charChange,
		MouseButton: p.mouseButtonChange,
		Scroll:      p.mouseScrollChange,
	})
}

func (p *Platform) keyChange(key input.Key, scancode int, action input.Action, mods input.ModifierKey) {
	if p.disposed || key < 0 {
		return
	}
	switch action {
	case input.Press:
		p.imguiIO.KeyPress(int(key))
	case input.Release:
		p.imguiIO.KeyRelease(int(key))
	}

	// Modifier flags reported with the event differ between systems.
	p.imguiIO.KeyCtrl(int(input.KeyLeftControl), int(input.KeyRightControl))
	p.imguiIO.KeyShift(int(input.KeyLeftShift), int(input.KeyRightShift))
	p.imguiIO.KeyAlt(int(input.KeyLeftAlt), int(input.KeyRightAlt))
	p.imguiIO.KeySuper(int(input.KeyLeftSuper), int(input.KeyRightSuper))
}

func (p *Platform) charChange(char rune) {
	if p.disposed {
		return
	}
	p.imguiIO.AddInputCharacters(string(char))
}

func (p *Platform) mouseButtonChange(button input.MouseButton, action input.Action, mods input.ModifierKey) {
	if p.disposed {
		return
	}
	if index, known := buttonIndexByID[button]; known && action == input.Press {
		p.mouseJustPressed[index] = true
	}
}

func (p *Platform) mouseScrollChange(xOffset, yOffset float64) {
	if p.disposed {
		return
	}
	p.imguiIO.AddMouseWheelDelta(float32(xOffset), float32(yOffset))
}

type clipboard struct {
	window graphics.Window
}

func (c clipboard) Text() (string, error) {
	return c.window.ClipboardString(), nil
}

func (c clipboard) SetText(value string) {
	c.window.SetClipboardString(value)
}
