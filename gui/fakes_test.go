package gui

import (
	"fmt"

	imgui "github.com/inkyblackness/imgui-go/v4"
	graphics "github.com/richinsley/goglapp/graphics"
	input "github.com/richinsley/goglapp/input"
)

// recordingIO implements BackendIO and records what the platform writes.
type recordingIO struct {
	calls []string

	keyMap       map[int]int
	clipboard    imgui.Clipboard
	backendFlags imgui.BackendFlags
	configFlags  imgui.ConfigFlags
	displaySize  imgui.Vec2
	deltaTime    float32
	mousePos     imgui.Vec2
	buttonsDown  [3]bool
	wheelX       float32
	wheelY       float32
	chars        string
}

func newRecordingIO() *recordingIO {
	return &recordingIO{keyMap: make(map[int]int)}
}

func (r *recordingIO) add(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingIO) SetDisplaySize(value imgui.Vec2) { r.displaySize = value }
func (r *recordingIO) SetDeltaTime(value float32) { r.deltaTime = value }
func (r *recordingIO) SetMousePosition(value imgui.Vec2) { r.mousePos = value }
func (r *recordingIO) SetMouseButtonDown(i int, down bool) { r.buttonsDown[i] = down }
func (r *recordingIO) KeyMap(imguiKey int, nativeKey int) { r.keyMap[imguiKey] = nativeKey }
func (r *recordingIO) SetClipboard(board imgui.Clipboard) { r.clipboard = board }
func (r *recordingIO) SetBackendFlags(f imgui.BackendFlags) { r.backendFlags = f }
func (r *recordingIO) SetConfigFlags(f imgui.ConfigFlags) { r.configFlags = f }

func (r *recordingIO) AddMouseWheelDelta(horizontal, vertical float32) {
	r.wheelX += horizontal
	r.wheelY += vertical
}

func (r *recordingIO) KeyPress(key int) { r.add("press %d", key) }
func (r *recordingIO) KeyRelease(key int) { r.add("release %d", key) }

func (r *recordingIO) KeyCtrl(left, right int) { r.add("ctrl %d %d", left, right) }
func (r *recordingIO) KeyShift(left, right int) { r.add("shift %d %d", left, right) }
func (r *recordingIO) KeyAlt(left, right int) { r.add("alt %d %d", left, right) }
func (r *recordingIO) KeySuper(left, right int) { r.add("super %d %d", left, right) }

func (r *recordingIO) AddInputCharacters(chars string) { r.chars += chars }

type fakeWindow struct {
	handlers  graphics.EventHandlers
	focused   bool
	cursorX   float64
	cursorY   float64
	buttons   map[input.MouseButton]input.Action
	clipboard string
	shapes    []graphics.CursorShape
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{
		focused: true,
		buttons: make(map[input.MouseButton]input.Action),
	}
}

func (w *fakeWindow) Key(input.Key) input.Action { return input.Release }
func (w *fakeWindow) MouseButton(b input.MouseButton) input.Action {
	return w.buttons[b]
}
func (w *fakeWindow) CursorPos() (float64, float64) { return w.cursorX, w.cursorY }
func (w *fakeWindow) SetCursorLocked(bool) {}
func (w *fakeWindow) MakeCurrent() {}
func (w *fakeWindow) ShouldClose() bool { return false }
func (w *fakeWindow) SetShouldClose(bool) {}
func (w *fakeWindow) SwapBuffers() {}
func (w *fakeWindow) GetFramebufferSize() (int, int) { return 1600, 1200 }
func (w *fakeWindow) GetSize() (int, int) { return 800, 600 }
func (w *fakeWindow) Focused() bool { return w.focused }
func (w *fakeWindow) ClipboardString() string { return w.clipboard }
func (w *fakeWindow) SetClipboardString(value string) { w.clipboard = value }
func (w *fakeWindow) Destroy() {}
func (w *fakeWindow) AddEventHandler(h graphics.EventHandler) {
	w.handlers = append(w.handlers, h)
}
func (w *fakeWindow) SetCursorShape(shape graphics.CursorShape) {
	w.shapes = append(w.shapes, shape)
}

// clockAt returns a clock that yields times in order, repeating the last.
func clockAt(times ...float64) func() float64 {
	i := 0
	return func() float64 {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}
