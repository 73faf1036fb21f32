package gui

import (
	"fmt"
	"math"
	"testing"

	imgui "github.com/inkyblackness/imgui-go/v4"
	graphics "github.com/richinsley/goglapp/graphics"
	input "github.com/richinsley/goglapp/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modifierCalls() []string {
	return []string{
		fmt.Sprintf("ctrl %d %d", input.KeyLeftControl, input.KeyRightControl),
		fmt.Sprintf("shift %d %d", input.KeyLeftShift, input.KeyRightShift),
		fmt.Sprintf("alt %d %d", input.KeyLeftAlt, input.KeyRightAlt),
		fmt.Sprintf("super %d %d", input.KeyLeftSuper, input.KeyRightSuper),
	}
}

// newTestPlatform runs without an imgui context, so the requested cursor is
// stubbed.
func newTestPlatform(clock func() float64) (*Platform, *recordingIO, *fakeWindow) {
	io := newRecordingIO()
	win := newFakeWindow()
	p := NewPlatform(io, win, clock, true)
	p.mouseCursor = func() imgui.MouseCursorID { return imgui.MouseCursorArrow }
	return p, io, win
}

func TestNewPlatformBindsWindow(t *testing.T) {
	_, io, win := newTestPlatform(clockAt(0))

	assert.Len(t, win.handlers, 1)
	assert.Equal(t, int(input.KeyTab), io.keyMap[imgui.KeyTab])
	assert.Equal(t, int(input.KeyEscape), io.keyMap[imgui.KeyEscape])
	assert.Equal(t, int(input.KeyZ), io.keyMap[imgui.KeyZ])
	assert.Equal(t, imgui.BackendFlagsHasMouseCursors, io.backendFlags)
	require.NotNil(t, io.clipboard)
}

func TestNewPlatformWithoutCallbacks(t *testing.T) {
	io := newRecordingIO()
	win := newFakeWindow()
	NewPlatform(io, win, clockAt(0), false)

	assert.Empty(t, win.handlers)
	assert.NotNil(t, io.clipboard)
}

func TestPlatformForwardsKeys(t *testing.T) {
	_, io, win := newTestPlatform(clockAt(0))

	win.handlers.DispatchKey(input.KeyA, 30, input.Press, 0)
	expected := append([]string{fmt.Sprintf("press %d", input.KeyA)}, modifierCalls()...)
	assert.Equal(t, expected, io.calls)

	io.calls = nil
	win.handlers.DispatchKey(input.KeyA, 30, input.Repeat, 0)
	assert.Equal(t, modifierCalls(), io.calls, "repeats only refresh modifiers")

	io.calls = nil
	win.handlers.DispatchKey(input.KeyA, 30, input.Release, 0)
	expected = append([]string{fmt.Sprintf("release %d", input.KeyA)}, modifierCalls()...)
	assert.Equal(t, expected, io.calls)

	io.calls = nil
	win.handlers.DispatchKey(input.KeyUnknown, 0, input.Press, 0)
	assert.Empty(t, io.calls)
}

func TestPlatformForwardsCharsAndScroll(t *testing.T) {
	_, io, win := newTestPlatform(clockAt(0))

	win.handlers.DispatchChar('h')
	win.handlers.DispatchChar('é')
	assert.Equal(t, "hé", io.chars)

	win.handlers.DispatchScroll(0.5, -1)
	win.handlers.DispatchScroll(0, -2)
	assert.Equal(t, float32(0.5), io.wheelX)
	assert.Equal(t, float32(-3), io.wheelY)
}

func TestPlatformKeepsShortClicksForOneFrame(t *testing.T) {
	p, io, win := newTestPlatform(clockAt(0))

	win.handlers.DispatchMouseButton(input.MouseButtonLeft, input.Press, 0)
	win.handlers.DispatchMouseButton(input.MouseButtonLeft, input.Release, 0)
	win.buttons[input.MouseButtonRight] = input.Press

	p.NewFrame()
	assert.Equal(t, [3]bool{true, true, false}, io.buttonsDown)

	p.NewFrame()
	assert.Equal(t, [3]bool{false, true, false}, io.buttonsDown)
}

func TestPlatformNewFrame(t *testing.T) {
	p, io, win := newTestPlatform(clockAt(1.0, 1.25))
	win.cursorX, win.cursorY = 10, 20

	p.NewFrame()
	assert.Equal(t, imgui.Vec2{X: 800, Y: 600}, io.displaySize)
	assert.Equal(t, float32(0), io.deltaTime, "no time step before the first frame")
	assert.Equal(t, imgui.Vec2{X: 10, Y: 20}, io.mousePos)

	win.focused = false
	p.NewFrame()
	assert.Equal(t, float32(0.25), io.deltaTime)
	assert.Equal(t, imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32}, io.mousePos)

	assert.Equal(t, [2]float32{800, 600}, p.DisplaySize())
	assert.Equal(t, [2]float32{1600, 1200}, p.FramebufferSize())
}

func TestPlatformAppliesRequestedCursor(t *testing.T) {
	p, io, win := newTestPlatform(clockAt(0))
	requested := imgui.MouseCursorTextInput
	p.mouseCursor = func() imgui.MouseCursorID { return requested }

	p.NewFrame()
	requested = imgui.MouseCursorNone
	p.NewFrame()
	requested = imgui.MouseCursorResizeNWSE
	p.NewFrame()
	requested = imgui.MouseCursorID(42)
	p.NewFrame()

	assert.Equal(t, []graphics.CursorShape{
		graphics.CursorTextInput,
		graphics.CursorHidden,
		graphics.CursorResizeNWSE,
		graphics.CursorArrow,
	}, win.shapes)

	p.SetConfigFlags(imgui.ConfigFlagsNoMouseCursorChange)
	assert.Equal(t, imgui.ConfigFlagsNoMouseCursorChange, io.configFlags)
	requested = imgui.MouseCursorHand
	p.NewFrame()
	assert.Len(t, win.shapes, 4, "cursor changes are disabled")

	p.SetConfigFlags(0)
	p.NewFrame()
	assert.Equal(t, graphics.CursorHand, win.shapes[len(win.shapes)-1])
}

func TestPlatformDropsEventsAfterDispose(t *testing.T) {
	p, io, win := newTestPlatform(clockAt(0))
	p.Dispose()

	win.handlers.DispatchKey(input.KeyA, 0, input.Press, 0)
	win.handlers.DispatchChar('x')
	win.handlers.DispatchScroll(1, 1)
	win.handlers.DispatchMouseButton(input.MouseButtonLeft, input.Press, 0)

	assert.Empty(t, io.calls)
	assert.Empty(t, io.chars)
	assert.Zero(t, io.wheelY)

	p.NewFrame()
	assert.Equal(t, [3]bool{}, io.buttonsDown)
}

func TestClipboardUsesWindow(t *testing.T) {
	_, io, win := newTestPlatform(clockAt(0))
	win.clipboard = "from os"

	text, err := io.clipboard.Text()
	require.NoError(t, err)
	assert.Equal(t, "from os", text)

	io.clipboard.SetText("from gui")
	assert.Equal(t, "from gui", win.clipboard)
}

func TestPlatformDrivesImguiIO(t *testing.T) {
	context := imgui.CreateContext(nil)
	defer context.Destroy()
	io := imgui.CurrentIO()
	win := newFakeWindow()
	p := NewPlatform(io, win, clockAt(0), true)

	win.handlers.DispatchKey(input.KeyLeftControl, 0, input.Press, 0)
	win.handlers.DispatchKey(input.KeyA, 0, input.Press, 0)
	win.handlers.DispatchScroll(1, 2)

	assert.True(t, io.KeyCtrlPressed())
	assert.True(t, imgui.IsKeyDown(int(input.KeyA)))
	wheelX, wheelY := io.MouseWheel()
	assert.Equal(t, float32(1), wheelX)
	assert.Equal(t, float32(2), wheelY)

	win.handlers.DispatchKey(input.KeyA, 0, input.Release, 0)
	win.handlers.DispatchKey(input.KeyLeftControl, 0, input.Release, 0)
	assert.False(t, imgui.IsKeyDown(int(input.KeyA)))
	assert.False(t, io.KeyCtrlPressed())

	p.NewFrame()
	assert.Equal(t, []graphics.CursorShape{graphics.CursorArrow}, win.shapes)
}
