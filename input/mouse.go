package input

import "github.com/go-gl/mathgl/mgl64"

// Mouse tracks buttons, cursor position and the scroll accumulated during the
// current frame.
type Mouse struct {
	enabled      bool
	current      [MouseButtonLast + 1]bool
	previous     [MouseButtonLast + 1]bool
	currentPos   mgl64.Vec2
	previousPos  mgl64.Vec2
	scrollOffset mgl64.Vec2
}

// Enable samples the live button state and cursor position from src and
// starts accepting events.
func (m *Mouse) Enable(src StateSource) {
	m.enabled = true
	for button := MouseButton(0); button <= MouseButtonLast; button++ {
		m.current[button] = src.MouseButton(button) == Press
	}
	m.previous = m.current
	x, y := src.CursorPos()
	m.currentPos = mgl64.Vec2{x, y}
	m.previousPos = m.currentPos
	m.scrollOffset = mgl64.Vec2{}
}

// Disable stops recording and clears all state.
func (m *Mouse) Disable() {
	m.enabled = false
	m.current = [MouseButtonLast + 1]bool{}
	m.previous = [MouseButtonLast + 1]bool{}
	m.currentPos = mgl64.Vec2{}
	m.previousPos = mgl64.Vec2{}
	m.scrollOffset = mgl64.Vec2{}
}

// IsEnabled reports whether mouse events are being recorded.
func (m *Mouse) IsEnabled() bool {
	return m.enabled
}

// SetEnabled enables or disables the tracker only when the state changes.
func (m *Mouse) SetEnabled(enabled bool, src StateSource) {
	if m.enabled == enabled {
		return
	}
	if enabled {
		m.Enable(src)
	} else {
		m.Disable()
	}
}

// CursorMoveEvent records the cursor position. It is ignored while disabled.
func (m *Mouse) CursorMoveEvent(x, y float64) {
	if !m.enabled {
		return
	}
	m.currentPos = mgl64.Vec2{x, y}
}

// MouseButtonEvent records a button press or release.
func (m *Mouse) MouseButtonEvent(button MouseButton, action Action, mods ModifierKey) {
	if !m.enabled || !validButton(button) {
		return
	}
	switch action {
	case Press:
		m.current[button] = true
	case Release:
		m.current[button] = false
	}
}

// ScrollEvent adds to the scroll offset of the current frame.
func (m *Mouse) ScrollEvent(xOffset, yOffset float64) {
	if !m.enabled {
		return
	}
	m.scrollOffset = m.scrollOffset.Add(mgl64.Vec2{xOffset, yOffset})
}

// Update advances the tracker to the next frame and zeroes the scroll.
func (m *Mouse) Update() {
	m.previous = m.current
	m.previousPos = m.currentPos
	m.scrollOffset = mgl64.Vec2{}
}

// Position is the cursor position in screen coordinates.
func (m *Mouse) Position() mgl64.Vec2 {
	return m.currentPos
}

// Delta is the cursor movement since the previous frame.
func (m *Mouse) Delta() mgl64.Vec2 {
	return m.currentPos.Sub(m.previousPos)
}

// ScrollOffset is the scrolling accumulated since the last Update.
func (m *Mouse) ScrollOffset() mgl64.Vec2 {
	return m.scrollOffset
}

// IsPressed reports whether button is down this frame.
func (m *Mouse) IsPressed(button MouseButton) bool {
	return validButton(button) && m.current[button]
}

// JustPressed reports whether button went down since the last Update.
func (m *Mouse) JustPressed(button MouseButton) bool {
	return validButton(button) && m.current[button] && !m.previous[button]
}

// JustReleased reports whether button went up since the last Update.
func (m *Mouse) JustReleased(button MouseButton) bool {
	return validButton(button) && !m.current[button] && m.previous[button]
}

// Lock hides the cursor and confines it to the window.
func (m *Mouse) Lock(c CursorController) {
	c.SetCursorLocked(true)
}

// Unlock releases the cursor captured by Lock.
func (m *Mouse) Unlock(c CursorController) {
	c.SetCursorLocked(false)
}

func validButton(button MouseButton) bool {
	return button >= 0 && button <= MouseButtonLast
}
