package app

import (
	graphics "github.com/richinsley/goglapp/graphics"
	input "github.com/richinsley/goglapp/input"
)

// GuiState is the per-frame state the GUI overlay reports to clients.
// imgui.IO satisfies it.
type GuiState interface {
	WantCaptureKeyboard() bool
	WantCaptureMouse() bool
}

// Client is what an application built on this package implements. Embed
// BaseClient to get no-op hooks and the default window configuration.
type Client interface {
	WindowConfiguration() graphics.WindowConfiguration

	OnInitialize()
	// OnImmediateGui is where the client declares the GUI widgets of the
	// frame.
	OnImmediateGui(io GuiState)
	// OnDraw receives the seconds elapsed since the previous frame.
	OnDraw(deltaTime float64)
	OnDestroy()

	OnKeyEvent(key input.Key, scancode int, action input.Action, mods input.ModifierKey)
	OnCursorMoveEvent(x, y float64)
	OnCursorEnterEvent(entered bool)
	OnMouseButtonEvent(button input.MouseButton, action input.Action, mods input.ModifierKey)
	OnScrollEvent(xOffset, yOffset float64)
}

// BaseClient implements Client with hooks that do nothing.
type BaseClient struct{}

func (BaseClient) WindowConfiguration() graphics.WindowConfiguration {
	return graphics.WindowConfiguration{
		Title:  "OpenGL Application",
		Width:  1280,
		Height: 720,
	}
}

func (BaseClient) OnInitialize() {}
func (BaseClient) OnImmediateGui(GuiState) {}
func (BaseClient) OnDraw(float64) {}
func (BaseClient) OnDestroy() {}
func (BaseClient) OnCursorMoveEvent(float64, float64) {}
func (BaseClient) OnCursorEnterEvent(bool) {}
func (BaseClient) OnScrollEvent(float64, float64) {}

func (BaseClient) OnKeyEvent(input.Key, int, input.Action, input.ModifierKey) {}

func (BaseClient) OnMouseButtonEvent(input.MouseButton, input.Action, input.ModifierKey) {}
