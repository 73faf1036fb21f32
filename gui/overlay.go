package gui

import (
	"fmt"

	imgui "github.com/inkyblackness/imgui-go/v4"
	app "github.com/richinsley/goglapp/app"
	graphics "github.com/richinsley/goglapp/graphics"
	shader "github.com/richinsley/goglapp/shader"
)

// DefaultGLSLVersion is the version directive the renderer compiles with.
const DefaultGLSLVersion = shader.DefaultGLSLVersion

type platformBackend interface {
	NewFrame()
	SetConfigFlags(flags imgui.ConfigFlags)
	DisplaySize() [2]float32
	FramebufferSize() [2]float32
	Dispose()
}

type rendererBackend interface {
	Render(displaySize [2]float32, framebufferSize [2]float32, drawData imgui.DrawData)
	Dispose()
}

type guiContext interface {
	Destroy()
}

// Overlay is the Dear ImGui context together with its input and render
// backends.
type Overlay struct {
	context  guiContext
	io       imgui.IO
	platform platformBackend
	renderer rendererBackend
}

// New creates the imgui context and binds it to window. The window's GL
// context must be current.
func New(window graphics.Window, clock func() float64, glslVersion string) (*Overlay, error) {
	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")
	imgui.StyleColorsDark()

	platform := NewPlatform(io, window, clock, true)
	renderer, err := NewRenderer(io, glslVersion)
	if err != nil {
		platform.Dispose()
		context.Destroy()
		return nil, fmt.Errorf("failed to initialize GUI renderer: %w", err)
	}

	return &Overlay{
		context:  context,
		io:       io,
		platform: platform,
		renderer: renderer,
	}, nil
}

// Factory adapts New to app.OverlayFactory.
func Factory(glslVersion string) app.OverlayFactory {
	return func(window graphics.Window, clock func() float64) (app.Overlay, error) {
		return New(window, clock, glslVersion)
	}
}

// SetConfigFlags forwards imgui configuration flags to the input backend.
func (o *Overlay) SetConfigFlags(flags imgui.ConfigFlags) {
	o.platform.SetConfigFlags(flags)
}

// NewFrame prepares the backend state, then starts the imgui frame.
func (o *Overlay) NewFrame() {
	o.platform.NewFrame()
	imgui.NewFrame()
}

// IO returns the imgui IO; clients can assert it to imgui.IO.
func (o *Overlay) IO() app.GuiState {
	return o.io
}

// Render finalizes the draw data of the frame.
func (o *Overlay) Render() {
	imgui.Render()
}

// Draw submits the rendered draw data to OpenGL.
func (o *Overlay) Draw() {
	o.renderer.Render(o.platform.DisplaySize(), o.platform.FramebufferSize(), imgui.RenderedDrawData())
}

// Shutdown releases the renderer, then the input backend, then the context.
func (o *Overlay) Shutdown() {
	o.renderer.Dispose()
	o.platform.Dispose()
	o.context.Destroy()
}
