// Package desktop assembles an app.Application from GLFW, OpenGL and Dear
// ImGui.
package desktop

import (
	app "github.com/richinsley/goglapp/app"
	glfwcontext "github.com/richinsley/goglapp/glfwcontext"
	gpu "github.com/richinsley/goglapp/gpu"
	gui "github.com/richinsley/goglapp/gui"
	options "github.com/richinsley/goglapp/options"
)

// New returns an application for client using the given context hints. The
// GL backend is returned as well for pixel readback.
func New(client app.Client, hints glfwcontext.Hints) (*app.Application, *gpu.GL) {
	gl := gpu.New()
	application := app.New(client, app.Backends{
		Platform:   glfwcontext.NewPlatform(hints),
		GPU:        gl,
		NewOverlay: gui.Factory(gui.DefaultGLSLVersion),
	})
	return application, gl
}

// Hints derives context hints from the window section of cfg.
func Hints(cfg *options.Config) glfwcontext.Hints {
	hints := glfwcontext.DefaultHints()
	hints.DebugContext = cfg.Window.DebugContext
	if cfg.Window.VSync {
		hints.SwapInterval = 1
	}
	return hints
}
