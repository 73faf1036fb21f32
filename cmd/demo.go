package main

import (
	"fmt"
	"log"

	gl "github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	imgui "github.com/inkyblackness/imgui-go/v4"
	app "github.com/richinsley/goglapp/app"
	capture "github.com/richinsley/goglapp/capture"
	gpu "github.com/richinsley/goglapp/gpu"
	graphics "github.com/richinsley/goglapp/graphics"
	input "github.com/richinsley/goglapp/input"
	options "github.com/richinsley/goglapp/options"
	shader "github.com/richinsley/goglapp/shader"
)

// position (x, y) followed by color (r, g, b)
var triangleVertices = []float32{
	0.0, 0.6, 1.0, 0.2, 0.2,
	-0.5, -0.4, 0.2, 1.0, 0.2,
	0.5, -0.4, 0.2, 0.2, 1.0,
}

type demo struct {
	app.BaseClient

	cfg         *options.Config
	application *app.Application
	gpu         *gpu.GL
	capturer    *capture.Capturer

	program      uint32
	vao          uint32
	vbo          uint32
	transformLoc int32

	angle        float32
	speed        float32
	rotate       bool
	frameSeconds float64
	guiKeyboard  bool
}

func newDemo(cfg *options.Config) *demo {
	return &demo{
		cfg:    cfg,
		speed:  1.0,
		rotate: true,
	}
}

func (d *demo) WindowConfiguration() graphics.WindowConfiguration {
	return d.cfg.WindowConfiguration()
}

func (d *demo) OnInitialize() {
	var recorder *capture.Recorder
	if d.cfg.Recording() {
		width, height := d.application.FramebufferSize()
		rec, err := capture.NewRecorder(d.cfg.RecorderOptions(width, height))
		if err != nil {
			log.Printf("Recording disabled: %v", err)
		} else {
			recorder = rec
		}
	}
	d.capturer = capture.NewCapturer(d.gpu.ReadPixels, recorder, d.cfg.Capture.ScreenshotDir)
	d.application.AddFrameListener(d.capturer.OnFrame)

	program, err := gpu.NewProgram(
		shader.TriangleVertexShader(shader.DefaultGLSLVersion),
		shader.TriangleFragmentShader(shader.DefaultGLSLVersion))
	if err != nil {
		log.Printf("Failed to build triangle program: %v", err)
		d.application.Close()
		return
	}
	d.program = program
	d.transformLoc = gl.GetUniformLocation(program, gl.Str("u_transform\x00"))

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(triangleVertices)*4, gl.Ptr(triangleVertices), gl.STATIC_DRAW)

	stride := int32(5 * 4)
	positionAttrib := uint32(gl.GetAttribLocation(program, gl.Str("in_position\x00")))
	gl.EnableVertexAttribArray(positionAttrib)
	gl.VertexAttribPointerWithOffset(positionAttrib, 2, gl.FLOAT, false, stride, 0)
	colorAttrib := uint32(gl.GetAttribLocation(program, gl.Str("in_color\x00")))
	gl.EnableVertexAttribArray(colorAttrib)
	gl.VertexAttribPointerWithOffset(colorAttrib, 3, gl.FLOAT, false, stride, 2*4)
	gl.BindVertexArray(0)
}

func (d *demo) OnImmediateGui(state app.GuiState) {
	d.guiKeyboard = state.WantCaptureKeyboard()

	imgui.Begin("Stats")
	if d.frameSeconds > 0 {
		imgui.Text(fmt.Sprintf("%.2f ms (%.0f FPS)", d.frameSeconds*1000, 1/d.frameSeconds))
	}
	x, y := d.application.Mouse().Position().Elem()
	imgui.Text(fmt.Sprintf("Cursor: %.0f, %.0f", x, y))
	imgui.Checkbox("Rotate (space)", &d.rotate)
	imgui.SliderFloat("Speed", &d.speed, -5, 5)
	imgui.Text("ESC quits, F12 saves a screenshot")
	if last := d.capturer.LastScreenshot(); last != "" {
		imgui.Text("Saved " + last)
	}
	imgui.End()
}

func (d *demo) OnDraw(delta float64) {
	d.frameSeconds = delta

	keyboard := d.application.Keyboard()
	if keyboard.JustPressed(input.KeySpace) {
		d.rotate = !d.rotate
	}
	mouse := d.application.Mouse()
	if scroll := mouse.ScrollOffset(); scroll.Y() != 0 {
		d.speed = mgl32.Clamp(d.speed+float32(scroll.Y())*0.25, -5, 5)
	}
	if mouse.IsPressed(input.MouseButtonLeft) {
		d.angle += float32(mouse.Delta().X()) * 0.01
	} else if d.rotate {
		d.angle += d.speed * float32(delta)
	}

	gl.ClearColor(0.1, 0.1, 0.12, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if d.program == 0 {
		return
	}

	width, height := d.application.FramebufferSize()
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(height) / float32(width)
	}
	transform := mgl32.Scale3D(aspect, 1, 1).Mul4(mgl32.HomogRotate3DZ(d.angle))

	gl.UseProgram(d.program)
	gl.UniformMatrix4fv(d.transformLoc, 1, false, &transform[0])
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (d *demo) OnKeyEvent(key input.Key, scancode int, action input.Action, mods input.ModifierKey) {
	if action != input.Press || d.guiKeyboard {
		return
	}
	switch key {
	case input.KeyEscape:
		d.application.Close()
	case input.KeyF12:
		d.capturer.RequestScreenshot()
	}
}

func (d *demo) OnDestroy() {
	if d.capturer != nil {
		if err := d.capturer.Close(); err != nil {
			log.Printf("Recording failed: %v", err)
		}
	}
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	if d.program != 0 {
		gl.DeleteProgram(d.program)
	}
}
