package gui

import (
	"fmt"

	gl "github.com/go-gl/gl/v3.3-core/gl"
	imgui "github.com/inkyblackness/imgui-go/v4"
	gpu "github.com/richinsley/goglapp/gpu"
	shader "github.com/richinsley/goglapp/shader"
)

// Renderer draws imgui draw data with OpenGL 3. It saves and restores the GL
// state it touches so the client's own state survives the overlay.
type Renderer struct {
	imguiIO     imgui.IO
	glslVersion string

	fontTexture            uint32
	shaderHandle           uint32
	attribLocationTex      int32
	attribLocationProjMtx  int32
	attribLocationPosition int32
	attribLocationUV       int32
	attribLocationColor    int32
	vboHandle              uint32
	elementsHandle         uint32
}

// NewRenderer creates the shader program, buffers and font atlas texture.
// The GL context must be current.
func NewRenderer(io imgui.IO, glslVersion string) (*Renderer, error) {
	r := &Renderer{
		imguiIO:     io,
		glslVersion: glslVersion,
	}
	if err := r.createDeviceObjects(); err != nil {
		return nil, err
	}
	return r, nil
}

// Dispose deletes the GL objects. The context must be current.
func (r *Renderer) Dispose() {
	r.invalidateDeviceObjects()
}

// Render submits drawData. displaySize is in screen coordinates,
// framebufferSize in pixels.
func (r *Renderer) Render(displaySize [2]float32, framebufferSize [2]float32, drawData imgui.DrawData) {
	displayWidth, displayHeight := displaySize[0], displaySize[1]
	fbWidth, fbHeight := framebufferSize[0], framebufferSize[1]
	if fbWidth <= 0 || fbHeight <= 0 || displayWidth <= 0 || displayHeight <= 0 {
		return
	}
	drawData.ScaleClipRects(imgui.Vec2{
		X: fbWidth / displayWidth,
		Y: fbHeight / displayHeight,
	})

	state := saveState()
	defer state.restore()

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.STENCIL_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	orthoProjection := [4][4]float32{
		{2.0 / displayWidth, 0.0, 0.0, 0.0},
		{0.0, 2.0 / -displayHeight, 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}
	gl.UseProgram(r.shaderHandle)
	gl.Uniform1i(r.attribLocationTex, 0)
	gl.UniformMatrix4fv(r.attribLocationProjMtx, 1, false, &orthoProjection[0][0])
	gl.BindSampler(0, 0)

	// VAOs are not shared between contexts.
	var vaoHandle uint32
	gl.GenVertexArrays(1, &vaoHandle)
	gl.BindVertexArray(vaoHandle)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vboHandle)
	gl.EnableVertexAttribArray(uint32(r.attribLocationPosition))
	gl.EnableVertexAttribArray(uint32(r.attribLocationUV))
	gl.EnableVertexAttribArray(uint32(r.attribLocationColor))
	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	gl.VertexAttribPointer(uint32(r.attribLocationPosition), 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(vertexOffsetPos))
	gl.VertexAttribPointer(uint32(r.attribLocationUV), 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(vertexOffsetUv))
	gl.VertexAttribPointer(uint32(r.attribLocationColor), 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), gl.PtrOffset(vertexOffsetCol))

	indexSize := imgui.IndexBufferLayout()
	var drawType uint32 = gl.UNSIGNED_SHORT
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vboHandle)
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)

		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.elementsHandle)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		indexBufferOffset := 0
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				clipRect := cmd.ClipRect()
				gl.Scissor(int32(clipRect.X), int32(fbHeight)-int32(clipRect.W), int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))
				gl.DrawElements(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, gl.PtrOffset(indexBufferOffset))
			}
			indexBufferOffset += cmd.ElementCount() * indexSize
		}
	}
	gl.DeleteVertexArrays(1, &vaoHandle)
}

func (r *Renderer) createDeviceObjects() error {
	var lastTexture, lastArrayBuffer, lastVertexArray int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &lastArrayBuffer)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &lastVertexArray)
	defer func() {
		gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))
		gl.BindBuffer(gl.ARRAY_BUFFER, uint32(lastArrayBuffer))
		gl.BindVertexArray(uint32(lastVertexArray))
	}()

	vertexShader, err := shader.GUIVertexShader(r.glslVersion)
	if err != nil {
		return err
	}
	fragmentShader, err := shader.GUIFragmentShader(r.glslVersion)
	if err != nil {
		return err
	}
	r.shaderHandle, err = gpu.NewProgram(vertexShader, fragmentShader)
	if err != nil {
		return fmt.Errorf("failed to create GUI shader program: %w", err)
	}

	r.attribLocationTex = gl.GetUniformLocation(r.shaderHandle, gl.Str("Texture\x00"))
	r.attribLocationProjMtx = gl.GetUniformLocation(r.shaderHandle, gl.Str("ProjMtx\x00"))
	r.attribLocationPosition = gl.GetAttribLocation(r.shaderHandle, gl.Str("Position\x00"))
	r.attribLocationUV = gl.GetAttribLocation(r.shaderHandle, gl.Str("UV\x00"))
	r.attribLocationColor = gl.GetAttribLocation(r.shaderHandle, gl.Str("Color\x00"))

	gl.GenBuffers(1, &r.vboHandle)
	gl.GenBuffers(1, &r.elementsHandle)

	r.createFontsTexture()
	return nil
}

func (r *Renderer) createFontsTexture() {
	fonts := r.imguiIO.Fonts()
	image := fonts.TextureDataRGBA32()

	gl.GenTextures(1, &r.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(image.Width), int32(image.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, image.Pixels)

	fonts.SetTextureID(imgui.TextureID(r.fontTexture))
}

func (r *Renderer) invalidateDeviceObjects() {
	if r.vboHandle != 0 {
		gl.DeleteBuffers(1, &r.vboHandle)
	}
	r.vboHandle = 0
	if r.elementsHandle != 0 {
		gl.DeleteBuffers(1, &r.elementsHandle)
	}
	r.elementsHandle = 0

	if r.shaderHandle != 0 {
		gl.DeleteProgram(r.shaderHandle)
	}
	r.shaderHandle = 0

	if r.fontTexture != 0 {
		gl.DeleteTextures(1, &r.fontTexture)
		r.imguiIO.Fonts().SetTextureID(0)
		r.fontTexture = 0
	}
}

// glState is the subset of GL state the overlay changes.
type glState struct {
	activeTexture      int32
	program            int32
	texture            int32
	sampler            int32
	arrayBuffer        int32
	vertexArray        int32
	polygonMode        [2]int32
	viewport           [4]int32
	scissorBox         [4]int32
	blendSrcRgb        int32
	blendDstRgb        int32
	blendSrcAlpha      int32
	blendDstAlpha      int32
	blendEquationRgb   int32
	blendEquationAlpha int32
	enableBlend        bool
	enableCullFace     bool
	enableDepthTest    bool
	enableStencilTest  bool
	enableScissorTest  bool
}

func saveState() glState {
	var s glState
	gl.GetIntegerv(gl.ACTIVE_TEXTURE, &s.activeTexture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &s.texture)
	gl.GetIntegerv(gl.SAMPLER_BINDING, &s.sampler)
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &s.arrayBuffer)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &s.vertexArray)
	gl.GetIntegerv(gl.POLYGON_MODE, &s.polygonMode[0])
	gl.GetIntegerv(gl.VIEWPORT, &s.viewport[0])
	gl.GetIntegerv(gl.SCISSOR_BOX, &s.scissorBox[0])
	gl.GetIntegerv(gl.BLEND_SRC_RGB, &s.blendSrcRgb)
	gl.GetIntegerv(gl.BLEND_DST_RGB, &s.blendDstRgb)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrcAlpha)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDstAlpha)
	gl.GetIntegerv(gl.BLEND_EQUATION_RGB, &s.blendEquationRgb)
	gl.GetIntegerv(gl.BLEND_EQUATION_ALPHA, &s.blendEquationAlpha)
	s.enableBlend = gl.IsEnabled(gl.BLEND)
	s.enableCullFace = gl.IsEnabled(gl.CULL_FACE)
	s.enableDepthTest = gl.IsEnabled(gl.DEPTH_TEST)
	s.enableStencilTest = gl.IsEnabled(gl.STENCIL_TEST)
	s.enableScissorTest = gl.IsEnabled(gl.SCISSOR_TEST)
	return s
}

func (s glState) restore() {
	gl.UseProgram(uint32(s.program))
	gl.BindTexture(gl.TEXTURE_2D, uint32(s.texture))
	gl.BindSampler(0, uint32(s.sampler))
	gl.ActiveTexture(uint32(s.activeTexture))
	gl.BindVertexArray(uint32(s.vertexArray))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(s.arrayBuffer))
	gl.BlendEquationSeparate(uint32(s.blendEquationRgb), uint32(s.blendEquationAlpha))
	gl.BlendFuncSeparate(uint32(s.blendSrcRgb), uint32(s.blendDstRgb), uint32(s.blendSrcAlpha), uint32(s.blendDstAlpha))
	setEnabled(gl.BLEND, s.enableBlend)
	setEnabled(gl.CULL_FACE, s.enableCullFace)
	setEnabled(gl.DEPTH_TEST, s.enableDepthTest)
	setEnabled(gl.STENCIL_TEST, s.enableStencilTest)
	setEnabled(gl.SCISSOR_TEST, s.enableScissorTest)
	gl.PolygonMode(gl.FRONT_AND_BACK, uint32(s.polygonMode[0]))
	gl.Viewport(s.viewport[0], s.viewport[1], s.viewport[2], s.viewport[3])
	gl.Scissor(s.scissorBox[0], s.scissorBox[1], s.scissorBox[2], s.scissorBox[3])
}

func setEnabled(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}
