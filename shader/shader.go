package shader

import (
	"fmt"
	"strings"
)

// DefaultGLSLVersion matches the 3.3 core context created by glfwcontext.
const DefaultGLSLVersion = "#version 330 core"

// ──────────────────────────────── GUI overlay ────────────────────────────────

const guiVertexShaderBody130 = `
uniform mat4 ProjMtx;
in vec2 Position;
in vec2 UV;
in vec4 Color;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main() {
    Frag_UV = UV;
    Frag_Color = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`

const guiVertexShaderBodyLayout = `
layout (location = 0) in vec2 Position;
layout (location = 1) in vec2 UV;
layout (location = 2) in vec4 Color;
uniform mat4 ProjMtx;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main() {
    Frag_UV = UV;
    Frag_Color = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`

const guiFragmentShaderBody = `
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
out vec4 Out_Color;
void main() {
    Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}
`

// ────────────────────────────────── Demo scene ──────────────────────────────────

const triangleVertexShaderBody = `
layout (location = 0) in vec3 in_position;
layout (location = 1) in vec3 in_color;
uniform mat4 u_transform;
out vec3 frag_color;
void main() {
    frag_color = in_color;
    gl_Position = u_transform * vec4(in_position, 1.0);
}
`

const triangleFragmentShaderBody = `
in vec3 frag_color;
out vec4 out_color;
void main() {
    out_color = vec4(frag_color, 1.0);
}
`

// IsGLES reports whether a version directive targets OpenGL ES.
func IsGLES(glslVersion string) bool {
	return strings.HasSuffix(strings.TrimSpace(glslVersion), " es")
}

// versionNumber extracts the number of a "#version NNN [profile]" line.
func versionNumber(glslVersion string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(glslVersion), "#version %d", &n); err != nil {
		return 0, fmt.Errorf("invalid GLSL version directive %q: %w", glslVersion, err)
	}
	return n, nil
}

func preamble(glslVersion string, fragment bool) string {
	header := strings.TrimSpace(glslVersion) + "\n"
	if fragment && IsGLES(glslVersion) {
		header += "precision mediump float;\n"
	}
	return header
}

// GUIVertexShader returns the overlay vertex shader for glslVersion. GLSL
// 130 has no explicit attribute locations.
func GUIVertexShader(glslVersion string) (string, error) {
	n, err := versionNumber(glslVersion)
	if err != nil {
		return "", err
	}
	body := guiVertexShaderBodyLayout
	if n < 330 && !IsGLES(glslVersion) {
		body = guiVertexShaderBody130
	}
	return preamble(glslVersion, false) + body, nil
}

// GUIFragmentShader returns the overlay fragment shader for glslVersion.
func GUIFragmentShader(glslVersion string) (string, error) {
	if _, err := versionNumber(glslVersion); err != nil {
		return "", err
	}
	return preamble(glslVersion, true) + guiFragmentShaderBody, nil
}

// TriangleVertexShader returns the demo vertex shader.
func TriangleVertexShader(glslVersion string) string {
	return preamble(glslVersion, false) + triangleVertexShaderBody
}

func TriangleFragmentShader(glslVersion string) string {
	return preamble(glslVersion, true) + triangleFragmentShaderBody
}
