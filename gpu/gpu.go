package gpu

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"unsafe"

	gl "github.com/go-gl/gl/v3.3-core/gl"
	gldebug "github.com/richinsley/goglapp/gldebug"
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// GL drives the OpenGL context current on the calling thread.
type GL struct{}

// New returns the OpenGL backend.
func New() *GL {
	return &GL{}
}

// Init loads the OpenGL function pointers. The context must be current.
// Loading happens once per process; a failure is reported on every call.
func (*GL) Init() error {
	if err := loadOnce(gl.Init); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Printf("OpenGL %s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	return nil
}

func loadOnce(load func() error) error {
	glInitOnce.Do(func() {
		glInitErr = load()
	})
	return glInitErr
}

// Viewport sets the GL viewport in framebuffer pixels.
func (*GL) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// EnableDebugOutput routes driver debug messages to handle. Messages are
// delivered synchronously on the thread issuing GL calls.
func (*GL) EnableDebugOutput(handle func(gldebug.Message)) {
	if !debugOutputSupported() {
		log.Println("OpenGL debug output is not available on this context")
		return
	}
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		handle(gldebug.Message{
			Source:   gldebug.Source(source),
			Type:     gldebug.Type(gltype),
			ID:       id,
			Severity: gldebug.Severity(severity),
			Text:     message,
		})
	}, nil)
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
}

// ReadPixels returns the RGBA contents of the bound read framebuffer,
// bottom row first.
func (*GL) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func debugOutputSupported() bool {
	var major, minor int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	gl.GetIntegerv(gl.MINOR_VERSION, &minor)
	if major > 4 || (major == 4 && minor >= 3) {
		return true
	}
	var count int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &count)
	for i := int32(0); i < count; i++ {
		if gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i))) == "GL_KHR_debug" {
			return true
		}
	}
	return false
}

// NewProgram compiles and links a vertex/fragment shader pair.
func NewProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := CompileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := CompileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

// CompileShader compiles source and returns the compile log as an error on failure.
func CompileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
