package options

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	capture "github.com/richinsley/goglapp/capture"
	graphics "github.com/richinsley/goglapp/graphics"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Fullscreen   bool   `yaml:"fullscreen"`
	VSync        bool   `yaml:"vsync"`
	DebugContext bool   `yaml:"debug_context"`
}

type CaptureConfig struct {
	Record        string `yaml:"record"`
	FFmpeg        string `yaml:"ffmpeg"`
	FPS           int    `yaml:"fps"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Config is the effective application configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Capture CaptureConfig `yaml:"capture"`
}

// DefaultConfig returns the settings used when no file or flag overrides them.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:        "OpenGL Application",
			Width:        1280,
			Height:       720,
			VSync:        true,
			DebugContext: true,
		},
		Capture: CaptureConfig{
			FPS:           60,
			ScreenshotDir: ".",
		},
	}
}

// ValidationError reports the YAML path of an invalid setting.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate returns a *ValidationError for the first invalid setting.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 {
		return &ValidationError{Path: "window.width", Err: errors.New("width must be > 0")}
	}
	if c.Window.Height <= 0 {
		return &ValidationError{Path: "window.height", Err: errors.New("height must be > 0")}
	}
	if c.Capture.FPS <= 0 {
		return &ValidationError{Path: "capture.fps", Err: errors.New("fps must be > 0")}
	}
	if c.Capture.ScreenshotDir == "" {
		return &ValidationError{Path: "capture.screenshot_dir", Err: errors.New("screenshot_dir must not be empty")}
	}
	return nil
}

// LoadFromPath reads a YAML file over the defaults. Unknown keys are errors.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WindowConfiguration returns the window section as a graphics.WindowConfiguration.
func (c *Config) WindowConfiguration() graphics.WindowConfiguration {
	return graphics.WindowConfiguration{
		Title:      c.Window.Title,
		Width:      c.Window.Width,
		Height:     c.Window.Height,
		Fullscreen: c.Window.Fullscreen,
	}
}

// Recording reports whether a video file was requested.
func (c *Config) Recording() bool {
	return c.Capture.Record != ""
}

// RecorderOptions sizes the recording to the framebuffer, which can differ
// from the window size on high-DPI displays.
func (c *Config) RecorderOptions(framebufferWidth, framebufferHeight int) capture.RecorderOptions {
	return capture.RecorderOptions{
		Output:     c.Capture.Record,
		FFmpegPath: c.Capture.FFmpeg,
		Width:      framebufferWidth,
		Height:     framebufferHeight,
		FPS:        c.Capture.FPS,
	}
}
