package options

import "flag"

// AppOptions holds the command-line flags. Values are read after parsing.
type AppOptions struct {
	ConfigFile    *string
	Help          *bool
	Title         *string
	Width         *int
	Height        *int
	Fullscreen    *bool
	VSync         *bool
	DebugContext  *bool
	Record        *string // Output file; recording is off when empty
	FFmpegPath    *string
	FPS           *int
	ScreenshotDir *string
	CPUProfile    *bool
	MemProfile    *bool
	ProfileDir    *string
}

// Register defines the application flags on fs.
func Register(fs *flag.FlagSet) *AppOptions {
	defaults := DefaultConfig()
	return &AppOptions{
		ConfigFile:    fs.String("config", "", "Path to a YAML configuration file"),
		Help:          fs.Bool("help", false, "Show help message"),
		Title:         fs.String("title", defaults.Window.Title, "Window title"),
		Width:         fs.Int("width", defaults.Window.Width, "Window width"),
		Height:        fs.Int("height", defaults.Window.Height, "Window height"),
		Fullscreen:    fs.Bool("fullscreen", defaults.Window.Fullscreen, "Open the window fullscreen on the primary monitor"),
		VSync:         fs.Bool("vsync", defaults.Window.VSync, "Wait for vertical sync when swapping buffers"),
		DebugContext:  fs.Bool("debug", defaults.Window.DebugContext, "Request an OpenGL debug context"),
		Record:        fs.String("record", defaults.Capture.Record, "Record the window to this video file"),
		FFmpegPath:    fs.String("ffmpeg", defaults.Capture.FFmpeg, "Path to ffmpeg executable"),
		FPS:           fs.Int("fps", defaults.Capture.FPS, "Frames per second of the recording"),
		ScreenshotDir: fs.String("screenshots", defaults.Capture.ScreenshotDir, "Directory for F12 screenshots"),
		CPUProfile:    fs.Bool("cpuprofile", false, "Write a CPU profile"),
		MemProfile:    fs.Bool("memprofile", false, "Write a memory profile"),
		ProfileDir:    fs.String("profiledir", ".", "Directory for profile output"),
	}
}

// Resolve loads the config file named by -config, if any, and applies the
// flags that were set explicitly on top of it.
func (o *AppOptions) Resolve(fs *flag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()
	if o.ConfigFile != nil && *o.ConfigFile != "" {
		loaded, err := LoadFromPath(*o.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			cfg.Window.Title = *o.Title
		case "width":
			cfg.Window.Width = *o.Width
		case "height":
			cfg.Window.Height = *o.Height
		case "fullscreen":
			cfg.Window.Fullscreen = *o.Fullscreen
		case "vsync":
			cfg.Window.VSync = *o.VSync
		case "debug":
			cfg.Window.DebugContext = *o.DebugContext
		case "record":
			cfg.Capture.Record = *o.Record
		case "ffmpeg":
			cfg.Capture.FFmpeg = *o.FFmpegPath
		case "fps":
			cfg.Capture.FPS = *o.FPS
		case "screenshots":
			cfg.Capture.ScreenshotDir = *o.ScreenshotDir
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
