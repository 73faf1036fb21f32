package capture

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

// SaveScreenshot writes an RGBA framebuffer read back bottom row first. The
// format follows the file extension; alpha is written as opaque.
func SaveScreenshot(path string, pixels []byte, width, height int) error {
	if len(pixels) != width*height*4 {
		return fmt.Errorf("screenshot buffer is %d bytes, want %d for %dx%d",
			len(pixels), width*height*4, width, height)
	}

	pix := make([]byte, len(pixels))
	copy(pix, pixels)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 0xff
	}
	img := &image.NRGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create screenshot directory: %w", err)
		}
	}
	if err := imaging.Save(imaging.FlipV(img), path); err != nil {
		return fmt.Errorf("failed to save screenshot: %w", err)
	}
	return nil
}

// Capturer reads the framebuffer after each frame when a recording is active
// or a screenshot was requested. Its OnFrame method is an app.FrameListener.
type Capturer struct {
	readPixels    func(width, height int) []byte
	recorder      *Recorder
	screenshotDir string
	now           func() time.Time

	pendingScreenshot bool
	lastScreenshot    string
}

// NewCapturer takes the framebuffer reader and an optional recorder.
func NewCapturer(readPixels func(width, height int) []byte, recorder *Recorder, screenshotDir string) *Capturer {
	return &Capturer{
		readPixels:    readPixels,
		recorder:      recorder,
		screenshotDir: screenshotDir,
		now:           time.Now,
	}
}

// RequestScreenshot saves the next completed frame.
func (c *Capturer) RequestScreenshot() {
	c.pendingScreenshot = true
}

// LastScreenshot is the path of the most recent screenshot, if any.
func (c *Capturer) LastScreenshot() string {
	return c.lastScreenshot
}

// OnFrame reads the framebuffer when it is needed and hands it to the
// recorder and any pending screenshot.
func (c *Capturer) OnFrame(width, height int) {
	if c.recorder == nil && !c.pendingScreenshot {
		return
	}
	if width <= 0 || height <= 0 {
		return
	}

	pixels := c.readPixels(width, height)

	if c.recorder != nil {
		if err := c.recorder.WriteFrame(pixels, width, height); err != nil {
			log.Printf("Dropping recorded frame: %v", err)
		}
	}

	if c.pendingScreenshot {
		c.pendingScreenshot = false
		name := fmt.Sprintf("screenshot-%s.png", c.now().Format("20060102-150405.000"))
		path := filepath.Join(c.screenshotDir, name)
		if err := SaveScreenshot(path, pixels, width, height); err != nil {
			log.Printf("Screenshot failed: %v", err)
			return
		}
		c.lastScreenshot = path
		log.Printf("Saved screenshot to %s", path)
	}
}

// Close stops the recording, if any.
func (c *Capturer) Close() error {
	if c.recorder == nil {
		return nil
	}
	return c.recorder.Close()
}
