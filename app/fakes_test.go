package app

import (
	"errors"
	"fmt"
	"io"

	gldebug "github.com/richinsley/goglapp/gldebug"
	graphics "github.com/richinsley/goglapp/graphics"
	input "github.com/richinsley/goglapp/input"
)

// journal records calls across every fake in the order they happen.
type journal struct {
	entries []string
}

func (j *journal) add(format string, args ...any) {
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

func (j *journal) count(entry string) int {
	n := 0
	for _, e := range j.entries {
		if e == entry {
			n++
		}
	}
	return n
}

func (j *journal) index(entry string) int {
	for i, e := range j.entries {
		if e == entry {
			return i
		}
	}
	return -1
}

type fakePlatform struct {
	log       *journal
	initErr   error
	createErr error
	window    *fakeWindow
	// polls[i] runs during the i-th PollEvents call.
	polls []func(w *fakeWindow)
	// closeAfter sets the close flag once this many polls happened.
	closeAfter int
	pollCount  int
	times      []float64
	timeIndex  int
}

func newFakePlatform(log *journal) *fakePlatform {
	return &fakePlatform{
		log:        log,
		window:     &fakeWindow{log: log},
		closeAfter: 1,
	}
}

func (p *fakePlatform) Init() error {
	p.log.add("platform.init")
	return p.initErr
}

func (p *fakePlatform) Terminate() {
	p.log.add("platform.terminate")
}

func (p *fakePlatform) CreateWindow(cfg graphics.WindowConfiguration) (graphics.Window, error) {
	p.log.add("platform.createWindow %s", cfg.Title)
	if p.createErr != nil {
		return nil, p.createErr
	}
	return p.window, nil
}

func (p *fakePlatform) PollEvents() {
	p.log.add("poll")
	if p.pollCount < len(p.polls) && p.polls[p.pollCount] != nil {
		p.polls[p.pollCount](p.window)
	}
	p.pollCount++
	if p.pollCount >= p.closeAfter {
		p.window.shouldClose = true
	}
}

// Time returns the scripted timestamps in order, then keeps the last one.
func (p *fakePlatform) Time() float64 {
	if len(p.times) == 0 {
		return 0
	}
	if p.timeIndex >= len(p.times) {
		return p.times[len(p.times)-1]
	}
	t := p.times[p.timeIndex]
	p.timeIndex++
	return t
}

type fakeWindow struct {
	log         *journal
	handlers    graphics.EventHandlers
	shouldClose bool
	keys        map[input.Key]input.Action
}

func (w *fakeWindow) Key(key input.Key) input.Action {
	return w.keys[key]
}

func (w *fakeWindow) MouseButton(input.MouseButton) input.Action { return input.Release }
func (w *fakeWindow) CursorPos() (float64, float64) { return 0, 0 }
func (w *fakeWindow) SetCursorLocked(bool) {}
func (w *fakeWindow) MakeCurrent() { w.log.add("window.makeCurrent") }
func (w *fakeWindow) ShouldClose() bool { return w.shouldClose }
func (w *fakeWindow) SetShouldClose(value bool) { w.shouldClose = value }
func (w *fakeWindow) SwapBuffers() { w.log.add("window.swap") }
func (w *fakeWindow) GetFramebufferSize() (int, int) { return 640, 480 }
func (w *fakeWindow) GetSize() (int, int) { return 640, 480 }
func (w *fakeWindow) Focused() bool { return true }
func (w *fakeWindow) ClipboardString() string { return "" }
func (w *fakeWindow) SetClipboardString(string) {}
func (w *fakeWindow) SetCursorShape(graphics.CursorShape) {}
func (w *fakeWindow) Destroy() { w.log.add("window.destroy") }

func (w *fakeWindow) AddEventHandler(h graphics.EventHandler) {
	w.handlers = append(w.handlers, h)
}

type fakeGPU struct {
	log     *journal
	initErr error
}

func (g *fakeGPU) Init() error {
	g.log.add("gpu.init")
	return g.initErr
}

func (g *fakeGPU) EnableDebugOutput(func(gldebug.Message)) {
	g.log.add("gpu.debug")
}

func (g *fakeGPU) Viewport(x, y, width, height int) {
	g.log.add("gpu.viewport %d %d %d %d", x, y, width, height)
}

type fakeIO struct {
	keyboard bool
	mouse    bool
}

func (s fakeIO) WantCaptureKeyboard() bool { return s.keyboard }
func (s fakeIO) WantCaptureMouse() bool { return s.mouse }

type fakeOverlay struct {
	log   *journal
	frame int
	// capture[i] is reported during the i-th frame.
	capture []fakeIO
}

func (o *fakeOverlay) NewFrame() {
	o.log.add("gui.newFrame")
	o.frame++
}

func (o *fakeOverlay) IO() GuiState {
	if o.frame-1 < len(o.capture) {
		return o.capture[o.frame-1]
	}
	return fakeIO{}
}

func (o *fakeOverlay) Render() { o.log.add("gui.render") }
func (o *fakeOverlay) Draw() { o.log.add("gui.draw") }
func (o *fakeOverlay) Shutdown() { o.log.add("gui.shutdown") }

// recordingClient logs every hook and lets tests inspect the application
// from inside them.
type recordingClient struct {
	BaseClient
	log    *journal
	app    *Application
	deltas []float64

	onDraw  func(a *Application)
	onKey   func(a *Application)
	onMove  func(a *Application)
	onClick func(a *Application)
	onWheel func(a *Application)
}

func (c *recordingClient) OnInitialize() { c.log.add("client.initialize") }
func (c *recordingClient) OnDestroy() { c.log.add("client.destroy") }

func (c *recordingClient) OnImmediateGui(GuiState) { c.log.add("client.gui") }

func (c *recordingClient) OnDraw(deltaTime float64) {
	c.log.add("client.draw")
	c.deltas = append(c.deltas, deltaTime)
	if c.onDraw != nil {
		c.onDraw(c.app)
	}
}

func (c *recordingClient) OnKeyEvent(key input.Key, scancode int, action input.Action, mods input.ModifierKey) {
	c.log.add("client.key %d %d", key, action)
	if c.onKey != nil {
		c.onKey(c.app)
	}
}

func (c *recordingClient) OnCursorMoveEvent(x, y float64) {
	c.log.add("client.move")
	if c.onMove != nil {
		c.onMove(c.app)
	}
}

func (c *recordingClient) OnCursorEnterEvent(entered bool) {
	c.log.add("client.enter %t", entered)
}

func (c *recordingClient) OnMouseButtonEvent(button input.MouseButton, action input.Action, mods input.ModifierKey) {
	c.log.add("client.button %d %d", button, action)
	if c.onClick != nil {
		c.onClick(c.app)
	}
}

func (c *recordingClient) OnScrollEvent(xOffset, yOffset float64) {
	c.log.add("client.scroll")
	if c.onWheel != nil {
		c.onWheel(c.app)
	}
}

type harness struct {
	log      *journal
	platform *fakePlatform
	gpu      *fakeGPU
	overlay  *fakeOverlay
	client   *recordingClient
	app      *Application
	// overlayErr makes the overlay factory fail.
	overlayErr error
}

func newHarness() *harness {
	log := &journal{}
	h := &harness{
		log:      log,
		platform: newFakePlatform(log),
		gpu:      &fakeGPU{log: log},
		overlay:  &fakeOverlay{log: log},
		client:   &recordingClient{log: log},
	}
	h.app = New(h.client, Backends{
		Platform: h.platform,
		GPU:      h.gpu,
		NewOverlay: func(win graphics.Window, clock func() float64) (Overlay, error) {
			log.add("gui.init")
			if h.overlayErr != nil {
				return nil, h.overlayErr
			}
			return h.overlay, nil
		},
		DebugSink: gldebug.NewSink(io.Discard),
	})
	h.client.app = h.app
	return h
}

var errBoom = errors.New("boom")
