package capture

import (
	"errors"
	"fmt"
	"io"
	"log"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// RecorderOptions configure a video recording of the window.
type RecorderOptions struct {
	Output     string
	FFmpegPath string
	Width      int
	Height     int
	FPS        int
}

func (o RecorderOptions) validate() error {
	if o.Output == "" {
		return errors.New("recording output file is empty")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid recording size %dx%d", o.Width, o.Height)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("invalid recording frame rate %d", o.FPS)
	}
	return nil
}

// command builds the ffmpeg invocation. Frames arrive bottom row first, as
// glReadPixels returns them, so the encoder flips them.
func (o RecorderOptions) command() *ffmpeg.Stream {
	inputArgs := ffmpeg.KwArgs{
		"format":  "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", o.Width, o.Height),
		"r":       o.FPS,
	}
	outputArgs := ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
		"c:v":     "libx264",
	}
	stream := ffmpeg.Input("pipe:", inputArgs).
		Output(o.Output, outputArgs).
		OverWriteOutput()
	if o.FFmpegPath != "" {
		stream = stream.SetFfmpegPath(o.FFmpegPath)
	}
	return stream
}

// Recorder pipes raw RGBA frames into an ffmpeg process. WriteFrame is the
// producer; a goroutine feeds ffmpeg's stdin.
type Recorder struct {
	opts      RecorderOptions
	frameSize int
	frames    chan []byte
	done      chan error
	closed    bool
}

const frameQueueLength = 3

// NewRecorder starts ffmpeg and returns once the frame queue is ready.
func NewRecorder(opts RecorderOptions) (*Recorder, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	r := &Recorder{
		opts:      opts,
		frameSize: opts.Width * opts.Height * 4,
		frames:    make(chan []byte, frameQueueLength),
		done:      make(chan error, 1),
	}

	pipeReader, pipeWriter := io.Pipe()
	ffmpegCmd := opts.command().WithInput(pipeReader).ErrorToStdOut()

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg exits early.
		pipeReader.Close()
		errc <- err
	}()
	go r.runEncoder(pipeWriter, errc)

	log.Printf("Recording %dx%d at %d fps to %s", opts.Width, opts.Height, opts.FPS, opts.Output)
	return r, nil
}

func (r *Recorder) runEncoder(pipeWriter *io.PipeWriter, errc <-chan error) {
	var writeErr error
	frameCount := 0
	for frame := range r.frames {
		if writeErr != nil {
			continue
		}
		if _, err := pipeWriter.Write(frame); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frameCount, err)
			log.Printf("%v", writeErr)
			continue
		}
		frameCount++
	}
	pipeWriter.Close()

	runErr := <-errc
	if writeErr != nil {
		r.done <- writeErr
		return
	}
	if runErr != nil {
		r.done <- fmt.Errorf("ffmpeg failed: %w", runErr)
		return
	}
	log.Printf("Recorded %d frames to %s", frameCount, r.opts.Output)
	r.done <- nil
}

// WriteFrame queues one frame. It blocks while the queue is full.
func (r *Recorder) WriteFrame(pixels []byte, width, height int) error {
	if r.closed {
		return errors.New("recorder is closed")
	}
	if width != r.opts.Width || height != r.opts.Height || len(pixels) != r.frameSize {
		return fmt.Errorf("frame is %dx%d (%d bytes), recording is %dx%d",
			width, height, len(pixels), r.opts.Width, r.opts.Height)
	}
	r.frames <- pixels
	return nil
}

// Close flushes the queued frames and waits for ffmpeg to finish.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	close(r.frames)
	return <-r.done
}
