// Package frame implements a document.Canvas that encodes each drawn page as
// a PNG frame and hands it to a sink.
package frame

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/ziadkadry99/flipbook/internal/viewport"
)

// Frame is one rendered page ready for display.
type Frame struct {
	Target viewport.RenderTarget
	PNG    []byte
}

// Sink receives encoded frames.
type Sink func(Frame) error

// Canvas encodes drawn images as PNG. The raster size comes from the last
// Resize; the image drawn is expected to match it.
type Canvas struct {
	sink Sink
	enc  png.Encoder

	mu     sync.Mutex
	target viewport.RenderTarget
	last   *Frame
}

// NewCanvas returns a Canvas that delivers frames to sink. A nil sink only
// keeps the last frame.
func NewCanvas(sink Sink) *Canvas {
	return &Canvas{
		sink: sink,
		enc:  png.Encoder{CompressionLevel: png.BestSpeed},
	}
}

// Resize records the size of the next frame.
func (c *Canvas) Resize(t viewport.RenderTarget) error {
	if t.RenderWidth <= 0 || t.RenderHeight <= 0 {
		return fmt.Errorf("frame: invalid canvas size %dx%d", t.RenderWidth, t.RenderHeight)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = t
	return nil
}

// Draw encodes img and delivers it.
func (c *Canvas) Draw(img image.Image) error {
	var buf bytes.Buffer
	if err := c.enc.Encode(&buf, img); err != nil {
		return fmt.Errorf("frame: encoding png: %w", err)
	}

	c.mu.Lock()
	f := Frame{Target: c.target, PNG: buf.Bytes()}
	c.last = &f
	c.mu.Unlock()

	if c.sink == nil {
		return nil
	}
	return c.sink(f)
}

// Last returns the most recent frame, if any.
func (c *Canvas) Last() (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Frame{}, false
	}
	return *c.last, true
}
