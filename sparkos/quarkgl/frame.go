package quarkgl

import (
	"errors"
	"fmt"

	"sparkgfx/sparkos/raster"
)

// ErrFramebuffer reports a framebuffer that cannot hold the frame.
var ErrFramebuffer = errors.New("quarkgl: framebuffer too small")

// Framebuffer is the display side of a frame: little-endian RGB565 bytes
// plus a present step. hal.Framebuffer satisfies it.
type Framebuffer interface {
	Width() int
	Height() int
	StrideBytes() int
	Buffer() []byte
	Present() error
}

// Frame is the render target: an RGB565 color surface and a float depth
// surface of the same size. Depth follows the rasterizer's convention where
// larger values are nearer; ClearDepth resets it to 0.
//
// The frame is the back buffer. Present copies it into a Framebuffer, so
// the next frame can be drawn while the previous one is on screen.
type Frame struct {
	Color *raster.Surface[raster.RGB565]
	Depth *raster.Surface[float32]
}

// NewFrame allocates a w×h frame.
func NewFrame(w, h int) (*Frame, error) {
	c, err := raster.AllocSurface[raster.RGB565](w, h)
	if err != nil {
		return nil, fmt.Errorf("quarkgl: frame: %w", err)
	}
	d, err := raster.AllocSurface[float32](w, h)
	if err != nil {
		return nil, fmt.Errorf("quarkgl: frame depth: %w", err)
	}
	return &Frame{Color: c, Depth: d}, nil
}

func (f *Frame) Size() (w, h int) { return f.Color.Width, f.Color.Height }

// Clear fills the color surface.
func (f *Frame) Clear(c Color) { f.Color.Fill(c.RGB565()) }

// ClearDepth resets every depth sample to the far value.
func (f *Frame) ClearDepth() { f.Depth.Fill(0) }

// SetPixel writes one pixel, ignoring coordinates outside the frame.
func (f *Frame) SetPixel(x, y int, c raster.RGB565) {
	if x < 0 || y < 0 || x >= f.Color.Width || y >= f.Color.Height {
		return
	}
	f.Color.Set(x, y, c)
}

// Present packs the color surface into fb and presents it. fb must be at
// least as large as the frame.
func (f *Frame) Present(fb Framebuffer) error {
	w, h := f.Size()
	stride := fb.StrideBytes()
	buf := fb.Buffer()
	if fb.Width() < w || fb.Height() < h || stride < 2*w || len(buf) < (h-1)*stride+2*w {
		return fmt.Errorf("%w: %dx%d for a %dx%d frame", ErrFramebuffer, fb.Width(), fb.Height(), w, h)
	}
	for y := 0; y < h; y++ {
		dst := buf[y*stride : y*stride+2*w]
		for x, p := range f.Color.Row(y) {
			dst[2*x] = byte(p)
			dst[2*x+1] = byte(p >> 8)
		}
	}
	return fb.Present()
}
