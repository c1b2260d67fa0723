//go:build !tinygo

package hal

import (
	"errors"
	"sync"
)

var errFramebufferSize = errors.New("hal: framebuffer size must be positive")

// hostFramebuffer is double buffered: callers draw into back, Present copies
// it to front, and the window only reads front.
type hostFramebuffer struct {
	mu       sync.Mutex
	width    int
	height   int
	stride   int
	back     []byte
	front    []byte
	presents uint64
}

func newHostFramebuffer(width, height int) (*hostFramebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errFramebufferSize
	}
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		back:   make([]byte, stride*height),
		front:  make([]byte, stride*height),
	}, nil
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.back }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.back)
	f.presents++
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.back); i += 2 {
		f.back[i] = lo
		f.back[i+1] = hi
	}
}

// snapshotRGBA converts the last presented frame into dst (width*height*4
// bytes) and reports how many frames have been presented so far.
func (f *hostFramebuffer) snapshotRGBA(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	expandRGB565(dst, f.front, f.width, f.height, f.stride)
	return f.presents
}
