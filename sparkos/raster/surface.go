package raster

import "fmt"

// Surface is a 2D view over a caller-owned buffer with a fixed row stride.
//
// Geometry is validated once by NewSurface; row accessors only slice.
type Surface[T any] struct {
	Pix    []T
	Width  int
	Height int
	Stride int // elements per row, >= Width
}

// NewSurface wraps pix as a w×h surface.
func NewSurface[T any](pix []T, w, h, stride int) (*Surface[T], error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: %dx%d: %w", w, h, ErrSize)
	}
	if stride < w {
		return nil, fmt.Errorf("raster: stride %d < width %d: %w", stride, w, ErrStride)
	}
	if need := (h-1)*stride + w; len(pix) < need {
		return nil, fmt.Errorf("raster: %d elements, need %d: %w", len(pix), need, ErrShortBuffer)
	}
	return &Surface[T]{Pix: pix, Width: w, Height: h, Stride: stride}, nil
}

// AllocSurface allocates a packed w×h surface.
func AllocSurface[T any](w, h int) (*Surface[T], error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: %dx%d: %w", w, h, ErrSize)
	}
	return &Surface[T]{Pix: make([]T, w*h), Width: w, Height: h, Stride: w}, nil
}

func (s *Surface[T]) valid() error {
	if s == nil {
		return ErrNoTarget
	}
	if s.Width <= 0 || s.Height <= 0 {
		return ErrSize
	}
	if s.Stride < s.Width {
		return ErrStride
	}
	if len(s.Pix) < (s.Height-1)*s.Stride+s.Width {
		return ErrShortBuffer
	}
	return nil
}

// Row returns row y, Width elements long.
func (s *Surface[T]) Row(y int) []T {
	off := y * s.Stride
	return s.Pix[off : off+s.Width : off+s.Width]
}

func (s *Surface[T]) At(x, y int) T { return s.Pix[y*s.Stride+x] }

func (s *Surface[T]) Set(x, y int, v T) { s.Pix[y*s.Stride+x] = v }

// Fill sets every pixel of the surface to v.
func (s *Surface[T]) Fill(v T) {
	for y := 0; y < s.Height; y++ {
		row := s.Row(y)
		for i := range row {
			row[i] = v
		}
	}
}

// Sub returns a view of the w×h rectangle at (x, y) sharing the buffer.
func (s *Surface[T]) Sub(x, y, w, h int) (*Surface[T], error) {
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > s.Width || y+h > s.Height {
		return nil, fmt.Errorf("raster: sub %dx%d+%d+%d of %dx%d: %w", w, h, x, y, s.Width, s.Height, ErrBounds)
	}
	off := y*s.Stride + x
	return &Surface[T]{Pix: s.Pix[off:], Width: w, Height: h, Stride: s.Stride}, nil
}

// IsPow2 reports whether both dimensions are powers of two.
func (s *Surface[T]) IsPow2() bool {
	return isPow2(s.Width) && isPow2(s.Height)
}

func isPow2(v int) bool { return v > 0 && v&(v-1) == 0 }
