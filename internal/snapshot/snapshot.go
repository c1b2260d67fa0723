// Package snapshot writes rendered frames as lossless WebP images.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"sparkgfx/internal/texture"
	"sparkgfx/sparkos/raster"
)

// MaxScale bounds the integer upscale factor.
const MaxScale = 8

var ErrScale = errors.New("snapshot: scale out of range")

// Image converts s to NRGBA, upscaled by an integer factor with
// nearest-neighbour sampling so RGB565 pixels stay crisp.
func Image(s *raster.Surface[raster.RGB565], scale int) (*image.NRGBA, error) {
	if s == nil {
		return nil, raster.ErrNoTarget
	}
	if scale < 1 || scale > MaxScale {
		return nil, fmt.Errorf("%w: %d", ErrScale, scale)
	}
	img := texture.ToImage(s)
	if scale == 1 {
		return img, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, s.Width*scale, s.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// Encode writes s to w as WebP.
func Encode(w io.Writer, s *raster.Surface[raster.RGB565], scale int) error {
	img, err := Image(s, scale)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("snapshot: webp encode: %w", err)
	}
	return nil
}

// Save writes s to path, creating parent directories.
func Save(path string, s *raster.Surface[raster.RGB565], scale int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := Encode(f, s, scale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: close %s: %w", path, err)
	}
	return nil
}
