// Package texture imports images as RGB565 textures for the rasterizer.
//
// PNG, JPEG, BMP and TGA sources are accepted. Images whose sides are not
// powers of two are resampled so the wrap addressing modes can be used.
package texture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"sparkgfx/sparkos/raster"
)

// MaxSize bounds the side of a resampled texture.
const MaxSize = 1024

var (
	// ErrSize reports a requested size that is not a power of two in [1, MaxSize].
	ErrSize = errors.New("texture: size must be a power of two")
	// ErrEmpty reports a source image with no pixels.
	ErrEmpty = errors.New("texture: empty image")
)

// Options controls conversion.
type Options struct {
	// Size forces a Size×Size texture. Zero rounds each side up to the next
	// power of two, capped at MaxSize.
	Size int
	// Mask, when set, replaces pixels with alpha below 128 by MaskColor so
	// the texture can be blitted with a transparent key.
	Mask      bool
	MaskColor raster.RGB565
}

// Load reads and converts an image file.
func Load(path string, opt Options) (*raster.Surface[raster.RGB565], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	tex, err := Decode(f, opt)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return tex, nil
}

// Decode sniffs the source format and converts it.
func Decode(r io.Reader, opt Options) (*raster.Surface[raster.RGB565], error) {
	img, err := decodeImage(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img, opt)
}

func decodeImage(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(8)

	var (
		img  image.Image
		err  error
		kind string
	)
	switch {
	case bytes.HasPrefix(head, []byte("\x89PNG\r\n\x1a\n")):
		kind = "png"
		img, err = png.Decode(br)
	case bytes.HasPrefix(head, []byte{0xFF, 0xD8}):
		kind = "jpeg"
		img, err = jpeg.Decode(br)
	case bytes.HasPrefix(head, []byte("BM")):
		kind = "bmp"
		img, err = bmp.Decode(br)
	default:
		// TGA has no magic number.
		kind = "tga"
		img, err = tga.Decode(br)
	}
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", kind, err)
	}
	return img, nil
}

// FromImage converts img to a packed RGB565 surface with power-of-two sides.
func FromImage(img image.Image, opt Options) (*raster.Surface[raster.RGB565], error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmpty
	}

	w, h := nextPow2(b.Dx()), nextPow2(b.Dy())
	if opt.Size != 0 {
		if opt.Size < 0 || opt.Size > MaxSize || opt.Size&(opt.Size-1) != 0 {
			return nil, fmt.Errorf("%w: %d", ErrSize, opt.Size)
		}
		w, h = opt.Size, opt.Size
	}

	src := toNRGBA(img)
	if w != b.Dx() || h != b.Dy() {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		src = dst
	}

	tex, err := raster.AllocSurface[raster.RGB565](w, h)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	for y := 0; y < h; y++ {
		row := tex.Row(y)
		pix := src.Pix[y*src.Stride:]
		for x := range row {
			p := pix[4*x : 4*x+4]
			if opt.Mask && p[3] < 128 {
				row[x] = opt.MaskColor
				continue
			}
			row[x] = raster.NewRGB565(p[0], p[1], p[2])
		}
	}
	return tex, nil
}

// toNRGBA returns img as a zero-origin NRGBA image.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func nextPow2(v int) int {
	n := 1
	for n < v && n < MaxSize {
		n <<= 1
	}
	return n
}

// Checker returns a size×size checkerboard with cells×cells squares.
func Checker(size, cells int, a, b raster.RGB565) (*raster.Surface[raster.RGB565], error) {
	if size <= 0 || size > MaxSize || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}
	if cells < 1 {
		cells = 1
	}
	tex, err := raster.AllocSurface[raster.RGB565](size, size)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	for y := 0; y < size; y++ {
		row := tex.Row(y)
		cy := y * cells / size
		for x := range row {
			if (x*cells/size+cy)&1 == 0 {
				row[x] = a
			} else {
				row[x] = b
			}
		}
	}
	return tex, nil
}

// ToImage converts an RGB565 surface back to an opaque NRGBA image.
func ToImage(s *raster.Surface[raster.RGB565]) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		for x, p := range s.Row(y) {
			c := p.RGB32()
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
		}
	}
	return img
}
