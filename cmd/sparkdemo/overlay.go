package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"sparkgfx/internal/texture"
	"sparkgfx/sparkos/raster"
)

const (
	hudHeight  = 40
	spriteSize = 16
	glowSize   = 32
	spriteMask = raster.RGB565Magenta
)

// overlays is the 2D layer drawn over each 3D frame: a translucent
// gradient bar behind the HUD, a spinning color-keyed sprite and an
// additive glow.
type overlays struct {
	w, h   int
	clip   raster.Rect
	sprite *raster.Surface[raster.RGB565]
	glow   *raster.Surface[raster.RGB565]
	add    raster.BlendFunc[raster.RGB565, raster.RGB565]
}

func newOverlays(w, h int) (*overlays, error) {
	sprite, err := texture.FromImage(diamond(spriteSize), texture.Options{Mask: true, MaskColor: spriteMask})
	if err != nil {
		return nil, fmt.Errorf("sparkdemo: sprite: %w", err)
	}
	glow, err := radialGlow(glowSize)
	if err != nil {
		return nil, fmt.Errorf("sparkdemo: glow: %w", err)
	}
	return &overlays{
		w:      w,
		h:      h,
		clip:   raster.Rect{X1: w, Y1: h},
		sprite: sprite,
		glow:   glow,
		add:    raster.BlendAdd[raster.RGB565, raster.RGB565],
	}, nil
}

// quad splits the corners p (clockwise from top-left, UV (0,0)..(1,1))
// into two triangles. Triangles that cover nothing are dropped.
func (o *overlays) quad(p [4]raster.Point, v [4]raster.Vertex) []raster.Triangle {
	var out []raster.Triangle
	if t, ok := raster.Setup([3]raster.Point{p[0], p[1], p[2]}, [3]raster.Vertex{v[0], v[1], v[2]}, o.clip); ok {
		out = append(out, t)
	}
	if t, ok := raster.Setup([3]raster.Point{p[2], p[3], p[0]}, [3]raster.Vertex{v[2], v[3], v[0]}, o.clip); ok {
		out = append(out, t)
	}
	return out
}

func uvCorners() [4]raster.Vertex {
	return [4]raster.Vertex{
		{A: 1, U: 0, V: 0},
		{A: 1, U: 1, V: 0},
		{A: 1, U: 1, V: 1},
		{A: 1, U: 0, V: 1},
	}
}

func (o *overlays) draw(dst *raster.Surface[raster.RGB565], angle float32) error {
	// HUD bar: opaque navy on the left fading to transparent violet.
	w, hh := float32(o.w), float32(min(hudHeight, o.h))
	bar := [4]raster.Vertex{
		{Color: raster.RGBf{R: 0.05, G: 0.1, B: 0.3}, A: 0.85},
		{Color: raster.RGBf{R: 0.4, G: 0.1, B: 0.5}, A: 0.1},
		{Color: raster.RGBf{R: 0.4, G: 0.1, B: 0.5}, A: 0.1},
		{Color: raster.RGBf{R: 0.05, G: 0.1, B: 0.3}, A: 0.85},
	}
	for _, t := range o.quad([4]raster.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: hh}, {X: 0, Y: hh}}, bar) {
		if err := raster.Gradient2D(&t, dst, true, 1); err != nil {
			return err
		}
	}

	// Sprite spinning in the bottom-left corner, twice its texel size.
	cx, cy := float32(8+spriteSize), float32(o.h-8-spriteSize)
	var sp [4]raster.Point
	for i, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		s, cs := math32.Sincos(angle)
		x, y := c[0]*spriteSize, c[1]*spriteSize
		sp[i] = raster.Point{X: cx + x*cs - y*s, Y: cy + x*s + y*cs}
	}
	opts := raster.Blit2D[raster.RGB565]{Blend: true, Opacity: 1, Mask: true, MaskColor: spriteMask}
	for _, t := range o.quad(sp, uvCorners()) {
		if err := raster.Texture2D(&t, dst, o.sprite, opts); err != nil {
			return err
		}
	}

	// Pulsing glow added in the bottom-right corner.
	r := glowSize * (0.75 + 0.25*math32.Sin(angle*3))
	gx, gy := float32(o.w-8-glowSize), float32(o.h-8-glowSize)
	gp := [4]raster.Point{{X: gx - r, Y: gy - r}, {X: gx + r, Y: gy - r}, {X: gx + r, Y: gy + r}, {X: gx - r, Y: gy + r}}
	for _, t := range o.quad(gp, uvCorners()) {
		if err := raster.TextureBlendOp2D(&t, dst, o.glow, o.add); err != nil {
			return err
		}
	}
	return nil
}

// diamond draws an opaque yellow diamond with a red outline on a
// transparent background.
func diamond(n int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	half := n / 2
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			d := absInt(2*x+1-n)/2 + absInt(2*y+1-n)/2
			switch {
			case d < half-2:
				img.SetNRGBA(x, y, color.NRGBA{R: 0xFF, G: 0xE0, B: 0x40, A: 0xFF})
			case d < half:
				img.SetNRGBA(x, y, color.NRGBA{R: 0xD0, G: 0x20, B: 0x20, A: 0xFF})
			}
		}
	}
	return img
}

// radialGlow is an orange falloff reaching black at the edge, so adding it
// leaves the destination untouched outside the disc.
func radialGlow(n int) (*raster.Surface[raster.RGB565], error) {
	s, err := raster.AllocSurface[raster.RGB565](n, n)
	if err != nil {
		return nil, err
	}
	c := float32(n) / 2
	for y := 0; y < n; y++ {
		row := s.Row(y)
		for x := range row {
			dx, dy := float32(x)+0.5-c, float32(y)+0.5-c
			k := 1 - math32.Sqrt(dx*dx+dy*dy)/c
			if k <= 0 {
				continue
			}
			k *= k
			row[x] = raster.RGBf{R: k, G: 0.55 * k, B: 0.15 * k}.RGB565()
		}
	}
	return s, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
