package raster

// RGB565 is a packed 16-bit color: rrrrrggggggbbbbb.
type RGB565 uint16

// RGB32 is an 8-bit per channel color with straight (non-premultiplied) alpha.
type RGB32 struct {
	R, G, B, A uint8
}

// RGBf is a floating point color. Channels are nominally in [0, 1].
type RGBf struct {
	R, G, B float32
}

const (
	RGB565Black   RGB565 = 0x0000
	RGB565White   RGB565 = 0xFFFF
	RGB565Red     RGB565 = 0xF800
	RGB565Green   RGB565 = 0x07E0
	RGB565Blue    RGB565 = 0x001F
	RGB565Yellow  RGB565 = 0xFFE0
	RGB565Cyan    RGB565 = 0x07FF
	RGB565Magenta RGB565 = 0xF81F
)

// Pixel is the set of color types the kernels write and sample.
//
// Every operation is a pure value method so the kernels can stay allocation
// free.
type Pixel[P any] interface {
	RGB565 | RGB32 | RGBf

	RGB32() RGB32
	RGBf() RGBf

	// Lerp3 returns the barycentric blend of the receiver (weight
	// area-w2-w3), c2 (weight w2) and c3 (weight w3). Weights are edge
	// function values, area is their sum.
	Lerp3(c2 P, w2 int32, c3 P, w3 int32, area int32) P

	// Bilinear returns the four-tap average of the receiver (top left), c10
	// (top right), c01 (bottom left) and c11 (bottom right) at fractional
	// position (ax, ay).
	Bilinear(c10, c01, c11 P, ax, ay float32) P

	// Mult256 scales each channel by a fixed-point factor where 256 is 1.0.
	// Results saturate at the channel maximum. Types without alpha ignore a.
	Mult256(r, g, b, a int32) P

	// Blend256 composites fg over the receiver with coverage a in [0, 256].
	// Types with alpha also scale a by fg's alpha.
	Blend256(fg P, a int32) P

	// Blend is Blend256 with a floating point opacity in [0, 1].
	Blend(fg P, opacity float32) P
}

// NewRGB565 packs 8-bit channels.
func NewRGB565(r, g, b uint8) RGB565 {
	return RGB565(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

func (c RGB565) channels() (r, g, b int32) {
	return int32(c>>11) & 0x1F, int32(c>>5) & 0x3F, int32(c) & 0x1F
}

func pack565(r, g, b int32) RGB565 {
	return RGB565(r<<11 | g<<5 | b)
}

func (c RGB565) RGB32() RGB32 {
	r, g, b := c.channels()
	return RGB32{R: uint8(r * 255 / 31), G: uint8(g * 255 / 63), B: uint8(b * 255 / 31), A: 0xFF}
}

func (c RGB565) RGBf() RGBf {
	r, g, b := c.channels()
	return RGBf{R: float32(r) / 31, G: float32(g) / 63, B: float32(b) / 31}
}

func (c RGB565) Lerp3(c2 RGB565, w2 int32, c3 RGB565, w3 int32, area int32) RGB565 {
	r1, g1, b1 := c.channels()
	r2, g2, b2 := c2.channels()
	r3, g3, b3 := c3.channels()
	return pack565(
		r1+(w2*(r2-r1)+w3*(r3-r1))/area,
		g1+(w2*(g2-g1)+w3*(g3-g1))/area,
		b1+(w2*(b2-b1)+w3*(b3-b1))/area,
	)
}

func (c RGB565) Bilinear(c10, c01, c11 RGB565, ax, ay float32) RGB565 {
	w00, w10, w01, w11 := bilinearWeights(ax, ay)
	r00, g00, b00 := c.channels()
	r10, g10, b10 := c10.channels()
	r01, g01, b01 := c01.channels()
	r11, g11, b11 := c11.channels()
	return pack565(
		(r00*w00+r10*w10+r01*w01+r11*w11)>>16,
		(g00*w00+g10*w10+g01*w01+g11*w11)>>16,
		(b00*w00+b10*w10+b01*w01+b11*w11)>>16,
	)
}

func (c RGB565) Mult256(r, g, b, _ int32) RGB565 {
	cr, cg, cb := c.channels()
	return pack565(mul256(cr, r, 0x1F), mul256(cg, g, 0x3F), mul256(cb, b, 0x1F))
}

func (c RGB565) Blend256(fg RGB565, a int32) RGB565 {
	a = clamp32(a, 0, 256)
	dr, dg, db := c.channels()
	fr, fg2, fb := fg.channels()
	return pack565(dr+((fr-dr)*a)>>8, dg+((fg2-dg)*a)>>8, db+((fb-db)*a)>>8)
}

func (c RGB565) Blend(fg RGB565, opacity float32) RGB565 {
	return c.Blend256(fg, opacity256(opacity))
}

// RGB565 drops the alpha channel and truncates to 5/6/5 bits.
func (c RGB32) RGB565() RGB565 { return NewRGB565(c.R, c.G, c.B) }

func (c RGB32) RGB32() RGB32 { return c }

func (c RGB32) RGBf() RGBf {
	return RGBf{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255}
}

func (c RGB32) Lerp3(c2 RGB32, w2 int32, c3 RGB32, w3 int32, area int32) RGB32 {
	lerp := func(v1, v2, v3 uint8) uint8 {
		a, b, c := int32(v1), int32(v2), int32(v3)
		return uint8(a + (w2*(b-a)+w3*(c-a))/area)
	}
	return RGB32{
		R: lerp(c.R, c2.R, c3.R),
		G: lerp(c.G, c2.G, c3.G),
		B: lerp(c.B, c2.B, c3.B),
		A: lerp(c.A, c2.A, c3.A),
	}
}

func (c RGB32) Bilinear(c10, c01, c11 RGB32, ax, ay float32) RGB32 {
	w00, w10, w01, w11 := bilinearWeights(ax, ay)
	mix := func(v00, v10, v01, v11 uint8) uint8 {
		return uint8((int32(v00)*w00 + int32(v10)*w10 + int32(v01)*w01 + int32(v11)*w11) >> 16)
	}
	return RGB32{
		R: mix(c.R, c10.R, c01.R, c11.R),
		G: mix(c.G, c10.G, c01.G, c11.G),
		B: mix(c.B, c10.B, c01.B, c11.B),
		A: mix(c.A, c10.A, c01.A, c11.A),
	}
}

func (c RGB32) Mult256(r, g, b, a int32) RGB32 {
	return RGB32{
		R: uint8(mul256(int32(c.R), r, 0xFF)),
		G: uint8(mul256(int32(c.G), g, 0xFF)),
		B: uint8(mul256(int32(c.B), b, 0xFF)),
		A: uint8(mul256(int32(c.A), a, 0xFF)),
	}
}

func (c RGB32) Blend256(fg RGB32, a int32) RGB32 {
	a = (int32(fg.A)*clamp32(a, 0, 256) + 127) / 255
	mix := func(d, f uint8) uint8 {
		return uint8(int32(d) + ((int32(f)-int32(d))*a)>>8)
	}
	return RGB32{
		R: mix(c.R, fg.R),
		G: mix(c.G, fg.G),
		B: mix(c.B, fg.B),
		A: uint8(int32(c.A) + ((0xFF-int32(c.A))*a)>>8),
	}
}

func (c RGB32) Blend(fg RGB32, opacity float32) RGB32 {
	return c.Blend256(fg, opacity256(opacity))
}

func (c RGBf) RGB32() RGB32 {
	return RGB32{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: 0xFF}
}

func (c RGBf) RGB565() RGB565 { return c.RGB32().RGB565() }

func (c RGBf) RGBf() RGBf { return c }

func (c RGBf) Lerp3(c2 RGBf, w2 int32, c3 RGBf, w3 int32, area int32) RGBf {
	f2 := float32(w2) / float32(area)
	f3 := float32(w3) / float32(area)
	return RGBf{
		R: c.R + f2*(c2.R-c.R) + f3*(c3.R-c.R),
		G: c.G + f2*(c2.G-c.G) + f3*(c3.G-c.G),
		B: c.B + f2*(c2.B-c.B) + f3*(c3.B-c.B),
	}
}

func (c RGBf) Bilinear(c10, c01, c11 RGBf, ax, ay float32) RGBf {
	bx, by := 1-ax, 1-ay
	w00, w10, w01, w11 := bx*by, ax*by, bx*ay, ax*ay
	return RGBf{
		R: c.R*w00 + c10.R*w10 + c01.R*w01 + c11.R*w11,
		G: c.G*w00 + c10.G*w10 + c01.G*w01 + c11.G*w11,
		B: c.B*w00 + c10.B*w10 + c01.B*w01 + c11.B*w11,
	}
}

func (c RGBf) Mult256(r, g, b, _ int32) RGBf {
	mul := func(v float32, f int32) float32 {
		v *= float32(f) / 256
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return RGBf{R: mul(c.R, r), G: mul(c.G, g), B: mul(c.B, b)}
}

func (c RGBf) Blend256(fg RGBf, a int32) RGBf {
	return c.Blend(fg, float32(a)/256)
}

func (c RGBf) Blend(fg RGBf, opacity float32) RGBf {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	return RGBf{
		R: c.R + (fg.R-c.R)*opacity,
		G: c.G + (fg.G-c.G)*opacity,
		B: c.B + (fg.B-c.B)*opacity,
	}
}

// FromRGB32 converts c to the pixel type P.
func FromRGB32[P Pixel[P]](c RGB32) P {
	var p P
	switch q := any(&p).(type) {
	case *RGB565:
		*q = c.RGB565()
	case *RGB32:
		*q = c
	case *RGBf:
		*q = c.RGBf()
	}
	return p
}

// FromRGBf converts c to the pixel type P.
func FromRGBf[P Pixel[P]](c RGBf) P {
	var p P
	switch q := any(&p).(type) {
	case *RGB565:
		*q = c.RGB565()
	case *RGB32:
		*q = c.RGB32()
	case *RGBf:
		*q = c
	}
	return p
}

// Convert converts between pixel types. Identical types pass through, RGBf
// destinations keep full precision.
func Convert[D Pixel[D], S Pixel[S]](s S) D {
	if d, ok := any(s).(D); ok {
		return d
	}
	var d D
	if _, ok := any(d).(RGBf); ok {
		return FromRGBf[D](s.RGBf())
	}
	return FromRGB32[D](s.RGB32())
}

// bilinearWeights returns 16.16 fixed-point tap weights summing to exactly
// 1<<16, so a uniform neighborhood filters to itself.
func bilinearWeights(ax, ay float32) (w00, w10, w01, w11 int32) {
	wx := clamp32(int32(ax*256+0.5), 0, 256)
	wy := clamp32(int32(ay*256+0.5), 0, 256)
	return (256 - wx) * (256 - wy), wx * (256 - wy), (256 - wx) * wy, wx * wy
}

func mul256(v, f, max int32) int32 {
	f = clamp32(f, 0, 1<<16)
	v = (v * f) >> 8
	if v > max {
		return max
	}
	return v
}

func opacity256(o float32) int32 {
	return clamp32(int32(o*256+0.5), 0, 256)
}

func unit8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}

func clamp32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
