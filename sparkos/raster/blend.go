package raster

// Stock operators for TextureBlendOp2D.

// BlendOver composites src over dst using src's alpha.
func BlendOver[P Pixel[P], T Pixel[T]](src T, dst P) P {
	return FromRGB32[P](dst.RGB32().Blend256(src.RGB32(), 256))
}

// BlendAdd adds src to dst, saturating each channel.
func BlendAdd[P Pixel[P], T Pixel[T]](src T, dst P) P {
	s, d := src.RGB32(), dst.RGB32()
	add := func(a, b uint8) uint8 {
		if v := int(a) + int(b); v < 0xFF {
			return uint8(v)
		}
		return 0xFF
	}
	return FromRGB32[P](RGB32{R: add(s.R, d.R), G: add(s.G, d.G), B: add(s.B, d.B), A: add(s.A, d.A)})
}

// BlendMultiply multiplies src and dst channel by channel.
func BlendMultiply[P Pixel[P], T Pixel[T]](src T, dst P) P {
	s, d := src.RGB32(), dst.RGB32()
	mul := func(a, b uint8) uint8 { return uint8((int(a)*int(b) + 127) / 255) }
	return FromRGB32[P](RGB32{R: mul(s.R, d.R), G: mul(s.G, d.G), B: mul(s.B, d.B), A: mul(s.A, d.A)})
}
