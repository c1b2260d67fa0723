package hal

func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

func rgb888From565(p uint16) (r, g, b uint8) {
	r = uint8(uint32(p>>11&0x1F) * 255 / 31)
	g = uint8(uint32(p>>5&0x3F) * 255 / 63)
	b = uint8(uint32(p&0x1F) * 255 / 31)
	return r, g, b
}

// expandRGB565 converts little-endian RGB565 rows into opaque RGBA8888.
// Padding bytes past width*2 in each source row are skipped.
func expandRGB565(dst, src []byte, width, height, stride int) {
	for y := 0; y < height; y++ {
		row := src[y*stride:]
		out := dst[y*width*4:]
		for x := 0; x < width; x++ {
			r, g, b := rgb888From565(uint16(row[2*x]) | uint16(row[2*x+1])<<8)
			out[4*x+0] = r
			out[4*x+1] = g
			out[4*x+2] = b
			out[4*x+3] = 0xFF
		}
	}
}
