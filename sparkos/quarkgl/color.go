package quarkgl

import "sparkgfx/sparkos/raster"

// Color is a linear RGB color with channels in [0, 1].
type Color = raster.RGBf

// RGB builds a Color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255}
}

// Hex builds a Color from 0xRRGGBB.
func Hex(v uint32) Color { return RGB(uint8(v>>16), uint8(v>>8), uint8(v)) }

func scaleColor(c Color, s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

func mulColor(a, b Color) Color {
	return Color{R: a.R * b.R, G: a.G * b.G, B: a.B * b.B}
}
