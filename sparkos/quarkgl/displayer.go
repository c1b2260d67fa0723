package quarkgl

import (
	"image/color"

	"tinygo.org/x/drivers"

	"sparkgfx/sparkos/raster"
)

// Displayer returns a drivers.Displayer drawing into the frame's color
// surface, for tinyfont and other TinyGo drawing helpers. Display is a
// no-op; use Present to push the frame out.
func (f *Frame) Displayer() drivers.Displayer { return frameDisplayer{f} }

type frameDisplayer struct{ f *Frame }

func (d frameDisplayer) Size() (x, y int16) {
	w, h := d.f.Size()
	return int16(w), int16(h)
}

func (d frameDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.f.SetPixel(int(x), int(y), raster.NewRGB565(c.R, c.G, c.B))
}

func (d frameDisplayer) Display() error { return nil }
