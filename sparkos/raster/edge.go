package raster

import (
	"fmt"

	"github.com/chewxy/math32"
)

// SubpixelBits is the fixed-point precision Setup snaps vertices to.
const SubpixelBits = 4

// Edge values are kept below this magnitude over the whole bounding box so
// the sum of all three never overflows int32.
const maxEdgeValue = 1 << 29

// Edge is one edge function e(x, y) = DX·x + DY·y + O, with (x, y) relative
// to the triangle's bounding box origin.
type Edge struct {
	DX int32 // step per pixel
	DY int32 // step per scanline
	O  int32 // value at the bounding box origin
}

// At evaluates the edge at bounding box relative pixel (x, y).
func (e Edge) At(x, y int32) int32 { return e.O + e.DX*x + e.DY*y }

// Vertex is the attribute bundle of one triangle corner.
type Vertex struct {
	Color RGBf    // pre-lit color (Gouraud) or gradient color (2D)
	A     float32 // alpha for 2D gradients and tints
	U, V  float32 // texture coordinates, 1.0 spans the texture once
	W     float32 // inverse depth / perspective weight
}

// Triangle describes one primitive ready for the kernels.
//
// Edge k is opposite vertex k, so its value is vertex k's unnormalized
// barycentric weight. Edges[0] must have DX > 0: the walker relies on it
// staying non-negative once reached along a scanline.
type Triangle struct {
	X, Y  int32 // bounding box origin in surface pixels
	W, H  int32 // bounding box size (scanline length × scanlines)
	Edges [3]Edge
	Verts [3]Vertex
}

// Point is a screen-space position in pixels. Pixel (i, j) has its center
// at (i+0.5, j+0.5).
type Point struct {
	X, Y float32
}

// Rect is a half-open pixel rectangle.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Setup builds a triangle from screen-space corners, clipped to clip.
//
// Corners are snapped to 1/16 pixel. The winding is normalized so inside
// means non-negative, and edges that are neither top nor left are biased by
// one so pixels exactly on an edge shared by two triangles belong to just
// one of them. It reports false when nothing can be covered or the edge
// values would not fit the fixed-point range.
func Setup(p [3]Point, v [3]Vertex, clip Rect) (Triangle, bool) {
	const one = 1 << SubpixelBits
	const half = one / 2

	var sx, sy [3]int64
	for i := range p {
		x, y := p[i].X*one, p[i].Y*one
		if !(math32.Abs(x) < 1<<30 && math32.Abs(y) < 1<<30) {
			return Triangle{}, false
		}
		sx[i] = int64(math32.Floor(x + 0.5))
		sy[i] = int64(math32.Floor(y + 0.5))
	}

	cross := (sx[1]-sx[0])*(sy[2]-sy[0]) - (sy[1]-sy[0])*(sx[2]-sx[0])
	if cross == 0 {
		return Triangle{}, false
	}
	if cross < 0 {
		sx[1], sx[2] = sx[2], sx[1]
		sy[1], sy[2] = sy[2], sy[1]
		v[1], v[2] = v[2], v[1]
	}

	x0 := ceilDiv64(min(sx[0], sx[1], sx[2])-half, one)
	x1 := floorDiv64(max(sx[0], sx[1], sx[2])-half, one)
	y0 := ceilDiv64(min(sy[0], sy[1], sy[2])-half, one)
	y1 := floorDiv64(max(sy[0], sy[1], sy[2])-half, one)
	x0 = max(x0, int64(clip.X0))
	y0 = max(y0, int64(clip.Y0))
	x1 = min(x1, int64(clip.X1)-1)
	y1 = min(y1, int64(clip.Y1)-1)
	if x0 > x1 || y0 > y1 {
		return Triangle{}, false
	}
	w, h := x1-x0+1, y1-y0+1

	ox, oy := x0*one+half, y0*one+half
	var edges [3]Edge
	var pa int64
	for k := 0; k < 3; k++ {
		a, b := (k+1)%3, (k+2)%3
		ex, ey := sx[b]-sx[a], sy[b]-sy[a]
		dx, dy := -ey*one, ex*one
		o := (oy-sy[a])*ex - (ox-sx[a])*ey
		if !(ey < 0 || (ey == 0 && ex > 0)) {
			o--
		}
		if abs64(o)+abs64(dx)*(w-1)+abs64(dy)*(h-1) >= maxEdgeValue {
			return Triangle{}, false
		}
		edges[k] = Edge{DX: int32(dx), DY: int32(dy), O: int32(o)}
		pa += o
	}
	if pa < 1 {
		return Triangle{}, false
	}

	first := 0
	for first < 3 && edges[first].DX <= 0 {
		first++
	}
	if first == 3 {
		return Triangle{}, false
	}

	t := Triangle{X: int32(x0), Y: int32(y0), W: int32(w), H: int32(h)}
	for i := 0; i < 3; i++ {
		t.Edges[i] = edges[(i+first)%3]
		t.Verts[i] = v[(i+first)%3]
	}
	return t, true
}

// Validate checks the triangle against a w×h surface.
func (t *Triangle) Validate(w, h int) error {
	if t.W < 0 || t.H < 0 || t.X < 0 || t.Y < 0 ||
		int(t.X)+int(t.W) > w || int(t.Y)+int(t.H) > h {
		return fmt.Errorf("%w: box %dx%d+%d+%d, surface %dx%d", ErrBounds, t.W, t.H, t.X, t.Y, w, h)
	}
	if t.W > 0 && t.H > 0 && t.Edges[0].DX <= 0 {
		return ErrEdgeOrder
	}
	return nil
}

// Area returns the constant sum of the three edge values, plus one when
// that sum is zero so it can always be divided by.
func (t *Triangle) Area() (area, e int32) {
	pa := t.Edges[0].O + t.Edges[1].O + t.Edges[2].O
	if pa == 0 {
		return 1, 1
	}
	return pa, 0
}

// Rows restricts the triangle to surface rows [y0, y1). Interpolation is
// unchanged, so rendering every band of a split gives the same pixels as
// rendering the whole triangle.
func (t Triangle) Rows(y0, y1 int) (Triangle, bool) {
	top := max(int(t.Y), y0)
	bot := min(int(t.Y)+int(t.H), y1)
	if top >= bot {
		return Triangle{}, false
	}
	skip := int32(top) - t.Y
	for i := range t.Edges {
		t.Edges[i].O += t.Edges[i].DY * skip
	}
	t.Y = int32(top)
	t.H = int32(bot - top)
	return t, true
}

func ceilDiv64(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
