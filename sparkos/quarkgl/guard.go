package quarkgl

import "sparkgfx/sparkos/raster"

// guardBand is how far outside the frame, in pixels, triangles too large
// for raster.Setup are clipped to.
const guardBand = 16

// clipVertex is a screen-space polygon corner with its attributes.
type clipVertex struct {
	p raster.Point
	v raster.Vertex
}

// guardRect is the frame grown by the guard band on every side.
type guardRect struct {
	x0, y0, x1, y1 float32
}

func newGuardRect(clip raster.Rect) guardRect {
	return guardRect{
		x0: float32(clip.X0) - guardBand,
		y0: float32(clip.Y0) - guardBand,
		x1: float32(clip.X1) + guardBand,
		y1: float32(clip.Y1) + guardBand,
	}
}

func (g guardRect) contains(p [3]raster.Point) bool {
	for _, q := range p {
		if q.X < g.x0 || q.X > g.x1 || q.Y < g.y0 || q.Y > g.y1 {
			return false
		}
	}
	return true
}

// clipGuard clips a triangle to g and fans the remaining polygon into
// triangles. Each output triangle interpolates exactly like the
// corresponding part of the input: W and colors are affine in screen
// space, UVs are too under ortho and are weighted by W otherwise.
func clipGuard(p [3]raster.Point, v [3]raster.Vertex, g guardRect, ortho bool) [][3]clipVertex {
	poly := make([]clipVertex, 0, 8)
	for k := range p {
		poly = append(poly, clipVertex{p[k], v[k]})
	}
	// Signed distances to the four sides, inside when >= 0.
	planes := [4]func(q raster.Point) float32{
		func(q raster.Point) float32 { return q.X - g.x0 },
		func(q raster.Point) float32 { return g.x1 - q.X },
		func(q raster.Point) float32 { return q.Y - g.y0 },
		func(q raster.Point) float32 { return g.y1 - q.Y },
	}
	for _, dist := range planes {
		if len(poly) < 3 {
			return nil
		}
		out := make([]clipVertex, 0, len(poly)+1)
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			da, db := dist(a.p), dist(b.p)
			if da >= 0 {
				out = append(out, a)
			}
			if (da >= 0) != (db >= 0) {
				out = append(out, lerpClip(a, b, da/(da-db), ortho))
			}
		}
		poly = out
	}
	if len(poly) < 3 {
		return nil
	}
	tris := make([][3]clipVertex, 0, len(poly)-2)
	for i := 1; i+1 < len(poly); i++ {
		tris = append(tris, [3]clipVertex{poly[0], poly[i], poly[i+1]})
	}
	return tris
}

// lerpClip returns the point at fraction s of the screen-space segment
// a→b.
func lerpClip(a, b clipVertex, s float32, ortho bool) clipVertex {
	mix := func(x, y float32) float32 { return x + (y-x)*s }
	out := clipVertex{
		p: raster.Point{X: mix(a.p.X, b.p.X), Y: mix(a.p.Y, b.p.Y)},
		v: raster.Vertex{
			Color: raster.RGBf{
				R: mix(a.v.Color.R, b.v.Color.R),
				G: mix(a.v.Color.G, b.v.Color.G),
				B: mix(a.v.Color.B, b.v.Color.B),
			},
			A: mix(a.v.A, b.v.A),
			W: mix(a.v.W, b.v.W),
		},
	}
	if ortho || out.v.W == 0 {
		out.v.U, out.v.V = mix(a.v.U, b.v.U), mix(a.v.V, b.v.V)
		return out
	}
	wa, wb := a.v.W*(1-s), b.v.W*s
	out.v.U = (a.v.U*wa + b.v.U*wb) / out.v.W
	out.v.V = (a.v.V*wa + b.v.V*wb) / out.v.W
	return out
}
