package raster

// span is one run of covered pixels on a scanline. Coordinates are relative
// to the triangle's bounding box.
type span struct {
	y, x, n    int
	c1, c2, c3 int32 // edge values at x, c1 includes the area bias
}

// scanner walks the covered spans of a triangle top to bottom.
//
// Rows whose start lies outside an edge that does not increase along x are
// skipped in closed form. An edge that is negative and never increases in
// either direction ends the walk.
type scanner struct {
	e          [3]Edge
	o1, o2, o3 int32
	bias       int32
	lx, ly     int32
	y          int32
}

func newScanner(t *Triangle) scanner {
	_, bias := t.Area()
	return scanner{
		e:    t.Edges,
		o1:   t.Edges[0].O,
		o2:   t.Edges[1].O,
		o3:   t.Edges[2].O,
		bias: bias,
		lx:   t.W,
		ly:   t.H,
	}
}

func (s *scanner) next(sp *span) bool {
	e1, e2, e3 := s.e[0], s.e[1], s.e[2]
	for s.y < s.ly {
		var bx int32
		if s.o1 < 0 {
			if e1.DX <= 0 {
				if !s.skipTo(s.o1, e1.DY) {
					return false
				}
				continue
			}
			bx = ceilDiv(-s.o1, e1.DX)
		}
		if s.o2 < 0 {
			if e2.DX <= 0 {
				if !s.skipTo(s.o2, e2.DY) {
					return false
				}
				continue
			}
			bx = max(bx, ceilDiv(-s.o2, e2.DX))
		}
		if s.o3 < 0 {
			if e3.DX <= 0 {
				if !s.skipTo(s.o3, e3.DY) {
					return false
				}
				continue
			}
			bx = max(bx, ceilDiv(-s.o3, e3.DX))
		}

		y := s.y
		o1, o2, o3 := s.o1, s.o2, s.o3
		s.o1 += e1.DY
		s.o2 += e2.DY
		s.o3 += e3.DY
		s.y++

		if bx >= s.lx {
			continue
		}
		c1 := o1 + e1.DX*bx
		c2 := o2 + e2.DX*bx
		c3 := o3 + e3.DX*bx
		n := runLength(c2, e2.DX, s.lx-bx)
		n = min(n, runLength(c3, e3.DX, s.lx-bx))
		if e1.DX < 0 {
			n = min(n, runLength(c1, e1.DX, s.lx-bx))
		}
		if n <= 0 {
			continue
		}
		*sp = span{
			y:  int(y),
			x:  int(bx),
			n:  int(n),
			c1: c1 + s.bias,
			c2: c2,
			c3: c3,
		}
		return true
	}
	return false
}

// skipTo advances to the first row where an edge with value o and
// per-row step dy can be non-negative. It reports false when no such row
// exists inside the bounding box.
func (s *scanner) skipTo(o, dy int32) bool {
	if dy <= 0 {
		s.y = s.ly
		return false
	}
	by := ceilDiv(-o, dy)
	if by >= s.ly-s.y {
		s.y = s.ly
		return false
	}
	s.o1 += by * s.e[0].DY
	s.o2 += by * s.e[1].DY
	s.o3 += by * s.e[2].DY
	s.y += by
	return true
}

// runLength returns how many consecutive pixels, at most limit, keep an edge
// starting at c with step dx non-negative.
func runLength(c, dx, limit int32) int32 {
	if c < 0 {
		return 0
	}
	if dx >= 0 {
		return limit
	}
	return min(limit, c/(-dx)+1)
}

// ceilDiv is ⌈a/b⌉ for a, b > 0.
func ceilDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// Walk calls fn for every covered pixel of t in raster order, with surface
// coordinates and the three edge values at that pixel.
func Walk(t *Triangle, fn func(x, y int, c [3]int32)) {
	sc := newScanner(t)
	var sp span
	for sc.next(&sp) {
		c := [3]int32{sp.c1, sp.c2, sp.c3}
		y := int(t.Y) + sp.y
		for i := 0; i < sp.n; i++ {
			fn(int(t.X)+sp.x+i, y, c)
			c[0] += t.Edges[0].DX
			c[1] += t.Edges[1].DX
			c[2] += t.Edges[2].DX
		}
	}
}

// Coverage returns the number of pixels t covers.
func Coverage(t *Triangle) int {
	sc := newScanner(t)
	var sp span
	n := 0
	for sc.next(&sp) {
		n += sp.n
	}
	return n
}
