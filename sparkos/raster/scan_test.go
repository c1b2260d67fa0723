package raster

import (
	"math/rand"
	"testing"
)

var clip64 = Rect{X0: 0, Y0: 0, X1: 64, Y1: 64}

func pt(x, y float32) Point { return Point{X: x, Y: y} }

func setupT(t *testing.T, a, b, c Point) Triangle {
	t.Helper()
	tri, ok := Setup([3]Point{a, b, c}, [3]Vertex{}, clip64)
	if !ok {
		t.Fatalf("setup %v %v %v: not drawable", a, b, c)
	}
	return tri
}

func TestWalkMatchesEdgeFunctions(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tested := 0
	for i := 0; i < 400; i++ {
		var p [3]Point
		for k := range p {
			p[k] = pt(rng.Float32()*104-20, rng.Float32()*104-20)
		}
		tri, ok := Setup(p, [3]Vertex{}, clip64)
		if !ok {
			continue
		}
		tested++
		if tri.Edges[0].DX <= 0 {
			t.Fatalf("tri %d: first edge dx=%d", i, tri.Edges[0].DX)
		}

		want := map[[2]int]bool{}
		for y := int32(0); y < tri.H; y++ {
			for x := int32(0); x < tri.W; x++ {
				if tri.Edges[0].At(x, y) >= 0 && tri.Edges[1].At(x, y) >= 0 && tri.Edges[2].At(x, y) >= 0 {
					want[[2]int{int(tri.X + x), int(tri.Y + y)}] = true
				}
			}
		}

		got := map[[2]int]bool{}
		lastX, lastY := -1, -1
		Walk(&tri, func(x, y int, c [3]int32) {
			k := [2]int{x, y}
			if got[k] {
				t.Fatalf("tri %d: pixel %v visited twice", i, k)
			}
			if y < lastY || (y == lastY && x <= lastX) {
				t.Fatalf("tri %d: pixel %v out of raster order after (%d,%d)", i, k, lastX, lastY)
			}
			lastX, lastY = x, y
			rx, ry := int32(x)-tri.X, int32(y)-tri.Y
			for e := 0; e < 3; e++ {
				if c[e] != tri.Edges[e].At(rx, ry) {
					t.Fatalf("tri %d: edge %d at %v = %d, want %d", i, e, k, c[e], tri.Edges[e].At(rx, ry))
				}
			}
			got[k] = true
		})

		if len(got) != len(want) {
			t.Fatalf("tri %d: visited %d pixels, want %d", i, len(got), len(want))
		}
		for k := range want {
			if !got[k] {
				t.Fatalf("tri %d: pixel %v skipped", i, k)
			}
		}
		if n := Coverage(&tri); n != len(want) {
			t.Fatalf("tri %d: Coverage = %d, want %d", i, n, len(want))
		}
	}
	if tested < 100 {
		t.Fatalf("only %d drawable triangles generated", tested)
	}
}

// insideStrict reports whether pixel (x, y)'s center is strictly inside the
// convex polygon poly, computed exactly in subpixel units.
func insideStrict(poly []Point, x, y int) bool {
	const one = 1 << SubpixelBits
	px, py := int64(x)*one+one/2, int64(y)*one+one/2
	sign := 0
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		ax, ay := int64(a.X*one), int64(a.Y*one)
		bx, by := int64(b.X*one), int64(b.Y*one)
		cr := (bx-ax)*(py-ay) - (by-ay)*(px-ax)
		switch {
		case cr == 0:
			return false
		case sign == 0 && cr > 0:
			sign = 1
		case sign == 0:
			sign = -1
		case (cr > 0) != (sign > 0):
			return false
		}
	}
	return true
}

func coverCounts(tris []Triangle) map[[2]int]int {
	counts := map[[2]int]int{}
	for i := range tris {
		Walk(&tris[i], func(x, y int, _ [3]int32) { counts[[2]int{x, y}]++ })
	}
	return counts
}

func checkTiling(t *testing.T, poly []Point, tris []Triangle) {
	t.Helper()
	counts := coverCounts(tris)
	for k, n := range counts {
		if n > 1 {
			t.Fatalf("pixel %v shaded %d times", k, n)
		}
	}
	inside := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if !insideStrict(poly, x, y) {
				continue
			}
			inside++
			if counts[[2]int{x, y}] != 1 {
				t.Fatalf("interior pixel (%d,%d) shaded %d times", x, y, counts[[2]int{x, y}])
			}
		}
	}
	if inside == 0 {
		t.Fatalf("polygon has no interior pixels")
	}
}

func TestSharedEdgeDrawnOnce(t *testing.T) {
	// Diagonal from (8.5, 8.5) to (40.5, 40.5) runs through pixel centers.
	quad := []Point{pt(8.5, 8.5), pt(50, 10.25), pt(40.5, 40.5), pt(6.75, 44)}
	tris := []Triangle{
		setupT(t, quad[0], quad[1], quad[2]),
		setupT(t, quad[0], quad[2], quad[3]),
	}
	checkTiling(t, quad, tris)
}

func TestAxisAlignedQuadDrawnOnce(t *testing.T) {
	quad := []Point{pt(4, 4), pt(20, 4), pt(20, 20), pt(4, 20)}
	tris := []Triangle{
		setupT(t, quad[0], quad[1], quad[2]),
		setupT(t, quad[2], quad[3], quad[0]),
	}
	checkTiling(t, quad, tris)
	if n := len(coverCounts(tris)); n != 16*16 {
		t.Fatalf("quad covers %d pixels, want 256", n)
	}
}

func TestFanDrawnOnce(t *testing.T) {
	// Shared center vertex sits exactly on a pixel center.
	c := pt(32.5, 32.5)
	ring := []Point{
		pt(52.5, 32.5), pt(47, 47), pt(32.5, 54.5), pt(18, 47),
		pt(10.5, 32.5), pt(18, 18), pt(32.5, 10.5), pt(47, 18),
	}
	var tris []Triangle
	for i := range ring {
		tris = append(tris, setupT(t, c, ring[i], ring[(i+1)%len(ring)]))
	}
	checkTiling(t, ring, tris)
	if coverCounts(tris)[[2]int{32, 32}] != 1 {
		t.Fatalf("center pixel not shaded exactly once")
	}
}

func TestWindingDoesNotChangeCoverage(t *testing.T) {
	a, b, c := pt(3.3, 4.1), pt(40.7, 12.9), pt(17.2, 50.6)
	cw := setupT(t, a, b, c)
	ccw := setupT(t, a, c, b)
	if cw.X != ccw.X || cw.Y != ccw.Y || cw.W != ccw.W || cw.H != ccw.H {
		t.Fatalf("boxes differ: %+v vs %+v", cw, ccw)
	}
	g1, g2 := coverCounts([]Triangle{cw}), coverCounts([]Triangle{ccw})
	if len(g1) != len(g2) {
		t.Fatalf("coverage %d vs %d", len(g1), len(g2))
	}
	for k := range g1 {
		if g2[k] != 1 {
			t.Fatalf("pixel %v differs", k)
		}
	}
}

func TestWalkUnsatisfiableEdgeTerminates(t *testing.T) {
	tests := []struct {
		name string
		e    Edge
		want int
	}{
		{"flat negative", Edge{DX: 0, DY: 0, O: -1}, 0},
		{"decreasing", Edge{DX: -3, DY: -2, O: -5}, 0},
		{"reachable after rows", Edge{DX: 0, DY: 4, O: -10}, 7 * 10},
		{"beyond box", Edge{DX: -1, DY: 1, O: -1 << 20}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tri := Triangle{
				W: 10, H: 10,
				Edges: [3]Edge{
					{DX: 1, DY: 0, O: 0},
					tc.e,
					{DX: 0, DY: 0, O: 1 << 20},
				},
			}
			if got := Coverage(&tri); got != tc.want {
				t.Fatalf("Coverage = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRowsSplitCoversSamePixels(t *testing.T) {
	tri := setupT(t, pt(2.2, 1.7), pt(60.1, 20.3), pt(25.9, 62.4))
	whole := coverCounts([]Triangle{tri})
	var parts []Triangle
	for _, b := range Bands(64, 5) {
		if p, ok := tri.Rows(b.Y0, b.Y1); ok {
			parts = append(parts, p)
		}
	}
	split := coverCounts(parts)
	if len(split) != len(whole) {
		t.Fatalf("split covers %d pixels, whole %d", len(split), len(whole))
	}
	for k := range whole {
		if split[k] != 1 {
			t.Fatalf("pixel %v covered %d times by bands", k, split[k])
		}
	}
}

func TestBands(t *testing.T) {
	bands := Bands(10, 3)
	if len(bands) != 3 || bands[0].Y0 != 0 || bands[2].Y1 != 10 {
		t.Fatalf("Bands(10,3) = %v", bands)
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].Y0 != bands[i-1].Y1 {
			t.Fatalf("bands not contiguous: %v", bands)
		}
	}
	if got := len(Bands(2, 8)); got != 2 {
		t.Fatalf("len(Bands(2,8)) = %d, want 2", got)
	}
	if Bands(0, 4) != nil {
		t.Fatalf("Bands(0,4) not nil")
	}
}
