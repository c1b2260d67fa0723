package raster

import (
	"errors"
	"testing"
)

func TestNewSurface(t *testing.T) {
	tests := []struct {
		name            string
		n, w, h, stride int
		want            error
	}{
		{"packed", 12, 4, 3, 4, nil},
		{"padded", 18, 4, 3, 7, nil},
		{"zero width", 12, 0, 3, 4, ErrSize},
		{"negative height", 12, 4, -1, 4, ErrSize},
		{"narrow stride", 12, 4, 3, 3, ErrStride},
		{"short", 15, 4, 3, 6, ErrShortBuffer},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSurface(make([]uint16, tc.n), tc.w, tc.h, tc.stride)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("NewSurface: %v", err)
				}
				if s.Width != tc.w || s.Height != tc.h || s.Stride != tc.stride {
					t.Fatalf("surface = %dx%d/%d", s.Width, s.Height, s.Stride)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSurfaceRowsRespectStride(t *testing.T) {
	pix := make([]uint8, 3*5)
	s, err := NewSurface(pix, 3, 3, 5)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	s.Fill(1)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			want := uint8(1)
			if x >= 3 {
				want = 0
			}
			if got := pix[y*5+x]; got != want {
				t.Fatalf("pix[%d,%d] = %d, want %d", x, y, got, want)
			}
		}
	}
	if row := s.Row(1); len(row) != 3 || cap(row) != 3 {
		t.Fatalf("Row len/cap = %d/%d", len(row), cap(row))
	}
}

func TestSubSharesBuffer(t *testing.T) {
	s := surf(t, 8, 8, RGB565Black)
	sub, err := s.Sub(2, 3, 4, 2)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	sub.Fill(RGB565Red)
	sub.Set(0, 0, RGB565Blue)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := RGB565Black
			if x >= 2 && x < 6 && y >= 3 && y < 5 {
				want = RGB565Red
			}
			if x == 2 && y == 3 {
				want = RGB565Blue
			}
			if got := s.At(x, y); got != want {
				t.Fatalf("(%d,%d) = %#04x, want %#04x", x, y, got, want)
			}
		}
	}
	for _, r := range [][4]int{{-1, 0, 2, 2}, {0, 0, 0, 2}, {7, 0, 2, 2}, {0, 6, 8, 3}} {
		if _, err := s.Sub(r[0], r[1], r[2], r[3]); !errors.Is(err, ErrBounds) {
			t.Fatalf("Sub%v: err = %v", r, err)
		}
	}
}

func TestIsPow2(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{1, 1, true},
		{64, 16, true},
		{64, 24, false},
		{3, 4, false},
	}
	for _, tc := range tests {
		if got := surf(t, tc.w, tc.h, uint8(0)).IsPow2(); got != tc.want {
			t.Fatalf("%dx%d IsPow2 = %v", tc.w, tc.h, got)
		}
	}
}

func TestTriangleValidate(t *testing.T) {
	tri := triWith(t, bigTri, [3]Vertex{}, 32, 32)
	if err := tri.Validate(32, 32); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := tri.Validate(20, 32); !errors.Is(err, ErrBounds) {
		t.Fatalf("narrow surface: err = %v", err)
	}
	bad := tri
	bad.Edges[0].DX = 0
	if err := bad.Validate(32, 32); !errors.Is(err, ErrEdgeOrder) {
		t.Fatalf("edge order: err = %v", err)
	}
	empty := Triangle{Edges: [3]Edge{{DX: -1}}}
	if err := empty.Validate(1, 1); err != nil {
		t.Fatalf("empty box: %v", err)
	}
}

func TestSetupRejects(t *testing.T) {
	tests := []struct {
		name string
		p    [3]Point
		clip Rect
	}{
		{"degenerate", [3]Point{{1, 1}, {5, 5}, {9, 9}}, clip64},
		{"between centers", [3]Point{{1.1, 1.1}, {1.4, 1.1}, {1.1, 1.4}}, clip64},
		{"clipped away", [3]Point{{70, 70}, {90, 70}, {70, 90}}, clip64},
		{"too large", [3]Point{{0, 0}, {1e6, 0}, {0, 1e6}}, Rect{X1: 1 << 20, Y1: 1 << 20}},
	}
	for _, tc := range tests {
		if _, ok := Setup(tc.p, [3]Vertex{}, tc.clip); ok {
			t.Fatalf("%s: Setup accepted %v", tc.name, tc.p)
		}
	}
}

func TestSetupKeepsVertexAttributesWithCorners(t *testing.T) {
	p := [3]Point{{2, 2}, {2, 30}, {30, 2}}
	var v [3]Vertex
	for i := range v {
		v[i].U = float32(i)
	}
	tri := triWith(t, p, v, 32, 32)
	// Vertex k's weight is edge k; near a corner that weight dominates.
	corner := map[float32][2]int32{0: {2, 2}, 1: {2, 29}, 2: {29, 2}}
	for k := 0; k < 3; k++ {
		at := corner[tri.Verts[k].U]
		rx, ry := at[0]-tri.X, at[1]-tri.Y
		var best, bestK int32 = -1 << 31, -1
		for e := 0; e < 3; e++ {
			if w := tri.Edges[e].At(rx, ry); w > best {
				best, bestK = w, int32(e)
			}
		}
		if bestK != int32(k) {
			t.Fatalf("vertex %d (U=%v): dominant edge %d", k, tri.Verts[k].U, bestK)
		}
	}
}
