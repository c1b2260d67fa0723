package quarkgl

import "github.com/chewxy/math32"

// Torus returns a torus around the Y axis with the given ring and tube
// radii. UVs wrap once around each circle, so the seams carry duplicate
// vertices. Triangles are counter-clockwise seen from outside.
func Torus(major, minor float32, segU, segV int) Mesh {
	segU, segV = max(segU, 3), max(segV, 3)

	verts := make([]Vertex, 0, (segU+1)*(segV+1))
	indices := make([]uint16, 0, segU*segV*6)

	for u := 0; u <= segU; u++ {
		st, ct := math32.Sincos(2 * math32.Pi * float32(u) / float32(segU))
		for v := 0; v <= segV; v++ {
			sp, cp := math32.Sincos(2 * math32.Pi * float32(v) / float32(segV))
			r := major + minor*cp
			verts = append(verts, Vertex{
				Pos:    V3(r*ct, minor*sp, r*st),
				Normal: V3(cp*ct, sp, cp*st),
				UV:     V2(float32(u)/float32(segU), float32(v)/float32(segV)),
				Color:  Color{R: 1, G: 1, B: 1},
			})
		}
	}

	idx := func(u, v int) uint16 { return uint16(u*(segV+1) + v) }
	for u := 0; u < segU; u++ {
		for v := 0; v < segV; v++ {
			i0, i1, i2, i3 := idx(u, v), idx(u+1, v), idx(u+1, v+1), idx(u, v+1)
			indices = append(indices, i0, i2, i1, i0, i3, i2)
		}
	}
	return Mesh{Vertices: verts, Indices: indices}
}

// Cube returns an axis-aligned cube of the given half size. Each face has
// its own four vertices with a face normal, the full [0, 1] UV square and
// a distinct vertex color.
func Cube(half float32) Mesh {
	faces := [6]struct {
		n, u, v Vec3
		c       Color
	}{
		{V3(1, 0, 0), V3(0, 0, -1), V3(0, 1, 0), Hex(0xFF4040)},
		{V3(-1, 0, 0), V3(0, 0, 1), V3(0, 1, 0), Hex(0x40FFFF)},
		{V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, -1), Hex(0x40FF40)},
		{V3(0, -1, 0), V3(1, 0, 0), V3(0, 0, 1), Hex(0xFF40FF)},
		{V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0), Hex(0x4040FF)},
		{V3(0, 0, -1), V3(-1, 0, 0), V3(0, 1, 0), Hex(0xFFFF40)},
	}
	m := Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint16, 0, 36),
	}
	for _, f := range faces {
		base := uint16(len(m.Vertices))
		for _, c := range [4]Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}} {
			// u grows along f.u, v grows against f.v (image rows go down).
			p := f.n.Add(f.u.Mul(2*c.X - 1)).Add(f.v.Mul(1 - 2*c.Y))
			m.Vertices = append(m.Vertices, Vertex{Pos: p.Mul(half), Normal: f.n, UV: c, Color: f.c})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
