package quarkgl

import "testing"

func checkOutward(t *testing.T, name string, m Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Fatalf("%s: %d indices", name, len(m.Indices))
	}
	for i := 0; i < len(m.Indices); i += 3 {
		var v [3]Vertex
		for k := range v {
			j := int(m.Indices[i+k])
			if j >= len(m.Vertices) {
				t.Fatalf("%s: index %d out of range", name, j)
			}
			v[k] = m.Vertices[j]
		}
		n := Cross(v[1].Pos.Sub(v[0].Pos), v[2].Pos.Sub(v[0].Pos))
		for k := range v {
			if Dot(n, v[k].Normal) <= 0 {
				t.Fatalf("%s: triangle %d winds against vertex normal %+v", name, i/3, v[k].Normal)
			}
		}
	}
}

func TestTorus(t *testing.T) {
	m := Torus(1, 0.25, 16, 8)
	if got, want := len(m.Vertices), 17*9; got != want {
		t.Fatalf("vertices = %d, want %d", got, want)
	}
	if got, want := len(m.Indices), 16*8*6; got != want {
		t.Fatalf("indices = %d, want %d", got, want)
	}
	checkOutward(t, "torus", m)
	for _, v := range m.Vertices {
		if !near(Len(v.Normal), 1) {
			t.Fatalf("normal %+v not unit", v.Normal)
		}
		if v.UV.X < 0 || v.UV.X > 1 || v.UV.Y < 0 || v.UV.Y > 1 {
			t.Fatalf("uv %+v outside [0,1]", v.UV)
		}
	}
	if got := Torus(1, 0.25, 1, 1); len(got.Indices) != 3*3*6 {
		t.Fatalf("minimum segments not enforced: %d indices", len(got.Indices))
	}
}

func TestCube(t *testing.T) {
	m := Cube(2)
	if len(m.Vertices) != 24 || len(m.Indices) != 36 {
		t.Fatalf("cube has %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
	checkOutward(t, "cube", m)
	for _, v := range m.Vertices {
		for _, c := range []float32{v.Pos.X, v.Pos.Y, v.Pos.Z} {
			if c != 2 && c != -2 {
				t.Fatalf("vertex %+v not on the cube corners", v.Pos)
			}
		}
		if Dot(v.Pos, v.Normal) != 2 {
			t.Fatalf("vertex %+v not on its face %+v", v.Pos, v.Normal)
		}
	}
}
