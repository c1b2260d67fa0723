package quarkgl

import (
	"errors"
	"testing"

	"sparkgfx/sparkos/raster"
)

func newFrame(t *testing.T, w, h int) *Frame {
	t.Helper()
	f, err := NewFrame(w, h)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	return f
}

func cubeScene(color Color) *Scene {
	s := CreateScene(2)
	s.Light.Mode = LightOff
	m := Cube(0.5)
	m.Material.BaseColor = color
	s.AddMesh(m)
	return s
}

func render(t *testing.T, r *Renderer, f *Frame, s *Scene) Stats {
	t.Helper()
	st, err := r.Render(f, s)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return st
}

func TestRenderCubeFrontFace(t *testing.T) {
	f := newFrame(t, 64, 64)
	r := NewRenderer()
	r.ClearColor = Hex(0x0000FF)
	st := render(t, r, f, cubeScene(Hex(0xFF0000)))

	if got := f.Color.At(32, 32); got != raster.RGB565Red {
		t.Fatalf("center = %#04x, want red", got)
	}
	if got := f.Color.At(0, 0); got != raster.RGB565Blue {
		t.Fatalf("corner = %#04x, want clear color", got)
	}
	want := Stats{Submitted: 12, Culled: 10, Drawn: 2}
	if st != want {
		t.Fatalf("stats = %+v, want %+v", st, want)
	}
	if z := f.Depth.At(32, 32); !near(z, 1/2.5) {
		t.Fatalf("center depth = %v, want 1/2.5", z)
	}
}

func TestRenderDepthOrder(t *testing.T) {
	for _, cam := range []CameraType{CameraPerspective, CameraOrtho} {
		for _, depth := range []bool{true, false} {
			f := newFrame(t, 64, 64)
			s := CreateScene(2)
			s.Camera.Type = cam
			s.Light.Mode = LightOff

			// The nearer cube is added first, so without a depth test the
			// farther one overwrites it.
			nearCube := Cube(0.5)
			nearCube.Material.BaseColor = Hex(0x00FF00)
			nearCube.Transform = Mat4Translate(V3(0, 0, 1))
			s.AddMesh(nearCube)
			farCube := Cube(0.5)
			farCube.Material.BaseColor = Hex(0xFF0000)
			s.AddMesh(farCube)

			r := NewRenderer()
			r.Depth = depth
			render(t, r, f, s)
			want := raster.RGB565Green
			if !depth {
				want = raster.RGB565Red
			}
			if got := f.Color.At(32, 32); got != want {
				t.Fatalf("camera %d depth %v: center = %#04x, want %#04x", cam, depth, got, want)
			}
		}
	}
}

func TestRenderWorkersMatchSinglePass(t *testing.T) {
	tex, err := raster.AllocSurface[raster.RGB565](8, 8)
	if err != nil {
		t.Fatalf("AllocSurface: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			tex.Set(x, y, raster.NewRGB565(uint8(x*32), uint8(y*32), 0x80))
		}
	}
	scene := func() *Scene {
		s := CreateScene(1)
		m := Torus(1, 0.4, 24, 12)
		m.Material.Texture = tex
		m.Material.BaseColor = Hex(0xFFFFFF)
		m.Transform = Mat4Mul(Mat4RotateY(0.4), Mat4RotateX(0.9))
		s.AddMesh(m)
		return s
	}

	for _, mode := range []RenderMode{RenderSolidFlat, RenderSolidGouraud} {
		one := newFrame(t, 96, 80)
		r := NewRenderer()
		r.Mode = mode
		r.Filter = FilterBilinear
		st1 := render(t, r, one, scene())

		many := newFrame(t, 96, 80)
		r.SetWorkers(5)
		st5 := render(t, r, many, scene())

		if st1 != st5 {
			t.Fatalf("%v: stats %+v vs %+v", mode, st1, st5)
		}
		if st1.Drawn == 0 {
			t.Fatalf("%v: nothing drawn", mode)
		}
		for i := range one.Color.Pix {
			if one.Color.Pix[i] != many.Color.Pix[i] || one.Depth.Pix[i] != many.Depth.Pix[i] {
				t.Fatalf("%v: pixel %d differs between 1 and 5 workers", mode, i)
			}
		}
	}
}

func TestRenderDisabledVariant(t *testing.T) {
	f := newFrame(t, 32, 32)
	r := NewRenderer()
	r.Mode = RenderSolidGouraud
	r.Enabled = raster.ShaderAll &^ raster.ShaderGouraud
	st := render(t, r, f, cubeScene(Hex(0xFF0000)))
	if st.Disabled != 12 || st.Drawn != 0 {
		t.Fatalf("stats = %+v", st)
	}
	for i, p := range f.Color.Pix {
		if p != raster.RGB565Black {
			t.Fatalf("pixel %d drawn: %#04x", i, p)
		}
	}

	r.Mode = RenderSolidFlat
	if st := render(t, r, f, cubeScene(Hex(0xFF0000))); st.Drawn != 2 {
		t.Fatalf("flat stats = %+v", st)
	}
}

func TestRenderTexturedNPOTClamps(t *testing.T) {
	tex, err := raster.AllocSurface[raster.RGB565](3, 3)
	if err != nil {
		t.Fatalf("AllocSurface: %v", err)
	}
	tex.Fill(raster.RGB565Blue)

	s := cubeScene(Hex(0xFFFFFF))
	s.Mesh(0).Material.Texture = tex
	f := newFrame(t, 64, 64)
	r := NewRenderer()
	r.Wrap = WrapRepeat
	render(t, r, f, s)
	if got := f.Color.At(32, 32); got != raster.RGB565Blue {
		t.Fatalf("center = %#04x, want texel color", got)
	}

	r.Texturing = false
	render(t, r, f, s)
	if got := f.Color.At(32, 32); got != raster.RGB565White {
		t.Fatalf("untextured center = %#04x, want base color", got)
	}
}

func TestRenderWireframe(t *testing.T) {
	f := newFrame(t, 64, 64)
	r := NewRenderer()
	r.Mode = RenderWireframe
	st := render(t, r, f, cubeScene(Hex(0xFFFFFF)))
	if st.Drawn != 2 {
		t.Fatalf("stats = %+v", st)
	}
	lit := 0
	for _, p := range f.Color.Pix {
		if p == raster.RGB565White {
			lit++
		}
	}
	if lit == 0 {
		t.Fatalf("no line pixels drawn")
	}
	if got := f.Color.At(26, 30); got != raster.RGB565Black {
		t.Fatalf("face interior filled in wireframe: %#04x", got)
	}
}

func TestRenderClipsNearPlane(t *testing.T) {
	f := newFrame(t, 32, 32)
	s := cubeScene(Hex(0xFF0000))
	s.Camera.Position = V3(0, 0, 0.52)
	st := render(t, NewRenderer(), f, s)
	if st.Clipped == 0 {
		t.Fatalf("stats = %+v, want clipped triangles", st)
	}
}

// farVertexScene holds one front-facing triangle whose right corner
// projects 320000 px off a 64×64 ortho frame, beyond the rasterizer's edge
// range. On screen it covers x ≥ 16 between y ≈ 16 and y = 48.
func farVertexScene() *Scene {
	s := CreateScene(1)
	s.Camera.Type = CameraOrtho
	s.Light.Mode = LightOff
	s.AddMesh(Mesh{
		Vertices: []Vertex{
			{Pos: V3(-0.5, -0.5, 0)},
			{Pos: V3(10000, -0.5, 0)},
			{Pos: V3(-0.5, 0.5, 0)},
		},
		Indices:  []uint16{0, 1, 2},
		Material: Material{BaseColor: Hex(0xFF0000)},
	})
	return s
}

func TestRenderFarVertexLeavesNoHole(t *testing.T) {
	for _, mode := range []RenderMode{RenderSolidFlat, RenderSolidGouraud} {
		f := newFrame(t, 64, 64)
		r := NewRenderer()
		r.Mode = mode
		st := render(t, r, f, farVertexScene())
		if want := (Stats{Submitted: 1, Guarded: 1, Drawn: 1}); st != want {
			t.Fatalf("%v: stats = %+v, want %+v", mode, st, want)
		}
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				inside := x >= 16 && y >= 17 && y < 48
				edge := x >= 16 && y == 16
				got := f.Color.At(x, y)
				switch {
				case inside && got != raster.RGB565Red:
					t.Fatalf("%v: pixel (%d,%d) = %#04x, want red", mode, x, y, got)
				case !inside && !edge && got != raster.RGB565Black:
					t.Fatalf("%v: pixel (%d,%d) = %#04x, want clear", mode, x, y, got)
				}
			}
		}
	}
}

func TestRenderNoFrame(t *testing.T) {
	if _, err := NewRenderer().Render(nil, CreateScene(0)); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("err = %v", err)
	}
}

func TestLightIntensity(t *testing.T) {
	l := Light{Mode: LightAmbientDirectional, Ambient: 0.2, Dir: V3(0, 0, -1), DirAmount: 0.5}
	tests := []struct {
		n    Vec3
		want float32
	}{
		{V3(0, 0, 1), 0.7},
		{V3(0, 0, 2), 0.7},
		{V3(0, 0, -1), 0.2},
		{V3(1, 0, 0), 0.2},
	}
	for _, tc := range tests {
		if got := l.intensity(tc.n); !near(got, tc.want) {
			t.Fatalf("intensity(%+v) = %v, want %v", tc.n, got, tc.want)
		}
	}
	if got := (Light{}).intensity(V3(0, 0, 1)); got != 1 {
		t.Fatalf("light off = %v, want 1", got)
	}
}
