package quarkgl

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"

	"sparkgfx/sparkos/raster"
)

// ErrNoFrame is returned by Render without a frame to draw into.
var ErrNoFrame = errors.New("quarkgl: no frame")

// RenderMode selects how triangles are filled.
type RenderMode uint8

const (
	RenderWireframe RenderMode = iota
	RenderSolidFlat
	RenderSolidGouraud
)

func (m RenderMode) String() string {
	switch m {
	case RenderWireframe:
		return "wireframe"
	case RenderSolidFlat:
		return "flat"
	case RenderSolidGouraud:
		return "gouraud"
	}
	return fmt.Sprintf("RenderMode(%d)", uint8(m))
}

// TextureFilter selects texture sampling.
type TextureFilter uint8

const (
	FilterNearest TextureFilter = iota
	FilterBilinear
)

// TextureWrap selects what happens to texture coordinates outside [0, 1].
type TextureWrap uint8

const (
	WrapRepeat TextureWrap = iota
	WrapClamp
)

// Stats counts what happened to the triangles of one Render call.
type Stats struct {
	Submitted int // read from mesh index lists
	Clipped   int // a vertex outside the near/far range or a bad index
	Culled    int // back-facing or covering no pixel center
	Disabled  int // shader variant not in Renderer.Enabled
	Guarded   int // too large for the rasterizer, clipped to the guard band
	Drawn     int
}

type drawCall struct {
	tri    raster.Triangle
	shader raster.Shader
	params raster.Params[raster.RGB565, float32]
}

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it; the triangle queue is kept between frames.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	Texturing  bool // sample Material.Texture where a mesh has one
	Filter     TextureFilter
	Wrap       TextureWrap // non power-of-two textures always clamp
	CullBack   bool
	ClearColor Color

	// Enabled is the set of shader features the renderer may run. Meshes
	// needing anything else are skipped and counted in Stats.Disabled.
	Enabled raster.Shader

	workers int
	queue   []drawCall
}

// NewRenderer returns a renderer with depth testing, texturing and
// back-face culling on and every shader variant enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		Mode:      RenderSolidFlat,
		Depth:     true,
		Texturing: true,
		CullBack:  true,
		Enabled:   raster.ShaderAll,
		workers:   1,
	}
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// SetWorkers sets how many goroutines rasterize a frame. Each one owns a
// horizontal band of the frame; n < 1 means 1.
func (r *Renderer) SetWorkers(n int) { r.workers = max(n, 1) }

func (r *Renderer) Workers() int { return r.workers }

// Render clears f and draws every enabled mesh of s into it. Draw errors
// other than disabled variants are returned once the frame is done.
func (r *Renderer) Render(f *Frame, s *Scene) (Stats, error) {
	var st Stats
	if f == nil || f.Color == nil {
		return st, ErrNoFrame
	}
	f.Clear(r.ClearColor)
	if r.Depth && f.Depth != nil {
		f.ClearDepth()
	}
	if s == nil {
		return st, nil
	}

	w, h := f.Size()
	vp := Mat4Mul(s.Camera.Projection(float32(w)/float32(h)), s.Camera.View())
	ortho := s.Camera.Type == CameraOrtho

	r.queue = r.queue[:0]
	s.eachMesh(func(m *Mesh) { r.queueMesh(f, m, vp, s.Light, ortho, &st) })
	err := r.flush()

	log := Logger()
	if st.Disabled > 0 {
		log.Warn("quarkgl: shader variant not enabled", "triangles", st.Disabled, "enabled", r.Enabled.String())
	}
	log.Debug("quarkgl: frame", "submitted", st.Submitted, "clipped", st.Clipped, "culled", st.Culled,
		"guarded", st.Guarded, "drawn", st.Drawn)
	return st, err
}

// shader returns the feature request for triangles of a mesh.
func (r *Renderer) shader(ortho bool, tex *raster.Surface[raster.RGB565]) raster.Shader {
	s := raster.ShaderPerspective
	if ortho {
		s = raster.ShaderOrtho
	}
	if r.Depth {
		s |= raster.ShaderZBuffer
	} else {
		s |= raster.ShaderNoZBuffer
	}
	if r.Mode == RenderSolidGouraud {
		s |= raster.ShaderGouraud
	} else {
		s |= raster.ShaderFlat
	}
	if tex == nil {
		return s | raster.ShaderNoTexture
	}
	if r.Filter == FilterBilinear {
		s |= raster.ShaderTextureBilinear
	} else {
		s |= raster.ShaderTextureNearest
	}
	if r.Wrap == WrapRepeat && tex.IsPow2() {
		s |= raster.ShaderTextureWrapPow2
	} else {
		s |= raster.ShaderTextureClamp
	}
	return s
}

func (r *Renderer) queueMesh(f *Frame, m *Mesh, vp Mat4, light Light, ortho bool, st *Stats) {
	n := len(m.Indices) / 3
	if n == 0 {
		return
	}
	var tex *raster.Surface[raster.RGB565]
	if r.Texturing && r.Mode != RenderWireframe {
		tex = m.Material.Texture
	}
	shader := r.shader(ortho, tex)
	if _, ok := raster.Select(r.Enabled, shader); !ok && r.Mode != RenderWireframe {
		st.Submitted += n
		st.Disabled += n
		return
	}

	w, h := f.Size()
	clip := raster.Rect{X1: w, Y1: h}
	guard := newGuardRect(clip)
	fw, fh := float32(w), float32(h)
	mvp := Mat4Mul(vp, m.Transform)
	params := raster.Params[raster.RGB565, float32]{Target: f.Color, Texture: tex}
	if r.Depth {
		params.Depth = f.Depth
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		st.Submitted++

		var vs [3]*Vertex
		var pts [3]raster.Point
		var rv [3]raster.Vertex
		drop := false
		for k := range vs {
			j := int(m.Indices[i+k])
			if j >= len(m.Vertices) {
				drop = true
				break
			}
			vs[k] = &m.Vertices[j]
			p := Mat4MulV4(mvp, vs[k].Pos.Point())
			if p.W <= 0 {
				drop = true
				break
			}
			inv := 1 / p.W
			z := p.Z * inv
			if z < -1 || z > 1 {
				drop = true
				break
			}
			pts[k] = raster.Point{X: (p.X*inv*0.5 + 0.5) * fw, Y: (0.5 - p.Y*inv*0.5) * fh}
			// Larger W is nearer: 1/w_clip under perspective, remapped
			// NDC z under orthographic projection.
			rv[k].W = inv
			if ortho {
				rv[k].W = (1 - z) / 2
			}
			rv[k].U, rv[k].V = vs[k].UV.X, vs[k].UV.Y
			rv[k].A = 1
		}
		if drop {
			st.Clipped++
			continue
		}
		// Counter-clockwise in NDC is clockwise once y points down.
		if r.CullBack && area2(pts) >= 0 {
			st.Culled++
			continue
		}

		faceN := Mat4MulDir(m.Transform, Cross(vs[1].Pos.Sub(vs[0].Pos), vs[2].Pos.Sub(vs[0].Pos)))
		face := scaleColor(m.Material.BaseColor, light.intensity(faceN))

		if r.Mode == RenderWireframe {
			c := face.RGB565()
			drawLine(f, pts[0], pts[1], c)
			drawLine(f, pts[1], pts[2], c)
			drawLine(f, pts[2], pts[0], c)
			st.Drawn++
			continue
		}
		if r.Mode == RenderSolidGouraud {
			for k, v := range vs {
				n := faceN
				if v.Normal != (Vec3{}) {
					n = Mat4MulDir(m.Transform, v.Normal)
				}
				base := m.Material.BaseColor
				if m.Material.VertexColor {
					base = mulColor(base, v.Color)
				}
				rv[k].Color = scaleColor(base, light.intensity(n))
			}
		}

		params.Face = face
		if tri, ok := raster.Setup(pts, rv, clip); ok {
			r.queue = append(r.queue, drawCall{tri: tri, shader: shader, params: params})
			st.Drawn++
			continue
		}
		if guard.contains(pts) {
			st.Culled++
			continue
		}

		// Setup also fails when a vertex far off the frame pushes edge
		// values out of fixed-point range. Draw what lies near the frame.
		st.Guarded++
		queued := 0
		for _, cv := range clipGuard(pts, rv, guard, ortho) {
			tri, ok := raster.Setup([3]raster.Point{cv[0].p, cv[1].p, cv[2].p}, [3]raster.Vertex{cv[0].v, cv[1].v, cv[2].v}, clip)
			if !ok {
				continue
			}
			r.queue = append(r.queue, drawCall{tri: tri, shader: shader, params: params})
			queued++
		}
		Logger().Debug("quarkgl: triangle clipped to guard band", "triangle", i/3, "pieces", queued,
			"p0", pts[0], "p1", pts[1], "p2", pts[2])
		if queued == 0 {
			st.Culled++
		} else {
			st.Drawn++
		}
	}
}

// flush rasterizes the queue, one band of rows per worker. Each worker
// walks the whole queue in order, so the result matches a single pass.
func (r *Renderer) flush() error {
	if len(r.queue) == 0 {
		return nil
	}
	bands := raster.Bands(r.queue[0].params.Target.Height, r.workers)
	if len(bands) == 1 {
		return r.drawBand(bands[0])
	}
	var g errgroup.Group
	for _, b := range bands {
		g.Go(func() error { return r.drawBand(b) })
	}
	return g.Wait()
}

func (r *Renderer) drawBand(b raster.Band) error {
	for i := range r.queue {
		dc := &r.queue[i]
		tri, ok := dc.tri.Rows(b.Y0, b.Y1)
		if !ok {
			continue
		}
		if err := raster.Draw(r.Enabled, dc.shader, &tri, &dc.params); err != nil {
			return fmt.Errorf("quarkgl: triangle %d: %w", i, err)
		}
	}
	return nil
}

func area2(p [3]raster.Point) float32 {
	return (p[1].X-p[0].X)*(p[2].Y-p[0].Y) - (p[1].Y-p[0].Y)*(p[2].X-p[0].X)
}

// drawLine draws a Bresenham line between the pixels containing a and b.
func drawLine(f *Frame, a, b raster.Point, c raster.RGB565) {
	x0, y0 := floorInt(a.X), floorInt(a.Y)
	x1, y1 := floorInt(b.X), floorInt(b.Y)
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		f.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func floorInt(v float32) int { return int(math32.Floor(v)) }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
