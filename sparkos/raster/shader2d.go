package raster

// 2D kernels: no depth test and no perspective divide.

// Gradient2D fills t with the RGBA gradient of its vertex colors and
// alphas. With blend set the gradient is composited over dst at the given
// opacity, otherwise it overwrites.
func Gradient2D[P Pixel[P]](t *Triangle, dst *Surface[P], blend bool, opacity float32) error {
	if err := validate2D(t, dst); err != nil {
		return err
	}
	rgba := func(v *Vertex) RGB32 {
		c := v.Color.RGB32()
		c.A = unit8(v.A)
		return c
	}
	col1, col2, col3 := rgba(&t.Verts[0]), rgba(&t.Verts[1]), rgba(&t.Verts[2])
	area, _ := t.Area()
	var shift uint
	if area > gouraudShiftArea {
		shift = gouraudShift
	}
	areaShifted := area >> shift
	op := opacity256(opacity)

	e2, e3 := t.Edges[1], t.Edges[2]
	sc := newScanner(t)
	var sp span
	for sc.next(&sp) {
		lo := int(t.X) + sp.x
		row := dst.Row(int(t.Y) + sp.y)[lo : lo+sp.n]
		c2, c3 := sp.c2, sp.c3
		for i := range row {
			c := col1.Lerp3(col2, c2>>shift, col3, c3>>shift, areaShifted)
			if blend {
				row[i] = FromRGB32[P](row[i].RGB32().Blend256(c, op))
			} else {
				row[i] = FromRGB32[P](c)
			}
			c2 += e2.DX
			c3 += e3.DX
		}
	}
	return nil
}

// Blit2D configures Texture2D.
type Blit2D[T Pixel[T]] struct {
	Blend   bool    // composite over the destination instead of overwriting
	Opacity float32 // used when blending

	// Mask makes texels equal to MaskColor fully transparent. It only has
	// a visible effect together with Blend.
	Mask      bool
	MaskColor T

	// Gradient tints each sample by the interpolated vertex color and
	// alpha.
	Gradient bool
}

// Texture2D maps tex onto t with bilinear filtering and edge clamping.
// Vertex U, V span the texture once over [0, 1]; texel centers sit at
// half-integer texel positions.
func Texture2D[P Pixel[P], T Pixel[T]](t *Triangle, dst *Surface[P], tex *Surface[T], opts Blit2D[T]) error {
	if err := validate2D(t, dst); err != nil {
		return err
	}
	m, err := newMap2D(t, tex)
	if err != nil {
		return err
	}
	op := opacity256(opts.Opacity)
	area, _ := t.Area()
	grad := 256 / float32(area)
	cf1, cf2, cf3 := t.Verts[0].Color, t.Verts[1].Color, t.Verts[2].Color
	a1, a2, a3 := t.Verts[0].A, t.Verts[1].A, t.Verts[2].A
	tint := func(c2, c3 int32) (r, g, b, a int32) {
		s1, s2, s3 := float32(area-c2-c3), float32(c2), float32(c3)
		r = int32((s1*cf1.R + s2*cf2.R + s3*cf3.R) * grad)
		g = int32((s1*cf1.G + s2*cf2.G + s3*cf3.G) * grad)
		b = int32((s1*cf1.B + s2*cf2.B + s3*cf3.B) * grad)
		a = int32((s1*a1 + s2*a2 + s3*a3) * grad)
		return r, g, b, a
	}
	masked := func(c T) RGB32 {
		if c == opts.MaskColor {
			return RGB32{}
		}
		return c.RGB32()
	}

	e2, e3 := t.Edges[1], t.Edges[2]
	sc := newScanner(t)
	var sp span
	for sc.next(&sp) {
		lo := int(t.X) + sp.x
		row := dst.Row(int(t.Y) + sp.y)[lo : lo+sp.n]
		c2, c3 := sp.c2, sp.c3
		tx, ty := m.start(&sp)
		for i := range row {
			x0, x1, y0, y1, ax, ay := m.taps(tx, ty)
			if opts.Mask {
				col := masked(tex.Pix[x0+y0]).Bilinear(masked(tex.Pix[x1+y0]), masked(tex.Pix[x0+y1]), masked(tex.Pix[x1+y1]), ax, ay)
				if opts.Gradient {
					col = col.Mult256(tint(c2, c3))
				}
				if opts.Blend {
					row[i] = FromRGB32[P](row[i].RGB32().Blend256(col, op))
				} else {
					row[i] = FromRGB32[P](col)
				}
			} else {
				col := tex.Pix[x0+y0].Bilinear(tex.Pix[x1+y0], tex.Pix[x0+y1], tex.Pix[x1+y1], ax, ay)
				if opts.Gradient {
					col = col.Mult256(tint(c2, c3))
				}
				if opts.Blend {
					col = Convert[T](row[i]).Blend256(col, op)
				}
				row[i] = Convert[P](col)
			}
			c2 += e2.DX
			c3 += e3.DX
			tx += m.dtx
			ty += m.dty
		}
	}
	return nil
}

// BlendFunc combines a sampled texel with the destination pixel.
type BlendFunc[P Pixel[P], T Pixel[T]] func(src T, dst P) P

// TextureBlendOp2D samples tex like Texture2D and stores op(texel, dst) for
// every covered pixel. op is called exactly once per pixel in raster order.
func TextureBlendOp2D[P Pixel[P], T Pixel[T]](t *Triangle, dst *Surface[P], tex *Surface[T], op BlendFunc[P, T]) error {
	if err := validate2D(t, dst); err != nil {
		return err
	}
	if op == nil {
		return ErrNoBlendFunc
	}
	m, err := newMap2D(t, tex)
	if err != nil {
		return err
	}
	sc := newScanner(t)
	var sp span
	for sc.next(&sp) {
		lo := int(t.X) + sp.x
		row := dst.Row(int(t.Y) + sp.y)[lo : lo+sp.n]
		tx, ty := m.start(&sp)
		for i := range row {
			x0, x1, y0, y1, ax, ay := m.taps(tx, ty)
			col := tex.Pix[x0+y0].Bilinear(tex.Pix[x1+y0], tex.Pix[x0+y1], tex.Pix[x1+y1], ax, ay)
			row[i] = op(col, row[i])
			tx += m.dtx
			ty += m.dty
		}
	}
	return nil
}

// map2D holds the affine texel mapping shared by the 2D texture kernels.
type map2D struct {
	t1x, t1y, t2x, t2y, t3x, t3y float32
	dtx, dty                     float32
	mx, my, stride               int32
}

func newMap2D[T any](t *Triangle, tex *Surface[T]) (map2D, error) {
	if tex == nil {
		return map2D{}, ErrNoTexture
	}
	if err := tex.valid(); err != nil {
		return map2D{}, err
	}
	area, _ := t.Area()
	k := 1 / float32(area)
	tw, th := float32(tex.Width)*k, float32(tex.Height)*k
	m := map2D{
		t1x: t.Verts[0].U * tw, t1y: t.Verts[0].V * th,
		t2x: t.Verts[1].U * tw, t2y: t.Verts[1].V * th,
		t3x: t.Verts[2].U * tw, t3y: t.Verts[2].V * th,
		mx:     int32(tex.Width - 1),
		my:     int32(tex.Height - 1),
		stride: int32(tex.Stride),
	}
	e := &t.Edges
	m.dtx = m.t1x*float32(e[0].DX) + m.t2x*float32(e[1].DX) + m.t3x*float32(e[2].DX)
	m.dty = m.t1y*float32(e[0].DX) + m.t2y*float32(e[1].DX) + m.t3y*float32(e[2].DX)
	return m, nil
}

func (m *map2D) start(sp *span) (tx, ty float32) {
	f1, f2, f3 := float32(sp.c1), float32(sp.c2), float32(sp.c3)
	tx = m.t1x*f1 + m.t2x*f2 + m.t3x*f3 - 0.5
	ty = m.t1y*f1 + m.t2y*f2 + m.t3y*f3 - 0.5
	return tx, ty
}

// taps returns clamped texel indices (rows premultiplied by stride) and the
// bilinear fractions for texel-space position (tx, ty).
func (m *map2D) taps(tx, ty float32) (x0, x1, y0, y1 int32, ax, ay float32) {
	ix, iy := floor32(tx), floor32(ty)
	ax, ay = tx-float32(ix), ty-float32(iy)
	x0, x1 = clamp32(ix, 0, m.mx), clamp32(ix+1, 0, m.mx)
	y0, y1 = clamp32(iy, 0, m.my)*m.stride, clamp32(iy+1, 0, m.my)*m.stride
	return x0, x1, y0, y1, ax, ay
}

func validate2D[P any](t *Triangle, dst *Surface[P]) error {
	if err := dst.valid(); err != nil {
		return err
	}
	if t == nil {
		return ErrNoTriangle
	}
	return t.Validate(dst.Width, dst.Height)
}
