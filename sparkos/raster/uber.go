package raster

// DepthSample is the storage type of a depth surface: 16-bit fixed point
// or float32.
type DepthSample interface {
	uint16 | float32
}

// Above this area edge values are shifted down before untextured Gouraud
// interpolation so the integer products stay in range.
const (
	gouraudShiftArea = 1 << 22
	gouraudShift     = 10
)

// shade runs the kernel for variant v. Inputs are already validated.
//
// The six variant axes are hoisted into locals once per triangle; the
// per-pixel cost of the branches on them is a few predictable jumps.
func shade[P Pixel[P], D DepthSample](v Variant, t *Triangle, p *Params[P, D]) {
	if t.W == 0 || t.H == 0 {
		return
	}
	useDepth, gouraud, textured, ortho := v.Depth, v.Gouraud, v.Texture, v.Ortho

	e1, e2, e3 := t.Edges[0], t.Edges[1], t.Edges[2]
	v1, v2, v3 := &t.Verts[0], &t.Verts[1], &t.Verts[2]
	area, _ := t.Area()
	invArea := 1 / float32(area)

	// Depth.
	wa, wb := p.DepthScale, p.DepthOffset
	if wa == 0 {
		wa = 1
	}
	var fz1, fz2, fz3, dwz float32
	fixedDepth := false
	if useDepth {
		k := invArea
		if !ortho {
			k *= wa
		}
		fz1, fz2, fz3 = v1.W*k, v2.W*k, v3.W*k
		dwz = float32(e1.DX)*fz1 + float32(e2.DX)*fz2 + float32(e3.DX)*fz3
		var d D
		_, fixedDepth = any(d).(uint16)
	}

	// Color.
	var flat P
	var col1, col2, col3 P
	var shift uint
	var areaShifted int32
	var fR, fG, fB int32
	var g1R, g1G, g1B, g21R, g21G, g21B, g31R, g31G, g31B int64
	switch {
	case gouraud && textured:
		c1, c2, c3 := v1.Color, v2.Color, v3.Color
		g1R, g1G, g1B = fix256(c1.R), fix256(c1.G), fix256(c1.B)
		g21R, g21G, g21B = fix256(c2.R-c1.R), fix256(c2.G-c1.G), fix256(c2.B-c1.B)
		g31R, g31G, g31B = fix256(c3.R-c1.R), fix256(c3.G-c1.G), fix256(c3.B-c1.B)
	case gouraud:
		col1, col2, col3 = FromRGBf[P](v1.Color), FromRGBf[P](v2.Color), FromRGBf[P](v3.Color)
		if area > gouraudShiftArea {
			shift = gouraudShift
		}
		areaShifted = area >> shift
	case textured:
		fR, fG, fB = int32(fix256(p.Face.R)), int32(fix256(p.Face.G)), int32(fix256(p.Face.B))
	default:
		flat = FromRGBf[P](p.Face)
	}

	// Texture coordinates, scaled to texels.
	var smp sampler[P]
	var t1x, t1y, t2x, t2y, t3x, t3y, dtx, dty float32
	var fp1, fp2, fp3, dwp float32
	if textured {
		smp = newSampler(p.Texture, v.Bilinear, v.Wrap)
		k1, k2, k3 := invArea, invArea, invArea
		if !ortho {
			fp1, fp2, fp3 = v1.W*invArea, v2.W*invArea, v3.W*invArea
			dwp = float32(e1.DX)*fp1 + float32(e2.DX)*fp2 + float32(e3.DX)*fp3
			k1, k2, k3 = fp1, fp2, fp3
		}
		tw, th := float32(p.Texture.Width), float32(p.Texture.Height)
		t1x, t1y = v1.U*k1*tw, v1.V*k1*th
		t2x, t2y = v2.U*k2*tw, v2.V*k2*th
		t3x, t3y = v3.U*k3*tw, v3.V*k3*th
		dtx = t1x*float32(e1.DX) + t2x*float32(e2.DX) + t3x*float32(e3.DX)
		dty = t1y*float32(e1.DX) + t2y*float32(e2.DX) + t3y*float32(e3.DX)
	}

	x0 := int(t.X)
	sc := newScanner(t)
	var sp span
	for sc.next(&sp) {
		y := int(t.Y) + sp.y
		lo := x0 + sp.x
		row := p.Target.Row(y)[lo : lo+sp.n]
		var zrow []D
		if useDepth {
			zrow = p.Depth.Row(y)[lo : lo+sp.n]
		}

		c1, c2, c3 := sp.c1, sp.c2, sp.c3
		f1, f2, f3 := float32(c1), float32(c2), float32(c3)

		var cwz float32
		if useDepth {
			cwz = f1*fz1 + f2*fz2 + f3*fz3
			if !ortho {
				cwz += wb
			}
		}
		var tx, ty, cwp float32
		if textured {
			tx = t1x*f1 + t2x*f2 + t3x*f3
			ty = t1y*f1 + t2y*f2 + t3y*f3
			if !ortho {
				cwp = f1*fp1 + f2*fp2 + f3*fp3
			}
		}

		for i := range row {
			pass := true
			if useDepth {
				z := cwz
				if ortho {
					z = cwz*wa + wb
				}
				var cand D
				if fixedDepth {
					cand = D(clampDepth16(z))
				} else {
					cand = D(z)
				}
				if zrow[i] < cand {
					zrow[i] = cand
				} else {
					pass = false
				}
			}

			if pass {
				var out P
				switch {
				case textured:
					xx, yy := tx, ty
					if !ortho {
						icw := 1 / cwp
						xx, yy = tx*icw, ty*icw
					}
					out = smp.at(xx, yy)
					if gouraud {
						w2, w3 := int64(c2), int64(c3)
						a := int64(area)
						out = out.Mult256(
							int32(g1R+(w2*g21R+w3*g31R)/a),
							int32(g1G+(w2*g21G+w3*g31G)/a),
							int32(g1B+(w2*g21B+w3*g31B)/a),
							256)
					} else {
						out = out.Mult256(fR, fG, fB, 256)
					}
				case gouraud:
					out = col1.Lerp3(col2, c2>>shift, col3, c3>>shift, areaShifted)
				default:
					out = flat
				}
				row[i] = out
			}

			c2 += e2.DX
			c3 += e3.DX
			if useDepth {
				cwz += dwz
			}
			if textured {
				tx += dtx
				ty += dty
				if !ortho {
					cwp += dwp
				}
			}
		}
	}
}

// sampler reads texels with wraparound (power-of-two sizes) or clamping.
type sampler[P Pixel[P]] struct {
	pix            []P
	stride         int32
	mx, my         int32 // width-1, height-1: mask when wrapping, max when clamping
	bilinear, wrap bool
}

func newSampler[P Pixel[P]](tex *Surface[P], bilinear, wrap bool) sampler[P] {
	return sampler[P]{
		pix:      tex.Pix,
		stride:   int32(tex.Stride),
		mx:       int32(tex.Width - 1),
		my:       int32(tex.Height - 1),
		bilinear: bilinear,
		wrap:     wrap,
	}
}

func (s *sampler[P]) fold(v, m int32) int32 {
	if s.wrap {
		return v & m
	}
	return clamp32(v, 0, m)
}

// at samples texel-space position (xx, yy). Texel (i, j) covers
// [i, i+1)×[j, j+1) for nearest filtering; bilinear weights are taken from
// the fractional position relative to texel origins.
func (s *sampler[P]) at(xx, yy float32) P {
	tx, ty := floor32(xx), floor32(yy)
	if !s.bilinear {
		return s.pix[s.fold(tx, s.mx)+s.fold(ty, s.my)*s.stride]
	}
	ax, ay := xx-float32(tx), yy-float32(ty)
	x0, x1 := s.fold(tx, s.mx), s.fold(tx+1, s.mx)
	y0, y1 := s.fold(ty, s.my)*s.stride, s.fold(ty+1, s.my)*s.stride
	return s.pix[x0+y0].Bilinear(s.pix[x1+y0], s.pix[x0+y1], s.pix[x1+y1], ax, ay)
}

func floor32(v float32) int32 {
	i := int32(v)
	if float32(i) > v {
		i--
	}
	return i
}

func fix256(v float32) int64 { return int64(v * 256) }

func clampDepth16(z float32) uint16 {
	if z <= 0 {
		return 0
	}
	if z >= 0xFFFF {
		return 0xFFFF
	}
	return uint16(z)
}
