package raster

import (
	"fmt"
	"strings"
)

// Shader is a set of shading features. The same bits describe both the
// features a renderer enables and the configuration requested per draw.
type Shader uint32

const (
	ShaderPerspective Shader = 1 << iota
	ShaderOrtho
	ShaderNoZBuffer
	ShaderZBuffer
	ShaderFlat
	ShaderGouraud
	ShaderNoTexture
	ShaderTextureNearest
	ShaderTextureBilinear
	ShaderTextureWrapPow2
	ShaderTextureClamp

	ShaderProjection = ShaderPerspective | ShaderOrtho
	ShaderDepth      = ShaderNoZBuffer | ShaderZBuffer
	ShaderShading    = ShaderFlat | ShaderGouraud
	ShaderTexture    = ShaderTextureNearest | ShaderTextureBilinear | ShaderTextureWrapPow2 | ShaderTextureClamp
	ShaderAll        = ShaderProjection | ShaderDepth | ShaderShading | ShaderNoTexture | ShaderTexture
)

var shaderNames = [...]string{
	"perspective", "ortho", "nozbuffer", "zbuffer", "flat", "gouraud",
	"notexture", "nearest", "bilinear", "wrap", "clamp",
}

func (s Shader) String() string {
	if s == 0 {
		return "none"
	}
	var b strings.Builder
	for i, name := range shaderNames {
		if s&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(name)
	}
	return b.String()
}

// conflict reports a request naming both sides of one axis.
func (s Shader) conflict() bool {
	both := func(a, b Shader) bool { return s&a != 0 && s&b != 0 }
	return both(ShaderPerspective, ShaderOrtho) ||
		both(ShaderNoZBuffer, ShaderZBuffer) ||
		both(ShaderFlat, ShaderGouraud) ||
		both(ShaderTextureNearest, ShaderTextureBilinear) ||
		both(ShaderTextureWrapPow2, ShaderTextureClamp) ||
		both(ShaderNoTexture, ShaderTexture)
}

// Variant is one concrete kernel configuration. Bilinear and Wrap only
// mean something when Texture is set; VariantOf leaves them false otherwise.
type Variant struct {
	Depth    bool
	Gouraud  bool
	Texture  bool
	Ortho    bool
	Bilinear bool
	Wrap     bool
}

// VariantCount is the number of distinct variants.
const VariantCount = 64

// VariantOf maps a requested configuration to its variant. Unset axes take
// their default: perspective, no depth test, flat, untextured. A textured
// request filters nearest and wraps unless told otherwise.
func VariantOf(requested Shader) Variant {
	v := Variant{
		Depth:   requested&ShaderZBuffer != 0,
		Gouraud: requested&ShaderGouraud != 0,
		Texture: requested&ShaderTexture != 0,
		Ortho:   requested&ShaderOrtho != 0,
	}
	if v.Texture {
		v.Bilinear = requested&ShaderTextureBilinear != 0
		v.Wrap = requested&ShaderTextureClamp == 0
	}
	return v
}

// VariantAt is the inverse of Index.
func VariantAt(i int) Variant {
	return Variant{
		Depth:    i&1 != 0,
		Gouraud:  i&2 != 0,
		Texture:  i&4 != 0,
		Ortho:    i&8 != 0,
		Bilinear: i&16 != 0,
		Wrap:     i&32 != 0,
	}
}

// Index packs the variant into [0, VariantCount).
func (v Variant) Index() int {
	i := 0
	for bit, on := range [...]bool{v.Depth, v.Gouraud, v.Texture, v.Ortho, v.Bilinear, v.Wrap} {
		if on {
			i |= 1 << bit
		}
	}
	return i
}

// Requires returns the features that must be enabled to run v. Filter and
// wrap bits are only required when v is textured; for untextured variants
// Bilinear and Wrap select the same kernel path and need nothing.
func (v Variant) Requires() Shader {
	var s Shader
	pick := func(on bool, yes, no Shader) {
		if on {
			s |= yes
		} else {
			s |= no
		}
	}
	pick(v.Ortho, ShaderOrtho, ShaderPerspective)
	pick(v.Depth, ShaderZBuffer, ShaderNoZBuffer)
	pick(v.Gouraud, ShaderGouraud, ShaderFlat)
	if !v.Texture {
		return s | ShaderNoTexture
	}
	pick(v.Bilinear, ShaderTextureBilinear, ShaderTextureNearest)
	pick(v.Wrap, ShaderTextureWrapPow2, ShaderTextureClamp)
	return s
}

// Shader returns a request that selects exactly v.
func (v Variant) Shader() Shader { return v.Requires() }

func (v Variant) canonical() Variant {
	if !v.Texture {
		v.Bilinear, v.Wrap = false, false
	}
	return v
}

func (v Variant) String() string { return v.Requires().String() }

// Select returns the variant for requested and whether enabled covers every
// feature it needs. A request is never rerouted to a different variant.
func Select(enabled, requested Shader) (Variant, bool) {
	if requested.conflict() {
		return Variant{}, false
	}
	v := VariantOf(requested)
	need := v.Requires()
	return v, enabled&need == need
}

// Params carries the surfaces and per-triangle constants for Draw.
type Params[P Pixel[P], D DepthSample] struct {
	Target  *Surface[P]
	Depth   *Surface[D] // required by depth-tested variants
	Texture *Surface[P] // required by textured variants

	// Face is the flat shading color, also the light color for flat
	// textured variants.
	Face RGBf

	// DepthScale and DepthOffset map interpolated W to stored depth
	// (z = W·scale + offset). A zero scale is treated as 1.
	DepthScale  float32
	DepthOffset float32
}

// Draw shades the pixels of t covered in p.Target using the variant the
// requested configuration selects. It draws nothing and returns
// ErrShaderDisabled when that variant needs a feature outside enabled.
//
// The depth convention is larger-is-nearer: a pixel is written only when
// its depth is strictly greater than the stored one.
func Draw[P Pixel[P], D DepthSample](enabled, requested Shader, t *Triangle, p *Params[P, D]) error {
	if requested.conflict() {
		return fmt.Errorf("%w: %v", ErrShaderConflict, requested)
	}
	v, ok := Select(enabled, requested)
	if !ok {
		return fmt.Errorf("%w: %v (enabled %v)", ErrShaderDisabled, v, enabled)
	}
	if err := p.validate(v, t); err != nil {
		return err
	}
	shade(v, t, p)
	return nil
}

func (p *Params[P, D]) validate(v Variant, t *Triangle) error {
	if p == nil {
		return ErrNoTarget
	}
	if err := p.Target.valid(); err != nil {
		return fmt.Errorf("raster: target: %w", err)
	}
	if t == nil {
		return ErrNoTriangle
	}
	if err := t.Validate(p.Target.Width, p.Target.Height); err != nil {
		return err
	}
	if v.Depth {
		if p.Depth == nil {
			return ErrNoDepth
		}
		if err := p.Depth.valid(); err != nil {
			return fmt.Errorf("raster: depth: %w", err)
		}
		if p.Depth.Width != p.Target.Width || p.Depth.Height != p.Target.Height {
			return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDepthGeometry,
				p.Depth.Width, p.Depth.Height, p.Target.Width, p.Target.Height)
		}
	}
	if v.Texture {
		if p.Texture == nil {
			return ErrNoTexture
		}
		if err := p.Texture.valid(); err != nil {
			return fmt.Errorf("raster: texture: %w", err)
		}
		if v.Wrap && !p.Texture.IsPow2() {
			return fmt.Errorf("%w: %dx%d", ErrTexturePow2, p.Texture.Width, p.Texture.Height)
		}
	}
	return nil
}
