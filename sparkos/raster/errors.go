package raster

import "errors"

// Precondition failures reported at the draw call boundary. The per-pixel
// loops never check these.
var (
	ErrSize           = errors.New("raster: invalid surface size")
	ErrStride         = errors.New("raster: stride smaller than width")
	ErrShortBuffer    = errors.New("raster: buffer too small for geometry")
	ErrBounds         = errors.New("raster: triangle bounding box outside surface")
	ErrEdgeOrder      = errors.New("raster: first edge must step positively in x")
	ErrNoTarget       = errors.New("raster: no target surface")
	ErrNoTriangle     = errors.New("raster: nil triangle")
	ErrNoDepth        = errors.New("raster: depth test requested without a depth surface")
	ErrDepthGeometry  = errors.New("raster: depth surface size differs from target")
	ErrNoTexture      = errors.New("raster: texturing requested without a texture")
	ErrTexturePow2    = errors.New("raster: wrap mode needs power-of-two texture dimensions")
	ErrShaderConflict = errors.New("raster: contradictory shader flags")
	ErrShaderDisabled = errors.New("raster: shader variant not enabled")
	ErrNoBlendFunc    = errors.New("raster: nil blend function")
)
