// Package raster fills triangles into pixel surfaces.
//
// A triangle is three edge functions over its bounding box plus three
// vertex attribute bundles. The scanline walker visits covered pixels in
// raster order; the shading kernel computes each pixel from flat or Gouraud
// color, an optional nearest or bilinear texture sample (wrapped or clamped,
// perspective-correct or affine) and an optional depth test where the larger
// value wins.
//
// Draw selects the kernel variant from a Shader request and refuses
// variants outside the renderer's enabled set. Gradient2D, Texture2D and
// TextureBlendOp2D are the 2D siblings used for compositing.
//
// Draw calls do not allocate and keep no state between calls. Calls on
// disjoint rows of the same surfaces may run concurrently; see Bands and
// Triangle.Rows.
package raster
