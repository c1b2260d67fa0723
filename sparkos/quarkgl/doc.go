// Package quarkgl is a small fixed-pipeline 3D renderer on top of
// sparkos/raster.
//
// Pipeline:
//
//	Scene → Transform → Projection → Near/far drop → Cull → Lighting → Setup → raster.Draw → Frame.
//
// Triangles are not clipped: one with a vertex outside the near/far range
// is dropped whole. Lighting is one ambient plus one directional term,
// evaluated per face (flat) or per vertex (Gouraud) and passed to the
// rasterizer as pre-lit color.
//
// A Frame is the back buffer. Frame.Present packs it into a display
// Framebuffer and Frame.Displayer lets tinyfont draw text on it.
//
// Logging is off unless SetLogger is called.
package quarkgl
