package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/chewxy/math32"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"sparkgfx/hal"
	"sparkgfx/internal/config"
	"sparkgfx/internal/snapshot"
	"sparkgfx/internal/texture"
	"sparkgfx/sparkos/quarkgl"
	"sparkgfx/sparkos/raster"
)

const defaultSnapshot = "sparkdemo.webp"

var (
	hudText  = color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF}
	hudMuted = color.RGBA{R: 0x90, G: 0xA0, B: 0xB8, A: 0xFF}
)

// demo is one spinning textured torus with a cube satellite, 2D overlays
// and a HUD, driven by hal steps.
type demo struct {
	cfg config.Config
	log *slog.Logger

	fb    hal.Framebuffer
	kbd   hal.Keyboard
	clock hal.Time

	frame *quarkgl.Frame
	r     *quarkgl.Renderer
	s     *quarkgl.Scene
	orbit quarkgl.OrbitController
	ov    *overlays

	torusID int
	cubeID  int

	paused   bool
	overlay  bool
	angle    float32
	lastMs   uint64
	frames   int
	fpsStart uint64
	fpsCount int
	fps      int
	stats    quarkgl.Stats
}

func newDemo(h hal.HAL, cfg config.Config, log *slog.Logger) (*demo, error) {
	fb := h.Display().Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil, fmt.Errorf("sparkdemo: no RGB565 framebuffer")
	}
	frame, err := quarkgl.NewFrame(fb.Width(), fb.Height())
	if err != nil {
		return nil, fmt.Errorf("sparkdemo: %w", err)
	}

	d := &demo{
		cfg:     cfg,
		log:     log,
		fb:      fb,
		kbd:     h.Input().Keyboard(),
		clock:   h.Time(),
		frame:   frame,
		overlay: true,
		torusID: -1,
		cubeID:  -1,
	}
	if err := d.setupRenderer(); err != nil {
		return nil, err
	}
	if err := d.setupScene(); err != nil {
		return nil, err
	}
	if d.ov, err = newOverlays(fb.Width(), fb.Height()); err != nil {
		return nil, err
	}
	d.lastMs = d.clock.Millis()
	d.fpsStart = d.lastMs
	return d, nil
}

func (d *demo) setupRenderer() error {
	d.r = quarkgl.NewRenderer()
	d.r.SetWorkers(d.cfg.Workers)
	d.r.ClearColor = quarkgl.RGB(0x05, 0x08, 0x12)
	d.r.Depth = d.cfg.DepthEnabled()

	switch d.cfg.Shading {
	case "wireframe":
		d.r.Mode = quarkgl.RenderWireframe
	case "flat":
		d.r.Mode = quarkgl.RenderSolidFlat
	default:
		d.r.Mode = quarkgl.RenderSolidGouraud
	}
	if d.cfg.Filter == "nearest" {
		d.r.Filter = quarkgl.FilterNearest
	} else {
		d.r.Filter = quarkgl.FilterBilinear
	}
	if d.cfg.Wrap == "clamp" {
		d.r.Wrap = quarkgl.WrapClamp
	} else {
		d.r.Wrap = quarkgl.WrapRepeat
	}
	return nil
}

func (d *demo) setupScene() error {
	tex, err := d.loadTexture()
	if err != nil {
		return err
	}

	d.s = quarkgl.CreateScene(2)
	cam := &d.s.Camera
	cam.FOVYRad = 1.0
	cam.OrthoSize = 1.7
	cam.Near = 0.1
	cam.Far = 20
	if d.cfg.Projection == "ortho" {
		cam.Type = quarkgl.CameraOrtho
	}
	d.orbit = quarkgl.OrbitController{Pitch: 0.25, Radius: 3.4, MinRadius: 1.8, MaxRadius: 8}
	d.orbit.Apply(cam)

	d.s.Light.Mode = quarkgl.LightAmbientDirectional
	d.s.Light.Ambient = 0.2
	d.s.Light.Dir = quarkgl.Normalize(quarkgl.V3(-0.4, -0.9, -0.3))
	d.s.Light.DirAmount = 0.85

	torus := quarkgl.Torus(1.0, 0.38, 32, 16)
	tileUV(&torus, 4, 2)
	torus.Material.BaseColor = quarkgl.RGB(0xFF, 0xFF, 0xFF)
	torus.Material.Texture = tex
	d.torusID = d.s.AddMesh(torus)

	cube := quarkgl.Cube(0.22)
	cube.Material.VertexColor = true
	cube.Material.BaseColor = quarkgl.RGB(0xFF, 0xFF, 0xFF)
	d.cubeID = d.s.AddMesh(cube)

	d.animate()
	return nil
}

func (d *demo) loadTexture() (*raster.Surface[raster.RGB565], error) {
	if d.cfg.Texture == "" {
		tex, err := texture.Checker(d.cfg.TextureSize, 8, raster.NewRGB565(0xFF, 0x99, 0x33), raster.NewRGB565(0x33, 0x22, 0x66))
		if err != nil {
			return nil, fmt.Errorf("sparkdemo: %w", err)
		}
		return tex, nil
	}
	tex, err := texture.Load(d.cfg.Texture, texture.Options{Size: d.cfg.TextureSize})
	if err != nil {
		return nil, fmt.Errorf("sparkdemo: %w", err)
	}
	d.log.Info("texture loaded", "path", d.cfg.Texture, "size", tex.Width)
	return tex, nil
}

// tileUV repeats a mesh's [0,1] UVs su×sv times so the wrap mode shows.
func tileUV(m *quarkgl.Mesh, su, sv float32) {
	for i := range m.Vertices {
		m.Vertices[i].UV.X *= su
		m.Vertices[i].UV.Y *= sv
	}
}

// step runs one tick: input, animation, render, present.
func (d *demo) step() error {
drain:
	for {
		select {
		case ev := <-d.kbd.Events():
			if err := d.handleKey(ev); err != nil {
				return err
			}
		default:
			break drain
		}
	}

	now := d.clock.Millis()
	if !d.paused {
		d.angle += float32(now-d.lastMs) * 0.0012
	}
	d.lastMs = now
	d.animate()

	if err := d.render(); err != nil {
		return err
	}
	d.frames++
	d.countFPS(now)

	if d.cfg.Headless && d.cfg.Frames > 0 && d.frames >= d.cfg.Frames {
		if d.cfg.Snapshot != "" {
			if err := d.saveSnapshot(d.cfg.Snapshot); err != nil {
				return err
			}
		}
		return hal.ErrStop
	}
	return nil
}

func (d *demo) animate() {
	model := quarkgl.Mat4Mul(quarkgl.Mat4RotateY(d.angle), quarkgl.Mat4RotateX(0.65))
	d.s.UpdateMeshTransform(d.torusID, model)

	orbit := quarkgl.Mat4Translate(quarkgl.V3(1.6*math32.Cos(d.angle*1.7), 0.35, 1.6*math32.Sin(d.angle*1.7)))
	d.s.UpdateMeshTransform(d.cubeID, quarkgl.Mat4Mul(orbit, quarkgl.Mat4RotateZ(d.angle*2.3)))
}

func (d *demo) countFPS(now uint64) {
	d.fpsCount++
	if dt := now - d.fpsStart; dt >= 1000 {
		d.fps = int(uint64(d.fpsCount) * 1000 / dt)
		d.fpsCount = 0
		d.fpsStart = now
	}
}

func (d *demo) render() error {
	st, err := d.r.Render(d.frame, d.s)
	if err != nil {
		return fmt.Errorf("sparkdemo: render: %w", err)
	}
	d.stats = st

	if d.overlay {
		if err := d.ov.draw(d.frame.Color, d.angle); err != nil {
			return fmt.Errorf("sparkdemo: overlay: %w", err)
		}
	}
	d.drawHUD()
	return d.frame.Present(d.fb)
}

func (d *demo) drawHUD() {
	disp := d.frame.Displayer()
	font := &proggy.TinySZ8pt7b
	tinyfont.WriteLine(disp, font, 6, 12, fmt.Sprintf("%d fps  %s  %d tris", d.fps, d.r.Mode, d.stats.Drawn), hudText)
	tinyfont.WriteLine(disp, font, 6, 24, d.modeLine(), hudMuted)
	if d.stats.Disabled > 0 {
		tinyfont.WriteLine(disp, font, 6, 36, fmt.Sprintf("%d tris need disabled shaders", d.stats.Disabled), hudMuted)
	}
}

func (d *demo) modeLine() string {
	filter, wrap, proj, depth := "bilinear", "wrap", "persp", "z"
	if d.r.Filter == quarkgl.FilterNearest {
		filter = "nearest"
	}
	if d.r.Wrap == quarkgl.WrapClamp {
		wrap = "clamp"
	}
	if d.s.Camera.Type == quarkgl.CameraOrtho {
		proj = "ortho"
	}
	if !d.r.Depth {
		depth = "no-z"
	}
	if !d.r.Texturing {
		filter = "untextured"
	}
	return filter + " " + wrap + " " + proj + " " + depth
}

func (d *demo) handleKey(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	switch ev.Rune {
	case 'q':
		return hal.ErrStop
	case 'w':
		return d.handleKey(hal.KeyEvent{Code: hal.KeyF1, Press: true})
	}

	switch ev.Code {
	case hal.KeyEscape:
		return hal.ErrStop
	case hal.KeyLeft:
		d.orbit.Rotate(-0.1, 0)
	case hal.KeyRight:
		d.orbit.Rotate(0.1, 0)
	case hal.KeyUp:
		d.orbit.Rotate(0, 0.1)
	case hal.KeyDown:
		d.orbit.Rotate(0, -0.1)
	case hal.KeyPageUp:
		d.orbit.Zoom(-0.25)
	case hal.KeyPageDown:
		d.orbit.Zoom(0.25)
	case hal.KeySpace:
		d.paused = !d.paused
	case hal.KeyTab:
		d.overlay = !d.overlay
	case hal.KeyF1:
		d.r.Mode = (d.r.Mode + 1) % 3
	case hal.KeyF2:
		d.r.Filter ^= 1
	case hal.KeyF3:
		d.r.Wrap ^= 1
	case hal.KeyF4:
		d.s.Camera.Type ^= 1
	case hal.KeyF5:
		d.r.Depth = !d.r.Depth
	case hal.KeyF6:
		d.r.Texturing = !d.r.Texturing
	case hal.KeyF12:
		path := d.cfg.Snapshot
		if path == "" {
			path = defaultSnapshot
		}
		return d.saveSnapshot(path)
	default:
		return nil
	}
	d.orbit.Apply(&d.s.Camera)
	d.log.Debug("setting changed", "mode", d.r.Mode.String(), "settings", d.modeLine())
	return nil
}

func (d *demo) saveSnapshot(path string) error {
	if err := snapshot.Save(path, d.frame.Color, d.cfg.SnapshotScale); err != nil {
		return err
	}
	d.log.Info("snapshot saved", "path", path, "frame", d.frames)
	return nil
}
