//go:build !tinygo && cgo

package hal

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"sparkgfx/internal/buildinfo"
)

// RunWindow starts a desktop window that displays the presented framebuffer
// and forwards keyboard input. It blocks until the window closes or the step
// function returns ErrStop.
func RunWindow(cfg Config, newApp func(HAL) (func() error, error)) error {
	h, err := newHost(cfg)
	if err != nil {
		return err
	}
	step, err := newApp(h)
	if err != nil {
		return err
	}

	title := h.title
	if title == "" {
		title = "sparkgfx"
	}
	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle(title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*h.scale, h.fb.height*h.scale)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

type hostGame struct {
	h     *hostHAL
	pix   []byte
	fbImg *ebiten.Image
	shown uint64
	step  func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.t.stepWall()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrStop) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.pix = make([]byte, fb.width*fb.height*4)
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}
	if n := fb.snapshotRGBA(g.pix); n != g.shown {
		g.shown = n
		g.fbImg.WritePixels(g.pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
