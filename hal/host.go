//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Config describes the host display.
type Config struct {
	Width  int
	Height int
	// Scale is the integer window zoom; values below 1 mean 1.
	Scale int
	Title string
	// Log receives Logger lines. Nil means stdout.
	Log io.Writer
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	t      *hostTime
	scale  int
	title  string
}

// New returns a host HAL implementation.
func New(cfg Config) (HAL, error) {
	return newHost(cfg)
}

func newHost(cfg Config) (*hostHAL, error) {
	fb, err := newHostFramebuffer(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %dx%d", err, cfg.Width, cfg.Height)
	}
	w := cfg.Log
	if w == nil {
		w = os.Stdout
	}
	scale := cfg.Scale
	if scale < 1 {
		scale = 1
	}
	return &hostHAL{
		logger: &hostLogger{w: w},
		fb:     fb,
		kbd:    newHostKeyboard(),
		t:      newHostTime(),
		scale:  scale,
		title:  cfg.Title,
	}, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
