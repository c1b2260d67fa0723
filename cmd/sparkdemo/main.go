// Command sparkdemo renders a spinning textured torus with the software
// rasterizer, in a desktop window or headless.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"sparkgfx/hal"
	"sparkgfx/internal/config"
	"sparkgfx/sparkos/quarkgl"
)

func main() {
	var (
		flags       config.Flags
		cfgPath     = flag.String("config", "", "TOML config file.")
		verbose     = flag.Bool("v", false, "Debug logging.")
		printConfig = flag.Bool("print-config", false, "Print the resolved config and exit.")
	)
	flag.IntVar(&flags.Width, "width", 0, "Framebuffer width (default 320).")
	flag.IntVar(&flags.Height, "height", 0, "Framebuffer height (default 320).")
	flag.IntVar(&flags.Scale, "scale", 0, "Window zoom (default 2).")
	flag.BoolVar(&flags.Headless, "headless", false, "Run without a window.")
	flag.IntVar(&flags.Frames, "frames", 0, "Frames to render in headless mode (default 120).")
	flag.IntVar(&flags.Workers, "workers", 0, "Rasterizer goroutines.")
	flag.StringVar(&flags.Texture, "texture", "", "Texture image (png|jpeg|bmp|tga). Empty uses a checkerboard.")
	flag.StringVar(&flags.Filter, "filter", "", "nearest|bilinear.")
	flag.StringVar(&flags.Shading, "shading", "", "flat|gouraud|wireframe.")
	flag.StringVar(&flags.Projection, "projection", "", "perspective|ortho.")
	flag.StringVar(&flags.Snapshot, "snapshot", "", "WebP path written after the last headless frame (F12 in a window).")
	flag.Parse()

	var cfg config.Config
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fatalf("%v", err)
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
	if *printConfig {
		b, err := cfg.Marshal()
		if err != nil {
			fatalf("%v", err)
		}
		os.Stdout.Write(b)
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	if err := run(cfg, level); err != nil {
		fatalf("%v", err)
	}
}

func run(cfg config.Config, level slog.Level) error {
	hcfg := hal.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Scale:  cfg.Scale,
		Title:  "sparkdemo",
		Log:    os.Stderr,
	}
	newApp := func(h hal.HAL) (func() error, error) {
		log := slog.New(slog.NewTextHandler(lineWriter{h.Logger()}, &slog.HandlerOptions{Level: level}))
		quarkgl.SetLogger(log)
		d, err := newDemo(h, cfg, log)
		if err != nil {
			return nil, err
		}
		log.Info("sparkdemo started", "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
			"workers", cfg.Workers, "headless", cfg.Headless)
		return d.step, nil
	}

	if !cfg.Headless {
		return hal.RunWindow(hcfg, newApp)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := hal.RunHeadless(ctx, hcfg, hal.HeadlessConfig{Hz: cfg.Hz, Ticks: uint64(cfg.Frames)}, newApp)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// lineWriter feeds slog output to a hal line logger.
type lineWriter struct {
	l hal.Logger
}

func (w lineWriter) Write(p []byte) (int, error) {
	n := len(p)
	if n > 0 && p[n-1] == '\n' {
		p = p[:n-1]
	}
	w.l.WriteLineBytes(p)
	return n, nil
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
