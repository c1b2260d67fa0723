package quarkgl

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"sparkgfx/sparkos/raster"
)

func TestLoggerDefaultSilent(t *testing.T) {
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if Logger().Enabled(context.Background(), level) {
			t.Fatalf("default logger enabled for %v", level)
		}
	}
}

func TestRenderWarnsOnDisabledVariant(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	r := NewRenderer()
	r.Enabled = raster.ShaderAll &^ raster.ShaderZBuffer
	render(t, r, newFrame(t, 16, 16), cubeScene(Hex(0xFFFFFF)))
	if !strings.Contains(buf.String(), "shader variant not enabled") || !strings.Contains(buf.String(), "triangles=12") {
		t.Fatalf("log = %q", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("SetLogger(nil) left logging on")
	}
}

func TestRenderLogsGuardBandClip(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	render(t, NewRenderer(), newFrame(t, 64, 64), farVertexScene())
	out := buf.String()
	if !strings.Contains(out, "triangle clipped to guard band") || !strings.Contains(out, "guarded=1") {
		t.Fatalf("log = %q", out)
	}
}
