package quarkgl

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestOrbitApply(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float32
		want       Vec3
	}{
		{"front", 0, 0, V3(0, 0, 3)},
		{"right", math32.Pi / 2, 0, V3(3, 0, 0)},
		{"above", 0, math32.Pi / 6, V3(0, 1.5, 3*math32.Cos(math32.Pi/6))},
	}
	for _, tc := range tests {
		c := OrbitController{Yaw: tc.yaw, Pitch: tc.pitch, Radius: 3}
		var cam Camera
		c.Apply(&cam)
		if !nearV3(cam.Position, tc.want) {
			t.Fatalf("%s: position %+v, want %+v", tc.name, cam.Position, tc.want)
		}
		if cam.Target != (Vec3{}) || cam.Up != V3(0, 1, 0) {
			t.Fatalf("%s: target %+v up %+v", tc.name, cam.Target, cam.Up)
		}
	}
}

func TestOrbitLimits(t *testing.T) {
	c := OrbitController{Radius: 3, MinRadius: 1, MaxRadius: 5}
	c.Zoom(10)
	if c.Radius != 5 {
		t.Fatalf("radius = %v, want 5", c.Radius)
	}
	c.Zoom(-10)
	if c.Radius != 1 {
		t.Fatalf("radius = %v, want 1", c.Radius)
	}
	c.Rotate(0, 4)
	if c.Pitch != maxPitch {
		t.Fatalf("pitch = %v, want %v", c.Pitch, maxPitch)
	}
	c.Rotate(0, -8)
	if c.Pitch != -maxPitch {
		t.Fatalf("pitch = %v, want %v", c.Pitch, -maxPitch)
	}
	c.Rotate(5*math32.Pi, 0)
	if c.Yaw < -2*math32.Pi || c.Yaw > 2*math32.Pi {
		t.Fatalf("yaw = %v not wrapped", c.Yaw)
	}
}

func TestOrbitPan(t *testing.T) {
	c := OrbitController{Yaw: math32.Pi / 2, Radius: 3}
	c.Pan(1, 2)
	// Facing -X from +X, screen right is -Z.
	if !nearV3(c.Target, V3(0, 2, -1)) {
		t.Fatalf("target = %+v", c.Target)
	}
}
