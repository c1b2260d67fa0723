package quarkgl

import "github.com/chewxy/math32"

// maxPitch keeps the orbit off the poles, where the view basis flips.
const maxPitch = math32.Pi/2 - 0.01

// OrbitController moves a camera on a sphere around a target point.
// It does not depend on any input system.
type OrbitController struct {
	Target Vec3
	Yaw    float32
	Pitch  float32
	Radius float32

	MinRadius float32
	MaxRadius float32
}

// Apply positions cam on the orbit and aims it at the target.
func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = 3
	}
	r = c.clampRadius(r)

	m := Mat4Mul(Mat4RotateY(c.Yaw), Mat4RotateX(-c.Pitch))
	p := Mat4MulV4(m, V3(0, 0, r).Point())

	cam.Position = c.Target.Add(p.XYZ())
	cam.Target = c.Target
	cam.Up = V3(0, 1, 0)
}

// Rotate turns the orbit. Pitch is kept short of straight up or down.
func (c *OrbitController) Rotate(deltaYaw, deltaPitch float32) {
	c.Yaw = math32.Mod(c.Yaw+deltaYaw, 2*math32.Pi)
	c.Pitch = min(max(c.Pitch+deltaPitch, -maxPitch), maxPitch)
}

func (c *OrbitController) Zoom(delta float32) { c.Radius = c.clampRadius(c.Radius + delta) }

// Pan moves the target in the camera's screen plane: dx to the right, dy
// up, both in world units.
func (c *OrbitController) Pan(dx, dy float32) {
	m := Mat4RotateY(c.Yaw)
	right := Mat4MulDir(m, V3(1, 0, 0))
	c.Target = c.Target.Add(right.Mul(dx)).Add(V3(0, dy, 0))
}

func (c *OrbitController) clampRadius(r float32) float32 {
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}
	return r
}
