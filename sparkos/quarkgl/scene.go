package quarkgl

import "sparkgfx/sparkos/raster"

// Material describes how a mesh is colored.
type Material struct {
	// BaseColor tints the mesh. With VertexColor set it is multiplied by
	// each vertex's color.
	BaseColor   Color
	VertexColor bool

	// Texture is sampled with the mesh's vertex UVs when the renderer has
	// texturing on. Wrapping needs power-of-two dimensions.
	Texture *raster.Surface[raster.RGB565]
}

// LightMode selects the lighting model.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is one ambient term plus one directional light.
type Light struct {
	Mode      LightMode
	Ambient   float32 // 0..1
	Dir       Vec3    // direction *towards* the scene
	DirAmount float32 // 0..1
}

// intensity returns the light reaching a surface with world normal n.
func (l Light) intensity(n Vec3) float32 {
	if l.Mode == LightOff {
		return 1
	}
	amb := Clamp01(l.Ambient)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(Normalize(n), ld.Mul(-1))
	if d < 0 {
		d = 0
	}
	return Clamp01(amb + d*Clamp01(l.DirAmount))
}

// CameraType selects camera projection.
type CameraType uint8

const (
	CameraPerspective CameraType = iota
	CameraOrtho
)

// Camera describes the viewing transform.
type Camera struct {
	Type CameraType

	Position Vec3
	Target   Vec3
	Up       Vec3

	// Perspective.
	FOVYRad float32

	// Orthographic (half-height).
	OrthoSize float32

	Near float32
	Far  float32
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect float32) Mat4 {
	if c.Type == CameraOrtho {
		size := c.OrthoSize
		if size == 0 {
			size = 1
		}
		right := size * aspect
		return Mat4Ortho(-right, right, -size, size, c.Near, c.Far)
	}
	fov := c.FOVYRad
	if fov == 0 {
		fov = 1
	}
	return Mat4Perspective(fov, aspect, c.Near, c.Far)
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    Vec3
	Normal Vec3 // zero means use the face normal
	UV     Vec2
	Color  Color
}

// Mesh is an indexed triangle list with an object transform.
type Mesh struct {
	Enabled bool

	Vertices []Vertex
	Indices  []uint16

	Transform Mat4
	Material  Material
}

// Scene holds a fixed number of mesh slots, a camera and a light.
type Scene struct {
	Camera Camera
	Light  Light

	meshes []Mesh
	alive  []bool
}

// CreateScene allocates a scene with room for maxMeshes meshes.
func CreateScene(maxMeshes int) *Scene {
	maxMeshes = max(maxMeshes, 0)
	return &Scene{
		Camera: Camera{
			Type:      CameraPerspective,
			Position:  V3(0, 0, 3),
			Up:        V3(0, 1, 0),
			FOVYRad:   1,
			Near:      0.05,
			Far:       100,
			OrthoSize: 1,
		},
		Light: Light{
			Mode:      LightAmbientDirectional,
			Ambient:   0.25,
			Dir:       Normalize(V3(1, -1, -1)),
			DirAmount: 0.75,
		},
		meshes: make([]Mesh, maxMeshes),
		alive:  make([]bool, maxMeshes),
	}
}

// AddMesh stores m in a free slot and returns its id, or -1 if the scene
// is full. A zero transform becomes the identity and a zero base color
// becomes light gray.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	for i := range s.meshes {
		if s.alive[i] {
			continue
		}
		if m.Transform == (Mat4{}) {
			m.Transform = Mat4Identity()
		}
		if m.Material.BaseColor == (Color{}) {
			m.Material.BaseColor = Hex(0xCCCCCC)
		}
		m.Enabled = true
		s.meshes[i] = m
		s.alive[i] = true
		return i
	}
	return -1
}

// Mesh returns the mesh with the given id, or nil.
func (s *Scene) Mesh(id int) *Mesh {
	if !s.valid(id) {
		return nil
	}
	return &s.meshes[id]
}

func (s *Scene) RemoveMesh(id int) {
	if s == nil || id < 0 || id >= len(s.meshes) {
		return
	}
	s.alive[id] = false
	s.meshes[id] = Mesh{}
}

func (s *Scene) SetMeshEnabled(id int, enabled bool) {
	if s.valid(id) {
		s.meshes[id].Enabled = enabled
	}
}

func (s *Scene) UpdateMeshTransform(id int, m Mat4) {
	if s.valid(id) {
		s.meshes[id].Transform = m
	}
}

func (s *Scene) valid(id int) bool {
	return s != nil && id >= 0 && id < len(s.meshes) && s.alive[id]
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.meshes {
		if s.alive[i] && s.meshes[i].Enabled {
			fn(&s.meshes[i])
		}
	}
}
