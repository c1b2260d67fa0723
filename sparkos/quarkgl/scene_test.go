package quarkgl

import "testing"

func TestSceneSlots(t *testing.T) {
	s := CreateScene(2)
	a := s.AddMesh(Cube(1))
	b := s.AddMesh(Cube(1))
	if a != 0 || b != 1 {
		t.Fatalf("ids = %d, %d", a, b)
	}
	if id := s.AddMesh(Cube(1)); id != -1 {
		t.Fatalf("full scene returned id %d", id)
	}

	m := s.Mesh(a)
	if m.Transform != Mat4Identity() || m.Material.BaseColor != Hex(0xCCCCCC) || !m.Enabled {
		t.Fatalf("defaults not applied: %+v", m.Material)
	}

	s.SetMeshEnabled(b, false)
	tr := Mat4Translate(V3(1, 0, 0))
	s.UpdateMeshTransform(b, tr)
	var seen []int
	s.eachMesh(func(m *Mesh) { seen = append(seen, len(m.Indices)) })
	if len(seen) != 1 {
		t.Fatalf("eachMesh visited %d meshes, want 1", len(seen))
	}
	if s.Mesh(b).Transform != tr {
		t.Fatalf("transform not updated")
	}

	s.RemoveMesh(a)
	if s.Mesh(a) != nil {
		t.Fatalf("removed mesh still present")
	}
	if id := s.AddMesh(Cube(1)); id != a {
		t.Fatalf("freed slot not reused: %d", id)
	}

	var nilScene *Scene
	if nilScene.AddMesh(Cube(1)) != -1 || nilScene.Mesh(0) != nil {
		t.Fatalf("nil scene accepted a mesh")
	}
	nilScene.SetMeshEnabled(0, true)
}

func TestCameraProjectionDefaults(t *testing.T) {
	c := Camera{Near: 1, Far: 10}
	if c.Projection(1) != Mat4Perspective(1, 1, 1, 10) {
		t.Fatalf("zero FOV not defaulted")
	}
	c.Type = CameraOrtho
	if c.Projection(2) != Mat4Ortho(-2, 2, -1, 1, 1, 10) {
		t.Fatalf("zero ortho size not defaulted")
	}
}
