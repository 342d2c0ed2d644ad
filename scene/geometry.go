package scene

import (
	"github.com/oliverbestmann/cubes/glm"
)

// Vertex is the per vertex input of the shader. The layout must match
// the vertex buffer layout in pulse.
type Vertex struct {
	Position  [3]float32
	TexCoords [2]float32
}

// Mesh holds static geometry. Indices are 16 bit and counter clockwise
// triangles are front facing.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16

	// Closed is set if the back faces of the mesh are never visible.
	Closed bool
}

func (m Mesh) IndexCount() uint32 {
	return uint32(len(m.Indices))
}

type face struct {
	normal, u, v glm.Vec3f
}

// u x v equals the normal for every face, which makes the corner order
// below counter clockwise when looking at the face from outside.
var cubeFaces = [6]face{
	{normal: glm.Vec3f{1, 0, 0}, u: glm.Vec3f{0, 0, -1}, v: glm.Vec3f{0, 1, 0}},
	{normal: glm.Vec3f{-1, 0, 0}, u: glm.Vec3f{0, 0, 1}, v: glm.Vec3f{0, 1, 0}},
	{normal: glm.Vec3f{0, 1, 0}, u: glm.Vec3f{1, 0, 0}, v: glm.Vec3f{0, 0, -1}},
	{normal: glm.Vec3f{0, -1, 0}, u: glm.Vec3f{1, 0, 0}, v: glm.Vec3f{0, 0, 1}},
	{normal: glm.Vec3f{0, 0, 1}, u: glm.Vec3f{1, 0, 0}, v: glm.Vec3f{0, 1, 0}},
	{normal: glm.Vec3f{0, 0, -1}, u: glm.Vec3f{-1, 0, 0}, v: glm.Vec3f{0, 1, 0}},
}

// Cube returns an axis aligned cube centered at the origin with the given
// edge length. Every face has its own four vertices so that the texture is
// mapped onto each face individually.
func Cube(size float32) Mesh {
	half := size * 0.5

	corners := [4]struct {
		su, sv float32
		uv     [2]float32
	}{
		{-1, -1, [2]float32{0, 1}},
		{1, -1, [2]float32{1, 1}},
		{1, 1, [2]float32{1, 0}},
		{-1, 1, [2]float32{0, 0}},
	}

	mesh := Mesh{Closed: true}

	for _, f := range cubeFaces {
		base := uint16(len(mesh.Vertices))

		for _, corner := range corners {
			pos := f.normal.
				Add(f.u.MulScalar(corner.su)).
				Add(f.v.MulScalar(corner.sv)).
				MulScalar(half)

			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position:  pos,
				TexCoords: corner.uv,
			})
		}

		mesh.Indices = append(mesh.Indices,
			base+0, base+1, base+2,
			base+0, base+2, base+3,
		)
	}

	return mesh
}

// Pentagon returns the flat five sided mesh of the first version of the demo.
// It is single sided and seen from behind while it rotates.
func Pentagon() Mesh {
	return Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-0.0868241, 0.49240386, 0.0}, TexCoords: [2]float32{0.4131759, 0.99240386}},
			{Position: [3]float32{-0.49513406, 0.06958647, 0.0}, TexCoords: [2]float32{0.0048659444, 0.56958647}},
			{Position: [3]float32{-0.21918549, -0.44939706, 0.0}, TexCoords: [2]float32{0.28081453, 0.05060294}},
			{Position: [3]float32{0.35966998, -0.3473291, 0.0}, TexCoords: [2]float32{0.85967, 0.1526709}},
			{Position: [3]float32{0.44147372, 0.2347359, 0.0}, TexCoords: [2]float32{0.9414737, 0.7347359}},
		},
		Indices: []uint16{0, 1, 4, 1, 2, 4, 2, 3, 4},
	}
}
