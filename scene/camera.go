package scene

import (
	"github.com/oliverbestmann/cubes/glm"
)

// DepthRemap maps the depth range [-1, 1] of an OpenGL style projection
// into the range [0, 1] expected by webgpu.
var DepthRemap = glm.Mat4f{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

type Camera struct {
	Eye    glm.Vec3f
	Target glm.Vec3f
	Up     glm.Vec3f

	// vertical field of view in degrees
	FovY float32

	Aspect float32
	Near   float32
	Far    float32
}

func DefaultCamera() Camera {
	return Camera{
		Eye:    glm.Vec3f{0, 8, 15},
		Target: glm.Vec3f{0, 0, 0},
		Up:     glm.Vec3f{0, 1, 0},
		FovY:   45,
		Aspect: 1,
		Near:   0.1,
		Far:    100,
	}
}

// SetAspectRatio only stores the aspect ratio, the matrices are
// computed on the next call to ViewProjection.
func (c *Camera) SetAspectRatio(aspect float32) {
	c.Aspect = aspect
}

func (c *Camera) View() glm.Mat4f {
	return glm.LookAt(c.Eye, c.Target, c.Up)
}

func (c *Camera) Projection() glm.Mat4f {
	return glm.Perspective(glm.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() glm.Mat4f {
	return DepthRemap.Mul(c.Projection()).Mul(c.View())
}

// CameraUniform mirrors the uniform buffer of the shader.
type CameraUniform struct {
	ViewProj glm.Mat4f
}

func NewCameraUniform() CameraUniform {
	return CameraUniform{ViewProj: glm.IdentityMat4[float32]()}
}

func (u *CameraUniform) Update(camera *Camera) {
	u.ViewProj = camera.ViewProjection()
}
