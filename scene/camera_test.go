package scene

import (
	"testing"

	"github.com/oliverbestmann/cubes/glm"
	"github.com/stretchr/testify/assert"
)

func assertMat4InDelta(t *testing.T, expected, actual glm.Mat4f, delta float64) {
	t.Helper()

	for idx := range expected {
		assert.InDelta(t, expected[idx], actual[idx], delta, "element %d (column %d, row %d)", idx, idx/4, idx%4)
	}
}

func TestCameraViewProjection(t *testing.T) {
	camera := DefaultCamera()

	expected := glm.Mat4Of([4][4]float32{
		{2.4142136, 0, 0, 0},
		{0, 2.1301884, -0.4710593, -0.4705882},
		{0, -1.1361005, -0.8832362, -0.8823529},
		{0, 0, 16.9169169, 17.0},
	})

	assertMat4InDelta(t, expected, camera.ViewProjection(), 1e-4)
}

func TestCameraDepthRange(t *testing.T) {
	camera := DefaultCamera()
	viewProj := camera.ViewProjection()

	// points on the near and far plane straight ahead of the eye
	forward := camera.Target.Sub(camera.Eye).Normalize()
	near := camera.Eye.Add(forward.MulScalar(camera.Near))
	far := camera.Eye.Add(forward.MulScalar(camera.Far))

	assert.InDelta(t, 0, viewProj.Transform(near.Extend(1)).Project()[2], 1e-4)
	assert.InDelta(t, 1, viewProj.Transform(far.Extend(1)).Project()[2], 1e-4)

	// the target sits in the middle of the screen
	target := viewProj.Transform(camera.Target.Extend(1)).Project()
	assert.InDelta(t, 0, target[0], 1e-5)
	assert.InDelta(t, 0, target[1], 1e-5)
}

func TestCameraViewRoundTrip(t *testing.T) {
	camera := DefaultCamera()
	view := camera.View()

	// rows of the rotation part are the camera basis vectors
	right := glm.Vec3f{view[0], view[4], view[8]}
	up := glm.Vec3f{view[1], view[5], view[9]}
	back := glm.Vec3f{view[2], view[6], view[10]}
	translation := glm.Vec3f{view[12], view[13], view[14]}

	// eye = -R^T * t
	eye := right.MulScalar(translation[0]).
		Add(up.MulScalar(translation[1])).
		Add(back.MulScalar(translation[2])).
		MulScalar(-1)

	assertVec3InDelta(t, camera.Eye, eye, 1e-4)
	assertVec3InDelta(t, camera.Target.Sub(camera.Eye).Normalize(), back.MulScalar(-1), 1e-5)

	assert.InDelta(t, 0, right[1], 1e-6, "right vector stays horizontal")
	assert.Greater(t, up.Dot(camera.Up), float32(0))
}

func TestCameraSetAspectRatio(t *testing.T) {
	camera := DefaultCamera()
	before := camera.ViewProjection()

	camera.SetAspectRatio(2)

	expected := camera
	expected.Aspect = 2
	assert.Equal(t, expected, camera)

	// only the horizontal scale depends on the aspect ratio
	after := camera.ViewProjection()
	assert.InDelta(t, before[0]/2, after[0], 1e-6)

	for idx := 1; idx < len(before); idx++ {
		assert.Equal(t, before[idx], after[idx], "element %d", idx)
	}
}

func TestCameraUniform(t *testing.T) {
	uniform := NewCameraUniform()
	assert.Equal(t, glm.IdentityMat4[float32](), uniform.ViewProj)

	camera := DefaultCamera()
	uniform.Update(&camera)
	assert.Equal(t, camera.ViewProjection(), uniform.ViewProj)
}

func assertVec3InDelta(t *testing.T, expected, actual glm.Vec3f, delta float64) {
	t.Helper()

	for idx := range expected {
		assert.InDelta(t, expected[idx], actual[idx], delta, "component %d", idx)
	}
}
