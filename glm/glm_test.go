package glm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func assertVec3InDelta(t *testing.T, expected, actual Vec3f, delta float64) {
	t.Helper()

	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d of %v", i, actual)
	}
}

func TestVec3(t *testing.T) {
	x := Vec3f{1, 0, 0}
	y := Vec3f{0, 1, 0}
	z := Vec3f{0, 0, 1}

	assert.Equal(t, z, x.Cross(y))
	assert.Equal(t, x, y.Cross(z))
	assert.Equal(t, float32(0), x.Dot(y))
	assert.Equal(t, Vec3f{1, 1, 0}, x.Add(y))
	assert.Equal(t, Vec3f{1, -1, 0}, x.Sub(y))

	assert.InDelta(t, 5, Vec3f{3, 4, 0}.Length(), tol)
	assertVec3InDelta(t, Vec3f{0.6, 0.8, 0}, Vec3f{3, 4, 0}.Normalize(), tol)

	assert.True(t, Vec3f{}.IsZero())
	assert.Equal(t, Vec3f{}, Vec3f{}.Normalize())
}

func TestMat4Identity(t *testing.T) {
	m := TranslationMat4[float32](1, 2, 3)

	assert.Equal(t, m, IdentityMat4[float32]().Mul(m))
	assert.Equal(t, m, m.Mul(IdentityMat4[float32]()))
	assert.Equal(t, Vec4f{1, 2, 3, 1}, m.Transform(Vec4f{0, 0, 0, 1}))
	assert.Equal(t, Vec4f{1, 2, 3, 1}, m.Column(3))
	assert.Equal(t, m, m.Transpose().Transpose())
}

func TestMat4Of(t *testing.T) {
	m := Mat4Of([4][4]float32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	})

	assert.Equal(t, Vec4f{5, 6, 7, 8}, m.Column(1))
	assert.Equal(t, float32(5), m[4])
}

func TestQuaternionAxisAngle(t *testing.T) {
	rot := QuaternionFromAxisAngle(Vec3f{0, 0, 1}, DegToRad[float32](90))

	assertVec3InDelta(t, Vec3f{0, 1, 0}, rot.Rotate(Vec3f{1, 0, 0}), tol)
	assert.InDelta(t, 1, rot.Length(), tol)
	assert.InDelta(t, math.Pi/2, float64(rot.Angle()), tol)
}

func TestQuaternionMulOrder(t *testing.T) {
	// rotate around z first, then around x
	first := QuaternionFromAxisAngle(Vec3f{0, 0, 1}, DegToRad[float32](90))
	second := QuaternionFromAxisAngle(Vec3f{1, 0, 0}, DegToRad[float32](90))

	combined := second.Mul(first)

	// x -> y (around z) -> z (around x)
	assertVec3InDelta(t, Vec3f{0, 0, 1}, combined.Rotate(Vec3f{1, 0, 0}), tol)
}

func TestMat4FromQuaternion(t *testing.T) {
	rot := QuaternionFromAxisAngle(Vec3f{0, 1, 0}.Normalize(), DegToRad[float32](90))
	m := Mat4FromQuaternion(rot)

	p := m.Transform(Vec4f{1, 0, 0, 1})
	assertVec3InDelta(t, rot.Rotate(Vec3f{1, 0, 0}), p.Truncate(), tol)
	assertVec3InDelta(t, Vec3f{0, 0, -1}, p.Truncate(), tol)

	assert.Equal(t, IdentityMat4[float32](), Mat4FromQuaternion(IdentityQuaternion[float32]()))
}

func TestLookAt(t *testing.T) {
	eye := Vec3f{0, 8, 15}
	view := LookAt(eye, Vec3f{}, Vec3f{0, 1, 0})

	// the eye maps to the origin of view space
	assertVec3InDelta(t, Vec3f{}, view.Transform(eye.Extend(1)).Truncate(), tol)

	// the target is straight ahead, looking down -z
	target := view.Transform(Vec4f{0, 0, 0, 1})
	assert.InDelta(t, 0, target[0], tol)
	assert.InDelta(t, 0, target[1], tol)
	assert.InDelta(t, -17, target[2], tol)
}

func TestPerspective(t *testing.T) {
	proj := Perspective[float32](DegToRad[float32](90), 1, 1, 10)

	near := proj.Transform(Vec4f{0, 0, -1, 1}).Project()
	far := proj.Transform(Vec4f{0, 0, -10, 1}).Project()

	assert.InDelta(t, -1, near[2], tol)
	assert.InDelta(t, 1, far[2], tol)

	// a 90 degree fov maps x == -z onto the edge of the screen
	edge := proj.Transform(Vec4f{5, 0, -5, 1}).Project()
	assert.InDelta(t, 1, edge[0], tol)
}

func TestDegToRad(t *testing.T) {
	assert.InDelta(t, math.Pi, float64(DegToRad[float32](180)), tol)
	assert.InDelta(t, 45, RadToDeg[float32](Rad(math.Pi/4)), tol)
}
