package scene

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/oliverbestmann/cubes/glm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridOptions(perRow int) GridOptions {
	opts := DefaultGridOptions()
	opts.PerRow = perRow
	return opts
}

// sameRotation compares two unit quaternions, q and -q describe the same rotation.
func sameRotation(t *testing.T, expected, actual glm.Quatf) {
	t.Helper()
	assert.InDelta(t, 1, math.Abs(float64(expected.Dot(actual))), 1e-4, "expected %v, got %v", expected, actual)
}

func TestInstanceTableSize(t *testing.T) {
	for perRow := 1; perRow <= 12; perRow++ {
		table := NewInstanceTable(gridOptions(perRow), rand.NewPCG(1, 2))

		assert.Equal(t, perRow*perRow, table.Len())
		assert.Len(t, table.Raw(), perRow*perRow)
	}

	assert.Equal(t, 0, NewInstanceTable(gridOptions(0), nil).Len())
}

func TestInstanceTableLayout(t *testing.T) {
	table := NewInstanceTable(DefaultGridOptions(), rand.NewPCG(1, 2))

	instances := table.Instances()
	require.Len(t, instances, 100)

	// first instance is at the most negative corner
	assert.Equal(t, glm.Vec3f{-10, 0, -10}, instances[0].Position)

	// x varies fastest
	assert.Equal(t, glm.Vec3f{-8, 0, -10}, instances[1].Position)
	assert.Equal(t, glm.Vec3f{-10, 0, -8}, instances[10].Position)

	var atOrigin int

	for _, instance := range instances {
		assert.Equal(t, float32(20), instance.Speed)
		assert.InDelta(t, 1, instance.Axis.Length(), 1e-5)

		if instance.Position.IsZero() {
			atOrigin++
			assert.Equal(t, glm.IdentityQuaternion[float32](), instance.Rotation)
			continue
		}

		expected := glm.QuaternionFromAxisAngle(instance.Position.Normalize(), glm.DegToRad[float32](45))
		sameRotation(t, expected, instance.Rotation)
		assert.InDelta(t, math.Pi/4, float64(instance.Rotation.Angle()), 1e-4)
	}

	assert.Equal(t, 1, atOrigin)
}

func TestInstanceTableOddGrid(t *testing.T) {
	// with an odd number of instances per row no instance lands on the origin
	table := NewInstanceTable(gridOptions(3), rand.NewPCG(1, 2))

	for _, instance := range table.Instances() {
		assert.False(t, instance.Position.IsZero())
		assert.InDelta(t, math.Pi/4, float64(instance.Rotation.Angle()), 1e-4)
	}
}

func TestInstanceTableSeeded(t *testing.T) {
	first := NewInstanceTable(DefaultGridOptions(), rand.NewPCG(7, 7))
	second := NewInstanceTable(DefaultGridOptions(), rand.NewPCG(7, 7))
	other := NewInstanceTable(DefaultGridOptions(), rand.NewPCG(8, 8))

	assert.Equal(t, first.Instances(), second.Instances())
	assert.NotEqual(t, first.Instances(), other.Instances())
}

func TestInstanceTableUpdate(t *testing.T) {
	table := NewInstanceTable(gridOptions(4), rand.NewPCG(3, 4))

	initial := append([]Instance(nil), table.Instances()...)

	const frames = 7
	for range frames {
		table.Update()
		require.Equal(t, 16, table.Len())
	}

	for idx, instance := range table.Instances() {
		start := initial[idx]

		// k updates equal a single rotation by k times the speed around the same axis
		deltaK := glm.QuaternionFromAxisAngle(start.Axis, glm.DegToRad(start.Speed*frames))
		sameRotation(t, deltaK.Mul(start.Rotation), instance.Rotation)

		// position and axis never change
		assert.Equal(t, start.Position, instance.Position)
		assert.Equal(t, start.Axis, instance.Axis)

		assert.InDelta(t, 1, instance.Rotation.Length(), 1e-5)
	}
}

func TestInstanceTableUpdateIsWorldSpace(t *testing.T) {
	table := NewInstanceTable(gridOptions(2), rand.NewPCG(5, 6))
	start := table.Instances()[0]

	table.Update()

	worldSpace := start.Delta().Mul(start.Rotation)
	sameRotation(t, worldSpace, table.Instances()[0].Rotation)
}

func TestInstanceTableRaw(t *testing.T) {
	table := NewInstanceTable(gridOptions(3), rand.NewPCG(1, 1))
	table.Update()

	for idx, instance := range table.Instances() {
		model := table.Raw()[idx].Model
		assert.Equal(t, instance.Model(), model)

		// translation lives in the last column
		assert.Equal(t, instance.Position.Extend(1), model.Column(3))
	}
}
