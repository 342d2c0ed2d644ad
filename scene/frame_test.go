package scene

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameStateAspectFollowsTarget(t *testing.T) {
	state := NewFrameState(DefaultGridOptions(), rand.NewPCG(1, 1))

	state.Advance(1000, 600)
	assert.InDelta(t, 1000.0/600.0, state.Camera.Aspect, 1e-6)

	uniform, _ := state.Advance(800, 600)
	assert.InDelta(t, 4.0/3.0, state.Camera.Aspect, 1e-6)

	expected := DefaultCamera()
	expected.SetAspectRatio(4.0 / 3.0)
	assertMat4InDelta(t, expected.ViewProjection(), uniform.ViewProj, 1e-5)
}

func TestFrameStateZeroSizeKeepsAspect(t *testing.T) {
	state := NewFrameState(DefaultGridOptions(), rand.NewPCG(1, 1))

	state.Advance(800, 600)
	state.Advance(0, 600)
	state.Advance(800, 0)

	assert.InDelta(t, 4.0/3.0, state.Camera.Aspect, 1e-6)
	assert.EqualValues(t, 3, state.Frames)
}

func TestFrameStateUpdatesInstancesOnce(t *testing.T) {
	state := NewFrameState(DefaultGridOptions(), rand.NewPCG(3, 4))
	reference := NewInstanceTable(DefaultGridOptions(), rand.NewPCG(3, 4))

	_, raw := state.Advance(800, 600)
	reference.Update()

	require.Len(t, raw, reference.Len())
	assert.EqualValues(t, 1, state.Frames)

	for idx := range raw {
		assertMat4InDelta(t, reference.Raw()[idx].Model, raw[idx].Model, 1e-6)
	}
}
