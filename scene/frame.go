package scene

import (
	"math/rand/v2"
)

// FrameState is the part of a frame that is computed on the cpu: the
// camera and the instance table, advanced once per rendered frame.
type FrameState struct {
	Camera    Camera
	Instances *InstanceTable

	// number of calls to Advance
	Frames uint64

	uniform CameraUniform
}

func NewFrameState(grid GridOptions, source rand.Source) *FrameState {
	return &FrameState{
		Camera:    DefaultCamera(),
		Instances: NewInstanceTable(grid, source),
		uniform:   NewCameraUniform(),
	}
}

// Advance prepares the next frame for a target of width x height pixels.
// The aspect ratio follows the target, a zero sized target keeps the
// previous one. The camera uniform is computed before the instances move.
// Both results are reused by the next call.
func (f *FrameState) Advance(width, height uint32) (*CameraUniform, []InstanceRaw) {
	if width > 0 && height > 0 {
		f.Camera.SetAspectRatio(float32(width) / float32(height))
	}

	f.uniform.Update(&f.Camera)

	f.Instances.Update()
	f.Frames++

	return &f.uniform, f.Instances.Raw()
}
