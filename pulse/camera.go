package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/cubes/scene"
)

// CameraBuffer is the uniform buffer of the camera, bound at index 1.
type CameraBuffer struct {
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

func newCameraBuffer(ctx *GraphicsContext) (*CameraBuffer, error) {
	uniform := scene.NewCameraUniform()

	buffer, err := ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "CameraBuffer",
		Contents: AsByteSlice(&uniform),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create camera buffer: %w", err)
	}

	bindGroup, err := ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "CameraBindGroup",
		Layout: ctx.cameraLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		buffer.Release()
		return nil, fmt.Errorf("create camera bind group: %w", err)
	}

	return &CameraBuffer{
		buffer:    buffer,
		bindGroup: bindGroup,
	}, nil
}

// Write uploads the uniform.
func (c *CameraBuffer) Write(queue *wgpu.Queue, uniform *scene.CameraUniform) error {
	if err := queue.WriteBuffer(c.buffer, 0, AsByteSlice(uniform)); err != nil {
		return fmt.Errorf("write camera buffer: %w", err)
	}

	return nil
}

func (c *CameraBuffer) Release() {
	c.bindGroup.Release()
	c.buffer.Release()
}
