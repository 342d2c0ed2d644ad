package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/cubes/lifecycle"
	"github.com/oliverbestmann/cubes/scene"
)

// Scene renders the instanced mesh. It implements lifecycle.Scene.
type Scene struct {
	ctx *GraphicsContext

	geometry       *GeometryBuffers
	instanceBuffer *InstanceBuffer
	state          *scene.FrameState
}

func (ctx *GraphicsContext) NewScene() (lifecycle.Scene, error) {
	return NewScene(ctx)
}

func NewScene(ctx *GraphicsContext) (s *Scene, err error) {
	geometry, err := NewGeometryBuffers(ctx, ctx.opts.Mesh)
	if err != nil {
		return nil, err
	}

	geometryGuard := NewReleaseGuard(geometry)
	defer geometryGuard.Release()

	state := scene.NewFrameState(ctx.opts.Grid, ctx.opts.Random)

	instanceBuffer, err := NewInstanceBuffer(ctx, state.Instances.Raw())
	if err != nil {
		return nil, err
	}

	geometryGuard.Keep()

	slog.Debug("Scene created",
		slog.String("context", ctx.ID.String()),
		slog.Int("instances", state.Instances.Len()),
		slog.Int("indices", int(geometry.indexCount)),
	)

	return &Scene{
		ctx:            ctx,
		geometry:       geometry,
		instanceBuffer: instanceBuffer,
		state:          state,
	}, nil
}

// advance moves the cpu state to the next frame. Sizes are taken from the
// acquired frame, not from the surface configuration.
func (s *Scene) advance(frame lifecycle.Frame) (width, height uint32, uniform *scene.CameraUniform, raw []scene.InstanceRaw) {
	width, height = frame.Size()
	uniform, raw = s.state.Advance(width, height)
	return width, height, uniform, raw
}

// Render draws a single frame into the given frame. It does not present
// the frame.
func (s *Scene) Render(frame lifecycle.Frame) error {
	target, ok := frame.(*Frame)
	if !ok {
		return fmt.Errorf("unexpected frame type %T", frame)
	}

	width, height, uniform, raw := s.advance(target)

	if err := s.ctx.camera.Write(s.ctx.Queue, uniform); err != nil {
		return err
	}

	if err := s.instanceBuffer.Write(s.ctx.Queue, raw); err != nil {
		return err
	}

	depth, err := NewDepthTexture(s.ctx, width, height)
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}

	defer depth.Release()

	enc, err := s.ctx.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "Render",
	})

	if err != nil {
		return err
	}

	defer enc.Release()

	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Render",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target.View(),
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: s.ctx.opts.ClearColor.ToWGPU(),
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depth.View(),
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	passGuard := NewReleaseGuard(pass)
	defer passGuard.Release()

	pass.SetPipeline(s.ctx.pipeline)
	pass.SetBindGroup(0, s.ctx.texture.bindGroup, nil)
	pass.SetBindGroup(1, s.ctx.camera.bindGroup, nil)
	pass.SetVertexBuffer(0, s.geometry.vertices, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, s.instanceBuffer.buffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(s.geometry.indices, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(s.geometry.indexCount, uint32(len(raw)), 0, 0, 0)

	if err := pass.End(); err != nil {
		return err
	}

	passGuard.Release()

	// encode into a command buffer
	buf, err := enc.Finish(&wgpu.CommandBufferDescriptor{Label: "Render"})
	if err != nil {
		return err
	}

	defer buf.Release()

	s.ctx.Queue.Submit(buf)

	return nil
}

func (s *Scene) Release() {
	s.instanceBuffer.Release()
	s.geometry.Release()
}
