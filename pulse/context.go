package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// GraphicsContext holds the device and all resources that do not depend on
// the size of the surface. It implements lifecycle.Context.
type GraphicsContext struct {
	*wgpu.Device
	*wgpu.Queue

	// identifies the context in logs
	ID uuid.UUID

	adapter *wgpu.Adapter
	format  wgpu.TextureFormat
	opts    BackendOptions

	samplers *samplerCache

	textureLayout  *wgpu.BindGroupLayout
	cameraLayout   *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout
	pipeline       *wgpu.RenderPipeline

	texture *DiffuseTexture
	camera  *CameraBuffer
}

// NewGraphicsContext requests a device from the adapter and builds the
// render pipeline for the given surface format. The adapter stays owned by
// the caller.
func NewGraphicsContext(adapter *wgpu.Adapter, format wgpu.TextureFormat, opts BackendOptions) (ctx *GraphicsContext, err error) {
	defer func() {
		if err != nil && ctx != nil {
			ctx.Release()
			ctx = nil
		}
	}()

	ctx = &GraphicsContext{
		ID:       uuid.New(),
		adapter:  adapter,
		format:   format,
		opts:     opts,
		samplers: newSamplerCache(),
	}

	slog.Info("Create graphics context",
		slog.String("context", ctx.ID.String()),
		slog.Any("format", format),
	)

	// get a Device with the default settings
	ctx.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return ctx, fmt.Errorf("request device: %w", err)
	}

	ctx.Queue = ctx.Device.GetQueue()

	shader, err := createShaderModule(ctx)
	if err != nil {
		return ctx, err
	}

	defer shader.Release()

	ctx.textureLayout, err = createTextureBindGroupLayout(ctx.Device)
	if err != nil {
		return ctx, fmt.Errorf("create texture bind group layout: %w", err)
	}

	ctx.cameraLayout, err = createCameraBindGroupLayout(ctx.Device)
	if err != nil {
		return ctx, fmt.Errorf("create camera bind group layout: %w", err)
	}

	ctx.pipelineLayout, err = ctx.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: "Cubes",
		BindGroupLayouts: []*wgpu.BindGroupLayout{
			ctx.textureLayout,
			ctx.cameraLayout,
		},
	})
	if err != nil {
		return ctx, fmt.Errorf("create pipeline layout: %w", err)
	}

	ctx.pipeline, err = createRenderPipeline(ctx, shader)
	if err != nil {
		return ctx, err
	}

	ctx.texture, err = newDiffuseTexture(ctx, cardImage)
	if err != nil {
		return ctx, fmt.Errorf("load texture: %w", err)
	}

	ctx.camera, err = newCameraBuffer(ctx)
	if err != nil {
		return ctx, err
	}

	return ctx, nil
}

func (ctx *GraphicsContext) Release() {
	slog.Info("Release graphics context", slog.String("context", ctx.ID.String()))

	if ctx.camera != nil {
		ctx.camera.Release()
		ctx.camera = nil
	}

	if ctx.texture != nil {
		ctx.texture.Release()
		ctx.texture = nil
	}

	if ctx.pipeline != nil {
		ctx.pipeline.Release()
		ctx.pipeline = nil
	}

	if ctx.pipelineLayout != nil {
		ctx.pipelineLayout.Release()
		ctx.pipelineLayout = nil
	}

	if ctx.cameraLayout != nil {
		ctx.cameraLayout.Release()
		ctx.cameraLayout = nil
	}

	if ctx.textureLayout != nil {
		ctx.textureLayout.Release()
		ctx.textureLayout = nil
	}

	// releases all cached samplers
	ctx.samplers.Purge()

	if ctx.Queue != nil {
		ctx.Queue.Release()
		ctx.Queue = nil
	}

	if ctx.Device != nil {
		ctx.Device.Release()
		ctx.Device = nil
	}
}
