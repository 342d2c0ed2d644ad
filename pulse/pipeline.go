package pulse

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/cubes/scene"
)

const depthFormat = wgpu.TextureFormatDepth32Float

var vertexBufferLayout = wgpu.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(scene.Vertex{})),
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{
			// position
			Format:         wgpu.VertexFormatFloat32x3,
			Offset:         0,
			ShaderLocation: 0,
		},
		{
			// uv
			Format:         wgpu.VertexFormatFloat32x2,
			Offset:         uint64(unsafe.Offsetof(scene.Vertex{}.TexCoords)),
			ShaderLocation: 1,
		},
	},
}

// the model matrix takes four vertex slots, one per column
var instanceBufferLayout = wgpu.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(scene.InstanceRaw{})),
	StepMode:    wgpu.VertexStepModeInstance,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 5},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 4 * 4, ShaderLocation: 6},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 8 * 4, ShaderLocation: 7},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 12 * 4, ShaderLocation: 8},
	},
}

func createTextureBindGroupLayout(dev *wgpu.Device) (*wgpu.BindGroupLayout, error) {
	return dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "TextureBindGroupLayout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					Multisampled:  false,
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
}

func createCameraBindGroupLayout(dev *wgpu.Device) (*wgpu.BindGroupLayout, error) {
	return dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "CameraBindGroupLayout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: false,
					MinBindingSize:   0,
				},
			},
		},
	})
}

func createRenderPipeline(ctx *GraphicsContext, shader *wgpu.ShaderModule) (*wgpu.RenderPipeline, error) {
	pipeline, err := ctx.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Cubes",
		Layout: ctx.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: vertexEntryPoint,
			Buffers: []wgpu.VertexBufferLayout{
				vertexBufferLayout,
				instanceBufferLayout,
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    ctx.format,
					Blend:     &wgpu.BlendStateReplace,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cullModeOf(ctx.opts.Mesh),
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunctionAlways,
				FailOp:      wgpu.StencilOperationKeep,
				DepthFailOp: wgpu.StencilOperationKeep,
				PassOp:      wgpu.StencilOperationKeep,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunctionAlways,
				FailOp:      wgpu.StencilOperationKeep,
				DepthFailOp: wgpu.StencilOperationKeep,
				PassOp:      wgpu.StencilOperationKeep,
			},
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}

	return pipeline, nil
}

// cullModeOf culls back faces only for meshes that never show them.
func cullModeOf(mesh scene.Mesh) wgpu.CullMode {
	if mesh.Closed {
		return wgpu.CullModeBack
	}

	return wgpu.CullModeNone
}
