package pulse

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/cubes/scene"
)

// GeometryBuffers holds a mesh uploaded to the gpu. They never change
// after creation.
type GeometryBuffers struct {
	vertices   *wgpu.Buffer
	indices    *wgpu.Buffer
	indexCount uint32
}

func NewGeometryBuffers(ctx *GraphicsContext, mesh scene.Mesh) (*GeometryBuffers, error) {
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil, errors.New("mesh is empty")
	}

	vertices, err := ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "VertexBuffer",
		Contents: wgpu.ToBytes(mesh.Vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	indices, err := ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "IndexBuffer",
		Contents: wgpu.ToBytes(mesh.Indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		vertices.Release()
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	return &GeometryBuffers{
		vertices:   vertices,
		indices:    indices,
		indexCount: mesh.IndexCount(),
	}, nil
}

func (g *GeometryBuffers) Release() {
	g.indices.Release()
	g.vertices.Release()
}

// InstanceBuffer holds one model matrix per instance. The full buffer is
// rewritten every frame.
type InstanceBuffer struct {
	buffer *wgpu.Buffer
	count  int
}

func NewInstanceBuffer(ctx *GraphicsContext, raw []scene.InstanceRaw) (*InstanceBuffer, error) {
	// a buffer must not be empty
	contents := wgpu.ToBytes(raw)
	if len(raw) == 0 {
		contents = make([]byte, 64)
	}

	buffer, err := ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "InstanceBuffer",
		Contents: contents,
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create instance buffer: %w", err)
	}

	return &InstanceBuffer{buffer: buffer, count: len(raw)}, nil
}

func (b *InstanceBuffer) Write(queue *wgpu.Queue, raw []scene.InstanceRaw) error {
	if len(raw) != b.count {
		return fmt.Errorf("instance count changed from %d to %d", b.count, len(raw))
	}

	if len(raw) == 0 {
		return nil
	}

	if err := queue.WriteBuffer(b.buffer, 0, wgpu.ToBytes(raw)); err != nil {
		return fmt.Errorf("write instance buffer: %w", err)
	}

	return nil
}

func (b *InstanceBuffer) Release() {
	b.buffer.Release()
}
