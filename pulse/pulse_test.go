package pulse

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/cubes/lifecycle"
	"github.com/oliverbestmann/cubes/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShaderCompiles(t *testing.T) {
	require.NotEmpty(t, shaderSource)

	spirv, err := compileShader(shaderSource)
	require.NoError(t, err)

	// SPIR-V magic number, little endian
	magic := binary.LittleEndian.Uint32(spirv[:4])
	assert.Equal(t, uint32(0x07230203), magic)

	assert.NoError(t, ValidateShader(shaderSource))
}

func TestShaderRejectsGarbage(t *testing.T) {
	assert.Error(t, ValidateShader("fn vs_main( -> {"))
}

func TestShaderEntryPoints(t *testing.T) {
	assert.Contains(t, shaderSource, "fn "+vertexEntryPoint+"(")
	assert.Contains(t, shaderSource, "fn "+fragmentEntryPoint+"(")

	for _, attr := range instanceBufferLayout.Attributes {
		assert.Contains(t, shaderSource, "@location("+strconv.FormatUint(uint64(attr.ShaderLocation), 10)+")")
	}
}

func TestVertexLayouts(t *testing.T) {
	assert.Equal(t, uint64(20), vertexBufferLayout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, vertexBufferLayout.StepMode)
	assert.Equal(t, uint64(12), vertexBufferLayout.Attributes[1].Offset)

	assert.Equal(t, uint64(64), instanceBufferLayout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, instanceBufferLayout.StepMode)

	for idx, attr := range instanceBufferLayout.Attributes {
		assert.Equal(t, uint32(5+idx), attr.ShaderLocation)
		assert.Equal(t, uint64(16*idx), attr.Offset)
		assert.Equal(t, wgpu.VertexFormatFloat32x4, attr.Format)
	}
}

func TestCullMode(t *testing.T) {
	assert.Equal(t, wgpu.CullModeBack, cullModeOf(scene.Cube(1)))
	assert.Equal(t, wgpu.CullModeNone, cullModeOf(scene.Pentagon()))
}

func TestDecodeCardImage(t *testing.T) {
	img, err := DecodeImage(cardImage)
	require.NoError(t, err)

	assert.Equal(t, 128, img.Rect.Dx())
	assert.Equal(t, 128, img.Rect.Dy())
	assert.Equal(t, 4*128, img.Stride)

	// dark blue border around a white and red pattern
	assert.Equal(t, []uint8{40, 40, 160, 255}, img.Pix[0:4])

	offset := img.PixOffset(64, 64)
	assert.Equal(t, []uint8{250, 250, 250, 255}, img.Pix[offset:offset+4])
}

func TestDecodeImageInvalid(t *testing.T) {
	_, err := DecodeImage([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestColor(t *testing.T) {
	var zero Color
	assert.Equal(t, ColorWhite, zero)

	assert.Equal(t, wgpu.Color{R: 0, G: 0, B: 1, A: 1}, ColorBlue.ToWGPU())

	r, g, b, a := ColorLinearRGBA(0.25, 0.5, 0.75, 1).Components()
	assert.Equal(t, []float32{0.25, 0.5, 0.75, 1}, []float32{r, g, b, a})
}

func TestAsByteSlice(t *testing.T) {
	uniform := scene.NewCameraUniform()

	buf := AsByteSlice(&uniform)
	assert.Len(t, buf, 64)

	// 1.0 as a little endian float32
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, buf[0:4])
}

func TestDefaultBackendOptions(t *testing.T) {
	opts := DefaultBackendOptions()

	assert.True(t, opts.ValidateShader)
	assert.Equal(t, ColorBlue, opts.ClearColor)
	assert.Equal(t, scene.DefaultGridOptions(), opts.Grid)
	assert.Len(t, opts.Mesh.Vertices, 24)
}

type sizedFrame struct {
	width, height uint32
}

func (f sizedFrame) Size() (uint32, uint32) { return f.width, f.height }
func (f sizedFrame) Present() {}
func (f sizedFrame) Release() {}

func TestSceneAdvanceUsesFrameSize(t *testing.T) {
	s := &Scene{state: scene.NewFrameState(scene.DefaultGridOptions(), rand.NewPCG(1, 2))}

	// the surface was configured for 1000x600, the acquired frame is smaller
	s.state.Advance(1000, 600)

	width, height, uniform, raw := s.advance(sizedFrame{width: 800, height: 600})

	assert.Equal(t, uint32(800), width)
	assert.Equal(t, uint32(600), height)
	assert.InDelta(t, 4.0/3.0, s.state.Camera.Aspect, 1e-6)
	assert.Equal(t, s.state.Camera.ViewProjection(), uniform.ViewProj)
	assert.Len(t, raw, 100)
	assert.EqualValues(t, 2, s.state.Frames)
}

type sizedWindow struct {
	width, height uint32
}

func (w *sizedWindow) GetSize() (uint32, uint32) { return w.width, w.height }
func (w *sizedWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *sizedWindow) RequestRedraw() {}

func TestSurfaceOutdatedHeuristic(t *testing.T) {
	window := &sizedWindow{width: 1000, height: 600}
	surface := &Surface{
		window: window,
		config: &wgpu.SurfaceConfiguration{Width: 1000, Height: 600},
	}

	assert.False(t, surface.isOutdated(errors.New("timeout")))
	assert.True(t, surface.isOutdated(errors.New("Surface is Outdated")))
	assert.True(t, surface.isOutdated(errors.New("surface lost")))
	assert.True(t, surface.isOutdated(fmt.Errorf("acquire: %w", lifecycle.ErrSurfaceOutdated)))

	window.width, window.height = 0, 0
	assert.True(t, surface.isOutdated(errors.New("timeout")))
}
