package pulse

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/draw"

	"github.com/cogentcore/webgpu/wgpu"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

//go:embed assets/card.bmp
var cardImage []byte

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
type Texture struct {
	texture     *wgpu.Texture
	textureView *wgpu.TextureView
}

// NewTextureFromDesc gives you full control and creates a texture directly from
// a texture descriptor
func NewTextureFromDesc(ctx *GraphicsContext, desc *wgpu.TextureDescriptor) (*Texture, error) {
	texture, err := ctx.Device.CreateTexture(desc)
	if err != nil {
		return nil, err
	}

	// now create a default texture view
	textureView, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()

		return nil, err
	}

	t := &Texture{
		texture:     texture,
		textureView: textureView,
	}

	return t, nil
}

// NewDepthTexture creates a depth buffer matching the depth state of the pipeline
func NewDepthTexture(ctx *GraphicsContext, width, height uint32) (*Texture, error) {
	return NewTextureFromDesc(ctx, &wgpu.TextureDescriptor{
		Label:     "DepthTexture",
		Usage:     wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format:        depthFormat,
		MipLevelCount: 1,
		SampleCount:   1,
	})
}

// DecodeImage decodes an image in any of the registered formats into
// a tightly packed RGBA image.
func DecodeImage(buf []byte) (*image.RGBA, error) {
	src, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode image from memory: %w", err)
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	return rgba, nil
}

// NewTextureFromImage uploads the image as an sRGB encoded texture.
func NewTextureFromImage(ctx *GraphicsContext, img *image.RGBA, label string) (*Texture, error) {
	width, height := uint32(img.Rect.Dx()), uint32(img.Rect.Dy())

	t, err := NewTextureFromDesc(ctx, &wgpu.TextureDescriptor{
		Label:         label,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		SampleCount:   1,
		MipLevelCount: 1,
		Dimension:     wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})

	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	size := wgpu.Extent3D{
		Width:              width,
		Height:             height,
		DepthOrArrayLayers: 1,
	}

	// send data to the gpu
	ctx.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		img.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.Stride),
			RowsPerImage: height,
		},
		&size,
	)

	return t, nil
}

func (t *Texture) View() *wgpu.TextureView {
	return t.textureView
}

// Release releases the texture and its view. You must be sure to not use
// the texture after calling release.
func (t *Texture) Release() {
	t.textureView.Release()
	t.texture.Release()
}

// DiffuseTexture is the texture of the scene together with its sampler
// and the bind group at index 0 of the pipeline.
type DiffuseTexture struct {
	texture   *Texture
	bindGroup *wgpu.BindGroup
}

var diffuseSampler = wgpu.SamplerDescriptor{
	Label:         "DiffuseSampler",
	AddressModeU:  wgpu.AddressModeClampToEdge,
	AddressModeV:  wgpu.AddressModeClampToEdge,
	AddressModeW:  wgpu.AddressModeClampToEdge,
	MagFilter:     wgpu.FilterModeLinear,
	MinFilter:     wgpu.FilterModeNearest,
	MipmapFilter:  wgpu.MipmapFilterModeNearest,
	LodMinClamp:   0,
	LodMaxClamp:   32,
	MaxAnisotropy: 1,
}

func newDiffuseTexture(ctx *GraphicsContext, encoded []byte) (*DiffuseTexture, error) {
	img, err := DecodeImage(encoded)
	if err != nil {
		return nil, err
	}

	texture, err := NewTextureFromImage(ctx, img, "DiffuseTexture")
	if err != nil {
		return nil, err
	}

	textureGuard := NewReleaseGuard(texture)
	defer textureGuard.Release()

	// owned by the sampler cache of the context
	sampler, err := ctx.CachedSampler(diffuseSampler)
	if err != nil {
		return nil, err
	}

	bindGroup, err := ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "DiffuseBindGroup",
		Layout: ctx.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: texture.View()},
			{Binding: 1, Sampler: sampler},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}

	textureGuard.Keep()

	return &DiffuseTexture{texture: texture, bindGroup: bindGroup}, nil
}

func (d *DiffuseTexture) Release() {
	d.bindGroup.Release()
	d.texture.Release()
}
