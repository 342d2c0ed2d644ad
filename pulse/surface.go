package pulse

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/cubes/lifecycle"
)

// Surface implements lifecycle.Surface for a wgpu.Surface bound to a window.
type Surface struct {
	surface *wgpu.Surface
	window  Window

	// nil until configured
	config *wgpu.SurfaceConfiguration
}

func (s *Surface) Size() (uint32, uint32) {
	return s.window.GetSize()
}

func (s *Surface) Formats(adapter lifecycle.Adapter) []lifecycle.Format {
	a, ok := adapter.(*Adapter)
	if !ok {
		return nil
	}

	caps := s.surface.GetCapabilities(a.adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	formats := make([]lifecycle.Format, 0, len(caps.Formats))
	for _, format := range caps.Formats {
		formats = append(formats, lifecycle.Format(format))
	}

	return formats
}

func (s *Surface) Configure(ctx lifecycle.Context, config lifecycle.SurfaceConfig) error {
	gc, ok := ctx.(*GraphicsContext)
	if !ok {
		return fmt.Errorf("unexpected context type %T", ctx)
	}

	format := wgpu.TextureFormat(config.Format)

	surfaceConfig := &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       config.Width,
		Height:      config.Height,
		PresentMode: presentModeOf(config.PresentMode),
		AlphaMode:   alphaModeOf(config.AlphaMode),
		ViewFormats: []wgpu.TextureFormat{format},
	}

	s.surface.Configure(gc.adapter, gc.Device, surfaceConfig)
	s.config = surfaceConfig

	return nil
}

func (s *Surface) Acquire() (lifecycle.Frame, error) {
	if s.config == nil {
		return nil, lifecycle.ErrSurfaceOutdated
	}

	texture, err := s.surface.GetCurrentTexture()
	if err != nil {
		if s.isOutdated(err) {
			return nil, fmt.Errorf("%w: %w", lifecycle.ErrSurfaceOutdated, err)
		}

		return nil, fmt.Errorf("get current texture: %w", err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create view: %w", err)
	}

	return &Frame{surface: s.surface, texture: texture, view: view}, nil
}

// isOutdated reports if the acquire error means that the surface must be
// reconfigured. The binding does not expose the acquire status, so this is
// a heuristic: the error is outdated if it wraps ErrSurfaceOutdated, if its
// message mentions an outdated or lost surface, or if the window size no
// longer matches the configured size. The last case also covers a window
// minimized to zero size, for which the machine waits for the next resize
// instead of requesting redraws.
func (s *Surface) isOutdated(err error) bool {
	if errors.Is(err, lifecycle.ErrSurfaceOutdated) {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "outdated") || strings.Contains(msg, "lost") {
		return true
	}

	width, height := s.window.GetSize()
	return width != s.config.Width || height != s.config.Height
}

func (s *Surface) RequestRedraw() {
	s.window.RequestRedraw()
}

func (s *Surface) Release() {
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
}

func presentModeOf(mode lifecycle.PresentMode) wgpu.PresentMode {
	switch mode {
	case lifecycle.PresentModeFifo:
		return wgpu.PresentModeFifo
	default:
		return wgpu.PresentModeFifo
	}
}

func alphaModeOf(mode lifecycle.AlphaMode) wgpu.CompositeAlphaMode {
	switch mode {
	case lifecycle.AlphaModeOpaque:
		return wgpu.CompositeAlphaModeOpaque
	default:
		return wgpu.CompositeAlphaModeOpaque
	}
}

// Frame is a texture acquired from a Surface.
type Frame struct {
	surface *wgpu.Surface
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

func (f *Frame) Size() (uint32, uint32) {
	return f.texture.GetWidth(), f.texture.GetHeight()
}

func (f *Frame) View() *wgpu.TextureView {
	return f.view
}

func (f *Frame) Present() {
	f.surface.Present()
	f.Release()
}

func (f *Frame) Release() {
	if f.view != nil {
		f.view.Release()
		f.view = nil
	}

	if f.texture != nil {
		f.texture.Release()
		f.texture = nil
	}
}
