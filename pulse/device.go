package pulse

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/cubes/lifecycle"
	"github.com/oliverbestmann/cubes/scene"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

func init() {
	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// Window is the part of the platform window the backend needs.
type Window interface {
	GetSize() (uint32, uint32)
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	RequestRedraw()
}

type BackendOptions struct {
	ForceFallbackAdapter bool

	// validate the shader with naga before handing it to the device
	ValidateShader bool

	ClearColor Color
	Mesh       scene.Mesh
	Grid       scene.GridOptions

	// source of the rotation axes, nil for a randomly seeded one
	Random rand.Source
}

func DefaultBackendOptions() BackendOptions {
	return BackendOptions{
		ValidateShader: true,
		ClearColor:     ColorBlue,
		Mesh:           scene.Cube(1),
		Grid:           scene.DefaultGridOptions(),
	}
}

// Backend implements lifecycle.Backend on top of webgpu.
type Backend struct {
	instance *wgpu.Instance
	window   Window
	opts     BackendOptions
}

func NewBackend(window Window, opts BackendOptions) *Backend {
	if opts.Random == nil {
		opts.Random = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	return &Backend{
		instance: wgpu.CreateInstance(nil),
		window:   window,
		opts:     opts,
	}
}

func (b *Backend) CreateSurface() (lifecycle.Surface, error) {
	desc := b.window.SurfaceDescriptor()
	if desc == nil {
		return nil, lifecycle.ErrUnsupportedSurface
	}

	surface := b.instance.CreateSurface(desc)
	if surface == nil {
		return nil, lifecycle.ErrUnsupportedSurface
	}

	return &Surface{surface: surface, window: b.window}, nil
}

func (b *Backend) RequestAdapter(surface lifecycle.Surface) (lifecycle.Adapter, error) {
	s, ok := surface.(*Surface)
	if !ok {
		return nil, fmt.Errorf("unexpected surface type %T", surface)
	}

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.opts.ForceFallbackAdapter || forceFallbackAdapter,
		CompatibleSurface:    s.surface,
	})

	if err != nil {
		return nil, err
	}

	slog.Info("Adapter acquired", slog.Bool("fallback", b.opts.ForceFallbackAdapter || forceFallbackAdapter))

	return &Adapter{adapter: adapter, opts: &b.opts}, nil
}

// Release releases the webgpu instance. All resources created from
// this backend must be released before.
func (b *Backend) Release() {
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

type Adapter struct {
	adapter *wgpu.Adapter
	opts    *BackendOptions
}

func (a *Adapter) NewContext(format lifecycle.Format) (lifecycle.Context, error) {
	return NewGraphicsContext(a.adapter, wgpu.TextureFormat(format), *a.opts)
}

func (a *Adapter) Release() {
	a.adapter.Release()
}
