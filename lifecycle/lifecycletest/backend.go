// Package lifecycletest provides an in memory lifecycle.Backend that
// records every call made by a lifecycle.Machine.
package lifecycletest

import (
	"fmt"

	"github.com/oliverbestmann/cubes/lifecycle"
)

// Configured records a single call to Surface.Configure.
type Configured struct {
	Context lifecycle.Context
	Config  lifecycle.SurfaceConfig
}

type Backend struct {
	// size reported by every surface
	Width, Height uint32

	// formats reported by every surface, defaults to a single format
	Formats []lifecycle.Format

	CreateSurfaceErr error
	AdapterErr       error
	ContextErr       error
	SceneErr         error
	ConfigureErr     error

	// errors returned by the next calls to Acquire and Render, consumed in order
	AcquireErrs []error
	RenderErrs  []error

	AdapterRequests int
	SurfacesCreated int
	ContextsCreated int
	ScenesCreated   int

	Redraws   int
	Rendered  int
	Presented int

	Configs []Configured

	// release calls in order, e.g. "scene 1"
	Releases []string

	// DoubleReleases counts resources released more than once
	DoubleReleases int

	live int
	ids  int
}

// NewBackend returns a backend with a window of the given size.
func NewBackend(width, height uint32) *Backend {
	return &Backend{Width: width, Height: height}
}

// Live returns the number of created resources that were not yet released.
func (b *Backend) Live() int {
	return b.live
}

func (b *Backend) CreateSurface() (lifecycle.Surface, error) {
	if b.CreateSurfaceErr != nil {
		return nil, b.CreateSurfaceErr
	}

	b.SurfacesCreated++
	return &Surface{resource: b.newResource("surface")}, nil
}

func (b *Backend) RequestAdapter(lifecycle.Surface) (lifecycle.Adapter, error) {
	b.AdapterRequests++

	if b.AdapterErr != nil {
		return nil, b.AdapterErr
	}

	return &Adapter{resource: b.newResource("adapter")}, nil
}

func (b *Backend) newResource(kind string) resource {
	b.ids++
	b.live++
	return resource{backend: b, name: fmt.Sprintf("%s %d", kind, b.ids)}
}

type resource struct {
	backend  *Backend
	name     string
	released bool
}

func (r *resource) Release() {
	if r.released {
		r.backend.DoubleReleases++
		return
	}

	r.released = true
	r.backend.live--
	r.backend.Releases = append(r.backend.Releases, r.name)
}

// Name returns a unique name like "context 3".
func (r *resource) Name() string {
	return r.name
}

type Surface struct {
	resource
}

func (s *Surface) Size() (uint32, uint32) {
	return s.backend.Width, s.backend.Height
}

func (s *Surface) Formats(lifecycle.Adapter) []lifecycle.Format {
	if s.backend.Formats == nil {
		return []lifecycle.Format{1}
	}

	return s.backend.Formats
}

func (s *Surface) Configure(ctx lifecycle.Context, config lifecycle.SurfaceConfig) error {
	if s.backend.ConfigureErr != nil {
		return s.backend.ConfigureErr
	}

	s.backend.Configs = append(s.backend.Configs, Configured{Context: ctx, Config: config})
	return nil
}

func (s *Surface) Acquire() (lifecycle.Frame, error) {
	if err := pop(&s.backend.AcquireErrs); err != nil {
		return nil, err
	}

	cfg := s.backend.Configs[len(s.backend.Configs)-1].Config
	return &Frame{resource: s.backend.newResource("frame"), width: cfg.Width, height: cfg.Height}, nil
}

func (s *Surface) RequestRedraw() {
	s.backend.Redraws++
}

type Adapter struct {
	resource
}

func (a *Adapter) NewContext(lifecycle.Format) (lifecycle.Context, error) {
	if a.backend.ContextErr != nil {
		return nil, a.backend.ContextErr
	}

	a.backend.ContextsCreated++
	return &Context{resource: a.backend.newResource("context")}, nil
}

type Context struct {
	resource
}

func (c *Context) NewScene() (lifecycle.Scene, error) {
	if c.backend.SceneErr != nil {
		return nil, c.backend.SceneErr
	}

	c.backend.ScenesCreated++
	return &Scene{resource: c.backend.newResource("scene")}, nil
}

type Scene struct {
	resource
}

func (s *Scene) Render(lifecycle.Frame) error {
	if err := pop(&s.backend.RenderErrs); err != nil {
		return err
	}

	s.backend.Rendered++
	return nil
}

type Frame struct {
	resource
	width, height uint32
}

func (f *Frame) Size() (uint32, uint32) {
	return f.width, f.height
}

func (f *Frame) Present() {
	f.backend.Presented++

	// presenting hands the frame back to the surface
	f.released = true
	f.backend.live--
}

func pop(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}

	err := (*errs)[0]
	*errs = (*errs)[1:]
	return err
}
