package lifecycle

// Format identifies a texture format of the graphics backend.
type Format uint32

type PresentMode uint8

const (
	PresentModeFifo PresentMode = iota
)

type AlphaMode uint8

const (
	AlphaModeOpaque AlphaMode = iota
)

type SurfaceConfig struct {
	Format      Format
	Width       uint32
	Height      uint32
	PresentMode PresentMode
	AlphaMode   AlphaMode
}

// Backend creates the window bound graphics resources.
type Backend interface {
	CreateSurface() (Surface, error)

	// RequestAdapter returns an adapter that can present to the given surface.
	RequestAdapter(surface Surface) (Adapter, error)
}

type Surface interface {
	// Size returns the current size of the window in physical pixels.
	Size() (width, height uint32)

	// Formats returns the formats supported by the surface when used with
	// the given adapter, preferred format first.
	Formats(adapter Adapter) []Format

	Configure(ctx Context, config SurfaceConfig) error

	// Acquire returns the next frame to render into. Returns an error
	// wrapping ErrSurfaceOutdated if the surface must be reconfigured.
	Acquire() (Frame, error)

	RequestRedraw()
	Release()
}

type Adapter interface {
	NewContext(format Format) (Context, error)
	Release()
}

// Context holds the device and everything that does not depend on
// the surface size.
type Context interface {
	NewScene() (Scene, error)
	Release()
}

type Scene interface {
	Render(frame Frame) error
	Release()
}

type Frame interface {
	Size() (width, height uint32)

	// Present hands the frame over to the surface. The frame must not be
	// used or released afterwards.
	Present()

	Release()
}
