package lifecycle

import "errors"

var (
	ErrUnsupportedSurface = errors.New("surface not supported by the window")
	ErrNoAdapter          = errors.New("no compatible adapter found")
	ErrNoSurfaceFormat    = errors.New("surface reports no supported format")

	// ErrSurfaceOutdated is returned by Surface.Acquire when the surface
	// needs to be reconfigured before the next frame can be acquired.
	ErrSurfaceOutdated = errors.New("surface outdated")

	ErrTooManyFailures = errors.New("too many consecutive frame failures")
	ErrClosed          = errors.New("lifecycle closed")
)
