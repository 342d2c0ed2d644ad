package glimpse

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/cubes/lifecycle"
)

// Window is a platform window that delivers lifecycle signals.
type Window interface {
	// GetSize returns the size of the drawable area in physical pixels.
	GetSize() (uint32, uint32)

	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// RequestRedraw schedules a RedrawRequested signal.
	RequestRedraw()

	// Run delivers signals to handle until the window is closed or handle
	// returns an error. The first signal is always lifecycle.Resumed.
	Run(handle func(lifecycle.Signal) error) error

	Terminate()
}
