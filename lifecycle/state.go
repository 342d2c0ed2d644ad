package lifecycle

import "fmt"

type StateName uint8

const (
	StateNoSurface StateName = iota
	StateSurfaceReady
	StateContextReady
	StateConfigured
	StateClosed
)

func (s StateName) String() string {
	switch s {
	case StateNoSurface:
		return "NoSurface"
	case StateSurfaceReady:
		return "SurfaceReady"
	case StateContextReady:
		return "ContextReady"
	case StateConfigured:
		return "Configured"
	case StateClosed:
		return "Closed"
	default:
		return fmt.Sprintf("StateName(%d)", uint8(s))
	}
}

// state is one of the concrete state types below. Each one holds exactly
// the resources that are alive in that state.
type state interface {
	name() StateName
}

// deviceState is the part that survives a resize.
type deviceState struct {
	format  Format
	context Context
	scene   Scene
}

func (d *deviceState) release() {
	d.scene.Release()
	d.context.Release()
}

type noSurface struct {
	// device parked by a KeepContext suspend, may be nil
	parked *deviceState
}

type surfaceReady struct {
	surface Surface
}

// contextReady has a device but the surface was not configured yet,
// usually because the window has a zero size.
type contextReady struct {
	surface Surface
	device  *deviceState
}

type configured struct {
	surface Surface
	device  *deviceState
	config  SurfaceConfig
}

type closed struct{}

func (noSurface) name() StateName    { return StateNoSurface }
func (surfaceReady) name() StateName { return StateSurfaceReady }
func (contextReady) name() StateName { return StateContextReady }
func (configured) name() StateName   { return StateConfigured }
func (closed) name() StateName       { return StateClosed }
