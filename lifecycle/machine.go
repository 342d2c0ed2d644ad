package lifecycle

import (
	"errors"
	"fmt"
	"log/slog"
)

type SuspendPolicy uint8

const (
	// DropContext releases the device together with the surface on suspend.
	DropContext SuspendPolicy = iota

	// KeepContext parks the device on suspend and reuses it on the next resume.
	KeepContext
)

func (p SuspendPolicy) String() string {
	switch p {
	case DropContext:
		return "drop"
	case KeepContext:
		return "keep"
	default:
		return fmt.Sprintf("SuspendPolicy(%d)", uint8(p))
	}
}

type FrameResult uint8

const (
	// FrameNone is returned for signals that do not draw.
	FrameNone FrameResult = iota
	FrameNotReady
	FramePresented
	FrameOutdated
	FrameFailed
)

func (r FrameResult) String() string {
	switch r {
	case FrameNone:
		return "None"
	case FrameNotReady:
		return "NotReady"
	case FramePresented:
		return "Presented"
	case FrameOutdated:
		return "Outdated"
	case FrameFailed:
		return "Failed"
	default:
		return fmt.Sprintf("FrameResult(%d)", uint8(r))
	}
}

type Options struct {
	Policy SuspendPolicy

	// If greater than zero, that many failed frames in a row
	// make Redraw return ErrTooManyFailures.
	MaxConsecutiveFailures int
}

type Stats struct {
	AdapterRequests int
	SurfacesCreated int
	ContextBuilds   int
	FramesPresented int
	FramesOutdated  int
	FramesFailed    int
}

// Machine tracks the graphics resources of a window across resume,
// suspend and resize. It is not safe for concurrent use and is expected
// to be driven from the event loop thread.
type Machine struct {
	backend Backend
	opts    Options

	// requested once, lives until Close
	adapter Adapter

	state    state
	stats    Stats
	failures int
}

func NewMachine(backend Backend, opts Options) *Machine {
	return &Machine{
		backend: backend,
		opts:    opts,
		state:   noSurface{},
	}
}

func (m *Machine) State() StateName {
	return m.state.name()
}

func (m *Machine) Stats() Stats {
	return m.stats
}

// Handle dispatches a single signal. Errors are fatal.
func (m *Machine) Handle(sig Signal) (FrameResult, error) {
	switch sig.Kind {
	case SignalResumed:
		return FrameNone, m.Resume()

	case SignalSuspended:
		m.Suspend()

	case SignalResized:
		m.Resize(sig.Width, sig.Height)

	case SignalRedrawRequested:
		return m.Redraw()

	case SignalCloseRequested:
		m.Close()

	default:
		slog.Warn("Ignoring unknown signal", slog.String("signal", sig.Kind.String()))
	}

	return FrameNone, nil
}

// Resume creates the surface and brings the machine into the configured
// state. All errors are fatal.
func (m *Machine) Resume() error {
	var parked *deviceState

	switch st := m.state.(type) {
	case closed:
		return ErrClosed

	case noSurface:
		parked = st.parked

	default:
		slog.Warn("Resume with an existing surface, ignoring", slog.String("state", st.name().String()))
		return nil
	}

	slog.Info("Create surface")

	surface, err := m.backend.CreateSurface()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedSurface, err)
	}

	m.stats.SurfacesCreated++

	// the parked device is owned by the new state from here on, so Close can
	// release it whatever happens below
	m.state = surfaceReady{surface: surface}

	adapter, err := m.requestAdapter(surface)
	if err != nil {
		releaseParked(parked)
		return err
	}

	formats := surface.Formats(adapter)
	if len(formats) == 0 {
		releaseParked(parked)
		return ErrNoSurfaceFormat
	}

	format := formats[0]

	device := parked
	if device != nil && device.format != format {
		slog.Info("Surface format changed, dropping parked render state",
			slog.Int("format", int(format)),
			slog.Int("parkedFormat", int(device.format)),
		)

		device.release()
		device = nil
	}

	if device == nil {
		device, err = m.buildDevice(adapter, format)
		if err != nil {
			return err
		}
	} else {
		slog.Info("Reuse parked render state")
	}

	m.state = contextReady{surface: surface, device: device}

	width, height := surface.Size()
	if width == 0 || height == 0 {
		slog.Debug("Window has no size, deferring surface configuration")
		return nil
	}

	config, err := m.configure(surface, device, width, height)
	if err != nil {
		return err
	}

	m.state = configured{surface: surface, device: device, config: config}

	surface.RequestRedraw()

	return nil
}

// Resize reconfigures the surface. It never rebuilds the device and
// configuration failures are not fatal.
func (m *Machine) Resize(width, height uint32) {
	var surface Surface
	var device *deviceState

	switch st := m.state.(type) {
	case configured:
		surface, device = st.surface, st.device

	case contextReady:
		surface, device = st.surface, st.device

	default:
		slog.Debug("Ignoring resize", slog.String("state", st.name().String()))
		return
	}

	if width == 0 || height == 0 {
		slog.Debug("Ignoring resize to zero size")
		return
	}

	config, err := m.configure(surface, device, width, height)
	if err != nil {
		slog.Warn("Failed to reconfigure surface", slog.String("err", err.Error()))
		return
	}

	m.state = configured{surface: surface, device: device, config: config}

	surface.RequestRedraw()
}

// Suspend releases the surface. Depending on the policy the device is
// released or parked for the next Resume.
func (m *Machine) Suspend() {
	switch st := m.state.(type) {
	case surfaceReady:
		slog.Info("Release surface")
		st.surface.Release()
		m.state = noSurface{}

	case contextReady:
		m.state = m.suspendDevice(st.surface, st.device)

	case configured:
		m.state = m.suspendDevice(st.surface, st.device)

	default:
		slog.Debug("Ignoring suspend", slog.String("state", st.name().String()))
	}
}

func (m *Machine) suspendDevice(surface Surface, device *deviceState) state {
	if m.opts.Policy == KeepContext {
		slog.Info("Release surface, keep render state")
		surface.Release()
		return noSurface{parked: device}
	}

	slog.Info("Release surface and render state")

	device.scene.Release()
	surface.Release()
	device.context.Release()

	return noSurface{}
}

// Redraw renders and presents a single frame. The only error returned is
// ErrTooManyFailures, every other failure is reported through the result.
func (m *Machine) Redraw() (FrameResult, error) {
	st, ok := m.state.(configured)
	if !ok {
		return FrameNotReady, nil
	}

	frame, err := st.surface.Acquire()
	switch {
	case errors.Is(err, ErrSurfaceOutdated):
		m.stats.FramesOutdated++

		// a minimized window has nothing to draw into, the next
		// non zero resize requests the redraw
		if width, height := st.surface.Size(); width == 0 || height == 0 {
			slog.Debug("Surface outdated while minimized, waiting for resize")
			return FrameOutdated, nil
		}

		slog.Debug("Surface outdated, skipping frame")
		st.surface.RequestRedraw()
		return FrameOutdated, nil

	case err != nil:
		slog.Warn("Failed to acquire frame", slog.String("err", err.Error()))
		return m.frameFailed()
	}

	if err := st.device.scene.Render(frame); err != nil {
		frame.Release()

		slog.Warn("Failed to render frame", slog.String("err", err.Error()))
		st.surface.RequestRedraw()

		return m.frameFailed()
	}

	frame.Present()

	m.failures = 0
	m.stats.FramesPresented++

	st.surface.RequestRedraw()

	return FramePresented, nil
}

func (m *Machine) frameFailed() (FrameResult, error) {
	m.stats.FramesFailed++
	m.failures++

	if m.opts.MaxConsecutiveFailures > 0 && m.failures >= m.opts.MaxConsecutiveFailures {
		return FrameFailed, fmt.Errorf("%w: %d in a row", ErrTooManyFailures, m.failures)
	}

	return FrameFailed, nil
}

// Close releases all resources including the cached adapter. Calling
// Close multiple times is fine.
func (m *Machine) Close() {
	switch st := m.state.(type) {
	case closed:
		return

	case noSurface:
		releaseParked(st.parked)

	case surfaceReady:
		st.surface.Release()

	case contextReady:
		st.device.scene.Release()
		st.surface.Release()
		st.device.context.Release()

	case configured:
		st.device.scene.Release()
		st.surface.Release()
		st.device.context.Release()
	}

	if m.adapter != nil {
		m.adapter.Release()
		m.adapter = nil
	}

	slog.Info("Lifecycle closed", slog.Int("framesPresented", m.stats.FramesPresented))

	m.state = closed{}
}

func (m *Machine) requestAdapter(surface Surface) (Adapter, error) {
	if m.adapter != nil {
		return m.adapter, nil
	}

	slog.Info("Request adapter")

	m.stats.AdapterRequests++

	adapter, err := m.backend.RequestAdapter(surface)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}

	if adapter == nil {
		return nil, ErrNoAdapter
	}

	m.adapter = adapter

	return adapter, nil
}

func (m *Machine) buildDevice(adapter Adapter, format Format) (*deviceState, error) {
	slog.Info("Create render state", slog.Int("format", int(format)))

	ctx, err := adapter.NewContext(format)
	if err != nil {
		return nil, fmt.Errorf("create context: %w", err)
	}

	m.stats.ContextBuilds++

	scene, err := ctx.NewScene()
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("create scene: %w", err)
	}

	return &deviceState{format: format, context: ctx, scene: scene}, nil
}

func (m *Machine) configure(surface Surface, device *deviceState, width, height uint32) (SurfaceConfig, error) {
	config := SurfaceConfig{
		Format:      device.format,
		Width:       width,
		Height:      height,
		PresentMode: PresentModeFifo,
		AlphaMode:   AlphaModeOpaque,
	}

	slog.Info("Configure surface",
		slog.Int("format", int(config.Format)),
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	if err := surface.Configure(device.context, config); err != nil {
		return SurfaceConfig{}, fmt.Errorf("configure surface: %w", err)
	}

	return config, nil
}

func releaseParked(parked *deviceState) {
	if parked != nil {
		parked.release()
	}
}
