package lifecycle

import "fmt"

type SignalKind uint8

const (
	SignalResumed SignalKind = iota
	SignalSuspended
	SignalResized
	SignalRedrawRequested
	SignalCloseRequested
)

func (k SignalKind) String() string {
	switch k {
	case SignalResumed:
		return "Resumed"
	case SignalSuspended:
		return "Suspended"
	case SignalResized:
		return "Resized"
	case SignalRedrawRequested:
		return "RedrawRequested"
	case SignalCloseRequested:
		return "CloseRequested"
	default:
		return fmt.Sprintf("SignalKind(%d)", uint8(k))
	}
}

// Signal is an event delivered by the windowing system. Width and Height
// are only set for SignalResized.
type Signal struct {
	Kind   SignalKind
	Width  uint32
	Height uint32
}

func Resized(width, height uint32) Signal {
	return Signal{Kind: SignalResized, Width: width, Height: height}
}

var (
	Resumed         = Signal{Kind: SignalResumed}
	Suspended       = Signal{Kind: SignalSuspended}
	RedrawRequested = Signal{Kind: SignalRedrawRequested}
	CloseRequested  = Signal{Kind: SignalCloseRequested}
)

// Source delivers signals to handle until handle returns an error or the
// source runs dry. Run returns the error returned by handle.
type Source interface {
	Run(handle func(Signal) error) error
}
