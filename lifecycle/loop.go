package lifecycle

import (
	"errors"
)

var errCloseRequested = errors.New("close requested")

// Loop feeds the signals of a Source into a Machine.
type Loop struct {
	Machine *Machine

	// OnFrame is called with the result of every redraw, may be nil.
	OnFrame func(FrameResult)
}

// Run blocks until the source is exhausted, a close was requested or a
// fatal error occurred. The machine is closed when Run returns.
func (l *Loop) Run(source Source) error {
	defer l.Machine.Close()

	err := source.Run(func(sig Signal) error {
		result, err := l.Machine.Handle(sig)
		if err != nil {
			return err
		}

		switch sig.Kind {
		case SignalRedrawRequested:
			if l.OnFrame != nil {
				l.OnFrame(result)
			}

		case SignalCloseRequested:
			return errCloseRequested
		}

		return nil
	})

	if errors.Is(err, errCloseRequested) {
		return nil
	}

	return err
}
