package glimpse

import "github.com/oliverbestmann/cubes/lifecycle"

// eventQueue collects the signals produced by the window callbacks
// between two iterations of the event loop.
type eventQueue struct {
	pending   []lifecycle.Signal
	redraw    bool
	iconified bool
}

func (q *eventQueue) push(sig lifecycle.Signal) {
	// only the latest size matters
	if sig.Kind == lifecycle.SignalResized && len(q.pending) > 0 {
		last := &q.pending[len(q.pending)-1]
		if last.Kind == lifecycle.SignalResized {
			*last = sig
			return
		}
	}

	q.pending = append(q.pending, sig)
}

func (q *eventQueue) requestRedraw() {
	q.redraw = true
}

func (q *eventQueue) iconify(iconified bool) {
	if q.iconified == iconified {
		return
	}

	q.iconified = iconified

	if iconified {
		q.push(lifecycle.Suspended)
	} else {
		q.push(lifecycle.Resumed)
	}
}

// wantsRedraw reports if a redraw is pending. Iconified windows are never redrawn.
func (q *eventQueue) wantsRedraw() bool {
	return q.redraw && !q.iconified
}

// dispatch delivers all pending signals followed by a redraw if one was
// requested. Returns true once a close request was delivered.
func (q *eventQueue) dispatch(handle func(lifecycle.Signal) error) (bool, error) {
	for len(q.pending) > 0 {
		sig := q.pending[0]
		q.pending = q.pending[1:]

		if err := handle(sig); err != nil {
			return false, err
		}

		if sig.Kind == lifecycle.SignalCloseRequested {
			return true, nil
		}
	}

	if q.wantsRedraw() {
		q.redraw = false

		if err := handle(lifecycle.RedrawRequested); err != nil {
			return false, err
		}
	}

	return false, nil
}
