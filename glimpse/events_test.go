package glimpse

import (
	"errors"
	"testing"

	"github.com/oliverbestmann/cubes/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	signals []lifecycle.Signal
}

func (r *recorder) handle(sig lifecycle.Signal) error {
	r.signals = append(r.signals, sig)
	return nil
}

func TestEventQueueCoalescesResize(t *testing.T) {
	var q eventQueue
	q.push(lifecycle.Resized(100, 100))
	q.push(lifecycle.Resized(200, 100))
	q.push(lifecycle.Resized(300, 150))

	var rec recorder
	closed, err := q.dispatch(rec.handle)
	require.NoError(t, err)
	assert.False(t, closed)

	assert.Equal(t, []lifecycle.Signal{lifecycle.Resized(300, 150)}, rec.signals)
}

func TestEventQueueRedrawAfterPending(t *testing.T) {
	var q eventQueue
	q.requestRedraw()
	q.push(lifecycle.Resumed)

	var rec recorder
	_, err := q.dispatch(rec.handle)
	require.NoError(t, err)

	assert.Equal(t, []lifecycle.Signal{lifecycle.Resumed, lifecycle.RedrawRequested}, rec.signals)
	assert.False(t, q.wantsRedraw())
}

func TestEventQueueRedrawRequestedWhileHandling(t *testing.T) {
	var q eventQueue
	q.requestRedraw()

	// the handler requests the next frame, like after presenting
	_, err := q.dispatch(func(lifecycle.Signal) error {
		q.requestRedraw()
		return nil
	})

	require.NoError(t, err)
	assert.True(t, q.wantsRedraw())
}

func TestEventQueueIconify(t *testing.T) {
	var q eventQueue
	q.requestRedraw()

	q.iconify(true)
	q.iconify(true)
	assert.False(t, q.wantsRedraw(), "iconified window is not redrawn")

	var rec recorder
	_, err := q.dispatch(rec.handle)
	require.NoError(t, err)
	assert.Equal(t, []lifecycle.Signal{lifecycle.Suspended}, rec.signals)

	q.iconify(false)

	rec = recorder{}
	_, err = q.dispatch(rec.handle)
	require.NoError(t, err)
	assert.Equal(t, []lifecycle.Signal{lifecycle.Resumed, lifecycle.RedrawRequested}, rec.signals)
}

func TestEventQueueClose(t *testing.T) {
	var q eventQueue
	q.push(lifecycle.CloseRequested)
	q.push(lifecycle.Resized(10, 10))
	q.requestRedraw()

	var rec recorder
	closed, err := q.dispatch(rec.handle)
	require.NoError(t, err)
	assert.True(t, closed)

	assert.Equal(t, []lifecycle.Signal{lifecycle.CloseRequested}, rec.signals)
}

func TestEventQueueError(t *testing.T) {
	var q eventQueue
	q.push(lifecycle.Resumed)
	q.push(lifecycle.Suspended)

	failure := errors.New("failure")

	var calls int
	_, err := q.dispatch(func(lifecycle.Signal) error {
		calls++
		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 1, calls)
}
