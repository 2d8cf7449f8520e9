package rollover

import (
	"context"
)

// Source supplies the next upstream element on demand. ok is false (with a
// nil err) when upstream has finished; a non-nil err terminates the stage.
type Source[T any] func() (element T, ok bool, err error)

type pullRequest[T any] struct {
	output int
	resp   chan pullResult[T]
}

type pullResult[T any] struct {
	element T
	ok      bool
	err     error
}

// RolloverChan is a concurrency-safe façade over Rollover: every call is
// funneled through a single owning goroutine, so the underlying Rollover
// never has to reason about concurrent callers even though Pull and Cancel
// may be invoked from arbitrarily many goroutines, one per output consumer.
type RolloverChan[T any] struct {
	core   *Rollover[T]
	source Source[T]

	pullCh   chan pullRequest[T]
	cancelCh chan int
	closed   chan struct{}

	pending map[int]chan pullResult[T]
}

// NewChan constructs a RolloverChan with n outputs, pulling upstream
// elements from source on demand, configured by the given options (e.g.
// Logger). The owning goroutine starts immediately and runs until every
// output has cancelled or source is exhausted.
func NewChan[T any](n int, source Source[T], opts ...Option[T]) *RolloverChan[T] {
	rc := &RolloverChan[T]{
		source:   source,
		pullCh:   make(chan pullRequest[T]),
		cancelCh: make(chan int),
		closed:   make(chan struct{}),
		pending:  make(map[int]chan pullResult[T]),
	}

	rc.core = New[T](n, func() { rc.shutdown() }, opts...)

	go rc.run()
	return rc
}

// Pull requests the next element for output i, blocking until one is
// available, upstream finishes, an error occurs, or ctx is cancelled.
func (rc *RolloverChan[T]) Pull(ctx context.Context, i int) (element T, ok bool, err error) {
	resp := make(chan pullResult[T], 1)

	select {
	case rc.pullCh <- pullRequest[T]{output: i, resp: resp}:
	case <-rc.closed:
		return element, false, nil
	case <-ctx.Done():
		return element, false, ctx.Err()
	}

	select {
	case res := <-resp:
		return res.element, res.ok, res.err
	case <-rc.closed:
		return element, false, nil
	case <-ctx.Done():
		return element, false, ctx.Err()
	}
}

// Cancel marks output i as no longer interested; the stage advances to the
// next non-cancelled output per §4.4.
func (rc *RolloverChan[T]) Cancel(i int) {
	select {
	case rc.cancelCh <- i:
	case <-rc.closed:
	}
}

// Done returns a channel that is closed once the stage has terminated,
// either because every output cancelled or upstream finished with nothing
// left buffered.
func (rc *RolloverChan[T]) Done() <-chan struct{} {
	return rc.closed
}

func (rc *RolloverChan[T]) run() {
	defer rc.shutdown()

	for {
		select {
		case req := <-rc.pullCh:
			rc.handlePull(req)
		case i := <-rc.cancelCh:
			rc.core.Cancel(i)
			rc.wakeActive()
		}

		if rc.core.Done() {
			return
		}
	}
}

func (rc *RolloverChan[T]) handlePull(req pullRequest[T]) {
	if elem, ok := rc.core.Pull(req.output); ok {
		req.resp <- pullResult[T]{element: elem, ok: true}
		return
	}

	if req.output != rc.core.ActiveIndex() {
		rc.pending[req.output] = req.resp
		return
	}

	elem, ok, err := rc.source()
	if err != nil {
		req.resp <- pullResult[T]{err: err}
		rc.core.Finish()
		return
	}

	if !ok {
		rc.core.Finish()
		req.resp <- pullResult[T]{ok: false}
		return
	}

	rc.core.Push(elem)
	elem, ok = rc.core.Pull(req.output)
	req.resp <- pullResult[T]{element: elem, ok: ok}
}

// wakeActive resolves a pull that was parked while waiting for its output
// to become active, if one is outstanding for the now-active output.
func (rc *RolloverChan[T]) wakeActive() {
	active := rc.core.ActiveIndex()

	resp, has := rc.pending[active]
	if !has {
		return
	}

	delete(rc.pending, active)
	rc.handlePull(pullRequest[T]{output: active, resp: resp})
}

func (rc *RolloverChan[T]) shutdown() {
	select {
	case <-rc.closed:
	default:
		close(rc.closed)
	}
}
