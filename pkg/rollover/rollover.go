// Package rollover implements a generic one-input/many-output fan-out stage
// that routes the full input element sequence to exactly one active
// downstream consumer at a time, advancing to the next non-cancelled output
// whenever the active one cancels. It is the primitive used for protocol
// phase transitions: SSL negotiation, authentication, and the query cycle
// each receive their own output and hand off to the next phase by
// cancelling.
package rollover

import "log/slog"

// Rollover is a single-instance, non-reentrant fan-out stage over n outputs
// of element type T. Like the decoder, its callbacks (Push, Pull, Cancel,
// Finish) are invoked cooperatively and never concurrently with themselves;
// it holds no internal locking.
type Rollover[T any] struct {
	n         int
	active    int
	cancelled []bool

	pending []T // buffered elements awaiting demand from the active output
	demand  []bool

	upstreamDone   bool
	upstreamCancel func()
	finished       bool

	logger *slog.Logger
}

// Option configures a Rollover at construction time, following the
// teacher's options.go functional-options pattern (OptionFn over *Server).
type Option[T any] func(*Rollover[T])

// Logger sets the logger used for debug-level phase-transition tracing,
// overriding the slog.Default() used otherwise.
func Logger[T any](logger *slog.Logger) Option[T] {
	return func(r *Rollover[T]) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New constructs a Rollover with n outputs, active output 0, and no
// cancellations, per §4.4's initial state. onUpstreamCancel is invoked at
// most once, when every output has cancelled.
func New[T any](n int, onUpstreamCancel func(), opts ...Option[T]) *Rollover[T] {
	if n < 1 {
		n = 1
	}

	r := &Rollover[T]{
		n:              n,
		cancelled:      make([]bool, n),
		demand:         make([]bool, n),
		upstreamCancel: onUpstreamCancel,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Pull records demand from output i. If i is the active output and an
// element is already buffered, it is returned immediately; otherwise the
// demand is retained (including demand arriving before i's turn) so that
// when i becomes active it is satisfied without further signalling.
func (r *Rollover[T]) Pull(i int) (element T, ok bool) {
	if i < 0 || i >= r.n || r.cancelled[i] {
		return element, false
	}

	r.demand[i] = true

	if i != r.active || len(r.pending) == 0 {
		return element, false
	}

	element = r.pending[0]
	r.pending = r.pending[1:]
	r.demand[i] = false
	return element, true
}

// Push delivers one upstream element to the active output's pending queue.
// The caller is expected to have obtained this element in response to
// demand from the active output (Push is meant to be called only when
// Demand() is true), so that a cancellation occurring before
// an element is produced can never lose it.
func (r *Rollover[T]) Push(element T) {
	if r.finished {
		return
	}

	r.pending = append(r.pending, element)
}

// Demand reports whether the currently active output has outstanding
// demand, i.e. whether upstream should be asked to produce the next
// element.
func (r *Rollover[T]) Demand() bool {
	return !r.finished && r.demand[r.active]
}

// ActiveIndex returns the output currently receiving elements.
func (r *Rollover[T]) ActiveIndex() int {
	return r.active
}

// Cancel marks output i as cancelled. If i was the active output, the stage
// advances to the smallest non-cancelled index greater than i; if none
// exists, upstream is cancelled and the stage finishes.
func (r *Rollover[T]) Cancel(i int) {
	if i < 0 || i >= r.n || r.cancelled[i] {
		return
	}

	r.cancelled[i] = true

	if i != r.active {
		return
	}

	for j := i + 1; j < r.n; j++ {
		if !r.cancelled[j] {
			r.logger.Debug("active output advanced", slog.Int("from", i), slog.Int("to", j))
			r.active = j
			return
		}
	}

	r.finishUpstream()
}

// Finish notifies the stage that upstream has completed; any remaining
// buffered elements are still available via Pull, but no further Push will
// occur.
func (r *Rollover[T]) Finish() {
	r.upstreamDone = true
}

// Done reports whether every output has cancelled (upstream was in turn
// cancelled) or upstream finished and no elements remain buffered.
func (r *Rollover[T]) Done() bool {
	return r.finished || (r.upstreamDone && len(r.pending) == 0)
}

func (r *Rollover[T]) finishUpstream() {
	if r.finished {
		return
	}

	r.finished = true
	r.logger.Debug("every output cancelled, finishing upstream")
	if r.upstreamCancel != nil {
		r.upstreamCancel()
	}
}
