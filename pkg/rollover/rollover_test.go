package rollover

import (
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driveNext is a tiny harness standing in for a stream scheduler: pull from
// output i; if the active output has demand and nothing is buffered, push
// the next upstream element.
func driveNext(t *testing.T, r *Rollover[int], upstream *[]int, i int) (int, bool) {
	t.Helper()

	elem, ok := r.Pull(i)
	if ok {
		return elem, true
	}

	if r.Demand() && len(*upstream) > 0 {
		next := (*upstream)[0]
		*upstream = (*upstream)[1:]
		r.Push(next)

		return r.Pull(i)
	}

	return 0, false
}

func TestRolloverScenarioENextOnFinish(t *testing.T) {
	t.Parallel()

	upstream := []int{1, 2}
	r := New[int](2, nil)

	elem, ok := driveNext(t, r, &upstream, 0)
	require.True(t, ok)
	assert.Equal(t, 1, elem)

	r.Cancel(0)
	assert.Equal(t, 1, r.ActiveIndex())

	elem, ok = driveNext(t, r, &upstream, 1)
	require.True(t, ok)
	assert.Equal(t, 2, elem)
}

func TestRolloverScenarioFSkipClosed(t *testing.T) {
	t.Parallel()

	upstream := []int{1, 2}
	r := New[int](3, nil)

	r.Cancel(1)

	elem, ok := driveNext(t, r, &upstream, 0)
	require.True(t, ok)
	assert.Equal(t, 1, elem)

	r.Cancel(0)
	assert.Equal(t, 2, r.ActiveIndex())

	elem, ok = driveNext(t, r, &upstream, 2)
	require.True(t, ok)
	assert.Equal(t, 2, elem)
}

func TestRolloverAllCancelledCancelsUpstream(t *testing.T) {
	t.Parallel()

	cancelled := false
	r := New[int](2, func() { cancelled = true }, Logger[int](slogt.New(t)))

	r.Cancel(0)
	assert.False(t, cancelled)

	r.Cancel(1)
	assert.True(t, cancelled)
	assert.True(t, r.Done())
}

func TestRolloverNoElementDeliveredToMoreThanOneOutput(t *testing.T) {
	t.Parallel()

	upstream := []int{10, 20, 30}
	r := New[int](3, nil)

	received := map[int][]int{}

	elem, ok := driveNext(t, r, &upstream, 0)
	require.True(t, ok)
	received[0] = append(received[0], elem)
	r.Cancel(0)

	elem, ok = driveNext(t, r, &upstream, 1)
	require.True(t, ok)
	received[1] = append(received[1], elem)
	r.Cancel(1)

	elem, ok = driveNext(t, r, &upstream, 2)
	require.True(t, ok)
	received[2] = append(received[2], elem)

	assert.Equal(t, []int{10}, received[0])
	assert.Equal(t, []int{20}, received[1])
	assert.Equal(t, []int{30}, received[2])
}

func TestRolloverDemandRetainedBeforeOutputsTurn(t *testing.T) {
	t.Parallel()

	r := New[int](2, nil)

	// Output 1 pulls before it is active; its demand is retained.
	_, ok := r.Pull(1)
	assert.False(t, ok)

	r.Push(7)
	elem, ok := r.Pull(0)
	require.True(t, ok)
	assert.Equal(t, 7, elem)

	r.Cancel(0)

	// Now that output 1 is active, its earlier demand should be honored
	// once an element is pushed.
	r.Push(8)
	elem, ok = r.Pull(1)
	require.True(t, ok)
	assert.Equal(t, 8, elem)
}
