package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcasterQueuesBeforeFire(t *testing.T) {
	b := New()

	var order []int
	b.OnReady(func() { order = append(order, 1) })
	b.OnReady(func() { order = append(order, 2) })
	b.OnReady(func() { order = append(order, 3) })

	require.Empty(t, order, "callbacks must not run before the signal fires")
	assert.False(t, b.ReadyFired())

	b.NotifyReady()

	assert.Equal(t, []int{1, 2, 3}, order, "queued callbacks run in registration order")
	assert.True(t, b.ReadyFired())
}

func TestBroadcasterImmediateInvokeAfterFire(t *testing.T) {
	b := New()
	b.NotifyReady()

	called := false
	b.OnReady(func() { called = true })
	assert.True(t, called, "late subscription must run synchronously on the calling turn")
}

func TestBroadcasterFiresExactlyOnce(t *testing.T) {
	b := New()

	calls := 0
	b.OnLoad(func() { calls++ })

	b.NotifyLoad()
	b.NotifyLoad()
	b.NotifyLoad()

	assert.Equal(t, 1, calls, "queued callback runs exactly once")
}

func TestBroadcasterSignalsAreIndependent(t *testing.T) {
	b := New()

	var readyRan, loadRan bool
	b.OnReady(func() { readyRan = true })
	b.OnLoad(func() { loadRan = true })

	b.NotifyReady()
	assert.True(t, readyRan)
	assert.False(t, loadRan, "firing ready must not fire load")
	assert.False(t, b.LoadFired())

	b.NotifyLoad()
	assert.True(t, loadRan)
}

func TestBroadcasterSubscribeDuringDrain(t *testing.T) {
	b := New()

	var order []string
	b.OnReady(func() {
		order = append(order, "outer")
		// The signal is already terminal here, so this runs immediately.
		b.OnReady(func() { order = append(order, "inner") })
	})

	b.NotifyReady()
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestBroadcasterNilCallbackIgnored(t *testing.T) {
	b := New()
	b.OnReady(nil)
	b.NotifyReady()
	b.OnLoad(nil)
}
