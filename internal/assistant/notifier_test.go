package assistant

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBusNotifierDeliversToEverySubscriber(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	bus := NewBusNotifier(testLogger)
	var first, second atomic.Int32

	unsubFirst, err := bus.Subscribe(func() { first.Add(1) })
	require.NoError(t, err)
	unsubSecond, err := bus.Subscribe(func() { second.Add(1) })
	require.NoError(t, err)

	require.NoError(t, bus.Publish())
	require.Eventually(t, func() bool {
		return first.Load() == 1 && second.Load() == 1
	}, time.Second, 5*time.Millisecond)

	unsubFirst()
	unsubFirst()
	require.NoError(t, bus.Publish())
	require.Eventually(t, func() bool { return second.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), first.Load())

	unsubSecond()
	require.NoError(t, bus.Close())
}

func TestBusNotifierCloseStopsSubscriptions(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	bus := NewBusNotifier(testLogger)
	_, err := bus.Subscribe(func() {})
	require.NoError(t, err)

	require.NoError(t, bus.Close())
}
