package history

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPop(t *testing.T) {
	h := New(DefaultSize)

	_, ok := h.Pop()
	assert.False(t, ok)

	h.Push("one")
	h.Push("two")
	assert.Equal(t, 2, h.Len())

	last, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, "two", last)
	last, _ = h.Pop()
	assert.Equal(t, "one", last)
	assert.Equal(t, 0, h.Len())
}

func TestCapacityEvictsOldest(t *testing.T) {
	h := New(0)
	for i := 0; i < 25; i++ {
		h.Push(fmt.Sprintf("s%d", i))
	}
	assert.Equal(t, DefaultSize, h.Len())

	var popped []string
	for {
		s, ok := h.Pop()
		if !ok {
			break
		}
		popped = append(popped, s)
	}
	assert.Equal(t, "s24", popped[0])
	assert.Equal(t, "s5", popped[len(popped)-1])
}

func TestThrottleCoalescesBurst(t *testing.T) {
	var calls atomic.Int32
	th := NewThrottle(20*time.Millisecond, func() { calls.Add(1) })

	for i := 0; i < 10; i++ {
		th.Call()
	}
	assert.Equal(t, int32(0), calls.Load())
	assert.True(t, th.Pending())

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return !th.Pending() }, time.Second, 5*time.Millisecond)

	th.Call()
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestThrottleStop(t *testing.T) {
	var calls atomic.Int32
	th := NewThrottle(10*time.Millisecond, func() { calls.Add(1) })

	th.Call()
	th.Stop()
	th.Call()
	assert.False(t, th.Pending())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
