package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/wallrun/internal/domain/entity"
)

func TestTimers_FiresAtDeadline(t *testing.T) {
	timers := NewTimers()
	fired := 0
	timers.After(0.5, func() { fired++ })

	timers.Advance(0.25)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, timers.Pending())

	timers.Advance(0.25)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, timers.Pending())

	timers.Advance(1)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1.5, timers.Now())
}

func TestTimers_FiresInDeadlineOrder(t *testing.T) {
	timers := NewTimers()
	var order []string
	timers.After(0.5, func() { order = append(order, "late") })
	timers.After(0.25, func() { order = append(order, "early") })
	timers.After(0.5, func() { order = append(order, "late2") })

	timers.Advance(1)

	assert.Equal(t, []string{"early", "late", "late2"}, order)
}

func TestTimers_Cancel(t *testing.T) {
	timers := NewTimers()
	fired := false
	h := timers.After(0.5, func() { fired = true })

	assert.True(t, timers.Cancel(h))
	assert.False(t, timers.Cancel(h))
	assert.False(t, timers.Cancel(entity.TimerHandle(999)))

	timers.Advance(1)
	assert.False(t, fired)
}

func TestTimers_HandlesNotReused(t *testing.T) {
	timers := NewTimers()
	seen := make(map[entity.TimerHandle]bool)

	for i := 0; i < 10; i++ {
		h := timers.After(0, nil)
		require.NotZero(t, h)
		assert.False(t, seen[h])
		seen[h] = true
		timers.Advance(0)
	}
	assert.Equal(t, 0, timers.Pending())
}

func TestTimers_CallbackCancelsLaterTimer(t *testing.T) {
	timers := NewTimers()
	secondFired := false
	var second entity.TimerHandle
	timers.After(0.25, func() { timers.Cancel(second) })
	second = timers.After(0.5, func() { secondFired = true })

	timers.Advance(1)

	assert.False(t, secondFired)
	assert.Equal(t, 0, timers.Pending())
}

func TestTimers_CallbackSchedulesNextFrame(t *testing.T) {
	timers := NewTimers()
	fired := 0
	timers.After(0.25, func() {
		timers.After(0, func() { fired++ })
	})

	timers.Advance(0.25)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, timers.Pending())

	timers.Advance(0)
	assert.Equal(t, 1, fired)
}

func TestTimers_NegativeDelay(t *testing.T) {
	timers := NewTimers()
	fired := false
	timers.After(-1, func() { fired = true })

	timers.Advance(0)

	assert.True(t, fired)
}

func TestTimers_FiresOnFrameReachingDeadline(t *testing.T) {
	const dt = 1.0 / 60.0

	for start := 0; start < 600; start++ {
		timers := NewTimers()
		for i := 0; i < start; i++ {
			timers.Advance(dt)
		}

		fired := false
		timers.After(1.5, func() { fired = true })

		frames := 0
		for !fired && frames < 200 {
			timers.Advance(dt)
			frames++
		}
		require.Equal(t, 90, frames, "armed after %d frames", start)
	}
}
