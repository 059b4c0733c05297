package system

import (
	"sort"

	"github.com/younwookim/wallrun/internal/domain/entity"
)

// deadlineSlack absorbs the rounding that builds up when the clock is
// advanced by a repeating fractional dt
const deadlineSlack = 1e-9

type scheduledTimer struct {
	handle   entity.TimerHandle
	deadline float64
	fn       func()
}

// Timers is a frame clock that fires one-shot callbacks from Advance.
// Nothing fires between calls to Advance.
type Timers struct {
	now     float64
	next    entity.TimerHandle
	pending map[entity.TimerHandle]*scheduledTimer
}

// NewTimers creates an empty frame clock at time zero
func NewTimers() *Timers {
	return &Timers{
		pending: make(map[entity.TimerHandle]*scheduledTimer),
	}
}

// Now returns the accumulated clock time in seconds
func (t *Timers) Now() float64 {
	return t.now
}

// After schedules fn to run once delay seconds from now.
// Handles are never reused, so a stale handle cannot cancel a newer timer.
func (t *Timers) After(delay float64, fn func()) entity.TimerHandle {
	if delay < 0 {
		delay = 0
	}
	t.next++
	h := t.next
	t.pending[h] = &scheduledTimer{handle: h, deadline: t.now + delay, fn: fn}
	return h
}

// Cancel removes a pending timer. It returns false for unknown or fired handles.
func (t *Timers) Cancel(h entity.TimerHandle) bool {
	if _, ok := t.pending[h]; !ok {
		return false
	}
	delete(t.pending, h)
	return true
}

// Pending returns the number of timers waiting to fire
func (t *Timers) Pending() int {
	return len(t.pending)
}

// Advance moves the clock forward by dt and fires every timer that came due,
// earliest deadline first. A timer is due on the first Advance that brings
// the clock to its deadline. A timer is removed before its callback runs.
func (t *Timers) Advance(dt float64) {
	if dt > 0 {
		t.now += dt
	}

	var due []*scheduledTimer
	for _, st := range t.pending {
		if st.deadline <= t.now+deadlineSlack {
			due = append(due, st)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline == due[j].deadline {
			return due[i].handle < due[j].handle
		}
		return due[i].deadline < due[j].deadline
	})

	for _, st := range due {
		// An earlier callback may have canceled this one
		if _, ok := t.pending[st.handle]; !ok {
			continue
		}
		delete(t.pending, st.handle)
		if st.fn != nil {
			st.fn()
		}
	}
}
