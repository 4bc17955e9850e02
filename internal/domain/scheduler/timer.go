package scheduler

import (
	"container/heap"
	"context"
	"time"
)

// Timer is a handle on a scheduled one-shot or periodic event
type Timer struct {
	s       *Scheduler
	ctx     context.Context
	fn      func(now time.Time)
	period  time.Duration
	stopped bool
	pending *event
}

// Stop prevents any further firing. It reports whether an event was still pending.
func (t *Timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	if t.pending == nil {
		return false
	}
	if t.pending.index >= 0 {
		heap.Remove(&t.s.events, t.pending.index)
	}
	t.pending = nil
	return true
}

// Due returns when the timer fires next, and false when nothing is pending
func (t *Timer) Due() (time.Time, bool) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.pending == nil || !t.aliveLocked() {
		return time.Time{}, false
	}
	return t.pending.due, true
}

func (t *Timer) aliveLocked() bool {
	if t.stopped {
		return false
	}
	return t.ctx == nil || t.ctx.Err() == nil
}

type event struct {
	due   time.Time
	seq   uint64
	timer *Timer
	index int
}

type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x interface{}) {
	ev := x.(*event)
	ev.index = len(*h)
	*h = append(*h, ev)
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	ev.index = -1
	*h = old[:n-1]
	return ev
}
