// Package scheduler provides the virtual clock that drives every timed process in the
// shard: travel legs, construction, mine production and combat ticks.
//
// Events are kept in a heap ordered by due time then insertion order. Advancing the
// scheduler fires due events one at a time with Now() pinned to each event's due time,
// so tests can step simulated minutes in microseconds and production can follow the
// wall clock through Run.
package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// Scheduler is safe for concurrent use. Callbacks run on the goroutine calling
// Advance, AdvanceTo or Run, never concurrently with each other.
type Scheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	events  eventHeap
	running sync.Mutex
}

// New creates a scheduler whose clock starts at start
func New(start time.Time) *Scheduler {
	s := &Scheduler{now: start, events: make(eventHeap, 0)}
	heap.Init(&s.events)
	return s
}

// Now returns the current simulated time
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// After runs fn once, d after the current time. The event is dropped if ctx is
// cancelled or the timer stopped before it comes due.
func (s *Scheduler) After(ctx context.Context, d time.Duration, fn func(now time.Time)) *Timer {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &Timer{s: s, ctx: ctx, fn: fn}
	s.pushLocked(t, s.now.Add(d))
	return t
}

// Every runs fn first after the first delay and then every period until ctx is
// cancelled or the timer stopped.
func (s *Scheduler) Every(ctx context.Context, first, period time.Duration, fn func(now time.Time)) *Timer {
	if period <= 0 {
		panic("scheduler: non-positive period")
	}
	if first < 0 {
		first = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &Timer{s: s, ctx: ctx, fn: fn, period: period}
	s.pushLocked(t, s.now.Add(first))
	return t
}

// Advance moves the clock forward by d, firing everything that comes due on the way
func (s *Scheduler) Advance(d time.Duration) {
	s.AdvanceTo(s.Now().Add(d))
}

// AdvanceTo moves the clock to target, firing due events in order. The clock never
// moves backwards.
func (s *Scheduler) AdvanceTo(target time.Time) {
	s.running.Lock()
	defer s.running.Unlock()

	for {
		s.mu.Lock()
		if s.events.Len() == 0 || s.events[0].due.After(target) {
			if target.After(s.now) {
				s.now = target
			}
			s.mu.Unlock()
			return
		}
		ev := heap.Pop(&s.events).(*event)
		if ev.due.After(s.now) {
			s.now = ev.due
		}
		now := s.now
		t := ev.timer
		live := t.aliveLocked()
		if live && t.period > 0 {
			s.pushLocked(t, ev.due.Add(t.period))
		} else {
			t.pending = nil
		}
		s.mu.Unlock()

		if live {
			t.fn(now)
		}
	}
}

// Run follows the wall clock, advancing to clock.Now() every resolution until ctx
// is done.
func (s *Scheduler) Run(ctx context.Context, clock shared.Clock, resolution time.Duration) error {
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.AdvanceTo(clock.Now())
		}
	}
}

// Pending returns the number of queued events that can still fire
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.timer.aliveLocked() {
			n++
		}
	}
	return n
}

func (s *Scheduler) pushLocked(t *Timer, due time.Time) {
	s.seq++
	ev := &event{due: due, seq: s.seq, timer: t}
	t.pending = ev
	heap.Push(&s.events, ev)
}
