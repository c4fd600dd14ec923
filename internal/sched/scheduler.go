// Package sched is a single-threaded timer scheduler driven by simulation
// time. Time only moves when Advance is called, once per game tick, so every
// delayed or repeating action in a round is deterministic and testable.
package sched

import (
	"container/heap"
	"time"
)

// Scheduler owns all pending timers of one simulation.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
}

// New creates a scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current simulation time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Timer is a handle to a delayed or repeating callback.
type Timer struct {
	s        *Scheduler
	fn       func()
	due      time.Duration
	interval time.Duration
	seq      uint64
	index    int // position in the queue, -1 when not queued
}

// After runs fn once, delay after the current time.
func (s *Scheduler) After(delay time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	t := &Timer{s: s, fn: fn, index: -1}
	s.push(t, s.now+delay)
	return t
}

// Every runs fn each interval until cancelled. A non-positive interval
// yields a timer that never runs.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Timer {
	t := &Timer{s: s, fn: fn, interval: interval, index: -1}
	if interval <= 0 {
		return t
	}
	s.push(t, s.now+interval)
	return t
}

func (s *Scheduler) push(t *Timer, due time.Duration) {
	s.seq++
	t.due = due
	t.seq = s.seq
	heap.Push(&s.queue, t)
}

// Advance moves time forward by dt and runs every callback that becomes
// due, in due-time order. Callbacks may create or cancel timers.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now + dt
	for len(s.queue) > 0 {
		t := s.queue[0]
		if t.due > target {
			break
		}
		heap.Pop(&s.queue)
		s.now = t.due
		if t.interval > 0 {
			s.push(t, t.due+t.interval)
		}
		t.fn()
	}
	s.now = target
}

// Pending returns the number of live timers.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Cancel stops the timer. Cancelling twice is harmless.
func (t *Timer) Cancel() {
	if t == nil || t.index < 0 {
		return
	}
	heap.Remove(&t.s.queue, t.index)
}

// Active reports whether the timer will still fire.
func (t *Timer) Active() bool {
	return t != nil && t.index >= 0
}

// Group collects the timers of one entity so they can be cancelled together.
type Group struct {
	s         *Scheduler
	timers    []*Timer
	cancelled bool
}

// NewGroup creates an empty timer group.
func (s *Scheduler) NewGroup() *Group {
	return &Group{s: s}
}

// After schedules a one-shot timer owned by the group.
func (g *Group) After(delay time.Duration, fn func()) *Timer {
	if g.cancelled {
		return &Timer{s: g.s, fn: fn, index: -1}
	}
	return g.track(g.s.After(delay, fn))
}

// Every schedules a repeating timer owned by the group.
func (g *Group) Every(interval time.Duration, fn func()) *Timer {
	if g.cancelled {
		return &Timer{s: g.s, fn: fn, interval: interval, index: -1}
	}
	return g.track(g.s.Every(interval, fn))
}

func (g *Group) track(t *Timer) *Timer {
	live := g.timers[:0]
	for _, old := range g.timers {
		if old.Active() {
			live = append(live, old)
		}
	}
	g.timers = append(live, t)
	return t
}

// Cancel stops every timer of the group. Timers added afterwards are
// created already cancelled.
func (g *Group) Cancel() {
	g.cancelled = true
	for _, t := range g.timers {
		t.Cancel()
	}
	g.timers = nil
}

// Cancelled reports whether Cancel was called.
func (g *Group) Cancelled() bool {
	return g.cancelled
}

type taskQueue []*Timer

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
