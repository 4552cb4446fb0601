package vscroll

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a pending callback. Stop prevents the callback from running and
// reports whether it did so.
type Timer interface {
	Stop() bool
}

// Scheduler is the engine's only suspension primitive. Every debounce, poll
// and animation frame is a single AfterFunc call; callbacks must run on the
// host's loop goroutine, never concurrently with engine calls.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// Advancer is implemented by schedulers whose time is driven by the host.
type Advancer interface {
	Advance(dt time.Duration) int
}

// =============================================================================
// ManualScheduler
// =============================================================================

// ManualScheduler runs callbacks in virtual time. Time only moves when the
// host calls Advance, typically once per frame with the frame's delta time.
// Callbacks due at the same instant run in the order they were scheduled.
//
// Usage:
//
//	s := vscroll.NewManualScheduler(time.Time{})
//	eng, _ := vscroll.New(vp, layout, handlers, vscroll.WithScheduler(s))
//	for !window.ShouldClose() {
//	    s.Advance(frameDelta)
//	    // draw
//	}
type ManualScheduler struct {
	now   time.Time
	queue timerQueue
	seq   uint64
}

// NewManualScheduler creates a scheduler whose clock starts at start.
// A zero start uses the Unix epoch.
func NewManualScheduler(start time.Time) *ManualScheduler {
	if start.IsZero() {
		start = time.Unix(0, 0)
	}
	return &ManualScheduler{now: start}
}

// Now returns the virtual time.
func (s *ManualScheduler) Now() time.Time {
	return s.now
}

// AfterFunc schedules f to run once virtual time has advanced by d.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.seq++
	t := &manualTimer{s: s, due: s.now.Add(max(d, 0)), seq: s.seq, f: f}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves virtual time forward by dt and runs every callback that came
// due, including callbacks scheduled by callbacks within the advanced range.
// Returns the number of callbacks run.
func (s *ManualScheduler) Advance(dt time.Duration) int {
	target := s.now.Add(max(dt, 0))
	ran := 0
	for len(s.queue) > 0 && !s.queue[0].due.After(target) {
		t := heap.Pop(&s.queue).(*manualTimer)
		if t.due.After(s.now) {
			s.now = t.due
		}
		t.done = true
		t.f()
		ran++
	}
	s.now = target
	return ran
}

// Pending returns the number of scheduled callbacks.
func (s *ManualScheduler) Pending() int {
	return len(s.queue)
}

// NextDue returns the time of the earliest pending callback.
func (s *ManualScheduler) NextDue() (time.Time, bool) {
	if len(s.queue) == 0 {
		return time.Time{}, false
	}
	return s.queue[0].due, true
}

type manualTimer struct {
	s     *ManualScheduler
	due   time.Time
	seq   uint64
	f     func()
	index int
	done  bool
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	heap.Remove(&t.s.queue, t.index)
	return true
}

// timerQueue is a min-heap ordered by due time, then scheduling order.
type timerQueue []*manualTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// =============================================================================
// LoopScheduler
// =============================================================================

// LoopScheduler uses wall-clock timers but never runs callbacks itself: fired
// callbacks are queued on a channel and the host runs them on its loop
// goroutine. A callback whose timer was stopped while it sat in the queue is
// dropped.
//
// Usage:
//
//	s := vscroll.NewLoopScheduler(64)
//	defer s.Close()
//	for {
//	    select {
//	    case run := <-s.C():
//	        run()
//	    case ev := <-hostEvents:
//	        // feed the engine
//	    }
//	}
type LoopScheduler struct {
	ch        chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewLoopScheduler creates a scheduler whose queue holds up to buffer fired
// callbacks before timer goroutines block.
func NewLoopScheduler(buffer int) *LoopScheduler {
	return &LoopScheduler{
		ch:   make(chan func(), max(buffer, 0)),
		done: make(chan struct{}),
	}
}

// Now returns the wall-clock time.
func (s *LoopScheduler) Now() time.Time {
	return time.Now()
}

// AfterFunc queues f on C once d has elapsed.
func (s *LoopScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{f: f}
	t.timer = time.AfterFunc(max(d, 0), func() {
		select {
		case s.ch <- t.run:
		case <-s.done:
		}
	})
	return t
}

// C delivers fired callbacks. The host must call each one on its loop goroutine.
func (s *LoopScheduler) C() <-chan func() {
	return s.ch
}

// RunPending runs every callback already queued without blocking and returns
// how many ran.
func (s *LoopScheduler) RunPending() int {
	ran := 0
	for {
		select {
		case run := <-s.ch:
			run()
			ran++
		default:
			return ran
		}
	}
}

// Close releases timer goroutines blocked on a full queue. Pending timers
// keep firing but their callbacks are discarded.
func (s *LoopScheduler) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

type loopTimer struct {
	timer   *time.Timer
	f       func()
	stopped atomic.Bool
	fired   atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.timer.Stop()
	return !t.fired.Load()
}

func (t *loopTimer) run() {
	if t.stopped.Load() || t.fired.Swap(true) {
		return
	}
	t.f()
}

// =============================================================================
// debouncer
// =============================================================================

// debouncer holds at most one pending timer; scheduling again resets the delay.
type debouncer struct {
	sched Scheduler
	timer Timer
}

// schedule (re)starts the delay. f runs once the delay elapses without
// another schedule or stop.
func (d *debouncer) schedule(delay time.Duration, f func()) {
	d.stop()
	var self Timer
	self = d.sched.AfterFunc(delay, func() {
		if d.timer == self {
			d.timer = nil
		}
		f()
	})
	d.timer = self
}

// stop cancels the pending call, if any.
func (d *debouncer) stop() bool {
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// pending reports whether a call is scheduled.
func (d *debouncer) pending() bool {
	return d.timer != nil
}
