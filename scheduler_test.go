package vscroll_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/go-theft-auto/vscroll"
)

func TestManualSchedulerOrder(t *testing.T) {
	s := vscroll.NewManualScheduler(time.Time{})
	var got []string

	s.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	s.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	s.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })

	if n := s.Advance(5 * time.Millisecond); n != 0 {
		t.Errorf("Advance(5ms) ran %d callbacks, want 0", n)
	}
	if n := s.Advance(25 * time.Millisecond); n != 3 {
		t.Errorf("Advance(25ms) ran %d callbacks, want 3", n)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestManualSchedulerClockDuringCallback(t *testing.T) {
	start := time.Unix(100, 0)
	s := vscroll.NewManualScheduler(start)

	var seen time.Time
	s.AfterFunc(40*time.Millisecond, func() { seen = s.Now() })
	s.Advance(time.Second)

	if want := start.Add(40 * time.Millisecond); !seen.Equal(want) {
		t.Errorf("Now() inside callback = %v, want %v", seen, want)
	}
	if want := start.Add(time.Second); !s.Now().Equal(want) {
		t.Errorf("Now() after Advance = %v, want %v", s.Now(), want)
	}
}

func TestManualSchedulerChainedCallbacks(t *testing.T) {
	s := vscroll.NewManualScheduler(time.Time{})
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		if ticks < 5 {
			s.AfterFunc(10*time.Millisecond, tick)
		}
	}
	s.AfterFunc(10*time.Millisecond, tick)

	s.Advance(35 * time.Millisecond)
	if ticks != 3 {
		t.Errorf("ticks after 35ms = %d, want 3", ticks)
	}
	s.Advance(time.Second)
	if ticks != 5 {
		t.Errorf("ticks after 1s = %d, want 5", ticks)
	}
}

func TestManualSchedulerStop(t *testing.T) {
	s := vscroll.NewManualScheduler(time.Time{})
	ran := false
	timer := s.AfterFunc(10*time.Millisecond, func() { ran = true })
	other := s.AfterFunc(20*time.Millisecond, func() {})

	if !timer.Stop() {
		t.Error("Stop() on a pending timer should return true")
	}
	if timer.Stop() {
		t.Error("second Stop() should return false")
	}
	s.Advance(time.Second)
	if ran {
		t.Error("stopped callback ran")
	}
	if other.Stop() {
		t.Error("Stop() after the callback ran should return false")
	}
}

func TestLoopSchedulerDelivers(t *testing.T) {
	s := vscroll.NewLoopScheduler(4)
	defer s.Close()

	ran := make(chan struct{}, 1)
	s.AfterFunc(time.Millisecond, func() { ran <- struct{}{} })

	select {
	case run := <-s.C():
		run()
	case <-time.After(2 * time.Second):
		t.Fatal("callback was never delivered")
	}
	select {
	case <-ran:
	default:
		t.Error("delivered callback did not run f")
	}
}

func TestLoopSchedulerStopDropsQueuedCallback(t *testing.T) {
	s := vscroll.NewLoopScheduler(4)
	defer s.Close()

	ran := false
	timer := s.AfterFunc(time.Millisecond, func() { ran = true })

	var run func()
	select {
	case run = <-s.C():
	case <-time.After(2 * time.Second):
		t.Fatal("callback was never delivered")
	}

	// Already queued, but stopped before the loop ran it.
	if !timer.Stop() {
		t.Error("Stop() before the callback ran should return true")
	}
	run()
	if ran {
		t.Error("stopped callback ran")
	}
}

func TestLoopSchedulerRunPending(t *testing.T) {
	s := vscroll.NewLoopScheduler(8)
	defer s.Close()

	if n := s.RunPending(); n != 0 {
		t.Errorf("RunPending() = %d on an empty queue", n)
	}
}
