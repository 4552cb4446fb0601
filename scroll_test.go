package vscroll_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-theft-auto/vscroll"
)

func TestScrollToIndexJumps(t *testing.T) {
	f := newFixture(t, vscroll.Layout[int]{})
	done := 0

	err := f.eng.ScrollToIndex(100, vscroll.ScrollOptions{OnComplete: func() { done++ }})
	if err != nil {
		t.Fatalf("ScrollToIndex() error: %v", err)
	}
	if got := f.eng.ScrollPosition(); got != 5000 {
		t.Errorf("ScrollPosition() = %v, want 5000", got)
	}
	if done != 1 || f.rec.completed != 1 {
		t.Errorf("OnComplete ran %d times, ScrollCompleted %d times; want 1 each", done, f.rec.completed)
	}
	// The completion refresh updates the visible tier without waiting.
	if got := f.eng.VisibleWindow().Span; got != (vscroll.Span{Start: 100, End: 109}) {
		t.Errorf("VisibleWindow() = %v, want [100,109]", got)
	}
}

func TestScrollToIndexClamps(t *testing.T) {
	f := newFixture(t, vscroll.Layout[int]{})

	if err := f.eng.ScrollToIndex(5000, vscroll.ScrollOptions{}); err != nil {
		t.Fatalf("ScrollToIndex() error: %v", err)
	}
	// Index clamps to 999, the offset to the last full page.
	if got := f.eng.ScrollPosition(); got != 49500 {
		t.Errorf("ScrollPosition() = %v, want 49500", got)
	}

	if err := f.eng.ScrollToIndex(-3, vscroll.ScrollOptions{OffsetAdjust: -20}); err != nil {
		t.Fatalf("ScrollToIndex() error: %v", err)
	}
	if got := f.eng.ScrollPosition(); got != 0 {
		t.Errorf("ScrollPosition() = %v, want 0", got)
	}
}

func TestScrollOffsetAdjust(t *testing.T) {
	f := newFixture(t, vscroll.Layout[int]{})
	if err := f.eng.ScrollToIndex(10, vscroll.ScrollOptions{OffsetAdjust: -30}); err != nil {
		t.Fatalf("ScrollToIndex() error: %v", err)
	}
	if got := f.eng.ScrollPosition(); got != 470 {
		t.Errorf("ScrollPosition() = %v, want 470", got)
	}
}

func TestScrollToSamePositionCompletesSynchronously(t *testing.T) {
	f := newFixture(t, vscroll.Layout[int]{})
	done := 0

	err := f.eng.ScrollToPosition(0, vscroll.ScrollOptions{
		Duration:   time.Second,
		OnComplete: func() { done++ },
	})
	if err != nil {
		t.Fatalf("ScrollToPosition() error: %v", err)
	}
	if done != 1 {
		t.Errorf("OnComplete ran %d times, want 1", done)
	}
	if len(f.vp.scrolls) != 0 {
		t.Errorf("viewport was scrolled: %v", f.vp.scrolls)
	}
	if f.eng.ScrollInProgress() {
		t.Error("no animation should be running")
	}
}

func TestScrollAnimation(t *testing.T) {
	f := newFixture(t, vscroll.Layout[int]{})
	f.vp.onScroll = f.eng.HandleScroll
	done := 0

	err := f.eng.ScrollToIndex(100, vscroll.ScrollOptions{
		Duration:   160 * time.Millisecond,
		OnComplete: func() { done++ },
	})
	if err != nil {
		t.Fatalf("ScrollToIndex() error: %v", err)
	}
	if !f.eng.ScrollInProgress() {
		t.Fatal("animation should be running")
	}

	for i := 0; i < 9; i++ {
		f.eng.Advance(vscroll.DefaultFrameInterval)
	}
	if done != 0 {
		t.Fatal("completed before the duration elapsed")
	}
	if f.eng.Scrolling() {
		t.Error("scroll events during the animation must be ignored")
	}

	f.eng.Advance(vscroll.DefaultFrameInterval)
	if done != 1 || f.rec.completed != 1 {
		t.Fatalf("OnComplete ran %d times, ScrollCompleted %d times; want 1 each", done, f.rec.completed)
	}
	if len(f.vp.scrolls) != 10 {
		t.Errorf("frames = %d, want 10", len(f.vp.scrolls))
	}
	prev := 0.0
	for i, off := range f.vp.scrolls {
		if off < prev {
			t.Errorf("frame %d moved backward: %v after %v", i, off, prev)
		}
		prev = off
	}
	if got := f.eng.ScrollPosition(); got != 5000 {
		t.Errorf("ScrollPosition() = %v, want 5000", got)
	}
	if got := f.eng.VisibleWindow().Start; got != 100 {
		t.Errorf("VisibleWindow().Start = %d, want 100", got)
	}

	f.eng.Advance(time.Second)
	if done != 1 {
		t.Errorf("OnComplete ran %d times, want 1", done)
	}
}

func TestScrollAnimationSuspendsPendingScrollTimers(t *testing.T) {
	tests := []struct {
		name  string
		opts  []vscroll.Option
		burst []float64
	}{
		{"visible debounce", nil, []float64{100}},
		{"placeholder audit", []vscroll.Option{vscroll.WithPlaceholderAudit(100 * time.Millisecond)}, []float64{2000, 4000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, vscroll.Layout[int]{}, tt.opts...)
			for _, off := range tt.burst {
				f.scrollTo(off)
			}
			placeholders, visibles := len(f.rec.placeholder), len(f.rec.visible)

			if err := f.eng.ScrollToIndex(800, vscroll.ScrollOptions{Duration: time.Second}); err != nil {
				t.Fatalf("ScrollToIndex() error: %v", err)
			}
			f.eng.Advance(400 * time.Millisecond)
			if !f.eng.ScrollInProgress() {
				t.Fatal("animation should still be running")
			}
			if got := len(f.rec.placeholder); got != placeholders {
				t.Errorf("placeholder updates mid-animation = %d, want %d", got-placeholders, 0)
			}
			if got := len(f.rec.visible); got != visibles {
				t.Errorf("visible updates mid-animation = %d, want %d", got-visibles, 0)
			}

			f.eng.Advance(time.Second)
			if f.eng.ScrollInProgress() {
				t.Fatal("animation should have finished")
			}
			if got := f.eng.VisibleWindow().Start; got != 800 {
				t.Errorf("VisibleWindow().Start = %d, want 800", got)
			}
			if f.rec.completed != 1 {
				t.Errorf("ScrollCompleted ran %d times, want 1", f.rec.completed)
			}
		})
	}
}

func TestScrollAnimationKeepListening(t *testing.T) {
	f := newFixture(t, vscroll.Layout[int]{})
	f.vp.onScroll = f.eng.HandleScroll

	err := f.eng.ScrollToPosition(3000, vscroll.ScrollOptions{Duration: 100 * time.Millisecond, KeepListening: true})
	if err != nil {
		t.Fatalf("ScrollToPosition() error: %v", err)
	}
	f.eng.Advance(vscroll.DefaultFrameInterval)
	if !f.eng.Scrolling() {
		t.Error("scroll events should be handled with KeepListening")
	}
}

func TestScrollAnimationReplaced(t *testing.T) {
	f := newFixture(t, vscroll.Layout[int]{})
	first, second := 0, 0

	err := f.eng.ScrollToIndex(100, vscroll.ScrollOptions{
		Duration:   160 * time.Millisecond,
		OnComplete: func() { first++ },
	})
	if err != nil {
		t.Fatalf("ScrollToIndex() error: %v", err)
	}
	f.eng.Advance(2 * vscroll.DefaultFrameInterval)

	err = f.eng.ScrollToIndex(200, vscroll.ScrollOptions{
		Duration:   160 * time.Millisecond,
		OnComplete: func() { second++ },
	})
	if err != nil {
		t.Fatalf("ScrollToIndex() error: %v", err)
	}
	f.eng.Advance(time.Second)

	if first != 0 {
		t.Errorf("replaced animation completed %d times", first)
	}
	if second != 1 {
		t.Errorf("second animation completed %d times, want 1", second)
	}
	if got := f.eng.ScrollPosition(); got != 10000 {
		t.Errorf("ScrollPosition() = %v, want 10000", got)
	}
}

func TestScrollToItem(t *testing.T) {
	f := newFixture(t, vscroll.Layout[int]{})

	if err := f.eng.ScrollToItem(42, vscroll.ScrollOptions{}); err != nil {
		t.Fatalf("ScrollToItem() error: %v", err)
	}
	if got := f.eng.ScrollPosition(); got != 2100 {
		t.Errorf("ScrollPosition() = %v, want 2100", got)
	}

	if err := f.eng.ScrollToItem(-1, vscroll.ScrollOptions{}); !errors.Is(err, vscroll.ErrUnknownItem) {
		t.Errorf("ScrollToItem() error = %v, want ErrUnknownItem", err)
	}
}

func TestScrollToIndexSnapsToRowStart(t *testing.T) {
	layout := vscroll.Layout[int]{Width: vscroll.Fixed[int](100)}
	f := newFixture(t, layout, vscroll.WithMultiColumn(true))

	if err := f.eng.ScrollToIndex(7, vscroll.ScrollOptions{}); err != nil {
		t.Fatalf("ScrollToIndex() error: %v", err)
	}
	// Item 7 sits in row 2 (items 6-8).
	if got := f.eng.ScrollPosition(); got != 100 {
		t.Errorf("ScrollPosition() = %v, want 100", got)
	}
}

func TestScrollOptionErrors(t *testing.T) {
	f := newFixture(t, vscroll.Layout[int]{})

	err := f.eng.ScrollToPosition(10, vscroll.ScrollOptions{Duration: -time.Second})
	if !errors.Is(err, vscroll.ErrInvalidDuration) {
		t.Errorf("negative duration error = %v", err)
	}
	err = f.eng.ScrollToPosition(math.NaN(), vscroll.ScrollOptions{})
	if !errors.Is(err, vscroll.ErrInvalidPosition) {
		t.Errorf("NaN position error = %v", err)
	}
}
