package vscroll

import (
	"math"
	"time"
)

// ScrollOptions tune a programmatic scroll.
type ScrollOptions struct {
	// Duration animates the scroll with an ease-out curve. Zero jumps.
	Duration time.Duration
	// OffsetAdjust is added to the target offset, e.g. to leave room for a
	// sticky header.
	OffsetAdjust float64
	// OnComplete runs once when the scroll finishes. It never runs for a
	// scroll that was replaced by a newer one.
	OnComplete func()
	// KeepListening keeps HandleScroll active while the animation runs.
	KeepListening bool
}

// scrollController tracks the one programmatic scroll that may be in flight.
type scrollController struct {
	active        bool
	keepListening bool
	tw            tween
	timer         Timer
	onComplete    func()
	gen           uint64
}

// suspends reports whether scroll events are ignored right now.
func (c *scrollController) suspends() bool {
	return c.active && !c.keepListening
}

// ScrollToIndex scrolls so the item at index i starts at the top of the
// viewport. i is clamped to the list; in multi-column layouts the target is
// the first item of i's row.
func (e *Engine[T]) ScrollToIndex(i int, opts ScrollOptions) error {
	if e.closed {
		return nil
	}
	n := e.index.Len()
	if n == 0 {
		return e.ScrollToPosition(0, opts)
	}
	i = max(0, min(i, n-1))

	e.ensureLayout()
	if e.index.MultiColumn() {
		i = e.index.RowStart(i)
	}
	return e.ScrollToPosition(e.index.Offset(i), opts)
}

// ScrollToItem scrolls to the first occurrence of item.
func (e *Engine[T]) ScrollToItem(item T, opts ScrollOptions) error {
	if e.closed {
		return nil
	}
	i, ok := e.index.Lookup(item)
	if !ok {
		return ErrUnknownItem
	}
	return e.ScrollToIndex(i, opts)
}

// ScrollToPosition scrolls to an offset, clamped to the scrollable range.
// Any running animation is cancelled first. Once the viewport reaches the
// target, the windows are recomputed, opts.OnComplete runs and
// Handlers.ScrollCompleted fires.
func (e *Engine[T]) ScrollToPosition(position float64, opts ScrollOptions) error {
	if e.closed {
		return nil
	}
	if opts.Duration < 0 {
		return configErr("Duration", ErrInvalidDuration, opts.Duration.String())
	}
	if math.IsNaN(position) || math.IsInf(position, 0) || math.IsNaN(opts.OffsetAdjust) || math.IsInf(opts.OffsetAdjust, 0) {
		return configErr("Position", ErrInvalidPosition, "must be finite")
	}

	e.cancelScroll()
	e.ensureLayout()

	m := e.vp.Metrics()
	scrollExtent := m.ScrollExtent
	if scrollExtent <= 0 {
		scrollExtent = ContentExtent(e.index.TotalExtent(), m.ClientExtent)
	}
	target := clampf(position+opts.OffsetAdjust, 0, MaxScroll(scrollExtent, m.ClientExtent))

	if target == m.Offset || opts.Duration == 0 {
		if target != m.Offset {
			e.jump(target)
		}
		e.finishScroll(opts.OnComplete)
		return nil
	}

	e.scroll.gen++
	e.scroll.active = true
	e.scroll.keepListening = opts.KeepListening
	e.scroll.onComplete = opts.OnComplete
	e.scroll.tw = tween{
		from:     m.Offset,
		to:       target,
		start:    e.sched.Now(),
		duration: opts.Duration,
	}
	logger.Debug("scroll animation started", "from", m.Offset, "to", target, "duration", opts.Duration)
	e.scheduleFrame(e.scroll.gen)
	return nil
}

// jump moves the viewport in one step with scroll events suspended.
func (e *Engine[T]) jump(offset float64) {
	e.scroll.active = true
	e.scroll.keepListening = false
	e.vp.ScrollTo(offset)
	e.scroll.active = false
}

func (e *Engine[T]) scheduleFrame(gen uint64) {
	e.scroll.timer = e.sched.AfterFunc(e.cfg.FrameInterval, func() { e.frame(gen) })
}

func (e *Engine[T]) frame(gen uint64) {
	if gen != e.scroll.gen || !e.scroll.active {
		return
	}
	e.scroll.timer = nil

	pos, done := e.scroll.tw.at(e.sched.Now())
	e.vp.ScrollTo(pos)
	if !done {
		e.scheduleFrame(gen)
		return
	}

	onComplete := e.scroll.onComplete
	e.scroll = scrollController{gen: e.scroll.gen}
	e.finishScroll(onComplete)
}

// finishScroll runs the single refresh that ends a programmatic scroll.
func (e *Engine[T]) finishScroll(onComplete func()) {
	e.updateDirection(e.vp.Metrics().Offset)
	if err := e.refresh(refreshArgs[T]{tiers: bothTiers}); err != nil {
		logger.Warn("scroll refresh failed", "err", err)
	}
	if onComplete != nil {
		onComplete()
	}
	if e.handlers.ScrollCompleted != nil {
		e.handlers.ScrollCompleted()
	}
}

// cancelScroll stops the running animation. Its OnComplete is dropped.
func (e *Engine[T]) cancelScroll() {
	if !e.scroll.active {
		return
	}
	if e.scroll.timer != nil {
		e.scroll.timer.Stop()
	}
	logger.Debug("scroll animation cancelled", "to", e.scroll.tw.to)
	e.scroll = scrollController{gen: e.scroll.gen + 1}
}

// ScrollInProgress reports whether a programmatic scroll animation is running.
func (e *Engine[T]) ScrollInProgress() bool {
	return e.scroll.active
}
