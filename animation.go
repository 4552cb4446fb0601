package vscroll

import "time"

// tween moves a scroll offset from one position to another over a fixed
// duration. Frames sample it with the scheduler's clock, so a late frame
// jumps ahead instead of slowing the animation down.
type tween struct {
	from, to float64
	start    time.Time
	duration time.Duration
}

// at returns the offset for time now and whether the animation is over.
// The last frame always lands exactly on the target.
func (tw tween) at(now time.Time) (float64, bool) {
	if tw.duration <= 0 {
		return tw.to, true
	}
	progress := float64(now.Sub(tw.start)) / float64(tw.duration)
	if progress >= 1 {
		return tw.to, true
	}
	progress = max(progress, 0)
	return tw.from + (tw.to-tw.from)*easeOutQuad(progress), false
}

// easeOutQuad decelerates toward t=1. Monotonic on [0,1].
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
