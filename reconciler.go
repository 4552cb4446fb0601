package vscroll

import "time"

// MeasurePhase is the observation state of one item.
type MeasurePhase int

const (
	// MeasureUnmeasured items use their declared size and are not observed.
	MeasureUnmeasured MeasurePhase = iota
	// MeasureObserving items are being sampled until their size settles.
	MeasureObserving
	// MeasureStable items have a settled size and are no longer sampled.
	MeasureStable
)

// String returns the phase name.
func (p MeasurePhase) String() string {
	switch p {
	case MeasureObserving:
		return "observing"
	case MeasureStable:
		return "stable"
	default:
		return "unmeasured"
	}
}

// Measurer reads the rendered size of an item, excluding the gap.
// Returning an error (for example ErrNotMeasurable) skips the sample.
type Measurer[T any] interface {
	Measure(item T) (float64, error)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc[T any] func(item T) (float64, error)

// Measure calls f.
func (f MeasureFunc[T]) Measure(item T) (float64, error) {
	return f(item)
}

// confirmSamples is the number of samples taken after a size settles,
// the settled sample included.
const confirmSamples = 5

// confirmSlowdown stretches the poll interval once a size has settled.
const confirmSlowdown = 3

type obsStage int

const (
	stageHint    obsStage = iota // Waiting for hints to stop arriving
	stagePoll                    // Sampling every interval until two samples agree
	stageConfirm                 // Re-sampling the settled size at a slower pace
)

// observation is one item's pass through the settle state machine.
type observation[T any] struct {
	id      ItemID
	item    T
	stage   obsStage
	timer   Timer
	last    float64
	hasLast bool
	polls   int
	confirm int
}

// reconcileHost is the engine side of the reconciler.
type reconcileHost[T any] interface {
	measure(o *observation[T]) (float64, error)
	correct(o *observation[T], size float64)
	setPhase(o *observation[T], p MeasurePhase)
}

// reconciler drives late size corrections for observed items.
//
// An observation starts with a hint delay of one interval, reset by repeated
// hints. It then samples every interval, the first sample right away, until
// two consecutive samples agree or maxPolls samples were taken. The settled
// value is applied and confirmed by further samples at a slower pace, each of
// which is applied too. After that the item is stable.
type reconciler[T any] struct {
	sched    Scheduler
	host     reconcileHost[T]
	interval time.Duration
	maxPolls int
	active   map[ItemID]*observation[T]
}

func newReconciler[T any](sched Scheduler, host reconcileHost[T], interval time.Duration, maxPolls int) *reconciler[T] {
	return &reconciler[T]{
		sched:    sched,
		host:     host,
		interval: interval,
		maxPolls: maxPolls,
		active:   make(map[ItemID]*observation[T]),
	}
}

// observe starts or restarts the observation of an item. A hint on an item
// that is already in its hint delay resets the delay; an observation further
// along starts over.
func (r *reconciler[T]) observe(id ItemID, item T) {
	o, ok := r.active[id]
	if !ok {
		o = &observation[T]{id: id, item: item}
		r.active[id] = o
	} else {
		o.stop()
		*o = observation[T]{id: id, item: item}
	}
	r.host.setPhase(o, MeasureObserving)
	o.timer = r.sched.AfterFunc(r.interval, func() { r.poll(o) })
}

// cancel stops observing an item. Unless the item already settled it goes
// back to unmeasured.
func (r *reconciler[T]) cancel(id ItemID) {
	o, ok := r.active[id]
	if !ok {
		return
	}
	o.stop()
	delete(r.active, id)
	r.host.setPhase(o, MeasureUnmeasured)
}

// settle ends an observation with a size given by the host.
func (r *reconciler[T]) settle(id ItemID) {
	if o, ok := r.active[id]; ok {
		o.stop()
		delete(r.active, id)
	}
}

// cancelAll stops every observation.
func (r *reconciler[T]) cancelAll() {
	for id := range r.active {
		r.cancel(id)
	}
}

// observing reports whether an item has a running observation.
func (r *reconciler[T]) observing(id ItemID) bool {
	_, ok := r.active[id]
	return ok
}

func (r *reconciler[T]) poll(o *observation[T]) {
	o.timer = nil
	if r.active[o.id] != o {
		return
	}
	o.stage = stagePoll
	o.polls++

	size, err := r.host.measure(o)
	switch {
	case err != nil:
		logger.Debug("height sample skipped", "id", o.id, "err", err)
	case o.hasLast && size == o.last:
		r.settled(o, size)
		return
	default:
		o.last = size
		o.hasLast = true
	}

	if o.polls >= r.maxPolls {
		if o.hasLast {
			r.settled(o, o.last)
			return
		}
		// Never measurable: keep the declared size.
		logger.Debug("height observation gave up", "id", o.id, "polls", o.polls)
		delete(r.active, o.id)
		r.host.setPhase(o, MeasureUnmeasured)
		return
	}
	o.timer = r.sched.AfterFunc(r.interval, func() { r.poll(o) })
}

func (r *reconciler[T]) settled(o *observation[T], size float64) {
	logger.Debug("height settled", "id", o.id, "size", size, "polls", o.polls)
	o.stage = stageConfirm
	o.confirm = confirmSamples - 1
	r.host.correct(o, size)
	r.scheduleConfirm(o)
}

func (r *reconciler[T]) scheduleConfirm(o *observation[T]) {
	if o.confirm <= 0 {
		delete(r.active, o.id)
		r.host.setPhase(o, MeasureStable)
		return
	}
	o.timer = r.sched.AfterFunc(confirmSlowdown*r.interval, func() { r.confirmTick(o) })
}

func (r *reconciler[T]) confirmTick(o *observation[T]) {
	o.timer = nil
	if r.active[o.id] != o {
		return
	}
	o.confirm--
	size, err := r.host.measure(o)
	if err != nil {
		logger.Debug("confirmation sample skipped", "id", o.id, "err", err)
	} else {
		r.host.correct(o, size)
	}
	r.scheduleConfirm(o)
}

func (o *observation[T]) stop() {
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}
