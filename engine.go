package vscroll

import (
	"fmt"
	"time"
)

// Layout tells the engine how large items are.
type Layout[T any] struct {
	// Height is the declared height of each item, excluding the gap. Required.
	Height SizeRule[T]
	// Width is the declared width of each item, excluding the gap. Required in
	// multi-column mode; may use percentages of the container width.
	Width SizeRule[T]
	// Measure reads rendered heights. Required when observing changes.
	Measure Measurer[T]
	// HeightHint may return a known height for an item that just became
	// visible. The value is applied directly, without polling.
	HeightHint func(item T) (float64, bool)
}

// Handlers receive the engine's output. Nil handlers are skipped.
// Handlers run on the caller's goroutine. A Refresh requested from a handler
// is queued and runs after the current pass; every other engine call takes
// effect immediately.
type Handlers[T any] struct {
	PlaceholderItemsChanged func(ItemChanges[T])
	VisibleItemsChanged     func(ItemChanges[T])
	TotalExtentChanged      func(total float64)
	ContainerOffsetChanged  func(offset float64)
	ScrollCompleted         func()
	// HeightChanged fires when an observed or reported height changed an
	// item's effective size. size includes the vertical gap.
	HeightChanged func(item T, size float64)
}

// HeightChange names an item whose size may have changed. A nil Height asks
// the engine to measure the item.
type HeightChange[T any] struct {
	Item   T
	Height *float64
}

// Changed returns a HeightChange that measures item.
func Changed[T any](item T) HeightChange[T] {
	return HeightChange[T]{Item: item}
}

// ChangedTo returns a HeightChange with a known height, excluding the gap.
func ChangedTo[T any](item T, height float64) HeightChange[T] {
	return HeightChange[T]{Item: item, Height: &height}
}

// RefreshOptions tune a Refresh call.
type RefreshOptions[T any] struct {
	// ChangedItems are re-measured (or set to their given height) first.
	ChangedItems []HeightChange[T]
	// Delay postpones the refresh. Delayed refreshes coalesce: flags are
	// merged, changed items accumulate and the delay restarts.
	Delay time.Duration
	// OnlyLayout recomputes offsets and the total extent without
	// recomputing the windows.
	OnlyLayout bool
}

type tierMask int

const (
	placeholderTier tierMask = 1 << iota
	visibleTier
	bothTiers = placeholderTier | visibleTier
)

// refreshArgs is one queued pass over the index and the windows.
type refreshArgs[T any] struct {
	layout     bool
	onlyLayout bool
	changed    []HeightChange[T]
	tiers      tierMask
	// metrics is the viewport snapshot taken when a scroll event was
	// delivered. Nil reads the viewport when the pass runs.
	metrics *Metrics
}

func (a *refreshArgs[T]) merge(b refreshArgs[T]) {
	a.layout = a.layout || b.layout
	a.onlyLayout = a.onlyLayout && b.onlyLayout
	a.changed = append(a.changed, b.changed...)
	a.tiers |= b.tiers
	a.metrics = nil
}

// Engine computes which items of a large list to render. It owns the
// dimension index, both tier windows, the height reconciler and the scroll
// controller, and reports changes through Handlers.
//
// An Engine is not safe for concurrent use. Every method and every scheduler
// callback must run on the host's loop goroutine.
//
// Usage:
//
//	eng, err := vscroll.New(vp, vscroll.Layout[*Row]{
//	    Height: vscroll.Fixed[*Row](48),
//	}, vscroll.Handlers[*Row]{
//	    VisibleItemsChanged: func(c vscroll.ItemChanges[*Row]) { rows = c.All },
//	    TotalExtentChanged:  func(h float64) { scrollbar.SetContent(h) },
//	}, vscroll.WithPlaceholderPages(5))
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//	eng.SetItems(rows)
//
//	// from the host's scroll callback:
//	eng.HandleScroll()
type Engine[T comparable] struct {
	vp       Viewport
	layout   Layout[T]
	handlers Handlers[T]
	cfg      Config
	sched    Scheduler
	index    *DimensionIndex[T]
	recon    *reconciler[T]

	placeholder *Span
	visible     *Span
	direction   Direction
	lastOffset  float64
	scrolling   bool

	total              float64
	totalEmitted       bool
	containerOffset    float64
	containerOffsetSet bool

	visibleDebounce    debouncer
	resizeDebounce     debouncer
	refreshDebounce    debouncer
	correctionDebounce debouncer
	auditDebounce      debouncer
	lastAudit          time.Time
	audited            bool
	pending            refreshArgs[T]

	scroll scrollController

	refreshing bool
	deferred   []refreshArgs[T]
	closed     bool
}

// New creates an engine over viewport. It validates the layout and options;
// every problem is reported as a *ConfigError.
// The engine starts with an empty list; call SetItems to populate it.
func New[T comparable](viewport Viewport, layout Layout[T], handlers Handlers[T], opts ...Option) (*Engine[T], error) {
	if viewport == nil {
		return nil, configErr("Viewport", ErrNoViewport, "")
	}

	cfg := applyOptions(DefaultConfig(), opts)
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if err := validateLayout(layout, cfg); err != nil {
		return nil, err
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewManualScheduler(time.Time{})
	}

	e := &Engine[T]{
		vp:       viewport,
		layout:   layout,
		handlers: handlers,
		cfg:      cfg,
		index:    NewDimensionIndex[T](),
	}
	e.useScheduler(cfg.Scheduler)

	if _, err := e.index.Rebuild(nil, e.rules(viewport.Metrics())); err != nil {
		return nil, err
	}
	e.lastOffset = viewport.Metrics().Offset

	logger.Debug("engine created",
		"visiblePages", cfg.VisiblePages,
		"placeholderPages", cfg.PlaceholderPages,
		"adjustFactor", cfg.AdjustFactor,
		"multiColumn", cfg.MultiColumn,
		"observe", cfg.ObserveChanges)
	return e, nil
}

func validateLayout[T any](layout Layout[T], cfg Config) error {
	if !layout.Height.IsSet() {
		return configErr("Height", ErrNoSizeRule, "neither a constant nor a per-item rule is configured")
	}
	if cfg.MultiColumn && !layout.Width.IsSet() {
		return configErr("Width", ErrNoSizeRule, "multi-column mode needs a width rule")
	}
	if cfg.ObserveChanges && layout.Measure == nil {
		return configErr("Measure", ErrNoMeasurer, "")
	}
	return nil
}

// useScheduler points every timer owner at s.
func (e *Engine[T]) useScheduler(s Scheduler) {
	e.sched = s
	e.visibleDebounce = debouncer{sched: s}
	e.resizeDebounce = debouncer{sched: s}
	e.refreshDebounce = debouncer{sched: s}
	e.correctionDebounce = debouncer{sched: s}
	e.auditDebounce = debouncer{sched: s}
	e.recon = newReconciler[T](s, e, e.cfg.ObserveInterval, e.cfg.MaxSettleSamples)
}

// stopTimers cancels every pending callback.
func (e *Engine[T]) stopTimers() {
	e.visibleDebounce.stop()
	e.resizeDebounce.stop()
	e.refreshDebounce.stop()
	e.correctionDebounce.stop()
	e.auditDebounce.stop()
	e.pending = refreshArgs[T]{}
	if e.recon != nil {
		e.recon.cancelAll()
	}
	e.cancelScroll()
}

func (e *Engine[T]) rules(m Metrics) Rules[T] {
	return Rules[T]{
		Height:         e.layout.Height,
		Width:          e.layout.Width,
		Gap:            e.cfg.Gap,
		MultiColumn:    e.cfg.MultiColumn,
		ContainerWidth: m.ContainerWidth,
	}
}

// SetItems replaces the list. Records of items that stay in the list keep
// their identity and observed sizes. Both windows are reset and recomputed.
func (e *Engine[T]) SetItems(items []T) error {
	if e.closed {
		return nil
	}
	return e.rebuild(items, e.layout)
}

// SetLayout replaces the size rules, rebuilding the index and both windows.
func (e *Engine[T]) SetLayout(layout Layout[T]) error {
	if e.closed {
		return nil
	}
	if err := validateLayout(layout, e.cfg); err != nil {
		return err
	}
	return e.rebuild(e.currentItems(), layout)
}

func (e *Engine[T]) currentItems() []T {
	return e.index.Items(Span{Start: 0, End: e.index.Len() - 1})
}

func (e *Engine[T]) rebuild(items []T, layout Layout[T]) error {
	prevLayout := e.layout
	e.layout = layout
	if _, err := e.index.Rebuild(items, e.rules(e.vp.Metrics())); err != nil {
		e.layout = prevLayout
		return fmt.Errorf("rebuild index: %w", err)
	}
	e.resetWindows()
	return e.refresh(refreshArgs[T]{tiers: bothTiers})
}

// resetWindows drops both windows and every observation. Call after a rebuild.
func (e *Engine[T]) resetWindows() {
	e.recon.cancelAll()
	for i := range e.index.records {
		e.index.records[i].Visible = false
	}
	e.placeholder = nil
	e.visible = nil
}

// Configure applies options to a live engine. Changing the gap or the
// multi-column mode rebuilds the index; other changes recompute the windows.
func (e *Engine[T]) Configure(opts ...Option) error {
	if e.closed {
		return nil
	}
	next := applyOptions(e.cfg, opts)
	if err := next.Normalize(); err != nil {
		return err
	}
	if err := validateLayout(e.layout, next); err != nil {
		return err
	}
	if next.Scheduler == nil {
		next.Scheduler = e.sched
	}

	prev := e.cfg
	e.cfg = next

	if next.Scheduler != prev.Scheduler || next.ObserveInterval != prev.ObserveInterval || next.MaxSettleSamples != prev.MaxSettleSamples {
		e.stopTimers()
		e.useScheduler(next.Scheduler)
	}
	if prev.ObserveChanges && !next.ObserveChanges {
		e.recon.cancelAll()
	}

	if next.Gap != prev.Gap || next.MultiColumn != prev.MultiColumn {
		if _, err := e.index.Rebuild(e.currentItems(), e.rules(e.vp.Metrics())); err != nil {
			e.cfg = prev
			return fmt.Errorf("rebuild index: %w", err)
		}
		e.resetWindows()
	}
	return e.refresh(refreshArgs[T]{tiers: bothTiers})
}

// Refresh recomputes the windows. layoutChanged re-resolves every declared
// size first, keeping observed sizes that are still above their base.
func (e *Engine[T]) Refresh(layoutChanged bool, opts RefreshOptions[T]) error {
	if e.closed {
		return nil
	}
	if opts.Delay < 0 {
		return configErr("Delay", ErrInvalidDuration, opts.Delay.String())
	}

	args := refreshArgs[T]{
		layout:     layoutChanged,
		onlyLayout: opts.OnlyLayout,
		changed:    opts.ChangedItems,
		tiers:      bothTiers,
	}
	if opts.Delay == 0 {
		return e.refresh(args)
	}

	if e.refreshDebounce.pending() {
		e.pending.merge(args)
	} else {
		e.pending = args
	}
	e.refreshDebounce.schedule(opts.Delay, func() {
		args := e.pending
		e.pending = refreshArgs[T]{}
		if err := e.refresh(args); err != nil {
			logger.Warn("delayed refresh failed", "err", err)
		}
	})
	return nil
}

// refresh runs one pass, or queues it if a pass is already running.
func (e *Engine[T]) refresh(args refreshArgs[T]) error {
	if e.refreshing {
		e.deferred = append(e.deferred, args)
		return nil
	}
	e.refreshing = true
	defer func() { e.refreshing = false }()

	err := e.runRefresh(args)
	for len(e.deferred) > 0 {
		next := e.deferred[0]
		e.deferred = e.deferred[1:]
		if derr := e.runRefresh(next); derr != nil {
			logger.Warn("queued refresh failed", "err", derr)
		}
	}
	return err
}

func (e *Engine[T]) runRefresh(args refreshArgs[T]) error {
	if e.closed {
		return nil
	}
	var m Metrics
	if args.metrics != nil {
		m = *args.metrics
	} else {
		m = e.vp.Metrics()
	}

	if args.layout {
		if _, err := e.index.Rebuild(e.currentItems(), e.rules(m)); err != nil {
			return fmt.Errorf("refresh layout: %w", err)
		}
	}

	for _, c := range args.changed {
		e.applyChange(c)
	}

	e.ensureLayout()
	e.emitTotal()

	if args.onlyLayout {
		e.emitContainerOffset()
		return nil
	}
	if args.tiers&placeholderTier != 0 {
		e.refreshPlaceholders(m)
	}
	if args.tiers&visibleTier != 0 {
		e.refreshVisibles(m)
	}
	return nil
}

// applyChange updates one item from a HeightChange.
func (e *Engine[T]) applyChange(c HeightChange[T]) {
	i, ok := e.index.Lookup(c.Item)
	if !ok {
		return
	}
	var h float64
	if c.Height != nil {
		h = *c.Height
	} else {
		if e.layout.Measure == nil {
			return
		}
		measured, err := e.layout.Measure.Measure(c.Item)
		if err != nil {
			logger.Debug("changed item not measurable", "index", i, "err", err)
			return
		}
		h = measured
	}

	size := h + e.cfg.Gap.Vertical
	if e.index.ApplyCorrectionAt(i, size) && e.handlers.HeightChanged != nil {
		e.handlers.HeightChanged(c.Item, size)
	}
}

// ensureLayout brings offsets up to date with pending corrections.
func (e *Engine[T]) ensureLayout() {
	if e.index.Dirty() {
		total := e.index.Relayout()
		if verbose() {
			logger.Debug("relayout", "total", total)
		}
	}
}

func (e *Engine[T]) emitTotal() {
	total := e.index.TotalExtent()
	if e.totalEmitted && total == e.total {
		return
	}
	e.total = total
	e.totalEmitted = true
	if e.handlers.TotalExtentChanged != nil {
		e.handlers.TotalExtentChanged(total)
	}
}

func (e *Engine[T]) emitContainerOffset() {
	off := 0.0
	if e.placeholder != nil && !e.placeholder.Empty() && e.placeholder.Start < e.index.Len() {
		off = e.index.Offset(e.placeholder.Start)
	}
	if e.containerOffsetSet && off == e.containerOffset {
		return
	}
	e.containerOffset = off
	e.containerOffsetSet = true
	if e.handlers.ContainerOffsetChanged != nil {
		e.handlers.ContainerOffsetChanged(off)
	}
}

func (e *Engine[T]) windowParams(m Metrics, pages float64) WindowParams {
	return WindowParams{
		Offset:       m.Offset,
		ClientExtent: m.ClientExtent,
		ScrollExtent: m.ScrollExtent,
		Direction:    e.direction,
		Pages:        pages,
		AdjustFactor: e.cfg.AdjustFactor,
	}
}

func (e *Engine[T]) refreshPlaceholders(m Metrics) {
	next := ComputeWindow(e.index, e.windowParams(m, e.cfg.PlaceholderPages))
	if e.placeholder != nil && *e.placeholder == next {
		return
	}

	d := Diff(next, e.placeholder, e.direction)
	e.placeholder = &next
	logger.Debug("placeholder window", "start", next.Start, "end", next.End, "kind", d.Kind)

	if e.handlers.PlaceholderItemsChanged != nil {
		e.handlers.PlaceholderItemsChanged(materialize(e.index, next, d))
	}
	e.emitContainerOffset()
}

func (e *Engine[T]) refreshVisibles(m Metrics) {
	next := ComputeWindow(e.index, e.windowParams(m, e.cfg.VisiblePages))
	if e.visible != nil && *e.visible == next {
		return
	}

	prev := EmptySpan
	if e.visible != nil {
		prev = *e.visible
	}
	d := Diff(next, e.visible, e.direction)
	e.visible = &next
	e.index.setVisible(prev, next)
	logger.Debug("visible window", "start", next.Start, "end", next.End, "kind", d.Kind)

	e.trackVisibility(d)

	if e.handlers.VisibleItemsChanged != nil {
		e.handlers.VisibleItemsChanged(materialize(e.index, next, d))
	}
}

// trackVisibility starts observing items that entered the visible tier and
// stops observing items that left it.
func (e *Engine[T]) trackVisibility(d Delta) {
	for _, s := range d.Removed {
		for i := s.Start; i <= s.End && i < e.index.Len(); i++ {
			e.recon.cancel(e.index.records[i].ID)
		}
	}
	for _, s := range d.Added {
		for i := s.Start; i <= s.End && i < e.index.Len(); i++ {
			e.enterVisible(i)
		}
	}
}

func (e *Engine[T]) enterVisible(i int) {
	rec := e.index.records[i]
	item := e.index.Item(i)

	if e.layout.HeightHint != nil && rec.Phase != MeasureStable {
		if h, ok := e.layout.HeightHint(item); ok {
			e.reportHeightAt(i, h)
			return
		}
	}
	if e.cfg.ObserveChanges && rec.Phase == MeasureUnmeasured {
		e.recon.observe(rec.ID, item)
	}
}

// HandleScroll notifies the engine that the viewport scrolled. The
// placeholder tier follows immediately (or throttled by PlaceholderAudit);
// the visible tier waits until scrolling pauses for VisibleDebounce.
// Ignored while a programmatic scroll is running, unless it was started
// with KeepListening.
func (e *Engine[T]) HandleScroll() {
	if e.closed || e.scroll.suspends() {
		return
	}

	m := e.vp.Metrics()
	e.updateDirection(m.Offset)
	e.scrolling = true

	e.auditPlaceholders(m)
	e.visibleDebounce.schedule(e.cfg.VisibleDebounce, func() {
		e.scrolling = false
		if e.scroll.suspends() {
			return
		}
		if err := e.refresh(refreshArgs[T]{tiers: bothTiers}); err != nil {
			logger.Warn("visible refresh failed", "err", err)
		}
	})
}

// auditPlaceholders refreshes the placeholder tier, at most once per
// PlaceholderAudit interval with a trailing refresh for the last event.
func (e *Engine[T]) auditPlaceholders(m Metrics) {
	run := func(snapshot *Metrics) {
		if err := e.refresh(refreshArgs[T]{tiers: placeholderTier, metrics: snapshot}); err != nil {
			logger.Warn("placeholder refresh failed", "err", err)
		}
	}

	audit := e.cfg.PlaceholderAudit
	if audit <= 0 {
		run(&m)
		return
	}

	now := e.sched.Now()
	if !e.audited || now.Sub(e.lastAudit) >= audit {
		e.auditDebounce.stop()
		e.lastAudit = now
		e.audited = true
		run(&m)
		return
	}
	if !e.auditDebounce.pending() {
		e.auditDebounce.schedule(audit-now.Sub(e.lastAudit), func() {
			e.lastAudit = e.sched.Now()
			if e.scroll.suspends() {
				return
			}
			run(nil)
		})
	}
}

// updateDirection infers the direction from the offset change. An unchanged
// offset keeps the previous direction.
func (e *Engine[T]) updateDirection(offset float64) {
	switch {
	case offset > e.lastOffset:
		e.direction = Forward
	case offset < e.lastOffset:
		e.direction = Backward
	}
	e.lastOffset = offset
}

// HandleResize notifies the engine that the viewport changed size. After
// ResizeDebounce, multi-column layouts repack their rows and observed lists
// re-measure their visible items.
func (e *Engine[T]) HandleResize() {
	if e.closed {
		return
	}
	e.resizeDebounce.schedule(e.cfg.ResizeDebounce, e.onResize)
}

func (e *Engine[T]) onResize() {
	args := refreshArgs[T]{tiers: bothTiers}
	switch {
	case e.cfg.MultiColumn:
		args.layout = true
	case e.cfg.ObserveChanges && e.visible != nil:
		for _, item := range e.index.Items(*e.visible) {
			args.changed = append(args.changed, Changed(item))
		}
	}
	if err := e.refresh(args); err != nil {
		logger.Warn("resize refresh failed", "err", err)
	}
}

// ReportHeightHint tells the engine that an item's rendered height may be
// changing. The item is observed until its height settles.
// Returns false if the item is unknown or the layout has no Measurer.
func (e *Engine[T]) ReportHeightHint(item T) bool {
	if e.closed || e.cfg.MultiColumn || e.layout.Measure == nil {
		return false
	}
	i, ok := e.index.Lookup(item)
	if !ok {
		return false
	}
	e.recon.observe(e.index.records[i].ID, item)
	return true
}

// ReportHeight sets an item's rendered height (excluding the gap) directly.
// Returns whether the effective size changed.
func (e *Engine[T]) ReportHeight(item T, height float64) bool {
	if e.closed || e.cfg.MultiColumn {
		return false
	}
	i, ok := e.index.Lookup(item)
	if !ok {
		return false
	}
	return e.reportHeightAt(i, height)
}

func (e *Engine[T]) reportHeightAt(i int, height float64) bool {
	rec := e.index.records[i]
	e.recon.settle(rec.ID)
	rec.Phase = MeasureStable
	return e.correctAt(i, height)
}

// correctAt applies height plus the vertical gap and schedules the coalesced
// layout pass when the size changed. Heights below the declared size are
// rejected by the index.
func (e *Engine[T]) correctAt(i int, height float64) bool {
	size := height + e.cfg.Gap.Vertical
	if !e.index.ApplyCorrectionAt(i, size) {
		return false
	}
	logger.Debug("height corrected", "index", i, "size", size, "base", e.index.records[i].Base)
	if e.handlers.HeightChanged != nil {
		e.handlers.HeightChanged(e.index.Item(i), size)
	}
	e.scheduleCorrectionFlush()
	return true
}

func (e *Engine[T]) scheduleCorrectionFlush() {
	e.correctionDebounce.schedule(e.cfg.CorrectionCoalesce, func() {
		args := refreshArgs[T]{onlyLayout: !e.cfg.RefreshAfterCorrection, tiers: bothTiers}
		if err := e.refresh(args); err != nil {
			logger.Warn("correction refresh failed", "err", err)
		}
	})
}

// locate finds the current index of an observed item. Observed items are
// almost always in the visible window, so it is searched first.
func (e *Engine[T]) locate(id ItemID, item T) (int, bool) {
	if e.visible != nil {
		for i := e.visible.Start; i <= e.visible.End && i < e.index.Len(); i++ {
			if e.index.records[i].ID == id {
				return i, true
			}
		}
	}
	if i, ok := e.index.Lookup(item); ok && e.index.records[i].ID == id {
		return i, true
	}
	return 0, false
}

func (e *Engine[T]) measure(o *observation[T]) (float64, error) {
	if e.layout.Measure == nil {
		return 0, ErrNotMeasurable
	}
	if _, ok := e.locate(o.id, o.item); !ok {
		return 0, ErrUnknownItem
	}
	return e.layout.Measure.Measure(o.item)
}

func (e *Engine[T]) correct(o *observation[T], size float64) {
	if i, ok := e.locate(o.id, o.item); ok {
		e.correctAt(i, size)
	}
}

func (e *Engine[T]) setPhase(o *observation[T], p MeasurePhase) {
	if i, ok := e.locate(o.id, o.item); ok {
		rec := e.index.records[i]
		if p == MeasureUnmeasured && rec.Phase == MeasureStable {
			return
		}
		rec.Phase = p
	}
}

// TotalExtent returns the content extent with every pending correction applied.
func (e *Engine[T]) TotalExtent() float64 {
	e.ensureLayout()
	return e.index.TotalExtent()
}

// ScrollPosition returns the viewport's current offset.
func (e *Engine[T]) ScrollPosition() float64 {
	return e.vp.Metrics().Offset
}

// Direction returns the last inferred scroll direction.
func (e *Engine[T]) Direction() Direction {
	return e.direction
}

// Scrolling reports whether a scroll burst is in progress (the visible tier is
// waiting for its debounce).
func (e *Engine[T]) Scrolling() bool {
	return e.scrolling
}

// ContainerOffset returns the offset of the first placeholder item, where the
// host positions its rendered slice.
func (e *Engine[T]) ContainerOffset() float64 {
	return e.containerOffset
}

// PlaceholderWindow returns the placeholder tier window.
func (e *Engine[T]) PlaceholderWindow() Window[T] {
	if e.placeholder == nil {
		return Window[T]{Span: EmptySpan}
	}
	return windowOf(e.index, *e.placeholder)
}

// VisibleWindow returns the visible tier window.
func (e *Engine[T]) VisibleWindow() Window[T] {
	if e.visible == nil {
		return Window[T]{Span: EmptySpan}
	}
	return windowOf(e.index, *e.visible)
}

// Len returns the number of items.
func (e *Engine[T]) Len() int {
	return e.index.Len()
}

// Item returns the item at index i.
func (e *Engine[T]) Item(i int) T {
	return e.index.Item(i)
}

// Record returns the bookkeeping of the item at index i with offsets up to date.
func (e *Engine[T]) Record(i int) Record {
	e.ensureLayout()
	return e.index.Record(i)
}

// ItemID returns the stable identity of the first occurrence of item.
func (e *Engine[T]) ItemID(item T) (ItemID, bool) {
	i, ok := e.index.Lookup(item)
	if !ok {
		return "", false
	}
	return e.index.records[i].ID, true
}

// Config returns the normalized settings.
func (e *Engine[T]) Config() Config {
	return e.cfg
}

// Advance drives a host-clocked scheduler (such as ManualScheduler) by dt and
// returns the number of callbacks run. It is a no-op for other schedulers.
func (e *Engine[T]) Advance(dt time.Duration) int {
	if adv, ok := e.sched.(Advancer); ok {
		return adv.Advance(dt)
	}
	return 0
}

// Close stops every timer and observation. The engine ignores further calls.
func (e *Engine[T]) Close() {
	if e.closed {
		return
	}
	e.stopTimers()
	e.closed = true
}
