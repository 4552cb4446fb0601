/*
Package vscroll is a viewport-windowing engine for very large ordered lists.

It keeps the cumulative offset of every item and tells the host which slice
of the list to render, so a list of a million items costs about as much to
show as one of a hundred. The engine owns no presentation state: the host
draws, the engine decides what.

# Overview

Two nested windows ("tiers") are maintained over the list:

  - The placeholder tier covers PlaceholderPages client extents around the
    scroll offset and follows every scroll event. Hosts render cheap stand-ins
    for these items.
  - The visible tier covers VisiblePages client extents and is recomputed once
    scrolling pauses for VisibleDebounce. Hosts render these items fully.

The visible tier is always contained in the placeholder tier. Each change is
reported as an ItemChanges value: the whole window plus the items added,
removed and maintained since the previous window.

# Quick Start

	sched := vscroll.NewLoopScheduler(16)
	eng, err := vscroll.New(viewport, vscroll.Layout[*Row]{
	    Height: vscroll.Fixed[*Row](48),
	}, vscroll.Handlers[*Row]{
	    PlaceholderItemsChanged: func(c vscroll.ItemChanges[*Row]) { stubs.Set(c.All) },
	    VisibleItemsChanged:     func(c vscroll.ItemChanges[*Row]) { rows.Set(c.All) },
	    TotalExtentChanged:      func(h float64) { scrollbar.SetContent(h) },
	}, vscroll.WithScheduler(sched), vscroll.WithPlaceholderPages(5))
	if err != nil {
	    return err
	}
	defer eng.Close()
	eng.SetItems(rows)

	for {
	    select {
	    case run := <-sched.C():
	        run()
	    case ev := <-events:
	        if ev.scrolled {
	            eng.HandleScroll()
	        }
	    }
	}

# Sizes

Item heights come from a SizeRule: a fixed value, a per-item function, or a
Length that may be a percentage of the container width (widths only). Heights
exclude the gap; the engine adds Gap.Vertical to each item.

Rendered heights can differ from declared ones. Report them with ReportHeight,
or enable ObserveChanges and provide a Measurer: visible items are sampled
until two consecutive samples agree, then confirmed a few more times at a
slower rate. A correction never shrinks an item below its declared size.

# Multi-column

With MultiColumn set, items are packed into rows by their widths. Every item
of a row shares the row offset and the tallest height in the row, and windows
always end on a row boundary. Observed heights are not available in this mode.

# Scheduling

All debouncing, polling and animation goes through a Scheduler. Use a
ManualScheduler (the default) to drive time explicitly from a frame loop or a
test with Engine.Advance, or a LoopScheduler to run on wall-clock timers whose
callbacks are delivered to the host's loop goroutine.

# Configuration

Settings are applied with options (WithVisiblePages, WithGap, ...) or loaded
from YAML with LoadConfig and passed through WithConfig:

	visible_pages: 1
	placeholder_pages: 3
	adjust_factor: 0.5
	gap: {horizontal: 8, vertical: 4}
	visible_debounce: 150ms

Invalid settings are reported as *ConfigError values that match ErrConfig and
a specific sentinel such as ErrInvalidPages with errors.Is.

# Logging

The engine logs through log/slog. Debug records (window, diff and
reconciliation decisions) are dropped unless SetVerbose(true) is called;
SetLogger replaces the logger.
*/
package vscroll
