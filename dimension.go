package vscroll

import (
	"math"
	"slices"
)

// Record is the bookkeeping kept for one item. Records live in the engine's
// side table; the caller's items are never modified.
type Record struct {
	ID          ItemID
	Index       int     // Position in the list at the last layout pass
	Offset      float64 // Sum of the extents of all preceding items (or rows)
	Base        float64 // Declared size, including the vertical gap
	Override    float64 // Observed size; only meaningful when HasOverride
	HasOverride bool
	Width       float64 // Declared width including the horizontal gap (multi-column only)
	Row         int     // Row number; equals Index in single-column mode
	RowStart    bool    // Item opens a new row
	RowExtent   float64 // Height of the item's row; equals Size in single-column mode
	Visible     bool    // Item belongs to the visible tier
	Phase       MeasurePhase
}

// Size returns the effective size: the override if set, else the base size.
func (r Record) Size() float64 {
	if r.HasOverride {
		return r.Override
	}
	return r.Base
}

// End returns the offset where the item's row ends.
func (r Record) End() float64 {
	return r.Offset + r.RowExtent
}

// Rules are the global sizing parameters of a rebuild.
type Rules[T any] struct {
	Height         SizeRule[T]
	Width          SizeRule[T] // Required in multi-column mode
	Gap            Gap
	MultiColumn    bool
	ContainerWidth float64 // Usable row width in multi-column mode
}

// Extents is the read side of the index used by the window calculator.
type Extents interface {
	Len() int
	End(i int) float64
	SameRow(i, j int) bool
}

// DimensionIndex keeps per-item sizes and the cumulative offset table.
// It is a pure data structure: mutations never trigger recomputation on
// their own, callers run Relayout when they are ready.
//
// Usage:
//
//	ix := vscroll.NewDimensionIndex[*Row]()
//	total, err := ix.Rebuild(rows, vscroll.Rules[*Row]{Height: vscroll.Fixed[*Row](50)})
//	if ix.ApplyCorrection(rows[3], 130) {
//	    total = ix.Relayout()
//	}
type DimensionIndex[T comparable] struct {
	items          []T
	records        []*Record
	table          *recordStore[itemKey[T], Record]
	multi          bool
	containerWidth float64
	total          float64
	dirtyFrom      int // First index whose offset is stale, -1 when clean
}

// NewDimensionIndex creates an empty index.
func NewDimensionIndex[T comparable]() *DimensionIndex[T] {
	return &DimensionIndex[T]{
		table:     newRecordStore[itemKey[T], Record](),
		dirtyFrom: -1,
	}
}

// Rebuild resolves every item's size and recomputes all offsets.
// Returns the total extent. On error the index is left unchanged.
// Overrides of items that stay in the list are kept unless they dropped
// below the new base size.
func (ix *DimensionIndex[T]) Rebuild(items []T, rules Rules[T]) (float64, error) {
	if !rules.Height.IsSet() {
		return 0, configErr("Height", ErrNoSizeRule, "neither a constant nor a per-item rule is configured")
	}
	if rules.MultiColumn && !rules.Width.IsSet() {
		return 0, configErr("Width", ErrNoSizeRule, "multi-column mode needs a width rule")
	}

	n := len(items)
	heights := make([]float64, n)
	var widths []float64
	if rules.MultiColumn {
		widths = make([]float64, n)
	}

	// Resolve everything first so a failing rule leaves the index untouched.
	for i, item := range items {
		h, err := rules.Height.resolve("Height", item, i, rules.ContainerWidth, false)
		if err != nil {
			return 0, err
		}
		heights[i] = h + rules.Gap.Vertical

		if rules.MultiColumn {
			w, err := rules.Width.resolve("Width", item, i, rules.ContainerWidth, true)
			if err != nil {
				return 0, err
			}
			widths[i] = w + rules.Gap.Horizontal
		}
	}

	gen := ix.table.Begin()
	occurrences := make(map[T]int, n)
	records := slices.Grow(ix.records[:0], n)

	for i, item := range items {
		nth := occurrences[item]
		occurrences[item] = nth + 1

		rec, _ := ix.table.Get(itemKey[T]{item: item, nth: nth}, func() Record {
			return Record{ID: newItemID()}
		})
		rec.Index = i
		rec.Base = heights[i]
		rec.Width = 0
		if rules.MultiColumn {
			rec.Width = widths[i]
		}
		if rec.HasOverride && (rules.MultiColumn || rec.Override <= rec.Base) {
			rec.HasOverride = false
			rec.Override = 0
		}
		records = append(records, rec)
	}
	if removed := ix.table.Sweep(gen); removed > 0 {
		logger.Debug("dimension index dropped stale records", "removed", removed)
	}

	clear(records[n:cap(records)])
	ix.records = records
	ix.items = slices.Clone(items)
	ix.multi = rules.MultiColumn
	ix.containerWidth = rules.ContainerWidth
	ix.dirtyFrom = -1
	ix.layoutFrom(0)

	return ix.total, nil
}

// ApplyCorrection sets the observed size of the first occurrence of item.
// See ApplyCorrectionAt.
func (ix *DimensionIndex[T]) ApplyCorrection(item T, size float64) bool {
	i, ok := ix.Lookup(item)
	if !ok {
		return false
	}
	return ix.ApplyCorrectionAt(i, size)
}

// ApplyCorrectionAt sets the observed size of the item at index i and reports
// whether the stored effective size changed. A size equal to the base clears
// the override; a size below the base is rejected, since the declared size is
// a lower bound. Offsets are not recomputed until Relayout.
func (ix *DimensionIndex[T]) ApplyCorrectionAt(i int, size float64) bool {
	if i < 0 || i >= len(ix.records) || ix.multi {
		return false
	}
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return false
	}

	rec := ix.records[i]
	if size < rec.Base {
		logger.Debug("correction below declared size rejected", "index", i, "size", size, "base", rec.Base)
		return false
	}
	if size == rec.Size() {
		return false
	}

	if size == rec.Base {
		rec.HasOverride = false
		rec.Override = 0
	} else {
		rec.HasOverride = true
		rec.Override = size
	}

	if ix.dirtyFrom < 0 || i < ix.dirtyFrom {
		ix.dirtyFrom = i
	}
	return true
}

// Dirty reports whether corrections are waiting for a Relayout.
func (ix *DimensionIndex[T]) Dirty() bool {
	return ix.dirtyFrom >= 0
}

// Relayout recomputes offsets from the first corrected item onward and
// returns the total extent.
func (ix *DimensionIndex[T]) Relayout() float64 {
	if ix.dirtyFrom < 0 {
		return ix.total
	}
	from := ix.dirtyFrom
	ix.dirtyFrom = -1
	ix.layoutFrom(from)
	return ix.total
}

// layoutFrom recomputes offsets starting at index start.
// Multi-column packing always restarts from the first row.
func (ix *DimensionIndex[T]) layoutFrom(start int) {
	if ix.multi {
		ix.layoutRows()
		return
	}

	off := 0.0
	if start > 0 && start <= len(ix.records) {
		off = ix.records[start-1].End()
	} else {
		start = 0
	}
	for i := start; i < len(ix.records); i++ {
		rec := ix.records[i]
		rec.Offset = off
		rec.Row = i
		rec.RowStart = true
		rec.RowExtent = rec.Size()
		off += rec.RowExtent
	}
	ix.total = off
}

// layoutRows packs items into rows using a running width accumulator.
// A row closes when the next item's width would overflow the container;
// every item of a row shares the row's offset and its tallest height.
func (ix *DimensionIndex[T]) layoutRows() {
	var (
		rowOffset, rowWidth, rowHeight float64
		rowBegin, row                  int
	)

	closeRow := func(end int) {
		for _, rec := range ix.records[rowBegin:end] {
			rec.Offset = rowOffset
			rec.RowExtent = rowHeight
		}
	}

	for i, rec := range ix.records {
		if i > rowBegin && rowWidth+rec.Width > ix.containerWidth {
			closeRow(i)
			rowOffset += rowHeight
			row++
			rowBegin = i
			rowWidth = 0
			rowHeight = 0
		}
		rowWidth += rec.Width
		rowHeight = max(rowHeight, rec.Size())
		rec.Row = row
		rec.RowStart = i == rowBegin
	}

	ix.total = 0
	if len(ix.records) > 0 {
		closeRow(len(ix.records))
		ix.total = rowOffset + rowHeight
	}
}

// TotalExtent returns the end of the last item as of the last layout pass,
// or 0 for an empty index.
func (ix *DimensionIndex[T]) TotalExtent() float64 {
	return ix.total
}

// Len returns the number of items.
func (ix *DimensionIndex[T]) Len() int {
	return len(ix.records)
}

// MultiColumn reports whether the last rebuild packed items into rows.
func (ix *DimensionIndex[T]) MultiColumn() bool {
	return ix.multi
}

// Item returns the item at index i.
func (ix *DimensionIndex[T]) Item(i int) T {
	return ix.items[i]
}

// Items returns the items in the range covered by span.
func (ix *DimensionIndex[T]) Items(s Span) []T {
	if s.Empty() || len(ix.items) == 0 {
		return nil
	}
	start := max(s.Start, 0)
	end := min(s.End, len(ix.items)-1)
	if end < start {
		return nil
	}
	return slices.Clone(ix.items[start : end+1])
}

// Record returns a copy of the bookkeeping for index i.
func (ix *DimensionIndex[T]) Record(i int) Record {
	return *ix.records[i]
}

// Lookup returns the index of the first occurrence of item.
func (ix *DimensionIndex[T]) Lookup(item T) (int, bool) {
	rec := ix.table.Lookup(itemKey[T]{item: item})
	if rec == nil {
		return 0, false
	}
	return rec.Index, true
}

// Offset returns the cumulative offset of index i.
func (ix *DimensionIndex[T]) Offset(i int) float64 {
	return ix.records[i].Offset
}

// End returns the end edge of index i's row.
func (ix *DimensionIndex[T]) End(i int) float64 {
	return ix.records[i].End()
}

// SameRow reports whether two indices share a row.
func (ix *DimensionIndex[T]) SameRow(i, j int) bool {
	if i < 0 || j < 0 || i >= len(ix.records) || j >= len(ix.records) {
		return false
	}
	return ix.records[i].Row == ix.records[j].Row
}

// RowStart returns the first index of the row containing i.
func (ix *DimensionIndex[T]) RowStart(i int) int {
	for i > 0 && ix.SameRow(i-1, i) {
		i--
	}
	return i
}

// setVisible updates visibility flags: indices in from lose the flag, indices
// in to gain it.
func (ix *DimensionIndex[T]) setVisible(from, to Span) {
	for i := max(from.Start, 0); i <= from.End && i < len(ix.records); i++ {
		ix.records[i].Visible = false
	}
	for i := max(to.Start, 0); i <= to.End && i < len(ix.records); i++ {
		ix.records[i].Visible = true
	}
}
