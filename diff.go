package vscroll

// DiffKind classifies how a window moved relative to the previous one.
type DiffKind int

const (
	// DiffInitial means there was no previous window.
	DiffInitial DiffKind = iota
	// DiffForward means the window moved forward and still touches the previous one.
	DiffForward
	// DiffBackward means the window moved backward and still touches the previous one.
	DiffBackward
	// DiffDisjoint covers jumps and direction mismatches.
	DiffDisjoint
)

// String returns the kind name.
func (k DiffKind) String() string {
	switch k {
	case DiffInitial:
		return "initial"
	case DiffForward:
		return "forward"
	case DiffBackward:
		return "backward"
	default:
		return "disjoint"
	}
}

// Delta is the index-level result of comparing two windows. Each set holds
// at most two spans.
type Delta struct {
	Kind       DiffKind
	Added      []Span
	Removed    []Span
	Maintained []Span
}

// Diff compares the next window with the previous one (nil when there is none).
//
// Added and maintained together always cover next exactly, removed and
// maintained together always cover prev exactly, with no index in two sets.
// For the common forward step [10,19] -> [11,20] that is added [20],
// removed [10], maintained [11,19].
func Diff(next Span, prev *Span, dir Direction) Delta {
	if prev == nil {
		return Delta{Kind: DiffInitial, Added: nonEmpty(next)}
	}

	d := Delta{Kind: classify(next, *prev, dir)}

	overlap := next.Intersect(*prev)
	if overlap.Empty() {
		d.Added = nonEmpty(next)
		d.Removed = nonEmpty(*prev)
		return d
	}

	d.Added = subtract(next, overlap)
	d.Removed = subtract(*prev, overlap)
	d.Maintained = []Span{overlap}
	return d
}

func classify(next, prev Span, dir Direction) DiffKind {
	switch {
	case dir == Forward && next.Start <= prev.End:
		return DiffForward
	case dir == Backward && prev.Start <= next.End:
		return DiffBackward
	default:
		return DiffDisjoint
	}
}

// subtract returns the parts of s outside o, where o lies within s.
func subtract(s, o Span) []Span {
	var out []Span
	if s.Start < o.Start {
		out = append(out, Span{Start: s.Start, End: o.Start - 1})
	}
	if o.End < s.End {
		out = append(out, Span{Start: o.End + 1, End: s.End})
	}
	return out
}

func nonEmpty(s Span) []Span {
	if s.Empty() {
		return nil
	}
	return []Span{s}
}

// Changed reports whether anything entered or left the window.
func (d Delta) Changed() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// ItemChanges is a Delta resolved to items, as delivered to Handlers.
type ItemChanges[T any] struct {
	Kind       DiffKind
	Window     Window[T]
	All        []T // Every item of the new window, in order
	Added      []T
	Removed    []T
	Maintained []T
}

// materialize resolves a delta against the index.
func materialize[T comparable](ix *DimensionIndex[T], next Span, d Delta) ItemChanges[T] {
	c := ItemChanges[T]{
		Kind:       d.Kind,
		Window:     windowOf(ix, next),
		All:        ix.Items(next),
		Added:      collect(ix, d.Added),
		Removed:    collect(ix, d.Removed),
		Maintained: collect(ix, d.Maintained),
	}
	return c
}

func collect[T comparable](ix *DimensionIndex[T], spans []Span) []T {
	var out []T
	for _, s := range spans {
		out = append(out, ix.Items(s)...)
	}
	return out
}

func windowOf[T comparable](ix *DimensionIndex[T], s Span) Window[T] {
	w := Window[T]{Span: s}
	if s.Empty() || s.End >= ix.Len() {
		return w
	}
	w.StartItem = ix.Item(s.Start)
	w.EndItem = ix.Item(s.End)
	return w
}
