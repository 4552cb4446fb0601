package vscroll

// Direction is the inferred scroll direction.
type Direction int

const (
	// Forward means the offset grew (content moves up, later items come in).
	Forward Direction = iota
	// Backward means the offset shrank.
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Tier is one of the two rendering fidelity levels.
type Tier int

const (
	// TierPlaceholder items are rendered as cheap stand-ins.
	TierPlaceholder Tier = iota
	// TierVisible items are fully rendered.
	TierVisible
)

// String returns the tier name.
func (t Tier) String() string {
	if t == TierVisible {
		return "visible"
	}
	return "placeholder"
}

// Span is an inclusive index range [Start, End]. End < Start means empty.
type Span struct {
	Start, End int
}

// EmptySpan is the canonical empty range.
var EmptySpan = Span{Start: 0, End: -1}

// Len returns the number of indices in the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start + 1
}

// Empty reports whether the span holds no index.
func (s Span) Empty() bool {
	return s.End < s.Start
}

// Contains reports whether i is inside the span.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i <= s.End
}

// Intersect returns the overlap of two spans (possibly empty).
func (s Span) Intersect(other Span) Span {
	out := Span{Start: max(s.Start, other.Start), End: min(s.End, other.End)}
	if out.Empty() {
		return EmptySpan
	}
	return out
}

// Window is the index range of one tier with references to its boundary items.
type Window[T any] struct {
	Span
	StartItem T
	EndItem   T
}

// Metrics is a sample of the scroll container, taken by the host.
type Metrics struct {
	Offset         float64 // Current scroll position
	ClientExtent   float64 // Visible extent of the container
	ScrollExtent   float64 // Scrollable extent reported by the host (0 = use the engine's total extent)
	ContainerWidth float64 // Usable width for multi-column packing
}

// Viewport is the host's scroll container.
// The engine never touches presentation state; it reads samples and requests
// scroll positions through this interface.
type Viewport interface {
	Metrics() Metrics
	ScrollTo(offset float64)
}

// clampf clamps a float64 value to a range.
func clampf(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
