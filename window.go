package vscroll

import "sort"

// WindowParams are the inputs of one window computation.
type WindowParams struct {
	Offset       float64   // Current scroll position
	ClientExtent float64   // Visible extent of the container
	ScrollExtent float64   // Scrollable extent; 0 uses max(total extent, client extent)
	Direction    Direction // Inferred scroll direction
	Pages        float64   // Tier size in client extents, at least 1
	AdjustFactor float64   // Skew of the extra pages toward Direction, in [0,1]
}

// Bounds returns the covered offset range [lower, upper].
//
// The look-around span (pages-1)*client is split by the adjust factor:
// moving forward, (1+f)/2 of it lies ahead and (1-f)/2 behind; moving
// backward the roles swap. Look-behind never reaches before offset 0 and
// look-ahead never reaches past the end of the scrollable extent.
func (p WindowParams) Bounds() (lower, upper float64) {
	client := max(p.ClientExtent, 0)
	offset := max(p.Offset, 0)
	span := (max(p.Pages, 1) - 1) * client
	f := clampf(p.AdjustFactor, 0, 1)

	ahead := (1 + f) / 2 * span
	behind := (1 - f) / 2 * span
	if p.Direction == Backward {
		ahead, behind = behind, ahead
	}

	behind = clampf(behind, 0, offset)
	ahead = clampf(ahead, 0, max(p.ScrollExtent-client-offset, 0))

	return offset - behind, offset + client + ahead
}

// ComputeWindow returns the index range of items covering the bounds of p.
//
// Parameters:
//   - ext: Offsets of the laid-out items (usually a *DimensionIndex)
//   - p: Scroll sample, direction and tier size
//
// The start is the item containing the lower bound (first item whose end edge
// lies past it). The end is the first item whose end edge reaches the upper
// bound, or the last item. In multi-column layouts the end extends to the
// last item of its row. An empty list yields EmptySpan.
//
// Usage:
//
//	span := vscroll.ComputeWindow(ix, vscroll.WindowParams{
//	    Offset:       vp.Metrics().Offset,
//	    ClientExtent: 500,
//	    Pages:        3,
//	})
//	for i := span.Start; i <= span.End; i++ {
//	    // render ix.Item(i) at ix.Offset(i)
//	}
func ComputeWindow(ext Extents, p WindowParams) Span {
	n := ext.Len()
	if n == 0 {
		return EmptySpan
	}

	if p.ScrollExtent <= 0 {
		p.ScrollExtent = max(ext.End(n-1), p.ClientExtent)
	}
	lower, upper := p.Bounds()

	start := sort.Search(n, func(i int) bool { return ext.End(i) > lower })
	if start == n {
		// Offset beyond the content: keep the last item rather than an empty window.
		start = n - 1
	}

	end := sort.Search(n, func(i int) bool { return ext.End(i) >= upper })
	if end == n {
		end = n - 1
	}
	end = max(end, start)

	for end+1 < n && ext.SameRow(end, end+1) {
		end++
	}

	return Span{Start: start, End: end}
}

// ContentExtent returns the total scrollable extent for a list of height
// total shown in a container of the given client extent.
func ContentExtent(total, client float64) float64 {
	return max(total, client)
}

// MaxScroll returns the maximum valid scroll offset.
func MaxScroll(scrollExtent, client float64) float64 {
	return max(scrollExtent-client, 0)
}
