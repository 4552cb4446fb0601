package opengl

import "github.com/go-theft-auto/vscroll"

// TierSource is the read side of an engine a painter draws from.
// *vscroll.Engine satisfies it.
type TierSource[T any] interface {
	PlaceholderWindow() vscroll.Window[T]
	VisibleWindow() vscroll.Window[T]
	Record(i int) vscroll.Record
	ScrollPosition() float64
}

// Rect is an item rectangle in window coordinates.
type Rect struct {
	X, Y, W, H float32
}

// ItemRect places the item at Index.
type ItemRect struct {
	Index int
	Rect
}

// ListPainter draws the placeholder tier as flat blocks and the visible tier
// as outlined cards, each item placed at its offset minus the scroll position.
type ListPainter[T any] struct {
	Source TierSource[T]
	Gap    vscroll.Gap

	PlaceholderColor uint32
	VisibleColor     uint32
	BorderColor      uint32

	// Overscan extends the clip box above and below the viewport so tier
	// items outside it stay visible.
	Overscan float32
}

// NewListPainter returns a painter with the default palette.
func NewListPainter[T any](src TierSource[T], gap vscroll.Gap) *ListPainter[T] {
	return &ListPainter[T]{
		Source:           src,
		Gap:              gap,
		PlaceholderColor: RGBA(0x3a, 0x3d, 0x45, 0xff),
		VisibleColor:     RGBA(0x5b, 0x8d, 0xd6, 0xff),
		BorderColor:      RGBA(0xe8, 0xe8, 0xe8, 0xff),
	}
}

// Layout returns the rectangle of every placeholder-tier item inside the
// viewport box (x, y, w, h) in index order. Multi-column rows are laid out
// from the left using each item's declared width.
func (p *ListPainter[T]) Layout(x, y, w float32) []ItemRect {
	win := p.Source.PlaceholderWindow()
	if win.Empty() {
		return nil
	}
	scroll := float32(p.Source.ScrollPosition())
	gapH, gapV := float32(p.Gap.Horizontal), float32(p.Gap.Vertical)

	// Items before the window in the same row still take up width.
	var col float32
	for j := win.Start; j > 0; j-- {
		rec := p.Source.Record(j)
		if rec.RowStart {
			break
		}
		col += float32(p.Source.Record(j - 1).Width)
	}

	out := make([]ItemRect, 0, win.Len())
	for i := win.Start; i <= win.End; i++ {
		rec := p.Source.Record(i)
		if rec.RowStart {
			col = 0
		}
		r := Rect{
			X: x + col,
			Y: y + float32(rec.Offset) - scroll,
			W: w,
			H: float32(rec.Size()) - gapV,
		}
		if rec.Width > 0 {
			r.W = float32(rec.Width) - gapH
			col += float32(rec.Width)
		}
		out = append(out, ItemRect{Index: i, Rect: r})
	}
	return out
}

// Paint draws both tiers clipped to the viewport box (grown by Overscan) and
// returns the number of items drawn.
func (p *ListPainter[T]) Paint(dl *DrawList, x, y, w, h float32) int {
	rects := p.Layout(x, y, w)
	if len(rects) == 0 {
		return 0
	}
	visible := p.Source.VisibleWindow()

	top, bottom := y-p.Overscan, y+h+p.Overscan
	dl.PushClipRect(x, top, x+w, bottom)
	defer dl.PopClipRect()

	drawn := 0
	for _, r := range rects {
		if r.Y+r.H < top || r.Y > bottom {
			continue
		}
		if visible.Contains(r.Index) {
			dl.AddRect(r.X, r.Y, r.W, r.H, p.VisibleColor)
			dl.AddRectOutline(r.X, r.Y, r.W, r.H, p.BorderColor, 1)
		} else {
			dl.AddRect(r.X, r.Y, r.W, r.H, p.PlaceholderColor)
		}
		drawn++
	}
	return drawn
}
