package vscroll_test

import (
	"testing"

	"github.com/go-theft-auto/vscroll"
)

func uniformIndex(t *testing.T, n int, h float64) *vscroll.DimensionIndex[int] {
	t.Helper()
	ix := vscroll.NewDimensionIndex[int]()
	if _, err := ix.Rebuild(makeItems(n), uniformRules(h)); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}
	return ix
}

func TestComputeWindowScenarios(t *testing.T) {
	ix := uniformIndex(t, 1000, 50)

	tests := []struct {
		name   string
		params vscroll.WindowParams
		want   vscroll.Span
	}{
		{
			name:   "one page at top",
			params: vscroll.WindowParams{Offset: 0, ClientExtent: 500, Pages: 1},
			want:   vscroll.Span{Start: 0, End: 9},
		},
		{
			name:   "three pages at top split evenly",
			params: vscroll.WindowParams{Offset: 0, ClientExtent: 500, Pages: 3, AdjustFactor: 0},
			want:   vscroll.Span{Start: 0, End: 19},
		},
		{
			name:   "one page at 500",
			params: vscroll.WindowParams{Offset: 500, ClientExtent: 500, Pages: 1},
			want:   vscroll.Span{Start: 10, End: 19},
		},
		{
			name:   "one page at 550",
			params: vscroll.WindowParams{Offset: 550, ClientExtent: 500, Pages: 1},
			want:   vscroll.Span{Start: 11, End: 20},
		},
		{
			name:   "partially visible first item is included",
			params: vscroll.WindowParams{Offset: 525, ClientExtent: 500, Pages: 1},
			want:   vscroll.Span{Start: 10, End: 20},
		},
		{
			name:   "look-ahead clamped at the end",
			params: vscroll.WindowParams{Offset: 49500, ClientExtent: 500, Pages: 3},
			want:   vscroll.Span{Start: 980, End: 999},
		},
		{
			name:   "offset past the content keeps the last item",
			params: vscroll.WindowParams{Offset: 60000, ClientExtent: 500, Pages: 1},
			want:   vscroll.Span{Start: 999, End: 999},
		},
		{
			name:   "forward skews ahead",
			params: vscroll.WindowParams{Offset: 5000, ClientExtent: 500, Pages: 3, AdjustFactor: 1, Direction: vscroll.Forward},
			want:   vscroll.Span{Start: 100, End: 129},
		},
		{
			name:   "backward skews behind",
			params: vscroll.WindowParams{Offset: 5000, ClientExtent: 500, Pages: 3, AdjustFactor: 1, Direction: vscroll.Backward},
			want:   vscroll.Span{Start: 80, End: 109},
		},
		{
			name:   "pages below one act as one",
			params: vscroll.WindowParams{Offset: 0, ClientExtent: 500, Pages: 0.2},
			want:   vscroll.Span{Start: 0, End: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vscroll.ComputeWindow(ix, tt.params)
			if got != tt.want {
				t.Errorf("ComputeWindow() = %v, want %v", got, tt.want)
			}
			if again := vscroll.ComputeWindow(ix, tt.params); again != got {
				t.Errorf("ComputeWindow() not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestComputeWindowEmptyList(t *testing.T) {
	ix := uniformIndex(t, 0, 50)
	got := vscroll.ComputeWindow(ix, vscroll.WindowParams{ClientExtent: 500, Pages: 3})
	if got != vscroll.EmptySpan {
		t.Errorf("ComputeWindow() = %v, want %v", got, vscroll.EmptySpan)
	}
	if !got.Empty() || got.Len() != 0 {
		t.Errorf("empty span reports Len %d", got.Len())
	}
}

func TestComputeWindowShortList(t *testing.T) {
	ix := uniformIndex(t, 3, 50)
	got := vscroll.ComputeWindow(ix, vscroll.WindowParams{ClientExtent: 500, Pages: 3})
	if want := (vscroll.Span{Start: 0, End: 2}); got != want {
		t.Errorf("ComputeWindow() = %v, want %v", got, want)
	}
}

func TestBoundsClamp(t *testing.T) {
	p := vscroll.WindowParams{Offset: 100, ClientExtent: 500, ScrollExtent: 1000, Pages: 5, AdjustFactor: 0}
	lower, upper := p.Bounds()
	// span 2000 split 1000/1000; behind clamped to 100, ahead to 1000-500-100
	if lower != 0 {
		t.Errorf("lower = %v, want 0", lower)
	}
	if upper != 1000 {
		t.Errorf("upper = %v, want 1000", upper)
	}
}

func TestComputeWindowMultiColumnExtendsRow(t *testing.T) {
	ix := vscroll.NewDimensionIndex[int]()
	rules := vscroll.Rules[int]{
		Height:         vscroll.Fixed[int](50),
		Width:          vscroll.Fixed[int](100),
		MultiColumn:    true,
		ContainerWidth: 300,
	}
	if _, err := ix.Rebuild(makeItems(30), rules); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}

	got := vscroll.ComputeWindow(ix, vscroll.WindowParams{Offset: 0, ClientExtent: 100, Pages: 1})
	if want := (vscroll.Span{Start: 0, End: 5}); got != want {
		t.Errorf("ComputeWindow() = %v, want %v", got, want)
	}

	got = vscroll.ComputeWindow(ix, vscroll.WindowParams{Offset: 75, ClientExtent: 100, Pages: 1})
	if want := (vscroll.Span{Start: 3, End: 11}); got != want {
		t.Errorf("ComputeWindow() = %v, want %v", got, want)
	}
}

func TestVisibleWindowWithinPlaceholder(t *testing.T) {
	ix := uniformIndex(t, 1000, 37)

	for offset := 0.0; offset < 37000; offset += 613 {
		for _, dir := range []vscroll.Direction{vscroll.Forward, vscroll.Backward} {
			base := vscroll.WindowParams{Offset: offset, ClientExtent: 480, Direction: dir, AdjustFactor: 0.3}

			vp := base
			vp.Pages = 1.5
			ph := base
			ph.Pages = 4

			visible := vscroll.ComputeWindow(ix, vp)
			placeholder := vscroll.ComputeWindow(ix, ph)
			if visible.Start < placeholder.Start || visible.End > placeholder.End {
				t.Fatalf("offset %v %s: visible %v not within placeholder %v", offset, dir, visible, placeholder)
			}
		}
	}
}
