package vscroll_test

import (
	"reflect"
	"testing"

	"github.com/go-theft-auto/vscroll"
)

func span(start, end int) vscroll.Span {
	return vscroll.Span{Start: start, End: end}
}

func spanPtr(start, end int) *vscroll.Span {
	s := span(start, end)
	return &s
}

func TestDiffCases(t *testing.T) {
	tests := []struct {
		name       string
		next       vscroll.Span
		prev       *vscroll.Span
		dir        vscroll.Direction
		kind       vscroll.DiffKind
		added      []vscroll.Span
		removed    []vscroll.Span
		maintained []vscroll.Span
	}{
		{
			name:  "initial",
			next:  span(0, 9),
			kind:  vscroll.DiffInitial,
			added: []vscroll.Span{span(0, 9)},
		},
		{
			name:       "small forward step",
			next:       span(11, 20),
			prev:       spanPtr(10, 19),
			dir:        vscroll.Forward,
			kind:       vscroll.DiffForward,
			added:      []vscroll.Span{span(20, 20)},
			removed:    []vscroll.Span{span(10, 10)},
			maintained: []vscroll.Span{span(11, 19)},
		},
		{
			name:       "small backward step",
			next:       span(10, 19),
			prev:       spanPtr(11, 20),
			dir:        vscroll.Backward,
			kind:       vscroll.DiffBackward,
			added:      []vscroll.Span{span(10, 10)},
			removed:    []vscroll.Span{span(20, 20)},
			maintained: []vscroll.Span{span(11, 19)},
		},
		{
			name:    "jump",
			next:    span(180, 189),
			prev:    spanPtr(0, 9),
			dir:     vscroll.Forward,
			kind:    vscroll.DiffDisjoint,
			added:   []vscroll.Span{span(180, 189)},
			removed: []vscroll.Span{span(0, 9)},
		},
		{
			name:    "adjacent forward window",
			next:    span(10, 19),
			prev:    spanPtr(0, 9),
			dir:     vscroll.Forward,
			kind:    vscroll.DiffDisjoint,
			added:   []vscroll.Span{span(10, 19)},
			removed: []vscroll.Span{span(0, 9)},
		},
		{
			name:       "window grew on both sides",
			next:       span(5, 25),
			prev:       spanPtr(10, 19),
			dir:        vscroll.Forward,
			kind:       vscroll.DiffForward,
			added:      []vscroll.Span{span(5, 9), span(20, 25)},
			maintained: []vscroll.Span{span(10, 19)},
		},
		{
			name:       "window shrank",
			next:       span(12, 15),
			prev:       spanPtr(10, 19),
			dir:        vscroll.Backward,
			kind:       vscroll.DiffBackward,
			removed:    []vscroll.Span{span(10, 11), span(16, 19)},
			maintained: []vscroll.Span{span(12, 15)},
		},
		{
			name:       "unchanged",
			next:       span(3, 8),
			prev:       spanPtr(3, 8),
			dir:        vscroll.Forward,
			kind:       vscroll.DiffForward,
			maintained: []vscroll.Span{span(3, 8)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vscroll.Diff(tt.next, tt.prev, tt.dir)
			if got.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", got.Kind, tt.kind)
			}
			if !reflect.DeepEqual(got.Added, tt.added) {
				t.Errorf("Added = %v, want %v", got.Added, tt.added)
			}
			if !reflect.DeepEqual(got.Removed, tt.removed) {
				t.Errorf("Removed = %v, want %v", got.Removed, tt.removed)
			}
			if !reflect.DeepEqual(got.Maintained, tt.maintained) {
				t.Errorf("Maintained = %v, want %v", got.Maintained, tt.maintained)
			}
		})
	}
}

// indexSet flattens spans into a set, failing on duplicates.
func indexSet(t *testing.T, spans ...[]vscroll.Span) map[int]bool {
	t.Helper()
	set := make(map[int]bool)
	for _, list := range spans {
		for _, s := range list {
			for i := s.Start; i <= s.End; i++ {
				if set[i] {
					t.Fatalf("index %d appears twice in %v", i, spans)
				}
				set[i] = true
			}
		}
	}
	return set
}

func spanSet(s vscroll.Span) map[int]bool {
	set := make(map[int]bool)
	for i := s.Start; i <= s.End; i++ {
		set[i] = true
	}
	return set
}

func TestDiffRoundTrip(t *testing.T) {
	windows := []vscroll.Span{
		span(0, 9), span(0, 0), span(3, 12), span(9, 9), span(10, 19),
		span(5, 30), span(15, 16), span(40, 49), vscroll.EmptySpan,
	}

	for _, prev := range windows {
		for _, next := range windows {
			for _, dir := range []vscroll.Direction{vscroll.Forward, vscroll.Backward} {
				d := vscroll.Diff(next, &prev, dir)

				if got, want := indexSet(t, d.Added, d.Maintained), spanSet(next); !reflect.DeepEqual(got, want) {
					t.Errorf("prev %v next %v %s: added+maintained = %v, want %v", prev, next, dir, got, want)
				}
				if got, want := indexSet(t, d.Removed, d.Maintained), spanSet(prev); !reflect.DeepEqual(got, want) {
					t.Errorf("prev %v next %v %s: removed+maintained = %v, want %v", prev, next, dir, got, want)
				}
			}
		}
	}
}

func TestDiffKindString(t *testing.T) {
	names := map[vscroll.DiffKind]string{
		vscroll.DiffInitial:  "initial",
		vscroll.DiffForward:  "forward",
		vscroll.DiffBackward: "backward",
		vscroll.DiffDisjoint: "disjoint",
	}
	for k, want := range names {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
