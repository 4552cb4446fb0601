package opengl

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vscroll"
)

type fakeSource struct {
	records     []vscroll.Record
	placeholder vscroll.Span
	visible     vscroll.Span
	scroll      float64
}

func (s *fakeSource) PlaceholderWindow() vscroll.Window[int] {
	return vscroll.Window[int]{Span: s.placeholder}
}

func (s *fakeSource) VisibleWindow() vscroll.Window[int] {
	return vscroll.Window[int]{Span: s.visible}
}

func (s *fakeSource) Record(i int) vscroll.Record { return s.records[i] }

func (s *fakeSource) ScrollPosition() float64 { return s.scroll }

// column builds n single-column records of the given size.
func column(n int, size float64) []vscroll.Record {
	recs := make([]vscroll.Record, n)
	for i := range recs {
		recs[i] = vscroll.Record{
			Index:     i,
			Offset:    float64(i) * size,
			Base:      size,
			Row:       i,
			RowStart:  true,
			RowExtent: size,
		}
	}
	return recs
}

func TestListPainterSingleColumn(t *testing.T) {
	src := &fakeSource{
		records:     column(10, 50),
		placeholder: vscroll.Span{Start: 0, End: 9},
		visible:     vscroll.Span{Start: 2, End: 4},
		scroll:      75,
	}
	p := NewListPainter[int](src, vscroll.Gap{Vertical: 10})

	rects := p.Layout(0, 0, 300)
	require.Len(t, rects, 10)
	for i, r := range rects {
		assert.Equal(t, i, r.Index, "rects are in index order")
	}
	assert.Equal(t, Rect{X: 0, Y: -75, W: 300, H: 40}, rects[0].Rect)
	assert.Equal(t, Rect{X: 0, Y: 75, W: 300, H: 40}, rects[3].Rect)

	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	// Items 1-5 intersect a 200px viewport.
	assert.Equal(t, 5, p.Paint(dl, 0, 0, 300, 200))
	// Three visible cards (fill plus four border edges) and two blocks.
	assert.Equal(t, 3*5+2, dl.Rects())
}

func TestListPainterRowsStartMidRow(t *testing.T) {
	recs := make([]vscroll.Record, 9)
	for i := range recs {
		recs[i] = vscroll.Record{
			Index:     i,
			Offset:    float64(i/3) * 60,
			Base:      60,
			Width:     100,
			Row:       i / 3,
			RowStart:  i%3 == 0,
			RowExtent: 60,
		}
	}
	src := &fakeSource{records: recs, placeholder: vscroll.Span{Start: 4, End: 6}, visible: vscroll.EmptySpan}
	p := NewListPainter[int](src, vscroll.Gap{Horizontal: 10})

	rects := p.Layout(20, 0, 300)
	require.Len(t, rects, 3)
	assert.Equal(t, ItemRect{Index: 4, Rect: Rect{X: 120, Y: 60, W: 90, H: 60}}, rects[0])
	assert.Equal(t, ItemRect{Index: 5, Rect: Rect{X: 220, Y: 60, W: 90, H: 60}}, rects[1])
	assert.Equal(t, ItemRect{Index: 6, Rect: Rect{X: 20, Y: 120, W: 90, H: 60}}, rects[2])
}

func TestListPainterPaintIsDeterministic(t *testing.T) {
	src := &fakeSource{
		records:     column(50, 20),
		placeholder: vscroll.Span{Start: 0, End: 49},
		visible:     vscroll.Span{Start: 10, End: 19},
	}
	p := NewListPainter[int](src, vscroll.Gap{})

	paint := func() []Vertex {
		dl := AcquireDrawList()
		defer ReleaseDrawList(dl)
		p.Paint(dl, 0, 0, 100, 1000)
		return append([]Vertex(nil), dl.VtxBuffer...)
	}
	first := paint()
	for range 5 {
		assert.Equal(t, first, paint())
	}
	// Item 0 is drawn first.
	assert.Equal(t, [2]float32{0, 0}, first[0].Pos)
}

func TestListPainterEmpty(t *testing.T) {
	src := &fakeSource{placeholder: vscroll.EmptySpan, visible: vscroll.EmptySpan}
	p := NewListPainter[int](src, vscroll.Gap{})

	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)
	assert.Zero(t, p.Paint(dl, 0, 0, 100, 100))
	assert.Empty(t, dl.CmdBuffer)
}

func TestClampOffset(t *testing.T) {
	assert.Equal(t, 0.0, clampOffset(-20, 1000, 400))
	assert.Equal(t, 600.0, clampOffset(900, 1000, 400))
	assert.Equal(t, 0.0, clampOffset(50, 300, 400), "short content cannot scroll")
	assert.Equal(t, 5000.0, clampOffset(5000, 0, 400), "unknown content only clamps at zero")
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want float64
	}{
		{glfw.KeyUp, 460},
		{glfw.KeyDown, 540},
		{glfw.KeyPageUp, 100},
		{glfw.KeyPageDown, 900},
		{glfw.KeyHome, 0},
		{glfw.KeyEnd, 10000},
	}
	for _, tt := range tests {
		got, ok := navigate(tt.key, 500, 40, 400, 10000)
		assert.True(t, ok, "key %d", tt.key)
		assert.Equal(t, tt.want, got, "key %d", tt.key)
	}

	_, ok := navigate(glfw.KeyA, 500, 40, 400, 10000)
	assert.False(t, ok)
}
