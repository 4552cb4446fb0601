package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/vscroll"
)

// Trace is a scripted session: a list of integer items and the host events
// applied to it in order.
type Trace struct {
	Items          int             `yaml:"items"`
	Height         float64         `yaml:"height"`  // Declared height of every item
	Heights        map[int]float64 `yaml:"heights"` // Per-index overrides of Height
	Width          float64         `yaml:"width"`   // Item width, multi-column traces only
	ClientExtent   float64         `yaml:"client_extent"`
	ContainerWidth float64         `yaml:"container_width"`
	Steps          []Step          `yaml:"steps"`
}

// Step is one host event. Exactly one field is set.
type Step struct {
	Scroll        *float64       `yaml:"scroll"`
	Advance       *time.Duration `yaml:"advance"`
	Resize        *ResizeStep    `yaml:"resize"`
	Height        *HeightStep    `yaml:"height"`
	ScrollToIndex *ScrollStep    `yaml:"scroll_to_index"`
}

// ResizeStep changes the viewport size. Zero fields keep their value.
type ResizeStep struct {
	ClientExtent   float64 `yaml:"client_extent"`
	ContainerWidth float64 `yaml:"container_width"`
}

// HeightStep reports a rendered height for the item at Index.
type HeightStep struct {
	Index int     `yaml:"index"`
	Value float64 `yaml:"value"`
}

// ScrollStep starts a programmatic scroll.
type ScrollStep struct {
	Index        int           `yaml:"index"`
	Duration     time.Duration `yaml:"duration"`
	OffsetAdjust float64       `yaml:"offset_adjust"`
}

var errBadStep = errors.New("step must set exactly one action")

func (s Step) action() (string, error) {
	var names []string
	if s.Scroll != nil {
		names = append(names, "scroll")
	}
	if s.Advance != nil {
		names = append(names, "advance")
	}
	if s.Resize != nil {
		names = append(names, "resize")
	}
	if s.Height != nil {
		names = append(names, "height")
	}
	if s.ScrollToIndex != nil {
		names = append(names, "scroll_to_index")
	}
	if len(names) != 1 {
		return "", fmt.Errorf("%w, got %v", errBadStep, names)
	}
	return names[0], nil
}

// LoadTrace reads a trace file.
func LoadTrace(path string) (Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return Trace{}, fmt.Errorf("load trace %s: %w", path, err)
	}
	defer f.Close()

	tr, err := ParseTrace(f)
	if err != nil {
		return Trace{}, fmt.Errorf("load trace %s: %w", path, err)
	}
	return tr, nil
}

// ParseTrace decodes and validates a trace document.
func ParseTrace(r io.Reader) (Trace, error) {
	var tr Trace
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&tr); err != nil {
		return Trace{}, fmt.Errorf("decode trace: %w", err)
	}
	if tr.Items < 0 {
		return Trace{}, fmt.Errorf("items: must not be negative, got %d", tr.Items)
	}
	if tr.Height <= 0 {
		return Trace{}, fmt.Errorf("height: must be positive, got %g", tr.Height)
	}
	if tr.ClientExtent <= 0 {
		return Trace{}, fmt.Errorf("client_extent: must be positive, got %g", tr.ClientExtent)
	}
	for i, s := range tr.Steps {
		if _, err := s.action(); err != nil {
			return Trace{}, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return tr, nil
}

// traceViewport is a scripted scroll container. ScrollTo fires a scroll
// event like a real host would.
type traceViewport struct {
	m   vscroll.Metrics
	eng *vscroll.Engine[int]
}

func (v *traceViewport) Metrics() vscroll.Metrics { return v.m }

func (v *traceViewport) ScrollTo(offset float64) {
	if offset == v.m.Offset {
		return
	}
	v.m.Offset = offset
	if v.eng != nil {
		v.eng.HandleScroll()
	}
}

// replayer prints engine output as the trace runs.
type replayer struct {
	out   io.Writer
	sched *vscroll.ManualScheduler
	start time.Time
	lines int
}

func (r *replayer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, "%8s  "+format+"\n", append([]any{r.sched.Now().Sub(r.start)}, args...)...)
	r.lines++
}

func (r *replayer) tier(name string) func(vscroll.ItemChanges[int]) {
	return func(c vscroll.ItemChanges[int]) {
		r.printf("%-11s %-8s %-13s +%d -%d =%d", name, c.Kind, spanString(c.Window.Span),
			len(c.Added), len(c.Removed), len(c.Maintained))
	}
}

func spanString(s vscroll.Span) string {
	if s.Empty() {
		return "[]"
	}
	return fmt.Sprintf("[%d,%d]", s.Start, s.End)
}

// Replay runs tr through an engine configured by cfg on a manual clock and
// writes one line per engine event. It returns the number of lines written.
func Replay(out io.Writer, tr Trace, cfg vscroll.Config) (int, error) {
	sched := vscroll.NewManualScheduler(time.Time{})
	r := &replayer{out: out, sched: sched, start: sched.Now()}
	vp := &traceViewport{m: vscroll.Metrics{
		ClientExtent:   tr.ClientExtent,
		ContainerWidth: tr.ContainerWidth,
	}}

	layout := vscroll.Layout[int]{
		Height: vscroll.SizeFunc(func(_ int, i int) float64 {
			if h, ok := tr.Heights[i]; ok {
				return h
			}
			return tr.Height
		}),
	}
	if tr.Width > 0 {
		layout.Width = vscroll.Fixed[int](tr.Width)
	}

	eng, err := vscroll.New(vp, layout, vscroll.Handlers[int]{
		PlaceholderItemsChanged: r.tier("placeholder"),
		VisibleItemsChanged:     r.tier("visible"),
		TotalExtentChanged:      func(total float64) { r.printf("total       %g", total) },
		ContainerOffsetChanged:  func(off float64) { r.printf("container   %g", off) },
		ScrollCompleted:         func() { r.printf("scroll      completed at %g", vp.m.Offset) },
		HeightChanged:           func(item int, size float64) { r.printf("height      item %d size %g", item, size) },
	}, vscroll.WithConfig(cfg), vscroll.WithScheduler(sched))
	if err != nil {
		return r.lines, err
	}
	defer eng.Close()
	vp.eng = eng

	items := make([]int, tr.Items)
	for i := range items {
		items[i] = i
	}
	if err := eng.SetItems(items); err != nil {
		return r.lines, err
	}

	for i, s := range tr.Steps {
		if err := r.step(eng, vp, s); err != nil {
			return r.lines, fmt.Errorf("step %d: %w", i, err)
		}
	}
	// Let trailing debounces and animations finish.
	for {
		due, ok := sched.NextDue()
		if !ok {
			break
		}
		sched.Advance(due.Sub(sched.Now()))
	}
	return r.lines, nil
}

func (r *replayer) step(eng *vscroll.Engine[int], vp *traceViewport, s Step) error {
	switch {
	case s.Scroll != nil:
		vp.ScrollTo(*s.Scroll)
	case s.Advance != nil:
		eng.Advance(*s.Advance)
	case s.Resize != nil:
		if s.Resize.ClientExtent > 0 {
			vp.m.ClientExtent = s.Resize.ClientExtent
		}
		if s.Resize.ContainerWidth > 0 {
			vp.m.ContainerWidth = s.Resize.ContainerWidth
		}
		eng.HandleResize()
	case s.Height != nil:
		if s.Height.Index < 0 || s.Height.Index >= eng.Len() {
			return fmt.Errorf("height: index %d out of range", s.Height.Index)
		}
		eng.ReportHeight(eng.Item(s.Height.Index), s.Height.Value)
	case s.ScrollToIndex != nil:
		return eng.ScrollToIndex(s.ScrollToIndex.Index, vscroll.ScrollOptions{
			Duration:     s.ScrollToIndex.Duration,
			OffsetAdjust: s.ScrollToIndex.OffsetAdjust,
		})
	}
	return nil
}
