// Command tui scrolls one million rows in the terminal. Each row is one line;
// rows of the visible tier are rendered in full, rows that are only in the
// placeholder tier are dimmed stand-ins.
//
//	go run ./example/tui/
//
// Keys: up/down (k/j), pgup/pgdown, home/end (g/G), t jumps to a random row
// with an animation, q quits.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-theft-auto/vscroll"
)

const rowCount = 1_000_000

var (
	visibleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8E8E8"))
	indexStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DD6")).Bold(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#44474F"))
	statusStyle      = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#1E1E24")).
				Background(lipgloss.Color("#5B8DD6")).
				Padding(0, 1)
)

// termViewport is the row area of the terminal. Offsets are in lines.
type termViewport struct {
	offset  float64
	height  int
	width   int
	content float64
	eng     *vscroll.Engine[int]
}

func (v *termViewport) Metrics() vscroll.Metrics {
	return vscroll.Metrics{
		Offset:         v.offset,
		ClientExtent:   float64(v.height),
		ScrollExtent:   v.content,
		ContainerWidth: float64(v.width),
	}
}

func (v *termViewport) ScrollTo(offset float64) {
	offset = max(min(offset, vscroll.MaxScroll(v.content, float64(v.height))), 0)
	if offset == v.offset {
		return
	}
	v.offset = offset
	if v.eng != nil {
		v.eng.HandleScroll()
	}
}

// timerMsg carries one fired engine timer into the update loop.
type timerMsg func()

func waitTimer(s *vscroll.LoopScheduler) tea.Cmd {
	return func() tea.Msg {
		return timerMsg(<-s.C())
	}
}

type model struct {
	sched *vscroll.LoopScheduler
	vp    *termViewport
	eng   *vscroll.Engine[int]

	placeholderChanges int
	visibleChanges     int
	lastKind           vscroll.DiffKind
	err                error
}

func newModel() (*model, error) {
	m := &model{
		sched: vscroll.NewLoopScheduler(16),
		vp:    &termViewport{height: 24, width: 80},
	}
	eng, err := vscroll.New(m.vp, vscroll.Layout[int]{Height: vscroll.Fixed[int](1)}, vscroll.Handlers[int]{
		PlaceholderItemsChanged: func(c vscroll.ItemChanges[int]) { m.placeholderChanges++ },
		VisibleItemsChanged: func(c vscroll.ItemChanges[int]) {
			m.visibleChanges++
			m.lastKind = c.Kind
		},
		TotalExtentChanged: func(total float64) { m.vp.content = total },
	},
		vscroll.WithScheduler(m.sched),
		vscroll.WithVisiblePages(1),
		vscroll.WithPlaceholderPages(3),
		vscroll.WithVisibleDebounce(150*time.Millisecond),
	)
	if err != nil {
		return nil, err
	}
	m.eng = eng
	m.vp.eng = eng

	rows := make([]int, rowCount)
	for i := range rows {
		rows[i] = i
	}
	if err := eng.SetItems(rows); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *model) Init() tea.Cmd {
	return waitTimer(m.sched)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerMsg:
		msg()
		return m, waitTimer(m.sched)

	case tea.WindowSizeMsg:
		m.vp.width = msg.Width
		m.vp.height = max(msg.Height-1, 1)
		m.eng.HandleResize()
		if err := m.eng.Refresh(false, vscroll.RefreshOptions[int]{}); err != nil {
			m.err = err
		}

	case tea.KeyMsg:
		page := float64(m.vp.height)
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.vp.ScrollTo(m.vp.offset - 1)
		case "down", "j":
			m.vp.ScrollTo(m.vp.offset + 1)
		case "pgup":
			m.vp.ScrollTo(m.vp.offset - page)
		case "pgdown", " ":
			m.vp.ScrollTo(m.vp.offset + page)
		case "home", "g":
			m.vp.ScrollTo(0)
		case "end", "G":
			m.vp.ScrollTo(m.vp.content)
		case "t":
			m.err = m.eng.ScrollToIndex(rand.IntN(rowCount), vscroll.ScrollOptions{Duration: 300 * time.Millisecond})
		}
	}
	return m, nil
}

func (m *model) View() string {
	placeholder := m.eng.PlaceholderWindow()
	visible := m.eng.VisibleWindow()

	var b strings.Builder
	first := int(m.vp.offset)
	for line := 0; line < m.vp.height; line++ {
		i := first + line
		switch {
		case i >= m.eng.Len():
		case visible.Contains(i):
			b.WriteString(indexStyle.Render(fmt.Sprintf("%7d", i)))
			b.WriteString(visibleStyle.Render(fmt.Sprintf("  row %d, %s", i, m.eng.Record(i).ID)))
		case placeholder.Contains(i):
			b.WriteString(placeholderStyle.Render(fmt.Sprintf("%7d  %s", i, strings.Repeat("░", 24))))
		}
		b.WriteByte('\n')
	}

	status := fmt.Sprintf("placeholder %d-%d (%d)  visible %d-%d (%d, %s)  %s",
		placeholder.Start, placeholder.End, m.placeholderChanges,
		visible.Start, visible.End, m.visibleChanges, m.lastKind, m.eng.Direction())
	if m.eng.Scrolling() {
		status += "  scrolling"
	}
	if m.err != nil {
		status += "  error: " + m.err.Error()
	}
	b.WriteString(statusStyle.Render(status))
	return b.String()
}

func main() {
	m, err := newModel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer m.eng.Close()
	defer m.sched.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
