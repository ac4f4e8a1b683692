// Package ui renders live build and check progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lev/internal/buildpipeline"
)

const statusWidth = 12

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	failedTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	statusColor = map[string]lipgloss.Color{
		"done":   "2",
		"cached": "4",
		"error":  "1",
		"queued": "7",
	}
)

func statusStyle(label string) lipgloss.Style {
	c, ok := statusColor[label]
	if !ok {
		c = "6" // stage verbs
	}
	return lipgloss.NewStyle().Foreground(c)
}

// fileRow is one line of the file list.
type fileRow struct {
	path   string
	status string
	stage  buildpipeline.Stage // last stage seen working
	final  bool
}

func (r fileRow) progress() float64 {
	if r.final {
		return 1
	}
	return r.stage.Weight()
}

type (
	eventMsg buildpipeline.Event
	doneMsg  struct{}
)

type progressModel struct {
	title   string
	events  <-chan buildpipeline.Event
	spinner spinner.Model
	bar     progress.Model

	items  []fileRow
	byPath map[string]int
	phase  string // label of the latest pipeline-wide event
	failed bool
	done   bool
	width  int
}

// NewProgressModel returns a Bubble Tea model fed from events. Files seen
// only in events are appended in arrival order.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusStyle(""))),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for _, f := range files {
		m.row(f)
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next)
}

// next blocks on the event channel; its closing ends the program.
func (m *progressModel) next() tea.Msg {
	ev, ok := <-m.events
	if !ok {
		return doneMsg{}
	}
	return eventMsg(ev)
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(buildpipeline.Event(msg)), m.next)
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) row(path string) *fileRow {
	i, ok := m.byPath[path]
	if !ok {
		i = len(m.items)
		m.byPath[path] = i
		m.items = append(m.items, fileRow{path: path, status: string(buildpipeline.StatusQueued)})
	}
	return &m.items[i]
}

func (m *progressModel) apply(ev buildpipeline.Event) tea.Cmd {
	label := ev.Label()
	if ev.File == "" {
		m.failed = m.failed || ev.Status == buildpipeline.StatusError
		if label != "" {
			m.phase = label
		}
		return nil
	}
	r := m.row(ev.File)
	if label != "" {
		r.status = label
	}
	if ev.Status == buildpipeline.StatusWorking {
		r.stage = ev.Stage
	}
	r.final = ev.Finished()
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.items {
		sum += r.progress()
	}
	return sum / float64(len(m.items))
}

// summary: "2/3 files, 1 failed".
func (m *progressModel) summary() string {
	var finished, failed int
	for _, r := range m.items {
		if r.final {
			finished++
		}
		if r.status == string(buildpipeline.StatusError) {
			failed++
		}
	}
	s := fmt.Sprintf("%d/%d files", finished, len(m.items))
	if failed > 0 {
		s += fmt.Sprintf(", %d failed", failed)
	}
	return s
}

func (m *progressModel) header() string {
	h := m.title + " " + m.summary()
	if m.phase != "" {
		h += " (" + m.phase + ")"
	}
	if m.done {
		h = "done: " + h
	} else {
		h = m.spinner.View() + " " + h
	}
	if m.failed {
		return failedTitle.Render(h)
	}
	return titleStyle.Render(h)
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header() + "\n\n")
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, r := range m.items {
		status := statusStyle(r.status).Render(fmt.Sprintf("%*s", statusWidth, r.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(r.path, nameWidth))
	}
	bar := m.bar.View()
	if m.done {
		bar = m.bar.ViewAs(1)
	}
	b.WriteString("\n" + bar + "\n")
	return b.String()
}

// truncate shortens value to width terminal cells, with "..." when room allows.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	// the tail counts toward width
	return runewidth.Truncate(value, width, "...")
}
