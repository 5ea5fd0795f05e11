package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-codemap/pkg/graph"
	"github.com/dd0wney/cluso-codemap/pkg/layout"
	"github.com/dd0wney/cluso-codemap/pkg/pubsub"
	"github.com/dd0wney/cluso-codemap/pkg/view"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2).
			MarginRight(2)

	canvasBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(0, 1)

	nodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF"))

	focusNodeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))

	edgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	focusEdgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Select  key.Binding
	Restart key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "right"),
		key.WithHelp("tab", "hover next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "left"),
		key.WithHelp("shift+tab", "hover prev"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select/deselect"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart layout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Select, k.Restart, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Select},
		{k.Restart, k.Quit},
	}
}

// frameInterval ties the simulation rate to the terminal redraw cadence.
const frameInterval = 33 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	cfg      layout.Config
	hits     []graph.Hit
	g        *graph.Graph
	bus      *pubsub.Bus[layout.Snapshot]
	animator *layout.Animator
	sched    *layout.Scheduler
	sub      *pubsub.Subscription[layout.Snapshot]
	snapshot layout.Snapshot
	state    view.State
	hoverIdx int
	help     help.Model
	keys     keyMap
	width    int
	height   int

	// ticking guards against stacking multiple pending tick commands when a
	// restart happens while a frame is already scheduled.
	ticking bool
}

func initialModel(hits []graph.Hit) model {
	bus := pubsub.NewBus[layout.Snapshot]()
	m := model{
		cfg:      layout.DefaultConfig(),
		hits:     hits,
		bus:      bus,
		animator: layout.NewAnimator(bus),
		hoverIdx: -1,
		help:     help.New(),
		keys:     keys,
	}
	m.restart()
	return m
}

// restart rebuilds the graph with a fresh random placement and swaps in a
// new scheduler run; the animator cancels any run still in flight.
func (m *model) restart() {
	if m.sub != nil {
		m.sub.Unsubscribe()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	m.g = graph.NewBuilder(m.cfg.Geometry(), rng).Build(m.hits)

	engine := layout.NewEngine(m.cfg, m.g)
	m.sched = m.animator.Start(engine, layout.DefaultMaxTicks)
	m.sub = m.bus.Subscribe(m.sched.ID().String(), layout.DefaultMaxTicks+8)

	m.snapshot = layout.Snapshot{
		RunID:     m.sched.ID(),
		Positions: engine.Positions(),
	}
	m.hoverIdx = -1
	m.state = view.State{}
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func (m *model) scheduleTick() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.ticking = false
		more := m.sched.Tick()
		m.drainSnapshot()
		if more {
			// Next tick is requested only after this snapshot is consumed.
			return m, m.scheduleTick()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.moveHover(1)
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.moveHover(-1)
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if m.state.SelectedID == m.state.HoverID {
				m.state.SelectedID = ""
			} else {
				m.state.SelectedID = m.state.HoverID
			}
			return m, nil

		case key.Matches(msg, m.keys.Restart):
			m.restart()
			return m, m.scheduleTick()
		}
	}

	return m, nil
}

func (m *model) drainSnapshot() {
	select {
	case snap := <-m.sub.C():
		m.snapshot = snap
	default:
	}
}

func (m *model) moveHover(delta int) {
	if m.g.NodeCount() == 0 {
		return
	}
	m.hoverIdx = (m.hoverIdx + delta + m.g.NodeCount()) % m.g.NodeCount()
	m.state.HoverID = m.g.Nodes[m.hoverIdx].ID
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("codemap · call graph layout"))
	b.WriteString("\n\n")

	stats := fmt.Sprintf(
		"nodes  %d\nedges  %d\ntick   %d/%d\nstatus %s",
		m.g.NodeCount(),
		m.g.EdgeCount(),
		m.sched.Ticks(),
		layout.DefaultMaxTicks,
		m.sched.Status(),
	)

	row := lipgloss.JoinHorizontal(
		lipgloss.Top,
		statsBoxStyle.Render(stats),
		canvasBoxStyle.Render(m.renderCanvas()),
	)
	b.WriteString(row)
	b.WriteString("\n")

	if focus := m.state.Focus(); focus != "" {
		if n, ok := m.g.Node(focus); ok {
			b.WriteString(labelStyle.Render(
				fmt.Sprintf("%s  %s:%d (%s)", n.Label, n.FilePath, n.StartLine, n.Kind)))
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// canvas cell dimensions; positions are scaled from the simulation canvas.
const (
	canvasCols = 72
	canvasRows = 22
)

type cell struct {
	ch    string
	style lipgloss.Style
}

// renderCanvas projects the latest snapshot onto a character grid: edges
// first, nodes on top so they stay visible.
func (m model) renderCanvas() string {
	grid := make([][]cell, canvasRows)
	for y := range grid {
		grid[y] = make([]cell, canvasCols)
		for x := range grid[y] {
			grid[y][x] = cell{ch: " "}
		}
	}

	pos := make(map[string][2]int, len(m.snapshot.Positions))
	for _, p := range m.snapshot.Positions {
		col := int(p.X / m.cfg.Width * float64(canvasCols-1))
		row := int(p.Y / m.cfg.Height * float64(canvasRows-1))
		pos[p.ID] = [2]int{clampInt(col, 0, canvasCols-1), clampInt(row, 0, canvasRows-1)}
	}

	for _, e := range m.g.Edges {
		src, okSrc := pos[e.SourceID]
		dst, okDst := pos[e.TargetID]
		if !okSrc || !okDst {
			continue
		}
		st := m.state.EdgeStyle(e)
		style := edgeStyle
		if st.Emphasized {
			style = focusEdgeStyle
		} else if st.Opacity < 1 {
			style = dimStyle
		}
		plotLine(grid, src, dst, style)
	}

	for _, n := range m.g.Nodes {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		st := m.state.NodeStyle(n.ID, m.g.Edges)
		ch := "●"
		style := nodeStyle
		switch {
		case st.Emphasized:
			ch = "◉"
			style = focusNodeStyle
		case st.Opacity < 1:
			style = dimStyle
		}
		grid[p[1]][p[0]] = cell{ch: ch, style: style}
	}

	lines := make([]string, canvasRows)
	for y, rowCells := range grid {
		var line strings.Builder
		for _, c := range rowCells {
			if c.ch == " " {
				line.WriteString(" ")
				continue
			}
			line.WriteString(c.style.Render(c.ch))
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

// plotLine draws a straight character line between two cells.
func plotLine(grid [][]cell, from, to [2]int, style lipgloss.Style) {
	dx := to[0] - from[0]
	dy := to[1] - from[1]
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		return
	}
	for i := 1; i < steps; i++ {
		x := from[0] + dx*i/steps
		y := from[1] + dy*i/steps
		if grid[y][x].ch == " " {
			grid[y][x] = cell{ch: "·", style: style}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func loadHits(path string) ([]graph.Hit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var hits []graph.Hit
	if err := json.Unmarshal(data, &hits); err != nil {
		return nil, fmt.Errorf("parsing hits file %s: %w", path, err)
	}
	return hits, nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, errorStyle.Render("usage: codemap-tui <hits.json>"))
		os.Exit(1)
	}

	hits, err := loadHits(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("loading hits: %v", err)))
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(hits), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("error: %v", err)))
		os.Exit(1)
	}
}
