package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/duckstorm/internal/storage"
)

const (
	maxRuns      = 100
	narrowTable  = 55 // below this the date column goes
	tabTitleRoom = 10
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// RunLister reads recorded runs.
type RunLister interface {
	TopRuns(mode string, limit int) ([]storage.Run, error)
}

// boardTab is one scoreboard page. An empty mode lists every run.
type boardTab struct {
	mode  string
	title string
}

func boardTabs() []boardTab {
	tabs := []boardTab{{mode: "", title: "All runs"}}
	for _, it := range MenuItems() {
		tabs = append(tabs, boardTab{mode: string(it.Preset), title: it.Title})
	}
	return tabs
}

// ScoreboardKeyMap binds scrolling and difficulty tabs.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns the stock scoreboard keys.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "harder"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "easier"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	tabs        []boardTab
	cursor      int
	store       RunLister
	runs        []storage.Run
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store RunLister, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		tabs:   boardTabs(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable sizes the run columns for the current tab and width. The All
// tab adds the difficulty each run was played on.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Lvl", Width: 4},
		{Title: "Kills", Width: 6},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 12},
	}

	if m.tabMode() == "" {
		columns = append(columns, table.Column{Title: "Mode", Width: 7})
	}
	if m.width-4 < narrowTable {
		columns = append(columns[:5:5], columns[6:]...)
	}

	// title, tabs, frame, count and help take eight rows
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m ScoreboardModel) tabMode() string {
	if len(m.tabs) == 0 {
		return ""
	}
	return m.tabs[m.cursor].mode
}

func (m *ScoreboardModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		if runs, err := m.store.TopRuns(m.tabMode(), maxRuns); err == nil {
			m.runs = runs
		}
	}
	m.table = m.createTable()
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	cols := len(m.table.Columns())
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Kills),
			formatDuration(r.Duration),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
		if m.tabMode() == "" {
			row = append(row, r.Mode)
		}
		if cols < len(row) {
			row = append(row[:5:5], row[6:]...)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func (m *ScoreboardModel) moveTab(delta int) {
	if len(m.tabs) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.tabs)) % len(m.tabs)
	m.loadRuns()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			m.moveTab(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			m.moveTab(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the tab strip, the run table and a short summary line.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText("R U N   H I S T O R Y", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabStrip(), m.width))
	b.WriteString("\n")

	body := boardDimStyle.Italic(true).Padding(1, 2).
		Render("No runs on this difficulty yet.")
	if len(m.runs) > 0 {
		body = m.table.View()
	}
	b.WriteString(boardFrameStyle.Render(body))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.summary()))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabStrip shows every difficulty, or only the current one between arrows
// when the strip would not fit.
func (m ScoreboardModel) tabStrip() string {
	parts := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		name := tab.title
		if len(name) > tabTitleRoom {
			name = name[:tabTitleRoom-1] + "."
		}
		if i == m.cursor {
			parts[i] = boardActiveTab.Render(name)
		} else {
			parts[i] = boardTabStyle.Render(name)
		}
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(strip) > m.width-4 {
		return boardActiveTab.Render("< " + m.tabs[m.cursor].title + " >")
	}
	return strip
}

// summary reports the run count and best score of the current tab.
func (m ScoreboardModel) summary() string {
	if len(m.runs) == 0 {
		return ""
	}
	best := m.runs[0]
	for _, r := range m.runs[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return fmt.Sprintf(" %d runs, best %d at level %d with %d kills",
		len(m.runs), best.Score, best.Level, best.Kills)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the run history. It reports whether the user went
// back to the launcher rather than quitting.
func RunScoreboard(store RunLister, width, height int) (bool, error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
