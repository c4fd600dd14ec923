package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/park-guardian/internal/campaign"
	"github.com/vovakirdan/park-guardian/internal/storage"
)

const (
	maxRuns          = 100
	minWidthForPanel = 80 // below this the campaign panel goes above the table
	panelWidth       = 26
)

// RunSource is the run history shown on the scoreboard.
type RunSource interface {
	TopRuns(limit int) ([]storage.RunEntry, error)
	Stats() (storage.RunStats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
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

// ScoreboardModel lists the fastest completed campaigns next to the
// player's own campaign record.
type ScoreboardModel struct {
	source    RunSource
	records   *campaign.Records
	runs      []storage.RunEntry
	stats     storage.RunStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard. Either source or records may be nil.
func NewScoreboardModel(source RunSource, records *campaign.Records, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		source:  source,
		records: records,
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Player", Width: 12},
		{Title: "CR", Width: 6},
		{Title: "Date", Width: 14},
	}

	tableWidth := m.width - 4
	if m.wide() {
		tableWidth -= panelWidth + 4
	}
	if spare := tableWidth - 56; spare > 0 {
		columns[2].Width += min(spare, 12)
	}

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
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) wide() bool {
	return m.width >= minWidthForPanel
}

func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.loadErr = nil, storage.RunStats{}, nil
	if m.source != nil {
		if m.runs, m.loadErr = m.source.TopRuns(maxRuns); m.loadErr == nil {
			m.stats, m.loadErr = m.source.Stats()
		}
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			campaign.FormatClock(r.Elapsed),
			player,
			fmt.Sprintf("%d", r.Credits),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
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

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("FASTEST CAMPAIGNS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	panel := boxStyle.Width(panelWidth).Render(m.panelContent())
	runs := boxStyle.Render(m.tableContent())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panel, "  ", runs))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, panel, runs))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// panelContent summarizes the local campaign record and the history.
func (m ScoreboardModel) panelContent() string {
	var b strings.Builder
	b.WriteString("Campaign\n")
	b.WriteString(strings.Repeat("-", panelWidth-4))
	b.WriteString("\n")

	if m.records != nil {
		killed := "No"
		if m.records.Completed() {
			killed = "Yes"
		}
		fmt.Fprintf(&b, "Commander down: %s\n", killed)
		best := "--:--"
		if d, ok := m.records.BestTime(); ok {
			best = campaign.FormatClock(d)
		}
		fmt.Fprintf(&b, "Best time:      %s\n", best)
		if d, ok := m.records.LastRunTime(); ok {
			fmt.Fprintf(&b, "Last run:       %s\n", campaign.FormatClock(d))
		}
		if final, ok := m.records.FinalStats(); ok {
			fmt.Fprintf(&b, "Final: HP %d AR %d CR %d\n", final.Health, final.Armor, final.Credits)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Runs:       %d\n", m.stats.Runs)
	if m.stats.Runs > 0 {
		fmt.Fprintf(&b, "Fastest:    %s\n", campaign.FormatClock(m.stats.Fastest))
		fmt.Fprintf(&b, "Average:    %s\n", campaign.FormatClock(m.stats.Average))
		fmt.Fprintf(&b, "Credits:    %d\n", m.stats.TotalCredits)
	}
	return b.String()
}

func (m ScoreboardModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Run history unavailable:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No completed campaigns yet.\nDefeat the commander to set a time!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// RunScoreboard runs the scoreboard screen until the user leaves it.
func RunScoreboard(source RunSource, records *campaign.Records, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(source, records, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
