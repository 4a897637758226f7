package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/crystal-arcade/internal/core"
	"github.com/vovakirdan/crystal-arcade/internal/registry"
	"github.com/vovakirdan/crystal-arcade/internal/storage"
)

const (
	sidebarMinWidth = 80 // narrower terminals get a tab row instead
	sidebarWidth    = 20
	tableBaseWidth  = 50
	scoreLimit      = 100
	chromeHeight    = 9 // title, stats, picker, borders, help
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll   key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.PrevGame, k.NextGame, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Scroll, k.PrevGame, k.NextGame}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "scroll"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists the best runs per registered game.
type ScoreboardModel struct {
	games    []registry.GameInfo
	current  int
	store    *storage.Store
	runs     []storage.Run
	stats    *storage.GameStats
	theme    Theme
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard showing the first registered game.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		theme:  DefaultTheme(),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.selectGame(0)
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= sidebarMinWidth
}

// newTable sizes the columns for the current terminal.
func (m ScoreboardModel) newTable() table.Model {
	cols := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 5},
		{Title: "Chain", Width: 5},
		{Title: "Moves", Width: 5},
		{Title: "Date", Width: 12},
	}

	avail := m.width - 4
	if m.wide() {
		avail -= sidebarWidth + 3
	}
	if spare := avail - tableBaseWidth; spare > 0 {
		cols[1].Width += min(spare/2, 4)
		cols[5].Width += min(spare-spare/2, 6)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(m.theme.Highlight).
		Background(m.theme.Background).
		Bold(false)

	return table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(m.height-chromeHeight, 3)),
		table.WithStyles(styles),
	)
}

// selectGame switches to game i (wrapping) and reloads its runs.
func (m *ScoreboardModel) selectGame(i int) {
	m.runs, m.stats = nil, nil
	if len(m.games) > 0 {
		m.current = core.Wrap(i, len(m.games))
		m.load(m.games[m.current].ID)
	}
	m.fillTable()
}

func (m *ScoreboardModel) load(gameID string) {
	if m.store == nil {
		return
	}
	if runs, err := m.store.TopScores(gameID, scoreLimit); err == nil {
		m.runs = runs
	}
	if stats, err := m.store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		m.stats = stats
	}
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			"x" + strconv.Itoa(r.MaxChain),
			strconv.Itoa(r.Moves),
			r.CreatedAt.Format("Jan 02 15:04"),
		})
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
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.selectGame(m.current + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.selectGame(m.current - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title += " - " + m.games[m.current].Title
	}

	var b strings.Builder
	b.WriteString(centerText(m.theme.Title.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Subtitle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	body := m.theme.Panel.Render(m.tableView())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body))
	} else {
		b.WriteString(centerText(m.tabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(body, m.width))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// sidebar lists every game with the current one marked.
func (m ScoreboardModel) sidebar() string {
	lines := []string{m.theme.Subtitle.Render("Games"), strings.Repeat("─", sidebarWidth-4)}
	for i, g := range m.games {
		name := runewidth.Truncate(g.Title, sidebarWidth-6, "…")
		if i == m.current {
			lines = append(lines, m.theme.ItemActive.Render("> "+name))
		} else {
			lines = append(lines, m.theme.ItemNormal.Render("  "+name))
		}
	}
	return m.theme.Panel.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

// tabs renders the games as one row, or just the current one when the
// row does not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return ""
	}
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		name := runewidth.Truncate(g.Title, 12, "…")
		if i == m.current {
			tabs[i] = m.theme.TabActive.Render(name)
		} else {
			tabs[i] = m.theme.Tab.Render(name)
		}
	}
	row := strings.Join(tabs, " ")
	if lipgloss.Width(row) > m.width-4 {
		return m.theme.TabActive.Render("‹ " + m.games[m.current].Title + " ›")
	}
	return row
}

func (m ScoreboardModel) tableView() string {
	if len(m.runs) == 0 {
		return m.theme.Empty.Render("No runs recorded yet.\nFinish a game to get on the board!")
	}
	return m.table.View()
}

// statsLine summarizes the selected game's history.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil {
		return "No games played"
	}
	return fmt.Sprintf("Games %d  |  Best %d  |  Best chain x%d  |  Avg %.0f",
		m.stats.GamesCount, m.stats.HighScore, m.stats.BestChain, m.stats.AvgScore)
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard full screen. It returns true when the
// user went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (bool, error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
