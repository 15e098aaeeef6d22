package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/celebration/internal/diag"
	"github.com/vovakirdan/celebration/internal/storage"
)

// JournalKeyMap defines the key bindings for the journal browser.
type JournalKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Filter, k.Quit}}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next kind"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// journalFilters is the cycle of kind filters; empty means all kinds.
var journalFilters = []diag.Kind{"", diag.KindStarted, diag.KindWon, diag.KindReset, diag.KindDisabled}

// JournalModel browses diagnostics events in a table.
type JournalModel struct {
	entries  []storage.EventEntry
	filter   int
	table    table.Model
	help     help.Model
	keys     JournalKeyMap
	width    int
	height   int
	quitting bool
}

// NewJournalModel creates a browser over entries, newest first.
func NewJournalModel(entries []storage.EventEntry, width, height int) JournalModel {
	h := help.New()
	h.Width = width

	m := JournalModel{
		entries: entries,
		keys:    DefaultJournalKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 15},
		{Title: "Kind", Width: 9},
		{Title: "State", Width: 8},
		{Title: "Session", Width: 10},
		{Title: "Message", Width: 30},
	}

	// Give the message column whatever width is left.
	if rest := m.width - 4 - 15 - 9 - 8 - 10 - 10; rest > 30 {
		columns[4].Width = rest
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 3)),
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

// visible returns the entries matching the current kind filter.
func (m JournalModel) visible() []storage.EventEntry {
	kind := journalFilters[m.filter]
	if kind == "" {
		return m.entries
	}
	out := make([]storage.EventEntry, 0, len(m.entries))
	for _, e := range m.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (m *JournalModel) updateTableRows() {
	entries := m.visible()
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		msg := e.Message
		if e.Detail != "" {
			msg = e.Detail
		}
		rows[i] = table.Row{
			e.CreatedAt.Local().Format("Jan 02 15:04:05"),
			string(e.Kind),
			e.State,
			shortID(e.SessionID),
			msg,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Init initializes the journal browser.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal browser.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % len(journalFilters)
			m.updateTableRows()
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

// View renders the journal browser.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "SESSION JOURNAL"
	if kind := journalFilters[m.filter]; kind != "" {
		title = fmt.Sprintf("SESSION JOURNAL - %s", kind)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.visible()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No events recorded yet.")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunJournal opens the journal browser in the alternate screen.
func RunJournal(entries []storage.EventEntry, width, height int) error {
	p := tea.NewProgram(
		NewJournalModel(entries, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
