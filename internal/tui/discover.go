package tui

import (
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/minglehq/mingle/internal/client"
)

const (
	discoverSearchBar = "discoverSearchBar"
	discoverTable     = "discoverTable"
)

// selDiscUserMsg is emitted when a user picks someone from the search
// results, the root model routes it to the chats tab
type selDiscUserMsg struct {
	id, name, email string
}

// searchResults carries the rendered rows plus the user id behind each row,
// the table itself only holds display strings.
type searchResults struct {
	rows []table.Row
	ids  []string
}

type DiscoverModel struct {
	searchTxtInput textinput.Model
	table          table.Model
	tableUsrIDs    []string
	focusIdx       int // 0 search bar, 1 results table
	client         *client.Client
}

func InitialDiscoverModel(c *client.Client) DiscoverModel {
	return DiscoverModel{
		searchTxtInput: newSearchInput("Search by name, or paste an exact email..."),
		table:          newResultsTable(),
		client:         c,
	}
}

func (m DiscoverModel) Init() tea.Cmd {
	return nil
}

func (m DiscoverModel) Update(msg tea.Msg) (DiscoverModel, tea.Cmd) {
	m.applyFocus()
	m.table.SetHeight(terminalHeight - 12)

	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+f":
			m.focusIdx = 0
			return m, m.applyFocus()
		case "up", "down":
			m.focusIdx = 1
		case "enter":
			if m.focusIdx == 0 && utf8.RuneCountInString(m.searchTxtInput.Value()) > 0 {
				m.table.SetRows(nil) // clear any previous records
				ioStatus = "Searching"
				return m, tea.Batch(spinnerSpinCmd, m.searchUser(m.searchTxtInput.Value()))
			}
			if m.focusIdx == 1 && len(m.table.Rows()) > 0 {
				selRow := m.table.SelectedRow()
				selMsg := selDiscUserMsg{
					id:    m.tableUsrIDs[m.table.Cursor()],
					name:  selRow[1],
					email: selRow[2],
				}
				return m, func() tea.Msg { return selMsg }
			}
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if zone.Get(discoverSearchBar).InBounds(msg) {
				m.focusIdx = 0
				return m, m.applyFocus()
			}
			if zone.Get(discoverTable).InBounds(msg) {
				m.focusIdx = 1
				return m, m.applyFocus()
			}
		case tea.MouseButtonWheelDown:
			if zone.Get(discoverTable).InBounds(msg) {
				m.focusIdx = 1
				m.table.MoveDown(1)
				return m, m.applyFocus()
			}
		case tea.MouseButtonWheelUp:
			if zone.Get(discoverTable).InBounds(msg) {
				m.focusIdx = 1
				m.table.MoveUp(1)
				return m, m.applyFocus()
			}
		default:
		}

	case searchResults:
		m.table.SetRows(msg.rows)
		m.tableUsrIDs = msg.ids
		m.table.SetCursor(0)
		if len(msg.rows) > 0 {
			m.focusIdx = 1
			return m, tea.Batch(m.applyFocus(), spinnerResetCmd)
		}
		m.focusIdx = 0
		return m, spinnerResetCmd
	}

	return m, tea.Batch(m.handleSearchInputUpdate(msg), m.handleTableUpdate(msg))
}

func (m DiscoverModel) View() string {
	bar := zone.Mark(discoverSearchBar, activeDiscoverBar.Render(m.searchTxtInput.View()))
	var body string
	if len(m.table.Rows()) > 0 {
		body = zone.Mark(discoverTable, discoverTableStyle.Render(m.table.View()))
	} else {
		body = infoTxtStyle.Render("Mingle with someone, search them up")
		body = lipgloss.PlaceVertical(terminalHeight-10, lipgloss.Center, body)
	}
	s := lipgloss.JoinVertical(lipgloss.Center, bar, body)
	return lipgloss.PlaceHorizontal(terminalWidth-2, lipgloss.Center, s)
}

// Helpers & Stuff -----------------------------------------------------------------------------------------------------

func newSearchInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.TextStyle = lipgloss.NewStyle().Foreground(primaryColor)
	ti.Focus()
	ti.CharLimit = 64
	ti.Prompt = ""
	ti.Placeholder = placeholder
	c := cursor.New()
	c.Style = ti.TextStyle
	c.TextStyle = ti.TextStyle
	ti.Cursor = c
	return ti
}

func newResultsTable() table.Model {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(primaryColor).
		Foreground(primaryColor).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(primaryContrastColor).
		Background(primaryColor).
		Bold(false)

	t := table.New(table.WithColumns([]table.Column{
		{Title: "#", Width: 6},
		{Title: "Name", Width: 30},
		{Title: "Email", Width: 45},
		{Title: "Joined Since", Width: 20},
	}))
	t.SetStyles(s)
	return t
}

func (m *DiscoverModel) handleSearchInputUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.searchTxtInput, cmd = m.searchTxtInput.Update(msg)
	return cmd
}

func (m *DiscoverModel) handleTableUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *DiscoverModel) applyFocus() tea.Cmd {
	if m.focusIdx == 0 {
		m.table.Blur()
		return m.searchTxtInput.Focus()
	}
	m.table.Focus()
	m.searchTxtInput.Blur()
	return nil
}

func (m DiscoverModel) searchUser(query string) tea.Cmd {
	return func() tea.Msg {
		users, err, code := m.client.SearchUser(query)
		if code == http.StatusUnauthorized {
			return requireAuthMsg{}
		}
		if err != nil {
			return errMsg{err: err.Error(), code: code}
		}
		rows := make([]table.Row, 0, len(users))
		ids := make([]string, 0, len(users))
		for _, u := range users {
			// do not show the current user in the results
			if cu := m.client.CurrentUsr; cu != nil && u.ID == cu.ID {
				continue
			}
			rows = append(rows, table.Row{strconv.Itoa(len(rows) + 1), u.Name, u.Email, u.CreatedAt.Format("January 2006")})
			ids = append(ids, u.ID)
		}
		return searchResults{rows: rows, ids: ids}
	}
}
