package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/minglehq/mingle/internal/client"
)

const preferencesLogoutBtn = "preferencesLogoutBtn"

type PreferencesModel struct {
	usage  UsageViewportModel
	client *client.Client
}

func NewPreferencesModel(c *client.Client) PreferencesModel {
	return PreferencesModel{
		usage:  NewUsageViewportModel(),
		client: c,
	}
}

func (m PreferencesModel) Init() tea.Cmd {
	return nil
}

func (m PreferencesModel) Update(msg tea.Msg) (PreferencesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+l" {
			return m, m.logout()
		}
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && zone.Get(preferencesLogoutBtn).InBounds(msg) {
			return m, m.logout()
		}
	}
	return m, m.handleUsageViewportUpdate(msg)
}

func (m PreferencesModel) View() string {
	d := verticalDivider.Height(conversationHeight()).Render()
	return lipgloss.JoinHorizontal(lipgloss.Left, m.renderAccountPane(), d, m.usage.View())
}

// Helpers & Stuff -----------------------------------------------------------------------------------------------------

func (m *PreferencesModel) renderAccountPane() string {
	var sb strings.Builder
	sb.WriteString(mingleLogo)
	sb.WriteString("\n")
	if u := m.client.CurrentUsr; u != nil {
		sb.WriteString(infoTxtStyle.Render(u.Name))
		sb.WriteString("\n")
		sb.WriteString(statusTextStyle.Render(u.Email))
		sb.WriteString("\n")
		sb.WriteString(statusTextStyle.Render("joined " + u.CreatedAt.Format("January 2006")))
		sb.WriteString("\n\n")
	}
	logout := activeButtonStyleWithColor(whiteColor, dangerColor).Render("Logout (ctrl+l)")
	sb.WriteString(zone.Mark(preferencesLogoutBtn, logout))
	return lipgloss.NewStyle().
		Width(conversationWidth()).
		Height(conversationHeight()).
		Padding(1, 2).
		Render(sb.String())
}

func (m *PreferencesModel) handleUsageViewportUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.usage, cmd = m.usage.Update(msg)
	return cmd
}

func (m PreferencesModel) logout() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Logout(); err != nil {
			return errMsg{err: "Unable to clear the stored session"}
		}
		return requireAuthMsg{}
	}
}
