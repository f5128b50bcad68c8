package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/minglehq/mingle/internal/client"
)

const (
	discoverTab = iota
	chatsTab
	preferencesTab
)

var tabTitles = []string{"🔎 DISCOVER", "💭 CHATS", "⚙️ PREFERENCES"}

type TabContainerModel struct {
	tabIdx      int
	spinner     spinner.Model
	spin        bool
	errMsg      errMsg
	connState   client.WsConnState
	totalUnread int

	discover    DiscoverModel
	mingle      MingleModel
	preferences PreferencesModel

	chatsToken int
	chatsCh    <-chan client.ChatState
	client     *client.Client
}

func InitialTabContainerModel() TabContainerModel {
	c := client.Get()
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)
	token, ch := c.Chats.Subscribe()
	return TabContainerModel{
		tabIdx:      chatsTab,
		spinner:     s,
		connState:   c.WsConnState.Get(),
		discover:    InitialDiscoverModel(c),
		mingle:      InitialMingleModel(c),
		preferences: NewPreferencesModel(c),
		chatsToken:  token,
		chatsCh:     ch,
		client:      c,
	}
}

func (m TabContainerModel) Init() tea.Cmd {
	return tea.Batch(
		m.listenForChatState(),
		m.listenForConnState(),
		m.listenForLoginState(),
		m.mingle.Init(),
		m.discover.Init(),
		m.preferences.Init(),
	)
}

func (m TabContainerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		terminalWidth = msg.Width
		terminalHeight = msg.Height
		// every tab re-measures, not just the visible one
		return m, tea.Batch(
			m.handleDiscoverUpdate(msg),
			m.handleMingleUpdate(msg),
			m.handlePreferencesUpdate(msg),
		)

	case tea.KeyMsg:
		m.errMsg = errMsg{}
		switch msg.String() {
		case "ctrl+c":
			m.client.Chats.Unsubscribe(m.chatsToken)
			m.client.BT.Shutdown(2 * time.Second)
			return m, tea.Quit
		case "ctrl+right":
			m.tabIdx = (m.tabIdx + 1) % len(tabTitles)
		case "ctrl+left":
			m.tabIdx = (m.tabIdx + len(tabTitles) - 1) % len(tabTitles)
		}

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft {
			for i := range tabTitles {
				if zone.Get(tabTitles[i]).InBounds(msg) {
					m.tabIdx = i
					break
				}
			}
		}

	case chatStateMsg:
		m.totalUnread = msg.TotalUnread
		cmds := []tea.Cmd{m.listenForChatState(), m.handleMingleUpdate(msg)}
		return m, tea.Batch(cmds...)

	case connStateMsg:
		m.connState = client.WsConnState(msg)
		return m, m.listenForConnState()

	case requireAuthMsg:
		// drop the snapshot subscription, an abandoned one stalls the fan-out
		m.client.Chats.Unsubscribe(m.chatsToken)
		loginModel := InitialLoginModel()
		return loginModel, loginModel.Init()

	case selDiscUserMsg:
		m.tabIdx = chatsTab
		return m, tea.Batch(m.openNewChat(msg), m.handleMingleUpdate(msg))

	case spinMsg:
		m.spin = true
		return m, m.spinner.Tick

	case resetSpinnerMsg:
		m.spin = false
		ioStatus = ""

	case spinner.TickMsg:
		if m.spin {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, tea.Batch(cmd, m.propagateToActiveTab(msg))
		}

	case errMsg:
		m.errMsg = msg
		m.spin = false
		ioStatus = ""
		return m, nil
	}

	return m, m.propagateToActiveTab(msg)
}

func (m TabContainerModel) View() string {
	tabs := m.renderTabsWithGaps()
	var content string
	switch m.tabIdx {
	case discoverTab:
		content = m.discover.View()
	case chatsTab:
		content = m.mingle.View()
	case preferencesTab:
		content = m.preferences.View()
	}
	status := m.renderStatusLine()
	v := lipgloss.JoinVertical(lipgloss.Left, tabs, content, status)
	if m.errMsg.err != "" {
		v = lipgloss.JoinVertical(lipgloss.Left, v, m.renderErrContainer())
	}
	return zone.Scan(v)
}

// Helpers & Stuff -----------------------------------------------------------------------------------------------------

func (m *TabContainerModel) renderTabsWithGaps() string {
	rendered := make([]string, len(tabTitles))
	for i, t := range tabTitles {
		title := t
		if i == chatsTab && m.totalUnread > 0 {
			title = fmt.Sprintf("%s (%s)", t, unreadBadge(m.totalUnread))
		}
		if i == m.tabIdx {
			rendered[i] = zone.Mark(t, activeTabStyle.Render(title))
		} else {
			rendered[i] = zone.Mark(t, tabStyle.Render(title))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
	gapWidth := max(0, terminalWidth-lipgloss.Width(row))
	gapL := tabGapStyle.Render(strings.Repeat(" ", gapWidth/2))
	gapR := tabGapStyle.Render(strings.Repeat(" ", gapWidth-gapWidth/2))
	// used for the conversation pane width in the chats tab
	tabGapLeftWidth = lipgloss.Width(gapL)
	return lipgloss.JoinHorizontal(lipgloss.Bottom, gapL, row, gapR)
}

func (m *TabContainerModel) renderStatusLine() string {
	dot := "●"
	var state string
	switch m.connState {
	case client.Connected:
		dot = lipgloss.NewStyle().Foreground(primaryColor).Render(dot)
		state = "connected"
	case client.Connecting:
		dot = lipgloss.NewStyle().Foreground(darkGreyColor).Render(dot)
		state = "connecting"
	case client.Disconnected:
		dot = lipgloss.NewStyle().Foreground(dangerColor).Render(dot)
		state = "disconnected"
	}
	s := dot + statusTextStyle.Render(state)
	if m.spin && ioStatus != "" {
		s += statusTextStyle.Render(ioStatus) + " " + m.spinner.View()
	}
	return s
}

func (m *TabContainerModel) renderErrContainer() string {
	e := ansi.Wordwrap(m.errMsg.String(), max(20, terminalWidth-6), " ")
	return errContainerStyle.Width(max(20, terminalWidth-4)).Render(e)
}

func (m *TabContainerModel) propagateToActiveTab(msg tea.Msg) tea.Cmd {
	switch m.tabIdx {
	case discoverTab:
		return m.handleDiscoverUpdate(msg)
	case chatsTab:
		return m.handleMingleUpdate(msg)
	case preferencesTab:
		return m.handlePreferencesUpdate(msg)
	}
	return nil
}

func (m *TabContainerModel) handleDiscoverUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.discover, cmd = m.discover.Update(msg)
	return cmd
}

func (m *TabContainerModel) handleMingleUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.mingle, cmd = m.mingle.Update(msg)
	return cmd
}

func (m *TabContainerModel) handlePreferencesUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.preferences, cmd = m.preferences.Update(msg)
	return cmd
}

func (m TabContainerModel) listenForChatState() tea.Cmd {
	return func() tea.Msg {
		ctx := m.client.BT.GetShtdwnCtx()
		select {
		case s, ok := <-m.chatsCh:
			if !ok {
				return nil
			}
			return chatStateMsg(s)
		case <-ctx.Done():
			return nil
		}
	}
}

func (m TabContainerModel) listenForConnState() tea.Cmd {
	return func() tea.Msg {
		ctx := m.client.BT.GetShtdwnCtx()
		s := m.client.WsConnState.WaitForStateChange()
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		return connStateMsg(s)
	}
}

func (m TabContainerModel) listenForLoginState() tea.Cmd {
	return func() tea.Msg {
		ctx := m.client.BT.GetShtdwnCtx()
		for {
			loggedIn := m.client.LoginState.WaitForStateChange()
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if !loggedIn {
				return requireAuthMsg{}
			}
		}
	}
}

func (m TabContainerModel) openNewChat(sel selDiscUserMsg) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.OpenNewChat(sel.id); err != nil {
			return errMsg{err: err.Error()}
		}
		return nil
	}
}

func unreadBadge(n int) string {
	if n > 99 {
		return "99+"
	}
	return fmt.Sprintf("%d", n)
}
