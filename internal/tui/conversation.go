package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/minglehq/mingle/internal/client"
	"github.com/minglehq/mingle/internal/domain"
)

const (
	conversationSearchBar = "conversationSearchBar"
	conversationContainer = "conversationContainer"
)

type ConversationsModel struct {
	conversationList list.Model
	// the list has no built-in focus notion, an unfocused pane keeps its
	// state but gets an empty keymap, see conversationKeyMap
	focus  bool
	state  client.ChatState
	client *client.Client
}

type conversationItem struct {
	id, title, desc string
}

func (i conversationItem) Title() string       { return zone.Mark(i.id, i.title) }
func (i conversationItem) Description() string { return i.desc }
func (i conversationItem) FilterValue() string { return zone.Mark(i.id, i.title) }

func InitialConversationsModel(c *client.Client) ConversationsModel {
	m := list.New(nil, newConversationDelegate(), 0, 0)
	m.Styles.StatusBar = m.Styles.StatusBar.
		Foreground(primaryColor).
		MarginTop(1)
	m.Styles.NoItems = m.Styles.NoItems.
		Margin(1, 1).
		Foreground(primarySubtleColor).
		SetString("No conversations yet, discover someone")
	m.FilterInput = newFilterInput("Filter by name...")
	m.KeyMap = conversationKeyMap(true)
	m.SetStatusBarItemName("Conversation", "Conversations")
	m.DisableQuitKeybindings()
	m.SetShowFilter(false)
	m.SetShowHelp(false)
	m.SetShowTitle(false)
	m.SetShowPagination(false)
	return ConversationsModel{
		conversationList: m,
		focus:            true,
		client:           c,
	}
}

func (m ConversationsModel) Init() tea.Cmd {
	return nil
}

func (m ConversationsModel) Update(msg tea.Msg) (ConversationsModel, tea.Cmd) {
	m.conversationList.KeyMap = conversationKeyMap(m.focus)

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.updateConversationWindowSize()
		return m, nil

	case chatStateMsg:
		m.state = client.ChatState(msg)
		cmd := m.conversationList.SetItems(conversationListItems(m.state))
		if m.state.ActiveIndex >= 0 {
			m.conversationList.Select(m.state.ActiveIndex)
		}
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+f":
			return m, tea.Batch(m.conversationList.FilterInput.Focus(), m.handleConversationListUpdate(msg))
		case "esc":
			m.conversationList.FilterInput.Blur()
		case "enter":
			if m.focus && !m.conversationList.FilterInput.Focused() {
				if item, ok := m.conversationList.SelectedItem().(conversationItem); ok {
					return m, m.openConversation(item.id)
				}
			}
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			if zone.Get(conversationContainer).InBounds(msg) {
				m.conversationList.CursorDown()
			}
		case tea.MouseButtonWheelUp:
			if zone.Get(conversationContainer).InBounds(msg) {
				m.conversationList.CursorUp()
			}
		case tea.MouseButtonLeft:
			for i, listItem := range m.conversationList.VisibleItems() {
				v, _ := listItem.(conversationItem)
				if zone.Get(v.id).InBounds(msg) {
					m.conversationList.Select(i)
					return m, m.openConversation(v.id)
				}
			}
			if zone.Get(conversationSearchBar).InBounds(msg) {
				return m, m.handleConversationListUpdate(tea.KeyMsg{Type: tea.KeyCtrlF})
			}
			m.conversationList.FilterInput.Blur()
		default:
		}
	}
	return m, m.handleConversationListUpdate(msg)
}

func (m ConversationsModel) View() string {
	searchBarStyle := conversationSearchBarStyle.Width(conversationWidth() - 4)
	if m.conversationList.FilterInput.Focused() {
		searchBarStyle = conversationActiveSearchBarStyle.Width(conversationWidth() - 4)
	}
	s := searchBarStyle.Render(m.conversationList.FilterInput.View())
	s = zone.Mark(conversationSearchBar, s)
	searchAndList := lipgloss.JoinVertical(lipgloss.Left, s, m.conversationList.View())
	convos := conversationContainerStyle.Width(conversationWidth()).Height(conversationHeight()).Render(searchAndList)
	return zone.Mark(conversationContainer, convos)
}

// Helpers & Stuff -----------------------------------------------------------------------------------------------------

// conversationListItems projects the engine snapshot into list rows. Unread
// badges only show for conversations whose trailing run belongs to the peer,
// the same rule the global counter follows.
func conversationListItems(s client.ChatState) []list.Item {
	items := make([]list.Item, 0, len(s.Conversations))
	for _, convo := range s.Conversations {
		items = append(items, list.Item(conversationItem{
			id:    convo.ID,
			title: conversationTitle(convo),
			desc:  conversationDesc(convo, s.Typers),
		}))
	}
	return items
}

func conversationTitle(c domain.Conversation) string {
	name := c.PeerName
	if name == "" {
		name = c.PeerID
	}
	if c.UnreadCount > 0 && c.LastMessageSenderID == c.PeerID {
		return name + " " + unreadBadgeStyle.Render(unreadBadge(c.UnreadCount))
	}
	return name
}

func conversationDesc(c domain.Conversation, typers map[string]bool) string {
	if typers[c.PeerID] {
		return typingIndicatorStyle.Render("typing…")
	}
	if c.UnreadCount > 0 && c.LastMessageSenderID == c.PeerID {
		return fmt.Sprintf("%d unread", c.UnreadCount)
	}
	return " "
}

func newFilterInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.TextStyle = lipgloss.NewStyle().Foreground(primaryColor)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(primaryColor)
	ti.CharLimit = 64
	ti.Prompt = ""
	ti.Placeholder = placeholder
	return ti
}

func newConversationDelegate() list.ItemDelegate {
	d := list.NewDefaultDelegate()

	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(primaryColor).
		BorderForeground(primaryColor).
		BorderStyle(lipgloss.ThickBorder())

	d.Styles.NormalDesc = d.Styles.NormalDesc.
		BorderForeground(primaryColor)

	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(primarySubtleColor).
		BorderForeground(primaryColor).
		BorderStyle(lipgloss.ThickBorder())

	return d
}

func conversationKeyMap(focused bool) list.KeyMap {
	km := list.DefaultKeyMap()
	km.Filter = key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "filter by name"))
	if !focused {
		// an unfocused pane still renders but must not react to keys
		for _, b := range []*key.Binding{
			&km.CursorUp, &km.CursorDown, &km.NextPage, &km.PrevPage,
			&km.GoToStart, &km.GoToEnd, &km.ShowFullHelp,
		} {
			*b = key.NewBinding()
		}
	}
	return km
}

func (m *ConversationsModel) handleConversationListUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.conversationList, cmd = m.conversationList.Update(msg)
	return cmd
}

func (m *ConversationsModel) updateConversationWindowSize() {
	m.conversationList.SetSize(conversationWidth()-4, terminalHeight-9)
	m.conversationList.SetDelegate(newConversationDelegate())
	m.conversationList.FilterInput.Width = conversationWidth() - 9
}

func (m ConversationsModel) openConversation(conversationID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.OpenConversation(conversationID); err != nil {
			return errMsg{err: "Unable to open this conversation"}
		}
		return nil
	}
}
