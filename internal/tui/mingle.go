package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/minglehq/mingle/internal/client"
)

const (
	mingleConversations = "mingleConversations"
	mingleChat          = "mingleChat"
)

// MingleModel is the chats tab, the conversation list on the left and the
// open chat on the right.
type MingleModel struct {
	conversations ConversationsModel
	chat          ChatModel
	client        *client.Client
}

func InitialMingleModel(c *client.Client) MingleModel {
	return MingleModel{
		conversations: InitialConversationsModel(c),
		chat:          InitialChatModel(c),
		client:        c,
	}
}

func (m MingleModel) Init() tea.Cmd {
	return m.chat.Init()
}

func (m MingleModel) Update(msg tea.Msg) (MingleModel, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+t":
			m.conversations.focus = false
			m.chat.focus = true
		case "ctrl+x":
			// closing the open chat routes focus back to the list
			m.chat.focus = false
			m.conversations.focus = true
			return m, m.closeChat()
		}

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft {
			if zone.Get(mingleConversations).InBounds(msg) {
				m.conversations.focus = true
				m.chat.focus = false
			} else if zone.Get(mingleChat).InBounds(msg) {
				m.conversations.focus = false
				m.chat.focus = true
			}
		}
	}
	return m, tea.Batch(m.handleConversationsUpdate(msg), m.handleChatUpdate(msg))
}

func (m MingleModel) View() string {
	convos := zone.Mark(mingleConversations, m.conversations.View())
	chat := zone.Mark(mingleChat, m.chat.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, convos, chat)
}

// Helpers & Stuff -----------------------------------------------------------------------------------------------------

func (m *MingleModel) handleConversationsUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.conversations, cmd = m.conversations.Update(msg)
	return cmd
}

func (m *MingleModel) handleChatUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return cmd
}

func (m MingleModel) closeChat() tea.Cmd {
	return func() tea.Msg {
		m.client.CloseChat()
		return nil
	}
}
