package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/minglehq/mingle/internal/client"
)

const (
	chatViewport = "chatViewport"
	chatTxtarea  = "chatTxtarea"
)

type ChatModel struct {
	chatTxtarea  textarea.Model
	chatViewport ChatViewportModel
	focus        bool
	// typing is the last flag pushed to the engine, the engine emits an
	// event per call so only transitions go through
	typing bool
	// name shown in the header while composing to a peer with no
	// materialized conversation yet
	pendingPeerName string
	state           client.ChatState
	client          *client.Client
}

func InitialChatModel(c *client.Client) ChatModel {
	return ChatModel{
		chatTxtarea:  newChatTxtArea(),
		chatViewport: InitialChatViewport(c),
		client:       c,
	}
}

func (m ChatModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	if !m.focus {
		m.chatViewport.focus = false
		if m.chatTxtarea.Focused() {
			m.chatTxtarea.Blur()
			m.setTyping(false)
		}
		m.updateChatTxtareaAndViewportDimensions()
	} else if m.chatTxtarea.Focused() {
		m.chatViewport.focus = false
	} else {
		m.chatViewport.focus = true
	}

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.updateChatTxtareaAndViewportDimensions()

	case chatStateMsg:
		m.state = client.ChatState(msg)
		if m.state.PendingPeer == "" && m.state.ActiveIndex < 0 {
			m.pendingPeerName = ""
		}
		// the engine owns the compose buffer, a send clears it
		if m.activeTarget() == "" {
			m.chatTxtarea.Reset()
		}

	case selDiscUserMsg:
		m.pendingPeerName = msg.name
		m.focus = true
		cmd := m.chatTxtarea.Focus()
		m.updateChatTxtareaAndViewportDimensions()
		return m, tea.Batch(cmd, m.handleChatViewportUpdate(msg))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+t":
			cmd := m.chatTxtarea.Focus()
			m.updateChatTxtareaAndViewportDimensions()
			return m, cmd
		case "ctrl+s":
			m.chatTxtarea.Reset()
			m.setTyping(false)
			return m, tea.Batch(m.sendMessage(), m.handleChatViewportUpdate(msg))
		case "esc":
			m.chatTxtarea.Blur()
			m.setTyping(false)
			m.updateChatTxtareaAndViewportDimensions()
			return m, nil
		default:
			if m.chatTxtarea.Focused() {
				cmd := m.handleChatTextareaUpdate(msg)
				m.client.SetCompose(m.chatTxtarea.Value())
				m.setTyping(m.chatTxtarea.Value() != "")
				return m, tea.Batch(cmd, m.handleChatViewportUpdate(msg))
			}
		}

	case tea.MouseMsg:
		if zone.Get(chatViewport).InBounds(msg) && msg.Button == tea.MouseButtonLeft {
			m.chatTxtarea.Blur()
			m.setTyping(false)
			m.updateChatTxtareaAndViewportDimensions()
		}
		if zone.Get(chatTxtarea).InBounds(msg) && msg.Button == tea.MouseButtonLeft {
			cmd := m.chatTxtarea.Focus()
			m.updateChatTxtareaAndViewportDimensions()
			return m, cmd
		}
	}
	return m, tea.Batch(m.handleChatTextareaUpdate(msg), m.handleChatViewportUpdate(msg))
}

func (m ChatModel) View() string {
	header := m.headerTitle()
	if header == "" {
		return chatContainerStyle.
			Width(chatWidth()).
			Height(chatHeight()).
			Align(lipgloss.Center).
			AlignVertical(lipgloss.Center).
			Render(infoTxtStyle.Render("Select a conversation, or discover someone new"))
	}
	h := renderChatHeader(header, m.peerTyping())
	chatHeaderHeight = lipgloss.Height(h)
	ta := zone.Mark(chatTxtarea, m.chatTxtarea.View())
	ta = renderChatTextarea(ta)
	chatTextareaHeight = lipgloss.Height(ta)
	m.chatViewport.vp.Height = chatHeight() - (chatHeaderHeight + chatTextareaHeight)
	chatView := zone.Mark(chatViewport, m.chatViewport.View())
	c := lipgloss.JoinVertical(lipgloss.Top, h, chatView, ta)
	return chatContainerStyle.
		Width(chatWidth()).
		Height(chatHeight()).
		Render(c)
}

// Helpers & Stuff -----------------------------------------------------------------------------------------------------

func newChatTxtArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Type a message, ctrl+s sends..."
	ta.Prompt = ""
	ta.CharLimit = 1000
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.Cursor.Style = lipgloss.NewStyle().Foreground(primaryColor)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle().Foreground(whiteColor)
	return ta
}

// activeTarget is the peer id messages would go to, empty when idle.
func (m ChatModel) activeTarget() string {
	if m.state.ActiveIndex >= 0 && m.state.ActiveIndex < len(m.state.Conversations) {
		return m.state.Conversations[m.state.ActiveIndex].PeerID
	}
	return m.state.PendingPeer
}

func (m ChatModel) headerTitle() string {
	if m.state.ActiveIndex >= 0 && m.state.ActiveIndex < len(m.state.Conversations) {
		c := m.state.Conversations[m.state.ActiveIndex]
		if c.PeerName != "" {
			return c.PeerName
		}
		return c.PeerID
	}
	if m.state.PendingPeer != "" {
		if m.pendingPeerName != "" {
			return m.pendingPeerName
		}
		return m.state.PendingPeer
	}
	return ""
}

func (m ChatModel) peerTyping() bool {
	return m.state.Typers[m.activeTarget()]
}

func renderChatHeader(name string, typing bool) string {
	c := chatHeaderStyle.Width(chatWidth())
	if !typing {
		return c.Render(name)
	}
	t := typingIndicatorStyle.Render("typing…")
	gap := max(1, chatWidth()-(c.GetHorizontalFrameSize()+lipgloss.Width(name)+lipgloss.Width(t)))
	t = lipgloss.NewStyle().MarginLeft(gap).Render(t)
	return c.Render(name, t)
}

func renderChatTextarea(ta string) string {
	return chatTxtareaStyle.Width(chatWidth()).Render(ta)
}

func (m *ChatModel) handleChatTextareaUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.chatTxtarea, cmd = m.chatTxtarea.Update(msg)
	return cmd
}

func (m *ChatModel) handleChatViewportUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.chatViewport, cmd = m.chatViewport.Update(msg)
	return cmd
}

func (m *ChatModel) updateChatTxtareaAndViewportDimensions() {
	m.chatTxtarea.SetWidth(chatWidth() - chatTxtareaStyle.GetHorizontalFrameSize())
	if m.chatTxtarea.Focused() {
		m.chatTxtarea.SetHeight(5)
	} else {
		m.chatTxtarea.SetHeight(3)
	}
	m.chatViewport.updateDimensions()
}

func (m *ChatModel) setTyping(v bool) {
	if m.typing == v {
		return
	}
	m.typing = v
	m.client.SetTyping(v)
}

func (m ChatModel) sendMessage() tea.Cmd {
	return func() tea.Msg {
		// the engine no-ops on an empty buffer or a missing target
		m.client.SendMessage()
		return nil
	}
}
