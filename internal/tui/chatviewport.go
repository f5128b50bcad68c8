package tui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/minglehq/mingle/internal/client"
	"github.com/minglehq/mingle/internal/domain"
)

type ChatViewportModel struct {
	vp     viewport.Model
	state  client.ChatState
	focus  bool
	client *client.Client
}

func InitialChatViewport(c *client.Client) ChatViewportModel {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	return ChatViewportModel{
		vp:     vp,
		client: c,
	}
}

func (m ChatViewportModel) Update(msg tea.Msg) (ChatViewportModel, tea.Cmd) {
	if m.focus {
		m.vp.KeyMap = viewport.DefaultKeyMap()
		m.vp.MouseWheelEnabled = true
	} else {
		m.vp.KeyMap = viewport.KeyMap{}
		m.vp.MouseWheelEnabled = false
	}

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.updateDimensions()
		m.vp.SetContent(m.renderChatViewport())

	case chatStateMsg:
		atBottom := m.vp.AtBottom()
		m.state = client.ChatState(msg)
		m.vp.SetContent(m.renderChatViewport())
		if atBottom {
			m.vp.GotoBottom()
		}
		return m, nil

	case tea.KeyMsg:
		if m.focus && msg.String() == "ctrl+y" {
			return m, m.copyLastMessage()
		}
	}
	return m, m.handleChatViewportUpdate(msg)
}

func (m ChatViewportModel) View() string {
	return m.vp.View()
}

// Helpers & Stuff -----------------------------------------------------------------------------------------------------

func (m *ChatViewportModel) renderChatViewport() string {
	msgs := m.state.ActiveMessages
	if len(msgs) == 0 {
		return ""
	}
	// the divider sits above the trailing unread block, it only renders for
	// a peer-sent run
	dividerAt := -1
	if m.state.Cursor.Count > 0 && m.state.Cursor.Sender != m.selfID() {
		dividerAt = len(msgs) - m.state.Cursor.Count
	}
	var sb strings.Builder
	var prevMsgDay int
	cb := chatBubbleContainer.Width(chatWidth() - chatBubbleContainer.GetHorizontalFrameSize())
	for i, msg := range msgs {
		if msg.SentAt != nil && msg.SentAt.Day() != prevMsgDay {
			prevMsgDay = msg.SentAt.Day()
			s := lipgloss.NewStyle().
				Foreground(primaryColor).
				Background(primaryContrastColor).
				Padding(0, 1).
				Italic(true).
				Render(msg.SentAt.Format("January 02, 2006"))
			sb.WriteString("\n")
			sb.WriteString(cb.Align(lipgloss.Center).Render(s))
			sb.WriteString("\n")
		}
		if i == dividerAt {
			d := unreadDividerStyle.Width(chatWidth()).Render("── unread ──")
			sb.WriteString("\n")
			sb.WriteString(d)
		}
		align := lipgloss.Left
		if msg.SenderID == m.selfID() {
			align = lipgloss.Right
		}
		sb.WriteString("\n")
		sb.WriteString(cb.Align(align).Render(m.renderBubble(msg)))
	}
	return sb.String()
}

func (m *ChatViewportModel) renderBubble(msg domain.Message) string {
	txtWidth := min(chatWidth()-20, lipgloss.Width(msg.Body)+2)
	sentAt := lipgloss.NewStyle().Faint(true).Foreground(whiteColor)
	var at string
	if msg.SentAt != nil {
		at = msg.SentAt.Format(time.Kitchen)
	}
	if msg.SenderID == m.selfID() {
		bubble := chatBubbleRStyle.Width(txtWidth).Render(msg.Body)
		return lipgloss.JoinHorizontal(lipgloss.Center, sentAt.Foreground(primaryColor).Render(at), " ", bubble)
	}
	bubble := chatBubbleLStyle.Width(txtWidth).Render(msg.Body)
	return lipgloss.JoinHorizontal(lipgloss.Center, bubble, " ", sentAt.Render(at))
}

func (m ChatViewportModel) selfID() string {
	if u := m.client.CurrentUsr; u != nil {
		return u.ID
	}
	return ""
}

func (m *ChatViewportModel) updateDimensions() {
	m.vp.Width = chatWidth()
	m.vp.Height = chatHeight() - (chatHeaderHeight + chatTextareaHeight)
}

func (m *ChatViewportModel) handleChatViewportUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return cmd
}

func (m ChatViewportModel) copyLastMessage() tea.Cmd {
	return func() tea.Msg {
		msgs := m.state.ActiveMessages
		if len(msgs) == 0 {
			return nil
		}
		if err := clipboard.WriteAll(msgs[len(msgs)-1].Body); err != nil {
			return errMsg{err: "Unable to access the system clipboard"}
		}
		return nil
	}
}
