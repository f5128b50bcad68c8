package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/minglehq/mingle/internal/tui/embed"
)

type UsageViewportModel struct {
	vp         viewport.Model
	usageFiles *embed.EmbeddedFiles
	focus      bool
}

func NewUsageViewportModel() UsageViewportModel {
	vp := viewport.New(50, 30)
	vp.MouseWheelEnabled = true
	return UsageViewportModel{
		vp:         vp,
		usageFiles: embed.EmbeddedFilesInstance(),
	}
}

func (m UsageViewportModel) Update(msg tea.Msg) (UsageViewportModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.vp.Width = msg.Width - conversationWidth() - 3
		m.vp.Height = conversationHeight()
		g, err := glamour.NewTermRenderer(
			glamour.WithStylesFromJSONBytes(m.usageFiles.UsageTheme),
			glamour.WithWordWrap(m.vp.Width-2),
		)
		if err != nil {
			slog.Error(err.Error())
			return m, nil
		}
		md, err := g.Render(string(m.usageFiles.UsageFile))
		if err != nil {
			slog.Error(err.Error())
			return m, nil
		}
		m.vp.SetContent(md)
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m UsageViewportModel) View() string {
	return m.vp.View()
}
