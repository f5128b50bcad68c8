package tui

import "github.com/charmbracelet/lipgloss"

var (
	// updated on every tea.WindowSizeMsg by the root model
	terminalWidth  = 100
	terminalHeight = 40
	// width of the gap left of the tab headers, the conversation pane aligns to it
	tabGapLeftWidth = 30
	// measured at render time so the chat viewport fills the leftover space
	chatHeaderHeight   int
	chatTextareaHeight int

	primaryColor         = lipgloss.AdaptiveColor{Light: "#0FB5BA", Dark: "#0FB5BA"}
	primaryContrastColor = lipgloss.AdaptiveColor{Light: "#FFFCE4", Dark: "#10242C"}
	primarySubtleColor   = lipgloss.AdaptiveColor{Light: "#76D0D3", Dark: "#0A7A7E"}
	dangerColor          = lipgloss.AdaptiveColor{Light: "#FF2B60", Dark: "#FF2B60"}
	whiteColor           = lipgloss.AdaptiveColor{Light: "#202020", Dark: "#FFFCE4"}
	blackColor           = lipgloss.AdaptiveColor{Light: "#FFFCE4", Dark: "#202020"}
	greyColor            = lipgloss.AdaptiveColor{Light: "#808080", Dark: "#383838"}
	darkGreyColor        = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#555555"}

	mingleLogo = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Italic(true).
			Margin(0, 0, 1, 1).
			SetString("Mingle").
			String()

	infoTxtStyle = lipgloss.NewStyle().
			Foreground(whiteColor).
			Margin(0, 0, 1, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(greyColor).
			Padding(0, 1).
			Margin(0, 1).
			Width(64)

	activeInputStyle = inputStyle.
				BorderForeground(primaryColor)

	otpInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(greyColor).
			Padding(0, 1).
			Margin(0, 1).
			Align(lipgloss.Center).
			Width(10)

	buttonStyle = lipgloss.NewStyle().
			Foreground(whiteColor).
			Background(greyColor).
			Padding(0, 3).
			Margin(1, 1, 0, 1)

	btnInputStyle = lipgloss.NewStyle().
			Margin(0, 1).
			Width(64).
			Align(lipgloss.Right)

	activeBtnInputStyle = btnInputStyle

	container = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	formContainer = container

	conversationContainerStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(primaryColor).
					Padding(0, 1)

	conversationSearchBarStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(greyColor).
					Padding(0, 1).
					Margin(0, 0, 1, 0)

	conversationActiveSearchBarStyle = conversationSearchBarStyle.
						BorderForeground(primaryColor)

	unreadBadgeStyle = lipgloss.NewStyle().
				Foreground(primaryContrastColor).
				Background(primaryColor).
				Padding(0, 1).
				Bold(true)

	typingIndicatorStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Italic(true)

	chatContainerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor)

	chatHeaderStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(greyColor)

	chatTxtareaStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderTop(true).
				BorderForeground(greyColor).
				Padding(0, 1)

	chatBubbleContainer = lipgloss.NewStyle().
				Padding(0, 1)

	chatBubbleLStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(greyColor).
				Padding(0, 1)

	chatBubbleRStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	unreadDividerStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Faint(true).
				Align(lipgloss.Center)

	tabStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(greyColor).
			Padding(0, 2)

	activeTabStyle = tabStyle.
			BorderForeground(primaryColor).
			Foreground(primaryColor).
			Bold(true)

	tabGapStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(greyColor)

	statusTextStyle = lipgloss.NewStyle().
			Foreground(darkGreyColor).
			Margin(0, 1)

	errContainerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(dangerColor).
				Foreground(dangerColor).
				Padding(0, 1)

	verticalDivider = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(greyColor)

	activeDiscoverBar = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1).
				Margin(1, 0).
				Width(70)

	discoverTableStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(greyColor).
				Padding(0, 1)
)

func activeButtonStyleWithColor(fg, bg lipgloss.AdaptiveColor) lipgloss.Style {
	return buttonStyle.
		Foreground(fg).
		Background(bg)
}

func conversationWidth() int {
	return tabGapLeftWidth
}

func conversationHeight() int {
	return terminalHeight - 5
}

func chatWidth() int {
	return terminalWidth - conversationWidth() - 2
}

func chatHeight() int {
	return terminalHeight - 5
}

func containerCentered(s string) string {
	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Center, lipgloss.Center, s)
}

func formContainerCentered(s string) string {
	return containerCentered(s)
}
