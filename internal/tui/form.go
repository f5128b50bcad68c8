package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// Shared plumbing for the login, register and otp forms.

func newFormInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.TextStyle = lipgloss.NewStyle().Foreground(primaryColor)
	ti.Cursor = cursor.New()
	ti.Cursor.SetMode(cursor.CursorHide)
	ti.Placeholder = placeholder
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	return ti
}

func newFormSpinner() spinner.Model {
	s := spinner.New()
	s.Style = lipgloss.NewStyle().Foreground(whiteColor)
	s.Spinner = spinner.MiniDot
	return s
}

// flagFieldError clears the field and surfaces err in its place.
func flagFieldError(ti *textinput.Model, err string) {
	ti.Reset()
	ti.Placeholder = err
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(dangerColor)
}

// restorePlaceholders puts the default placeholder back once a flagged field
// regains focus, otherwise a stale error keeps showing under the cursor.
func restorePlaceholders(inputs []textinput.Model, defaults []string) {
	for i := range inputs {
		if inputs[i].Focused() {
			inputs[i].Placeholder = defaults[i]
			inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(darkGreyColor)
		}
	}
}

// syncInputFocus focuses the input at tabIdx and blurs the rest.
func syncInputFocus(inputs []textinput.Model, tabIdx int) {
	for i := range inputs {
		if i == tabIdx {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}
