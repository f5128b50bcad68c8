package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/minglehq/mingle/internal/client"
	"github.com/minglehq/mingle/internal/domain"
	"golang.org/x/exp/maps"
)

var registerPlaceholders = []string{
	"what should we call you, probably your name...",
	"how should we contact you, probably your email...",
	"and a password you won't forget...",
}

type RegisterModel struct {
	txtInputs   []textinput.Model
	spinner     spinner.Model
	spin        bool
	tabIdx      int // 0-2 inputs, 3 Continue, 4 Login
	dangerState bool
	errMsg      errMsg
	ev          *domain.ErrValidation
	client      *client.Client
}

func InitialRegisterModel() RegisterModel {
	m := RegisterModel{
		txtInputs: []textinput.Model{
			newFormInput(registerPlaceholders[0], false),
			newFormInput(registerPlaceholders[1], false),
			newFormInput(registerPlaceholders[2], true),
		},
		spinner: newFormSpinner(),
		ev:      domain.NewErrValidation(),
		client:  client.Get(),
	}
	return m
}

func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		terminalWidth = msg.Width
		terminalHeight = msg.Height

	case tea.KeyMsg:
		syncInputFocus(m.txtInputs, m.tabIdx)
		m.dangerState = false
		m.errMsg = errMsg{}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			switch {
			case m.tabIdx < 3:
				m.tabIdx++
			case m.tabIdx == 3 && !m.spin:
				if err := m.validate(); err != nil {
					return m, nil
				}
				m.spin = true
				return m, tea.Batch(m.spinner.Tick, m.register())
			case m.tabIdx == 4:
				loginModel := InitialLoginModel()
				return loginModel, loginModel.Init()
			}
		case "tab":
			m.tabIdx = (m.tabIdx + 1) % 5
		case "shift+tab":
			m.tabIdx = (m.tabIdx + 4) % 5
		case "left":
			if m.tabIdx == 4 {
				m.tabIdx--
			}
		case "right":
			if m.tabIdx == 3 {
				m.tabIdx++
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case errMsg:
		m.spin = false
		m.dangerState = true
		m.errMsg = msg
		return m, nil

	case doneMsg:
		// registration kicks off activation, route to the otp form
		m.spin = false
		otpModel := InitialOTPModel(m.txtInputs[1].Value())
		return otpModel, otpModel.Init()
	}
	restorePlaceholders(m.txtInputs, registerPlaceholders)
	return m, m.handleTxtInputs(msg)
}

func (m RegisterModel) View() string {
	var sb strings.Builder
	sb.WriteString(mingleLogo)
	sb.WriteString("\n")
	if m.errMsg.err != "" && m.dangerState {
		e := ansi.Wordwrap(m.errMsg.String(), 60, " ")
		sb.WriteString(infoTxtStyle.Foreground(dangerColor).Render(e))
	} else {
		sb.WriteString(infoTxtStyle.Render("Create your account"))
	}
	sb.WriteString("\n")
	for i := range m.txtInputs {
		style := inputStyle
		if i == m.tabIdx {
			style = activeInputStyle
		}
		sb.WriteString(style.Render(m.txtInputs[i].View()))
		sb.WriteString("\n")
	}
	continueLabel := "Continue"
	if m.spin {
		continueLabel = m.spinner.View()
	}
	continueBtn := buttonStyle.Render(continueLabel)
	loginBtn := buttonStyle.Render("Login")
	switch m.tabIdx {
	case 3:
		continueBtn = activeButtonStyleWithColor(whiteColor, primaryColor).Render(continueLabel)
	case 4:
		loginBtn = activeButtonStyleWithColor(whiteColor, primaryColor).Render("Login")
	}
	sb.WriteString(btnInputStyle.Render(continueBtn, loginBtn))
	c := container
	if m.dangerState {
		c = c.BorderForeground(dangerColor)
	}
	return containerCentered(c.Render(sb.String()))
}

// Helpers & Stuff -----------------------------------------------------------------------------------------------------

func (m *RegisterModel) validate() error {
	maps.Clear(m.ev.Errors)
	domain.ValidateName(m.txtInputs[0].Value(), m.ev)
	domain.ValidateEmail(m.txtInputs[1].Value(), m.ev)
	domain.ValidatePlainPassword(m.txtInputs[2].Value(), m.ev)
	if !m.ev.HasErrors() {
		return nil
	}
	m.txtInputs[2].Reset()
	m.dangerState = true
	for i, field := range []string{"name", "email", "password"} {
		if err, ok := m.ev.Errors[field]; ok {
			flagFieldError(&m.txtInputs[i], err)
		}
	}
	return ErrValidation
}

func (m RegisterModel) handleTxtInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.txtInputs))
	for i := range m.txtInputs {
		if m.tabIdx == i {
			m.txtInputs[i], cmds[i] = m.txtInputs[i].Update(msg)
		}
	}
	return tea.Batch(cmds...)
}

func (m RegisterModel) register() tea.Cmd {
	return func() tea.Msg {
		u := domain.UserRegister{
			Name:     m.txtInputs[0].Value(),
			Email:    m.txtInputs[1].Value(),
			Password: m.txtInputs[2].Value(),
		}
		if err := m.client.Register(&u); err != nil {
			return errMsg{err: err.Error()}
		}
		return doneMsg{}
	}
}
