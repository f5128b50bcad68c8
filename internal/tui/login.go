package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/minglehq/mingle/internal/client"
	"github.com/minglehq/mingle/internal/domain"
	"golang.org/x/exp/maps"
)

var loginPlaceholders = []string{
	"your email goes here...",
	"and here goes the password...",
}

type LoginModel struct {
	txtInputs   []textinput.Model
	spinner     spinner.Model
	spin        bool
	tabIdx      int // 0-1 inputs, 2 Continue, 3 Register
	dangerState bool
	errMsg      errMsg
	ev          *domain.ErrValidation
	client      *client.Client
}

type inActiveUser struct{}

func InitialLoginModel() LoginModel {
	m := LoginModel{
		txtInputs: []textinput.Model{
			newFormInput(loginPlaceholders[0], false),
			newFormInput(loginPlaceholders[1], true),
		},
		spinner: newFormSpinner(),
		ev:      domain.NewErrValidation(),
		client:  client.Get(),
	}
	return m
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		terminalWidth = msg.Width
		terminalHeight = msg.Height

	case tea.KeyMsg:
		syncInputFocus(m.txtInputs, m.tabIdx)
		// a keypress clears any surfaced error
		m.dangerState = false
		m.errMsg = errMsg{}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			switch {
			case m.tabIdx < 2:
				m.tabIdx++
			case m.tabIdx == 2 && !m.spin:
				if err := m.validate(); err != nil {
					return m, nil
				}
				m.spin = true
				return m, tea.Batch(m.spinner.Tick, m.login())
			case m.tabIdx == 3:
				registerModel := InitialRegisterModel()
				return registerModel, registerModel.Init()
			}
		case "tab":
			m.tabIdx = (m.tabIdx + 1) % 4
		case "shift+tab":
			m.tabIdx = (m.tabIdx + 3) % 4
		case "left":
			if m.tabIdx == 3 {
				m.tabIdx--
			}
		case "right":
			if m.tabIdx == 2 {
				m.tabIdx++
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case inActiveUser:
		m.spin = false
		otpModel := InitialOTPModel(m.txtInputs[0].Value())
		return otpModel, tea.Sequence(m.resendOtp(), otpModel.Init())

	case errMsg:
		m.spin = false
		m.dangerState = true
		m.errMsg = msg
		return m, nil

	case doneMsg:
		m.spin = false
		tabModel := InitialTabContainerModel()
		return tabModel, tabModel.Init()
	}
	restorePlaceholders(m.txtInputs, loginPlaceholders)
	return m, m.handleTxtInputs(msg)
}

func (m LoginModel) View() string {
	var sb strings.Builder
	sb.WriteString(mingleLogo)
	sb.WriteString("\n")
	if m.errMsg.err != "" && m.dangerState {
		e := ansi.Wordwrap(m.errMsg.String(), 60, " ")
		sb.WriteString(infoTxtStyle.Foreground(dangerColor).Render(e))
	} else {
		sb.WriteString(infoTxtStyle.Render("Login to your account"))
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
	registerBtn := buttonStyle.Render("Register")
	switch m.tabIdx {
	case 2:
		continueBtn = activeButtonStyleWithColor(whiteColor, primaryColor).Render(continueLabel)
	case 3:
		registerBtn = activeButtonStyleWithColor(whiteColor, primaryColor).Render("Register")
	}
	sb.WriteString(btnInputStyle.Render(continueBtn, registerBtn))
	c := container
	if m.dangerState {
		c = c.BorderForeground(dangerColor)
	}
	return containerCentered(c.Render(sb.String()))
}

// Helpers & Stuff -----------------------------------------------------------------------------------------------------

func (m *LoginModel) validate() error {
	maps.Clear(m.ev.Errors)
	domain.ValidateEmail(m.txtInputs[0].Value(), m.ev)
	m.ev.Check(m.txtInputs[1].Value() != "", "password", "must be provided")
	if !m.ev.HasErrors() {
		return nil
	}
	m.txtInputs[1].Reset() // never keep a typed password around on failure
	m.dangerState = true
	if err, ok := m.ev.Errors["email"]; ok {
		flagFieldError(&m.txtInputs[0], err)
	}
	if err, ok := m.ev.Errors["password"]; ok {
		flagFieldError(&m.txtInputs[1], err)
	}
	return ErrValidation
}

func (m LoginModel) handleTxtInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.txtInputs))
	for i := range m.txtInputs {
		if m.tabIdx == i {
			m.txtInputs[i], cmds[i] = m.txtInputs[i].Update(msg)
		}
	}
	return tea.Batch(cmds...)
}

func (m LoginModel) login() tea.Cmd {
	return func() tea.Msg {
		u := domain.UserAuth{
			Email:    m.txtInputs[0].Value(),
			Password: m.txtInputs[1].Value(),
		}
		if err := m.client.Login(u); err != nil {
			if errors.Is(err, client.ErrNonActiveUser) {
				return inActiveUser{}
			}
			return errMsg{err: err.Error()}
		}
		return doneMsg{}
	}
}

func (m LoginModel) resendOtp() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.ResendOtp(m.txtInputs[0].Value()); err != nil {
			return errMsg{err: err.Error()}
		}
		return nil
	}
}
