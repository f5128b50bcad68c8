package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/minglehq/mingle/internal/client"
	"github.com/minglehq/mingle/internal/domain"
	"golang.org/x/exp/maps"
)

const (
	resendTimeout  = 30 * time.Second
	otpPlaceholder = "$$$$$$"
)

type OtpModel struct {
	otp         textinput.Model
	timer       timer.Model
	sent        bool
	tabIdx      int // 0 otp input, 1 resend btn
	dangerState bool
	userEmail   string
	errMsg      errMsg
	ev          *domain.ErrValidation
	client      *client.Client
}

func InitialOTPModel(email string) OtpModel {
	in := newFormInput(otpPlaceholder, false)
	in.CharLimit = 6
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(darkGreyColor)
	in.Focus()

	return OtpModel{
		otp:       in,
		timer:     timer.New(resendTimeout),
		userEmail: email,
		ev:        domain.NewErrValidation(),
		client:    client.Get(),
	}
}

func (m OtpModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.timer.Init())
}

func (m OtpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		terminalWidth = msg.Width
		terminalHeight = msg.Height

	case tea.KeyMsg:
		// a keypress clears the surfaced error and restores the placeholder
		m.dangerState = false
		m.errMsg.err = ""
		m.otp.Placeholder = otpPlaceholder
		m.otp.PlaceholderStyle = lipgloss.NewStyle().Foreground(darkGreyColor)
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.tabIdx == 0 {
				domain.ValidateOTP(m.otp.Value(), m.ev)
				if m.ev.HasErrors() {
					m.populateErr("Invalid!")
					return m, nil
				}
				m.sent = true
				return m, m.activateUser()
			}
			if m.tabIdx == 1 && m.timer.Timedout() {
				m.sent = false
				m.timer.Timeout = resendTimeout
				return m, tea.Batch(m.timer.Init(), m.resendOtp())
			}
		case "tab", "shift+tab":
			if m.tabIdx == 1 {
				m.otp.Focus()
				m.tabIdx = 0
			} else {
				m.otp.Blur()
				m.tabIdx = 1
			}
		}

	case timer.TickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case errMsg:
		if msg.err == "Expired!" {
			m.populateErr(msg.String())
		} else {
			m.errMsg = msg
		}
		m.dangerState = true
		m.sent = false
		return m, nil

	case doneMsg:
		loginModel := InitialLoginModel()
		return loginModel, loginModel.Init()
	}

	var cmd tea.Cmd
	m.otp, cmd = m.otp.Update(msg)
	return m, cmd
}

func (m OtpModel) View() string {
	var sb strings.Builder
	sb.WriteString(mingleLogo)
	sb.WriteString("\n")
	c := formContainer
	otpStyle := otpInputStyle

	if m.dangerState && m.errMsg.err != "" {
		c = c.BorderForeground(dangerColor)
		otpStyle = otpInputStyle.BorderForeground(dangerColor)
		m.otp.TextStyle = m.otp.TextStyle.Foreground(dangerColor)
		e := ansi.Wordwrap(m.errMsg.String(), 60, " ")
		sb.WriteString(infoTxtStyle.Foreground(dangerColor).Render(e))
	} else {
		sb.WriteString(infoTxtStyle.Render("We've sent you some random digits, paste them here & hit enter"))
	}
	sb.WriteString("\n")

	if m.tabIdx == 0 {
		otpStyle = otpStyle.BorderForeground(primaryColor)
	}
	sb.WriteString(otpStyle.Render(m.otp.View()))
	sb.WriteString("\n")
	btnStyle := buttonStyle
	if m.tabIdx == 1 {
		if m.timer.Timedout() {
			btnStyle = buttonStyle.Background(primaryColor).Foreground(primaryContrastColor)
		} else {
			btnStyle = btnStyle.Background(dangerColor).Foreground(whiteColor)
		}
	}
	var timeStr string
	if !m.timer.Timedout() {
		timeStr = " in " + m.timer.View()
	}
	sb.WriteString(btnInputStyle.Align(lipgloss.Center).Render(btnStyle.Render(fmt.Sprintf("Resend%v", timeStr))))
	return formContainerCentered(c.Render(sb.String()))
}

// Helpers & Stuff -----------------------------------------------------------------------------------------------------

func (m *OtpModel) populateErr(err string) {
	flagFieldError(&m.otp, err)
	m.dangerState = true
	maps.Clear(m.ev.Errors)
}

func (m OtpModel) activateUser() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.ActivateUser(m.otp.Value()); err != nil {
			if errors.Is(err, client.ErrExpiredOTP) {
				return errMsg{err: "Expired!"}
			}
			return errMsg{err: err.Error()}
		}
		return doneMsg{}
	}
}

func (m OtpModel) resendOtp() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.ResendOtp(m.userEmail); err != nil {
			return errMsg{err: err.Error()}
		}
		return nil
	}
}
