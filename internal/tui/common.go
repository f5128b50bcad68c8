package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/minglehq/mingle/internal/client"
)

type errMsg struct {
	err  string
	code int
}

func (e errMsg) String() string {
	return e.err
}

// doneMsg signals a successful async operation, the meaning depends on the model
type doneMsg struct{}

// requireAuthMsg routes the whole program back to the login form
type requireAuthMsg struct{}

// chatStateMsg carries a fresh engine snapshot into the models that render it
type chatStateMsg client.ChatState

type connStateMsg client.WsConnState

type spinMsg struct{}

type resetSpinnerMsg struct{}

var ErrValidation = errors.New("validation error")

// once ioStatus is set & spinnerSpinCmd is returned, the tab container's
// spinner spins alongside ioStatus until spinnerResetCmd
var ioStatus string

func spinnerSpinCmd() tea.Msg {
	return spinMsg{}
}

func spinnerResetCmd() tea.Msg {
	return resetSpinnerMsg{}
}
