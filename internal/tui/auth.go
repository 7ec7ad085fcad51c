package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todocli/internal/api"
	"todocli/internal/session"
)

// authModel is the login/register screen. The same model serves both; the
// register flag switches the submit path and the footer hint.
type authModel struct {
	ctx      context.Context
	sess     *session.Store
	register bool

	email    textinput.Model
	password textinput.Model
	focus    int

	busy   bool
	notice string
	err    error
}

func newAuthModel(ctx context.Context, sess *session.Store, register bool) authModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 256

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return authModel{
		ctx:      ctx,
		sess:     sess,
		register: register,
		email:    email,
		password: password,
	}
}

func (m authModel) Init() tea.Cmd {
	return m.email.Focus()
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loggedInMsg:
		m.busy = false
		return m, nil

	case errMsg:
		m.busy = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			return m.cycleFocus()
		case "ctrl+r":
			if m.register {
				return m, func() tea.Msg { return showLoginMsg{} }
			}
			return m, func() tea.Msg { return showRegisterMsg{} }
		case "enter":
			if m.focus == 0 {
				return m.cycleFocus()
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m authModel) cycleFocus() (authModel, tea.Cmd) {
	m.email.Blur()
	m.password.Blur()
	if m.focus == 0 {
		m.focus = 1
		return m, m.password.Focus()
	}
	m.focus = 0
	return m, m.email.Focus()
}

func (m authModel) submit() (authModel, tea.Cmd) {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	if email == "" || password == "" {
		m.err = errFieldsRequired
		return m, nil
	}

	m.busy = true
	m.err = nil
	ctx, sess, register := m.ctx, m.sess, m.register
	return m, func() tea.Msg {
		var user api.User
		var err error
		if register {
			user, err = sess.Register(ctx, email, password)
		} else {
			user, err = sess.Login(ctx, email, password)
		}
		if err != nil {
			return errMsg{err}
		}
		return loggedInMsg{user: user}
	}
}

var errFieldsRequired = errString("email and password are required")

type errString string

func (e errString) Error() string { return string(e) }

func (m authModel) View() string {
	header := "Log in"
	action := "ctrl+r: register instead"
	if m.register {
		header = "Create account"
		action = "ctrl+r: log in instead"
	}

	body := titleStyle.Render(header) + "\n\n" +
		m.email.View() + "\n" +
		m.password.View() + "\n\n"

	switch {
	case m.busy:
		body += statusStyle.Render("contacting server...")
	case m.err != nil:
		body += errorStyle.Render(m.err.Error())
	case m.notice != "":
		body += statusStyle.Render(m.notice)
	}

	body += "\n\n" + statusStyle.Render("enter: submit • tab: next field • "+action+" • esc: quit")
	return appStyle.Render(body)
}
