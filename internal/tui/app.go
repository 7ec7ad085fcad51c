// Package tui implements the interactive terminal UI: a login/register
// screen gating the dashboard, the task dashboard itself, and the assistant
// chat panel.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"todocli/internal/api"
	"todocli/internal/chatwidget"
	"todocli/internal/config"
	"todocli/internal/service"
	"todocli/internal/session"
	"todocli/internal/tasklist"
)

type screen int

const (
	screenLogin screen = iota
	screenRegister
	screenDashboard
	screenChat
)

// sessionExpiredMsg is sent when the backend rejects the stored token. The
// app drops back to the login screen from wherever it is.
type sessionExpiredMsg struct{}

// loggedInMsg is emitted by the auth screen on success.
type loggedInMsg struct{ user api.User }

type showRegisterMsg struct{}
type showLoginMsg struct{}
type showChatMsg struct{}
type showDashboardMsg struct{}

type errMsg struct{ err error }

// Options wires the app to the rest of the program.
type Options struct {
	Config  *config.Config
	Service service.Service
	Session *session.Store

	// Client, when set, has its unauthorized hook pointed at the program so
	// a 401 anywhere navigates back to login.
	Client *api.Client

	// Loader provides the chat widget. When nil the chat screen reports the
	// widget as unavailable.
	Loader *chatwidget.Loader

	// StartInChat opens the chat screen instead of the dashboard.
	StartInChat bool
}

// App is the top-level model. It owns the active screen and routes messages;
// each screen is its own model.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	sess   *session.Store
	ctrl   *tasklist.Controller
	loader *chatwidget.Loader

	screen    screen
	auth      authModel
	dashboard dashboardModel
	chat      chatModel

	startInChat bool
	width       int
	height      int
}

// NewApp builds the app model. Call session.Store.Load before this so a
// persisted session skips the login screen.
func NewApp(ctx context.Context, opts Options) App {
	ctrl := tasklist.New(opts.Service)
	a := App{
		ctx:         ctx,
		cfg:         opts.Config,
		sess:        opts.Session,
		ctrl:        ctrl,
		loader:      opts.Loader,
		screen:      screenLogin,
		auth:        newAuthModel(ctx, opts.Session, false),
		dashboard:   newDashboardModel(ctx, ctrl, opts.Service, opts.Session),
		chat:        newChatModel(ctx, opts.Service, opts.Loader),
		startInChat: opts.StartInChat,
	}
	if opts.Session.IsAuthenticated() {
		a.screen = screenDashboard
		if opts.StartInChat {
			a.screen = screenChat
		}
	}
	return a
}

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	app := NewApp(ctx, opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Client != nil {
		opts.Client.OnUnauthorized(func() { p.Send(sessionExpiredMsg{}) })
	}
	_, err := p.Run()
	return err
}

func (a App) Init() tea.Cmd {
	switch a.screen {
	case screenDashboard:
		return a.dashboard.Init()
	case screenChat:
		return a.chat.Init()
	}
	return a.auth.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(msg)
		cmds = append(cmds, cmd)
		a.chat, cmd = a.chat.Update(msg)
		cmds = append(cmds, cmd)
		a.auth, cmd = a.auth.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case sessionExpiredMsg:
		// A failed login is itself a 401; the auth screen reports that
		// directly.
		if a.screen == screenLogin || a.screen == screenRegister {
			return a, nil
		}
		a.screen = screenLogin
		a.auth = newAuthModel(a.ctx, a.sess, false)
		a.auth.notice = "session expired, log in again"
		return a, a.auth.Init()

	case loggedInMsg:
		a.screen = screenDashboard
		if a.startInChat {
			a.screen = screenChat
			return a, a.chat.Init()
		}
		return a, a.dashboard.Init()

	case showRegisterMsg:
		a.screen = screenRegister
		a.auth = newAuthModel(a.ctx, a.sess, true)
		return a, a.auth.Init()

	case showLoginMsg:
		a.screen = screenLogin
		a.auth = newAuthModel(a.ctx, a.sess, false)
		return a, a.auth.Init()

	case showChatMsg:
		a.screen = screenChat
		return a, a.chat.Init()

	case showDashboardMsg:
		a.screen = screenDashboard
		return a, a.dashboard.Init()
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenLogin, screenRegister:
		a.auth, cmd = a.auth.Update(msg)
	case screenDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case screenChat:
		a.chat, cmd = a.chat.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	switch a.screen {
	case screenDashboard:
		return a.dashboard.View()
	case screenChat:
		return a.chat.View()
	}
	return a.auth.View()
}
