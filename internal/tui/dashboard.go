package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todocli/internal/api"
	"todocli/internal/service"
	"todocli/internal/session"
	"todocli/internal/tasklist"
)

type dashState int

const (
	dashViewing dashState = iota
	dashSearching
	dashFilter
	dashForm
	dashConfirm
)

type tasksReloadedMsg struct{}
type taskToggledMsg struct{ task api.Task }
type taskDeletedMsg struct{ id string }
type unreadCountMsg struct{ count int }

type dashKeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Search key.Binding
	Filter key.Binding
	Reload key.Binding
	Yank   key.Binding
	Chat   key.Binding
	Logout key.Binding
}

func newDashKeyMap() dashKeyMap {
	return dashKeyMap{
		Add:    key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a/n", "add")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle: key.NewBinding(key.WithKeys("enter", "x"), key.WithHelp("enter/x", "toggle")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Yank:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy title")),
		Chat:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chat")),
		Logout: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
	}
}

// dashboardModel is the task dashboard: the list, the search box, the filter
// panel and the create/edit form.
type dashboardModel struct {
	ctx  context.Context
	ctrl *tasklist.Controller
	svc  service.Service
	sess *session.Store

	state  dashState
	list   list.Model
	search textinput.Model
	form   taskFormModel
	filter filterPanel
	keys   dashKeyMap

	status string
	unread int
	err    error
	width  int
	height int
}

func newDashboardModel(ctx context.Context, ctrl *tasklist.Controller, svc service.Service, sess *session.Store) dashboardModel {
	keys := newDashKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "tasks"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	// Server-side search replaces the built-in fuzzy filter.
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete, keys.Search, keys.Filter}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{
			keys.Add, keys.Edit, keys.Toggle, keys.Delete, keys.Search,
			keys.Filter, keys.Reload, keys.Yank, keys.Chat, keys.Logout,
		}
	}

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 256

	return dashboardModel{
		ctx:    ctx,
		ctrl:   ctrl,
		svc:    svc,
		sess:   sess,
		list:   l,
		search: search,
		filter: newFilterPanel(),
		keys:   keys,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.fetchUnread())
}

func (m dashboardModel) fetchUnread() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		resp, err := svc.ListNotifications(ctx, true)
		if err != nil {
			// The unread badge is best effort; the list itself reports errors.
			return unreadCountMsg{count: 0}
		}
		return unreadCountMsg{count: resp.UnreadCount}
	}
}

func (m dashboardModel) reload() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		if err := ctrl.Reload(ctx); err != nil {
			return errMsg{err}
		}
		return tasksReloadedMsg{}
	}
}

func (m *dashboardModel) refreshItems() {
	tasks := m.ctrl.Tasks()
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{Task: t}
	}
	m.list.SetItems(items)
}

func (m dashboardModel) selected() (api.Task, bool) {
	item, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return api.Task{}, false
	}
	return item.Task, true
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case tasksReloadedMsg:
		m.refreshItems()
		m.err = nil
		return m, nil

	case taskToggledMsg:
		m.refreshItems()
		m.status = "toggled: " + msg.task.Title
		return m, nil

	case taskDeletedMsg:
		m.refreshItems()
		m.status = "deleted"
		return m, nil

	case unreadCountMsg:
		m.unread = msg.count
		return m, nil

	case formDoneMsg:
		m.state = dashViewing
		m.refreshItems()
		m.status = "saved: " + msg.task.Title
		return m, nil

	case formCancelledMsg:
		m.state = dashViewing
		return m, nil

	case errMsg:
		if m.state == dashForm {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
		m.err = msg.err
		return m, nil
	}

	switch m.state {
	case dashViewing:
		return m.updateViewing(msg)
	case dashSearching:
		return m.updateSearching(msg)
	case dashFilter:
		return m.updateFilter(msg)
	case dashForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case dashConfirm:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m dashboardModel) updateViewing(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		m.status = ""
		switch keyMsg.String() {
		case "a", "n":
			m.state = dashForm
			m.form = newTaskForm(m.ctx, m.ctrl)
			return m, m.form.Init()
		case "e":
			if task, ok := m.selected(); ok {
				m.state = dashForm
				m.form = newEditForm(m.ctx, m.ctrl, task)
				return m, m.form.Init()
			}
		case "enter", "x":
			if task, ok := m.selected(); ok {
				ctx, ctrl, id := m.ctx, m.ctrl, task.ID
				return m, func() tea.Msg {
					updated, err := ctrl.Toggle(ctx, id)
					if err != nil {
						return errMsg{err}
					}
					return taskToggledMsg{task: updated}
				}
			}
		case "d":
			if _, ok := m.selected(); ok {
				m.state = dashConfirm
				return m, nil
			}
		case "/":
			m.state = dashSearching
			if text, ok := m.ctrl.Searching(); ok {
				m.search.SetValue(text)
			} else {
				m.search.Reset()
			}
			return m, m.search.Focus()
		case "f":
			m.state = dashFilter
			m.filter = newFilterPanel()
			m.filter.load(m.ctrl.Filter())
			return m, nil
		case "r":
			return m, tea.Batch(m.reload(), m.fetchUnread())
		case "y":
			if task, ok := m.selected(); ok {
				if err := clipboard.WriteAll(task.Title); err != nil {
					m.err = err
				} else {
					m.status = "copied title"
				}
			}
			return m, nil
		case "c":
			return m, func() tea.Msg { return showChatMsg{} }
		case "L":
			ctx, sess := m.ctx, m.sess
			return m, func() tea.Msg {
				sess.Logout(ctx)
				return showLoginMsg{}
			}
		case "esc":
			if _, ok := m.ctrl.Searching(); ok {
				m.ctrl.ClearSearch()
				return m, m.reload()
			}
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m dashboardModel) updateSearching(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.state = dashViewing
			m.search.Blur()
			m.ctrl.SetSearch(strings.TrimSpace(m.search.Value()))
			return m, m.reload()
		case "esc":
			m.state = dashViewing
			m.search.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m dashboardModel) updateFilter(msg tea.Msg) (dashboardModel, tea.Cmd) {
	var applied, cancelled bool
	var cmd tea.Cmd
	m.filter, applied, cancelled, cmd = m.filter.Update(msg)
	if cancelled {
		m.state = dashViewing
		return m, nil
	}
	if applied {
		m.state = dashViewing
		// Applying a filter leaves search mode.
		m.ctrl.SetFilter(m.filter.value())
		return m, m.reload()
	}
	return m, cmd
}

func (m dashboardModel) updateConfirm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			m.state = dashViewing
			if task, ok := m.selected(); ok {
				ctx, ctrl, id := m.ctx, m.ctrl, task.ID
				return m, func() tea.Msg {
					if err := ctrl.Delete(ctx, id); err != nil {
						return errMsg{err}
					}
					return taskDeletedMsg{id: id}
				}
			}
			return m, nil
		case "n", "esc":
			m.state = dashViewing
			return m, nil
		}
	}
	return m, nil
}

func (m dashboardModel) statusLine() string {
	pending, inProgress, completed := m.ctrl.Counts()
	line := fmt.Sprintf("%d pending • %d in progress • %d completed", pending, inProgress, completed)
	if text, ok := m.ctrl.Searching(); ok {
		line += "  " + confirmStyle.Render(fmt.Sprintf("search: %q", text))
	} else if f := m.ctrl.Filter(); f.Active() {
		line += "  " + badgeStyle.Render("filtered")
	}
	if m.unread > 0 {
		line += "  " + errorStyle.Render(fmt.Sprintf("%d unread", m.unread))
	}
	if user, ok := m.sess.CurrentUser(); ok {
		line += "  " + statusStyle.Render(user.Email)
	}
	return line
}

func (m dashboardModel) View() string {
	switch m.state {
	case dashForm:
		return m.form.View()
	case dashFilter:
		return m.filter.View()
	case dashConfirm:
		task, _ := m.selected()
		return appStyle.Render(
			confirmStyle.Render("Delete Task?") + "\n\n" +
				"  " + task.Title + "\n\n" +
				statusStyle.Render("y: delete • n/esc: cancel"),
		)
	case dashSearching:
		return appStyle.Render(
			titleStyle.Render("Search") + "\n\n" +
				m.search.View() + "\n\n" +
				statusStyle.Render("enter: search • esc: cancel"),
		)
	}

	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render("Error: "+m.err.Error()+"  (r: retry)")
	}
	var statusView string
	if m.status != "" {
		statusView = "\n" + statusStyle.Render(m.status)
	}
	return appStyle.Render(m.list.View() + "\n" + m.statusLine() + statusView + errView)
}
