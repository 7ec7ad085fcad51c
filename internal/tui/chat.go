package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"todocli/internal/api"
	"todocli/internal/chatwidget"
	"todocli/internal/service"
)

type chatMessage struct {
	role    string
	content string
}

type widgetReadyMsg struct {
	widget chatwidget.Widget
	events chan chatwidget.Event
}
type widgetLoadingMsg struct{}
type chatHistoryMsg struct{ history api.ChatHistory }
type chatEventMsg struct{ ev chatwidget.Event }
type chatReplyMsg struct{ reply string }
type historyClearedMsg struct{}

// chatModel is the assistant panel: stored history plus a live conversation
// through the embedded widget. The widget loads once; until then (or forever,
// when the bootstrap failed) the panel shows a loading notice.
type chatModel struct {
	ctx    context.Context
	svc    service.Service
	loader *chatwidget.Loader

	widget chatwidget.Widget
	events chan chatwidget.Event

	viewport viewport.Model
	composer textinput.Model
	messages []chatMessage
	pending  string
	sending  bool

	confirmClear bool
	err          error
	width        int
	height       int
	sized        bool
}

func newChatModel(ctx context.Context, svc service.Service, loader *chatwidget.Loader) chatModel {
	composer := textinput.New()
	composer.Placeholder = "Ask the assistant..."
	composer.CharLimit = 2048

	return chatModel{
		ctx:      ctx,
		svc:      svc,
		loader:   loader,
		viewport: viewport.New(0, 0),
		composer: composer,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(m.loadWidget(), m.fetchHistory(), m.composer.Focus())
}

func (m chatModel) loadWidget() tea.Cmd {
	if m.widget != nil {
		return nil
	}
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		if loader == nil {
			return widgetLoadingMsg{}
		}
		w, err := loader.Load(ctx)
		if err != nil {
			return widgetLoadingMsg{}
		}
		events := make(chan chatwidget.Event, 64)
		w.OnEvent(func(ev chatwidget.Event) { events <- ev })
		return widgetReadyMsg{widget: w, events: events}
	}
}

func (m chatModel) fetchHistory() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		history, err := svc.ChatHistory(ctx, 0)
		if err != nil {
			return errMsg{err}
		}
		return chatHistoryMsg{history: history}
	}
}

func waitEvent(events chan chatwidget.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return chatEventMsg{ev: ev}
	}
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.viewport.Width = msg.Width - h
		m.viewport.Height = msg.Height - v - 5
		m.sized = true
		m.refreshViewport()
		return m, nil

	case widgetReadyMsg:
		m.widget = msg.widget
		m.events = msg.events
		return m, waitEvent(m.events)

	case widgetLoadingMsg:
		return m, nil

	case chatHistoryMsg:
		m.messages = nil
		for _, stored := range msg.history.Messages {
			m.messages = append(m.messages, chatMessage{role: stored.Role, content: stored.Content})
		}
		m.refreshViewport()
		return m, nil

	case chatEventMsg:
		if msg.ev.Type == "text-delta" {
			m.pending += msg.ev.Delta
			m.refreshViewport()
		}
		return m, waitEvent(m.events)

	case chatReplyMsg:
		m.sending = false
		m.pending = ""
		m.messages = append(m.messages, chatMessage{role: "assistant", content: msg.reply})
		m.refreshViewport()
		return m, nil

	case historyClearedMsg:
		m.messages = nil
		m.refreshViewport()
		return m, nil

	case errMsg:
		m.sending = false
		m.pending = ""
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.confirmClear {
			switch msg.String() {
			case "y":
				m.confirmClear = false
				ctx, svc := m.ctx, m.svc
				return m, func() tea.Msg {
					if err := svc.ClearChatHistory(ctx); err != nil {
						return errMsg{err}
					}
					return historyClearedMsg{}
				}
			case "n", "esc":
				m.confirmClear = false
				return m, nil
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, func() tea.Msg { return showDashboardMsg{} }
		case "ctrl+x":
			m.confirmClear = true
			return m, nil
		case "enter":
			return m.send(strings.TrimSpace(m.composer.Value()))
		case "f1", "f2", "f3":
			prompts := chatwidget.QuickPrompts()
			idx := int(msg.String()[1] - '1')
			if idx >= 0 && idx < len(prompts) {
				return m.send(prompts[idx].Prompt)
			}
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m chatModel) send(text string) (chatModel, tea.Cmd) {
	if text == "" || m.sending {
		return m, nil
	}
	if m.widget == nil {
		m.err = chatwidget.ErrStillLoading
		return m, nil
	}

	m.err = nil
	m.sending = true
	m.pending = ""
	m.messages = append(m.messages, chatMessage{role: "user", content: text})
	m.composer.Reset()
	m.refreshViewport()

	ctx, w := m.ctx, m.widget
	return m, func() tea.Msg {
		reply, err := w.Send(ctx, text)
		if err != nil {
			return errMsg{err}
		}
		return chatReplyMsg{reply: reply}
	}
}

func (m *chatModel) refreshViewport() {
	if !m.sized {
		return
	}
	width := m.viewport.Width
	var b strings.Builder
	for _, msg := range m.messages {
		if msg.role == "assistant" {
			b.WriteString(botStyle.Render("assistant") + "\n")
			b.WriteString(renderMarkdown(msg.content, width) + "\n\n")
		} else {
			b.WriteString(userStyle.Render("you") + "\n")
			b.WriteString(msg.content + "\n\n")
		}
	}
	if m.pending != "" {
		b.WriteString(botStyle.Render("assistant") + "\n")
		b.WriteString(m.pending + "\n")
	} else if m.sending {
		b.WriteString(statusStyle.Render("thinking...") + "\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m chatModel) View() string {
	if m.widget == nil {
		state := "loading"
		if m.loader != nil {
			state = m.loader.State().String()
		}
		return appStyle.Render(
			titleStyle.Render("Assistant") + "\n\n" +
				statusStyle.Render("chat widget "+state+"...") + "\n\n" +
				statusStyle.Render("esc: back"),
		)
	}

	if m.confirmClear {
		return appStyle.Render(
			confirmStyle.Render("Clear conversation?") + "\n\n" +
				statusStyle.Render("y: clear • n/esc: cancel"),
		)
	}

	var quick []string
	for i, p := range chatwidget.QuickPrompts() {
		quick = append(quick, "f"+string(rune('1'+i))+": "+p.Label)
	}

	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render(m.err.Error())
	}

	return appStyle.Render(
		titleStyle.Render("Assistant") + "\n" +
			m.viewport.View() + "\n" +
			m.composer.View() + "\n" +
			statusStyle.Render(strings.Join(quick, " • ")+" • ctrl+x: clear • esc: back") +
			errView,
	)
}
