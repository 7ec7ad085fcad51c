package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todocli/internal/api"
)

// Filter panel rows, top to bottom.
const (
	rowStatus = iota
	rowPriority
	rowSort
	rowOrder
	rowTags
	rowDueFrom
	rowDueTo
	rowCount
)

var (
	statusChoices   = []string{"", "pending", "in_progress", "completed"}
	priorityChoices = []string{"", "High", "Medium", "Low"}
	sortChoices     = []string{api.SortCreatedAt, api.SortDueDate, api.SortPriority}
	orderChoices    = []string{api.OrderDesc, api.OrderAsc}
)

// filterPanel edits the structured filter. The enum rows cycle with h/l, the
// text rows take input directly. Enter applies, esc discards.
type filterPanel struct {
	cursor   int
	status   int
	priority int
	sort     int
	order    int
	tags     textinput.Model
	dueFrom  textinput.Model
	dueTo    textinput.Model
}

func newFilterPanel() filterPanel {
	tags := textinput.New()
	tags.Placeholder = "work, home"
	tags.CharLimit = 256

	dueFrom := textinput.New()
	dueFrom.Placeholder = "YYYY-MM-DD"
	dueFrom.CharLimit = 10

	dueTo := textinput.New()
	dueTo.Placeholder = "YYYY-MM-DD"
	dueTo.CharLimit = 10

	return filterPanel{tags: tags, dueFrom: dueFrom, dueTo: dueTo}
}

// load seeds the panel from the active filter.
func (p *filterPanel) load(f api.Filter) {
	p.status = indexOf(statusChoices, string(f.Status))
	p.priority = indexOf(priorityChoices, string(f.Priority))
	p.sort = indexOf(sortChoices, f.Sort)
	p.order = indexOf(orderChoices, f.Order)
	p.tags.SetValue(f.Tags)
	p.dueFrom.SetValue(f.DueDateFrom)
	p.dueTo.SetValue(f.DueDateTo)
}

func (p filterPanel) value() api.Filter {
	return api.Filter{
		Status:      api.Status(statusChoices[p.status]),
		Priority:    api.Priority(priorityChoices[p.priority]),
		Sort:        sortChoices[p.sort],
		Order:       orderChoices[p.order],
		Tags:        strings.TrimSpace(p.tags.Value()),
		DueDateFrom: strings.TrimSpace(p.dueFrom.Value()),
		DueDateTo:   strings.TrimSpace(p.dueTo.Value()),
	}
}

func (p filterPanel) onTextRow() bool {
	switch p.cursor {
	case rowTags, rowDueFrom, rowDueTo:
		return true
	}
	return false
}

func (p filterPanel) Update(msg tea.Msg) (filterPanel, bool, bool, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return p, true, false, nil
		case "esc":
			return p, false, true, nil
		case "down", "tab":
			return p.moveCursor((p.cursor + 1) % rowCount)
		case "up", "shift+tab":
			return p.moveCursor((p.cursor + rowCount - 1) % rowCount)
		}

		if !p.onTextRow() {
			switch keyMsg.String() {
			case "j":
				return p.moveCursor((p.cursor + 1) % rowCount)
			case "k":
				return p.moveCursor((p.cursor + rowCount - 1) % rowCount)
			case "l", "right", " ":
				p.cycle(1)
				return p, false, false, nil
			case "h", "left":
				p.cycle(-1)
				return p, false, false, nil
			}
			return p, false, false, nil
		}
	}

	var cmd tea.Cmd
	switch p.cursor {
	case rowTags:
		p.tags, cmd = p.tags.Update(msg)
	case rowDueFrom:
		p.dueFrom, cmd = p.dueFrom.Update(msg)
	case rowDueTo:
		p.dueTo, cmd = p.dueTo.Update(msg)
	}
	return p, false, false, cmd
}

func (p filterPanel) moveCursor(idx int) (filterPanel, bool, bool, tea.Cmd) {
	p.tags.Blur()
	p.dueFrom.Blur()
	p.dueTo.Blur()
	p.cursor = idx
	var cmd tea.Cmd
	switch idx {
	case rowTags:
		cmd = p.tags.Focus()
	case rowDueFrom:
		cmd = p.dueFrom.Focus()
	case rowDueTo:
		cmd = p.dueTo.Focus()
	}
	return p, false, false, cmd
}

func (p *filterPanel) cycle(delta int) {
	switch p.cursor {
	case rowStatus:
		p.status = wrap(p.status+delta, len(statusChoices))
	case rowPriority:
		p.priority = wrap(p.priority+delta, len(priorityChoices))
	case rowSort:
		p.sort = wrap(p.sort+delta, len(sortChoices))
	case rowOrder:
		p.order = wrap(p.order+delta, len(orderChoices))
	}
}

func (p filterPanel) View() string {
	label := func(row int, name, value string) string {
		cursor := "  "
		if p.cursor == row {
			cursor = "> "
		}
		if value == "" {
			value = statusStyle.Render("(any)")
		}
		return cursor + name + " " + value
	}

	lines := []string{
		label(rowStatus, "status:  ", statusChoices[p.status]),
		label(rowPriority, "priority:", priorityChoices[p.priority]),
		label(rowSort, "sort:    ", sortChoices[p.sort]),
		label(rowOrder, "order:   ", orderChoices[p.order]),
		label(rowTags, "tags:    ", p.tags.View()),
		label(rowDueFrom, "from:    ", p.dueFrom.View()),
		label(rowDueTo, "to:      ", p.dueTo.View()),
	}

	return appStyle.Render(
		titleStyle.Render("Filter & Sort") + "\n\n" +
			strings.Join(lines, "\n") + "\n\n" +
			statusStyle.Render("j/k: navigate • h/l: cycle • enter: apply • esc: cancel"),
	)
}

func indexOf(choices []string, v string) int {
	for i, c := range choices {
		if c == v {
			return i
		}
	}
	return 0
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
