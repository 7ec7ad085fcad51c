package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todocli/internal/api"
	"todocli/internal/form"
	"todocli/internal/tasklist"
)

// Form field order. Title first; submit validates before anything is sent.
const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldTags
	fieldDueDate
	fieldRecurrence
	fieldReminder
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Description",
	"Priority (High/Medium/Low)",
	"Tags (comma-separated)",
	"Due date (YYYY-MM-DDTHH:MM)",
	"Repeats (none/daily/weekly/monthly)",
	"Reminder (minutes before)",
}

// formDoneMsg is emitted when a create or edit was accepted by the backend.
type formDoneMsg struct{ task api.Task }

// formCancelledMsg is emitted when the form is dismissed unsaved.
type formCancelledMsg struct{}

// taskFormModel is the create/edit form. The same model serves both; editID
// selects the submit path.
type taskFormModel struct {
	ctx    context.Context
	ctrl   *tasklist.Controller
	editID string

	inputs [fieldCount]textinput.Model
	focus  int
	busy   bool
	err    error
}

func newTaskForm(ctx context.Context, ctrl *tasklist.Controller) taskFormModel {
	m := taskFormModel{ctx: ctx, ctrl: ctrl}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = fieldLabels[i]
		ti.CharLimit = 512
		m.inputs[i] = ti
	}
	m.setFields(form.Defaults())
	return m
}

func newEditForm(ctx context.Context, ctrl *tasklist.Controller, task api.Task) taskFormModel {
	m := newTaskForm(ctx, ctrl)
	m.editID = task.ID
	m.setFields(form.FromTask(task))
	return m
}

func (m *taskFormModel) setFields(f form.Fields) {
	m.inputs[fieldTitle].SetValue(f.Title)
	m.inputs[fieldDescription].SetValue(f.Description)
	m.inputs[fieldPriority].SetValue(f.Priority)
	m.inputs[fieldTags].SetValue(f.Tags)
	m.inputs[fieldDueDate].SetValue(f.DueDate)
	m.inputs[fieldRecurrence].SetValue(f.Recurrence)
	m.inputs[fieldReminder].SetValue(f.Reminder)
}

func (m taskFormModel) fields() form.Fields {
	return form.Fields{
		Title:       m.inputs[fieldTitle].Value(),
		Description: m.inputs[fieldDescription].Value(),
		Priority:    m.inputs[fieldPriority].Value(),
		Tags:        m.inputs[fieldTags].Value(),
		DueDate:     m.inputs[fieldDueDate].Value(),
		Recurrence:  m.inputs[fieldRecurrence].Value(),
		Reminder:    m.inputs[fieldReminder].Value(),
	}
}

func (m taskFormModel) Init() tea.Cmd {
	return m.inputs[fieldTitle].Focus()
}

func (m taskFormModel) Update(msg tea.Msg) (taskFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case errMsg:
		m.busy = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return formCancelledMsg{} }
		case "tab", "down":
			return m.focusField((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m.focusField((m.focus + fieldCount - 1) % fieldCount)
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m taskFormModel) focusField(idx int) (taskFormModel, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = idx
	return m, m.inputs[m.focus].Focus()
}

// submit validates locally first; nothing is sent while the form is invalid.
func (m taskFormModel) submit() (taskFormModel, tea.Cmd) {
	fields := m.fields()
	if err := fields.Validate(); err != nil {
		m.err = err
		return m, nil
	}

	m.busy = true
	m.err = nil
	ctx, ctrl, editID := m.ctx, m.ctrl, m.editID
	return m, func() tea.Msg {
		if editID != "" {
			payload, err := fields.UpdatePayload()
			if err != nil {
				return errMsg{err}
			}
			task, err := ctrl.Update(ctx, editID, payload)
			if err != nil {
				return errMsg{err}
			}
			return formDoneMsg{task: task}
		}
		payload, err := fields.CreatePayload()
		if err != nil {
			return errMsg{err}
		}
		task, err := ctrl.Create(ctx, payload)
		if err != nil {
			return errMsg{err}
		}
		return formDoneMsg{task: task}
	}
}

func (m taskFormModel) View() string {
	header := "New Task"
	if m.editID != "" {
		header = "Edit Task"
	}

	body := titleStyle.Render(header) + "\n\n"
	for i := range m.inputs {
		label := fieldLabels[i]
		if i == m.focus {
			label = confirmStyle.Render(label)
		} else {
			label = statusStyle.Render(label)
		}
		body += label + "\n" + m.inputs[i].View() + "\n"
	}

	switch {
	case m.busy:
		body += "\n" + statusStyle.Render("saving...")
	case m.err != nil:
		body += "\n" + errorStyle.Render(m.err.Error())
	}

	body += "\n" + statusStyle.Render("enter: save • tab: next field • esc: cancel")
	return appStyle.Render(body)
}
