// Package form turns raw task-form field strings into create/update
// payloads, validating before any network call is made.
package form

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"todocli/internal/api"
)

// MaxTags is the most tags a task may carry.
const MaxTags = 10

// Validation messages shown inline; these never reach the backend.
var (
	ErrTitleRequired = errors.New("Title is required")
	ErrTooManyTags   = errors.New("Maximum 10 tags allowed")
)

// Fields is the raw state of the task form. All values are strings as typed;
// Payload conversion trims, null-coalesces empties and normalizes dates.
type Fields struct {
	Title       string
	Description string
	Priority    string // High | Medium | Low
	Tags        string // comma-separated
	DueDate     string // 2006-01-02T15:04 or 2006-01-02
	Recurrence  string // none | daily | weekly | monthly
	Reminder    string // integer minutes
}

// Defaults returns the form's initial state.
func Defaults() Fields {
	return Fields{
		Priority:   string(api.PriorityMedium),
		Recurrence: string(api.RecurrenceNone),
	}
}

// FromTask populates the form from a server-returned record for editing.
func FromTask(t api.Task) Fields {
	f := Fields{
		Title:      t.Title,
		Priority:   string(t.Priority),
		Tags:       strings.Join(t.Tags, ", "),
		Recurrence: string(t.RecurrencePattern),
	}
	if t.Description != nil {
		f.Description = *t.Description
	}
	if t.DueDate != nil {
		f.DueDate = t.DueDate.Local().Format("2006-01-02T15:04")
	}
	if t.ReminderLeadTime != nil {
		f.Reminder = strconv.Itoa(*t.ReminderLeadTime)
	}
	return f
}

// ParseTags splits a comma-separated input, trimming and dropping empties.
// Order is preserved.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Validate checks the form without touching the network.
func (f Fields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrTitleRequired
	}
	if len(ParseTags(f.Tags)) > MaxTags {
		return ErrTooManyTags
	}
	if _, err := f.dueDate(); err != nil {
		return err
	}
	if _, err := f.reminder(); err != nil {
		return err
	}
	return nil
}

// CreatePayload validates and builds the create request body.
func (f Fields) CreatePayload() (api.TaskCreate, error) {
	if err := f.Validate(); err != nil {
		return api.TaskCreate{}, err
	}
	due, _ := f.dueDate()
	reminder, _ := f.reminder()
	return api.TaskCreate{
		Title:             strings.TrimSpace(f.Title),
		Description:       optional(f.Description),
		Priority:          f.priority(),
		Tags:              ParseTags(f.Tags),
		DueDate:           due,
		RecurrencePattern: f.recurrence(),
		ReminderLeadTime:  reminder,
	}, nil
}

// UpdatePayload validates and builds the full-replace update body.
func (f Fields) UpdatePayload() (api.TaskUpdate, error) {
	if err := f.Validate(); err != nil {
		return api.TaskUpdate{}, err
	}
	due, _ := f.dueDate()
	reminder, _ := f.reminder()
	title := strings.TrimSpace(f.Title)
	return api.TaskUpdate{
		Title:             &title,
		Description:       optional(f.Description),
		Priority:          f.priority(),
		Tags:              ParseTags(f.Tags),
		DueDate:           due,
		RecurrencePattern: f.recurrence(),
		ReminderLeadTime:  reminder,
	}, nil
}

func (f Fields) priority() api.Priority {
	switch strings.TrimSpace(f.Priority) {
	case "":
		return api.PriorityMedium
	default:
		return api.Priority(strings.TrimSpace(f.Priority))
	}
}

func (f Fields) recurrence() api.Recurrence {
	if r := strings.TrimSpace(f.Recurrence); r != "" {
		return api.Recurrence(r)
	}
	return api.RecurrenceNone
}

// dueDate converts the datetime-local style input to RFC3339, nil when empty.
func (f Fields) dueDate() (*string, error) {
	raw := strings.TrimSpace(f.DueDate)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			s := t.Format(time.RFC3339)
			return &s, nil
		}
	}
	return nil, errors.New("Invalid due date: " + raw)
}

// reminder converts the lead-time field to integer minutes, nil when empty.
func (f Fields) reminder() (*int, error) {
	raw := strings.TrimSpace(f.Reminder)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New("Reminder must be a number of minutes")
	}
	return &n, nil
}

// optional trims s and returns nil for the empty string.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
