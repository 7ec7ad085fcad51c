// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todocli/internal/api"
)

// Status glyphs for task lines.
const (
	GlyphPending    = "[ ]"
	GlyphInProgress = "[~]"
	GlyphCompleted  = "[x]"
)

// StatusGlyph returns the marker for a task status.
func StatusGlyph(s api.Status) string {
	switch s {
	case api.StatusCompleted:
		return GlyphCompleted
	case api.StatusInProgress:
		return GlyphInProgress
	default:
		return GlyphPending
	}
}

// FormatTask formats one task line.
// Format: "{N:>4}  {GLYPH} {TITLE}  [{PRIORITY}]{ due ...}{ #tags}\n"
func FormatTask(w io.Writer, num int, task api.Task) {
	line := fmt.Sprintf("%4d  %s %s  [%s]", num, StatusGlyph(task.Status), normalizeTitle(task.Title), task.Priority)
	if task.DueDate != nil {
		line += "  due " + task.DueDate.Local().Format("2006-01-02 15:04")
	}
	if len(task.Tags) > 0 {
		line += "  #" + strings.Join(task.Tags, " #")
	}
	fmt.Fprintln(w, line)
}

// FormatTaskDetail prints the full record, one field per line.
func FormatTaskDetail(w io.Writer, task api.Task) {
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	if task.Description != nil && strings.TrimSpace(*task.Description) != "" {
		fmt.Fprintf(w, "description: %s\n", *task.Description)
	}
	fmt.Fprintf(w, "status:      %s\n", task.Status)
	fmt.Fprintf(w, "priority:    %s\n", task.Priority)
	if len(task.Tags) > 0 {
		fmt.Fprintf(w, "tags:        %s\n", strings.Join(task.Tags, ", "))
	}
	if task.DueDate != nil {
		fmt.Fprintf(w, "due:         %s\n", task.DueDate.Local().Format("2006-01-02 15:04"))
	}
	if task.RecurrencePattern != "" && task.RecurrencePattern != api.RecurrenceNone {
		fmt.Fprintf(w, "repeats:     %s\n", task.RecurrencePattern)
	}
	if task.ReminderLeadTime != nil {
		fmt.Fprintf(w, "reminder:    %d min before\n", *task.ReminderLeadTime)
	}
}

// FormatNotification formats one notification line.
// Unread notifications are marked with "*".
func FormatNotification(w io.Writer, n api.Notification) {
	mark := " "
	if n.DeliveryStatus != "read" {
		mark = "*"
	}
	fmt.Fprintf(w, "%s %s  %s  %s\n", mark, n.SentAt.Local().Format("2006-01-02 15:04"), n.NotificationID, n.Message)
}

// FormatChatMessage formats one stored chat message with a role prefix.
func FormatChatMessage(w io.Writer, m api.ChatMessage) {
	role := "you"
	if m.Role == "assistant" {
		role = "assistant"
	}
	fmt.Fprintf(w, "[%s] %s\n", role, m.Content)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
