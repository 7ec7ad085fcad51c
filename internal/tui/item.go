package tui

import (
	"fmt"
	"strings"
	"time"

	"todocli/internal/api"
	"todocli/internal/output"
)

// taskItem wraps api.Task to satisfy the list.DefaultItem interface.
type taskItem struct {
	Task api.Task
}

func (i taskItem) Title() string {
	line := fmt.Sprintf("%s %s %s", output.StatusGlyph(i.Task.Status), i.Task.Title, priorityBadge(string(i.Task.Priority)))
	if i.Task.DueDate != nil {
		mark := ""
		if i.Task.Status != api.StatusCompleted && i.Task.DueDate.Before(time.Now()) {
			mark = "! "
		}
		line += statusStyle.Render("  "+mark+"due "+i.Task.DueDate.Local().Format("2006-01-02 15:04"))
	}
	if len(i.Task.Tags) > 0 {
		line += "  " + badgeStyle.Render("#"+strings.Join(i.Task.Tags, " #"))
	}
	return line
}

func (i taskItem) Description() string { return "" }

func (i taskItem) FilterValue() string { return i.Task.Title }
