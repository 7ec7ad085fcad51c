package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todocli/internal/api"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestFilterPanel_CycleAndApply(t *testing.T) {
	p := newFilterPanel()

	// Cursor starts on status; cycle to "pending".
	var applied, cancelled bool
	p, applied, cancelled, _ = p.Update(keyPress("l"))
	if applied || cancelled {
		t.Fatal("cycling must not apply or cancel")
	}

	// Down to priority, cycle twice to "Medium".
	p, _, _, _ = p.Update(keyPress("j"))
	p, _, _, _ = p.Update(keyPress("l"))
	p, _, _, _ = p.Update(keyPress("l"))

	p, applied, _, _ = p.Update(keyPress("enter"))
	if !applied {
		t.Fatal("enter must apply")
	}

	f := p.value()
	if f.Status != api.StatusPending {
		t.Errorf("expected pending, got %q", f.Status)
	}
	if f.Priority != api.PriorityMedium {
		t.Errorf("expected Medium, got %q", f.Priority)
	}
	if f.Sort != api.SortCreatedAt || f.Order != api.OrderDesc {
		t.Errorf("sort defaults must hold, got %s %s", f.Sort, f.Order)
	}
}

func TestFilterPanel_CycleWrapsBackwards(t *testing.T) {
	p := newFilterPanel()
	p, _, _, _ = p.Update(keyPress("h"))
	if got := p.value().Status; got != api.StatusCompleted {
		t.Errorf("expected wrap to completed, got %q", got)
	}
}

func TestFilterPanel_Cancel(t *testing.T) {
	p := newFilterPanel()
	_, applied, cancelled, _ := p.Update(keyPress("esc"))
	if applied || !cancelled {
		t.Errorf("esc must cancel, got applied=%v cancelled=%v", applied, cancelled)
	}
}

func TestFilterPanel_TextRowTakesRunes(t *testing.T) {
	p := newFilterPanel()
	for i := 0; i < rowTags; i++ {
		p, _, _, _ = p.Update(keyPress("tab"))
	}
	if !p.onTextRow() {
		t.Fatal("cursor should be on the tags row")
	}

	// On a text row, j/k/h/l are input, not navigation.
	for _, r := range "hl" {
		p, _, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if got := p.value().Tags; got != "hl" {
		t.Errorf("expected tags input %q, got %q", "hl", got)
	}
}

func TestFilterPanel_LoadRoundTrip(t *testing.T) {
	p := newFilterPanel()
	in := api.Filter{
		Status:      api.StatusInProgress,
		Priority:    api.PriorityHigh,
		Sort:        api.SortDueDate,
		Order:       api.OrderAsc,
		Tags:        "work",
		DueDateFrom: "2026-03-01",
	}
	p.load(in)
	if got := p.value(); got != in {
		t.Errorf("expected %+v, got %+v", in, got)
	}
}

func TestTaskItem_Title(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	i := taskItem{Task: api.Task{
		Title:    "Buy milk",
		Status:   api.StatusPending,
		Priority: api.PriorityHigh,
		DueDate:  &past,
		Tags:     []string{"errands"},
	}}

	title := i.Title()
	if !strings.Contains(title, "[ ] Buy milk") {
		t.Errorf("missing glyph and title: %q", title)
	}
	if !strings.Contains(title, "! due ") {
		t.Errorf("overdue task must carry the marker: %q", title)
	}
	if !strings.Contains(title, "#errands") {
		t.Errorf("missing tags: %q", title)
	}
	if i.FilterValue() != "Buy milk" {
		t.Errorf("unexpected filter value %q", i.FilterValue())
	}

	i.Task.Status = api.StatusCompleted
	if strings.Contains(i.Title(), "! due ") {
		t.Error("completed tasks are never overdue")
	}
}
