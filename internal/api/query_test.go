package api

import (
	"testing"
)

func TestSearchQuery_CarriesOnlyText(t *testing.T) {
	q := SearchQuery("buy milk")

	if !q.IsSearch() {
		t.Fatal("expected search mode")
	}
	if q.Path() != "/api/tasks/search" {
		t.Errorf("unexpected path %q", q.Path())
	}

	v := q.Values()
	if got := v.Get("q"); got != "buy milk" {
		t.Errorf("expected q=buy milk, got %q", got)
	}
	if len(v) != 1 {
		t.Errorf("search request must carry only q, got %v", v)
	}
}

func TestFilterQuery_NeverCarriesText(t *testing.T) {
	q := FilterQuery(Filter{
		Status:      StatusPending,
		Priority:    PriorityHigh,
		Tags:        "work,urgent",
		DueDateFrom: "2026-01-01",
		DueDateTo:   "2026-12-31",
		Sort:        SortDueDate,
		Order:       OrderAsc,
	})

	if q.IsSearch() {
		t.Fatal("expected filter mode")
	}
	if q.Path() != "/api/tasks" {
		t.Errorf("unexpected path %q", q.Path())
	}

	v := q.Values()
	if v.Get("q") != "" {
		t.Error("filter request must not carry q")
	}
	for key, want := range map[string]string{
		"status":        "pending",
		"priority":      "High",
		"tags":          "work,urgent",
		"due_date_from": "2026-01-01",
		"due_date_to":   "2026-12-31",
		"sort":          "due_date",
		"order":         "asc",
	} {
		if got := v.Get(key); got != want {
			t.Errorf("%s: expected %q, got %q", key, want, got)
		}
	}
}

func TestFilterQuery_OmitsZeroFields(t *testing.T) {
	v := FilterQuery(DefaultFilter()).Values()

	if len(v) != 2 {
		t.Errorf("expected only sort and order, got %v", v)
	}
	if v.Get("sort") != SortCreatedAt || v.Get("order") != OrderDesc {
		t.Errorf("unexpected defaults %v", v)
	}
}

func TestQuery_FilterZeroInSearchMode(t *testing.T) {
	q := SearchQuery("milk")
	if q.Filter().Active() {
		t.Error("search-mode query must expose no active filter")
	}
}

func TestFilter_Active(t *testing.T) {
	if DefaultFilter().Active() {
		t.Error("sort and order alone are not an active filter")
	}
	f := DefaultFilter()
	f.Status = StatusCompleted
	if !f.Active() {
		t.Error("status narrows the list")
	}
}
