package api

import "net/url"

// Sort keys accepted by the task list endpoint.
const (
	SortPriority  = "priority"
	SortDueDate   = "due_date"
	SortCreatedAt = "created_at"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Filter holds the structured parameters of a filter-mode list request.
// Zero-value fields are omitted from the request.
type Filter struct {
	Status      Status
	Priority    Priority
	Tags        string // comma-separated
	DueDateFrom string // YYYY-MM-DD
	DueDateTo   string // YYYY-MM-DD
	Sort        string
	Order       string
}

// DefaultFilter is the filter applied when the user has not chosen anything:
// newest first.
func DefaultFilter() Filter {
	return Filter{Sort: SortCreatedAt, Order: OrderDesc}
}

// Active reports whether any narrowing field is set (sort/order excluded).
func (f Filter) Active() bool {
	return f.Status != "" || f.Priority != "" || f.Tags != "" ||
		f.DueDateFrom != "" || f.DueDateTo != ""
}

// Query selects how tasks are fetched. Exactly one of the two modes is
// active: free-text search, or structured filter+sort. The two never mix in
// a single request.
type Query struct {
	search string
	filter Filter
}

// SearchQuery returns a search-mode query for the given text.
func SearchQuery(text string) Query {
	return Query{search: text}
}

// FilterQuery returns a filter-mode query.
func FilterQuery(f Filter) Query {
	return Query{filter: f}
}

// IsSearch reports whether the query is in search mode.
func (q Query) IsSearch() bool { return q.search != "" }

// Search returns the free-text search string ("" in filter mode).
func (q Query) Search() string { return q.search }

// Filter returns the structured filter (zero value in search mode).
func (q Query) Filter() Filter {
	if q.IsSearch() {
		return Filter{}
	}
	return q.filter
}

// Path returns the endpoint path for the active mode.
func (q Query) Path() string {
	if q.IsSearch() {
		return "/api/tasks/search"
	}
	return "/api/tasks"
}

// Values encodes the query parameters for the active mode. Search mode emits
// only "q"; filter mode never emits "q".
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.IsSearch() {
		v.Set("q", q.search)
		return v
	}
	f := q.filter
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		v.Set("priority", string(f.Priority))
	}
	if f.Tags != "" {
		v.Set("tags", f.Tags)
	}
	if f.DueDateFrom != "" {
		v.Set("due_date_from", f.DueDateFrom)
	}
	if f.DueDateTo != "" {
		v.Set("due_date_to", f.DueDateTo)
	}
	if f.Sort != "" {
		v.Set("sort", f.Sort)
	}
	if f.Order != "" {
		v.Set("order", f.Order)
	}
	return v
}
