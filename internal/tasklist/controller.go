// Package tasklist owns the in-memory task list and the active query.
package tasklist

import (
	"context"
	"sync"

	"todocli/internal/api"
	"todocli/internal/service"
)

// Controller holds the loaded tasks for the signed-in user and the active
// query: free-text search XOR structured filter+sort. Mutations are sent to
// the backend first and the list is reconciled from the authoritative
// response; there is no local-only state.
type Controller struct {
	svc service.Service

	mu      sync.Mutex
	tasks   []api.Task
	search  string
	filter  api.Filter
	loading bool
	loadErr error
	// gen tags each reload so a superseded response is discarded instead of
	// overwriting a newer one.
	gen uint64
}

// New creates a controller with the default filter (newest first).
func New(svc service.Service) *Controller {
	return &Controller{svc: svc, filter: api.DefaultFilter()}
}

// Tasks returns a copy of the loaded list.
func (c *Controller) Tasks() []api.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Query returns the query for the active mode: search when the free-text
// string is non-empty, filter otherwise.
func (c *Controller) Query() api.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queryLocked()
}

func (c *Controller) queryLocked() api.Query {
	if c.search != "" {
		return api.SearchQuery(c.search)
	}
	return api.FilterQuery(c.filter)
}

// SetSearch activates search mode. While active the structured filter has no
// effect on requests. An empty string falls back to filter mode.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = text
}

// ClearSearch leaves search mode; the structured filter applies again.
func (c *Controller) ClearSearch() {
	c.SetSearch("")
}

// SetFilter replaces the structured filter and leaves search mode, matching
// the dashboard behavior of clearing the search when filters are applied.
func (c *Controller) SetFilter(f api.Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = ""
	c.filter = f
}

// Filter returns the structured filter (it is retained, unused, while a
// search is active).
func (c *Controller) Filter() api.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Searching reports whether search mode is active, with its text.
func (c *Controller) Searching() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search, c.search != ""
}

// Loading reports whether a reload is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last load failure, cleared on the next reload.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Reload fetches the list for the active query. A response that arrives
// after a newer reload started is dropped. Retry is the same call again.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	q := c.queryLocked()
	c.loading = true
	c.loadErr = nil
	c.mu.Unlock()

	resp, err := c.svc.FetchTasks(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// Superseded by a newer reload.
		return nil
	}
	c.loading = false
	if err != nil {
		c.loadErr = err
		return err
	}
	c.tasks = resp.Tasks
	return nil
}

// Create sends the task to the backend and prepends the returned record.
func (c *Controller) Create(ctx context.Context, data api.TaskCreate) (api.Task, error) {
	task, err := c.svc.CreateTask(ctx, data)
	if err != nil {
		return api.Task{}, err
	}
	c.mu.Lock()
	c.tasks = append([]api.Task{task}, c.tasks...)
	c.mu.Unlock()
	return task, nil
}

// Update replaces the task on the backend and swaps in the returned record.
func (c *Controller) Update(ctx context.Context, id string, data api.TaskUpdate) (api.Task, error) {
	task, err := c.svc.UpdateTask(ctx, id, data)
	if err != nil {
		return api.Task{}, err
	}
	c.replace(task)
	return task, nil
}

// Toggle flips completion on the backend and swaps in the returned record.
func (c *Controller) Toggle(ctx context.Context, id string) (api.Task, error) {
	task, err := c.svc.ToggleComplete(ctx, id)
	if err != nil {
		return api.Task{}, err
	}
	c.replace(task)
	return task, nil
}

// Delete removes the task on the backend, then from the list. Confirmation
// is the caller's responsibility; the request must not be sent without it.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.svc.DeleteTask(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.tasks {
		if t.ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			break
		}
	}
	return nil
}

// Counts returns how many loaded tasks are pending, in progress, completed.
func (c *Controller) Counts() (pending, inProgress, completed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		switch t.Status {
		case api.StatusPending:
			pending++
		case api.StatusInProgress:
			inProgress++
		case api.StatusCompleted:
			completed++
		}
	}
	return
}

func (c *Controller) replace(task api.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.tasks {
		if t.ID == task.ID {
			c.tasks[i] = task
			return
		}
	}
}
