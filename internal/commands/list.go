package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/api"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/output"
	"todocli/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command, the CLI face of the dashboard query.
// Free-text search and structured filtering are mutually exclusive request
// modes: --search wins and the filter flags are ignored while it is set.
type ListCmd struct {
	search   string
	status   string
	priority string
	tags     string
	dueFrom  string
	dueTo    string
	sort     string
	order    string
}

// SetSearch sets the search text (for testing).
func (c *ListCmd) SetSearch(q string) { c.search = q }

// SetFilter sets the structured filter flags (for testing).
func (c *ListCmd) SetFilter(status, priority, tags, sort, order string) {
	c.status = status
	c.priority = priority
	c.tags = tags
	c.sort = sort
	c.order = order
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "todocli list [--search <text>] [--status <s>] [--priority <p>] [--tags <t,..>] [--due-from <date>] [--due-to <date>] [--sort <key>] [--order asc|desc]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.tags, "tags", "", "")
	fs.StringVar(&c.dueFrom, "due-from", "", "")
	fs.StringVar(&c.dueTo, "due-to", "", "")
	fs.StringVar(&c.sort, "sort", api.SortCreatedAt, "")
	fs.StringVar(&c.order, "order", api.OrderDesc, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	q, errCode := c.query(errOut)
	if errCode != exitcode.Success {
		return errCode
	}

	resp, err := svc.FetchTasks(ctx, q)
	if err != nil {
		return reportError(errOut, err)
	}

	if len(resp.Tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, task := range resp.Tasks {
		output.FormatTask(out, i+1, task)
	}
	return exitcode.Success
}

// query validates the flags and builds the request for the active mode.
func (c *ListCmd) query(errOut io.Writer) (api.Query, int) {
	if c.search != "" {
		return api.SearchQuery(c.search), exitcode.Success
	}

	if c.sort == "" {
		c.sort = api.SortCreatedAt
	}
	if c.order == "" {
		c.order = api.OrderDesc
	}

	if c.status != "" && !validStatus(c.status) {
		fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status)
		return api.Query{}, exitcode.UserError
	}
	if c.priority != "" && !validPriority(c.priority) {
		fmt.Fprintf(errOut, "error: invalid priority: %s\n", c.priority)
		return api.Query{}, exitcode.UserError
	}
	switch c.sort {
	case api.SortPriority, api.SortDueDate, api.SortCreatedAt:
	default:
		fmt.Fprintf(errOut, "error: invalid sort key: %s\n", c.sort)
		return api.Query{}, exitcode.UserError
	}
	switch c.order {
	case api.OrderAsc, api.OrderDesc:
	default:
		fmt.Fprintf(errOut, "error: invalid order: %s\n", c.order)
		return api.Query{}, exitcode.UserError
	}

	return api.FilterQuery(api.Filter{
		Status:      api.Status(c.status),
		Priority:    api.Priority(c.priority),
		Tags:        c.tags,
		DueDateFrom: c.dueFrom,
		DueDateTo:   c.dueTo,
		Sort:        c.sort,
		Order:       c.order,
	}), exitcode.Success
}

func validStatus(s string) bool {
	switch api.Status(s) {
	case api.StatusPending, api.StatusInProgress, api.StatusCompleted:
		return true
	}
	return false
}

func validPriority(p string) bool {
	switch api.Priority(p) {
	case api.PriorityHigh, api.PriorityMedium, api.PriorityLow:
		return true
	}
	return false
}
