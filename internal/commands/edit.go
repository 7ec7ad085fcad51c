package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/api"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/form"
	"todocli/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only fields whose flags were
// explicitly set are sent; everything else stays untouched on the server.
type EditCmd struct {
	fs     *flag.FlagSet
	fields form.Fields
	status string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Update fields of a task" }
func (c *EditCmd) Usage() string {
	return "todocli edit <id> [--title <text>] [--desc <text>] [--status <s>] [--priority <p>] [--tags <t,..>] [--due <date>] [--recur <pattern>] [--reminder <minutes>]"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.fs = fs
	fs.StringVar(&c.fields.Title, "title", "", "")
	fs.StringVar(&c.fields.Description, "desc", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.fields.Priority, "priority", "", "")
	fs.StringVar(&c.fields.Tags, "tags", "", "")
	fs.StringVar(&c.fields.DueDate, "due", "", "")
	fs.StringVar(&c.fields.Recurrence, "recur", "", "")
	fs.StringVar(&c.fields.Reminder, "reminder", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: usage:", c.Usage())
		return exitcode.UserError
	}
	id := args[0]

	patch, set, errCode := c.patch(errOut)
	if errCode != exitcode.Success {
		return errCode
	}
	if !set {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	task, err := svc.PatchTask(ctx, id, patch)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "updated %s: %s\n", task.ID, task.Title)
	}
	return exitcode.Success
}

// patch builds the partial update from the flags the user actually passed.
func (c *EditCmd) patch(errOut io.Writer) (api.TaskUpdate, bool, int) {
	var upd api.TaskUpdate
	var set bool
	var invalid int

	if c.fs == nil {
		return upd, false, exitcode.Success
	}

	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			if err := (form.Fields{Title: c.fields.Title}).Validate(); err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				invalid = exitcode.UserError
				return
			}
			title := c.fields.Title
			upd.Title = &title
		case "desc":
			desc := c.fields.Description
			upd.Description = &desc
		case "status":
			if !validStatus(c.status) {
				fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status)
				invalid = exitcode.UserError
				return
			}
			status := api.Status(c.status)
			upd.Status = &status
		case "priority":
			if !validPriority(c.fields.Priority) {
				fmt.Fprintf(errOut, "error: invalid priority: %s\n", c.fields.Priority)
				invalid = exitcode.UserError
				return
			}
			upd.Priority = api.Priority(c.fields.Priority)
		case "tags":
			tags := form.ParseTags(c.fields.Tags)
			if len(tags) > form.MaxTags {
				fmt.Fprintf(errOut, "error: %v\n", form.ErrTooManyTags)
				invalid = exitcode.UserError
				return
			}
			upd.Tags = tags
		case "due", "reminder":
			fields := form.Fields{Title: "x", DueDate: c.fields.DueDate, Reminder: c.fields.Reminder}
			payload, err := fields.CreatePayload()
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				invalid = exitcode.UserError
				return
			}
			if f.Name == "due" {
				upd.DueDate = payload.DueDate
			} else {
				upd.ReminderLeadTime = payload.ReminderLeadTime
			}
		case "recur":
			upd.RecurrencePattern = api.Recurrence(c.fields.Recurrence)
		default:
			return
		}
		set = true
	})

	if invalid != 0 {
		return api.TaskUpdate{}, false, invalid
	}
	return upd, set, exitcode.Success
}
