package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/form"
	"todocli/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	fields form.Fields
}

// SetFields sets the form fields (for testing).
func (c *AddCmd) SetFields(f form.Fields) { c.fields = f }

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"new"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "todocli add <title> [--desc <text>] [--priority High|Medium|Low] [--tags <t,..>] [--due <date>] [--recur <pattern>] [--reminder <minutes>]"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	c.fields = form.Defaults()
	fs.StringVar(&c.fields.Description, "desc", "", "")
	fs.StringVar(&c.fields.Priority, "priority", c.fields.Priority, "")
	fs.StringVar(&c.fields.Tags, "tags", "", "")
	fs.StringVar(&c.fields.DueDate, "due", "", "")
	fs.StringVar(&c.fields.Recurrence, "recur", c.fields.Recurrence, "")
	fs.StringVar(&c.fields.Reminder, "reminder", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if c.fields.Title == "" {
		c.fields.Title = strings.Join(args, " ")
	}

	payload, err := c.fields.CreatePayload()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := svc.CreateTask(ctx, payload)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created %s: %s\n", task.ID, task.Title)
	}
	return exitcode.Success
}
