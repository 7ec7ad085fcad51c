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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. The backend flips the status: a
// pending or in-progress task becomes completed, a completed one goes back
// to pending.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "todocli done <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: usage:", c.Usage())
		return exitcode.UserError
	}

	task, err := svc.ToggleComplete(ctx, args[0])
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		verb := "reopened"
		if task.Status == api.StatusCompleted {
			verb = "completed"
		}
		fmt.Fprintf(out, "%s %s %s\n", verb, output.StatusGlyph(task.Status), task.Title)
	}
	return exitcode.Success
}
