package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/output"
	"todocli/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command, printing the full task record.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return []string{"get"} }
func (c *ShowCmd) Synopsis() string  { return "Show one task in full" }
func (c *ShowCmd) Usage() string     { return "todocli show <id>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: usage:", c.Usage())
		return exitcode.UserError
	}

	task, err := svc.GetTask(ctx, args[0])
	if err != nil {
		return reportError(errOut, err)
	}

	output.FormatTaskDetail(out, task)
	return exitcode.Success
}
