package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/service"
)

func init() {
	Register(&RemoveCmd{})
}

// RemoveCmd implements the rm command. Deletion is confirmed interactively
// unless --force is given; without confirmation no request is sent.
type RemoveCmd struct {
	force bool
}

// SetForce skips the confirmation prompt (for testing).
func (c *RemoveCmd) SetForce(force bool) { c.force = force }

func (c *RemoveCmd) Name() string      { return "rm" }
func (c *RemoveCmd) Aliases() []string { return []string{"delete"} }
func (c *RemoveCmd) Synopsis() string  { return "Delete a task" }
func (c *RemoveCmd) Usage() string     { return "todocli rm [--force] <id>" }
func (c *RemoveCmd) NeedsAuth() bool   { return true }

func (c *RemoveCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *RemoveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: usage:", c.Usage())
		return exitcode.UserError
	}
	id := args[0]

	if !c.force && !confirm(in, out, fmt.Sprintf("delete task %s?", id)) {
		fmt.Fprintln(out, "aborted")
		return exitcode.Success
	}

	if err := svc.DeleteTask(ctx, id); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "deleted %s\n", id)
	}
	return exitcode.Success
}

// confirm prompts "<q> [y/N] " and reads one line. Anything but y/yes is no.
func confirm(in io.Reader, out io.Writer, q string) bool {
	fmt.Fprintf(out, "%s [y/N] ", q)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
