package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todocli help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todocli                                            Open the interactive dashboard
  todocli ui [common flags]                          Open the interactive dashboard
  todocli chat [common flags]                        Open the assistant chat
  todocli list [common flags] [--search <text>] [--status <s>] [--priority <p>]
               [--tags <t,..>] [--due-from <date>] [--due-to <date>]
               [--sort priority|due_date|created_at] [--order asc|desc]
  todocli add [common flags] [--desc <text>] [--priority <p>] [--tags <t,..>]
               [--due <date>] [--recur <pattern>] [--reminder <minutes>] <title...>
  todocli show [common flags] <id>
  todocli edit [common flags] [--title <text>] [--desc <text>] [--status <s>]
               [--priority <p>] [--tags <t,..>] [--due <date>] [--recur <pattern>]
               [--reminder <minutes>] <id>
  todocli done [common flags] <id>
  todocli rm [common flags] [--force] <id>
  todocli notifications [common flags] [--unread]
  todocli read [common flags] <notification-id>
  todocli history [common flags] [--limit <n>]
  todocli clear-history [common flags] [--force]
  todocli register [common flags] [--email <e>] [--password <p>]
  todocli login [common flags] [--email <e>] [--password <p>]
  todocli logout [common flags]
  todocli whoami [common flags]
  todocli help
  todocli version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
