package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/service"
	"todocli/internal/session"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Sign out and remove the stored session" }
func (c *LogoutCmd) Usage() string     { return "todocli logout [common flags]" }
func (c *LogoutCmd) NeedsAuth() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	tokens := session.NewTokenStore(cfg.SessionPath())
	if _, ok := tokens.Credentials(); !ok {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	// Local state is cleared even when the server call fails.
	sess := session.New(tokens, svc)
	if err := sess.Logout(ctx); err != nil {
		fmt.Fprintf(errOut, "warning: server logout failed: %v\n", err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
