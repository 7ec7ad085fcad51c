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
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the identity behind the stored session.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return []string{"me"} }
func (c *WhoamiCmd) Synopsis() string  { return "Show the signed-in user" }
func (c *WhoamiCmd) Usage() string     { return "todocli whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	user, err := svc.CurrentUser(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	fmt.Fprintln(out, user.Email)
	return exitcode.Success
}
