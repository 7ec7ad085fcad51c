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
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	email    string
	password string
}

// SetCredentials sets the credentials (for testing).
func (c *RegisterCmd) SetCredentials(email, password string) {
	c.email = email
	c.password = password
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create an account and sign in" }
func (c *RegisterCmd) Usage() string {
	return "todocli register [--email <email>] [--password <password>]"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	email, password, err := readCredentials(in, errOut, c.email, c.password)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	sess := session.New(session.NewTokenStore(cfg.SessionPath()), svc)
	user, err := sess.Register(ctx, email, password)
	if err != nil {
		fmt.Fprintf(errOut, "error: registration failed: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "registered as %s\n", user.Email)
	}
	return exitcode.Success
}
