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
	"todocli/internal/session"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
}

// SetCredentials sets the credentials (for testing).
func (c *LoginCmd) SetCredentials(email, password string) {
	c.email = email
	c.password = password
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in to the backend" }
func (c *LoginCmd) Usage() string     { return "todocli login [--email <email>] [--password <password>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	tokens := session.NewTokenStore(cfg.SessionPath())
	sess := session.New(tokens, svc)

	// A valid persisted session means nothing to do.
	if _, ok := tokens.Credentials(); ok {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	email, password, err := readCredentials(in, errOut, c.email, c.password)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	user, err := sess.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(errOut, "error: login failed: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", user.Email)
	}
	return exitcode.Success
}

// readCredentials fills in missing email/password by prompting on the
// interactive input stream.
func readCredentials(in io.Reader, errOut io.Writer, email, password string) (string, string, error) {
	reader := bufio.NewReader(in)
	if email == "" {
		fmt.Fprint(errOut, "email: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", "", fmt.Errorf("email required")
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return "", "", fmt.Errorf("email required")
	}
	if password == "" {
		fmt.Fprint(errOut, "password: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", "", fmt.Errorf("password required")
		}
		password = strings.TrimSpace(line)
	}
	if password == "" {
		return "", "", fmt.Errorf("password required")
	}
	return email, password, nil
}
