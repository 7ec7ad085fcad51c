// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todocli/internal/config"
	"todocli/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a stored session.
	// Commands like help, version, login, register return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, backend origin).
	// svc is the backend client (nil only when the factory is absent).
	// in is the interactive input stream, used for confirmation prompts.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int
}
