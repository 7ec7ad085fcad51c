// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todocli/internal/commands"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/service"
)

// ServiceFactory creates a Service from config. Used to inject the backend
// during dispatch; tests swap in a FakeService here.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	// No args -> open the interactive dashboard
	if len(args) == 0 {
		return d.dispatch(ctx, "ui", nil, in, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command in front of them
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], in, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, in, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // errors are reported below

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return reportFlagError(errOut, err)
	}

	// A leading dash in the positionals means a flag came after them
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	// The service is built for every command: login and register need the
	// backend before any session exists.
	var svc service.Service
	if d.factory != nil {
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	// Auth-requiring commands fail fast on a missing session instead of
	// round-tripping a request that will 401.
	if cmd.NeedsAuth() && !cfg.HasSession() {
		fmt.Fprintf(errOut, "error: not logged in (run: todocli login)\n")
		return exitcode.AuthError
	}

	return cmd.Run(ctx, cfg, svc, positionalArgs, in, out, errOut)
}

func reportFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		if len(parts) > 0 {
			flagPart := strings.TrimSpace(parts[0])
			flagPart = strings.TrimPrefix(flagPart, "flag ")
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagPart)
			return exitcode.UserError
		}
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}
