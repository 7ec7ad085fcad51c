// Package main is the entry point for the todocli CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"todocli/internal/api"
	"todocli/internal/cli"
	"todocli/internal/commands"
	"todocli/internal/config"
	"todocli/internal/service"
	"todocli/internal/session"
)

func main() {
	// A local .env can provide TODO_API_URL; absence is fine.
	_ = godotenv.Load()

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		tokens := session.NewTokenStore(cfg.SessionPath())
		return api.New(cfg.APIURL, tokens)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(code)
}
