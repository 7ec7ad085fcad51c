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
	Register(&HistoryCmd{})
	Register(&ClearHistoryCmd{})
}

// HistoryCmd implements the history command, printing the stored assistant
// conversation.
type HistoryCmd struct {
	limit int
}

// SetLimit caps the number of messages fetched (for testing).
func (c *HistoryCmd) SetLimit(n int) { c.limit = n }

func (c *HistoryCmd) Name() string      { return "history" }
func (c *HistoryCmd) Aliases() []string { return []string{"chat-history"} }
func (c *HistoryCmd) Synopsis() string  { return "Show the assistant conversation" }
func (c *HistoryCmd) Usage() string     { return "todocli history [--limit <n>]" }
func (c *HistoryCmd) NeedsAuth() bool   { return true }

func (c *HistoryCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.limit, "limit", 0, "")
}

func (c *HistoryCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	resp, err := svc.ChatHistory(ctx, c.limit)
	if err != nil {
		return reportError(errOut, err)
	}

	if len(resp.Messages) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no messages")
		}
		return exitcode.Success
	}

	for _, m := range resp.Messages {
		output.FormatChatMessage(out, m)
	}
	return exitcode.Success
}

// ClearHistoryCmd implements the clear-history command.
type ClearHistoryCmd struct {
	force bool
}

// SetForce skips the confirmation prompt (for testing).
func (c *ClearHistoryCmd) SetForce(force bool) { c.force = force }

func (c *ClearHistoryCmd) Name() string      { return "clear-history" }
func (c *ClearHistoryCmd) Aliases() []string { return []string{"chat-clear"} }
func (c *ClearHistoryCmd) Synopsis() string  { return "Delete the assistant conversation" }
func (c *ClearHistoryCmd) Usage() string     { return "todocli clear-history [--force]" }
func (c *ClearHistoryCmd) NeedsAuth() bool   { return true }

func (c *ClearHistoryCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *ClearHistoryCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if !c.force && !confirm(in, out, "clear the conversation?") {
		fmt.Fprintln(out, "aborted")
		return exitcode.Success
	}

	if err := svc.ClearChatHistory(ctx); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
