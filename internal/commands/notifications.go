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
	Register(&NotificationsCmd{})
	Register(&ReadCmd{})
}

// NotificationsCmd implements the notifications command.
type NotificationsCmd struct {
	unread bool
}

// SetUnreadOnly restricts the listing to unread notifications (for testing).
func (c *NotificationsCmd) SetUnreadOnly(unread bool) { c.unread = unread }

func (c *NotificationsCmd) Name() string      { return "notifications" }
func (c *NotificationsCmd) Aliases() []string { return []string{"notifs"} }
func (c *NotificationsCmd) Synopsis() string  { return "List notifications" }
func (c *NotificationsCmd) Usage() string     { return "todocli notifications [--unread]" }
func (c *NotificationsCmd) NeedsAuth() bool   { return true }

func (c *NotificationsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.unread, "unread", false, "")
}

func (c *NotificationsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	resp, err := svc.ListNotifications(ctx, c.unread)
	if err != nil {
		return reportError(errOut, err)
	}

	if len(resp.Notifications) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no notifications")
		}
		return exitcode.Success
	}

	for _, n := range resp.Notifications {
		output.FormatNotification(out, n)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "%d unread\n", resp.UnreadCount)
	}
	return exitcode.Success
}

// ReadCmd implements the read command, marking one notification as read.
type ReadCmd struct{}

func (c *ReadCmd) Name() string      { return "read" }
func (c *ReadCmd) Aliases() []string { return nil }
func (c *ReadCmd) Synopsis() string  { return "Mark a notification as read" }
func (c *ReadCmd) Usage() string     { return "todocli read <notification-id>" }
func (c *ReadCmd) NeedsAuth() bool   { return true }

func (c *ReadCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ReadCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: usage:", c.Usage())
		return exitcode.UserError
	}

	if err := svc.MarkNotificationRead(ctx, args[0]); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
