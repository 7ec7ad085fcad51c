package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"

	"todocli/internal/api"
	"todocli/internal/chatwidget"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/service"
	"todocli/internal/session"
	"todocli/internal/tui"
)

func init() {
	Register(&UICmd{})
	Register(&ChatCmd{})
}

// UICmd opens the interactive dashboard. Auth is handled in-app: without a
// valid session the login screen is shown first.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"dashboard"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive dashboard" }
func (c *UICmd) Usage() string     { return "todocli ui" }
func (c *UICmd) NeedsAuth() bool   { return false }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	return runUI(ctx, cfg, svc, errOut, false)
}

// ChatCmd opens the interactive UI straight on the assistant chat screen.
type ChatCmd struct{}

func (c *ChatCmd) Name() string      { return "chat" }
func (c *ChatCmd) Aliases() []string { return []string{"assistant"} }
func (c *ChatCmd) Synopsis() string  { return "Open the assistant chat" }
func (c *ChatCmd) Usage() string     { return "todocli chat" }
func (c *ChatCmd) NeedsAuth() bool   { return false }

func (c *ChatCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ChatCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	return runUI(ctx, cfg, svc, errOut, true)
}

func runUI(ctx context.Context, cfg *config.Config, svc service.Service, errOut io.Writer, startInChat bool) int {
	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tokens := session.NewTokenStore(cfg.SessionPath())
	sess := session.New(tokens, svc)
	sess.Load(ctx)

	// The 401 hook is only available on the real client; a substitute
	// service simply skips the automatic return-to-login.
	client, _ := svc.(*api.Client)

	loader := chatwidget.NewLoader(chatEndpoint(cfg.APIURL), func(r *http.Request) {
		if token := tokens.AccessToken(); token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	})

	err := tui.Run(ctx, tui.Options{
		Config:      cfg,
		Service:     svc,
		Session:     sess,
		Client:      client,
		Loader:      loader,
		StartInChat: startInChat,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

func chatEndpoint(baseURL string) string {
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "/") + "/api/chat"
}
