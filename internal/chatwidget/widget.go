// Package chatwidget embeds the hosted AI chat widget: a loader state
// machine around the remote bootstrap, and the capability interface the chat
// panel depends on.
package chatwidget

import (
	"context"
	"net/http"
)

// Event is emitted by the widget while a reply streams in.
type Event struct {
	Type  string // "text-delta", "finish", ...
	Delta string
}

// Widget is the capability the chat panel uses. The concrete widget is an
// external collaborator; tests swap in a stub.
type Widget interface {
	// Send submits a user message and returns the assembled assistant reply.
	Send(ctx context.Context, text string) (string, error)

	// OnEvent registers a handler for streaming events.
	OnEvent(fn func(Event))
}

// SignFunc authenticates an outbound widget request. It is called per
// request so a replaced token is honored on the next call.
type SignFunc func(*http.Request)

// QuickPrompt is a canned natural-language command wired to a sidebar
// quick-action button.
type QuickPrompt struct {
	Label  string
	Prompt string
}

// QuickPrompts returns the panel's quick actions.
func QuickPrompts() []QuickPrompt {
	return []QuickPrompt{
		{Label: "Add Task", Prompt: "Add a task to buy groceries"},
		{Label: "Show Tasks", Prompt: "Show me all my tasks"},
		{Label: "Complete Task", Prompt: "Mark the groceries task as complete"},
	}
}
