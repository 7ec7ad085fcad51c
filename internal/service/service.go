// Package service defines the backend-agnostic interface for the Todo API.
package service

import (
	"context"

	"todocli/internal/api"
)

// Service is the surface the commands and the TUI depend on. All backend
// calls go through this interface; api.Client is the real implementation and
// testutil.FakeService the in-memory one.
type Service interface {
	// Register creates an account and returns the token plus identity.
	Register(ctx context.Context, email, password string) (api.AuthResponse, error)

	// Login authenticates and returns the token plus identity.
	Login(ctx context.Context, email, password string) (api.AuthResponse, error)

	// Logout invalidates the server-side session.
	Logout(ctx context.Context) error

	// CurrentUser fetches the identity behind the stored token.
	CurrentUser(ctx context.Context) (api.User, error)

	// FetchTasks issues the list or search call for the query's mode.
	// A search query carries only the text; a filter query never carries it.
	FetchTasks(ctx context.Context, q api.Query) (api.TaskList, error)

	// GetTask fetches a single task by id.
	GetTask(ctx context.Context, id string) (api.Task, error)

	// CreateTask creates a task and returns the authoritative record.
	CreateTask(ctx context.Context, data api.TaskCreate) (api.Task, error)

	// UpdateTask replaces a task's fields and returns the updated record.
	UpdateTask(ctx context.Context, id string, data api.TaskUpdate) (api.Task, error)

	// PatchTask partially updates a task and returns the updated record.
	PatchTask(ctx context.Context, id string, data api.TaskUpdate) (api.Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error

	// ToggleComplete flips a task between pending and completed and returns
	// the updated record.
	ToggleComplete(ctx context.Context, id string) (api.Task, error)

	// ListNotifications fetches notifications, optionally unread only.
	ListNotifications(ctx context.Context, unreadOnly bool) (api.NotificationList, error)

	// MarkNotificationRead marks one notification as read.
	MarkNotificationRead(ctx context.Context, id string) error

	// ChatHistory fetches the stored conversation. limit <= 0 means all.
	ChatHistory(ctx context.Context, limit int) (api.ChatHistory, error)

	// ClearChatHistory deletes the stored conversation.
	ClearChatHistory(ctx context.Context) error
}
