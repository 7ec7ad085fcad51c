// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"todocli/internal/api"
	"todocli/internal/service"
)

var _ service.Service = (*FakeService)(nil)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = &api.Error{Status: 404, Detail: "Task not found"}

// ErrBadCredentials is returned on a failed login.
var ErrBadCredentials = &api.Error{Status: 401, Detail: "Incorrect email or password"}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu            sync.Mutex
	users         map[string]string // email -> password
	tasks         []api.Task
	notifications []api.Notification
	chat          api.ChatHistory
	nextID        int

	// LastQuery records the most recent FetchTasks argument so tests can
	// assert on the request shape.
	LastQuery *api.Query

	// Error injection for testing.
	RegisterErr          error
	LoginErr             error
	LogoutErr            error
	CurrentUserErr       error
	FetchTasksErr        error
	GetTaskErr           error
	CreateTaskErr        error
	UpdateTaskErr        error
	PatchTaskErr         error
	DeleteTaskErr        error
	ToggleErr            error
	ListNotificationsErr error
	MarkReadErr          error
	ChatHistoryErr       error
	ClearChatErr         error
}

// NewFakeService creates an empty fake with one known account.
func NewFakeService() *FakeService {
	return &FakeService{
		users: map[string]string{"user@example.com": "password123"},
		chat:  api.ChatHistory{ConversationID: "conv-1"},
	}
}

// AddTask seeds a task and returns it.
func (f *FakeService) AddTask(id, title string, status api.Status) api.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := api.Task{
		ID:                id,
		Title:             title,
		Status:            status,
		Priority:          api.PriorityMedium,
		RecurrencePattern: api.RecurrenceNone,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	f.tasks = append(f.tasks, t)
	return t
}

// SetTask replaces a seeded task wholesale.
func (f *FakeService) SetTask(t api.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == t.ID {
			f.tasks[i] = t
			return
		}
	}
	f.tasks = append(f.tasks, t)
}

// AddNotification seeds a notification.
func (f *FakeService) AddNotification(id, message, deliveryStatus string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, api.Notification{
		NotificationID:   id,
		Message:          message,
		DeliveryStatus:   deliveryStatus,
		NotificationType: "task_reminder",
		SentAt:           time.Now(),
		CreatedAt:        time.Now(),
	})
}

// AddChatMessage seeds a stored chat message.
func (f *FakeService) AddChatMessage(role, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chat.Messages = append(f.chat.Messages, api.ChatMessage{
		ID:        "msg-" + strconv.Itoa(len(f.chat.Messages)+1),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []api.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]api.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, email, password string) (api.AuthResponse, error) {
	if f.RegisterErr != nil {
		return api.AuthResponse{}, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[email]; exists {
		return api.AuthResponse{}, &api.Error{Status: 400, Detail: "Email already registered"}
	}
	f.users[email] = password
	return authResponse(email), nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (api.AuthResponse, error) {
	if f.LoginErr != nil {
		return api.AuthResponse{}, f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if stored, ok := f.users[email]; !ok || stored != password {
		return api.AuthResponse{}, ErrBadCredentials
	}
	return authResponse(email), nil
}

// Logout implements service.Service.
func (f *FakeService) Logout(ctx context.Context) error {
	return f.LogoutErr
}

// CurrentUser implements service.Service.
func (f *FakeService) CurrentUser(ctx context.Context) (api.User, error) {
	if f.CurrentUserErr != nil {
		return api.User{}, f.CurrentUserErr
	}
	return authResponse("user@example.com").User, nil
}

// FetchTasks implements service.Service: substring search in search mode,
// field filtering plus sort in filter mode.
func (f *FakeService) FetchTasks(ctx context.Context, q api.Query) (api.TaskList, error) {
	f.mu.Lock()
	f.LastQuery = &q
	f.mu.Unlock()
	if f.FetchTasksErr != nil {
		return api.TaskList{}, f.FetchTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []api.Task
	if q.IsSearch() {
		needle := strings.ToLower(q.Search())
		for _, t := range f.tasks {
			hay := strings.ToLower(t.Title)
			if t.Description != nil {
				hay += " " + strings.ToLower(*t.Description)
			}
			if strings.Contains(hay, needle) {
				out = append(out, t)
			}
		}
	} else {
		flt := q.Filter()
		want := map[string]bool{}
		for _, tag := range strings.Split(flt.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				want[tag] = true
			}
		}
		for _, t := range f.tasks {
			if flt.Status != "" && t.Status != flt.Status {
				continue
			}
			if flt.Priority != "" && t.Priority != flt.Priority {
				continue
			}
			if len(want) > 0 && !hasAnyTag(t.Tags, want) {
				continue
			}
			out = append(out, t)
		}
		sortTasks(out, flt.Sort, flt.Order)
	}
	return api.TaskList{Tasks: out, Total: len(out)}, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (api.Task, error) {
	if f.GetTaskErr != nil {
		return api.Task{}, f.GetTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return api.Task{}, ErrNotFound
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, data api.TaskCreate) (api.Task, error) {
	if f.CreateTaskErr != nil {
		return api.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := api.Task{
		ID:                "task-" + strconv.Itoa(f.nextID),
		Title:             data.Title,
		Description:       data.Description,
		Status:            api.StatusPending,
		Priority:          data.Priority,
		Tags:              data.Tags,
		RecurrencePattern: data.RecurrencePattern,
		ReminderLeadTime:  data.ReminderLeadTime,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if t.Priority == "" {
		t.Priority = api.PriorityMedium
	}
	if data.DueDate != nil {
		if due, err := time.Parse(time.RFC3339, *data.DueDate); err == nil {
			t.DueDate = &due
		}
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, data api.TaskUpdate) (api.Task, error) {
	if f.UpdateTaskErr != nil {
		return api.Task{}, f.UpdateTaskErr
	}
	return f.apply(id, data)
}

// PatchTask implements service.Service.
func (f *FakeService) PatchTask(ctx context.Context, id string, data api.TaskUpdate) (api.Task, error) {
	if f.PatchTaskErr != nil {
		return api.Task{}, f.PatchTaskErr
	}
	return f.apply(id, data)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ToggleComplete implements service.Service.
func (f *FakeService) ToggleComplete(ctx context.Context, id string) (api.Task, error) {
	if f.ToggleErr != nil {
		return api.Task{}, f.ToggleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			if t.Status == api.StatusCompleted {
				f.tasks[i].Status = api.StatusPending
			} else {
				f.tasks[i].Status = api.StatusCompleted
			}
			f.tasks[i].UpdatedAt = time.Now()
			return f.tasks[i], nil
		}
	}
	return api.Task{}, ErrNotFound
}

// ListNotifications implements service.Service.
func (f *FakeService) ListNotifications(ctx context.Context, unreadOnly bool) (api.NotificationList, error) {
	if f.ListNotificationsErr != nil {
		return api.NotificationList{}, f.ListNotificationsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var resp api.NotificationList
	for _, n := range f.notifications {
		unread := n.DeliveryStatus != "read"
		if unread {
			resp.UnreadCount++
		}
		if unreadOnly && !unread {
			continue
		}
		resp.Notifications = append(resp.Notifications, n)
	}
	return resp, nil
}

// MarkNotificationRead implements service.Service.
func (f *FakeService) MarkNotificationRead(ctx context.Context, id string) error {
	if f.MarkReadErr != nil {
		return f.MarkReadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.notifications {
		if n.NotificationID == id {
			f.notifications[i].DeliveryStatus = "read"
			return nil
		}
	}
	return ErrNotFound
}

// ChatHistory implements service.Service.
func (f *FakeService) ChatHistory(ctx context.Context, limit int) (api.ChatHistory, error) {
	if f.ChatHistoryErr != nil {
		return api.ChatHistory{}, f.ChatHistoryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	resp := f.chat
	if limit > 0 && limit < len(resp.Messages) {
		resp.Messages = resp.Messages[len(resp.Messages)-limit:]
	}
	return resp, nil
}

// ClearChatHistory implements service.Service.
func (f *FakeService) ClearChatHistory(ctx context.Context) error {
	if f.ClearChatErr != nil {
		return f.ClearChatErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chat.Messages = nil
	return nil
}

func (f *FakeService) apply(id string, data api.TaskUpdate) (api.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		t := &f.tasks[i]
		if data.Title != nil {
			t.Title = *data.Title
		}
		if data.Description != nil {
			t.Description = data.Description
		}
		if data.Status != nil {
			t.Status = *data.Status
		}
		if data.Priority != "" {
			t.Priority = data.Priority
		}
		if data.Tags != nil {
			t.Tags = data.Tags
		}
		if data.DueDate != nil {
			if due, err := time.Parse(time.RFC3339, *data.DueDate); err == nil {
				t.DueDate = &due
			}
		}
		if data.RecurrencePattern != "" {
			t.RecurrencePattern = data.RecurrencePattern
		}
		if data.ReminderLeadTime != nil {
			t.ReminderLeadTime = data.ReminderLeadTime
		}
		t.UpdatedAt = time.Now()
		return *t, nil
	}
	return api.Task{}, ErrNotFound
}

func authResponse(email string) api.AuthResponse {
	return api.AuthResponse{
		AccessToken: "fake-token",
		TokenType:   "bearer",
		User: api.User{
			ID:        "user-1",
			Email:     email,
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func hasAnyTag(tags []string, want map[string]bool) bool {
	for _, tag := range tags {
		if want[tag] {
			return true
		}
	}
	return false
}

func sortTasks(tasks []api.Task, key, order string) {
	if key == "" {
		key = api.SortCreatedAt
	}
	less := func(a, b api.Task) bool {
		switch key {
		case api.SortPriority:
			return priorityRank(a.Priority) < priorityRank(b.Priority)
		case api.SortDueDate:
			at, bt := dueOrZero(a), dueOrZero(b)
			return at.Before(bt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if order == api.OrderDesc {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}

func priorityRank(p api.Priority) int {
	switch p {
	case api.PriorityHigh:
		return 0
	case api.PriorityMedium:
		return 1
	default:
		return 2
	}
}

func dueOrZero(t api.Task) time.Time {
	if t.DueDate == nil {
		return time.Time{}
	}
	return *t.DueDate
}
