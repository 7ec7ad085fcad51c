// Package api provides the typed HTTP client for the Todo backend.
package api

import "time"

// Status is a task lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Priority is a task priority level.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Recurrence is a task recurrence pattern.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Task is a task record as the backend returns it.
type Task struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       *string    `json:"description"`
	Status            Status     `json:"status"`
	Priority          Priority   `json:"priority"`
	Tags              []string   `json:"tags"`
	DueDate           *time.Time `json:"due_date"`
	RecurrencePattern Recurrence `json:"recurrence_pattern"`
	ReminderLeadTime  *int       `json:"reminder_lead_time"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TaskCreate is the payload for POST /api/tasks.
type TaskCreate struct {
	Title             string     `json:"title"`
	Description       *string    `json:"description,omitempty"`
	Priority          Priority   `json:"priority,omitempty"`
	Tags              []string   `json:"tags,omitempty"`
	DueDate           *string    `json:"due_date,omitempty"`
	RecurrencePattern Recurrence `json:"recurrence_pattern,omitempty"`
	ReminderLeadTime  *int       `json:"reminder_lead_time,omitempty"`
}

// TaskUpdate is the payload for PUT/PATCH /api/tasks/{id}.
// Nil fields are omitted and left untouched by the backend.
type TaskUpdate struct {
	Title             *string    `json:"title,omitempty"`
	Description       *string    `json:"description,omitempty"`
	Status            *Status    `json:"status,omitempty"`
	Priority          Priority   `json:"priority,omitempty"`
	Tags              []string   `json:"tags,omitempty"`
	DueDate           *string    `json:"due_date,omitempty"`
	RecurrencePattern Recurrence `json:"recurrence_pattern,omitempty"`
	ReminderLeadTime  *int       `json:"reminder_lead_time,omitempty"`
}

// TaskList is the response of the task list and search endpoints.
type TaskList struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

// User is the authenticated identity record.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Notification is a read-only notification projection.
type Notification struct {
	NotificationID   string    `json:"notification_id"`
	UserID           string    `json:"user_id"`
	TaskID           *string   `json:"task_id"`
	NotificationType string    `json:"notification_type"`
	Message          string    `json:"message"`
	SentAt           time.Time `json:"sent_at"`
	DeliveryStatus   string    `json:"delivery_status"`
	CreatedAt        time.Time `json:"created_at"`
}

// NotificationList is the response of GET /api/notifications.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}

// ChatMessage is a stored chat message.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatHistory is the response of GET /api/chat/history.
type ChatHistory struct {
	ConversationID string        `json:"conversation_id"`
	Messages       []ChatMessage `json:"messages"`
}
