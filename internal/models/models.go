package models

import "time"

// User is an account that owns tasks. Only the bcrypt hash of the
// password is ever stored.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TaskStatus enumerates the lifecycle states of a task. Deletion is a
// status transition, not a physical removal.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
	StatusDeleted   TaskStatus = "deleted"
)

// ValidTaskStatuses enumerates the statuses accepted by the status endpoint.
var ValidTaskStatuses = map[TaskStatus]struct{}{
	StatusPending:   {},
	StatusCompleted: {},
	StatusDeleted:   {},
}

// Task is a single todo item belonging to exactly one user.
type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskFilter selects which tasks a list query returns. Deleted tasks are
// excluded by every filter.
type TaskFilter string

const (
	FilterAll       TaskFilter = "all"
	FilterPending   TaskFilter = "pending"
	FilterCompleted TaskFilter = "completed"
)

// ParseTaskFilter maps a query parameter to a filter, falling back to
// FilterAll for unknown or empty values.
func ParseTaskFilter(raw string) TaskFilter {
	switch TaskFilter(raw) {
	case FilterPending:
		return FilterPending
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Session is the server-side record behind a session cookie.
type Session struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
