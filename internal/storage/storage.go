// Package storage defines the persistence interfaces handlers depend on
// and the sentinel errors implementations report.
package storage

import (
	"context"
	"time"

	"todoweb/internal/models"
)

// SessionTTL is how long an issued session remains valid. The cookie
// max-age and the store-side expiry both derive from it.
const SessionTTL = 24 * time.Hour

// UserStore persists account credentials.
type UserStore interface {
	// CreateUser stores a new user with the given username and password
	// hash. Returns ErrDuplicateUsername when the username is taken.
	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)

	// GetUserByUsername returns ErrUserNotFound when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// TaskStore persists tasks scoped by owner. Every operation that names a
// task id also names the owner; the ownership check is the authorization
// boundary.
type TaskStore interface {
	// CreateTask stores a new pending task. Title and description are
	// trimmed; the title must already be validated as non-empty.
	CreateTask(ctx context.Context, ownerID, title, description string) (models.Task, error)

	// ListTasks returns the owner's tasks matching the filter, most recent
	// first. Deleted tasks are excluded by every filter.
	ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error)

	// SetTaskStatus applies the status to the task and refreshes its
	// updated_at. Returns ErrTaskNotFound when the task does not exist or
	// belongs to another user.
	SetTaskStatus(ctx context.Context, taskID, ownerID string, status models.TaskStatus) (models.Task, error)

	// SoftDeleteTask marks the task deleted. Same semantics as
	// SetTaskStatus with StatusDeleted.
	SoftDeleteTask(ctx context.Context, taskID, ownerID string) error
}

// SessionStore holds the server-side records behind session cookies.
type SessionStore interface {
	// Create issues a new opaque token mapping to the given identity.
	Create(userID, username string) (string, error)

	// Get resolves a token. Returns ErrSessionNotFound for unknown or
	// expired tokens.
	Get(token string) (models.Session, error)

	// Delete removes the session. Deleting an unknown token is not an error.
	Delete(token string) error
}
