package storage

import "errors"

// Sentinel errors shared by all store implementations.
var (
	// ErrUserNotFound indicates no user exists with the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername indicates the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrTaskNotFound indicates no task with the given id is owned by the
	// requesting user. Absence and foreign ownership are indistinguishable
	// on purpose.
	ErrTaskNotFound = errors.New("task not found")

	// ErrSessionNotFound indicates the session token is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")
)
