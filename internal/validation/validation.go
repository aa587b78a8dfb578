// Package validation holds the explicit input checks performed before any
// store write. Each entity gets one validation function returning a typed
// result instead of scattering checks across handlers.
package validation

import "strings"

const (
	// MinUsernameLen is the minimum accepted username length.
	MinUsernameLen = 3
	// MinPasswordLen is the minimum accepted password length.
	MinPasswordLen = 6
)

// FieldError names a single invalid field and its user-facing message.
type FieldError struct {
	Field   string
	Message string
}

// Result collects field errors in the order they were detected.
type Result struct {
	Errors []FieldError
}

// OK reports whether validation passed.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Message returns the first error message, or an empty string when valid.
// Handlers surface one message at a time, so order matters.
func (r Result) Message() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

func (r *Result) add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// ValidateLogin checks that both credential fields are present. Credential
// correctness is not a validation concern.
func ValidateLogin(username, password string) Result {
	var r Result
	if username == "" || password == "" {
		r.add("credentials", "Username and password are required")
	}
	return r
}

// ValidateSignup checks the signup form. Username uniqueness is enforced by
// the credential store at write time, not here.
func ValidateSignup(username, password, confirmPassword string) Result {
	var r Result
	if username == "" || password == "" || confirmPassword == "" {
		r.add("fields", "All fields are required")
		return r
	}
	if password != confirmPassword {
		r.add("confirm_password", "Passwords do not match")
	}
	if len(password) < MinPasswordLen {
		r.add("password", "Password must be at least 6 characters long")
	}
	if len(username) < MinUsernameLen {
		r.add("username", "Username must be at least 3 characters long")
	}
	return r
}

// ValidateTask checks a new task. The title must be non-empty after trimming.
func ValidateTask(title string) Result {
	var r Result
	if strings.TrimSpace(title) == "" {
		r.add("title", "Title is required")
	}
	return r
}
