package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"todoweb/internal/models"
	"todoweb/internal/storage"
)

var _ storage.UserStore = (*Store)(nil)

// CreateUser stores a new user. The username UNIQUE constraint enforces
// uniqueness at write time.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users(id, username, password_hash, created_at) VALUES(?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return models.User{}, storage.ErrDuplicateUsername
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// GetUserByUsername fetches a user by its unique username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, storage.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
