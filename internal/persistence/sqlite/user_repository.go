package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/example/reserva-salas/internal/persistence"
)

// CreateUser inserts a new account. Emails are stored lowercased and must
// be unique; a clash surfaces as persistence.ErrDuplicate.
func (s *Storage) CreateUser(ctx context.Context, user persistence.User) error {
	const query = `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		strings.ToLower(user.Email),
		user.PasswordHash,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return persistence.ErrDuplicate
		}
		return fmt.Errorf("sqlite: insert user: %w", err)
	}
	return nil
}

// GetUser retrieves an account by id.
func (s *Storage) GetUser(ctx context.Context, id string) (persistence.User, error) {
	return s.getUser(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id = ?`, id)
}

// GetUserByEmail retrieves an account by its lowercased email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	return s.getUser(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = ?`,
		strings.ToLower(email))
}

func (s *Storage) getUser(ctx context.Context, query string, arg any) (persistence.User, error) {
	var user persistence.User
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.User{}, persistence.ErrNotFound
		}
		return persistence.User{}, fmt.Errorf("sqlite: scan user: %w", err)
	}

	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.User{}, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.User{}, err
	}
	return user, nil
}
