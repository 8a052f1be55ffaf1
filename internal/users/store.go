package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wellbot/wellbot/internal/db"
)

// ErrEmailTaken is returned by Create when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// Store manages persistence of users.
type Store struct {
	db *db.DB
}

// NewStore creates a user store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new user and returns it with its assigned ID.
func (s *Store) Create(ctx context.Context, username, email, passwordHash, language string, age int, gender string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, language, age, gender, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		username, email, passwordHash, language, age, gender, time.Now().UTC(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, fmt.Errorf("%s: %w", email, ErrEmailTaken)
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading new user id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByEmail returns the user registered under the email, or nil.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.get(ctx, `SELECT id, username, email, password_hash, language, age, gender, created_at FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
}

// GetByID returns the user with the given ID, or nil.
func (s *Store) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.get(ctx, `SELECT id, username, email, password_hash, language, age, gender, created_at FROM users WHERE id = ?`, id)
}

func (s *Store) get(ctx context.Context, query string, arg interface{}) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Language, &u.Age, &u.Gender, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return &u, nil
}

// UpdateProfile updates the mutable profile fields.
func (s *Store) UpdateProfile(ctx context.Context, id int64, username, language string, age int, gender string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = ?, language = ?, age = ?, gender = ? WHERE id = ?`,
		username, language, age, gender, id,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}

// Delete removes a user; chats and feedback cascade.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// Count returns the total number of registered users.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}
