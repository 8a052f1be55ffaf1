package chats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wellbot/wellbot/internal/db"
)

// Exchange is one immutable message/response pair in a user's history.
type Exchange struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"-"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"timestamp"`
}

// Store manages persistence of chat exchanges.
type Store struct {
	db *db.DB
}

// NewStore creates a chat store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Add records one exchange for a user.
func (s *Store) Add(ctx context.Context, userID int64, message, response string) (*Exchange, error) {
	e := Exchange{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Response:  response,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chats (id, user_id, message, response, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Message, e.Response, e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("recording exchange: %w", err)
	}
	return &e, nil
}

// History returns a user's exchanges, oldest first.
func (s *Store) History(ctx context.Context, userID int64) ([]Exchange, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, message, response, created_at FROM chats WHERE user_id = ? ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying chats: %w", err)
	}
	defer rows.Close()

	var out []Exchange
	for rows.Next() {
		var e Exchange
		if err := rows.Scan(&e.ID, &e.UserID, &e.Message, &e.Response, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning exchange: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Clear deletes a user's chat history.
func (s *Store) Clear(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chats WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clearing chats: %w", err)
	}
	return nil
}

// Count returns the total number of recorded exchanges.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chats`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chats: %w", err)
	}
	return n, nil
}
