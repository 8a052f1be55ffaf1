package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wellbot/wellbot/internal/db"
)

// ErrInvalidRating is returned for ratings other than positive/negative.
var ErrInvalidRating = errors.New("rating must be positive or negative")

// Entry is one feedback submission.
type Entry struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"-"`
	Username  string    `json:"username,omitempty"`
	Rating    string    `json:"rating"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"timestamp"`
}

// Counts aggregates feedback by rating.
type Counts struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// Store manages persistence of feedback entries.
type Store struct {
	db *db.DB
}

// NewStore creates a feedback store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Add records one feedback entry. Ratings are normalized to lowercase.
func (s *Store) Add(ctx context.Context, userID int64, rating, review string) (*Entry, error) {
	rating = strings.ToLower(strings.TrimSpace(rating))
	if rating != "positive" && rating != "negative" {
		return nil, fmt.Errorf("%q: %w", rating, ErrInvalidRating)
	}
	e := Entry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Rating:    rating,
		Review:    review,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedbacks (id, user_id, rating, review, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Rating, e.Review, e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("recording feedback: %w", err)
	}
	return &e, nil
}

// ForUser returns one user's feedback, newest first.
func (s *Store) ForUser(ctx context.Context, userID int64) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, rating, review, created_at FROM feedbacks WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows, false)
}

// All returns every feedback entry with its author's username, newest first,
// limited when limit > 0.
func (s *Store) All(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT f.id, f.user_id, f.rating, f.review, f.created_at, u.username
		 FROM feedbacks f JOIN users u ON f.user_id = u.id
		 ORDER BY f.created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows, true)
}

// CountByRating returns total/positive/negative counts.
func (s *Store) CountByRating(ctx context.Context) (Counts, error) {
	var c Counts
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN rating = 'positive' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN rating = 'negative' THEN 1 ELSE 0 END), 0)
		 FROM feedbacks`,
	).Scan(&c.Total, &c.Positive, &c.Negative)
	if err != nil {
		return Counts{}, fmt.Errorf("counting feedback: %w", err)
	}
	return c, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanEntries(rows rowScanner, withUsername bool) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		var err error
		if withUsername {
			err = rows.Scan(&e.ID, &e.UserID, &e.Rating, &e.Review, &e.CreatedAt, &e.Username)
		} else {
			err = rows.Scan(&e.ID, &e.UserID, &e.Rating, &e.Review, &e.CreatedAt)
		}
		if err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
