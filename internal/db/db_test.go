package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer d.Close()

	for _, table := range []string{"users", "chats", "feedbacks"} {
		var name string
		err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("expected table %q to exist: %v", table, err)
		}
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wellbot.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	if _, err := d.Exec(`INSERT INTO users (username, email, password_hash) VALUES ('a', 'a@b.c', 'x')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestFeedbackRatingConstraint(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer d.Close()

	if _, err := d.Exec(`INSERT INTO users (username, email, password_hash) VALUES ('a', 'a@b.c', 'x')`); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	_, err = d.Exec(`INSERT INTO feedbacks (id, user_id, rating) VALUES ('f1', 1, 'meh')`)
	if err == nil {
		t.Error("expected CHECK constraint to reject rating 'meh'")
	}
}
