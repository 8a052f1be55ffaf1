package kb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrAlreadyExists is returned by Add when the condition name is taken.
	ErrAlreadyExists = errors.New("condition already exists")
	// ErrNotFound is returned by Edit and Remove for unknown names.
	ErrNotFound = errors.New("condition not found")
	// ErrCorrupt is returned when the persisted document cannot be parsed.
	ErrCorrupt = errors.New("knowledge base document is corrupt")
)

// Store persists the condition map as a single JSON document that every
// mutation rewrites in full. Admin edits are rare and operator-driven, so
// concurrent writers are last-write-wins behind one mutex.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open creates a store backed by the document at path, seeding it with the
// default conditions when the file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating knowledge base directory: %w", err)
		}
		if err := s.write(DefaultConditions); err != nil {
			return nil, fmt.Errorf("seeding knowledge base: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("accessing knowledge base %s: %w", path, err)
	}
	return s, nil
}

// Snapshot returns every entry in document order.
func (s *Store) Snapshot() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Lookup returns the condition stored under the given name, case-insensitively.
func (s *Store) Lookup(name string) (Condition, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return Condition{}, false, err
	}
	key := normalize(name)
	for _, e := range entries {
		if e.Name == key {
			return e.Condition, true, nil
		}
	}
	return Condition{}, false, nil
}

// Add appends a new condition. It fails with ErrAlreadyExists when the name
// is present under any casing, leaving the document unchanged.
func (s *Store) Add(name string, cond Condition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	key := normalize(name)
	for _, e := range entries {
		if e.Name == key {
			return fmt.Errorf("%q: %w", key, ErrAlreadyExists)
		}
	}
	entries = append(entries, Entry{Name: key, Condition: cond})
	return s.write(entries)
}

// Edit replaces an existing condition in place, preserving its position in
// the document. It fails with ErrNotFound for unknown names.
func (s *Store) Edit(name string, cond Condition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	key := normalize(name)
	for i, e := range entries {
		if e.Name == key {
			entries[i].Condition = cond
			return s.write(entries)
		}
	}
	return fmt.Errorf("%q: %w", key, ErrNotFound)
}

// Remove deletes a condition. It fails with ErrNotFound for unknown names.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	key := normalize(name)
	for i, e := range entries {
		if e.Name == key {
			entries = append(entries[:i], entries[i+1:]...)
			return s.write(entries)
		}
	}
	return fmt.Errorf("%q: %w", key, ErrNotFound)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// read parses the document, keeping entries in document order. encoding/json
// maps drop key order, so the object is walked token by token instead.
func (s *Store) read() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge base: %w", err)
	}
	return decodeDocument(data)
}

func decodeDocument(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: document is not a JSON object", ErrCorrupt)
	}

	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string key", ErrCorrupt)
		}
		var cond Condition
		if err := dec.Decode(&cond); err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrCorrupt, key, err)
		}
		entries = append(entries, Entry{Name: normalize(key), Condition: cond})
	}
	return entries, nil
}

// write rewrites the whole document, preserving entry order.
func (s *Store) write(entries []Entry) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		nameJSON, err := json.Marshal(e.Name)
		if err != nil {
			return fmt.Errorf("encoding name %q: %w", e.Name, err)
		}
		condJSON, err := json.MarshalIndent(e.Condition, "  ", "  ")
		if err != nil {
			return fmt.Errorf("encoding condition %q: %w", e.Name, err)
		}
		buf.WriteString("\n  ")
		buf.Write(nameJSON)
		buf.WriteString(": ")
		buf.Write(condJSON)
	}
	buf.WriteString("\n}\n")

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing knowledge base: %w", err)
	}
	return nil
}
