package engine

import "sync"

// ContextStore holds at most one pending condition name per user, awaiting
// confirmation before advice is given. User ID 0 is the anonymous slot.
//
// Get, Set and Delete are individually atomic; a read-modify-write across two
// concurrent requests for the same user is an accepted race, on the
// assumption that a single user does not send concurrent messages. Entries
// never expire: a pending slot lives until the next message from that user
// consumes it, so stale entries accumulate for users who walk away mid
// conversation.
type ContextStore struct {
	mu      sync.Mutex
	pending map[int64]string
}

// NewContextStore creates an empty context store.
func NewContextStore() *ContextStore {
	return &ContextStore{pending: make(map[int64]string)}
}

// Get returns the pending condition name for the user, if any.
func (s *ContextStore) Get(userID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.pending[userID]
	return name, ok
}

// Set records a pending condition for the user, overwriting any prior entry.
func (s *ContextStore) Set(userID int64, conditionName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[userID] = conditionName
}

// Delete removes the user's pending entry, if present.
func (s *ContextStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, userID)
}

// Len reports the number of pending entries.
func (s *ContextStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
