package session

import (
	"context"
	"fmt"
	"sync"
)

// Key identifies at most one outstanding quiz question. Issuing a new
// question for the same (user, word) replaces the previous session; the
// stale question simply becomes unanswerable.
type Key struct {
	UserID int64
	WordID int64
}

func (k Key) String() string {
	return fmt.Sprintf("quiz:%d:%d", k.UserID, k.WordID)
}

// Store holds the ordered choice list shown for a pending quiz question.
// Consume is get-and-delete in one step, so a session can be answered
// exactly once even under concurrent submissions.
type Store interface {
	Put(ctx context.Context, key Key, choices []string) error
	Consume(ctx context.Context, key Key) ([]string, bool, error)
}

// MemoryStore is the in-process Store used by default. State does not
// survive restarts.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[Key][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[Key][]string)}
}

func (s *MemoryStore) Put(_ context.Context, key Key, choices []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = choices
	return nil
}

func (s *MemoryStore) Consume(_ context.Context, key Key) ([]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	choices, ok := s.sessions[key]
	if !ok {
		return nil, false, nil
	}
	delete(s.sessions, key)
	return choices, true, nil
}
