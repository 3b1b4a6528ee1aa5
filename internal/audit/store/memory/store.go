// Package memory keeps audit events in process. Used in tests and when
// no Kafka brokers are configured.
package memory

import (
	"context"
	"sync"

	"partnerhub/internal/audit"
	id "partnerhub/pkg/domain"
)

// Store is an in-memory audit sink.
type Store struct {
	mu     sync.Mutex
	events []audit.Event
}

// New constructs an empty in-memory audit store.
func New() *Store {
	return &Store{}
}

// Write appends the event.
func (s *Store) Write(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByUser returns the recorded events for a user, oldest first.
func (s *Store) ListByUser(userID id.UserID) []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}
