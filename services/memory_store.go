package services

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemoryStore implements ResultStore without a database, for tests and the
// standalone CLI.
type InMemoryStore struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*RunRecord
}

// NewInMemoryStore creates an in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		runs: make(map[uuid.UUID]*RunRecord),
	}
}

// SaveRun stores a record in memory.
func (s *InMemoryStore) SaveRun(record *RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[record.ID] = record
	return nil
}

// GetRun returns the record with the given id.
func (s *InMemoryStore) GetRun(id uuid.UUID) (*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return record, nil
}

// ListRuns returns all stored records, newest first.
func (s *InMemoryStore) ListRuns() ([]*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*RunRecord, 0, len(s.runs))
	for _, record := range s.runs {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
