package server

import (
	"context"
	"sync"

	"github.com/monashcoding/tourneysite/internal/document"
)

// MemoryStore is an in-memory DataStore for tests.
type MemoryStore struct {
	mu  sync.Mutex
	doc map[string]any
	err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if s.doc == nil {
		return nil, nil
	}
	return document.Clone(s.doc).(map[string]any), nil
}

func (s *MemoryStore) Replace(_ context.Context, doc map[string]any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	created := s.doc == nil
	s.doc = document.Clone(doc).(map[string]any)
	return created, nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Fail makes every subsequent operation return err; Fail(nil) heals it.
func (s *MemoryStore) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
