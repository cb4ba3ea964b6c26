package store

import (
	"context"
	"sync"

	"github.com/kaamwala/kaamwala_be/internal/models"
)

type MemoryStore struct {
	mu       sync.RWMutex
	users    []models.User
	workers  []models.Worker
	sessions map[string]models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]models.Session),
	}
}

func (s *MemoryStore) Users(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...), nil
}

func (s *MemoryStore) PutUsers(_ context.Context, users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]models.User(nil), users...)
	return nil
}

func (s *MemoryStore) Workers(_ context.Context) ([]models.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Worker(nil), s.workers...), nil
}

func (s *MemoryStore) PutWorkers(_ context.Context, workers []models.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = append([]models.Worker(nil), workers...)
	return nil
}

func (s *MemoryStore) UpdateUsers(_ context.Context, fn func([]models.User) ([]models.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(append([]models.User(nil), s.users...))
	if err != nil {
		return err
	}
	s.users = append([]models.User(nil), next...)
	return nil
}

func (s *MemoryStore) UpdateWorkers(_ context.Context, fn func([]models.Worker) ([]models.Worker, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(append([]models.Worker(nil), s.workers...))
	if err != nil {
		return err
	}
	s.workers = append([]models.Worker(nil), next...)
	return nil
}

func (s *MemoryStore) Session(_ context.Context, clientID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[clientID]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *MemoryStore) SetSession(_ context.Context, clientID string, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[clientID] = sess
	return nil
}

func (s *MemoryStore) ClearSession(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, clientID)
	return nil
}
