package session

import (
	"context"
	"sync"

	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/models"
)

// MemoryStore keeps sessions in process. Sessions never expire.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*models.AssessmentSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.AssessmentSession)}
}

func (m *MemoryStore) Create(ctx context.Context, s *models.AssessmentSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.ID]; exists {
		return apperrors.NewSessionConflictError(s.ID, "session already exists")
	}
	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*models.AssessmentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.NewSessionNotFoundError(id)
	}
	return s.Clone(), nil
}

// Update runs mutate on a copy and swaps it in only if mutate succeeds.
func (m *MemoryStore) Update(ctx context.Context, id string, mutate Mutator) (*models.AssessmentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.NewSessionNotFoundError(id)
	}

	next := current.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	m.sessions[id] = next
	return next.Clone(), nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
