package store

import (
	"context"
	"sync"

	"github.com/sujalbistaa/moodcanvas/internal/models"
)

// MemoryStore keeps submissions in a slice guarded by a mutex.
type MemoryStore struct {
	mu          sync.RWMutex
	submissions []models.Submission
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{submissions: make([]models.Submission, 0)}
}

func (m *MemoryStore) Append(_ context.Context, s models.Submission) (models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.submissions = append(m.submissions, s)
	return s, nil
}

func (m *MemoryStore) ListAll(_ context.Context) ([]models.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Submission, len(m.submissions))
	copy(out, m.submissions)
	return out, nil
}

func (m *MemoryStore) Vote(_ context.Context, id int64) (models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.submissions {
		if m.submissions[i].ID == id {
			m.submissions[i].Votes++
			return m.submissions[i], nil
		}
	}
	return models.Submission{}, ErrNotFound
}
