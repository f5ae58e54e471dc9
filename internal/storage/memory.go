package storage

import (
	"context"
	"sync"

	"github.com/spec-kit/userstore/internal/domain"
)

var _ Storage = (*MemoryStorage)(nil)

// MemoryStorage keeps users in a map keyed by email.
type MemoryStorage struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{users: make(map[string]domain.User)}
}

func (m *MemoryStorage) Save(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
	return nil
}

func (m *MemoryStorage) Load(_ context.Context, email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[email]
	return u, ok, nil
}

func (m *MemoryStorage) Remove(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; !ok {
		return false, nil
	}
	delete(m.users, email)
	return true, nil
}

// List follows map iteration order.
func (m *MemoryStorage) List(_ context.Context) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}
