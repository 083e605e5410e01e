package repository

import (
	"context"
	"sync"

	"github.com/andy/quotepad/internal/domain"
)

// MemoryStore holds the snapshot for the lifetime of the process. It keeps
// the encoded form so loads behave like the persistent stores.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrNoSnapshot
	}
	return decode(DefaultKey, s.data)
}

func (s *MemoryStore) Save(ctx context.Context, inv *domain.Invoice) error {
	data, err := encode(inv)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
