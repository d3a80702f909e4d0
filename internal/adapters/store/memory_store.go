package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/core"
)

// MemoryStore is an in-memory implementation of the RegistryStore
// interface, used for tests and single-process deployments without
// durability requirements
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string][]core.VIPContact
	logger   *zap.Logger
}

// NewMemoryStore creates a new in-memory registry store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string][]core.VIPContact),
		logger:   logger,
	}
}

// Load retrieves the contact list for an account. A missing account
// yields an empty list.
func (s *MemoryStore) Load(ctx context.Context, account string) ([]core.VIPContact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contacts, ok := s.accounts[account]
	if !ok {
		return nil, nil
	}
	out := make([]core.VIPContact, len(contacts))
	copy(out, contacts)
	return out, nil
}

// Save stores the full contact list for an account
func (s *MemoryStore) Save(ctx context.Context, account string, contacts []core.VIPContact) error {
	snapshot := make([]core.VIPContact, len(contacts))
	copy(snapshot, contacts)

	s.mu.Lock()
	s.accounts[account] = snapshot
	s.mu.Unlock()

	return nil
}
