// Package memory provides an in-memory ledger.Store. It is the default
// backend and the store used by tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"finease/internal/core"
	"finease/internal/ledger"
)

// Store keeps transactions in insertion order behind a mutex.
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New() *Store {
	return &Store{}
}

// Insert assigns a fresh id and appends the record.
func (s *Store) Insert(_ context.Context, t core.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	s.items = append(s.items, t)
	return t.ID, nil
}

// FindByOwner returns copies of the owner's records in insertion order.
func (s *Store) FindByOwner(_ context.Context, owner string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.items {
		if t.Owner == owner {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) FindByID(_ context.Context, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.items {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, ledger.ErrNotFound
}

// UpdateByID merges the patch into the stored record. An empty patch or a
// missing id is not an error; it reports zero modified.
func (s *Store) UpdateByID(_ context.Context, id string, patch core.Patch) (int64, error) {
	if patch.IsZero() {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id {
			s.items[i] = patch.Apply(t)
			return 1, nil
		}
	}
	return 0, nil
}

// DeleteByID removes the record. A missing id reports zero deleted.
func (s *Store) DeleteByID(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
