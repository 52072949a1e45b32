// Package snapshot persists the portable auction record. Only the record's
// shape matters to the core; the backends here are interchangeable
// transports behind one interface.
package snapshot

import (
	"context"
	"errors"
	"sync"

	"github.com/fantadev/asta/internal/models"
	"github.com/fantadev/asta/internal/state"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet
var ErrNoSnapshot = errors.New("no snapshot")

// Store saves and loads whole-auction snapshots. Save replaces (or
// supersedes) the previous snapshot; Load returns the most recent one.
type Store interface {
	Save(ctx context.Context, rec *models.AuctionRecord) error
	Load(ctx context.Context) (*models.AuctionRecord, error)
}

// MemoryStore keeps the latest snapshot in memory. Used in tests and when
// persistence is disabled.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(ctx context.Context, rec *models.AuctionRecord) error {
	data, err := state.Export(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(ctx context.Context) (*models.AuctionRecord, error) {
	s.mu.Lock()
	data := s.data
	s.mu.Unlock()
	if data == nil {
		return nil, ErrNoSnapshot
	}
	return state.Import(data)
}
