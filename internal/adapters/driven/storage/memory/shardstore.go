package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cdsupport/poscan/internal/core/domain"
	"github.com/cdsupport/poscan/internal/core/ports/driven"
)

// Ensure ShardStore implements the interface.
var _ driven.ShardStore = (*ShardStore)(nil)

// ShardStore is an in-memory implementation of driven.ShardStore.
type ShardStore struct {
	mu     sync.RWMutex
	shards map[string]domain.Shard
}

// NewShardStore creates a new in-memory shard store.
func NewShardStore() *ShardStore {
	return &ShardStore{
		shards: make(map[string]domain.Shard),
	}
}

// Save stores or replaces a shard.
func (s *ShardStore) Save(_ context.Context, shard domain.Shard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shards[shard.ID] = shard
	return nil
}

// LoadAll returns all outstanding shards, oldest first.
func (s *ShardStore) LoadAll(_ context.Context) ([]domain.Shard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shards := make([]domain.Shard, 0, len(s.shards))
	for _, shard := range s.shards {
		shards = append(shards, shard)
	}
	sort.Slice(shards, func(i, j int) bool {
		return shards[i].CreatedAt.Before(shards[j].CreatedAt)
	})
	return shards, nil
}

// Delete removes a shard. Deleting an absent shard is not an error.
func (s *ShardStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.shards, id)
	return nil
}
