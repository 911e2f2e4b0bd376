// Package file provides a filesystem-backed shard store.
//
// Each run's shard is written as one JSON file under the data directory.
// Writes go to a temporary file first and are renamed into place, so a
// crash mid-write never leaves a half-written shard behind. Shards that
// survive a crashed run are picked up and merged on the next.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cdsupport/poscan/internal/core/domain"
	"github.com/cdsupport/poscan/internal/core/ports/driven"
)

// Ensure ShardStore implements the interface.
var _ driven.ShardStore = (*ShardStore)(nil)

// ShardStore persists run shards as JSON files in a directory.
type ShardStore struct {
	dir string
}

// NewShardStore creates a shard store rooted at dir, creating the
// directory if needed.
func NewShardStore(dir string) (*ShardStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating shard directory: %w", err)
	}
	return &ShardStore{dir: dir}, nil
}

// Save writes a shard atomically, replacing any previous file for the
// same shard ID.
func (s *ShardStore) Save(_ context.Context, shard domain.Shard) error {
	data, err := json.MarshalIndent(shard, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding shard %s: %w", shard.ID, err)
	}

	final := s.path(shard.ID)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing shard %s: %w", shard.ID, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publishing shard %s: %w", shard.ID, err)
	}
	return nil
}

// LoadAll reads every shard in the directory and returns them oldest
// first.
func (s *ShardStore) LoadAll(_ context.Context) ([]domain.Shard, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading shard directory: %w", err)
	}

	var shards []domain.Shard
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "shard-") || !strings.HasSuffix(name, ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading shard %s: %w", name, err)
		}

		var shard domain.Shard
		if err := json.Unmarshal(data, &shard); err != nil {
			return nil, fmt.Errorf("decoding shard %s: %w", name, err)
		}
		shards = append(shards, shard)
	}

	sort.Slice(shards, func(i, j int) bool {
		return shards[i].CreatedAt.Before(shards[j].CreatedAt)
	})
	return shards, nil
}

// Delete removes a shard file. Deleting an absent shard is not an
// error, so a retried cleanup stays idempotent.
func (s *ShardStore) Delete(_ context.Context, id string) error {
	if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting shard %s: %w", id, err)
	}
	return nil
}

func (s *ShardStore) path(id string) string {
	return filepath.Join(s.dir, "shard-"+id+".json")
}
