package driven

import (
	"context"

	"github.com/cdsupport/poscan/internal/core/domain"
)

// ShardStore persists per-run shards between the sequential ledger pass
// and the cross-run merge.
type ShardStore interface {
	// Save persists a shard atomically as a full rewrite. A reader never
	// observes a partially written shard.
	Save(ctx context.Context, shard domain.Shard) error

	// LoadAll returns every outstanding shard, oldest first. Shards from
	// interrupted prior runs appear here until a merge consumes them.
	LoadAll(ctx context.Context) ([]domain.Shard, error)

	// Delete removes a consumed shard. Idempotent: deleting a shard that
	// is already gone is not an error.
	Delete(ctx context.Context, id string) error
}
