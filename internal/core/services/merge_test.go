package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdsupport/poscan/internal/core/domain"
)

func shardAt(id string, created time.Time, entries ...domain.LedgerEntry) domain.Shard {
	return domain.Shard{ID: id, CreatedAt: created, Entries: entries}
}

func entryFor(po string, decision domain.Decision) domain.LedgerEntry {
	return domain.LedgerEntry{PONumber: po, Decision: decision}
}

func TestMergeShards_Empty(t *testing.T) {
	assert.Empty(t, MergeShards(nil))
	assert.Empty(t, MergeShards([]domain.Shard{}))
}

func TestMergeShards_SingleShard(t *testing.T) {
	now := time.Now()
	merged := MergeShards([]domain.Shard{
		shardAt("a", now, entryFor("100", domain.DecisionRequired), entryFor("200", domain.DecisionNotRequired)),
	})

	require.Len(t, merged, 2)
	assert.Equal(t, "100", merged[0].PONumber)
	assert.Equal(t, "200", merged[1].PONumber)
}

func TestMergeShards_NewestShardWins(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	merged := MergeShards([]domain.Shard{
		// Deliberately out of order to prove sorting by CreatedAt.
		shardAt("new", base.Add(time.Hour), entryFor("100", domain.DecisionRevised)),
		shardAt("old", base, entryFor("100", domain.DecisionRequired), entryFor("200", domain.DecisionNotRequired)),
	})

	require.Len(t, merged, 2)
	assert.Equal(t, "100", merged[0].PONumber)
	assert.Equal(t, domain.DecisionRevised, merged[0].Decision)
	assert.Equal(t, "200", merged[1].PONumber)
}

func TestMergeShards_LaterEntryWinsWithinShard(t *testing.T) {
	now := time.Now()
	merged := MergeShards([]domain.Shard{
		shardAt("a", now,
			entryFor("100", domain.DecisionRequired),
			entryFor("100", domain.DecisionRevised),
		),
	})

	require.Len(t, merged, 1)
	assert.Equal(t, domain.DecisionRevised, merged[0].Decision)
}

func TestMergeShards_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	shards := []domain.Shard{
		shardAt("b", base.Add(time.Hour), entryFor("1", domain.DecisionRequired)),
		shardAt("a", base, entryFor("2", domain.DecisionRequired)),
	}

	MergeShards(shards)

	assert.Equal(t, "b", shards[0].ID)
	assert.Equal(t, "a", shards[1].ID)
}
