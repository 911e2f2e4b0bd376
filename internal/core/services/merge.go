package services

import (
	"sort"

	"github.com/cdsupport/poscan/internal/core/domain"
)

// MergeShards flattens the outstanding shards into one entry per PO
// number. Shards are replayed oldest first, so when the same PO appears
// in several shards the entry from the newest shard wins. Within a
// shard later entries win over earlier ones. Output order follows the
// first appearance of each PO number, which keeps the merge
// deterministic for any shard input.
func MergeShards(shards []domain.Shard) []domain.LedgerEntry {
	ordered := make([]domain.Shard, len(shards))
	copy(ordered, shards)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	latest := make(map[string]domain.LedgerEntry)
	var keys []string
	for _, shard := range ordered {
		for _, entry := range shard.Entries {
			if _, seen := latest[entry.PONumber]; !seen {
				keys = append(keys, entry.PONumber)
			}
			latest[entry.PONumber] = entry
		}
	}

	merged := make([]domain.LedgerEntry, 0, len(keys))
	for _, key := range keys {
		merged = append(merged, latest[key])
	}
	return merged
}
