package domain

import "time"

// Shard is the ephemeral result set of a single scanner run. It is owned
// exclusively by that run, persisted atomically once the run's sequential
// ledger pass finishes, and deleted only after its entries have been
// merged into the ledger. A shard left behind by an interrupted run is
// picked up by the next merge, so no result is lost between persist and
// cleanup.
type Shard struct {
	// ID is the run identifier that produced this shard.
	ID string

	// CreatedAt orders shards for last-write-wins merging.
	CreatedAt time.Time

	// Entries are the run's results in sequential-pass order.
	Entries []LedgerEntry
}
