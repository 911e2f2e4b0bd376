package driving

import "context"

// Scanner runs classification batches over the intake documents.
type Scanner interface {
	// Run processes the current intake batch, persists the run shard,
	// merges all outstanding shards into the ledger, and retires the
	// processed documents from intake. Per-document failures are
	// isolated and reported in the ScanReport; Run itself only fails on
	// batch-level errors such as store access or shard persistence.
	Run(ctx context.Context) (*ScanReport, error)
}

// ScanReport summarises one batch run.
type ScanReport struct {
	// RunID identifies the run and its shard.
	RunID string

	// Processed is the number of documents classified successfully.
	Processed int

	// Failed is the number of documents excluded from the batch.
	Failed int

	// Required counts entries recorded as requiring declaration support.
	Required int

	// Revised counts entries forced to the revised decision.
	Revised int

	// Filed counts documents moved into the filing tree.
	Filed int

	// Merged is the number of entries written to the ledger.
	Merged int
}
