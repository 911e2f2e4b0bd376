package driven

import (
	"context"

	"github.com/cdsupport/poscan/internal/core/domain"
)

// LedgerStore persists the durable PO ledger.
// Backed by SQLite for metadata storage.
type LedgerStore interface {
	// Keys returns the set of PO numbers currently in the ledger.
	Keys(ctx context.Context) (map[string]struct{}, error)

	// Get retrieves the entry for a PO number.
	Get(ctx context.Context, poNumber string) (*domain.LedgerEntry, error)

	// List returns all entries ordered by PO number.
	List(ctx context.Context) ([]domain.LedgerEntry, error)

	// Merge upserts entries in a single transaction. The stored entry for
	// a PO number is replaced wholesale; callers pass entries already
	// deduplicated last-write-wins.
	Merge(ctx context.Context, entries []domain.LedgerEntry) error

	// Pending returns entries that require declaration support, have a
	// supplier address, and have no follow-up request sent yet.
	Pending(ctx context.Context) ([]domain.LedgerEntry, error)

	// MarkRequestSent flips the request-sent flag for a PO number.
	// Returns domain.ErrNotFound if the PO number is not in the ledger.
	MarkRequestSent(ctx context.Context, poNumber string) error
}
