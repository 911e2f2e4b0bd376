package domain

import "time"

// LedgerEntry is one row of the durable PO ledger. PONumber is the unique
// key; after any merge at most one entry per PO number survives, the most
// recently written one.
type LedgerEntry struct {
	// PONumber is the unique identity of the purchase order.
	PONumber string

	// Buyer is the canonical buyer entity name, or Unknown.
	Buyer string

	// Seller is the seller block collapsed to one line, or Unknown.
	Seller string

	// VAT is the deduplicated, sorted rate list joined with "/", or Unknown.
	VAT string

	// Currency is the deduplicated, sorted code list joined with "/", or Unknown.
	Currency string

	// UOM is the deduplicated, sorted unit list joined with "/", or Unknown.
	UOM string

	// MaxUnitPrice is the highest unit price found, 0 if none.
	MaxUnitPrice float64

	// Decision is the classification outcome recorded for this entry.
	Decision Decision

	// SupplierEmails is the normalised recipient list joined with "; ".
	SupplierEmails string

	// EndUserEmail is the normalised end-user address, or "".
	EndUserEmail string

	// ReceivedAt is when the originating message arrived.
	ReceivedAt time.Time

	// RequestSent reports whether the follow-up request for this PO has
	// already gone out. Maintained by the notification boundary.
	RequestSent bool

	// RecordedAt is when this entry was produced. Merge keeps the entry
	// with the latest RecordedAt per PO number.
	RecordedAt time.Time
}
