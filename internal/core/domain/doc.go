// Package domain defines the core business entities for poscan.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Descriptor: A document handed over by the ingestion collaborator
//   - Document: The parsed pages-and-tables form consumed by extraction
//   - Fields: The values extracted from one purchase order
//   - LedgerEntry: One durable row of the classification ledger
//   - Shard: The ephemeral per-run result set awaiting merge
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
