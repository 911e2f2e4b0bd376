// Package driven defines the interfaces the core services require from
// infrastructure: the ledger and shard stores, document intake, the
// exclusion reference list, the filing tree, and the error sink.
// Adapters under internal/adapters/driven implement them.
package driven
