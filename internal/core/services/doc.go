// Package services implements the core business logic: field extraction,
// buyer classification and the declaration decision tree, the batch
// scanner with its worker pool, and the shard merge. Services depend only
// on domain types and ports, never on concrete adapters.
package services
