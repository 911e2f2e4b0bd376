package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cdsupport/poscan/internal/core/domain"
	"github.com/cdsupport/poscan/internal/core/ports/driven"
)

// Ensure LedgerStore implements the interface.
var _ driven.LedgerStore = (*LedgerStore)(nil)

// LedgerStore is an in-memory implementation of driven.LedgerStore.
type LedgerStore struct {
	mu      sync.RWMutex
	entries map[string]domain.LedgerEntry
}

// NewLedgerStore creates a new in-memory ledger store.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		entries: make(map[string]domain.LedgerEntry),
	}
}

// Keys returns the set of PO numbers currently recorded.
func (s *LedgerStore) Keys(_ context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make(map[string]struct{}, len(s.entries))
	for po := range s.entries {
		keys[po] = struct{}{}
	}
	return keys, nil
}

// Get retrieves the entry for a PO number.
func (s *LedgerStore) Get(_ context.Context, poNumber string) (*domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[poNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// List returns all entries, newest received first.
func (s *LedgerStore) List(_ context.Context) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.LedgerEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].ReceivedAt.Equal(entries[j].ReceivedAt) {
			return entries[i].ReceivedAt.After(entries[j].ReceivedAt)
		}
		return entries[i].PONumber < entries[j].PONumber
	})
	return entries, nil
}

// Merge upserts the given entries, replacing existing rows wholesale.
func (s *LedgerStore) Merge(_ context.Context, entries []domain.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range entries {
		s.entries[entry.PONumber] = entry
	}
	return nil
}

// Pending returns unsent flagged entries that have a supplier address.
func (s *LedgerStore) Pending(_ context.Context) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pending []domain.LedgerEntry
	for _, entry := range s.entries {
		if entry.Decision == domain.DecisionRequired && !entry.RequestSent && entry.SupplierEmails != "" {
			pending = append(pending, entry)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].ReceivedAt.Before(pending[j].ReceivedAt)
	})
	return pending, nil
}

// MarkRequestSent flags an entry's email request as sent.
func (s *LedgerStore) MarkRequestSent(_ context.Context, poNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[poNumber]
	if !ok {
		return domain.ErrNotFound
	}
	entry.RequestSent = true
	s.entries[poNumber] = entry
	return nil
}
