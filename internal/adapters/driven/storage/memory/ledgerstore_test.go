package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdsupport/poscan/internal/core/domain"
)

func TestLedgerStore_MergeAndGet(t *testing.T) {
	store := NewLedgerStore()
	ctx := context.Background()

	entry := domain.LedgerEntry{PONumber: "100", Decision: domain.DecisionRequired}
	require.NoError(t, store.Merge(ctx, []domain.LedgerEntry{entry}))

	got, err := store.Get(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionRequired, got.Decision)
}

func TestLedgerStore_Get_NotFound(t *testing.T) {
	store := NewLedgerStore()

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedgerStore_Merge_ReplacesWholesale(t *testing.T) {
	store := NewLedgerStore()
	ctx := context.Background()

	require.NoError(t, store.Merge(ctx, []domain.LedgerEntry{
		{PONumber: "100", Decision: domain.DecisionRequired, Seller: "ACME"},
	}))
	require.NoError(t, store.Merge(ctx, []domain.LedgerEntry{
		{PONumber: "100", Decision: domain.DecisionRevised},
	}))

	got, err := store.Get(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionRevised, got.Decision)
	assert.Empty(t, got.Seller, "old fields must not survive the merge")
}

func TestLedgerStore_Keys(t *testing.T) {
	store := NewLedgerStore()
	ctx := context.Background()

	require.NoError(t, store.Merge(ctx, []domain.LedgerEntry{
		{PONumber: "100"}, {PONumber: "200"},
	}))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"100": {}, "200": {}}, keys)
}

func TestLedgerStore_List_NewestFirst(t *testing.T) {
	store := NewLedgerStore()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Merge(ctx, []domain.LedgerEntry{
		{PONumber: "old", ReceivedAt: base},
		{PONumber: "new", ReceivedAt: base.Add(time.Hour)},
	}))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].PONumber)
	assert.Equal(t, "old", entries[1].PONumber)
}

func TestLedgerStore_PendingAndMarkSent(t *testing.T) {
	store := NewLedgerStore()
	ctx := context.Background()

	require.NoError(t, store.Merge(ctx, []domain.LedgerEntry{
		{PONumber: "1", Decision: domain.DecisionRequired, SupplierEmails: "a@example.com"},
		{PONumber: "2", Decision: domain.DecisionRequired}, // no address
		{PONumber: "3", Decision: domain.DecisionNotRequired, SupplierEmails: "b@example.com"},
		{PONumber: "4", Decision: domain.DecisionRequired, SupplierEmails: "c@example.com", RequestSent: true},
	}))

	pending, err := store.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "1", pending[0].PONumber)

	require.NoError(t, store.MarkRequestSent(ctx, "1"))

	pending, err = store.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestLedgerStore_MarkRequestSent_NotFound(t *testing.T) {
	store := NewLedgerStore()

	err := store.MarkRequestSent(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
