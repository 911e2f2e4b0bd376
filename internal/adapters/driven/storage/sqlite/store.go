package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/cdsupport/poscan/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/cdsupport/poscan/internal/core/domain"
	"github.com/cdsupport/poscan/internal/core/ports/driven"
)

// Store is the SQLite-backed ledger database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.poscan/data/ledger.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".poscan", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "ledger.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// LedgerStore returns a LedgerStore interface backed by this store.
func (s *Store) LedgerStore() driven.LedgerStore {
	return &ledgerStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Ledger Store ====================

// ledgerStore implements driven.LedgerStore.
type ledgerStore struct {
	store *Store
}

var _ driven.LedgerStore = (*ledgerStore)(nil)

const ledgerColumns = `po_number, buyer, seller, vat, currency, uom, max_unit_price,
	decision, supplier_emails, end_user_email, received_at, request_sent, recorded_at`

// Keys returns the set of PO numbers currently in the ledger.
func (s *ledgerStore) Keys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT po_number FROM ledger")
	if err != nil {
		return nil, fmt.Errorf("querying ledger keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var po string
		if err := rows.Scan(&po); err != nil {
			return nil, fmt.Errorf("scanning ledger key: %w", err)
		}
		keys[po] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger keys: %w", err)
	}

	return keys, nil
}

// Get retrieves the ledger entry for a PO number.
func (s *ledgerStore) Get(ctx context.Context, poNumber string) (*domain.LedgerEntry, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+ledgerColumns+" FROM ledger WHERE po_number = ?", poNumber)

	entry, err := scanEntry(row)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns all ledger entries, newest received first.
func (s *ledgerStore) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+ledgerColumns+" FROM ledger ORDER BY received_at DESC, po_number")
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Merge upserts the given entries in a single transaction. An existing
// row with the same PO number is replaced wholesale.
func (s *ledgerStore) Merge(ctx context.Context, entries []domain.LedgerEntry) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ledger (`+ledgerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(po_number) DO UPDATE SET
			buyer = excluded.buyer,
			seller = excluded.seller,
			vat = excluded.vat,
			currency = excluded.currency,
			uom = excluded.uom,
			max_unit_price = excluded.max_unit_price,
			decision = excluded.decision,
			supplier_emails = excluded.supplier_emails,
			end_user_email = excluded.end_user_email,
			received_at = excluded.received_at,
			request_sent = excluded.request_sent,
			recorded_at = excluded.recorded_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.PONumber, e.Buyer, e.Seller, e.VAT,
			e.Currency, e.UOM, e.MaxUnitPrice, string(e.Decision), e.SupplierEmails,
			e.EndUserEmail, e.ReceivedAt, e.RequestSent, e.RecordedAt); err != nil {
			return fmt.Errorf("merging entry %s: %w", e.PONumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Pending returns entries flagged for declaration support whose email
// request has not gone out yet. Entries without a supplier address are
// skipped since there is nobody to write to.
func (s *ledgerStore) Pending(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+ledgerColumns+` FROM ledger
		WHERE decision = ? AND request_sent = 0 AND supplier_emails != ''
		ORDER BY received_at`, string(domain.DecisionRequired))
	if err != nil {
		return nil, fmt.Errorf("querying pending entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// MarkRequestSent flags an entry's email request as sent.
func (s *ledgerStore) MarkRequestSent(ctx context.Context, poNumber string) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE ledger SET request_sent = 1 WHERE po_number = ?", poNumber)
	if err != nil {
		return fmt.Errorf("marking request sent: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Helper Functions ====================

// scanEntry scans a single ledger row.
func scanEntry(row *sql.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var decision string
	var receivedAt, recordedAt sql.NullTime

	if err := row.Scan(&e.PONumber, &e.Buyer, &e.Seller, &e.VAT, &e.Currency,
		&e.UOM, &e.MaxUnitPrice, &decision, &e.SupplierEmails, &e.EndUserEmail,
		&receivedAt, &e.RequestSent, &recordedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning ledger entry: %w", err)
	}

	e.Decision = domain.Decision(decision)
	if receivedAt.Valid {
		e.ReceivedAt = receivedAt.Time
	}
	if recordedAt.Valid {
		e.RecordedAt = recordedAt.Time
	}

	return &e, nil
}

// scanEntries scans multiple ledger rows.
func scanEntries(rows *sql.Rows) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.LedgerEntry
		var decision string
		var receivedAt, recordedAt sql.NullTime

		if err := rows.Scan(&e.PONumber, &e.Buyer, &e.Seller, &e.VAT, &e.Currency,
			&e.UOM, &e.MaxUnitPrice, &decision, &e.SupplierEmails, &e.EndUserEmail,
			&receivedAt, &e.RequestSent, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		e.Decision = domain.Decision(decision)
		if receivedAt.Valid {
			e.ReceivedAt = receivedAt.Time
		}
		if recordedAt.Valid {
			e.RecordedAt = recordedAt.Time
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger entries: %w", err)
	}

	return entries, nil
}
