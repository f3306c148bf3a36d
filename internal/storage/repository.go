// Package storage implements the SQLite-backed ledger.Store.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"finease/internal/core"
	"finease/internal/ledger"
)

const createdAtLayout = time.RFC3339Nano

//go:embed migrations/*.sql
var schemaFS embed.FS

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateSchema(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// migrateSchema brings the transactions schema up to date from the embedded
// migration files. golang-migrate's sqlite driver closes the handle it is
// given, so it gets its own short-lived connection rather than the
// repository's pool.
func migrateSchema(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("sqlite migrate driver: %w", err)
	}
	source, err := iofs.New(schemaFS, "migrations")
	if err != nil {
		return fmt.Errorf("embedded migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert implements ledger.Store. The id is assigned here, never by callers.
func (r *SQLiteRepository) Insert(ctx context.Context, t core.Transaction) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, owner, kind, description, category, amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, t.Owner, t.Kind, t.Description, t.Category, t.Amount,
		t.CreatedAt.UTC().Format(createdAtLayout))
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"owner", t.Owner,
		"kind", t.Kind,
		"amount", t.Amount)

	return id, nil
}

// FindByOwner implements ledger.Store. Rows come back in insertion order.
func (r *SQLiteRepository) FindByOwner(ctx context.Context, owner string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, kind, description, category, amount, created_at
		 FROM transactions WHERE owner = ? ORDER BY rowid`, owner)
	if err != nil {
		return nil, fmt.Errorf("query transactions by owner: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// FindByID implements ledger.Store.
func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner, kind, description, category, amount, created_at
		 FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// UpdateByID implements ledger.Store. Only the patched columns are written;
// an empty patch or a missing id reports zero modified.
func (r *SQLiteRepository) UpdateByID(ctx context.Context, id string, patch core.Patch) (int64, error) {
	var (
		sets []string
		args []any
	)
	if patch.Owner != nil {
		sets, args = append(sets, "owner = ?"), append(args, *patch.Owner)
	}
	if patch.Kind != nil {
		sets, args = append(sets, "kind = ?"), append(args, *patch.Kind)
	}
	if patch.Description != nil {
		sets, args = append(sets, "description = ?"), append(args, *patch.Description)
	}
	if patch.Category != nil {
		sets, args = append(sets, "category = ?"), append(args, *patch.Category)
	}
	if patch.Amount != nil {
		sets, args = append(sets, "amount = ?"), append(args, *patch.Amount)
	}
	if patch.CreatedAt != nil {
		sets, args = append(sets, "created_at = ?"), append(args, patch.CreatedAt.UTC().Format(createdAtLayout))
	}
	if len(sets) == 0 {
		return 0, nil
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE transactions SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return 0, fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update rows affected: %w", err)
	}
	return n, nil
}

// DeleteByID implements ledger.Store. A missing id reports zero deleted.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete rows affected: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t         core.Transaction
		createdAt string
	)
	if err := row.Scan(&t.ID, &t.Owner, &t.Kind, &t.Description, &t.Category, &t.Amount, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, err
		}
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	parsed, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		// Records written before the layout was fixed may carry a bare date.
		parsed = core.ParseDate(createdAt, time.Time{})
	}
	t.CreatedAt = parsed
	return t, nil
}
