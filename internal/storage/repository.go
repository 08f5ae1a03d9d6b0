package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"smartspend/internal/core"
	applog "smartspend/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is a ledger.Repository backed by a single SQLite table.
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

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const selectTransactions = `SELECT id, date, kind, category, description, amount_cents FROM transactions ORDER BY id`

// LoadAll implements ledger.Loader. Rows that fail to scan or violate the
// transaction invariants are skipped, same as the flat file.
func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectTransactions)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txs := []core.Transaction{}
	skipped := 0
	for rows.Next() {
		var (
			id, cents                         int64
			date, kind, category, description string
		)
		if err := rows.Scan(&id, &date, &kind, &category, &description, &cents); err != nil {
			skipped++
			continue
		}
		t, err := toTransaction(id, date, kind, category, description, cents)
		if err != nil {
			skipped++
			continue
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	if skipped > 0 {
		applog.FromContext(ctx).WithComponent(applog.ComponentStorage).
			DebugContext(ctx, "Skipped malformed rows", "skipped", skipped)
	}
	return txs, nil
}

func toTransaction(id int64, date, kind, category, description string, cents int64) (core.Transaction, error) {
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, err
	}
	k, err := core.ParseKind(kind)
	if err != nil {
		return core.Transaction{}, err
	}
	t := core.Transaction{
		ID:          id,
		Date:        d,
		Kind:        k,
		Category:    category,
		Description: description,
		Amount:      core.Money{Cents: cents},
	}
	return t, t.Validate()
}

// SaveAll implements ledger.Saver: the table is emptied and refilled inside
// one transaction, so a failed save leaves the previous contents.
func (r *SQLiteRepository) SaveAll(ctx context.Context, txs []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO transactions (id, date, kind, category, description, amount_cents) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txs {
		if _, err := stmt.ExecContext(ctx, t.ID, t.Date.String(), t.Kind.String(), t.Category, t.Description, t.Amount.Cents); err != nil {
			return fmt.Errorf("insert transaction %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	applog.FromContext(ctx).WithComponent(applog.ComponentStorage).
		DebugContext(ctx, "Saved transactions to SQLite", applog.FieldCount, len(txs))
	return nil
}
