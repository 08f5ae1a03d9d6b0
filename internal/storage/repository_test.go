package storage

import (
	"context"
	"path/filepath"
	"testing"

	"smartspend/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "db", "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_EmptyLoad(t *testing.T) {
	repo := newTestRepo(t)
	txs, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("expected empty store, got %d", len(txs))
	}
}

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	in := []core.Transaction{
		{ID: 4, Date: core.NewDate(2024, 2, 1), Kind: core.Expense, Category: "Food", Description: `a, "b"`, Amount: core.Money{Cents: 4000}},
		{ID: 1, Date: core.NewDate(2024, 1, 10), Kind: core.Income, Category: "Work", Description: "pay", Amount: core.Money{Cents: 10000}},
	}
	if err := repo.SaveAll(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 4 {
		t.Fatalf("unexpected rows: %+v", out)
	}
	if out[1].Description != `a, "b"` || out[1].Amount.Cents != 4000 || out[1].Date.String() != "2024-02-01" {
		t.Fatalf("row not preserved: %+v", out[1])
	}
}

func TestSQLiteRepository_SaveReplaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	all := []core.Transaction{
		{ID: 1, Date: core.NewDate(2024, 1, 1), Kind: core.Income, Amount: core.Money{Cents: 1}},
		{ID: 2, Date: core.NewDate(2024, 1, 1), Kind: core.Income, Amount: core.Money{Cents: 1}},
	}
	if err := repo.SaveAll(ctx, all); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveAll(ctx, all[1:]); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := repo.LoadAll(ctx)
	if err != nil || len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("expected only id 2, got %+v (err=%v)", out, err)
	}
}

func TestSQLiteRepository_FailedSaveKeepsPrevious(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	good := []core.Transaction{{ID: 1, Date: core.NewDate(2024, 1, 1), Kind: core.Income, Amount: core.Money{Cents: 1}}}
	if err := repo.SaveAll(ctx, good); err != nil {
		t.Fatalf("save: %v", err)
	}
	bad := []core.Transaction{
		{ID: 5, Date: core.NewDate(2024, 1, 1), Kind: core.Income, Amount: core.Money{Cents: 1}},
		{ID: 5, Date: core.NewDate(2024, 1, 1), Kind: core.Income, Amount: core.Money{Cents: 1}},
	}
	if err := repo.SaveAll(ctx, bad); err == nil {
		t.Fatal("expected duplicate id to fail")
	}
	out, err := repo.LoadAll(ctx)
	if err != nil || len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("previous contents lost: %+v (err=%v)", out, err)
	}
}

func TestSQLiteRepository_SkipsInvalidRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if _, err := repo.db.ExecContext(ctx, `INSERT INTO transactions (id, date, kind, category, description, amount_cents) VALUES
		(1, '2024-01-01', 'income', 'Work', 'ok', 100),
		(2, 'not-a-date', 'expense', 'Food', 'bad date', 100)`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	out, err := repo.LoadAll(ctx)
	if err != nil || len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("expected only the valid row, got %+v (err=%v)", out, err)
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.db")
	if err := RunMigrations(path); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(path); err != nil {
		t.Fatalf("second run: %v", err)
	}
}
