package menu

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"smartspend/internal/core"
	"smartspend/internal/ledger/csvfile"
	"smartspend/internal/ledger/memory"
	"smartspend/internal/services"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) }

type failingRepo struct{}

func (failingRepo) LoadAll(context.Context) ([]core.Transaction, error) { return nil, nil }
func (failingRepo) SaveAll(context.Context, []core.Transaction) error {
	return errors.New("disk full")
}

// runSession drives a session with the given input lines against a csv file
// in a temp dir and returns the output and the reloaded transactions.
func runSession(t *testing.T, seed []core.Transaction, lines ...string) (string, []core.Transaction) {
	t.Helper()
	ctx := context.Background()
	repo := csvfile.New(filepath.Join(t.TempDir(), "data.csv"))
	if seed != nil {
		if err := repo.SaveAll(ctx, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	svc := services.NewLedgerService(memory.New(), repo, nil, nil)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	if err := NewSession(svc, in, &out, WithClock(fixedNow)).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	saved, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	return out.String(), saved
}

func seedTx(id int64, date string, kind core.Kind, category string, cents int64) core.Transaction {
	d, _ := core.ParseDate(date)
	return core.Transaction{ID: id, Date: d, Kind: kind, Category: category, Description: "seed", Amount: core.Money{Cents: cents}}
}

func TestSessionAddIncomeAndSave(t *testing.T) {
	out, saved := runSession(t, nil,
		"3", "2024-05-01", "Scholarship", "School", "500",
		"7",
	)
	if !strings.Contains(out, "=== Add Income ===") || !strings.Contains(out, "Transaction #1 added.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Data saved. Goodbye from Smart Spend U!") {
		t.Fatalf("expected goodbye message:\n%s", out)
	}
	if len(saved) != 1 || saved[0].Kind != core.Income || saved[0].Amount.Cents != 50000 || saved[0].Description != "Scholarship" {
		t.Fatalf("unexpected saved data: %+v", saved)
	}
}

func TestSessionRepromptsDateAndAmount(t *testing.T) {
	out, saved := runSession(t, nil,
		"4", "2024-02-30", "14/03/2025", "", "Lunch", "Food", "abc", "0", "-5", "12.5",
		"7",
	)
	if strings.Count(out, "Invalid date format. Please use YYYY-MM-DD.") != 2 {
		t.Fatalf("expected two date re-prompts:\n%s", out)
	}
	if !strings.Contains(out, "Please enter a valid number.") {
		t.Fatalf("expected number re-prompt:\n%s", out)
	}
	if strings.Count(out, "Amount must be greater than zero.") != 2 {
		t.Fatalf("expected two positive-amount re-prompts:\n%s", out)
	}
	if len(saved) != 1 || saved[0].Date.String() != "2025-03-14" || saved[0].Amount.Cents != 1250 || saved[0].Kind != core.Expense {
		t.Fatalf("unexpected saved data: %+v", saved)
	}
}

func TestSessionSummary(t *testing.T) {
	seed := []core.Transaction{
		seedTx(1, "2024-01-01", core.Income, "Work", 10000),
		seedTx(2, "2024-01-02", core.Expense, "Food", 4000),
		seedTx(3, "2024-01-03", core.Income, "Gift", 2550),
	}
	out, _ := runSession(t, seed, "1", "7")
	for _, want := range []string{"Total Income:   $125.50", "Total Expenses: $40.00", "Balance:        $85.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSessionListOrderAndSigns(t *testing.T) {
	seed := []core.Transaction{
		seedTx(5, "2024-02-01", core.Income, "Work", 100),
		seedTx(2, "2024-01-10", core.Expense, "Food", 250),
		seedTx(1, "2024-01-10", core.Income, "Gift", 100),
	}
	out, _ := runSession(t, seed, "2", "7")
	i1 := strings.Index(out, "1    2024-01-10")
	i2 := strings.Index(out, "2    2024-01-10")
	i5 := strings.Index(out, "5    2024-02-01")
	if i1 < 0 || i2 < 0 || i5 < 0 || !(i1 < i2 && i2 < i5) {
		t.Fatalf("unexpected ordering:\n%s", out)
	}
	if !strings.Contains(out, "-$     2.50") || !strings.Contains(out, "+$     1.00") {
		t.Fatalf("expected signed amounts:\n%s", out)
	}
}

func TestSessionListEmpty(t *testing.T) {
	out, _ := runSession(t, nil, "2", "5", "6", "7")
	if strings.Count(out, "No transactions recorded yet.") != 2 {
		t.Fatalf("expected empty messages for list and category:\n%s", out)
	}
	if !strings.Contains(out, "No transactions to delete.") {
		t.Fatalf("expected empty delete message:\n%s", out)
	}
}

func TestSessionListByCategory(t *testing.T) {
	seed := []core.Transaction{
		seedTx(1, "2024-01-01", core.Expense, "Food", 100),
		seedTx(2, "2024-01-02", core.Expense, "Rent", 100),
	}
	out, _ := runSession(t, seed, "5", "FOOD", "5", "Travel", "7")
	if !strings.Contains(out, "=== Transactions in Category: FOOD ===") {
		t.Fatalf("expected filtered heading:\n%s", out)
	}
	if !strings.Contains(out, "1    2024-01-01") || strings.Contains(out, "2    2024-01-02") {
		t.Fatalf("rent row should not be listed:\n%s", out)
	}
	if !strings.Contains(out, "No transactions found for category 'Travel'.") {
		t.Fatalf("expected no-match message:\n%s", out)
	}
}

func TestSessionDelete(t *testing.T) {
	seed := []core.Transaction{
		seedTx(1, "2024-01-01", core.Expense, "Food", 100),
		seedTx(2, "2024-01-02", core.Expense, "Rent", 100),
	}
	out, saved := runSession(t, seed,
		"6", "abc",
		"6", "9",
		"6", "1", "n",
		"6", "2", "Y",
		"7",
	)
	for _, want := range []string{
		"Invalid ID.",
		"No transaction found with ID 9.",
		"Delete cancelled.",
		"Are you sure you want to delete transaction #2? (y/n): ",
		"Transaction #2 deleted.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if len(saved) != 1 || saved[0].ID != 1 {
		t.Fatalf("expected only transaction 1 to remain, got %+v", saved)
	}
}

func TestSessionInvalidOption(t *testing.T) {
	out, saved := runSession(t, nil, "9", "hello", "7")
	if strings.Count(out, "Invalid option. Please choose 1-7.") != 2 {
		t.Fatalf("expected two invalid option messages:\n%s", out)
	}
	if len(saved) != 0 {
		t.Fatalf("invalid options must not change state: %+v", saved)
	}
}

func TestSessionEOFSaves(t *testing.T) {
	out, saved := runSession(t, nil, "3", "2024-01-01", "pay", "Work", "10")
	if !strings.Contains(out, "Data saved.") {
		t.Fatalf("expected save on end of input:\n%s", out)
	}
	if len(saved) != 1 {
		t.Fatalf("expected transaction to be saved, got %+v", saved)
	}
}

func TestSessionSaveFailure(t *testing.T) {
	svc := services.NewLedgerService(memory.New(), failingRepo{}, nil, nil)
	var out bytes.Buffer
	err := NewSession(svc, strings.NewReader("7\n"), &out).Run(context.Background())
	if err == nil {
		t.Fatal("expected save error")
	}
	if !strings.Contains(out.String(), "Could not save data") {
		t.Fatalf("expected failure message:\n%s", out.String())
	}
}

func TestSessionRepromptsExtremeAmounts(t *testing.T) {
	out, saved := runSession(t, nil,
		"4", "2024-01-01", "x", "Food", "1e999999999", "1e-999999999", "3",
		"7",
	)
	if !strings.Contains(out, "Please enter a valid number.") || !strings.Contains(out, "Amount must be greater than zero.") {
		t.Fatalf("expected both amount re-prompts:\n%s", out)
	}
	if len(saved) != 1 || saved[0].Amount.Cents != 300 {
		t.Fatalf("unexpected saved data: %+v", saved)
	}
}
