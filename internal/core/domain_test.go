package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-01-01", true},
		{" 2024-02-29 ", true},
		{"2023-02-29", false}, // not a leap year
		{"2025-13-01", false},
		{"2025/01/01", false},
		{"01-01-2025", false},
		{"", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("%q expected error, got %v", tc.in, d)
			}
			if !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
			}
		}
	}
}

func TestDateStringRoundTrip(t *testing.T) {
	d := NewDate(2024, 3, 7)
	if d.String() != "2024-03-07" {
		t.Fatalf("unexpected format: %s", d)
	}
	back, err := ParseDate(d.String())
	if err != nil || back.Compare(d) != 0 {
		t.Fatalf("round trip failed: %v %v", back, err)
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC)
	if got := Today(now).String(); got != "2025-06-30" {
		t.Fatalf("Today() = %s", got)
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"income", "expense"} {
		if _, err := ParseKind(s); err != nil {
			t.Fatalf("%q expected ok, got %v", s, err)
		}
	}
	for _, s := range []string{"", "Income", "transfer"} {
		if _, err := ParseKind(s); !errors.Is(err, ErrInvalidKind) {
			t.Fatalf("%q expected ErrInvalidKind, got %v", s, err)
		}
	}
	if Expense.Title() != "Expense" {
		t.Fatalf("unexpected title %q", Expense.Title())
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:          1,
		Date:        NewDate(2025, 1, 1),
		Kind:        Income,
		Category:    "Work",
		Description: "salary",
		Amount:      Money{Cents: 100},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		tx  Transaction
		err error
	}{
		{Transaction{ID: 0, Date: NewDate(2025, 1, 1), Kind: Income, Amount: Money{Cents: 1}}, ErrInvalidID},
		{Transaction{ID: 1, Date: Date{Time: time.Time{}}, Kind: Income, Amount: Money{Cents: 1}}, ErrInvalidDate},
		{Transaction{ID: 1, Date: NewDate(2025, 1, 1), Kind: "gift", Amount: Money{Cents: 1}}, ErrInvalidKind},
		{Transaction{ID: 1, Date: NewDate(2025, 1, 1), Kind: Expense, Amount: Money{Cents: 0}}, ErrInvalidAmount},
		{Transaction{ID: 1, Date: NewDate(2025, 1, 1), Kind: Expense, Amount: Money{Cents: -500}}, ErrInvalidAmount},
	}
	for i, tc := range bads {
		if err := tc.tx.Validate(); !errors.Is(err, tc.err) {
			t.Fatalf("case %d expected %v, got %v", i, tc.err, err)
		}
	}
}

func TestTransactionSigned(t *testing.T) {
	in := Transaction{Kind: Income, Amount: Money{Cents: 250}}
	out := Transaction{Kind: Expense, Amount: Money{Cents: 250}}
	if in.Signed().Cents != 250 || out.Signed().Cents != -250 {
		t.Fatalf("unexpected signed values: %d %d", in.Signed().Cents, out.Signed().Cents)
	}
}
